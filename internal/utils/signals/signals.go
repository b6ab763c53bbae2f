package signals

import (
	"os"
	"os/signal"
	"syscall"
)

// OnSignal calls the given function, once, in a new goroutine when the process receives SIGINT or SIGTERM.
func OnSignal(action func(sig os.Signal)) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		signal.Stop(sigChan)
		action(sig)
	}()
}
