package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/shivanshkc/pinterestauth/internal/database"
	"github.com/shivanshkc/pinterestauth/internal/handler"
	"github.com/shivanshkc/pinterestauth/internal/http"
	"github.com/shivanshkc/pinterestauth/internal/middleware"
	"github.com/shivanshkc/pinterestauth/internal/repository"
	"github.com/shivanshkc/pinterestauth/internal/session"
	"github.com/shivanshkc/pinterestauth/pkg/config"
	"github.com/shivanshkc/pinterestauth/pkg/logger"
	"github.com/shivanshkc/pinterestauth/pkg/oauth"
)

func main() {
	// Initialize basic dependencies.
	conf := config.Load()
	logger.Init(os.Stdout, conf.Logger.Level, conf.Logger.Pretty)

	// Connect to the database and bring the schema up to date.
	db, err := database.Connect(context.Background(), conf)
	if err != nil {
		panic("error in database.Connect call: " + err.Error())
	}
	if err := database.Migrate(db); err != nil {
		panic("error in database.Migrate call: " + err.Error())
	}

	repo := repository.NewRepository(db)

	sessions, err := session.NewManager(conf.Session.SigningKey, conf.Session.TTL)
	if err != nil {
		panic("error in session.NewManager call: " + err.Error())
	}

	// The strategy fails fast upon misconfiguration, naming the offending option.
	pinterestOpts, err := oauth.DecodeOptions(conf.Pinterest)
	if err != nil {
		panic("error in oauth.DecodeOptions call: " + err.Error())
	}
	pinterest, err := oauth.NewPinterest(pinterestOpts, handler.NewVerifier(repo))
	if err != nil {
		panic("error in oauth.NewPinterest call: " + err.Error())
	}
	slog.Info("oauth strategy registered", "name", pinterest.Name(), "sessionKey", pinterest.SessionKey())

	// Initialize the HTTP server.
	server := &http.Server{
		Config:     conf,
		Middleware: middleware.Middleware{AllowedOrigin: conf.HTTPServer.AllowedOrigin},
		Handler:    handler.NewHandler(conf, repo, sessions, pinterest),
	}

	// This internally calls ListenAndServe.
	// This is a blocking call and will panic if the server is unable to start.
	server.Start()
}
