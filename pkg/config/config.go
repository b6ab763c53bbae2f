package config

import (
	"time"
)

// Config represents the configs model.
type Config struct {
	// Application is the model of application configs.
	Application struct {
		// Name of the application.
		Name string `yaml:"name"`
		// BaseURL of the application.
		// It can be http://localhost:8080 during development and https://domain.com in production.
		BaseURL string `yaml:"base_url"`
		// PProf is a flag to enable/disable profiling.
		PProf bool `yaml:"pprof"`
	} `yaml:"application"`

	// HTTPServer is the model of the HTTP Server configs.
	HTTPServer struct {
		// Addr is the address of the HTTP server.
		Addr string `yaml:"addr"`
		// AllowedOrigin is the CORS origin. It defaults to http://localhost.
		AllowedOrigin string `yaml:"allowed_origin"`
	} `yaml:"http_server"`

	// Logger is the model of the application logger configs.
	Logger struct {
		// Level of the logger.
		Level string `yaml:"level"`
		// Pretty is a flag that dictates whether the log output should be pretty (human-readable).
		Pretty bool `yaml:"pretty"`
	} `yaml:"logger"`

	// Database is the model of the Postgres configs.
	Database struct {
		Addr     string `yaml:"addr"`
		Username string `yaml:"username"`
		Password string `yaml:"password"`
		Database string `yaml:"database"`
		// SSLMode is passed as is to the connection string.
		SSLMode string `yaml:"ssl_mode"`
	} `yaml:"database"`

	// Session is the model of the session cookie configs.
	Session struct {
		// SigningKey is the HMAC key for session tokens.
		SigningKey string `yaml:"signing_key"`
		// TTL is the lifetime of a session.
		TTL time.Duration `yaml:"ttl"`
	} `yaml:"session"`

	// AllowedRedirectURLs is the list of URLs that the service may redirect to after the OAuth flow is complete.
	AllowedRedirectURLs []string `yaml:"allowed_redirect_urls"`

	// Pinterest holds the options of the Pinterest strategy. They are kept loosely typed here and
	// validated by oauth.DecodeOptions, which names the offending option upon error.
	Pinterest map[string]any `yaml:"pinterest"`
}

// Load loads and returns the config value.
//
// It panics if the configs cannot be loaded because the application cannot run without them.
func Load() Config {
	cfg, err := loadWithViper(configPath())
	if err != nil {
		panic("failed to load configs: " + err.Error())
	}
	return cfg
}

// LoadMock provides a mock instance of the config for testing purposes.
func LoadMock() Config {
	cfg := Config{}

	cfg.Application.Name = "example-application"
	cfg.Application.BaseURL = "http://localhost:8080"
	cfg.HTTPServer.Addr = "localhost:8080"

	cfg.Logger.Level = "debug"
	cfg.Logger.Pretty = true

	cfg.Session.SigningKey = "mock-signing-key-mock-signing-key"
	cfg.Session.TTL = time.Hour

	cfg.AllowedRedirectURLs = []string{"http://localhost:3000"}
	cfg.Pinterest = map[string]any{"clientID": "mockClientID", "clientSecret": "mockClientSecret"}

	return cfg
}
