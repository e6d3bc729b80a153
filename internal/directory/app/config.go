package app

import (
	"errors"
	"time"

	"github.com/aussiebroadwan/rolesconsole/internal/envx"
	"github.com/aussiebroadwan/rolesconsole/pkg/jwtx"
)

type Config struct {
	TokenSecret  string // Required: shared secret for service tokens
	TokenIssuer  string // Optional: expected iss claim (default: rolesconsole)
	DatabaseFile string // Optional: path to SQLite database file (default: directory.db)
	SeedDefaults bool   // Optional: create admin and viewer roles on an empty database (default: true)

	Env                 string        // Environment (dev, test, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8081)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

func LoadConfig() Config {
	return Config{
		TokenSecret:         envx.String("DIRECTORY_TOKEN_SECRET", ""),
		TokenIssuer:         envx.String("TOKEN_ISSUER", jwtx.DefaultIssuer),
		DatabaseFile:        envx.String("DIRECTORY_DATABASE_FILE", "directory.db"),
		SeedDefaults:        envx.Bool("DIRECTORY_SEED_DEFAULTS", true),
		Env:                 envx.String("ENV", "dev"),
		LogLevel:            envx.String("LOG_LEVEL", "info"),
		LogFormat:           envx.String("LOG_FORMAT", "json"),
		Port:                envx.Int("DIRECTORY_PORT", 8081),
		ShutdownGracePeriod: envx.Duration("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
	}
}

var ErrMissingTokenSecret = errors.New("DIRECTORY_TOKEN_SECRET is required")

func (c Config) Validate() error {
	if c.TokenSecret == "" {
		return ErrMissingTokenSecret
	}
	return nil
}
