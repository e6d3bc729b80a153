package app

import (
	"errors"
	"time"

	"github.com/aussiebroadwan/rolesconsole/internal/envx"
	"github.com/aussiebroadwan/rolesconsole/pkg/jwtx"
)

type Config struct {
	DirectoryURL string        // Optional: base URL of the directory API (default: http://localhost:8081)
	TokenSecret  string        // Required: shared secret for service tokens
	TokenIssuer  string        // Optional: iss claim of minted tokens (default: rolesconsole)
	FetchTimeout time.Duration // Optional: bound on one dashboard refresh (default: 10s)

	Env                 string        // Environment (dev, test, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

func LoadConfig() Config {
	return Config{
		DirectoryURL:        envx.String("DIRECTORY_URL", "http://localhost:8081"),
		TokenSecret:         envx.String("DIRECTORY_TOKEN_SECRET", ""),
		TokenIssuer:         envx.String("TOKEN_ISSUER", jwtx.DefaultIssuer),
		FetchTimeout:        envx.Duration("FETCH_TIMEOUT", 10*time.Second),
		Env:                 envx.String("ENV", "dev"),
		LogLevel:            envx.String("LOG_LEVEL", "info"),
		LogFormat:           envx.String("LOG_FORMAT", "json"),
		Port:                envx.Int("CONSOLE_PORT", 8080),
		ShutdownGracePeriod: envx.Duration("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
	}
}

var (
	ErrMissingTokenSecret  = errors.New("DIRECTORY_TOKEN_SECRET is required")
	ErrMissingDirectoryURL = errors.New("DIRECTORY_URL is required")
)

func (c Config) Validate() error {
	if c.TokenSecret == "" {
		return ErrMissingTokenSecret
	}
	if c.DirectoryURL == "" {
		return ErrMissingDirectoryURL
	}
	return nil
}
