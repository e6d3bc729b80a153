package directorysdk

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/sony/gobreaker"
)

// TokenSource mints a bearer token for subject carrying scopes.
// *jwtx.HS256 satisfies it.
type TokenSource interface {
	Mint(subject string, scopes ...string) (string, error)
}

// Client talks to the directory HTTP API.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client

	// Subject is the sub claim of minted service tokens.
	Subject string

	tokens  TokenSource
	breaker *gobreaker.CircuitBreaker
}

// NewClient returns a client for baseURL that authenticates with tokens.
func NewClient(baseURL string, tokens TokenSource) *Client {
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		Subject: "rolesconsole",
		tokens:  tokens,
		breaker: newBreaker("directory"),
	}
}

func newBreaker(name string) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Timeout:     5 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		// Client errors mean the directory is up and answering. A canceled
		// caller, such as the sibling of a failed joint fetch, says nothing
		// about the directory.
		IsSuccessful: func(err error) bool {
			if errors.Is(err, context.Canceled) {
				return true
			}
			var apiErr *APIError
			if errors.As(err, &apiErr) {
				return !apiErr.Temporary()
			}
			return err == nil
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			slog.Warn("circuit breaker state change",
				slog.String("breaker", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()),
			)
		},
	})
}

// execute runs fn through the circuit breaker.
func execute[T any](c *Client, fn func() (T, error)) (T, error) {
	var zero T
	out, err := c.breaker.Execute(func() (interface{}, error) {
		return fn()
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return zero, errors.Join(ErrUnavailable, err)
	}
	if err != nil {
		return zero, err
	}
	return out.(T), nil
}
