package app

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aussiebroadwan/rolesconsole/pkg/directorysdk"
	"github.com/aussiebroadwan/rolesconsole/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Setenv("DIRECTORY_TOKEN_SECRET", "s3cret")
	t.Setenv("DIRECTORY_PORT", "9090")
	t.Setenv("DIRECTORY_SEED_DEFAULTS", "false")
	t.Setenv("SHUTDOWN_GRACE_PERIOD", "3s")

	cfg := LoadConfig()
	require.Equal(t, "s3cret", cfg.TokenSecret)
	require.Equal(t, 9090, cfg.Port)
	require.False(t, cfg.SeedDefaults)
	require.Equal(t, jwtx.DefaultIssuer, cfg.TokenIssuer)
	require.Equal(t, "directory.db", cfg.DatabaseFile)
	require.NoError(t, cfg.Validate())
}

func TestNewRequiresSecret(t *testing.T) {
	_, err := New(Config{DatabaseFile: ":memory:"})
	require.ErrorIs(t, err, ErrMissingTokenSecret)
}

func TestNewSeedsDefaults(t *testing.T) {
	cfg := Config{
		TokenSecret:  "s3cret",
		TokenIssuer:  jwtx.DefaultIssuer,
		DatabaseFile: ":memory:",
		SeedDefaults: true,
		Env:          "test",
		LogLevel:     "error",
	}
	application, err := New(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = application.db.Close() })

	srv := httptest.NewServer(application.Handler())
	defer srv.Close()

	signer, err := jwtx.NewHS256(cfg.TokenSecret, cfg.TokenIssuer)
	require.NoError(t, err)

	roles, err := directorysdk.NewClient(srv.URL, signer).ListRoles(t.Context())
	require.NoError(t, err)
	require.Len(t, roles, 2)

	resp, err := http.Get(srv.URL + "/swagger/doc.json")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
}
