package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

func TestOverride(t *testing.T) {
	var port int
	cmd := &cobra.Command{Use: "x"}
	cmd.Flags().IntVar(&port, "port", 1, "")

	cfgPort := 8080
	override(cmd, "port", &cfgPort, port)
	require.Equal(t, 8080, cfgPort, "unset flag keeps the env value")

	require.NoError(t, cmd.Flags().Set("port", "9000"))
	override(cmd, "port", &cfgPort, port)
	require.Equal(t, 9000, cfgPort)
}

func TestDirectoryMigrate(t *testing.T) {
	db := filepath.Join(t.TempDir(), "directory.db")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"directory", "migrate", "--database", db})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})

	require.NoError(t, rootCmd.Execute())
	require.Contains(t, out.String(), "migrations applied to "+db)

	// Re-running is a no-op.
	out.Reset()
	rootCmd.SetArgs([]string{"directory", "migrate", "--database", db})
	require.NoError(t, rootCmd.Execute())
}

func TestSummaryRequiresSecret(t *testing.T) {
	t.Setenv("DIRECTORY_TOKEN_SECRET", "")
	rootCmd.SetArgs([]string{"summary"})
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	require.Error(t, rootCmd.Execute())
}
