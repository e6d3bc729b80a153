package main

import (
	"fmt"

	"github.com/aussiebroadwan/rolesconsole/internal/directory/app"
	"github.com/spf13/cobra"
)

var directoryFlags struct {
	port         int
	databaseFile string
	noSeed       bool
}

var directoryCmd = &cobra.Command{
	Use:   "directory",
	Short: "Run or maintain the directory API",
}

var directoryServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the directory HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := directoryConfig(cmd)
		override(cmd, "port", &cfg.Port, directoryFlags.port)
		if directoryFlags.noSeed {
			cfg.SeedDefaults = false
		}

		application, err := app.New(cfg)
		if err != nil {
			return err
		}
		return application.Run()
	},
}

var directoryMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply database migrations and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := directoryConfig(cmd)

		db, err := app.OpenStore(cfg.DatabaseFile)
		if err != nil {
			return err
		}
		defer db.Close()

		fmt.Fprintf(cmd.OutOrStdout(), "migrations applied to %s\n", cfg.DatabaseFile)
		return nil
	},
}

func directoryConfig(cmd *cobra.Command) app.Config {
	cfg := app.LoadConfig()
	override(cmd, "database", &cfg.DatabaseFile, directoryFlags.databaseFile)
	override(cmd, "log-level", &cfg.LogLevel, logLevel)
	override(cmd, "log-format", &cfg.LogFormat, logFormat)
	return cfg
}

func init() {
	directoryCmd.PersistentFlags().StringVar(&directoryFlags.databaseFile, "database", "directory.db", "SQLite database file")
	directoryServeCmd.Flags().IntVar(&directoryFlags.port, "port", 8081, "HTTP port")
	directoryServeCmd.Flags().BoolVar(&directoryFlags.noSeed, "no-seed", false, "do not create the default roles")

	directoryCmd.AddCommand(directoryServeCmd, directoryMigrateCmd)
	rootCmd.AddCommand(directoryCmd)
}
