package main

import (
	"time"

	"github.com/aussiebroadwan/rolesconsole/internal/console/app"
	"github.com/spf13/cobra"
)

var serveFlags struct {
	port         int
	directoryURL string
	fetchTimeout time.Duration
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the console web server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := app.LoadConfig()
		override(cmd, "port", &cfg.Port, serveFlags.port)
		override(cmd, "directory-url", &cfg.DirectoryURL, serveFlags.directoryURL)
		override(cmd, "fetch-timeout", &cfg.FetchTimeout, serveFlags.fetchTimeout)
		override(cmd, "log-level", &cfg.LogLevel, logLevel)
		override(cmd, "log-format", &cfg.LogFormat, logFormat)

		application, err := app.New(cfg)
		if err != nil {
			return err
		}
		return application.Run()
	},
}

func init() {
	serveCmd.Flags().IntVar(&serveFlags.port, "port", 8080, "HTTP port")
	serveCmd.Flags().StringVar(&serveFlags.directoryURL, "directory-url", "", "base URL of the directory API")
	serveCmd.Flags().DurationVar(&serveFlags.fetchTimeout, "fetch-timeout", 10*time.Second, "bound on one dashboard refresh")
	rootCmd.AddCommand(serveCmd)
}
