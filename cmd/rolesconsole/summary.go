package main

import (
	"context"
	"encoding/json"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/aussiebroadwan/rolesconsole/internal/console/app"
	"github.com/aussiebroadwan/rolesconsole/internal/console/summary"
	"github.com/aussiebroadwan/rolesconsole/pkg/directorysdk"
	"github.com/aussiebroadwan/rolesconsole/pkg/jwtx"
	"github.com/spf13/cobra"
)

var summaryFlags struct {
	directoryURL string
	asJSON       bool
}

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Print dashboard statistics from the directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := app.LoadConfig()
		override(cmd, "directory-url", &cfg.DirectoryURL, summaryFlags.directoryURL)
		if err := cfg.Validate(); err != nil {
			return err
		}

		signer, err := jwtx.NewHS256(cfg.TokenSecret, cfg.TokenIssuer)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), cfg.FetchTimeout+time.Second)
		defer cancel()

		view := summary.NewView(directorysdk.NewClient(cfg.DirectoryURL, signer),
			summary.WithTimeout(cfg.FetchTimeout))
		st := view.Load(ctx)
		if st.Err != nil {
			return st.Err
		}

		out := cmd.OutOrStdout()
		if summaryFlags.asJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(st.Stats)
		}

		tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		for _, c := range view.Cards() {
			fmt.Fprintf(tw, "%s\t%d\n", c.Title, c.Value)
		}
		fmt.Fprintln(tw)
		fmt.Fprintln(tw, "ROLE\tUSERS")
		for _, rc := range st.Stats.PerRole {
			fmt.Fprintf(tw, "%s\t%d\n", rc.Role, rc.Users)
		}
		return tw.Flush()
	},
}

func init() {
	summaryCmd.Flags().StringVar(&summaryFlags.directoryURL, "directory-url", "", "base URL of the directory API")
	summaryCmd.Flags().BoolVar(&summaryFlags.asJSON, "json", false, "print the statistics as JSON")
	rootCmd.AddCommand(summaryCmd)
}
