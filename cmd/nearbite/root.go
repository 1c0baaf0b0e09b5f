package main

import (
	"github.com/MakeNowJust/heredoc"
	"github.com/spf13/cobra"
)

const (
	configFlag = "config"
	envFlag    = "env"
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "nearbite <command> [flags]",
		Short:         "Restaurant finder",
		Long:          "Find restaurants around a point and filter them by cuisine.",
		SilenceErrors: true,
		SilenceUsage:  true,
		Example: heredoc.Doc(`
			$ nearbite serve
			$ nearbite search --lat 39.0997 --lon -94.5786 --tag Burgers --only-matches
			$ nearbite search --lat 39.0997 --lon -94.5786 --local
		`),
		Annotations: map[string]string{
			"help:environment": heredoc.Doc(`
				ENV selects config/<ENV>.yaml (default: local).
				A .env file in the working directory is loaded first when present.
			`),
		},
	}

	rootCmd.PersistentFlags().StringP(configFlag, "c", "", "Override config file")
	rootCmd.PersistentFlags().String(envFlag, "", "Environment name (overrides ENV)")

	rootCmd.AddCommand(
		serveCmd(),
		searchCmd(),
		versionCmd(),
	)

	return rootCmd
}
