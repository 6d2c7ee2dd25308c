package main

import (
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for the noteful CLI.
func NewRootCmd() *cobra.Command {
	var configFile string

	cmd := &cobra.Command{
		Use:          "noteful",
		Short:        "noteful - user registration and token authentication API",
		SilenceUsage: true,
	}

	// Empty means config.yaml from the default search paths.
	cmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path")

	cmd.AddCommand(NewServeCmd(&configFile))
	cmd.AddCommand(NewMigrateCmd(&configFile))

	return cmd
}
