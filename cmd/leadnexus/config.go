package main

import (
	"fmt"

	"github.com/cristianoliveira/leadnexus/cmd"
	"github.com/cristianoliveira/leadnexus/internal/config"
	"github.com/spf13/cobra"
)

// NewConfigCmd creates the config command. It reads the loaded configuration.
func NewConfigCmd() *cobra.Command {
	var showPath, describe bool

	configCmd := &cobra.Command{
		Use:   "config [key]",
		Short: "Show the effective configuration",
		Long: `Show the effective configuration.

Values come from defaults, then the TOML config file, then LEADNEXUS_*
environment variables. Secrets are masked. With --describe, each key is
followed by what it controls.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if showPath {
				fmt.Fprintln(out, config.Path())
				return nil
			}
			if len(args) == 1 && !describe {
				fmt.Fprintln(out, maskSecret(args[0], config.Get(args[0], "")))
				return nil
			}
			keys := config.Keys()
			if len(args) == 1 {
				keys = args
			}
			for _, key := range keys {
				fmt.Fprintf(out, "%s = %s\n", key, maskSecret(key, config.Get(key, "")))
				if describe {
					if k, ok := config.Describe(key); ok && k.Doc != "" {
						fmt.Fprintf(out, "    %s\n", k.Doc)
					}
				}
			}
			return nil
		},
	}
	configCmd.Flags().BoolVar(&showPath, "path", false, "Print the config file path")
	configCmd.Flags().BoolVarP(&describe, "describe", "d", false, "Print what each key controls")
	return configCmd
}

func maskSecret(key, value string) string {
	if k, ok := config.Describe(key); ok && k.Secret && value != "" {
		return "********"
	}
	return value
}

var configCmd = NewConfigCmd()

func init() {
	cmd.RootCmd.AddCommand(configCmd)
}
