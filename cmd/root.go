package cmd

import (
	"fmt"
	"strings"

	"github.com/cristianoliveira/leadnexus/internal/colors"
	"github.com/cristianoliveira/leadnexus/internal/config"
	"github.com/cristianoliveira/leadnexus/internal/logging"
	"github.com/cristianoliveira/leadnexus/internal/version"
	"github.com/spf13/cobra"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:           "leadnexus",
	Short:         "Search, segment and reach out to B2B leads from the terminal.",
	Long:          `Search, segment and reach out to B2B leads from the terminal.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return Setup(cmd)
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return logging.ShutdownGlobal()
	},
}

// Setup loads configuration, then configures console output and the
// global logger from it. Flags override the config file.
func Setup(cmd *cobra.Command) error {
	config.Load()

	if f := cmd.Flags().Lookup("debug"); f != nil && f.Changed {
		config.Set("debug", f.Value.String())
	}
	if f := cmd.Flags().Lookup("quiet"); f != nil && f.Changed {
		config.Set("quiet", f.Value.String())
	}
	colors.SetDebug(config.GetBool("debug", false))
	colors.SetQuiet(config.GetBool("quiet", false))

	if err := logging.InitGlobal(); err != nil {
		colors.Warning("file logging disabled:", err.Error())
	}
	logging.Debug("command started", "command", cmd.CommandPath(), "version", version.String())
	return nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() error {
	return RootCmd.Execute()
}

func init() {
	// Set version for use in help output
	RootCmd.Version = version.String()

	// Hide the completion command
	RootCmd.CompletionOptions.HiddenDefaultCmd = true

	RootCmd.PersistentFlags().Bool("debug", false, "Enable debug output")
	RootCmd.PersistentFlags().Bool("quiet", false, "Only print errors")

	defaultHelp := RootCmd.HelpFunc()
	RootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		if cmd != RootCmd {
			defaultHelp(cmd, args)
			return
		}
		printHelpText(cmd)
	})
}

func printHelpText(cmd *cobra.Command) {
	commandOrder := []string{
		"search",
		"preview",
		"tui",
		"templates",
		"saved",
		"notes",
		"alerts",
		"import",
		"export",
		"duplicates",
		"config",
		"version",
	}

	var cmdLines []string
	for _, name := range commandOrder {
		var found *cobra.Command
		for _, c := range cmd.Commands() {
			if c.Name() == name {
				found = c
				break
			}
		}
		if found == nil {
			continue
		}
		cmdLines = append(cmdLines, fmt.Sprintf("    %-16s %s", found.Name(), found.Short))
	}

	helpText := fmt.Sprintf(`leadnexus %s

Search, segment and reach out to B2B leads from the terminal.

USAGE:
    leadnexus [COMMAND] [OPTIONS]

COMMANDS:
%s

OPTIONS:
    --debug         Enable debug output
    --quiet         Only print errors
    -h, --help      Show help message
`, version.String(), strings.Join(cmdLines, "\n"))
	fmt.Fprint(cmd.OutOrStdout(), helpText)
}
