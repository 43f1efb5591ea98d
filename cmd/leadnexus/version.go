package main

import (
	"fmt"
	goruntime "runtime"

	"github.com/cristianoliveira/leadnexus/cmd"
	"github.com/cristianoliveira/leadnexus/internal/version"
	"github.com/spf13/cobra"
)

// NewVersionCmd prints the build version. --verbose adds the toolchain
// and platform, which is what bug reports usually need.
func NewVersionCmd() *cobra.Command {
	var verbose bool
	c := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "leadnexus version %s\n", version.String())
			if verbose {
				fmt.Fprintf(out, "go: %s\nplatform: %s/%s\n", goruntime.Version(), goruntime.GOOS, goruntime.GOARCH)
			}
			return nil
		},
	}
	c.Flags().BoolVarP(&verbose, "verbose", "v", false, "Include Go version and platform")
	return c
}

var versionCmd = NewVersionCmd()

func init() {
	cmd.RootCmd.AddCommand(versionCmd)
}
