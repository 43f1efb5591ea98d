package main

import (
	"fmt"

	"github.com/cristianoliveira/leadnexus/cmd"
	"github.com/cristianoliveira/leadnexus/internal/colors"
	"github.com/cristianoliveira/leadnexus/internal/search"
	"github.com/spf13/cobra"
)

// NewSavedCmd creates the saved searches command group with explicit dependencies.
func NewSavedCmd(client workspaceProvider) *cobra.Command {
	if client == nil {
		panic("NewSavedCmd: client dependency cannot be nil")
	}

	savedCmd := &cobra.Command{
		Use:   "saved",
		Short: "List and delete saved searches",
		Long: `List and delete saved searches.

Create a saved search with "leadnexus search ... --save <name>" and reuse it
with "leadnexus search --saved <name>".`,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List saved searches",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := client.Workspace()
			if err != nil {
				return err
			}
			searches, err := ws.SavedSearches()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(searches) == 0 {
				fmt.Fprintln(out, "No saved searches")
				return nil
			}
			parser := search.NewTokenProvider()
			for _, s := range searches {
				fmt.Fprintf(out, "%-26s  %-20s  %s\n", s.ID, s.Name, parser.Format(s.Criteria))
			}
			return nil
		},
	}

	deleteCmd := &cobra.Command{
		Use:   "delete <id-or-name>",
		Short: "Delete a saved search",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := client.Workspace()
			if err != nil {
				return err
			}
			if err := ws.DeleteSavedSearch(args[0]); err != nil {
				return err
			}
			colors.Success(fmt.Sprintf("Saved search %q deleted", args[0]))
			return nil
		},
	}

	savedCmd.AddCommand(listCmd, deleteCmd)
	return savedCmd
}

var savedCmd = NewSavedCmd(leadClient)

func init() {
	cmd.RootCmd.AddCommand(savedCmd)
}
