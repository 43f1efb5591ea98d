package main

import (
	"fmt"
	"strings"

	"github.com/cristianoliveira/leadnexus/cmd"
	"github.com/cristianoliveira/leadnexus/internal/colors"
	"github.com/spf13/cobra"
)

const noteTimeLayout = "2006-01-02 15:04"

// NewNotesCmd creates the lead notes command group with explicit dependencies.
func NewNotesCmd(client workspaceProvider) *cobra.Command {
	if client == nil {
		panic("NewNotesCmd: client dependency cannot be nil")
	}

	notesCmd := &cobra.Command{
		Use:   "notes",
		Short: "Attach private notes to leads",
	}

	setCmd := &cobra.Command{
		Use:   "set <lead-id> <text>...",
		Short: "Set the note for a lead (empty text removes it)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := client.Workspace()
			if err != nil {
				return err
			}
			note, err := ws.SetNote(args[0], strings.Join(args[1:], " "))
			if err != nil {
				return err
			}
			if note.Text == "" {
				colors.Success(fmt.Sprintf("Note for %s removed", note.LeadID))
			} else {
				colors.Success(fmt.Sprintf("Note for %s saved", note.LeadID))
			}
			return nil
		},
	}

	getCmd := &cobra.Command{
		Use:   "get <lead-id>",
		Short: "Print the note for a lead",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := client.Workspace()
			if err != nil {
				return err
			}
			note, err := ws.Note(args[0])
			if err != nil {
				return fmt.Errorf("note for %s: %w", args[0], err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), note.Text)
			return nil
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List all notes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := client.Workspace()
			if err != nil {
				return err
			}
			notes, err := ws.Notes()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(notes) == 0 {
				fmt.Fprintln(out, "No notes")
				return nil
			}
			for _, n := range notes {
				fmt.Fprintf(out, "%-20s  %s  %s\n", n.LeadID, n.UpdatedAt.Local().Format(noteTimeLayout), n.Text)
			}
			return nil
		},
	}

	notesCmd.AddCommand(setCmd, getCmd, listCmd)
	return notesCmd
}

var notesCmd = NewNotesCmd(leadClient)

func init() {
	cmd.RootCmd.AddCommand(notesCmd)
}
