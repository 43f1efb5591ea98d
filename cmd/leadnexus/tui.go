package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cristianoliveira/leadnexus/cmd"
	"github.com/cristianoliveira/leadnexus/internal/app"
	"github.com/cristianoliveira/leadnexus/internal/leads"
	"github.com/cristianoliveira/leadnexus/internal/logging"
	"github.com/cristianoliveira/leadnexus/internal/search"
	"github.com/cristianoliveira/leadnexus/internal/tui/state"
	"github.com/spf13/cobra"
)

type tuiClient interface {
	workspaceProvider
	templateProvider
	queueProvider
	Source(location string) (leads.Source, error)
}

// runProgram is replaced in tests.
var runProgram = func(m tea.Model) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

// NewTUICmd creates the tui command with explicit dependencies.
func NewTUICmd(client tuiClient) *cobra.Command {
	if client == nil {
		panic("NewTUICmd: client dependency cannot be nil")
	}

	var flags criteriaFlags
	var source string
	var size int
	var watch bool

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "Browse leads interactively",
		Long: `Browse leads interactively.

KEYS:
    /        Edit the query (field:value, sort:<key>, group:company, free text)
    s        Cycle the sort key
    g        Toggle grouping by company
    n / p    Next / previous page
    e        Toggle the message preview for the selected lead
    t        Next template (in preview)
    c        Copy the preview to the clipboard
    x        Dismiss notifications
    r        Reload the source
    q        Quit`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			criteria, err := flags.criteria(client)
			if err != nil {
				return err
			}
			src, err := client.Source(source)
			if err != nil {
				return err
			}
			engine, registry, err := client.Templates()
			if err != nil {
				return err
			}
			queue, err := client.Queue()
			if err != nil {
				return err
			}

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			var watcher *leads.Watcher
			if fs, ok := src.(*leads.FileSource); ok && watch {
				watcher, err = leads.NewWatcher(fs.Path, leads.DefaultDebounce)
				if err != nil {
					return fmt.Errorf("watch %s: %w", fs.Path, err)
				}
				defer watcher.Close()
				if err := watcher.Start(ctx); err != nil {
					return fmt.Errorf("watch %s: %w", fs.Path, err)
				}
			}

			model := state.NewModel(ctx, state.Deps{
				Search:   app.NewSearchUseCase(src, queue),
				Preview:  app.NewPreviewUseCase(engine, registry),
				Registry: registry,
				Queue:    queue,
				Parser:   search.NewTokenProvider(),
				Watcher:  watcher,
				Source:   leads.Describe(src),
				Criteria: criteria,
				PageSize: pageSize(size),
			})
			logging.Info("tui started", "source", leads.Describe(src), "watch", watcher != nil)
			err = runProgram(model)
			// Notifications were shown on screen.
			queue.ClearAll()
			return err
		},
	}

	flags.register(tuiCmd)
	tuiCmd.Flags().StringVarP(&source, "source", "s", "", "Lead file (.json, .csv) or backend URL (default: leads_source config)")
	tuiCmd.Flags().IntVar(&size, "page-size", 0, "Leads per page (default: page_size config)")
	tuiCmd.Flags().BoolVarP(&watch, "watch", "w", false, "Reload when the lead file changes")
	return tuiCmd
}

var tuiCmd = NewTUICmd(leadClient)

func init() {
	cmd.RootCmd.AddCommand(tuiCmd)
}
