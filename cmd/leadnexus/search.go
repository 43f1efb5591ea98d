package main

import (
	"fmt"

	"github.com/cristianoliveira/leadnexus/cmd"
	"github.com/cristianoliveira/leadnexus/internal/app"
	"github.com/cristianoliveira/leadnexus/internal/colors"
	"github.com/cristianoliveira/leadnexus/internal/config"
	"github.com/cristianoliveira/leadnexus/internal/format"
	"github.com/spf13/cobra"
)

type searchClient interface {
	leadLoader
	workspaceProvider
}

const searchCommandLong = `Search leads with field filters, sorting, grouping and pagination.

Leads are fetched once from the source, then filtered locally. Every filter is
a case-insensitive substring match; all filters must match.

EXAMPLES:
    leadnexus search --filter company_name=acme --sort score
    leadnexus search -q "title:cto loc:berlin" --group-by-company
    leadnexus search --saved "berlin ctos" --page 2 --format json
    leadnexus search -f job_title=sales --save "sales leads"`

// NewSearchCmd creates the search command with explicit dependencies.
func NewSearchCmd(client searchClient) *cobra.Command {
	if client == nil {
		panic("NewSearchCmd: client dependency cannot be nil")
	}

	var flags criteriaFlags
	var source string
	var page int
	var size int
	var outputFormat string
	var saveAs string

	searchCmd := &cobra.Command{
		Use:   "search",
		Short: "Search, sort and page through leads",
		Long:  searchCommandLong,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if outputFormat == "" {
				outputFormat = config.Get("output_format", string(format.FormatterTypeTable))
			}
			formatterType, err := format.ParseFormatterType(outputFormat)
			if err != nil {
				return err
			}
			criteria, err := flags.criteria(client)
			if err != nil {
				return err
			}

			records, err := client.LoadLeads(cmd.Context(), source)
			if err != nil {
				return err
			}
			result := app.Run(records, app.SearchInput{
				Criteria: criteria,
				Page:     page,
				PageSize: pageSize(size),
			})
			if err := format.NewFormatter(formatterType).FormatResult(result, cmd.OutOrStdout()); err != nil {
				return err
			}

			if saveAs != "" {
				ws, err := client.Workspace()
				if err != nil {
					return err
				}
				saved, err := ws.SaveSearch(saveAs, criteria)
				if err != nil {
					return err
				}
				colors.Success(fmt.Sprintf("Saved search %q (%s)", saved.Name, saved.ID))
			}
			return nil
		},
	}

	flags.register(searchCmd)
	searchCmd.Flags().StringVarP(&source, "source", "s", "", "Lead file (.json, .csv) or backend URL (default: leads_source config)")
	searchCmd.Flags().IntVarP(&page, "page", "p", 1, "Page number, starting at 1")
	searchCmd.Flags().IntVar(&size, "page-size", 0, "Leads per page (default: page_size config)")
	searchCmd.Flags().StringVar(&outputFormat, "format", "", "Output format: table, json, csv (default: output_format config)")
	searchCmd.Flags().StringVar(&saveAs, "save", "", "Save the resulting criteria under this name")

	return searchCmd
}

var searchCmd = NewSearchCmd(leadClient)

func init() {
	cmd.RootCmd.AddCommand(searchCmd)
}
