package main

import (
	"encoding/json"
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/cristianoliveira/leadnexus/cmd"
	"github.com/cristianoliveira/leadnexus/internal/app"
	"github.com/cristianoliveira/leadnexus/internal/colors"
	"github.com/cristianoliveira/leadnexus/internal/format"
	"github.com/spf13/cobra"
)

type previewClient interface {
	leadLoader
	templateProvider
}

// writeClipboard is replaced in tests.
var writeClipboard = clipboard.WriteAll

const previewCommandLong = `Render an outreach template for one lead.

The lead is looked up by id or email in the source. Placeholders such as
{{name}}, {{company}}, {{job_title}} and {{location}} are filled from the lead;
unbound placeholders are left in place and listed after the preview.

EXAMPLES:
    leadnexus preview ana@globex.com
    leadnexus preview 42 --template follow-up --copy`

// NewPreviewCmd creates the preview command with explicit dependencies.
func NewPreviewCmd(client previewClient) *cobra.Command {
	if client == nil {
		panic("NewPreviewCmd: client dependency cannot be nil")
	}

	var source string
	var templateName string
	var width int
	var asJSON bool
	var copyText bool

	previewCmd := &cobra.Command{
		Use:   "preview <lead-id-or-email>",
		Short: "Render a message template for a lead",
		Long:  previewCommandLong,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, registry, err := client.Templates()
			if err != nil {
				return err
			}
			records, err := client.LoadLeads(cmd.Context(), source)
			if err != nil {
				return err
			}
			lead, ok := app.FindLead(records, args[0])
			if !ok {
				return fmt.Errorf("lead %q not found", args[0])
			}

			result, err := app.NewPreviewUseCase(engine, registry).Execute(templateName, lead)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				if err := enc.Encode(result); err != nil {
					return err
				}
			} else if err := format.FormatPreview(out, result.Preview, result.Missing, width); err != nil {
				return err
			}

			if copyText {
				if err := writeClipboard(format.PreviewText(result.Preview, 0)); err != nil {
					return fmt.Errorf("copy to clipboard: %w", err)
				}
				colors.Success("Preview copied to clipboard")
			}
			return nil
		},
	}

	previewCmd.Flags().StringVarP(&source, "source", "s", "", "Lead file (.json, .csv) or backend URL (default: leads_source config)")
	previewCmd.Flags().StringVarP(&templateName, "template", "t", "intro", "Template name")
	previewCmd.Flags().IntVar(&width, "width", format.DefaultWrapWidth, "Wrap the body at this column (0 disables)")
	previewCmd.Flags().BoolVar(&asJSON, "json", false, "Print the preview as JSON")
	previewCmd.Flags().BoolVar(&copyText, "copy", false, "Copy the rendered message to the clipboard")

	return previewCmd
}

var previewCmd = NewPreviewCmd(leadClient)

func init() {
	cmd.RootCmd.AddCommand(previewCmd)
}
