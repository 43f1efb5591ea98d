package main

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/cristianoliveira/leadnexus/cmd"
	"github.com/cristianoliveira/leadnexus/internal/colors"
	"github.com/cristianoliveira/leadnexus/internal/format"
	"github.com/cristianoliveira/leadnexus/internal/formatter"
	"github.com/spf13/cobra"
)

type templatesClient interface {
	workspaceProvider
	templateProvider
}

// NewTemplatesCmd creates the templates command group with explicit dependencies.
func NewTemplatesCmd(client templatesClient) *cobra.Command {
	if client == nil {
		panic("NewTemplatesCmd: client dependency cannot be nil")
	}

	templatesCmd := &cobra.Command{
		Use:   "templates",
		Short: "Manage outreach message templates",
		Long: `Manage outreach message templates.

Built-in templates are always available. Saved templates are stored in the
workspace and override built-ins with the same name.`,
	}

	templatesCmd.AddCommand(
		newTemplatesListCmd(client),
		newTemplatesShowCmd(client),
		newTemplatesAddCmd(client),
		newTemplatesImportCmd(client),
		newTemplatesExportCmd(client),
		newTemplatesDeleteCmd(client),
	)
	return templatesCmd
}

func newTemplatesListCmd(client templatesClient) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List available templates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, registry, err := client.Templates()
			if err != nil {
				return err
			}
			return format.FormatPresets(cmd.OutOrStdout(), registry.List())
		},
	}
}

func newTemplatesShowCmd(client templatesClient) *cobra.Command {
	return &cobra.Command{
		Use:   "show <name>",
		Short: "Print a template with its placeholders",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, registry, err := client.Templates()
			if err != nil {
				return err
			}
			preset, err := registry.Get(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Subject: %s\n\n%s\n", preset.Subject, preset.Body)
			if tokens := engine.Parse(preset.Subject + "\n" + preset.Body); len(tokens) > 0 {
				fmt.Fprintf(out, "\nPlaceholders: %v\n", tokens)
			}
			return nil
		},
	}
}

func newTemplatesAddCmd(client templatesClient) *cobra.Command {
	var preset formatter.Preset
	var bodyFile string

	addCmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Save a template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			preset.Name = args[0]
			if bodyFile != "" {
				body, err := readInput(cmd, bodyFile)
				if err != nil {
					return err
				}
				preset.Body = string(body)
			}
			ws, err := client.Workspace()
			if err != nil {
				return err
			}
			if err := ws.SaveTemplate(preset); err != nil {
				return err
			}
			colors.Success(fmt.Sprintf("Template %q saved", preset.Name))
			return nil
		},
	}

	addCmd.Flags().StringVar(&preset.Subject, "subject", "", "Subject line")
	addCmd.Flags().StringVar(&preset.Body, "body", "", "Message body")
	addCmd.Flags().StringVar(&bodyFile, "body-file", "", "Read the body from a file (- for stdin)")
	addCmd.Flags().StringVar(&preset.Description, "description", "", "Short description")
	return addCmd
}

func newTemplatesImportCmd(client templatesClient) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.yaml>",
		Short: "Save every template of a YAML file",
		Long: `Save every template of a YAML file.

FORMAT:
    templates:
      - name: intro
        subject: Hello {{name}}
        body: |
          Hi {{name}}, ...`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}
			presets, err := formatter.ParsePresetsYAML(bytes.NewReader(data))
			if err != nil {
				return err
			}
			ws, err := client.Workspace()
			if err != nil {
				return err
			}
			for _, p := range presets {
				if err := ws.SaveTemplate(p); err != nil {
					return err
				}
			}
			colors.Success(fmt.Sprintf("Imported %d templates", len(presets)))
			return nil
		},
	}
}

func newTemplatesExportCmd(client templatesClient) *cobra.Command {
	var savedOnly bool

	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Print templates as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var presets []formatter.Preset
			if savedOnly {
				ws, err := client.Workspace()
				if err != nil {
					return err
				}
				if presets, err = ws.Templates(); err != nil {
					return err
				}
			} else {
				_, registry, err := client.Templates()
				if err != nil {
					return err
				}
				presets = registry.List()
			}
			data, err := formatter.MarshalPresetsYAML(presets)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	exportCmd.Flags().BoolVar(&savedOnly, "saved-only", false, "Export only saved templates")
	return exportCmd
}

func newTemplatesDeleteCmd(client templatesClient) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a saved template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := client.Workspace()
			if err != nil {
				return err
			}
			if err := ws.DeleteTemplate(args[0]); err != nil {
				return fmt.Errorf("template %q: %w", args[0], err)
			}
			colors.Success(fmt.Sprintf("Template %q deleted", args[0]))
			return nil
		},
	}
}

// readInput reads a file, or the command's stdin for "-".
func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	return os.ReadFile(path)
}

var templatesCmd = NewTemplatesCmd(leadClient)

func init() {
	cmd.RootCmd.AddCommand(templatesCmd)
}
