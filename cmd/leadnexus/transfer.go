package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/cristianoliveira/leadnexus/cmd"
	"github.com/cristianoliveira/leadnexus/internal/colors"
	"github.com/cristianoliveira/leadnexus/internal/domain"
	"github.com/cristianoliveira/leadnexus/internal/hooks"
	"github.com/cristianoliveira/leadnexus/internal/leads"
	"github.com/cristianoliveira/leadnexus/internal/storage"
	"github.com/spf13/cobra"
)

const (
	exportJSON = "json"
	exportCSV  = "csv"
)

// NewImportCmd creates the import command with explicit dependencies.
func NewImportCmd(client hooksProvider) *cobra.Command {
	if client == nil {
		panic("NewImportCmd: client dependency cannot be nil")
	}

	var out string
	var outFormat string

	importCmd := &cobra.Command{
		Use:   "import <file.csv>",
		Short: "Clean a CSV lead export into JSON or CSV",
		Long: `Clean a CSV lead export into JSON or CSV.

Rows without a name or a valid email are skipped, emails are lowercased and
de-duplicated, job titles are trimmed to their first role and names are
title-cased. Use "-" to read from stdin.

Scripts in <hooks_dir>/leads-imported/ run afterwards with LEADNEXUS_IMPORTED,
LEADNEXUS_SKIPPED, LEADNEXUS_DUPLICATES and LEADNEXUS_OUTPUT set.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}
			res, err := leads.ReadCSV(strings.NewReader(string(data)))
			if err != nil {
				return err
			}
			if err := writeRecords(cmd, res.Records, out, outFormat); err != nil {
				return err
			}
			colors.Info(fmt.Sprintf("Imported %d leads (%d skipped, %d duplicates)", len(res.Records), res.Skipped, res.Duplicates))
			return client.Hooks().Run(cmd.Context(), hooks.PointLeadsImported, map[string]string{
				"LEADNEXUS_IMPORTED":   strconv.Itoa(len(res.Records)),
				"LEADNEXUS_SKIPPED":    strconv.Itoa(res.Skipped),
				"LEADNEXUS_DUPLICATES": strconv.Itoa(res.Duplicates),
				"LEADNEXUS_OUTPUT":     out,
			})
		},
	}

	importCmd.Flags().StringVarP(&out, "out", "o", "", "Write to this file instead of stdout")
	importCmd.Flags().StringVar(&outFormat, "format", "", "Output format: json, csv (default: from --out extension, else json)")
	return importCmd
}

// NewExportCmd creates the export command with explicit dependencies.
func NewExportCmd(client searchClient) *cobra.Command {
	if client == nil {
		panic("NewExportCmd: client dependency cannot be nil")
	}

	var flags criteriaFlags
	var source string
	var out string
	var outFormat string

	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Write every lead matching a search to JSON or CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			criteria, err := flags.criteria(client)
			if err != nil {
				return err
			}
			records, err := client.LoadLeads(cmd.Context(), source)
			if err != nil {
				return err
			}
			matched := domain.Sort(domain.Filter(records, criteria), criteria.SortKey)
			if err := writeRecords(cmd, matched, out, outFormat); err != nil {
				return err
			}
			if out != "" {
				colors.Success(fmt.Sprintf("Exported %d leads to %s", len(matched), out))
			}
			return nil
		},
	}

	flags.register(exportCmd)
	exportCmd.Flags().StringVarP(&source, "source", "s", "", "Lead file (.json, .csv) or backend URL (default: leads_source config)")
	exportCmd.Flags().StringVarP(&out, "out", "o", "", "Write to this file instead of stdout")
	exportCmd.Flags().StringVar(&outFormat, "format", "", "Output format: json, csv (default: from --out extension, else json)")
	return exportCmd
}

// writeRecords writes records to path, or stdout when path is empty.
func writeRecords(cmd *cobra.Command, records []domain.Record, path, outFormat string) error {
	outFormat = strings.ToLower(outFormat)
	if outFormat == "" {
		outFormat = exportJSON
		if strings.EqualFold(filepath.Ext(path), ".csv") {
			outFormat = exportCSV
		}
	}
	if outFormat != exportJSON && outFormat != exportCSV {
		return fmt.Errorf("unsupported export format %q: expected json or csv", outFormat)
	}

	var w io.Writer = cmd.OutOrStdout()
	if path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, storage.FileModeFile)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}

	if outFormat == exportCSV {
		return leads.WriteCSV(w, records, nil)
	}
	return leads.WriteJSON(w, records)
}

var (
	importCmd = NewImportCmd(leadClient)
	exportCmd = NewExportCmd(leadClient)
)

func init() {
	cmd.RootCmd.AddCommand(importCmd, exportCmd)
}
