package main

import (
	"encoding/json"
	"fmt"

	"github.com/cristianoliveira/leadnexus/cmd"
	"github.com/cristianoliveira/leadnexus/internal/dedup"
	"github.com/cristianoliveira/leadnexus/internal/domain"
	"github.com/spf13/cobra"
)

// NewDuplicatesCmd creates the duplicates command with explicit dependencies.
func NewDuplicatesCmd(client leadLoader) *cobra.Command {
	if client == nil {
		panic("NewDuplicatesCmd: client dependency cannot be nil")
	}

	var source string
	var by string
	var asJSON bool

	duplicatesCmd := &cobra.Command{
		Use:   "duplicates",
		Short: "Find leads that appear more than once",
		Long: `Find leads that appear more than once.

CRITERIA:
    email         Same email address, ignoring case
    mailbox_name  Same email local part and full name
    name_company  Same full name at the same company
    any           Any of the above (default)`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := client.LoadLeads(cmd.Context(), source)
			if err != nil {
				return err
			}
			groups := dedup.Find(records, dedup.ParseCriteria(by))

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(groups)
			}
			if len(groups) == 0 {
				fmt.Fprintln(out, "No duplicates found")
				return nil
			}
			for _, g := range groups {
				fmt.Fprintf(out, "=== %s (%d) ===\n", g.Key, len(g.Records))
				for _, r := range g.Records {
					fmt.Fprintf(out, "  %-24s  %-30s  %s\n",
						r.Field(domain.FieldFullName), r.Field(domain.FieldEmail), r.Field(domain.FieldCompanyName))
				}
			}
			return nil
		},
	}

	duplicatesCmd.Flags().StringVarP(&source, "source", "s", "", "Lead file (.json, .csv) or backend URL (default: leads_source config)")
	duplicatesCmd.Flags().StringVar(&by, "by", string(dedup.CriteriaAny), "Duplicate criteria: email, mailbox_name, name_company, any")
	duplicatesCmd.Flags().BoolVar(&asJSON, "json", false, "Print groups as JSON")
	return duplicatesCmd
}

var duplicatesCmd = NewDuplicatesCmd(leadClient)

func init() {
	cmd.RootCmd.AddCommand(duplicatesCmd)
}
