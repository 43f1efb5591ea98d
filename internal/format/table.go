package format

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/cristianoliveira/leadnexus/internal/colors"
	"github.com/cristianoliveira/leadnexus/internal/domain"
	"github.com/muesli/reflow/ansi"
	"github.com/muesli/reflow/padding"
	"github.com/muesli/reflow/truncate"
)

const ellipsis = "..."

// TableConfig holds configuration for table formatting.
type TableConfig struct {
	// ShowHeaders determines whether to show column headers.
	ShowHeaders bool

	// HeaderColor is the color to use for headers.
	HeaderColor string

	// ColumnWidths defines the width for each column.
	ColumnWidths map[string]int

	// ColumnAlignments defines the alignment for each column (left, right).
	ColumnAlignments map[string]string
}

// DefaultTableConfig returns a default table configuration.
func DefaultTableConfig() *TableConfig {
	return &TableConfig{
		ShowHeaders: true,
		HeaderColor: colors.Blue,
		ColumnWidths: map[string]int{
			"Name":     22,
			"Email":    28,
			"Title":    22,
			"Company":  20,
			"Location": 16,
			"Score":    5,
		},
		ColumnAlignments: map[string]string{
			"Score": "right",
		},
	}
}

// TableColumn represents a column in a table.
type TableColumn struct {
	// Name is the column name displayed in the header.
	Name string

	// Width is the column width in characters.
	Width int

	// Alignment is the text alignment (left, right).
	Alignment string

	// Extractor extracts the value from a lead record.
	Extractor func(domain.Record) string
}

// TableFormatter renders leads as an aligned table.
type TableFormatter struct {
	config  *TableConfig
	columns []TableColumn
}

// NewTableFormatter creates a new TableFormatter with the default lead columns.
func NewTableFormatter() *TableFormatter {
	config := DefaultTableConfig()
	column := func(name, field string) TableColumn {
		return TableColumn{
			Name:      name,
			Width:     config.ColumnWidths[name],
			Alignment: config.ColumnAlignments[name],
			Extractor: func(r domain.Record) string { return r.Field(field) },
		}
	}
	columns := []TableColumn{
		column("Name", domain.FieldFullName),
		column("Email", domain.FieldEmail),
		column("Title", domain.FieldJobTitle),
		column("Company", domain.FieldCompanyName),
		column("Location", domain.FieldLocation),
		{
			Name:      "Score",
			Width:     config.ColumnWidths["Score"],
			Alignment: config.ColumnAlignments["Score"],
			Extractor: func(r domain.Record) string {
				score, ok := r.Number(domain.FieldLeadScore)
				if !ok {
					return ""
				}
				return strconv.FormatFloat(score, 'f', -1, 64)
			},
		},
	}
	return &TableFormatter{config: config, columns: columns}
}

// WithColumns adds custom columns to the formatter.
func (f *TableFormatter) WithColumns(columns ...TableColumn) *TableFormatter {
	f.columns = append(f.columns, columns...)
	return f
}

// FormatResult writes the page as a table, one block per company when the
// result is grouped, followed by a page summary line.
func (f *TableFormatter) FormatResult(result domain.Result, writer io.Writer) error {
	if result.Matched == 0 {
		_, err := fmt.Fprintln(writer, "No leads match the current filters.")
		return err
	}

	if result.Criteria.GroupByCompany {
		for _, group := range result.Groups {
			if _, err := fmt.Fprintf(writer, "=== %s (%d) ===\n", group.DisplayName(), group.Count()); err != nil {
				return err
			}
			if err := f.FormatRecords(group.Records, writer); err != nil {
				return err
			}
		}
	} else if err := f.FormatRecords(result.Page.Items, writer); err != nil {
		return err
	}

	_, err := fmt.Fprintf(writer, "\nPage %d of %d (%d matching leads)\n",
		result.Page.Number, result.Page.PageCount(), result.Matched)
	return err
}

// FormatRecords writes records as table rows under a header.
func (f *TableFormatter) FormatRecords(records []domain.Record, writer io.Writer) error {
	if len(records) == 0 {
		return nil
	}

	if f.config.ShowHeaders {
		if err := f.writeLine(writer, f.config.HeaderColor, func(col TableColumn) string {
			return formatString(col.Name, col.Width, "left")
		}); err != nil {
			return err
		}
		if err := f.writeLine(writer, f.config.HeaderColor, func(col TableColumn) string {
			return makeSeparator(col.Width)
		}); err != nil {
			return err
		}
	}

	for _, r := range records {
		if err := f.writeLine(writer, "", func(col TableColumn) string {
			return formatString(col.Extractor(r), col.Width, col.Alignment)
		}); err != nil {
			return err
		}
	}
	return nil
}

func (f *TableFormatter) writeLine(writer io.Writer, color string, cell func(TableColumn) string) error {
	for i, col := range f.columns {
		sep := "  "
		if i == 0 {
			sep = ""
		}
		value := cell(col)
		if color != "" {
			value = color + value + colors.Reset
		}
		if _, err := fmt.Fprintf(writer, "%s%s", sep, value); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(writer)
	return err
}

// formatString fits s into width cells, truncating with an ellipsis and
// padding according to alignment.
func formatString(s string, width int, alignment string) string {
	if width <= 0 {
		return s
	}
	s = truncateString(s, width)
	if alignment == "right" {
		return strings.Repeat(" ", width-ansi.PrintableRuneWidth(s)) + s
	}
	return padding.String(s, uint(width))
}

// truncateString shortens s to width cells, ending in "..." when cut.
func truncateString(s string, width int) string {
	if ansi.PrintableRuneWidth(s) <= width {
		return s
	}
	if width < len(ellipsis) {
		return truncate.String(s, uint(width))
	}
	return truncate.StringWithTail(s, uint(width), ellipsis)
}

// makeSeparator creates a separator line of the specified width.
func makeSeparator(width int) string {
	return strings.Repeat("-", width)
}
