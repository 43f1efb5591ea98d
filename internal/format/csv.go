package format

import (
	"io"

	"github.com/cristianoliveira/leadnexus/internal/domain"
	"github.com/cristianoliveira/leadnexus/internal/leads"
)

// CSVFormatter formats the current page as CSV rows.
type CSVFormatter struct {
	// Columns overrides the exported column order.
	Columns []string
}

// NewCSVFormatter creates a new CSVFormatter with the default lead columns.
func NewCSVFormatter() *CSVFormatter {
	return &CSVFormatter{Columns: leads.DefaultColumns}
}

// FormatResult writes the current page, header first.
func (f *CSVFormatter) FormatResult(result domain.Result, writer io.Writer) error {
	return leads.WriteCSV(writer, result.Page.Items, f.Columns)
}
