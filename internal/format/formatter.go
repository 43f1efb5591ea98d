// Package format provides output formatting for CLI commands.
// It renders search results, template previews and notifications.
package format

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/cristianoliveira/leadnexus/internal/domain"
)

// ErrUnknownFormat is returned for an unsupported output format name.
var ErrUnknownFormat = errors.New("unknown output format")

// Formatter defines the interface for search result formatters.
type Formatter interface {
	// FormatResult writes a page of search results to the writer.
	FormatResult(result domain.Result, writer io.Writer) error
}

// FormatterType represents the type of formatter to use.
type FormatterType string

const (
	// FormatterTypeTable displays leads in an aligned table with headers.
	FormatterTypeTable FormatterType = "table"

	// FormatterTypeJSON displays the result page as a JSON document.
	FormatterTypeJSON FormatterType = "json"

	// FormatterTypeCSV displays the current page as CSV rows.
	FormatterTypeCSV FormatterType = "csv"
)

// ParseFormatterType validates a format name.
func ParseFormatterType(name string) (FormatterType, error) {
	t := FormatterType(strings.ToLower(strings.TrimSpace(name)))
	switch t {
	case "":
		return FormatterTypeTable, nil
	case FormatterTypeTable, FormatterTypeJSON, FormatterTypeCSV:
		return t, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownFormat, name)
}

// NewFormatter creates a new formatter of the specified type.
func NewFormatter(formatterType FormatterType) Formatter {
	switch formatterType {
	case FormatterTypeJSON:
		return NewJSONFormatter()
	case FormatterTypeCSV:
		return NewCSVFormatter()
	default:
		return NewTableFormatter()
	}
}
