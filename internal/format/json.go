package format

import (
	"encoding/json"
	"io"

	"github.com/cristianoliveira/leadnexus/internal/domain"
)

// JSONFormatter formats a result page as a JSON document.
type JSONFormatter struct {
	// Indent is the indentation used for each nesting level.
	Indent string
}

// NewJSONFormatter creates a new JSONFormatter.
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{Indent: "  "}
}

type jsonGroup struct {
	Company string          `json:"company"`
	Count   int             `json:"count"`
	Leads   []domain.Record `json:"leads"`
}

type jsonResult struct {
	Page      int                   `json:"page"`
	PageSize  int                   `json:"page_size"`
	PageCount int                   `json:"page_count"`
	Total     int                   `json:"total"`
	HasNext   bool                  `json:"has_next"`
	Criteria  domain.FilterCriteria `json:"criteria"`
	Leads     []domain.Record       `json:"leads"`
	Groups    []jsonGroup           `json:"groups,omitempty"`
}

// FormatResult writes the page and its pagination metadata as JSON.
func (f *JSONFormatter) FormatResult(result domain.Result, writer io.Writer) error {
	out := jsonResult{
		Page:      result.Page.Number,
		PageSize:  result.Page.PageSize,
		PageCount: result.Page.PageCount(),
		Total:     result.Matched,
		HasNext:   result.Page.HasNext(),
		Criteria:  result.Criteria,
		Leads:     result.Page.Items,
	}
	if out.Leads == nil {
		out.Leads = []domain.Record{}
	}
	for _, g := range result.Groups {
		out.Groups = append(out.Groups, jsonGroup{
			Company: g.DisplayName(),
			Count:   g.Count(),
			Leads:   g.Records,
		})
	}
	return writeJSON(writer, out, f.Indent)
}

func writeJSON(writer io.Writer, v any, indent string) error {
	enc := json.NewEncoder(writer)
	enc.SetIndent("", indent)
	return enc.Encode(v)
}
