package domain

import (
	"fmt"
	"sort"
	"strings"
)

// FilterCriteria holds per-field substring constraints plus sort and group directives.
type FilterCriteria struct {
	Fields         map[string]string `json:"fields,omitempty"`
	SortKey        SortKey           `json:"sort_key,omitempty"`
	GroupByCompany bool              `json:"group_by_company,omitempty"`
}

// IsEmpty returns true if no field constraint is set.
func (c FilterCriteria) IsEmpty() bool {
	for _, pattern := range c.Fields {
		if pattern != "" {
			return false
		}
	}
	return true
}

// ActiveFields returns the names of the fields with a non-empty constraint, sorted.
func (c FilterCriteria) ActiveFields() []string {
	fields := make([]string, 0, len(c.Fields))
	for field, pattern := range c.Fields {
		if pattern != "" {
			fields = append(fields, field)
		}
	}
	sort.Strings(fields)
	return fields
}

// With returns a copy of the criteria with one more field constraint.
func (c FilterCriteria) With(field, pattern string) FilterCriteria {
	fields := make(map[string]string, len(c.Fields)+1)
	for k, v := range c.Fields {
		fields[k] = v
	}
	fields[field] = pattern
	c.Fields = fields
	return c
}

// Matches checks if the record satisfies every non-empty field constraint.
func (c FilterCriteria) Matches(r Record) bool {
	for field, pattern := range c.Fields {
		if pattern == "" {
			continue
		}
		value, ok := r.Text(field)
		if !ok {
			return false
		}
		if !strings.Contains(strings.ToLower(value), strings.ToLower(pattern)) {
			return false
		}
	}
	return true
}

// Filter returns the records matching all active constraints.
// Returns a new slice; the input is never modified.
func Filter(records []Record, criteria FilterCriteria) []Record {
	result := make([]Record, 0, len(records))
	if criteria.IsEmpty() {
		return append(result, records...)
	}
	for _, r := range records {
		if criteria.Matches(r) {
			result = append(result, r)
		}
	}
	return result
}

// ParseFieldFilter parses a "field=pattern" expression.
func ParseFieldFilter(expr string) (string, string, error) {
	field, pattern, ok := strings.Cut(expr, "=")
	if !ok {
		return "", "", fmt.Errorf("invalid filter %q: expected field=value", expr)
	}
	field = strings.TrimSpace(field)
	if field == "" {
		return "", "", fmt.Errorf("invalid filter %q: field cannot be empty", expr)
	}
	return field, pattern, nil
}
