// Package domain provides the domain layer for lead records.
// It contains the record model and the pure filter, sort, group and paginate
// operations applied to an already-fetched lead list.
package domain

import (
	"fmt"
	"math"
	"strconv"
)

// Well-known lead field names as served by the backend.
const (
	FieldID          = "id"
	FieldFullName    = "full_name"
	FieldEmail       = "email"
	FieldJobTitle    = "job_title"
	FieldCompanyName = "company_name"
	FieldLocation    = "location"
	FieldDomain      = "domain"
	FieldLeadScore   = "lead_score"
)

// Record is an opaque named-field item. Values are strings, numbers or nil.
type Record map[string]any

// Text returns the field rendered as text. Numbers use their shortest decimal
// form. The second result is false when the field is absent or nil.
func (r Record) Text(field string) (string, bool) {
	v, ok := r[field]
	if !ok || v == nil {
		return "", false
	}
	switch typed := v.(type) {
	case string:
		return typed, true
	case bool:
		return strconv.FormatBool(typed), true
	}
	if n, ok := toFloat(v); ok {
		return strconv.FormatFloat(n, 'f', -1, 64), true
	}
	return fmt.Sprint(v), true
}

// Number returns the field as a float64. Strings are not parsed.
func (r Record) Number(field string) (float64, bool) {
	v, ok := r[field]
	if !ok || v == nil {
		return 0, false
	}
	n, ok := toFloat(v)
	if !ok || math.IsNaN(n) {
		return 0, false
	}
	return n, true
}

// Field returns the text value of a field or the empty string.
func (r Record) Field(field string) string {
	s, _ := r.Text(field)
	return s
}

// Clone returns a shallow copy of the record.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	default:
		return 0, false
	}
}

// Lead is the typed view of a lead record.
type Lead struct {
	ID          string   `json:"id"`
	FullName    string   `json:"full_name"`
	Email       string   `json:"email"`
	JobTitle    string   `json:"job_title"`
	CompanyName string   `json:"company_name"`
	Location    string   `json:"location,omitempty"`
	Domain      string   `json:"domain,omitempty"`
	LeadScore   *float64 `json:"lead_score,omitempty"`
}

// ToRecord converts the lead to a Record. Empty optional fields are omitted.
func (l Lead) ToRecord() Record {
	r := Record{
		FieldFullName:    l.FullName,
		FieldEmail:       l.Email,
		FieldJobTitle:    l.JobTitle,
		FieldCompanyName: l.CompanyName,
	}
	if l.ID != "" {
		r[FieldID] = l.ID
	}
	if l.Location != "" {
		r[FieldLocation] = l.Location
	}
	if l.Domain != "" {
		r[FieldDomain] = l.Domain
	}
	if l.LeadScore != nil {
		r[FieldLeadScore] = *l.LeadScore
	}
	return r
}

// LeadFromRecord builds a Lead from the well-known fields of a record.
func LeadFromRecord(r Record) Lead {
	l := Lead{
		ID:          r.Field(FieldID),
		FullName:    r.Field(FieldFullName),
		Email:       r.Field(FieldEmail),
		JobTitle:    r.Field(FieldJobTitle),
		CompanyName: r.Field(FieldCompanyName),
		Location:    r.Field(FieldLocation),
		Domain:      r.Field(FieldDomain),
	}
	if score, ok := r.Number(FieldLeadScore); ok {
		l.LeadScore = &score
	}
	return l
}
