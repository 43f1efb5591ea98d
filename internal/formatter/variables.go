// Package formatter provides template parsing, token binding and preset management
// for rendering email previews from lead records.
package formatter

import (
	"strings"

	"github.com/cristianoliveira/leadnexus/internal/domain"
)

// Token names of the email-preview binding set.
const (
	TokenName     = "name"
	TokenFullName = "full_name"
	TokenCompany  = "company"
	TokenJobTitle = "job_title"
	TokenLocation = "location"
	TokenEmail    = "email"
)

// LocationFallback is bound to {{location}} when a lead has no location.
const LocationFallback = "[Location]"

// Tokens lists the tokens of the email-preview binding set.
func Tokens() []string {
	return []string{TokenName, TokenFullName, TokenCompany, TokenJobTitle, TokenLocation, TokenEmail}
}

// LeadBindings builds the email-preview bindings for a lead record.
// Fields the record lacks stay unbound, except location which falls back
// to LocationFallback.
func LeadBindings(r domain.Record) map[string]string {
	bindings := make(map[string]string, 6)

	if fullName, ok := nonEmpty(r, domain.FieldFullName); ok {
		bindings[TokenFullName] = fullName
		bindings[TokenName] = FirstName(fullName)
	}
	if company, ok := nonEmpty(r, domain.FieldCompanyName); ok {
		bindings[TokenCompany] = company
	}
	if title, ok := nonEmpty(r, domain.FieldJobTitle); ok {
		bindings[TokenJobTitle] = NormalizeJobTitle(title)
	}
	if email, ok := nonEmpty(r, domain.FieldEmail); ok {
		bindings[TokenEmail] = email
	}
	bindings[TokenLocation] = LocationFallback
	if location, ok := nonEmpty(r, domain.FieldLocation); ok {
		bindings[TokenLocation] = location
	}

	return bindings
}

// FirstName returns the first whitespace-delimited word, or the whole value
// when it has no whitespace.
func FirstName(fullName string) string {
	fields := strings.Fields(fullName)
	if len(fields) == 0 {
		return fullName
	}
	return fields[0]
}

// NormalizeJobTitle rejoins comma-separated titles as "a, b", trimming each
// segment, collapsing inner whitespace and dropping empty segments.
func NormalizeJobTitle(title string) string {
	parts := strings.Split(title, ",")
	cleaned := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.Join(strings.Fields(part), " ")
		if part != "" {
			cleaned = append(cleaned, part)
		}
	}
	return strings.Join(cleaned, ", ")
}

func nonEmpty(r domain.Record, field string) (string, bool) {
	value, ok := r.Text(field)
	if !ok || strings.TrimSpace(value) == "" {
		return "", false
	}
	return value, true
}
