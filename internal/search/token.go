package search

import (
	"fmt"
	"strings"

	"github.com/cristianoliveira/leadnexus/internal/domain"
)

const (
	sortToken  = "sort"
	groupToken = "group"
)

// TokenProvider parses whitespace-separated tokens.
// A "field:value" token filters field by value; every other token is free
// text, joined with single spaces and applied to the default field.
// Special tokens: "sort:<key>" sets the sort key, "group:company" turns on
// company grouping and "group:none" turns it off.
type TokenProvider struct {
	opts Options
}

// NewTokenProvider creates a new token query parser.
func NewTokenProvider(opts ...Option) Provider {
	return &TokenProvider{
		opts: applyOptions(opts),
	}
}

// Parse builds filter criteria from query.
func (p *TokenProvider) Parse(query string, base domain.FilterCriteria) (domain.FilterCriteria, error) {
	criteria := domain.FilterCriteria{
		SortKey:        base.SortKey,
		GroupByCompany: base.GroupByCompany,
	}
	var freeText []string

	for _, token := range strings.Fields(query) {
		field, value, ok := strings.Cut(token, ":")
		if !ok || field == "" {
			freeText = append(freeText, token)
			continue
		}
		field = strings.ToLower(field)

		switch field {
		case sortToken:
			key, err := domain.ParseSortKey(value)
			if err != nil {
				return base, err
			}
			criteria.SortKey = key
		case groupToken:
			switch strings.ToLower(value) {
			case "company":
				criteria.GroupByCompany = true
			case "none", "off":
				criteria.GroupByCompany = false
			default:
				return base, fmt.Errorf("invalid grouping %q: expected company or none", value)
			}
		default:
			criteria = criteria.With(p.resolve(field), value)
		}
	}

	if len(freeText) > 0 {
		criteria = criteria.With(p.opts.DefaultField, strings.Join(freeText, " "))
	}
	return criteria, nil
}

// Format renders criteria back into query syntax. Field constraints are
// written in name order, free text last.
func (p *TokenProvider) Format(criteria domain.FilterCriteria) string {
	var parts []string
	var freeText string
	for _, field := range criteria.ActiveFields() {
		value := criteria.Fields[field]
		if field == p.opts.DefaultField {
			freeText = value
			continue
		}
		parts = append(parts, field+":"+value)
	}
	if criteria.SortKey != domain.SortNone {
		parts = append(parts, sortToken+":"+criteria.SortKey.String())
	}
	if criteria.GroupByCompany {
		parts = append(parts, groupToken+":company")
	}
	if freeText != "" {
		parts = append(parts, freeText)
	}
	return strings.Join(parts, " ")
}

// Name returns the provider name.
func (p *TokenProvider) Name() string {
	return "token"
}

func (p *TokenProvider) resolve(field string) string {
	if alias, ok := p.opts.Aliases[field]; ok {
		return alias
	}
	return field
}
