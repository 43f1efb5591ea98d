package search

import (
	"testing"

	"github.com/cristianoliveira/leadnexus/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()

	assert.Equal(t, domain.FieldFullName, opts.DefaultField)
	assert.Equal(t, domain.FieldCompanyName, opts.Aliases["company"])
}

func TestOptions(t *testing.T) {
	opts := applyOptions([]Option{
		WithDefaultField(domain.FieldEmail),
		WithAliases(map[string]string{"mail": domain.FieldEmail}),
	})

	assert.Equal(t, domain.FieldEmail, opts.DefaultField)
	assert.Equal(t, domain.FieldEmail, opts.Aliases["mail"])
	assert.Equal(t, domain.FieldJobTitle, opts.Aliases["title"])
}

func TestTokenProviderParse(t *testing.T) {
	tests := []struct {
		name   string
		query  string
		base   domain.FilterCriteria
		fields map[string]string
		sort   domain.SortKey
		group  bool
	}{
		{
			name:  "empty query keeps base sort and grouping",
			query: "  ",
			base:  domain.FilterCriteria{SortKey: domain.SortScore, GroupByCompany: true, Fields: map[string]string{"email": "x"}},
			sort:  domain.SortScore,
			group: true,
		},
		{
			name:   "free text goes to full name",
			query:  "ada  lovelace",
			fields: map[string]string{domain.FieldFullName: "ada lovelace"},
		},
		{
			name:   "field tokens resolve aliases",
			query:  "company:acme title:cto",
			fields: map[string]string{domain.FieldCompanyName: "acme", domain.FieldJobTitle: "cto"},
		},
		{
			name:   "unknown fields pass through",
			query:  "Industry:saas",
			fields: map[string]string{"industry": "saas"},
		},
		{
			name:   "value keeps extra colons",
			query:  "email:a:b",
			fields: map[string]string{domain.FieldEmail: "a:b"},
		},
		{
			name:   "leading colon is free text",
			query:  ":odd",
			fields: map[string]string{domain.FieldFullName: ":odd"},
		},
		{
			name:  "sort and group tokens",
			query: "sort:company group:company",
			sort:  domain.SortCompany,
			group: true,
		},
		{
			name:  "group none clears base grouping",
			query: "group:none",
			base:  domain.FilterCriteria{GroupByCompany: true},
		},
	}

	p := NewTokenProvider()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := p.Parse(tt.query, tt.base)
			require.NoError(t, err)

			if tt.fields == nil {
				assert.True(t, got.IsEmpty())
			} else {
				assert.Equal(t, tt.fields, got.Fields)
			}
			assert.Equal(t, tt.sort, got.SortKey)
			assert.Equal(t, tt.group, got.GroupByCompany)
		})
	}
}

func TestTokenProviderParseErrors(t *testing.T) {
	p := NewTokenProvider()
	base := domain.FilterCriteria{SortKey: domain.SortName}

	got, err := p.Parse("sort:salary", base)
	assert.Error(t, err)
	assert.Equal(t, base, got)

	_, err = p.Parse("group:city", base)
	assert.Error(t, err)
}

func TestTokenProviderFormatRoundTrip(t *testing.T) {
	p := NewTokenProvider()
	criteria := domain.FilterCriteria{
		Fields: map[string]string{
			domain.FieldCompanyName: "acme",
			domain.FieldFullName:    "ada",
			domain.FieldLocation:    "",
		},
		SortKey:        domain.SortScore,
		GroupByCompany: true,
	}

	query := p.Format(criteria)
	assert.Equal(t, "company_name:acme sort:score group:company ada", query)

	parsed, err := p.Parse(query, domain.FilterCriteria{})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{domain.FieldCompanyName: "acme", domain.FieldFullName: "ada"}, parsed.Fields)
	assert.Equal(t, domain.SortScore, parsed.SortKey)
	assert.True(t, parsed.GroupByCompany)
}

func TestTokenProviderName(t *testing.T) {
	assert.Equal(t, "token", NewTokenProvider().Name())
}
