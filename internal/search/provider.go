// Package search turns free-form query strings into lead filter criteria.
// It backs the interactive search prompt and the CLI's --query flag so both
// accept the same syntax.
package search

import (
	"github.com/cristianoliveira/leadnexus/internal/domain"
)

// Provider defines the interface for query parsers.
type Provider interface {
	// Parse builds criteria from query. Field constraints come only from the
	// query; sort and grouping are inherited from base unless overridden.
	Parse(query string, base domain.FilterCriteria) (domain.FilterCriteria, error)

	// Format renders criteria back into a query that Parse accepts.
	Format(criteria domain.FilterCriteria) string

	// Name returns the provider name for identification and debugging.
	Name() string
}

// Options holds configuration options for creating search providers.
type Options struct {
	DefaultField string            // Field that receives free-text tokens
	Aliases      map[string]string // Short field names mapped to record fields
}

// DefaultOptions returns the default search options.
func DefaultOptions() Options {
	return Options{
		DefaultField: domain.FieldFullName,
		Aliases: map[string]string{
			"name":    domain.FieldFullName,
			"company": domain.FieldCompanyName,
			"title":   domain.FieldJobTitle,
			"job":     domain.FieldJobTitle,
			"loc":     domain.FieldLocation,
			"city":    domain.FieldLocation,
		},
	}
}

// Option is a function that modifies search options.
type Option func(*Options)

// WithDefaultField sets the field that free-text tokens filter on.
func WithDefaultField(field string) Option {
	return func(o *Options) {
		o.DefaultField = field
	}
}

// WithAliases adds field aliases, replacing existing entries with the same name.
func WithAliases(aliases map[string]string) Option {
	return func(o *Options) {
		for k, v := range aliases {
			o.Aliases[k] = v
		}
	}
}

// applyOptions applies the given options to the options struct.
func applyOptions(opts []Option) Options {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
