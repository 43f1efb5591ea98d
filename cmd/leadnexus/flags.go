package main

import (
	"fmt"

	"github.com/cristianoliveira/leadnexus/internal/app"
	"github.com/cristianoliveira/leadnexus/internal/config"
	"github.com/cristianoliveira/leadnexus/internal/domain"
	"github.com/cristianoliveira/leadnexus/internal/search"
	"github.com/spf13/cobra"
)

// criteriaFlags are the filter flags shared by search, export and alerts.
type criteriaFlags struct {
	filters []string
	query   string
	sort    string
	group   bool
	saved   string
}

func (f *criteriaFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringArrayVarP(&f.filters, "filter", "f", nil, "Filter by field substring, as field=value (repeatable)")
	cmd.Flags().StringVarP(&f.query, "query", "q", "", "Query in prompt syntax, e.g. \"company:acme sort:score\"")
	cmd.Flags().StringVar(&f.sort, "sort", "", "Sort key: none, name, company, job_title, location, score")
	cmd.Flags().BoolVar(&f.group, "group-by-company", false, "Group the page by company")
	cmd.Flags().StringVar(&f.saved, "saved", "", "Start from a saved search (id or name)")
}

// criteria builds filter criteria. Layers apply in order: saved search or
// configured default sort, --query, --filter, then --sort and --group-by-company.
func (f *criteriaFlags) criteria(ws workspaceProvider) (domain.FilterCriteria, error) {
	var criteria domain.FilterCriteria
	if f.saved != "" {
		w, err := ws.Workspace()
		if err != nil {
			return criteria, err
		}
		saved, err := w.SavedSearch(f.saved)
		if err != nil {
			return criteria, fmt.Errorf("saved search %q: %w", f.saved, err)
		}
		criteria = saved.Criteria
	} else {
		key, err := domain.ParseSortKey(config.Get("default_sort", "none"))
		if err == nil {
			criteria.SortKey = key
		}
	}

	if f.query != "" {
		parsed, err := search.NewTokenProvider().Parse(f.query, criteria)
		if err != nil {
			return criteria, err
		}
		for field, pattern := range parsed.Fields {
			criteria = criteria.With(field, pattern)
		}
		criteria.SortKey = parsed.SortKey
		criteria.GroupByCompany = parsed.GroupByCompany
	}

	for _, expr := range f.filters {
		field, pattern, err := domain.ParseFieldFilter(expr)
		if err != nil {
			return criteria, err
		}
		criteria = criteria.With(field, pattern)
	}

	if f.sort != "" {
		key, err := domain.ParseSortKey(f.sort)
		if err != nil {
			return criteria, err
		}
		criteria.SortKey = key
	}
	if f.group {
		criteria.GroupByCompany = true
	}
	return criteria, nil
}

// pageSize returns n, or the configured page_size when n is not positive.
func pageSize(n int) int {
	if n > 0 {
		return n
	}
	return config.GetInt("page_size", app.DefaultPageSize)
}
