package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/cristianoliveira/leadnexus/internal/domain"
	"github.com/cristianoliveira/leadnexus/internal/leads"
	"github.com/cristianoliveira/leadnexus/internal/logging"
	"github.com/cristianoliveira/leadnexus/internal/notification"
)

// DefaultPageSize is the number of leads shown per page.
const DefaultPageSize = 12

// ErrLoadFailed wraps source failures that were already reported to the
// notification queue.
var ErrLoadFailed = errors.New("loading leads failed")

// SearchInput holds the parsed search request.
type SearchInput struct {
	Criteria domain.FilterCriteria
	Page     int
	PageSize int
}

// SearchUseCase loads leads from a source and runs the local search pipeline.
type SearchUseCase struct {
	source leads.Source
	queue  *notification.Queue
}

// NewSearchUseCase creates a new search use-case. Failures are reported to queue.
func NewSearchUseCase(source leads.Source, queue *notification.Queue) *SearchUseCase {
	if source == nil {
		panic("NewSearchUseCase: source dependency cannot be nil")
	}
	if queue == nil {
		panic("NewSearchUseCase: queue dependency cannot be nil")
	}
	return &SearchUseCase{source: source, queue: queue}
}

// Load fetches the full lead list. A failure is enqueued as an error
// notification and returned.
func (u *SearchUseCase) Load(ctx context.Context) ([]domain.Record, error) {
	records, err := u.source.Load(ctx)
	if err != nil {
		logging.Error("loading leads failed", "source", leads.Describe(u.source), "error", err.Error())
		if _, qerr := u.queue.Enqueue(notification.Error("Failed to load leads", err)); qerr != nil {
			logging.Warn("enqueue notification failed", "error", qerr.Error())
		}
		return nil, fmt.Errorf("%w: %w", ErrLoadFailed, err)
	}
	logging.Debug("leads loaded", "source", leads.Describe(u.source), "count", len(records))
	return records, nil
}

// Execute loads leads and applies the criteria.
func (u *SearchUseCase) Execute(ctx context.Context, in SearchInput) (domain.Result, error) {
	records, err := u.Load(ctx)
	if err != nil {
		return domain.Result{}, err
	}
	return Run(records, in), nil
}

// Run applies a search to an already loaded lead list.
func Run(records []domain.Record, in SearchInput) domain.Result {
	pageSize := in.PageSize
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	result := domain.Apply(records, in.Criteria, in.Page, pageSize)
	logging.Debug("search applied",
		"fields", len(in.Criteria.ActiveFields()),
		"sort", in.Criteria.SortKey.String(),
		"matched", result.Matched,
		"page", result.Page.Number)
	return result
}
