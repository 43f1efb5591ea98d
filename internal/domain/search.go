package domain

// Result is the outcome of running criteria over a record list.
type Result struct {
	Page     Page
	Groups   []CompanyGroup
	Matched  int
	Criteria FilterCriteria
}

// Apply filters, sorts and paginates records. When the criteria ask for
// grouping, the current page is also partitioned by company.
func Apply(records []Record, criteria FilterCriteria, page, pageSize int) Result {
	matched := Sort(Filter(records, criteria), criteria.SortKey)
	result := Result{
		Page:     Paginate(matched, page, pageSize),
		Matched:  len(matched),
		Criteria: criteria,
	}
	if criteria.GroupByCompany {
		result.Groups = GroupByCompany(result.Page.Items)
	}
	return result
}
