package domain

// CompanyGroup represents the records sharing one company name.
type CompanyGroup struct {
	Company string
	Records []Record
}

// Count returns the number of records in the group.
func (g CompanyGroup) Count() int {
	return len(g.Records)
}

// DisplayName returns the company name, or a marker for records without one.
func (g CompanyGroup) DisplayName() string {
	if g.Company == "" {
		return "(no company)"
	}
	return g.Company
}

// GroupByCompany partitions records by exact company name.
// Groups appear in first-seen order and keep the input order of their members.
func GroupByCompany(records []Record) []CompanyGroup {
	groups := make([]CompanyGroup, 0)
	index := make(map[string]int)
	for _, r := range records {
		company := r.Field(FieldCompanyName)
		i, ok := index[company]
		if !ok {
			i = len(groups)
			index[company] = i
			groups = append(groups, CompanyGroup{Company: company})
		}
		groups[i].Records = append(groups[i].Records, r)
	}
	return groups
}

// GroupCounts returns a map of company names to their record counts.
func GroupCounts(records []Record) map[string]int {
	counts := make(map[string]int)
	for _, r := range records {
		counts[r.Field(FieldCompanyName)]++
	}
	return counts
}
