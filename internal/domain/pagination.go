package domain

// Page is one slice of a result plus the size of the unpaginated input.
type Page struct {
	Items    []Record
	Total    int
	Number   int
	PageSize int
}

// PageCount returns the number of pages needed for Total items.
func (p Page) PageCount() int {
	if p.PageSize <= 0 || p.Total == 0 {
		return 0
	}
	return pageCount(p.Total, p.PageSize)
}

// pageCount is the ceiling of total/size without overflowing near math.MaxInt.
func pageCount(total, size int) int {
	if total == 0 {
		return 0
	}
	return (total-1)/size + 1
}

// HasNext reports whether a page follows this one.
func (p Page) HasNext() bool {
	return p.Number < p.PageCount()
}

// Paginate returns the 1-indexed page of the given size.
// page < 1 and pageSize < 1 are clamped to 1. Pages past the end are empty.
func Paginate(records []Record, page, pageSize int) Page {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 1
	}
	result := Page{
		Items:    []Record{},
		Total:    len(records),
		Number:   page,
		PageSize: pageSize,
	}

	// Compare page indexes before multiplying so huge pages cannot overflow.
	if page-1 >= pageCount(len(records), pageSize) {
		return result
	}
	start := (page - 1) * pageSize
	end := start + pageSize
	if end > len(records) {
		end = len(records)
	}
	result.Items = append(result.Items, records[start:end]...)
	return result
}
