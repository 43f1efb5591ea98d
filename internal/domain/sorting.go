package domain

import (
	"fmt"
	"sort"
	"strings"
)

// SortKey specifies which field to sort records by.
type SortKey string

const (
	SortNone     SortKey = ""
	SortName     SortKey = "name"
	SortCompany  SortKey = "company"
	SortJobTitle SortKey = "job_title"
	SortLocation SortKey = "location"
	SortScore    SortKey = "score"
)

// IsValid checks if the sort key is known. The empty key is valid.
func (k SortKey) IsValid() bool {
	switch k {
	case SortNone, SortName, SortCompany, SortJobTitle, SortLocation, SortScore:
		return true
	default:
		return false
	}
}

// String returns the string representation of the sort key.
func (k SortKey) String() string {
	return string(k)
}

// Field returns the record field the key orders by.
func (k SortKey) Field() string {
	switch k {
	case SortName:
		return FieldFullName
	case SortCompany:
		return FieldCompanyName
	case SortJobTitle:
		return FieldJobTitle
	case SortLocation:
		return FieldLocation
	case SortScore:
		return FieldLeadScore
	default:
		return ""
	}
}

// SortKeys lists the sort keys in display order.
func SortKeys() []SortKey {
	return []SortKey{SortNone, SortName, SortCompany, SortJobTitle, SortLocation, SortScore}
}

// ParseSortKey parses a string into a SortKey. "none" maps to SortNone.
func ParseSortKey(key string) (SortKey, error) {
	key = strings.ToLower(strings.TrimSpace(key))
	if key == "none" {
		return SortNone, nil
	}
	k := SortKey(key)
	if !k.IsValid() {
		return "", fmt.Errorf("invalid sort key: %s", key)
	}
	return k, nil
}

// Sort orders records by the given key and returns a new slice.
// Text keys sort ascending by byte order; score sorts descending with
// unscored records last. Unknown or empty keys keep the input order.
// Ties always keep their input order.
func Sort(records []Record, key SortKey) []Record {
	sorted := make([]Record, len(records))
	copy(sorted, records)
	if key == SortNone || !key.IsValid() || len(sorted) < 2 {
		return sorted
	}

	field := key.Field()
	if key == SortScore {
		sort.SliceStable(sorted, func(i, j int) bool {
			return lessByScore(sorted[i], sorted[j], field)
		})
		return sorted
	}

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Field(field) < sorted[j].Field(field)
	})
	return sorted
}

// lessByScore orders scored records before unscored ones, higher scores first.
func lessByScore(a, b Record, field string) bool {
	sa, okA := a.Number(field)
	sb, okB := b.Number(field)
	switch {
	case okA && okB:
		return sa > sb
	case okA:
		return true
	default:
		return false
	}
}
