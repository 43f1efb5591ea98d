// Package dedup finds duplicate leads by building comparison keys.
package dedup

import (
	"strings"

	"github.com/cristianoliveira/leadnexus/internal/domain"
)

// Criteria defines how lead duplicates are detected.
type Criteria string

const (
	// CriteriaEmail matches leads with the same email, ignoring case.
	CriteriaEmail Criteria = "email"
	// CriteriaMailboxName matches the same email local part and full name.
	CriteriaMailboxName Criteria = "mailbox_name"
	// CriteriaNameCompany matches the same full name at the same company.
	CriteriaNameCompany Criteria = "name_company"
	// CriteriaAny matches when any of the other criteria match.
	CriteriaAny Criteria = "any"
)

// ParseCriteria converts user-provided strings into a Criteria value.
// Unknown values fall back to CriteriaAny.
func ParseCriteria(value string) Criteria {
	switch Criteria(strings.ToLower(strings.TrimSpace(value))) {
	case CriteriaEmail:
		return CriteriaEmail
	case CriteriaMailboxName:
		return CriteriaMailboxName
	case CriteriaNameCompany:
		return CriteriaNameCompany
	default:
		return CriteriaAny
	}
}

// String returns the string value for Criteria.
func (c Criteria) String() string {
	return string(c)
}

// Group is a set of records considered the same lead. The first record is
// the one to keep.
type Group struct {
	Key     string          `json:"key"`
	Records []domain.Record `json:"records"`
}

// BuildKeys returns the comparison key of each record for a single criteria.
// Records missing a field the criteria needs get an empty key and never match.
// CriteriaAny is not a single key; it is treated as CriteriaEmail here.
func BuildKeys(records []domain.Record, criteria Criteria) []string {
	keys := make([]string, len(records))
	for i, r := range records {
		keys[i] = buildKey(r, criteria)
	}
	return keys
}

func buildKey(r domain.Record, criteria Criteria) string {
	email := normalize(r.Field(domain.FieldEmail))
	name := normalize(r.Field(domain.FieldFullName))
	switch criteria {
	case CriteriaMailboxName:
		mailbox, _, _ := strings.Cut(email, "@")
		if mailbox == "" || name == "" {
			return ""
		}
		return joinParts(mailbox, name)
	case CriteriaNameCompany:
		company := normalize(r.Field(domain.FieldCompanyName))
		if name == "" || company == "" {
			return ""
		}
		return joinParts(name, company)
	default:
		return email
	}
}

// Find returns groups of two or more duplicate records in first-seen order.
// With CriteriaAny a record joins the first earlier group it matches on any key.
func Find(records []domain.Record, criteria Criteria) []Group {
	groups := make([]Group, 0)
	for _, g := range findIndexes(records, criteria) {
		if len(g.members) < 2 {
			continue
		}
		members := make([]domain.Record, len(g.members))
		for i, idx := range g.members {
			members[i] = records[idx]
		}
		groups = append(groups, Group{Key: g.key, Records: members})
	}
	return groups
}

// Unique keeps the first record of every duplicate group, preserving input
// order, and returns the number of records dropped.
func Unique(records []domain.Record, criteria Criteria) ([]domain.Record, int) {
	kept := make([]domain.Record, 0, len(records))
	keep := make([]bool, len(records))
	for _, g := range findIndexes(records, criteria) {
		keep[g.members[0]] = true
	}
	for i, r := range records {
		if keep[i] {
			kept = append(kept, r)
		}
	}
	return kept, len(records) - len(kept)
}

type indexGroup struct {
	key     string
	members []int
}

func findIndexes(records []domain.Record, criteria Criteria) []indexGroup {
	criteriaSet := []Criteria{criteria}
	if criteria == CriteriaAny || criteria == "" {
		criteriaSet = []Criteria{CriteriaEmail, CriteriaMailboxName, CriteriaNameCompany}
	}

	owner := make(map[string]int)
	var groups []indexGroup
	for i, r := range records {
		target := -1
		var keys []string
		for _, c := range criteriaSet {
			k := buildKey(r, c)
			if k == "" {
				continue
			}
			k = string(c) + "\x1f" + k
			keys = append(keys, k)
			if idx, ok := owner[k]; ok && target == -1 {
				target = idx
			}
		}
		if target == -1 {
			g := indexGroup{members: []int{i}}
			if len(keys) > 0 {
				g.key = stripCriteria(keys[0])
			}
			groups = append(groups, g)
			target = len(groups) - 1
		} else {
			groups[target].members = append(groups[target].members, i)
		}
		for _, k := range keys {
			if _, ok := owner[k]; !ok {
				owner[k] = target
			}
		}
	}
	return groups
}

func normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

func joinParts(parts ...string) string {
	return strings.Join(parts, "\x00")
}

func stripCriteria(key string) string {
	if _, rest, ok := strings.Cut(key, "\x1f"); ok {
		key = rest
	}
	return strings.ReplaceAll(key, "\x00", " / ")
}
