package dedup

import (
	"testing"

	"github.com/cristianoliveira/leadnexus/internal/domain"
	"github.com/stretchr/testify/require"
)

func lead(name, email, company string) domain.Record {
	return domain.Record{
		domain.FieldFullName:    name,
		domain.FieldEmail:       email,
		domain.FieldCompanyName: company,
	}
}

func names(records []domain.Record) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Field(domain.FieldFullName)
	}
	return out
}

func TestParseCriteria(t *testing.T) {
	require.Equal(t, CriteriaEmail, ParseCriteria("EMAIL"))
	require.Equal(t, CriteriaNameCompany, ParseCriteria(" name_company "))
	require.Equal(t, CriteriaAny, ParseCriteria("whatever"))
}

func TestBuildKeysCriteria(t *testing.T) {
	records := []domain.Record{
		lead("Sam  Carter", "Sam@Acme.io", "Acme"),
		lead("", "li@acme.io", ""),
	}

	require.Equal(t, []string{"sam@acme.io", "li@acme.io"}, BuildKeys(records, CriteriaEmail))
	require.Equal(t, []string{"sam\x00sam carter", ""}, BuildKeys(records, CriteriaMailboxName))
	require.Equal(t, []string{"sam carter\x00acme", ""}, BuildKeys(records, CriteriaNameCompany))
}

func TestFindByEmail(t *testing.T) {
	records := []domain.Record{
		lead("Sam Carter", "sam@acme.io", "Acme"),
		lead("Ana Souza", "ana@globex.com", "Globex"),
		lead("Samuel Carter", "SAM@acme.io", "Acme Corp"),
	}

	groups := Find(records, CriteriaEmail)
	require.Len(t, groups, 1)
	require.Equal(t, "sam@acme.io", groups[0].Key)
	require.Equal(t, []string{"Sam Carter", "Samuel Carter"}, names(groups[0].Records))
}

func TestFindAnyCriteria(t *testing.T) {
	records := []domain.Record{
		lead("Sam Carter", "sam@acme.io", "Acme"),
		lead("Sam Carter", "sam@gmail.com", "Freelance"),
		lead("Ana Souza", "ana@globex.com", "Globex"),
		lead("ana souza", "a.souza@globex.com", "Globex"),
		lead("Li Wei", "li@initech.com", "Initech"),
	}

	groups := Find(records, CriteriaAny)
	require.Len(t, groups, 2)
	require.Equal(t, []string{"Sam Carter", "Sam Carter"}, names(groups[0].Records))
	require.Equal(t, []string{"Ana Souza", "ana souza"}, names(groups[1].Records))
}

func TestFindNoDuplicates(t *testing.T) {
	groups := Find([]domain.Record{lead("A", "a@x.io", "X")}, CriteriaAny)
	require.NotNil(t, groups)
	require.Empty(t, groups)
}

func TestUnique(t *testing.T) {
	records := []domain.Record{
		lead("Sam Carter", "sam@acme.io", "Acme"),
		lead("Ana Souza", "ana@globex.com", "Globex"),
		lead("Sam C", "sam@acme.io", "Acme"),
		lead("No Email", "", "Acme"),
		lead("Also No Email", "", "Acme"),
	}

	kept, dropped := Unique(records, CriteriaEmail)
	require.Equal(t, 1, dropped)
	require.Equal(t, []string{"Sam Carter", "Ana Souza", "No Email", "Also No Email"}, names(kept))
}
