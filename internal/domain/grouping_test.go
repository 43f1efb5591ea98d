package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupByCompany(t *testing.T) {
	input := []Record{
		{FieldFullName: "a", FieldCompanyName: "Globex"},
		{FieldFullName: "b", FieldCompanyName: "Acme"},
		{FieldFullName: "c", FieldCompanyName: "Globex"},
		{FieldFullName: "d", FieldCompanyName: "acme"},
		{FieldFullName: "e"},
		{FieldFullName: "f", FieldCompanyName: "Acme"},
	}

	groups := GroupByCompany(input)

	require.Len(t, groups, 4)
	assert.Equal(t, "Globex", groups[0].Company)
	assert.Equal(t, []string{"a", "c"}, names(groups[0].Records))
	assert.Equal(t, "Acme", groups[1].Company)
	assert.Equal(t, []string{"b", "f"}, names(groups[1].Records))
	assert.Equal(t, "acme", groups[2].Company)
	assert.Equal(t, "", groups[3].Company)
	assert.Equal(t, "(no company)", groups[3].DisplayName())
}

func TestGroupByCompany_Partition(t *testing.T) {
	input := sampleLeads()

	groups := GroupByCompany(input)

	var flattened []Record
	for _, g := range groups {
		for _, r := range g.Records {
			assert.Equal(t, g.Company, r.Field(FieldCompanyName))
		}
		flattened = append(flattened, g.Records...)
	}
	assert.ElementsMatch(t, input, flattened)
}

func TestGroupByCompany_Empty(t *testing.T) {
	assert.Empty(t, GroupByCompany(nil))
}

func TestGroupCounts(t *testing.T) {
	counts := GroupCounts(sampleLeads())
	assert.Equal(t, map[string]int{"Acme": 2, "Globex": 1, "Initech": 1}, counts)
}
