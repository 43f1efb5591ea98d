package domain

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSortKey_IsValid(t *testing.T) {
	tests := []struct {
		name string
		key  SortKey
		want bool
	}{
		{"empty", SortNone, true},
		{"name", SortName, true},
		{"company", SortCompany, true},
		{"job_title", SortJobTitle, true},
		{"location", SortLocation, true},
		{"score", SortScore, true},
		{"invalid", SortKey("created_at"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.key.IsValid())
		})
	}
}

func TestParseSortKey(t *testing.T) {
	k, err := ParseSortKey("company")
	require.NoError(t, err)
	assert.Equal(t, SortCompany, k)

	k, err = ParseSortKey(" None ")
	require.NoError(t, err)
	assert.Equal(t, SortNone, k)

	_, err = ParseSortKey("revenue")
	assert.Error(t, err)
}

func TestSort_TextKeys(t *testing.T) {
	leads := sampleLeads()

	tests := []struct {
		key  SortKey
		want []string
	}{
		{SortName, []string{"Ana Souza", "Li Wei", "Maria Rossi", "Sam Carter"}},
		{SortCompany, []string{"Sam Carter", "Li Wei", "Ana Souza", "Maria Rossi"}},
		{SortJobTitle, []string{"Sam Carter", "Li Wei", "Ana Souza", "Maria Rossi"}},
		{SortLocation, []string{"Li Wei", "Sam Carter", "Maria Rossi", "Ana Souza"}},
	}
	for _, tt := range tests {
		t.Run(tt.key.String(), func(t *testing.T) {
			if diff := cmp.Diff(tt.want, names(Sort(leads, tt.key))); diff != "" {
				t.Errorf("Sort(%s) mismatch (-want +got):\n%s", tt.key, diff)
			}
		})
	}
}

func TestSort_ScoreDescendingUnscoredLast(t *testing.T) {
	input := []Record{
		{FieldFullName: "none", FieldLeadScore: nil},
		{FieldFullName: "ninety", FieldLeadScore: 90},
		{FieldFullName: "forty", FieldLeadScore: 40},
	}

	got := Sort(input, SortScore)

	assert.Equal(t, []string{"ninety", "forty", "none"}, names(got))
	assert.Equal(t, "none", input[0].Field(FieldFullName), "input must not be reordered")
}

func TestSort_Stable(t *testing.T) {
	input := []Record{
		{FieldFullName: "a", FieldCompanyName: "Acme", FieldLeadScore: 50},
		{FieldFullName: "b"},
		{FieldFullName: "c", FieldCompanyName: "Acme", FieldLeadScore: 50},
		{FieldFullName: "d"},
		{FieldFullName: "e", FieldCompanyName: "Acme", FieldLeadScore: 50},
	}

	assert.Equal(t, []string{"a", "c", "e", "b", "d"}, names(Sort(input, SortScore)))
	assert.Equal(t, []string{"b", "d", "a", "c", "e"}, names(Sort(input, SortCompany)))
}

func TestSort_NoKeyKeepsOrder(t *testing.T) {
	leads := sampleLeads()
	want := names(leads)

	assert.Equal(t, want, names(Sort(leads, SortNone)))
	assert.Equal(t, want, names(Sort(leads, SortKey("bogus"))))
	assert.Empty(t, Sort(nil, SortName))
}
