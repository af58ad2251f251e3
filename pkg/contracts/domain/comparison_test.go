package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseComparisonResult(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want ComparisonResult
	}{
		{
			name: "statewide higher",
			raw:  "Rate higher than Statewide Rate",
			want: ComparisonHigher,
		},
		{
			name: "statewide lower",
			raw:  "Rate lower than Statewide Rate",
			want: ComparisonLower,
		},
		{
			name: "statewide as expected",
			raw:  "Rate not different than Statewide Rate",
			want: ComparisonAsExpected,
		},
		{
			name: "short phrasing higher",
			raw:  "Higher than Expected",
			want: ComparisonHigher,
		},
		{
			name: "not available",
			raw:  "Not Available",
			want: ComparisonNotAvailable,
		},
		{
			name: "empty is not available",
			raw:  "",
			want: ComparisonNotAvailable,
		},
		{
			name: "surrounding whitespace tolerated",
			raw:  "  Rate lower than Statewide Rate  ",
			want: ComparisonLower,
		},
		{
			name: "unrecognized value",
			raw:  "Rate somewhat elevated",
			want: ComparisonUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseComparisonResult(tt.raw))
		})
	}
}

func TestComparisonResultKnown(t *testing.T) {
	assert.True(t, ComparisonHigher.Known())
	assert.True(t, ComparisonLower.Known())
	assert.True(t, ComparisonAsExpected.Known())
	assert.False(t, ComparisonNotAvailable.Known())
	assert.False(t, ComparisonUnknown.Known())
}

func TestSelectionMatches(t *testing.T) {
	all := SelectAll()
	assert.True(t, all.IsAll())
	assert.True(t, all.Matches("Capital District"))
	assert.Equal(t, SelectAllLabel, all.Value())

	exact := SelectExact("All PCI")
	assert.False(t, exact.IsAll())
	assert.True(t, exact.Matches("All PCI"))
	assert.False(t, exact.Matches("Non-Emergency PCI"))
	assert.Equal(t, "All PCI", exact.Value())
}

func TestParseSelection(t *testing.T) {
	assert.True(t, ParseSelection("").IsAll())
	assert.True(t, ParseSelection("Overall").IsAll())
	assert.False(t, ParseSelection("New York City").IsAll())
}

func TestFilterSpecMatches(t *testing.T) {
	year := func(y int) *int { return &y }

	rec := &ProcedureRecord{
		HospitalName: "St. Elsewhere",
		Region:       "Capital District",
		Procedure:    "All PCI",
		StartYear:    year(2015),
	}

	tests := []struct {
		name string
		spec FilterSpec
		want bool
	}{
		{
			name: "unfiltered matches",
			spec: FilterSpec{},
			want: true,
		},
		{
			name: "year range inclusive",
			spec: FilterSpec{YearFrom: year(2015), YearTo: year(2015)},
			want: true,
		},
		{
			name: "year below range",
			spec: FilterSpec{YearFrom: year(2016)},
			want: false,
		},
		{
			name: "region exact match",
			spec: FilterSpec{Region: SelectExact("Capital District")},
			want: true,
		},
		{
			name: "region mismatch",
			spec: FilterSpec{Region: SelectExact("New York City")},
			want: false,
		},
		{
			name: "conjunction of predicates",
			spec: FilterSpec{
				YearFrom:  year(2014),
				YearTo:    year(2016),
				Region:    SelectExact("Capital District"),
				Procedure: SelectExact("All PCI"),
				Hospital:  SelectExact("St. Elsewhere"),
			},
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.spec.Matches(rec))
		})
	}
}

func TestFilterSpecNilYearExcludedByYearBound(t *testing.T) {
	from := 2010
	rec := &ProcedureRecord{Region: "Western NY"}

	assert.True(t, FilterSpec{}.Matches(rec))
	assert.False(t, FilterSpec{YearFrom: &from}.Matches(rec))
}
