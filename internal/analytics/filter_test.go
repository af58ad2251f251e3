package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cardiopulse/pkg/contracts/domain"
)

func iptr(v int) *int         { return &v }
func i64ptr(v int64) *int64   { return &v }
func fptr(v float64) *float64 { return &v }

func makeRecord(hospital, region, procedure string, startYear *int) domain.ProcedureRecord {
	return domain.ProcedureRecord{
		HospitalName: hospital,
		Region:       region,
		Procedure:    procedure,
		StartYear:    startYear,
	}
}

func TestApplyUnfilteredReturnsFullTable(t *testing.T) {
	records := []domain.ProcedureRecord{
		makeRecord("Mercy General", "Capital District", "CABG", iptr(2014)),
		makeRecord("St. Luke's", "Western NY", "Valve", iptr(2015)),
		makeRecord("Unknown Period", "Central NY", "CABG", nil),
	}

	spec := domain.FilterSpec{
		Region:    domain.SelectAll(),
		Procedure: domain.SelectAll(),
		Hospital:  domain.SelectAll(),
	}
	require.True(t, spec.IsUnfiltered())

	got := Apply(records, spec)
	assert.Len(t, got, len(records), "unfiltered view must keep every record, parsed year or not")
}

func TestApplyFilters(t *testing.T) {
	records := []domain.ProcedureRecord{
		makeRecord("Mercy General", "Capital District", "CABG", iptr(2013)),
		makeRecord("Mercy General", "Capital District", "Valve", iptr(2016)),
		makeRecord("St. Luke's", "Western NY", "CABG", iptr(2015)),
		makeRecord("No Year Hospital", "Western NY", "CABG", nil),
	}

	tests := []struct {
		name string
		spec domain.FilterSpec
		want int
	}{
		{
			name: "year range excludes unparsed years",
			spec: domain.FilterSpec{
				YearFrom:  iptr(2014),
				YearTo:    iptr(2016),
				Region:    domain.SelectAll(),
				Procedure: domain.SelectAll(),
				Hospital:  domain.SelectAll(),
			},
			want: 2,
		},
		{
			name: "region narrows",
			spec: domain.FilterSpec{
				Region:    domain.SelectExact("Western NY"),
				Procedure: domain.SelectAll(),
				Hospital:  domain.SelectAll(),
			},
			want: 2,
		},
		{
			name: "all dimensions combined",
			spec: domain.FilterSpec{
				YearFrom:  iptr(2013),
				YearTo:    iptr(2015),
				Region:    domain.SelectExact("Capital District"),
				Procedure: domain.SelectExact("CABG"),
				Hospital:  domain.SelectExact("Mercy General"),
			},
			want: 1,
		},
		{
			name: "no matches yields empty view",
			spec: domain.FilterSpec{
				Region:    domain.SelectExact("Long Island"),
				Procedure: domain.SelectAll(),
				Hospital:  domain.SelectAll(),
			},
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Apply(records, tt.spec)
			assert.Len(t, got, tt.want)
			for i := range got {
				assert.True(t, tt.spec.Matches(&got[i]))
			}
		})
	}
}

func TestApplyRangeRowIntersection(t *testing.T) {
	// A 2013-2015 reporting period row and a single 2016 row: a filter of
	// [2014, 2016] keeps both, because range rows match on their start year.
	rangeRow := makeRecord("Mercy General", "Capital District", "CABG", iptr(2013))
	rangeRow.EndYear = iptr(2015)
	rangeRow.MidYear = iptr(2014)
	rangeRow.YearRaw = "2013-2015"
	singleRow := makeRecord("St. Luke's", "Western NY", "CABG", iptr(2016))
	singleRow.EndYear = iptr(2016)
	singleRow.MidYear = iptr(2016)
	singleRow.YearRaw = "2016"

	spec := domain.FilterSpec{
		YearFrom:  iptr(2013),
		YearTo:    iptr(2016),
		Region:    domain.SelectAll(),
		Procedure: domain.SelectAll(),
		Hospital:  domain.SelectAll(),
	}

	got := Apply([]domain.ProcedureRecord{rangeRow, singleRow}, spec)
	assert.Len(t, got, 2)
}

func TestApplyDoesNotMutateBase(t *testing.T) {
	records := []domain.ProcedureRecord{
		makeRecord("Mercy General", "Capital District", "CABG", iptr(2014)),
		makeRecord("St. Luke's", "Western NY", "Valve", iptr(2015)),
	}

	spec := domain.FilterSpec{
		Region:    domain.SelectExact("Western NY"),
		Procedure: domain.SelectAll(),
		Hospital:  domain.SelectAll(),
	}
	got := Apply(records, spec)
	require.Len(t, got, 1)

	got[0].HospitalName = "Renamed"
	assert.Equal(t, "St. Luke's", records[1].HospitalName, "filtered view must be independent of the base table")
}
