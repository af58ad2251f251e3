package dataset

import (
	"sort"
	"time"

	"cardiopulse/pkg/contracts/domain"
)

// Snapshot is the immutable in-memory base table. It is built once at
// load time and shared by reference afterwards; nothing downstream may
// mutate it. Record order matches the source file so filtered views stay
// deterministic.
type Snapshot struct {
	Path       string
	LoadedAt   time.Time
	SourceRows int

	Records   []domain.ProcedureRecord
	Anomalies []Anomaly

	options domain.FilterOptions
}

// newSnapshot assembles the snapshot and precomputes the filter option
// lists.
func newSnapshot(path string, sourceRows int, records []domain.ProcedureRecord, anomalies []Anomaly) *Snapshot {
	return &Snapshot{
		Path:       path,
		LoadedAt:   time.Now().UTC(),
		SourceRows: sourceRows,
		Records:    records,
		Anomalies:  anomalies,
		options:    buildOptions(records),
	}
}

// Options returns the distinct categorical values and year bounds used to
// populate the dashboard's filter controls.
func (s *Snapshot) Options() domain.FilterOptions {
	return s.options
}

// buildOptions collects sorted distinct filter values from the records.
func buildOptions(records []domain.ProcedureRecord) domain.FilterOptions {
	yearSet := make(map[int]struct{})
	regionSet := make(map[string]struct{})
	procedureSet := make(map[string]struct{})
	hospitalSet := make(map[string]struct{})

	for i := range records {
		r := &records[i]
		if r.StartYear != nil {
			yearSet[*r.StartYear] = struct{}{}
		}
		if r.Region != "" {
			regionSet[r.Region] = struct{}{}
		}
		if r.Procedure != "" {
			procedureSet[r.Procedure] = struct{}{}
		}
		if r.HospitalName != "" {
			hospitalSet[r.HospitalName] = struct{}{}
		}
	}

	opts := domain.FilterOptions{
		Years:      sortedInts(yearSet),
		Regions:    sortedStrings(regionSet),
		Procedures: sortedStrings(procedureSet),
		Hospitals:  sortedStrings(hospitalSet),
	}

	if len(opts.Years) > 0 {
		minYear := opts.Years[0]
		maxYear := opts.Years[len(opts.Years)-1]
		opts.MinYear = &minYear
		opts.MaxYear = &maxYear
	}

	return opts
}

func sortedInts(set map[int]struct{}) []int {
	out := make([]int, 0, len(set))
	for v := range set {
		out = append(out, v)
	}
	sort.Ints(out)
	return out
}

func sortedStrings(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for v := range set {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
