// Package analytics implements the read-only computations of the
// dashboard: filtering the immutable base table, KPI aggregation and the
// per-chart groupby series. Every function is pure over its inputs; an
// empty filtered view is a valid input everywhere and produces null
// aggregates rather than errors.
package analytics

import (
	"cardiopulse/pkg/contracts/domain"
)

// Apply returns the subsequence of records satisfying every active
// predicate of spec, in base-table order. The unfiltered fast path
// returns the base slice itself; the base table is immutable so sharing
// is safe.
func Apply(records []domain.ProcedureRecord, spec domain.FilterSpec) []domain.ProcedureRecord {
	if spec.IsUnfiltered() {
		return records
	}

	out := make([]domain.ProcedureRecord, 0, len(records))
	for i := range records {
		if spec.Matches(&records[i]) {
			out = append(out, records[i])
		}
	}
	return out
}
