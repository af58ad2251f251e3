package dataset

import (
	"cardiopulse/pkg/contracts/domain"
)

// Derive fills the derived fields of a record in place: the comparison
// flags and the difference/width metrics. It is pure over the record's
// base fields; any arithmetic with a nil operand yields a nil result,
// never an error.
func Derive(r *domain.ProcedureRecord) {
	r.HigherThanExpected = r.Comparison == domain.ComparisonHigher
	r.LowerThanExpected = r.Comparison == domain.ComparisonLower
	r.AsExpected = r.Comparison == domain.ComparisonAsExpected

	r.ObsVsExpectedDiff = sub(r.ObservedRate, r.ExpectedRate)
	r.ObsVsRiskAdjDiff = sub(r.ObservedRate, r.RiskAdjustedRate)
	r.CIWidth = sub(r.CIUpper, r.CILower)
}

// sub returns a-b, or nil when either operand is nil.
func sub(a, b *float64) *float64 {
	if a == nil || b == nil {
		return nil
	}
	d := *a - *b
	return &d
}
