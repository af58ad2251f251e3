package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cardiopulse/pkg/contracts/domain"
)

func TestDeriveFlags(t *testing.T) {
	tests := []struct {
		name       string
		comparison domain.ComparisonResult
		wantHigher bool
		wantLower  bool
		wantAs     bool
	}{
		{name: "higher", comparison: domain.ComparisonHigher, wantHigher: true},
		{name: "lower", comparison: domain.ComparisonLower, wantLower: true},
		{name: "as expected", comparison: domain.ComparisonAsExpected, wantAs: true},
		{name: "not available all false", comparison: domain.ComparisonNotAvailable},
		{name: "unknown all false", comparison: domain.ComparisonUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := domain.ProcedureRecord{Comparison: tt.comparison}
			Derive(&rec)

			assert.Equal(t, tt.wantHigher, rec.HigherThanExpected)
			assert.Equal(t, tt.wantLower, rec.LowerThanExpected)
			assert.Equal(t, tt.wantAs, rec.AsExpected)

			// mutual exclusion
			trueCount := 0
			for _, f := range []bool{rec.HigherThanExpected, rec.LowerThanExpected, rec.AsExpected} {
				if f {
					trueCount++
				}
			}
			assert.LessOrEqual(t, trueCount, 1)
		})
	}
}

func TestDeriveDifferences(t *testing.T) {
	rec := domain.ProcedureRecord{
		ObservedRate:     fptr(2.5),
		ExpectedRate:     fptr(2.0),
		RiskAdjustedRate: fptr(2.2),
		CILower:          fptr(1.1),
		CIUpper:          fptr(3.9),
	}
	Derive(&rec)

	require.NotNil(t, rec.ObsVsExpectedDiff)
	assert.InDelta(t, 0.5, *rec.ObsVsExpectedDiff, 1e-9)

	require.NotNil(t, rec.ObsVsRiskAdjDiff)
	assert.InDelta(t, 0.3, *rec.ObsVsRiskAdjDiff, 1e-9)

	require.NotNil(t, rec.CIWidth)
	assert.InDelta(t, 2.8, *rec.CIWidth, 1e-9)
}

func TestDeriveNilOperands(t *testing.T) {
	rec := domain.ProcedureRecord{
		ObservedRate: fptr(2.5),
		// ExpectedRate, RiskAdjustedRate, CI bounds all nil
	}
	Derive(&rec)

	assert.Nil(t, rec.ObsVsExpectedDiff)
	assert.Nil(t, rec.ObsVsRiskAdjDiff)
	assert.Nil(t, rec.CIWidth)
}

func TestDeriveCIWidthNilWhenOneBoundMissing(t *testing.T) {
	rec := domain.ProcedureRecord{CIUpper: fptr(3.9)}
	Derive(&rec)
	assert.Nil(t, rec.CIWidth)

	rec = domain.ProcedureRecord{CILower: fptr(1.1)}
	Derive(&rec)
	assert.Nil(t, rec.CIWidth)
}

func TestDeriveNegativeCIWidthPreserved(t *testing.T) {
	// inverted bounds stay visible as a negative width
	rec := domain.ProcedureRecord{
		CILower: fptr(3.0),
		CIUpper: fptr(1.0),
	}
	Derive(&rec)

	require.NotNil(t, rec.CIWidth)
	assert.InDelta(t, -2.0, *rec.CIWidth, 1e-9)
}
