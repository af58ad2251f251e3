package exporter

import (
	"encoding/csv"
	"fmt"
	"io"

	"cardiopulse/pkg/contracts/domain"
)

// recordHeaders is the export column order: source columns first, then
// the derived columns the dashboard adds.
var recordHeaders = []string{
	"facility_id",
	"hospital_name",
	"region",
	"detailed_region",
	"procedure",
	"year_raw",
	"start_year",
	"end_year",
	"mid_year",
	"number_of_cases",
	"number_of_deaths",
	"observed_mortality_rate",
	"expected_mortality_rate",
	"risk_adjusted_mortality_rate",
	"ci_lower",
	"ci_upper",
	"comparison_result",
	"is_higher_than_expected",
	"is_lower_than_expected",
	"is_as_expected",
	"obs_vs_expected_diff",
	"obs_vs_riskadj_diff",
	"ci_width",
}

// WriteRecordsCSV streams records to w as a CSV document with a UTF-8
// BOM so Excel opens it cleanly. Rows are written in the order given.
func WriteRecordsCSV(w io.Writer, records []domain.ProcedureRecord) error {
	if _, err := w.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
		return fmt.Errorf("write BOM: %w", err)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(recordHeaders); err != nil {
		return fmt.Errorf("write headers: %w", err)
	}

	for i := range records {
		if err := cw.Write(recordRow(&records[i])); err != nil {
			return fmt.Errorf("write record %d: %w", i, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func recordRow(r *domain.ProcedureRecord) []string {
	return []string{
		r.FacilityID,
		r.HospitalName,
		r.Region,
		r.DetailedRegion,
		r.Procedure,
		r.YearRaw,
		formatNullableYear(r.StartYear),
		formatNullableYear(r.EndYear),
		formatNullableYear(r.MidYear),
		formatNullableInt(r.NumberOfCases),
		formatNullableInt(r.NumberOfDeaths),
		formatNullableFloat(r.ObservedRate),
		formatNullableFloat(r.ExpectedRate),
		formatNullableFloat(r.RiskAdjustedRate),
		formatNullableFloat(r.CILower),
		formatNullableFloat(r.CIUpper),
		string(r.Comparison),
		formatBool(r.HigherThanExpected),
		formatBool(r.LowerThanExpected),
		formatBool(r.AsExpected),
		formatNullableFloat(r.ObsVsExpectedDiff),
		formatNullableFloat(r.ObsVsRiskAdjDiff),
		formatNullableFloat(r.CIWidth),
	}
}
