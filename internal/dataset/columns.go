package dataset

import (
	"fmt"
	"strings"
)

// Canonical column keys after header normalization.
const (
	colFacilityID     = "facility_id"
	colHospitalName   = "hospital_name"
	colRegion         = "region"
	colDetailedRegion = "detailed_region"
	colProcedure      = "procedure"
	colYear           = "year_of_hospital_discharge"
	colCases          = "number_of_cases"
	colDeaths         = "number_of_deaths"
	colObserved       = "observed_mortality_rate"
	colExpected       = "expected_mortality_rate"
	colRiskAdjusted   = "risk_adjusted_mortality_rate"
	colCILower        = "lower_limit_of_confidence_interval"
	colCIUpper        = "upper_limit_of_confidence_interval"
	colComparison     = "comparison_results"
)

// requiredColumns must all resolve for a load to succeed. DetailedRegion
// is optional; older extracts do not carry it.
var requiredColumns = []string{
	colFacilityID,
	colHospitalName,
	colRegion,
	colProcedure,
	colYear,
	colCases,
	colDeaths,
	colObserved,
	colExpected,
	colRiskAdjusted,
	colCILower,
	colCIUpper,
	colComparison,
}

// headerAliases maps alternate normalized header spellings onto canonical
// keys, so both the raw NY State export headers and pre-cleaned variants
// resolve.
var headerAliases = map[string]string{
	"facility_id":                "facility_id",
	"hospital_name":              "hospital_name",
	"facility_name":              "hospital_name",
	"region":                     "region",
	"detailed_region":            "detailed_region",
	"procedure":                  "procedure",
	"procedure_type":             "procedure",
	"year_of_hospital_discharge": "year_of_hospital_discharge",
	"discharge_year":             "year_of_hospital_discharge",
	"year":                       "year_of_hospital_discharge",
	"number_of_cases":            "number_of_cases",
	"number_of_deaths":           "number_of_deaths",
	"observed_mortality_rate":    "observed_mortality_rate",
	"expected_mortality_rate":    "expected_mortality_rate",
	"risk_adjusted_mortality_rate":       "risk_adjusted_mortality_rate",
	"lower_limit_of_confidence_interval": "lower_limit_of_confidence_interval",
	"upper_limit_of_confidence_interval": "upper_limit_of_confidence_interval",
	"ci_lower":                           "lower_limit_of_confidence_interval",
	"ci_upper":                           "upper_limit_of_confidence_interval",
	"comparison_results":                 "comparison_results",
	"comparison_result":                  "comparison_results",
}

// normalizeHeader collapses a raw header cell to its canonical key form:
// trimmed, lowercased, with spaces, slashes and hyphens folded to
// underscores. Mirrors the cleaning the published dataset needs before
// its headers are usable as identifiers.
func normalizeHeader(h string) string {
	h = strings.TrimSpace(strings.ToLower(h))
	replacer := strings.NewReplacer(" ", "_", "/", "_", "-", "_")
	h = replacer.Replace(h)
	for strings.Contains(h, "__") {
		h = strings.ReplaceAll(h, "__", "_")
	}
	return h
}

// columnMap resolves a header row to canonical-key -> column-index.
type columnMap map[string]int

// mapHeader builds a columnMap from a raw header row. Unrecognized
// headers are ignored; duplicate headers keep the first occurrence.
func mapHeader(row []string) columnMap {
	cm := make(columnMap)
	for i, cell := range row {
		key, ok := headerAliases[normalizeHeader(cell)]
		if !ok {
			continue
		}
		if _, dup := cm[key]; !dup {
			cm[key] = i
		}
	}
	return cm
}

// validate checks that every required column resolved.
func (cm columnMap) validate() error {
	var missing []string
	for _, col := range requiredColumns {
		if _, ok := cm[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required columns: %s", strings.Join(missing, ", "))
	}
	return nil
}

// cell returns the trimmed value of the named column in row, or "" when
// the column is absent or the row is short.
func (cm columnMap) cell(row []string, key string) string {
	idx, ok := cm[key]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// isHeaderCandidate reports whether a row looks like the dataset's header
// row. Used to locate the header inside XLSX sheets that carry title or
// note rows above the data.
func isHeaderCandidate(row []string) bool {
	cm := mapHeader(row)
	_, hasHospital := cm[colHospitalName]
	_, hasYear := cm[colYear]
	_, hasCases := cm[colCases]
	return hasHospital && hasYear && hasCases
}
