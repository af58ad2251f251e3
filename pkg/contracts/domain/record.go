package domain

// ProcedureRecord is one row of the cardiac outcomes dataset: a single
// (hospital, procedure, discharge period) observation. The base table of
// records is built once at load time and never mutated; filtering and
// aggregation always produce derived views.
//
// Nullable numeric fields are pointers. A nil value means the source cell
// was empty or unparseable and must be excluded from aggregation, never
// coerced to zero.
type ProcedureRecord struct {
	FacilityID     string `json:"facility_id"`
	HospitalName   string `json:"hospital_name"`
	Region         string `json:"region"`
	DetailedRegion string `json:"detailed_region,omitempty"`
	Procedure      string `json:"procedure"`

	// YearRaw is the discharge period exactly as it appears in the source,
	// either a single year ("2016") or a range ("2013-2015").
	YearRaw   string `json:"year_raw"`
	StartYear *int   `json:"start_year"`
	EndYear   *int   `json:"end_year"`
	MidYear   *int   `json:"mid_year"`

	NumberOfCases  *int64 `json:"number_of_cases"`
	NumberOfDeaths *int64 `json:"number_of_deaths"`

	ObservedRate     *float64 `json:"observed_mortality_rate"`
	ExpectedRate     *float64 `json:"expected_mortality_rate"`
	RiskAdjustedRate *float64 `json:"risk_adjusted_mortality_rate"`
	CILower          *float64 `json:"ci_lower"`
	CIUpper          *float64 `json:"ci_upper"`

	Comparison ComparisonResult `json:"comparison_result"`

	// Derived flags, set solely from Comparison. At most one is true; all
	// three are false when the comparison is NotAvailable or Unknown.
	HigherThanExpected bool `json:"is_higher_than_expected"`
	LowerThanExpected  bool `json:"is_lower_than_expected"`
	AsExpected         bool `json:"is_as_expected"`

	// Derived metrics. Nil whenever an operand is nil.
	ObsVsExpectedDiff *float64 `json:"obs_vs_expected_diff"`
	ObsVsRiskAdjDiff  *float64 `json:"obs_vs_riskadj_diff"`
	CIWidth           *float64 `json:"ci_width"`
}

// HasYear reports whether the discharge period parsed to a usable year.
func (r *ProcedureRecord) HasYear() bool {
	return r.StartYear != nil
}

// InYearRange reports whether the record's start year falls within the
// inclusive [from, to] bounds. Records without a parsed year never match
// an active year bound.
func (r *ProcedureRecord) InYearRange(from, to *int) bool {
	if from == nil && to == nil {
		return true
	}
	if r.StartYear == nil {
		return false
	}
	if from != nil && *r.StartYear < *from {
		return false
	}
	if to != nil && *r.StartYear > *to {
		return false
	}
	return true
}
