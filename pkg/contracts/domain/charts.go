package domain

// Chart payload types returned to the presentation layer. Each mirrors one
// of the dashboard's analysis areas; every slice is deterministically
// ordered so identical filters always render identical charts.

// VolumePoint is the case total for one (start year, procedure) bucket.
type VolumePoint struct {
	StartYear int    `json:"start_year"`
	Procedure string `json:"procedure"`
	Cases     int64  `json:"cases"`
}

// MortalityTrendPoint carries the mean mortality rates for one start year.
type MortalityTrendPoint struct {
	StartYear        int      `json:"start_year"`
	ObservedRate     *float64 `json:"observed_mortality_rate"`
	ExpectedRate     *float64 `json:"expected_mortality_rate"`
	RiskAdjustedRate *float64 `json:"risk_adjusted_mortality_rate"`
}

// DiffTrendPoint is the mean observed-vs-expected difference per year.
type DiffTrendPoint struct {
	StartYear int      `json:"start_year"`
	AvgDiff   *float64 `json:"avg_obs_vs_expected_diff"`
}

// ProcedureBreakdown aggregates volume and mean rates per procedure type.
type ProcedureBreakdown struct {
	Procedure    string   `json:"procedure"`
	Cases        int64    `json:"cases"`
	ObservedRate *float64 `json:"observed_mortality_rate"`
	ExpectedRate *float64 `json:"expected_mortality_rate"`
}

// RegionDiff is the mean observed-vs-expected difference for one region.
type RegionDiff struct {
	Region  string   `json:"region"`
	AvgDiff *float64 `json:"avg_obs_vs_expected_diff"`
}

// RegionComparisonShare is the share of records of one comparison category
// within one region.
type RegionComparisonShare struct {
	Region     string           `json:"region"`
	Comparison ComparisonResult `json:"comparison_result"`
	Count      int              `json:"count"`
	Share      float64          `json:"share"`
}

// HospitalPoint is a single scatter-plot observation.
type HospitalPoint struct {
	HospitalName string           `json:"hospital_name"`
	Cases        *int64           `json:"cases"`
	ObservedRate *float64         `json:"observed_mortality_rate"`
	Comparison   ComparisonResult `json:"comparison_result"`
}

// HospitalDiff ranks a hospital by its mean observed-vs-expected
// difference.
type HospitalDiff struct {
	HospitalName string  `json:"hospital_name"`
	AvgDiff      float64 `json:"avg_obs_vs_expected_diff"`
}

// ProcedureCI carries the mean observed rate per procedure together with
// the asymmetric error extents derived from the mean confidence bounds.
type ProcedureCI struct {
	Procedure    string   `json:"procedure"`
	ObservedRate *float64 `json:"observed_mortality_rate"`
	CILower      *float64 `json:"ci_lower"`
	CIUpper      *float64 `json:"ci_upper"`
	ErrorMinus   *float64 `json:"error_minus"`
	ErrorPlus    *float64 `json:"error_plus"`
}

// HospitalCIWidth relates a hospital's total case volume to the mean
// width of its confidence intervals.
type HospitalCIWidth struct {
	HospitalName string   `json:"hospital_name"`
	TotalCases   int64    `json:"total_cases"`
	AvgCIWidth   *float64 `json:"avg_ci_width"`
}

// ChartSet bundles every chart series for one filtered view.
type ChartSet struct {
	VolumeTrend      []VolumePoint           `json:"volume_trend"`
	MortalityTrend   []MortalityTrendPoint   `json:"mortality_trend"`
	DiffTrend        []DiffTrendPoint        `json:"diff_trend"`
	Procedures       []ProcedureBreakdown    `json:"procedures"`
	RegionDiffs      []RegionDiff            `json:"region_diffs"`
	RegionShares     []RegionComparisonShare `json:"region_shares"`
	HospitalScatter  []HospitalPoint         `json:"hospital_scatter"`
	HospitalRanking  []HospitalDiff          `json:"hospital_ranking"`
	ProcedureCIs     []ProcedureCI           `json:"procedure_cis"`
	HospitalCIWidths []HospitalCIWidth       `json:"hospital_ci_widths"`
}
