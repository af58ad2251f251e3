package domain

// KpiSet holds the dashboard's headline indicators for a filtered view.
//
// Means are null-aware: records with a nil input are skipped, and a KPI is
// nil (not zero) when no record contributed to it. YoYObservedChange is
// the difference between the mean observed mortality rate of the latest
// distinct start year in the view and that of the immediately preceding
// distinct start year; it is nil when fewer than two distinct years are
// present.
type KpiSet struct {
	TotalCases           int64    `json:"total_cases"`
	AvgObservedRate      *float64 `json:"avg_observed_mortality_rate"`
	AvgObsVsExpectedDiff *float64 `json:"avg_obs_vs_expected_diff"`
	YoYObservedChange    *float64 `json:"yoy_observed_mortality_change"`

	// RecordCount is the number of records the KPIs were computed over.
	RecordCount int `json:"record_count"`
}

// FilterOptions lists the distinct categorical values and year bounds of
// the base table, used to populate the dashboard's filter controls.
type FilterOptions struct {
	MinYear    *int     `json:"min_year"`
	MaxYear    *int     `json:"max_year"`
	Years      []int    `json:"years"`
	Regions    []string `json:"regions"`
	Procedures []string `json:"procedures"`
	Hospitals  []string `json:"hospitals"`
}
