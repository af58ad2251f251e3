package dataset

// AnomalyKind classifies a data-quality finding recorded during load.
type AnomalyKind string

const (
	// AnomalyUnparseableYear marks a discharge period that did not parse;
	// the row is kept with nil year fields.
	AnomalyUnparseableYear AnomalyKind = "unparseable_year"
	// AnomalyNonNumeric marks a numeric cell that could not be coerced;
	// the value is kept nil.
	AnomalyNonNumeric AnomalyKind = "non_numeric"
	// AnomalyNegativeCount marks a negative case or death count; the
	// value is kept nil.
	AnomalyNegativeCount AnomalyKind = "negative_count"
	// AnomalyDeathsExceedCases marks deaths > cases; both values are kept
	// as loaded so the inconsistency stays visible.
	AnomalyDeathsExceedCases AnomalyKind = "deaths_exceed_cases"
	// AnomalyNegativeCIWidth marks an interval whose upper bound is below
	// its lower bound; the bounds are kept as loaded, never swapped.
	AnomalyNegativeCIWidth AnomalyKind = "negative_ci_width"
	// AnomalyUnknownComparison marks a comparison value outside the known
	// vocabulary; the row carries ComparisonUnknown.
	AnomalyUnknownComparison AnomalyKind = "unknown_comparison"
)

// Anomaly is one data-quality finding, addressed by source row number so
// it can be traced back to the file.
type Anomaly struct {
	Row        int         `json:"row"`
	FacilityID string      `json:"facility_id,omitempty"`
	Hospital   string      `json:"hospital,omitempty"`
	Kind       AnomalyKind `json:"kind"`
	Column     string      `json:"column,omitempty"`
	Value      string      `json:"value,omitempty"`
}

// anomalyLog collects findings during a load pass.
type anomalyLog struct {
	anomalies []Anomaly
}

func (l *anomalyLog) add(a Anomaly) {
	l.anomalies = append(l.anomalies, a)
}

// CountByKind tallies anomalies per kind.
func CountByKind(anomalies []Anomaly) map[AnomalyKind]int {
	counts := make(map[AnomalyKind]int)
	for _, a := range anomalies {
		counts[a.Kind]++
	}
	return counts
}
