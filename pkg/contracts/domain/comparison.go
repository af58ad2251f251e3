package domain

import "strings"

// ComparisonResult is the statistical judgment of a hospital's observed
// mortality against the risk-adjusted statewide benchmark.
type ComparisonResult string

const (
	ComparisonHigher       ComparisonResult = "higher"
	ComparisonLower        ComparisonResult = "lower"
	ComparisonAsExpected   ComparisonResult = "as_expected"
	ComparisonNotAvailable ComparisonResult = "not_available"

	// ComparisonUnknown marks source values outside the known vocabulary.
	// Kept as an explicit state so unrecognized inputs are never silently
	// conflated with NotAvailable; rows carrying it are reported as
	// anomalies but retained.
	ComparisonUnknown ComparisonResult = "unknown"
)

// Source vocabulary as published in the NY State cardiac outcomes export.
const (
	sourceHigher       = "rate higher than statewide rate"
	sourceLower        = "rate lower than statewide rate"
	sourceAsExpected   = "rate not different than statewide rate"
	sourceNotAvailable = "not available"
)

// ParseComparisonResult maps a raw source string to its category.
// Matching is exact after whitespace trimming and case folding; both the
// statewide-rate phrasing of the NY export and the shorter
// "higher/lower than expected" phrasing used by older extracts are
// accepted. Anything outside the vocabulary yields ComparisonUnknown.
func ParseComparisonResult(raw string) ComparisonResult {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case sourceHigher, "higher than expected":
		return ComparisonHigher
	case sourceLower, "lower than expected":
		return ComparisonLower
	case sourceAsExpected, "as expected":
		return ComparisonAsExpected
	case sourceNotAvailable, "":
		return ComparisonNotAvailable
	default:
		return ComparisonUnknown
	}
}

// Known reports whether the comparison carries a usable judgment.
func (c ComparisonResult) Known() bool {
	switch c {
	case ComparisonHigher, ComparisonLower, ComparisonAsExpected:
		return true
	}
	return false
}

// Label returns the human-readable chart label for the category.
func (c ComparisonResult) Label() string {
	switch c {
	case ComparisonHigher:
		return "Higher than Statewide Rate"
	case ComparisonLower:
		return "Lower than Statewide Rate"
	case ComparisonAsExpected:
		return "As Expected"
	case ComparisonNotAvailable:
		return "Not Available"
	default:
		return "Unknown"
	}
}
