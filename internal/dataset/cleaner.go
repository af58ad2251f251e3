package dataset

import (
	"strconv"
	"strings"
)

// parseNullableFloat coerces a numeric cell to *float64. Thousands
// separators and a trailing percent sign are tolerated since both appear
// in hand-exported spreadsheets. Empty and sentinel cells yield nil with
// ok=true; anything else non-numeric yields nil with ok=false so the
// caller can record the anomaly. Values are never zero-filled.
func parseNullableFloat(raw string) (*float64, bool) {
	s := cleanNumeric(raw)
	if s == "" {
		return nil, true
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, false
	}
	return &v, true
}

// parseNullableInt coerces a count cell to *int64 with the same policy
// as parseNullableFloat.
func parseNullableInt(raw string) (*int64, bool) {
	s := cleanNumeric(raw)
	if s == "" {
		return nil, true
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		// counts sometimes arrive as "123.0" from spreadsheet exports
		f, ferr := strconv.ParseFloat(s, 64)
		if ferr != nil || f != float64(int64(f)) {
			return nil, false
		}
		n := int64(f)
		return &n, true
	}
	return &v, true
}

// cleanNumeric strips formatting noise from a numeric cell and maps the
// dataset's missing-value sentinels to the empty string.
func cleanNumeric(raw string) string {
	s := strings.TrimSpace(raw)
	switch strings.ToLower(s) {
	case "", "na", "n/a", "null", ".", "-":
		return ""
	}
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSuffix(s, "%")
	return strings.TrimSpace(s)
}
