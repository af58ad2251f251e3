package dataset

import (
	"strconv"
	"strings"
)

// ParseYearRange converts the mixed-format discharge period field into
// its three derived years. Accepted forms, with surrounding whitespace
// tolerated:
//
//	"2016"       -> start = end = mid = 2016
//	"2013-2015"  -> start = 2013, end = 2015, mid = 2014
//
// For ranges the midpoint rounds half UP: "2013-2016" yields 2015, not
// 2014. The policy matters because the midpoint drives time-series
// bucketing, so it is fixed here and covered by tests rather than left to
// float rounding.
//
// Malformed or empty input returns (nil, nil, nil, false); the caller
// flags the row as unparseable and keeps it, it is never dropped.
func ParseYearRange(raw string) (start, end, mid *int, ok bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil, nil, nil, false
	}

	if i := strings.IndexByte(s, '-'); i >= 0 {
		a, errA := parseYear(s[:i])
		b, errB := parseYear(s[i+1:])
		if errA != nil || errB != nil || a > b {
			return nil, nil, nil, false
		}
		m := (a + b + 1) / 2 // half rounds up
		return &a, &b, &m, true
	}

	y, err := parseYear(s)
	if err != nil {
		return nil, nil, nil, false
	}
	e, m := y, y
	return &y, &e, &m, true
}

// parseYear parses a single 4-digit year token.
func parseYear(tok string) (int, error) {
	tok = strings.TrimSpace(tok)
	y, err := strconv.Atoi(tok)
	if err != nil {
		return 0, err
	}
	if y < 1000 || y > 9999 {
		return 0, strconv.ErrRange
	}
	return y, nil
}
