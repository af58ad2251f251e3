package exporter

import (
	"fmt"
	"strconv"
)

// formatNullableFloat renders a nullable rate with two decimal places,
// so values like 13.4 export as 13.40. Nil becomes an empty cell.
func formatNullableFloat(f *float64) string {
	if f == nil {
		return ""
	}
	return fmt.Sprintf("%.2f", *f)
}

// formatNullableInt renders a nullable count; nil becomes an empty cell.
func formatNullableInt(i *int64) string {
	if i == nil {
		return ""
	}
	return strconv.FormatInt(*i, 10)
}

func formatNullableYear(y *int) string {
	if y == nil {
		return ""
	}
	return strconv.Itoa(*y)
}

func formatBool(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
