package domain

import (
	"fmt"
	"time"
)

// PeriodLayout is the zero-padded "YYYY-MM" period key format. Lexicographic
// order of keys in this layout is chronological order.
const PeriodLayout = "2006-01"

// ParsePeriod parses a "YYYY-MM" key.
func ParsePeriod(key string) (time.Time, error) {
	t, err := time.Parse(PeriodLayout, key)
	if err != nil {
		return time.Time{}, ErrInvalidInput{Field: "period", Reason: fmt.Sprintf("%q is not YYYY-MM", key)}
	}
	return t, nil
}

// PeriodOf formats t as a period key.
func PeriodOf(t time.Time) string {
	return t.Format(PeriodLayout)
}

var reportDateLayouts = []string{time.RFC3339, "2006-01-02", PeriodLayout}

// ParseReportDate parses a report date stamp in any of the accepted layouts.
func ParseReportDate(stamp string) (time.Time, bool) {
	for _, layout := range reportDateLayouts {
		if t, err := time.Parse(layout, stamp); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
