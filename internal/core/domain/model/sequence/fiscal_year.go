package sequence

import (
	"fmt"
	"time"
)

// FiscalYearAt returns the Indian fiscal year label for the given instant,
// formatted as "YYYY-YY". The fiscal year runs April through March:
// April 2025 through March 2026 is "2025-26".
func FiscalYearAt(t time.Time) string {
	year := t.Year()
	if int(t.Month()) < 4 {
		year--
	}
	return fmt.Sprintf("%d-%02d", year, (year+1)%100)
}
