package extract

import (
	"regexp"
	"time"
)

var dateRe = regexp.MustCompile(`\b(\d{2})/(\d{2})/(\d{2,4})\b`)

// FirstDate finds the first DD/MM/YY or DD/MM/YYYY token and returns it as an
// ISO calendar date. Two-digit years are expanded into the 2000s. Impossible
// calendar dates return the empty string rather than an error.
func FirstDate(text string) string {
	m := dateRe.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	year := m[3]
	if len(year) == 2 {
		year = "20" + year
	}
	t, err := time.Parse("02/01/2006", m[1]+"/"+m[2]+"/"+year)
	if err != nil {
		return ""
	}
	return t.Format("2006-01-02")
}
