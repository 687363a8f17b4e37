package extract

import (
	"strconv"
	"strings"
	"unicode"
)

// ParseMoney converts a raw amount in mixed European/US formatting to a
// float. When both separators appear, the one occurring last is the decimal
// point and the other is stripped as a thousands separator; a lone comma is a
// decimal point. Anything that still fails to parse yields 0.
func ParseMoney(raw string) float64 {
	v := stripSpaces(raw)

	comma := strings.LastIndex(v, ",")
	dot := strings.LastIndex(v, ".")
	switch {
	case comma >= 0 && dot >= 0:
		if comma > dot {
			v = strings.ReplaceAll(v, ".", "")
			v = strings.Replace(v, ",", ".", 1)
		} else {
			v = strings.ReplaceAll(v, ",", "")
		}
	case comma >= 0:
		v = strings.ReplaceAll(v, ",", ".")
	}

	v = keepNumeric(v)
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0
	}
	return f
}

// ParseGroupedInt reads a grouped-thousands integer token such as "25 000",
// "25.000" or "25,000", treating every separator as grouping. Returns 0 when
// no digits remain.
func ParseGroupedInt(raw string) float64 {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	n, err := strconv.ParseFloat(b.String(), 64)
	if err != nil {
		return 0
	}
	return n
}

func stripSpaces(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

// keepNumeric drops everything except digits, one leading sign and dots.
func keepNumeric(s string) string {
	var b strings.Builder
	for i, r := range s {
		switch {
		case r >= '0' && r <= '9', r == '.':
			b.WriteRune(r)
		case r == '-' && i == 0:
			b.WriteRune(r)
		}
	}
	return b.String()
}
