package extract

import (
	"regexp"
	"strings"
)

// Address is the decomposed free-text address of one stop.
type Address struct {
	Full    string
	Postal  string
	City    string
	Country string
}

// AddressRule controls which block lines accumulate into the address text.
type AddressRule struct {
	// AfterReference delays accumulation until an explicit REFERENCE line
	// has been seen inside the block.
	AfterReference bool
	// Terminators stop accumulation for the rest of the block.
	Terminators *regexp.Regexp
	// Skip drops individual metadata lines without terminating.
	Skip []*regexp.Regexp
	// KeepOnly, when set, accumulates only lines matching it.
	KeepOnly *regexp.Regexp
}

var (
	headerLineRe  = regexp.MustCompile(`(?i)^(Loading|Delivery|Collection)\b`)
	referenceRe   = regexp.MustCompile(`(?i)^REFERENCE\b`)
	postalFiveRe  = regexp.MustCompile(`\b\d{5}\b`)
	postalUKRe    = regexp.MustCompile(`(?i)\b[A-Z]{1,2}\d[\w ]+\d[A-Z]{2}\b`)
	cityTrailerRe = regexp.MustCompile(`(?i)\b(\d{5})\s+([A-Z\- ,]{3,})$`)
	cityCommaRe   = regexp.MustCompile(`([A-Z][A-Z\-\s]+),\s*\d`)
)

// GuessAddress accumulates the address lines of one block per the rule and
// infers postal code, city and country. Country precedence is fixed: UK
// postcode shape wins, then a 5-digit French code, then explicit DE/LT
// markers; the first hit is kept.
func GuessAddress(blockLines []string, rule AddressRule) Address {
	var parts []string
	inBlock := false
	afterRef := !rule.AfterReference

scan:
	for _, ln := range blockLines {
		t := strings.TrimSpace(ln)
		if t == "" {
			continue
		}
		if !inBlock {
			if headerLineRe.MatchString(t) {
				inBlock = true
			}
			continue
		}
		if headerLineRe.MatchString(t) {
			break
		}
		if referenceRe.MatchString(t) {
			afterRef = true
			continue
		}
		if !afterRef {
			continue
		}
		if rule.Terminators != nil && rule.Terminators.MatchString(t) {
			break
		}
		for _, skip := range rule.Skip {
			if skip.MatchString(t) {
				continue scan
			}
		}
		if rule.KeepOnly != nil && !rule.KeepOnly.MatchString(t) {
			continue
		}
		parts = append(parts, t)
	}

	full := strings.Join(parts, ", ")
	if full == "" {
		return Address{}
	}

	addr := Address{Full: full}
	if m := postalFiveRe.FindString(full); m != "" {
		addr.Postal = m
	} else if m := postalUKRe.FindString(full); m != "" {
		addr.Postal = strings.TrimSpace(m)
	}
	addr.Country = inferCountry(full)
	if m := cityTrailerRe.FindStringSubmatch(full); m != nil {
		addr.City = strings.ToUpper(strings.TrimSpace(m[2]))
	} else if m := cityCommaRe.FindStringSubmatch(full); m != nil {
		addr.City = strings.TrimSpace(m[1])
	}
	return addr
}

func inferCountry(full string) string {
	up := strings.ToUpper(full)
	switch {
	case strings.Contains(up, " GB") || strings.Contains(up, "UNITED KINGDOM") || postalUKRe.MatchString(full):
		return "GB"
	case strings.Contains(up, " FR") || strings.Contains(up, "FRANCE") || postalFiveRe.MatchString(full):
		return "FR"
	case strings.Contains(up, " DE-") || strings.Contains(up, " DE"):
		return "DE"
	case strings.Contains(up, " LT-") || strings.Contains(up, " LT"):
		return "LT"
	}
	return ""
}
