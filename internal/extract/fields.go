package extract

import (
	"regexp"
	"strings"
)

// MatchOne returns the first capture group of the first match, trimmed, or
// the empty string.
func MatchOne(re *regexp.Regexp, text string) string {
	m := re.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}

var (
	cargoNumberOTRe  = regexp.MustCompile(`(?i)\bOT\b\s*[:\-]?\s*([A-Z0-9]+)`)
	cargoNumberRefRe = regexp.MustCompile(`(?i)\bREF\b\s*[:\-]?\s*(\d{4,})`)

	orderRefLabelRe = regexp.MustCompile(`(?i)\bORDER\s*REFERENCE\b\s*[:\-]?\s*(\d{6,10})\b`)
	refLineRe       = regexp.MustCompile(`(?im)^\s*REFERENCE\s*[:\-]?\s*(\d{6,10})\b`)
	digitTokenRe    = regexp.MustCompile(`\b(\d{6,8})\b`)
	dateLikeRe      = regexp.MustCompile(`^(20\d{6}|202\d{4,5})$`)
	preferredRefRe  = regexp.MustCompile(`^1\d{6}$`)
)

// FindCargoNumber extracts the external cargo number: an OT label followed by
// alphanumerics, else a REF label followed by at least four digits.
func FindCargoNumber(text string) string {
	if v := MatchOne(cargoNumberOTRe, text); v != "" {
		return v
	}
	return MatchOne(cargoNumberRefRe, text)
}

// FindOrderReference runs the order-reference fallback chain: explicit
// "ORDER REFERENCE" label, then a line-leading "REFERENCE" label, then the
// digit-token heuristic. The heuristic collects all 6-8 digit tokens in
// document order, drops the cargo number and date-like tokens, keeps 7-8
// digit candidates, and prefers a 7-digit token starting with 1 before
// falling back to the first survivor. Returns "" when nothing qualifies; the
// schema builder substitutes the attachment filename or "unknown".
func FindOrderReference(text, cargoNumber string) string {
	if v := MatchOne(orderRefLabelRe, text); v != "" {
		return v
	}
	if v := MatchOne(refLineRe, text); v != "" {
		return v
	}

	seen := make(map[string]bool)
	var candidates []string
	for _, m := range digitTokenRe.FindAllStringSubmatch(text, -1) {
		n := m[1]
		if seen[n] {
			continue
		}
		seen[n] = true
		if cargoNumber != "" && n == cargoNumber {
			continue
		}
		if dateLikeRe.MatchString(n) {
			continue
		}
		if len(n) < 7 || len(n) > 8 {
			continue
		}
		candidates = append(candidates, n)
	}
	for _, n := range candidates {
		if preferredRefRe.MatchString(n) {
			return n
		}
	}
	if len(candidates) > 0 {
		return candidates[0]
	}
	return ""
}

var (
	ldmLabelFirstRe = regexp.MustCompile(`(?i)\b(?:LM|LDM)\b\s*[:\-]?\s*(\d+(?:[\.,]\d+)?)`)
	ldmValueFirstRe = regexp.MustCompile(`(?i)\b(\d+(?:[\.,]\d+)?)\s*(?:LM|LDM)\b`)
	ldmTrailerRe    = regexp.MustCompile(`(?i)\b13\s*[\.,]?\s*6\b`)
	ftlRe           = regexp.MustCompile(`(?i)\bFTL\b`)
)

// FindLoadMeters tries label-then-value and value-then-label orders around an
// LM/LDM token; a bare 13.6/13,6 anywhere is read as the standard 13.6 m
// trailer as the last resort. The bool reports whether anything matched.
func FindLoadMeters(text string) (float64, bool) {
	if v := MatchOne(ldmLabelFirstRe, text); v != "" {
		return ParseMoney(v), true
	}
	if v := MatchOne(ldmValueFirstRe, text); v != "" {
		return ParseMoney(v), true
	}
	if ldmTrailerRe.MatchString(text) {
		return 13.6, true
	}
	return 0, false
}

// ShipmentType tags FTL on an explicit marker or a load length of at least a
// full trailer's 12 meters.
func ShipmentType(text string, ldm float64, hasLDM bool) string {
	if ftlRe.MatchString(text) || (hasLDM && ldm >= 12.0) {
		return "FTL"
	}
	return ""
}

var (
	blockWeightLabelRe = regexp.MustCompile(`(?i)(?:Total\s*weight|Weight|Poids)\s*[:\.]?\s*([\d\.,]+)`)
	blockWeightUnitRe  = regexp.MustCompile(`(?i)\b([0-9][0-9\.,]{2,})\s*(?:KGS?)\b`)
)

// FindBlockWeight extracts a per-stop weight from one block: a weight label
// followed by a number, else a bare number immediately preceding a KG unit.
func FindBlockWeight(blockText string) (float64, bool) {
	if v := MatchOne(blockWeightLabelRe, blockText); v != "" {
		return ParseWeightToken(v), true
	}
	if v := MatchOne(blockWeightUnitRe, blockText); v != "" {
		return ParseWeightToken(v), true
	}
	return 0, false
}

// ParseWeightToken reads a kilogram amount. Unlike prices, weights use commas
// only for digit grouping ("24,000 KGS" is 24 tonnes), so commas are stripped
// before the numeric parse.
func ParseWeightToken(raw string) float64 {
	return ParseMoney(strings.ReplaceAll(raw, ",", ""))
}

const minPlausibleWeightKG = 1000.0

var (
	weightLineRe      = regexp.MustCompile(`(?im)^\s*(?:Total\s*)?Weight\b[\s\.:]*([\d][\d\s\.,]*)`)
	weightAnywhereRe  = regexp.MustCompile(`(?i)\bweight\b`)
	largeNumberRe     = regexp.MustCompile(`\b\d{1,3}(?:[\s\.,]\d{3})+\b|\b\d{4,6}\b`)
	weightLabelOnlyRe = regexp.MustCompile(`(?i)\b(?:weight|kgs)\b\s*[\.:]*\s*$`)
	groupedKGRe       = regexp.MustCompile(`(?i)\b(\d{2}[\s\.,]\d{3}|\d{5,6}\s*KGS?)\b`)
	metricTonRe       = regexp.MustCompile(`(?i)\b(\d{1,2}(?:[\.,]\d{1,2})?)\s*(?:TONNES?|TONS?|T)\b`)
)

// FindDocumentWeight is the document-level fallback cascade, used only when
// no per-stop weight was found. Each strategy runs in order and the first
// plausible value (>= 1000 kg) wins:
//
//  1. a line-leading weight label on the normalized text
//  2. the same label on the unnormalized text
//  3. any line mentioning "weight" paired with its first large number
//  4. the line immediately following a bare weight/kgs label
//  5. grouped-thousands tokens (25 000 / 25.000 / 25,000), or an ungrouped
//     run with an explicit KG unit, largest wins
//  6. metric tons converted to kilograms
func FindDocumentWeight(d *Document) (float64, bool) {
	if v := MatchOne(weightLineRe, d.Text); v != "" {
		if w := ParseGroupedInt(v); w >= minPlausibleWeightKG {
			return w, true
		}
	}
	if v := MatchOne(weightLineRe, d.RawText()); v != "" {
		if w := ParseGroupedInt(v); w >= minPlausibleWeightKG {
			return w, true
		}
	}
	for _, ln := range d.Lines {
		if !weightAnywhereRe.MatchString(ln) {
			continue
		}
		if num := largeNumberRe.FindString(ln); num != "" {
			if w := ParseGroupedInt(num); w >= minPlausibleWeightKG {
				return w, true
			}
		}
	}
	for i, ln := range d.Lines {
		if !weightLabelOnlyRe.MatchString(ln) || i+1 >= len(d.Lines) {
			continue
		}
		if num := largeNumberRe.FindString(d.Lines[i+1]); num != "" {
			if w := ParseGroupedInt(num); w >= minPlausibleWeightKG {
				return w, true
			}
		}
	}
	best := 0.0
	for _, m := range groupedKGRe.FindAllStringSubmatch(d.Text, -1) {
		if w := ParseGroupedInt(m[1]); w > best {
			best = w
		}
	}
	if best >= minPlausibleWeightKG {
		return best, true
	}
	if v := MatchOne(metricTonRe, d.Text); v != "" {
		if w := ParseMoney(v) * 1000; w >= minPlausibleWeightKG {
			return w, true
		}
	}
	return 0, false
}

var (
	skipCompanyRe = regexp.MustCompile(`(?i)^(REF\b|REF\s*\-|REFERENCE\b|ON:|Weight\b|LM\b|Parc\. nb\b|Pal\. nb\b|Contact\b|Tel\b|Payment terms\b|Instructions\b|Incoterms\b)`)
	virementRe    = regexp.MustCompile(`(?i)\bVIREMENT\b`)
	codePrefixRe  = regexp.MustCompile(`^[A-Z]{2}-[A-Z0-9 ]{3,}`)
	hasLetterRe   = regexp.MustCompile(`[A-Za-z]`)
	punctOnlyRe   = regexp.MustCompile(`^[\W_]+$`)
)

// BlockCompanyName finds the stop's company name. When the block carries an
// explicit REFERENCE line the scan starts right after it; otherwise it starts
// after the block header. Metadata lines and mostly-numeric lines are skipped
// and the first line that looks like a company wins.
func BlockCompanyName(blockLines []string) string {
	refIdx := -1
	for i, ln := range blockLines {
		if referenceRe.MatchString(strings.TrimSpace(ln)) {
			refIdx = i
			break
		}
	}

	start := 0
	if refIdx >= 0 {
		start = refIdx + 1
	} else {
		for i, ln := range blockLines {
			if headerLineRe.MatchString(strings.TrimSpace(ln)) {
				start = i + 1
				break
			}
		}
	}

	for _, ln := range blockLines[min(start, len(blockLines)):] {
		t := strings.TrimSpace(ln)
		if t == "" {
			continue
		}
		if headerLineRe.MatchString(t) {
			break
		}
		if shouldSkipCompanyLine(t) {
			continue
		}
		if looksLikeCompany(t) {
			return t
		}
	}
	return ""
}

func shouldSkipCompanyLine(t string) bool {
	if skipCompanyRe.MatchString(t) || virementRe.MatchString(t) || codePrefixRe.MatchString(t) {
		return true
	}
	digits := 0
	for _, r := range t {
		if r >= '0' && r <= '9' {
			digits++
		}
	}
	threshold := len(t) * 6 / 10
	if threshold < 3 {
		threshold = 3
	}
	return digits >= threshold
}

func looksLikeCompany(t string) bool {
	return hasLetterRe.MatchString(t) && len(t) >= 3 && !punctOnlyRe.MatchString(t)
}

var leadingJunkRe = regexp.MustCompile(`(?i)^[\s\-–•*:;,\.]+|^(instructions?|note|nb)\s*[:\-]\s*`)

// RecoverSentence rebuilds a sentence split across source line breaks around
// the line containing the trigger phrase: up to three preceding lines that do
// not end a sentence are prepended and the immediately following line is
// appended when the trigger line itself does not end one. Leading separator
// and label tokens are stripped.
func RecoverSentence(d *Document, phrase string) string {
	upper := strings.ToUpper(phrase)
	idx := -1
	for i, ln := range d.Lines {
		if strings.Contains(strings.ToUpper(ln), upper) {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ""
	}

	start := idx
	for start > 0 && idx-start < 3 {
		prev := strings.TrimSpace(d.Lines[start-1])
		if prev == "" || strings.HasSuffix(prev, ".") || headerLineRe.MatchString(prev) {
			break
		}
		start--
	}
	end := idx
	if !strings.HasSuffix(strings.TrimSpace(d.Lines[idx]), ".") && idx+1 < len(d.Lines) {
		next := strings.TrimSpace(d.Lines[idx+1])
		if next != "" && !headerLineRe.MatchString(next) {
			end = idx + 1
		}
	}

	var parts []string
	for _, ln := range d.Lines[start : end+1] {
		t := leadingJunkRe.ReplaceAllString(strings.TrimSpace(ln), "")
		if t != "" {
			parts = append(parts, t)
		}
	}
	return NormalizeSpaces(strings.Join(parts, " "))
}
