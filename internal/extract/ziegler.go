package extract

import (
	"regexp"
	"strings"

	"github.com/kirillkom/transport-order-extractor/internal/core/domain"
)

const FormatZiegler = "ziegler"

var (
	zgRefRe      = regexp.MustCompile(`(?i)Ziegler\s*Ref\s*[:\-]?\s*([A-Z0-9\/\- ]+)`)
	zgRateRe     = regexp.MustCompile(`(?i)\bRate\b\s*[€£$]?\s*([0-9\.,]+)`)
	zgNameRe     = regexp.MustCompile(`(?i)^(?:Collection|Delivery)\s+([^\r\n]+)`)
	zgLocalRefRe = regexp.MustCompile(`(?i)\bREF[:\s\-]*([A-Z0-9\-\/]+)`)
	zgSlotRe     = regexp.MustCompile(`(?i)\b(BOOKED-?\s*\d{1,2}:\d{2}\s*(?:AM|PM)?|\d{1,2}h\d{2}\s*[-–]\s*\d{1,2}h\d{2}|\d{2}:\d{2}\s*[-–]\s*\d{2}:\d{2}|\d{4}\s*[-–]\s*\d{4})\b`)
	zgPalletsRe  = regexp.MustCompile(`(?i)(\d+)\s*PALLETS?`)
	zgWeightRe   = regexp.MustCompile(`(?i)(\d{2,3}[.,]?\d{0,3})\s*(?:KGS?)\b`)
	zgNotesRe    = regexp.MustCompile(`(?i)(BOOKED[^,.\n]*|slot will be provided soon|Sevington|Clearance|PICK UP T1)`)

	zgAddressRule = AddressRule{
		KeepOnly: regexp.MustCompile(`(?i)(\b(?:ROAD|ST|AVE|RUE|DEPOT|LONDON)\b|\bGB-|\bFR\b|[A-Z]{1,2}\d[\w ]+\d[A-Z]{2}|\b\d{5}\b)`),
	}
)

// NewZiegler builds the extractor for Ziegler UK booking sheets. Stops open
// on COLLECTION/DELIVERY headers whose remainder is the site name; rates use
// currency symbols rather than codes.
func NewZiegler(corrections []AddressCorrection) *Pipeline {
	return NewPipeline(FormatSpec{
		Name: FormatZiegler,
		Keywords: []string{
			"ZIEGLER UK LTD",
			"ZIEGLER REF",
			"PLEASE FIND BELOW THE BOOKING",
		},
		Headers: []HeaderRule{
			{Prefix: "COLLECTION", Type: StopPickup},
			{Prefix: "DELIVERY", Type: StopDelivery},
		},
		DefaultCurrency: "EUR",
		DocumentFields:  zgDocumentFields,
		Stop:            zgStop,
		Cargo:           zgCargo,
		Customer:        zgCustomer,
		Comment:         zgComment,
		Corrections:     corrections,
	})
}

func zgDocumentFields(d *Document, _ string) DocumentFields {
	df := DocumentFields{
		Currency: zgCurrency(d.Text),
	}
	if ref := MatchOne(zgRefRe, d.Text); ref != "" {
		df.Reference = NormalizeSpaces(ref)
	}
	if raw := MatchOne(zgRateRe, d.Text); raw != "" {
		df.Price = ParseMoney(raw)
	}
	return df
}

func zgCurrency(text string) string {
	switch {
	case strings.Contains(text, "€"):
		return "EUR"
	case strings.Contains(text, "£"):
		return "GBP"
	case strings.Contains(text, "$"):
		return "USD"
	}
	return ""
}

func zgStop(_ *Document, b Block, _ DocumentFields) Stop {
	blockText := b.Text()

	date := FirstDate(blockText)
	windowStart, windowEnd := ParseTimeWindow(MatchOne(zgSlotRe, blockText))
	name := MatchOne(zgNameRe, blockText)
	addr := GuessAddress(b.Lines, zgAddressRule)

	stop := AssembleStop(b.Type, name, addr, date, windowStart, windowEnd, zgStopNotes(b))
	stop.Pallets = int(ParseGroupedInt(MatchOne(zgPalletsRe, blockText)))
	if v := MatchOne(zgWeightRe, blockText); v != "" {
		stop.Weight = ParseWeightToken(v)
		stop.HasWeight = true
	}
	return stop
}

// zgStopNotes joins the block's local reference with every line carrying a
// known booking instruction trigger.
func zgStopNotes(b Block) string {
	var notes []string
	if ref := MatchOne(zgLocalRefRe, b.Text()); ref != "" {
		notes = append(notes, "REF: "+ref)
	}
	for _, ln := range b.Lines {
		t := strings.TrimSpace(ln)
		if t == "" {
			continue
		}
		if zgNotesRe.MatchString(t) {
			notes = append(notes, t)
		}
	}
	return strings.Join(notes, "; ")
}

func zgCargo(d *Document, _ DocumentFields, stops []Stop) domain.Cargo {
	cargo := domain.Cargo{
		Title:       "General cargo",
		PackageType: "other",
	}
	if pallets := MaxStopPallets(stops); pallets > 0 {
		cargo.PackageType = "pallet"
		cargo.PackageCount = pallets
		cargo.Palletized = true
	}
	if total, found := SumStopWeights(stops); found {
		cargo.Weight = total
	} else if w, ok := FindDocumentWeight(d); ok {
		cargo.Weight = w
	}
	return cargo
}

func zgCustomer(_ *Document, _ DocumentFields) domain.Customer {
	return domain.Customer{
		Side:    "sender",
		Details: domain.CustomerDetails{Company: "Ziegler UK Ltd"},
	}
}

// zgComment folds the standard Ziegler booking terms into one comment.
func zgComment(d *Document, _ DocumentFields) string {
	upper := strings.ToUpper(d.Text)
	var terms []string
	if strings.Contains(upper, "BIFA") {
		terms = append(terms, "All business is conducted under BIFA terms.")
	}
	if strings.Contains(upper, "PLEASE QUOTE OUR REFERENCE NUMBER") {
		terms = append(terms, "Invoice must quote Ziegler reference number.")
	}
	if strings.Contains(upper, "SIGNED POD") {
		terms = append(terms, "Invoice must include signed POD/CMR.")
	}
	if strings.Contains(upper, "DELIVERY TO ANY ADDRESS OTHER THAN THE ONE MENTIONED ABOVE IS STRICTLY PROHIBITED") {
		terms = append(terms, "Deliver only to the stated address.")
	}
	return strings.Join(terms, " ")
}
