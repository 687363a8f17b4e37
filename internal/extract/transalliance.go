package extract

import (
	"regexp"
	"strings"

	"github.com/kirillkom/transport-order-extractor/internal/core/domain"
)

const FormatTransalliance = "transalliance"

var (
	taPriceRe     = regexp.MustCompile(`(?i)SHIPPING\s+PRICE[^\d]*([\d\.,\s]+)`)
	taCurrencyRe  = regexp.MustCompile(`(?i)\b(EUR|GBP|USD|PLN|ZAR)\b`)
	taIncotermsRe = regexp.MustCompile(`(?i)\bIncoterms\b[:\s\-]*([A-Z]{3})`)
	taTractRe     = regexp.MustCompile(`(?i)Tract\.?\s*registr\.?\s*:\s*([^\r\n]+)`)
	taAllOTRe     = regexp.MustCompile(`(?i)\bOT\s*[:\-]?\s*([A-Z0-9]+)\b`)

	taGoodsRe       = regexp.MustCompile(`(?i)(?:M\.?\s*nature|nature of goods|goods)\s*[:\-]?\s*([^\r\n]+)`)
	taPalletsRe     = regexp.MustCompile(`(?i)\b(?:Pal\.?\s*nb|PALLETS?)\b[^\n]*?([\d\.,]+)`)
	taParcelsRe     = regexp.MustCompile(`(?i)\bParc\.\s*nb\b[^\n]*?([\d\.,]+)`)
	taSlotRe        = regexp.MustCompile(`(?i)\b(\d{1,2}h\d{2}\s*[-–]\s*\d{1,2}h\d{2}|\d{2}:\d{2}\s*[-–]\s*\d{2}:\d{2})\b`)
	taPaymentRe     = regexp.MustCompile(`(?i)Payment\s+terms\s*:\s*([^\r\n]+)`)
	taInstrRe       = regexp.MustCompile(`(?i)Instructions?\s*:\s*([^\r\n]+)`)
	taCommercialRe  = regexp.MustCompile(`(?i)Commercial\s+sender[\s\S]*?non\s*[- ]?compliance\.`)
	taClientRe      = regexp.MustCompile(`(?i)\bTest\s+Client\s+\d+\b`)
	taVATRe         = regexp.MustCompile(`\b([A-Z]{2}\d{9,12})\b`)
	taStreetExactRe = regexp.MustCompile(`(?i)ROGIU\s*G\.?\s*2\s*[-–]\s*VILNIA?US\s*M\.?\s*VILNIA?US\s*M\.?\s*SAV`)
	taStreetAnyRe   = regexp.MustCompile(`(?i)ROGIU\s*G\.?\s*\d+[^\r\n]*`)
	taLTZipRe       = regexp.MustCompile(`\b0\d{4}\b`)
	taLTTokenRe     = regexp.MustCompile(`\bLT\b`)

	taAddressRule = AddressRule{
		AfterReference: true,
		Terminators:    regexp.MustCompile(`(?i)^(M\.?\s*nature|nature of goods|goods|Instructions|Payment terms|Incoterms)\b`),
		Skip: []*regexp.Regexp{
			regexp.MustCompile(`(?i)^(LM|Parc\. nb|Pal\. nb|Weight|Contact|Tel)\b`),
			regexp.MustCompile(`(?i)\bVIREMENT\b`),
			regexp.MustCompile(`(?i)\b\d{1,2}h\d{2}\b|\b\d{2}:\d{2}\b|\bKGS?\b`),
		},
	}
)

const taExchangeVoucherPhrase = "BON D'ECHANGE"

// DefaultTransallianceCorrections are the known mangled partner sites; an
// overlay file can replace them per deployment.
var DefaultTransallianceCorrections = MustCorrections([]AddressCorrection{
	{
		Stop:          StopPickup,
		NameContains:  "DP WORLD LONDON GATEWAY PORT",
		StreetAddress: "1 LONDON GATEWAY",
		PostalCode:    "SS17 9DY",
		City:          "CORRINGHAM, STANFORD",
		Country:       "GB",
	},
	{
		Stop:          StopDelivery,
		AddressMatch:  `ZI\s+DISTRIPORT\s*,?\s*2\s+RUE\s+DE\s+TOKYO`,
		StreetAddress: "ZI DISTRIPORT 2 RUE DE TOKYO",
		PostalCode:    "13230",
		City:          "PORT-SAINT-LOUIS-DU-RHONE",
		Country:       "FR",
	},
})

// NewTransalliance builds the extractor for Transalliance TS booking
// confirmations. LOADING/DELIVERY header lines open stops; most field labels
// are French-accented English ("Pal. nb", "Tract. registr.").
func NewTransalliance(corrections []AddressCorrection) *Pipeline {
	if corrections == nil {
		corrections = DefaultTransallianceCorrections
	}
	return NewPipeline(FormatSpec{
		Name:     FormatTransalliance,
		Keywords: []string{"TRANSALLIANCE"},
		Headers: []HeaderRule{
			{Prefix: "LOADING", Type: StopPickup},
			{Prefix: "DELIVERY", Type: StopDelivery},
		},
		DefaultCurrency: "EUR",
		DocumentFields:  taDocumentFields,
		Stop:            taStop,
		Cargo:           taCargo,
		Customer:        taCustomer,
		Comment:         taComment,
		Corrections:     corrections,
	})
}

func taDocumentFields(d *Document, _ string) DocumentFields {
	cargoNumber := FindCargoNumber(d.Text)

	df := DocumentFields{
		Reference:   FindOrderReference(d.Text, cargoNumber),
		CargoNumber: cargoNumber,
		Currency:    strings.ToUpper(MatchOne(taCurrencyRe, d.Text)),
		Incoterms:   strings.ToUpper(MatchOne(taIncotermsRe, d.Text)),
	}
	if raw := MatchOne(taPriceRe, d.Text); raw != "" {
		df.Price = ParseMoney(raw)
	}
	df.TransportNumbers = taTransportNumbers(d.Text)
	return df
}

// taTransportNumbers joins the tractor registration with every OT token
// found in the document.
func taTransportNumbers(text string) string {
	out := MatchOne(taTractRe, text)

	seen := make(map[string]bool)
	var ots []string
	for _, m := range taAllOTRe.FindAllStringSubmatch(text, -1) {
		ot := strings.ToUpper(m[1])
		if ot == "" || seen[ot] {
			continue
		}
		seen[ot] = true
		ots = append(ots, "OT "+ot)
	}
	if len(ots) > 0 {
		joined := strings.Join(ots, ", ")
		if out != "" {
			out += "; " + joined
		} else {
			out = joined
		}
	}
	return out
}

func taStop(d *Document, b Block, df DocumentFields) Stop {
	blockText := b.Text()

	date := FirstDate(blockText)
	windowStart, windowEnd := ParseTimeWindow(MatchOne(taSlotRe, blockText))
	name := BlockCompanyName(b.Lines)
	addr := GuessAddress(b.Lines, taAddressRule)

	stop := AssembleStop(b.Type, name, addr, date, windowStart, windowEnd, taStopNotes(d, b.Type, df))
	if w, ok := FindBlockWeight(blockText); ok {
		stop.Weight = w
		stop.HasWeight = true
	}
	return stop
}

// taStopNotes assembles per-stop instructions from document-wide trigger
// phrases plus the cargo number.
func taStopNotes(d *Document, typ StopType, df DocumentFields) string {
	upper := strings.ToUpper(d.Text)
	if typ == StopPickup {
		if df.CargoNumber == "" {
			return ""
		}
		if strings.Contains(upper, "BAR MUST BE SCANNED") {
			return "REF: " + df.CargoNumber + ". Instructions: BAR MUST BE SCANNED."
		}
		return "REF: " + df.CargoNumber + "."
	}

	if !strings.Contains(upper, taExchangeVoucherPhrase) {
		return ""
	}
	ref := df.CargoNumber
	if ref == "" {
		ref = df.Reference
	}
	notes := "REF: " + ref + "."
	if sentence := RecoverSentence(d, taExchangeVoucherPhrase); sentence != "" {
		notes += " Instructions: " + sentence
	}
	return notes
}

func taCargoTitle(text string) string {
	if strings.Contains(strings.ToUpper(text), "PACKAGING") {
		return "PACKAGING"
	}
	if v := MatchOne(taGoodsRe, text); v != "" {
		return v
	}
	return "General cargo"
}

func taPallets(text string) int {
	raw := MatchOne(taPalletsRe, text)
	if raw == "" {
		raw = MatchOne(taParcelsRe, text)
	}
	return int(ParseGroupedInt(raw))
}

func taCargo(d *Document, df DocumentFields, stops []Stop) domain.Cargo {
	title := taCargoTitle(d.Text)
	pallets := taPallets(d.Text)
	ldm, hasLDM := FindLoadMeters(d.Text)
	shipType := ShipmentType(d.Text, ldm, hasLDM)

	cargo := domain.Cargo{
		Title:       title,
		PackageType: "other",
		Type:        shipType,
		Number:      df.CargoNumber,
	}
	if pallets > 0 || title == "PACKAGING" {
		cargo.PackageType = "pallet"
		cargo.Palletized = true
	}
	if pallets > 0 {
		cargo.PackageCount = pallets
	}
	if hasLDM {
		cargo.LDM = ldm
	}

	if total, found := SumStopWeights(stops); found {
		cargo.Weight = total
	} else if w, ok := FindDocumentWeight(d); ok {
		cargo.Weight = w
	} else if (shipType == "FTL" || (hasLDM && ldm >= 13.0)) && title == "PACKAGING" {
		// Packed full trailers in this format ship at the legal maximum.
		cargo.Weight = 25000.0
	}
	return cargo
}

// taCustomer reads the receiver details: the client name, an EU VAT code and
// the Lithuanian address block the format prints for the booking party.
func taCustomer(d *Document, _ DocumentFields) domain.Customer {
	details := domain.CustomerDetails{}
	if m := taClientRe.FindString(d.Text); m != "" {
		details.Company = strings.TrimSpace(m)
	}
	details.VATCode = MatchOne(taVATRe, d.Text)

	upper := strings.ToUpper(d.Text)
	switch {
	case taStreetExactRe.MatchString(d.Text):
		details.StreetAddress = "Rogiu G. 2 - VILNIUS M. VILNIUS M. SAV"
	case taStreetAnyRe.MatchString(d.Text):
		details.StreetAddress = strings.TrimSpace(taStreetAnyRe.FindString(d.Text))
	case strings.HasPrefix(strings.ToUpper(details.VATCode), "LT") && strings.Contains(upper, "VILNIUS"):
		details.StreetAddress = "Rogiu G. 2 - VILNIUS M. VILNIUS M. SAV"
	}

	details.PostalCode = taLTZipRe.FindString(d.Text)
	if strings.Contains(upper, "VILNIUS") {
		details.City = "VILNIUS"
	}
	if taLTTokenRe.MatchString(d.Text) {
		details.Country = "LT"
	}
	if details.Company == "" {
		details.Company = "Transalliance TS Ltd"
	}
	return domain.Customer{Side: "receiver", Details: details}
}

func taComment(d *Document, _ DocumentFields) string {
	if taCommercialRe.MatchString(d.Text) || strings.Contains(strings.ToUpper(d.Text), "TRANSALLIANCE TS LTD") {
		return "Commercial sender (service provider): TRANSALLIANCE TS LTD. " +
			"Document must be returned signed 'Agreed to' with commercial stamp and company register. " +
			"Returnable pallets must be exchanged at departure; penalties may apply for non-compliance."
	}

	ldm, hasLDM := FindLoadMeters(d.Text)
	if ShipmentType(d.Text, ldm, hasLDM) == "" && !hasLDM {
		return ""
	}
	var bits []string
	if v := MatchOne(taPaymentRe, d.Text); v != "" {
		bits = append(bits, "Payment terms: "+v)
	}
	if v := MatchOne(taInstrRe, d.Text); v != "" {
		bits = append(bits, "Instructions: "+v)
	}
	return strings.Join(bits, " | ")
}
