package extract

import (
	"github.com/kirillkom/transport-order-extractor/internal/core/domain"
)

// BuildInput carries everything the schema builder folds into the canonical
// record.
type BuildInput struct {
	AttachmentFilename string
	Customer           domain.Customer
	Stops              []Stop
	Cargo              domain.Cargo
	Reference          string
	Price              float64
	Currency           string
	DefaultCurrency    string
	Comment            string
	TransportNumbers   string
	Incoterms          string
}

// BuildOrder aggregates stops and document-level fields into a structurally
// complete CanonicalOrder. Loading/destination lists and the cargo list are
// never empty; the reference falls back to the attachment filename and then
// the literal "unknown".
func BuildOrder(in BuildInput) domain.CanonicalOrder {
	attachments := []string{}
	if in.AttachmentFilename != "" {
		attachments = append(attachments, in.AttachmentFilename)
	}

	reference := in.Reference
	if reference == "" {
		reference = in.AttachmentFilename
	}
	if reference == "" {
		reference = "unknown"
	}

	currency := in.Currency
	if currency == "" {
		currency = in.DefaultCurrency
	}
	if currency == "" {
		currency = "EUR"
	}

	var loading, destination []domain.Location
	for _, s := range in.Stops {
		loc := stopToLocation(s)
		switch s.Type {
		case StopPickup:
			loading = append(loading, loc)
		case StopDelivery:
			destination = append(destination, loc)
		}
	}
	if len(loading) == 0 {
		loading = append(loading, placeholderLocation())
	}
	if len(destination) == 0 {
		destination = append(destination, placeholderLocation())
	}

	cargo := in.Cargo
	if cargo.Title == "" {
		cargo.Title = "General cargo"
	}
	if cargo.PackageType == "" {
		cargo.PackageType = "other"
	}

	return domain.CanonicalOrder{
		AttachmentFilenames:  attachments,
		Customer:             in.Customer,
		LoadingLocations:     loading,
		DestinationLocations: destination,
		Cargos:               []domain.Cargo{cargo},
		OrderReference:       reference,
		FreightPrice:         in.Price,
		FreightCurrency:      currency,
		Comment:              in.Comment,
		TransportNumbers:     in.TransportNumbers,
		Incoterms:            in.Incoterms,
	}
}

func stopToLocation(s Stop) domain.Location {
	company := s.Name
	if company == "" {
		company = "Unknown"
	}
	addr := domain.CompanyAddress{
		Company:       company,
		StreetAddress: s.Address,
		Comment:       s.Notes,
	}
	if len(s.City) >= 2 {
		addr.City = s.City
	}
	addr.PostalCode = s.PostalCode
	if len(s.Country) == 2 {
		addr.Country = s.Country
	}

	loc := domain.Location{CompanyAddress: addr}
	if s.Date != "" {
		from := s.Date + "T00:00:00Z"
		if s.WindowStart != "" {
			from = s.Date + "T" + s.WindowStart + ":00Z"
		}
		tr := &domain.TimeRange{DatetimeFrom: from}
		if s.WindowEnd != "" {
			tr.DatetimeTo = s.Date + "T" + s.WindowEnd + ":00Z"
		}
		loc.Time = tr
	}
	return loc
}

func placeholderLocation() domain.Location {
	return domain.Location{
		CompanyAddress: domain.CompanyAddress{Company: "Unknown", StreetAddress: ""},
	}
}

// SumStopWeights folds per-stop weights into a total; found reports whether
// any stop carried one.
func SumStopWeights(stops []Stop) (total float64, found bool) {
	for _, s := range stops {
		if s.HasWeight {
			total += s.Weight
			found = true
		}
	}
	return total, found
}

// MaxStopPallets returns the largest per-stop pallet count.
func MaxStopPallets(stops []Stop) int {
	best := 0
	for _, s := range stops {
		if s.Pallets > best {
			best = s.Pallets
		}
	}
	return best
}
