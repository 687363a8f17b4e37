package domain

import "time"

// CanonicalOrder is the fixed-shape record handed to the downstream
// order-management system. Every required field is populated even when the
// source document was incomplete; optional fields are omitted when empty.
type CanonicalOrder struct {
	AttachmentFilenames  []string   `json:"attachment_filenames"`
	Customer             Customer   `json:"customer"`
	LoadingLocations     []Location `json:"loading_locations"`
	DestinationLocations []Location `json:"destination_locations"`
	Cargos               []Cargo    `json:"cargos"`
	OrderReference       string     `json:"order_reference"`
	FreightPrice         float64    `json:"freight_price"`
	FreightCurrency      string     `json:"freight_currency"`
	Comment              string     `json:"comment"`
	TransportNumbers     string     `json:"transport_numbers,omitempty"`
	Incoterms            string     `json:"incoterms,omitempty"`
}

type Location struct {
	CompanyAddress CompanyAddress `json:"company_address"`
	Time           *TimeRange     `json:"time,omitempty"`
}

type CompanyAddress struct {
	Company       string `json:"company"`
	StreetAddress string `json:"street_address"`
	City          string `json:"city,omitempty"`
	PostalCode    string `json:"postal_code,omitempty"`
	Country       string `json:"country,omitempty"`
	Comment       string `json:"comment,omitempty"`
}

type TimeRange struct {
	DatetimeFrom string `json:"datetime_from"`
	DatetimeTo   string `json:"datetime_to,omitempty"`
}

type Cargo struct {
	Title        string  `json:"title"`
	PackageType  string  `json:"package_type"`
	PackageCount int     `json:"package_count,omitempty"`
	LDM          float64 `json:"ldm,omitempty"`
	Weight       float64 `json:"weight,omitempty"`
	Type         string  `json:"type,omitempty"`
	Palletized   bool    `json:"palletized,omitempty"`
	Number       string  `json:"number,omitempty"`
}

type Customer struct {
	Side    string          `json:"side"`
	Details CustomerDetails `json:"details"`
}

type CustomerDetails struct {
	Company       string `json:"company"`
	VATCode       string `json:"vat_code,omitempty"`
	StreetAddress string `json:"street_address,omitempty"`
	PostalCode    string `json:"postal_code,omitempty"`
	City          string `json:"city,omitempty"`
	Country       string `json:"country,omitempty"`
}

// Order wraps a CanonicalOrder for persistence, keyed to the source document.
type Order struct {
	ID         string         `json:"id"`
	DocumentID string         `json:"document_id"`
	Reference  string         `json:"reference"`
	Format     string         `json:"format"`
	Price      float64        `json:"price"`
	Currency   string         `json:"currency"`
	Payload    CanonicalOrder `json:"payload"`
	CreatedAt  time.Time      `json:"created_at"`
}
