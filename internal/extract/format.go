package extract

import (
	"strings"

	"github.com/kirillkom/transport-order-extractor/internal/core/domain"
)

// Extractor is the two-operation contract every partner format implements.
// ValidateFormat is a pure test over the raw lines; ProcessLines is total and
// never fails, degrading to defaults instead.
type Extractor interface {
	Name() string
	ValidateFormat(lines []string) bool
	ProcessLines(lines []string, attachmentFilename string) domain.CanonicalOrder
}

// DocumentFields are the order-level values extracted once per document and
// shared with the per-stop hooks.
type DocumentFields struct {
	Reference        string
	CargoNumber      string
	Price            float64
	Currency         string
	Incoterms        string
	TransportNumbers string
}

// FormatSpec describes one partner layout declaratively: detection keywords,
// block header tokens and the handful of format-specific hooks. Everything
// else (segmentation, value normalization, schema assembly, corrections) is
// shared pipeline code.
type FormatSpec struct {
	Name            string
	Keywords        []string
	Headers         []HeaderRule
	DefaultCurrency string

	DocumentFields func(d *Document, attachment string) DocumentFields
	Stop           func(d *Document, b Block, df DocumentFields) Stop
	Cargo          func(d *Document, df DocumentFields, stops []Stop) domain.Cargo
	Customer       func(d *Document, df DocumentFields) domain.Customer
	Comment        func(d *Document, df DocumentFields) string

	Corrections []AddressCorrection
}

// Pipeline runs the shared extraction flow for one FormatSpec.
type Pipeline struct {
	spec FormatSpec
}

func NewPipeline(spec FormatSpec) *Pipeline {
	return &Pipeline{spec: spec}
}

func (p *Pipeline) Name() string { return p.spec.Name }

func (p *Pipeline) ValidateFormat(lines []string) bool {
	hay := strings.ToUpper(strings.Join(lines, "\n"))
	for _, kw := range p.spec.Keywords {
		if strings.Contains(hay, strings.ToUpper(kw)) {
			return true
		}
	}
	return false
}

func (p *Pipeline) ProcessLines(lines []string, attachmentFilename string) domain.CanonicalOrder {
	d := NewDocument(lines)

	df := p.spec.DocumentFields(d, attachmentFilename)
	blocks := SplitBlocks(d.Lines, p.spec.Headers)

	stops := make([]Stop, 0, len(blocks))
	for _, b := range blocks {
		stop := p.spec.Stop(d, b, df)
		for _, c := range p.spec.Corrections {
			c.Apply(&stop)
		}
		stops = append(stops, stop)
	}

	return BuildOrder(BuildInput{
		AttachmentFilename: attachmentFilename,
		Customer:           p.spec.Customer(d, df),
		Stops:              stops,
		Cargo:              p.spec.Cargo(d, df, stops),
		Reference:          df.Reference,
		Price:              df.Price,
		Currency:           df.Currency,
		DefaultCurrency:    p.spec.DefaultCurrency,
		Comment:            p.spec.Comment(d, df),
		TransportNumbers:   df.TransportNumbers,
		Incoterms:          df.Incoterms,
	})
}

// Dispatcher tries format extractors in priority order and runs the first
// whose detection check passes.
type Dispatcher struct {
	extractors []Extractor
}

func NewDispatcher(extractors ...Extractor) *Dispatcher {
	return &Dispatcher{extractors: extractors}
}

// Match returns the first extractor accepting the lines.
func (dp *Dispatcher) Match(lines []string) (Extractor, bool) {
	for _, ex := range dp.extractors {
		if ex.ValidateFormat(lines) {
			return ex, true
		}
	}
	return nil, false
}

// BuildOrder dispatches and extracts in one step, reporting the matched
// format name. It fails only when no format matches.
func (dp *Dispatcher) BuildOrder(lines []string, attachmentFilename string) (domain.CanonicalOrder, string, error) {
	ex, ok := dp.Match(lines)
	if !ok {
		return domain.CanonicalOrder{}, "", domain.ErrUnknownFormat
	}
	return ex.ProcessLines(lines, attachmentFilename), ex.Name(), nil
}
