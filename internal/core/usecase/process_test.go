package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/kirillkom/transport-order-extractor/internal/core/domain"
)

type statusCall struct {
	status domain.DocumentStatus
	errMsg string
}

type processDocsFake struct {
	doc            *domain.Document
	getErr         error
	saveErr        error
	statusErr      error
	statusCalls    []statusCall
	savedFormat    string
	savedOrderID   string
	savedDocument  string
	extractionSeen bool
}

func (f *processDocsFake) Create(context.Context, *domain.Document) error { return nil }

func (f *processDocsFake) GetByID(context.Context, string) (*domain.Document, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	copyDoc := *f.doc
	return &copyDoc, nil
}

func (f *processDocsFake) UpdateStatus(_ context.Context, _ string, status domain.DocumentStatus, errMessage string) error {
	f.statusCalls = append(f.statusCalls, statusCall{status: status, errMsg: errMessage})
	if f.statusErr != nil {
		return f.statusErr
	}
	return nil
}

func (f *processDocsFake) SaveExtraction(_ context.Context, id, format, orderID string) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.extractionSeen = true
	f.savedDocument = id
	f.savedFormat = format
	f.savedOrderID = orderID
	return nil
}

type processOrdersFake struct {
	created *domain.Order
	err     error
}

func (f *processOrdersFake) Create(_ context.Context, order *domain.Order) error {
	if f.err != nil {
		return f.err
	}
	copyOrder := *order
	f.created = &copyOrder
	return nil
}

func (f *processOrdersFake) GetByDocumentID(context.Context, string) (*domain.Order, error) {
	return nil, errors.New("not implemented")
}

func (f *processOrdersFake) List(context.Context, int) ([]domain.Order, error) {
	return nil, errors.New("not implemented")
}

type linesFake struct {
	lines []string
	err   error
}

func (f *linesFake) ExtractLines(context.Context, *domain.Document) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.lines, nil
}

type builderFake struct {
	order  domain.CanonicalOrder
	format string
	err    error
}

func (f *builderFake) BuildOrder([]string, string) (domain.CanonicalOrder, string, error) {
	if f.err != nil {
		return domain.CanonicalOrder{}, "", f.err
	}
	return f.order, f.format, nil
}

func TestProcessByIDSuccess(t *testing.T) {
	docs := &processDocsFake{doc: &domain.Document{ID: "doc-1", Filename: "order.pdf"}}
	orders := &processOrdersFake{}
	uc := NewProcessDocumentUseCase(
		docs,
		orders,
		&linesFake{lines: []string{"LOADING", "DELIVERY"}},
		&builderFake{
			order: domain.CanonicalOrder{
				OrderReference:  "1808432",
				FreightPrice:    1250,
				FreightCurrency: "EUR",
			},
			format: "transalliance",
		},
	)

	if err := uc.ProcessByID(context.Background(), "doc-1"); err != nil {
		t.Fatalf("ProcessByID() error = %v", err)
	}
	if len(docs.statusCalls) != 2 {
		t.Fatalf("expected 2 status calls, got %d", len(docs.statusCalls))
	}
	if docs.statusCalls[0].status != domain.StatusProcessing || docs.statusCalls[1].status != domain.StatusExtracted {
		t.Fatalf("unexpected status sequence: %+v", docs.statusCalls)
	}
	if orders.created == nil {
		t.Fatal("expected persisted order")
	}
	if orders.created.Reference != "1808432" || orders.created.Format != "transalliance" {
		t.Fatalf("order = %+v", orders.created)
	}
	if orders.created.DocumentID != "doc-1" || orders.created.ID == "" {
		t.Fatalf("order identity = %+v", orders.created)
	}
	if !docs.extractionSeen || docs.savedOrderID != orders.created.ID || docs.savedFormat != "transalliance" {
		t.Fatalf("extraction save = %+v", docs)
	}
}

func TestProcessByIDMarksFailedOnUnknownFormat(t *testing.T) {
	docs := &processDocsFake{doc: &domain.Document{ID: "doc-1"}}
	uc := NewProcessDocumentUseCase(
		docs,
		&processOrdersFake{},
		&linesFake{lines: []string{"some text"}},
		&builderFake{err: domain.ErrUnknownFormat},
	)

	err := uc.ProcessByID(context.Background(), "doc-1")
	if !errors.Is(err, domain.ErrUnknownFormat) {
		t.Fatalf("err = %v, want ErrUnknownFormat", err)
	}
	if len(docs.statusCalls) != 2 || docs.statusCalls[1].status != domain.StatusFailed {
		t.Fatalf("expected final failed status, got %+v", docs.statusCalls)
	}
	if docs.statusCalls[1].errMsg == "" {
		t.Fatal("expected dispatch error recorded on the document")
	}
}

func TestProcessByIDMarksFailedOnEmptyLines(t *testing.T) {
	docs := &processDocsFake{doc: &domain.Document{ID: "doc-1"}}
	uc := NewProcessDocumentUseCase(
		docs,
		&processOrdersFake{},
		&linesFake{lines: nil},
		&builderFake{format: "ziegler"},
	)

	err := uc.ProcessByID(context.Background(), "doc-1")
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("err = %v, want ErrInvalidInput", err)
	}
	if len(docs.statusCalls) != 2 || docs.statusCalls[1].status != domain.StatusFailed {
		t.Fatalf("expected final failed status, got %+v", docs.statusCalls)
	}
}

func TestProcessByIDMarksFailedOnPersistError(t *testing.T) {
	docs := &processDocsFake{doc: &domain.Document{ID: "doc-1"}}
	uc := NewProcessDocumentUseCase(
		docs,
		&processOrdersFake{err: errors.New("insert failed")},
		&linesFake{lines: []string{"ZIEGLER UK LTD"}},
		&builderFake{format: "ziegler"},
	)

	if err := uc.ProcessByID(context.Background(), "doc-1"); err == nil {
		t.Fatal("expected error")
	}
	if len(docs.statusCalls) != 2 || docs.statusCalls[1].status != domain.StatusFailed {
		t.Fatalf("expected final failed status, got %+v", docs.statusCalls)
	}
}
