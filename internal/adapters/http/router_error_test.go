package httpadapter

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kirillkom/transport-order-extractor/internal/config"
	"github.com/kirillkom/transport-order-extractor/internal/core/domain"
)

type docsErrFake struct {
	err error
}

func (f docsErrFake) GetByID(context.Context, string) (*domain.Document, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &domain.Document{
		ID:          "doc-1",
		Filename:    "booking.pdf",
		MimeType:    "application/pdf",
		StoragePath: "doc-1_booking.pdf",
		Status:      domain.StatusExtracted,
	}, nil
}

type ordersErrFake struct {
	err error
}

func (f ordersErrFake) GetByDocumentID(context.Context, string) (*domain.Order, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &domain.Order{ID: "order-1", DocumentID: "doc-1", Reference: "1808432", Format: "transalliance"}, nil
}

func (f ordersErrFake) List(context.Context, int) ([]domain.Order, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []domain.Order{{ID: "order-1", Reference: "1808432"}}, nil
}

type exportErrFake struct {
	err error
}

func (f exportErrFake) ExportOrders(context.Context, int) ([]byte, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []byte("xlsx-bytes"), nil
}

func newErrorRouter(docs docsErrFake, orders ordersErrFake, export exportErrFake) http.Handler {
	return NewRouter(
		config.Config{ExportLimit: 500},
		ingestSuccessFake{},
		docs,
		orders,
		export,
	).Handler()
}

func TestGetDocumentByIDReturns404ForNotFound(t *testing.T) {
	handler := newErrorRouter(
		docsErrFake{err: domain.WrapError(domain.ErrDocumentNotFound, "get", errors.New("id=missing"))},
		ordersErrFake{},
		exportErrFake{},
	)

	req := httptest.NewRequest(http.MethodGet, "/v1/documents/missing", nil)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", res.Code)
	}
}

func TestGetOrderByDocumentIDReturns404ForNotFound(t *testing.T) {
	handler := newErrorRouter(
		docsErrFake{},
		ordersErrFake{err: domain.WrapError(domain.ErrOrderNotFound, "get", errors.New("document_id=doc-9"))},
		exportErrFake{},
	)

	req := httptest.NewRequest(http.MethodGet, "/v1/documents/doc-9/order", nil)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", res.Code)
	}
}

func TestGetOrderByDocumentIDSuccess(t *testing.T) {
	handler := newErrorRouter(docsErrFake{}, ordersErrFake{}, exportErrFake{})

	req := httptest.NewRequest(http.MethodGet, "/v1/documents/doc-1/order", nil)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.Code)
	}
}

func TestListOrdersRejectsInvalidLimit(t *testing.T) {
	handler := newErrorRouter(docsErrFake{}, ordersErrFake{}, exportErrFake{})

	req := httptest.NewRequest(http.MethodGet, "/v1/orders?limit=abc", nil)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", res.Code)
	}
}

func TestExportOrdersSetsSpreadsheetHeaders(t *testing.T) {
	handler := newErrorRouter(docsErrFake{}, ordersErrFake{}, exportErrFake{})

	req := httptest.NewRequest(http.MethodGet, "/v1/orders/export", nil)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.Code)
	}
	if got := res.Header().Get("Content-Type"); got != "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet" {
		t.Fatalf("content type = %q", got)
	}
	if res.Header().Get("Content-Disposition") == "" {
		t.Fatalf("expected attachment disposition header")
	}
}

func TestExportOrdersMapsTemporaryErrorTo503(t *testing.T) {
	handler := newErrorRouter(
		docsErrFake{},
		ordersErrFake{},
		exportErrFake{err: domain.WrapError(domain.ErrTemporary, "export", errors.New("circuit open"))},
	)

	req := httptest.NewRequest(http.MethodGet, "/v1/orders/export", nil)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", res.Code)
	}
}
