package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/kirillkom/transport-order-extractor/internal/core/domain"
)

func newOrderRepoWithMock(t *testing.T) (*OrderRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error = %v", err)
	}
	return &OrderRepository{db: db}, mock, func() { _ = db.Close() }
}

func TestOrderGetByDocumentIDReturnsDomainNotFound(t *testing.T) {
	repo, mock, done := newOrderRepoWithMock(t)
	defer done()

	mock.ExpectQuery("SELECT id, document_id, reference, format").
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByDocumentID(context.Background(), "missing")
	if err == nil {
		t.Fatalf("expected error")
	}
	if !domain.IsKind(err, domain.ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestOrderCreateSerializesPayload(t *testing.T) {
	repo, mock, done := newOrderRepoWithMock(t)
	defer done()

	mock.ExpectExec("INSERT INTO orders").
		WithArgs("order-1", "doc-1", "1808432", "transalliance", 1250.0, "EUR", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Create(context.Background(), &domain.Order{
		ID:         "order-1",
		DocumentID: "doc-1",
		Reference:  "1808432",
		Format:     "transalliance",
		Price:      1250,
		Currency:   "EUR",
		Payload:    domain.CanonicalOrder{OrderReference: "1808432"},
		CreatedAt:  time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestOrderListRoundTripsPayload(t *testing.T) {
	repo, mock, done := newOrderRepoWithMock(t)
	defer done()

	now := time.Now().UTC()
	payload := []byte(`{"order_reference":"LEJ0012345","freight_price":950,"freight_currency":"EUR",` +
		`"attachment_filenames":[],"customer":{"side":"sender","details":{"company":"Ziegler UK Ltd"}},` +
		`"loading_locations":[],"destination_locations":[],"cargos":[],"comment":""}`)
	cols := []string{"id", "document_id", "reference", "format", "price", "currency", "payload", "created_at"}

	mock.ExpectQuery("SELECT id, document_id, reference, format").
		WithArgs(50).
		WillReturnRows(sqlmock.NewRows(cols).AddRow(
			"order-1", "doc-1", "LEJ0012345", "ziegler", 950.0, "EUR", payload, now,
		))

	orders, err := repo.List(context.Background(), 50)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(orders) != 1 {
		t.Fatalf("orders = %d, want 1", len(orders))
	}
	if orders[0].Payload.OrderReference != "LEJ0012345" || orders[0].Payload.Customer.Details.Company != "Ziegler UK Ltd" {
		t.Fatalf("payload = %+v", orders[0].Payload)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}
