package usecase

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/kirillkom/transport-order-extractor/internal/core/domain"
)

type exportOrdersFake struct {
	orders    []domain.Order
	seenLimit int
	err       error
}

func (f *exportOrdersFake) Create(context.Context, *domain.Order) error {
	return errors.New("not implemented")
}

func (f *exportOrdersFake) GetByDocumentID(context.Context, string) (*domain.Order, error) {
	return nil, errors.New("not implemented")
}

func (f *exportOrdersFake) List(_ context.Context, limit int) ([]domain.Order, error) {
	f.seenLimit = limit
	if f.err != nil {
		return nil, f.err
	}
	return f.orders, nil
}

type exporterFake struct {
	data []byte
	seen []domain.Order
	err  error
}

func (f *exporterFake) Export(_ context.Context, orders []domain.Order) ([]byte, error) {
	f.seen = orders
	if f.err != nil {
		return nil, f.err
	}
	return f.data, nil
}

func TestExportOrdersSuccess(t *testing.T) {
	repo := &exportOrdersFake{orders: []domain.Order{{ID: "o-1", Reference: "1808432"}}}
	exporter := &exporterFake{data: []byte("xlsx")}
	uc := NewExportOrdersUseCase(repo, exporter)

	data, err := uc.ExportOrders(context.Background(), 10)
	if err != nil {
		t.Fatalf("ExportOrders() error = %v", err)
	}
	if !bytes.Equal(data, []byte("xlsx")) {
		t.Fatalf("data = %q", data)
	}
	if repo.seenLimit != 10 {
		t.Fatalf("limit = %d, want 10", repo.seenLimit)
	}
	if len(exporter.seen) != 1 || exporter.seen[0].ID != "o-1" {
		t.Fatalf("exporter input = %+v", exporter.seen)
	}
}

func TestExportOrdersDefaultLimit(t *testing.T) {
	repo := &exportOrdersFake{}
	uc := NewExportOrdersUseCase(repo, &exporterFake{})

	if _, err := uc.ExportOrders(context.Background(), 0); err != nil {
		t.Fatalf("ExportOrders() error = %v", err)
	}
	if repo.seenLimit != defaultExportLimit {
		t.Fatalf("limit = %d, want %d", repo.seenLimit, defaultExportLimit)
	}
}

func TestExportOrdersListError(t *testing.T) {
	uc := NewExportOrdersUseCase(&exportOrdersFake{err: errors.New("db down")}, &exporterFake{})

	if _, err := uc.ExportOrders(context.Background(), 5); err == nil {
		t.Fatal("expected error")
	}
}
