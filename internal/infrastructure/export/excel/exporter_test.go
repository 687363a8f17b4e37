package excel

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/kirillkom/transport-order-extractor/internal/core/domain"
)

func TestExportWritesOneRowPerOrder(t *testing.T) {
	orders := []domain.Order{
		{
			ID:        "order-1",
			Reference: "1808432",
			Format:    "transalliance",
			Price:     1250,
			Currency:  "EUR",
			CreatedAt: time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC),
			Payload: domain.CanonicalOrder{
				Customer: domain.Customer{Details: domain.CustomerDetails{Company: "Test Client 7"}},
				LoadingLocations: []domain.Location{{
					CompanyAddress: domain.CompanyAddress{Company: "DP WORLD", City: "CORRINGHAM", Country: "GB"},
				}},
				DestinationLocations: []domain.Location{{
					CompanyAddress: domain.CompanyAddress{Company: "ZI DISTRIPORT", Country: "FR"},
				}},
				Cargos: []domain.Cargo{{Title: "PACKAGING", Weight: 25000}},
			},
		},
	}

	data, err := New().Export(context.Background(), orders)
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("reopen workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Orders")
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want header + 1", len(rows))
	}
	if rows[0][1] != "Reference" {
		t.Fatalf("header = %v", rows[0])
	}
	if rows[1][1] != "1808432" || rows[1][2] != "transalliance" {
		t.Fatalf("order row = %v", rows[1])
	}
	if rows[1][4] != "DP WORLD, CORRINGHAM, GB" {
		t.Fatalf("loading cell = %q", rows[1][4])
	}
}

func TestExportEmptyOrders(t *testing.T) {
	data, err := New().Export(context.Background(), nil)
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("reopen workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Orders")
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("rows = %d, want header only", len(rows))
	}
}
