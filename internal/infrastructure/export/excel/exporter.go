package excel

import (
	"context"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/kirillkom/transport-order-extractor/internal/core/domain"
)

// Exporter renders extracted orders into an XLSX workbook, one row per
// order with the first loading/destination stop flattened into columns.
type Exporter struct{}

func New() *Exporter {
	return &Exporter{}
}

const sheet = "Orders"

var headers = []string{
	"Created",
	"Reference",
	"Format",
	"Customer",
	"Loading",
	"Destination",
	"Cargo",
	"Weight (kg)",
	"Price",
	"Currency",
	"Comment",
}

func (e *Exporter) Export(_ context.Context, orders []domain.Order) ([]byte, error) {
	f := excelize.NewFile()
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("drop default sheet: %w", err)
	}

	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	for i, order := range orders {
		row := i + 2
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(sheet, cell, v)
		}

		payload := order.Payload
		write(1, order.CreatedAt.Format("2006-01-02 15:04"))
		write(2, order.Reference)
		write(3, order.Format)
		write(4, payload.Customer.Details.Company)
		write(5, firstLocation(payload.LoadingLocations))
		write(6, firstLocation(payload.DestinationLocations))
		if len(payload.Cargos) > 0 {
			write(7, payload.Cargos[0].Title)
			write(8, payload.Cargos[0].Weight)
		}
		write(9, order.Price)
		write(10, order.Currency)
		write(11, payload.Comment)
	}

	_ = f.SetColWidth(sheet, "A", "A", 17)
	_ = f.SetColWidth(sheet, "B", "C", 16)
	_ = f.SetColWidth(sheet, "D", "F", 32)
	_ = f.SetColWidth(sheet, "G", "G", 22)
	_ = f.SetColWidth(sheet, "H", "J", 12)
	_ = f.SetColWidth(sheet, "K", "K", 48)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}
	return buf.Bytes(), nil
}

func firstLocation(locs []domain.Location) string {
	if len(locs) == 0 {
		return ""
	}
	addr := locs[0].CompanyAddress
	parts := []string{addr.Company}
	if addr.City != "" {
		parts = append(parts, addr.City)
	}
	if addr.Country != "" {
		parts = append(parts, addr.Country)
	}
	return strings.Join(parts, ", ")
}
