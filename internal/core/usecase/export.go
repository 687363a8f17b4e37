package usecase

import (
	"context"
	"fmt"

	"github.com/kirillkom/transport-order-extractor/internal/core/ports"
)

const defaultExportLimit = 500

type ExportOrdersUseCase struct {
	orders   ports.OrderRepository
	exporter ports.OrderExporter
}

func NewExportOrdersUseCase(orders ports.OrderRepository, exporter ports.OrderExporter) *ExportOrdersUseCase {
	return &ExportOrdersUseCase{orders: orders, exporter: exporter}
}

// ExportOrders renders the most recent orders as a spreadsheet.
func (uc *ExportOrdersUseCase) ExportOrders(ctx context.Context, limit int) ([]byte, error) {
	if limit <= 0 {
		limit = defaultExportLimit
	}

	orders, err := uc.orders.List(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}

	data, err := uc.exporter.Export(ctx, orders)
	if err != nil {
		return nil, fmt.Errorf("render export: %w", err)
	}
	return data, nil
}
