package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/kirillkom/transport-order-extractor/internal/core/domain"
)

// OrderRepository stores extracted orders with their canonical payload as
// JSONB, so the export and read paths always see the exact record that was
// handed downstream.
type OrderRepository struct {
	db *sql.DB
}

func NewOrderRepository(db *sql.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

func (r *OrderRepository) EnsureSchema(ctx context.Context) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1)`, int64(2026083102)); err != nil {
		return fmt.Errorf("acquire schema lock: %w", err)
	}

	const query = `
CREATE TABLE IF NOT EXISTS orders (
	id TEXT PRIMARY KEY,
	document_id TEXT NOT NULL,
	reference TEXT NOT NULL,
	format TEXT NOT NULL,
	price DOUBLE PRECISION NOT NULL DEFAULT 0,
	currency TEXT NOT NULL,
	payload JSONB NOT NULL,
	created_at TIMESTAMPTZ NOT NULL
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_orders_document_id ON orders(document_id);
CREATE INDEX IF NOT EXISTS idx_orders_created_at ON orders(created_at DESC);
`
	if _, err := tx.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("execute schema ddl: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema tx: %w", err)
	}
	return nil
}

func (r *OrderRepository) Create(ctx context.Context, order *domain.Order) error {
	payload, err := json.Marshal(order.Payload)
	if err != nil {
		return fmt.Errorf("marshal order payload: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
INSERT INTO orders (id, document_id, reference, format, price, currency, payload, created_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
`,
		order.ID, order.DocumentID, order.Reference, order.Format,
		order.Price, order.Currency, payload, order.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

func (r *OrderRepository) GetByDocumentID(ctx context.Context, documentID string) (*domain.Order, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, document_id, reference, format, price, currency, payload, created_at
FROM orders
WHERE document_id = $1
`, documentID)

	order, err := scanOrder(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.WrapError(domain.ErrOrderNotFound, "get order", fmt.Errorf("document %s", documentID))
		}
		return nil, err
	}
	return order, nil
}

func (r *OrderRepository) List(ctx context.Context, limit int) ([]domain.Order, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, document_id, reference, format, price, currency, payload, created_at
FROM orders
ORDER BY created_at DESC
LIMIT $1
`, limit)
	if err != nil {
		return nil, fmt.Errorf("query orders: %w", err)
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		order, err := scanOrder(rows.Scan)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *order)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate orders: %w", err)
	}
	return orders, nil
}

func scanOrder(scan func(dest ...any) error) (*domain.Order, error) {
	var order domain.Order
	var payload []byte

	err := scan(
		&order.ID, &order.DocumentID, &order.Reference, &order.Format,
		&order.Price, &order.Currency, &payload, &order.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan order: %w", err)
	}

	if err := json.Unmarshal(payload, &order.Payload); err != nil {
		return nil, fmt.Errorf("unmarshal order payload: %w", err)
	}
	return &order, nil
}
