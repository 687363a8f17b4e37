package ports

import (
	"context"
	"io"

	"github.com/kirillkom/transport-order-extractor/internal/core/domain"
)

// DocumentRepository persists and reads document state.
type DocumentRepository interface {
	Create(ctx context.Context, doc *domain.Document) error
	GetByID(ctx context.Context, id string) (*domain.Document, error)
	UpdateStatus(ctx context.Context, id string, status domain.DocumentStatus, errMessage string) error
	SaveExtraction(ctx context.Context, id, format, orderID string) error
}

// OrderRepository persists extracted orders.
type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) error
	GetByDocumentID(ctx context.Context, documentID string) (*domain.Order, error)
	List(ctx context.Context, limit int) ([]domain.Order, error)
}

// ObjectStorage stores source documents.
type ObjectStorage interface {
	Save(ctx context.Context, key string, data io.Reader) error
	Open(ctx context.Context, key string) (io.ReadCloser, error)
}

// MessageQueue publishes/consumes document-received events.
type MessageQueue interface {
	PublishDocumentReceived(ctx context.Context, documentID string) error
	SubscribeDocumentReceived(ctx context.Context, handler func(context.Context, string) error) error
}

// LineExtractor turns a stored document into the line-oriented text the
// format extractors consume.
type LineExtractor interface {
	ExtractLines(ctx context.Context, doc *domain.Document) ([]string, error)
}

// OrderBuilder converts document lines into the canonical order record,
// reporting which partner format matched.
type OrderBuilder interface {
	BuildOrder(lines []string, attachmentFilename string) (domain.CanonicalOrder, string, error)
}

// OrderExporter renders orders into a spreadsheet byte stream.
type OrderExporter interface {
	Export(ctx context.Context, orders []domain.Order) ([]byte, error)
}
