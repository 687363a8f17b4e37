package ports

import (
	"context"
	"io"

	"github.com/kirillkom/transport-order-extractor/internal/core/domain"
)

// DocumentIngestor is the inbound contract for booking document uploads.
type DocumentIngestor interface {
	Upload(ctx context.Context, filename, mimeType string, body io.Reader) (*domain.Document, error)
}

// DocumentReader is the inbound read model for document metadata/state.
type DocumentReader interface {
	GetByID(ctx context.Context, id string) (*domain.Document, error)
}

// OrderReader is the inbound read model for extracted orders.
type OrderReader interface {
	GetByDocumentID(ctx context.Context, documentID string) (*domain.Order, error)
	List(ctx context.Context, limit int) ([]domain.Order, error)
}

// DocumentProcessor is the inbound contract for asynchronous extraction.
type DocumentProcessor interface {
	ProcessByID(ctx context.Context, documentID string) error
}

// OrderExportService renders extracted orders into a downloadable report.
type OrderExportService interface {
	ExportOrders(ctx context.Context, limit int) ([]byte, error)
}
