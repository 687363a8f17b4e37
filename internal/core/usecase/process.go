package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kirillkom/transport-order-extractor/internal/core/domain"
	"github.com/kirillkom/transport-order-extractor/internal/core/ports"
)

type ProcessDocumentUseCase struct {
	docs      ports.DocumentRepository
	orders    ports.OrderRepository
	extractor ports.LineExtractor
	builder   ports.OrderBuilder
}

func NewProcessDocumentUseCase(
	docs ports.DocumentRepository,
	orders ports.OrderRepository,
	extractor ports.LineExtractor,
	builder ports.OrderBuilder,
) *ProcessDocumentUseCase {
	return &ProcessDocumentUseCase{
		docs:      docs,
		orders:    orders,
		extractor: extractor,
		builder:   builder,
	}
}

// ProcessByID runs the extraction pipeline for one stored document. A
// document whose format cannot be recognized ends in the failed state with
// the dispatch error recorded; recognized documents always produce an order.
func (uc *ProcessDocumentUseCase) ProcessByID(ctx context.Context, documentID string) error {
	if err := uc.markStatus(ctx, documentID, domain.StatusProcessing, ""); err != nil {
		return fmt.Errorf("set status=processing: %w", err)
	}

	order, err := uc.extractPipeline(ctx, documentID)
	if err != nil {
		if failErr := uc.markFailed(ctx, documentID, err); failErr != nil {
			return fmt.Errorf("%w; mark failed status: %v", err, failErr)
		}
		return err
	}

	if err := uc.docs.SaveExtraction(ctx, documentID, order.Format, order.ID); err != nil {
		return fmt.Errorf("save extraction result: %w", err)
	}
	if err := uc.markStatus(ctx, documentID, domain.StatusExtracted, ""); err != nil {
		return fmt.Errorf("set status=extracted: %w", err)
	}
	return nil
}

func (uc *ProcessDocumentUseCase) extractPipeline(ctx context.Context, documentID string) (*domain.Order, error) {
	doc, err := uc.loadDocument(ctx, documentID)
	if err != nil {
		return nil, err
	}

	lines, err := uc.extractLines(ctx, doc)
	if err != nil {
		return nil, err
	}

	payload, format, err := uc.builder.BuildOrder(lines, doc.Filename)
	if err != nil {
		return nil, fmt.Errorf("build order: %w", err)
	}

	order := &domain.Order{
		ID:         uuid.NewString(),
		DocumentID: doc.ID,
		Reference:  payload.OrderReference,
		Format:     format,
		Price:      payload.FreightPrice,
		Currency:   payload.FreightCurrency,
		Payload:    payload,
		CreatedAt:  time.Now().UTC(),
	}
	if err := uc.orders.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("persist order: %w", err)
	}
	return order, nil
}

func (uc *ProcessDocumentUseCase) loadDocument(ctx context.Context, documentID string) (*domain.Document, error) {
	doc, err := uc.docs.GetByID(ctx, documentID)
	if err != nil {
		return nil, fmt.Errorf("fetch document by id: %w", err)
	}
	return doc, nil
}

func (uc *ProcessDocumentUseCase) extractLines(ctx context.Context, doc *domain.Document) ([]string, error) {
	lines, err := uc.extractor.ExtractLines(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("extract lines: %w", err)
	}
	if len(lines) == 0 {
		return nil, domain.WrapError(domain.ErrInvalidInput, "extract lines", errors.New("document yielded no text lines"))
	}
	return lines, nil
}

func (uc *ProcessDocumentUseCase) markStatus(ctx context.Context, documentID string, status domain.DocumentStatus, errMessage string) error {
	return uc.docs.UpdateStatus(ctx, documentID, status, errMessage)
}

func (uc *ProcessDocumentUseCase) markFailed(ctx context.Context, documentID string, processErr error) error {
	if processErr == nil {
		return nil
	}
	return uc.markStatus(ctx, documentID, domain.StatusFailed, processErr.Error())
}
