package bootstrap

import (
	"context"
	"fmt"

	"github.com/kirillkom/transport-order-extractor/internal/config"
	"github.com/kirillkom/transport-order-extractor/internal/core/ports"
	"github.com/kirillkom/transport-order-extractor/internal/core/usecase"
	"github.com/kirillkom/transport-order-extractor/internal/extract"
	"github.com/kirillkom/transport-order-extractor/internal/infrastructure/export/excel"
	"github.com/kirillkom/transport-order-extractor/internal/infrastructure/extractor/pdftext"
	"github.com/kirillkom/transport-order-extractor/internal/infrastructure/queue/nats"
	"github.com/kirillkom/transport-order-extractor/internal/infrastructure/repository/postgres"
	"github.com/kirillkom/transport-order-extractor/internal/infrastructure/resilience"
	"github.com/kirillkom/transport-order-extractor/internal/infrastructure/storage/localfs"
)

type App struct {
	Config config.Config

	Queue  ports.MessageQueue
	Docs   ports.DocumentRepository
	Orders ports.OrderRepository

	IngestUC  ports.DocumentIngestor
	ProcessUC ports.DocumentProcessor
	ExportUC  ports.OrderExportService

	closeFn func()
}

func New(ctx context.Context, cfg config.Config) (*App, error) {
	db, err := postgres.OpenDB(cfg.PostgresDSN)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	docs := postgres.NewDocumentRepository(db)
	if err := docs.EnsureSchema(ctx); err != nil {
		return nil, fmt.Errorf("ensure documents schema: %w", err)
	}
	orders := postgres.NewOrderRepository(db)
	if err := orders.EnsureSchema(ctx); err != nil {
		return nil, fmt.Errorf("ensure orders schema: %w", err)
	}

	storage, err := localfs.New(cfg.StoragePath)
	if err != nil {
		return nil, fmt.Errorf("init object storage: %w", err)
	}

	executor := resilience.NewExecutor(resilience.DefaultPolicy())
	queue, err := nats.NewWithOptions(cfg.NATSURL, cfg.NATSSubject, nats.Options{
		ResilienceExecutor: executor,
	})
	if err != nil {
		return nil, fmt.Errorf("init message queue: %w", err)
	}

	corrections, err := extract.LoadCorrections(cfg.FormatCorrectionsPath)
	if err != nil {
		return nil, fmt.Errorf("load format corrections: %w", err)
	}
	dispatcher := extract.NewDispatcher(
		extract.NewTransalliance(corrections[extract.FormatTransalliance]),
		extract.NewZiegler(corrections[extract.FormatZiegler]),
	)

	lines := pdftext.NewExtractor(storage)

	ingestUC := usecase.NewIngestDocumentUseCase(docs, storage, queue)
	processUC := usecase.NewProcessDocumentUseCase(docs, orders, lines, dispatcher)
	exportUC := usecase.NewExportOrdersUseCase(orders, excel.New())

	return &App{
		Config: cfg,
		Queue:  queue,
		Docs:   docs,
		Orders: orders,

		IngestUC:  ingestUC,
		ProcessUC: processUC,
		ExportUC:  exportUC,

		closeFn: func() {
			queue.Close()
			_ = db.Close()
		},
	}, nil
}

func (a *App) Close() {
	if a.closeFn != nil {
		a.closeFn()
	}
}
