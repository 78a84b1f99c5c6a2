package worker

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/yourorg/orgadmin/internal/domain"
	"github.com/yourorg/orgadmin/internal/service"
)

const tracerName = "orgadmin/import"

// ImportWorker runs batch imports as single asynchronous units of work.
// Jobs are queued and executed one at a time, so imports never interleave
// with each other, and each job runs under the configured timeout. The
// caller suspends on the returned channel and receives the final report
// once: no streaming progress, no partial results.
type ImportWorker struct {
	importer *service.ImportService
	logger   *slog.Logger
	timeout  time.Duration
	jobs     chan *importJob
}

type importJob struct {
	kind   domain.ImportKind
	source domain.RecordSource
	result chan domain.BatchImportResult
}

// sliceSource adapts an already-materialized row slice to the record source
// collaborator interface.
type sliceSource []domain.RawRow

func (s sliceSource) Rows(context.Context) ([]domain.RawRow, error) {
	return s, nil
}

// NewImportWorker creates a new import worker
func NewImportWorker(importer *service.ImportService, logger *slog.Logger, timeout time.Duration) *ImportWorker {
	if logger == nil {
		logger = slog.Default()
	}
	return &ImportWorker{
		importer: importer,
		logger:   logger,
		timeout:  timeout,
		jobs:     make(chan *importJob, 16),
	}
}

// Start begins the worker loop. It runs until the context is cancelled.
func (w *ImportWorker) Start(ctx context.Context) {
	w.logger.Info("import worker started", slog.Duration("timeout", w.timeout))

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("import worker stopped")
			return
		case job := <-w.jobs:
			w.run(ctx, job)
		}
	}
}

// Submit queues an import of already-parsed rows and returns the channel the
// final report will be delivered on.
func (w *ImportWorker) Submit(kind domain.ImportKind, rows []domain.RawRow) <-chan domain.BatchImportResult {
	return w.SubmitSource(kind, sliceSource(rows))
}

// SubmitSource queues an import that reads rows from a record source.
func (w *ImportWorker) SubmitSource(kind domain.ImportKind, source domain.RecordSource) <-chan domain.BatchImportResult {
	job := &importJob{
		kind:   kind,
		source: source,
		result: make(chan domain.BatchImportResult, 1),
	}
	w.jobs <- job
	return job.result
}

func (w *ImportWorker) run(ctx context.Context, job *importJob) {
	tracer := otel.Tracer(tracerName)
	spanCtx, span := tracer.Start(ctx, "batch_import",
		trace.WithAttributes(attribute.String("import.kind", string(job.kind))),
	)
	defer span.End()

	jobCtx, cancel := context.WithTimeout(spanCtx, w.timeout)
	defer cancel()

	result := w.importer.ImportFromSource(jobCtx, job.kind, job.source)
	span.SetAttributes(
		attribute.Int("import.success", result.Success),
		attribute.Int("import.failed", result.Failed),
	)

	w.logger.Info("import job finished",
		slog.String("kind", string(job.kind)),
		slog.Int("success", result.Success),
		slog.Int("failed", result.Failed),
	)
	job.result <- result
}
