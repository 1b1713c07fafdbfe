// Package slog provides logging decorators for pricex services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/pricex"
)

// Ensure LoggingBatchService implements pricex.BatchService.
var _ pricex.BatchService = (*LoggingBatchService)(nil)

// LoggingBatchService wraps a BatchService with logging.
type LoggingBatchService struct {
	next   pricex.BatchService
	logger *slog.Logger
}

// NewLoggingBatchService creates a new LoggingBatchService.
func NewLoggingBatchService(next pricex.BatchService, logger *slog.Logger) *LoggingBatchService {
	return &LoggingBatchService{next: next, logger: logger}
}

// ExtractBatch delegates to the wrapped service and logs the operation.
func (s *LoggingBatchService) ExtractBatch(ctx context.Context, urls []string) (batch *pricex.Batch, err error) {
	defer func(begin time.Time) {
		attrs := []any{
			"urls", len(urls),
			"duration", time.Since(begin),
			"err", err,
		}
		if batch != nil {
			attrs = append(attrs, "successful", batch.Successful, "failed", batch.Failed)
		}
		s.logger.Info("batch extraction", attrs...)
	}(time.Now())
	return s.next.ExtractBatch(ctx, urls)
}
