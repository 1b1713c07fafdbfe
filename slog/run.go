package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/pricex"
)

// Ensure LoggingRunService implements pricex.RunService.
var _ pricex.RunService = (*LoggingRunService)(nil)

// LoggingRunService wraps a RunService with debug logging.
type LoggingRunService struct {
	next   pricex.RunService
	logger *slog.Logger
}

// NewLoggingRunService creates a new LoggingRunService.
func NewLoggingRunService(next pricex.RunService, logger *slog.Logger) *LoggingRunService {
	return &LoggingRunService{next: next, logger: logger}
}

// CreateRun delegates to the wrapped service and logs the operation.
func (s *LoggingRunService) CreateRun(ctx context.Context, run *pricex.Run) (err error) {
	defer func(begin time.Time) {
		s.logger.Debug("create run",
			"id", run.ID,
			"mode", run.Mode,
			"hash", run.ContentHash,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.CreateRun(ctx, run)
}

func (s *LoggingRunService) FindRunByID(ctx context.Context, id string) (run *pricex.Run, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("find run", "id", id, "duration", time.Since(begin), "err", err)
	}(time.Now())
	return s.next.FindRunByID(ctx, id)
}

func (s *LoggingRunService) FindRuns(ctx context.Context, filter pricex.RunFilter) (runs []*pricex.Run, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("find runs", "count", len(runs), "duration", time.Since(begin), "err", err)
	}(time.Now())
	return s.next.FindRuns(ctx, filter)
}

func (s *LoggingRunService) DeleteRun(ctx context.Context, id string) (err error) {
	defer func(begin time.Time) {
		s.logger.Debug("delete run", "id", id, "duration", time.Since(begin), "err", err)
	}(time.Now())
	return s.next.DeleteRun(ctx, id)
}
