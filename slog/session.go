package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/pricex"
)

// Ensure LoggingSessionService implements pricex.SessionService.
var _ pricex.SessionService = (*LoggingSessionService)(nil)

// LoggingSessionService wraps a SessionService with logging. Status polls
// are logged at debug level since they repeat every interval.
type LoggingSessionService struct {
	next   pricex.SessionService
	logger *slog.Logger
}

// NewLoggingSessionService creates a new LoggingSessionService.
func NewLoggingSessionService(next pricex.SessionService, logger *slog.Logger) *LoggingSessionService {
	return &LoggingSessionService{next: next, logger: logger}
}

// StartSession delegates to the wrapped service and logs the operation.
func (s *LoggingSessionService) StartSession(ctx context.Context, urls []string) (id string, err error) {
	defer func(begin time.Time) {
		s.logger.Info("session start",
			"urls", len(urls),
			"session", id,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.StartSession(ctx, urls)
}

// SessionStatus delegates to the wrapped service and logs the poll.
func (s *LoggingSessionService) SessionStatus(ctx context.Context, id string) (state *pricex.SessionState, err error) {
	defer func(begin time.Time) {
		attrs := []any{
			"session", id,
			"duration", time.Since(begin),
			"err", err,
		}
		if state != nil {
			attrs = append(attrs, "status", state.Status, "current", state.Current, "total", state.Total)
		}
		s.logger.Debug("session status", attrs...)
	}(time.Now())
	return s.next.SessionStatus(ctx, id)
}

// SessionResults delegates to the wrapped service and logs the operation.
func (s *LoggingSessionService) SessionResults(ctx context.Context, id string) (results []*pricex.Result, err error) {
	defer func(begin time.Time) {
		s.logger.Info("session results",
			"session", id,
			"count", len(results),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.SessionResults(ctx, id)
}
