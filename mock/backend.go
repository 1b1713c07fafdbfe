package mock

import (
	"context"

	"github.com/fwojciec/pricex"
)

// Compile-time interface verification.
var (
	_ pricex.BatchService   = (*BatchService)(nil)
	_ pricex.SessionService = (*SessionService)(nil)
)

// BatchService is a mock implementation of pricex.BatchService.
type BatchService struct {
	ExtractBatchFn func(ctx context.Context, urls []string) (*pricex.Batch, error)
}

func (s *BatchService) ExtractBatch(ctx context.Context, urls []string) (*pricex.Batch, error) {
	return s.ExtractBatchFn(ctx, urls)
}

// SessionService is a mock implementation of pricex.SessionService.
type SessionService struct {
	StartSessionFn   func(ctx context.Context, urls []string) (string, error)
	SessionStatusFn  func(ctx context.Context, id string) (*pricex.SessionState, error)
	SessionResultsFn func(ctx context.Context, id string) ([]*pricex.Result, error)
}

func (s *SessionService) StartSession(ctx context.Context, urls []string) (string, error) {
	return s.StartSessionFn(ctx, urls)
}

func (s *SessionService) SessionStatus(ctx context.Context, id string) (*pricex.SessionState, error) {
	return s.SessionStatusFn(ctx, id)
}

func (s *SessionService) SessionResults(ctx context.Context, id string) ([]*pricex.Result, error) {
	return s.SessionResultsFn(ctx, id)
}
