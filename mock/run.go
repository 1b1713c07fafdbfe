package mock

import (
	"context"

	"github.com/fwojciec/pricex"
)

var _ pricex.RunService = (*RunService)(nil)

// RunService is a mock implementation of pricex.RunService.
type RunService struct {
	CreateRunFn   func(ctx context.Context, run *pricex.Run) error
	FindRunByIDFn func(ctx context.Context, id string) (*pricex.Run, error)
	FindRunsFn    func(ctx context.Context, filter pricex.RunFilter) ([]*pricex.Run, error)
	DeleteRunFn   func(ctx context.Context, id string) error
}

func (s *RunService) CreateRun(ctx context.Context, run *pricex.Run) error {
	return s.CreateRunFn(ctx, run)
}

func (s *RunService) FindRunByID(ctx context.Context, id string) (*pricex.Run, error) {
	return s.FindRunByIDFn(ctx, id)
}

func (s *RunService) FindRuns(ctx context.Context, filter pricex.RunFilter) ([]*pricex.Run, error) {
	return s.FindRunsFn(ctx, filter)
}

func (s *RunService) DeleteRun(ctx context.Context, id string) error {
	return s.DeleteRunFn(ctx, id)
}
