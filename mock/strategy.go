package mock

import (
	"context"

	"github.com/fwojciec/pricex"
)

// Compile-time interface verification.
var (
	_ pricex.Strategy       = (*Strategy)(nil)
	_ pricex.ResultExporter = (*ResultExporter)(nil)
)

// Strategy is a mock implementation of pricex.Strategy.
type Strategy struct {
	NameFn    func() string
	MaxURLsFn func() int
	SubmitFn  func(ctx context.Context, urls []string, progress pricex.ProgressFunc) (*pricex.Extraction, error)
}

func (s *Strategy) Name() string {
	return s.NameFn()
}

func (s *Strategy) MaxURLs() int {
	return s.MaxURLsFn()
}

func (s *Strategy) Submit(ctx context.Context, urls []string, progress pricex.ProgressFunc) (*pricex.Extraction, error) {
	return s.SubmitFn(ctx, urls, progress)
}

// ResultExporter is a mock implementation of pricex.ResultExporter.
type ResultExporter struct {
	ExportResultsFn func(ctx context.Context, results []*pricex.Result) (string, error)
}

func (e *ResultExporter) ExportResults(ctx context.Context, results []*pricex.Result) (string, error) {
	return e.ExportResultsFn(ctx, results)
}
