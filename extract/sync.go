package extract

import (
	"context"
	"time"

	"github.com/fwojciec/pricex"
	"golang.org/x/sync/errgroup"
)

var _ pricex.Strategy = (*SyncStrategy)(nil)

// SyncStrategy submits every URL in one blocking request. Progress is
// simulated: one URL per tick until the total is reached or the request
// returns.
type SyncStrategy struct {
	Batches pricex.BatchService

	// Tick is the simulated progress interval. Defaults to DefaultInterval.
	Tick time.Duration
}

// NewSyncStrategy returns a SyncStrategy backed by batches.
func NewSyncStrategy(batches pricex.BatchService) *SyncStrategy {
	return &SyncStrategy{Batches: batches, Tick: DefaultInterval}
}

// Name returns "sync".
func (s *SyncStrategy) Name() string { return "sync" }

// MaxURLs returns pricex.MaxBatchURLs.
func (s *SyncStrategy) MaxURLs() int { return pricex.MaxBatchURLs }

// Submit sends urls in one request while simulating progress.
func (s *SyncStrategy) Submit(ctx context.Context, urls []string, progress pricex.ProgressFunc) (*pricex.Extraction, error) {
	if err := pricex.ValidateURLs(urls, s.MaxURLs()); err != nil {
		return nil, err
	}

	tick := s.Tick
	if tick <= 0 {
		tick = DefaultInterval
	}

	var batch *pricex.Batch
	done := make(chan struct{})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer close(done)
		b, err := s.Batches.ExtractBatch(gctx, urls)
		if err != nil {
			return describe(err, "Failed to extract prices: %s")
		}
		batch = b
		return nil
	})
	g.Go(func() error {
		simulateProgress(gctx, done, len(urls), tick, progress)
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &pricex.Extraction{Batch: batch}, nil
}

// simulateProgress reports one more URL per tick. It stops once current
// reaches total, the request is done, or ctx is canceled.
func simulateProgress(ctx context.Context, done <-chan struct{}, total int, tick time.Duration, progress pricex.ProgressFunc) {
	if progress == nil {
		return
	}
	progress(pricex.Progress{Total: total, Simulated: true})

	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	for current := 0; current < total; {
		select {
		case <-ctx.Done():
			return
		case <-done:
			return
		case <-ticker.C:
			current++
			progress(pricex.Progress{Current: current, Total: total, Simulated: true})
		}
	}
}
