package extract

import (
	"context"
	"sync"
	"time"

	"github.com/fwojciec/pricex"
	"golang.org/x/time/rate"
)

var _ pricex.Strategy = (*PollStrategy)(nil)

// PollStrategy starts a server session and polls its status until the
// session completes or fails, waiting Interval after each response. There
// is no backoff and no retry ceiling; only ctx or PollTask.Cancel stops a
// pending session.
type PollStrategy struct {
	Sessions pricex.SessionService

	// Interval is the delay between handling one status response and
	// sending the next request. Defaults to DefaultInterval.
	Interval time.Duration
}

// NewPollStrategy returns a PollStrategy backed by sessions.
func NewPollStrategy(sessions pricex.SessionService) *PollStrategy {
	return &PollStrategy{Sessions: sessions, Interval: DefaultInterval}
}

// Name returns "poll".
func (s *PollStrategy) Name() string { return "poll" }

// MaxURLs returns zero: the session backend has no client-side limit.
func (s *PollStrategy) MaxURLs() int { return 0 }

// Submit starts a session and waits for its results.
func (s *PollStrategy) Submit(ctx context.Context, urls []string, progress pricex.ProgressFunc) (*pricex.Extraction, error) {
	if err := pricex.ValidateURLs(urls, s.MaxURLs()); err != nil {
		return nil, err
	}

	id, err := s.Sessions.StartSession(ctx, urls)
	if err != nil {
		return nil, describe(err, "Failed to start extraction: %s")
	}
	if progress != nil {
		progress(pricex.Progress{Total: len(urls), SessionID: id})
	}

	task := s.Poll(ctx, id, progress)
	results, err := task.Wait()
	if err != nil {
		return &pricex.Extraction{SessionID: id}, err
	}
	return &pricex.Extraction{SessionID: id, Batch: pricex.NewBatch(results)}, nil
}

// Poll starts polling session id in the background and returns a handle.
// The first status request is issued immediately.
func (s *PollStrategy) Poll(ctx context.Context, id string, progress pricex.ProgressFunc) *PollTask {
	interval := s.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}

	ctx, cancel := context.WithCancel(ctx)
	t := &PollTask{
		id:     id,
		cancel: cancel,
		done:   make(chan struct{}),
	}
	go t.run(ctx, s.Sessions, interval, progress)
	return t
}

// PollTask is a running status poll for one session.
type PollTask struct {
	id     string
	cancel context.CancelFunc
	done   chan struct{}

	mu      sync.Mutex
	state   *pricex.SessionState
	polls   int
	results []*pricex.Result
	err     error
}

// SessionID returns the polled session's identifier.
func (t *PollTask) SessionID() string { return t.id }

// Cancel stops polling. Wait then returns the context error.
func (t *PollTask) Cancel() { t.cancel() }

// Done is closed when polling has stopped.
func (t *PollTask) Done() <-chan struct{} { return t.done }

// Wait blocks until polling stops and returns the session results.
func (t *PollTask) Wait() ([]*pricex.Result, error) {
	<-t.done
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.results, t.err
}

// State returns a copy of the last status received, or nil.
func (t *PollTask) State() *pricex.SessionState {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state == nil {
		return nil
	}
	state := *t.state
	return &state
}

// Polls returns the number of status requests issued so far.
func (t *PollTask) Polls() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.polls
}

func (t *PollTask) finish(results []*pricex.Result, err error) {
	t.mu.Lock()
	t.results = results
	t.err = err
	t.mu.Unlock()
	t.cancel()
	close(t.done)
}

func (t *PollTask) run(ctx context.Context, sessions pricex.SessionService, interval time.Duration, progress pricex.ProgressFunc) {
	limiter := rate.NewLimiter(rate.Every(interval), 1)

	for first := true; ; first = false {
		if !first {
			if err := pause(ctx, limiter); err != nil {
				t.finish(nil, err)
				return
			}
		}

		state, err := sessions.SessionStatus(ctx, t.id)
		t.mu.Lock()
		t.polls++
		if err == nil {
			t.state = state
		}
		t.mu.Unlock()
		if err != nil {
			t.finish(nil, describe(err, "Lost connection: %s"))
			return
		}

		if progress != nil && state.Current > 0 && state.Total > 0 {
			progress(pricex.Progress{
				Current:   state.Current,
				Total:     state.Total,
				URL:       state.URL,
				SessionID: t.id,
			})
		}

		if !state.Status.Terminal() {
			continue
		}
		if state.Status == pricex.SessionError {
			t.finish(nil, pricex.Errorf(pricex.EPROTOCOL, "Extraction failed on the server. Please try again."))
			return
		}
		results, err := sessions.SessionResults(ctx, t.id)
		if err != nil {
			t.finish(nil, describe(err, "Failed to load results: %s"))
			return
		}
		t.finish(results, nil)
		return
	}
}

// pause waits one full interval counted from now, after the previous
// response has been handled. The bucket holds at most one token and it
// refills while a request is outstanding, so spending it first makes Wait
// span the whole interval.
func pause(ctx context.Context, limiter *rate.Limiter) error {
	limiter.Allow()
	if err := limiter.Wait(ctx); err != nil {
		// Wait fails early when the next poll would pass the deadline.
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return context.DeadlineExceeded
	}
	return nil
}
