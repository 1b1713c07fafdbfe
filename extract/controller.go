package extract

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/fwojciec/pricex"
)

// Controller owns one extraction session: the URL input, the single
// in-flight extraction, and the results of the most recent completed run.
// It is safe for concurrent use.
type Controller struct {
	Strategy pricex.Strategy
	Notifier pricex.Notifier

	// Exporter writes results for Export. Optional.
	Exporter pricex.ResultExporter

	// Runs records completed extractions. Optional.
	Runs pricex.RunService

	// OnProgress observes progress updates. Optional.
	OnProgress pricex.ProgressFunc

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time

	mu        sync.Mutex
	state     pricex.State
	input     string
	urls      []string
	results   []*pricex.Result
	sessionID string
	progress  pricex.Progress
	lastRunID string
	cancel    context.CancelFunc
}

// NewController returns an idle Controller.
func NewController(strategy pricex.Strategy, notifier pricex.Notifier) *Controller {
	return &Controller{
		Strategy: strategy,
		Notifier: notifier,
		Now:      time.Now,
	}
}

func (c *Controller) notify(severity pricex.Severity, format string, args ...any) {
	if c.Notifier == nil {
		return
	}
	c.Notifier.Notify(pricex.Notification{
		Severity: severity,
		Message:  fmt.Sprintf(format, args...),
	})
}

func (c *Controller) now() time.Time {
	if c.Now == nil {
		return time.Now()
	}
	return c.Now()
}

// setState moves to next. Callers must hold c.mu.
func (c *Controller) setState(next pricex.State) error {
	if !c.state.CanTransition(next) {
		return pricex.Errorf(pricex.ECONFLICT, "cannot move from %s to %s", c.state, next)
	}
	c.state = next
	return nil
}

// SetInput replaces the raw multi-line URL text and recollects URLs.
// When the strategy has a size limit and it is exceeded, a warning is
// shown; submission will then be refused.
func (c *Controller) SetInput(text string) {
	c.mu.Lock()
	c.input = text
	c.urls = pricex.CollectURLs(text)
	n := len(c.urls)
	c.mu.Unlock()

	if limit := c.Strategy.MaxURLs(); limit > 0 && n > limit {
		c.notify(pricex.SeverityWarning, "Maximum %d URLs allowed per request", limit)
	}
}

// Input returns the raw URL text.
func (c *Controller) Input() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.input
}

// URLs returns the valid URLs collected from the input.
func (c *Controller) URLs() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.urls...)
}

// URLCount returns the number of valid URLs in the input.
func (c *Controller) URLCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.urls)
}

// CanSubmit reports whether the submit action is enabled: the input holds
// at least one valid URL and no extraction is in flight.
func (c *Controller) CanSubmit() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.urls) > 0 && !c.state.InFlight()
}

// State returns the controller's lifecycle stage.
func (c *Controller) State() pricex.State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Results returns the results of the most recent completed extraction.
func (c *Controller) Results() []*pricex.Result {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]*pricex.Result(nil), c.results...)
}

// Summary counts the current results.
func (c *Controller) Summary() pricex.Summary {
	return pricex.Summarize(c.Results())
}

// Render returns the display form of the current results.
func (c *Controller) Render() []pricex.ResultView {
	return pricex.RenderResults(c.Results())
}

// SessionID returns the server session of the current or last run.
func (c *Controller) SessionID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sessionID
}

// Progress returns the latest progress update.
func (c *Controller) Progress() pricex.Progress {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.progress
}

// LastRunID returns the ID of the last recorded run, if any.
func (c *Controller) LastRunID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastRunID
}

func (c *Controller) onProgress(p pricex.Progress) {
	c.mu.Lock()
	if c.state == pricex.StateSubmitting {
		_ = c.setState(pricex.StateInProgress)
	}
	if p.SessionID != "" {
		c.sessionID = p.SessionID
	}
	c.progress = p
	observer := c.OnProgress
	c.mu.Unlock()

	if observer != nil {
		observer(p)
	}
}

// Extract submits the collected URLs and blocks until the extraction
// completes, fails, or ctx is canceled. Only one extraction may be in
// flight; a second call returns ECONFLICT. Validation failures return
// EINVALID without contacting the backend. Every failure is reported
// through the Notifier exactly once.
func (c *Controller) Extract(ctx context.Context) (*pricex.Batch, error) {
	c.mu.Lock()
	if c.state.InFlight() {
		c.mu.Unlock()
		err := pricex.Errorf(pricex.ECONFLICT, "An extraction is already in progress")
		c.notify(pricex.SeverityWarning, "%s", pricex.ErrorMessage(err))
		return nil, err
	}

	urls := append([]string(nil), c.urls...)
	if err := pricex.ValidateURLs(urls, c.Strategy.MaxURLs()); err != nil {
		c.mu.Unlock()
		c.notify(pricex.SeverityError, "%s", pricex.ErrorMessage(err))
		return nil, err
	}

	if err := c.setState(pricex.StateSubmitting); err != nil {
		c.mu.Unlock()
		return nil, err
	}
	ctx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.results = nil
	c.sessionID = ""
	c.progress = pricex.Progress{Total: len(urls)}
	c.mu.Unlock()
	defer cancel()

	startedAt := c.now()
	ext, err := c.Strategy.Submit(ctx, urls, c.onProgress)

	c.mu.Lock()
	c.cancel = nil
	if ext != nil && ext.SessionID != "" {
		c.sessionID = ext.SessionID
	}
	if err != nil {
		_ = c.setState(pricex.StateFailed)
		c.mu.Unlock()

		if errors.Is(err, context.Canceled) {
			c.notify(pricex.SeverityWarning, "Extraction canceled")
		} else if errors.Is(err, context.DeadlineExceeded) {
			c.notify(pricex.SeverityError, "Extraction timed out")
		} else {
			c.notify(pricex.SeverityError, "%s", pricex.ErrorMessage(err))
		}
		return nil, err
	}

	batch := ext.Batch
	if batch == nil {
		batch = pricex.NewBatch(nil)
	}
	if c.state == pricex.StateSubmitting {
		_ = c.setState(pricex.StateInProgress)
	}
	_ = c.setState(pricex.StateCompleted)
	c.results = batch.Results
	sessionID := c.sessionID
	c.mu.Unlock()

	c.notify(pricex.SeveritySuccess, "Extraction completed! %d successful, %d failed", batch.Successful, batch.Failed)

	if c.Runs != nil {
		run := &pricex.Run{
			Mode:       c.Strategy.Name(),
			SessionID:  sessionID,
			URLs:       urls,
			Results:    batch.Results,
			Successful: batch.Successful,
			Failed:     batch.Failed,
			StartedAt:  startedAt,
			FinishedAt: c.now(),
		}
		if err := c.Runs.CreateRun(ctx, run); err != nil {
			c.notify(pricex.SeverityWarning, "Could not record run: %s", pricex.ErrorMessage(err))
		} else {
			c.mu.Lock()
			c.lastRunID = run.ID
			c.mu.Unlock()
		}
	}

	return batch, nil
}

// Cancel aborts the in-flight extraction, if any.
func (c *Controller) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cancel != nil {
		c.cancel()
	}
}

// Export writes the current results through the Exporter and returns the
// artifact location. Returns EEMPTY when there are no results.
func (c *Controller) Export(ctx context.Context) (string, error) {
	results := c.Results()
	if len(results) == 0 {
		err := pricex.Errorf(pricex.EEMPTY, "No results to export")
		c.notify(pricex.SeverityError, "%s", pricex.ErrorMessage(err))
		return "", err
	}
	if c.Exporter == nil {
		err := pricex.Errorf(pricex.EINTERNAL, "No exporter configured")
		c.notify(pricex.SeverityError, "%s", pricex.ErrorMessage(err))
		return "", err
	}

	path, err := c.Exporter.ExportResults(ctx, results)
	if err != nil {
		c.notify(pricex.SeverityError, "Export failed: %s", pricex.ErrorMessage(err))
		return "", err
	}

	c.notify(pricex.SeveritySuccess, "Results exported successfully!")
	return path, nil
}

// Clear discards results, session and input and returns to idle.
// Returns ECONFLICT while an extraction is in flight.
func (c *Controller) Clear() error {
	c.mu.Lock()
	if err := c.setState(pricex.StateIdle); err != nil {
		c.mu.Unlock()
		err = pricex.Errorf(pricex.ECONFLICT, "Cannot clear while an extraction is in progress")
		c.notify(pricex.SeverityWarning, "%s", pricex.ErrorMessage(err))
		return err
	}
	c.results = nil
	c.sessionID = ""
	c.progress = pricex.Progress{}
	c.input = ""
	c.urls = nil
	c.mu.Unlock()

	c.notify(pricex.SeveritySuccess, "Results cleared")
	return nil
}
