package extract_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/fwojciec/pricex"
	"github.com/fwojciec/pricex/extract"
	"github.com/fwojciec/pricex/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func twoResults() *pricex.Batch {
	return pricex.NewBatch([]*pricex.Result{
		{URL: "http://a", Status: pricex.StatusSuccess, Price: "$10"},
		{URL: "http://b", Status: pricex.StatusError, Error: "timeout"},
	})
}

func newStrategy(submit func(ctx context.Context, urls []string, progress pricex.ProgressFunc) (*pricex.Extraction, error)) *mock.Strategy {
	return &mock.Strategy{
		NameFn:    func() string { return "poll" },
		MaxURLsFn: func() int { return 0 },
		SubmitFn:  submit,
	}
}

func TestController_Extract(t *testing.T) {
	t.Parallel()

	t.Run("no valid URLs sends nothing and notifies", func(t *testing.T) {
		t.Parallel()

		called := false
		strategy := newStrategy(func(context.Context, []string, pricex.ProgressFunc) (*pricex.Extraction, error) {
			called = true
			return nil, nil
		})
		notifier := &mock.Notifier{}
		c := extract.NewController(strategy, notifier)
		c.SetInput("not a url\n\n   ")

		_, err := c.Extract(context.Background())

		require.Error(t, err)
		assert.Equal(t, pricex.EINVALID, pricex.ErrorCode(err))
		assert.False(t, called)
		assert.False(t, c.CanSubmit())
		assert.Equal(t, pricex.StateIdle, c.State())
		errs := notifier.BySeverity(pricex.SeverityError)
		require.Len(t, errs, 1)
		assert.Equal(t, "Please enter at least one valid URL", errs[0].Message)
	})

	t.Run("over the limit warns on input and refuses submit", func(t *testing.T) {
		t.Parallel()

		batches := &mock.BatchService{
			ExtractBatchFn: func(context.Context, []string) (*pricex.Batch, error) {
				t.Fatal("backend must not be called")
				return nil, nil
			},
		}
		notifier := &mock.Notifier{}
		c := extract.NewController(extract.NewSyncStrategy(batches), notifier)
		c.SetInput(strings.Join(urlList(11), "\n"))

		_, err := c.Extract(context.Background())

		require.Error(t, err)
		assert.Equal(t, pricex.EINVALID, pricex.ErrorCode(err))
		warnings := notifier.BySeverity(pricex.SeverityWarning)
		require.Len(t, warnings, 1)
		assert.Equal(t, "Maximum 10 URLs allowed per request", warnings[0].Message)
	})

	t.Run("completed extraction stores results and notifies once", func(t *testing.T) {
		t.Parallel()

		var gotURLs []string
		strategy := newStrategy(func(_ context.Context, urls []string, progress pricex.ProgressFunc) (*pricex.Extraction, error) {
			gotURLs = urls
			progress(pricex.Progress{Total: len(urls), SessionID: "abc123"})
			progress(pricex.Progress{Current: 1, Total: len(urls), SessionID: "abc123"})
			return &pricex.Extraction{SessionID: "abc123", Batch: twoResults()}, nil
		})
		notifier := &mock.Notifier{}
		c := extract.NewController(strategy, notifier)
		c.SetInput("https://a.example\nbogus\nhttps://b.example\n")

		var seen []pricex.Progress
		c.OnProgress = func(p pricex.Progress) { seen = append(seen, p) }

		batch, err := c.Extract(context.Background())

		require.NoError(t, err)
		assert.Equal(t, []string{"https://a.example", "https://b.example"}, gotURLs)
		assert.Equal(t, 1, batch.Successful)
		assert.Equal(t, pricex.StateCompleted, c.State())
		assert.Equal(t, "abc123", c.SessionID())
		assert.Len(t, c.Results(), 2)
		assert.Len(t, seen, 2)
		assert.Equal(t, 1, c.Progress().Current)
		assert.Equal(t, pricex.Summary{Total: 2, Successful: 1, Failed: 1}, c.Summary())
		assert.Equal(t, "Error", c.Render()[1].Price)

		all := notifier.All()
		require.Len(t, all, 1)
		assert.Equal(t, pricex.SeveritySuccess, all[0].Severity)
		assert.Equal(t, "Extraction completed! 1 successful, 1 failed", all[0].Message)
	})

	t.Run("failure notifies exactly one error and clears results", func(t *testing.T) {
		t.Parallel()

		fail := false
		strategy := newStrategy(func(context.Context, []string, pricex.ProgressFunc) (*pricex.Extraction, error) {
			if fail {
				return &pricex.Extraction{SessionID: "abc123"}, pricex.Errorf(pricex.ENETWORK, "Lost connection: connection reset")
			}
			return &pricex.Extraction{Batch: twoResults()}, nil
		})
		notifier := &mock.Notifier{}
		c := extract.NewController(strategy, notifier)
		c.SetInput("https://a.example")

		_, err := c.Extract(context.Background())
		require.NoError(t, err)

		fail = true
		_, err = c.Extract(context.Background())

		require.Error(t, err)
		assert.Equal(t, pricex.StateFailed, c.State())
		assert.Empty(t, c.Results())
		assert.Equal(t, "abc123", c.SessionID())
		assert.True(t, c.CanSubmit())
		errs := notifier.BySeverity(pricex.SeverityError)
		require.Len(t, errs, 1)
		assert.Equal(t, "Lost connection: connection reset", errs[0].Message)
	})

	t.Run("second extraction while in flight conflicts", func(t *testing.T) {
		t.Parallel()

		started := make(chan struct{})
		release := make(chan struct{})
		strategy := newStrategy(func(context.Context, []string, pricex.ProgressFunc) (*pricex.Extraction, error) {
			close(started)
			<-release
			return &pricex.Extraction{Batch: twoResults()}, nil
		})
		notifier := &mock.Notifier{}
		c := extract.NewController(strategy, notifier)
		c.SetInput("https://a.example")

		errc := make(chan error, 1)
		go func() {
			_, err := c.Extract(context.Background())
			errc <- err
		}()
		<-started

		assert.False(t, c.CanSubmit())
		_, err := c.Extract(context.Background())
		require.Error(t, err)
		assert.Equal(t, pricex.ECONFLICT, pricex.ErrorCode(err))

		err = c.Clear()
		require.Error(t, err)
		assert.Equal(t, pricex.ECONFLICT, pricex.ErrorCode(err))

		close(release)
		require.NoError(t, <-errc)
		assert.Equal(t, pricex.StateCompleted, c.State())
	})

	t.Run("cancel reports a warning", func(t *testing.T) {
		t.Parallel()

		started := make(chan struct{})
		strategy := newStrategy(func(ctx context.Context, _ []string, _ pricex.ProgressFunc) (*pricex.Extraction, error) {
			close(started)
			<-ctx.Done()
			return nil, ctx.Err()
		})
		notifier := &mock.Notifier{}
		c := extract.NewController(strategy, notifier)
		c.SetInput("https://a.example")

		errc := make(chan error, 1)
		go func() {
			_, err := c.Extract(context.Background())
			errc <- err
		}()
		<-started
		c.Cancel()

		err := <-errc
		assert.True(t, errors.Is(err, context.Canceled))
		assert.Equal(t, pricex.StateFailed, c.State())
		warnings := notifier.BySeverity(pricex.SeverityWarning)
		require.Len(t, warnings, 1)
		assert.Equal(t, "Extraction canceled", warnings[0].Message)
		assert.Empty(t, notifier.BySeverity(pricex.SeverityError))
	})

	t.Run("records run with computed counts", func(t *testing.T) {
		t.Parallel()

		var recorded *pricex.Run
		runs := &mock.RunService{
			CreateRunFn: func(_ context.Context, run *pricex.Run) error {
				run.ID = "run-1"
				recorded = run
				return nil
			},
		}
		strategy := newStrategy(func(context.Context, []string, pricex.ProgressFunc) (*pricex.Extraction, error) {
			return &pricex.Extraction{SessionID: "abc123", Batch: twoResults()}, nil
		})
		c := extract.NewController(strategy, &mock.Notifier{})
		c.Runs = runs
		now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
		c.Now = func() time.Time { return now }
		c.SetInput("https://a.example\nhttps://b.example")

		_, err := c.Extract(context.Background())

		require.NoError(t, err)
		require.NotNil(t, recorded)
		assert.Equal(t, "poll", recorded.Mode)
		assert.Equal(t, "abc123", recorded.SessionID)
		assert.Len(t, recorded.URLs, 2)
		assert.Equal(t, 1, recorded.Successful)
		assert.Equal(t, 1, recorded.Failed)
		assert.Equal(t, now, recorded.StartedAt)
		assert.Equal(t, "run-1", c.LastRunID())
	})

	t.Run("run history failure only warns", func(t *testing.T) {
		t.Parallel()

		runs := &mock.RunService{
			CreateRunFn: func(context.Context, *pricex.Run) error {
				return pricex.Errorf(pricex.EINTERNAL, "disk full")
			},
		}
		strategy := newStrategy(func(context.Context, []string, pricex.ProgressFunc) (*pricex.Extraction, error) {
			return &pricex.Extraction{Batch: twoResults()}, nil
		})
		notifier := &mock.Notifier{}
		c := extract.NewController(strategy, notifier)
		c.Runs = runs
		c.SetInput("https://a.example")

		_, err := c.Extract(context.Background())

		require.NoError(t, err)
		assert.Len(t, c.Results(), 2)
		warnings := notifier.BySeverity(pricex.SeverityWarning)
		require.Len(t, warnings, 1)
		assert.Equal(t, "Could not record run: disk full", warnings[0].Message)
		assert.Empty(t, c.LastRunID())
	})
}

func TestController_Export(t *testing.T) {
	t.Parallel()

	t.Run("no results is empty error", func(t *testing.T) {
		t.Parallel()

		notifier := &mock.Notifier{}
		c := extract.NewController(newStrategy(nil), notifier)
		c.Exporter = &mock.ResultExporter{
			ExportResultsFn: func(context.Context, []*pricex.Result) (string, error) {
				t.Fatal("exporter must not be called")
				return "", nil
			},
		}

		_, err := c.Export(context.Background())

		require.Error(t, err)
		assert.Equal(t, pricex.EEMPTY, pricex.ErrorCode(err))
		errs := notifier.BySeverity(pricex.SeverityError)
		require.Len(t, errs, 1)
		assert.Equal(t, "No results to export", errs[0].Message)
	})

	t.Run("writes current results", func(t *testing.T) {
		t.Parallel()

		strategy := newStrategy(func(context.Context, []string, pricex.ProgressFunc) (*pricex.Extraction, error) {
			return &pricex.Extraction{Batch: twoResults()}, nil
		})
		notifier := &mock.Notifier{}
		c := extract.NewController(strategy, notifier)
		var exported []*pricex.Result
		c.Exporter = &mock.ResultExporter{
			ExportResultsFn: func(_ context.Context, results []*pricex.Result) (string, error) {
				exported = results
				return "out/price_extraction_2024-03-01.csv", nil
			},
		}
		c.SetInput("https://a.example")
		_, err := c.Extract(context.Background())
		require.NoError(t, err)

		path, err := c.Export(context.Background())

		require.NoError(t, err)
		assert.Equal(t, "out/price_extraction_2024-03-01.csv", path)
		assert.Len(t, exported, 2)
		success := notifier.BySeverity(pricex.SeveritySuccess)
		assert.Equal(t, "Results exported successfully!", success[len(success)-1].Message)
	})
}

func TestController_Clear(t *testing.T) {
	t.Parallel()

	strategy := newStrategy(func(context.Context, []string, pricex.ProgressFunc) (*pricex.Extraction, error) {
		return &pricex.Extraction{SessionID: "abc123", Batch: twoResults()}, nil
	})
	notifier := &mock.Notifier{}
	c := extract.NewController(strategy, notifier)
	c.SetInput("https://a.example")
	_, err := c.Extract(context.Background())
	require.NoError(t, err)

	require.NoError(t, c.Clear())

	assert.Empty(t, c.Results())
	assert.Empty(t, c.Input())
	assert.Empty(t, c.SessionID())
	assert.Zero(t, c.URLCount())
	assert.False(t, c.CanSubmit())
	assert.Equal(t, pricex.StateIdle, c.State())
	success := notifier.BySeverity(pricex.SeveritySuccess)
	assert.Equal(t, "Results cleared", success[len(success)-1].Message)
}
