package pricex

import "context"

// Progress reports how far an extraction has advanced.
type Progress struct {
	Current int
	Total   int

	// URL is the address currently being processed, when the backend
	// reports it.
	URL string

	// SessionID is set once a server session has been created.
	SessionID string

	// Simulated is true when the numbers are decorative and unrelated to
	// actual backend progress.
	Simulated bool
}

// Percent returns progress as a percentage in [0, 100].
func (p Progress) Percent() float64 {
	if p.Total <= 0 {
		return 0
	}
	pct := float64(p.Current) / float64(p.Total) * 100
	if pct > 100 {
		return 100
	}
	return pct
}

// ProgressFunc is called as an extraction advances.
type ProgressFunc func(Progress)

// Extraction is the outcome of a submission.
type Extraction struct {
	// SessionID is set by strategies that track a server session.
	SessionID string

	Batch *Batch
}

// Strategy submits URLs to a backend using one wire protocol.
// Implementations hide whether the backend blocks until done or is
// polled for progress.
type Strategy interface {
	// Name identifies the strategy in configuration ("sync" or "poll").
	Name() string

	// MaxURLs is the largest accepted request, or zero for no limit.
	MaxURLs() int

	// Submit sends urls and blocks until results are available,
	// the backend fails, or ctx is canceled.
	Submit(ctx context.Context, urls []string, progress ProgressFunc) (*Extraction, error)
}

// ResultExporter writes a result set to a downloadable artifact.
type ResultExporter interface {
	// ExportResults writes results and returns the artifact location.
	// Returns EEMPTY if results is empty.
	ExportResults(ctx context.Context, results []*Result) (string, error)
}
