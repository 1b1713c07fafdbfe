package pricex

import (
	"context"
	"time"
)

// Run is a recorded, completed extraction.
type Run struct {
	ID          string    `json:"id"`
	Mode        string    `json:"mode"`
	SessionID   string    `json:"sessionId"`
	URLs        []string  `json:"urls"`
	Results     []*Result `json:"results"`
	Successful  int       `json:"successful"`
	Failed      int       `json:"failed"`
	ContentHash string    `json:"contentHash"`
	StartedAt   time.Time `json:"startedAt"`
	FinishedAt  time.Time `json:"finishedAt"`
}

// Validate returns an error if the run contains invalid fields.
func (r *Run) Validate() error {
	if r.Mode == "" {
		return Errorf(EINVALID, "run mode required")
	}
	if len(r.URLs) == 0 {
		return Errorf(EINVALID, "run URLs required")
	}
	return nil
}

// RunService represents a service for managing recorded runs.
type RunService interface {
	// CreateRun records a completed run.
	CreateRun(ctx context.Context, run *Run) error

	// FindRunByID retrieves a run by ID.
	// Returns ENOTFOUND if the run does not exist.
	FindRunByID(ctx context.Context, id string) (*Run, error)

	// FindRuns retrieves runs matching the filter, newest first.
	FindRuns(ctx context.Context, filter RunFilter) ([]*Run, error)

	// DeleteRun permanently removes a run.
	// Returns ENOTFOUND if the run does not exist.
	DeleteRun(ctx context.Context, id string) error
}

// RunFilter represents a filter for FindRuns.
type RunFilter struct {
	ID   *string `json:"id"`
	Mode *string `json:"mode"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
