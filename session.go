package pricex

import "context"

// SessionStatus is the backend-reported state of an extraction session.
type SessionStatus string

// SessionStatus constants.
const (
	SessionPending   SessionStatus = "pending"
	SessionCompleted SessionStatus = "completed"
	SessionError     SessionStatus = "error"
)

// Terminal reports whether polling should stop at this status.
// Backend statuses other than completed and error (starting, processing,
// not_found) keep the session pending.
func (s SessionStatus) Terminal() bool {
	return s == SessionCompleted || s == SessionError
}

// SessionState is a read-only snapshot of a server-tracked session.
type SessionState struct {
	ID      string        `json:"session_id,omitempty"`
	Status  SessionStatus `json:"status"`
	Current int           `json:"current,omitempty"`
	Total   int           `json:"total,omitempty"`
	URL     string        `json:"url,omitempty"`
}

// SessionService drives a server-tracked extraction session.
type SessionService interface {
	// StartSession submits urls and returns the session identifier.
	StartSession(ctx context.Context, urls []string) (string, error)

	// SessionStatus retrieves the current state of a session.
	SessionStatus(ctx context.Context, id string) (*SessionState, error)

	// SessionResults retrieves the results of a completed session.
	SessionResults(ctx context.Context, id string) ([]*Result, error)
}
