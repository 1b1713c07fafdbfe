package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/pricex"
	"github.com/fwojciec/pricex/csv"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ pricex.RunService = (*RunService)(nil)

// RunService implements pricex.RunService using SQLite.
type RunService struct {
	db *DB
}

// NewRunService creates a new RunService.
func NewRunService(db *DB) *RunService {
	return &RunService{db: db}
}

// hashResults returns the xxHash of the unescaped CSV export of results,
// so two runs with byte-identical exports share a hash.
func hashResults(results []*pricex.Result) string {
	content, err := csv.Encode(results, csv.Options{})
	if err != nil {
		return ""
	}
	return strconv.FormatUint(xxhash.Sum64String(content), 16)
}

// CreateRun records a completed run, assigning its ID and content hash.
func (s *RunService) CreateRun(ctx context.Context, run *pricex.Run) error {
	if err := run.Validate(); err != nil {
		return err
	}

	urls, err := json.Marshal(run.URLs)
	if err != nil {
		return fmt.Errorf("encode urls: %w", err)
	}
	if run.Results == nil {
		run.Results = []*pricex.Result{}
	}
	results, err := json.Marshal(run.Results)
	if err != nil {
		return fmt.Errorf("encode results: %w", err)
	}

	run.ID = uuid.New().String()
	run.ContentHash = hashResults(run.Results)
	if run.FinishedAt.IsZero() {
		run.FinishedAt = time.Now()
	}
	if run.StartedAt.IsZero() {
		run.StartedAt = run.FinishedAt
	}
	run.StartedAt = run.StartedAt.UTC()
	run.FinishedAt = run.FinishedAt.UTC()

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO runs (id, mode, session_id, urls, results, successful, failed, content_hash, started_at, finished_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, run.ID, run.Mode, run.SessionID, string(urls), string(results), run.Successful, run.Failed,
		run.ContentHash, formatTime(run.StartedAt), formatTime(run.FinishedAt))

	return err
}

const runColumns = "id, mode, session_id, urls, results, successful, failed, content_hash, started_at, finished_at"

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (*pricex.Run, error) {
	var run pricex.Run
	var urls, results, startedAt, finishedAt string

	if err := row.Scan(&run.ID, &run.Mode, &run.SessionID, &urls, &results,
		&run.Successful, &run.Failed, &run.ContentHash, &startedAt, &finishedAt); err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(urls), &run.URLs); err != nil {
		return nil, fmt.Errorf("failed to parse urls: %w", err)
	}
	if err := json.Unmarshal([]byte(results), &run.Results); err != nil {
		return nil, fmt.Errorf("failed to parse results: %w", err)
	}

	var err error
	if run.StartedAt, err = parseTime(startedAt, "started_at"); err != nil {
		return nil, err
	}
	if run.FinishedAt, err = parseTime(finishedAt, "finished_at"); err != nil {
		return nil, err
	}

	return &run, nil
}

// FindRunByID retrieves a run by ID.
func (s *RunService) FindRunByID(ctx context.Context, id string) (*pricex.Run, error) {
	run, err := scanRun(s.db.QueryRowContext(ctx, "SELECT "+runColumns+" FROM runs WHERE id = ?", id))
	if err == sql.ErrNoRows {
		return nil, pricex.Errorf(pricex.ENOTFOUND, "run %q not found", id)
	}
	if err != nil {
		return nil, err
	}
	return run, nil
}

// FindRuns retrieves runs matching the filter, newest first.
func (s *RunService) FindRuns(ctx context.Context, filter pricex.RunFilter) ([]*pricex.Run, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT " + runColumns + " FROM runs WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.Mode != nil {
		query.WriteString(" AND mode = ?")
		args = append(args, *filter.Mode)
	}

	query.WriteString(" ORDER BY finished_at DESC")

	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	runs := []*pricex.Run{}
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// DeleteRun permanently removes a run.
func (s *RunService) DeleteRun(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM runs WHERE id = ?", id)
	if err != nil {
		return err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return pricex.Errorf(pricex.ENOTFOUND, "run %q not found", id)
	}
	return nil
}
