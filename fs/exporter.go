// Package fs provides file-based export of extraction results and
// file-based URL input.
package fs

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/fwojciec/pricex"
	"github.com/fwojciec/pricex/csv"
)

// Ensure Exporter implements pricex.ResultExporter at compile time.
var _ pricex.ResultExporter = (*Exporter)(nil)

// Exporter writes results as dated CSV files to a directory.
type Exporter struct {
	baseDir string
	opts    csv.Options

	// Now returns the time used for the file name. Defaults to time.Now.
	Now func() time.Time
}

// NewExporter creates an Exporter writing to baseDir.
func NewExporter(baseDir string, opts csv.Options) *Exporter {
	return &Exporter{baseDir: baseDir, opts: opts, Now: time.Now}
}

// ExportResults writes results to baseDir/price_extraction_<date>.csv,
// replacing any file of the same name, and returns the file path.
func (e *Exporter) ExportResults(ctx context.Context, results []*pricex.Result) (string, error) {
	content, err := csv.Encode(results, e.opts)
	if err != nil {
		return "", err
	}

	now := time.Now
	if e.Now != nil {
		now = e.Now
	}
	path := filepath.Join(e.baseDir, csv.Filename(now()))

	if err := WriteFileAtomic(path, []byte(content)); err != nil {
		return "", err
	}
	return path, nil
}

// WriteFileAtomic writes data to a temporary file next to path and renames
// it into place, so readers never observe a partial file.
func WriteFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		os.Remove(tmpName)
		return err
	}

	return os.Rename(tmpName, path)
}
