// Package csv encodes extraction results as CSV and reads URL lists from
// CSV files.
package csv

import (
	stdcsv "encoding/csv"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/fwojciec/pricex"
)

// Header is the first row of every export.
var Header = []string{"URL", "Price", "Status", "Error"}

// Options configures Encode.
type Options struct {
	// EscapeQuotes doubles embedded double quotes (RFC 4180).
	// When false, field values are wrapped in quotes verbatim, so a value
	// containing a quote produces a malformed row.
	EscapeQuotes bool
}

// Encode renders results as CSV text. Every data field is wrapped in
// double quotes, rows are separated by "\n" and there is no trailing
// newline. Returns EEMPTY if results is empty.
func Encode(results []*pricex.Result, opts Options) (string, error) {
	if len(results) == 0 {
		return "", pricex.Errorf(pricex.EEMPTY, "No results to export")
	}

	var b strings.Builder
	b.WriteString(strings.Join(Header, ","))
	for _, r := range results {
		b.WriteString("\n")
		fields := []string{r.URL, r.Price, string(r.Status), r.Error}
		for i, f := range fields {
			if i > 0 {
				b.WriteString(",")
			}
			b.WriteString(quote(f, opts.EscapeQuotes))
		}
	}
	return b.String(), nil
}

func quote(s string, escape bool) string {
	if escape {
		s = strings.ReplaceAll(s, `"`, `""`)
	}
	return `"` + s + `"`
}

// Filename returns the export file name for the given time, using its
// UTC calendar date.
func Filename(t time.Time) string {
	return "price_extraction_" + t.UTC().Format("2006-01-02") + ".csv"
}

// ReadURLs reads URLs from CSV data. If the header row has a "url" column
// (case-insensitive) that column is used; otherwise the first column of
// every row is used and a header row is kept only if it is itself a URL.
// Values that are not valid URLs are skipped.
func ReadURLs(r io.Reader) ([]string, error) {
	cr := stdcsv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, pricex.Errorf(pricex.EINVALID, "invalid CSV: %v", err)
	}

	col := -1
	for i, name := range header {
		if strings.EqualFold(strings.TrimSpace(name), "url") {
			col = i
			break
		}
	}

	var urls []string
	add := func(record []string, i int) {
		if i >= len(record) {
			return
		}
		v := strings.TrimSpace(record[i])
		if v != "" && pricex.IsValidURL(v) {
			urls = append(urls, v)
		}
	}

	if col < 0 {
		col = 0
		add(header, col)
	}

	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, pricex.Errorf(pricex.EINVALID, "invalid CSV: %v", err)
		}
		add(record, col)
	}
	return urls, nil
}
