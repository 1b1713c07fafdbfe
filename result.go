package pricex

import "context"

// ResultStatus classifies the outcome of extracting a price from one URL.
type ResultStatus string

// ResultStatus constants.
const (
	StatusSuccess ResultStatus = "success"
	StatusError   ResultStatus = "error"
	StatusNoPrice ResultStatus = "no-price"
)

// Classify maps a backend status string onto a ResultStatus.
// Anything other than success or error is treated as no price found,
// which covers the "no_price" and "no_price_found" spellings.
func (s ResultStatus) Classify() ResultStatus {
	switch s {
	case StatusSuccess, StatusError:
		return s
	default:
		return StatusNoPrice
	}
}

// Result is the outcome of one URL as reported by the backend.
// The client never modifies a Result; it only aggregates and renders it.
type Result struct {
	URL    string       `json:"url"`
	Status ResultStatus `json:"status"`
	Price  string       `json:"price,omitempty"`
	Error  string       `json:"error,omitempty"`
}

// Batch is the final outcome of one extraction.
type Batch struct {
	Results    []*Result `json:"results"`
	Successful int       `json:"successful"`
	Failed     int       `json:"failed"`
}

// NewBatch builds a Batch whose counts are computed from results.
func NewBatch(results []*Result) *Batch {
	s := Summarize(results)
	return &Batch{
		Results:    results,
		Successful: s.Successful,
		Failed:     s.Failed,
	}
}

// Summary aggregates result counts for display.
type Summary struct {
	Total      int
	Successful int
	Failed     int
	NoPrice    int
}

// Summarize counts results by status.
func Summarize(results []*Result) Summary {
	s := Summary{Total: len(results)}
	for _, r := range results {
		switch r.Status.Classify() {
		case StatusSuccess:
			s.Successful++
		case StatusError:
			s.Failed++
		default:
			s.NoPrice++
		}
	}
	return s
}

// BatchService extracts prices for a set of URLs in a single blocking call.
type BatchService interface {
	// ExtractBatch submits urls and waits for the final results.
	// Returns ENETWORK on transport failure or non-2xx status and
	// EPROTOCOL when the response is malformed or reports an error.
	ExtractBatch(ctx context.Context, urls []string) (*Batch, error)
}
