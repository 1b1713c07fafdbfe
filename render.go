package pricex

import "fmt"

// Icon tokens for rendered results.
const (
	IconSuccess = "check-circle"
	IconError   = "times-circle"
	IconNoPrice = "exclamation-triangle"
)

// DefaultURLDisplayLen is the URL length after which display truncates.
const DefaultURLDisplayLen = 60

// ResultView is the display form of a single Result.
type ResultView struct {
	Class      ResultStatus
	Icon       string
	URL        string
	Price      string
	StatusText string
	Error      string
}

// RenderResult computes the display form of r.
func RenderResult(r *Result) ResultView {
	v := ResultView{
		Class: r.Status.Classify(),
		URL:   TruncateURL(r.URL, DefaultURLDisplayLen),
	}

	switch v.Class {
	case StatusSuccess:
		v.Icon = IconSuccess
		v.StatusText = "Price extracted"
	case StatusError:
		v.Icon = IconError
		v.StatusText = "Extraction failed"
	default:
		v.Icon = IconNoPrice
		v.StatusText = "No price found"
	}

	switch {
	case r.Price != "":
		v.Price = r.Price
	case v.Class == StatusError:
		v.Price = "Error"
	default:
		v.Price = "No price found"
	}

	if r.Error != "" {
		v.Error = "Error: " + r.Error
	}
	return v
}

// RenderResults renders results in the order received.
func RenderResults(results []*Result) []ResultView {
	views := make([]ResultView, 0, len(results))
	for _, r := range results {
		views = append(views, RenderResult(r))
	}
	return views
}

// SummaryLines returns the "N successful" and "N failed" labels.
func (s Summary) SummaryLines() (successful, failed string) {
	return fmt.Sprintf("%d successful", s.Successful), fmt.Sprintf("%d failed", s.Failed)
}

// TruncateURL cuts url to maxLen characters and appends "...".
// It never splits a multibyte character.
func TruncateURL(url string, maxLen int) string {
	if maxLen <= 0 {
		return url
	}
	n := 0
	for i := range url {
		if n == maxLen {
			return url[:i] + "..."
		}
		n++
	}
	return url
}
