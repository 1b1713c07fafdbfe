package pricex

import (
	"net/url"
	"strings"
)

// MaxBatchURLs is the largest request the synchronous backend accepts.
const MaxBatchURLs = 10

// CollectURLs extracts valid URLs from multi-line text.
// Lines are trimmed; blank lines and lines that do not parse as absolute
// URLs are dropped. Order and duplicates are preserved.
func CollectURLs(text string) []string {
	var urls []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || !IsValidURL(line) {
			continue
		}
		urls = append(urls, line)
	}
	return urls
}

// IsValidURL reports whether s has both a scheme and a host.
func IsValidURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return u.Scheme != "" && u.Host != ""
}

// ValidateURLs checks a collected URL list before submission.
// A limit of zero or less disables the size check.
func ValidateURLs(urls []string, limit int) error {
	if len(urls) == 0 {
		return Errorf(EINVALID, "Please enter at least one valid URL")
	}
	if limit > 0 && len(urls) > limit {
		return Errorf(EINVALID, "Maximum %d URLs allowed per request", limit)
	}
	return nil
}
