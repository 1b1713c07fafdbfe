package fs

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/pricex"
	"github.com/fwojciec/pricex/csv"
)

// ReadInput reads URL input text from path, or from stdin when path is
// "-". CSV files (by extension) are reduced to their URL column and
// returned one URL per line; other files are returned as-is.
func ReadInput(path string, stdin io.Reader) (string, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if os.IsNotExist(err) {
		return "", pricex.Errorf(pricex.ENOTFOUND, "input file %q not found", path)
	}
	if err != nil {
		return "", err
	}

	if strings.EqualFold(filepath.Ext(path), ".csv") {
		urls, err := csv.ReadURLs(bytes.NewReader(data))
		if err != nil {
			return "", err
		}
		return strings.Join(urls, "\n"), nil
	}
	return string(data), nil
}
