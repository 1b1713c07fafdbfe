package main

import (
	"strings"

	"github.com/fwojciec/pricex/fs"
)

// readInput joins URL arguments and the contents of file, if any, into
// multi-line input text.
func readInput(deps *Dependencies, args []string, file string) (string, error) {
	lines := append([]string(nil), args...)
	if file != "" {
		text, err := fs.ReadInput(file, deps.Stdin)
		if err != nil {
			return "", err
		}
		lines = append(lines, text)
	}
	return strings.Join(lines, "\n"), nil
}
