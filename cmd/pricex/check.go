package main

import (
	"fmt"
	"strings"

	"github.com/fwojciec/pricex"
)

// Run executes the check command.
func (c *CheckCmd) Run(deps *Dependencies) error {
	text, err := readInput(deps, c.URLs, c.File)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pricex.ErrorMessage(err))
		return err
	}

	urls := pricex.CollectURLs(text)
	for _, u := range urls {
		fmt.Fprintln(deps.Stdout, u)
	}

	var lines int
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) != "" {
			lines++
		}
	}
	if skipped := lines - len(urls); skipped > 0 {
		fmt.Fprintf(deps.Stderr, "skipped %d invalid lines\n", skipped)
	}
	fmt.Fprintf(deps.Stdout, "%d valid URLs\n", len(urls))

	if err := pricex.ValidateURLs(urls, deps.Controller.Strategy.MaxURLs()); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pricex.ErrorMessage(err))
		return err
	}
	return nil
}
