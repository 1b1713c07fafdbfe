package main

import (
	"fmt"

	"github.com/fwojciec/pricex"
	"github.com/fwojciec/pricex/csv"
	"github.com/fwojciec/pricex/fs"
)

// Run executes the export command.
func (c *ExportCmd) Run(deps *Dependencies) error {
	run, err := deps.Runs.FindRunByID(deps.Ctx, c.ID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pricex.ErrorMessage(err))
		return err
	}

	opts := csv.Options{EscapeQuotes: c.EscapeQuotes}
	if c.Stdout {
		content, err := csv.Encode(run.Results, opts)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", pricex.ErrorMessage(err))
			return err
		}
		fmt.Fprintln(deps.Stdout, content)
		return nil
	}

	path, err := fs.NewExporter(c.Out, opts).ExportResults(deps.Ctx, run.Results)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pricex.ErrorMessage(err))
		return err
	}
	fmt.Fprintf(deps.Stdout, "Exported %d results to %s\n", len(run.Results), path)
	return nil
}
