package main

import (
	"fmt"

	"github.com/fwojciec/pricex"
	"github.com/fwojciec/pricex/csv"
	"github.com/fwojciec/pricex/fs"
)

// Run executes the extract command.
func (c *ExtractCmd) Run(deps *Dependencies) error {
	text, err := readInput(deps, c.URLs, c.File)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pricex.ErrorMessage(err))
		return err
	}

	ctrl := deps.Controller
	ctrl.Exporter = fs.NewExporter(c.Out, csv.Options{EscapeQuotes: c.EscapeQuotes})
	if c.NoHistory {
		ctrl.Runs = nil
	}

	ctrl.SetInput(text)
	if !ctrl.CanSubmit() {
		// Extract reports the validation error.
		_, err := ctrl.Extract(deps.Ctx)
		return err
	}

	fmt.Fprintf(deps.Stdout, "Extracting %d URLs (%s)\n", ctrl.URLCount(), deps.Mode)

	progress := &progressPrinter{w: deps.Stderr}
	ctrl.OnProgress = progress.Update
	_, err = ctrl.Extract(deps.Ctx)
	progress.Clear()
	if err != nil {
		return err
	}

	writeResults(deps.Stdout, ctrl.Results())
	if id := ctrl.LastRunID(); id != "" {
		fmt.Fprintf(deps.Stdout, "Recorded run %s\n", id)
	}

	if c.CSV {
		path, err := ctrl.Export(deps.Ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(deps.Stdout, "Exported %s\n", path)
	}

	return nil
}
