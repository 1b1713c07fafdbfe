package main

import (
	"fmt"
	"time"

	"github.com/fwojciec/pricex"
)

// Run executes the runs command.
func (c *RunsCmd) Run(deps *Dependencies) error {
	filter := pricex.RunFilter{Limit: c.Limit}
	if c.Mode != "" {
		filter.Mode = &c.Mode
	}

	runs, err := deps.Runs.FindRuns(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pricex.ErrorMessage(err))
		return err
	}

	if len(runs) == 0 {
		fmt.Fprintln(deps.Stdout, "No runs recorded. Use 'pricex extract' to run an extraction.")
		return nil
	}

	for _, r := range runs {
		fmt.Fprintf(deps.Stdout, "%s  %s  %-4s  %d URLs  %d successful, %d failed\n",
			r.ID, r.FinishedAt.Local().Format(time.DateTime), r.Mode, len(r.URLs), r.Successful, r.Failed)
	}
	return nil
}
