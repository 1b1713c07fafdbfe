package main

import (
	"fmt"

	"github.com/fwojciec/pricex"
)

// Run executes the delete command.
func (c *DeleteCmd) Run(deps *Dependencies) error {
	if !c.Force {
		fmt.Fprintf(deps.Stderr, "error: use --force to confirm deletion\n")
		return pricex.Errorf(pricex.EINVALID, "use --force to confirm deletion")
	}

	if err := deps.Runs.DeleteRun(deps.Ctx, c.ID); err != nil {
		if pricex.ErrorCode(err) == pricex.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "error: run %q not found. Use 'pricex runs' to see recorded runs.\n", c.ID)
		} else {
			fmt.Fprintf(deps.Stderr, "error: %s\n", pricex.ErrorMessage(err))
		}
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted run %s\n", c.ID)
	return nil
}
