// Package extract runs price extractions against a backend. It provides
// the two submission strategies (a blocking batch call with simulated
// progress, and a session that is polled until done) and the Controller
// that guards a single in-flight extraction and owns its results.
package extract

import (
	"context"
	"errors"
	"time"

	"github.com/fwojciec/pricex"
)

// DefaultInterval is the tick of simulated progress and the delay
// between status polls.
const DefaultInterval = time.Second

// describe rewrites err as a user-facing application error while keeping
// its code. Context errors pass through unchanged.
func describe(err error, format string) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return pricex.Errorf(pricex.ErrorCode(err), format, pricex.ErrorMessage(err))
}
