package pricex_test

import (
	"testing"

	"github.com/fwojciec/pricex"
	"github.com/stretchr/testify/assert"
)

func TestState_CanTransition(t *testing.T) {
	t.Parallel()

	tests := []struct {
		from, to pricex.State
		want     bool
	}{
		{pricex.StateIdle, pricex.StateSubmitting, true},
		{pricex.StateCompleted, pricex.StateSubmitting, true},
		{pricex.StateFailed, pricex.StateSubmitting, true},
		{pricex.StateSubmitting, pricex.StateSubmitting, false},
		{pricex.StateInProgress, pricex.StateSubmitting, false},
		{pricex.StateSubmitting, pricex.StateInProgress, true},
		{pricex.StateIdle, pricex.StateInProgress, false},
		{pricex.StateInProgress, pricex.StateCompleted, true},
		{pricex.StateSubmitting, pricex.StateCompleted, false},
		{pricex.StateSubmitting, pricex.StateFailed, true},
		{pricex.StateInProgress, pricex.StateFailed, true},
		{pricex.StateIdle, pricex.StateFailed, false},
		{pricex.StateCompleted, pricex.StateIdle, true},
		{pricex.StateInProgress, pricex.StateIdle, false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.from.String()+" to "+tt.to.String(), func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.from.CanTransition(tt.to))
		})
	}
}

func TestProgress_Percent(t *testing.T) {
	t.Parallel()

	assert.InDelta(t, 50.0, pricex.Progress{Current: 1, Total: 2}.Percent(), 0.001)
	assert.InDelta(t, 0.0, pricex.Progress{Current: 3}.Percent(), 0.001)
	assert.InDelta(t, 100.0, pricex.Progress{Current: 5, Total: 4}.Percent(), 0.001)
}
