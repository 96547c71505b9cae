package metrics

import (
	"context"
	"errors"
	"fmt"

	"github.com/bnema/consent/internal/application/port"
	"github.com/bnema/consent/internal/domain/entity"
)

// MultiRecorder fans an outcome out to several recorders.
// Every recorder is called even when an earlier one fails.
type MultiRecorder struct {
	recorders []port.OutcomeRecorder
	failures  func()
}

var _ port.OutcomeRecorder = (*MultiRecorder)(nil)

// NewMultiRecorder skips nil recorders. m may be nil; when set, its failure
// counter is bumped for every recorder error.
func NewMultiRecorder(m *Metrics, recorders ...port.OutcomeRecorder) *MultiRecorder {
	mr := &MultiRecorder{}
	for _, r := range recorders {
		if r != nil {
			mr.recorders = append(mr.recorders, r)
		}
	}
	if m != nil {
		mr.failures = m.RecordFailures.Inc
	}
	return mr
}

// Len returns the number of wrapped recorders.
func (mr *MultiRecorder) Len() int {
	return len(mr.recorders)
}

// RecordOutcome implements port.OutcomeRecorder.
func (mr *MultiRecorder) RecordOutcome(ctx context.Context, outcome entity.DialogOutcome) error {
	var errs []error
	for i, r := range mr.recorders {
		if err := r.RecordOutcome(ctx, outcome); err != nil {
			errs = append(errs, fmt.Errorf("recorder %d: %w", i, err))
			if mr.failures != nil {
				mr.failures()
			}
		}
	}
	return errors.Join(errs...)
}
