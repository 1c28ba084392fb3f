package viewer

import (
	"context"
	"fmt"
)

// Step is one remote call in an ordered sequence.
type Step struct {
	Name  string
	Layer int
	Slot  int
	Run   func(ctx context.Context) error
}

func (s Step) String() string {
	return fmt.Sprintf("%s layer %d slot %d", s.Name, s.Layer, s.Slot)
}

// StepError reports which step of a sequence failed.
type StepError struct {
	Step  Step
	Index int
	Err   error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (%s): %v", e.Index+1, e.Step, e.Err)
}

func (e *StepError) Unwrap() error { return e.Err }

// Sequence runs steps strictly one after another.
type Sequence []Step

// Run executes the steps in order and stops at the first failure.
// It returns how many steps completed. Side effects of completed steps are
// left in place.
func (s Sequence) Run(ctx context.Context) (int, error) {
	for i, step := range s {
		if err := ctx.Err(); err != nil {
			return i, &StepError{Step: step, Index: i, Err: err}
		}
		if err := step.Run(ctx); err != nil {
			return i, &StepError{Step: step, Index: i, Err: err}
		}
	}
	return len(s), nil
}
