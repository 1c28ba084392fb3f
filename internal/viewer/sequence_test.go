package viewer

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSequence_RunsInOrderAndStopsOnError(t *testing.T) {
	var ran []string
	boom := errors.New("boom")
	step := func(name string, err error) Step {
		return Step{Name: name, Run: func(context.Context) error {
			ran = append(ran, name)
			return err
		}}
	}
	seq := Sequence{step("a", nil), step("b", boom), step("c", nil)}

	n, err := seq.Run(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, n)
	assert.Equal(t, []string{"a", "b"}, ran)
}

func TestSequence_CanceledContextRunsNothing(t *testing.T) {
	called := false
	seq := Sequence{{Name: "a", Run: func(context.Context) error {
		called = true
		return nil
	}}}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	n, err := seq.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, n)
	assert.False(t, called)
}

func TestSequence_Empty(t *testing.T) {
	n, err := Sequence{}.Run(context.Background())
	assert.NoError(t, err)
	assert.Zero(t, n)
}
