package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingRunner struct {
	calls atomic.Int32
	err   error
}

func (r *countingRunner) RunSavedSearches(ctx context.Context) (int, error) {
	r.calls.Add(1)
	return 3, r.err
}

func TestRunOnce(t *testing.T) {
	runner := &countingRunner{}
	s := New(runner, "")

	s.RunOnce()
	runner.err = errors.New("db down")
	s.RunOnce()

	assert.EqualValues(t, 2, runner.calls.Load())
}

func TestStart_EmptySpecIsDisabled(t *testing.T) {
	s := New(&countingRunner{}, "")
	require.NoError(t, s.Start())
	assert.Empty(t, s.cron.Entries())
	s.Stop()
}

func TestStart_RegistersSpec(t *testing.T) {
	s := New(&countingRunner{}, "@every 6h")
	require.NoError(t, s.Start())
	assert.Len(t, s.cron.Entries(), 1)
	s.Stop()
}

func TestStart_BadSpec(t *testing.T) {
	s := New(&countingRunner{}, "every now and then")
	assert.Error(t, s.Start())
}

func TestStop_CancelsCycleContext(t *testing.T) {
	s := New(&countingRunner{}, "")
	s.Stop()
	assert.ErrorIs(t, s.ctx.Err(), context.Canceled)
}
