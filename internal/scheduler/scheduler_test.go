package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestRunNowReportsFailure(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	boom := errors.New("boom")
	s := New("apy", DefaultSpec, 0, func(context.Context) error { return boom }, zap.New(core))

	require.ErrorIs(t, s.RunNow(context.Background()), boom)
	assert.Equal(t, 1, logs.FilterMessage("job failed").Len())
}

func TestRunNowRecoversPanic(t *testing.T) {
	calls := 0
	s := New("apy", DefaultSpec, 0, func(context.Context) error {
		calls++
		if calls == 1 {
			panic("bad data")
		}
		return nil
	}, nil)

	err := s.RunNow(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad data")

	require.NoError(t, s.RunNow(context.Background()))
	assert.Equal(t, 2, calls)
}

func TestRunNowAppliesTimeout(t *testing.T) {
	s := New("apy", DefaultSpec, 10*time.Millisecond, func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	}, nil)

	assert.ErrorIs(t, s.RunNow(context.Background()), context.DeadlineExceeded)
}

func TestStartRejectsInvalidSpec(t *testing.T) {
	s := New("apy", "not a spec", 0, func(context.Context) error { return nil }, nil)
	require.Error(t, s.Start())
}

func TestStartAndStop(t *testing.T) {
	s := New("apy", "", 0, func(context.Context) error { return nil }, nil)
	require.NoError(t, s.Start())
	assert.Len(t, s.cron.Entries(), 1)

	select {
	case <-s.Stop().Done():
	case <-time.After(time.Second):
		t.Fatal("scheduler did not stop")
	}
}
