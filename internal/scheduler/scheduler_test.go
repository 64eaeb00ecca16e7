package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"FinDash/pkg/logger"
)

func TestRegisterRejectsBadSpec(t *testing.T) {
	s := New(0, logger.Nop())
	noop := JobFunc(func(context.Context) error { return nil })

	assert.Error(t, s.Register("digest", "not a spec", noop))
	assert.Error(t, s.Register("five", "30 8 * * 1-5", noop), "specs carry a seconds field")
	require.NoError(t, s.Register("digest", "0 30 8 * * 1-5", noop))
	assert.Error(t, s.Register("digest", "0 0 9 * * *", noop), "duplicate name")
}

func TestRunNow(t *testing.T) {
	s := New(time.Second, logger.Nop())

	var gotDeadline bool
	require.NoError(t, s.Register("ok", "@every 1h", JobFunc(func(ctx context.Context) error {
		_, gotDeadline = ctx.Deadline()
		return nil
	})))
	require.NoError(t, s.Register("bad", "@every 1h", JobFunc(func(context.Context) error {
		return errors.New("boom")
	})))

	require.NoError(t, s.RunNow("ok"))
	assert.True(t, gotDeadline, "runs are bounded by the timeout")
	assert.EqualError(t, s.RunNow("bad"), "boom")
	assert.Error(t, s.RunNow("missing"))
}

func TestStartStop(t *testing.T) {
	s := New(0, logger.Nop())
	s.Start()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	assert.NoError(t, s.Stop(ctx))
	assert.Error(t, s.ctx.Err(), "job context is cancelled on stop")
}
