package clock_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/motioncore/fibersync/clock"
)

func TestContextWithTimeout_Canceled(t *testing.T) {
	t.Parallel()

	timeSource := clock.NewEventTimeSource()
	timeSource.Update(time.Unix(0, 0))
	ctx := context.Background()
	ctx, cancel := clock.ContextWithTimeout(ctx, time.Second, timeSource)
	deadline, ok := ctx.Deadline()
	assert.True(t, ok)
	assert.Equal(t, time.Unix(1, 0), deadline)
	cancel()
	select {
	case <-ctx.Done():
		assert.ErrorIs(t, ctx.Err(), context.Canceled)
	default:
		t.Fatal("expected context to be canceled")
	}
}

func TestContextWithTimeout_Fire(t *testing.T) {
	t.Parallel()

	timeSource := clock.NewEventTimeSource()
	timeSource.Update(time.Unix(0, 0))
	ctx := context.Background()
	ctx, cancel := clock.ContextWithTimeout(ctx, time.Second, timeSource)
	deadline, ok := ctx.Deadline()
	assert.True(t, ok)
	assert.Equal(t, time.Unix(1, 0), deadline)
	timeSource.Advance(time.Second - time.Millisecond)
	select {
	case <-ctx.Done():
		t.Fatal("expected context to not be canceled")
	default:
		assert.NoError(t, ctx.Err())
	}
	timeSource.Advance(time.Millisecond)
	select {
	case <-ctx.Done():
		assert.ErrorIs(t, ctx.Err(), context.DeadlineExceeded)
	default:
		t.Fatal("expected context to be canceled")
	}
	cancel() // should be a no-op
}

func TestContextWithTimeout_ParentCanceled(t *testing.T) {
	t.Parallel()

	timeSource := clock.NewEventTimeSource()
	parent, cancelParent := context.WithCancel(context.Background())
	ctx, cancel := clock.ContextWithTimeout(parent, time.Second, timeSource)
	defer cancel()

	cancelParent()
	select {
	case <-ctx.Done():
		assert.ErrorIs(t, ctx.Err(), context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("expected context to follow parent cancellation")
	}
}

func TestContextWithTimeout_RealTimeSource(t *testing.T) {
	t.Parallel()

	timeSource := clock.NewRealTimeSource()
	ctx, cancel := clock.ContextWithTimeout(context.Background(), time.Minute, timeSource)
	defer cancel()

	_, ok := ctx.Deadline()
	assert.True(t, ok)
	assert.NoError(t, ctx.Err())
	cancel()
	assert.ErrorIs(t, ctx.Err(), context.Canceled)
}
