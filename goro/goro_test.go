package goro_test

import (
	"context"
	"errors"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/motioncore/fibersync/goro"
)

func blockOnCtxReturnNil(ctx context.Context) error {
	<-ctx.Done()
	return nil
}

func TestHandleCompletion(t *testing.T) {
	h := goro.Go(context.Background(), func(context.Context) error {
		return nil
	})
	<-h.Done()
	require.NoError(t, h.Err())
}

func TestHandleError(t *testing.T) {
	wantErr := errors.New("expected error")
	h := goro.Go(context.Background(), func(context.Context) error {
		return wantErr
	})
	<-h.Done()
	require.ErrorIs(t, h.Err(), wantErr)
}

func TestHandleCancel(t *testing.T) {
	h := goro.Go(context.Background(), func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	})
	h.Cancel()
	<-h.Done()
	require.ErrorIs(t, h.Err(), context.Canceled)
}

func TestHandleMultiCancel(t *testing.T) {
	h := goro.Go(context.Background(), blockOnCtxReturnNil)
	h.Cancel()
	h.Cancel()
	<-h.Done()
}

func TestHandleGoexit(t *testing.T) {
	h := goro.Go(context.Background(), func(context.Context) error {
		runtime.Goexit()
		return nil
	})
	// the done channel closes even though the func never returned
	<-h.Done()
	require.NoError(t, h.Err())
}
