package gateway

import (
	"context"
	"testing"
	"time"

	"github.com/poiesic/jobtrail/ai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLifecycle_SingleSuccess(t *testing.T) {
	l := NewLifecycle()

	err := l.Invoke(context.Background(), func(ctx context.Context) error {
		assert.True(t, l.Processing())
		return nil
	})
	require.NoError(t, err)
	assert.False(t, l.Processing())
	assert.NoError(t, l.Err())
}

func TestLifecycle_FailurePopulatesErr(t *testing.T) {
	l := NewLifecycle()
	boom := ai.TransportFailure("Gemini service unavailable")

	err := l.Invoke(context.Background(), func(ctx context.Context) error {
		return boom
	})
	require.Error(t, err)
	assert.Equal(t, boom, l.Err())
	assert.False(t, l.Processing())
}

func TestLifecycle_NewInvokeAbortsPrevious(t *testing.T) {
	l := NewLifecycle()

	started := make(chan struct{})
	firstDone := make(chan error, 1)

	go func() {
		firstDone <- l.Invoke(context.Background(), func(ctx context.Context) error {
			close(started)
			<-ctx.Done()
			return ai.Cancelled()
		})
	}()
	<-started

	err := l.Invoke(context.Background(), func(ctx context.Context) error {
		return nil
	})
	require.NoError(t, err)

	select {
	case first := <-firstDone:
		assert.True(t, ai.IsCancelled(first))
	case <-time.After(2 * time.Second):
		t.Fatal("superseded operation never completed")
	}

	assert.False(t, l.Processing())
	assert.NoError(t, l.Err())
}

func TestLifecycle_StaleCompletionCannotClobberState(t *testing.T) {
	l := NewLifecycle()

	started := make(chan struct{})
	release := make(chan struct{})
	firstDone := make(chan error, 1)

	// The first operation ignores its abort signal and eventually
	// "succeeds", simulating a provider that resolves late.
	go func() {
		firstDone <- l.Invoke(context.Background(), func(ctx context.Context) error {
			close(started)
			<-release
			return nil
		})
	}()
	<-started

	boom := ai.TransportFailure("OpenAI rate limit exceeded, try again shortly")
	err := l.Invoke(context.Background(), func(ctx context.Context) error {
		return boom
	})
	require.Error(t, err)
	require.Equal(t, boom, l.Err())

	// Now let the stale first operation resolve.
	close(release)
	select {
	case first := <-firstDone:
		// The caller of the superseded operation sees cancellation,
		// not the operation's own result.
		assert.True(t, ai.IsCancelled(first))
	case <-time.After(2 * time.Second):
		t.Fatal("superseded operation never completed")
	}

	// The newer call's state survives the stale completion.
	assert.Equal(t, boom, l.Err())
	assert.False(t, l.Processing())
}

func TestLifecycle_CancelResetsProcessingImmediately(t *testing.T) {
	l := NewLifecycle()

	started := make(chan struct{})
	done := make(chan error, 1)

	go func() {
		done <- l.Invoke(context.Background(), func(ctx context.Context) error {
			close(started)
			<-ctx.Done()
			return ai.Cancelled()
		})
	}()
	<-started
	assert.True(t, l.Processing())

	l.Cancel()
	assert.False(t, l.Processing())

	select {
	case err := <-done:
		assert.True(t, ai.IsCancelled(err))
	case <-time.After(2 * time.Second):
		t.Fatal("cancelled operation never completed")
	}

	// Cancellation leaves error state alone.
	assert.NoError(t, l.Err())
}

func TestLifecycle_CancelIdempotent(t *testing.T) {
	l := NewLifecycle()
	l.Cancel()
	l.Cancel()
	assert.False(t, l.Processing())
}

func TestLifecycle_CancellationDoesNotPopulateErr(t *testing.T) {
	l := NewLifecycle()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := l.Invoke(ctx, func(ctx context.Context) error {
		return ai.Cancelled()
	})
	require.Error(t, err)
	assert.True(t, ai.IsCancelled(err))
	assert.NoError(t, l.Err())
	assert.False(t, l.Processing())
}

func TestLifecycle_ClearErr(t *testing.T) {
	l := NewLifecycle()
	_ = l.Invoke(context.Background(), func(ctx context.Context) error {
		return ai.TransportFailure("boom")
	})
	require.Error(t, l.Err())

	l.ClearErr()
	assert.NoError(t, l.Err())
}
