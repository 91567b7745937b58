package future

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolved(t *testing.T) {
	v, err := Resolved("hello").Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "hello", v)
}

func TestFailed(t *testing.T) {
	boom := errors.New("boom")
	v, err := Failed[string](boom).Get(context.Background())
	require.ErrorIs(t, err, boom)
	assert.Empty(t, v)
}

func TestGo(t *testing.T) {
	t.Run("completes with the function result", func(t *testing.T) {
		f := Go(context.Background(), func(context.Context) (int, error) {
			return 42, nil
		})
		v, err := f.Get(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 42, v)
	})

	t.Run("propagates the function error", func(t *testing.T) {
		boom := errors.New("boom")
		f := Go(context.Background(), func(context.Context) (int, error) {
			return 1, boom
		})
		v, err := f.Get(context.Background())
		require.ErrorIs(t, err, boom)
		assert.Zero(t, v)
	})

	t.Run("passes the context to the function", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		f := Go(ctx, func(ctx context.Context) (string, error) {
			<-ctx.Done()
			return "", ctx.Err()
		})
		cancel()
		_, err := f.Get(context.Background())
		require.ErrorIs(t, err, context.Canceled)
	})
}

func TestFuture_FirstCompletionWins(t *testing.T) {
	f := New[string]()
	f.Complete("first")
	f.Complete("second")
	f.Error(errors.New("late"))

	v, err := f.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "first", v)
}

func TestFuture_GetHonorsContext(t *testing.T) {
	f := New[string]()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := f.Get(ctx)
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestFuture_ConcurrentGet(t *testing.T) {
	f := New[int]()
	var wg sync.WaitGroup
	results := make([]int, 10)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			v, err := f.Get(context.Background())
			assert.NoError(t, err)
			results[i] = v
		}(i)
	}
	f.Complete(7)
	wg.Wait()
	for _, v := range results {
		assert.Equal(t, 7, v)
	}
}
