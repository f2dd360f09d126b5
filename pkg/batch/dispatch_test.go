package batch_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/fivetwenty-io/batch-client/pkg/batch"
)

// Dispatch tests check for leaked goroutines, so they do not run in parallel.

func TestGo_Success(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	var succeeded atomic.Value

	future := batch.Go(t.Context(), func(context.Context) (string, error) {
		return "pool1", nil
	}, batch.Callbacks[string]{
		OnSuccess: func(result string) { succeeded.Store(result) },
		OnFailure: func(error) { t.Error("failure callback must not run") },
	})

	result, err := future.Wait()
	require.NoError(t, err)
	assert.Equal(t, "pool1", result)
	assert.Equal(t, batch.StateCompleted, future.State())
	assert.Equal(t, "pool1", succeeded.Load(), "callbacks run before Wait returns")
}

func TestGo_Failure(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	boom := errors.New("boom")

	var failures atomic.Int32

	future := batch.Go(t.Context(), func(context.Context) (int, error) {
		return 0, boom
	}, batch.Callbacks[int]{
		OnFailure: func(err error) {
			assert.ErrorIs(t, err, boom)
			failures.Add(1)
		},
	})

	<-future.Done()

	_, err := future.Wait()
	require.ErrorIs(t, err, boom)
	assert.Equal(t, batch.StateFailed, future.State())
	assert.Equal(t, int32(1), failures.Load())
}

func TestGo_StateIsDispatchedUntilSettled(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	release := make(chan struct{})

	future := batch.Go(t.Context(), func(context.Context) (int, error) {
		<-release

		return 1, nil
	}, batch.Callbacks[int]{})

	assert.Equal(t, batch.StateDispatched, future.State())

	select {
	case <-future.Done():
		t.Fatal("future settled before the call returned")
	case <-time.After(10 * time.Millisecond):
	}

	close(release)

	_, err := future.Wait()
	require.NoError(t, err)
	assert.Equal(t, batch.StateCompleted, future.State())
}

func TestListAsync_CollectsEveryPage(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	source := &pagedInts{pages: [][]int{{1, 2}, {3}, {4, 5}}, failAt: -1}

	var (
		progress  [][]int
		completed []int
	)

	future := batch.ListAsync(t.Context(), source.handler(), batch.ListCallbacks[int]{
		Callbacks: batch.Callbacks[[]int]{
			OnSuccess: func(items []int) { completed = items },
		},
		Progress: func(items []int) bool {
			progress = append(progress, items)

			return true
		},
	})

	items, err := future.Wait()
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, items)
	assert.Equal(t, [][]int{{1, 2}, {3}, {4, 5}}, progress)
	assert.Equal(t, items, completed)
}

func TestListAsync_ProgressCanStop(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	source := &pagedInts{pages: [][]int{{1, 2}, {3}, {4, 5}}, failAt: -1}

	var (
		progressCalls atomic.Int32
		completed     []int
		successes     atomic.Int32
	)

	future := batch.ListAsync(t.Context(), source.handler(), batch.ListCallbacks[int]{
		Callbacks: batch.Callbacks[[]int]{
			OnSuccess: func(items []int) {
				completed = items
				successes.Add(1)
			},
			OnFailure: func(error) { t.Error("failure callback must not run") },
		},
		Progress: func([]int) bool { return progressCalls.Add(1) < 2 },
	})

	items, err := future.Wait()
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, items)
	assert.Equal(t, int32(1), successes.Load())
	assert.Equal(t, []int{1, 2, 3}, completed, "success carries the items of the pages already fetched")
	assert.Equal(t, int32(2), source.fetches.Load(), "the third page is never requested")
	assert.Equal(t, batch.StateCompleted, future.State())
}

func TestListAsync_FailureDiscardsItems(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	source := &pagedInts{pages: [][]int{{1}, {2}, {3}}, failAt: 1}

	var onFailure atomic.Int32

	future := batch.ListAsync(t.Context(), source.handler(), batch.ListCallbacks[int]{
		Callbacks: batch.Callbacks[[]int]{
			OnSuccess: func([]int) { t.Error("success callback must not run") },
			OnFailure: func(error) { onFailure.Add(1) },
		},
	})

	items, err := future.Wait()
	require.ErrorIs(t, err, errPageFailed)
	assert.Nil(t, items)
	assert.Equal(t, batch.StateFailed, future.State())
	assert.Equal(t, int32(1), onFailure.Load())
	assert.Equal(t, int32(2), source.fetches.Load(), "no page after the failing one is fetched")
}

func TestListAsync_EmptyList(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	source := &pagedInts{pages: [][]int{{}}, failAt: -1}

	items, err := batch.Collect(t.Context(), source.handler())
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestState_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "dispatched", batch.StateDispatched.String())
	assert.Equal(t, "completed", batch.StateCompleted.String())
	assert.Equal(t, "failed", batch.StateFailed.String())
	assert.Equal(t, "unknown", batch.State(42).String())
}
