package utils

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParallelForEach(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}
	var sum int64

	errs := ParallelForEach(context.Background(), items, 3, func(_ context.Context, n int) error {
		atomic.AddInt64(&sum, int64(n))
		return nil
	})

	require.Len(t, errs, len(items))
	assert.Nil(t, FirstError(errs))
	assert.Equal(t, int64(15), sum)
}

func TestParallelForEachKeepsErrorPositions(t *testing.T) {
	items := []string{"ok", "bad", "ok"}
	failure := errors.New("failure")

	errs := ParallelForEach(context.Background(), items, 2, func(_ context.Context, s string) error {
		if s == "bad" {
			return failure
		}
		return nil
	})

	require.Len(t, errs, 3)
	assert.NoError(t, errs[0])
	assert.ErrorIs(t, errs[1], failure)
	assert.NoError(t, errs[2])
}

func TestParallelForEachZeroWorkers(t *testing.T) {
	errs := ParallelForEach(context.Background(), []int{1, 2}, 0, func(_ context.Context, _ int) error {
		return nil
	})
	assert.Nil(t, FirstError(errs))
}

func TestFirstError(t *testing.T) {
	first := errors.New("first")
	second := errors.New("second")

	assert.Nil(t, FirstError(nil))
	assert.Nil(t, FirstError([]error{nil, nil}))
	assert.Equal(t, first, FirstError([]error{nil, first, second}))
}

func TestCollectErrors(t *testing.T) {
	boom := errors.New("boom")

	assert.Nil(t, CollectErrors([]error{nil, nil}))
	assert.Equal(t, []error{boom}, CollectErrors([]error{nil, boom, nil}))
}
