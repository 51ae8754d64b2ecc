package utils

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParallelForEach(t *testing.T) {
	t.Parallel()

	t.Run("process all items", func(t *testing.T) {
		ctx := context.Background()
		items := []int{1, 2, 3, 4, 5}
		results := make([]int, 5)
		var mu sync.Mutex

		errors := ParallelForEach(ctx, items, 3, func(ctx context.Context, item int) error {
			mu.Lock()
			results[item-1] = item * 2
			mu.Unlock()
			return nil
		})

		assert.Len(t, errors, 5)
		for _, err := range errors {
			assert.NoError(t, err)
		}

		for i, val := range results {
			assert.Equal(t, (i+1)*2, val)
		}
	})

	t.Run("with errors", func(t *testing.T) {
		ctx := context.Background()
		items := []int{1, 2, 3}

		errors := ParallelForEach(ctx, items, 2, func(ctx context.Context, item int) error {
			if item == 2 {
				return errors.New("error on 2")
			}
			return nil
		})

		assert.Len(t, errors, 3)
		assert.NoError(t, errors[0])
		assert.Error(t, errors[1])
		assert.NoError(t, errors[2])
	})

	t.Run("workers count adjustment", func(t *testing.T) {
		ctx := context.Background()
		items := []int{1, 2, 3}
		results := make([]int, 3)
		var mu sync.Mutex

		// More workers than items
		errors := ParallelForEach(ctx, items, 10, func(ctx context.Context, item int) error {
			mu.Lock()
			results[item-1] = item
			mu.Unlock()
			return nil
		})

		assert.Len(t, errors, 3)
		assert.NoError(t, errors[0])
		assert.NoError(t, errors[1])
		assert.NoError(t, errors[2])
	})

	t.Run("zero workers defaults to 1", func(t *testing.T) {
		ctx := context.Background()
		items := []int{1, 2}
		results := make([]int, 2)
		var mu sync.Mutex

		errors := ParallelForEach(ctx, items, 0, func(ctx context.Context, item int) error {
			mu.Lock()
			results[item-1] = item
			mu.Unlock()
			return nil
		})

		assert.Len(t, errors, 2)
		assert.NoError(t, errors[0])
		assert.NoError(t, errors[1])
	})

	t.Run("canceled context stops dispatch", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		items := make([]int, 50)
		var calls atomic.Int32

		errs := ParallelForEach(ctx, items, 1, func(ctx context.Context, item int) error {
			if calls.Add(1) == 1 {
				cancel()
			}
			return ctx.Err()
		})

		assert.Len(t, errs, 50)
		assert.Less(t, int(calls.Load()), 50)
		assert.ErrorIs(t, FirstError(errs), context.Canceled)
	})

	t.Run("empty items", func(t *testing.T) {
		errs := ParallelForEach(context.Background(), []string{}, 4, func(ctx context.Context, item string) error {
			t.Fatal("should not be called")
			return nil
		})
		assert.Empty(t, errs)
	})
}

func TestFirstError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		errors   []error
		expected error
	}{
		{
			name:     "no errors",
			errors:   []error{nil, nil, nil},
			expected: nil,
		},
		{
			name:     "first error",
			errors:   []error{nil, errors.New("error"), nil},
			expected: errors.New("error"),
		},
		{
			name:     "all errors",
			errors:   []error{errors.New("error1"), errors.New("error2")},
			expected: errors.New("error1"),
		},
		{
			name:     "empty slice",
			errors:   []error{},
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FirstError(tt.errors)
			if tt.expected == nil {
				assert.NoError(t, result)
			} else {
				assert.Error(t, result)
			}
		})
	}
}
