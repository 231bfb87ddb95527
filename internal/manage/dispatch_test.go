package manage

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectAggregatesChanged(t *testing.T) {
	t.Parallel()

	res, err := Collect(context.Background(), []int{1, 2, 3}, func(_ context.Context, n int) (Outcome[int], error) {
		// Only one target actually changes; the aggregate still reports a change.
		v := n * 10
		return Outcome[int]{Changed: n == 2, Record: &v}, nil
	})
	require.NoError(t, err)
	assert.True(t, res.Changed)
	require.Len(t, res.Records, 3)
	assert.Equal(t, 20, *res.Records[1])
}

func TestCollectNoChanges(t *testing.T) {
	t.Parallel()

	res, err := Collect(context.Background(), []string{"a", "b"}, func(_ context.Context, s string) (Outcome[string], error) {
		return Outcome[string]{Record: &s}, nil
	})
	require.NoError(t, err)
	assert.False(t, res.Changed)
	assert.Len(t, res.Records, 2)
}

func TestCollectFailFast(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	calls := 0
	_, err := Collect(context.Background(), []int{1, 2, 3}, func(_ context.Context, n int) (Outcome[int], error) {
		calls++
		if n == 2 {
			return Outcome[int]{}, boom
		}
		return Outcome[int]{Changed: true, Record: &n}, nil
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 2, calls)
}

func TestCollectSkipsNilRecords(t *testing.T) {
	t.Parallel()

	res, err := Collect(context.Background(), []int{1, 2}, func(_ context.Context, n int) (Outcome[int], error) {
		if n == 1 {
			return Outcome[int]{}, nil
		}
		return Outcome[int]{Changed: true, Record: &n}, nil
	})
	require.NoError(t, err)
	assert.True(t, res.Changed)
	assert.Len(t, res.Records, 1)
}

func TestCollectEmptyTargets(t *testing.T) {
	t.Parallel()

	res, err := Collect(context.Background(), nil, func(_ context.Context, n int) (Outcome[int], error) {
		t.Fatal("op must not be called")
		return Outcome[int]{}, nil
	})
	require.NoError(t, err)
	assert.False(t, res.Changed)
	assert.Empty(t, res.Records)
}

func TestRepeat(t *testing.T) {
	t.Parallel()

	calls := 0
	res, err := Repeat(context.Background(), 3, func(_ context.Context) (Outcome[int], error) {
		calls++
		v := calls
		return Outcome[int]{Changed: true, Record: &v}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
	assert.True(t, res.Changed)
	assert.Len(t, res.Records, 3)
}
