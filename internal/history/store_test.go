package history

import (
	"context"
	"errors"
	"math"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(context.Background(), filepath.Join(t.TempDir(), "nested", "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func u64(v uint64) *uint64 { return &v }

func TestRecordAndList(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)
	base := time.Date(2024, 12, 1, 6, 0, 0, 0, time.UTC)

	runs := []*Run{
		{Day: 1, Part1: u64(11), Part2: u64(31), Status: StatusSolved, StartedAt: base, Duration: 1500 * time.Millisecond},
		{Day: 14, Part1: u64(12), Status: StatusPartial, StartedAt: base.Add(time.Minute)},
		{Day: 1, Status: StatusFailed, StartedAt: base.Add(2 * time.Minute), Error: "part 1: boom"},
	}
	for _, run := range runs {
		require.NoError(t, store.Record(ctx, run))
		require.NotEmpty(t, run.ID)
	}

	all, err := store.List(ctx, Query{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	require.Equal(t, runs[2].ID, all[0].ID)
	require.Equal(t, runs[1].ID, all[1].ID)
	require.Equal(t, runs[0].ID, all[2].ID)

	first := all[2]
	require.Equal(t, 1, first.Day)
	require.Equal(t, uint64(11), *first.Part1)
	require.Equal(t, uint64(31), *first.Part2)
	require.Equal(t, StatusSolved, first.Status)
	require.Equal(t, 1500*time.Millisecond, first.Duration)
	require.True(t, base.Equal(first.StartedAt))
	require.Empty(t, first.Error)

	partial := all[1]
	require.Nil(t, partial.Part2)

	day1, err := store.List(ctx, Query{Day: 1})
	require.NoError(t, err)
	require.Len(t, day1, 2)
	require.Equal(t, "part 1: boom", day1[0].Error)

	limited, err := store.List(ctx, Query{Limit: 1})
	require.NoError(t, err)
	require.Len(t, limited, 1)
}

func TestLatest(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	_, err := store.Latest(ctx, 5)
	require.ErrorIs(t, err, ErrRunNotFound)

	older := &Run{Day: 5, Status: StatusUnsolved, StartedAt: time.Now().Add(-time.Hour)}
	newer := &Run{Day: 5, Part1: u64(math.MaxUint64), Status: StatusPartial}
	require.NoError(t, store.Record(ctx, older))
	require.NoError(t, store.Record(ctx, newer))

	got, err := store.Latest(ctx, 5)
	require.NoError(t, err)
	require.Equal(t, newer.ID, got.ID)
	require.Equal(t, uint64(math.MaxUint64), *got.Part1)
}

func TestRecordValidates(t *testing.T) {
	store := openTestStore(t)
	require.Error(t, store.Record(context.Background(), &Run{Status: StatusSolved}))
	require.Error(t, store.Record(context.Background(), &Run{Day: 1}))
}

func TestReopenKeepsRuns(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "history.db")

	store, err := Open(ctx, path)
	require.NoError(t, err)
	require.NoError(t, store.Record(ctx, &Run{Day: 2, Status: StatusUnsolved}))
	require.NoError(t, store.Close())

	store, err = Open(ctx, path)
	require.NoError(t, err)
	defer store.Close()
	runs, err := store.List(ctx, Query{Day: 2})
	require.NoError(t, err)
	require.Len(t, runs, 1)
}

func TestWithRetry(t *testing.T) {
	ctx := context.Background()

	calls := 0
	err := withRetry(ctx, 3, time.Millisecond, func() error {
		calls++
		if calls < 3 {
			return errors.New("SQLITE_BUSY: database is locked")
		}
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, 3, calls)

	calls = 0
	err = withRetry(ctx, 3, time.Millisecond, func() error {
		calls++
		return errors.New("constraint failed")
	})
	require.EqualError(t, err, "constraint failed")
	require.Equal(t, 1, calls)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	err = withRetry(cancelled, 3, time.Millisecond, func() error { return nil })
	require.ErrorIs(t, err, context.Canceled)
}
