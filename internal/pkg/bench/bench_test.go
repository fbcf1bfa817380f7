package bench

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func fixedSession(ctx context.Context, k int) (time.Duration, error) {
	return time.Duration(k) * time.Millisecond, nil
}

func TestRunWritesAllSinks(t *testing.T) {
	dir := t.TempDir()
	csvSink, err := NewCSVSink(filepath.Join(dir, "results.csv"))
	require.NoError(t, err)
	dbSink, err := NewSQLiteSink(filepath.Join(dir, "results.sqlite"))
	require.NoError(t, err)
	defer dbSink.Close()

	r, err := NewRunner(
		WithPageSizes(1, 5),
		WithRuns(2),
		WithSession(fixedSession),
		WithSink(csvSink),
		WithSink(dbSink),
	)
	require.NoError(t, err)
	results, err := r.Run(context.Background())
	require.NoError(t, err)
	require.NoError(t, csvSink.Close())

	want := []Result{
		{K: 1, Run: 1, ElapsedMS: 1},
		{K: 1, Run: 2, ElapsedMS: 1},
		{K: 5, Run: 1, ElapsedMS: 5},
		{K: 5, Run: 2, ElapsedMS: 5},
	}
	require.Equal(t, want, results)

	b, err := os.ReadFile(filepath.Join(dir, "results.csv"))
	require.NoError(t, err)
	require.Equal(t, "k,run,elapsed_ms\n1,1,1\n1,2,1\n5,1,5\n5,2,5\n", string(b))

	stored, err := dbSink.Results()
	require.NoError(t, err)
	require.Equal(t, want, stored)
}

func TestRunStopsOnSessionError(t *testing.T) {
	calls := 0
	r, err := NewRunner(
		WithPageSizes(1, 2, 3),
		WithSession(func(ctx context.Context, k int) (time.Duration, error) {
			calls++
			if k == 2 {
				return 0, errors.New("connection refused")
			}
			return time.Millisecond, nil
		}),
	)
	require.NoError(t, err)
	results, err := r.Run(context.Background())
	require.Error(t, err)
	require.Len(t, results, 1)
	require.Equal(t, 2, calls)
}

func TestNewRunnerValidation(t *testing.T) {
	_, err := NewRunner()
	require.Error(t, err)
	_, err = NewRunner(WithSession(fixedSession), WithPageSizes(0))
	require.Error(t, err)
	_, err = NewRunner(WithSession(fixedSession), WithRuns(0))
	require.Error(t, err)
}
