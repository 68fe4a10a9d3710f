package parallel

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSupervisorRunAllCollectsEveryResult(t *testing.T) {
	sup := NewSupervisor(2)
	defer sup.Shutdown()

	jobs := make([]Job, 5)
	for i := range jobs {
		i := i
		jobs[i] = func(ctx context.Context) (interface{}, error) {
			return i * i, nil
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	results := sup.RunAll(ctx, jobs)
	require.Len(t, results, 5)
	for i, r := range results {
		require.NoError(t, r.Err)
		require.Equal(t, i*i, r.Value)
	}
}

func TestSupervisorRunAllPropagatesErrors(t *testing.T) {
	sup := NewSupervisor(2)
	defer sup.Shutdown()

	boom := errors.New("boom")
	jobs := []Job{
		func(ctx context.Context) (interface{}, error) { return 1, nil },
		func(ctx context.Context) (interface{}, error) { return nil, boom },
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	results := sup.RunAll(ctx, jobs)
	require.NoError(t, results[0].Err)
	require.ErrorIs(t, results[1].Err, boom)
}

func TestSupervisorRunFirstReturnsOnFirstSuccess(t *testing.T) {
	sup := NewSupervisor(3)
	defer sup.Shutdown()

	jobs := []Job{
		func(ctx context.Context) (interface{}, error) {
			<-ctx.Done()
			return nil, ctx.Err()
		},
		func(ctx context.Context) (interface{}, error) {
			return "winner", nil
		},
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	r, ok := sup.RunFirst(ctx, jobs)
	require.True(t, ok)
	require.Equal(t, "winner", r.Value)
}
