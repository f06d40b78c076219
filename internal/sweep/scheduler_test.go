package sweep

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trackwatch/pkg/requestcontext"
)

type countingJob struct {
	runs       atomic.Int64
	sawRequest atomic.Bool
	err        error
}

func (j *countingJob) Name() string { return "counting" }

func (j *countingJob) RunOnce(ctx context.Context) error {
	j.runs.Add(1)
	if requestcontext.RequestID(ctx) != "" {
		j.sawRequest.Store(true)
	}
	return j.err
}

func Test_Scheduler_RunsUntilCancelled(t *testing.T) {
	job := &countingJob{}
	scheduler := NewScheduler(job, 5*time.Millisecond, slog.New(slog.NewTextHandler(io.Discard, nil)))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- scheduler.Run(ctx) }()

	require.Eventually(t, func() bool { return job.runs.Load() >= 2 }, time.Second, time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("scheduler did not stop after cancel")
	}
	assert.True(t, job.sawRequest.Load(), "each run gets a request id")
}

func Test_Scheduler_JobFailureKeepsTicking(t *testing.T) {
	job := &countingJob{err: errors.New("transient")}
	scheduler := NewScheduler(job, 5*time.Millisecond, slog.New(slog.NewTextHandler(io.Discard, nil)))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = scheduler.Run(ctx) }()

	require.Eventually(t, func() bool { return job.runs.Load() >= 3 }, time.Second, time.Millisecond)
}
