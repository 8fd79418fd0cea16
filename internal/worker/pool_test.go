package worker

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type countingJob struct {
	name string
	runs *atomic.Int32
	err  error
	done chan struct{}
	once sync.Once
}

func (j *countingJob) Name() string { return j.name }

func (j *countingJob) Run(context.Context) error {
	j.runs.Add(1)
	j.once.Do(func() {
		if j.done != nil {
			close(j.done)
		}
	})
	return j.err
}

func TestPool_RunsSubmittedJobs(t *testing.T) {
	pool := NewPool(2, 4)
	pool.Start(context.Background())
	defer pool.Stop()

	var runs atomic.Int32
	done := make(chan struct{})
	pool.Submit(&countingJob{name: "job", runs: &runs, done: done})

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("job was never run")
	}
	assert.Equal(t, int32(1), runs.Load())
}

func TestPool_DrainsQueueOnStop(t *testing.T) {
	pool := NewPool(1, 8)
	pool.Start(context.Background())

	var runs atomic.Int32
	for i := 0; i < 5; i++ {
		pool.Submit(&countingJob{name: "job", runs: &runs})
	}
	pool.Stop()

	// Stop cancels the context, so workers may exit with jobs still queued,
	// but nothing runs after Stop returns.
	final := runs.Load()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, final, runs.Load())
}

func TestPool_SurvivesJobError(t *testing.T) {
	pool := NewPool(1, 4)
	pool.Start(context.Background())
	defer pool.Stop()

	var runs atomic.Int32
	failed := make(chan struct{})
	pool.Submit(&countingJob{name: "bad", runs: &runs, err: errors.New("boom"), done: failed})
	<-failed

	done := make(chan struct{})
	pool.Submit(&countingJob{name: "good", runs: &runs, done: done})

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("pool stopped processing after a failed job")
	}
	assert.Equal(t, int32(2), runs.Load())
}

func TestPool_DefaultsAppliedForInvalidSizes(t *testing.T) {
	pool := NewPool(0, 0)

	assert.Equal(t, 1, pool.workers)
	assert.Equal(t, 16, cap(pool.jobs))
}

func TestPool_QueueSize(t *testing.T) {
	pool := NewPool(1, 4)

	var runs atomic.Int32
	pool.Submit(&countingJob{name: "queued", runs: &runs})

	assert.Equal(t, 1, pool.QueueSize())
}
