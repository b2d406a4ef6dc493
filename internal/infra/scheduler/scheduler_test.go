package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubJob struct {
	name string
	err  error
	runs int
}

func (j *stubJob) Run() error {
	j.runs++
	return j.err
}

func (j *stubJob) Name() string { return j.name }

type stubExpirer struct{ calls int }

func (e *stubExpirer) Execute(ctx context.Context) int {
	e.calls++
	return 2
}

type stubCleaner struct{ calls int }

func (c *stubCleaner) Cleanup() { c.calls++ }

func TestScheduler_AddJob(t *testing.T) {
	s := New()

	require.NoError(t, s.AddJob("@every 1m", &stubJob{name: "ok"}))
	assert.Error(t, s.AddJob("not a schedule", &stubJob{name: "bad"}))
}

func TestScheduler_RunNow(t *testing.T) {
	s := New()
	job := &stubJob{name: "failing", err: errors.New("boom")}

	err := s.RunNow(job)

	assert.EqualError(t, err, "boom")
	assert.Equal(t, 1, job.runs)
}

func TestScheduler_StartStop(t *testing.T) {
	s := New()
	s.Start()

	done := make(chan struct{})
	go func() {
		s.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("scheduler did not stop")
	}
}

func TestSessionJanitorJob_Run(t *testing.T) {
	expirer := &stubExpirer{}
	cleaner := &stubCleaner{}
	job := NewSessionJanitorJob(expirer, cleaner)

	require.NoError(t, job.Run())
	require.NoError(t, job.Run())

	assert.Equal(t, "session_janitor", job.Name())
	assert.Equal(t, 2, expirer.calls)
	assert.Equal(t, 2, cleaner.calls)
}

func TestSessionJanitorJob_NilLimiter(t *testing.T) {
	expirer := &stubExpirer{}
	job := NewSessionJanitorJob(expirer, nil)

	assert.NoError(t, job.Run())
	assert.Equal(t, 1, expirer.calls)
}
