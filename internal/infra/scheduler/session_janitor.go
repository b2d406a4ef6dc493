package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/budget-dashboard/backend/internal/application/usecase/session"
)

// SessionExpirer is satisfied by session.ExpireSessionsUseCase.
type SessionExpirer interface {
	Execute(ctx context.Context) int
}

// LimiterCleaner drops stale rate limiter entries.
type LimiterCleaner interface {
	Cleanup()
}

// SessionJanitorJob expires idle sessions and prunes the upload rate limiter.
type SessionJanitorJob struct {
	expirer SessionExpirer
	limiter LimiterCleaner
	timeout time.Duration
}

// NewSessionJanitorJob creates the janitor. limiter may be nil.
func NewSessionJanitorJob(expirer SessionExpirer, limiter LimiterCleaner) *SessionJanitorJob {
	return &SessionJanitorJob{
		expirer: expirer,
		limiter: limiter,
		timeout: 30 * time.Second,
	}
}

var _ SessionExpirer = (*session.ExpireSessionsUseCase)(nil)

// Name returns the job name.
func (j *SessionJanitorJob) Name() string {
	return "session_janitor"
}

// Run performs one sweep.
func (j *SessionJanitorJob) Run() error {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	if expired := j.expirer.Execute(ctx); expired > 0 {
		slog.Info("Session janitor sweep", "expired", expired)
	}
	if j.limiter != nil {
		j.limiter.Cleanup()
	}
	return nil
}
