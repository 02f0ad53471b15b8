package tasks

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"office-hours-server/internal/store"
)

// Sweeper is anything holding per-client state that goes stale.
type Sweeper interface {
	Sweep(idle time.Duration) int
}

// Jobs are the background maintenance tasks of the server.
type Jobs struct {
	Accounts store.Accounts
	Limiter  Sweeper
	Logger   *zap.Logger
	Now      func() time.Time
}

// PurgeRefreshTokens deletes revoked and expired refresh tokens.
func (j *Jobs) PurgeRefreshTokens() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	n, err := j.Accounts.PurgeRefreshTokens(ctx, j.now())
	if err != nil {
		j.Logger.Error("purge refresh tokens failed", zap.Error(err))
		return
	}
	j.Logger.Info("refresh tokens purged", zap.Int64("deleted", n))
}

// SweepRateLimiter forgets clients idle for more than three minutes.
func (j *Jobs) SweepRateLimiter() {
	if j.Limiter == nil {
		return
	}
	if n := j.Limiter.Sweep(3 * time.Minute); n > 0 {
		j.Logger.Debug("rate limiter swept", zap.Int("removed", n))
	}
}

func (j *Jobs) now() time.Time {
	if j.Now != nil {
		return j.Now()
	}
	return time.Now()
}

// InitScheduler registers the jobs and starts the cron scheduler.
// Callers stop it with Stop on shutdown.
func InitScheduler(j *Jobs) (*cron.Cron, error) {
	c := cron.New(cron.WithSeconds())

	// Every day at 03:00.
	if _, err := c.AddFunc("0 0 3 * * *", j.PurgeRefreshTokens); err != nil {
		return nil, err
	}
	if _, err := c.AddFunc("0 * * * * *", j.SweepRateLimiter); err != nil {
		return nil, err
	}

	c.Start()
	j.Logger.Info("cron scheduler started", zap.Int("jobs", len(c.Entries())))
	return c, nil
}
