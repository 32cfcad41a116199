package services

import (
	"context"
	"time"

	"energy-calculator/metrics"
	"energy-calculator/usecases"

	"go.uber.org/zap"
)

// SessionJanitor removes expired sessions on a fixed interval.
type SessionJanitor struct {
	sessions *usecases.SessionUseCase
	interval time.Duration
}

func NewSessionJanitor(sessions *usecases.SessionUseCase, interval time.Duration) *SessionJanitor {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &SessionJanitor{
		sessions: sessions,
		interval: interval,
	}
}

// Start runs the janitor until ctx is cancelled.
func (j *SessionJanitor) Start(ctx context.Context) {
	ticker := time.NewTicker(j.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				j.PurgeExpired(ctx)
			}
		}
	}()
}

// PurgeExpired runs one cleanup pass and refreshes the session gauge.
func (j *SessionJanitor) PurgeExpired(ctx context.Context) int64 {
	removed, err := j.sessions.PurgeExpired(ctx)
	if err != nil {
		zap.L().Error("purging expired sessions", zap.Error(err))
		return 0
	}
	if removed > 0 {
		metrics.AddPurgedSessions(removed)
		zap.L().Info("purged expired sessions", zap.Int64("removed", removed))
	}

	if active, err := j.sessions.ActiveSessions(ctx); err == nil {
		metrics.SetActiveSessions(active)
	}
	return removed
}
