package services

import (
	"context"
	"testing"
	"time"

	"energy-calculator/cache"
	"energy-calculator/repositories"
	"energy-calculator/usecases"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPurgeExpired(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	sessions := usecases.NewSessionUseCase(repositories.NewSessionMemoryRepository(cache.NewSessionCache()), time.Minute)
	sessions.Now = func() time.Time { return now }

	_, err := sessions.CreateSession(ctx)
	require.NoError(t, err)
	_, err = sessions.CreateSession(ctx)
	require.NoError(t, err)

	j := NewSessionJanitor(sessions, 0)
	assert.Equal(t, 5*time.Minute, j.interval)
	assert.Equal(t, int64(0), j.PurgeExpired(ctx))

	now = now.Add(time.Minute)
	assert.Equal(t, int64(2), j.PurgeExpired(ctx))

	n, err := sessions.ActiveSessions(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)
}

func TestJanitorRunsOnTicker(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	c := cache.NewSessionCache()
	sessions := usecases.NewSessionUseCase(repositories.NewSessionMemoryRepository(c), time.Nanosecond)
	_, err := sessions.CreateSession(ctx)
	require.NoError(t, err)

	NewSessionJanitor(sessions, 10*time.Millisecond).Start(ctx)

	assert.Eventually(t, func() bool {
		return c.GetCacheStats(time.Now())["stored_sessions"] == 0
	}, time.Second, 10*time.Millisecond)
}
