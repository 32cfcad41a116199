package repositories

import (
	"context"
	"time"

	"energy-calculator/cache"
	"energy-calculator/entities"
)

type sessionMemoryRepository struct {
	cache *cache.SessionCache
}

// NewSessionMemoryRepository keeps sessions in the process. Use it for a
// single instance; replicas need the gorm repository.
func NewSessionMemoryRepository(c *cache.SessionCache) SessionRepository {
	return &sessionMemoryRepository{cache: c}
}

func (r *sessionMemoryRepository) Create(_ context.Context, session *entities.Session) error {
	session.AssignID()
	r.cache.Put(session)
	return nil
}

func (r *sessionMemoryRepository) GetByID(_ context.Context, id string) (*entities.Session, error) {
	session, ok := r.cache.Get(id)
	if !ok {
		return nil, entities.ErrSessionNotFound
	}
	return session, nil
}

func (r *sessionMemoryRepository) Update(_ context.Context, session *entities.Session) error {
	return r.cache.Replace(session)
}

func (r *sessionMemoryRepository) Delete(_ context.Context, id string) error {
	if !r.cache.Remove(id) {
		return entities.ErrSessionNotFound
	}
	return nil
}

func (r *sessionMemoryRepository) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	return r.cache.RemoveExpired(now), nil
}

func (r *sessionMemoryRepository) Count(_ context.Context, now time.Time) (int64, error) {
	return int64(r.cache.Len(now)), nil
}

// GetCacheStats exposes the cache counters to the stats endpoint.
func (r *sessionMemoryRepository) GetCacheStats(now time.Time) map[string]interface{} {
	return r.cache.GetCacheStats(now)
}
