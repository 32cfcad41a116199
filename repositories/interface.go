package repositories

import (
	"context"
	"time"

	"energy-calculator/entities"
)

// SessionRepository stores per-user form state. Implementations return
// entities.ErrSessionNotFound for unknown ids; expiry is judged by the caller
// and enforced by DeleteExpired. Update is a compare-and-swap on
// Session.Version and returns entities.ErrSessionConflict when another writer
// got there first.
type SessionRepository interface {
	Create(ctx context.Context, session *entities.Session) error
	GetByID(ctx context.Context, id string) (*entities.Session, error)
	Update(ctx context.Context, session *entities.Session) error
	Delete(ctx context.Context, id string) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
	Count(ctx context.Context, now time.Time) (int64, error)
}
