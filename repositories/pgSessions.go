package repositories

import (
	"context"
	"errors"
	"time"

	"energy-calculator/db"
	"energy-calculator/entities"

	"gorm.io/gorm"
)

type sessionPgRepository struct {
	db db.Database
}

// NewSessionPgRepository stores sessions through gorm. Despite the name it
// works with any gorm dialect the db package can open.
func NewSessionPgRepository(database db.Database) SessionRepository {
	return &sessionPgRepository{db: database}
}

func (r *sessionPgRepository) Create(ctx context.Context, session *entities.Session) error {
	return r.db.GetDB().WithContext(ctx).Create(session).Error
}

func (r *sessionPgRepository) GetByID(ctx context.Context, id string) (*entities.Session, error) {
	var session entities.Session
	err := r.db.GetDB().WithContext(ctx).
		Where("id = ?", id).
		First(&session).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, entities.ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *sessionPgRepository) Update(ctx context.Context, session *entities.Session) error {
	if session.ID == "" {
		return entities.ErrSessionNotFound
	}
	expected := session.Version
	session.Version++
	result := r.db.GetDB().WithContext(ctx).
		Model(session).
		Where("version = ?", expected).
		Select("*").
		Omit("id", "created_at").
		Updates(session)
	if result.Error != nil || result.RowsAffected == 0 {
		session.Version = expected
	}
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return r.missOrConflict(ctx, session.ID)
	}
	return nil
}

func (r *sessionPgRepository) missOrConflict(ctx context.Context, id string) error {
	var n int64
	if err := r.db.GetDB().WithContext(ctx).Model(&entities.Session{}).Where("id = ?", id).Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return entities.ErrSessionNotFound
	}
	return entities.ErrSessionConflict
}

func (r *sessionPgRepository) Delete(ctx context.Context, id string) error {
	result := r.db.GetDB().WithContext(ctx).Where("id = ?", id).Delete(&entities.Session{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return entities.ErrSessionNotFound
	}
	return nil
}

func (r *sessionPgRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.GetDB().WithContext(ctx).Where("expires_at <= ?", now).Delete(&entities.Session{})
	return result.RowsAffected, result.Error
}

func (r *sessionPgRepository) Count(ctx context.Context, now time.Time) (int64, error) {
	var n int64
	err := r.db.GetDB().WithContext(ctx).Model(&entities.Session{}).Where("expires_at > ?", now).Count(&n).Error
	return n, err
}
