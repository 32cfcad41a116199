package usecases

import (
	"context"
	"errors"
	"time"

	"energy-calculator/entities"
	"energy-calculator/metrics"
	"energy-calculator/repositories"

	"go.uber.org/zap"
)

// Sources label where an estimate was requested from.
const (
	SourceAPI      = "api"
	SourceSession  = "session"
	SourceLiveForm = "live_form"
	SourceTerminal = "terminal"
)

// SessionUseCase owns per-user form state: each session carries its own
// profile and last estimate, and nothing is shared between sessions.
type SessionUseCase struct {
	SessionRepo repositories.SessionRepository
	TTL         time.Duration
	Now         func() time.Time
}

func NewSessionUseCase(repo repositories.SessionRepository, ttl time.Duration) *SessionUseCase {
	return &SessionUseCase{
		SessionRepo: repo,
		TTL:         ttl,
		Now:         time.Now,
	}
}

// CreateSession starts a session with a blank profile
func (uc *SessionUseCase) CreateSession(ctx context.Context) (*entities.Session, error) {
	session := entities.NewSession(uc.Now(), uc.TTL)
	if err := uc.SessionRepo.Create(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// GetSession retrieves a live session by ID. Expired sessions are treated as
// missing even before the janitor removes them.
func (uc *SessionUseCase) GetSession(ctx context.Context, id string) (*entities.Session, error) {
	if id == "" {
		return nil, entities.ErrSessionNotFound
	}
	session, err := uc.SessionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if session.Expired(uc.Now()) {
		return nil, entities.ErrSessionNotFound
	}
	return session, nil
}

// maxWriteAttempts bounds retries when concurrent writers keep winning.
const maxWriteAttempts = 3

// mutate reads the session, applies change and writes it back. A conflicting
// write from another client re-reads and re-applies change on fresh state.
func (uc *SessionUseCase) mutate(ctx context.Context, id string, change func(*entities.Session) error) (*entities.Session, error) {
	for attempt := 1; ; attempt++ {
		session, err := uc.GetSession(ctx, id)
		if err != nil {
			return nil, err
		}
		if err := change(session); err != nil {
			return nil, err
		}
		session.Touch(uc.Now(), uc.TTL)

		err = uc.SessionRepo.Update(ctx, session)
		if errors.Is(err, entities.ErrSessionConflict) && attempt < maxWriteAttempts {
			zap.L().Debug("session write conflict, retrying", zap.String("session_id", id), zap.Int("attempt", attempt))
			continue
		}
		if err != nil {
			return nil, err
		}
		return session, nil
	}
}

// UpdateProfile applies only the provided fields. A changed profile drops the
// previous result, the same way editing the form hides a stale estimate.
func (uc *SessionUseCase) UpdateProfile(ctx context.Context, id string, input ProfileInput) (*entities.Session, error) {
	return uc.mutate(ctx, id, func(session *entities.Session) error {
		next, err := input.Apply(session.Profile)
		if err != nil {
			return err
		}
		setProfile(session, next)
		return nil
	})
}

// SetField updates one field by wire name.
func (uc *SessionUseCase) SetField(ctx context.Context, id, field, value string) (*entities.Session, error) {
	return uc.mutate(ctx, id, func(session *entities.Session) error {
		next, err := SetField(session.Profile, field, value)
		if err != nil {
			return err
		}
		setProfile(session, next)
		return nil
	})
}

func setProfile(session *entities.Session, profile entities.HouseholdProfile) {
	if profile != session.Profile {
		session.Profile = profile
		session.Calculated = false
		session.LastEstimate = nil
	}
}

// Validation reports completeness of the session's current profile.
func (uc *SessionUseCase) Validation(ctx context.Context, id string) (ValidationSummary, error) {
	session, err := uc.GetSession(ctx, id)
	if err != nil {
		return ValidationSummary{}, err
	}
	return Summarize(session.Profile), nil
}

// Calculate estimates from a snapshot of the current profile and stores the
// result. An incomplete profile leaves the session untouched.
func (uc *SessionUseCase) Calculate(ctx context.Context, id, source string) (*entities.Session, error) {
	return uc.mutate(ctx, id, func(session *entities.Session) error {
		estimate, err := RecordedEstimate(source, session.Profile)
		if err != nil {
			return err
		}
		session.Calculated = true
		session.LastEstimate = &estimate
		return nil
	})
}

// Reset clears the profile and any stored result.
func (uc *SessionUseCase) Reset(ctx context.Context, id string) (*entities.Session, error) {
	return uc.mutate(ctx, id, func(session *entities.Session) error {
		session.Profile = entities.NewHouseholdProfile()
		session.Calculated = false
		session.LastEstimate = nil
		return nil
	})
}

// DeleteSession deletes a session
func (uc *SessionUseCase) DeleteSession(ctx context.Context, id string) error {
	if id == "" {
		return entities.ErrSessionNotFound
	}
	return uc.SessionRepo.Delete(ctx, id)
}

// PurgeExpired removes sessions past their expiry and returns how many.
func (uc *SessionUseCase) PurgeExpired(ctx context.Context) (int64, error) {
	return uc.SessionRepo.DeleteExpired(ctx, uc.Now())
}

// ActiveSessions counts sessions that have not expired.
func (uc *SessionUseCase) ActiveSessions(ctx context.Context) (int64, error) {
	return uc.SessionRepo.Count(ctx, uc.Now())
}

// Stats counts live sessions and, for in-memory stores, adds cache counters.
func (uc *SessionUseCase) Stats(ctx context.Context) (map[string]interface{}, error) {
	now := uc.Now()
	n, err := uc.SessionRepo.Count(ctx, now)
	if err != nil {
		return nil, err
	}
	stats := map[string]interface{}{
		"active_sessions": n,
		"ttl_seconds":     int64(uc.TTL / time.Second),
	}
	if cs, ok := uc.SessionRepo.(interface {
		GetCacheStats(time.Time) map[string]interface{}
	}); ok {
		for k, v := range cs.GetCacheStats(now) {
			if _, exists := stats[k]; !exists {
				stats[k] = v
			}
		}
	}
	return stats, nil
}

// RecordedEstimate runs Estimate and records the outcome in metrics.
func RecordedEstimate(source string, profile entities.HouseholdProfile) (entities.EnergyEstimate, error) {
	estimate, err := Estimate(profile)

	var incomplete *entities.IncompleteProfileError
	switch {
	case err == nil:
		metrics.ObserveEstimate(source, estimate.Total())
	case errors.As(err, &incomplete):
		metrics.ObserveRefused(source, metrics.ResultIncomplete, incomplete.Missing)
	case errors.Is(err, entities.ErrInvalidCategory):
		metrics.ObserveRefused(source, metrics.ResultInvalid, nil)
		zap.L().Warn("estimate refused", zap.String("source", source), zap.Error(err))
	default:
		metrics.ObserveRefused(source, metrics.ResultError, nil)
	}
	return estimate, err
}
