package repositories

import (
	"context"
	"testing"
	"time"

	"energy-calculator/cache"
	"energy-calculator/db"
	"energy-calculator/entities"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGormRepo(t *testing.T) SessionRepository {
	t.Helper()
	database, err := db.Open(sqlite.Open(":memory:"), false)
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })
	return NewSessionPgRepository(database)
}

// Both stores must behave the same way behind the interface.
func repos(t *testing.T) map[string]SessionRepository {
	return map[string]SessionRepository{
		"memory": NewSessionMemoryRepository(cache.NewSessionCache()),
		"gorm":   newGormRepo(t),
	}
}

func TestSessionRepositoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)

	for name, repo := range repos(t) {
		t.Run(name, func(t *testing.T) {
			s := entities.NewSession(now, time.Hour)
			require.NoError(t, repo.Create(ctx, s))
			require.NotEmpty(t, s.ID)

			s.Profile = entities.HouseholdProfile{
				Name:           "Asha",
				Age:            31,
				City:           "Pune",
				Area:           "Kothrud",
				Habitation:     entities.HabitationHouse,
				Dwelling:       entities.DwellingTwoBHK,
				AC:             entities.ChoiceYes,
				Fridge:         entities.ChoiceYes,
				WashingMachine: entities.ChoiceNo,
			}
			estimate := entities.NewEnergyEstimate(
				[]string{entities.LabelLightsFans, entities.LabelAC},
				[]int64{1080, 900},
			)
			s.Calculated = true
			s.LastEstimate = &estimate
			require.NoError(t, repo.Update(ctx, s))

			got, err := repo.GetByID(ctx, s.ID)
			require.NoError(t, err)
			assert.Equal(t, s.Profile, got.Profile)
			assert.True(t, got.Calculated)
			require.NotNil(t, got.LastEstimate)
			assert.Equal(t, 198.0, got.LastEstimate.Total())
			assert.Equal(t, estimate.Breakdown(), got.LastEstimate.Breakdown())

			got.Calculated = false
			got.LastEstimate = nil
			require.NoError(t, repo.Update(ctx, got))
			got, err = repo.GetByID(ctx, s.ID)
			require.NoError(t, err)
			assert.False(t, got.Calculated)
			assert.Nil(t, got.LastEstimate)
		})
	}
}

func TestSessionRepositoryMissing(t *testing.T) {
	ctx := context.Background()

	for name, repo := range repos(t) {
		t.Run(name, func(t *testing.T) {
			_, err := repo.GetByID(ctx, "missing")
			assert.ErrorIs(t, err, entities.ErrSessionNotFound)

			ghost := entities.NewSession(time.Now().UTC(), time.Hour)
			ghost.ID = "missing"
			assert.ErrorIs(t, repo.Update(ctx, ghost), entities.ErrSessionNotFound)
			assert.ErrorIs(t, repo.Delete(ctx, "missing"), entities.ErrSessionNotFound)
		})
	}
}

func TestSessionRepositoryExpiry(t *testing.T) {
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)

	for name, repo := range repos(t) {
		t.Run(name, func(t *testing.T) {
			short := entities.NewSession(now, time.Minute)
			long := entities.NewSession(now, time.Hour)
			require.NoError(t, repo.Create(ctx, short))
			require.NoError(t, repo.Create(ctx, long))

			n, err := repo.Count(ctx, now)
			require.NoError(t, err)
			assert.Equal(t, int64(2), n)

			later := now.Add(2 * time.Minute)
			n, err = repo.Count(ctx, later)
			require.NoError(t, err)
			assert.Equal(t, int64(1), n)

			removed, err := repo.DeleteExpired(ctx, later)
			require.NoError(t, err)
			assert.Equal(t, int64(1), removed)

			_, err = repo.GetByID(ctx, short.ID)
			assert.ErrorIs(t, err, entities.ErrSessionNotFound)
			_, err = repo.GetByID(ctx, long.ID)
			assert.NoError(t, err)

			require.NoError(t, repo.Delete(ctx, long.ID))
			_, err = repo.GetByID(ctx, long.ID)
			assert.ErrorIs(t, err, entities.ErrSessionNotFound)
		})
	}
}

func TestSessionRepositoryStaleUpdate(t *testing.T) {
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)

	for name, repo := range repos(t) {
		t.Run(name, func(t *testing.T) {
			s := entities.NewSession(now, time.Hour)
			require.NoError(t, repo.Create(ctx, s))

			first, err := repo.GetByID(ctx, s.ID)
			require.NoError(t, err)
			second, err := repo.GetByID(ctx, s.ID)
			require.NoError(t, err)

			first.Profile.Name = "Asha"
			require.NoError(t, repo.Update(ctx, first))
			assert.Equal(t, int64(1), first.Version)

			second.Profile.City = "Pune"
			assert.ErrorIs(t, repo.Update(ctx, second), entities.ErrSessionConflict)
			assert.Equal(t, int64(0), second.Version)

			got, err := repo.GetByID(ctx, s.ID)
			require.NoError(t, err)
			assert.Equal(t, "Asha", got.Profile.Name)
			assert.Empty(t, got.Profile.City)
			assert.Equal(t, int64(1), got.Version)
		})
	}
}
