package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Session holds one user's form state and the last estimate computed from it.
type Session struct {
	ID           string           `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Profile      HouseholdProfile `gorm:"embedded;embeddedPrefix:profile_" json:"profile"`
	Calculated   bool             `json:"calculated"`
	LastEstimate *EnergyEstimate  `gorm:"serializer:json;type:text" json:"last_estimate,omitempty"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
	ExpiresAt    time.Time        `gorm:"index" json:"expires_at"`
	// Version counts stored writes. Update only succeeds against the version
	// it was read at.
	Version int64 `gorm:"not null;default:0" json:"version"`
}

// NewSession returns a session with a blank profile that expires after ttl.
func NewSession(now time.Time, ttl time.Duration) *Session {
	return &Session{
		Profile:   NewHouseholdProfile(),
		CreatedAt: now,
		UpdatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
}

func (s *Session) AssignID() {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
}

func (s *Session) BeforeCreate(tx *gorm.DB) (err error) {
	s.AssignID()
	return nil
}

// Touch pushes the expiry forward after activity.
func (s *Session) Touch(now time.Time, ttl time.Duration) {
	s.UpdatedAt = now
	s.ExpiresAt = now.Add(ttl)
}

func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.After(now)
}
