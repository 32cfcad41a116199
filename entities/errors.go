package entities

import (
	"errors"
	"strings"
)

var (
	ErrIncompleteProfile = errors.New("profile is incomplete")
	ErrInvalidCategory   = errors.New("invalid dwelling category")
	ErrInvalidHabitation = errors.New("invalid habitation type")
	ErrInvalidChoice     = errors.New("invalid yes/no answer")
	ErrInvalidAge        = errors.New("age must be between 1 and 120")
	ErrUnknownField      = errors.New("unknown profile field")
	ErrSessionNotFound   = errors.New("session not found")
	ErrSessionConflict   = errors.New("session was modified concurrently")
)

// IncompleteProfileError names the fields that still need a value.
type IncompleteProfileError struct {
	Missing []string
}

func (e *IncompleteProfileError) Error() string {
	if len(e.Missing) == 0 {
		return ErrIncompleteProfile.Error()
	}
	return ErrIncompleteProfile.Error() + ": missing " + strings.Join(e.Missing, ", ")
}

func (e *IncompleteProfileError) Is(target error) bool {
	return target == ErrIncompleteProfile
}
