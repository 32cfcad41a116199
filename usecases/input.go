package usecases

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"energy-calculator/entities"
)

// Wire names of the profile fields.
const (
	FieldName           = "name"
	FieldAge            = "age"
	FieldCity           = "city"
	FieldArea           = "area"
	FieldHabitation     = "habitation_type"
	FieldDwelling       = "dwelling_category"
	FieldAC             = "has_ac"
	FieldFridge         = "has_fridge"
	FieldWashingMachine = "has_washing_machine"
)

// ProfileFields lists every field in profile order.
var ProfileFields = []string{
	FieldName, FieldAge, FieldCity, FieldArea, FieldHabitation,
	FieldDwelling, FieldAC, FieldFridge, FieldWashingMachine,
}

// ProfileInput carries raw form values. Nil fields are left untouched when
// applied, so the same type serves full submissions and partial updates.
type ProfileInput struct {
	Name           *string `json:"name"`
	Age            *int    `json:"age"`
	City           *string `json:"city"`
	Area           *string `json:"area"`
	Habitation     *string `json:"habitation_type"`
	Dwelling       *string `json:"dwelling_category"`
	AC             *string `json:"has_ac"`
	Fridge         *string `json:"has_fridge"`
	WashingMachine *string `json:"has_washing_machine"`
}

// FieldError ties a parse failure to the field that caused it.
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string { return e.Field + ": " + e.Err.Error() }
func (e *FieldError) Unwrap() error { return e.Err }

// InputErrors collects every field that failed to parse.
type InputErrors []*FieldError

func (e InputErrors) Error() string {
	parts := make([]string, 0, len(e))
	for _, fe := range e {
		parts = append(parts, fe.Error())
	}
	return strings.Join(parts, "; ")
}

func (e InputErrors) Unwrap() []error {
	errs := make([]error, 0, len(e))
	for _, fe := range e {
		errs = append(errs, fe)
	}
	return errs
}

// Fields maps field names to messages for API responses.
func (e InputErrors) Fields() map[string]string {
	out := make(map[string]string, len(e))
	for _, fe := range e {
		out[fe.Field] = fe.Err.Error()
	}
	return out
}

// Apply returns a copy of profile with every provided field parsed and set.
// If any field fails to parse, profile is returned unchanged with an
// InputErrors value.
func (in ProfileInput) Apply(profile entities.HouseholdProfile) (entities.HouseholdProfile, error) {
	next := profile
	var errs InputErrors
	set := func(field, value string) {
		if err := setField(&next, field, value); err != nil {
			errs = append(errs, &FieldError{Field: field, Err: err})
		}
	}

	if in.Name != nil {
		next.Name = strings.TrimSpace(*in.Name)
	}
	if in.Age != nil {
		if !entities.ValidAge(*in.Age) {
			errs = append(errs, &FieldError{Field: FieldAge, Err: entities.ErrInvalidAge})
		} else {
			next.Age = *in.Age
		}
	}
	if in.City != nil {
		next.City = strings.TrimSpace(*in.City)
	}
	if in.Area != nil {
		next.Area = strings.TrimSpace(*in.Area)
	}
	if in.Habitation != nil {
		set(FieldHabitation, *in.Habitation)
	}
	if in.Dwelling != nil {
		set(FieldDwelling, *in.Dwelling)
	}
	if in.AC != nil {
		set(FieldAC, *in.AC)
	}
	if in.Fridge != nil {
		set(FieldFridge, *in.Fridge)
	}
	if in.WashingMachine != nil {
		set(FieldWashingMachine, *in.WashingMachine)
	}

	if len(errs) > 0 {
		return profile, errs
	}
	return next, nil
}

// Empty reports whether no field is provided.
func (in ProfileInput) Empty() bool {
	return in == ProfileInput{}
}

// SetField returns a copy of profile with one field set from its raw value.
func SetField(profile entities.HouseholdProfile, field, value string) (entities.HouseholdProfile, error) {
	next := profile
	if err := setField(&next, field, value); err != nil {
		return profile, &FieldError{Field: field, Err: err}
	}
	return next, nil
}

func setField(p *entities.HouseholdProfile, field, value string) error {
	var err error
	switch field {
	case FieldName:
		p.Name = strings.TrimSpace(value)
	case FieldAge:
		age, convErr := strconv.Atoi(strings.TrimSpace(value))
		if convErr != nil || !entities.ValidAge(age) {
			return entities.ErrInvalidAge
		}
		p.Age = age
	case FieldCity:
		p.City = strings.TrimSpace(value)
	case FieldArea:
		p.Area = strings.TrimSpace(value)
	case FieldHabitation:
		p.Habitation, err = entities.ParseHabitationType(value)
	case FieldDwelling:
		p.Dwelling, err = entities.ParseDwellingCategory(value)
	case FieldAC:
		p.AC, err = entities.ParseChoice(value)
	case FieldFridge:
		p.Fridge, err = entities.ParseChoice(value)
	case FieldWashingMachine:
		p.WashingMachine, err = entities.ParseChoice(value)
	default:
		return fmt.Errorf("%w: %q", entities.ErrUnknownField, field)
	}
	return err
}

// IsInputError reports whether err came from parsing user input.
func IsInputError(err error) bool {
	var ie InputErrors
	var fe *FieldError
	return errors.As(err, &ie) || errors.As(err, &fe)
}
