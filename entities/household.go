package entities

import (
	"fmt"
	"strings"
)

const (
	// DefaultAge is the age a blank profile starts with.
	DefaultAge = 25
	MinAge     = 1
	MaxAge     = 120

	// placeholder is what the forms show before an option is picked.
	placeholder = "Select"
)

// HabitationType is Flat or House. The zero value means "not chosen yet".
type HabitationType int

const (
	HabitationUnset HabitationType = iota
	HabitationFlat
	HabitationHouse
)

var habitationNames = map[HabitationType]string{
	HabitationFlat:  "Flat",
	HabitationHouse: "House",
}

// HabitationOptions lists the selectable values in display order.
var HabitationOptions = []HabitationType{HabitationFlat, HabitationHouse}

func (h HabitationType) String() string {
	if name, ok := habitationNames[h]; ok {
		return name
	}
	return placeholder
}

func (h HabitationType) IsSet() bool {
	_, ok := habitationNames[h]
	return ok
}

// ParseHabitationType matches s case-insensitively. Blank input and the form
// placeholder map to HabitationUnset.
func ParseHabitationType(s string) (HabitationType, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, placeholder) {
		return HabitationUnset, nil
	}
	for h, name := range habitationNames {
		if strings.EqualFold(s, name) {
			return h, nil
		}
	}
	return HabitationUnset, fmt.Errorf("%w: %q", ErrInvalidHabitation, s)
}

func (h HabitationType) MarshalText() ([]byte, error) {
	if !h.IsSet() {
		return []byte(""), nil
	}
	return []byte(h.String()), nil
}

func (h *HabitationType) UnmarshalText(b []byte) error {
	v, err := ParseHabitationType(string(b))
	if err != nil {
		return err
	}
	*h = v
	return nil
}

// DwellingCategory is the BHK size of the home, which selects how many lights
// and fans are assumed.
type DwellingCategory int

const (
	DwellingUnset DwellingCategory = iota
	DwellingOneBHK
	DwellingTwoBHK
	DwellingThreeBHK
)

var dwellingNames = map[DwellingCategory]string{
	DwellingOneBHK:   "1BHK",
	DwellingTwoBHK:   "2BHK",
	DwellingThreeBHK: "3BHK",
}

var dwellingAliases = map[string]DwellingCategory{
	"onebhk":   DwellingOneBHK,
	"twobhk":   DwellingTwoBHK,
	"threebhk": DwellingThreeBHK,
}

// DwellingOptions lists the selectable values in display order.
var DwellingOptions = []DwellingCategory{DwellingOneBHK, DwellingTwoBHK, DwellingThreeBHK}

func (d DwellingCategory) String() string {
	if name, ok := dwellingNames[d]; ok {
		return name
	}
	return placeholder
}

func (d DwellingCategory) IsSet() bool {
	return d != DwellingUnset
}

// Known reports whether d is one of the canonical categories. A category can
// be set and still unknown when it was built from an arbitrary integer.
func (d DwellingCategory) Known() bool {
	_, ok := dwellingNames[d]
	return ok
}

// ParseDwellingCategory accepts "1BHK", "2bhk", "TwoBHK" and so on.
func ParseDwellingCategory(s string) (DwellingCategory, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, placeholder) {
		return DwellingUnset, nil
	}
	for d, name := range dwellingNames {
		if strings.EqualFold(s, name) {
			return d, nil
		}
	}
	if d, ok := dwellingAliases[strings.ToLower(s)]; ok {
		return d, nil
	}
	return DwellingUnset, fmt.Errorf("%w: %q", ErrInvalidCategory, s)
}

func (d DwellingCategory) MarshalText() ([]byte, error) {
	if !d.Known() {
		return []byte(""), nil
	}
	return []byte(d.String()), nil
}

func (d *DwellingCategory) UnmarshalText(b []byte) error {
	v, err := ParseDwellingCategory(string(b))
	if err != nil {
		return err
	}
	*d = v
	return nil
}

// Choice is an explicit yes/no answer. ChoiceUnset is not the same as No.
type Choice int

const (
	ChoiceUnset Choice = iota
	ChoiceYes
	ChoiceNo
)

// ChoiceOptions lists the selectable values in display order.
var ChoiceOptions = []Choice{ChoiceYes, ChoiceNo}

func (c Choice) String() string {
	switch c {
	case ChoiceYes:
		return "Yes"
	case ChoiceNo:
		return "No"
	default:
		return placeholder
	}
}

func (c Choice) IsSet() bool {
	return c == ChoiceYes || c == ChoiceNo
}

func (c Choice) Bool() bool {
	return c == ChoiceYes
}

// ChoiceOf converts a plain bool into an explicit answer.
func ChoiceOf(b bool) Choice {
	if b {
		return ChoiceYes
	}
	return ChoiceNo
}

func ParseChoice(s string) (Choice, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, placeholder) {
		return ChoiceUnset, nil
	}
	switch strings.ToLower(s) {
	case "yes", "y", "true":
		return ChoiceYes, nil
	case "no", "n", "false":
		return ChoiceNo, nil
	}
	return ChoiceUnset, fmt.Errorf("%w: %q", ErrInvalidChoice, s)
}

func (c Choice) MarshalText() ([]byte, error) {
	if !c.IsSet() {
		return []byte(""), nil
	}
	return []byte(c.String()), nil
}

func (c *Choice) UnmarshalText(b []byte) error {
	v, err := ParseChoice(string(b))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// HouseholdProfile is the input record for an estimate. Enum fields start in
// their Unset state and must be chosen explicitly.
type HouseholdProfile struct {
	Name           string           `json:"name"`
	Age            int              `json:"age"`
	City           string           `json:"city"`
	Area           string           `json:"area"`
	Habitation     HabitationType   `json:"habitation_type"`
	Dwelling       DwellingCategory `json:"dwelling_category"`
	AC             Choice           `json:"has_ac"`
	Fridge         Choice           `json:"has_fridge"`
	WashingMachine Choice           `json:"has_washing_machine"`
}

// NewHouseholdProfile returns a blank profile with the default age.
func NewHouseholdProfile() HouseholdProfile {
	return HouseholdProfile{Age: DefaultAge}
}

// ValidAge reports whether age is inside the accepted range.
func ValidAge(age int) bool {
	return age >= MinAge && age <= MaxAge
}

// Selections renders the profile the way the "current selections" panel
// shows it: blank text fields read "Not entered", unset options read "Select".
func (p HouseholdProfile) Selections() []Selection {
	text := func(s string) string {
		if strings.TrimSpace(s) == "" {
			return "Not entered"
		}
		return s
	}
	return []Selection{
		{Label: "Name", Value: text(p.Name)},
		{Label: "Age", Value: fmt.Sprintf("%d", p.Age)},
		{Label: "City", Value: text(p.City)},
		{Label: "Area", Value: text(p.Area)},
		{Label: "Habitation", Value: p.Habitation.String()},
		{Label: "BHK Type", Value: p.Dwelling.String()},
		{Label: "AC", Value: p.AC.String()},
		{Label: "Fridge", Value: p.Fridge.String()},
		{Label: "Washing Machine", Value: p.WashingMachine.String()},
	}
}

type Selection struct {
	Label string `json:"label"`
	Value string `json:"value"`
}
