package usecases

import (
	"strings"

	"energy-calculator/entities"
)

// ValidationCheck is one row of the per-field checklist.
type ValidationCheck struct {
	Label     string `json:"label"`
	Field     string `json:"field"`
	Satisfied bool   `json:"satisfied"`
}

type fieldCheck struct {
	label string
	field string
	ok    func(entities.HouseholdProfile) bool
}

func hasText(s string) bool { return strings.TrimSpace(s) != "" }

// reportedChecks is the fixed checklist order. Age has a default and is
// never reported.
var reportedChecks = []fieldCheck{
	{"Name", FieldName, func(p entities.HouseholdProfile) bool { return hasText(p.Name) }},
	{"City", FieldCity, func(p entities.HouseholdProfile) bool { return hasText(p.City) }},
	{"Area", FieldArea, func(p entities.HouseholdProfile) bool { return hasText(p.Area) }},
	{"Habitation Type", FieldHabitation, func(p entities.HouseholdProfile) bool { return p.Habitation.IsSet() }},
	{"BHK Type", FieldDwelling, func(p entities.HouseholdProfile) bool { return p.Dwelling.IsSet() }},
	{"AC Status", FieldAC, func(p entities.HouseholdProfile) bool { return p.AC.IsSet() }},
	{"Fridge Status", FieldFridge, func(p entities.HouseholdProfile) bool { return p.Fridge.IsSet() }},
	{"Washing Machine Status", FieldWashingMachine, func(p entities.HouseholdProfile) bool { return p.WashingMachine.IsSet() }},
}

// ValidationReport returns one check per reported field, always eight.
func ValidationReport(profile entities.HouseholdProfile) []ValidationCheck {
	report := make([]ValidationCheck, 0, len(reportedChecks))
	for _, c := range reportedChecks {
		report = append(report, ValidationCheck{Label: c.label, Field: c.field, Satisfied: c.ok(profile)})
	}
	return report
}

// Completed counts satisfied checks.
func Completed(report []ValidationCheck) int {
	n := 0
	for _, c := range report {
		if c.Satisfied {
			n++
		}
	}
	return n
}

// CompletionRatio is the satisfied share of report, in [0,1].
func CompletionRatio(report []ValidationCheck) float64 {
	if len(report) == 0 {
		return 0
	}
	return float64(Completed(report)) / float64(len(report))
}

// MissingFields lists the wire names of every field that still needs a
// value, including an out-of-range age.
func MissingFields(profile entities.HouseholdProfile) []string {
	var missing []string
	for _, c := range reportedChecks {
		if !c.ok(profile) {
			missing = append(missing, c.field)
		}
		// age sits between name and city in the profile
		if c.field == FieldName && !entities.ValidAge(profile.Age) {
			missing = append(missing, FieldAge)
		}
	}
	return missing
}

// IsComplete reports whether all nine fields are set.
func IsComplete(profile entities.HouseholdProfile) bool {
	return len(MissingFields(profile)) == 0
}

// ValidationSummary bundles a report with its derived counts for responses.
type ValidationSummary struct {
	Checks    []ValidationCheck `json:"checks"`
	Completed int               `json:"completed"`
	Total     int               `json:"total"`
	Ratio     float64           `json:"ratio"`
	Complete  bool              `json:"complete"`
	Missing   []string          `json:"missing,omitempty"`
}

func Summarize(profile entities.HouseholdProfile) ValidationSummary {
	report := ValidationReport(profile)
	missing := MissingFields(profile)
	return ValidationSummary{
		Checks:    report,
		Completed: Completed(report),
		Total:     len(report),
		Ratio:     CompletionRatio(report),
		Complete:  len(missing) == 0,
		Missing:   missing,
	}
}
