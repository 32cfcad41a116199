package usecases

import (
	"testing"

	"energy-calculator/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsCompleteEachFieldHeldBack(t *testing.T) {
	full := completeProfile(entities.DwellingTwoBHK, true, true, false)
	require.True(t, IsComplete(full))

	tests := []struct {
		field string
		clear func(*entities.HouseholdProfile)
	}{
		{FieldName, func(p *entities.HouseholdProfile) { p.Name = "   " }},
		{FieldAge, func(p *entities.HouseholdProfile) { p.Age = 0 }},
		{FieldCity, func(p *entities.HouseholdProfile) { p.City = "" }},
		{FieldArea, func(p *entities.HouseholdProfile) { p.Area = "" }},
		{FieldHabitation, func(p *entities.HouseholdProfile) { p.Habitation = entities.HabitationUnset }},
		{FieldDwelling, func(p *entities.HouseholdProfile) { p.Dwelling = entities.DwellingUnset }},
		{FieldAC, func(p *entities.HouseholdProfile) { p.AC = entities.ChoiceUnset }},
		{FieldFridge, func(p *entities.HouseholdProfile) { p.Fridge = entities.ChoiceUnset }},
		{FieldWashingMachine, func(p *entities.HouseholdProfile) { p.WashingMachine = entities.ChoiceUnset }},
	}
	require.Len(t, tests, len(ProfileFields))

	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			p := full
			tt.clear(&p)
			assert.False(t, IsComplete(p))
			assert.Equal(t, []string{tt.field}, MissingFields(p))
		})
	}
}

func TestChoiceNoCountsAsAnswered(t *testing.T) {
	p := completeProfile(entities.DwellingOneBHK, false, false, false)
	assert.True(t, IsComplete(p))
}

func TestValidationReport(t *testing.T) {
	blank := entities.NewHouseholdProfile()
	report := ValidationReport(blank)
	require.Len(t, report, 8)

	labels := make([]string, 0, len(report))
	for _, c := range report {
		labels = append(labels, c.Label)
		assert.False(t, c.Satisfied, c.Label)
	}
	assert.Equal(t, []string{
		"Name", "City", "Area", "Habitation Type", "BHK Type",
		"AC Status", "Fridge Status", "Washing Machine Status",
	}, labels)
	assert.Equal(t, 0.0, CompletionRatio(report))

	full := ValidationReport(completeProfile(entities.DwellingThreeBHK, true, false, true))
	require.Len(t, full, 8)
	assert.Equal(t, 8, Completed(full))
	assert.Equal(t, 1.0, CompletionRatio(full))
}

func TestValidationReportPartial(t *testing.T) {
	p := entities.NewHouseholdProfile()
	p.Name = "Asha"
	p.City = "Pune"
	p.AC = entities.ChoiceNo

	report := ValidationReport(p)
	assert.Len(t, report, 8)
	assert.Equal(t, 3, Completed(report))
	assert.Equal(t, 0.375, CompletionRatio(report))
}

func TestValidationReportIgnoresAge(t *testing.T) {
	p := completeProfile(entities.DwellingOneBHK, false, false, false)
	p.Age = 500

	assert.Equal(t, 8, Completed(ValidationReport(p)))
	assert.False(t, IsComplete(p))
}

func TestCompletionRatioEmpty(t *testing.T) {
	assert.Equal(t, 0.0, CompletionRatio(nil))
}

func TestSummarize(t *testing.T) {
	p := completeProfile(entities.DwellingOneBHK, false, false, false)
	p.Area = ""

	s := Summarize(p)
	assert.Equal(t, 7, s.Completed)
	assert.Equal(t, 8, s.Total)
	assert.False(t, s.Complete)
	assert.Equal(t, []string{FieldArea}, s.Missing)
	assert.InDelta(t, 0.875, s.Ratio, 1e-9)
}
