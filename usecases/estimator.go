package usecases

import (
	"fmt"

	"energy-calculator/entities"
)

// Daily consumption rates in tenths of a unit.
const (
	lightTenthsPerDay          = 4  // 0.4
	fanTenthsPerDay            = 8  // 0.8
	acTenthsPerDay             = 30 // 3
	fridgeTenthsPerDay         = 40 // 4
	washingMachineTenthsPerDay = 20 // 2
)

type fixtureCount struct {
	Lights int
	Fans   int
}

var fixturesByDwelling = map[entities.DwellingCategory]fixtureCount{
	entities.DwellingOneBHK:   {Lights: 2, Fans: 2},
	entities.DwellingTwoBHK:   {Lights: 3, Fans: 3},
	entities.DwellingThreeBHK: {Lights: 4, Fans: 4},
}

type appliance struct {
	label  string
	tenths int64
	has    func(entities.HouseholdProfile) bool
}

var appliances = []appliance{
	{entities.LabelAC, acTenthsPerDay, func(p entities.HouseholdProfile) bool { return p.AC.Bool() }},
	{entities.LabelFridge, fridgeTenthsPerDay, func(p entities.HouseholdProfile) bool { return p.Fridge.Bool() }},
	{entities.LabelWashingMachine, washingMachineTenthsPerDay, func(p entities.HouseholdProfile) bool { return p.WashingMachine.Bool() }},
}

// Estimate computes the monthly consumption for a complete profile. It fails
// with an *entities.IncompleteProfileError when any field is unset and with
// entities.ErrInvalidCategory when the dwelling is not a known BHK size.
func Estimate(profile entities.HouseholdProfile) (entities.EnergyEstimate, error) {
	if missing := MissingFields(profile); len(missing) > 0 {
		return entities.EnergyEstimate{}, &entities.IncompleteProfileError{Missing: missing}
	}
	fixtures, ok := fixturesByDwelling[profile.Dwelling]
	if !ok {
		return entities.EnergyEstimate{}, fmt.Errorf("%w: %d", entities.ErrInvalidCategory, int(profile.Dwelling))
	}

	labels := []string{entities.LabelLightsFans}
	tenths := []int64{int64(fixtures.Lights*lightTenthsPerDay+fixtures.Fans*fanTenthsPerDay) * entities.PeriodDays}

	for _, a := range appliances {
		if a.has(profile) {
			labels = append(labels, a.label)
			tenths = append(tenths, a.tenths*entities.PeriodDays)
		}
	}

	return entities.NewEnergyEstimate(labels, tenths), nil
}

// MethodologyItem is one row of the rate table shown to users.
type MethodologyItem struct {
	Item         string  `json:"item"`
	DailyUnits   float64 `json:"daily_units"`
	MonthlyUnits float64 `json:"monthly_units"`
}

type DwellingFixtures struct {
	Category string `json:"category"`
	Lights   int    `json:"lights"`
	Fans     int    `json:"fans"`
}

type Methodology struct {
	PeriodDays int                `json:"period_days"`
	Rates      []MethodologyItem  `json:"rates"`
	Dwellings  []DwellingFixtures `json:"dwellings"`
	Tips       []string           `json:"tips"`
}

// EfficiencyTips are shown next to every result.
var EfficiencyTips = []string{
	"Use LED bulbs instead of incandescent bulbs",
	"Set AC temperature to 24°C or higher",
	"Keep refrigerator temperature at optimal levels",
	"Unplug devices when not in use",
	"Use natural light during the day",
	"Use washing machine with full loads",
}

// GetMethodology describes how estimates are calculated.
func GetMethodology() Methodology {
	row := func(item string, tenths int64) MethodologyItem {
		return MethodologyItem{
			Item:         item,
			DailyUnits:   float64(tenths) / 10,
			MonthlyUnits: float64(tenths*entities.PeriodDays) / 10,
		}
	}
	m := Methodology{
		PeriodDays: entities.PeriodDays,
		Rates: []MethodologyItem{
			row("Light (per unit)", lightTenthsPerDay),
			row("Fan (per unit)", fanTenthsPerDay),
		},
		Tips: EfficiencyTips,
	}
	for _, a := range appliances {
		m.Rates = append(m.Rates, row(a.label, a.tenths))
	}
	for _, d := range entities.DwellingOptions {
		f := fixturesByDwelling[d]
		m.Dwellings = append(m.Dwellings, DwellingFixtures{Category: d.String(), Lights: f.Lights, Fans: f.Fans})
	}
	return m
}
