package entities

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEnergyEstimate(t *testing.T) {
	e := NewEnergyEstimate(
		[]string{LabelLightsFans, LabelAC},
		[]int64{1080, 900},
	)

	assert.Equal(t, 198.0, e.Total())
	units, ok := e.Units(LabelAC)
	require.True(t, ok)
	assert.Equal(t, 90.0, units)

	_, ok = e.Units(LabelFridge)
	assert.False(t, ok)

	items := e.Breakdown()
	require.Len(t, items, 2)
	assert.InDelta(t, 54.545, items[0].Share, 0.001)
}

func TestEnergyEstimateBreakdownIsACopy(t *testing.T) {
	e := NewEnergyEstimate([]string{LabelLightsFans}, []int64{720})
	items := e.Breakdown()
	items[0].Units = 0

	units, _ := e.Units(LabelLightsFans)
	assert.Equal(t, 72.0, units)
}

func TestEnergyEstimateJSON(t *testing.T) {
	e := NewEnergyEstimate([]string{LabelLightsFans, LabelFridge}, []int64{720, 1200})

	b, err := json.Marshal(e)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"total":192,"unit":"units","period_days":30,
		"breakdown":[
			{"label":"Lights & Fans","units":72,"share":37.5},
			{"label":"Refrigerator","units":120,"share":62.5}
		]
	}`, string(b))

	var back EnergyEstimate
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, e.Total(), back.Total())
	assert.Equal(t, e.Breakdown(), back.Breakdown())
}
