package entities

import "encoding/json"

// Breakdown labels, in the order they are computed.
const (
	LabelLightsFans     = "Lights & Fans"
	LabelAC             = "Air Conditioner"
	LabelFridge         = "Refrigerator"
	LabelWashingMachine = "Washing Machine"
)

// PeriodDays is the length of the estimated billing month.
const PeriodDays = 30

// BreakdownItem is one category's share of the monthly estimate.
type BreakdownItem struct {
	Label string  `json:"label"`
	Units float64 `json:"units"`
	Share float64 `json:"share"` // percent of total
}

// EnergyEstimate is the result of an estimation. It cannot be changed after
// it is built; Breakdown returns a copy.
type EnergyEstimate struct {
	total     float64
	breakdown []BreakdownItem
}

// NewEnergyEstimate builds an estimate from contributions in tenths of a
// unit. Summing integers keeps total equal to the sum of the parts.
func NewEnergyEstimate(labels []string, tenths []int64) EnergyEstimate {
	var sum int64
	for _, t := range tenths {
		sum += t
	}
	items := make([]BreakdownItem, 0, len(labels))
	for i, label := range labels {
		item := BreakdownItem{Label: label, Units: float64(tenths[i]) / 10}
		if sum > 0 {
			item.Share = float64(tenths[i]) * 100 / float64(sum)
		}
		items = append(items, item)
	}
	return EnergyEstimate{total: float64(sum) / 10, breakdown: items}
}

func (e EnergyEstimate) Total() float64 { return e.total }

func (e EnergyEstimate) Breakdown() []BreakdownItem {
	out := make([]BreakdownItem, len(e.breakdown))
	copy(out, e.breakdown)
	return out
}

// Units returns the contribution for label, if that category was included.
func (e EnergyEstimate) Units(label string) (float64, bool) {
	for _, item := range e.breakdown {
		if item.Label == label {
			return item.Units, true
		}
	}
	return 0, false
}

type estimateJSON struct {
	Total      float64         `json:"total"`
	Unit       string          `json:"unit"`
	PeriodDays int             `json:"period_days"`
	Breakdown  []BreakdownItem `json:"breakdown"`
}

func (e EnergyEstimate) MarshalJSON() ([]byte, error) {
	items := e.breakdown
	if items == nil {
		items = []BreakdownItem{}
	}
	return json.Marshal(estimateJSON{
		Total:      e.total,
		Unit:       "units",
		PeriodDays: PeriodDays,
		Breakdown:  items,
	})
}

// UnmarshalJSON restores an estimate that was stored with MarshalJSON.
func (e *EnergyEstimate) UnmarshalJSON(b []byte) error {
	var raw estimateJSON
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	e.total = raw.Total
	e.breakdown = raw.Breakdown
	return nil
}
