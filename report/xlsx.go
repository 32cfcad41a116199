package report

import (
	"bytes"
	"fmt"
	"time"

	"energy-calculator/entities"
	"energy-calculator/usecases"

	"github.com/xuri/excelize/v2"
)

const (
	SummarySheet   = "Summary"
	BreakdownSheet = "Breakdown"
)

// BuildEstimateXLSX writes a Summary sheet (user details, total, tips) and a
// Breakdown sheet with one row per category.
func BuildEstimateXLSX(profile entities.HouseholdProfile, estimate entities.EnergyEstimate, generated time.Time) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SummarySheet); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(BreakdownSheet); err != nil {
		return nil, err
	}

	_ = f.SetCellValue(SummarySheet, "A1", "Energy Consumption Estimate")
	row := 3
	for _, line := range userDetails(profile) {
		_ = f.SetCellValue(SummarySheet, fmt.Sprintf("A%d", row), line[0])
		_ = f.SetCellValue(SummarySheet, fmt.Sprintf("B%d", row), line[1])
		row++
	}
	row++
	_ = f.SetCellValue(SummarySheet, fmt.Sprintf("A%d", row), "Total (units/month)")
	_ = f.SetCellValue(SummarySheet, fmt.Sprintf("B%d", row), estimate.Total())
	row++
	_ = f.SetCellValue(SummarySheet, fmt.Sprintf("A%d", row), "Period (days)")
	_ = f.SetCellValue(SummarySheet, fmt.Sprintf("B%d", row), entities.PeriodDays)
	row++
	_ = f.SetCellValue(SummarySheet, fmt.Sprintf("A%d", row), "Generated")
	_ = f.SetCellValue(SummarySheet, fmt.Sprintf("B%d", row), generated.UTC().Format(time.RFC3339))
	row += 2
	_ = f.SetCellValue(SummarySheet, fmt.Sprintf("A%d", row), "Tips")
	for _, tip := range usecases.EfficiencyTips {
		row++
		_ = f.SetCellValue(SummarySheet, fmt.Sprintf("A%d", row), tip)
	}

	headers := []string{"Appliance", "Energy (units)", "Share (%)"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(BreakdownSheet, cell, h)
	}
	for i, item := range estimate.Breakdown() {
		r := i + 2
		_ = f.SetCellValue(BreakdownSheet, fmt.Sprintf("A%d", r), item.Label)
		_ = f.SetCellValue(BreakdownSheet, fmt.Sprintf("B%d", r), item.Units)
		_ = f.SetCellValue(BreakdownSheet, fmt.Sprintf("C%d", r), item.Share)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("render xlsx: %w", err)
	}
	return buf.Bytes(), nil
}
