package report

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"energy-calculator/entities"
	"energy-calculator/usecases"

	"github.com/jung-kurt/gofpdf"
)

// BuildEstimatePDF renders the user details, total and breakdown table.
func BuildEstimatePDF(profile entities.HouseholdProfile, estimate entities.EnergyEstimate, generated time.Time) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle("Energy Consumption Estimate", true)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, "Energy Consumption Estimate")
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 10)
	for _, line := range userDetails(profile) {
		pdf.Cell(0, 6, tr(line[0]+": "+line[1]))
		pdf.Ln(5)
	}
	pdf.Cell(0, 6, fmt.Sprintf("Generated: %s", generated.UTC().Format(time.RFC3339)))
	pdf.Ln(10)

	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Estimated Monthly Energy Consumption: %.1f units", estimate.Total()))
	pdf.Ln(12)

	// Breakdown table
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(70, 6, "Appliance", "1", 0, "C", false, 0, "")
	pdf.CellFormat(45, 6, "Energy (units)", "1", 0, "C", false, 0, "")
	pdf.CellFormat(35, 6, "Share (%)", "1", 0, "C", false, 0, "")
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 10)
	for _, item := range estimate.Breakdown() {
		pdf.CellFormat(70, 6, tr(item.Label), "1", 0, "L", false, 0, "")
		pdf.CellFormat(45, 6, fmt.Sprintf("%.1f", item.Units), "1", 0, "R", false, 0, "")
		pdf.CellFormat(35, 6, fmt.Sprintf("%.1f", item.Share), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}
	pdf.Ln(8)

	pdf.SetFont("Arial", "B", 11)
	pdf.Cell(0, 6, "Tips to Reduce Energy Consumption")
	pdf.Ln(7)
	pdf.SetFont("Arial", "", 10)
	for _, tip := range usecases.EfficiencyTips {
		pdf.Cell(0, 6, tr("- "+tip))
		pdf.Ln(5)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// userDetails is the label/value list shared by both report formats.
func userDetails(p entities.HouseholdProfile) [][2]string {
	return [][2]string{
		{"Name", p.Name},
		{"Age", fmt.Sprintf("%d", p.Age)},
		{"City", p.City},
		{"Area", p.Area},
		{"Habitation Type", p.Habitation.String()},
		{"BHK Type", strings.ToUpper(p.Dwelling.String())},
		{"AC", p.AC.String()},
		{"Fridge", p.Fridge.String()},
		{"Washing Machine", p.WashingMachine.String()},
	}
}
