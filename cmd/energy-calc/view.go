package main

import (
	"fmt"
	"strings"

	"energy-calculator/usecases"

	"github.com/charmbracelet/lipgloss"
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("35")).
			MarginBottom(1)

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("67"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("170")).
			Bold(true)

	normalStyle = lipgloss.NewStyle()

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	inputStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86"))

	totalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("203")).
			Bold(true)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("67")).
			Padding(0, 1).
			MarginLeft(2)

	buttonStyle = lipgloss.NewStyle().
			Padding(0, 2).
			Background(lipgloss.Color("35")).
			Foreground(lipgloss.Color("230"))
)

const barWidth = 30

func (m model) View() string {
	if m.quitting {
		return ""
	}

	var s strings.Builder
	s.WriteString(titleStyle.Render("⚡ Energy Consumption Calculator"))
	s.WriteString("\n")

	left := m.formView()
	if m.estimate != nil {
		left += "\n" + m.resultView()
	}
	s.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, left, m.statusView()))
	s.WriteString("\n\n↑/↓ move • ←/→ choose • Enter next/calculate • ctrl+r reset • esc quit\n")
	return s.String()
}

func (m model) formView() string {
	var s strings.Builder
	s.WriteString(sectionStyle.Render("📝 Enter Your Details") + "\n")

	for i, f := range formFields {
		if f.key == usecases.FieldHabitation {
			s.WriteString("\n")
		}
		if f.key == usecases.FieldAC {
			s.WriteString("\n" + sectionStyle.Render("🏠 Appliances") + "\n")
		}

		cursor := "  "
		style := normalStyle
		if m.focus == i {
			cursor = "> "
			style = selectedStyle
		}

		value := m.values[i]
		if f.kind == kindOption {
			value = "‹ " + value + " ›"
		} else if m.focus == i {
			value += "_"
		}
		s.WriteString(fmt.Sprintf("%s%s %s\n", cursor, style.Render(f.prompt), inputStyle.Render(value)))
	}

	button := "🔍 Calculate Energy Consumption"
	if m.focus == calculateFocus {
		button = buttonStyle.Render(button)
	} else {
		button = "  " + button
	}
	s.WriteString("\n" + button + "\n")

	if m.message != "" {
		s.WriteString("\n" + m.message + "\n")
	}
	return s.String()
}

func (m model) resultView() string {
	var s strings.Builder
	s.WriteString(sectionStyle.Render("⚡ Energy Consumption Result") + "\n")
	s.WriteString("Estimated Monthly Energy Consumption: ")
	s.WriteString(totalStyle.Render(fmt.Sprintf("%.1f units", m.estimate.Total())) + "\n\n")

	s.WriteString(sectionStyle.Render("📊 Energy Breakdown") + "\n")
	for _, item := range m.estimate.Breakdown() {
		n := int(item.Share / 100 * barWidth)
		bar := strings.Repeat("█", n) + strings.Repeat("░", barWidth-n)
		s.WriteString(fmt.Sprintf("%-16s %s %6.1f (%4.1f%%)\n", item.Label, bar, item.Units, item.Share))
	}

	s.WriteString("\n" + sectionStyle.Render("💡 Energy Efficiency Tips") + "\n")
	for _, tip := range usecases.EfficiencyTips {
		s.WriteString("• " + tip + "\n")
	}
	return s.String()
}

func (m model) statusView() string {
	var s strings.Builder
	s.WriteString(sectionStyle.Render("🔧 Current Selections") + "\n")
	for _, sel := range m.profile.Selections() {
		s.WriteString(fmt.Sprintf("%s: %s\n", sel.Label, sel.Value))
	}

	s.WriteString("\n" + sectionStyle.Render("✅ Validation Status") + "\n")
	report := usecases.ValidationReport(m.profile)
	for _, check := range report {
		icon := "❌"
		if check.Satisfied {
			icon = "✅"
		}
		s.WriteString(fmt.Sprintf("%s %s\n", icon, check.Label))
	}

	completed := usecases.Completed(report)
	ratio := usecases.CompletionRatio(report)
	filled := int(ratio * 20)
	s.WriteString("\n" + sectionStyle.Render("📈 Progress") + "\n")
	s.WriteString(strings.Repeat("█", filled) + strings.Repeat("░", 20-filled) + "\n")
	s.WriteString(fmt.Sprintf("Completed: %d/%d fields", completed, len(report)))

	return panelStyle.Render(s.String())
}
