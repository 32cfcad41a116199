package main

import (
	"errors"
	"strconv"
	"unicode"

	"energy-calculator/entities"
	"energy-calculator/usecases"

	tea "github.com/charmbracelet/bubbletea"
)

const placeholder = "Select"

type fieldKind int

const (
	kindText fieldKind = iota
	kindNumber
	kindOption
)

type formField struct {
	key     string
	prompt  string
	kind    fieldKind
	options []string // option fields only; the first entry is the placeholder
}

func optionsOf[T interface{ String() string }](values []T) []string {
	out := []string{placeholder}
	for _, v := range values {
		out = append(out, v.String())
	}
	return out
}

var formFields = []formField{
	{key: usecases.FieldName, prompt: "Enter your name:", kind: kindText},
	{key: usecases.FieldAge, prompt: "Enter your age:", kind: kindNumber},
	{key: usecases.FieldCity, prompt: "Enter your city:", kind: kindText},
	{key: usecases.FieldArea, prompt: "Enter your area name:", kind: kindText},
	{key: usecases.FieldHabitation, prompt: "Are you living in a Flat or a House?", kind: kindOption, options: optionsOf(entities.HabitationOptions)},
	{key: usecases.FieldDwelling, prompt: "Which type of home do you have?", kind: kindOption, options: optionsOf(entities.DwellingOptions)},
	{key: usecases.FieldAC, prompt: "Do you have an AC?", kind: kindOption, options: optionsOf(entities.ChoiceOptions)},
	{key: usecases.FieldFridge, prompt: "Do you have a Fridge?", kind: kindOption, options: optionsOf(entities.ChoiceOptions)},
	{key: usecases.FieldWashingMachine, prompt: "Do you have a Washing Machine?", kind: kindOption, options: optionsOf(entities.ChoiceOptions)},
}

// calculateFocus is the focus index of the calculate button, after the fields.
var calculateFocus = len(formFields)

type model struct {
	values   []string // raw text per field
	cursors  []int    // selected option per field
	errs     []error  // parse error of the raw text per field, nil when valid
	focus    int
	profile  entities.HouseholdProfile
	estimate *entities.EnergyEstimate
	message  string
	quitting bool
}

func initialModel() model {
	m := model{
		values:  make([]string, len(formFields)),
		cursors: make([]int, len(formFields)),
		errs:    make([]error, len(formFields)),
		profile: entities.NewHouseholdProfile(),
	}
	for i, f := range formFields {
		if f.kind == kindOption {
			m.values[i] = placeholder
		}
		if f.key == usecases.FieldAge {
			m.values[i] = strconv.Itoa(entities.DefaultAge)
		}
	}
	return m
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "ctrl+c", "esc":
		m.quitting = true
		return m, tea.Quit

	case "up", "shift+tab":
		if m.focus > 0 {
			m.focus--
		}

	case "down", "tab":
		if m.focus < calculateFocus {
			m.focus++
		}

	case "left":
		m.cycleOption(-1)

	case "right":
		m.cycleOption(1)

	case "backspace":
		if m.onTextField() {
			v := []rune(m.values[m.focus])
			if len(v) > 0 {
				m.setValue(string(v[:len(v)-1]))
			}
		}

	case "ctrl+r":
		m = initialModel()

	case "enter":
		if m.focus == calculateFocus {
			m.calculate()
		} else {
			m.focus++
		}

	default:
		if m.onTextField() && (key.Type == tea.KeyRunes || key.Type == tea.KeySpace) {
			runes := key.Runes
			if key.Type == tea.KeySpace {
				runes = []rune{' '}
			}
			if formFields[m.focus].kind == kindNumber && !allDigits(runes) {
				break
			}
			m.setValue(m.values[m.focus] + string(runes))
		}
	}

	return m, nil
}

func (m *model) onTextField() bool {
	return m.focus < calculateFocus && formFields[m.focus].kind != kindOption
}

func (m *model) cycleOption(step int) {
	if m.focus >= calculateFocus || formFields[m.focus].kind != kindOption {
		return
	}
	n := len(formFields[m.focus].options)
	m.cursors[m.focus] = (m.cursors[m.focus] + step + n) % n
	m.setValue(formFields[m.focus].options[m.cursors[m.focus]])
}

// setValue stores the raw text and re-derives the profile. An edit hides the
// previous result.
func (m *model) setValue(v string) {
	f := formFields[m.focus]
	m.values[m.focus] = v
	m.message = ""

	next, err := usecases.SetField(m.profile, f.key, v)
	m.errs[m.focus] = err
	if err != nil {
		m.estimate = nil
		if f.key == usecases.FieldAge && v == "" {
			return
		}
		m.message = errorStyle.Render("✗ " + err.Error())
		return
	}
	if next != m.profile {
		m.profile = next
		m.estimate = nil
	}
}

// calculate refuses while any field's text does not parse, so the profile
// estimated is always the one on screen.
func (m *model) calculate() {
	for _, err := range m.errs {
		if err != nil {
			m.estimate = nil
			m.message = errorStyle.Render("✗ " + err.Error())
			return
		}
	}

	estimate, err := usecases.RecordedEstimate(usecases.SourceTerminal, m.profile)
	if err != nil {
		m.estimate = nil
		if errors.Is(err, entities.ErrIncompleteProfile) {
			m.message = errorStyle.Render("⚠️ Please fill in all the required fields before calculating.")
		} else {
			m.message = errorStyle.Render("✗ " + err.Error())
		}
		return
	}
	m.estimate = &estimate
	m.message = successStyle.Render("✓ Estimate ready")
}

func allDigits(runes []rune) bool {
	for _, r := range runes {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return len(runes) > 0
}
