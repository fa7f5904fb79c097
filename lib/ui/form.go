// Copyright 2026 The Drivelot Authors
// SPDX-License-Identifier: Apache-2.0

package ui

import (
	"context"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/drivelot/drivelot/lib/listing"
)

// carCreatedMsg delivers the result of a listing submission.
type carCreatedMsg struct {
	generation int
	car        *listing.Listing
	err        error
}

func (m carCreatedMsg) fetchError() error { return m.err }

// Form field indices, in display and focus order.
const (
	fieldMake = iota
	fieldModel
	fieldYear
	fieldMileage
	fieldPrice
	fieldColor
	fieldCondition
	fieldTransmission
	fieldFuel
	fieldImages
	fieldDescription
	fieldCount
)

// formModel is the new-listing submission form. Text fields are bubbles
// inputs; the transmission and fuel rows cycle through the fixed enum
// values. The draft is validated locally before anything touches the
// network.
type formModel struct {
	app *App

	// inputs is indexed by field constant; the transmission, fuel, and
	// description slots go unused (the first two are enum rows, the
	// description is the textarea below).
	inputs      [fieldCount - 1]textinput.Model
	description textarea.Model
	focus       int

	transmission listing.Transmission
	fuel         listing.FuelType

	// formError holds the local validation failure shown above the
	// submit hint; server failures go through the status bar instead.
	formError string

	submitting bool
	generation int
}

func newFormModel(app *App) formModel {
	m := formModel{app: app}

	labels := map[int]string{
		fieldMake:      "Toyota",
		fieldModel:     "Corolla",
		fieldYear:      "2019",
		fieldMileage:   "42000",
		fieldPrice:     "15000",
		fieldColor:     "Silver",
		fieldCondition: "Used",
		fieldImages:    "/path/to/front.jpg, /path/to/side.jpg",
	}
	for field := range m.inputs {
		input := textinput.New()
		input.Placeholder = labels[field]
		input.CharLimit = 128
		m.inputs[field] = input
	}

	m.description = textarea.New()
	m.description.Placeholder = "Describe the car (markdown welcome)"
	m.description.SetHeight(4)
	m.description.CharLimit = 2000

	return m.focusField(0)
}

// reset clears the form for a fresh submission.
func (m formModel) reset() formModel {
	fresh := newFormModel(m.app)
	fresh.generation = m.generation
	return fresh
}

func (m formModel) typing() bool {
	return !m.submitting
}

// focusField moves focus to the given field, blurring the rest.
func (m formModel) focusField(field int) formModel {
	m.focus = field
	for i := range m.inputs {
		m.inputs[i].Blur()
	}
	m.description.Blur()

	switch {
	case field == fieldDescription:
		m.description.Focus()
	case field != fieldTransmission && field != fieldFuel:
		m.inputs[field].Focus()
	}
	return m
}

func (m formModel) update(msg tea.Msg) (formModel, tea.Cmd) {
	switch msg := msg.(type) {
	case carCreatedMsg:
		if msg.generation != m.generation {
			return m, nil
		}
		m.submitting = false
		if msg.err != nil {
			return m, notifyError(msg.err)
		}
		created := msg.car
		cmds := []tea.Cmd{notify("Your car has been listed")}
		if created != nil && created.ID != "" {
			cmds = append(cmds, openListing(created.ID))
		} else {
			cmds = append(cmds, navigateTo(RouteBrowse))
		}
		return m.reset(), tea.Batch(cmds...)

	case tea.KeyMsg:
		if m.submitting {
			return m, nil
		}
		return m.updateKey(msg)
	}
	return m, nil
}

func (m formModel) updateKey(msg tea.KeyMsg) (formModel, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return m, navigateTo(RouteHome)

	case "ctrl+s":
		return m.submit()

	case "tab", "down":
		if m.focus == fieldDescription && msg.String() == "down" {
			break // let the textarea move its own cursor
		}
		return m.focusField((m.focus + 1) % fieldCount), nil

	case "shift+tab", "up":
		if m.focus == fieldDescription && msg.String() == "up" {
			break
		}
		return m.focusField((m.focus + fieldCount - 1) % fieldCount), nil

	case "enter":
		if m.focus != fieldDescription {
			return m.focusField((m.focus + 1) % fieldCount), nil
		}

	case "left", "right", " ":
		forward := msg.String() != "left"
		switch m.focus {
		case fieldTransmission:
			m.transmission = cycleTransmission(m.transmission, forward)
			return m, nil
		case fieldFuel:
			m.fuel = cycleFuel(m.fuel, forward)
			return m, nil
		}
	}

	var cmd tea.Cmd
	switch m.focus {
	case fieldDescription:
		m.description, cmd = m.description.Update(msg)
	case fieldTransmission, fieldFuel:
		// Enum rows take no text input.
	default:
		m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	}
	return m, cmd
}

// draft assembles the submission from the form fields. Unparseable
// numbers surface as validation failures through out-of-range values.
func (m formModel) draft() listing.Draft {
	year, _ := strconv.Atoi(strings.TrimSpace(m.inputs[fieldYear].Value()))
	mileage, _ := strconv.ParseFloat(strings.TrimSpace(m.inputs[fieldMileage].Value()), 64)
	price, _ := strconv.ParseFloat(strings.TrimSpace(m.inputs[fieldPrice].Value()), 64)

	var paths []string
	for _, path := range strings.Split(m.inputs[fieldImages].Value(), ",") {
		if path = strings.TrimSpace(path); path != "" {
			paths = append(paths, path)
		}
	}

	return listing.Draft{
		Make:         strings.TrimSpace(m.inputs[fieldMake].Value()),
		Model:        strings.TrimSpace(m.inputs[fieldModel].Value()),
		Year:         year,
		Mileage:      mileage,
		Price:        price,
		Description:  m.description.Value(),
		Transmission: m.transmission,
		FuelType:     m.fuel,
		Color:        strings.TrimSpace(m.inputs[fieldColor].Value()),
		Condition:    strings.TrimSpace(m.inputs[fieldCondition].Value()),
		ImagePaths:   paths,
	}
}

func (m formModel) submit() (formModel, tea.Cmd) {
	draft := m.draft()
	if err := draft.Validate(); err != nil {
		m.formError = err.Error()
		return m, nil
	}
	m.formError = ""
	m.submitting = true
	m.generation++

	app := m.app
	generation := m.generation
	return m, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), app.UploadTimeout)
		defer cancel()
		car, err := app.API.CreateCar(ctx, &draft)
		return carCreatedMsg{generation: generation, car: car, err: err}
	}
}

func cycleTransmission(current listing.Transmission, forward bool) listing.Transmission {
	options := append([]listing.Transmission{listing.TransmissionUnset}, listing.Transmissions...)
	return cycleOption(options, current, forward)
}

func cycleFuel(current listing.FuelType, forward bool) listing.FuelType {
	options := append([]listing.FuelType{listing.FuelUnset}, listing.FuelTypes...)
	return cycleOption(options, current, forward)
}

func cycleOption[T comparable](options []T, current T, forward bool) T {
	for i, option := range options {
		if option == current {
			if forward {
				return options[(i+1)%len(options)]
			}
			return options[(i+len(options)-1)%len(options)]
		}
	}
	return options[0]
}

func (m formModel) view(width, height int) string {
	theme := m.app.Theme
	faint := lipgloss.NewStyle().Foreground(theme.FaintText)

	if m.submitting {
		return faint.Render("Submitting your listing...")
	}

	label := func(field int, name string) string {
		style := faint.Width(14)
		if field == m.focus {
			style = lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Width(14)
		}
		return style.Render(name)
	}
	enumValue := func(field int, value string) string {
		if value == "" {
			value = "(not specified)"
		}
		if field == m.focus {
			return lipgloss.NewStyle().Foreground(theme.NormalText).Render("◂ " + value + " ▸")
		}
		return faint.Render(value)
	}

	names := [fieldCount]string{
		"Make", "Model", "Year", "Mileage", "Price", "Color", "Condition",
		"Transmission", "Fuel Type", "Images", "Description",
	}

	var lines []string
	for field := 0; field < fieldCount; field++ {
		switch field {
		case fieldTransmission:
			lines = append(lines, label(field, names[field])+enumValue(field, string(m.transmission)))
		case fieldFuel:
			lines = append(lines, label(field, names[field])+enumValue(field, string(m.fuel)))
		case fieldDescription:
			lines = append(lines, label(field, names[field]), m.description.View())
		default:
			lines = append(lines, label(field, names[field])+m.inputs[field].View())
		}
	}

	lines = append(lines, "")
	if m.formError != "" {
		errorStyle := lipgloss.NewStyle().Foreground(theme.ErrorText)
		for _, failure := range strings.Split(m.formError, "\n") {
			lines = append(lines, errorStyle.Render("✗ "+failure))
		}
	}
	lines = append(lines, faint.Render("tab/↑↓ move · ←/→ cycle choices · ctrl+s submit · esc cancel"))

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
