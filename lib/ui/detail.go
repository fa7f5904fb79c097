// Copyright 2026 The Drivelot Authors
// SPDX-License-Identifier: Apache-2.0

package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/drivelot/drivelot/lib/listing"
)

// carLoadedMsg delivers the result of a single-listing fetch.
type carLoadedMsg struct {
	generation int
	car        *listing.Listing
	err        error
}

func (m carLoadedMsg) fetchError() error { return m.err }

// detailTab selects which pane of the detail page is visible.
type detailTab int

const (
	tabDescription detailTab = iota
	tabSpecifications
	tabSeller
	tabCount
)

func (t detailTab) label() string {
	switch t {
	case tabDescription:
		return "Description"
	case tabSpecifications:
		return "Specifications"
	default:
		return "Seller"
	}
}

// detailModel is the single-listing page. Re-entering with a different
// listing ID bumps the generation, so a response for the previously
// selected listing can never render over the new one.
type detailModel struct {
	app *App

	id  string
	car *listing.Listing
	tab detailTab

	// inquiry is the contact-seller compose box. Messages are not sent
	// anywhere; the backend has no inquiry endpoint. Submitting just
	// confirms and clears, like the web client's contact form did.
	inquiry   textarea.Model
	composing bool

	loading    bool
	err        error
	generation int
}

func newDetailModel(app *App) detailModel {
	inquiry := textarea.New()
	inquiry.Placeholder = "Write a message to the seller"
	inquiry.SetHeight(4)
	inquiry.CharLimit = 500
	return detailModel{app: app, inquiry: inquiry}
}

// enter loads the given listing. Always fetches: details can change
// between visits and the list response lacks the seller fields.
func (m detailModel) enter(id string) (detailModel, tea.Cmd) {
	m.id = id
	m.car = nil
	m.tab = tabDescription
	m.composing = false
	m.inquiry.Reset()
	m.inquiry.Blur()

	m.generation++
	m.loading = true
	m.err = nil

	app := m.app
	generation := m.generation
	return m, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), app.RequestTimeout)
		defer cancel()
		car, err := app.API.Car(ctx, id)
		return carLoadedMsg{generation: generation, car: car, err: err}
	}
}

func (m detailModel) typing() bool {
	return m.composing
}

func (m detailModel) update(msg tea.Msg) (detailModel, tea.Cmd) {
	switch msg := msg.(type) {
	case carLoadedMsg:
		if msg.generation != m.generation {
			return m, nil
		}
		m.loading = false
		m.car = msg.car
		m.err = msg.err
		return m, nil

	case tea.KeyMsg:
		if m.composing {
			return m.updateCompose(msg)
		}
		keys := m.app.Keys
		switch {
		case key.Matches(msg, keys.NextTab), key.Matches(msg, keys.Right):
			m.tab = (m.tab + 1) % tabCount
		case key.Matches(msg, keys.Left):
			m.tab = (m.tab + tabCount - 1) % tabCount
		case key.Matches(msg, keys.Refresh):
			return m.enter(m.id)
		default:
			if msg.String() == "c" && m.car != nil {
				m.composing = true
				return m, m.inquiry.Focus()
			}
		}
	}
	return m, nil
}

func (m detailModel) updateCompose(msg tea.KeyMsg) (detailModel, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.composing = false
		m.inquiry.Blur()
		return m, nil
	case "ctrl+d":
		message := strings.TrimSpace(m.inquiry.Value())
		m.composing = false
		m.inquiry.Reset()
		m.inquiry.Blur()
		if message == "" {
			return m, nil
		}
		return m, notify("Message sent to seller")
	}

	var cmd tea.Cmd
	m.inquiry, cmd = m.inquiry.Update(msg)
	return m, cmd
}

func (m detailModel) view(width, height int) string {
	theme := m.app.Theme
	faint := lipgloss.NewStyle().Foreground(theme.FaintText)

	if m.loading {
		return faint.Render("Loading listing...")
	}
	if m.err != nil {
		return lipgloss.NewStyle().Foreground(theme.ErrorText).Render("Error fetching car details: " + m.err.Error())
	}
	if m.car == nil {
		return faint.Render("Car not found.")
	}

	title := lipgloss.NewStyle().Foreground(theme.HeaderForeground).Bold(true).Render(m.car.Title())
	price := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render(fmt.Sprintf("$%.0f", m.car.Price))

	lines := []string{title + "  " + price, "", m.tabBar(), ""}

	switch m.tab {
	case tabDescription:
		lines = append(lines, m.descriptionView(width))
	case tabSpecifications:
		lines = append(lines, m.specificationsView())
	case tabSeller:
		lines = append(lines, m.sellerView())
	}

	if m.composing {
		lines = append(lines, "", faint.Render("ctrl+d send · esc cancel"), m.inquiry.View())
	} else {
		lines = append(lines, "", faint.Render("tab switch · c contact seller"))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m detailModel) tabBar() string {
	theme := m.app.Theme
	var parts []string
	for tab := detailTab(0); tab < tabCount; tab++ {
		style := lipgloss.NewStyle().Foreground(theme.FaintText)
		if tab == m.tab {
			style = lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Underline(true)
		}
		parts = append(parts, style.Render(tab.label()))
	}
	return strings.Join(parts, "   ")
}

func (m detailModel) descriptionView(width int) string {
	theme := m.app.Theme
	description := renderMarkdown(m.car.Description, theme, width-2)
	if description == "" {
		description = lipgloss.NewStyle().Foreground(theme.FaintText).Render("No description provided.")
	}

	gallery := lipgloss.NewStyle().Foreground(theme.FaintText).
		Render("Images: " + strings.Join(m.car.Images(), "  "))
	return description + "\n\n" + gallery
}

func (m detailModel) specificationsView() string {
	theme := m.app.Theme
	label := lipgloss.NewStyle().Foreground(theme.FaintText).Width(14)
	value := lipgloss.NewStyle().Foreground(theme.NormalText)

	row := func(name, content string) string {
		if content == "" {
			content = "—"
		}
		return label.Render(name) + value.Render(content)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		row("Make", m.car.Make),
		row("Model", m.car.Model),
		row("Year", fmt.Sprintf("%d", m.car.Year)),
		row("Mileage", fmt.Sprintf("%.0f km", m.car.Mileage)),
		row("Transmission", string(m.car.Transmission)),
		row("Fuel Type", string(m.car.FuelType)),
		row("Color", m.car.Color),
		row("Condition", m.car.Condition),
	)
}

func (m detailModel) sellerView() string {
	theme := m.app.Theme
	seller := m.car.Seller
	if seller.Name == "" && seller.Email == "" {
		return lipgloss.NewStyle().Foreground(theme.FaintText).Render("Seller details unavailable.")
	}

	name := lipgloss.NewStyle().Foreground(theme.NormalText).Bold(true).Render(seller.Name)
	email := lipgloss.NewStyle().Foreground(theme.FaintText).Render(seller.Email)
	return name + "\n" + email
}
