// Copyright 2026 The Drivelot Authors
// SPDX-License-Identifier: Apache-2.0

package ui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/drivelot/drivelot/lib/listing"
	"github.com/drivelot/drivelot/lib/query"
)

// carsLoadedMsg delivers the result of a listings fetch.
type carsLoadedMsg struct {
	generation int
	cars       []listing.Listing
	err        error
}

func (m carsLoadedMsg) fetchError() error { return m.err }

// browseModel is the listing browse page: the fetched record set, the
// query parameters, and a cursor within the visible page. Filtering,
// sorting, and pagination are entirely the query pipeline's job; this
// model just feeds it parameters.
type browseModel struct {
	app *App

	searchInput textinput.Model
	searching   bool

	// records is the full fetched set; nil means never fetched.
	// makes is recomputed only when records changes, not per keystroke.
	records []listing.Listing
	makes   []string

	params query.Params
	cursor int

	loading    bool
	err        error
	generation int
}

func newBrowseModel(app *App) browseModel {
	input := textinput.New()
	input.Placeholder = "Search by make or model"
	input.Prompt = "/ "
	input.CharLimit = 64
	return browseModel{app: app, searchInput: input}
}

// enter is called on navigation to the page. Every visit re-fetches so
// a listing created moments ago shows up; the previous record set stays
// on screen until the fresh one lands.
func (m browseModel) enter() (browseModel, tea.Cmd) {
	return m.fetch()
}

// fetch starts a listings fetch under a fresh generation. Any response
// still in flight from an earlier generation will be discarded.
func (m browseModel) fetch() (browseModel, tea.Cmd) {
	m.generation++
	m.loading = true
	m.err = nil

	app := m.app
	generation := m.generation
	return m, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), app.RequestTimeout)
		defer cancel()
		cars, err := app.API.Cars(ctx)
		return carsLoadedMsg{generation: generation, cars: cars, err: err}
	}
}

func (m browseModel) typing() bool {
	return m.searching
}

func (m browseModel) update(msg tea.Msg) (browseModel, tea.Cmd) {
	switch msg := msg.(type) {
	case carsLoadedMsg:
		if msg.generation != m.generation {
			// Stale response from before a refresh; drop it.
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.records = msg.cars
		m.makes = query.Makes(msg.cars)
		m.cursor = 0
		return m, nil

	case tea.KeyMsg:
		if m.searching {
			return m.updateSearch(msg)
		}
		return m.updateList(msg)
	}
	return m, nil
}

// updateSearch routes keystrokes to the search field. Every edit flows
// into the query params, which resets the page to 1.
func (m browseModel) updateSearch(msg tea.KeyMsg) (browseModel, tea.Cmd) {
	switch msg.String() {
	case "esc", "enter":
		m.searching = false
		m.searchInput.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	m.params = m.params.WithSearch(m.searchInput.Value())
	m.cursor = 0
	return m, cmd
}

func (m browseModel) updateList(msg tea.KeyMsg) (browseModel, tea.Cmd) {
	keys := m.app.Keys
	page := query.Apply(m.records, m.params)

	switch {
	case key.Matches(msg, keys.Search):
		m.searching = true
		return m, m.searchInput.Focus()

	case key.Matches(msg, keys.CycleMake):
		m.params = m.params.WithMake(nextMake(m.makes, m.params.Make))
		m.cursor = 0
		return m, nil

	case key.Matches(msg, keys.CycleSort):
		m.params = m.params.WithSort(nextSort(m.params.Sort))
		m.cursor = 0
		return m, nil

	case key.Matches(msg, keys.NextPage):
		// The pipeline doesn't clamp out-of-range pages; the caller
		// keeps the page in range before asking for it.
		if m.params.Page < page.TotalPages {
			m.params = m.params.WithPage(page.Number + 1)
			m.cursor = 0
		}
		return m, nil

	case key.Matches(msg, keys.PrevPage):
		if page.Number > 1 {
			m.params = m.params.WithPage(page.Number - 1)
			m.cursor = 0
		}
		return m, nil

	case key.Matches(msg, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case key.Matches(msg, keys.Down):
		if m.cursor < len(page.Items)-1 {
			m.cursor++
		}
		return m, nil

	case key.Matches(msg, keys.Select):
		if m.cursor < len(page.Items) {
			return m, openListing(page.Items[m.cursor].ID)
		}
		return m, nil

	case key.Matches(msg, keys.Refresh):
		return m.fetch()
	}

	if msg.String() == "a" {
		return m, navigateTo(RouteForm)
	}
	return m, nil
}

// nextMake cycles all → first make → ... → last make → all.
func nextMake(makes []string, current string) string {
	if current == query.AllMakes {
		if len(makes) == 0 {
			return query.AllMakes
		}
		return makes[0]
	}
	for i, make := range makes {
		if make == current {
			if i+1 < len(makes) {
				return makes[i+1]
			}
			return query.AllMakes
		}
	}
	return query.AllMakes
}

// nextSort cycles through the sort keys in UI order.
func nextSort(current query.Sort) query.Sort {
	for i, sort := range query.Sorts {
		if sort == current {
			return query.Sorts[(i+1)%len(query.Sorts)]
		}
	}
	return query.SortNone
}

func (m browseModel) view(width, height int) string {
	theme := m.app.Theme
	faint := lipgloss.NewStyle().Foreground(theme.FaintText)

	if m.loading && m.records == nil {
		return faint.Render("Loading cars...")
	}
	if m.err != nil {
		return lipgloss.NewStyle().Foreground(theme.ErrorText).Render("Error fetching cars: " + m.err.Error())
	}

	page := query.Apply(m.records, m.params)

	makeLabel := m.params.Make
	if makeLabel == query.AllMakes {
		makeLabel = "All Makes"
	}
	controls := faint.Render(fmt.Sprintf(
		"[m] Make: %s   [s] Sort: %s   [n/p] Page %d/%d   %d cars",
		makeLabel, m.params.Sort.Label(), page.Number, page.TotalPages, page.Total,
	))

	lines := []string{m.searchInput.View(), controls, ""}

	if len(page.Items) == 0 {
		lines = append(lines, faint.Render("No cars found matching your criteria."))
	}
	for i, car := range page.Items {
		lines = append(lines, m.renderRow(car, i == m.cursor, width))
	}

	body := lipgloss.JoinVertical(lipgloss.Left, lines...)
	return body
}

// renderRow renders one listing as a two-line card.
func (m browseModel) renderRow(car listing.Listing, selected bool, width int) string {
	theme := m.app.Theme

	title := car.Title()
	details := fmt.Sprintf("  $%.0f · %.0f km", car.Price, car.Mileage)
	if car.Transmission != listing.TransmissionUnset {
		details += " · " + string(car.Transmission)
	}
	if car.FuelType != listing.FuelUnset {
		details += " · " + string(car.FuelType)
	}

	titleStyle := lipgloss.NewStyle().Foreground(theme.NormalText).Bold(true)
	detailStyle := lipgloss.NewStyle().Foreground(theme.FaintText)
	marker := "  "
	if selected {
		titleStyle = titleStyle.Foreground(theme.SelectedForeground).Background(theme.SelectedBackground)
		detailStyle = detailStyle.Background(theme.SelectedBackground)
		marker = lipgloss.NewStyle().Foreground(theme.Accent).Render("> ")
	}

	return marker + titleStyle.Render(ansi.Truncate(title, width-4, "…")) + "\n" +
		"  " + detailStyle.Render(ansi.Truncate(details, width-4, "…"))
}
