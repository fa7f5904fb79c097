// Copyright 2026 The Drivelot Authors
// SPDX-License-Identifier: Apache-2.0

package ui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// homeEntry is one menu row. Either route or logout is set.
type homeEntry struct {
	label  string
	route  Route
	logout bool
}

// homeModel is the landing page: a tagline and a menu whose entries
// depend on whether a session is active.
type homeModel struct {
	app    *App
	cursor int
}

func newHomeModel(app *App) homeModel {
	return homeModel{app: app}
}

// entries builds the menu for the current session state. Guarded pages
// still pass through the route guard on selection; hiding them here is
// presentation, not enforcement.
func (m homeModel) entries() []homeEntry {
	items := []homeEntry{
		{label: "Browse Cars", route: RouteBrowse},
	}
	if current := m.app.Session.Current(); current != nil {
		items = append(items,
			homeEntry{label: "List a Car", route: RouteForm},
			homeEntry{label: "Notifications", route: RouteNotifications},
			homeEntry{label: "Your Profile", route: RouteProfile},
			homeEntry{label: "Log Out", logout: true},
		)
	} else {
		items = append(items,
			homeEntry{label: "Log In", route: RouteLogin},
			homeEntry{label: "Register", route: RouteRegister},
		)
	}
	return items
}

func (m homeModel) update(msg tea.Msg) (homeModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	entries := m.entries()
	keys := m.app.Keys

	switch {
	case key.Matches(keyMsg, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(keyMsg, keys.Down):
		if m.cursor < len(entries)-1 {
			m.cursor++
		}
	case key.Matches(keyMsg, keys.Select):
		entry := entries[m.cursor]
		if entry.logout {
			if err := m.app.Session.Logout(); err != nil {
				return m, notifyError(err)
			}
			m.cursor = 0
			return m, notify("Logged out")
		}
		return m, navigateTo(entry.route)
	}
	return m, nil
}

func (m homeModel) view(width, height int) string {
	theme := m.app.Theme

	tagline := lipgloss.NewStyle().Foreground(theme.FaintText).
		Render("Find your next car, or sell the one you have.")

	lines := []string{"", tagline, ""}
	for i, entry := range m.entries() {
		style := lipgloss.NewStyle().Foreground(theme.NormalText)
		marker := "  "
		if i == m.cursor {
			style = style.Foreground(theme.SelectedForeground).Background(theme.SelectedBackground).Bold(true)
			marker = lipgloss.NewStyle().Foreground(theme.Accent).Render("> ")
		}
		lines = append(lines, marker+style.Render(entry.label))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
