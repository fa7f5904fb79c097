// Copyright 2026 The Drivelot Authors
// SPDX-License-Identifier: Apache-2.0

package ui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/drivelot/drivelot/lib/listing"
)

// profileUpdatedMsg delivers the result of a profile update.
type profileUpdatedMsg struct {
	generation int
	user       *listing.User
	err        error
}

func (m profileUpdatedMsg) fetchError() error { return m.err }

// profileModel is the profile page: the session identity plus a small
// form to change the display name and upload an avatar.
type profileModel struct {
	app *App

	name   textinput.Model
	avatar textinput.Model
	focus  int

	// updated is the profile returned by the last successful save.
	updated *listing.User

	formError  string
	submitting bool
	generation int
}

func newProfileModel(app *App) profileModel {
	name := textinput.New()
	name.Placeholder = "Display name"
	name.CharLimit = 128
	name.Focus()

	avatar := textinput.New()
	avatar.Placeholder = "/path/to/avatar.png (optional)"
	avatar.CharLimit = 256

	return profileModel{app: app, name: name, avatar: avatar}
}

func (m profileModel) reset() profileModel {
	fresh := newProfileModel(m.app)
	fresh.generation = m.generation
	fresh.updated = m.updated
	return fresh
}

func (m profileModel) typing() bool {
	return !m.submitting
}

func (m profileModel) update(msg tea.Msg) (profileModel, tea.Cmd) {
	switch msg := msg.(type) {
	case profileUpdatedMsg:
		if msg.generation != m.generation {
			return m, nil
		}
		m.submitting = false
		if msg.err != nil {
			return m, notifyError(msg.err)
		}
		m.updated = msg.user
		return m, notify("Profile updated")

	case tea.KeyMsg:
		if m.submitting {
			return m, nil
		}
		switch msg.String() {
		case "esc":
			return m, navigateTo(RouteHome)
		case "ctrl+s", "enter":
			return m.submit()
		case "tab", "down", "shift+tab", "up":
			m.focus = 1 - m.focus
			if m.focus == 0 {
				m.avatar.Blur()
				return m, m.name.Focus()
			}
			m.name.Blur()
			return m, m.avatar.Focus()
		}

		var cmd tea.Cmd
		if m.focus == 0 {
			m.name, cmd = m.name.Update(msg)
		} else {
			m.avatar, cmd = m.avatar.Update(msg)
		}
		return m, cmd
	}
	return m, nil
}

func (m profileModel) submit() (profileModel, tea.Cmd) {
	name := strings.TrimSpace(m.name.Value())
	avatarPath := strings.TrimSpace(m.avatar.Value())
	if name == "" {
		m.formError = "name is required"
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
		user, err := app.API.UpdateProfile(ctx, name, avatarPath)
		return profileUpdatedMsg{generation: generation, user: user, err: err}
	}
}

func (m profileModel) view(width, height int) string {
	theme := m.app.Theme
	faint := lipgloss.NewStyle().Foreground(theme.FaintText)

	if m.submitting {
		return faint.Render("Saving your profile...")
	}

	var lines []string
	if current := m.app.Session.Current(); current != nil {
		identity := current.Email
		if current.Role != "" {
			identity += " · " + string(current.Role)
		}
		lines = append(lines, faint.Render("Signed in as ")+
			lipgloss.NewStyle().Foreground(theme.NormalText).Render(identity), "")
	}
	if m.updated != nil && m.updated.Name != "" {
		lines = append(lines, faint.Render("Display name: ")+
			lipgloss.NewStyle().Foreground(theme.NormalText).Render(m.updated.Name), "")
	}

	label := func(field int, name string) string {
		style := faint.Width(10)
		if field == m.focus {
			style = lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Width(10)
		}
		return style.Render(name)
	}
	lines = append(lines,
		label(0, "Name")+m.name.View(),
		label(1, "Avatar")+m.avatar.View(),
		"",
	)
	if m.formError != "" {
		lines = append(lines, lipgloss.NewStyle().Foreground(theme.ErrorText).Render("✗ "+m.formError))
	}
	lines = append(lines, faint.Render("enter save · esc cancel"))

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
