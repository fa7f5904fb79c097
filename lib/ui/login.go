// Copyright 2026 The Drivelot Authors
// SPDX-License-Identifier: Apache-2.0

package ui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/drivelot/drivelot/lib/api"
)

// loggedInMsg reports a completed login or registration attempt. It
// deliberately does not expose the error as a fetch failure: a wrong
// password is a page-level error, not a stale session.
type loggedInMsg struct {
	generation int
	err        error
}

// loginModel is the credential form. On submit it exchanges the
// credentials for a token and hands the token to the session store,
// which decodes the identity and persists it.
type loginModel struct {
	app *App

	email    textinput.Model
	password textinput.Model
	focus    int

	formError  string
	submitting bool
	generation int
}

func newLoginModel(app *App) loginModel {
	email := textinput.New()
	email.Placeholder = "you@example.com"
	email.CharLimit = 128
	email.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.CharLimit = 128
	password.EchoMode = textinput.EchoPassword

	return loginModel{app: app, email: email, password: password}
}

// reset clears the form. Called on every navigation to the page so a
// redirect never lands on half-typed credentials.
func (m loginModel) reset() loginModel {
	fresh := newLoginModel(m.app)
	fresh.generation = m.generation
	return fresh
}

func (m loginModel) typing() bool {
	return !m.submitting
}

func (m loginModel) update(msg tea.Msg) (loginModel, tea.Cmd) {
	switch msg := msg.(type) {
	case loggedInMsg:
		if msg.generation != m.generation {
			return m, nil
		}
		m.submitting = false
		if msg.err != nil {
			m.formError = msg.err.Error()
			return m, nil
		}
		return m.reset(), tea.Batch(notify("Logged in"), navigateTo(RouteHome))

	case tea.KeyMsg:
		if m.submitting {
			return m, nil
		}
		switch msg.String() {
		case "esc":
			return m, navigateTo(RouteHome)
		case "tab", "down", "shift+tab", "up":
			m.focus = 1 - m.focus
			if m.focus == 0 {
				m.password.Blur()
				return m, m.email.Focus()
			}
			m.email.Blur()
			return m, m.password.Focus()
		case "enter":
			if m.focus == 0 {
				m.focus = 1
				m.email.Blur()
				return m, m.password.Focus()
			}
			return m.submit()
		}

		var cmd tea.Cmd
		if m.focus == 0 {
			m.email, cmd = m.email.Update(msg)
		} else {
			m.password, cmd = m.password.Update(msg)
		}
		return m, cmd
	}
	return m, nil
}

func (m loginModel) submit() (loginModel, tea.Cmd) {
	credentials := api.Credentials{
		Email:    strings.TrimSpace(m.email.Value()),
		Password: m.password.Value(),
	}
	if credentials.Email == "" || credentials.Password == "" {
		m.formError = "email and password are required"
		return m, nil
	}

	m.formError = ""
	m.submitting = true
	m.generation++

	app := m.app
	generation := m.generation
	return m, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), app.RequestTimeout)
		defer cancel()
		token, err := app.API.Login(ctx, credentials)
		if err == nil {
			err = app.Session.Login(token)
		}
		return loggedInMsg{generation: generation, err: err}
	}
}

func (m loginModel) view(width, height int) string {
	theme := m.app.Theme
	faint := lipgloss.NewStyle().Foreground(theme.FaintText)

	if m.submitting {
		return faint.Render("Logging in...")
	}

	label := func(field int, name string) string {
		style := faint.Width(10)
		if field == m.focus {
			style = lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Width(10)
		}
		return style.Render(name)
	}

	lines := []string{
		label(0, "Email") + m.email.View(),
		label(1, "Password") + m.password.View(),
		"",
	}
	if m.formError != "" {
		lines = append(lines, lipgloss.NewStyle().Foreground(theme.ErrorText).Render("✗ "+m.formError))
	}
	lines = append(lines, faint.Render("enter submit · esc cancel"))

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
