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
	"github.com/drivelot/drivelot/lib/session"
)

// Register field indices, in focus order. The role row is an enum
// toggle rather than a text field.
const (
	registerName = iota
	registerEmail
	registerPhone
	registerPassword
	registerRole
	registerFieldCount
)

// registerModel is the account creation form. A successful registration
// logs the new account in directly; the backend returns a token from
// the register endpoint just like login.
type registerModel struct {
	app *App

	inputs [registerFieldCount - 1]textinput.Model
	focus  int
	role   session.Role

	formError  string
	submitting bool
	generation int
}

func newRegisterModel(app *App) registerModel {
	m := registerModel{app: app, role: session.RoleConsumer}

	placeholders := [registerFieldCount - 1]string{
		"Jane Driver", "you@example.com", "+1 555 0100", "password",
	}
	for field := range m.inputs {
		input := textinput.New()
		input.Placeholder = placeholders[field]
		input.CharLimit = 128
		m.inputs[field] = input
	}
	m.inputs[registerPassword].EchoMode = textinput.EchoPassword
	m.inputs[registerName].Focus()

	return m
}

func (m registerModel) reset() registerModel {
	fresh := newRegisterModel(m.app)
	fresh.generation = m.generation
	return fresh
}

func (m registerModel) typing() bool {
	return !m.submitting
}

func (m registerModel) focusField(field int) registerModel {
	m.focus = field
	for i := range m.inputs {
		m.inputs[i].Blur()
	}
	if field != registerRole {
		m.inputs[field].Focus()
	}
	return m
}

func (m registerModel) update(msg tea.Msg) (registerModel, tea.Cmd) {
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
		return m.reset(), tea.Batch(notify("Welcome to Drivelot"), navigateTo(RouteHome))

	case tea.KeyMsg:
		if m.submitting {
			return m, nil
		}
		switch msg.String() {
		case "esc":
			return m, navigateTo(RouteHome)
		case "ctrl+s":
			return m.submit()
		case "tab", "down":
			return m.focusField((m.focus + 1) % registerFieldCount), nil
		case "shift+tab", "up":
			return m.focusField((m.focus + registerFieldCount - 1) % registerFieldCount), nil
		case "enter":
			if m.focus == registerRole {
				return m.submit()
			}
			return m.focusField((m.focus + 1) % registerFieldCount), nil
		case "left", "right", " ":
			if m.focus == registerRole {
				if m.role == session.RoleConsumer {
					m.role = session.RoleDealer
				} else {
					m.role = session.RoleConsumer
				}
				return m, nil
			}
		}

		if m.focus != registerRole {
			var cmd tea.Cmd
			m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
			return m, cmd
		}
	}
	return m, nil
}

func (m registerModel) submit() (registerModel, tea.Cmd) {
	registration := api.Registration{
		Name:     strings.TrimSpace(m.inputs[registerName].Value()),
		Email:    strings.TrimSpace(m.inputs[registerEmail].Value()),
		Phone:    strings.TrimSpace(m.inputs[registerPhone].Value()),
		Password: m.inputs[registerPassword].Value(),
		Role:     m.role,
	}
	if registration.Name == "" || registration.Email == "" || registration.Password == "" {
		m.formError = "name, email, and password are required"
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
		token, err := app.API.Register(ctx, registration)
		if err == nil {
			err = app.Session.Login(token)
		}
		return loggedInMsg{generation: generation, err: err}
	}
}

func (m registerModel) view(width, height int) string {
	theme := m.app.Theme
	faint := lipgloss.NewStyle().Foreground(theme.FaintText)

	if m.submitting {
		return faint.Render("Creating your account...")
	}

	label := func(field int, name string) string {
		style := faint.Width(10)
		if field == m.focus {
			style = lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Width(10)
		}
		return style.Render(name)
	}

	roleValue := string(m.role)
	if m.focus == registerRole {
		roleValue = "◂ " + roleValue + " ▸"
	}

	lines := []string{
		label(registerName, "Name") + m.inputs[registerName].View(),
		label(registerEmail, "Email") + m.inputs[registerEmail].View(),
		label(registerPhone, "Phone") + m.inputs[registerPhone].View(),
		label(registerPassword, "Password") + m.inputs[registerPassword].View(),
		label(registerRole, "Role") + lipgloss.NewStyle().Foreground(theme.NormalText).Render(roleValue),
		"",
	}
	if m.formError != "" {
		lines = append(lines, lipgloss.NewStyle().Foreground(theme.ErrorText).Render("✗ "+m.formError))
	}
	lines = append(lines, faint.Render("tab move · ctrl+s submit · esc cancel"))

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
