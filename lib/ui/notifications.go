// Copyright 2026 The Drivelot Authors
// SPDX-License-Identifier: Apache-2.0

package ui

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/drivelot/drivelot/lib/listing"
)

// notificationsLoadedMsg delivers the result of a notifications fetch.
type notificationsLoadedMsg struct {
	generation    int
	notifications []listing.Notification
	err           error
}

func (m notificationsLoadedMsg) fetchError() error { return m.err }

// notificationsModel is the notifications page: a read-only list,
// re-fetched on every visit.
type notificationsModel struct {
	app *App

	notifications []listing.Notification
	cursor        int

	loading    bool
	err        error
	generation int
}

func newNotificationsModel(app *App) notificationsModel {
	return notificationsModel{app: app}
}

func (m notificationsModel) enter() (notificationsModel, tea.Cmd) {
	m.generation++
	m.loading = true
	m.err = nil
	m.cursor = 0

	app := m.app
	generation := m.generation
	return m, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), app.RequestTimeout)
		defer cancel()
		notifications, err := app.API.Notifications(ctx)
		return notificationsLoadedMsg{generation: generation, notifications: notifications, err: err}
	}
}

func (m notificationsModel) update(msg tea.Msg) (notificationsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case notificationsLoadedMsg:
		if msg.generation != m.generation {
			return m, nil
		}
		m.loading = false
		m.notifications = msg.notifications
		m.err = msg.err
		return m, nil

	case tea.KeyMsg:
		keys := m.app.Keys
		switch {
		case key.Matches(msg, keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, keys.Down):
			if m.cursor < len(m.notifications)-1 {
				m.cursor++
			}
		case key.Matches(msg, keys.Refresh):
			return m.enter()
		}
	}
	return m, nil
}

func (m notificationsModel) view(width, height int) string {
	theme := m.app.Theme
	faint := lipgloss.NewStyle().Foreground(theme.FaintText)

	if m.loading {
		return faint.Render("Loading notifications...")
	}
	if m.err != nil {
		return lipgloss.NewStyle().Foreground(theme.ErrorText).Render("Error fetching notifications: " + m.err.Error())
	}
	if len(m.notifications) == 0 {
		return faint.Render("No notifications.")
	}

	var lines []string
	for i, notification := range m.notifications {
		titleStyle := lipgloss.NewStyle().Foreground(theme.NormalText).Bold(true)
		marker := "  "
		if i == m.cursor {
			marker = lipgloss.NewStyle().Foreground(theme.Accent).Render("> ")
		}
		lines = append(lines,
			marker+titleStyle.Render(notification.Title),
			"  "+faint.Render(notification.Message),
			"",
		)
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
