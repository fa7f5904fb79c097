// Copyright 2026 The Drivelot Authors
// SPDX-License-Identifier: Apache-2.0

package ui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the key bindings shared across pages. Page-specific
// text entry (search, forms) captures keystrokes directly; these
// bindings apply when no input field has focus.
type KeyMap struct {
	Up    key.Binding
	Down  key.Binding
	Left  key.Binding
	Right key.Binding

	// PrevPage and NextPage move between result pages on browse.
	PrevPage key.Binding
	NextPage key.Binding

	// Search enters the browse search field.
	Search key.Binding

	// CycleMake and CycleSort step through the browse dropdowns.
	CycleMake key.Binding
	CycleSort key.Binding

	// NextTab cycles the detail page tabs.
	NextTab key.Binding

	// Select opens the item under the cursor.
	Select key.Binding

	// Refresh re-fetches the current page's data.
	Refresh key.Binding

	// Back returns to the previous page (detail to browse, everything
	// else to home).
	Back key.Binding

	Quit key.Binding
}

// DefaultKeyMap is the built-in key binding set. Vim-style navigation
// alongside standard arrow keys.
var DefaultKeyMap = KeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	Left: key.NewBinding(
		key.WithKeys("h", "left"),
		key.WithHelp("h/←", "left"),
	),
	Right: key.NewBinding(
		key.WithKeys("l", "right"),
		key.WithHelp("l/→", "right"),
	),
	PrevPage: key.NewBinding(
		key.WithKeys("p", "pgup"),
		key.WithHelp("p", "prev page"),
	),
	NextPage: key.NewBinding(
		key.WithKeys("n", "pgdown"),
		key.WithHelp("n", "next page"),
	),
	Search: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "search"),
	),
	CycleMake: key.NewBinding(
		key.WithKeys("m"),
		key.WithHelp("m", "make filter"),
	),
	CycleSort: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "sort"),
	),
	NextTab: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "next tab"),
	),
	Select: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "open"),
	),
	Refresh: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "refresh"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "back"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}
