// Copyright 2026 The Drivelot Authors
// SPDX-License-Identifier: Apache-2.0

package ui

import "github.com/charmbracelet/lipgloss"

// Theme defines the color palette for the drivelot TUI. All colors use
// lipgloss ANSI 256-color codes for broad terminal compatibility.
type Theme struct {
	// Text colors.
	NormalText lipgloss.Color
	FaintText  lipgloss.Color

	// Accent is the primary brand color: page titles, prices, the
	// active tab.
	Accent lipgloss.Color

	// Secondary is the contrast accent: warnings and the sold badge.
	Secondary lipgloss.Color

	// Selected row.
	SelectedBackground lipgloss.Color
	SelectedForeground lipgloss.Color

	// UI chrome.
	HeaderForeground lipgloss.Color
	BorderColor      lipgloss.Color
	HelpText         lipgloss.Color

	// ErrorText colors failure notices in the status bar.
	ErrorText lipgloss.Color

	// SuccessText colors confirmations in the status bar.
	SuccessText lipgloss.Color
}

// DefaultTheme is the built-in dark-terminal color scheme. The accents
// follow the web client's palette: a blue primary and a crimson
// secondary.
var DefaultTheme = Theme{
	NormalText: lipgloss.Color("252"),
	FaintText:  lipgloss.Color("245"),

	Accent:    lipgloss.Color("33"),  // blue, the web #1976d2
	Secondary: lipgloss.Color("161"), // crimson, the web #dc004e

	SelectedBackground: lipgloss.Color("236"),
	SelectedForeground: lipgloss.Color("255"),

	HeaderForeground: lipgloss.Color("255"),
	BorderColor:      lipgloss.Color("240"),
	HelpText:         lipgloss.Color("241"),

	ErrorText:   lipgloss.Color("196"),
	SuccessText: lipgloss.Color("114"),
}
