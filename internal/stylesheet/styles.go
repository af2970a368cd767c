/*************************************************************************
 * Copyright 2024 Gravwell, Inc. All rights reserved.
 * Contact: <legal@gravwell.io>
 *
 * This software may be modified and distributed under the terms of the
 * BSD 2-clause license. See the LICENSE file for details.
 **************************************************************************/

// Package stylesheet manages sabiql's visual effects via lipgloss:
// colors, alignment, borders, and pre-built composable styles shared
// across the explorer, inspector, result, and SQL-modal panes.
package stylesheet

import "github.com/charmbracelet/lipgloss"

var (
	NavStyle    = lipgloss.NewStyle().Foreground(NavColor)
	ActionStyle = lipgloss.NewStyle().Foreground(ActionColor)
	ErrStyle    = lipgloss.NewStyle().Foreground(ErrorColor)

	// Composable holds styles for panes that toggle between focused and
	// unfocused, or that never change focus at all.
	Composable = struct {
		Unfocused lipgloss.Style
		Focused   lipgloss.Style
		Primary   lipgloss.Style
		Secondary lipgloss.Style
	}{
		Unfocused: lipgloss.NewStyle().
			Align(lipgloss.Left, lipgloss.Top).
			BorderStyle(lipgloss.HiddenBorder()),
		Focused: lipgloss.NewStyle().
			Align(lipgloss.Left, lipgloss.Top).
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(FocusedColor),
	}

	Header1Style   = lipgloss.NewStyle().Foreground(PrimaryColor).Bold(true)
	Header2Style   = lipgloss.NewStyle().Foreground(SecondaryColor)
	GreyedOutStyle = lipgloss.NewStyle().Faint(true)
	StatusStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color(PrimaryColor))
	IndexStyle     = lipgloss.NewStyle().Foreground(AccentColor1)

	// CompletionSelectedStyle highlights the currently-highlighted row in
	// the completion popup.
	CompletionSelectedStyle = lipgloss.NewStyle().Reverse(true)
)

func init() {
	Composable.Primary = Composable.Focused.BorderStyle(lipgloss.RoundedBorder())
	Composable.Secondary = Composable.Focused.BorderStyle(lipgloss.RoundedBorder()).BorderForeground(PrimaryColor)
}
