/*************************************************************************
 * Copyright 2024 Gravwell, Inc. All rights reserved.
 * Contact: <legal@gravwell.io>
 *
 * This software may be modified and distributed under the terms of the
 * BSD 2-clause license. See the LICENSE file for details.
 **************************************************************************/

package stylesheet

// Colors provides constants used to provide uniform, readable colors
// across sabiql's panes and overlays.

import "github.com/charmbracelet/lipgloss"

// A triadic scheme headed by #7ab8f7 (a cooler blue than the teacher's
// purple, to keep sabiql visually distinct at a glance).
const (
	PrimaryColor   = lipgloss.Color("#7ab8f7")
	SecondaryColor = lipgloss.Color("#7af7d8")
	TertiaryColor  = lipgloss.Color("#d8f77a")
	AccentColor1   = lipgloss.Color("#f7b87a")
	AccentColor2   = lipgloss.Color("#d87af7")
	ErrorColor     = lipgloss.Color("#f77a7a")
	NavColor       = SecondaryColor
	ActionColor    = AccentColor1
	FocusedColor   = AccentColor2
	UnfocusedColor = SecondaryColor
)

const ( // result grid colors
	borderColor = PrimaryColor
	row1Color   = SecondaryColor
	row2Color   = TertiaryColor
)

// Inspector tab colors, one per InspectorTab (Columns, Indexes,
// ForeignKeys, RLS) so the active tab is distinguishable even without
// underline support.
const (
	TabColumnsColor     = PrimaryColor
	TabIndexesColor     = SecondaryColor
	TabForeignKeysColor = TertiaryColor
	TabRLSColor         = AccentColor1
)
