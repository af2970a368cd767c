/*************************************************************************
 * Copyright 2024 Gravwell, Inc. All rights reserved.
 * Contact: <legal@gravwell.io>
 *
 * This software may be modified and distributed under the terms of the
 * BSD 2-clause license. See the LICENSE file for details.
 **************************************************************************/

// Package killer provides a consistent interface for checking a uniform
// set of kill keys, independent of whichever overlay currently has
// focus. The root model checks these before routing a key message into
// the reducer.
package killer

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sabiql/sabiql/internal/action"
)

type Kill uint

const (
	None Kill = iota
	Global
	Child
)

// globalKillKeys unconditionally quit the program.
var globalKillKeys = [...]tea.KeyType{tea.KeyCtrlC, tea.KeyCtrlD}

// childOnlyKillKeys close whichever overlay is focused, or do nothing
// if none is.
var childOnlyKillKeys = [...]tea.KeyType{tea.KeyEscape}

// GlobalKillKeys returns the bubbletea key types that act as global kills.
func GlobalKillKeys() [2]tea.KeyType { return globalKillKeys }

// ChildKillKeys returns the bubbletea key types that act as child-only kills.
func ChildKillKeys() [1]tea.KeyType { return childOnlyKillKeys }

// CheckKillKeys reports whether msg is a global kill key, a child-only
// kill key, or neither.
func CheckKillKeys(msg tea.Msg) Kill {
	keyMsg, isKeyMsg := msg.(tea.KeyMsg)
	if !isKeyMsg {
		return None
	}
	for _, k := range globalKillKeys {
		if keyMsg.Type == k {
			return Global
		}
	}
	for _, k := range childOnlyKillKeys {
		if keyMsg.Type == k {
			return Child
		}
	}
	return None
}

// ToAction translates a Kill into the Action the reducer should
// receive: Global quits the program, Child closes whatever overlay is
// focused, None carries no action.
func ToAction(k Kill) (action.Action, bool) {
	switch k {
	case Global:
		return action.Quit(), true
	case Child:
		return action.Action{Kind: action.KindEscape}, true
	default:
		return action.Action{}, false
	}
}
