// Package ui assembles sabiql's Bubble Tea root model: a mode-dependent
// key mapper that turns key presses into Actions, a renderer that turns
// AppState into a frame, and the glue between the reducer and the
// executor that makes the whole event loop run.
package ui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sabiql/sabiql/internal/action"
	"github.com/sabiql/sabiql/internal/appstate"
	"github.com/sabiql/sabiql/internal/killer"
)

// keymap holds the help-visible bindings for Normal mode. The map from
// key press to Action is implemented in mapKey below; the footer and
// help overlay do not read keymap and carry their own label strings.
var keymap = struct {
	Quit, Help, CommandLine, Reload, ToggleFocus, Escape           key.Binding
	Up, Down, Left, Right, Top, Bottom                             key.Binding
	FocusExplorer, FocusInspector, FocusResult                     key.Binding
	PrevTab, NextTab                                                key.Binding
	OpenConsole, OpenSqlModal                                       key.Binding
	TablePicker, CommandPalette                                     key.Binding
}{
	Quit:           key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
	Help:           key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	CommandLine:    key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "command line")),
	Reload:         key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload metadata")),
	ToggleFocus:    key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "toggle focus")),
	Escape:         key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel/close")),
	Up:             key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:           key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Left:           key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "left")),
	Right:          key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "right")),
	Top:            key.NewBinding(key.WithKeys("g", "home"), key.WithHelp("g/home", "top")),
	Bottom:         key.NewBinding(key.WithKeys("G", "end"), key.WithHelp("G/end", "bottom")),
	FocusExplorer:  key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "focus explorer")),
	FocusInspector: key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "focus inspector")),
	FocusResult:    key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "focus result")),
	PrevTab:        key.NewBinding(key.WithKeys("[", "shift+tab"), key.WithHelp("[", "prev tab")),
	NextTab:        key.NewBinding(key.WithKeys("]", "tab"), key.WithHelp("]", "next tab")),
	OpenConsole:    key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "open console")),
	OpenSqlModal:   key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "SQL modal")),
	TablePicker:    key.NewBinding(key.WithKeys("ctrl+p"), key.WithHelp("ctrl+p", "table picker")),
	CommandPalette: key.NewBinding(key.WithKeys("ctrl+k"), key.WithHelp("ctrl+k", "command palette")),
}

// mapKey turns a key press into an Action, branching first on kill keys
// (global/child, always take precedence per gwcli's mother.Update shape),
// then on the current input mode.
func mapKey(s *appstate.AppState, msg tea.KeyMsg) action.Action {
	if k := killer.CheckKillKeys(msg); k != killer.None {
		if a, ok := killer.ToAction(k); ok {
			return a
		}
	}

	mode := s.UI.InputMode
	switch mode {
	case appstate.ModeSqlModal:
		return sqlModalKeyWithCompletion(msg, s.SQL.CompletionVisible)
	case appstate.ModeTablePicker, appstate.ModeCommandPalette:
		return mapPickerKey(msg)
	case appstate.ModeCommandLine:
		return mapCommandLineKey(msg)
	case appstate.ModeConnectionSetup:
		return mapConnectionSetupKey(msg)
	case appstate.ModeHelp:
		return mapHelpKey(msg)
	case appstate.ModeErDiagram, appstate.ModeConnectionError:
		return mapOverlayKey(msg)
	default:
		return mapNormalKey(msg)
	}
}

func mapNormalKey(msg tea.KeyMsg) action.Action {
	switch msg.String() {
	case "q":
		return action.Quit()
	case "?":
		return action.Action{Kind: action.KindOpenHelp}
	case ":":
		return action.Action{Kind: action.KindEnterCommandLine}
	case "r":
		return action.Action{Kind: action.KindReloadMetadata}
	case "f":
		return action.Action{Kind: action.KindToggleFocus}
	case "esc":
		return action.Action{Kind: action.KindEscape}
	case "1":
		return action.Action{Kind: action.KindSetFocusedPane, Pane: appstate.FocusExplorer}
	case "2":
		return action.Action{Kind: action.KindSetFocusedPane, Pane: appstate.FocusInspector}
	case "3":
		return action.Action{Kind: action.KindSetFocusedPane, Pane: appstate.FocusResult}
	case "[", "shift+tab":
		return action.Action{Kind: action.KindInspectorPrevTab}
	case "]", "tab":
		return action.Action{Kind: action.KindInspectorNextTab}
	case "c":
		return action.Action{Kind: action.KindOpenConsole}
	case "s":
		return action.Action{Kind: action.KindOpenSqlModal}
	case "ctrl+p":
		return action.Action{Kind: action.KindOpenTablePicker}
	case "ctrl+k":
		return action.Action{Kind: action.KindOpenCommandPalette}
	case "up", "k":
		return action.Action{Kind: action.KindResultScroll, Scroll: action.ScrollUp}
	case "down", "j":
		return action.Action{Kind: action.KindResultScroll, Scroll: action.ScrollDown}
	case "g", "home":
		return action.Action{Kind: action.KindResultScroll, Scroll: action.ScrollTop}
	case "G", "end":
		return action.Action{Kind: action.KindResultScroll, Scroll: action.ScrollBottom}
	case "left", "h":
		return action.Action{Kind: action.KindResultScroll, Scroll: action.ScrollLeft}
	case "right", "l":
		return action.Action{Kind: action.KindResultScroll, Scroll: action.ScrollRight}
	case "n":
		return action.Action{Kind: action.KindResultNextPage}
	case "p":
		return action.Action{Kind: action.KindResultPrevPage}
	}
	return action.None()
}

func mapSQLModalKey(msg tea.KeyMsg) action.Action {
	switch msg.String() {
	case "ctrl+enter":
		return action.Action{Kind: action.KindExecuteAdhoc}
	case "esc":
		return action.Action{Kind: action.KindEscape}
	case "tab":
		return action.Action{Kind: action.KindSqlModalInput, Char: '\t'}
	case "enter":
		return action.Action{Kind: action.KindSqlModalInput, Char: '\n'}
	case "ctrl+space":
		return action.Action{Kind: action.KindCompletionTrigger}
	case "up":
		return action.Action{Kind: action.KindSqlModalMoveCursor, CursorMove: action.CursorUp}
	case "down":
		return action.Action{Kind: action.KindSqlModalMoveCursor, CursorMove: action.CursorDown}
	case "left":
		return action.Action{Kind: action.KindSqlModalMoveCursor, CursorMove: action.CursorLeft}
	case "right":
		return action.Action{Kind: action.KindSqlModalMoveCursor, CursorMove: action.CursorRight}
	case "home":
		return action.Action{Kind: action.KindSqlModalMoveCursor, CursorMove: action.CursorHome}
	case "end":
		return action.Action{Kind: action.KindSqlModalMoveCursor, CursorMove: action.CursorEnd}
	case "backspace":
		return action.Action{Kind: action.KindSqlModalBackspace}
	}
	if len(msg.Runes) == 1 {
		return action.Action{Kind: action.KindSqlModalInput, Char: msg.Runes[0]}
	}
	return action.None()
}

// sqlModalKeyWithCompletion resolves the small set of keys whose meaning
// changes while the completion popup is visible (accept/dismiss/navigate
// instead of literal cursor movement or newline insertion).
func sqlModalKeyWithCompletion(msg tea.KeyMsg, completionVisible bool) action.Action {
	if completionVisible {
		switch msg.String() {
		case "tab", "enter":
			return action.Action{Kind: action.KindCompletionAccept}
		case "esc":
			return action.Action{Kind: action.KindCompletionDismiss}
		case "up":
			return action.Action{Kind: action.KindCompletionPrev}
		case "down":
			return action.Action{Kind: action.KindCompletionNext}
		}
	}
	return mapSQLModalKey(msg)
}

func mapPickerKey(msg tea.KeyMsg) action.Action {
	switch msg.String() {
	case "esc":
		return action.Action{Kind: action.KindEscape}
	case "up":
		return action.Action{Kind: action.KindSelectPrevious}
	case "down":
		return action.Action{Kind: action.KindSelectNext}
	case "home":
		return action.Action{Kind: action.KindSelectFirst}
	case "end":
		return action.Action{Kind: action.KindSelectLast}
	case "enter":
		return action.Action{Kind: action.KindConfirmSelection}
	case "backspace":
		return action.Action{Kind: action.KindFilterBackspace}
	}
	if len(msg.Runes) == 1 {
		return action.Action{Kind: action.KindFilterInput, Char: msg.Runes[0]}
	}
	return action.None()
}

func mapCommandLineKey(msg tea.KeyMsg) action.Action {
	switch msg.String() {
	case "esc":
		return action.Action{Kind: action.KindExitCommandLine}
	case "enter":
		return action.Action{Kind: action.KindCommandLineSubmit}
	case "backspace":
		return action.Action{Kind: action.KindCommandLineBackspace}
	}
	if len(msg.Runes) == 1 {
		return action.Action{Kind: action.KindCommandLineInput, Char: msg.Runes[0]}
	}
	return action.None()
}

// mapConnectionSetupKey maps the connection-setup form, which reuses the
// SQL buffer as its single DSN text field (see reduceSQLModal's paste
// sanitization and the picker/palette's "Switch connection" entry point).
func mapConnectionSetupKey(msg tea.KeyMsg) action.Action {
	switch msg.String() {
	case "esc":
		return action.Action{Kind: action.KindEscape}
	case "enter":
		return action.Action{Kind: action.KindSubmitConnectionSetup}
	case "backspace":
		return action.Action{Kind: action.KindSqlModalBackspace}
	}
	if len(msg.Runes) == 1 {
		return action.Action{Kind: action.KindSqlModalInput, Char: msg.Runes[0]}
	}
	return action.None()
}

func mapHelpKey(msg tea.KeyMsg) action.Action {
	switch msg.String() {
	case "esc", "?", "q":
		return action.Action{Kind: action.KindCloseHelp}
	}
	return action.None()
}

func mapOverlayKey(msg tea.KeyMsg) action.Action {
	switch msg.String() {
	case "esc":
		return action.Action{Kind: action.KindEscape}
	}
	return action.None()
}
