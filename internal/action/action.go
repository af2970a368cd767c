// Package action defines the tagged-sum Action type dispatched into the
// reducer. An Action describes something that already happened (a key
// press, a completed async fetch); it carries no behavior of its own.
package action

import "github.com/sabiql/sabiql/internal/appstate"

// Kind discriminates which variant of Action a value holds. Go has no
// sum type, so Action is a flat struct and Kind says which of its
// fields are meaningful.
type Kind int

const (
	KindNone Kind = iota

	// Terminal events
	KindRender
	KindResize
	KindQuit

	// Focus & mode
	KindSetFocusedPane
	KindToggleFocus
	KindEscape
	KindOpenHelp
	KindCloseHelp
	KindOpenTablePicker
	KindCloseTablePicker
	KindOpenCommandPalette
	KindCloseCommandPalette
	KindOpenSqlModal
	KindCloseSqlModal
	KindInspectorNextTab
	KindInspectorPrevTab

	// Filter & command line
	KindFilterInput
	KindFilterBackspace
	KindEnterCommandLine
	KindExitCommandLine
	KindCommandLineInput
	KindCommandLineBackspace
	KindCommandLineSubmit

	// Navigation
	KindSelectNext
	KindSelectPrevious
	KindSelectFirst
	KindSelectLast
	KindConfirmSelection
	KindResultScroll
	KindInspectorScroll
	KindExplorerScroll
	KindResultNextPage
	KindResultPrevPage

	// SQL modal input
	KindSqlModalInput
	KindSqlModalBackspace
	KindSqlModalMoveCursor
	KindPaste

	// Completion
	KindCompletionTrigger
	KindCompletionUpdated
	KindCompletionNext
	KindCompletionPrev
	KindCompletionAccept
	KindCompletionDismiss

	// KindSelectTable is the user picking a table in the explorer or the
	// table picker; it drives both the inspector (table detail) and the
	// result pane (preview query) off the same Schema/Table pair.
	KindSelectTable

	// Async requests
	KindLoadMetadata
	KindReloadMetadata
	KindLoadTableDetail
	KindExecutePreview
	KindExecuteAdhoc
	KindPrefetchTableDetail

	// Async responses
	KindMetadataLoaded
	KindMetadataFailed
	KindTableDetailLoaded
	KindQueryCompleted
	KindQueryFailed
	KindTableDetailCached
	KindTableDetailCacheFailed
	KindTableDetailAlreadyCached

	// Connection
	KindOpenConnectionSetup
	KindSubmitConnectionSetup
	KindSwitchConnection
	KindConnectionSaveCompleted
	KindDeleteConnection
	KindConnectionsLoaded

	// Status / misc async feedback (clipboard success/failure, ...)
	KindStatusMessage

	// Prefetch control
	KindStartPrefetchAll
	KindProcessPrefetchQueue

	// ER diagram
	KindOpenErDiagram

	// External commands
	KindOpenConsole
	KindCopyCellToClipboard
)

// CursorMove names a SQL-modal cursor movement direction.
type CursorMove int

const (
	CursorLeft CursorMove = iota
	CursorRight
	CursorUp
	CursorDown
	CursorHome
	CursorEnd
)

// ScrollDirection names a scrollable-pane movement.
type ScrollDirection int

const (
	ScrollUp ScrollDirection = iota
	ScrollDown
	ScrollLeft
	ScrollRight
	ScrollTop
	ScrollBottom
	ScrollHalfPageUp
	ScrollHalfPageDown
	ScrollFullPageUp
	ScrollFullPageDown
)

// Action is the tagged-sum message type the reducer consumes. Only the
// fields relevant to Kind are populated; the rest are zero values.
type Action struct {
	Kind Kind

	// Terminal
	Width, Height int

	// Focus & input
	Pane       appstate.FocusedPane
	Char       rune
	Text       string
	CursorMove CursorMove
	Scroll     ScrollDirection

	// Table/schema targeting
	Schema     string
	Table      string
	Generation int
	TargetPage int

	// Async payloads
	Metadata    appstate.Metadata
	TableDetail appstate.TableDetail
	QueryResult appstate.QueryResult
	Error       string

	// Completion
	Candidates      []appstate.CompletionCandidate
	TriggerPosition int
	Visible         bool

	// Connection
	ConnID      string
	DSN         string
	Name        string
	Connections []appstate.ConnectionProfile
}

// None is the no-op action; the reducer returns it unchanged.
func None() Action { return Action{Kind: KindNone} }

// Render requests state.RenderDirty be cleared and an Effect.Render be emitted.
func Render() Action { return Action{Kind: KindRender} }

// Resize carries the new terminal dimensions.
func Resize(w, h int) Action { return Action{Kind: KindResize, Width: w, Height: h} }

// Quit requests application shutdown.
func Quit() Action { return Action{Kind: KindQuit} }
