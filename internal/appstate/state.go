package appstate

import "time"

// FocusedPane names which top-level pane has keyboard focus.
type FocusedPane int

const (
	FocusExplorer FocusedPane = iota
	FocusInspector
	FocusResult
)

// InputMode names the modal or overlay currently capturing input.
type InputMode int

const (
	ModeNormal InputMode = iota
	ModeTablePicker
	ModeCommandPalette
	ModeHelp
	ModeSqlModal
	ModeCommandLine
	ModeConnectionSetup
	ModeConnectionError
	ModeErDiagram
)

// InspectorTab names the active tab of the inspector pane.
type InspectorTab int

const (
	TabColumns InspectorTab = iota
	TabIndexes
	TabForeignKeys
	TabRLS
)

// Next returns the tab following t, wrapping around.
func (t InspectorTab) Next() InspectorTab {
	return (t + 1) % 4
}

// Prev returns the tab preceding t, wrapping around.
func (t InspectorTab) Prev() InspectorTab {
	return (t + 3) % 4
}

// PaginationState tracks progress through a paginated table preview.
type PaginationState struct {
	CurrentPage      int
	TotalRowEstimate *int64
	ReachedEnd       bool
	Schema           string
	Table            string
}

// SelectionKind discriminates ResultSelection's tri-state.
type SelectionKind int

const (
	SelectionScroll SelectionKind = iota
	SelectionRowActive
	SelectionCellActive
)

// ResultSelection models {Scroll, RowActive(row), CellActive(row, col)}.
// A CellActive selection always carries a valid Row; Col is meaningless
// for the other two kinds.
type ResultSelection struct {
	Kind SelectionKind
	Row  int
	Col  int
}

// ErStatus is the state machine driving ER diagram preparation.
type ErStatus int

const (
	ErIdle ErStatus = iota
	ErWaiting
	ErRendering
)

// ErPreparationState tracks the prefetch fan-out needed before an ER
// diagram can be rendered from the completion engine's table-detail cache.
type ErPreparationState struct {
	Pending         map[string]bool
	Fetching        map[string]bool
	Failed          map[string]string
	Status          ErStatus
	SelectedTargets []string
}

// NewErPreparationState returns a ready-to-use zero-value state.
func NewErPreparationState() ErPreparationState {
	return ErPreparationState{
		Pending:  map[string]bool{},
		Fetching: map[string]bool{},
		Failed:   map[string]string{},
		Status:   ErIdle,
	}
}

// Incomplete reports whether any target is still pending or fetching.
func (e ErPreparationState) Incomplete() bool {
	return len(e.Pending) > 0 || len(e.Fetching) > 0
}

// ConnectionStatus names the lifecycle of the active database connection.
type ConnectionStatus int

const (
	ConnDisconnected ConnectionStatus = iota
	ConnConnecting
	ConnConnected
	ConnFailed
)

// ConnectionProfile is one saved connection entry. Any password lives only
// inside the DSN field, which the connection store writes verbatim;
// dsn.Mask redacts it for display.
type ConnectionProfile struct {
	ID   string
	Name string
	DSN  string
}

// ConnectionState tracks the active connection and its lifecycle.
type ConnectionState struct {
	ActiveID string
	DSN      string
	Status   ConnectionStatus
	Error    *string
}

// UICache holds the per-connection UI state that SwitchConnection saves
// and restores (selected table, inspector tab, focused pane) so
// flipping between two already-loaded connections doesn't reset the view.
type UICache struct {
	SelectedSchema string
	SelectedTable  string
	InspectorTab   InspectorTab
	FocusedPane    FocusedPane
}

// UIState is the transient view-state that isn't part of the domain data.
type UIState struct {
	FocusedPane    FocusedPane
	InputMode      InputMode
	InspectorTab   InspectorTab
	FilterInput    string
	PickerSelected int
	CommandLineInput string
	TerminalHeight int
	TerminalWidth  int
}

// SqlModalState holds the SQL editor buffer and completion popup state.
type SqlModalState struct {
	Buffer             string
	CursorPos          int
	CompletionVisible  bool
	CompletionCandidates []CompletionCandidate
	CompletionSelected int
	CompletionTriggerPos int
	DebounceScheduled  bool
	DebounceGeneration int
}

// AppState is the single aggregate record the reducer transitions.
// Ownership: the reducer owns it exclusively for the duration of one
// Reduce call.
type AppState struct {
	ShouldQuit  bool
	RenderDirty bool

	Generation int

	UI    UIState
	Conn  ConnectionState
	SQL   SqlModalState
	Pagination PaginationState
	Selection  ResultSelection
	ErPrep     ErPreparationState

	Metadata    *Metadata
	TableDetail *TableDetail
	QueryResult *QueryResult

	TableDetailCache map[string]TableDetail
	UICacheByConn    map[string]UICache

	Connections []ConnectionProfile

	PrefetchQueue    []string
	PrefetchInFlight map[string]bool
	PrefetchBackoff  map[string]time.Time

	StatusMessage string
}

// NewAppState returns an AppState ready for the first render.
func NewAppState() *AppState {
	return &AppState{
		RenderDirty:      true,
		ErPrep:           NewErPreparationState(),
		TableDetailCache: map[string]TableDetail{},
		UICacheByConn:    map[string]UICache{},
		PrefetchInFlight: map[string]bool{},
		PrefetchBackoff:  map[string]time.Time{},
	}
}

// MarkDirty flags the state as needing a render on the next loop tick.
func (s *AppState) MarkDirty() {
	s.RenderDirty = true
}

// ToggleFocus cycles the focused pane between explorer, inspector, and
// result.
func (s *AppState) ToggleFocus() {
	s.UI.FocusedPane = (s.UI.FocusedPane + 1) % 3
}
