// Package effect defines the tagged-sum Effect type returned by the
// reducer. An Effect describes I/O or scheduling work to be performed
// outside the pure reduce step; internal/executor is the only consumer
// that turns an Effect into real work.
package effect

import (
	"time"

	"github.com/sabiql/sabiql/internal/action"
	"github.com/sabiql/sabiql/internal/appstate"
)

// Kind discriminates which variant of Effect a value holds.
type Kind int

const (
	KindRender Kind = iota
	KindFetchMetadata
	KindFetchTableDetail
	KindPrefetchTableDetail
	KindExecutePreview
	KindExecuteAdhoc
	KindCacheInvalidate
	KindClearCompletionEngineCache
	KindCacheTableInCompletionEngine
	KindScheduleCompletionDebounce
	KindTriggerCompletion
	KindWriteErFailureLog
	KindGenerateErDiagramFromCache
	KindOpenConsole
	KindCopyToClipboard
	KindLoadConnections
	KindSaveAndConnect
	KindDeleteConnection
	KindSequence
	KindDispatchActions
)

// Effect is the tagged-sum value the reducer emits. Only the fields
// relevant to Kind are populated.
type Effect struct {
	Kind Kind

	DSN        string
	Schema     string
	Table      string
	Generation int
	Limit      int
	Offset     int
	TargetPage int
	Query      string

	QualifiedName string
	TableDetail   appstate.TableDetail

	TriggerAt time.Time

	FailedTables []string
	ErDiagram    map[string]appstate.TableDetail

	ProjectName string
	Content     string
	OnSuccess   string
	OnFailure   string

	ConnID   string
	Name     string

	Effects []Effect
	Actions []action.Action
}

// Render requests a fresh frame be drawn.
func Render() Effect { return Effect{Kind: KindRender} }

// Sequence imposes ordering on a slice of effects: the executor runs
// them one after another rather than concurrently.
func Sequence(effects ...Effect) Effect {
	return Effect{Kind: KindSequence, Effects: effects}
}

// DispatchActions lets a reducer queue further actions for the next
// tick without performing I/O.
func DispatchActions(actions ...action.Action) Effect {
	return Effect{Kind: KindDispatchActions, Actions: actions}
}
