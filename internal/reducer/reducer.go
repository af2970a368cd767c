// Package reducer implements the pure state transition at the heart of
// the application: Reduce(state, action, now) mutates state in place
// and returns the effects that must be performed outside of it.
//
// Purity rules: Reduce must never read the clock other than through
// now, never perform I/O, and never spawn work. Every external
// response enters as an Action so the same function handles both user
// input and the results of previously-requested effects.
package reducer

import (
	"time"

	"github.com/sabiql/sabiql/internal/action"
	"github.com/sabiql/sabiql/internal/appstate"
	"github.com/sabiql/sabiql/internal/effect"
)

const previewPageSize = 100
const completionDebounce = 100 * time.Millisecond
const prefetchBackoff = 30 * time.Second

// subReducer handles one family of actions. It returns (effects, true)
// when it handled the action, or (nil, false) to let the cascade try
// the next sub-reducer.
type subReducer func(s *appstate.AppState, a action.Action, now time.Time) ([]effect.Effect, bool)

var cascade = []subReducer{
	reduceConnection,
	reduceModal,
	reduceNavigation,
	reduceMetadata,
	reduceQuery,
	reduceSQLModal,
}

// Reduce applies a single action to state and returns the effects it
// produced. It is the only exported entry point; everything else in
// this package is a private sub-reducer tried in a fixed order.
func Reduce(s *appstate.AppState, a action.Action, now time.Time) []effect.Effect {
	for _, r := range cascade {
		if effects, handled := r(s, a, now); handled {
			return effects
		}
	}
	return reduceCatchAll(s, a, now)
}

func reduceCatchAll(s *appstate.AppState, a action.Action, now time.Time) []effect.Effect {
	switch a.Kind {
	case action.KindNone:
		return nil
	case action.KindRender:
		s.RenderDirty = false
		return []effect.Effect{effect.Render()}
	case action.KindQuit:
		s.ShouldQuit = true
		return nil
	case action.KindResize:
		s.UI.TerminalWidth = a.Width
		s.UI.TerminalHeight = a.Height
		return nil
	case action.KindStatusMessage:
		s.StatusMessage = a.Text
		s.MarkDirty()
		return nil
	default:
		return nil
	}
}
