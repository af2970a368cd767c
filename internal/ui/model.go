package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sabiql/sabiql/internal/action"
	"github.com/sabiql/sabiql/internal/appstate"
	"github.com/sabiql/sabiql/internal/effect"
	"github.com/sabiql/sabiql/internal/executor"
	"github.com/sabiql/sabiql/internal/reducer"
)

// Model is sabiql's Bubble Tea root model. It owns the single AppState
// mutated in place by the reducer; Update's job is to turn incoming
// messages into Actions, fold them through Reduce, and hand the
// resulting Effects to the executor.
type Model struct {
	state *appstate.AppState
	exec  *executor.Deps
}

// New constructs the root model, wired against exec for effect
// execution. With an empty initialDSN it starts cold with the
// connection setup prompt active; with one supplied (from a --dsn flag)
// it starts ConnConnecting and skips straight to loading metadata.
// width and height seed the terminal size ahead of the first
// tea.WindowSizeMsg, which some terminals deliver a frame late; pass 0
// for either to leave the state's zero-value size in place.
func New(exec *executor.Deps, initialDSN string, width, height int) Model {
	s := appstate.NewAppState()
	if width > 0 && height > 0 {
		s.UI.TerminalWidth = width
		s.UI.TerminalHeight = height
	}
	if initialDSN == "" {
		s.UI.InputMode = appstate.ModeConnectionSetup
	} else {
		s.Conn.DSN = initialDSN
		s.Conn.Status = appstate.ConnConnecting
	}
	return Model{state: s, exec: exec}
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.exec.Execute(effect.Effect{Kind: effect.KindLoadConnections}, m.state)}
	if m.state.Conn.DSN != "" {
		cmds = append(cmds, m.exec.Execute(effect.Effect{Kind: effect.KindFetchMetadata, DSN: m.state.Conn.DSN, Generation: m.state.Generation}, m.state))
	}
	return tea.Batch(cmds...)
}

// Update is the event loop entrypoint: every tea.Msg becomes zero or more
// Actions, each folded through Reduce, whose Effects are in turn handed
// to the executor. ActionsMsg lets a single Cmd carry several Actions
// when a batch of async work completes together (e.g. LoadConnections).
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var actions []action.Action

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		actions = append(actions, action.Resize(msg.Width, msg.Height))
	case tea.KeyMsg:
		actions = append(actions, mapKey(m.state, msg))
	case executor.ActionsMsg:
		actions = append(actions, msg.Actions...)
	default:
		return m, nil
	}

	var cmds []tea.Cmd
	for _, a := range actions {
		effects := reducer.Reduce(m.state, a, time.Now())
		for _, eff := range effects {
			if cmd := m.exec.Execute(eff, m.state); cmd != nil {
				cmds = append(cmds, cmd)
			}
		}
	}

	if m.state.ShouldQuit {
		return m, tea.Quit
	}
	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	return render(m.state)
}
