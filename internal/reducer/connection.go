package reducer

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sabiql/sabiql/internal/action"
	"github.com/sabiql/sabiql/internal/appstate"
	"github.com/sabiql/sabiql/internal/dsn"
	"github.com/sabiql/sabiql/internal/effect"
)

// reduceConnection handles connection-setup overlays and switching
// between saved profiles, including the derived-UI-state cache that
// makes flipping back to an already-loaded connection instant.
func reduceConnection(s *appstate.AppState, a action.Action, now time.Time) ([]effect.Effect, bool) {
	switch a.Kind {
	case action.KindOpenConnectionSetup:
		s.UI.InputMode = appstate.ModeConnectionSetup
		s.SQL.Buffer = ""
		s.SQL.CursorPos = 0
		return nil, true

	case action.KindSubmitConnectionSetup:
		raw := strings.TrimSpace(s.SQL.Buffer)
		if raw == "" {
			return nil, true
		}
		return []effect.Effect{{
			Kind:   effect.KindSaveAndConnect,
			ConnID: uuid.NewString(),
			Name:   dsn.DatabaseName(raw),
			DSN:    raw,
		}}, true

	case action.KindSwitchConnection:
		return reduceSwitchConnection(s, a), true

	case action.KindConnectionSaveCompleted:
		effects := reduceSwitchConnection(s, action.Action{ConnID: a.ConnID, DSN: a.DSN})
		s.UI.InputMode = appstate.ModeNormal
		s.SQL.Buffer = ""
		s.SQL.CursorPos = 0
		return append(effects, effect.Effect{Kind: effect.KindLoadConnections}), true

	case action.KindDeleteConnection:
		return []effect.Effect{{Kind: effect.KindDeleteConnection, ConnID: a.ConnID}}, true

	case action.KindConnectionsLoaded:
		s.Connections = a.Connections
		s.MarkDirty()
		return nil, true
	}
	return nil, false
}

func reduceSwitchConnection(s *appstate.AppState, a action.Action) []effect.Effect {
	if s.Conn.ActiveID != "" {
		s.UICacheByConn[s.Conn.ActiveID] = appstate.UICache{
			SelectedSchema: s.Pagination.Schema,
			SelectedTable:  s.Pagination.Table,
			InspectorTab:   s.UI.InspectorTab,
			FocusedPane:    s.UI.FocusedPane,
		}
	}

	s.Generation++
	s.Conn.ActiveID = a.ConnID
	s.Conn.DSN = a.DSN
	s.Conn.Error = nil

	if cached, ok := s.UICacheByConn[a.ConnID]; ok {
		s.Conn.Status = appstate.ConnConnected
		s.UI.InspectorTab = cached.InspectorTab
		s.UI.FocusedPane = cached.FocusedPane
		s.Pagination = appstate.PaginationState{Schema: cached.SelectedSchema, Table: cached.SelectedTable}
		return []effect.Effect{{Kind: effect.KindClearCompletionEngineCache}}
	}

	s.Conn.Status = appstate.ConnConnecting
	s.UI.InspectorTab = appstate.TabColumns
	s.UI.FocusedPane = appstate.FocusExplorer
	s.Pagination = appstate.PaginationState{}
	s.Metadata = nil
	s.TableDetail = nil
	return []effect.Effect{{Kind: effect.KindFetchMetadata, DSN: a.DSN}}
}
