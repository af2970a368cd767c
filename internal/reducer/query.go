package reducer

import (
	"time"

	"github.com/sabiql/sabiql/internal/action"
	"github.com/sabiql/sabiql/internal/appstate"
	"github.com/sabiql/sabiql/internal/effect"
)

// reduceQuery handles query execution requests and their results,
// including the pagination bookkeeping ExecutePreview/QueryCompleted
// carry.
func reduceQuery(s *appstate.AppState, a action.Action, now time.Time) ([]effect.Effect, bool) {
	switch a.Kind {
	case action.KindSelectTable:
		return selectTable(s, a.Schema, a.Table), true

	case action.KindExecutePreview:
		s.Pagination = appstate.PaginationState{Schema: a.Schema, Table: a.Table}
		return []effect.Effect{{
			Kind:       effect.KindExecutePreview,
			DSN:        s.Conn.DSN,
			Schema:     a.Schema,
			Table:      a.Table,
			Generation: s.Generation,
			Limit:      previewPageSize,
			Offset:     0,
			TargetPage: 0,
		}}, true

	case action.KindExecuteAdhoc:
		return []effect.Effect{{Kind: effect.KindExecuteAdhoc, DSN: s.Conn.DSN, Query: a.Text, Generation: s.Generation}}, true

	case action.KindQueryCompleted:
		if a.Generation < s.Generation {
			return nil, true
		}
		result := a.QueryResult
		s.QueryResult = &result
		if result.Source == appstate.SourcePreview {
			s.Pagination.CurrentPage = a.TargetPage
			if len(result.Rows) < previewPageSize {
				s.Pagination.ReachedEnd = true
			}
		}
		s.MarkDirty()
		return nil, true

	case action.KindQueryFailed:
		if a.Generation < s.Generation {
			return nil, true
		}
		errText := a.Error
		s.QueryResult = &appstate.QueryResult{Error: &errText}
		s.MarkDirty()
		return nil, true
	}
	return nil, false
}

// selectTable switches the explorer/inspector/result panes to a new table:
// bumps Generation so any in-flight response for the previous table is
// dropped on arrival, then fetches its detail and first preview page.
func selectTable(s *appstate.AppState, schema, table string) []effect.Effect {
	s.Generation++
	s.Pagination = appstate.PaginationState{Schema: schema, Table: table}
	return []effect.Effect{
		{Kind: effect.KindFetchTableDetail, DSN: s.Conn.DSN, Schema: schema, Table: table, Generation: s.Generation},
		{Kind: effect.KindExecutePreview, DSN: s.Conn.DSN, Schema: schema, Table: table, Generation: s.Generation, Limit: previewPageSize, Offset: 0, TargetPage: 0},
	}
}
