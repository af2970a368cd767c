package reducer

import (
	"time"

	"github.com/sabiql/sabiql/internal/action"
	"github.com/sabiql/sabiql/internal/appstate"
	"github.com/sabiql/sabiql/internal/effect"
)

func qualifiedName(schema, table string) string {
	return schema + "." + table
}

// reduceMetadata handles schema/table-detail loading, generation gating
// of stale responses, and the bounded prefetch queue.
func reduceMetadata(s *appstate.AppState, a action.Action, now time.Time) ([]effect.Effect, bool) {
	switch a.Kind {
	case action.KindLoadMetadata, action.KindReloadMetadata:
		return []effect.Effect{{Kind: effect.KindFetchMetadata, DSN: s.Conn.DSN}}, true

	case action.KindMetadataLoaded:
		md := a.Metadata
		s.Metadata = &md
		s.Conn.Status = appstate.ConnConnected
		s.MarkDirty()
		return nil, true

	case action.KindMetadataFailed:
		s.Conn.Status = appstate.ConnFailed
		errText := a.Error
		s.Conn.Error = &errText
		return nil, true

	case action.KindLoadTableDetail:
		return []effect.Effect{{
			Kind:       effect.KindFetchTableDetail,
			DSN:        s.Conn.DSN,
			Schema:     a.Schema,
			Table:      a.Table,
			Generation: s.Generation,
		}}, true

	case action.KindTableDetailLoaded:
		if a.Generation < s.Generation {
			return nil, true
		}
		detail := a.TableDetail
		s.TableDetail = &detail
		s.MarkDirty()
		return nil, true

	case action.KindPrefetchTableDetail:
		return reducePrefetchTableDetail(s, a, now), true

	case action.KindStartPrefetchAll:
		return reduceStartPrefetchAll(s), true

	case action.KindProcessPrefetchQueue:
		return reduceProcessPrefetchQueue(s, now), true

	case action.KindTableDetailCached:
		name := qualifiedName(a.Schema, a.Table)
		s.TableDetailCache[name] = a.TableDetail
		delete(s.PrefetchInFlight, name)
		delete(s.ErPrep.Pending, name)
		delete(s.ErPrep.Fetching, name)
		return reduceErPrepProgress(s, name, true), true

	case action.KindTableDetailCacheFailed:
		name := qualifiedName(a.Schema, a.Table)
		delete(s.PrefetchInFlight, name)
		delete(s.ErPrep.Fetching, name)
		s.PrefetchBackoff[name] = now
		s.ErPrep.Failed[name] = a.Error
		return reduceErPrepProgress(s, name, false), true

	case action.KindTableDetailAlreadyCached:
		name := qualifiedName(a.Schema, a.Table)
		delete(s.PrefetchInFlight, name)
		delete(s.ErPrep.Pending, name)
		delete(s.ErPrep.Fetching, name)
		return reduceErPrepProgress(s, name, true), true
	}
	return nil, false
}

func reducePrefetchTableDetail(s *appstate.AppState, a action.Action, now time.Time) []effect.Effect {
	name := qualifiedName(a.Schema, a.Table)
	if s.PrefetchInFlight[name] {
		return nil
	}
	if failedAt, ok := s.PrefetchBackoff[name]; ok && now.Sub(failedAt) < prefetchBackoff {
		return nil
	}
	if _, cached := s.TableDetailCache[name]; cached {
		return nil
	}
	s.PrefetchInFlight[name] = true
	delete(s.PrefetchBackoff, name)
	return []effect.Effect{{Kind: effect.KindPrefetchTableDetail, DSN: s.Conn.DSN, Schema: a.Schema, Table: a.Table}}
}

func reduceStartPrefetchAll(s *appstate.AppState) []effect.Effect {
	if s.Metadata == nil {
		return nil
	}
	for _, t := range s.Metadata.Tables {
		name := t.QualifiedName()
		if _, cached := s.TableDetailCache[name]; cached {
			continue
		}
		s.ErPrep.Pending[name] = true
		s.PrefetchQueue = append(s.PrefetchQueue, name)
	}
	return nil
}

const maxConcurrentPrefetch = 4

func reduceProcessPrefetchQueue(s *appstate.AppState, now time.Time) []effect.Effect {
	var effects []effect.Effect
	for len(s.PrefetchQueue) > 0 && len(s.PrefetchInFlight) < maxConcurrentPrefetch {
		name := s.PrefetchQueue[0]
		s.PrefetchQueue = s.PrefetchQueue[1:]
		if failedAt, ok := s.PrefetchBackoff[name]; ok && now.Sub(failedAt) < prefetchBackoff {
			s.PrefetchQueue = append(s.PrefetchQueue, name)
			continue
		}
		schema, table := splitQualifiedName(name)
		s.PrefetchInFlight[name] = true
		delete(s.ErPrep.Pending, name)
		s.ErPrep.Fetching[name] = true
		effects = append(effects, effect.Effect{Kind: effect.KindPrefetchTableDetail, DSN: s.Conn.DSN, Schema: schema, Table: table})
	}
	return effects
}

func splitQualifiedName(name string) (schema, table string) {
	for i := 0; i < len(name); i++ {
		if name[i] == '.' {
			return name[:i], name[i+1:]
		}
	}
	return "", name
}

// reduceErPrepProgress checks whether ER preparation was waiting on this
// target and, if the whole set is now resolved, transitions out of
// Waiting into either Rendering (success) or back to Idle with a
// failure-log effect.
func reduceErPrepProgress(s *appstate.AppState, name string, succeeded bool) []effect.Effect {
	if s.ErPrep.Status != appstate.ErWaiting {
		return nil
	}
	if s.ErPrep.Incomplete() {
		return nil
	}
	if len(s.ErPrep.Failed) > 0 {
		failed := make([]string, 0, len(s.ErPrep.Failed))
		for n := range s.ErPrep.Failed {
			failed = append(failed, n)
		}
		s.ErPrep.Status = appstate.ErIdle
		return []effect.Effect{{Kind: effect.KindWriteErFailureLog, FailedTables: failed}}
	}
	s.ErPrep.Status = appstate.ErRendering
	tables := make(map[string]appstate.TableDetail, len(s.ErPrep.SelectedTargets))
	for _, n := range s.ErPrep.SelectedTargets {
		if detail, ok := s.TableDetailCache[n]; ok {
			tables[n] = detail
		}
	}
	return []effect.Effect{{Kind: effect.KindGenerateErDiagramFromCache, ErDiagram: tables}}
}
