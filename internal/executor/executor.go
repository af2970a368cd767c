// Package executor turns the reducer's Effects into real work: database
// calls, file I/O, clipboard access, external process launches, and
// completion-engine cache maintenance. It is the only package in sabiql
// allowed to touch any of those things; everything it produces is posted
// back into the event loop as an ActionsMsg so the reducer stays pure.
package executor

import (
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sabiql/sabiql/internal/action"
	"github.com/sabiql/sabiql/internal/appstate"
	"github.com/sabiql/sabiql/internal/clilog"
	"github.com/sabiql/sabiql/internal/completion"
	"github.com/sabiql/sabiql/internal/effect"
)

// callTimeout bounds every database round trip spawned by the executor.
const callTimeout = 30 * time.Second

// ConsoleBinary is the external client invoked by KindOpenConsole. A
// package var rather than a constant so tests can point it at a stub.
var ConsoleBinary = "psql"

// ActionsMsg carries one or more Actions produced by completed async
// work back into the bubbletea Update loop. DispatchActions and every
// async completion use it so the model only ever needs one message type
// to feed back into Reduce.
type ActionsMsg struct {
	Actions []action.Action
}

func single(a action.Action) tea.Msg {
	return ActionsMsg{Actions: []action.Action{a}}
}

// Deps bundles the executor's external collaborators.
type Deps struct {
	Metadata    appstate.MetadataProvider
	Connections appstate.ConnectionStore
	Diagrams    appstate.ErDiagramExporter
	Graphviz    appstate.GraphvizRunner
	Viewer      appstate.ViewerLauncher
	Completion  *completion.Engine
	CacheDir    string
}

// Execute turns eff into a tea.Cmd. snapshot is the AppState as it stood
// immediately after the reducer produced eff; the executor reads whatever
// plain values it needs out of it before returning, so the returned Cmd
// never touches the live, still-mutating AppState from its own goroutine.
func (d *Deps) Execute(eff effect.Effect, snapshot *appstate.AppState) tea.Cmd {
	switch eff.Kind {
	case effect.KindRender:
		return nil

	case effect.KindSequence:
		cmds := make([]tea.Cmd, 0, len(eff.Effects))
		for _, sub := range eff.Effects {
			if cmd := d.Execute(sub, snapshot); cmd != nil {
				cmds = append(cmds, cmd)
			}
		}
		return tea.Sequence(cmds...)

	case effect.KindDispatchActions:
		actions := eff.Actions
		return func() tea.Msg { return ActionsMsg{Actions: actions} }

	case effect.KindFetchMetadata:
		return d.fetchMetadata(eff)

	case effect.KindFetchTableDetail:
		return d.fetchTableDetail(eff)

	case effect.KindPrefetchTableDetail:
		return d.prefetchTableDetail(eff)

	case effect.KindExecutePreview:
		return d.executeQuery(eff, appstate.SourcePreview)

	case effect.KindExecuteAdhoc:
		return d.executeAdhoc(eff)

	case effect.KindCacheInvalidate:
		return nil

	case effect.KindClearCompletionEngineCache:
		d.Completion.ClearCache()
		return nil

	case effect.KindCacheTableInCompletionEngine:
		d.Completion.CacheTableDetail(eff.QualifiedName, eff.TableDetail)
		return nil

	case effect.KindScheduleCompletionDebounce:
		return d.scheduleCompletionDebounce(eff)

	case effect.KindTriggerCompletion:
		return d.triggerCompletion(snapshot)

	case effect.KindWriteErFailureLog:
		return d.writeErFailureLog(eff)

	case effect.KindGenerateErDiagramFromCache:
		return d.generateErDiagram(eff)

	case effect.KindOpenConsole:
		return d.openConsole(eff)

	case effect.KindCopyToClipboard:
		return d.copyToClipboard(eff)

	case effect.KindLoadConnections:
		return d.loadConnections()

	case effect.KindSaveAndConnect:
		return d.saveAndConnect(eff)

	case effect.KindDeleteConnection:
		return d.deleteConnection(eff)
	}

	return nil
}

func (d *Deps) fetchMetadata(eff effect.Effect) tea.Cmd {
	dsnVal := eff.DSN
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), callTimeout)
		defer cancel()

		meta, err := d.Metadata.FetchMetadata(ctx, dsnVal)
		if err != nil {
			return single(action.Action{Kind: action.KindMetadataFailed, Error: err.Error()})
		}
		return single(action.Action{Kind: action.KindMetadataLoaded, Metadata: meta})
	}
}

func (d *Deps) fetchTableDetail(eff effect.Effect) tea.Cmd {
	dsnVal, schema, table, generation := eff.DSN, eff.Schema, eff.Table, eff.Generation
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), callTimeout)
		defer cancel()

		detail, err := d.Metadata.FetchTableDetail(ctx, dsnVal, schema, table)
		if err != nil {
			clilog.Writer.Error().Err(err).Str("table", schema+"."+table).Msg("fetch table detail failed")
			return nil
		}
		return single(action.Action{Kind: action.KindTableDetailLoaded, TableDetail: detail, Generation: generation})
	}
}

func (d *Deps) prefetchTableDetail(eff effect.Effect) tea.Cmd {
	dsnVal, schema, table := eff.DSN, eff.Schema, eff.Table
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), callTimeout)
		defer cancel()

		detail, err := d.Metadata.FetchTableDetail(ctx, dsnVal, schema, table)
		if err != nil {
			return single(action.Action{Kind: action.KindTableDetailCacheFailed, Schema: schema, Table: table, Error: err.Error()})
		}
		return single(action.Action{Kind: action.KindTableDetailCached, Schema: schema, Table: table, TableDetail: detail})
	}
}

func (d *Deps) executeQuery(eff effect.Effect, source appstate.QuerySource) tea.Cmd {
	dsnVal, schema, table := eff.DSN, eff.Schema, eff.Table
	generation, limit, offset, targetPage := eff.Generation, eff.Limit, eff.Offset, eff.TargetPage
	query := fmt.Sprintf("SELECT * FROM %q.%q LIMIT $1 OFFSET $2", schema, table)

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), callTimeout)
		defer cancel()

		start := time.Now()
		result, err := d.Metadata.RunQuery(ctx, dsnVal, query, limit, offset)
		if err != nil {
			return single(action.Action{Kind: action.KindQueryFailed, Error: err.Error(), Generation: generation})
		}
		result.Source = source
		result.ExecutionTime = time.Since(start)
		result.ExecutedAt = start
		return single(action.Action{Kind: action.KindQueryCompleted, QueryResult: result, Generation: generation, TargetPage: targetPage})
	}
}

// adhocKeywordOK reports whether query, after trimming leading whitespace,
// begins with SELECT or WITH (case-insensitive): the only statement forms
// allowed through the SQL modal's ad-hoc path. Leading comments are not
// skipped, so a query that starts with a comment is rejected.
func adhocKeywordOK(query string) bool {
	trimmed := strings.TrimSpace(query)
	upper := strings.ToUpper(trimmed)
	return strings.HasPrefix(upper, "SELECT") || strings.HasPrefix(upper, "WITH")
}

func (d *Deps) executeAdhoc(eff effect.Effect) tea.Cmd {
	dsnVal, query, generation := eff.DSN, eff.Query, eff.Generation

	if !adhocKeywordOK(query) {
		return func() tea.Msg {
			return single(action.Action{
				Kind:       action.KindQueryFailed,
				Error:      "only SELECT and WITH statements may be run here",
				Generation: generation,
			})
		}
	}

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), callTimeout)
		defer cancel()

		start := time.Now()
		result, err := d.Metadata.RunQuery(ctx, dsnVal, query, 0, 0)
		if err != nil {
			return single(action.Action{Kind: action.KindQueryFailed, Error: err.Error(), Generation: generation})
		}
		result.Source = appstate.SourceAdhoc
		result.QueryText = query
		result.ExecutionTime = time.Since(start)
		result.ExecutedAt = start
		return single(action.Action{Kind: action.KindQueryCompleted, QueryResult: result, Generation: generation})
	}
}

func (d *Deps) scheduleCompletionDebounce(eff effect.Effect) tea.Cmd {
	triggerAt := eff.TriggerAt
	return tea.Tick(time.Until(triggerAt), func(time.Time) tea.Msg {
		return single(action.Action{Kind: action.KindCompletionTrigger})
	})
}

func (d *Deps) triggerCompletion(snapshot *appstate.AppState) tea.Cmd {
	content := snapshot.SQL.Buffer
	cursorPos := snapshot.SQL.CursorPos
	metadata := snapshot.Metadata
	tableDetail := snapshot.TableDetail

	candidates := d.Completion.GetCandidates(content, cursorPos, metadata, tableDetail)
	tokenLen := d.Completion.CurrentTokenLen(content, cursorPos)
	triggerPos := cursorPos - tokenLen

	return func() tea.Msg {
		return single(action.Action{
			Kind:            action.KindCompletionUpdated,
			Candidates:      candidates,
			TriggerPosition: triggerPos,
			Visible:         len(candidates) > 0,
		})
	}
}

func (d *Deps) writeErFailureLog(eff effect.Effect) tea.Cmd {
	failed := eff.FailedTables
	return func() tea.Msg {
		clilog.Writer.Warn().Strs("tables", failed).Msg("ER diagram preparation finished with failures")
		return nil
	}
}

func (d *Deps) generateErDiagram(eff effect.Effect) tea.Cmd {
	tables := eff.ErDiagram
	return func() tea.Msg {
		dot, err := d.Diagrams.Export(tables)
		if err != nil {
			clilog.Writer.Error().Err(err).Msg("ER diagram generation failed")
			return nil
		}

		dotPath := filepath.Join(d.CacheDir, "er-diagram.dot")
		svgPath := filepath.Join(d.CacheDir, "er-diagram.svg")
		if err := d.Graphviz.Render(dot, svgPath); err != nil {
			clilog.Writer.Error().Err(err).Str("dot_path", dotPath).Msg("graphviz render failed")
			return nil
		}
		if err := d.Viewer.Open(svgPath); err != nil {
			clilog.Writer.Error().Err(err).Str("svg_path", svgPath).Msg("viewer launch failed")
		}
		return nil
	}
}

func (d *Deps) openConsole(eff effect.Effect) tea.Cmd {
	dsnVal := eff.DSN
	c := exec.Command(ConsoleBinary, dsnVal)
	return tea.ExecProcess(c, func(err error) tea.Msg {
		if err != nil {
			clilog.Writer.Error().Err(err).Str("console", ConsoleBinary).Msg("external console exited with error")
		}
		return nil
	})
}

func (d *Deps) copyToClipboard(eff effect.Effect) tea.Cmd {
	content, onSuccess, onFailure := eff.Content, eff.OnSuccess, eff.OnFailure
	return func() tea.Msg {
		if err := clipboard.WriteAll(content); err != nil {
			clilog.Writer.Error().Err(err).Msg("clipboard write failed")
			if onFailure != "" {
				return single(action.Action{Kind: action.KindStatusMessage, Text: onFailure})
			}
			return nil
		}
		if onSuccess != "" {
			return single(action.Action{Kind: action.KindStatusMessage, Text: onSuccess})
		}
		return nil
	}
}

func (d *Deps) loadConnections() tea.Cmd {
	return func() tea.Msg {
		profiles, err := d.Connections.Load()
		if err != nil {
			clilog.Writer.Error().Err(err).Msg("load connection profiles failed")
			return nil
		}
		return single(action.Action{Kind: action.KindConnectionsLoaded, Connections: profiles})
	}
}

func (d *Deps) saveAndConnect(eff effect.Effect) tea.Cmd {
	profile := appstate.ConnectionProfile{ID: eff.ConnID, Name: eff.Name, DSN: eff.DSN}
	return func() tea.Msg {
		existing, err := d.Connections.Load()
		if err != nil {
			clilog.Writer.Error().Err(err).Msg("load connections before save failed")
			existing = nil
		}

		replaced := false
		for i, p := range existing {
			if p.ID == profile.ID {
				existing[i] = profile
				replaced = true
				break
			}
		}
		if !replaced {
			existing = append(existing, profile)
		}

		if err := d.Connections.Save(existing); err != nil {
			clilog.Writer.Error().Err(err).Msg("save connection profile failed")
			return single(action.Action{Kind: action.KindMetadataFailed, Error: err.Error()})
		}

		return single(action.Action{Kind: action.KindConnectionSaveCompleted, ConnID: eff.ConnID, DSN: eff.DSN})
	}
}

func (d *Deps) deleteConnection(eff effect.Effect) tea.Cmd {
	connID := eff.ConnID
	return func() tea.Msg {
		if err := d.Connections.Delete(connID); err != nil {
			clilog.Writer.Error().Err(err).Str("conn_id", connID).Msg("delete connection profile failed")
		}
		return nil
	}
}
