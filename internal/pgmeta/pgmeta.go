// Package pgmeta implements appstate.MetadataProvider against a live
// PostgreSQL connection pool via pgx/v5, using catalog introspection
// queries over pg_catalog rather than a psql subprocess.
package pgmeta

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sabiql/sabiql/internal/appstate"
)

// CallTimeout bounds every individual database round trip so a stuck
// connection can never hang the UI indefinitely.
const CallTimeout = 30 * time.Second

// Provider is a pgx-backed appstate.MetadataProvider. Pools are cached
// per-DSN so repeated calls against the same connection reuse sockets.
type Provider struct {
	pools map[string]*pgxpool.Pool
}

// New returns an empty Provider. Pools are created lazily on first use.
func New() *Provider {
	return &Provider{pools: map[string]*pgxpool.Pool{}}
}

var _ appstate.MetadataProvider = (*Provider)(nil)

func (p *Provider) poolFor(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	if pool, ok := p.pools[dsn]; ok {
		return pool, nil
	}
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	p.pools[dsn] = pool
	return pool, nil
}

const tablesQuery = `
SELECT n.nspname, c.relname, c.reltuples::bigint, c.relrowsecurity
FROM pg_class c
JOIN pg_namespace n ON n.oid = c.relnamespace
WHERE c.relkind = 'r'
  AND n.nspname NOT IN ('pg_catalog', 'information_schema', 'pg_toast')
  AND (
    has_table_privilege(c.oid, 'SELECT') OR has_table_privilege(c.oid, 'INSERT') OR
    has_table_privilege(c.oid, 'UPDATE') OR has_table_privilege(c.oid, 'DELETE')
  )
ORDER BY n.nspname, c.relname`

const schemasQuery = `
SELECT nspname FROM pg_namespace
WHERE nspname NOT IN ('pg_catalog', 'information_schema', 'pg_toast')
  AND nspname NOT LIKE 'pg_temp_%' AND nspname NOT LIKE 'pg_toast_temp_%'
ORDER BY nspname`

// FetchMetadata loads the schema list and table summaries for dsn.
func (p *Provider) FetchMetadata(ctx context.Context, dsn string) (appstate.Metadata, error) {
	ctx, cancel := context.WithTimeout(ctx, CallTimeout)
	defer cancel()

	pool, err := p.poolFor(ctx, dsn)
	if err != nil {
		return appstate.Metadata{}, err
	}

	var schemas []string
	rows, err := pool.Query(ctx, schemasQuery)
	if err != nil {
		return appstate.Metadata{}, err
	}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			rows.Close()
			return appstate.Metadata{}, err
		}
		schemas = append(schemas, name)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return appstate.Metadata{}, err
	}

	var tables []appstate.TableSummary
	trows, err := pool.Query(ctx, tablesQuery)
	if err != nil {
		return appstate.Metadata{}, err
	}
	defer trows.Close()
	for trows.Next() {
		var schema, name string
		var rowCount int64
		var hasRLS bool
		if err := trows.Scan(&schema, &name, &rowCount, &hasRLS); err != nil {
			return appstate.Metadata{}, err
		}
		tables = append(tables, appstate.TableSummary{
			Schema: schema, Name: name, RowCountEstimate: &rowCount, HasRLS: hasRLS,
		})
	}
	if err := trows.Err(); err != nil {
		return appstate.Metadata{}, err
	}

	return appstate.Metadata{DatabaseName: pool.Config().ConnConfig.Database, Schemas: schemas, Tables: tables}, nil
}

const columnsQuery = `
SELECT
  a.attname, pg_catalog.format_type(a.atttypid, a.atttypmod), NOT a.attnotnull,
  pg_get_expr(d.adbin, d.adrelid),
  EXISTS (SELECT 1 FROM pg_index i WHERE i.indrelid = cl.oid AND i.indisprimary AND a.attnum = ANY(i.indkey)),
  EXISTS (SELECT 1 FROM pg_index i WHERE i.indrelid = cl.oid AND i.indisunique AND NOT i.indisprimary
          AND array_length(i.indkey, 1) = 1 AND a.attnum = ANY(i.indkey)),
  a.attnum
FROM pg_class cl
JOIN pg_namespace n ON n.oid = cl.relnamespace
JOIN pg_attribute a ON a.attrelid = cl.oid
LEFT JOIN pg_attrdef d ON d.adrelid = cl.oid AND d.adnum = a.attnum
WHERE n.nspname = $1 AND cl.relname = $2 AND a.attnum > 0 AND NOT a.attisdropped
ORDER BY a.attnum`

const indexesQuery = `
SELECT idx.relname, array_agg(a.attname ORDER BY array_position(ix.indkey, a.attnum)),
       ix.indisunique, ix.indisprimary, am.amname
FROM pg_index ix
JOIN pg_class idx ON idx.oid = ix.indexrelid
JOIN pg_class tbl ON tbl.oid = ix.indrelid
JOIN pg_namespace n ON n.oid = tbl.relnamespace
JOIN pg_am am ON am.oid = idx.relam
JOIN pg_attribute a ON a.attrelid = tbl.oid AND a.attnum = ANY(ix.indkey)
WHERE n.nspname = $1 AND tbl.relname = $2
GROUP BY idx.relname, ix.indisunique, ix.indisprimary, am.amname
ORDER BY idx.relname`

const foreignKeysQuery = `
SELECT con.conname, n2.nspname, c2.relname,
       array_agg(a1.attname ORDER BY array_position(con.conkey, a1.attnum)),
       array_agg(a2.attname ORDER BY array_position(con.confkey, a2.attnum)),
       con.confdeltype, con.confupdtype
FROM pg_constraint con
JOIN pg_class c1 ON c1.oid = con.conrelid
JOIN pg_namespace n1 ON n1.oid = c1.relnamespace
JOIN pg_class c2 ON c2.oid = con.confrelid
JOIN pg_namespace n2 ON n2.oid = c2.relnamespace
JOIN pg_attribute a1 ON a1.attrelid = c1.oid AND a1.attnum = ANY(con.conkey)
JOIN pg_attribute a2 ON a2.attrelid = c2.oid AND a2.attnum = ANY(con.confkey)
WHERE con.contype = 'f' AND n1.nspname = $1 AND c1.relname = $2
GROUP BY con.conname, n2.nspname, c2.relname, con.confdeltype, con.confupdtype`

const rlsQuery = `
SELECT c.relrowsecurity, p.polname, p.polcmd, pg_get_expr(p.polqual, p.polrelid)
FROM pg_class c
JOIN pg_namespace n ON n.oid = c.relnamespace
LEFT JOIN pg_policy p ON p.polrelid = c.oid
WHERE n.nspname = $1 AND c.relname = $2`

func referentialAction(code string) appstate.ReferentialAction {
	switch code {
	case "r":
		return appstate.ActionRestrict
	case "c":
		return appstate.ActionCascade
	case "n":
		return appstate.ActionSetNull
	case "d":
		return appstate.ActionSetDefault
	default:
		return appstate.ActionNoAction
	}
}

// FetchTableDetail loads the full column/index/foreign-key/RLS
// description of one table.
func (p *Provider) FetchTableDetail(ctx context.Context, dsn, schema, table string) (appstate.TableDetail, error) {
	ctx, cancel := context.WithTimeout(ctx, CallTimeout)
	defer cancel()

	pool, err := p.poolFor(ctx, dsn)
	if err != nil {
		return appstate.TableDetail{}, err
	}

	detail := appstate.TableDetail{Schema: schema, Name: table}

	colRows, err := pool.Query(ctx, columnsQuery, schema, table)
	if err != nil {
		return appstate.TableDetail{}, err
	}
	for colRows.Next() {
		var c appstate.Column
		var def *string
		if err := colRows.Scan(&c.Name, &c.Type, &c.Nullable, &def, &c.IsPrimaryKey, &c.IsUnique, &c.OrdinalPosition); err != nil {
			colRows.Close()
			return appstate.TableDetail{}, err
		}
		c.Default = def
		detail.Columns = append(detail.Columns, c)
		if c.IsPrimaryKey {
			detail.PrimaryKey = append(detail.PrimaryKey, c.Name)
		}
	}
	colRows.Close()
	if err := colRows.Err(); err != nil {
		return appstate.TableDetail{}, err
	}

	idxRows, err := pool.Query(ctx, indexesQuery, schema, table)
	if err != nil {
		return appstate.TableDetail{}, err
	}
	for idxRows.Next() {
		var idx appstate.Index
		if err := idxRows.Scan(&idx.Name, &idx.Columns, &idx.IsUnique, &idx.IsPrimary, &idx.Method); err != nil {
			idxRows.Close()
			return appstate.TableDetail{}, err
		}
		detail.Indexes = append(detail.Indexes, idx)
	}
	idxRows.Close()
	if err := idxRows.Err(); err != nil {
		return appstate.TableDetail{}, err
	}

	fkRows, err := pool.Query(ctx, foreignKeysQuery, schema, table)
	if err != nil {
		return appstate.TableDetail{}, err
	}
	for fkRows.Next() {
		var fk appstate.ForeignKey
		var onDelete, onUpdate string
		if err := fkRows.Scan(&fk.Name, &fk.ToSchema, &fk.ToTable, &fk.FromColumns, &fk.ToColumns, &onDelete, &onUpdate); err != nil {
			fkRows.Close()
			return appstate.TableDetail{}, err
		}
		fk.FromSchema, fk.FromTable = schema, table
		fk.OnDelete = referentialAction(onDelete)
		fk.OnUpdate = referentialAction(onUpdate)
		detail.ForeignKeys = append(detail.ForeignKeys, fk)
	}
	fkRows.Close()
	if err := fkRows.Err(); err != nil {
		return appstate.TableDetail{}, err
	}

	rlsRows, err := pool.Query(ctx, rlsQuery, schema, table)
	if err != nil {
		return appstate.TableDetail{}, err
	}
	rls := &appstate.RLSInfo{}
	for rlsRows.Next() {
		var enabled bool
		var polname, polcmd, qual *string
		if err := rlsRows.Scan(&enabled, &polname, &polcmd, &qual); err != nil {
			rlsRows.Close()
			return appstate.TableDetail{}, err
		}
		rls.Enabled = enabled
		if polname != nil {
			policy := appstate.RLSPolicy{Name: *polname}
			if polcmd != nil {
				policy.Command = *polcmd
			}
			if qual != nil {
				policy.Using = *qual
			}
			rls.Policies = append(rls.Policies, policy)
		}
	}
	rlsRows.Close()
	if err := rlsRows.Err(); err != nil {
		return appstate.TableDetail{}, err
	}
	detail.RLS = rls

	return detail, nil
}

// RunQuery executes a SELECT/WITH statement. When limit is positive, the
// query text is expected to carry a trailing "LIMIT $1 OFFSET $2" (the
// preview path builds it that way) and limit/offset are bound as those
// two parameters; a zero limit means the query is unlimited (the adhoc
// path) and is run as-is, with the read-only-statement restriction
// enforced one layer up, in internal/executor.
func (p *Provider) RunQuery(ctx context.Context, dsn, query string, limit, offset int) (appstate.QueryResult, error) {
	ctx, cancel := context.WithTimeout(ctx, CallTimeout)
	defer cancel()

	pool, err := p.poolFor(ctx, dsn)
	if err != nil {
		return appstate.QueryResult{}, err
	}

	start := time.Now()
	var rows pgx.Rows
	if limit > 0 {
		rows, err = pool.Query(ctx, query, limit, offset)
	} else {
		rows, err = pool.Query(ctx, query)
	}
	if err != nil {
		return appstate.QueryResult{}, err
	}
	defer rows.Close()

	fields := rows.FieldDescriptions()
	columns := make([]string, len(fields))
	for i, f := range fields {
		columns[i] = string(f.Name)
	}

	var resultRows [][]string
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return appstate.QueryResult{}, err
		}
		row := make([]string, len(values))
		for i, v := range values {
			row[i] = formatValue(v)
		}
		resultRows = append(resultRows, row)
	}
	if err := rows.Err(); err != nil {
		return appstate.QueryResult{}, err
	}

	return appstate.QueryResult{
		QueryText:     query,
		Columns:       columns,
		Rows:          resultRows,
		RowCount:      len(resultRows),
		ExecutionTime: time.Since(start),
		ExecutedAt:    start,
	}, nil
}

// nullDisplay is what a SQL NULL renders as, distinct from an empty string
// or zero-length value coming back from Postgres.
const nullDisplay = "<null>"

func formatValue(v any) string {
	if v == nil {
		return nullDisplay
	}
	return fmt.Sprintf("%v", v)
}
