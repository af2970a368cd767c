// Package appstate holds the data model shared by the reducer, the
// completion engine, the effect executor, and the renderer: database
// metadata snapshots, table details, query results, and the small set of
// external-collaborator interfaces (MetadataProvider, ConnectionStore, ...)
// that the core depends on without knowing their concrete implementation.
package appstate

import "time"

// Metadata is a database snapshot: schemas and the tables within them.
// Created once per connection by a MetadataProvider; invalidated only by an
// explicit reload.
type Metadata struct {
	DatabaseName string
	Schemas      []string
	Tables       []TableSummary
}

// TableSummary is the lightweight per-table row shown in the explorer pane.
type TableSummary struct {
	Schema            string
	Name              string
	RowCountEstimate  *int64
	HasRLS            bool
}

// QualifiedName returns "schema.name".
func (t TableSummary) QualifiedName() string {
	return t.Schema + "." + t.Name
}

// Column describes one column of a table.
type Column struct {
	Name            string
	Type            string
	Nullable        bool
	Default         *string
	IsPrimaryKey    bool
	IsUnique        bool
	OrdinalPosition int
}

// TypeDisplay renders the type text for a completion detail string.
func (c Column) TypeDisplay() string {
	if c.Nullable {
		return c.Type
	}
	return c.Type + " not null"
}

// Index describes one index on a table.
type Index struct {
	Name      string
	Columns   []string
	IsUnique  bool
	IsPrimary bool
	Method    string
}

// ReferentialAction is the PostgreSQL ON DELETE/ON UPDATE action.
type ReferentialAction int

const (
	ActionNoAction ReferentialAction = iota
	ActionRestrict
	ActionCascade
	ActionSetNull
	ActionSetDefault
)

// ForeignKey describes one foreign-key constraint.
type ForeignKey struct {
	Name         string
	FromSchema   string
	FromTable    string
	FromColumns  []string
	ToSchema     string
	ToTable      string
	ToColumns    []string
	OnDelete     ReferentialAction
	OnUpdate     ReferentialAction
}

// RLSPolicy is one row-level-security policy attached to a table.
type RLSPolicy struct {
	Name    string
	Command string
	Using   string
}

// RLSInfo summarizes row-level-security state for a table.
type RLSInfo struct {
	Enabled  bool
	Policies []RLSPolicy
}

// TableDetail is the full schema description of a single table, fetched
// lazily per selection and tagged with a generation so late responses can
// be dropped by the reducer.
type TableDetail struct {
	Schema           string
	Name             string
	Columns          []Column
	PrimaryKey       []string
	Indexes          []Index
	ForeignKeys      []ForeignKey
	RLS              *RLSInfo
	RowCountEstimate *int64
}

// QualifiedName returns "schema.name".
func (t TableDetail) QualifiedName() string {
	return t.Schema + "." + t.Name
}

// QuerySource distinguishes a paginated table preview from a user-submitted
// ad-hoc query.
type QuerySource int

const (
	SourcePreview QuerySource = iota
	SourceAdhoc
)

// QueryResult is the immutable outcome of running one query. Errors are
// carried as a field rather than a Go error so that a failed query can
// still be displayed in the result pane like any other result.
type QueryResult struct {
	Source        QuerySource
	QueryText     string
	Error         *string
	Columns       []string
	Rows          [][]string
	RowCount      int
	ExecutionTime time.Duration
	ExecutedAt    time.Time
}
