package appstate

import "context"

// MetadataProvider fetches database structure. Implemented by
// internal/pgmeta against a live pgx connection pool.
type MetadataProvider interface {
	FetchMetadata(ctx context.Context, dsn string) (Metadata, error)
	FetchTableDetail(ctx context.Context, dsn, schema, table string) (TableDetail, error)
	RunQuery(ctx context.Context, dsn, query string, limit, offset int) (QueryResult, error)
}

// ConnectionStore persists named connection profiles to disk.
type ConnectionStore interface {
	Load() ([]ConnectionProfile, error)
	Save(profiles []ConnectionProfile) error
	Delete(id string) error
}

// ErDiagramExporter renders a set of table details into a diagram
// description (DOT) and hands it to a GraphvizRunner/ViewerLauncher.
type ErDiagramExporter interface {
	Export(tables map[string]TableDetail) (string, error)
}

// GraphvizRunner turns a DOT document into a rendered image on disk.
type GraphvizRunner interface {
	Render(dot string, outputPath string) error
}

// ViewerLauncher opens a rendered file (or console) in the user's
// preferred external program.
type ViewerLauncher interface {
	Open(path string) error
}
