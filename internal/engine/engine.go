// Package engine owns the single embedded-database connection and turns a
// domain.Model into a materialized table, view, or exported file. It is the
// only component permitted to issue queries against the database; every
// other package receives it only through the narrow Materializer interface.
package engine

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"sort"

	_ "github.com/duckdb/duckdb-go/v2" // registers the "duckdb" sql driver

	"duck-demo/internal/domain"
	"duck-demo/internal/sqlrewrite"
)

// Materializer is the narrow view of Engine the orchestrator executes
// against. It deliberately excludes Open/Close so ownership of the
// connection's lifecycle stays with whoever called Open.
type Materializer interface {
	Materialize(ctx context.Context, m *domain.Model, substitutedSQL string) error
}

// Engine holds the single DuckDB connection for a run.
type Engine struct {
	db     *sql.DB
	logger *slog.Logger

	schemasEnsured map[string]bool
}

// Open creates (or attaches to) the embedded database at dbPath. An empty
// path or ":memory:" opens a transient in-memory database. The returned
// Engine owns db for the lifetime of the run; callers must Close it.
func Open(dbPath string, logger *slog.Logger) (*Engine, error) {
	if dbPath == "" {
		dbPath = ":memory:"
	}
	if logger == nil {
		logger = slog.Default()
	}
	db, err := sql.Open("duckdb", dbPath)
	if err != nil {
		return nil, domain.ErrIo(dbPath, fmt.Errorf("open duckdb: %w", err))
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, domain.ErrIo(dbPath, fmt.Errorf("ping duckdb: %w", err))
	}
	return &Engine{
		db:             db,
		logger:         logger,
		schemasEnsured: make(map[string]bool),
	}, nil
}

// Close releases the underlying connection.
func (e *Engine) Close() error {
	return e.db.Close()
}

// EnsureSchemas issues "CREATE SCHEMA IF NOT EXISTS" once per distinct
// non-empty schema name among schemas, in sorted order so repeated runs
// produce identical statement sequences.
func (e *Engine) EnsureSchemas(ctx context.Context, schemas []string) error {
	seen := make(map[string]bool, len(schemas))
	var names []string
	for _, s := range schemas {
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		names = append(names, s)
	}
	sort.Strings(names)

	for _, schema := range names {
		if e.schemasEnsured[schema] {
			continue
		}
		stmt := fmt.Sprintf("CREATE SCHEMA IF NOT EXISTS %s", sqlrewrite.QuoteIdentifier(schema))
		if _, err := e.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema %q: %w", schema, err)
		}
		e.schemasEnsured[schema] = true
	}
	return nil
}

// qualifiedName returns the (optionally schema-qualified) quoted relation
// name for m, using schema (already resolved to the model's or the run's
// default) when non-empty.
func qualifiedName(schema, name string) string {
	if schema == "" {
		return sqlrewrite.QuoteIdentifier(name)
	}
	return sqlrewrite.QuoteIdentifier(schema) + "." + sqlrewrite.QuoteIdentifier(name)
}
