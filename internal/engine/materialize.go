package engine

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"duck-demo/internal/domain"
)

// Materialize executes the statement appropriate to m.Output against the
// already-substituted SQL, per spec.md section 4.5:
//
//   - Table: "CREATE OR REPLACE TABLE [schema.]name AS (sql)"
//   - View:  "CREATE OR REPLACE VIEW [schema.]name AS (sql)"
//   - File:  "COPY (sql) TO '<resolved location>' (FORMAT <fmt>)", falling
//     back to a temp-table COPY if the embedded engine rejects the direct
//     parenthesized-query form.
//
// On success m.RowsAffected is populated for Table outputs; m.Status is not
// mutated here, that's the orchestrator's responsibility since it also owns
// the failure-containment bookkeeping.
func (e *Engine) Materialize(ctx context.Context, m *domain.Model, substitutedSQL string) error {
	switch {
	case m.Output.Kind == domain.OutputTable:
		return e.materializeTable(ctx, m, substitutedSQL)
	case m.Output.Kind == domain.OutputView:
		return e.materializeView(ctx, m, substitutedSQL)
	case m.Output.IsFileOutput():
		return e.materializeFile(ctx, m, substitutedSQL)
	default:
		return domain.ErrExec(m.Name, fmt.Errorf("unrecognized output kind %q", m.Output.Kind))
	}
}

func (e *Engine) materializeTable(ctx context.Context, m *domain.Model, sql string) error {
	name := qualifiedName(m.Output.Schema, m.Name)
	stmt := fmt.Sprintf("CREATE OR REPLACE TABLE %s AS (%s)", name, sql)
	if _, err := e.db.ExecContext(ctx, stmt); err != nil {
		return domain.ErrExec(m.Name, err)
	}
	m.RowsAffected = e.rowCountBestEffort(ctx, name)
	return nil
}

func (e *Engine) materializeView(ctx context.Context, m *domain.Model, sql string) error {
	name := qualifiedName(m.Output.Schema, m.Name)
	stmt := fmt.Sprintf("CREATE OR REPLACE VIEW %s AS (%s)", name, sql)
	if _, err := e.db.ExecContext(ctx, stmt); err != nil {
		return domain.ErrExec(m.Name, err)
	}
	return nil
}

func (e *Engine) rowCountBestEffort(ctx context.Context, qualified string) int64 {
	row := e.db.QueryRowContext(ctx, fmt.Sprintf("SELECT COUNT(*) FROM %s", qualified))
	var n int64
	if err := row.Scan(&n); err != nil {
		return 0
	}
	return n
}

func (e *Engine) materializeFile(ctx context.Context, m *domain.Model, sql string) error {
	location := m.Output.ResolvedLocation(m.Name)
	if dir := filepath.Dir(location); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return domain.ErrIo(location, err)
		}
	}

	format, ok := m.Output.Kind.CopyFormat()
	if !ok {
		return domain.ErrExec(m.Name, fmt.Errorf("output kind %q is not a file format", m.Output.Kind))
	}

	direct := fmt.Sprintf("COPY (%s) TO '%s' (FORMAT %s)", sql, escapeSingleQuotes(location), format)
	if _, err := e.db.ExecContext(ctx, direct); err != nil {
		if !isParenthesizedQueryRejection(err) {
			return domain.ErrExec(m.Name, err)
		}
		e.logger.Warn("direct COPY of parenthesized query rejected, falling back to temp table",
			"model", m.Name, "error", err)
		return e.materializeFileViaTempTable(ctx, m, sql, location, format)
	}
	return nil
}

// materializeFileViaTempTable implements the spec.md section 9 fallback: a
// temporary table plus an explicit COPY, invisible to the model author.
func (e *Engine) materializeFileViaTempTable(ctx context.Context, m *domain.Model, sql, location, format string) error {
	tmp := fmt.Sprintf("__%s_export_tmp", m.Name)

	tx, err := e.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.ErrExec(m.Name, err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if err := execTemp(ctx, tx, fmt.Sprintf("CREATE TEMP TABLE %s AS (%s)", tmp, sql)); err != nil {
		return domain.ErrExec(m.Name, fmt.Errorf("create temp table for file export: %w", err))
	}
	copyStmt := fmt.Sprintf("COPY %s TO '%s' (FORMAT %s)", tmp, escapeSingleQuotes(location), format)
	if err := execTemp(ctx, tx, copyStmt); err != nil {
		return domain.ErrExec(m.Name, fmt.Errorf("copy temp table to file: %w", err))
	}
	if err := execTemp(ctx, tx, fmt.Sprintf("DROP TABLE %s", tmp)); err != nil {
		return domain.ErrExec(m.Name, fmt.Errorf("drop temp table after file export: %w", err))
	}
	if err := tx.Commit(); err != nil {
		return domain.ErrExec(m.Name, err)
	}
	committed = true
	return nil
}

func execTemp(ctx context.Context, tx *sql.Tx, stmt string) error {
	_, err := tx.ExecContext(ctx, stmt)
	return err
}

func escapeSingleQuotes(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

// isParenthesizedQueryRejection reports whether err looks like the embedded
// engine rejecting "COPY (<query>) TO ..." syntax specifically, as opposed
// to a genuine error in the model's SQL (which should still surface as the
// direct error, not be masked by a fallback that fails identically).
func isParenthesizedQueryRejection(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "syntax error") && strings.Contains(msg, "copy")
}
