// Package sqlrewrite classifies SQL statements and quotes identifiers for
// the execution engine. It is a thin, purpose-built layer over duckdbsql's
// parser rather than a general-purpose rewriter.
package sqlrewrite

import (
	"fmt"
	"strings"

	"duck-demo/internal/duckdbsql"
)

// StatementType represents the kind of SQL statement.
type StatementType int

// SQL statement types identified during query classification.
const (
	StmtSelect StatementType = iota
	StmtInsert
	StmtUpdate
	StmtDelete
	StmtDDL
	StmtOther
)

func (t StatementType) String() string {
	switch t {
	case StmtSelect:
		return "SELECT"
	case StmtInsert:
		return "INSERT"
	case StmtUpdate:
		return "UPDATE"
	case StmtDelete:
		return "DELETE"
	case StmtDDL:
		return "DDL"
	default:
		return "OTHER"
	}
}

// ClassifyStatement parses the SQL and returns the statement type. Models
// are expected to be a single SELECT.
func ClassifyStatement(sql string) (StatementType, error) {
	stmt, err := duckdbsql.Parse(sql)
	if err != nil {
		return StmtOther, fmt.Errorf("parse SQL: %w", err)
	}

	switch duckdbsql.Classify(stmt) {
	case duckdbsql.StmtTypeSelect:
		return StmtSelect, nil
	case duckdbsql.StmtTypeInsert:
		return StmtInsert, nil
	case duckdbsql.StmtTypeUpdate:
		return StmtUpdate, nil
	case duckdbsql.StmtTypeDelete:
		return StmtDelete, nil
	case duckdbsql.StmtTypeDDL:
		return StmtDDL, nil
	default:
		return StmtOther, nil
	}
}

// ExtractTableNames parses a SQL query and returns the deduplicated list
// of table names referenced in FROM clauses and JOINs, without any
// CTE/alias masking. Used for quick sanity checks; the model registry's
// reference extractor is scope-aware and should be preferred for dependency
// resolution.
func ExtractTableNames(sql string) ([]string, error) {
	stmt, err := duckdbsql.Parse(sql)
	if err != nil {
		return nil, fmt.Errorf("parse SQL: %w", err)
	}
	return duckdbsql.CollectTableNames(stmt), nil
}

// QuoteIdentifier unconditionally quotes a SQL identifier using double
// quotes. Internal double quotes are escaped by doubling them (" -> "").
func QuoteIdentifier(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
