package duckdbsql

import (
	"strings"
)

// === Statement Classification ===

// StmtType represents the kind of SQL statement.
type StmtType int

// StmtTypeSelect and friends classify statement types.
const (
	StmtTypeSelect StmtType = iota
	StmtTypeInsert
	StmtTypeUpdate
	StmtTypeDelete
	StmtTypeDDL
	StmtTypeOther
)

// Classify returns the statement type for a parsed statement.
func Classify(stmt Stmt) StmtType {
	switch stmt.(type) {
	case *SelectStmt:
		return StmtTypeSelect
	case *InsertStmt:
		return StmtTypeInsert
	case *UpdateStmt:
		return StmtTypeUpdate
	case *DeleteStmt:
		return StmtTypeDelete
	case *DDLStmt:
		return StmtTypeDDL
	case *UtilityStmt:
		return StmtTypeOther
	default:
		return StmtTypeOther
	}
}

// === Table Name Collection ===

// CollectTableNames returns a deduplicated list of table names referenced in
// the statement (FROM, JOIN, subqueries, CTEs, INSERT/UPDATE/DELETE targets).
// This does not distinguish CTE-local names from real tables; callers that
// need that distinction should use the scope-aware reference extractor.
func CollectTableNames(stmt Stmt) []string {
	seen := make(map[string]bool)
	var tables []string

	switch s := stmt.(type) {
	case *SelectStmt:
		collectTablesFromSelect(s, seen, &tables)
	case *InsertStmt:
		if s.Table != nil {
			addTable(s.Table.Name, seen, &tables)
		}
		if s.Query != nil {
			collectTablesFromSelect(s.Query, seen, &tables)
		}
	case *UpdateStmt:
		if s.Table != nil {
			addTable(s.Table.Name, seen, &tables)
		}
		if s.From != nil {
			collectTablesFromFrom(s.From, seen, &tables)
		}
	case *DeleteStmt:
		if s.Table != nil {
			addTable(s.Table.Name, seen, &tables)
		}
	}

	return tables
}

func collectTablesFromSelect(sel *SelectStmt, seen map[string]bool, tables *[]string) {
	if sel == nil {
		return
	}

	// WITH clause (CTEs)
	if sel.With != nil {
		for _, cte := range sel.With.CTEs {
			collectTablesFromSelect(cte.Select, seen, tables)
		}
	}

	if sel.Body != nil {
		collectTablesFromBody(sel.Body, seen, tables)
	}
}

func collectTablesFromBody(body *SelectBody, seen map[string]bool, tables *[]string) {
	if body == nil {
		return
	}
	if body.Left != nil {
		collectTablesFromCore(body.Left, seen, tables)
	}
	if body.Right != nil {
		collectTablesFromBody(body.Right, seen, tables)
	}
}

func collectTablesFromCore(sc *SelectCore, seen map[string]bool, tables *[]string) {
	if sc == nil {
		return
	}

	// FROM clause
	if sc.From != nil {
		collectTablesFromFrom(sc.From, seen, tables)
	}

	// WHERE clause subqueries
	collectTablesFromExpr(sc.Where, seen, tables)

	// HAVING clause subqueries
	collectTablesFromExpr(sc.Having, seen, tables)

	// SELECT list subqueries
	for _, col := range sc.Columns {
		collectTablesFromExpr(col.Expr, seen, tables)
	}

	// VALUES rows
	for _, row := range sc.ValuesRows {
		for _, expr := range row {
			collectTablesFromExpr(expr, seen, tables)
		}
	}
}

func collectTablesFromFrom(from *FromClause, seen map[string]bool, tables *[]string) {
	if from == nil {
		return
	}
	collectTablesFromTableRef(from.Source, seen, tables)
	for _, join := range from.Joins {
		collectTablesFromTableRef(join.Right, seen, tables)
	}
}

func collectTablesFromTableRef(ref TableRef, seen map[string]bool, tables *[]string) {
	if ref == nil {
		return
	}

	switch t := ref.(type) {
	case *TableName:
		addTable(t.Name, seen, tables)
	case *DerivedTable:
		collectTablesFromSelect(t.Select, seen, tables)
	case *LateralTable:
		collectTablesFromSelect(t.Select, seen, tables)
	case *FuncTable:
		if t.Func != nil && t.Func.Name != "" {
			addTable("__func__"+strings.ToLower(t.Func.Name), seen, tables)
		}
	case *PivotTable:
		collectTablesFromTableRef(t.Source, seen, tables)
	case *UnpivotTable:
		collectTablesFromTableRef(t.Source, seen, tables)
	case *StringTable:
		addTable(t.Path, seen, tables)
	}
}

func collectTablesFromExpr(e Expr, seen map[string]bool, tables *[]string) {
	if e == nil {
		return
	}

	switch expr := e.(type) {
	case *SubqueryExpr:
		collectTablesFromSelect(expr.Select, seen, tables)
	case *ExistsExpr:
		collectTablesFromSelect(expr.Select, seen, tables)
	case *InExpr:
		collectTablesFromExpr(expr.Expr, seen, tables)
		if expr.Query != nil {
			collectTablesFromSelect(expr.Query, seen, tables)
		}
		for _, v := range expr.Values {
			collectTablesFromExpr(v, seen, tables)
		}
	case *BinaryExpr:
		collectTablesFromExpr(expr.Left, seen, tables)
		collectTablesFromExpr(expr.Right, seen, tables)
	case *UnaryExpr:
		collectTablesFromExpr(expr.Expr, seen, tables)
	case *ParenExpr:
		collectTablesFromExpr(expr.Expr, seen, tables)
	case *FuncCall:
		for _, arg := range expr.Args {
			collectTablesFromExpr(arg, seen, tables)
		}
	case *CaseExpr:
		collectTablesFromExpr(expr.Operand, seen, tables)
		for _, w := range expr.Whens {
			collectTablesFromExpr(w.Condition, seen, tables)
			collectTablesFromExpr(w.Result, seen, tables)
		}
		collectTablesFromExpr(expr.Else, seen, tables)
	case *CastExpr:
		collectTablesFromExpr(expr.Expr, seen, tables)
	case *TypeCastExpr:
		collectTablesFromExpr(expr.Expr, seen, tables)
	case *BetweenExpr:
		collectTablesFromExpr(expr.Expr, seen, tables)
		collectTablesFromExpr(expr.Low, seen, tables)
		collectTablesFromExpr(expr.High, seen, tables)
	case *IsNullExpr:
		collectTablesFromExpr(expr.Expr, seen, tables)
	case *IsBoolExpr:
		collectTablesFromExpr(expr.Expr, seen, tables)
	case *LikeExpr:
		collectTablesFromExpr(expr.Expr, seen, tables)
		collectTablesFromExpr(expr.Pattern, seen, tables)
	case *IsDistinctExpr:
		collectTablesFromExpr(expr.Left, seen, tables)
		collectTablesFromExpr(expr.Right, seen, tables)
	case *CollateExpr:
		collectTablesFromExpr(expr.Expr, seen, tables)
	case *MapLiteral:
		for _, e := range expr.Entries {
			collectTablesFromExpr(e.Value, seen, tables)
		}
	case *ListComprehension:
		collectTablesFromExpr(expr.Expr, seen, tables)
		collectTablesFromExpr(expr.List, seen, tables)
		collectTablesFromExpr(expr.Cond, seen, tables)
	case *NamedArgExpr:
		collectTablesFromExpr(expr.Value, seen, tables)
	case *GroupingExpr:
		for _, group := range expr.Groups {
			for _, e := range group {
				collectTablesFromExpr(e, seen, tables)
			}
		}
	case *ParamExpr, *DefaultExpr:
		// Leaf nodes, no sub-expressions
	}
}

func addTable(name string, seen map[string]bool, tables *[]string) {
	if name == "" || seen[name] {
		return
	}
	seen[name] = true
	*tables = append(*tables, name)
}

// === Target Table Extraction ===

// TargetTable returns the target table name for INSERT, UPDATE, or DELETE.
// Returns empty string for SELECT, DDL, and other statement types.
func TargetTable(stmt Stmt) string {
	switch s := stmt.(type) {
	case *InsertStmt:
		if s.Table != nil {
			return s.Table.Name
		}
	case *UpdateStmt:
		if s.Table != nil {
			return s.Table.Name
		}
	case *DeleteStmt:
		if s.Table != nil {
			return s.Table.Name
		}
	}
	return ""
}
