package duckdbsql

import "strings"

// TableReference is an external table reference found by CollectExternalRefs.
// Qualified preserves the dotted form as written, for diagnostics; Tail is
// the lowercased bare final component, used for model-name matching.
type TableReference struct {
	Qualified string
	Tail      string
}

// cteScope is a stack of CTE-name sets, innermost last. A name is masked if
// it appears, unqualified, in any layer.
type cteScope []map[string]bool

func (s cteScope) masks(name string) bool {
	name = strings.ToLower(name)
	for i := len(s) - 1; i >= 0; i-- {
		if s[i][name] {
			return true
		}
	}
	return false
}

func (s cteScope) push(names map[string]bool) cteScope {
	out := make(cteScope, len(s)+1)
	copy(out, s)
	out[len(s)] = names
	return out
}

// CollectExternalRefs walks stmt and returns the table references that are
// not locally introduced by a WITH clause. A CTE name masks a real table of
// the same name for any unqualified reference within the same WITH block's
// main body (and within sibling CTE bodies only if the WITH is RECURSIVE and
// the reference is to the CTE's own name); references inside a non-recursive
// CTE's own definition are resolved against the outer scope only.
func CollectExternalRefs(stmt Stmt) []TableReference {
	seen := make(map[string]bool)
	var refs []TableReference

	switch s := stmt.(type) {
	case *SelectStmt:
		collectRefsFromSelect(s, nil, seen, &refs)
	case *InsertStmt:
		if s.Query != nil {
			collectRefsFromSelect(s.Query, nil, seen, &refs)
		}
	case *UpdateStmt:
		if s.From != nil {
			collectRefsFromFrom(s.From, nil, seen, &refs)
		}
		collectRefsFromExpr(s.Where, nil, seen, &refs)
	case *DeleteStmt:
		if s.Using != nil {
			collectRefsFromFrom(s.Using, nil, seen, &refs)
		}
		collectRefsFromExpr(s.Where, nil, seen, &refs)
	}

	return refs
}

func collectRefsFromSelect(sel *SelectStmt, outer cteScope, seen map[string]bool, refs *[]TableReference) {
	if sel == nil {
		return
	}

	scope := outer
	if sel.With != nil {
		names := make(map[string]bool, len(sel.With.CTEs))
		for _, cte := range sel.With.CTEs {
			names[strings.ToLower(cte.Name)] = true
		}
		for _, cte := range sel.With.CTEs {
			bodyScope := outer
			if sel.With.Recursive {
				self := map[string]bool{strings.ToLower(cte.Name): true}
				bodyScope = outer.push(self)
			}
			collectRefsFromSelect(cte.Select, bodyScope, seen, refs)
		}
		scope = outer.push(names)
	}

	if sel.Body != nil {
		collectRefsFromBody(sel.Body, scope, seen, refs)
	}
}

func collectRefsFromBody(body *SelectBody, scope cteScope, seen map[string]bool, refs *[]TableReference) {
	if body == nil {
		return
	}
	if body.Left != nil {
		collectRefsFromCore(body.Left, scope, seen, refs)
	}
	if body.Right != nil {
		collectRefsFromBody(body.Right, scope, seen, refs)
	}
}

func collectRefsFromCore(sc *SelectCore, scope cteScope, seen map[string]bool, refs *[]TableReference) {
	if sc == nil {
		return
	}
	if sc.From != nil {
		collectRefsFromFrom(sc.From, scope, seen, refs)
	}
	collectRefsFromExpr(sc.Where, scope, seen, refs)
	collectRefsFromExpr(sc.Having, scope, seen, refs)
	for _, col := range sc.Columns {
		collectRefsFromExpr(col.Expr, scope, seen, refs)
	}
	for _, row := range sc.ValuesRows {
		for _, e := range row {
			collectRefsFromExpr(e, scope, seen, refs)
		}
	}
}

func collectRefsFromFrom(from *FromClause, scope cteScope, seen map[string]bool, refs *[]TableReference) {
	if from == nil {
		return
	}
	collectRefsFromTableRef(from.Source, scope, seen, refs)
	for _, join := range from.Joins {
		collectRefsFromTableRef(join.Right, scope, seen, refs)
		collectRefsFromExpr(join.Condition, scope, seen, refs)
	}
}

func collectRefsFromTableRef(ref TableRef, scope cteScope, seen map[string]bool, refs *[]TableReference) {
	if ref == nil {
		return
	}

	switch t := ref.(type) {
	case *TableName:
		addRef(t, scope, seen, refs)
	case *DerivedTable:
		collectRefsFromSelect(t.Select, scope, seen, refs)
	case *LateralTable:
		collectRefsFromSelect(t.Select, scope, seen, refs)
	case *FuncTable:
		if t.Func != nil {
			for _, arg := range t.Func.Args {
				collectRefsFromExpr(arg, scope, seen, refs)
			}
		}
	case *PivotTable:
		collectRefsFromTableRef(t.Source, scope, seen, refs)
	case *UnpivotTable:
		collectRefsFromTableRef(t.Source, scope, seen, refs)
	case *StringTable:
		// A bare file-path string is never a model reference.
	}
}

func addRef(t *TableName, scope cteScope, seen map[string]bool, refs *[]TableReference) {
	if t.Catalog == "" && t.Schema == "" && scope.masks(t.Name) {
		return
	}

	qualified := t.Name
	if t.Schema != "" {
		qualified = t.Schema + "." + qualified
	}
	if t.Catalog != "" {
		qualified = t.Catalog + "." + qualified
	}

	tail := strings.ToLower(t.Name)
	key := strings.ToLower(qualified)
	if seen[key] {
		return
	}
	seen[key] = true
	*refs = append(*refs, TableReference{Qualified: qualified, Tail: tail})
}

func collectRefsFromExpr(e Expr, scope cteScope, seen map[string]bool, refs *[]TableReference) {
	if e == nil {
		return
	}

	switch expr := e.(type) {
	case *SubqueryExpr:
		collectRefsFromSelect(expr.Select, scope, seen, refs)
	case *ExistsExpr:
		collectRefsFromSelect(expr.Select, scope, seen, refs)
	case *InExpr:
		collectRefsFromExpr(expr.Expr, scope, seen, refs)
		if expr.Query != nil {
			collectRefsFromSelect(expr.Query, scope, seen, refs)
		}
		for _, v := range expr.Values {
			collectRefsFromExpr(v, scope, seen, refs)
		}
	case *BinaryExpr:
		collectRefsFromExpr(expr.Left, scope, seen, refs)
		collectRefsFromExpr(expr.Right, scope, seen, refs)
	case *UnaryExpr:
		collectRefsFromExpr(expr.Expr, scope, seen, refs)
	case *ParenExpr:
		collectRefsFromExpr(expr.Expr, scope, seen, refs)
	case *FuncCall:
		for _, arg := range expr.Args {
			collectRefsFromExpr(arg, scope, seen, refs)
		}
		if expr.Filter != nil {
			collectRefsFromExpr(expr.Filter, scope, seen, refs)
		}
	case *CaseExpr:
		collectRefsFromExpr(expr.Operand, scope, seen, refs)
		for _, w := range expr.Whens {
			collectRefsFromExpr(w.Condition, scope, seen, refs)
			collectRefsFromExpr(w.Result, scope, seen, refs)
		}
		collectRefsFromExpr(expr.Else, scope, seen, refs)
	case *CastExpr:
		collectRefsFromExpr(expr.Expr, scope, seen, refs)
	case *TypeCastExpr:
		collectRefsFromExpr(expr.Expr, scope, seen, refs)
	case *BetweenExpr:
		collectRefsFromExpr(expr.Expr, scope, seen, refs)
		collectRefsFromExpr(expr.Low, scope, seen, refs)
		collectRefsFromExpr(expr.High, scope, seen, refs)
	case *IsNullExpr:
		collectRefsFromExpr(expr.Expr, scope, seen, refs)
	case *IsBoolExpr:
		collectRefsFromExpr(expr.Expr, scope, seen, refs)
	case *LikeExpr:
		collectRefsFromExpr(expr.Expr, scope, seen, refs)
		collectRefsFromExpr(expr.Pattern, scope, seen, refs)
	case *GlobExpr:
		collectRefsFromExpr(expr.Expr, scope, seen, refs)
		collectRefsFromExpr(expr.Pattern, scope, seen, refs)
	case *SimilarToExpr:
		collectRefsFromExpr(expr.Expr, scope, seen, refs)
		collectRefsFromExpr(expr.Pattern, scope, seen, refs)
	case *ColumnsExpr:
		collectRefsFromExpr(expr.Pattern, scope, seen, refs)
	case *IntervalExpr:
		collectRefsFromExpr(expr.Value, scope, seen, refs)
	case *ExtractExpr:
		collectRefsFromExpr(expr.Expr, scope, seen, refs)
	case *LambdaExpr:
		collectRefsFromExpr(expr.Body, scope, seen, refs)
	case *StructLiteral:
		for _, f := range expr.Fields {
			collectRefsFromExpr(f.Value, scope, seen, refs)
		}
	case *ListLiteral:
		for _, el := range expr.Elements {
			collectRefsFromExpr(el, scope, seen, refs)
		}
	case *IndexExpr:
		collectRefsFromExpr(expr.Expr, scope, seen, refs)
		collectRefsFromExpr(expr.Index, scope, seen, refs)
		collectRefsFromExpr(expr.Start, scope, seen, refs)
		collectRefsFromExpr(expr.Stop, scope, seen, refs)
	}
}
