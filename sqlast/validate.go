package sqlast

import (
	"fmt"
	"strings"
	"unicode"
)

// IdentError reports an identifier that is unsafe to splice into printed
// SQL text: the printer quotes every identifier with '"' but never
// escapes it, so a name containing a '"' or a control character would
// either break out of the quoting or be silently mangled.
type IdentError struct {
	Ident   string
	Message string
}

func (e *IdentError) Error() string {
	return fmt.Sprintf("sqlast: identifier %q: %s", e.Ident, e.Message)
}

// ValidateIdent reports whether name is safe to quote and print verbatim.
func ValidateIdent(name string) error {
	if name == "" {
		return &IdentError{Ident: name, Message: "empty identifier"}
	}
	if strings.ContainsRune(name, '"') {
		return &IdentError{Ident: name, Message: `contains a double quote`}
	}
	if strings.ContainsFunc(name, unicode.IsControl) {
		return &IdentError{Ident: name, Message: "contains a control character"}
	}
	return nil
}

// ValidateStatement walks every identifier a statement would print and
// collects the ones ValidateIdent rejects. Table, column, and alias names
// in this compiler's output are derived from GraphQL field names and
// @relation directive arguments, which are attacker-controlled input, not
// a fixed schema — this is the defense-in-depth check that sits between
// the assembler and the printer.
func ValidateStatement(stmt *Statement) []error {
	if stmt == nil || stmt.Query == nil {
		return nil
	}
	var errs []error
	walkQuery(stmt.Query, &errs)
	return errs
}

func checkIdent(id Ident, errs *[]error) {
	if err := ValidateIdent(id.Name); err != nil {
		*errs = append(*errs, err)
	}
}

func walkQuery(q *Query, errs *[]error) {
	if q == nil {
		return
	}
	walkSetExpr(q.Body, errs)
	for _, ob := range q.OrderBy {
		walkExpr(ob.Expr, errs)
	}
	if q.Limit != nil {
		walkExpr(q.Limit, errs)
	}
	if q.Offset != nil {
		walkExpr(q.Offset.Value, errs)
	}
}

func walkSetExpr(e SetExpr, errs *[]error) {
	if sel, ok := e.(*Select); ok {
		walkSelect(sel, errs)
	}
}

func walkSelect(sel *Select, errs *[]error) {
	if sel == nil {
		return
	}
	for _, item := range sel.Projection {
		switch it := item.(type) {
		case UnnamedExpr:
			walkExpr(it.Expr, errs)
		case ExprWithAlias:
			walkExpr(it.Expr, errs)
			checkIdent(it.Alias, errs)
		}
	}
	for _, t := range sel.From {
		walkTableWithJoins(t, errs)
	}
	if sel.Selection != nil {
		walkExpr(sel.Selection, errs)
	}
	for _, e := range sel.GroupBy {
		walkExpr(e, errs)
	}
}

func walkTableWithJoins(t TableWithJoins, errs *[]error) {
	walkTableFactor(t.Relation, errs)
	for _, j := range t.Joins {
		walkTableFactor(j.Relation, errs)
		walkExpr(j.Constraint, errs)
	}
}

func walkTableFactor(tf TableFactor, errs *[]error) {
	switch t := tf.(type) {
	case Table:
		checkIdent(t.Name, errs)
		if t.Alias != nil {
			checkIdent(*t.Alias, errs)
		}
	case Derived:
		walkQuery(t.Subquery, errs)
		checkIdent(t.Alias, errs)
	}
}

func walkExpr(e Expr, errs *[]error) {
	switch v := e.(type) {
	case IdentExpr:
		checkIdent(v.Ident, errs)
	case CompoundIdent:
		for _, id := range v.Idents {
			checkIdent(id, errs)
		}
	case BinaryOp:
		walkExpr(v.Left, errs)
		walkExpr(v.Right, errs)
	case Function:
		checkIdent(v.Name, errs)
		for _, a := range v.Args {
			walkExpr(a, errs)
		}
	case Like:
		walkExpr(v.Expr, errs)
		walkExpr(v.Pattern, errs)
	case Subquery:
		walkQuery(v.Query, errs)
	case Nested:
		walkExpr(v.Expr, errs)
	}
}
