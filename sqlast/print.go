package sqlast

import (
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var upper = cases.Upper(language.Und)

// UpperIdent returns an unquoted Ident whose name is rendered in uppercase,
// for the aggregate function names (COUNT/MIN/MAX/AVG) the printer contract
// (spec §6) requires uppercase while every other function name
// (json_agg, row_to_json, coalesce, json_build_object) stays lowercase.
func UpperIdent(name string) Ident {
	return Bare(upper.String(name))
}

// String renders the statement as PostgreSQL-parseable text.
func (s *Statement) String() string {
	if s == nil || s.Query == nil {
		return ""
	}
	return printQuery(s.Query)
}

func printQuery(q *Query) string {
	var b strings.Builder
	b.WriteString(printSetExpr(q.Body))
	if len(q.OrderBy) > 0 {
		b.WriteString(" ORDER BY ")
		for i, ob := range q.OrderBy {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(printExpr(ob.Expr))
			if ob.Asc {
				b.WriteString(" ASC")
			} else {
				b.WriteString(" DESC")
			}
		}
	}
	if q.Limit != nil {
		b.WriteString(" LIMIT ")
		b.WriteString(printExpr(q.Limit))
	}
	if q.Offset != nil {
		b.WriteString(" OFFSET ")
		b.WriteString(printExpr(q.Offset.Value))
	}
	return b.String()
}

func printSetExpr(e SetExpr) string {
	switch se := e.(type) {
	case *Select:
		return printSelect(se)
	default:
		return ""
	}
}

func printSelect(sel *Select) string {
	var b strings.Builder
	b.WriteString("SELECT ")
	for i, item := range sel.Projection {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(printSelectItem(item))
	}
	if len(sel.From) > 0 {
		b.WriteString(" FROM ")
		for i, t := range sel.From {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(printTableWithJoins(t))
		}
	}
	if sel.Selection != nil {
		b.WriteString(" WHERE ")
		b.WriteString(printExpr(sel.Selection))
	}
	if len(sel.GroupBy) > 0 {
		b.WriteString(" GROUP BY ")
		for i, e := range sel.GroupBy {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(printExpr(e))
		}
	}
	return b.String()
}

func printSelectItem(item SelectItem) string {
	switch it := item.(type) {
	case UnnamedExpr:
		return printExpr(it.Expr)
	case ExprWithAlias:
		return printExpr(it.Expr) + " AS " + printIdent(it.Alias)
	case Wildcard:
		return "*"
	default:
		return ""
	}
}

func printTableWithJoins(t TableWithJoins) string {
	var b strings.Builder
	b.WriteString(printTableFactor(t.Relation))
	for _, j := range t.Joins {
		b.WriteString(" ")
		b.WriteString(printJoin(j))
	}
	return b.String()
}

func printTableFactor(tf TableFactor) string {
	switch t := tf.(type) {
	case Table:
		s := printIdent(t.Name)
		if t.Alias != nil {
			s += " AS " + printIdent(*t.Alias)
		}
		return s
	case Derived:
		return "(" + printQuery(t.Subquery) + ") AS " + printIdent(t.Alias)
	default:
		return ""
	}
}

func printJoin(j Join) string {
	switch j.Operator {
	case LeftOuterLateral:
		return "LEFT JOIN LATERAL " + printTableFactor(j.Relation) + " ON " + printExpr(j.Constraint)
	default:
		return ""
	}
}

func printExpr(e Expr) string {
	switch v := e.(type) {
	case IdentExpr:
		return printIdent(v.Ident)
	case CompoundIdent:
		parts := make([]string, len(v.Idents))
		for i, id := range v.Idents {
			parts[i] = printIdent(id)
		}
		return strings.Join(parts, ".")
	case Literal:
		return printValue(v.Value)
	case BinaryOp:
		return printExpr(v.Left) + " " + printOp(v.Op) + " " + printExpr(v.Right)
	case Function:
		var args string
		if v.Wildcard {
			args = "*"
		} else {
			parts := make([]string, len(v.Args))
			for i, a := range v.Args {
				parts[i] = printExpr(a)
			}
			args = strings.Join(parts, ", ")
		}
		return printIdent(v.Name) + "(" + args + ")"
	case Like:
		op := " LIKE "
		if v.CaseInsensitive {
			op = " ILIKE "
		}
		return printExpr(v.Expr) + op + printExpr(v.Pattern)
	case Subquery:
		return "(" + printQuery(v.Query) + ")"
	case Nested:
		return "(" + printExpr(v.Expr) + ")"
	default:
		return ""
	}
}

func printOp(op BinaryOperator) string {
	switch op {
	case OpEq:
		return "="
	case OpNotEq:
		return "<>"
	case OpLt:
		return "<"
	case OpLtEq:
		return "<="
	case OpGt:
		return ">"
	case OpGtEq:
		return ">="
	case OpAnd:
		return "AND"
	default:
		return ""
	}
}

func printValue(v Value) string {
	switch val := v.(type) {
	case Number:
		return val.Text
	case SingleQuotedString:
		return "'" + val.Text + "'"
	case Null:
		return "NULL"
	case Boolean:
		return strconv.FormatBool(val.Value)
	case Placeholder:
		return "$" + val.Name
	default:
		return ""
	}
}

func printIdent(i Ident) string {
	if i.Quoted {
		return `"` + i.Name + `"`
	}
	return i.Name
}
