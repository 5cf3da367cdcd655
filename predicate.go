package gql2sql

import (
	"github.com/vektah/gqlparser/v2/ast"

	"github.com/syssam/gql2sql/sqlast"
)

// buildPredicate builds one SQL Expr for a single column's filter clause
// object, e.g. `{ eq: "X" }` or `{ gte: 1, lte: 9 }` (spec §4.B). args must
// be object-kind.
//
// Multiple operator pairs AND-fold in a deliberately right-leaning tree,
// built by walking the pairs from the last to the first and wrapping each
// earlier pair around the accumulator (spec Open Question #2): the result
// is AND(p0, AND(p1, AND(p2, ...))), not the left-leaning fold a reader
// might expect. Tests pin this shape, so it is reproduced exactly rather
// than "fixed".
func buildPredicate(path string, left sqlast.Expr, args *ast.Value) (sqlast.Expr, error) {
	if args.Kind != ast.ObjectValue {
		return nil, newCompileError(ErrUnsupportedValueInScalarPosition, path, "")
	}
	switch len(args.Children) {
	case 0:
		return nil, nil
	case 1:
		return buildComparison(path, left, args.Children[0])
	default:
		conditions := make([]sqlast.Expr, len(args.Children))
		for i, c := range args.Children {
			expr, err := buildComparison(path, left, c)
			if err != nil {
				return nil, err
			}
			conditions[i] = expr
		}
		acc := conditions[len(conditions)-1]
		for i := len(conditions) - 2; i >= 0; i-- {
			acc = sqlast.BinaryOp{Left: conditions[i], Op: sqlast.OpAnd, Right: acc}
		}
		return acc, nil
	}
}

func buildComparison(path string, left sqlast.Expr, child *ast.ChildValue) (sqlast.Expr, error) {
	val, err := lowerValue(path, child.Value)
	if err != nil {
		return nil, err
	}
	right := sqlast.Literal{Value: val}
	switch child.Name {
	case "like":
		return sqlast.Like{Expr: left, Pattern: right}, nil
	case "ilike":
		return sqlast.Like{CaseInsensitive: true, Expr: left, Pattern: right}, nil
	default:
		op, ok := comparisonOp(child.Name)
		if !ok {
			return nil, newCompileError(ErrUnknownOperator, path, child.Name)
		}
		return sqlast.BinaryOp{Left: left, Op: op, Right: right}, nil
	}
}

func comparisonOp(name string) (sqlast.BinaryOperator, bool) {
	switch name {
	case "eq":
		return sqlast.OpEq, true
	case "neq":
		return sqlast.OpNotEq, true
	case "lt":
		return sqlast.OpLt, true
	case "lte":
		return sqlast.OpLtEq, true
	case "gt":
		return sqlast.OpGt, true
	case "gte":
		return sqlast.OpGtEq, true
	default:
		return 0, false
	}
}

// buildFilter builds a WHERE expression from a full filter/where argument
// value (spec §4.B). An empty object contributes no clause. Exactly one
// column is supported (spec Open Question #1); more than one raises
// ErrMultiColumnFilter rather than silently picking one.
func buildFilter(path string, filter *ast.Value) (sqlast.Expr, error) {
	if filter.Kind != ast.ObjectValue {
		return nil, newCompileError(ErrUnsupportedValueInScalarPosition, path, "")
	}
	switch len(filter.Children) {
	case 0:
		return nil, nil
	case 1:
		col := filter.Children[0]
		left := sqlast.IdentExpr{Ident: sqlast.Quote(col.Name)}
		return buildPredicate(path, left, col.Value)
	default:
		return nil, newCompileError(ErrMultiColumnFilter, path, "")
	}
}
