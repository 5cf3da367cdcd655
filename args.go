package gql2sql

import (
	"github.com/vektah/gqlparser/v2/ast"

	"github.com/syssam/gql2sql/sqlast"
)

// fieldArgs is the parsed, structured form of a field's recognized
// arguments (spec §4.C). Any argument name other than filter/where/
// order/first/after is ignored rather than rejected.
type fieldArgs struct {
	Filter  sqlast.Expr
	OrderBy []sqlast.OrderByExpr
	First   sqlast.Expr
	After   *sqlast.Offset
}

func parseFieldArgs(path string, args ast.ArgumentList) (fieldArgs, error) {
	var out fieldArgs
	for _, a := range args {
		switch a.Name {
		case argFilter, argWhere:
			expr, err := buildFilter(path, a.Value)
			if err != nil {
				return fieldArgs{}, err
			}
			out.Filter = expr
		case argOrder:
			ob, err := buildOrderBy(path, a.Value)
			if err != nil {
				return fieldArgs{}, err
			}
			out.OrderBy = ob
		case argFirst:
			v, err := lowerValue(path, a.Value)
			if err != nil {
				return fieldArgs{}, err
			}
			out.First = sqlast.Literal{Value: v}
		case argAfter:
			v, err := lowerValue(path, a.Value)
			if err != nil {
				return fieldArgs{}, err
			}
			out.After = &sqlast.Offset{Value: sqlast.Literal{Value: v}}
		}
	}
	return out, nil
}

// buildOrderBy lowers the `order` argument's object value into ORDER BY
// entries in the object's own field order (spec §4.C, §9 Open Question: an
// ordered mapping, never a hash map, since SQL ORDER BY is itself
// positional). gqlparser's ast.ChildValueList preserves GraphQL object
// insertion order natively, so no extra bookkeeping is needed here.
func buildOrderBy(path string, order *ast.Value) ([]sqlast.OrderByExpr, error) {
	if order.Kind != ast.ObjectValue {
		return nil, newCompileError(ErrUnsupportedValueInScalarPosition, path, argOrder)
	}
	out := make([]sqlast.OrderByExpr, 0, len(order.Children))
	for _, c := range order.Children {
		asc, err := orderDirection(path, c.Value)
		if err != nil {
			return nil, err
		}
		out = append(out, sqlast.OrderByExpr{
			Expr: sqlast.IdentExpr{Ident: sqlast.Quote(c.Name)},
			Asc:  asc,
		})
	}
	return out, nil
}

// orderDirection requires the string or enum literal "ASC"/"DESC"; any
// other kind or value raises ErrMalformedOrderDirection (spec §4.C).
func orderDirection(path string, v *ast.Value) (bool, error) {
	switch v.Kind {
	case ast.StringValue, ast.BlockValue, ast.EnumValue:
		switch v.Raw {
		case orderAsc:
			return true, nil
		case orderDesc:
			return false, nil
		default:
			return false, newCompileError(ErrMalformedOrderDirection, path, argOrder)
		}
	default:
		return false, newCompileError(ErrMalformedOrderDirection, path, argOrder)
	}
}
