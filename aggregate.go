package gql2sql

import (
	"github.com/vektah/gqlparser/v2/ast"

	"github.com/syssam/gql2sql/sqlast"
)

// buildAggregateQuery compiles a top-level field whose name ends in
// "_aggregate" (spec §4.G). tableName is the prefix with the suffix
// already stripped. Unlike a normal selection, the result is a single
// json_build_object row, not a coalesce(json_agg(...)) array: aggregates
// always return exactly one row.
func buildAggregateQuery(path, tableName string, args fieldArgs, sels ast.SelectionSet) (*sqlast.Query, error) {
	pairs := make([]sqlast.Expr, 0, len(sels)*2)
	for _, sel := range sels {
		field, ok := sel.(*ast.Field)
		if !ok {
			return nil, newCompileError(ErrUnsupportedSelection, path, "")
		}
		pair, err := aggregateOperator(path, field)
		if err != nil {
			return nil, err
		}
		pairs = append(pairs, pair...)
	}
	call := sqlast.Function{Name: sqlast.Bare(fnJSONBuildObject), Args: pairs}
	baseQuery := buildFilterQuery(args.Filter, args.OrderBy, args.First, args.After, tableName)
	return &sqlast.Query{Body: &sqlast.Select{
		Projection: []sqlast.SelectItem{sqlast.ExprWithAlias{Expr: call, Alias: sqlast.Quote(rootLabel)}},
		From: []sqlast.TableWithJoins{{
			Relation: sqlast.Derived{Subquery: baseQuery, Alias: sqlast.Quote(base)},
		}},
	}}, nil
}

// aggregateOperator compiles one aggregate child field into a (key, value)
// pair for the enclosing json_build_object call. count ignores its inner
// selection entirely; min/max/avg build a nested json_build_object over
// their scalar fields. Any other field name contributes nothing, mirroring
// the original transform's catch-all no-op rather than raising — spec §4.G
// lists exactly these four operator names as recognized.
func aggregateOperator(path string, field *ast.Field) ([]sqlast.Expr, error) {
	switch field.Name {
	case aggCount:
		key := sqlast.Literal{Value: sqlast.SingleQuotedString{Text: aggCount}}
		return []sqlast.Expr{key, sqlast.Function{Name: sqlast.UpperIdent(aggCount), Wildcard: true}}, nil
	case aggMin, aggMax, aggAvg:
		cols := make([]sqlast.Expr, 0, len(field.SelectionSet)*2)
		for _, sel := range field.SelectionSet {
			colField, ok := sel.(*ast.Field)
			if !ok {
				return nil, newCompileError(ErrUnsupportedSelection, path, "")
			}
			cols = append(cols,
				sqlast.Literal{Value: sqlast.SingleQuotedString{Text: colField.Name}},
				sqlast.Function{
					Name: sqlast.UpperIdent(field.Name),
					Args: []sqlast.Expr{sqlast.IdentExpr{Ident: sqlast.Quote(colField.Name)}},
				},
			)
		}
		key := sqlast.Literal{Value: sqlast.SingleQuotedString{Text: field.Name}}
		inner := sqlast.Function{Name: sqlast.Bare(fnJSONBuildObject), Args: cols}
		return []sqlast.Expr{key, inner}, nil
	default:
		return nil, nil
	}
}
