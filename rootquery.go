package gql2sql

import "github.com/syssam/gql2sql/sqlast"

// buildRootQuery wraps a flat projection and its FROM clause in the fixed
// JSON-shaped outer SELECT every top-level and nested selection ultimately
// produces (spec §4.F):
//
//	SELECT coalesce(json_agg(row_to_json((SELECT "root" FROM (<select>) AS "root"))), '[]') AS "<alias>"
//
// The triple nesting is load-bearing, not incidental: row_to_json needs a
// single-column, single-row subquery to observe as one JSON value, and
// wrapping the real projection inside a "root" derived table is what lets
// row_to_json see the whole row instead of one column. This shape is
// reproduced exactly rather than simplified, because every seed scenario
// compares the emitted SQL against it directly.
func buildRootQuery(projection []sqlast.SelectItem, from []sqlast.TableWithJoins, alias string) *sqlast.Query {
	// The projection-only select has no FROM of its own: its column list
	// (e.g. "base"."id") correlates implicitly against the outer query's
	// FROM, which is what lets row_to_json see exactly the requested
	// columns as a single virtual row without rescanning the table.
	innerSelect := &sqlast.Select{Projection: projection}
	rootDerived := sqlast.TableWithJoins{
		Relation: sqlast.Derived{
			Subquery: &sqlast.Query{Body: innerSelect},
			Alias:    sqlast.Quote(rootLabel),
		},
	}
	rowToJSONArg := sqlast.Subquery{Query: &sqlast.Query{Body: &sqlast.Select{
		Projection: []sqlast.SelectItem{sqlast.UnnamedExpr{Expr: sqlast.IdentExpr{Ident: sqlast.Quote(rootLabel)}}},
		From:       []sqlast.TableWithJoins{rootDerived},
	}}}
	rowToJSON := sqlast.Function{Name: sqlast.Bare(fnRowToJSON), Args: []sqlast.Expr{rowToJSONArg}}
	jsonAgg := sqlast.Function{Name: sqlast.Bare(fnJSONAgg), Args: []sqlast.Expr{rowToJSON}}
	coalesce := sqlast.Function{Name: sqlast.Bare(fnCoalesce), Args: []sqlast.Expr{
		jsonAgg,
		sqlast.Literal{Value: sqlast.SingleQuotedString{Text: emptyJSONArrayText}},
	}}
	return &sqlast.Query{Body: &sqlast.Select{
		Projection: []sqlast.SelectItem{sqlast.ExprWithAlias{Expr: coalesce, Alias: sqlast.Quote(alias)}},
		From:       from,
	}}
}

// buildFilterQuery builds the plain `SELECT * FROM "table" WHERE ... ORDER
// BY ... LIMIT ... OFFSET ...` selection a root or nested query filters
// down to before it gets wrapped by buildRootQuery (spec §4.E/§4.F/§4.G
// share this shape). selection may be nil for no WHERE clause.
func buildFilterQuery(selection sqlast.Expr, orderBy []sqlast.OrderByExpr, first sqlast.Expr, after *sqlast.Offset, table string) *sqlast.Query {
	return &sqlast.Query{
		Body: &sqlast.Select{
			Projection: []sqlast.SelectItem{sqlast.Wildcard{}},
			From: []sqlast.TableWithJoins{{
				Relation: sqlast.Table{Name: sqlast.Quote(table)},
			}},
			Selection: selection,
		},
		OrderBy: orderBy,
		Limit:   first,
		Offset:  after,
	}
}
