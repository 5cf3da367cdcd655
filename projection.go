package gql2sql

import (
	"github.com/vektah/gqlparser/v2/ast"

	"github.com/syssam/gql2sql/sqlast"
)

// buildProjection walks an ordered selection set, producing the flat
// SELECT projection for leaf fields and the lateral joins for nested
// object/list fields (spec §4.E). path is the dotted alias of the
// enclosing derived table ("base", "base.Component", ...); gqlPath is
// the dotted GraphQL field-name path ("App", "App.components", ...)
// used to look up a per-relation entry in overrides and reported as the
// Path of any CompileError.
func buildProjection(path, gqlPath string, overrides map[string]RelationOverride, sels ast.SelectionSet) ([]sqlast.SelectItem, []sqlast.Join, error) {
	projection := make([]sqlast.SelectItem, 0, len(sels))
	joins := make([]sqlast.Join, 0)
	for _, sel := range sels {
		field, ok := sel.(*ast.Field)
		if !ok {
			return nil, nil, newCompileError(ErrUnsupportedSelection, gqlPath, "")
		}
		if len(field.SelectionSet) == 0 {
			projection = append(projection, leafSelectItem(path, field))
			continue
		}
		item, join, err := buildNestedSelection(path, gqlPath, overrides, field)
		if err != nil {
			return nil, nil, err
		}
		projection = append(projection, item)
		joins = append(joins, join)
	}
	return projection, joins, nil
}

func leafSelectItem(path string, field *ast.Field) sqlast.SelectItem {
	col := sqlast.CompoundIdent{Idents: []sqlast.Ident{sqlast.Quote(path), sqlast.Quote(field.Name)}}
	if field.Alias != "" && field.Alias != field.Name {
		return sqlast.ExprWithAlias{Expr: col, Alias: sqlast.Quote(field.Alias)}
	}
	return sqlast.UnnamedExpr{Expr: col}
}

// buildNestedSelection implements spec §4.E steps 1-9 for one object/list
// field: parse its arguments, resolve its relation, recurse into its
// selection set, build the join filter, wrap the result in a filtered
// base query and a JSON root query, and attach the whole thing as a
// LEFT JOIN LATERAL in the enclosing scope.
func buildNestedSelection(path, gqlPath string, overrides map[string]RelationOverride, field *ast.Field) (sqlast.SelectItem, sqlast.Join, error) {
	gqlFieldPath := gqlPath + "." + field.Name
	args, err := parseFieldArgs(gqlFieldPath, field.Arguments)
	if err != nil {
		return nil, sqlast.Join{}, err
	}
	var override *RelationOverride
	if ov, ok := overrides[gqlFieldPath]; ok {
		override = &ov
	}
	rel, err := resolveRelation(gqlFieldPath, field, override)
	if err != nil {
		return nil, sqlast.Join{}, err
	}
	subPath := path + "." + rel.Table
	subProjection, subJoins, err := buildProjection(subPath, gqlFieldPath, overrides, field.SelectionSet)
	if err != nil {
		return nil, sqlast.Join{}, err
	}

	joinFilter := sqlast.Expr(sqlast.BinaryOp{
		Left:  sqlast.CompoundIdent{Idents: []sqlast.Ident{sqlast.Quote(rel.Table), sqlast.Quote(rel.ForeignKey)}},
		Op:    sqlast.OpEq,
		Right: sqlast.CompoundIdent{Idents: []sqlast.Ident{sqlast.Quote(path), sqlast.Quote(rel.PrimaryKey)}},
	})
	selection := joinFilter
	if args.Filter != nil {
		selection = sqlast.BinaryOp{Left: joinFilter, Op: sqlast.OpAnd, Right: args.Filter}
	}

	baseQuery := buildFilterQuery(selection, args.OrderBy, args.First, args.After, rel.Table)
	innerFrom := sqlast.TableWithJoins{
		Relation: sqlast.Derived{Subquery: baseQuery, Alias: sqlast.Quote(subPath)},
		Joins:    subJoins,
	}
	nestedQuery := buildRootQuery(subProjection, []sqlast.TableWithJoins{innerFrom}, field.Name)

	join := sqlast.Join{
		Relation: sqlast.Derived{
			Lateral:  true,
			Subquery: nestedQuery,
			Alias:    sqlast.Quote(rootLabel + "." + rel.Table),
		},
		Operator:   sqlast.LeftOuterLateral,
		Constraint: sqlast.Nested{Expr: sqlast.Literal{Value: sqlast.SingleQuotedString{Text: "true"}}},
	}
	item := sqlast.UnnamedExpr{Expr: sqlast.IdentExpr{Ident: sqlast.Quote(field.Name)}}
	return item, join, nil
}
