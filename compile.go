package gql2sql

import (
	"strings"

	"github.com/vektah/gqlparser/v2/ast"

	"github.com/syssam/gql2sql/sqlast"
)

// CompileOption configures a Compile call. The zero value of compileConfig
// (no relation overrides) reproduces the naming-convention/@relation-only
// behavior spec.md §4.D describes.
type CompileOption func(*compileConfig)

type compileConfig struct {
	relationOverrides map[string]RelationOverride
}

// WithRelationOverrides supplies a foreign key / primary key pair for one
// or more relation paths, keyed by dotted GraphQL field name (e.g.
// "App.components"), that replace the naming-convention defaults an
// @relation directive would otherwise have to spell out. An @relation
// directive present on the field still takes precedence over an override
// for whichever arguments it names (see relation.go:resolveRelation).
func WithRelationOverrides(overrides map[string]RelationOverride) CompileOption {
	return func(c *compileConfig) { c.relationOverrides = overrides }
}

// Statement pairs one compiled SQL statement with the GraphQL field name
// it answers. The response key is always the field's name, never its
// alias (spec §4.H, §9 Open Question: alias-at-the-top-level is out of
// contract and left to a hosting driver).
type Statement struct {
	Name string
	SQL  *sqlast.Statement
}

// Compile lowers a parsed GraphQL query document into an ordered list of
// SQL statements, one per top-level field of each query operation (spec
// §4.H). Mutation and subscription operations are silently skipped.
// Fragment definitions anywhere in the document, and fragment spreads or
// inline fragments in a query operation's top-level selection set, are
// unsupported.
func Compile(doc *ast.QueryDocument, opts ...CompileOption) ([]Statement, error) {
	if len(doc.Fragments) > 0 {
		return nil, newCompileError(ErrUnsupportedSelection, "", "")
	}
	var cfg compileConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	var out []Statement
	for _, op := range doc.Operations {
		if op.Operation != ast.Query {
			continue
		}
		for _, sel := range op.SelectionSet {
			field, ok := sel.(*ast.Field)
			if !ok {
				return nil, newCompileError(ErrUnsupportedSelection, "", "")
			}
			stmt, err := compileField(field, cfg.relationOverrides)
			if err != nil {
				return nil, err
			}
			if errs := sqlast.ValidateStatement(stmt); len(errs) > 0 {
				return nil, newCompileError(ErrUnsafeIdentifier, field.Name, errs[0].Error())
			}
			out = append(out, Statement{Name: field.Name, SQL: stmt})
		}
	}
	return out, nil
}

func compileField(field *ast.Field, overrides map[string]RelationOverride) (*sqlast.Statement, error) {
	if strings.HasSuffix(field.Name, aggregateSuffix) {
		return compileAggregateField(field)
	}
	return compileSelectionField(field, overrides)
}

// compileSelectionField drives 4.C/4.E/4.F for one non-aggregate top-level
// field: the field's own name is the table (no relation resolution at the
// root), the filtered/ordered/paginated base query is aliased "base", and
// the flat projection over it is wrapped by the root query assembler with
// the fixed alias "root".
func compileSelectionField(field *ast.Field, overrides map[string]RelationOverride) (*sqlast.Statement, error) {
	path := field.Name
	args, err := parseFieldArgs(path, field.Arguments)
	if err != nil {
		return nil, err
	}
	projection, joins, err := buildProjection(base, field.Name, overrides, field.SelectionSet)
	if err != nil {
		return nil, err
	}
	baseQuery := buildFilterQuery(args.Filter, args.OrderBy, args.First, args.After, field.Name)
	from := sqlast.TableWithJoins{
		Relation: sqlast.Derived{Subquery: baseQuery, Alias: sqlast.Quote(base)},
		Joins:    joins,
	}
	query := buildRootQuery(projection, []sqlast.TableWithJoins{from}, rootLabel)
	return &sqlast.Statement{Query: query}, nil
}

func compileAggregateField(field *ast.Field) (*sqlast.Statement, error) {
	tableName := strings.TrimSuffix(field.Name, aggregateSuffix)
	path := field.Name
	args, err := parseFieldArgs(path, field.Arguments)
	if err != nil {
		return nil, err
	}
	query, err := buildAggregateQuery(path, tableName, args, field.SelectionSet)
	if err != nil {
		return nil, err
	}
	return &sqlast.Statement{Query: query}, nil
}
