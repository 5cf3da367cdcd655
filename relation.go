package gql2sql

import (
	"github.com/vektah/gqlparser/v2/ast"
)

// relation is the resolved table/foreign-key/primary-key triple for a
// nested object or list selection (spec §4.D).
type relation struct {
	Table      string
	ForeignKey string
	PrimaryKey string
}

// RelationOverride supplies a foreign key / primary key pair for one
// relation path that replaces the naming-convention default, without
// having to edit the query document's @relation directive. A caller that
// doesn't need this stays unaffected by passing a nil override.
type RelationOverride struct {
	ForeignKey string
	PrimaryKey string
}

// resolveRelation applies the default naming convention (table = field
// name, foreign key = field name + "_id", primary key = "id"), lets
// override replace the foreign key/primary key defaults, and finally
// lets an @relation directive override any of the three by name — the
// directive always wins, since it is the most specific, query-level
// source of truth. An argument name other than table/field/references
// raises ErrUnknownDirectiveArg; an argument given as an object or a
// variable raises ErrUnsupportedValueInScalarPosition.
func resolveRelation(path string, field *ast.Field, override *RelationOverride) (relation, error) {
	rel := relation{
		Table:      field.Name,
		ForeignKey: field.Name + defaultForeignKeySufix,
		PrimaryKey: defaultPrimaryKey,
	}
	if override != nil {
		if override.ForeignKey != "" {
			rel.ForeignKey = override.ForeignKey
		}
		if override.PrimaryKey != "" {
			rel.PrimaryKey = override.PrimaryKey
		}
	}
	dir := field.Directives.ForName(relationDirective)
	if dir == nil {
		return rel, nil
	}
	for _, arg := range dir.Arguments {
		if arg.Value.Kind == ast.ObjectValue || arg.Value.Kind == ast.Variable {
			return relation{}, newCompileError(ErrUnsupportedValueInScalarPosition, path, arg.Name)
		}
		switch arg.Name {
		case relationArgTable:
			rel.Table = valueToString(arg.Value)
		case relationArgField:
			rel.ForeignKey = valueToString(arg.Value)
		case relationArgReferences:
			rel.PrimaryKey = valueToString(arg.Value)
		default:
			return relation{}, newCompileError(ErrUnknownDirectiveArg, path, arg.Name)
		}
	}
	return rel, nil
}
