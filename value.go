package gql2sql

import (
	"strings"

	"github.com/vektah/gqlparser/v2/ast"

	"github.com/syssam/gql2sql/sqlast"
)

// lowerValue converts a single GraphQL scalar/enum/variable value into a
// SQL Value node (spec §4.A). List and object values are out of contract
// in scalar position and raise ErrUnsupportedValueInScalarPosition.
func lowerValue(path string, v *ast.Value) (sqlast.Value, error) {
	switch v.Kind {
	case ast.Variable:
		return sqlast.Placeholder{Name: v.Raw}, nil
	case ast.NullValue:
		return sqlast.Null{}, nil
	case ast.StringValue, ast.BlockValue:
		return sqlast.SingleQuotedString{Text: v.Raw}, nil
	case ast.IntValue, ast.FloatValue:
		return sqlast.Number{Text: v.Raw}, nil
	case ast.BooleanValue:
		return sqlast.Boolean{Value: v.Raw == "true"}, nil
	case ast.EnumValue:
		return sqlast.SingleQuotedString{Text: v.Raw}, nil
	case ast.ListValue, ast.ObjectValue:
		return nil, newCompileError(ErrUnsupportedValueInScalarPosition, path, "")
	default:
		internalError("unreachable GraphQL value kind %v at %s", v.Kind, path)
		return nil, nil
	}
}

// valueToString flattens a GraphQL value to its textual representation,
// used for @relation directive arguments (spec §4.D, §9): enum and list
// values become comma-joined text. This is a known wart the spec calls out
// explicitly and asks implementers to preserve rather than fix.
func valueToString(v *ast.Value) string {
	switch v.Kind {
	case ast.StringValue, ast.BlockValue, ast.IntValue, ast.FloatValue, ast.BooleanValue, ast.EnumValue:
		return v.Raw
	case ast.NullValue:
		return "null"
	case ast.ListValue:
		parts := make([]string, len(v.Children))
		for i, c := range v.Children {
			parts[i] = valueToString(c.Value)
		}
		return strings.Join(parts, ",")
	default:
		internalError("unreachable GraphQL value kind %v in valueToString", v.Kind)
		return ""
	}
}
