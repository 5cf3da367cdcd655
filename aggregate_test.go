package gql2sql

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vektah/gqlparser/v2/ast"

	"github.com/syssam/gql2sql/sqlast"
)

func TestBuildAggregateQueryCountAndMin(t *testing.T) {
	doc := parseDoc(t, `query { Component_aggregate(filter: { appId: { eq: "X" } }) { count min { createdAt } } }`)
	field := firstField(t, doc)

	args, err := parseFieldArgs(field.Name, field.Arguments)
	require.NoError(t, err)

	query, err := buildAggregateQuery(field.Name, "Component", args, field.SelectionSet)
	require.NoError(t, err)

	stmt := &sqlast.Statement{Query: query}
	assert.Equal(t,
		`SELECT json_build_object('count', COUNT(*), 'min', json_build_object('createdAt', MIN("createdAt"))) AS "root" FROM (SELECT * FROM "Component" WHERE "appId" = 'X') AS "base"`,
		stmt.String())
}

func TestAggregateOperatorUnknownFieldIsNoop(t *testing.T) {
	doc := parseDoc(t, `query { Component_aggregate { bogus } }`)
	field := firstField(t, doc)

	child, ok := field.SelectionSet[0].(*ast.Field)
	require.True(t, ok)

	pair, err := aggregateOperator(field.Name, child)
	require.NoError(t, err)
	assert.Nil(t, pair)
}
