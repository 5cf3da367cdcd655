package gql2sql

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompileSimpleFilteredList(t *testing.T) {
	doc := parseDoc(t, `query App { App(filter: { id: { eq: "X" } }, order: { name: ASC }) { id } }`)

	stmts, err := Compile(doc)
	require.NoError(t, err)
	require.Len(t, stmts, 1)
	assert.Equal(t, "App", stmts[0].Name)
	assert.Equal(t,
		`SELECT coalesce(json_agg(row_to_json((SELECT "root" FROM (SELECT "base"."id") AS "root"))), '[]') AS "root" FROM (SELECT * FROM "App" WHERE "id" = 'X' ORDER BY "name" ASC) AS "base"`,
		stmts[0].SQL.String())
}

func TestCompileNestedRelationWithOverriddenKeys(t *testing.T) {
	doc := parseDoc(t, `{ App { id components @relation(table: "Component", field: ["appId"], references: ["id"]) { id } } }`)

	stmts, err := Compile(doc)
	require.NoError(t, err)
	require.Len(t, stmts, 1)
	sql := stmts[0].SQL.String()
	assert.Contains(t, sql, `WHERE "Component"."appId" = "base"."id"`)
	assert.Contains(t, sql, `AS "base.Component"`)
	assert.Contains(t, sql, `AS "root.Component"`)
	assert.Contains(t, sql, `LEFT JOIN LATERAL`)
	assert.Contains(t, sql, `ON ('true')`)
}

func TestCompileAggregateField(t *testing.T) {
	doc := parseDoc(t, `{ Component_aggregate(filter: { appId: { eq: "X" } }) { count min { createdAt } } }`)

	stmts, err := Compile(doc)
	require.NoError(t, err)
	require.Len(t, stmts, 1)
	assert.Equal(t, "Component_aggregate", stmts[0].Name)
	assert.Equal(t,
		`SELECT json_build_object('count', COUNT(*), 'min', json_build_object('createdAt', MIN("createdAt"))) AS "root" FROM (SELECT * FROM "Component" WHERE "appId" = 'X') AS "base"`,
		stmts[0].SQL.String())
}

func TestCompilePagination(t *testing.T) {
	doc := parseDoc(t, `{ Foo(first: 10, after: 20) { id } }`)

	stmts, err := Compile(doc)
	require.NoError(t, err)
	require.Len(t, stmts, 1)
	assert.Contains(t, stmts[0].SQL.String(), `LIMIT 10 OFFSET 20`)
}

func TestCompileLikePredicate(t *testing.T) {
	doc := parseDoc(t, `{ Foo(filter: { name: { like: "a%" } }) { id } }`)

	stmts, err := Compile(doc)
	require.NoError(t, err)
	require.Len(t, stmts, 1)
	assert.Contains(t, stmts[0].SQL.String(), `"name" LIKE 'a%'`)
}

func TestCompileSkipsMutationsAndSubscriptions(t *testing.T) {
	doc := parseDoc(t, `mutation { createApp(name: "X") { id } }`)

	stmts, err := Compile(doc)
	require.NoError(t, err)
	assert.Empty(t, stmts)

	doc = parseDoc(t, `subscription { onApp { id } }`)

	stmts, err = Compile(doc)
	require.NoError(t, err)
	assert.Empty(t, stmts)
}

func TestCompileMultipleTopLevelFieldsPreserveOrder(t *testing.T) {
	doc := parseDoc(t, `{ First { id } Second { id } }`)

	stmts, err := Compile(doc)
	require.NoError(t, err)
	require.Len(t, stmts, 2)
	assert.Equal(t, "First", stmts[0].Name)
	assert.Equal(t, "Second", stmts[1].Name)
}

func TestCompileFragmentSpreadIsUnsupported(t *testing.T) {
	doc := parseDoc(t, `{ App { ...Fields } } fragment Fields on App { id }`)

	_, err := Compile(doc)
	require.Error(t, err)
	assert.True(t, IsUnsupportedSelection(err))
}

func TestCompileDispatchesAggregateSuffix(t *testing.T) {
	doc := parseDoc(t, `{ App_aggregate { count } }`)

	stmts, err := Compile(doc)
	require.NoError(t, err)
	require.Len(t, stmts, 1)
	assert.Contains(t, stmts[0].SQL.String(), "json_build_object")
}

func TestCompileAppliesRelationOverride(t *testing.T) {
	doc := parseDoc(t, `{ App { id components { id } } }`)

	stmts, err := Compile(doc, WithRelationOverrides(map[string]RelationOverride{
		"App.components": {ForeignKey: "ownerId", PrimaryKey: "uuid"},
	}))
	require.NoError(t, err)
	require.Len(t, stmts, 1)
	sql := stmts[0].SQL.String()
	assert.Contains(t, sql, `WHERE "components"."ownerId" = "base"."uuid"`)
}

func TestCompileDirectiveOverridesWinOverRelationOverride(t *testing.T) {
	doc := parseDoc(t, `{ App { id components @relation(field: ["appId"]) { id } } }`)

	stmts, err := Compile(doc, WithRelationOverrides(map[string]RelationOverride{
		"App.components": {ForeignKey: "ownerId", PrimaryKey: "uuid"},
	}))
	require.NoError(t, err)
	require.Len(t, stmts, 1)
	sql := stmts[0].SQL.String()
	assert.Contains(t, sql, `WHERE "components"."appId" = "base"."uuid"`)
}

func TestCompileRejectsUnsafeRelationDirectiveIdentifier(t *testing.T) {
	doc := parseDoc(t, `{ App { components @relation(table: "Component\"; DROP TABLE App; --") { id } } }`)

	_, err := Compile(doc)
	require.Error(t, err)
	assert.True(t, IsUnsafeIdentifier(err))
}
