package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/gql2sql/internal/sqlexec"
)

func newTestServer(t *testing.T) (*Server, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	exec := sqlexec.NewStatsExecutor(sqlexec.NewExecutor(db))
	store := newConfigStore(defaultConfig())
	return NewServer(exec, store), mock
}

func postGraphQL(t *testing.T, srv *Server, query string) *httptest.ResponseRecorder {
	t.Helper()
	body := strings.NewReader(`{"query": ` + jsonQuote(query) + `}`)
	req := httptest.NewRequest(http.MethodPost, "/graphql", body)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func jsonQuote(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}

func TestServeHTTPRunsCompiledStatementAndExtractsTags(t *testing.T) {
	srv, mock := newTestServer(t)
	mock.ExpectQuery(`SELECT`).WillReturnRows(
		sqlmock.NewRows([]string{"root"}).AddRow([]byte(`[{"__typename":"App","id":"1"}]`)))

	rec := postGraphQL(t, srv, `{ App { id } }`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp graphQLResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Contains(t, resp.Data, "App")
	require.NotNil(t, resp.Extensions)
	assert.Equal(t, []string{"type:App:id:1"}, resp.Extensions.Tags)
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))
}

func TestServeHTTPAppliesConfiguredRelationOverride(t *testing.T) {
	srv, mock := newTestServer(t)
	srv.cfg.v.Store(&Config{RelationDefaults: map[string]RelationDefault{
		"App.components": {ForeignKey: "ownerId", PrimaryKey: "uuid"},
	}})
	mock.ExpectQuery(`"components"\."ownerId" = "base"\."uuid"`).WillReturnRows(
		sqlmock.NewRows([]string{"root"}).AddRow([]byte(`[]`)))

	rec := postGraphQL(t, srv, `{ App { id components { id } } }`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestServeHTTPRejectsNonPost(t *testing.T) {
	srv, _ := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/graphql", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestServeHTTPReturnsCompileErrorAsGraphQLError(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := postGraphQL(t, srv, `{ App { ...Fields } } fragment Fields on App { id }`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp graphQLResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Errors, 1)
}
