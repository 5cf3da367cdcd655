package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/syssam/gql2sql"
	"github.com/syssam/gql2sql/cachetag"
	"github.com/syssam/gql2sql/internal/sqlexec"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/parser"
)

// graphQLRequest is the standard GraphQL-over-HTTP POST body. Variables
// are accepted and decoded but not bound into the compiled statements —
// parameter binding is explicitly out of scope (spec §9 Open Question 5).
type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type graphQLResponse struct {
	Data       map[string]any `json:"data,omitempty"`
	Extensions *extensions    `json:"extensions,omitempty"`
	Errors     []graphQLError `json:"errors,omitempty"`
}

type extensions struct {
	Tags []string `json:"tags"`
}

type graphQLError struct {
	Message string `json:"message"`
}

// Server is the thin HTTP front end: it parses a GraphQL query, compiles
// it, fans the resulting statements out to Postgres concurrently, and
// folds the combined JSON result plus its cache tags into one response.
// It does no query validation beyond what gqlparser's parser performs and
// no connection pooling policy beyond what database/sql already gives.
type Server struct {
	exec *sqlexec.StatsExecutor
	cfg  *configStore
}

// NewServer wires an executor and a live config store into a handler.
func NewServer(exec *sqlexec.StatsExecutor, cfg *configStore) *Server {
	return &Server{exec: exec, cfg: cfg}
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	requestID := uuid.New().String()
	w.Header().Set("X-Request-Id", requestID)
	log := slog.With("request_id", requestID)

	if r.Method != http.MethodPost {
		http.Error(w, "POST only", http.StatusMethodNotAllowed)
		return
	}

	var req graphQLRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, log, http.StatusBadRequest, "decode request", err)
		return
	}

	doc, parseErr := parser.ParseQuery(&ast.Source{Input: req.Query})
	if parseErr != nil {
		writeError(w, log, http.StatusBadRequest, "parse query", parseErr)
		return
	}

	stmts, err := gql2sql.Compile(doc, gql2sql.WithRelationOverrides(relationOverrides(s.cfg.Get())))
	if err != nil {
		writeError(w, log, http.StatusBadRequest, "compile query", err)
		return
	}

	data, err := s.run(r.Context(), stmts)
	if err != nil {
		writeError(w, log, http.StatusInternalServerError, "run query", err)
		return
	}

	tags := make(map[string]struct{})
	for _, v := range data {
		cachetag.Extract(v, tags)
	}

	log.Info("request served", "statements", len(stmts), "tags", len(tags))
	writeJSON(w, http.StatusOK, graphQLResponse{
		Data:       data,
		Extensions: &extensions{Tags: cachetag.Sorted(tags)},
	})
}

// run executes every compiled statement concurrently, one goroutine per
// (label, statement) pair, mirroring the original server's join_all over
// the compiled statement list. The first failure cancels the rest.
func (s *Server) run(ctx context.Context, stmts []gql2sql.Statement) (map[string]any, error) {
	g, ctx := errgroup.WithContext(ctx)
	results := make([]any, len(stmts))
	for i, stmt := range stmts {
		i, stmt := i, stmt
		g.Go(func() error {
			payload, err := s.exec.Run(ctx, stmt.SQL)
			if err != nil {
				return err
			}
			var decoded any
			if len(payload) > 0 {
				if err := json.Unmarshal(payload, &decoded); err != nil {
					return err
				}
			}
			results[i] = decoded
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	data := make(map[string]any, len(stmts))
	for i, stmt := range stmts {
		data[stmt.Name] = results[i]
	}
	return data, nil
}

// relationOverrides converts the hot-reloadable config's relation
// defaults into the shape gql2sql.WithRelationOverrides expects, so a
// config edit takes effect on the very next request without a restart.
func relationOverrides(cfg *Config) map[string]gql2sql.RelationOverride {
	if len(cfg.RelationDefaults) == 0 {
		return nil
	}
	out := make(map[string]gql2sql.RelationOverride, len(cfg.RelationDefaults))
	for path, def := range cfg.RelationDefaults {
		out[path] = gql2sql.RelationOverride{ForeignKey: def.ForeignKey, PrimaryKey: def.PrimaryKey}
	}
	return out
}

func writeError(w http.ResponseWriter, log *slog.Logger, status int, context string, err error) {
	log.Error(context, "error", err)
	writeJSON(w, status, graphQLResponse{Errors: []graphQLError{{Message: err.Error()}}})
}

func writeJSON(w http.ResponseWriter, status int, body graphQLResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
