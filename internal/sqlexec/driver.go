// Package sqlexec runs compiled statements against PostgreSQL and scans
// their single JSON-valued output column back into Go.
package sqlexec

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	_ "github.com/lib/pq"

	"github.com/syssam/gql2sql/sqlast"
)

var validIdentifierRe = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_.]*$`)

func isValidIdentifier(s string) bool {
	return s != "" && len(s) <= 128 && validIdentifierRe.MatchString(s)
}

func escapeStringValue(s string) string {
	if !strings.ContainsAny(s, `'\`) {
		return s
	}
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "'", "''")
	return s
}

// Executor runs a sqlast.Statement against a PostgreSQL connection pool
// and returns the raw bytes of its single JSON output column.
type Executor struct {
	db *sql.DB
}

// Open opens a PostgreSQL connection pool via lib/pq.
func Open(dataSourceName string) (*Executor, error) {
	db, err := sql.Open("postgres", dataSourceName)
	if err != nil {
		return nil, err
	}
	return &Executor{db: db}, nil
}

// NewExecutor wraps an already-open *sql.DB.
func NewExecutor(db *sql.DB) *Executor {
	return &Executor{db: db}
}

// DB returns the underlying connection pool.
func (e *Executor) DB() *sql.DB { return e.db }

// Close closes the underlying connection pool.
func (e *Executor) Close() error { return e.db.Close() }

// Run executes stmt and returns the bytes of its single JSON-valued
// output column (the alias every statement gql2sql emits carries).
func (e *Executor) Run(ctx context.Context, stmt *sqlast.Statement) ([]byte, error) {
	ex, cf, err := e.maySetVars(ctx)
	if err != nil {
		return nil, fmt.Errorf("sqlexec: set session vars: %w", err)
	}
	if cf != nil {
		defer cf()
	}
	row := ex.QueryRowContext(ctx, stmt.String())
	var payload []byte
	if err := row.Scan(&payload); err != nil {
		return nil, fmt.Errorf("sqlexec: run: %w", err)
	}
	return payload, nil
}

type ctxVarsKey struct{}

type sessionVar struct{ name, value string }

// WithVar returns a context carrying a Postgres session variable
// (e.g. a tenant id for row-level security) to be set before the next
// statement Run executes, and reset afterward.
func WithVar(ctx context.Context, name, value string) context.Context {
	vars, _ := ctx.Value(ctxVarsKey{}).([]sessionVar)
	vars = append(vars, sessionVar{name, value})
	return context.WithValue(ctx, ctxVarsKey{}, vars)
}

// WithIntVar calls WithVar with the decimal string form of value.
func WithIntVar(ctx context.Context, name string, value int) context.Context {
	return WithVar(ctx, name, strconv.Itoa(value))
}

type queryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (e *Executor) maySetVars(ctx context.Context) (queryRower, func(), error) {
	vars, _ := ctx.Value(ctxVarsKey{}).([]sessionVar)
	if len(vars) == 0 {
		return e.db, nil, nil
	}
	conn, err := e.db.Conn(ctx)
	if err != nil {
		return nil, nil, err
	}
	var reset []string
	for _, v := range vars {
		if !isValidIdentifier(v.name) {
			_ = conn.Close()
			return nil, nil, fmt.Errorf("sqlexec: invalid session variable name %q", v.name)
		}
		if _, err := conn.ExecContext(ctx, fmt.Sprintf("SET %s = '%s'", v.name, escapeStringValue(v.value))); err != nil {
			_ = conn.Close()
			return nil, nil, err
		}
		reset = append(reset, fmt.Sprintf("RESET %s", v.name))
	}
	return conn, func() {
		cleanupCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		for _, q := range reset {
			_, _ = conn.ExecContext(cleanupCtx, q)
		}
		_ = conn.Close()
	}, nil
}
