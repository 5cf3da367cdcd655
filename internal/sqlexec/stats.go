package sqlexec

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/syssam/gql2sql/sqlast"
)

// QueryStats holds running totals for statements run through a
// StatsExecutor.
type QueryStats struct {
	TotalQueries  atomic.Int64
	TotalDuration atomic.Int64 // nanoseconds
	SlowQueries   atomic.Int64
	Errors        atomic.Int64
}

// Stats returns a point-in-time snapshot.
func (s *QueryStats) Stats() StatsSnapshot {
	return StatsSnapshot{
		TotalQueries:  s.TotalQueries.Load(),
		TotalDuration: time.Duration(s.TotalDuration.Load()),
		SlowQueries:   s.SlowQueries.Load(),
		Errors:        s.Errors.Load(),
	}
}

// StatsSnapshot is an immutable copy of QueryStats for reporting.
type StatsSnapshot struct {
	TotalQueries  int64
	TotalDuration time.Duration
	SlowQueries   int64
	Errors        int64
}

// AvgQueryDuration returns the mean duration across every recorded query.
func (s StatsSnapshot) AvgQueryDuration() time.Duration {
	if s.TotalQueries == 0 {
		return 0
	}
	return s.TotalDuration / time.Duration(s.TotalQueries)
}

func (s StatsSnapshot) String() string {
	return fmt.Sprintf("queries=%d duration=%s avg=%s slow=%d errors=%d",
		s.TotalQueries, s.TotalDuration, s.AvgQueryDuration(), s.SlowQueries, s.Errors)
}

// SlowQueryHook is called whenever a statement exceeds the slow threshold.
type SlowQueryHook func(ctx context.Context, query string, duration time.Duration)

// StatsExecutor wraps an Executor with statistics collection and optional
// slow-query logging, grounded on the teacher's query-stats middleware.
type StatsExecutor struct {
	*Executor
	stats         *QueryStats
	slowThreshold time.Duration
	slowHook      SlowQueryHook
	mu            sync.RWMutex
}

// StatsOption configures a StatsExecutor.
type StatsOption func(*StatsExecutor)

// WithSlowThreshold sets the duration above which a query counts as slow.
// Default is 100ms.
func WithSlowThreshold(d time.Duration) StatsOption {
	return func(s *StatsExecutor) { s.slowThreshold = d }
}

// WithSlowQueryLog logs slow queries through log/slog at warn level.
func WithSlowQueryLog() StatsOption {
	return func(s *StatsExecutor) {
		s.slowHook = func(_ context.Context, query string, duration time.Duration) {
			slog.Warn("slow query", "duration", duration, "query", query)
		}
	}
}

// NewStatsExecutor wraps exec with statistics collection.
func NewStatsExecutor(exec *Executor, opts ...StatsOption) *StatsExecutor {
	s := &StatsExecutor{Executor: exec, stats: &QueryStats{}, slowThreshold: 100 * time.Millisecond}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// QueryStats returns the underlying counters.
func (e *StatsExecutor) QueryStats() *QueryStats { return e.stats }

// Run executes stmt and records its outcome in QueryStats.
func (e *StatsExecutor) Run(ctx context.Context, stmt *sqlast.Statement) ([]byte, error) {
	start := time.Now()
	payload, err := e.Executor.Run(ctx, stmt)
	duration := time.Since(start)

	e.stats.TotalQueries.Add(1)
	e.stats.TotalDuration.Add(int64(duration))
	if err != nil {
		e.stats.Errors.Add(1)
	}

	e.mu.RLock()
	threshold, hook := e.slowThreshold, e.slowHook
	e.mu.RUnlock()
	if duration > threshold {
		e.stats.SlowQueries.Add(1)
		if hook != nil {
			hook(ctx, stmt.String(), duration)
		}
	}
	return payload, err
}
