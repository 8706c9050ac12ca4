package sql

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"
)

// CatalogStats counts the catalog queries run by a Source. It is safe for
// concurrent use.
type CatalogStats struct {
	queries  atomic.Int64
	rows     atomic.Int64
	duration atomic.Int64 // nanoseconds
	slow     atomic.Int64
	failed   atomic.Int64
}

func (s *CatalogStats) record(rows int64, d time.Duration, slow bool, err error) {
	s.queries.Add(1)
	s.rows.Add(rows)
	s.duration.Add(int64(d))
	if slow {
		s.slow.Add(1)
	}
	if err != nil {
		s.failed.Add(1)
	}
}

// Snapshot returns the current counters.
func (s *CatalogStats) Snapshot() StatsSnapshot {
	return StatsSnapshot{
		Queries:  s.queries.Load(),
		Rows:     s.rows.Load(),
		Duration: time.Duration(s.duration.Load()),
		Slow:     s.slow.Load(),
		Failed:   s.failed.Load(),
	}
}

// Reset sets all counters to zero.
func (s *CatalogStats) Reset() {
	s.queries.Store(0)
	s.rows.Store(0)
	s.duration.Store(0)
	s.slow.Store(0)
	s.failed.Store(0)
}

// StatsSnapshot is a point-in-time copy of CatalogStats.
type StatsSnapshot struct {
	Queries  int64
	Rows     int64 // rows scanned
	Duration time.Duration
	Slow     int64
	Failed   int64
}

// Avg returns the average query duration.
func (s StatsSnapshot) Avg() time.Duration {
	if s.Queries == 0 {
		return 0
	}
	return s.Duration / time.Duration(s.Queries)
}

// LogValue implements slog.LogValuer.
func (s StatsSnapshot) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int64("queries", s.Queries),
		slog.Int64("rows", s.Rows),
		slog.Duration("duration", s.Duration),
		slog.Duration("avg", s.Avg()),
		slog.Int64("slow", s.Slow),
		slog.Int64("failed", s.Failed),
	)
}

// SlowQueryHook is called for every catalog query slower than the slow
// threshold of the source.
type SlowQueryHook func(ctx context.Context, query string, args []any, duration time.Duration)
