// Package source persists dashboard samples in DuckDB and serves SQL query
// results as board rows and ranking items.
package source

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	_ "github.com/marcboeker/go-duckdb" // Register DuckDB driver

	"datav/internal/collector"
	"datav/internal/config"
)

// =============================================================================
// STORE
// =============================================================================

// Options holds DuckDB settings.
type Options struct {
	Threads       int           // Number of threads for DuckDB (0 = default)
	MemoryLimitGB int           // Memory limit in GB (0 = default)
	Timeout       time.Duration // Per-call timeout (0 = none)
}

// Option configures the store.
type Option func(*Options)

// WithThreads sets the number of DuckDB threads.
func WithThreads(n int) Option {
	return func(o *Options) { o.Threads = n }
}

// WithMemoryLimit sets the DuckDB memory limit in GB.
func WithMemoryLimit(gb int) Option {
	return func(o *Options) { o.MemoryLimitGB = gb }
}

// WithTimeout bounds every store call.
func WithTimeout(d time.Duration) Option {
	return func(o *Options) { o.Timeout = d }
}

// Store is the DuckDB-backed sample history.
type Store struct {
	db   *sql.DB
	opts Options
}

var ErrClosed = errors.New("store is closed")

// Open connects to DuckDB. An empty dsn opens an in-memory database.
// DSN examples:
//   - "" or ":memory:" for in-memory database
//   - "/path/to/history.db" for file-based database
func Open(dsn string, opts ...Option) (*Store, error) {
	s := &Store{}
	for _, opt := range opts {
		if opt != nil {
			opt(&s.opts)
		}
	}
	if dsn == "" {
		dsn = ":memory:"
	}

	db, err := sql.Open("duckdb", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open duckdb: %w", err)
	}

	ctx, cancel := s.ctx(context.Background())
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping duckdb: %w", err)
	}

	// DuckDB is embedded; serial access keeps writes simple
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)
	s.db = db

	if err := s.configure(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to configure duckdb: %w", err)
	}
	return s, nil
}

func (s *Store) configure(ctx context.Context) error {
	if s.opts.Threads > 0 {
		if _, err := s.db.ExecContext(ctx, fmt.Sprintf("PRAGMA threads=%d", s.opts.Threads)); err != nil {
			return fmt.Errorf("setting threads: %w", err)
		}
	}
	if s.opts.MemoryLimitGB > 0 {
		if _, err := s.db.ExecContext(ctx, fmt.Sprintf("PRAGMA memory_limit='%dGB'", s.opts.MemoryLimitGB)); err != nil {
			return fmt.Errorf("setting memory limit: %w", err)
		}
	}
	return nil
}

func (s *Store) ctx(parent context.Context) (context.Context, context.CancelFunc) {
	if s.opts.Timeout > 0 {
		return context.WithTimeout(parent, s.opts.Timeout)
	}
	return context.WithCancel(parent)
}

// DB returns the underlying sql.DB instance.
func (s *Store) DB() *sql.DB { return s.db }

func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// =============================================================================
// SAMPLE HISTORY
// =============================================================================

var schema = []string{
	`CREATE TABLE IF NOT EXISTS samples (
		ts      TIMESTAMP NOT NULL,
		cpu     DOUBLE,
		ram     DOUBLE,
		swap    DOUBLE,
		disk    DOUBLE,
		load1   DOUBLE,
		status  VARCHAR
	)`,
	`CREATE TABLE IF NOT EXISTS core_samples (
		ts    TIMESTAMP NOT NULL,
		core  INTEGER,
		usage DOUBLE
	)`,
}

// Metric names a sample column that Series can read.
type Metric string

const (
	MetricCPU  Metric = "cpu"
	MetricRAM  Metric = "ram"
	MetricSwap Metric = "swap"
	MetricDisk Metric = "disk"
	MetricLoad Metric = "load1"
)

func (m Metric) valid() bool {
	switch m {
	case MetricCPU, MetricRAM, MetricSwap, MetricDisk, MetricLoad:
		return true
	}
	return false
}

// Migrate creates the history tables.
func (s *Store) Migrate(ctx context.Context) error {
	if s.db == nil {
		return ErrClosed
	}
	ctx, cancel := s.ctx(ctx)
	defer cancel()
	for _, stmt := range schema {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

// InsertSample stores one snapshot and its per-core usage.
func (s *Store) InsertSample(ctx context.Context, stats collector.RawStats, status string) error {
	if s.db == nil {
		return ErrClosed
	}
	ctx, cancel := s.ctx(ctx)
	defer cancel()

	ts := stats.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO samples (ts, cpu, ram, swap, disk, load1, status) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		ts, stats.CPUUsage, stats.RAMUsage, stats.SwapUsage, stats.DiskUsage, stats.LoadAvg1, status,
	); err != nil {
		return fmt.Errorf("insert sample: %w", err)
	}
	for i, usage := range stats.CPUPerCore {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO core_samples (ts, core, usage) VALUES (?, ?, ?)`, ts, i, usage,
		); err != nil {
			return fmt.Errorf("insert core sample: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// Series returns the newest limit values of metric, oldest first.
func (s *Store) Series(ctx context.Context, metric Metric, limit int) ([]float64, error) {
	if s.db == nil {
		return nil, ErrClosed
	}
	if !metric.valid() {
		return nil, fmt.Errorf("unknown metric %q", metric)
	}
	ctx, cancel := s.ctx(ctx)
	defer cancel()

	q := fmt.Sprintf(
		`SELECT v FROM (SELECT ts, %s AS v FROM samples ORDER BY ts DESC LIMIT ?) ORDER BY ts`,
		string(metric))
	rows, err := s.db.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, fmt.Errorf("series %s: %w", metric, err)
	}
	defer rows.Close()

	var out []float64
	for rows.Next() {
		var v sql.NullFloat64
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("scan series: %w", err)
		}
		out = append(out, v.Float64)
	}
	return out, rows.Err()
}

// CoreAverages ranks cores by their mean usage over the stored history.
func (s *Store) CoreAverages(ctx context.Context) ([]config.Item, error) {
	return s.Ranking(ctx,
		`SELECT 'core ' || CAST(core AS VARCHAR), round(avg(usage), 1) FROM core_samples GROUP BY core ORDER BY core`)
}

// Count returns the number of stored samples.
func (s *Store) Count(ctx context.Context) (int, error) {
	if s.db == nil {
		return 0, ErrClosed
	}
	ctx, cancel := s.ctx(ctx)
	defer cancel()
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM samples`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count: %w", err)
	}
	return n, nil
}

// Prune keeps only the newest keep samples.
func (s *Store) Prune(ctx context.Context, keep int) error {
	if s.db == nil {
		return ErrClosed
	}
	if keep <= 0 {
		return nil
	}
	ctx, cancel := s.ctx(ctx)
	defer cancel()

	var cutoff sql.NullTime
	err := s.db.QueryRowContext(ctx,
		`SELECT ts FROM samples ORDER BY ts DESC LIMIT 1 OFFSET ?`, keep-1).Scan(&cutoff)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("prune: %w", err)
	}
	if !cutoff.Valid {
		return nil
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM samples WHERE ts < ?`, cutoff.Time); err != nil {
		return fmt.Errorf("prune samples: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM core_samples WHERE ts < ?`, cutoff.Time); err != nil {
		return fmt.Errorf("prune core samples: %w", err)
	}
	return nil
}

// =============================================================================
// QUERY SOURCES
// =============================================================================

// Table runs an arbitrary query and returns its column names and rows as
// display strings, ready for a scroll board.
func (s *Store) Table(ctx context.Context, query string, args ...any) ([]string, [][]string, error) {
	if s.db == nil {
		return nil, nil, ErrClosed
	}
	ctx, cancel := s.ctx(ctx)
	defer cancel()

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, nil, fmt.Errorf("columns: %w", err)
	}

	var out [][]string
	for rows.Next() {
		vals := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, nil, fmt.Errorf("scan: %w", err)
		}
		row := make([]string, len(cols))
		for i, v := range vals {
			row[i] = display(v)
		}
		out = append(out, row)
	}
	return cols, out, rows.Err()
}

// Ranking runs a query whose first two columns are a name and a number.
func (s *Store) Ranking(ctx context.Context, query string, args ...any) ([]config.Item, error) {
	if s.db == nil {
		return nil, ErrClosed
	}
	ctx, cancel := s.ctx(ctx)
	defer cancel()

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ranking query: %w", err)
	}
	defer rows.Close()

	var items []config.Item
	for rows.Next() {
		var name sql.NullString
		var value sql.NullFloat64
		if err := rows.Scan(&name, &value); err != nil {
			return nil, fmt.Errorf("scan ranking: %w", err)
		}
		items = append(items, config.Item{Name: name.String, Value: value.Float64})
	}
	return items, rows.Err()
}

func display(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case []byte:
		return string(x)
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case time.Time:
		return x.Format("2006-01-02 15:04:05")
	default:
		return fmt.Sprint(x)
	}
}
