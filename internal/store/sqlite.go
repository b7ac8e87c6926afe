package store

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/wesleyorama2/harstat/internal/metrics"
)

// SQLiteSource serves results from the results table of a SQLite database.
// Each row holds one JSON document.
type SQLiteSource struct {
	db  *sql.DB
	log *zap.Logger
}

// OpenSQLite opens (or creates) the database at path and makes sure the
// results table exists. The caller must call Close.
func OpenSQLite(path string, log *zap.Logger) (*SQLiteSource, error) {
	if log == nil {
		log = zap.NewNop()
	}

	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	s := &SQLiteSource{db: db, log: log}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("run migration: %w", err)
	}

	log.Debug("sqlite source opened", zap.String("path", path))
	return s, nil
}

func (s *SQLiteSource) migrate() error {
	const stmt = `
CREATE TABLE IF NOT EXISTS results (
    id        INTEGER PRIMARY KEY,
    label     TEXT NOT NULL,
    timestamp TEXT NOT NULL,
    document  TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_results_label_timestamp ON results(label, timestamp);
`
	if _, err := s.db.Exec(stmt); err != nil {
		return fmt.Errorf("create results table: %w", err)
	}
	return nil
}

// Documents implements Source.
func (s *SQLiteSource) Documents(ctx context.Context, q Query) ([]metrics.Document, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	const stmt = `
SELECT timestamp, document FROM results
WHERE label = ?
  AND (? = '' OR timestamp >= ?)
  AND (? = '' OR timestamp <= ?)
ORDER BY timestamp, id`

	rows, err := s.db.QueryContext(ctx, stmt, q.Label, q.From, q.From, q.To, q.To)
	if err != nil {
		return nil, fmt.Errorf("query results: %w", err)
	}
	defer rows.Close()

	var docs []metrics.Document
	for rows.Next() {
		var timestamp, raw string
		if err := rows.Scan(&timestamp, &raw); err != nil {
			return nil, fmt.Errorf("scan result: %w", err)
		}
		doc, err := project([]byte(raw), q.Fields)
		if err != nil {
			return nil, fmt.Errorf("project %s at %s: %w", q.Label, timestamp, err)
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate results: %w", err)
	}

	s.log.Debug("documents loaded",
		zap.String("label", q.Label),
		zap.String("from", q.From),
		zap.String("to", q.To),
		zap.Int("count", len(docs)))
	return docs, nil
}

// Labels implements Source.
func (s *SQLiteSource) Labels(ctx context.Context) ([]string, error) {
	return s.strings(ctx, `SELECT DISTINCT label FROM results ORDER BY label`)
}

// Timestamps implements Source.
func (s *SQLiteSource) Timestamps(ctx context.Context, label string) ([]string, error) {
	return s.strings(ctx, `SELECT timestamp FROM results WHERE label = ? ORDER BY timestamp, id`, label)
}

func (s *SQLiteSource) strings(ctx context.Context, stmt string, args ...any) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// Close shuts down the database connection.
func (s *SQLiteSource) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
