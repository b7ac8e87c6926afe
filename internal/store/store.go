package store

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/wesleyorama2/harstat/internal/metrics"
	"github.com/wesleyorama2/harstat/pkg/jsonpath"
)

// Source kinds accepted by Open.
const (
	KindFile   = "file"
	KindSQLite = "sqlite"
)

var (
	// ErrUnknownKind is returned by Open for an unsupported source kind.
	ErrUnknownKind = errors.New("unknown source kind")

	// ErrEmptyLabel is returned when a query names no label.
	ErrEmptyLabel = errors.New("query label is empty")
)

// Query selects the result documents of one label, optionally restricted
// to an inclusive timestamp window. Empty From or To leaves that side
// open. Fields lists the top-level fields to decode; empty means all.
type Query struct {
	Label  string
	From   string
	To     string
	Fields []string
}

// Validate checks the query before it reaches a source.
func (q Query) Validate() error {
	if strings.TrimSpace(q.Label) == "" {
		return ErrEmptyLabel
	}
	return nil
}

// matches reports whether a document with the given label and timestamp
// falls inside the query.
func (q Query) matches(label, timestamp string) bool {
	if label != q.Label {
		return false
	}
	if q.From != "" && timestamp < q.From {
		return false
	}
	if q.To != "" && timestamp > q.To {
		return false
	}
	return true
}

// Source reads stored performance results.
type Source interface {
	// Documents returns the matching documents ordered by timestamp.
	Documents(ctx context.Context, q Query) ([]metrics.Document, error)
	// Labels returns every distinct label, sorted.
	Labels(ctx context.Context) ([]string, error)
	// Timestamps returns the timestamps recorded for label, ascending.
	Timestamps(ctx context.Context, label string) ([]string, error)
	Close() error
}

// Open opens a source of the given kind. An empty kind is inferred from
// the file extension: .db, .sqlite and .sqlite3 open SQLite, anything
// else is read as a JSON file.
func Open(kind, path string, log *zap.Logger) (Source, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if kind == "" {
		kind = KindFromPath(path)
	}

	switch kind {
	case KindFile:
		return OpenFile(path, log)
	case KindSQLite:
		return OpenSQLite(path, log)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
}

// KindFromPath infers a source kind from a file name.
func KindFromPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		return KindSQLite
	default:
		return KindFile
	}
}

// project decodes the requested fields of one raw document.
func project(raw []byte, fields []string) (metrics.Document, error) {
	values, err := jsonpath.Project(raw, fields)
	if err != nil {
		return nil, err
	}
	return metrics.Document(values), nil
}
