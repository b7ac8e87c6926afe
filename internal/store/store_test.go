package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/wesleyorama2/harstat/internal/metrics"
)

// sourceContract runs the behaviour every Source must share against a
// source loaded with testdata/results.ndjson.
func sourceContract(t *testing.T, src Source) {
	t.Helper()
	ctx := context.Background()

	t.Run("labels", func(t *testing.T) {
		labels, err := src.Labels(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"checkout", "homepage"}, labels)
	})

	t.Run("timestamps ascending", func(t *testing.T) {
		ts, err := src.Timestamps(ctx, "homepage")
		require.NoError(t, err)
		assert.Equal(t, []string{
			"2024-01-01 09:00:00",
			"2024-01-02 09:00:00",
			"2024-01-03 09:00:00",
		}, ts)
	})

	t.Run("timestamps of unknown label", func(t *testing.T) {
		ts, err := src.Timestamps(ctx, "nope")
		require.NoError(t, err)
		assert.Empty(t, ts)
	})

	t.Run("documents ordered by timestamp", func(t *testing.T) {
		docs, err := src.Documents(ctx, Query{Label: "homepage", Fields: []string{"full_load_time"}})
		require.NoError(t, err)
		assert.Equal(t, []metrics.Document{
			{"full_load_time": 1200.0},
			{"full_load_time": 1350.0},
			{"full_load_time": 1500.0},
		}, docs)
	})

	t.Run("window is inclusive", func(t *testing.T) {
		docs, err := src.Documents(ctx, Query{
			Label:  "homepage",
			From:   "2024-01-02 09:00:00",
			To:     "2024-01-03 09:00:00",
			Fields: []string{"requests"},
		})
		require.NoError(t, err)
		assert.Equal(t, []metrics.Document{{"requests": 39.0}, {"requests": 40.0}}, docs)
	})

	t.Run("open ended window", func(t *testing.T) {
		docs, err := src.Documents(ctx, Query{Label: "homepage", To: "2024-01-01 23:59:59", Fields: []string{"requests"}})
		require.NoError(t, err)
		assert.Len(t, docs, 1)
	})

	t.Run("projection keeps only requested fields", func(t *testing.T) {
		docs, err := src.Documents(ctx, Query{Label: "checkout", Fields: []string{"ps_scores", "total_size"}})
		require.NoError(t, err)
		require.Len(t, docs, 1)
		assert.Equal(t, metrics.Document{
			"ps_scores":  map[string]any{"Total Score": 70.0},
			"total_size": 1200.0,
		}, docs[0])

		score, err := docs[0].Sample(mustLookup(t, metrics.PageSpeedScore))
		require.NoError(t, err)
		assert.Equal(t, 70.0, score)
	})

	t.Run("empty label", func(t *testing.T) {
		_, err := src.Documents(ctx, Query{})
		assert.ErrorIs(t, err, ErrEmptyLabel)
	})

	t.Run("no match", func(t *testing.T) {
		docs, err := src.Documents(ctx, Query{Label: "homepage", From: "2025-01-01 00:00:00"})
		require.NoError(t, err)
		assert.Empty(t, docs)
	})
}

func mustLookup(t *testing.T, id string) metrics.Descriptor {
	t.Helper()
	d, ok := metrics.Lookup(id)
	require.True(t, ok)
	return d
}

func TestFileSource_NDJSON(t *testing.T) {
	src, err := OpenFile(filepath.Join("testdata", "results.ndjson"), zap.NewNop())
	require.NoError(t, err)
	defer src.Close()

	sourceContract(t, src)
}

func TestFileSource_JSONArray(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("testdata", "results.ndjson"))
	require.NoError(t, err)

	var array []byte
	array = append(array, '[')
	for i, line := range splitLines(data) {
		if i > 0 {
			array = append(array, ',')
		}
		array = append(array, line...)
	}
	array = append(array, ']')

	path := filepath.Join(t.TempDir(), "results.json")
	require.NoError(t, os.WriteFile(path, array, 0o644))

	src, err := OpenFile(path, nil)
	require.NoError(t, err)
	defer src.Close()

	sourceContract(t, src)
}

func TestFileSource_Empty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.json")
	require.NoError(t, os.WriteFile(path, []byte("\n"), 0o644))

	src, err := OpenFile(path, nil)
	require.NoError(t, err)

	labels, err := src.Labels(context.Background())
	require.NoError(t, err)
	assert.Empty(t, labels)
}

func TestFileSource_InvalidDocument(t *testing.T) {
	tests := []struct {
		name    string
		content string
		errText string
	}{
		{
			name:    "missing timestamp",
			content: `{"label": "homepage", "full_load_time": 1}`,
			errText: "document 1",
		},
		{
			name:    "metric of wrong type",
			content: `{"label": "a", "timestamp": "t"}` + "\n" + `{"label": "a", "timestamp": "t", "requests": [1]}`,
			errText: "document 2",
		},
		{
			name:    "broken json",
			content: `{"label": "a",`,
			errText: "decode document 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "bad.ndjson")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))

			_, err := OpenFile(path, nil)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errText)
		})
	}
}

func TestFileSource_NullMetric(t *testing.T) {
	path := filepath.Join(t.TempDir(), "null.ndjson")
	content := `{"label": "a", "timestamp": "t", "full_load_time": 900, "start_render_time": null}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	src, err := OpenFile(path, nil)
	require.NoError(t, err)
	defer src.Close()

	docs, err := src.Documents(context.Background(), Query{
		Label:  "a",
		Fields: []string{"full_load_time", "start_render_time"},
	})
	require.NoError(t, err)
	assert.Equal(t, []metrics.Document{
		{"full_load_time": 900.0, "start_render_time": nil},
	}, docs)
}

func TestOpenFile_Missing(t *testing.T) {
	_, err := OpenFile(filepath.Join(t.TempDir(), "missing.json"), nil)
	assert.Error(t, err)
}

func TestSQLiteSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.db")

	src, err := OpenSQLite(path, zap.NewNop())
	require.NoError(t, err)
	defer src.Close()

	data, err := os.ReadFile(filepath.Join("testdata", "results.ndjson"))
	require.NoError(t, err)

	file, err := parseFile(data, nil)
	require.NoError(t, err)
	for _, r := range file.records {
		_, err := src.db.Exec(`INSERT INTO results (label, timestamp, document) VALUES (?, ?, ?)`,
			r.label, r.timestamp, string(r.raw))
		require.NoError(t, err)
	}

	sourceContract(t, src)
}

func TestSQLiteSource_EmptyDatabase(t *testing.T) {
	src, err := OpenSQLite(filepath.Join(t.TempDir(), "empty.db"), nil)
	require.NoError(t, err)
	defer src.Close()

	labels, err := src.Labels(context.Background())
	require.NoError(t, err)
	assert.Empty(t, labels)
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()

	src, err := Open("", filepath.Join(dir, "results.sqlite"), nil)
	require.NoError(t, err)
	assert.IsType(t, &SQLiteSource{}, src)
	require.NoError(t, src.Close())

	src, err = Open(KindFile, filepath.Join("testdata", "results.ndjson"), nil)
	require.NoError(t, err)
	assert.IsType(t, &FileSource{}, src)
	require.NoError(t, src.Close())

	_, err = Open("postgres", "db", nil)
	assert.ErrorIs(t, err, ErrUnknownKind)
}

func TestKindFromPath(t *testing.T) {
	tests := map[string]string{
		"results.db":      KindSQLite,
		"results.SQLITE3": KindSQLite,
		"results.ndjson":  KindFile,
		"results.json":    KindFile,
		"results":         KindFile,
	}
	for path, want := range tests {
		assert.Equal(t, want, KindFromPath(path), path)
	}
}

func splitLines(data []byte) [][]byte {
	var lines [][]byte
	start := 0
	for i, b := range data {
		if b == '\n' {
			if i > start {
				lines = append(lines, data[start:i])
			}
			start = i + 1
		}
	}
	if start < len(data) {
		lines = append(lines, data[start:])
	}
	return lines
}
