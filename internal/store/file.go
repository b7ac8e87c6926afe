package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/duke-git/lancet/v2/slice"
	"go.uber.org/zap"

	"github.com/wesleyorama2/harstat/internal/metrics"
	"github.com/wesleyorama2/harstat/pkg/jsonpath"
)

// record is one stored result before projection.
type record struct {
	label     string
	timestamp string
	raw       json.RawMessage
}

// FileSource serves results from a JSON file held in memory. The file is
// either a JSON array of documents or newline-delimited JSON.
type FileSource struct {
	path    string
	records []record
	log     *zap.Logger
}

// OpenFile reads and validates every document in path.
func OpenFile(path string, log *zap.Logger) (*FileSource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read results file: %w", err)
	}

	src, err := parseFile(data, log)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	src.path = path

	src.log.Debug("results file opened",
		zap.String("path", path),
		zap.Int("documents", len(src.records)))
	return src, nil
}

func parseFile(data []byte, log *zap.Logger) (*FileSource, error) {
	if log == nil {
		log = zap.NewNop()
	}

	raws, err := splitDocuments(data)
	if err != nil {
		return nil, err
	}

	records := make([]record, 0, len(raws))
	for i, raw := range raws {
		if err := resultValidator.Validate(raw); err != nil {
			return nil, fmt.Errorf("document %d: %w", i+1, err)
		}
		records = append(records, record{
			label:     jsonpath.String(raw, "label"),
			timestamp: jsonpath.String(raw, "timestamp"),
			raw:       raw,
		})
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].timestamp < records[j].timestamp
	})

	return &FileSource{records: records, log: log}, nil
}

// splitDocuments accepts a JSON array or a stream of JSON objects.
func splitDocuments(data []byte) ([]json.RawMessage, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, nil
	}

	if trimmed[0] == '[' {
		var raws []json.RawMessage
		if err := json.Unmarshal(trimmed, &raws); err != nil {
			return nil, fmt.Errorf("decode JSON array: %w", err)
		}
		return raws, nil
	}

	var raws []json.RawMessage
	decoder := json.NewDecoder(bytes.NewReader(trimmed))
	for {
		var raw json.RawMessage
		err := decoder.Decode(&raw)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("decode document %d: %w", len(raws)+1, err)
		}
		raws = append(raws, raw)
	}
	return raws, nil
}

// Documents implements Source.
func (s *FileSource) Documents(ctx context.Context, q Query) ([]metrics.Document, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	var docs []metrics.Document
	for _, r := range s.records {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !q.matches(r.label, r.timestamp) {
			continue
		}
		doc, err := project(r.raw, q.Fields)
		if err != nil {
			return nil, fmt.Errorf("project %s at %s: %w", r.label, r.timestamp, err)
		}
		docs = append(docs, doc)
	}

	s.log.Debug("documents loaded",
		zap.String("label", q.Label),
		zap.String("from", q.From),
		zap.String("to", q.To),
		zap.Int("count", len(docs)))
	return docs, nil
}

// Labels implements Source.
func (s *FileSource) Labels(_ context.Context) ([]string, error) {
	labels := make([]string, len(s.records))
	for i, r := range s.records {
		labels[i] = r.label
	}
	labels = slice.Unique(labels)
	sort.Strings(labels)
	return labels, nil
}

// Timestamps implements Source.
func (s *FileSource) Timestamps(_ context.Context, label string) ([]string, error) {
	var timestamps []string
	for _, r := range s.records {
		if r.label == label {
			timestamps = append(timestamps, r.timestamp)
		}
	}
	return timestamps, nil
}

// Close implements Source.
func (s *FileSource) Close() error {
	s.records = nil
	return nil
}
