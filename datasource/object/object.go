// Package object implements model.DataSource over a row snapshot stored as
// one object of newline-delimited JSON, optionally gzip-, zstd- or
// lz4-compressed.
//
// The snapshot is downloaded and decoded once on first use, after which the
// source serves pages from memory and reports an exact row count. It applies
// pagination only: rows are served in stored order and the request's sort
// and filter models are ignored, which suits exported, pre-ordered data
// sets. Stores exist for S3, MinIO and the local filesystem.
package object

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/gridkit/gridkit/model"
)

// ObjectStore fetches the raw snapshot bytes from a backing store.
type ObjectStore interface {
	// Fetch downloads the entire object.
	Fetch(ctx context.Context) ([]byte, error)
}

// Source serves rows from a snapshot object.
type Source struct {
	store ObjectStore

	mu     sync.Mutex
	loaded bool
	rows   []any
}

// New creates a Source over the given store. The snapshot loads lazily on
// the first GetRows call; a failed load is retried on the next call.
func New(store ObjectStore) *Source {
	return &Source{store: store}
}

var _ model.DataSource = (*Source)(nil)

// GetRows serves one page of the snapshot.
func (s *Source) GetRows(ctx context.Context, req model.GetRowsRequest) (model.GetRowsResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.loaded {
		if err := s.loadLocked(ctx); err != nil {
			return model.GetRowsResult{}, err
		}
	}

	start, end := req.StartRow, req.EndRow
	if start < 0 {
		start = 0
	}
	if end > len(s.rows) {
		end = len(s.rows)
	}

	res := model.GetRowsResult{
		LastRow:      len(s.rows),
		LastRowKnown: true,
	}
	if start < end {
		res.Rows = append(res.Rows, s.rows[start:end]...)
	}
	return res, nil
}

func (s *Source) loadLocked(ctx context.Context) error {
	raw, err := s.store.Fetch(ctx)
	if err != nil {
		return fmt.Errorf("object: fetch snapshot: %w", err)
	}
	data, err := decompress(raw)
	if err != nil {
		return fmt.Errorf("object: decompress snapshot: %w", err)
	}

	var rows []any
	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	line := 0
	for sc.Scan() {
		line++
		text := bytes.TrimSpace(sc.Bytes())
		if len(text) == 0 {
			continue
		}
		var item any
		if err := json.Unmarshal(text, &item); err != nil {
			return fmt.Errorf("object: decode snapshot line %d: %w", line, err)
		}
		rows = append(rows, item)
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("object: scan snapshot: %w", err)
	}

	s.rows = rows
	s.loaded = true
	return nil
}
