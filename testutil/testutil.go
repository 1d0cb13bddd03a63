// Package testutil provides deterministic stub data sources for row model
// tests.
package testutil

import (
	"context"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gridkit/gridkit/model"
)

// StubSource is a DataSource serving generated rows. It counts calls,
// records every request it receives and can be scripted to fail, delay or
// block until released, which makes fetch-dedup and failure paths testable.
type StubSource struct {
	// TotalRows, when >= 0, is the exact data set size: requests are
	// truncated at it and the result reports LastRow. Negative means
	// unbounded (the source never confirms a total).
	TotalRows int

	// RowValue generates the payload for absolute row index i.
	// Defaults to "item-<i>".
	RowValue func(i int) any

	// Latency delays every call, honoring context cancellation.
	Latency time.Duration

	// Gate, when non-nil, blocks every call until the channel is closed or
	// a value is received.
	Gate chan struct{}

	calls atomic.Int64

	mu       sync.Mutex
	err      error
	requests []model.GetRowsRequest
}

// NewStubSource creates an unbounded stub source.
func NewStubSource() *StubSource {
	return &StubSource{TotalRows: -1}
}

// NewBoundedSource creates a stub source with an exact total row count.
func NewBoundedSource(totalRows int) *StubSource {
	return &StubSource{TotalRows: totalRows}
}

// SetError makes subsequent calls fail with err; nil restores success.
func (s *StubSource) SetError(err error) {
	s.mu.Lock()
	s.err = err
	s.mu.Unlock()
}

// Calls returns how many GetRows calls the source has served.
func (s *StubSource) Calls() int64 {
	return s.calls.Load()
}

// Requests returns a copy of every request received, in arrival order.
func (s *StubSource) Requests() []model.GetRowsRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.GetRowsRequest(nil), s.requests...)
}

func (s *StubSource) GetRows(ctx context.Context, req model.GetRowsRequest) (model.GetRowsResult, error) {
	s.calls.Add(1)
	s.mu.Lock()
	s.requests = append(s.requests, req)
	err := s.err
	s.mu.Unlock()

	if s.Gate != nil {
		select {
		case <-s.Gate:
		case <-ctx.Done():
			return model.GetRowsResult{}, ctx.Err()
		}
	}
	if s.Latency > 0 {
		select {
		case <-time.After(s.Latency):
		case <-ctx.Done():
			return model.GetRowsResult{}, ctx.Err()
		}
	}
	if err != nil {
		return model.GetRowsResult{}, err
	}

	end := req.EndRow
	if s.TotalRows >= 0 && end > s.TotalRows {
		end = s.TotalRows
	}
	rowValue := s.RowValue
	if rowValue == nil {
		rowValue = func(i int) any { return defaultRowValue(i) }
	}

	var rows []any
	for i := req.StartRow; i < end; i++ {
		rows = append(rows, rowValue(i))
	}

	res := model.GetRowsResult{Rows: rows}
	if s.TotalRows >= 0 && req.EndRow >= s.TotalRows {
		res.LastRow = s.TotalRows
		res.LastRowKnown = true
	}
	return res, nil
}

func defaultRowValue(i int) string {
	return "item-" + strconv.Itoa(i)
}
