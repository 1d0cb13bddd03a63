package model

import (
	"context"
	"fmt"
)

// Row is a resident grid row. Rows are immutable by convention: they are
// created when a block finishes loading and removed only on eviction or
// purge.
type Row struct {
	// ID is the generated row identifier.
	ID string
	// Index is the absolute row index within the full (possibly unloaded)
	// data set.
	Index int
	// Data is the opaque payload returned by the data source.
	Data any
}

// ServerRowID returns the generated identifier for a server-side row at the
// given absolute index.
func ServerRowID(index int) string {
	return fmt.Sprintf("server_%d", index)
}

// SortDirection is the direction of a sort column.
type SortDirection string

const (
	SortAscending  SortDirection = "asc"
	SortDescending SortDirection = "desc"
)

// SortColumn is one entry of the ordered sort model.
type SortColumn struct {
	ColumnID  string        `json:"colId"`
	Direction SortDirection `json:"sort"`
}

// GetRowsRequest is the source-agnostic snapshot of pagination and
// sort/filter state handed to a DataSource. StartRow is inclusive, EndRow
// exclusive.
type GetRowsRequest struct {
	StartRow  int          `json:"startRow"`
	EndRow    int          `json:"endRow"`
	SortModel []SortColumn `json:"sortModel,omitempty"`
	// FilterModel maps column IDs to their active filters. The reserved
	// GlobalFilterKey entry carries the global/quick filter.
	FilterModel FilterModel `json:"filterModel,omitempty"`
	// ColumnVisibility, when non-nil, tells the source which columns are
	// currently shown so it may omit hidden ones.
	ColumnVisibility map[string]bool `json:"columnVisibility,omitempty"`
}

// GetRowsResult is the source's answer to a GetRowsRequest.
type GetRowsResult struct {
	// Rows holds the opaque data items in source order. Item k of a result
	// starting at row r becomes row index r+k.
	Rows []any `json:"rows"`
	// LastRow is the exact total row count, valid only when LastRowKnown is
	// set. Sources report it once they reach end-of-data.
	LastRow      int  `json:"lastRow"`
	LastRowKnown bool `json:"lastRowKnown"`
}

// DataSource is the pluggable paginated remote source supplied by the host
// application.
type DataSource interface {
	GetRows(ctx context.Context, req GetRowsRequest) (GetRowsResult, error)
}

// RowModel is the read surface a rendering layer consumes. Both the
// server-side and the client-side strategies implement it.
type RowModel interface {
	// GetRow returns the row at the given display index, if resident.
	GetRow(index int) (Row, bool)
	// GetRowByID returns the row with the given generated ID, if resident.
	GetRowByID(id string) (Row, bool)
	// RowCount returns the exact or estimated total row count.
	RowCount() int
	// ForEachRow visits every resident row in ascending index order.
	ForEachRow(fn func(Row))
	// EnsureRange makes the rows overlapping [startRow, endRow) resident,
	// fetching them if necessary. It is the sole write-triggering call a
	// renderer issues.
	EnsureRange(ctx context.Context, startRow, endRow int) error
}
