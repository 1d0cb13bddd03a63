// Package model defines the core types shared by every row model and data
// source in gridkit.
//
// # Identity Types
//
//   - Row: a resident grid row with its generated ID, absolute index and
//     opaque payload
//
// # Wire Types
//
//   - GetRowsRequest / GetRowsResult: the pagination contract between a row
//     model and a DataSource
//   - SortColumn, FilterModel, FilterValue: the serialized sort/filter state
//     forwarded to the source
//
// # Interfaces
//
//   - DataSource: the pluggable paginated source supplied by the host
//   - RowModel: the read surface consumed by a rendering layer
package model
