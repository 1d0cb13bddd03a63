// Package gridkit provides row model strategies for virtualized data grids.
//
// A row model feeds visible rows to a grid's rendering layer. Gridkit ships
// two strategies:
//
//   - serverside: a virtualized, block-based cache that lazily fetches rows
//     from a paginated remote source, deduplicates concurrent fetches per
//     block, evicts resident blocks outside a sliding window and estimates
//     the total row count until the source confirms an exact one.
//   - clientside: an in-memory model over a fully loaded data set with
//     filter and sort evaluation.
//
// The rendering layer itself, column layout and input handling are outside
// gridkit's scope; the library exposes only the model.RowModel read surface
// and a RowsChanged notification.
//
// # Quick Start
//
//	state := gridstate.New()
//	m, err := serverside.New(state,
//	    serverside.WithBlockSize(100),
//	    serverside.WithDataSource(source),
//	)
//	if err != nil {
//	    panic(err)
//	}
//	defer m.Close()
//
//	unsub := m.OnRowsChanged(func() { /* re-pull visible rows */ })
//	defer unsub()
//
//	// Scroll handler: make rows 1000-1050 resident.
//	if err := m.EnsureRange(ctx, 1000, 1050); err != nil {
//	    // source failure; re-issue EnsureRange to retry
//	}
//	row, ok := m.GetRow(1005)
//
// Data sources are pluggable: implement model.DataSource, or use the bundled
// datasource/rest (HTTP) and datasource/object (S3/MinIO/local snapshot)
// implementations.
//
// This root package carries the ambient surface shared by all models:
// Logger (structured logging via log/slog), MetricsCollector and sentinel
// errors.
package gridkit
