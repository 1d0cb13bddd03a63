// Package serverside implements the block-based server-side row model.
//
// The model never holds the full data set. Rows live in fixed-size blocks
// fetched lazily from a paginated model.DataSource as the viewport asks for
// them via EnsureRange. Concurrent requests overlapping the same block share
// one in-flight fetch. After every range request, blocks outside a sliding
// retention window are evicted, and a residency cap bounds total memory.
// Until the source confirms an exact total, RowCount reports a monotonic
// estimate that always extends one block beyond the furthest row seen.
//
// # Block lifecycle
//
//	Unloaded -> Pending -> Loaded
//	Pending  -> Unloaded   (fetch failure; next EnsureRange retries)
//	Loaded   -> Unloaded   (eviction or purge)
//
// No state is terminal; every transition is reversible by a later
// EnsureRange.
package serverside
