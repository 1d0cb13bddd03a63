package serverside

import (
	"context"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/gridkit/gridkit"
	"github.com/gridkit/gridkit/event"
	"github.com/gridkit/gridkit/model"
)

// RequestSnapshotter supplies the sort/filter/visibility snapshot attached
// to every block fetch. *gridstate.State implements it.
type RequestSnapshotter interface {
	Snapshot(startRow, endRow int) model.GetRowsRequest
}

// RefreshMode selects what Refresh re-fetches.
type RefreshMode int

const (
	// RefreshFull re-fetches the first block, with or without a purge.
	RefreshFull RefreshMode = iota
	// RefreshVisible performs no fetch of its own; rows reload on the
	// renderer's next EnsureRange. Only the purge flag has an effect.
	RefreshVisible
)

// Model is the server-side row model: a virtualized, block-based row cache
// over a paginated remote DataSource.
//
// All methods are safe for concurrent use. EnsureRange may be invoked
// concurrently by multiple callers (a scroll handler and a prefetch
// heuristic, say); overlapping calls observe exactly one underlying fetch
// per block.
type Model struct {
	opts   Options
	state  RequestSnapshotter
	events *event.Emitter

	// mu guards cache, source, gen and closed. The pending-fetch registry
	// lives inside gen and synchronizes independently; readers consult only
	// the cache's loaded set to decide whether a row is available.
	mu     sync.Mutex
	cache  *rowCache
	source model.DataSource
	gen    *generation
	closed bool
}

var _ model.RowModel = (*Model)(nil)

// New constructs a server-side row model. state may be nil, in which case
// requests carry only the row range.
func New(state RequestSnapshotter, opts ...Option) (*Model, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.validate(); err != nil {
		return nil, err
	}

	m := &Model{
		opts:   o,
		state:  state,
		events: event.NewEmitter(),
		cache:  newRowCache(),
		source: o.Source,
		gen:    newGeneration(),
	}
	return m, nil
}

func (m *Model) snapshot(startRow, endRow int) model.GetRowsRequest {
	if m.state == nil {
		return model.GetRowsRequest{StartRow: startRow, EndRow: endRow}
	}
	return m.state.Snapshot(startRow, endRow)
}

// EnsureRange makes every block overlapping [startRow, endRow) resident,
// fetching unloaded blocks from the data source. It returns once each of
// those blocks is loaded or its fetch has failed; the first fetch error is
// returned. Without a data source it is a no-op.
//
// Malformed ranges are normalized: a negative startRow becomes 0 and an
// empty range widens to one block.
func (m *Model) EnsureRange(ctx context.Context, startRow, endRow int) error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return gridkit.ErrClosed
	}
	if m.source == nil {
		m.mu.Unlock()
		return nil
	}

	startRow, endRow = clampRange(startRow, endRow, m.opts.BlockSize)
	startBlock, endBlock := blockRange(startRow, endRow, m.opts.BlockSize)

	// The watermark advances before any fetch is issued so the estimated
	// count holds even when every fetch fails.
	m.cache.noteRequested(endRow)

	gen := m.gen
	src := m.source
	var missing []int
	for b := startBlock; b <= endBlock; b++ {
		if !m.cache.isLoaded(b) {
			missing = append(missing, b)
		}
	}
	m.mu.Unlock()

	var fetchErr error
	if len(missing) > 0 {
		g := new(errgroup.Group)
		g.SetLimit(maxConcurrentBlockFetches)
		for _, b := range missing {
			g.Go(func() error {
				return m.awaitBlock(ctx, gen, src, b)
			})
		}
		fetchErr = g.Wait()
	}

	m.mu.Lock()
	evicted := 0
	// Skip eviction when a purge replaced the generation mid-flight; the
	// window would be computed against a cache this request never touched.
	if m.gen == gen && !m.closed {
		evicted = m.evictLocked(startBlock, endBlock)
	}
	m.mu.Unlock()

	if evicted > 0 {
		m.opts.Metrics.RecordEviction(evicted)
		m.opts.Logger.WithRange(startRow, endRow).Debug("evicted blocks", "count", evicted)
	}
	return fetchErr
}

// GetRow returns the resident row at the given absolute index.
func (m *Model) GetRow(index int) (model.Row, bool) {
	m.mu.Lock()
	row, ok := m.cache.rows[index]
	m.mu.Unlock()

	if ok {
		m.opts.Metrics.RecordCacheHit()
	} else {
		m.opts.Metrics.RecordCacheMiss()
	}
	return row, ok
}

// GetRowByID returns the resident row with the given generated ID. Linear in
// the number of resident rows, which the residency cap bounds.
func (m *Model) GetRowByID(id string) (model.Row, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, row := range m.cache.rows {
		if row.ID == id {
			return row, true
		}
	}
	return model.Row{}, false
}

// RowCount returns the exact total once the source has confirmed one,
// otherwise a heuristic lower bound extending one block past the furthest
// loaded row. The bound never decreases within a data-source generation.
func (m *Model) RowCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cache.count(m.opts.BlockSize)
}

// IsLastRowIndexKnown reports whether the source has confirmed an exact
// total row count.
func (m *Model) IsLastRowIndexKnown() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cache.lastRowKnown
}

// IsEmpty reports whether the model holds no data: the source confirmed a
// zero total, or nothing is loaded and no exact count exists.
func (m *Model) IsEmpty() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cache.isEmpty()
}

// ForEachRow visits every resident row in ascending index order.
func (m *Model) ForEachRow(fn func(model.Row)) {
	m.mu.Lock()
	indexes := make([]int, 0, len(m.cache.rows))
	for idx := range m.cache.rows {
		indexes = append(indexes, idx)
	}
	sort.Ints(indexes)
	rows := make([]model.Row, len(indexes))
	for i, idx := range indexes {
		rows[i] = m.cache.rows[idx]
	}
	m.mu.Unlock()

	for _, row := range rows {
		fn(row)
	}
}

// OnRowsChanged subscribes to the change notification that fires after every
// successful block load and after every purge. The returned function
// unsubscribes.
func (m *Model) OnRowsChanged(fn func()) (unsubscribe func()) {
	return m.events.Subscribe(fn)
}

// SetDataSource replaces the data source and purges the cache. When refresh
// is set and the source is non-nil, the first block is fetched before
// returning; its error is returned and may be retried with EnsureRange.
func (m *Model) SetDataSource(src model.DataSource, refresh bool) error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return gridkit.ErrClosed
	}
	m.source = src
	m.purgeLocked()
	m.mu.Unlock()

	m.events.Notify()

	if refresh && src != nil {
		return m.EnsureRange(context.Background(), 0, m.opts.BlockSize)
	}
	return nil
}

// Refresh re-syncs the model with its source. With purge set, the cache is
// purged first (preserving the max-requested watermark). RefreshFull then
// re-fetches the first block whether or not a purge ran; RefreshVisible
// fetches nothing itself and leaves reloading to the renderer's next
// EnsureRange.
func (m *Model) Refresh(ctx context.Context, mode RefreshMode, purge bool) error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return gridkit.ErrClosed
	}
	src := m.source
	if purge {
		m.purgeLocked()
	} else if mode == RefreshFull {
		// EnsureRange skips loaded blocks, so drop block 0 first or a
		// resident first block would make the re-fetch a no-op.
		m.cache.removeBlock(0, m.opts.BlockSize)
	}
	m.mu.Unlock()

	if purge {
		m.events.Notify()
	}
	if mode == RefreshFull && src != nil {
		return m.EnsureRange(ctx, 0, m.opts.BlockSize)
	}
	return nil
}

// Close cancels in-flight fetches and marks the model closed. Resident rows
// stay readable; EnsureRange, SetDataSource and Refresh return ErrClosed.
func (m *Model) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return nil
	}
	m.closed = true
	m.gen.cancel()
	return nil
}

// purgeLocked clears the cache and starts a new generation. Fetches started
// under the old generation are cancelled; any result that still arrives is
// discarded by the staleness check in fetchBlock.
func (m *Model) purgeLocked() {
	m.gen.cancel()
	m.gen = newGeneration()
	m.cache.purge()
	m.opts.Logger.WithGeneration(m.gen.id).Debug("cache purged")
}
