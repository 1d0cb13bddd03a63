package serverside

import (
	"github.com/gridkit/gridkit/model"
)

// rowCache stores fetched rows keyed by absolute row index, tracks which
// blocks are fully loaded and derives the reported row count.
//
// It carries no lock of its own: every method must be called while holding
// the owning Model's mutex. The pending-fetch registry is deliberately not
// visible here; readers decide row availability from the loaded set alone.
type rowCache struct {
	rows   map[int]model.Row
	loaded map[int]struct{}

	// maxLoaded is the highest row index actually committed; -1 when empty.
	maxLoaded int
	// maxRequested is the highest end-exclusive row position any
	// EnsureRange call has asked for. It survives purges so the estimated
	// count does not collapse for a viewport scrolled deep into the data.
	maxRequested int
	// estimate is the monotonic floor of the reported count within one
	// data-source generation.
	estimate int

	lastRow      int
	lastRowKnown bool
}

func newRowCache() *rowCache {
	return &rowCache{
		rows:      make(map[int]model.Row),
		loaded:    make(map[int]struct{}),
		maxLoaded: -1,
	}
}

func (c *rowCache) isLoaded(block int) bool {
	_, ok := c.loaded[block]
	return ok
}

// noteRequested advances the max-requested watermark. Called before a fetch
// is issued so the watermark holds even when the fetch fails.
func (c *rowCache) noteRequested(endRow int) {
	if endRow > c.maxRequested {
		c.maxRequested = endRow
	}
}

// commitBlock writes a successful fetch result into the cache. Item k of the
// result becomes row index block*blockSize+k. The block is marked loaded as
// a unit; partial blocks are not modeled.
func (c *rowCache) commitBlock(block, blockSize int, res model.GetRowsResult) {
	start := block * blockSize
	for k, item := range res.Rows {
		idx := start + k
		c.rows[idx] = model.Row{
			ID:    model.ServerRowID(idx),
			Index: idx,
			Data:  item,
		}
		if idx > c.maxLoaded {
			c.maxLoaded = idx
		}
	}
	c.loaded[block] = struct{}{}
	if res.LastRowKnown {
		c.lastRow = res.LastRow
		c.lastRowKnown = true
	}
}

// removeBlock evicts a block's rows as a unit and forgets the block.
func (c *rowCache) removeBlock(block, blockSize int) {
	start := block * blockSize
	for i := start; i < start+blockSize; i++ {
		delete(c.rows, i)
	}
	delete(c.loaded, block)
}

// count returns the exact total once known, otherwise a heuristic lower
// bound extending at least one block beyond the furthest row seen, so a
// viewport can always request further data. The bound never decreases
// within a generation.
func (c *rowCache) count(blockSize int) int {
	if c.lastRowKnown {
		return c.lastRow
	}
	est := c.maxLoaded + 1 + blockSize
	if c.maxRequested > est {
		est = c.maxRequested
	}
	if est > c.estimate {
		c.estimate = est
	}
	return c.estimate
}

// isEmpty reports whether the model has no data: either the source confirmed
// a zero total, or nothing has been loaded and no exact count exists.
func (c *rowCache) isEmpty() bool {
	if c.lastRowKnown {
		return c.lastRow == 0
	}
	return c.maxLoaded < 0
}

// purge drops all rows, the loaded set, last-row knowledge and the loaded
// watermark. The max-requested watermark is intentionally preserved.
func (c *rowCache) purge() {
	c.rows = make(map[int]model.Row)
	c.loaded = make(map[int]struct{})
	c.maxLoaded = -1
	c.estimate = 0
	c.lastRow = 0
	c.lastRowKnown = false
}
