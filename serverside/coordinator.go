package serverside

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/gridkit/gridkit/model"
)

// maxConcurrentBlockFetches bounds how many distinct blocks one EnsureRange
// call fetches in parallel.
const maxConcurrentBlockFetches = 16

// generation scopes the pending-fetch registry and the fetch context to one
// data-source lifetime. Purging replaces the generation, so results of
// fetches started before a purge are discarded instead of resurrecting
// purged rows.
type generation struct {
	id     string
	ctx    context.Context
	cancel context.CancelFunc
	flight singleflight.Group
}

func newGeneration() *generation {
	ctx, cancel := context.WithCancel(context.Background())
	return &generation{
		id:     uuid.NewString(),
		ctx:    ctx,
		cancel: cancel,
	}
}

// awaitBlock joins (or starts) the shared fetch for one block. Concurrent
// callers requesting the same block index share a single underlying fetch;
// the registry entry is removed on completion, success or failure, so a
// later call retries a failed block fresh.
//
// Cancellation policy: the underlying fetch runs on the generation context,
// not any caller's. A caller whose context is cancelled abandons its wait
// only; the shared fetch keeps running for the remaining waiters.
func (m *Model) awaitBlock(ctx context.Context, gen *generation, src model.DataSource, block int) error {
	ch := gen.flight.DoChan(strconv.Itoa(block), func() (any, error) {
		return nil, m.fetchBlock(gen, src, block)
	})

	select {
	case res := <-ch:
		return res.Err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// fetchBlock performs the underlying data-source call for one block and
// commits the result. Source errors propagate unwrapped in cause to every
// waiter; there is no retry or backoff here.
func (m *Model) fetchBlock(gen *generation, src model.DataSource, block int) error {
	// A caller that computed its missing set before this block committed can
	// re-join after the registry entry is gone; skip the redundant fetch.
	m.mu.Lock()
	alreadyLoaded := m.gen == gen && m.cache.isLoaded(block)
	m.mu.Unlock()
	if alreadyLoaded {
		return nil
	}

	start := block * m.opts.BlockSize
	req := m.snapshot(start, start+m.opts.BlockSize)

	log := m.opts.Logger.WithGeneration(gen.id).WithBlock(block)

	began := time.Now()
	res, err := src.GetRows(gen.ctx, req)
	m.opts.Metrics.RecordFetch(block, len(res.Rows), time.Since(began), err)
	if err != nil {
		log.Debug("block fetch failed", "error", err)
		return fmt.Errorf("serverside: fetch block %d: %w", block, err)
	}

	m.mu.Lock()
	stale := m.gen != gen || m.closed
	if !stale {
		m.cache.commitBlock(block, m.opts.BlockSize, res)
	}
	m.mu.Unlock()

	if stale {
		log.Debug("discarded stale block result", "rows", len(res.Rows))
		return nil
	}

	log.Debug("block loaded", "rows", len(res.Rows), "lastRowKnown", res.LastRowKnown)
	m.events.Notify()
	return nil
}
