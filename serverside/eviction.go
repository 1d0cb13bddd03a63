package serverside

import "sort"

// evictLocked prunes resident blocks after a range request for the inclusive
// block range [startBlock, endBlock]. Called with the model lock held; the
// just-requested blocks are never removed. Returns the number of blocks
// evicted.
//
// The pass is a no-op while the resident count stays below
// MaxResidentBlocks: blocks a viewport scrolled away from remain usable
// until memory pressure justifies dropping them. Once the cap is reached,
// two passes run:
//  1. every loaded block outside the retention window
//     [startBlock-margin, endBlock+margin] is removed;
//  2. if the resident count still exceeds MaxResidentBlocks, retained blocks
//     outside the requested core range are removed farthest-from-the-request
//     first until the cap holds.
func (m *Model) evictLocked(startBlock, endBlock int) int {
	if len(m.cache.loaded) < m.opts.MaxResidentBlocks {
		return 0
	}

	lo := startBlock - m.opts.RetentionMargin
	hi := endBlock + m.opts.RetentionMargin

	removed := 0
	for b := range m.cache.loaded {
		if b < lo || b > hi {
			m.cache.removeBlock(b, m.opts.BlockSize)
			removed++
		}
	}

	if len(m.cache.loaded) > m.opts.MaxResidentBlocks {
		candidates := make([]int, 0, len(m.cache.loaded))
		for b := range m.cache.loaded {
			if b < startBlock || b > endBlock {
				candidates = append(candidates, b)
			}
		}
		sort.Slice(candidates, func(i, j int) bool {
			di := blockDistance(candidates[i], startBlock, endBlock)
			dj := blockDistance(candidates[j], startBlock, endBlock)
			if di != dj {
				return di > dj
			}
			return candidates[i] < candidates[j]
		})
		for _, b := range candidates {
			if len(m.cache.loaded) <= m.opts.MaxResidentBlocks {
				break
			}
			m.cache.removeBlock(b, m.opts.BlockSize)
			removed++
		}
	}

	return removed
}
