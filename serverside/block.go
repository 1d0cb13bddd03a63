package serverside

// clampRange normalizes a requested row range. Negative start rows are
// clamped to zero; an empty or inverted range is widened to one block so a
// request always covers at least one block.
func clampRange(startRow, endRow, blockSize int) (int, int) {
	if startRow < 0 {
		startRow = 0
	}
	if endRow <= startRow {
		endRow = startRow + blockSize
	}
	return startRow, endRow
}

// blockRange converts a half-open row range to the inclusive block index
// range that covers it.
func blockRange(startRow, endRow, blockSize int) (startBlock, endBlock int) {
	return startRow / blockSize, (endRow - 1) / blockSize
}

// blockDistance returns how far block b lies outside the inclusive block
// range [startBlock, endBlock]; zero if inside.
func blockDistance(b, startBlock, endBlock int) int {
	switch {
	case b < startBlock:
		return startBlock - b
	case b > endBlock:
		return b - endBlock
	default:
		return 0
	}
}
