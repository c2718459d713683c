package engine

// IsTileValue reports whether v may be stored in a cell: 0 or a power of two >= 2
func IsTileValue(v int) bool {
	if v == 0 {
		return true
	}
	return v >= 2 && v&(v-1) == 0
}

// CountTiles counts the non-empty cells of a board
func CountTiles(b Board) int {
	count := 0
	for _, row := range b {
		for _, v := range row {
			if v != 0 {
				count++
			}
		}
	}
	return count
}

// MaxTile returns the largest tile on the board, 0 if empty
func MaxTile(b Board) int {
	maxTile := 0
	for _, row := range b {
		for _, v := range row {
			if v > maxTile {
				maxTile = v
			}
		}
	}
	return maxTile
}

// HasMergeablePair reports whether any row or column holds two adjacent equal non-zero tiles
func HasMergeablePair(b Board) bool {
	n := len(b)
	for i := 0; i < n; i++ {
		for j := 0; j < n-1; j++ {
			if v := b[i][j]; v != 0 && v == b[i][j+1] {
				return true
			}
			if v := b[j][i]; v != 0 && v == b[j+1][i] {
				return true
			}
		}
	}
	return false
}

// IsTerminal reports whether the board has no legal move left.
// Only adjacent equal pairs count; empty cells are not considered, so callers
// evaluate it on full boards.
func IsTerminal(b Board) bool {
	return !HasMergeablePair(b)
}
