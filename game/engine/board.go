package engine

import (
	"fmt"
	"strconv"
	"strings"
)

// Board is the square tile matrix. 0 marks an empty cell.
type Board [][]int

// NewBoard allocates an all-empty board of the given dimension
func NewBoard(size int) Board {
	if size < MinBoardSize || size > MaxBoardSize {
		panic(fmt.Sprintf("engine: board size %d out of range [%d, %d]", size, MinBoardSize, MaxBoardSize))
	}
	b := make(Board, size)
	for i := range b {
		b[i] = make([]int, size)
	}
	return b
}

// Size returns the board dimension
func (b Board) Size() int {
	return len(b)
}

// Get returns the value at row, col
func (b Board) Get(row, col int) int {
	b.mustContain(row, col)
	return b[row][col]
}

// Set writes value at row, col. No merge logic happens here.
func (b Board) Set(row, col, value int) {
	b.mustContain(row, col)
	if !IsTileValue(value) {
		panic(fmt.Sprintf("engine: %d is not a valid tile value", value))
	}
	b[row][col] = value
}

func (b Board) mustContain(row, col int) {
	n := len(b)
	if row < 0 || row >= n || col < 0 || col >= n {
		panic(fmt.Sprintf("engine: cell (%d,%d) outside %dx%d board", row, col, n, n))
	}
}

// HasEmptyCell reports whether any cell is 0
func (b Board) HasEmptyCell() bool {
	for _, row := range b {
		for _, v := range row {
			if v == 0 {
				return true
			}
		}
	}
	return false
}

// EmptyCells lists empty positions in row-major order
func (b Board) EmptyCells() []Position {
	var cells []Position
	for r, row := range b {
		for c, v := range row {
			if v == 0 {
				cells = append(cells, Position{Row: r, Col: c})
			}
		}
	}
	return cells
}

// Clear zeroes every cell
func (b Board) Clear() {
	for _, row := range b {
		for c := range row {
			row[c] = 0
		}
	}
}

// Clone returns a deep copy
func (b Board) Clone() Board {
	out := make(Board, len(b))
	for i, row := range b {
		out[i] = append([]int(nil), row...)
	}
	return out
}

// Equal reports whether both boards hold the same tiles
func (b Board) Equal(other Board) bool {
	if len(b) != len(other) {
		return false
	}
	for r := range b {
		if len(b[r]) != len(other[r]) {
			return false
		}
		for c := range b[r] {
			if b[r][c] != other[r][c] {
				return false
			}
		}
	}
	return true
}

// line extracts row i (horizontal moves) or column i (vertical moves)
func (b Board) line(vertical bool, i int) []int {
	out := make([]int, len(b))
	for j := range b {
		if vertical {
			out[j] = b[j][i]
		} else {
			out[j] = b[i][j]
		}
	}
	return out
}

func (b Board) setLine(vertical bool, i int, values []int) {
	for j, v := range values {
		if vertical {
			b[j][i] = v
		} else {
			b[i][j] = v
		}
	}
}

// String renders the board as right-aligned columns, "." for empty cells
func (b Board) String() string {
	width := 1
	for _, row := range b {
		for _, v := range row {
			if l := len(strconv.Itoa(v)); l > width {
				width = l
			}
		}
	}

	var sb strings.Builder
	for _, row := range b {
		for c, v := range row {
			if c > 0 {
				sb.WriteByte(' ')
			}
			cell := "."
			if v != 0 {
				cell = strconv.Itoa(v)
			}
			sb.WriteString(strings.Repeat(" ", width-len(cell)))
			sb.WriteString(cell)
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
