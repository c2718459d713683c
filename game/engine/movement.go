package engine

import (
	"time"
)

// RandomSource picks spawn cells. *rand.Rand from math/rand/v2 satisfies it.
type RandomSource interface {
	IntN(n int) int
}

// CollapseLine slides one row or column and merges equal neighbours.
// towardEnd is true for right/down moves. The result always has len(line)
// entries with the tiles pressed against the wall they travel toward.
func CollapseLine(line []int, towardEnd bool) ([]int, int) {
	compact := removeZeros(line)
	if towardEnd {
		reverse(compact)
	}

	// One sweep: a merged tile is never compared against its successor again.
	delta := 0
	for i := 0; i < len(compact)-1; i++ {
		if compact[i] == compact[i+1] {
			compact[i] += compact[i+1]
			compact[i+1] = 0
			delta += compact[i]
		}
	}

	compact = removeZeros(compact)
	if towardEnd {
		reverse(compact)
	}

	out := make([]int, len(line))
	if towardEnd {
		copy(out[len(out)-len(compact):], compact)
	} else {
		copy(out, compact)
	}
	return out, delta
}

func removeZeros(line []int) []int {
	out := make([]int, 0, len(line))
	for _, v := range line {
		if v != 0 {
			out = append(out, v)
		}
	}
	return out
}

func reverse(s []int) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}

// ResetGrid zeroes the board and the score
func (gs *GameState) ResetGrid() {
	gs.Board.Clear()
	gs.Score = 0
	gs.GameOver = false
	gs.PendingSpawn = false
	gs.LastSpawn = nil
	gs.refresh()
}

// Collapse applies CollapseLine to every row or column for the direction.
// It reports whether the board changed, the score gained and the number of merges.
func (gs *GameState) Collapse(dir Direction) (bool, int, int) {
	vertical := dir.Vertical()
	towardEnd := dir.TowardEnd()

	before := CountTiles(gs.Board)
	moved := false
	delta := 0
	for i := 0; i < gs.Board.Size(); i++ {
		line := gs.Board.line(vertical, i)
		collapsed, gained := CollapseLine(line, towardEnd)
		if !moved && !equalLines(line, collapsed) {
			moved = true
		}
		gs.Board.setLine(vertical, i, collapsed)
		delta += gained
	}

	gs.Score += delta
	gs.refresh()
	return moved, delta, before - CountTiles(gs.Board)
}

// CanSlide reports whether a collapse in the direction would change the board
func (gs *GameState) CanSlide(dir Direction) bool {
	vertical := dir.Vertical()
	towardEnd := dir.TowardEnd()
	for i := 0; i < gs.Board.Size(); i++ {
		line := gs.Board.line(vertical, i)
		collapsed, _ := CollapseLine(line, towardEnd)
		if !equalLines(line, collapsed) {
			return true
		}
	}
	return false
}

// SpawnTile places a SpawnValue tile in a uniformly random empty cell.
// On a full board nothing is placed and the terminal check runs instead.
func (gs *GameState) SpawnTile(rng RandomSource) (Position, bool) {
	empty := gs.Board.EmptyCells()
	if len(empty) == 0 {
		gs.EvaluateTerminal()
		return Position{}, false
	}

	pos := empty[rng.IntN(len(empty))]
	gs.Board.Set(pos.Row, pos.Col, SpawnValue)
	gs.LastSpawn = &pos
	gs.refresh()
	return pos, true
}

// EvaluateTerminal marks the game over when no adjacent pair can merge.
// Terminal is sticky: it is never cleared here.
func (gs *GameState) EvaluateTerminal() bool {
	if !gs.GameOver && IsTerminal(gs.Board) {
		gs.GameOver = true
	}
	return gs.GameOver
}

// AddMoveToHistory adds a move to the game's move history
func (gs *GameState) AddMoveToHistory(entry MoveHistoryEntry) {
	entry.Score = gs.Score
	entry.Timestamp = time.Now().Unix()
	entry.MoveNumber = gs.TotalMoves + 1

	// Append to cumulative history (never cleared by reset) and increment total
	gs.MoveHistory = append(gs.MoveHistory, entry)
	gs.TotalMoves++

	gs.CurrentMoves = append(gs.CurrentMoves, entry)
	gs.CurrentMovesCount++
}

func (gs *GameState) refresh() {
	gs.Size = gs.Board.Size()
	gs.MaxTile = MaxTile(gs.Board)
	gs.EmptyCells = len(gs.Board)*len(gs.Board) - CountTiles(gs.Board)
}

func equalLines(a, b []int) bool {
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
