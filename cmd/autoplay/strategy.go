package main

import (
	"github.com/wricardo/mcp-training/game2048/game/engine"
)

// preference breaks ties and keeps the big tiles in the bottom-left corner
var preference = []engine.Direction{engine.Down, engine.Left, engine.Right, engine.Up}

// Heuristic weights
const (
	weightEmpty     = 270
	weightMergeable = 70
	weightCorner    = 400
	weightMonotone  = 45
)

// Strategy picks moves by looking one move and one spawn ahead
type Strategy struct {
	// moves tried per direction, for the summary log
	counts map[engine.Direction]int
}

func NewStrategy() *Strategy {
	return &Strategy{counts: make(map[engine.Direction]int)}
}

// NextMove returns the best direction for the board, or "" when nothing moves
func (s *Strategy) NextMove(state *engine.GameState) engine.Direction {
	best := engine.Direction("")
	bestScore := 0.0

	for _, dir := range preference {
		if !state.CanSlide(dir) {
			continue
		}

		sim := &engine.GameState{Board: state.Board.Clone()}
		_, delta, _ := sim.Collapse(dir)
		score := float64(delta) + expectedValue(sim.Board)

		if best == "" || score > bestScore {
			best, bestScore = dir, score
		}
	}

	if best != "" {
		s.counts[best]++
	}
	return best
}

// Reset clears per-attempt counters
func (s *Strategy) Reset() {
	s.counts = make(map[engine.Direction]int)
}

// expectedValue averages the heuristic over every cell a spawn can land in
func expectedValue(board engine.Board) float64 {
	empty := board.EmptyCells()
	if len(empty) == 0 {
		return float64(evaluate(board))
	}

	total := 0
	for _, pos := range empty {
		board.Set(pos.Row, pos.Col, engine.SpawnValue)
		total += evaluate(board)
		board.Set(pos.Row, pos.Col, 0)
	}
	return float64(total) / float64(len(empty))
}

// evaluate scores a board without looking ahead
func evaluate(board engine.Board) int {
	n := board.Size()
	empty := len(board.EmptyCells())

	mergeable := 0
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			v := board.Get(r, c)
			if v == 0 {
				continue
			}
			if c+1 < n && board.Get(r, c+1) == v {
				mergeable++
			}
			if r+1 < n && board.Get(r+1, c) == v {
				mergeable++
			}
		}
	}

	corner := 0
	if board.Get(n-1, 0) == engine.MaxTile(board) {
		corner = 1
	}

	return empty*weightEmpty + mergeable*weightMergeable + corner*weightCorner + monotonicity(board)*weightMonotone
}

// monotonicity counts neighbours that do not grow away from the bottom-left corner
func monotonicity(board engine.Board) int {
	n := board.Size()
	score := 0
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			v := board.Get(r, c)
			if c+1 < n && v >= board.Get(r, c+1) {
				score++
			}
			if r > 0 && v >= board.Get(r-1, c) {
				score++
			}
		}
	}
	return score
}
