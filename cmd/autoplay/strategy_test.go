package main

import (
	"testing"

	"github.com/wricardo/mcp-training/game2048/game/engine"
)

func TestNextMove(t *testing.T) {
	tests := []struct {
		name  string
		board engine.Board
		want  engine.Direction
	}{
		{
			name:  "merge toward the corner",
			board: engine.Board{{0, 0}, {2, 2}},
			want:  engine.Left,
		},
		{
			name:  "locked board",
			board: engine.Board{{2, 4}, {4, 2}},
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewStrategy()
			state := &engine.GameState{Board: tt.board}
			before := tt.board.Clone()

			got := s.NextMove(state)
			if got != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, got)
			}
			if tt.want != "" && s.counts[tt.want] != 1 {
				t.Errorf("Expected count 1 for %q, got %v", tt.want, s.counts)
			}
			if state.Board.String() != before.String() {
				t.Errorf("NextMove changed the board:\n%s", state.Board)
			}
		})
	}
}

func TestStrategyReset(t *testing.T) {
	s := NewStrategy()
	s.NextMove(&engine.GameState{Board: engine.Board{{0, 0}, {2, 2}}})
	s.Reset()
	if len(s.counts) != 0 {
		t.Errorf("Expected counts cleared, got %v", s.counts)
	}
}

func TestExpectedValueRestoresBoard(t *testing.T) {
	board := engine.Board{
		{2, 0, 0},
		{0, 4, 0},
		{0, 0, 8},
	}
	before := board.Clone()

	expectedValue(board)

	if board.String() != before.String() {
		t.Errorf("Board changed:\n%s", board)
	}
}

func TestEvaluate(t *testing.T) {
	corner := engine.Board{{0, 0}, {8, 2}}
	away := engine.Board{{0, 0}, {2, 8}}
	if evaluate(corner) <= evaluate(away) {
		t.Errorf("Expected corner board to score higher: %d vs %d", evaluate(corner), evaluate(away))
	}

	pairs := engine.Board{{4, 4}, {0, 0}}
	apart := engine.Board{{4, 0}, {0, 4}}
	if evaluate(pairs) <= evaluate(apart) {
		t.Errorf("Expected mergeable pair to score higher: %d vs %d", evaluate(pairs), evaluate(apart))
	}
}

func TestMonotonicity(t *testing.T) {
	sorted := engine.Board{{2, 0}, {8, 4}}
	reversed := engine.Board{{4, 8}, {0, 2}}
	if monotonicity(sorted) <= monotonicity(reversed) {
		t.Errorf("Expected sorted board more monotone: %d vs %d", monotonicity(sorted), monotonicity(reversed))
	}
}
