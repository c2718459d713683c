package engine

import (
	"testing"
)

func boardSum(b Board) int {
	sum := 0
	for _, row := range b {
		for _, v := range row {
			sum += v
		}
	}
	return sum
}

func TestEngine_BulkMoveOperations(t *testing.T) {
	t.Run("all moves applied", func(t *testing.T) {
		engine := newTestEngine(t, createTestConfig(), [][]int{
			{2, 0, 0, 0},
			{0, 0, 0, 0},
			{0, 0, 0, 0},
			{0, 0, 0, 0},
		})

		results, err := engine.BulkMove([]Direction{Right, Down, Left})
		if err != nil {
			t.Fatalf("BulkMove failed: %v", err)
		}
		if len(results) != 3 {
			t.Fatalf("Expected 3 results, got %d", len(results))
		}
		for i, result := range results {
			if !result.Accepted {
				t.Errorf("Move %d was not accepted", i)
			}
			if result.Spawned == nil {
				t.Errorf("Move %d did not spawn", i)
			}
		}
		if engine.GetState().TotalMoves != 3 {
			t.Errorf("Expected 3 total moves, got %d", engine.GetState().TotalMoves)
		}
	})

	t.Run("stops at game over", func(t *testing.T) {
		engine := newTestEngine(t, createTestConfig(), [][]int{
			{2, 4},
			{4, 0},
		})

		results, err := engine.BulkMove([]Direction{Left, Right, Up, Down})
		if err != nil {
			t.Fatalf("BulkMove failed: %v", err)
		}
		if len(results) != 1 {
			t.Errorf("Expected bulk move to stop after the terminal move, got %d results", len(results))
		}
		if !results[len(results)-1].Terminal {
			t.Error("Expected last result to be terminal")
		}
	})

	t.Run("pending spawn", func(t *testing.T) {
		engine := newTestEngine(t, createTestConfig(), nil)
		if _, err := engine.Collapse(Down); err != nil {
			t.Fatalf("Collapse failed: %v", err)
		}
		results, err := engine.BulkMove([]Direction{Left})
		if err == nil {
			t.Error("Expected error while a spawn is pending")
		}
		if len(results) != 0 {
			t.Errorf("Expected no results, got %d", len(results))
		}
	})
}

func TestEngine_RandomPlayInvariants(t *testing.T) {
	for seed := uint64(1); seed <= 20; seed++ {
		config := createTestConfig()
		config.Seed = seed
		engine, err := NewEngine(config)
		if err != nil {
			t.Fatalf("Failed to create engine: %v", err)
		}
		pick := NewRandomSource(seed * 31)

		for step := 0; step < 3000 && !engine.IsGameOver(); step++ {
			before := engine.GetBoard()
			scoreBefore := engine.GetScore()
			dir := Directions[pick.IntN(len(Directions))]

			outcome, err := engine.Move(dir)
			if err != nil {
				t.Fatalf("seed %d step %d: %v", seed, step, err)
			}

			for _, row := range outcome.Board {
				for _, v := range row {
					if !IsTileValue(v) {
						t.Fatalf("seed %d step %d: invalid tile %d", seed, step, v)
					}
				}
			}
			if outcome.Score != scoreBefore+outcome.ScoreDelta {
				t.Fatalf("seed %d step %d: score %d != %d + %d", seed, step, outcome.Score, scoreBefore, outcome.ScoreDelta)
			}

			// Merges keep the sum; each spawn adds SpawnValue
			wantSum := boardSum(before)
			wantTiles := CountTiles(before) - outcome.Merges
			if outcome.Spawned != nil {
				wantSum += SpawnValue
				wantTiles++
			}
			if boardSum(outcome.Board) != wantSum {
				t.Fatalf("seed %d step %d: tile sum %d, want %d", seed, step, boardSum(outcome.Board), wantSum)
			}
			if CountTiles(outcome.Board) != wantTiles {
				t.Fatalf("seed %d step %d: %d tiles, want %d", seed, step, CountTiles(outcome.Board), wantTiles)
			}

			if outcome.Terminal {
				if outcome.Board.HasEmptyCell() {
					t.Fatalf("seed %d: terminal with an empty cell:\n%s", seed, outcome.Board)
				}
				if HasMergeablePair(outcome.Board) {
					t.Fatalf("seed %d: terminal with a mergeable pair:\n%s", seed, outcome.Board)
				}
			}
		}

		state := engine.GetState()
		if state.TotalMoves != len(state.MoveHistory) {
			t.Errorf("seed %d: TotalMoves %d != history length %d", seed, state.TotalMoves, len(state.MoveHistory))
		}
	}
}

func TestEngine_StateTransitions(t *testing.T) {
	engine := newTestEngine(t, createTestConfig(), [][]int{
		{2, 2, 4, 8},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	})

	outcome, err := engine.Move(Left)
	if err != nil {
		t.Fatalf("Move failed: %v", err)
	}
	// [2 2 4 8] -> [4 4 8 0]: the new 4 does not merge again
	if outcome.Board[0][0] != 4 || outcome.Board[0][1] != 4 || outcome.Board[0][2] != 8 {
		t.Errorf("Unexpected first row %v", outcome.Board[0])
	}

	outcome, err = engine.Move(Left)
	if err != nil {
		t.Fatalf("Move failed: %v", err)
	}
	// [4 4 8 2] -> [8 8 2 0]
	if outcome.Board[0][0] != 8 || outcome.Board[0][1] != 8 || outcome.Board[0][2] != 2 {
		t.Errorf("Unexpected first row %v", outcome.Board[0])
	}
	if outcome.Score != 12 {
		t.Errorf("Expected score 12, got %d", outcome.Score)
	}

	state := engine.GetState()
	if state.MaxTile != 8 {
		t.Errorf("Expected max tile 8, got %d", state.MaxTile)
	}
	if len(state.CurrentMoves) != 2 {
		t.Errorf("Expected 2 current moves, got %d", len(state.CurrentMoves))
	}
}

func BenchmarkEngine_Move(b *testing.B) {
	config := DefaultGameConfig()
	config.Seed = 7
	engine, err := NewEngine(config)
	if err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if engine.IsGameOver() {
			engine.Reset()
		}
		engine.Move(Directions[i%len(Directions)])
	}
}
