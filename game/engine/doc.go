// Package engine provides the core game logic for 2048.
//
// The engine package implements the game mechanics including:
//   - The square tile board and its cell primitives
//   - Line collapse: compaction, single-sweep merging and padding
//   - Random spawning of value-2 tiles into empty cells
//   - Terminal detection from adjacent mergeable pairs
//   - Configuration loading and validation
//
// Core Types:
//
// The Engine interface defines the main contract for game operations,
// implemented by GameEngine. GameState holds the board, score and history,
// while GameConfig defines board size and messages loaded from JSON files.
//
// Usage:
//
//	gameEngine, err := engine.NewEngine(engine.DefaultGameConfig())
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	outcome, err := gameEngine.Move(engine.Left)
//	fmt.Println(outcome.Board, outcome.Score, outcome.Terminal)
//
// A move can also be split in two phases so a presentation layer can show
// the slid board before the new tile appears:
//
//	gameEngine.Collapse(engine.Up)
//	// animate...
//	gameEngine.Spawn()
//
// Game Rules:
//
// Sliding presses every tile against the wall in the direction of travel.
// Two equal neighbours merge once per move and their sum is added to the
// score. Every accepted move spawns one tile of value 2. The game ends when
// the board is full and no two adjacent tiles are equal.
package engine
