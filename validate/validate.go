// Package validate checks game configuration JSON files before the server
// loads them. For every file it verifies:
//   - JSON structure, with unknown keys rejected so typos do not pass silently
//   - the rules enforced by engine.ValidateGameConfig (name, board size, messages)
//   - that the file name is a usable config ID
//   - that a fresh game starts with the expected number of tiles
//
// Optionally it plays seeded random games on each config and reports how far
// they got, which is a quick way to compare board sizes and spawn rules.
package validate

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/wricardo/mcp-training/game2048/game/engine"
)

// maxPlayoutMoves caps a single simulated game
const maxPlayoutMoves = 100000

// Options controls the optional checks
type Options struct {
	// Playouts is the number of random games simulated per config; 0 disables simulation.
	Playouts int
	// Seed makes simulations reproducible. Zero uses the config seed, then 1.
	Seed uint64
}

// PlayoutStats summarises the simulated games of one config
type PlayoutStats struct {
	Games     int
	BestScore int
	AvgScore  int
	BestTile  int
	AvgMoves  int
	Capped    int
}

// Result captures the outcome of validating a single file.
// Errors is empty when Valid is true; Info carries the summary lines.
type Result struct {
	File     string
	ConfigID string
	Valid    bool
	Errors   []string
	Info     []string
	Playouts *PlayoutStats
}

// File loads and validates a single configuration JSON file
func File(filePath string, opts Options) Result {
	result := Result{
		File:     filepath.Base(filePath),
		ConfigID: strings.TrimSuffix(filepath.Base(filePath), ".json"),
		Valid:    true,
	}

	fail := func(format string, args ...interface{}) Result {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf(format, args...))
		return result
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return fail("Failed to read file: %v", err)
	}

	var config engine.GameConfig
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&config); err != nil {
		return fail("Invalid JSON: %v", err)
	}

	if result.ConfigID == "" || strings.ContainsAny(result.ConfigID, " /\\") {
		fail("File name %q is not a usable config ID", result.File)
	}

	if err := engine.ValidateGameConfig(&config); err != nil {
		return fail("%s", strings.TrimPrefix(err.Error(), "config validation: "))
	}

	if config.Messages.NoChange == "" {
		result.Info = append(result.Info, "⚠ messages.no_change is empty; no-op moves clear the message")
	}

	// The engine seeds a fresh board on creation
	eng, err := engine.NewEngineWithRandom(&config, engine.NewRandomSource(seedFor(&config, opts)))
	if err != nil {
		return fail("Engine rejected config: %v", err)
	}
	if tiles := engine.CountTiles(eng.GetBoard()); tiles != engine.InitialTiles {
		fail("Fresh game has %d tiles, expected %d", tiles, engine.InitialTiles)
	}

	if !result.Valid {
		return result
	}

	spawnRule := "every move"
	if config.SkipSpawnOnNoop {
		spawnRule = "moves that change the board"
	}
	result.Info = append(result.Info,
		fmt.Sprintf("✓ Name: %s", config.Name),
		fmt.Sprintf("✓ Board: %dx%d", config.BoardSize, config.BoardSize),
		fmt.Sprintf("✓ Spawns on: %s", spawnRule),
	)
	if config.Seed != 0 {
		result.Info = append(result.Info, fmt.Sprintf("✓ Fixed seed: %d", config.Seed))
	}

	if opts.Playouts > 0 {
		result.Playouts = Simulate(&config, opts.Playouts, seedFor(&config, opts))
	}

	return result
}

// Dir validates every *.json file in dir, in name order
func Dir(dir string, opts Options) ([]Result, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to list configs: %w", err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no config files found in %s", dir)
	}

	results := make([]Result, 0, len(files))
	for _, file := range files {
		r := File(file, opts)
		log.Debug().Str("file", r.File).Bool("valid", r.Valid).Msg("validated config")
		results = append(results, r)
	}
	return results, nil
}

// Simulate plays games random legal moves until each ends or hits the move cap
func Simulate(config *engine.GameConfig, games int, seed uint64) *PlayoutStats {
	stats := &PlayoutStats{Games: games}
	rng := engine.NewRandomSource(seed)

	totalScore, totalMoves := 0, 0
	for g := 0; g < games; g++ {
		eng, err := engine.NewEngineWithRandom(config, rng)
		if err != nil {
			return stats
		}

		moves := 0
		for !eng.IsGameOver() {
			if moves >= maxPlayoutMoves {
				stats.Capped++
				break
			}
			possible := eng.GetPossibleMoves()
			if len(possible) == 0 {
				break
			}
			if _, err := eng.Move(possible[rng.IntN(len(possible))]); err != nil {
				break
			}
			moves++
		}

		score := eng.GetScore()
		totalScore += score
		totalMoves += moves
		stats.BestScore = max(stats.BestScore, score)
		stats.BestTile = max(stats.BestTile, engine.MaxTile(eng.GetBoard()))
	}

	if games > 0 {
		stats.AvgScore = totalScore / games
		stats.AvgMoves = totalMoves / games
	}
	return stats
}

// WriteReport prints a concise report and reports whether every config is valid
func WriteReport(w io.Writer, results []Result) bool {
	allValid := true
	for _, result := range results {
		fmt.Fprintf(w, "\n%s %s\n", strings.Repeat("=", 20), result.File)

		if !result.Valid {
			allValid = false
			fmt.Fprintln(w, "❌ INVALID")
			for _, e := range result.Errors {
				fmt.Fprintln(w, "  ❌ "+e)
			}
			continue
		}

		fmt.Fprintln(w, "✅ VALID")
		for _, info := range result.Info {
			fmt.Fprintln(w, "  "+info)
		}
		if p := result.Playouts; p != nil {
			fmt.Fprintf(w, "  ✓ Random play (%d games): avg score %d, best %d, best tile %d, avg %d moves\n",
				p.Games, p.AvgScore, p.BestScore, p.BestTile, p.AvgMoves)
			if p.Capped > 0 {
				fmt.Fprintf(w, "  ⚠ %d games hit the %d move cap\n", p.Capped, maxPlayoutMoves)
			}
		}
	}

	fmt.Fprintf(w, "\n%s\n", strings.Repeat("=", 40))
	if allValid {
		fmt.Fprintln(w, "✅ All configurations are valid!")
	} else {
		fmt.Fprintln(w, "❌ Some configurations have errors")
	}
	return allValid
}

func seedFor(config *engine.GameConfig, opts Options) uint64 {
	if opts.Seed != 0 {
		return opts.Seed
	}
	if config.Seed != 0 {
		return config.Seed
	}
	return 1
}
