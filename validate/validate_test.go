package validate

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/wricardo/mcp-training/game2048/game/engine"
)

const validConfig = `{
	"name": "Test Config",
	"description": "Test configuration",
	"board_size": 4,
	"skip_spawn_on_noop": true,
	"messages": {
		"welcome": "Welcome!",
		"moved": "Score: %d",
		"no_change": "Nothing moved",
		"game_over": "Game over! Final score: %d"
	}
}`

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	return path
}

func TestFile_ValidConfig(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "test.json", validConfig)

	result := File(path, Options{})
	if !result.Valid {
		t.Fatalf("Expected valid config, but got errors: %v", result.Errors)
	}

	if result.File != "test.json" {
		t.Errorf("Expected file name test.json, got %s", result.File)
	}
	if result.ConfigID != "test" {
		t.Errorf("Expected config ID test, got %s", result.ConfigID)
	}
	if result.Playouts != nil {
		t.Error("Expected no playouts when disabled")
	}

	info := strings.Join(result.Info, "\n")
	for _, want := range []string{"✓ Name: Test Config", "✓ Board: 4x4", "moves that change the board"} {
		if !strings.Contains(info, want) {
			t.Errorf("Expected %q in info, got %v", want, result.Info)
		}
	}
}

func TestFile_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		wantErr string
	}{
		{
			name:    "invalid JSON",
			file:    "broken.json",
			content: `{"name": "test", invalid json}`,
			wantErr: "Invalid JSON",
		},
		{
			name:    "unknown field",
			file:    "typo.json",
			content: strings.Replace(validConfig, `"board_size"`, `"grid_size"`, 1),
			wantErr: "Invalid JSON",
		},
		{
			name:    "board too small",
			file:    "tiny.json",
			content: strings.Replace(validConfig, `"board_size": 4`, `"board_size": 1`, 1),
			wantErr: "board_size must be between",
		},
		{
			name:    "board too large",
			file:    "huge.json",
			content: strings.Replace(validConfig, `"board_size": 4`, `"board_size": 17`, 1),
			wantErr: "board_size must be between",
		},
		{
			name:    "missing name",
			file:    "noname.json",
			content: strings.Replace(validConfig, `"Test Config"`, `""`, 1),
			wantErr: "name is required",
		},
		{
			name:    "game over without score",
			file:    "noscore.json",
			content: strings.Replace(validConfig, "Game over! Final score: %d", "Game over!", 1),
			wantErr: "game_over must contain %d",
		},
		{
			name:    "bad file name",
			file:    "has space.json",
			content: validConfig,
			wantErr: "not a usable config ID",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, t.TempDir(), tt.file, tt.content)

			result := File(path, Options{})
			if result.Valid {
				t.Fatal("Expected invalid result")
			}
			if !strings.Contains(strings.Join(result.Errors, "\n"), tt.wantErr) {
				t.Errorf("Expected error containing %q, got %v", tt.wantErr, result.Errors)
			}
		})
	}
}

func TestFile_Missing(t *testing.T) {
	result := File(filepath.Join(t.TempDir(), "nope.json"), Options{})
	if result.Valid {
		t.Error("Expected missing file to be invalid")
	}
	if len(result.Errors) == 0 || !strings.HasPrefix(result.Errors[0], "Failed to read file") {
		t.Errorf("Unexpected errors %v", result.Errors)
	}
}

func TestFile_NoChangeWarning(t *testing.T) {
	content := strings.Replace(validConfig, `"no_change": "Nothing moved",`, "", 1)
	path := writeConfig(t, t.TempDir(), "quiet.json", content)

	result := File(path, Options{})
	if !result.Valid {
		t.Fatalf("Expected valid config, got %v", result.Errors)
	}
	if !strings.Contains(strings.Join(result.Info, "\n"), "no_change is empty") {
		t.Errorf("Expected no_change warning, got %v", result.Info)
	}
}

func TestFile_Playouts(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "small.json",
		strings.Replace(validConfig, `"board_size": 4`, `"board_size": 2`, 1))

	result := File(path, Options{Playouts: 5, Seed: 42})
	if !result.Valid {
		t.Fatalf("Expected valid config, got %v", result.Errors)
	}
	if result.Playouts == nil {
		t.Fatal("Expected playout stats")
	}
	if result.Playouts.Games != 5 {
		t.Errorf("Expected 5 games, got %d", result.Playouts.Games)
	}
	if result.Playouts.Capped != 0 {
		t.Errorf("A 2x2 game should always end, %d capped", result.Playouts.Capped)
	}
}

func TestSimulate_Deterministic(t *testing.T) {
	config := engine.DefaultGameConfig()
	config.BoardSize = 3

	a := Simulate(config, 3, 7)
	b := Simulate(config, 3, 7)
	if *a != *b {
		t.Errorf("Expected identical stats for the same seed, got %+v and %+v", a, b)
	}

	if a.BestTile < engine.SpawnValue {
		t.Errorf("Best tile should be at least %d, got %d", engine.SpawnValue, a.BestTile)
	}
	if a.AvgScore > a.BestScore {
		t.Errorf("Average score %d exceeds best %d", a.AvgScore, a.BestScore)
	}
	if a.AvgMoves == 0 {
		t.Error("Expected some moves per game")
	}
}

func TestDir(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "b.json", validConfig)
	writeConfig(t, dir, "a.json", `{}`)
	writeConfig(t, dir, "notes.txt", "ignored")

	results, err := Dir(dir, Options{})
	if err != nil {
		t.Fatalf("Dir failed: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("Expected 2 results, got %d", len(results))
	}
	if results[0].File != "a.json" || results[0].Valid {
		t.Errorf("Expected a.json first and invalid, got %+v", results[0])
	}
	if results[1].File != "b.json" || !results[1].Valid {
		t.Errorf("Expected b.json second and valid, got %+v", results[1])
	}

	if _, err := Dir(t.TempDir(), Options{}); err == nil {
		t.Error("Expected error for an empty directory")
	}
}

func TestWriteReport(t *testing.T) {
	results := []Result{
		{File: "good.json", Valid: true, Info: []string{"✓ Name: good"}, Playouts: &PlayoutStats{Games: 2, AvgScore: 100, BestScore: 150, BestTile: 16, AvgMoves: 40}},
		{File: "bad.json", Valid: false, Errors: []string{"name is required"}},
	}

	var buf bytes.Buffer
	if WriteReport(&buf, results) {
		t.Error("Expected report to flag invalid configs")
	}

	out := buf.String()
	for _, want := range []string{
		"good.json", "✅ VALID", "✓ Name: good", "Random play (2 games): avg score 100, best 150, best tile 16",
		"bad.json", "❌ INVALID", "❌ name is required", "Some configurations have errors",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected %q in report, got:\n%s", want, out)
		}
	}

	buf.Reset()
	if !WriteReport(&buf, results[:1]) {
		t.Error("Expected all valid")
	}
	if !strings.Contains(buf.String(), "All configurations are valid") {
		t.Errorf("Unexpected report:\n%s", buf.String())
	}
}

func TestRepositoryConfigs(t *testing.T) {
	results, err := Dir(filepath.Join("..", "configs"), Options{})
	if err != nil {
		t.Skipf("configs directory not available: %v", err)
	}
	for _, r := range results {
		if !r.Valid {
			t.Errorf("%s is invalid: %v", r.File, r.Errors)
		}
	}
}
