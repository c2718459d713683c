package main

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/wricardo/mcp-training/game2048/api"
	"github.com/wricardo/mcp-training/game2048/game/config"
	"github.com/wricardo/mcp-training/game2048/game/engine"
	"github.com/wricardo/mcp-training/game2048/game/service"
	"github.com/wricardo/mcp-training/game2048/game/session"
)

const testConfigs = `{
  "name": "tiny",
  "description": "2x2 test board",
  "board_size": 2,
  "seed": 7,
  "messages": {"welcome": "hi", "moved": "Score: %d", "no_change": "Nothing moved", "game_over": "Over %d"}
}`

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "tiny.json"), []byte(testConfigs), 0644); err != nil {
		t.Fatal(err)
	}
	classic := strings.Replace(strings.Replace(testConfigs, `"tiny"`, `"classic"`, 1), `"board_size": 2`, `"board_size": 4`, 1)
	if err := os.WriteFile(filepath.Join(dir, "classic.json"), []byte(classic), 0644); err != nil {
		t.Fatal(err)
	}

	configs, err := config.NewManager(dir)
	if err != nil {
		t.Fatalf("Failed to create config manager: %v", err)
	}
	svc := service.NewGameService(session.NewManager(), configs)
	server := httptest.NewServer(api.NewServer(svc, nil))
	t.Cleanup(server.Close)
	return server
}

func TestClient_SessionLifecycle(t *testing.T) {
	server := newTestServer(t)
	ctx := context.Background()
	client := NewClient(server.URL + "/")

	state, err := client.CreateSession(ctx, "tiny")
	if err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}
	if client.SessionID() == "" {
		t.Fatal("Expected session ID")
	}
	if state.Size != 2 || state.ConfigName != "tiny" {
		t.Errorf("Expected tiny 2x2 session, got %s %dx%d", state.ConfigName, state.Size, state.Size)
	}
	if engine.CountTiles(state.Board) != engine.InitialTiles {
		t.Errorf("Expected %d tiles, got %d", engine.InitialTiles, engine.CountTiles(state.Board))
	}

	dir := NewStrategy().NextMove(state)
	if dir == "" {
		t.Fatal("Expected a legal move on a fresh board")
	}
	result, err := client.Move(ctx, dir)
	if err != nil {
		t.Fatalf("Move failed: %v", err)
	}
	if !result.Success || result.GameState.CurrentMovesCount != 1 {
		t.Errorf("Expected accepted move, got %+v", result)
	}

	fetched, err := client.GetState(ctx)
	if err != nil {
		t.Fatalf("GetState failed: %v", err)
	}
	if fetched.CurrentMovesCount != 1 {
		t.Errorf("Expected 1 move recorded, got %d", fetched.CurrentMovesCount)
	}

	reset, err := client.Reset(ctx)
	if err != nil {
		t.Fatalf("Reset failed: %v", err)
	}
	if reset.CurrentMovesCount != 0 || reset.Score != 0 {
		t.Errorf("Expected fresh game, got moves=%d score=%d", reset.CurrentMovesCount, reset.Score)
	}

	other := NewClient(server.URL)
	resumed, err := other.Resume(ctx, client.SessionID())
	if err != nil {
		t.Fatalf("Resume failed: %v", err)
	}
	if resumed.Board.String() != reset.Board.String() {
		t.Errorf("Resumed board differs:\n%s\nvs\n%s", resumed.Board, reset.Board)
	}
}

func TestClient_Errors(t *testing.T) {
	server := newTestServer(t)
	ctx := context.Background()
	client := NewClient(server.URL)

	if _, err := client.CreateSession(ctx, "missing"); err == nil {
		t.Error("Expected error for unknown config")
	}

	if _, err := client.Resume(ctx, "no-such-session"); err == nil || !strings.Contains(err.Error(), "404") {
		t.Errorf("Expected 404 error, got %v", err)
	}

	if _, err := client.CreateSession(ctx, "tiny"); err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}
	if _, err := client.Move(ctx, "sideways"); err == nil || !strings.Contains(err.Error(), "400") {
		t.Errorf("Expected 400 error, got %v", err)
	}
}

func TestClient_PlainErrorBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	_, err := NewClient(server.URL).GetState(context.Background())
	if err == nil || !strings.Contains(err.Error(), "500") {
		t.Errorf("Expected status in error, got %v", err)
	}
}

func TestPlay_ReachesTarget(t *testing.T) {
	server := newTestServer(t)

	results, err := play(context.Background(), NewClient(server.URL), "", "", playOptions{
		Target:      8,
		MaxMoves:    1000,
		MaxAttempts: 3,
	})
	if err != nil {
		t.Fatalf("Expected target reached, got %v", err)
	}
	last := results[len(results)-1]
	if !last.Won || last.MaxTile < 8 {
		t.Errorf("Expected winning attempt, got %+v", last)
	}
}

func TestPlay_GivesUp(t *testing.T) {
	server := newTestServer(t)

	results, err := play(context.Background(), NewClient(server.URL), "tiny", "", playOptions{
		Target:      1 << 20,
		MaxMoves:    1000,
		MaxAttempts: 2,
	})
	if !errors.Is(err, errTargetNotReached) {
		t.Fatalf("Expected errTargetNotReached, got %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("Expected 2 attempts, got %d", len(results))
	}
	for _, r := range results {
		if r.Won || r.Moves == 0 {
			t.Errorf("Unexpected attempt %+v", r)
		}
	}
}

func TestPlay_ContinueSession(t *testing.T) {
	server := newTestServer(t)
	ctx := context.Background()

	first := NewClient(server.URL)
	if _, err := first.CreateSession(ctx, "tiny"); err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}

	client := NewClient(server.URL)
	if _, err := play(ctx, client, "", first.SessionID(), playOptions{Target: 4, MaxMoves: 100, MaxAttempts: 5}); err != nil {
		t.Fatalf("play failed: %v", err)
	}
	if client.SessionID() != first.SessionID() {
		t.Errorf("Expected to continue %s, played %s", first.SessionID(), client.SessionID())
	}

	fallback := NewClient(server.URL)
	if _, err := play(ctx, fallback, "tiny", "gone", playOptions{Target: 4, MaxMoves: 100, MaxAttempts: 5}); err != nil {
		t.Fatalf("play with missing session failed: %v", err)
	}
	if fallback.SessionID() == "gone" || fallback.SessionID() == "" {
		t.Errorf("Expected a new session, got %q", fallback.SessionID())
	}
}

func TestNewCommand(t *testing.T) {
	cmd := newCommand()
	if cmd.Name != "autoplay" {
		t.Errorf("Unexpected name %s", cmd.Name)
	}
	names := map[string]bool{}
	for _, f := range cmd.Flags {
		for _, n := range f.Names() {
			names[n] = true
		}
	}
	for _, want := range []string{"url", "config", "continue", "target", "max-moves", "max-attempts", "delay"} {
		if !names[want] {
			t.Errorf("Missing flag %s", want)
		}
	}
}
