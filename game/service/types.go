package service

import (
	"time"

	"github.com/wricardo/mcp-training/game2048/game/engine"
)

// Event types reported in MoveResult and BulkMoveResult
const (
	EventMove     = "move"
	EventNoChange = "no_change"
	EventMerge    = "merge"
	EventSpawn    = "spawn"
	EventGameOver = "game_over"
	EventReset    = "reset"
	EventRejected = "rejected"
)

// Stop reason codes for bulk moves
const (
	StopGameOver        = "game_over"
	StopAlreadyGameOver = "already_game_over"
)

// SessionInfo provides information about a game session
type SessionInfo struct {
	ID             string             `json:"id"`
	ConfigName     string             `json:"config_name"`
	CreatedAt      time.Time          `json:"created_at"`
	LastAccessedAt time.Time          `json:"last_accessed_at"`
	GameState      *engine.GameState  `json:"game_state"`
	GameConfig     *engine.GameConfig `json:"game_config"`
}

// MoveResult contains the result of a move or one of its phases
type MoveResult struct {
	Success       bool                `json:"success"`
	GameState     *engine.GameState   `json:"game_state"`
	Message       string              `json:"message"`
	Events        []GameEvent         `json:"events,omitempty"`
	Outcome       *engine.MoveOutcome `json:"outcome,omitempty"`
	PossibleMoves []engine.Direction  `json:"possible_moves"`
}

// BulkMoveResult contains the result of multiple moves
type BulkMoveResult struct {
	// Summary
	MovesExecuted  int               `json:"moves_executed"`
	RequestedMoves int               `json:"requested_moves"`
	Success        bool              `json:"success"`
	GameState      *engine.GameState `json:"game_state"`
	Events         []GameEvent       `json:"events"`
	StoppedReason  string            `json:"stopped_reason,omitempty"`
	StopReasonCode string            `json:"stop_reason_code,omitempty"` // game_over|already_game_over
	StoppedOnMove  int               `json:"stopped_on_move,omitempty"`  // 1-based index of the move that caused stop
	Truncated      bool              `json:"truncated,omitempty"`
	Limit          int               `json:"limit,omitempty"`

	// Start/end snapshot
	StartScore int `json:"start_score"`
	EndScore   int `json:"end_score"`
	ScoreDelta int `json:"score_delta"`
	MaxTile    int `json:"max_tile"`

	// Per-step compact trace (only for this call)
	Steps []StepInfo `json:"steps,omitempty"`

	GameOver      bool               `json:"game_over"`
	EndedGame     bool               `json:"ended_game,omitempty"` // this call moved the game into game over
	Message       string             `json:"message,omitempty"`
	PossibleMoves []engine.Direction `json:"possible_moves"`
}

// StepInfo is a compact record for each executed move in the bulk call
type StepInfo struct {
	Idx        int              `json:"idx"`
	Dir        engine.Direction `json:"dir"`
	Moved      bool             `json:"moved"`
	ScoreDelta int              `json:"score_delta"`
	Merges     int              `json:"merges"`
	Spawned    *engine.Position `json:"spawned,omitempty"`
	ScoreAfter int              `json:"score_after"`
	GameOver   bool             `json:"game_over,omitempty"`
}

// GameEvent represents an event that occurred during gameplay
type GameEvent struct {
	Type      string           `json:"type"` // "move", "no_change", "merge", "spawn", "game_over", "reset", "rejected"
	Message   string           `json:"message"`
	Timestamp time.Time        `json:"timestamp"`
	Position  *engine.Position `json:"position,omitempty"`
}

// HistoryOptions configures move history retrieval
type HistoryOptions struct {
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
	Order string `json:"order"` // "asc" or "desc"
}

// HistoryResponse contains paginated move history
type HistoryResponse struct {
	Moves       []engine.MoveHistoryEntry `json:"moves"`
	TotalMoves  int                       `json:"total_moves"`
	Page        int                       `json:"page"`
	PageSize    int                       `json:"page_size"`
	TotalPages  int                       `json:"total_pages"`
	HasNext     bool                      `json:"has_next"`
	HasPrevious bool                      `json:"has_previous"`
}

// ConfigInfo provides information about a game configuration
type ConfigInfo struct {
	Filename        string `json:"filename"`
	ConfigID        string `json:"config_id"` // The identifier to use for session creation
	Name            string `json:"name"`      // Display name
	Description     string `json:"description"`
	BoardSize       int    `json:"board_size"`
	SkipSpawnOnNoop bool   `json:"skip_spawn_on_noop"`
}
