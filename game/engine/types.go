package engine

import (
	"errors"
	"fmt"
	"strings"
)

// Direction is a slide command
type Direction string

const (
	Up    Direction = "up"
	Down  Direction = "down"
	Left  Direction = "left"
	Right Direction = "right"

	// Validation constants
	DefaultBoardSize    = 4
	MinBoardSize        = 2
	MaxBoardSize        = 16
	SpawnValue          = 2
	InitialTiles        = 2
	MaxBulkMoves        = 50
	WebSocketBufferSize = 256
)

var (
	ErrInvalidDirection = errors.New("invalid direction")
	ErrMoveInProgress   = errors.New("move in progress: spawn pending")
	ErrNoPendingSpawn   = errors.New("no pending spawn")
)

// Directions lists every direction in a stable order
var Directions = []Direction{Up, Down, Left, Right}

// ParseDirection converts user input into a Direction
func ParseDirection(s string) (Direction, error) {
	d := Direction(strings.ToLower(strings.TrimSpace(s)))
	if !d.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidDirection, s)
	}
	return d, nil
}

// Valid reports whether d is one of the four directions
func (d Direction) Valid() bool {
	switch d {
	case Up, Down, Left, Right:
		return true
	}
	return false
}

// Vertical reports whether d slides columns rather than rows
func (d Direction) Vertical() bool {
	switch d {
	case Up, Down:
		return true
	case Left, Right:
		return false
	}
	panic(fmt.Sprintf("engine: unknown direction %q", string(d)))
}

// TowardEnd reports whether tiles travel toward the high indices (right/down)
func (d Direction) TowardEnd() bool {
	switch d {
	case Down, Right:
		return true
	case Up, Left:
		return false
	}
	panic(fmt.Sprintf("engine: unknown direction %q", string(d)))
}

// Position represents row,col coordinates
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Messages holds the user-facing texts of a configuration
type Messages struct {
	Welcome  string `json:"welcome"`
	Moved    string `json:"moved"`
	NoChange string `json:"no_change"`
	GameOver string `json:"game_over"`
}

// GameConfig represents the game configuration from JSON
type GameConfig struct {
	Name            string   `json:"name"`
	Description     string   `json:"description"`
	BoardSize       int      `json:"board_size"`
	SkipSpawnOnNoop bool     `json:"skip_spawn_on_noop"`
	Seed            uint64   `json:"seed,omitempty"`
	Messages        Messages `json:"messages"`
}

// GameState represents the complete game state
type GameState struct {
	Board        Board              `json:"board"`
	Size         int                `json:"size"`
	Score        int                `json:"score"`
	GameOver     bool               `json:"game_over"`
	Message      string             `json:"message"`
	ConfigName   string             `json:"config_name"`
	MaxTile      int                `json:"max_tile"`
	EmptyCells   int                `json:"empty_cells"`
	PendingSpawn bool               `json:"pending_spawn"`
	LastSpawn    *Position          `json:"last_spawn,omitempty"`
	MoveHistory  []MoveHistoryEntry `json:"move_history"`
	TotalMoves   int                `json:"total_moves"`

	// CurrentMoves tracks only the moves since the last reset. It mirrors MoveHistory entries
	// but gets cleared on reset while MoveHistory remains cumulative.
	CurrentMoves      []MoveHistoryEntry `json:"current_moves"`
	CurrentMovesCount int                `json:"current_moves_count"`
}

// Clone returns a deep copy that shares no mutable storage with gs.
// Recorded history entries are never modified, so they are copied by value.
func (gs *GameState) Clone() *GameState {
	if gs == nil {
		return nil
	}
	c := *gs
	c.Board = gs.Board.Clone()
	if gs.LastSpawn != nil {
		pos := *gs.LastSpawn
		c.LastSpawn = &pos
	}
	if gs.MoveHistory != nil {
		c.MoveHistory = append([]MoveHistoryEntry(nil), gs.MoveHistory...)
	}
	if gs.CurrentMoves != nil {
		c.CurrentMoves = append([]MoveHistoryEntry(nil), gs.CurrentMoves...)
	}
	return &c
}

// MoveHistoryEntry represents a single move in the game history
type MoveHistoryEntry struct {
	Action     Direction `json:"action"`
	Moved      bool      `json:"moved"`
	ScoreDelta int       `json:"score_delta"`
	Merges     int       `json:"merges"`
	Score      int       `json:"score"`
	Spawned    *Position `json:"spawned,omitempty"`
	Timestamp  int64     `json:"timestamp"`
	MoveNumber int       `json:"move_number"`
}

// MoveOutcome is what a caller sees after a move or one of its phases
type MoveOutcome struct {
	Direction    Direction `json:"direction"`
	Accepted     bool      `json:"accepted"`
	Moved        bool      `json:"moved"`
	ScoreDelta   int       `json:"score_delta"`
	Merges       int       `json:"merges"`
	Spawned      *Position `json:"spawned,omitempty"`
	SpawnPending bool      `json:"spawn_pending"`
	Board        Board     `json:"board"`
	Score        int       `json:"score"`
	Terminal     bool      `json:"terminal"`
}
