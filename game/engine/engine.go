package engine

import "fmt"

// Engine provides the main interface for game operations
type Engine interface {
	// Game state management
	GetState() *GameState
	SetState(state *GameState) error
	Reset() *GameState
	IsGameOver() bool
	GetScore() int
	GetBoard() Board

	// Movement operations
	Move(direction Direction) (*MoveOutcome, error)
	Collapse(direction Direction) (*MoveOutcome, error)
	Spawn() (*MoveOutcome, error)
	CanMove(direction Direction) bool
	GetPossibleMoves() []Direction

	// Configuration
	GetConfig() *GameConfig
	SetConfig(config *GameConfig) error

	// History
	GetMoveHistory() []MoveHistoryEntry
	GetLastMove() *MoveHistoryEntry
}

type enginePhase int

const (
	phaseIdle enginePhase = iota
	phaseMoveInProgress
)

// GameEngine implements the Engine interface
type GameEngine struct {
	state   *GameState
	config  *GameConfig
	rng     RandomSource
	phase   enginePhase
	pending MoveHistoryEntry
}

// NewEngine creates a new game engine and starts a session on it
func NewEngine(config *GameConfig) (*GameEngine, error) {
	if err := ValidateGameConfig(config); err != nil {
		return nil, err
	}
	return NewEngineWithRandom(config, NewRandomSource(config.Seed))
}

// NewEngineWithRandom is NewEngine with an explicit spawn source
func NewEngineWithRandom(config *GameConfig, rng RandomSource) (*GameEngine, error) {
	if err := ValidateGameConfig(config); err != nil {
		return nil, err
	}
	if rng == nil {
		return nil, fmt.Errorf("random source cannot be nil")
	}

	engine := &GameEngine{
		config: config,
		rng:    rng,
		state:  InitGameStateFromConfig(config),
	}
	engine.start()
	return engine, nil
}

// NewEngineWithSize starts a session with the default rules on a size x size board
func NewEngineWithSize(size int) (*GameEngine, error) {
	config := DefaultGameConfig()
	config.BoardSize = size
	return NewEngine(config)
}

// NewEngineWithDefaults creates a new game engine with default configuration
func NewEngineWithDefaults() *GameEngine {
	config := DefaultGameConfig()
	engine := &GameEngine{
		config: config,
		rng:    NewRandomSource(0),
		state:  InitGameStateFromConfig(config),
	}
	engine.start()
	return engine
}

func (e *GameEngine) start() {
	for i := 0; i < InitialTiles; i++ {
		e.state.SpawnTile(e.rng)
	}
}

// GetState returns the current game state
func (e *GameEngine) GetState() *GameState {
	return e.state
}

// Snapshot returns a copy of the state that later moves cannot change
func (e *GameEngine) Snapshot() *GameState {
	return e.state.Clone()
}

// SetState sets the game state
func (e *GameEngine) SetState(state *GameState) error {
	if state == nil {
		return fmt.Errorf("state cannot be nil")
	}
	n := len(state.Board)
	if n < MinBoardSize || n > MaxBoardSize {
		return fmt.Errorf("board size %d out of range", n)
	}
	for r, row := range state.Board {
		if len(row) != n {
			return fmt.Errorf("board row %d has %d cells, want %d", r, len(row), n)
		}
		for c, v := range row {
			if !IsTileValue(v) {
				return fmt.Errorf("cell (%d,%d) holds invalid tile %d", r, c, v)
			}
		}
	}

	e.state = state
	e.state.refresh()
	e.phase = phaseIdle
	if state.PendingSpawn {
		e.phase = phaseMoveInProgress
	}
	return nil
}

// Reset starts a new session: empty board, zero score, two fresh tiles
func (e *GameEngine) Reset() *GameState {
	// Preserve cumulative history and totals across resets
	prevHistory := e.state.MoveHistory
	prevTotal := e.state.TotalMoves

	e.state = InitGameStateFromConfig(e.config)

	e.state.MoveHistory = prevHistory
	e.state.TotalMoves = prevTotal
	e.state.CurrentMoves = []MoveHistoryEntry{}
	e.state.CurrentMovesCount = 0

	e.phase = phaseIdle
	e.start()
	return e.state
}

// IsGameOver returns whether the game is over
func (e *GameEngine) IsGameOver() bool {
	return e.state.GameOver
}

// GetScore returns the current score
func (e *GameEngine) GetScore() int {
	return e.state.Score
}

// GetBoard returns a copy of the board
func (e *GameEngine) GetBoard() Board {
	return e.state.Board.Clone()
}

// Move collapses the board toward direction, spawns a tile and evaluates
// the terminal state in one call
func (e *GameEngine) Move(direction Direction) (*MoveOutcome, error) {
	outcome, err := e.Collapse(direction)
	if err != nil || !outcome.SpawnPending {
		return outcome, err
	}
	return e.Spawn()
}

// Collapse runs the first phase of a move. Unless the move is skipped the
// engine waits in the move-in-progress phase until Spawn is called.
func (e *GameEngine) Collapse(direction Direction) (*MoveOutcome, error) {
	if e.phase == phaseMoveInProgress {
		return nil, ErrMoveInProgress
	}
	if !direction.Valid() {
		panic(fmt.Sprintf("engine: unknown direction %q", string(direction)))
	}

	if e.state.GameOver {
		e.state.Message = fmt.Sprintf(e.config.Messages.GameOver, e.state.Score)
		return e.outcome(&MoveOutcome{Direction: direction}), nil
	}

	moved, delta, merges := e.state.Collapse(direction)
	e.pending = MoveHistoryEntry{
		Action:     direction,
		Moved:      moved,
		ScoreDelta: delta,
		Merges:     merges,
	}

	if !moved && e.config.SkipSpawnOnNoop {
		e.finishMove(nil)
		return e.outcome(e.pendingOutcome(nil)), nil
	}

	e.phase = phaseMoveInProgress
	e.state.PendingSpawn = true
	out := e.pendingOutcome(nil)
	out.SpawnPending = true
	return e.outcome(out), nil
}

// Spawn runs the second phase of a move started by Collapse
func (e *GameEngine) Spawn() (*MoveOutcome, error) {
	if e.phase != phaseMoveInProgress {
		return nil, ErrNoPendingSpawn
	}

	var spawned *Position
	if pos, ok := e.state.SpawnTile(e.rng); ok {
		spawned = &pos
		if !e.state.Board.HasEmptyCell() {
			e.state.EvaluateTerminal()
		}
	}

	e.finishMove(spawned)
	return e.outcome(e.pendingOutcome(spawned)), nil
}

func (e *GameEngine) finishMove(spawned *Position) {
	entry := e.pending
	entry.Spawned = spawned
	e.state.AddMoveToHistory(entry)

	e.phase = phaseIdle
	e.state.PendingSpawn = false

	msgs := e.config.Messages
	switch {
	case e.state.GameOver:
		e.state.Message = fmt.Sprintf(msgs.GameOver, e.state.Score)
	case !entry.Moved:
		e.state.Message = msgs.NoChange
	case msgs.Moved != "":
		e.state.Message = fmt.Sprintf(msgs.Moved, e.state.Score)
	default:
		e.state.Message = ""
	}
}

func (e *GameEngine) pendingOutcome(spawned *Position) *MoveOutcome {
	return &MoveOutcome{
		Direction:  e.pending.Action,
		Accepted:   true,
		Moved:      e.pending.Moved,
		ScoreDelta: e.pending.ScoreDelta,
		Merges:     e.pending.Merges,
		Spawned:    spawned,
	}
}

func (e *GameEngine) outcome(out *MoveOutcome) *MoveOutcome {
	out.Board = e.state.Board.Clone()
	out.Score = e.state.Score
	out.Terminal = e.state.GameOver
	return out
}

// CanMove checks if a move in the direction would change the board
func (e *GameEngine) CanMove(direction Direction) bool {
	if e.state.GameOver || e.phase != phaseIdle || !direction.Valid() {
		return false
	}
	return e.state.CanSlide(direction)
}

// GetPossibleMoves returns all directions that would change the board
func (e *GameEngine) GetPossibleMoves() []Direction {
	var possible []Direction
	for _, dir := range Directions {
		if e.CanMove(dir) {
			possible = append(possible, dir)
		}
	}
	return possible
}

// GetConfig returns the current game configuration
func (e *GameEngine) GetConfig() *GameConfig {
	return e.config
}

// SetConfig sets a new game configuration and restarts the game
func (e *GameEngine) SetConfig(config *GameConfig) error {
	if err := ValidateGameConfig(config); err != nil {
		return err
	}

	e.config = config
	if config.Seed != 0 {
		e.rng = NewRandomSource(config.Seed)
	}
	e.state = InitGameStateFromConfig(config)
	e.phase = phaseIdle
	e.start()
	return nil
}

// GetMoveHistory returns the complete move history
func (e *GameEngine) GetMoveHistory() []MoveHistoryEntry {
	return e.state.MoveHistory
}

// GetLastMove returns the last move made, or nil if no moves
func (e *GameEngine) GetLastMove() *MoveHistoryEntry {
	if len(e.state.MoveHistory) == 0 {
		return nil
	}
	return &e.state.MoveHistory[len(e.state.MoveHistory)-1]
}

// BulkMove executes moves in sequence and stops once the game is over
func (e *GameEngine) BulkMove(moves []Direction) ([]*MoveOutcome, error) {
	results := make([]*MoveOutcome, 0, len(moves))

	for _, direction := range moves {
		if e.IsGameOver() {
			break
		}

		outcome, err := e.Move(direction)
		if err != nil {
			return results, err
		}
		results = append(results, outcome)
	}

	return results, nil
}
