package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/wricardo/mcp-training/game2048/game/engine"
)

// ErrConfigNotFound is returned by ConfigManager implementations for unknown names
var ErrConfigNotFound = errors.New("configuration not found")

// gameServiceImpl implements the GameService interface
type gameServiceImpl struct {
	sessions SessionManager
	configs  ConfigManager
	mu       sync.RWMutex
}

// NewGameService creates a new game service instance
func NewGameService(sessions SessionManager, configs ConfigManager) GameService {
	return &gameServiceImpl{
		sessions: sessions,
		configs:  configs,
	}
}

// getConfigID returns the config_id for a given config name, used for consistent API responses
func (s *gameServiceImpl) getConfigID(configName string) string {
	availableConfigs, err := s.configs.ListConfigs()
	if err == nil {
		for _, cfg := range availableConfigs {
			if cfg.Name == configName {
				return cfg.ConfigID
			}
		}
	}
	if configName == "" {
		return "default"
	}
	return configName
}

func (s *gameServiceImpl) sessionInfo(sess *Session, configID string) *SessionInfo {
	return &SessionInfo{
		ID:             sess.ID,
		ConfigName:     configID,
		CreatedAt:      sess.CreatedAt,
		LastAccessedAt: sess.LastAccessedAt,
		GameState:      sess.Engine.Snapshot(),
		GameConfig:     sess.Config,
	}
}

// CreateSession creates a new game session
func (s *gameServiceImpl) CreateSession(ctx context.Context, configName string) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var config *engine.GameConfig
	var err error
	if configName != "" {
		config, err = s.configs.LoadConfig(configName)
		if err != nil {
			if errors.Is(err, ErrConfigNotFound) {
				availableConfigs, listErr := s.configs.ListConfigs()
				if listErr == nil && len(availableConfigs) > 0 {
					var configIDs []string
					for _, cfg := range availableConfigs {
						configIDs = append(configIDs, cfg.ConfigID)
					}
					return nil, fmt.Errorf("config '%s' not found, available configs: %v: %w", configName, configIDs, err)
				}
				return nil, fmt.Errorf("config '%s' not found, use /api/configs to list available configurations: %w", configName, err)
			}
			return nil, fmt.Errorf("failed to load config %s: %w", configName, err)
		}
	} else {
		config = s.configs.GetDefault()
	}

	// Let session manager generate a proper 4-character ID
	sess, err := s.sessions.Create("", config)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	configID := configName
	if configID == "" {
		configID = s.getConfigID(config.Name)
	}

	log.Info().Str("session", sess.ID).Str("config", configID).Msg("session created")
	return s.sessionInfo(sess, configID), nil
}

// GetSession retrieves session information
func (s *gameServiceImpl) GetSession(ctx context.Context, sessionID string) (*SessionInfo, error) {
	// UpdateLastAccessed writes the session, which readers under RLock see
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)
	return s.sessionInfo(sess, s.getConfigID(sess.Config.Name)), nil
}

// ListSessions returns all active sessions
func (s *gameServiceImpl) ListSessions(ctx context.Context) ([]*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := s.sessions.List()
	result := make([]*SessionInfo, 0, len(sessions))
	for _, sess := range sessions {
		result = append(result, s.sessionInfo(sess, s.getConfigID(sess.Config.Name)))
	}

	return result, nil
}

// DeleteSession removes a session
func (s *gameServiceImpl) DeleteSession(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.sessions.Delete(sessionID); err != nil {
		return err
	}
	log.Info().Str("session", sessionID).Msg("session deleted")
	return nil
}

// Move executes a single move for a session
func (s *gameServiceImpl) Move(ctx context.Context, sessionID, direction string, reset bool) (*MoveResult, error) {
	dir, err := engine.ParseDirection(direction)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	s.sessions.UpdateLastAccessed(sessionID)

	events := []GameEvent{}
	if reset {
		sess.Engine.Reset()
		events = append(events, resetEvent())
	}

	outcome, err := sess.Engine.Move(dir)
	if err != nil {
		return nil, fmt.Errorf("move %s: %w", dir, err)
	}

	state := sess.Engine.Snapshot()
	logOutcome(sessionID, outcome)

	return &MoveResult{
		Success:       outcome.Accepted,
		GameState:     state,
		Message:       state.Message,
		Events:        append(events, outcomeEvents(outcome, state)...),
		Outcome:       outcome,
		PossibleMoves: possibleMoves(sess.Engine),
	}, nil
}

// Collapse runs the first phase of a two-phase move
func (s *gameServiceImpl) Collapse(ctx context.Context, sessionID, direction string) (*MoveResult, error) {
	dir, err := engine.ParseDirection(direction)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	s.sessions.UpdateLastAccessed(sessionID)

	outcome, err := sess.Engine.Collapse(dir)
	if err != nil {
		return nil, fmt.Errorf("collapse %s: %w", dir, err)
	}

	state := sess.Engine.Snapshot()
	log.Debug().Str("session", sessionID).Str("direction", string(dir)).
		Bool("spawn_pending", outcome.SpawnPending).Int("score", outcome.Score).Msg("collapse")

	return &MoveResult{
		Success:       outcome.Accepted,
		GameState:     state,
		Message:       state.Message,
		Events:        outcomeEvents(outcome, state),
		Outcome:       outcome,
		PossibleMoves: possibleMoves(sess.Engine),
	}, nil
}

// Spawn completes a move started by Collapse
func (s *gameServiceImpl) Spawn(ctx context.Context, sessionID string) (*MoveResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	s.sessions.UpdateLastAccessed(sessionID)

	outcome, err := sess.Engine.Spawn()
	if err != nil {
		return nil, fmt.Errorf("spawn: %w", err)
	}

	state := sess.Engine.Snapshot()
	logOutcome(sessionID, outcome)

	var events []GameEvent
	if outcome.Spawned != nil {
		events = append(events, spawnEvent(outcome.Spawned))
	}
	if outcome.Terminal {
		events = append(events, gameOverEvent(state))
	}

	return &MoveResult{
		Success:       outcome.Accepted,
		GameState:     state,
		Message:       state.Message,
		Events:        events,
		Outcome:       outcome,
		PossibleMoves: possibleMoves(sess.Engine),
	}, nil
}

// BulkMove executes multiple moves in sequence
func (s *gameServiceImpl) BulkMove(ctx context.Context, sessionID string, moves []string, reset bool) (*BulkMoveResult, error) {
	directions := make([]engine.Direction, 0, len(moves))
	for i, move := range moves {
		dir, err := engine.ParseDirection(move)
		if err != nil {
			return nil, fmt.Errorf("move %d: %w", i+1, err)
		}
		directions = append(directions, dir)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	s.sessions.UpdateLastAccessed(sessionID)

	result := &BulkMoveResult{
		RequestedMoves: len(moves),
		Events:         make([]GameEvent, 0),
		Success:        true,
	}

	if reset {
		sess.Engine.Reset()
		result.Events = append(result.Events, resetEvent())
	}

	startState := sess.Engine.GetState()
	result.StartScore = startState.Score
	wasOver := startState.GameOver

	// Limit moves to prevent abuse
	if len(directions) > engine.MaxBulkMoves {
		result.Truncated = true
		result.Limit = engine.MaxBulkMoves
		directions = directions[:engine.MaxBulkMoves]
	}

	if startState.GameOver && len(directions) > 0 {
		result.Success = false
		result.StoppedReason = "game is already over"
		result.StopReasonCode = StopAlreadyGameOver
		result.StoppedOnMove = 1
	}

	for i, dir := range directions {
		if sess.Engine.IsGameOver() {
			break
		}

		outcome, err := sess.Engine.Move(dir)
		if err != nil {
			return nil, fmt.Errorf("move %d (%s): %w", i+1, dir, err)
		}
		state := sess.Engine.GetState()

		result.MovesExecuted++
		result.Events = append(result.Events, outcomeEvents(outcome, state)...)
		result.Steps = append(result.Steps, StepInfo{
			Idx:        i + 1,
			Dir:        dir,
			Moved:      outcome.Moved,
			ScoreDelta: outcome.ScoreDelta,
			Merges:     outcome.Merges,
			Spawned:    outcome.Spawned,
			ScoreAfter: outcome.Score,
			GameOver:   outcome.Terminal,
		})

		if outcome.Terminal && i < len(directions)-1 {
			result.StoppedReason = fmt.Sprintf("game over after move %d", i+1)
			result.StopReasonCode = StopGameOver
			result.StoppedOnMove = i + 1
		}
	}

	endState := sess.Engine.Snapshot()
	result.GameState = endState
	result.EndScore = endState.Score
	result.ScoreDelta = endState.Score - result.StartScore
	result.MaxTile = endState.MaxTile
	result.GameOver = endState.GameOver
	result.EndedGame = !wasOver && endState.GameOver
	result.Message = endState.Message
	result.PossibleMoves = possibleMoves(sess.Engine)

	log.Debug().Str("session", sessionID).Int("executed", result.MovesExecuted).
		Int("score", result.EndScore).Bool("game_over", result.GameOver).Msg("bulk move")

	return result, nil
}

// Reset resets a game session to initial state
func (s *gameServiceImpl) Reset(ctx context.Context, sessionID string) (*engine.GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)
	sess.Engine.Reset()
	log.Info().Str("session", sessionID).Msg("session reset")
	return sess.Engine.Snapshot(), nil
}

// GetGameState retrieves the current game state
func (s *gameServiceImpl) GetGameState(ctx context.Context, sessionID string) (*engine.GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)
	return sess.Engine.Snapshot(), nil
}

// GetMoveHistory returns paginated move history
func (s *gameServiceImpl) GetMoveHistory(ctx context.Context, sessionID string, opts HistoryOptions) (*HistoryResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	history := sess.Engine.GetMoveHistory()
	total := len(history)

	// Apply defaults
	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.Limit <= 0 {
		opts.Limit = 20
	}
	if opts.Limit > 100 {
		opts.Limit = 100
	}
	if opts.Order != "asc" {
		opts.Order = "desc"
	}

	totalPages := (total + opts.Limit - 1) / opts.Limit
	if totalPages == 0 {
		totalPages = 1
	}

	start := (opts.Page - 1) * opts.Limit
	end := start + opts.Limit
	if end > total {
		end = total
	}

	var moves []engine.MoveHistoryEntry
	if opts.Order == "desc" {
		// Most recent first
		for i := total - 1 - start; i >= 0 && i >= total-end; i-- {
			moves = append(moves, history[i])
		}
	} else if start < total {
		moves = append([]engine.MoveHistoryEntry(nil), history[start:end]...)
	}

	if moves == nil {
		moves = []engine.MoveHistoryEntry{}
	}

	return &HistoryResponse{
		Moves:       moves,
		TotalMoves:  total,
		Page:        opts.Page,
		PageSize:    opts.Limit,
		TotalPages:  totalPages,
		HasNext:     opts.Page < totalPages,
		HasPrevious: opts.Page > 1,
	}, nil
}

// ListConfigs returns available game configurations
func (s *gameServiceImpl) ListConfigs(ctx context.Context) ([]*ConfigInfo, error) {
	return s.configs.ListConfigs()
}

// LoadConfig loads a specific game configuration
func (s *gameServiceImpl) LoadConfig(ctx context.Context, configName string) (*engine.GameConfig, error) {
	return s.configs.LoadConfig(configName)
}

// SaveConfig saves a game configuration to disk
func (s *gameServiceImpl) SaveConfig(ctx context.Context, configName string, config *engine.GameConfig) error {
	if err := s.configs.SaveConfig(configName, config); err != nil {
		return err
	}
	log.Info().Str("config", configName).Msg("config saved")
	return nil
}

func possibleMoves(eng *engine.GameEngine) []engine.Direction {
	moves := eng.GetPossibleMoves()
	if moves == nil {
		moves = []engine.Direction{}
	}
	return moves
}

func logOutcome(sessionID string, outcome *engine.MoveOutcome) {
	log.Debug().
		Str("session", sessionID).
		Str("direction", string(outcome.Direction)).
		Bool("accepted", outcome.Accepted).
		Bool("moved", outcome.Moved).
		Int("score", outcome.Score).
		Bool("terminal", outcome.Terminal).
		Msg("move")
	if outcome.Terminal && outcome.Accepted {
		log.Info().Str("session", sessionID).Int("score", outcome.Score).Msg("game over")
	}
}

// outcomeEvents generates events from a move outcome
func outcomeEvents(outcome *engine.MoveOutcome, state *engine.GameState) []GameEvent {
	now := time.Now()

	if !outcome.Accepted {
		return []GameEvent{{
			Type:      EventRejected,
			Message:   fmt.Sprintf("Move %s rejected: game is over", outcome.Direction),
			Timestamp: now,
		}}
	}

	events := []GameEvent{}
	if outcome.Moved {
		events = append(events, GameEvent{
			Type:      EventMove,
			Message:   fmt.Sprintf("Moved %s", outcome.Direction),
			Timestamp: now,
		})
	} else {
		events = append(events, GameEvent{
			Type:      EventNoChange,
			Message:   fmt.Sprintf("Nothing moved %s", outcome.Direction),
			Timestamp: now,
		})
	}

	if outcome.Merges > 0 {
		events = append(events, GameEvent{
			Type:      EventMerge,
			Message:   fmt.Sprintf("%d merge(s) for +%d points", outcome.Merges, outcome.ScoreDelta),
			Timestamp: now,
		})
	}

	if outcome.Spawned != nil {
		events = append(events, spawnEvent(outcome.Spawned))
	}

	if outcome.Terminal {
		events = append(events, gameOverEvent(state))
	}

	return events
}

func spawnEvent(pos *engine.Position) GameEvent {
	return GameEvent{
		Type:      EventSpawn,
		Message:   fmt.Sprintf("New %d tile at (%d,%d)", engine.SpawnValue, pos.Row, pos.Col),
		Timestamp: time.Now(),
		Position:  pos,
	}
}

func gameOverEvent(state *engine.GameState) GameEvent {
	return GameEvent{
		Type:      EventGameOver,
		Message:   state.Message,
		Timestamp: time.Now(),
	}
}

func resetEvent() GameEvent {
	return GameEvent{
		Type:      EventReset,
		Message:   "Game reset to initial state",
		Timestamp: time.Now(),
	}
}
