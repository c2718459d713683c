// Command autoplay plays 2048 against a running server through the REST API.
//
// Each attempt resets the session and plays until the board locks up, the
// target tile appears or the move limit is hit. A WebSocket client on the same
// session can watch the games live.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/wricardo/mcp-training/game2048/game/engine"
)

var errTargetNotReached = errors.New("target tile not reached")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	if err := newCommand().Run(ctx, os.Args); err != nil {
		log.Fatal().Err(err).Msg("autoplay finished")
	}
}

func newCommand() *cli.Command {
	return &cli.Command{
		Name:  "autoplay",
		Usage: "Let a bot play 2048 on a game server",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "url", Value: "http://localhost:8080", Usage: "Game server URL", Sources: cli.EnvVars("GAME_URL")},
			&cli.StringFlag{Name: "config", Usage: "Config ID for a new session"},
			&cli.StringFlag{Name: "continue", Usage: "Play on an existing session by ID"},
			&cli.IntFlag{Name: "target", Value: 2048, Usage: "Stop once this tile appears"},
			&cli.IntFlag{Name: "max-moves", Value: 20000, Usage: "Maximum moves per attempt"},
			&cli.IntFlag{Name: "max-attempts", Value: 10, Usage: "Maximum attempts before giving up"},
			&cli.DurationFlag{Name: "delay", Usage: "Delay between moves"},
			&cli.BoolFlag{Name: "verbose", Aliases: []string{"v"}, Usage: "Log progress every 100 moves"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Bool("verbose") {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
			}
			opts := playOptions{
				Target:      cmd.Int("target"),
				MaxMoves:    cmd.Int("max-moves"),
				MaxAttempts: cmd.Int("max-attempts"),
				Delay:       cmd.Duration("delay"),
			}
			_, err := play(ctx, NewClient(cmd.String("url")), cmd.String("config"), cmd.String("continue"), opts)
			return err
		},
	}
}

type playOptions struct {
	Target      int
	MaxMoves    int
	MaxAttempts int
	Delay       time.Duration
}

// attemptResult summarises one game
type attemptResult struct {
	Attempt int
	Moves   int
	Score   int
	MaxTile int
	Won     bool
}

// play runs attempts until one reaches the target tile
func play(ctx context.Context, client *Client, configID, sessionID string, opts playOptions) ([]attemptResult, error) {
	log.Info().Str("url", client.baseURL).Msg("connecting to game server")

	var state *engine.GameState
	var err error
	if sessionID != "" {
		state, err = client.Resume(ctx, sessionID)
		if err != nil {
			log.Warn().Err(err).Str("session", sessionID).Msg("failed to resume session, creating a new one")
		}
	}
	if state == nil {
		state, err = client.CreateSession(ctx, configID)
		if err != nil {
			return nil, err
		}
		log.Info().Str("session", client.SessionID()).Str("config", state.ConfigName).
			Int("board_size", state.Size).Msg("session created")
	}

	strategy := NewStrategy()
	var results []attemptResult

	for attempt := 1; attempt <= opts.MaxAttempts; attempt++ {
		if attempt > 1 || state.CurrentMovesCount > 0 || state.GameOver {
			if state, err = client.Reset(ctx); err != nil {
				return results, err
			}
		}
		strategy.Reset()

		result, err := playAttempt(ctx, client, strategy, state, opts)
		result.Attempt = attempt
		results = append(results, result)
		if err != nil {
			return results, err
		}

		log.Info().Int("attempt", attempt).Int("moves", result.Moves).Int("score", result.Score).
			Int("max_tile", result.MaxTile).Interface("directions", strategy.counts).Msg("attempt finished")

		if result.Won {
			log.Info().Str("session", client.SessionID()).Int("attempt", attempt).Msg("target reached")
			return results, nil
		}
	}

	log.Warn().Str("session", client.SessionID()).Int("attempts", len(results)).Msg("giving up")
	return results, fmt.Errorf("%w after %d attempts", errTargetNotReached, len(results))
}

func playAttempt(ctx context.Context, client *Client, strategy *Strategy, state *engine.GameState, opts playOptions) (attemptResult, error) {
	result := attemptResult{}

	for !state.GameOver && result.Moves < opts.MaxMoves {
		if state.MaxTile >= opts.Target {
			break
		}

		dir := strategy.NextMove(state)
		if dir == "" {
			break
		}

		moved, err := client.Move(ctx, dir)
		if err != nil {
			return result, err
		}
		state = moved.GameState
		result.Moves++

		if result.Moves%100 == 0 {
			log.Debug().Int("moves", result.Moves).Int("score", state.Score).Int("max_tile", state.MaxTile).Msg("progress")
		}

		if opts.Delay > 0 {
			select {
			case <-ctx.Done():
				return result, ctx.Err()
			case <-time.After(opts.Delay):
			}
		}
	}

	result.Score = state.Score
	result.MaxTile = state.MaxTile
	result.Won = state.MaxTile >= opts.Target
	return result, nil
}
