// Command play runs 2048 in the terminal.
//
// Arrow keys, WASD and hjkl slide the tiles; dragging with the mouse swipes.
// When the board locks up a cover screen shows the final score and r (or a
// click) starts a new game.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/wricardo/mcp-training/game2048/game/config"
	"github.com/wricardo/mcp-training/game2048/game/engine"
)

func main() {
	cmd := &cli.Command{
		Name:  "play",
		Usage: "Play 2048 in the terminal",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config-dir",
				Value:   "configs",
				Usage:   "Directory containing game configurations",
				Sources: cli.EnvVars("CONFIG_DIR"),
			},
			&cli.StringFlag{
				Name:  "config",
				Value: config.DefaultConfigName,
				Usage: "Config to play",
			},
			&cli.IntFlag{
				Name:  "size",
				Usage: "Override the board size",
			},
			&cli.Uint64Flag{
				Name:  "seed",
				Usage: "Seed for tile spawns (0 picks one)",
			},
			&cli.StringFlag{
				Name:  "log-file",
				Usage: "Write logs to this file",
			},
		},
		Action: run,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	// The screen owns the terminal, so logs only go to a file when asked
	log.Logger = zerolog.New(io.Discard)
	if path := cmd.String("log-file"); path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		defer f.Close()
		log.Logger = zerolog.New(f).With().Timestamp().Logger()
	}

	cfg, err := loadConfig(cmd.String("config-dir"), cmd.String("config"), cmd.Int("size"))
	if err != nil {
		return err
	}

	seed := cmd.Uint64("seed")
	if seed == 0 {
		seed = cfg.Seed
	}
	eng, err := engine.NewEngineWithRandom(cfg, engine.NewRandomSource(seed))
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize screen: %w", err)
	}
	defer screen.Fini()
	screen.EnableMouse()

	log.Info().Str("config", cfg.Name).Int("board_size", cfg.BoardSize).Msg("starting game")
	newGame(screen, eng).run()
	log.Info().Int("score", eng.GetScore()).Msg("quit")
	return nil
}

// loadConfig reads the named config, falling back to the built-in classic
// rules when the config directory is missing
func loadConfig(dir, name string, size int) (*engine.GameConfig, error) {
	var cfg *engine.GameConfig

	manager, err := config.NewManager(dir)
	if err != nil {
		if name != config.DefaultConfigName {
			return nil, err
		}
		cfg = engine.DefaultGameConfig()
	} else {
		cfg, err = manager.LoadConfig(name)
		if err != nil {
			return nil, err
		}
	}

	if size != 0 {
		resized := *cfg
		resized.BoardSize = size
		if err := engine.ValidateGameConfig(&resized); err != nil {
			return nil, err
		}
		cfg = &resized
	}
	return cfg, nil
}
