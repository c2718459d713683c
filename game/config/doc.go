// Package config provides configuration management for the 2048 game server.
//
// The config package handles:
//   - Loading game configurations from JSON files
//   - Validation through engine.ValidateGameConfig
//   - Default configuration management
//   - Configuration discovery and listing
//
// Configuration Format:
//
// Game configurations are stored as JSON files in the configs directory.
// Each configuration defines the board size, whether a move that slides
// nothing still spawns a tile, an optional spawn seed and the messages shown
// to players:
//
//	{
//	  "name": "classic",
//	  "description": "Classic 4x4 board",
//	  "board_size": 4,
//	  "messages": {
//	    "welcome": "Join the tiles, get to 2048!",
//	    "moved": "Score: %d",
//	    "no_change": "Nothing moved",
//	    "game_over": "Game over! Final score: %d"
//	  }
//	}
//
// Usage:
//
//	manager, err := config.NewManager("configs")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	gameConfig, err := manager.LoadConfig("small")
//	defaultConfig := manager.GetDefault()
//	configs, err := manager.ListConfigs()
//
// When classic.json is missing the first valid file becomes the default, and
// with no usable file at all the built-in classic rules are used.
package config
