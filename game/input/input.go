// Package input translates keyboard and touch gestures into slide directions.
package input

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/wricardo/mcp-training/game2048/game/engine"
)

var (
	ErrUnknownKey = errors.New("unknown key")
	ErrNoSwipe    = errors.New("swipe has zero length")
)

var keyDirections = map[string]engine.Direction{
	// DOM KeyboardEvent.code values
	"arrowup":    engine.Up,
	"arrowdown":  engine.Down,
	"arrowleft":  engine.Left,
	"arrowright": engine.Right,

	"up":    engine.Up,
	"down":  engine.Down,
	"left":  engine.Left,
	"right": engine.Right,

	"w": engine.Up,
	"s": engine.Down,
	"a": engine.Left,
	"d": engine.Right,

	"k": engine.Up,
	"j": engine.Down,
	"h": engine.Left,
	"l": engine.Right,
}

// FromKey maps a key name to a direction. Matching is case-insensitive.
func FromKey(name string) (engine.Direction, error) {
	dir, ok := keyDirections[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownKey, name)
	}
	return dir, nil
}

// FromRune maps a single typed character (WASD or hjkl) to a direction
func FromRune(r rune) (engine.Direction, bool) {
	dir, ok := keyDirections[strings.ToLower(string(r))]
	return dir, ok
}

// Swipe converts a gesture in screen coordinates (y grows downward) into a
// direction. The axis with the larger travel wins; ties go horizontal.
func Swipe(startX, startY, endX, endY float64) (engine.Direction, error) {
	dx := endX - startX
	dy := endY - startY
	if dx == 0 && dy == 0 {
		return "", ErrNoSwipe
	}

	if math.Abs(dy) > math.Abs(dx) {
		if dy > 0 {
			return engine.Down, nil
		}
		return engine.Up, nil
	}
	if dx > 0 {
		return engine.Right, nil
	}
	return engine.Left, nil
}
