package main

import (
	"fmt"
	"strconv"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog/log"

	"github.com/wricardo/mcp-training/game2048/game/engine"
	"github.com/wricardo/mcp-training/game2048/game/input"
)

const (
	tileHeight   = 3
	minTileWidth = 6
	boardTop     = 2
	boardLeft    = 2
)

var (
	styleText  = tcell.StyleDefault
	styleTitle = tcell.StyleDefault.Bold(true)
	styleEmpty = tcell.StyleDefault.Background(tcell.ColorDarkSlateGray)
	styleCover = tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite)
)

// tileColors is indexed by log2 of the tile value
var tileColors = []tcell.Color{
	tcell.ColorDarkSlateGray,
	tcell.ColorBeige,         // 2
	tcell.ColorWheat,         // 4
	tcell.ColorSandyBrown,    // 8
	tcell.ColorCoral,         // 16
	tcell.ColorTomato,        // 32
	tcell.ColorOrangeRed,     // 64
	tcell.ColorKhaki,         // 128
	tcell.ColorGold,          // 256
	tcell.ColorGoldenrod,     // 512
	tcell.ColorDarkGoldenrod, // 1024
	tcell.ColorYellow,        // 2048
}

type action int

const (
	actionNone action = iota
	actionMove
	actionRestart
	actionQuit
)

// game drives one engine on a tcell screen
type game struct {
	screen tcell.Screen
	engine *engine.GameEngine
	best   int

	// pointer position at button press, for swipes
	dragging     bool
	dragX, dragY int
}

func newGame(screen tcell.Screen, eng *engine.GameEngine) *game {
	return &game{screen: screen, engine: eng}
}

// run polls events until the player quits
func (g *game) run() {
	g.draw()
	for {
		ev := g.screen.PollEvent()
		if ev == nil {
			return
		}
		if g.handleEvent(ev) == actionQuit {
			return
		}
		g.draw()
	}
}

func (g *game) handleEvent(ev tcell.Event) action {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return g.handleKey(ev)
	case *tcell.EventMouse:
		return g.handleMouse(ev)
	case *tcell.EventResize:
		g.screen.Sync()
	}
	return actionNone
}

func (g *game) handleKey(ev *tcell.EventKey) action {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return actionQuit
	case tcell.KeyUp:
		return g.move(engine.Up)
	case tcell.KeyDown:
		return g.move(engine.Down)
	case tcell.KeyLeft:
		return g.move(engine.Left)
	case tcell.KeyRight:
		return g.move(engine.Right)
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'Q':
			return actionQuit
		case 'r', 'R', ' ':
			return g.restart()
		}
		if dir, ok := input.FromRune(ev.Rune()); ok {
			return g.move(dir)
		}
	}
	return actionNone
}

func (g *game) handleMouse(ev *tcell.EventMouse) action {
	x, y := ev.Position()
	pressed := ev.Buttons()&tcell.Button1 != 0

	switch {
	case pressed && !g.dragging:
		g.dragging, g.dragX, g.dragY = true, x, y
	case !pressed && g.dragging:
		g.dragging = false
		dir, err := input.Swipe(float64(g.dragX), float64(g.dragY), float64(x), float64(y))
		if err != nil {
			// a click, not a swipe
			if g.engine.IsGameOver() {
				return g.restart()
			}
			return actionNone
		}
		return g.move(dir)
	}
	return actionNone
}

func (g *game) move(dir engine.Direction) action {
	if g.engine.IsGameOver() {
		return actionNone
	}
	outcome, err := g.engine.Move(dir)
	if err != nil {
		log.Warn().Err(err).Str("direction", string(dir)).Msg("move failed")
		return actionNone
	}
	g.best = max(g.best, outcome.Score)
	if outcome.Terminal {
		log.Info().Int("score", outcome.Score).Int("max_tile", engine.MaxTile(outcome.Board)).Msg("game over")
	}
	return actionMove
}

func (g *game) restart() action {
	g.best = max(g.best, g.engine.GetScore())
	g.engine.Reset()
	g.dragging = false
	return actionRestart
}

// tileWidth fits the widest tile with a margin on each side
func (g *game) tileWidth() int {
	width := len(strconv.Itoa(engine.MaxTile(g.engine.GetBoard()))) + 2
	return max(width, minTileWidth)
}

func (g *game) draw() {
	g.screen.Clear()
	state := g.engine.GetState()
	width := g.tileWidth()

	g.drawText(boardLeft, 0, styleTitle, fmt.Sprintf("2048  Score: %d  Best: %d", state.Score, max(g.best, state.Score)))

	for r, row := range state.Board {
		for c, v := range row {
			g.drawTile(boardLeft+c*(width+1), boardTop+r*(tileHeight+1), width, v)
		}
	}

	footerY := boardTop + state.Size*(tileHeight+1)
	g.drawText(boardLeft, footerY, styleText, "arrows/wasd/hjkl move, drag to swipe, r restart, q quit")
	if state.Message != "" && !state.GameOver {
		g.drawText(boardLeft, footerY+1, styleText, state.Message)
	}

	if state.GameOver {
		g.drawCover(state, width)
	}

	g.screen.Show()
}

func (g *game) drawTile(x, y, width, value int) {
	style := styleEmpty
	label := ""
	if value != 0 {
		style = tcell.StyleDefault.Background(tileColor(value)).Foreground(tcell.ColorBlack).Bold(true)
		label = strconv.Itoa(value)
	}

	for dy := 0; dy < tileHeight; dy++ {
		for dx := 0; dx < width; dx++ {
			g.screen.SetContent(x+dx, y+dy, ' ', nil, style)
		}
	}
	g.drawText(x+(width-len(label))/2, y+tileHeight/2, style, label)
}

// drawCover paints the game-over panel across the middle of the board
func (g *game) drawCover(state *engine.GameState, tileWidth int) {
	boardWidth := state.Size*(tileWidth+1) - 1
	lines := []string{
		"",
		state.Message,
		fmt.Sprintf("Max tile: %d", state.MaxTile),
		"",
		"r or click to play again, q to quit",
		"",
	}

	top := boardTop + (state.Size*(tileHeight+1)-len(lines))/2
	for i, line := range lines {
		width := max(boardWidth, len(line)+2)
		for dx := 0; dx < width; dx++ {
			g.screen.SetContent(boardLeft+dx, top+i, ' ', nil, styleCover)
		}
		g.drawText(boardLeft+(width-len(line))/2, top+i, styleCover, line)
	}
}

func (g *game) drawText(x, y int, style tcell.Style, text string) {
	for i, r := range []rune(text) {
		g.screen.SetContent(x+i, y, r, nil, style)
	}
}

func tileColor(value int) tcell.Color {
	idx := 0
	for v := value; v > 1; v >>= 1 {
		idx++
	}
	if idx >= len(tileColors) {
		return tcell.ColorWhite
	}
	return tileColors[idx]
}
