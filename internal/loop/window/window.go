// Package window runs a session in a desktop window with ebiten.
package window

import (
	"fmt"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/tomz197/centerfire/internal/loop"
)

var (
	backgroundColor = color.RGBA{0, 0, 0, 255}
	bandColor       = color.RGBA{40, 20, 20, 255}
	playerColor     = color.RGBA{255, 255, 255, 255}
	asteroidColor   = color.RGBA{200, 200, 200, 255}
	hazardColor     = color.RGBA{255, 80, 80, 120}
	aimColor        = color.RGBA{0, 255, 0, 200}
)

// Game adapts a loop.State to ebiten.Game.
type Game struct {
	state *loop.State
}

// New wraps state for ebiten.RunGame.
func New(state *loop.State) *Game {
	return &Game{state: state}
}

// State returns the session being played.
func (g *Game) State() *loop.State {
	return g.state
}

// Update advances the session by one tick. Escape or Q ends the program.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}

	cx, cy := ebiten.CursorPosition()
	g.state.Step(loop.Frame{
		Delta:   time.Second / time.Duration(ebiten.TPS()),
		Pointer: loop.PointerAt(g.state.Arena, float64(cx), float64(cy)),
		Fire:    inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft),
	})
	return nil
}

// Draw renders the arena.
func (g *Game) Draw(screen *ebiten.Image) {
	s := g.state
	arena := s.Arena
	screen.Fill(backgroundColor)

	w, h, m := float32(arena.Width), float32(arena.Height), float32(arena.Margin)
	vector.StrokeRect(screen, m/2, m/2, w-m, h-m, m, bandColor, false)

	ox, oy := arena.WorldToScreen(0, 0)
	vector.StrokeCircle(screen, float32(ox), float32(oy), float32(s.HazardRadius), 1, hazardColor, true)

	for _, a := range s.Asteroids {
		sx, sy := arena.WorldToScreen(a.X, a.Y)
		vector.DrawFilledCircle(screen, float32(sx), float32(sy), float32(a.Radius), asteroidColor, true)
	}

	corners := s.Player.Corners()
	for i := range corners {
		j := (i + 1) % len(corners)
		x0, y0 := arena.WorldToScreen(corners[i][0], corners[i][1])
		x1, y1 := arena.WorldToScreen(corners[j][0], corners[j][1])
		vector.StrokeLine(screen, float32(x0), float32(y0), float32(x1), float32(y1), 2, playerColor, true)
	}

	if x, y, ok := s.Aim(); ok && !s.GameOver() {
		sx, sy := arena.WorldToScreen(x, y)
		vector.StrokeCircle(screen, float32(sx), float32(sy), float32(s.HazardRadius), 1, aimColor, true)
	}

	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Score: %d", s.Score), 10, 10)
	if s.GameOver() {
		msg := fmt.Sprintf("GAME OVER  Score: %d  Survived %s  [Q] quit",
			s.Score, s.Elapsed.Round(time.Second/10))
		ebitenutil.DebugPrintAt(screen, msg, int(arena.Width)/2-len(msg)*3, int(arena.Height)/2)
	}
}

// Layout keeps the logical screen at the arena size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return int(g.state.Arena.Width), int(g.state.Arena.Height)
}
