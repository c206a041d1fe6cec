package client

import (
	"fmt"
	"time"

	"github.com/tomz197/centerfire/internal/draw"
	"github.com/tomz197/centerfire/internal/loop"
	"github.com/tomz197/centerfire/internal/loop/config"
)

// crosshairSize is the half-length of the aim marker in arena units.
const crosshairSize = 8.0

// drawFrame draws the current frame.
func (c *Client) drawFrame() error {
	cw := c.chunkWriter
	cw.WriteString("\033[H\033[2J")

	c.canvas.Clear()
	c.drawWorld()
	c.canvas.Render(cw)
	c.canvas.RenderBorder(cw)

	c.drawUI()

	return cw.Flush()
}

// drawWorld draws asteroids, the player and the aim marker on the canvas.
func (c *Client) drawWorld() {
	arena := c.game.Arena

	for _, a := range c.game.Asteroids {
		sx, sy := arena.WorldToScreen(a.X, a.Y)
		c.canvas.DrawCircle(sx, sy, a.Radius)
	}

	corners := c.game.Player.Corners()
	body := c.canvas.BorrowPoints(len(corners))
	for i, p := range corners {
		sx, sy := arena.WorldToScreen(p[0], p[1])
		body[i] = draw.Point{X: sx, Y: sy}
	}
	c.canvas.DrawPolygon(body, true)

	if x, y, ok := c.game.Aim(); ok && c.game.Phase == loop.PhasePlaying {
		sx, sy := arena.WorldToScreen(x, y)
		c.canvas.DrawLine(draw.Point{X: sx - crosshairSize, Y: sy}, draw.Point{X: sx + crosshairSize, Y: sy})
		c.canvas.DrawLine(draw.Point{X: sx, Y: sy - crosshairSize}, draw.Point{X: sx, Y: sy + crosshairSize})
	}
}

// drawUI draws the text overlay.
func (c *Client) drawUI() {
	termWidth := c.canvas.TerminalWidth()
	termHeight := c.canvas.TerminalHeight()
	// Panels sit over the player, at the arena center.
	arena := c.game.Arena
	centerX, centerY := c.canvas.LogicalToTerminal(arena.Width/2, arena.Height/2)

	if c.state.isInactive {
		c.drawInactivityScreen(centerX, centerY)
		return
	}

	switch c.game.Phase {
	case loop.PhasePlaying:
		c.drawPlayingHUD(termWidth, termHeight)
	case loop.PhaseGameOver:
		c.drawGameOverScreen(centerX, centerY)
	}
}

// drawPlayingHUD draws the in-game HUD.
func (c *Client) drawPlayingHUD(termWidth, termHeight int) {
	cw := c.chunkWriter
	cw.WriteAt(2, 1, fmt.Sprintf("Score: %d", c.game.Score))

	count := fmt.Sprintf("Asteroids: %d", len(c.game.Asteroids))
	cw.WriteAt(termWidth-len(count)-1, 1, count)

	hint := "Mouse: aim   Click/SPACE: fire   Q: quit"
	if len(hint) < termWidth {
		cw.WriteCentered(termWidth/2, termHeight, hint)
	}
}

// drawGameOverScreen draws the final score over the frozen arena.
func (c *Client) drawGameOverScreen(centerX, centerY int) {
	titleArt := []string{
		`   ___   _   __  __ ___    _____   _____ ___  `,
		`  / __| /_\ |  \/  | __|  / _ \ \ / / __| _ \ `,
		` | (_ |/ _ \| |\/| | _|  | (_) \ V /| _||   / `,
		`  \___/_/ \_\_|  |_|___|  \___/ \_/ |___|_|_\ `,
	}

	cw := c.chunkWriter
	startY := centerY - 4
	if len(titleArt[0]) < c.canvas.TerminalWidth() {
		for i, line := range titleArt {
			cw.WriteCentered(centerX, startY+i, line)
		}
	} else {
		cw.WriteCentered(centerX, startY+2, "GAME OVER")
	}

	cw.WriteCentered(centerX, startY+len(titleArt)+1, fmt.Sprintf("Score: %d", c.game.Score))
	cw.WriteCentered(centerX, startY+len(titleArt)+2, fmt.Sprintf("Survived %s", c.game.Elapsed.Round(time.Second/10)))

	if time.Now().UnixMilli()/600%2 == 0 {
		cw.WriteCentered(centerX, startY+len(titleArt)+4, ">>  Press Q to quit  <<")
	}
}

// drawInactivityScreen draws the inactivity warning screen.
func (c *Client) drawInactivityScreen(centerX, centerY int) {
	cw := c.chunkWriter
	cw.WriteCentered(centerX, centerY-2, "INACTIVITY WARNING")

	msg := fmt.Sprintf(
		"You have been inactive for too long. You will be disconnected in %d seconds.",
		int(config.InactivityDisconnectUser-time.Since(c.lastInput).Seconds()),
	)
	cw.WriteCentered(centerX, centerY, msg)
	cw.WriteCentered(centerX, centerY+2, "Press any key to continue")
}
