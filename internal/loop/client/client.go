// Package client runs one game session on an ANSI terminal: it reads keys
// and mouse reports, steps the simulation and draws it with a scaled
// half-block canvas.
package client

import (
	"bufio"
	"io"
	"time"

	"github.com/tomz197/centerfire/internal/draw"
	"github.com/tomz197/centerfire/internal/input"
	"github.com/tomz197/centerfire/internal/loop"
	"github.com/tomz197/centerfire/internal/loop/config"
	"github.com/tomz197/centerfire/internal/object"
)

// Client handles rendering and input for a single terminal.
type Client struct {
	game         *loop.State
	state        *ClientState
	canvas       *draw.Canvas
	chunkWriter  *draw.ChunkWriter // Accumulates the frame for chunked output
	writer       io.Writer
	inputStream  *input.Stream
	lastInput    time.Time
	termSizeFunc draw.TermSizeFunc
}

// ClientOptions configures the client.
type ClientOptions struct {
	TermSizeFunc draw.TermSizeFunc
	Settings     *config.Settings // nil uses config.Default()
	Rand         object.Rand      // nil seeds from Settings.Seed
	Reporter     loop.Reporter
}

// NewClient creates a client with a fresh game session.
func NewClient(r *bufio.Reader, w io.Writer, opts ClientOptions) *Client {
	termSizeFunc := opts.TermSizeFunc
	if termSizeFunc == nil {
		termSizeFunc = draw.DefaultTermSizeFunc
	}

	settings := config.Default()
	if opts.Settings != nil {
		settings = *opts.Settings
	}
	rng := opts.Rand
	if rng == nil {
		rng = object.NewRand(settings.Seed)
	}
	game := loop.NewState(settings, rng, opts.Reporter)

	state := NewClientState()

	// Create canvas with clamped dimensions for max render resolution
	termWidth, termHeight, _ := termSizeFunc()
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)
	canvas := draw.NewScaledCanvas(renderWidth, renderHeight, game.Arena.Width, game.Arena.Height)
	canvas.SetOffset(offsetCol, offsetRow)

	return &Client{
		game:         game,
		state:        state,
		canvas:       canvas,
		chunkWriter:  draw.NewChunkWriter(w, offsetCol, offsetRow),
		writer:       w,
		inputStream:  input.StartStream(r),
		lastInput:    time.Now(),
		termSizeFunc: termSizeFunc,
	}
}

// Game returns the session being played.
func (c *Client) Game() *loop.State {
	return c.game
}

// Run starts the client loop. Blocks until the player quits, the input
// closes, or the inactivity limit is reached.
func (c *Client) Run() error {
	draw.HideCursor(c.writer)
	draw.EnableMouse(c.writer)
	defer func() {
		draw.DisableMouse(c.writer)
		draw.ShowCursor(c.writer)
	}()
	draw.ClearScreen(c.writer)

	lastTime := time.Now()

	for c.state.Running {
		frameStart := time.Now()
		c.state.delta = frameStart.Sub(lastTime)
		lastTime = frameStart

		if err := c.frame(); err != nil {
			return err
		}

		// Frame timing
		elapsed := time.Since(frameStart)
		if elapsed < config.ClientTargetFrameTime {
			time.Sleep(config.ClientTargetFrameTime - elapsed)
		}
	}

	draw.ClearScreen(c.writer)
	return nil
}

// frame runs one Input -> Update -> Draw cycle.
func (c *Client) frame() error {
	c.processInput()
	c.updateScreen()
	if !c.state.Running {
		return nil
	}
	c.game.Step(c.buildFrame())
	return c.drawFrame()
}

// processInput reads input and tracks inactivity.
func (c *Client) processInput() {
	c.state.Input = input.ReadInput(c.inputStream)

	if len(c.state.Input.Pressed) > 0 {
		c.lastInput = time.Now()
		c.state.isInactive = false
	} else if time.Since(c.lastInput).Seconds() > config.InactivityDisconnectUser {
		c.state.Running = false
	} else if time.Since(c.lastInput).Seconds() > config.InactivityWarnUser {
		c.state.isInactive = true
	}

	if c.state.Input.Quit || c.inputStream.Closed() {
		c.state.Running = false
	}
}

// buildFrame translates terminal input into a simulation frame. The mouse
// cell maps onto the arena through the canvas; cells outside the render
// area leave the pointer unavailable.
func (c *Client) buildFrame() loop.Frame {
	f := loop.Frame{
		Delta: c.state.delta,
		Fire:  c.state.Input.Fire,
	}
	p := c.state.Input.Pointer
	if p.OK {
		x, y, ok := c.canvas.TerminalToLogical(p.Col, p.Row)
		f.Pointer = loop.Pointer{X: x, Y: y, OK: ok}
	}
	return f
}

// updateScreen handles terminal resize, clamping to max render resolution.
func (c *Client) updateScreen() {
	termWidth, termHeight, err := c.termSizeFunc()
	if err != nil {
		return
	}
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)

	c.canvas.Resize(renderWidth, renderHeight)
	c.canvas.SetOffset(offsetCol, offsetRow)
	c.chunkWriter.SetOffset(offsetCol, offsetRow)
}

// clampTermSize clamps terminal dimensions to the max render resolution and computes
// the centering offset for the render area.
func clampTermSize(termWidth, termHeight int) (renderWidth, renderHeight, offsetCol, offsetRow int) {
	renderWidth = termWidth
	renderHeight = termHeight
	if renderWidth > config.MaxTermWidth {
		renderWidth = config.MaxTermWidth
	}
	if renderHeight > config.MaxTermHeight {
		renderHeight = config.MaxTermHeight
	}
	offsetCol = (termWidth - renderWidth) / 2
	offsetRow = (termHeight - renderHeight) / 2
	return
}
