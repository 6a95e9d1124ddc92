// Package window handles the SDL2 window and its 2D debug renderer.
package window

import (
	"fmt"
	"runtime"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/clamber/internal/config"
	"github.com/Faultbox/clamber/internal/logger"
)

func init() {
	// SDL video calls must be made from the main thread
	runtime.LockOSThread()
}

// Color is an RGBA draw color.
type Color struct {
	R, G, B, A uint8
}

// Window wraps an SDL2 window and accelerated renderer.
type Window struct {
	config   config.WindowConfig
	log      *zap.Logger
	sdlWin   *sdl.Window
	renderer *sdl.Renderer
}

// New creates a window, grabs the mouse in relative mode and sets up the renderer.
func New(cfg config.WindowConfig) (*Window, error) {
	w := &Window{
		config: cfg,
		log:    logger.Named("window"),
	}

	w.log.Info("initializing SDL2")
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return nil, fmt.Errorf("SDL_Init failed: %w", err)
	}

	flags := uint32(sdl.WINDOW_SHOWN | sdl.WINDOW_RESIZABLE)
	if cfg.Fullscreen {
		flags |= sdl.WINDOW_FULLSCREEN
	}

	var err error
	w.sdlWin, err = sdl.CreateWindow(
		cfg.Title,
		sdl.WINDOWPOS_CENTERED,
		sdl.WINDOWPOS_CENTERED,
		int32(cfg.Width),
		int32(cfg.Height),
		flags,
	)
	if err != nil {
		sdl.Quit()
		return nil, fmt.Errorf("SDL_CreateWindow failed: %w", err)
	}

	w.renderer, err = sdl.CreateRenderer(w.sdlWin, -1, sdl.RENDERER_ACCELERATED|sdl.RENDERER_PRESENTVSYNC)
	if err != nil {
		w.sdlWin.Destroy()
		sdl.Quit()
		return nil, fmt.Errorf("SDL_CreateRenderer failed: %w", err)
	}

	sdl.SetRelativeMouseMode(true)

	w.log.Info("window created",
		zap.String("title", cfg.Title),
		zap.Int("width", cfg.Width),
		zap.Int("height", cfg.Height),
		zap.Bool("fullscreen", cfg.Fullscreen),
	)

	return w, nil
}

// Close destroys the window and cleans up SDL2.
func (w *Window) Close() {
	w.log.Info("closing window")

	if w.renderer != nil {
		w.renderer.Destroy()
	}
	if w.sdlWin != nil {
		w.sdlWin.Destroy()
	}

	sdl.Quit()
}

// Clear fills the back buffer with c.
func (w *Window) Clear(c Color) {
	w.renderer.SetDrawColor(c.R, c.G, c.B, c.A)
	w.renderer.Clear()
}

// FillRect draws a filled rectangle in pixels.
func (w *Window) FillRect(x, y, width, height int32, c Color) {
	w.renderer.SetDrawColor(c.R, c.G, c.B, c.A)
	w.renderer.FillRect(&sdl.Rect{X: x, Y: y, W: width, H: height})
}

// DrawLine draws a line in pixels.
func (w *Window) DrawLine(x1, y1, x2, y2 int32, c Color) {
	w.renderer.SetDrawColor(c.R, c.G, c.B, c.A)
	w.renderer.DrawLine(x1, y1, x2, y2)
}

// Present shows the back buffer.
func (w *Window) Present() {
	w.renderer.Present()
}

// GetSize returns the current window size.
func (w *Window) GetSize() (int, int) {
	width, height := w.sdlWin.GetSize()
	return int(width), int(height)
}

// SetTitle sets the window title.
func (w *Window) SetTitle(title string) {
	w.sdlWin.SetTitle(title)
}
