// Package app owns every resource of the renderer: the display connection,
// visual, colormap, window and rendering context. It is constructed once,
// driven by Run and torn down by Close.
package app

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/1broseidon/orthotri/internal/config"
	"github.com/1broseidon/orthotri/internal/render"
	"github.com/1broseidon/orthotri/internal/scene"
	"github.com/1broseidon/orthotri/internal/x11"
	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
)

// Display is the part of the X connection the event loop talks to.
type Display interface {
	PollEvent() (xgb.Event, error)
	Keysym(code xproto.Keycode) xproto.Keysym
	RequestWMState(win xproto.Window, action int, state string) error
}

var _ Server = xServer{}

// InitError names the startup step that failed.
type InitError struct {
	Step string
	Err  error
}

func (e *InitError) Error() string {
	return fmt.Sprintf("%s: %v", e.Step, e.Err)
}

func (e *InitError) Unwrap() error {
	return e.Err
}

// App is the single application context.
type App struct {
	cfg    *config.Config
	logger *log.Logger
	dial   Dialer

	display Display
	visual  *x11.Visual
	window  *x11.Window
	ctx     *render.Context
	scene   *scene.Scene

	fullscreen    bool
	width, height int
	frames        uint64
	hooks         Hooks

	releases lifecycle
}

// New opens the display and builds the window and rendering context. On
// failure everything acquired so far has already been released.
func New(cfg *config.Config, logger *log.Logger) (*App, error) {
	a := newApp(cfg, logger)
	if err := a.start(); err != nil {
		return nil, err
	}
	return a, nil
}

func newApp(cfg *config.Config, logger *log.Logger) *App {
	return &App{
		cfg:    cfg,
		logger: logger,
		dial:   DialX11,
		width:  cfg.Width,
		height: cfg.Height,
		scene: &scene.Scene{
			ClearColor:    cfg.ClearColor,
			TriangleColor: cfg.TriangleColor,
		},
	}
}

// start runs init and tears down whatever it acquired if a step fails.
func (a *App) start() error {
	if err := a.init(); err != nil {
		a.Close()
		return err
	}
	return nil
}

func (a *App) init() error {
	srv, err := a.dial(a.cfg.Display)
	if err != nil {
		return &InitError{Step: "open display", Err: err}
	}
	a.display = srv
	a.releases.push("display", func() error {
		srv.Close()
		a.display = nil
		return nil
	})
	a.logger.Printf("Connected to display %s", displayName(a.cfg.Display))

	visual, err := srv.ChooseVisual(x11.Requirements{
		RedSize:   a.cfg.Visual.RedSize,
		GreenSize: a.cfg.Visual.GreenSize,
		BlueSize:  a.cfg.Visual.BlueSize,
		AlphaSize: a.cfg.Visual.AlphaSize,
	})
	if err != nil {
		return &InitError{Step: "choose visual", Err: err}
	}
	a.visual = visual
	a.releases.push("visual", func() error {
		a.visual = nil
		return nil
	})
	a.logger.Printf("Visual %s selected", visual)

	cmap, err := srv.CreateColormap(visual)
	if err != nil {
		return &InitError{Step: "create window", Err: err}
	}
	a.releases.push("colormap", func() error {
		return srv.FreeColormap(cmap)
	})

	win, err := srv.CreateWindow(visual, cmap, x11.WindowOptions{
		Title:  a.cfg.Title,
		Width:  a.cfg.Width,
		Height: a.cfg.Height,
	})
	if win != nil {
		a.releases.push("window", func() error {
			return srv.DestroyWindow(win)
		})
	}
	if err != nil {
		return &InitError{Step: "create window", Err: err}
	}
	a.window = win
	a.logger.Printf("Window 0x%x mapped (%dx%d)", uint32(win.ID), a.cfg.Width, a.cfg.Height)

	surface, err := srv.NewSurface(win, visual)
	if err != nil {
		return &InitError{Step: "create context", Err: fmt.Errorf("%w: %v", render.ErrContextCreation, err)}
	}
	a.releases.push("surface", surface.Release)

	ctx, err := render.NewContext(render.Format{
		RedSize:   visual.RedSize(),
		GreenSize: visual.GreenSize(),
		BlueSize:  visual.BlueSize(),
		AlphaSize: visual.AlphaSize(),
	})
	if err != nil {
		return &InitError{Step: "create context", Err: err}
	}
	a.ctx = ctx
	a.releases.push("context", ctx.Destroy)

	if err := ctx.MakeCurrent(surface); err != nil {
		return &InitError{Step: "make current", Err: err}
	}
	a.releases.push("current", func() error {
		if ctx.Current() == render.Surface(surface) {
			return ctx.MakeCurrent(nil)
		}
		return nil
	})

	a.scene.Init(ctx, a.width, a.height)
	return nil
}

func displayName(name string) string {
	if name == "" {
		return "$DISPLAY"
	}
	return name
}

// Close releases every resource in reverse acquisition order: unbind the
// context, destroy it, destroy the window, free the colormap, drop the
// visual and close the display. Calling Close more than once is safe.
func (a *App) Close() error {
	if a == nil {
		return nil
	}
	return a.releases.releaseAll(func(name string, err error) {
		if err != nil {
			a.logger.Printf("Warning: failed to release %s: %v", name, err)
			return
		}
		a.debugf("Released %s", name)
	})
}

// Run drains pending events and renders a frame, over and over, until the
// user asks to quit or ctx is cancelled. Run does not release resources.
func (a *App) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			a.logger.Printf("Shutting down: %v", context.Cause(ctx))
			return nil
		default:
		}

		start := time.Now()
		if a.drainEvents() == Quit {
			return nil
		}
		if err := a.scene.Draw(a.ctx); err != nil {
			return fmt.Errorf("render frame %d: %w", a.frames, err)
		}
		a.frames++

		if wait := a.cfg.FrameInterval - time.Since(start); a.cfg.FrameInterval > 0 && wait > 0 {
			timer := time.NewTimer(wait)
			select {
			case <-ctx.Done():
				timer.Stop()
				a.logger.Printf("Shutting down: %v", context.Cause(ctx))
				return nil
			case <-timer.C:
			}
		}
	}
}

// Resize updates the viewport and projection for a new window size.
func (a *App) Resize(width, height int) {
	_, a.width, a.height = scene.ViewingVolume(width, height)
	scene.Resize(a.ctx, width, height)
	a.debugf("Resized to %dx%d", a.width, a.height)
}

// ToggleFullscreen flips the fullscreen flag and asks the window manager to
// add or remove _NET_WM_STATE_FULLSCREEN accordingly.
func (a *App) ToggleFullscreen() error {
	action := x11.StateAdd
	if a.fullscreen {
		action = x11.StateRemove
	}
	a.fullscreen = !a.fullscreen
	return a.display.RequestWMState(a.window.ID, action, x11.StateFullscreen)
}

// Fullscreen reports the current fullscreen flag.
func (a *App) Fullscreen() bool { return a.fullscreen }

// Size returns the last known window size.
func (a *App) Size() (int, int) { return a.width, a.height }

// Frames returns the number of frames rendered so far.
func (a *App) Frames() uint64 { return a.frames }

func (a *App) debugf(format string, args ...any) {
	if a.cfg.Debug() {
		a.logger.Printf(format, args...)
	}
}
