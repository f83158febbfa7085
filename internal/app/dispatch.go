package app

import (
	"github.com/1broseidon/orthotri/internal/x11"
	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
)

// Action tells the loop what to do after an event.
type Action int

const (
	Continue Action = iota
	Quit
)

// Hooks receive pointer input. Nil hooks are skipped.
type Hooks struct {
	// Button is called for buttons 1 to 5; the wheel arrives as 4 and 5.
	Button func(button xproto.Button, x, y int)
	Motion func(x, y int)
}

// SetHooks installs pointer hooks.
func (a *App) SetHooks(h Hooks) { a.hooks = h }

// drainEvents dispatches every event already queued without blocking.
func (a *App) drainEvents() Action {
	for {
		ev, err := a.display.PollEvent()
		if err != nil {
			a.logger.Printf("Warning: X error: %v", err)
			continue
		}
		if ev == nil {
			return Continue
		}
		if a.Dispatch(ev) == Quit {
			return Quit
		}
	}
}

// Dispatch handles a single event.
func (a *App) Dispatch(ev xgb.Event) Action {
	switch e := ev.(type) {
	case xproto.MapNotifyEvent:
		a.debugf("Window mapped")
	case xproto.KeyPressEvent:
		return a.handleKey(e)
	case xproto.ButtonPressEvent:
		switch e.Detail {
		case x11.ButtonLeft, x11.ButtonMiddle, x11.ButtonRight, x11.ButtonWheelUp, x11.ButtonWheelDown:
			if a.hooks.Button != nil {
				a.hooks.Button(e.Detail, int(e.EventX), int(e.EventY))
			}
		}
	case xproto.MotionNotifyEvent:
		if a.hooks.Motion != nil {
			a.hooks.Motion(int(e.EventX), int(e.EventY))
		}
	case xproto.ConfigureNotifyEvent:
		a.Resize(int(e.Width), int(e.Height))
	case xproto.ExposeEvent, xproto.DestroyNotifyEvent:
	case xproto.ClientMessageEvent:
		if a.window.IsDeleteRequest(e) {
			a.logger.Printf("Window closed by window manager")
			return Quit
		}
	}
	return Continue
}

func (a *App) handleKey(e xproto.KeyPressEvent) Action {
	switch a.display.Keysym(e.Detail) {
	case x11.KeysymEscape:
		a.debugf("Escape pressed")
		return Quit
	case x11.KeysymF, x11.KeysymLowerF:
		if err := a.ToggleFullscreen(); err != nil {
			a.logger.Printf("Warning: fullscreen request failed: %v", err)
		}
		a.debugf("Fullscreen: %v", a.fullscreen)
	}
	return Continue
}
