package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
)

// _NET_WM_STATE actions.
const (
	StateRemove = 0
	StateAdd    = 1
	StateToggle = 2
)

// StateFullscreen is the EWMH fullscreen state atom name.
const StateFullscreen = "_NET_WM_STATE_FULLSCREEN"

// RequestWMState asks the window manager to add, remove or toggle state on
// win. The window manager is free to ignore the request.
func (c *Connection) RequestWMState(win xproto.Window, action int, state string) error {
	if c == nil || c.XUtil == nil || c.closed {
		return fmt.Errorf("%w: connection closed", ErrDisplayUnavailable)
	}
	switch action {
	case StateRemove, StateAdd, StateToggle:
	default:
		return fmt.Errorf("invalid _NET_WM_STATE action %d", action)
	}
	// Source 1 marks a normal application.
	if err := ewmh.WmStateReqExtra(c.XUtil, win, action, state, "", 1); err != nil {
		return fmt.Errorf("failed to send _NET_WM_STATE request: %w", err)
	}
	return nil
}
