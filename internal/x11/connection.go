package x11

import (
	"errors"
	"fmt"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/keybind"
	"github.com/BurntSushi/xgbutil/xprop"
)

// ErrDisplayUnavailable is returned when no X server connection can be made.
var ErrDisplayUnavailable = errors.New("unable to open X display")

// Connection manages the X11 connection and core X resources
type Connection struct {
	XUtil  *xgbutil.XUtil
	Root   xproto.Window
	Screen int

	closed bool
}

// OpenDisplay connects to the named X display. An empty name uses $DISPLAY.
func OpenDisplay(name string) (*Connection, error) {
	xu, err := xgbutil.NewConnDisplay(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDisplayUnavailable, err)
	}

	// Keycode to keysym translation needs the keyboard mapping loaded.
	keybind.Initialize(xu)

	return &Connection{
		XUtil:  xu,
		Root:   xu.RootWin(),
		Screen: xu.Conn().DefaultScreen,
	}, nil
}

// Setup returns the connection setup block sent by the server.
func (c *Connection) Setup() *xproto.SetupInfo {
	return xproto.Setup(c.XUtil.Conn())
}

// Atom interns name and returns its atom.
func (c *Connection) Atom(name string) (xproto.Atom, error) {
	atom, err := xprop.Atm(c.XUtil, name)
	if err != nil {
		return 0, fmt.Errorf("failed to intern %s: %w", name, err)
	}
	return atom, nil
}

// Keysym translates a keycode using the unshifted, first-group column.
func (c *Connection) Keysym(code xproto.Keycode) xproto.Keysym {
	return keybind.KeysymGet(c.XUtil, code, 0)
}

// PollEvent returns the next queued event without blocking. Both return
// values are nil when the queue is empty.
func (c *Connection) PollEvent() (xgb.Event, error) {
	ev, xerr := c.XUtil.Conn().PollForEvent()
	if xerr != nil {
		return nil, xerr
	}
	return ev, nil
}

// Close cleanly disconnects from the X11 server. Calling it more than once,
// or on a nil connection, is a no-op.
func (c *Connection) Close() {
	if c == nil || c.XUtil == nil || c.closed {
		return
	}
	c.XUtil.Conn().Close()
	c.closed = true
}

// ChooseVisual picks a visual on the connection's default screen.
func (c *Connection) ChooseVisual(req Requirements) (*Visual, error) {
	return ChooseVisual(c.Setup(), c.Screen, req)
}
