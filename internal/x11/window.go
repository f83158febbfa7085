package x11

import (
	"errors"
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"
)

// ErrWindowCreation is returned when the window or its colormap cannot be created.
var ErrWindowCreation = errors.New("failed to create window")

// EventMask is the set of events the window subscribes to.
const EventMask = xproto.EventMaskExposure |
	xproto.EventMaskVisibilityChange |
	xproto.EventMaskButtonPress |
	xproto.EventMaskKeyPress |
	xproto.EventMaskPointerMotion |
	xproto.EventMaskStructureNotify

// WindowOptions configures a new top-level window.
type WindowOptions struct {
	Title  string
	Width  int
	Height int
}

// Window is a mapped top-level window that speaks WM_DELETE_WINDOW.
type Window struct {
	ID xproto.Window

	// ProtocolsAtom and DeleteAtom identify the window manager's close request.
	ProtocolsAtom xproto.Atom
	DeleteAtom    xproto.Atom

	conn *Connection
}

// CreateColormap allocates a private colormap for v on v's screen.
func (c *Connection) CreateColormap(v *Visual) (xproto.Colormap, error) {
	cmap, err := xproto.NewColormapId(c.XUtil.Conn())
	if err != nil {
		return 0, fmt.Errorf("%w: colormap id: %v", ErrWindowCreation, err)
	}
	err = xproto.CreateColormapChecked(c.XUtil.Conn(), xproto.ColormapAllocNone, cmap, v.Root, v.ID).Check()
	if err != nil {
		return 0, fmt.Errorf("%w: create colormap: %v", ErrWindowCreation, err)
	}
	return cmap, nil
}

// FreeColormap releases cmap. A zero colormap is ignored.
func (c *Connection) FreeColormap(cmap xproto.Colormap) error {
	if c == nil || cmap == 0 {
		return nil
	}
	return xproto.FreeColormapChecked(c.XUtil.Conn(), cmap).Check()
}

// CreateWindow creates, titles and maps a window using visual v and colormap
// cmap. The window advertises WM_DELETE_WINDOW so a close from the window
// manager arrives as a ClientMessage. On error the returned window, if
// non-nil, still needs Destroy.
func (c *Connection) CreateWindow(v *Visual, cmap xproto.Colormap, opts WindowOptions) (*Window, error) {
	conn := c.XUtil.Conn()

	wid, err := xproto.NewWindowId(conn)
	if err != nil {
		return nil, fmt.Errorf("%w: window id: %v", ErrWindowCreation, err)
	}

	// Values must follow the protocol's bit order: back pixel, border pixel,
	// event mask, colormap.
	mask := uint32(xproto.CwBackPixel | xproto.CwBorderPixel | xproto.CwEventMask | xproto.CwColormap)
	values := []uint32{
		v.BlackPixel,
		0,
		EventMask,
		uint32(cmap),
	}
	err = xproto.CreateWindowChecked(conn, v.Depth, wid, v.Root,
		0, 0, uint16(opts.Width), uint16(opts.Height), 0,
		xproto.WindowClassInputOutput, v.ID, mask, values).Check()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWindowCreation, err)
	}

	w := &Window{ID: wid, conn: c}

	if err := icccm.WmNameSet(c.XUtil, wid, opts.Title); err != nil {
		return w, fmt.Errorf("failed to set WM_NAME: %w", err)
	}
	if err := ewmh.WmNameSet(c.XUtil, wid, opts.Title); err != nil {
		return w, fmt.Errorf("failed to set _NET_WM_NAME: %w", err)
	}

	if w.ProtocolsAtom, err = c.Atom("WM_PROTOCOLS"); err != nil {
		return w, err
	}
	if w.DeleteAtom, err = c.Atom("WM_DELETE_WINDOW"); err != nil {
		return w, err
	}
	if err := icccm.WmProtocolsSet(c.XUtil, wid, []string{"WM_DELETE_WINDOW"}); err != nil {
		return w, fmt.Errorf("failed to set WM_PROTOCOLS: %w", err)
	}

	if err := xproto.MapWindowChecked(conn, wid).Check(); err != nil {
		return w, fmt.Errorf("failed to map window: %w", err)
	}
	return w, nil
}

// IsDeleteRequest reports whether ev is the window manager asking this
// window to close.
func (w *Window) IsDeleteRequest(ev xproto.ClientMessageEvent) bool {
	if w == nil || ev.Format != 32 || ev.Type != w.ProtocolsAtom {
		return false
	}
	data := ev.Data.Data32
	return len(data) > 0 && xproto.Atom(data[0]) == w.DeleteAtom
}

// Destroy destroys the window. It is safe to call on a nil or already
// destroyed window.
func (w *Window) Destroy() error {
	if w == nil || w.ID == 0 || w.conn == nil {
		return nil
	}
	err := xproto.DestroyWindowChecked(w.conn.XUtil.Conn(), w.ID).Check()
	w.ID = 0
	return err
}
