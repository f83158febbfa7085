package app

import (
	"github.com/1broseidon/orthotri/internal/render"
	"github.com/1broseidon/orthotri/internal/x11"
	"github.com/BurntSushi/xgb/xproto"
)

// Server is the X connection as seen by init and Close: everything App
// acquires from the display, and how each piece is given back.
type Server interface {
	Display

	ChooseVisual(req x11.Requirements) (*x11.Visual, error)
	CreateColormap(v *x11.Visual) (xproto.Colormap, error)
	FreeColormap(cmap xproto.Colormap) error
	CreateWindow(v *x11.Visual, cmap xproto.Colormap, opts x11.WindowOptions) (*x11.Window, error)
	DestroyWindow(win *x11.Window) error
	NewSurface(win *x11.Window, v *x11.Visual) (Surface, error)
	Close()
}

// Surface is a presentation target holding server-side resources.
type Surface interface {
	render.Surface
	Release() error
}

// Dialer opens a connection to the named display.
type Dialer func(name string) (Server, error)

// DialX11 connects to a real X server.
func DialX11(name string) (Server, error) {
	conn, err := x11.OpenDisplay(name)
	if err != nil {
		return nil, err
	}
	return xServer{conn}, nil
}

// xServer adapts *x11.Connection to Server.
type xServer struct {
	*x11.Connection
}

func (s xServer) DestroyWindow(win *x11.Window) error {
	return win.Destroy()
}

func (s xServer) NewSurface(win *x11.Window, v *x11.Visual) (Surface, error) {
	surface, err := s.Connection.NewSurface(win, v)
	if err != nil {
		return nil, err
	}
	return surface, nil
}
