package x11

import (
	"fmt"
	"image"
	"math"
	"math/bits"

	"github.com/BurntSushi/xgb/xproto"
)

// putImageHeader is the fixed size of a PutImage request in bytes.
const putImageHeader = 24

// MaxCoord is the largest window coordinate PutImage can address.
const MaxCoord = math.MaxInt16

// visibleRows limits a frame height to the rows PutImage can reach.
func visibleRows(h int) int {
	return min(h, MaxCoord+1)
}

// Surface presents RGBA frames on a window through a server-side graphics
// context.
type Surface struct {
	conn       *Connection
	win        xproto.Window
	gc         xproto.Gcontext
	depth      byte
	format     pixelFormat
	maxRequest int
	buf        []byte
}

// NewSurface creates a graphics context on win able to draw frames encoded
// for v.
func (c *Connection) NewSurface(win *Window, v *Visual) (*Surface, error) {
	conn := c.XUtil.Conn()
	gc, err := xproto.NewGcontextId(conn)
	if err != nil {
		return nil, fmt.Errorf("failed to allocate graphics context id: %w", err)
	}
	err = xproto.CreateGCChecked(conn, gc, xproto.Drawable(win.ID),
		xproto.GcGraphicsExposures, []uint32{0}).Check()
	if err != nil {
		return nil, fmt.Errorf("failed to create graphics context: %w", err)
	}

	return &Surface{
		conn:       c,
		win:        win.ID,
		gc:         gc,
		depth:      v.Depth,
		format:     newPixelFormat(v),
		maxRequest: int(c.Setup().MaximumRequestLength) * 4,
	}, nil
}

// Present uploads img to the window, splitting it into as many PutImage
// requests as the server's maximum request length requires.
func (s *Surface) Present(img *image.RGBA) error {
	if s == nil || s.gc == 0 {
		return fmt.Errorf("surface released")
	}
	w, h := img.Bounds().Dx(), visibleRows(img.Bounds().Dy())
	if w == 0 || h == 0 {
		return nil
	}
	stride := s.format.rowBytes(w)
	rowsPer := (s.maxRequest - putImageHeader) / stride
	if rowsPer < 1 {
		return fmt.Errorf("frame row of %d bytes exceeds maximum request length", stride)
	}

	conn := s.conn.XUtil.Conn()
	for y := 0; y < h; y += rowsPer {
		n := min(rowsPer, h-y)
		s.buf = s.format.encode(s.buf, img, y, y+n)
		xproto.PutImage(conn, xproto.ImageFormatZPixmap, xproto.Drawable(s.win), s.gc,
			uint16(w), uint16(n), 0, int16(y), 0, s.depth, s.buf)
	}
	return nil
}

// Release frees the graphics context. Further calls are no-ops.
func (s *Surface) Release() error {
	if s == nil || s.gc == 0 {
		return nil
	}
	err := xproto.FreeGCChecked(s.conn.XUtil.Conn(), s.gc).Check()
	s.gc = 0
	return err
}

// pixelFormat encodes 8-bit RGBA samples into ZPixmap scanlines.
type pixelFormat struct {
	red, green, blue, alpha uint32
	bitsPerPixel            int
	scanlinePad             int
	lsbFirst                bool
}

func newPixelFormat(v *Visual) pixelFormat {
	pad := v.ScanlinePad
	if pad == 0 {
		pad = 32
	}
	return pixelFormat{
		red:          v.RedMask,
		green:        v.GreenMask,
		blue:         v.BlueMask,
		alpha:        v.AlphaMask,
		bitsPerPixel: v.BitsPerPixel,
		scanlinePad:  pad,
		lsbFirst:     v.LSBFirst,
	}
}

func (f pixelFormat) rowBytes(width int) int {
	rowBits := width * f.bitsPerPixel
	padded := (rowBits + f.scanlinePad - 1) / f.scanlinePad * f.scanlinePad
	return padded / 8
}

// pixel packs an opaque color. Alpha bits, if the visual has any, are set
// so compositors treat the window as opaque.
func (f pixelFormat) pixel(r, g, b uint8) uint32 {
	return scaleChannel(r, f.red) | scaleChannel(g, f.green) | scaleChannel(b, f.blue) | f.alpha
}

func scaleChannel(c uint8, mask uint32) uint32 {
	if mask == 0 {
		return 0
	}
	shift := bits.TrailingZeros32(mask)
	limit := uint32(1)<<bits.OnesCount32(mask) - 1
	v := (uint32(c)*limit + 127) / 255
	return (v << shift) & mask
}

// encode writes rows [y0, y1) of img into dst, reusing its storage.
func (f pixelFormat) encode(dst []byte, img *image.RGBA, y0, y1 int) []byte {
	b := img.Bounds()
	w := b.Dx()
	stride := f.rowBytes(w)
	size := stride * (y1 - y0)
	if cap(dst) < size {
		dst = make([]byte, size)
	}
	dst = dst[:size]
	clear(dst)

	bytesPerPixel := f.bitsPerPixel / 8
	for y := y0; y < y1; y++ {
		row := dst[(y-y0)*stride:]
		src := img.Pix[img.PixOffset(b.Min.X, b.Min.Y+y):]
		for x := 0; x < w; x++ {
			p := f.pixel(src[4*x], src[4*x+1], src[4*x+2])
			out := row[x*bytesPerPixel : (x+1)*bytesPerPixel]
			for i := range out {
				shift := 8 * i
				if !f.lsbFirst {
					shift = 8 * (bytesPerPixel - 1 - i)
				}
				out[i] = byte(p >> shift)
			}
		}
	}
	return dst
}
