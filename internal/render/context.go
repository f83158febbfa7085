// Package render implements a small fixed-function rendering context in
// software: two matrix stacks, a viewport, a clear color and immediate-mode
// triangles. Frames are handed to a Surface on Flush.
package render

import (
	"errors"
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"golang.org/x/image/vector"
)

var (
	// ErrContextCreation is returned when a context cannot be created for a format.
	ErrContextCreation = errors.New("failed to create rendering context")
	// ErrContextBound is returned when destroying a context that is still current.
	ErrContextBound = errors.New("rendering context is still current")
	// ErrContextDestroyed is returned by operations on a destroyed context.
	ErrContextDestroyed = errors.New("rendering context destroyed")
	// ErrNoSurface is returned by Flush when no surface is bound.
	ErrNoSurface = errors.New("no current surface")
)

// Surface receives finished frames.
type Surface interface {
	Present(img *image.RGBA) error
}

// Format describes the color buffer the context renders for.
type Format struct {
	RedSize   int
	GreenSize int
	BlueSize  int
	AlphaSize int
}

// MatrixMode selects which matrix stack subsequent matrix calls modify.
type MatrixMode int

const (
	Modelview MatrixMode = iota
	Projection
)

// Primitive is the kind of geometry assembled between Begin and End.
type Primitive int

const (
	Triangles Primitive = iota
)

type vertex struct {
	pos   mgl64.Vec4
	color color.RGBA
}

// Context holds all rendering state. It is not safe for concurrent use.
type Context struct {
	format  Format
	surface Surface

	mode     MatrixMode
	matrices [2]mgl64.Mat4

	viewport image.Rectangle
	clear    [4]float64
	color    color.RGBA

	inPrimitive bool
	primitive   Primitive
	pending     []vertex

	fb        *image.RGBA
	raster    *vector.Rasterizer
	destroyed bool
}

// NewContext creates a context for format. The format must have at least
// one bit in each color channel.
func NewContext(format Format) (*Context, error) {
	if format.RedSize <= 0 || format.GreenSize <= 0 || format.BlueSize <= 0 {
		return nil, ErrContextCreation
	}
	return &Context{
		format:   format,
		matrices: [2]mgl64.Mat4{mgl64.Ident4(), mgl64.Ident4()},
		color:    color.RGBA{255, 255, 255, 255},
		fb:       image.NewRGBA(image.Rectangle{}),
	}, nil
}

// Format returns the color buffer format.
func (c *Context) Format() Format { return c.format }

// MakeCurrent binds s as the target of Flush. A nil surface unbinds.
func (c *Context) MakeCurrent(s Surface) error {
	if c.destroyed {
		return ErrContextDestroyed
	}
	c.surface = s
	return nil
}

// Current returns the bound surface, or nil.
func (c *Context) Current() Surface {
	return c.surface
}

// Destroy releases the context. The context must be unbound first. Calling
// Destroy again is a no-op.
func (c *Context) Destroy() error {
	if c == nil || c.destroyed {
		return nil
	}
	if c.surface != nil {
		return ErrContextBound
	}
	c.destroyed = true
	c.fb = nil
	c.raster = nil
	c.pending = nil
	return nil
}

// Viewport sets the window rectangle, with (x, y) at the bottom-left, that
// normalized device coordinates map to. The color buffer grows to cover it.
func (c *Context) Viewport(x, y, width, height int) {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	c.viewport = image.Rect(x, y, x+width, y+height)
	c.resizeBuffer(x+width, y+height)
}

// ViewportRect returns the current viewport in bottom-left origin coordinates.
func (c *Context) ViewportRect() image.Rectangle { return c.viewport }

func (c *Context) resizeBuffer(w, h int) {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	if c.fb != nil && c.fb.Bounds().Dx() == w && c.fb.Bounds().Dy() == h {
		return
	}
	c.fb = image.NewRGBA(image.Rect(0, 0, w, h))
}

// MatrixMode selects the matrix stack modified by LoadIdentity and Ortho.
func (c *Context) MatrixMode(m MatrixMode) { c.mode = m }

// LoadIdentity replaces the current matrix with the identity.
func (c *Context) LoadIdentity() { c.matrices[c.mode] = mgl64.Ident4() }

// Ortho multiplies the current matrix by an orthographic projection, the
// same matrix glOrtho builds.
func (c *Context) Ortho(left, right, bottom, top, near, far float64) {
	c.matrices[c.mode] = c.matrices[c.mode].Mul4(mgl64.Ortho(left, right, bottom, top, near, far))
}

// Matrix returns the top of the given stack.
func (c *Context) Matrix(m MatrixMode) mgl64.Mat4 { return c.matrices[m] }

// ClearColor sets the color used by Clear. Channels are clamped to [0, 1].
func (c *Context) ClearColor(r, g, b, a float64) {
	c.clear = [4]float64{clamp01(r), clamp01(g), clamp01(b), clamp01(a)}
}

// Clear fills the color buffer with the clear color. The buffer carries no
// destination alpha, so every pixel ends up opaque.
func (c *Context) Clear() {
	if c.fb == nil {
		return
	}
	col := color.RGBA{toByte(c.clear[0]), toByte(c.clear[1]), toByte(c.clear[2]), 255}
	draw.Draw(c.fb, c.fb.Bounds(), image.NewUniform(col), image.Point{}, draw.Src)
}

// Color3f sets the current vertex color.
func (c *Context) Color3f(r, g, b float64) {
	c.color = color.RGBA{toByte(r), toByte(g), toByte(b), 255}
}

// Begin starts assembling primitives of kind p.
func (c *Context) Begin(p Primitive) {
	c.inPrimitive = true
	c.primitive = p
	c.pending = c.pending[:0]
}

// Vertex3f emits a vertex with the current color. Every third vertex inside
// Begin(Triangles) rasterizes a triangle.
func (c *Context) Vertex3f(x, y, z float64) {
	if !c.inPrimitive {
		return
	}
	c.pending = append(c.pending, vertex{pos: mgl64.Vec4{x, y, z, 1}, color: c.color})
	if c.primitive == Triangles && len(c.pending) == 3 {
		c.drawTriangle(c.pending[0], c.pending[1], c.pending[2])
		c.pending = c.pending[:0]
	}
}

// End finishes the current primitive. Incomplete triangles are dropped.
func (c *Context) End() {
	c.inPrimitive = false
	c.pending = c.pending[:0]
}

// Flush hands the color buffer to the current surface.
func (c *Context) Flush() error {
	if c.destroyed {
		return ErrContextDestroyed
	}
	if c.surface == nil {
		return ErrNoSurface
	}
	return c.surface.Present(c.fb)
}

// Pixels returns the color buffer. Row 0 is the top of the window.
func (c *Context) Pixels() *image.RGBA { return c.fb }

// Project maps an object-space point to window coordinates with the origin
// at the top-left of the color buffer. ok is false when the point falls
// outside the near/far range.
func (c *Context) Project(x, y, z float64) (wx, wy float64, ok bool) {
	mvp := c.matrices[Projection].Mul4(c.matrices[Modelview])
	clip := mvp.Mul4x1(mgl64.Vec4{x, y, z, 1})
	if clip[3] == 0 {
		return 0, 0, false
	}
	ndcX, ndcY, ndcZ := clip[0]/clip[3], clip[1]/clip[3], clip[2]/clip[3]
	if ndcZ < -1 || ndcZ > 1 {
		return 0, 0, false
	}
	vp := c.viewport
	wx = float64(vp.Min.X) + (ndcX+1)*float64(vp.Dx())/2
	// Viewport y grows upward; the color buffer's rows grow downward.
	wy = float64(c.fb.Bounds().Dy()) - (float64(vp.Min.Y) + (ndcY+1)*float64(vp.Dy())/2)
	return wx, wy, true
}

// drawTriangle fills a flat-shaded triangle using the last vertex color.
// Pixels outside the viewport are left untouched.
func (c *Context) drawTriangle(a, b, d vertex) {
	if c.fb == nil || c.viewport.Empty() {
		return
	}
	var pts [3][2]float64
	for i, v := range [3]vertex{a, b, d} {
		x, y, ok := c.Project(v.pos[0], v.pos[1], v.pos[2])
		if !ok {
			return
		}
		pts[i] = [2]float64{x, y}
	}

	bufH := c.fb.Bounds().Dy()
	clip := image.Rect(c.viewport.Min.X, bufH-c.viewport.Max.Y, c.viewport.Max.X, bufH-c.viewport.Min.Y)
	clip = clip.Intersect(c.fb.Bounds())
	if clip.Empty() {
		return
	}

	if c.raster == nil {
		c.raster = vector.NewRasterizer(clip.Dx(), clip.Dy())
	} else {
		c.raster.Reset(clip.Dx(), clip.Dy())
	}
	c.raster.DrawOp = draw.Over
	ox, oy := float64(clip.Min.X), float64(clip.Min.Y)
	c.raster.MoveTo(float32(pts[0][0]-ox), float32(pts[0][1]-oy))
	c.raster.LineTo(float32(pts[1][0]-ox), float32(pts[1][1]-oy))
	c.raster.LineTo(float32(pts[2][0]-ox), float32(pts[2][1]-oy))
	c.raster.ClosePath()
	c.raster.Draw(c.fb, clip, image.NewUniform(d.color), image.Point{})
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func toByte(v float64) uint8 {
	return uint8(math.Round(clamp01(v) * 255))
}
