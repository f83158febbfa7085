// Package scene holds the fixed triangle and the aspect-preserving
// orthographic projection it is viewed through.
package scene

import "github.com/1broseidon/orthotri/internal/render"

// Extent is the half-size of the viewing volume on the window's shorter axis.
const Extent = 100.0

// Triangle is the object-space geometry: apex, bottom-left, bottom-right.
var Triangle = [3][3]float64{
	{0, 50, 0},
	{-50, -50, 0},
	{50, -50, 0},
}

// Volume is an orthographic viewing volume.
type Volume struct {
	Left, Right float64
	Bottom, Top float64
	Near, Far   float64
}

// ViewingVolume returns the volume for a width x height window along with
// the clamped size. Zero dimensions are treated as 1.
func ViewingVolume(width, height int) (v Volume, w, h int) {
	w, h = width, height
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}

	v = Volume{
		Left: -Extent, Right: Extent,
		Bottom: -Extent, Top: Extent,
		Near: -Extent, Far: Extent,
	}
	if w <= h {
		aspect := float64(h) / float64(w)
		v.Bottom, v.Top = -Extent*aspect, Extent*aspect
	} else {
		aspect := float64(w) / float64(h)
		v.Left, v.Right = -Extent*aspect, Extent*aspect
	}
	return v, w, h
}

// Scene draws the triangle with fixed colors.
type Scene struct {
	ClearColor    [4]float64
	TriangleColor [3]float64
}

// Init sets the clear color and the initial projection.
func (s *Scene) Init(ctx *render.Context, width, height int) {
	ctx.ClearColor(s.ClearColor[0], s.ClearColor[1], s.ClearColor[2], s.ClearColor[3])
	Resize(ctx, width, height)
}

// Resize points the viewport at the whole window and rebuilds the
// projection, then resets the modelview matrix.
func Resize(ctx *render.Context, width, height int) Volume {
	v, w, h := ViewingVolume(width, height)

	ctx.Viewport(0, 0, w, h)
	ctx.MatrixMode(render.Projection)
	ctx.LoadIdentity()
	ctx.Ortho(v.Left, v.Right, v.Bottom, v.Top, v.Near, v.Far)
	ctx.MatrixMode(render.Modelview)
	ctx.LoadIdentity()
	return v
}

// Draw clears the buffer, emits the triangle and flushes it to the surface.
func (s *Scene) Draw(ctx *render.Context) error {
	ctx.Clear()

	ctx.Begin(render.Triangles)
	ctx.Color3f(s.TriangleColor[0], s.TriangleColor[1], s.TriangleColor[2])
	for _, p := range Triangle {
		ctx.Vertex3f(p[0], p[1], p[2])
	}
	ctx.End()

	return ctx.Flush()
}
