// Package compositor paints a frame of the canvas: the solid layer, the
// glass objects, the floating chrome and the heads-up overlay.
package compositor

import (
	"image"
	"image/color"
	"math"

	"github.com/example/glassboard/internal/geom"
	"github.com/example/glassboard/internal/interact"
	"github.com/example/glassboard/internal/render"
	"github.com/example/glassboard/internal/scene"
	"github.com/example/glassboard/internal/theme"
)

// GridSpacing is the world distance between grid lines.
const GridSpacing = 100

// Compositor renders frames. It keeps its blur buffers between frames and
// is not safe for concurrent use.
type Compositor struct {
	theme   *theme.Theme
	glass   render.GlassOptions
	palette []color.NRGBA

	solidBlur render.Blurrer
	sceneBlur render.Blurrer
	// backdrop is the blurred scene of the last settled frame.
	backdrop *image.RGBA
	// sceneBlurs counts how often the scene layer has been blurred.
	sceneBlurs int
}

// Option configures a Compositor.
type Option func(*Compositor)

// WithTheme sets the colours used for every layer.
func WithTheme(t *theme.Theme) Option {
	return func(c *Compositor) {
		if t != nil {
			c.theme = t
		}
	}
}

// WithGlass overrides the refraction and aberration of every glass panel.
func WithGlass(o render.GlassOptions) Option {
	return func(c *Compositor) { c.glass = o }
}

// New returns a compositor using the default theme.
func New(opts ...Option) *Compositor {
	c := &Compositor{
		theme:   theme.Default(),
		glass:   render.DefaultGlassOptions(),
		palette: render.Palette(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Theme returns the active theme.
func (c *Compositor) Theme() *theme.Theme { return c.theme }

// frame carries what the object renderers need for one pass.
type frame struct {
	dst      *image.RGBA
	view     *geom.Transform
	state    *interact.State
	backdrop *image.RGBA
	glass    render.GlassOptions
	theme    *theme.Theme
}

// Render paints the whole viewport and returns a new image owned by the
// caller.
func (c *Compositor) Render(store *scene.Store, view *geom.Transform, st *interact.State) *image.RGBA {
	w, h := int(math.Round(view.ViewW)), int(math.Round(view.ViewH))
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	bounds := image.Rect(0, 0, w, h)

	solids := image.NewRGBA(bounds)
	c.paintGrid(solids, view)
	f := &frame{dst: solids, view: view, state: st, glass: c.glass, theme: c.theme}
	for i, o := range store.Objects() {
		if o.Kind == scene.Image {
			f.image(o, store.IsSelected(i))
		}
	}

	blurredSolids := c.solidBlur.Blur(solids)

	out := render.Clone(solids)
	f.dst, f.backdrop = out, blurredSolids
	primary, _ := store.Primary()
	for i, o := range store.Objects() {
		sel := store.IsSelected(i)
		switch o.Kind {
		case scene.Image:
		case scene.Rectangle, scene.Triangle:
			f.shape(o, sel, i == primary)
		case scene.Window:
			f.window(o, sel, i == primary)
		case scene.Text:
			f.text(o, sel, i == primary)
		case scene.Markdown, scene.Code:
			f.document(o, sel)
		case scene.Drawing:
			f.drawing(o)
		}
		if i == primary {
			f.handles(o)
		}
	}
	f.liveStroke()

	if c.backdrop == nil || c.backdrop.Bounds() != bounds || !st.Busy() {
		c.backdrop = render.Clone(c.sceneBlur.Blur(out))
		c.sceneBlurs++
	}

	f.backdrop = c.backdrop
	c.paintChrome(f)
	f.marquee()
	c.paintHUD(out, view, st)
	return out
}

// paintGrid fills the background and draws grid lines that follow the pan
// and zoom of view.
func (c *Compositor) paintGrid(dst *image.RGBA, view *geom.Transform) {
	render.FillRect(dst, dst.Bounds(), c.theme.Background)
	spacing := GridSpacing * view.Zoom
	if spacing < 4 {
		return
	}
	b := dst.Bounds()
	ox := math.Mod(view.Pan.X+view.ViewW/2, spacing)
	oy := math.Mod(view.Pan.Y+view.ViewH/2, spacing)
	if ox < 0 {
		ox += spacing
	}
	if oy < 0 {
		oy += spacing
	}
	for x := ox; x < float64(b.Dx()); x += spacing {
		xi := int(x)
		render.FillRect(dst, image.Rect(xi-1, b.Min.Y, xi+1, b.Max.Y), c.theme.Grid)
	}
	for y := oy; y < float64(b.Dy()); y += spacing {
		yi := int(y)
		render.FillRect(dst, image.Rect(b.Min.X, yi-1, b.Max.X, yi+1), c.theme.Grid)
	}
}

func (f *frame) handles(o *scene.Object) {
	d := interact.DeleteHandle(f.view, o)
	render.Fill(f.dst, render.Circle(d, interact.DeleteHandleRadius), color.NRGBA{220, 60, 60, 230})
	arm := interact.DeleteHandleRadius * 0.45
	render.Stroke(f.dst, []geom.Point{d.Add(geom.Pt(-arm, -arm)), d.Add(geom.Pt(arm, arm))}, 2, false, white)
	render.Stroke(f.dst, []geom.Point{d.Add(geom.Pt(arm, -arm)), d.Add(geom.Pt(-arm, arm))}, 2, false, white)
	if !interact.Resizable(o) {
		return
	}
	r := interact.ResizeHandle(f.view, o)
	render.Fill(f.dst, render.Circle(r, interact.ResizeHandleRadius), render.WithAlpha(f.theme.Accent, 220))
	render.Fill(f.dst, render.Circle(r, interact.ResizeHandleRadius-2.5), white)
}

func (f *frame) liveStroke() {
	st := f.state
	if st.Mode != interact.FreehandDrawing || len(st.Stroke) < 2 {
		return
	}
	stroke := scene.Stroke{Style: st.StrokeStyle(), Width: st.StrokeWidth, Color: st.ActiveColor, Points: st.Stroke}
	f.paintStroke(stroke)
}

func (f *frame) marquee() {
	st := f.state
	if st.Mode != interact.MarqueeSelecting {
		return
	}
	r := st.Marquee.Normalize()
	render.FillRect(f.dst, r.Image(), f.theme.MarqueeFill)
	render.Fill(f.dst, render.RoundedRectRing(r, 0, 1), f.theme.MarqueeBorder)
}

// SceneBlurs reports how many times the scene layer has been blurred.
func (c *Compositor) SceneBlurs() int { return c.sceneBlurs }
