package compositor

import (
	"image/color"
	"math"

	"golang.org/x/image/font"

	"github.com/example/glassboard/internal/chrome"
	"github.com/example/glassboard/internal/geom"
	"github.com/example/glassboard/internal/interact"
	"github.com/example/glassboard/internal/render"
	"github.com/example/glassboard/internal/scene"
)

// collapsedLabel is shown on the toolbar island while it is mostly closed.
const collapsedLabel = "Tools"

func (c *Compositor) paintChrome(f *frame) {
	st := f.state
	p := st.Chrome.Progress
	l := chrome.Compute(f.view.ViewW, p)
	c.paintToolbar(f, l, p.Toolbar)
	c.paintPalette(f, l, p.Palette)
	c.paintMenu(f, l, p.Menu)
}

func (c *Compositor) panel(f *frame, r geom.Rect, radius float64, tint color.NRGBA, jitter bool) {
	clip := render.RoundedRect(r, radius)
	opts := f.glass
	opts.Jitter = jitter
	render.GlassPanel(f.dst, clip, r, f.backdrop, opts)
	render.Fill(f.dst, clip, tint)
	render.Fill(f.dst, render.RoundedRectRing(r, radius, 1), c.theme.ToolbarBorder)
}

func (c *Compositor) paintToolbar(f *frame, l chrome.Layout, progress float64) {
	th := c.theme
	c.panel(f, l.Toolbar, chrome.Radius, th.ToolbarTint, false)
	if progress < 0.7 {
		face := render.Face(render.Regular, 13)
		render.DrawCentered(f.dst, face, l.Toolbar, collapsedLabel, render.Fade(th.Text, 1-progress/0.7))
	}
	op := chrome.Fade(progress)
	if op <= 0 {
		return
	}
	icon := render.Face(render.Regular, 20)
	label := render.Face(render.Regular, 12)
	for i, b := range chrome.ToolButtons {
		r := l.Buttons[i]
		if r.Y+r.H > l.Toolbar.Y+l.Toolbar.H {
			break
		}
		bg, border := th.ButtonBackground, th.ButtonBorder
		if f.state.HoverButton == i {
			bg, border = th.ButtonHover, th.ButtonBorderHover
		}
		pill := render.RoundedRect(r, r.H/2)
		render.Fill(f.dst, pill, render.Fade(bg, op))
		render.Fill(f.dst, render.RoundedRectRing(r, r.H/2, 1), render.Fade(border, op))
		fg := render.Fade(th.Text, op)
		toolIcon(f, b.Kind, geom.Rect{X: r.X + 15, Y: r.Y + 15, W: 20, H: 20}, icon, fg)
		render.DrawString(f.dst, label, geom.Pt(r.X+50, r.Y+31), b.Label, fg)
	}
}

// toolIcon draws the glyph of a toolbar button inside box.
func toolIcon(f *frame, k scene.Kind, box geom.Rect, face font.Face, c color.NRGBA) {
	switch k {
	case scene.Rectangle:
		render.Fill(f.dst, render.RoundedRectRing(box, 2, 1.5), c)
	case scene.Triangle:
		render.Stroke(f.dst, []geom.Point{geom.Pt(box.X+box.W/2, box.Y), box.Max(), geom.Pt(box.X, box.Y+box.H)}, 1.5, true, c)
	case scene.Window:
		render.Fill(f.dst, render.RoundedRectRing(box, 3, 1.5), c)
		render.FillRect(f.dst, geom.Rect{X: box.X, Y: box.Y, W: box.W, H: 5}.Image(), c)
	default:
		render.DrawCentered(f.dst, face, box, "T", c)
	}
}

func (c *Compositor) paintPalette(f *frame, l chrome.Layout, progress float64) {
	th := c.theme
	active := f.state.ActiveColor
	lerp := func(a, b uint8) uint8 {
		return uint8(math.Round(float64(a) + (float64(b)-float64(a))*progress))
	}
	tint := color.NRGBA{
		R: lerp(active.R, th.PaletteTint.R),
		G: lerp(active.G, th.PaletteTint.G),
		B: lerp(active.B, th.PaletteTint.B),
		A: 100,
	}
	c.panel(f, l.Palette, l.PaletteRound, tint, true)

	op := chrome.Fade(progress)
	if op <= 0 {
		return
	}
	for i, r := range l.Swatches {
		if i >= len(c.palette) {
			break
		}
		sw := render.Fade(c.palette[i], op)
		width := 1.5
		if f.state.HoverSwatch == i {
			sw = render.Lighter(sw, 1.2)
			width = 3
		}
		centre, radius := r.Center(), r.W/2
		render.Fill(f.dst, render.Circle(centre, radius), sw)
		ring := render.StrokePolyline(circleOutline(centre, radius), width, true)
		render.Fill(f.dst, ring, render.Fade(render.Contrast(c.palette[i]), op))
	}
}

func circleOutline(c geom.Point, radius float64) []geom.Point {
	const n = 32
	pts := make([]geom.Point, n)
	for i := range pts {
		a := 2 * math.Pi * float64(i) / n
		pts[i] = geom.Pt(c.X+radius*math.Cos(a), c.Y+radius*math.Sin(a))
	}
	return pts
}

// selectedMenu maps the active freehand tool to its menu row.
func selectedMenu(t interact.Tool) int {
	switch t {
	case interact.ToolPencil:
		return int(chrome.MenuPencil)
	case interact.ToolMarker:
		return int(chrome.MenuMarker)
	case interact.ToolEraser:
		return int(chrome.MenuEraser)
	}
	return -1
}

func (c *Compositor) paintMenu(f *frame, l chrome.Layout, progress float64) {
	th := c.theme
	c.panel(f, l.Menu, chrome.Radius, th.MenuTint, true)
	sel := selectedMenu(f.state.Tool)

	if op := chrome.Fade(progress); op > 0 {
		face := render.Face(render.Bold, 12)
		for i, r := range l.MenuButtons {
			if r.Y+r.H > l.Menu.Y+l.Menu.H {
				break
			}
			bg := color.NRGBA{40, 40, 60, 140}
			border := color.NRGBA{255, 255, 255, 80}
			switch {
			case i == sel:
				bg = th.ButtonActive
				border = color.NRGBA{255, 255, 255, 200}
			case i == f.state.HoverMenu:
				bg = color.NRGBA{80, 80, 110, 200}
				border = color.NRGBA{255, 255, 255, 120}
			}
			centre := r.Center()
			render.Fill(f.dst, render.Circle(centre, r.W/2), render.Fade(bg, op))
			render.Fill(f.dst, render.StrokePolyline(circleOutline(centre, r.W/2), 1, true), render.Fade(border, op))
			render.DrawCentered(f.dst, face, r, chrome.MenuTools[i], render.Fade(white, op))
		}
	}

	trigger := geom.Rect{X: l.Menu.X, Y: l.Menu.Y, W: l.Menu.W, H: chrome.CollapsedH}
	fg := color.NRGBA{255, 255, 255, 200}
	if sel >= 0 {
		render.DrawCentered(f.dst, render.Face(render.Bold, 14), trigger, chrome.MenuTools[sel], fg)
		return
	}
	// Vertical ellipsis.
	ctr := trigger.Center()
	for _, dy := range []float64{-6, 0, 6} {
		render.Fill(f.dst, render.Circle(geom.Pt(ctr.X, ctr.Y+dy), 1.8), fg)
	}
}
