package compositor

import (
	"image/color"
	"math"
	"strings"

	"github.com/example/glassboard/internal/geom"
	"github.com/example/glassboard/internal/interact"
	"github.com/example/glassboard/internal/render"
	"github.com/example/glassboard/internal/richtext"
	"github.com/example/glassboard/internal/scene"
)

const (
	shapeRadius  = 15
	windowRadius = 10
	imageRadius  = 20
	pillRadius   = 15

	emptyText        = "start typing..."
	placeholderAlpha = 0.4
)

var white = color.NRGBA{255, 255, 255, 255}

func (f *frame) screen(o *scene.Object) geom.Rect {
	return f.view.WorldRectToScreen(o.Bounds())
}

func (f *frame) caret(primary bool) string {
	if primary && f.state.CaretVisible {
		return interact.CaretMark
	}
	return ""
}

func (f *frame) shape(o *scene.Object, sel, primary bool) {
	r := f.screen(o)
	tint := o.TintOr(f.theme.ObjectTint)
	opts := f.glass
	var clip *render.Path
	var outline []geom.Point
	if o.Kind == scene.Triangle {
		clip = render.Triangle(r)
		outline = []geom.Point{geom.Pt(r.X+r.W/2, r.Y), r.Max(), geom.Pt(r.X, r.Y+r.H)}
		opts.Jitter = true
	} else {
		clip = render.RoundedRect(r, shapeRadius)
	}
	render.GlassPanel(f.dst, clip, r, f.backdrop, opts)

	border := render.Contrast(tint)
	if o.Placeholder {
		border = f.theme.Placeholder
	}
	if !sel {
		border = render.Fade(border, 0.6)
	}
	width := 1.5
	if primary {
		width = 3
	}
	if outline != nil {
		render.Stroke(f.dst, outline, width, true, border)
	} else {
		render.Fill(f.dst, render.RoundedRectRing(r, shapeRadius, width), border)
	}
	if o.Placeholder && o.Title != "" {
		face := render.Face(render.Bold, 12*math.Min(f.view.Zoom, 1.5))
		render.DrawCentered(f.dst, face, r, o.Title, f.theme.Placeholder)
	}
}

// titleBar draws the glass frame shared by windows and documents and
// returns the title bar rectangle.
func (f *frame) titleBar(o *scene.Object, r geom.Rect, title string) geom.Rect {
	render.GlassPanel(f.dst, render.RoundedRect(r, windowRadius), r, f.backdrop, f.glass)
	zoom := f.view.Zoom
	bar := geom.Rect{X: r.X, Y: r.Y, W: r.W, H: math.Min(scene.TitleBarHeight*zoom, r.H)}
	tint := o.TintOr(f.theme.TitleTint)
	render.Fill(f.dst, render.RoundedRectCorners(bar, windowRadius, windowRadius, 0, 0), render.WithAlpha(tint, 180))

	border := render.Contrast(tint)
	if o.Placeholder {
		border = f.theme.Placeholder
	}
	render.Fill(f.dst, render.RoundedRectRing(r, windowRadius, 1.5), border)

	face := render.Face(render.Bold, 12*math.Min(zoom, 1.5))
	render.DrawCentered(f.dst, face, bar, title, f.theme.Text)
	return bar
}

func (f *frame) window(o *scene.Object, sel, primary bool) {
	r := f.screen(o)
	title := o.Title
	if title == "" {
		title = "Window"
	}
	f.titleBar(o, r, title)

	content := f.view.WorldRectToScreen(o.ContentBounds())
	face := render.Face(render.Regular, 13*f.view.Zoom)
	if o.Text == "" && !sel {
		render.DrawParagraphs(f.dst, face, content, emptyText, render.Fade(f.theme.BodyText, placeholderAlpha))
		return
	}
	render.DrawParagraphs(f.dst, face, content, o.Text+f.caret(primary), f.theme.BodyText)
}

func (f *frame) text(o *scene.Object, sel, primary bool) {
	face := interact.TextFace(f.view.Zoom)
	display := o.Text
	empty := o.Text == "" && !sel
	if empty {
		display = emptyText
	}
	lines := strings.Split(display, "\n")
	r := interact.TextPill(f.view, o, lines)

	clip := render.RoundedRect(r, pillRadius)
	render.GlassPanel(f.dst, clip, r, f.backdrop, f.glass)
	render.Fill(f.dst, clip, f.theme.TextPill)
	if o.Placeholder {
		render.Fill(f.dst, render.RoundedRectRing(r, pillRadius, 1.5), f.theme.Placeholder)
	}

	c := o.TintOr(f.theme.Text)
	if sel {
		c = render.Contrast(c)
	}
	if empty {
		c = render.Fade(c, placeholderAlpha)
	} else {
		lines[len(lines)-1] += f.caret(primary)
	}

	lh := render.LineHeight(face)
	top := r.Y + (r.H-lh*float64(len(lines)))/2
	for i, l := range lines {
		row := geom.Rect{X: r.X, Y: top + float64(i)*lh, W: r.W, H: lh}
		render.DrawCentered(f.dst, face, row, l, c)
	}
}

func (f *frame) image(o *scene.Object, sel bool) {
	r := f.screen(o)
	clip := render.RoundedRect(r, imageRadius)
	if o.Pixels != nil {
		render.DrawImage(f.dst, o.Pixels, r, clip, 1)
	} else {
		f.missing(o, r, clip)
	}
	border, width := f.theme.ImageBorder, 2.0
	if sel {
		border, width = render.WithAlpha(f.theme.Accent, 255), 4
	}
	render.Fill(f.dst, render.RoundedRectRing(r, imageRadius, width), border)
}

// missing draws the stand-in frame of an image whose file is gone.
func (f *frame) missing(o *scene.Object, r geom.Rect, clip *render.Path) {
	render.Fill(f.dst, clip, color.NRGBA{45, 30, 40, 255})
	ph := f.theme.Placeholder
	inset := r.Inset(math.Min(r.W, r.H) * 0.2)
	render.Stroke(f.dst, []geom.Point{inset.Min(), inset.Max()}, 2, false, ph)
	render.Stroke(f.dst, []geom.Point{geom.Pt(inset.X+inset.W, inset.Y), geom.Pt(inset.X, inset.Y+inset.H)}, 2, false, ph)
	label := "missing image"
	if o.SourcePath != "" {
		label = o.SourcePath
	}
	face := render.Face(render.Regular, 11*math.Min(f.view.Zoom, 1.5))
	bar := geom.Rect{X: r.X, Y: r.Y + r.H - 24, W: r.W, H: 20}
	render.DrawCentered(f.dst, face, bar, label, ph)
}

func (f *frame) document(o *scene.Object, sel bool) {
	r := f.screen(o)
	zoom := f.view.Zoom
	title := o.Title
	if title == "" {
		title = o.Kind.String()
	}
	f.titleBar(o, r, title)
	if sel {
		render.Fill(f.dst, render.RoundedRectRing(r, windowRadius, 2), render.WithAlpha(f.theme.Accent, 200))
	}

	doc := richtext.Prepare(o, zoom)
	if doc == nil {
		return
	}
	content := f.view.WorldRectToScreen(o.ContentBounds())
	var selection scene.Selection
	if o.Selection != nil {
		selection = *o.Selection
	}
	doc.Draw(f.dst, content.Image(), content.Min(), o.ScrollY*zoom, selection)

	if o.MaxScrollY <= 0 {
		return
	}
	total := o.MaxScrollY + o.ContentBounds().H
	track := geom.Rect{X: r.X + r.W - 8, Y: content.Y, W: 4, H: content.H}
	thumbH := math.Max(20, track.H*o.ContentBounds().H/total)
	thumbY := track.Y + (track.H-thumbH)*o.ScrollY/o.MaxScrollY
	thumb := geom.Rect{X: track.X, Y: thumbY, W: track.W, H: thumbH}
	render.Fill(f.dst, render.RoundedRect(track, 2), color.NRGBA{255, 255, 255, 30})
	render.Fill(f.dst, render.RoundedRect(thumb, 2), color.NRGBA{255, 255, 255, 140})
}

func (f *frame) drawing(o *scene.Object) {
	for _, s := range o.WorldStrokes() {
		f.paintStroke(s)
	}
}

// paintStroke draws a stroke given in world coordinates.
func (f *frame) paintStroke(s scene.Stroke) {
	if len(s.Points) == 0 {
		return
	}
	pts := make([]geom.Point, len(s.Points))
	for i, p := range s.Points {
		pts[i] = f.view.WorldToScreen(p)
	}
	width, c := s.Width*f.view.Zoom, s.Color
	if s.Style == scene.Marker {
		width *= 2
		c = render.WithAlpha(c, 150)
	}
	render.Stroke(f.dst, pts, math.Max(width, 1), false, c)
}
