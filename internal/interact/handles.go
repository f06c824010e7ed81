package interact

import (
	"math"
	"strings"

	"golang.org/x/image/font"

	"github.com/example/glassboard/internal/geom"
	"github.com/example/glassboard/internal/render"
	"github.com/example/glassboard/internal/scene"
)

const (
	// DeleteHandleRadius is the radius in pixels of the delete button at
	// the top-right corner of the primary selection.
	DeleteHandleRadius = 10
	// ResizeHandleRadius is the radius in pixels of the resize grip at the
	// bottom-right corner.
	ResizeHandleRadius = 8
	// EraserRadius is the eraser reach in pixels.
	EraserRadius = 10
	// ScrollStep is how far one wheel notch scrolls a document, in world
	// units.
	ScrollStep = 40
	// DropOffset separates consecutive dropped files, in pixels.
	DropOffset = 20

	// CaretMark is the caret glyph appended to the text being edited.
	CaretMark = "|"

	pillPadX = 45
	pillPadY = 25
)

// TextFace is the face Text objects render with at the given zoom.
func TextFace(zoom float64) font.Face {
	return render.Face(render.Regular, 16*math.Min(zoom, 1.5))
}

// TextPill is the on-screen pill of a Text object showing lines: the
// measured text plus padding, unless the object carries an explicit size.
// The width always leaves room for the caret so the pill does not jitter
// while it blinks.
func TextPill(view *geom.Transform, o *scene.Object, lines []string) geom.Rect {
	if o.W.IsSet() && o.H.IsSet() {
		return view.WorldRectToScreen(o.Bounds())
	}
	face := TextFace(view.Zoom)
	tw := 0.0
	for _, l := range lines {
		tw = math.Max(tw, render.Measure(face, l+CaretMark))
	}
	th := float64(len(lines)) * render.LineHeight(face)
	c := view.WorldToScreen(o.Centre())
	return geom.RectFromCenter(c, tw+2*pillPadX*view.Zoom, th+2*pillPadY*view.Zoom)
}

// handleFrame is the screen rect o's handles sit on. Handles belong to the
// primary selection, so a Text pill is measured from its own text.
func handleFrame(view *geom.Transform, o *scene.Object) geom.Rect {
	if o.Kind == scene.Text {
		return TextPill(view, o, strings.Split(o.Text, "\n"))
	}
	return view.WorldRectToScreen(o.Bounds())
}

// pinPill gives an unsized Text object the world size of its pill, so a
// resize starts from what is on screen.
func pinPill(view *geom.Transform, o *scene.Object) {
	if o.Kind != scene.Text || (o.W.IsSet() && o.H.IsSet()) {
		return
	}
	r := handleFrame(view, o)
	o.W, o.H = scene.Some(r.W/view.Zoom), scene.Some(r.H/view.Zoom)
}

// DeleteHandle returns the screen centre of o's delete handle.
func DeleteHandle(view *geom.Transform, o *scene.Object) geom.Point {
	b := handleFrame(view, o)
	return geom.Pt(b.X+b.W, b.Y)
}

// ResizeHandle returns the screen centre of o's resize handle.
func ResizeHandle(view *geom.Transform, o *scene.Object) geom.Point {
	return handleFrame(view, o).Max()
}

// Resizable reports whether o shows a resize handle. Drawings take their
// size from their strokes.
func Resizable(o *scene.Object) bool { return o.Kind != scene.Drawing }

// MinSize is the smallest size a resize may reach.
func MinSize(k scene.Kind) (float64, float64) {
	switch k {
	case scene.Window:
		return 100, 60
	case scene.Text:
		return 40, 20
	case scene.Markdown, scene.Code:
		return 150, 100
	}
	return 20, 20
}

// resize grows o by d world units at its bottom-right corner, keeping the
// top-left corner fixed.
func resize(o *scene.Object, d geom.Point) {
	w, h := o.Size()
	minW, minH := MinSize(o.Kind)
	nw := max(minW, w+d.X)
	nh := max(minH, h+d.Y)
	if o.Kind == scene.Image && w > 0 && h > 0 {
		aspect := h / w
		if nw*aspect < minH {
			nw = minH / aspect
		}
		nh = nw * aspect
	}
	o.X += (nw - w) / 2
	o.Y += (nh - h) / 2
	o.W, o.H = scene.Some(nw), scene.Some(nh)
}
