package scene

import (
	"image"
	"image/color"

	"github.com/google/uuid"

	"github.com/example/glassboard/internal/geom"
)

// ImageMaxSide is the longest side, in world units, of a freshly inserted
// image.
const ImageMaxSide = 300

// Layout is the rich text engine used by Markdown and Code objects. All
// measurements are in screen pixels at the scale last passed to SetScale.
type Layout interface {
	SetScale(zoom float64)
	SetWidth(px float64)
	Height() float64
	// HitTest maps a point relative to the top-left of the unscrolled
	// content to a rune offset into PlainText.
	HitTest(p geom.Point) int
	// Draw renders the content with its top-left at origin, shifted up by
	// scroll, clipped to clip.
	Draw(dst *image.RGBA, clip image.Rectangle, origin geom.Point, scroll float64, sel Selection)
	PlainText() string
}

// Selection is a range of rune offsets into a document's plain text.
type Selection struct {
	Start, End int
}

// Ordered returns the selection with Start <= End.
func (s Selection) Ordered() Selection {
	if s.End < s.Start {
		s.Start, s.End = s.End, s.Start
	}
	return s
}

// Empty reports whether the selection spans no runes.
func (s Selection) Empty() bool { return s.Start == s.End }

// Object is one item on the canvas. The meaning of the payload fields
// depends on Kind.
type Object struct {
	ID    string
	Kind  Kind
	X, Y  float64 // centre, world units
	W, H  OptFloat
	Tint  OptColor
	Title string

	// Text is the editable body of Window and Text objects and the source
	// of Markdown and Code objects.
	Text string
	// Ext is the source file extension of Code objects, without the dot.
	Ext string

	// SourcePath is where an Image's pixels or a Drawing's strokes were
	// loaded from.
	SourcePath   string
	Pixels       *image.RGBA
	OrigW, OrigH int

	Doc        Layout
	ScrollY    float64 // world units
	MaxScrollY float64
	Selection  *Selection

	Strokes []Stroke

	// MissingAsset marks an Image or Drawing whose file could not be read.
	MissingAsset bool
	// Placeholder marks a stand-in for something the loader could not
	// resolve.
	Placeholder bool
}

// New returns an object of kind k centred at (x, y).
func New(k Kind, x, y float64) *Object {
	return &Object{ID: uuid.NewString(), Kind: k, X: x, Y: y}
}

// NewImage returns an Image object showing img, sized to fit ImageMaxSide.
func NewImage(img *image.RGBA, x, y float64) *Object {
	o := New(Image, x, y)
	o.SetPixels(img)
	w, h := FitSize(float64(o.OrigW), float64(o.OrigH), ImageMaxSide)
	o.W, o.H = Some(w), Some(h)
	return o
}

// SetPixels replaces the pixels of an Image and records their size.
func (o *Object) SetPixels(img *image.RGBA) {
	o.Pixels = img
	o.MissingAsset = img == nil
	if img != nil {
		o.OrigW, o.OrigH = img.Bounds().Dx(), img.Bounds().Dy()
	}
}

// Centre returns the anchor point.
func (o *Object) Centre() geom.Point { return geom.Pt(o.X, o.Y) }

// Move shifts the object by d world units.
func (o *Object) Move(d geom.Point) {
	o.X += d.X
	o.Y += d.Y
}

// TintOr returns the object's tint or def when it has none.
func (o *Object) TintOr(def color.NRGBA) color.NRGBA { return o.Tint.Or(def) }

// SetText replaces the body text and drops any cached layout.
func (o *Object) SetText(s string) {
	o.Text = s
	o.Doc = nil
	o.Selection = nil
}

// FitSize scales w×h so the longer side equals max.
func FitSize(w, h, max float64) (float64, float64) {
	if w <= 0 || h <= 0 {
		return max, max
	}
	s := max / w
	if h > w {
		s = max / h
	}
	return w * s, h * s
}

// DefaultSize is the size used when W or H is unset.
func (o *Object) DefaultSize() (float64, float64) {
	switch o.Kind {
	case Rectangle, Triangle:
		return 100, 100
	case Window:
		return 200, 150
	case Markdown:
		return 300, 400
	case Code:
		return 500, 400
	case Text:
		return 200, 50
	case Image:
		if o.OrigW > 0 && o.OrigH > 0 {
			return FitSize(float64(o.OrigW), float64(o.OrigH), ImageMaxSide)
		}
		return 100, 100
	case Drawing:
		return 200, 200
	}
	return 100, 100
}

// Size returns the explicit dimensions, falling back per dimension to the
// kind default.
func (o *Object) Size() (float64, float64) {
	dw, dh := o.DefaultSize()
	return o.W.Or(dw), o.H.Or(dh)
}

// Bounds is the world space bounding box.
func (o *Object) Bounds() geom.Rect {
	w, h := o.Size()
	return geom.RectFromCenter(o.Centre(), w, h)
}

const (
	// TitleBarHeight is the height of window and document title bars in
	// world units.
	TitleBarHeight = 30
	// ContentPadding separates body content from the frame.
	ContentPadding = 15
)

// ContentBounds is the world space area below the title bar that holds
// the body of Window, Markdown and Code objects.
func (o *Object) ContentBounds() geom.Rect {
	b := o.Bounds()
	r := geom.Rect{
		X: b.X + ContentPadding,
		Y: b.Y + TitleBarHeight + ContentPadding,
		W: b.W - 2*ContentPadding,
		H: b.H - TitleBarHeight - 2*ContentPadding,
	}
	if r.W < 0 {
		r.W = 0
	}
	if r.H < 0 {
		r.H = 0
	}
	return r
}

// SelectedText returns the selected part of a document's plain text.
func (o *Object) SelectedText() string {
	if o.Doc == nil || o.Selection == nil {
		return ""
	}
	runes := []rune(o.Doc.PlainText())
	s := o.Selection.Ordered()
	s.Start = min(max(s.Start, 0), len(runes))
	s.End = min(max(s.End, 0), len(runes))
	return string(runes[s.Start:s.End])
}

// ClampScroll keeps ScrollY within [0, MaxScrollY].
func (o *Object) ClampScroll() {
	o.ScrollY = max(0, min(o.ScrollY, o.MaxScrollY))
}
