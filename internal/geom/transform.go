package geom

const (
	// DefaultMinZoom and DefaultMaxZoom bound the zoom factor.
	DefaultMinZoom = 0.1
	DefaultMaxZoom = 10.0
	// ZoomStep is the multiplicative change per wheel notch.
	ZoomStep = 1.1
)

// Transform maps world coordinates onto the viewport. The world origin sits
// at the viewport centre when the pan is zero.
type Transform struct {
	Pan     Point
	Zoom    float64
	ViewW   float64
	ViewH   float64
	MinZoom float64
	MaxZoom float64
}

// NewTransform returns an identity view of the given viewport size.
func NewTransform(w, h float64) *Transform {
	return &Transform{
		Zoom:    1,
		ViewW:   w,
		ViewH:   h,
		MinZoom: DefaultMinZoom,
		MaxZoom: DefaultMaxZoom,
	}
}

// SetViewport records a new viewport size. The pan is kept so the world
// origin stays centred relative to the new size.
func (t *Transform) SetViewport(w, h float64) {
	t.ViewW = w
	t.ViewH = h
}

// WorldToScreen maps a world point to screen pixels.
func (t *Transform) WorldToScreen(p Point) Point {
	return Point{
		X: p.X*t.Zoom + t.ViewW/2 + t.Pan.X,
		Y: p.Y*t.Zoom + t.ViewH/2 + t.Pan.Y,
	}
}

// ScreenToWorld is the inverse of WorldToScreen.
func (t *Transform) ScreenToWorld(p Point) Point {
	return Point{
		X: (p.X - t.ViewW/2 - t.Pan.X) / t.Zoom,
		Y: (p.Y - t.ViewH/2 - t.Pan.Y) / t.Zoom,
	}
}

// WorldRectToScreen maps a world rectangle to screen space.
func (t *Transform) WorldRectToScreen(r Rect) Rect {
	min := t.WorldToScreen(r.Min())
	return Rect{X: min.X, Y: min.Y, W: r.W * t.Zoom, H: r.H * t.Zoom}
}

// ScreenRectToWorld maps a screen rectangle to world space.
func (t *Transform) ScreenRectToWorld(r Rect) Rect {
	min := t.ScreenToWorld(r.Min())
	return Rect{X: min.X, Y: min.Y, W: r.W / t.Zoom, H: r.H / t.Zoom}
}

// PanBy shifts the view by a screen-space delta.
func (t *Transform) PanBy(d Point) {
	t.Pan = t.Pan.Add(d)
}

// ZoomAt scales the view by ZoomStep per notch (negative notches zoom out)
// and adjusts the pan so the world point under screen stays put.
func (t *Transform) ZoomAt(screen Point, notches int) {
	if notches == 0 {
		return
	}
	before := t.ScreenToWorld(screen)
	z := t.Zoom
	for i := 0; i < notches; i++ {
		z *= ZoomStep
	}
	for i := 0; i > notches; i-- {
		z /= ZoomStep
	}
	t.Zoom = t.clamp(z)
	t.Pan = Point{
		X: screen.X - t.ViewW/2 - before.X*t.Zoom,
		Y: screen.Y - t.ViewH/2 - before.Y*t.Zoom,
	}
}

// Reset returns to zoom 1 with the world origin centred.
func (t *Transform) Reset() {
	t.Pan = Point{}
	t.Zoom = 1
}

func (t *Transform) clamp(z float64) float64 {
	lo, hi := t.MinZoom, t.MaxZoom
	if lo <= 0 {
		lo = DefaultMinZoom
	}
	if hi <= 0 {
		hi = DefaultMaxZoom
	}
	if z < lo {
		return lo
	}
	if z > hi {
		return hi
	}
	return z
}
