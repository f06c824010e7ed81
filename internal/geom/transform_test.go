package geom

import (
	"math"
	"testing"
)

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestScreenToWorldInverse(t *testing.T) {
	tr := NewTransform(800, 600)
	tr.Pan = Pt(37, -12)
	tr.Zoom = 2.5
	for _, p := range []Point{{0, 0}, {123.5, -88}, {-1000, 1000}} {
		got := tr.ScreenToWorld(tr.WorldToScreen(p))
		if !near(got.X, p.X) || !near(got.Y, p.Y) {
			t.Fatalf("round trip of %v gave %v", p, got)
		}
	}
}

func TestWorldOriginIsViewportCentre(t *testing.T) {
	tr := NewTransform(800, 600)
	got := tr.WorldToScreen(Point{})
	if got != Pt(400, 300) {
		t.Fatalf("origin maps to %v", got)
	}
}

func TestZoomAtKeepsCursorFixed(t *testing.T) {
	tr := NewTransform(1024, 768)
	tr.Pan = Pt(50, 20)
	cursor := Pt(700, 150)
	before := tr.ScreenToWorld(cursor)
	tr.ZoomAt(cursor, 3)
	after := tr.ScreenToWorld(cursor)
	if !near(before.X, after.X) || !near(before.Y, after.Y) {
		t.Fatalf("world under cursor moved from %v to %v", before, after)
	}
	if !near(tr.Zoom, 1.1*1.1*1.1) {
		t.Fatalf("zoom = %v", tr.Zoom)
	}
}

func TestZoomClamped(t *testing.T) {
	tr := NewTransform(100, 100)
	tr.ZoomAt(Pt(10, 10), 200)
	if tr.Zoom != DefaultMaxZoom {
		t.Fatalf("zoom = %v, want %v", tr.Zoom, DefaultMaxZoom)
	}
	tr.ZoomAt(Pt(10, 10), -500)
	if tr.Zoom != DefaultMinZoom {
		t.Fatalf("zoom = %v, want %v", tr.Zoom, DefaultMinZoom)
	}
}

func TestRectFromPointsNormalizes(t *testing.T) {
	r := RectFromPoints(Pt(10, 10), Pt(0, 4))
	if r != (Rect{X: 0, Y: 4, W: 10, H: 6}) {
		t.Fatalf("got %+v", r)
	}
	if !r.Contains(Pt(5, 5)) || r.Contains(Pt(11, 5)) {
		t.Fatalf("contains mismatch for %+v", r)
	}
}
