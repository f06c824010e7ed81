package chrome

import (
	"testing"

	"github.com/example/glassboard/internal/geom"
)

func TestCollapsedToolbarCentred(t *testing.T) {
	l := Compute(1000, Progress{})
	if l.Toolbar != (geom.Rect{X: 440, Y: Margin, W: CollapsedW, H: CollapsedH}) {
		t.Fatalf("toolbar = %+v", l.Toolbar)
	}
	if l.ButtonsLive {
		t.Fatal("buttons should be inactive when collapsed")
	}
	if len(l.Swatches) != 0 {
		t.Fatal("collapsed palette has no swatches")
	}
}

func TestExpandedButtons(t *testing.T) {
	l := Compute(1000, Progress{Toolbar: 1, Palette: 1, Menu: 1})
	b := l.Buttons[1]
	want := geom.Rect{X: 400 + ButtonMargin, Y: Margin + ButtonsTop + ButtonHeight + ButtonSpacing, W: ExpandedW - 2*ButtonMargin, H: ButtonHeight}
	if b != want {
		t.Fatalf("button 1 = %+v, want %+v", b, want)
	}
	h := l.HitTest(b.Center(), true, true)
	if h.Kind != HitToolButton || h.Index != 1 {
		t.Fatalf("hit = %+v", h)
	}
	if len(l.Swatches) != 16*7 {
		t.Fatalf("swatches = %d", len(l.Swatches))
	}
	sw := l.HitTest(l.Swatches[9].Center(), true, true)
	if sw.Kind != HitSwatch || sw.Index != 9 {
		t.Fatalf("swatch hit = %+v", sw)
	}
	m := l.HitTest(l.MenuButtons[2].Center(), true, true)
	if m.Kind != HitMenuTool || m.Index != 2 {
		t.Fatalf("menu hit = %+v", m)
	}
}

func TestHoverHysteresis(t *testing.T) {
	l := Compute(1000, Progress{})
	c := l.Toolbar.Center()
	p := geom.Pt(c.X, c.Y+200)
	if l.ToolbarWantsOpen(p, false) {
		t.Fatal("200px away should not open a closed toolbar")
	}
	if !l.ToolbarWantsOpen(p, true) {
		t.Fatal("200px away should keep an open toolbar open")
	}
}

func TestAnimatorSettles(t *testing.T) {
	var a Animator
	a.SetToolbar(true)
	steps := 0
	for a.Step() {
		steps++
		if steps > 1000 {
			t.Fatal("animator never settled")
		}
	}
	if a.Progress.Toolbar != 1 || a.Active() {
		t.Fatalf("progress = %+v", a.Progress)
	}
	if steps < 10 {
		t.Fatalf("settled suspiciously fast: %d steps", steps)
	}
}
