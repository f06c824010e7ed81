package scene

import (
	"testing"

	"github.com/example/glassboard/internal/geom"
)

func TestDefaultDimensions(t *testing.T) {
	cases := []struct {
		kind Kind
		w, h float64
	}{
		{Rectangle, 100, 100},
		{Triangle, 100, 100},
		{Window, 200, 150},
		{Markdown, 300, 400},
		{Code, 500, 400},
		{Text, 200, 50},
		{Drawing, 200, 200},
	}
	s := NewStore()
	for _, c := range cases {
		w, h := s.Dimensions(New(c.kind, 0, 0))
		if w != c.w || h != c.h {
			t.Errorf("%v: got %vx%v, want %vx%v", c.kind, w, h, c.w, c.h)
		}
	}
}

func TestImageDefaultFitsMaxSide(t *testing.T) {
	o := New(Image, 0, 0)
	o.OrigW, o.OrigH = 600, 400
	w, h := o.Size()
	if w != 300 || h != 200 {
		t.Fatalf("got %vx%v", w, h)
	}
	o.W = Some(50)
	w, h = o.Size()
	if w != 50 || h != 200 {
		t.Fatalf("explicit width ignored: %vx%v", w, h)
	}
}

func TestHitTestTopmostWins(t *testing.T) {
	s := NewStore()
	s.Append(New(Rectangle, 0, 0))
	top := s.Append(New(Window, 10, 10))
	i, ok := s.HitTest(geom.Pt(5, 5))
	if !ok || i != top {
		t.Fatalf("hit %d %v, want %d", i, ok, top)
	}
	if _, ok := s.HitTest(geom.Pt(1000, 0)); ok {
		t.Fatal("expected a miss")
	}
}

func TestRemoveAtFixesSelection(t *testing.T) {
	s := NewStore()
	for i := 0; i < 4; i++ {
		s.Append(New(Rectangle, float64(i*200), 0))
	}
	s.SetSelected([]int{0, 2, 3})
	s.SetPrimary(3)
	s.RemoveAt(1)
	if _, ok := s.Primary(); ok {
		t.Fatal("primary after the removed index should be cleared")
	}
	got := s.Selected()
	want := []int{0, 1, 2}
	if len(got) != len(want) {
		t.Fatalf("selected %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("selected %v, want %v", got, want)
		}
	}

	s.Select(0)
	s.RemoveAt(2)
	if p, ok := s.Primary(); !ok || p != 0 {
		t.Fatalf("primary before the removed index should survive, got %d %v", p, ok)
	}
}

func TestRemoveSelected(t *testing.T) {
	s := NewStore()
	a := New(Rectangle, 0, 0)
	b := New(Rectangle, 1, 0)
	c := New(Rectangle, 2, 0)
	s.Append(a)
	s.Append(b)
	s.Append(c)
	s.SetSelected([]int{0, 2})
	if n := s.RemoveSelected(); n != 2 {
		t.Fatalf("removed %d", n)
	}
	if s.Len() != 1 || s.At(0) != b {
		t.Fatalf("unexpected survivors")
	}
}

func TestCentresIn(t *testing.T) {
	s := NewStore()
	s.Append(New(Rectangle, 0, 0))
	s.Append(New(Rectangle, 50, 50))
	s.Append(New(Rectangle, 500, 500))
	got := s.CentresIn(geom.RectFromPoints(geom.Pt(-10, -10), geom.Pt(60, 60)))
	if len(got) != 2 || got[0] != 0 || got[1] != 1 {
		t.Fatalf("got %v", got)
	}
}

func TestParseKind(t *testing.T) {
	for tag, want := range map[string]Kind{"cuadrado": Rectangle, "DIBUJO": Drawing, "code": Code, " Ventana ": Window} {
		got, ok := ParseKind(tag)
		if !ok || got != want {
			t.Errorf("%q: got %v %v", tag, got, ok)
		}
	}
	if _, ok := ParseKind("HEXAGON"); ok {
		t.Error("unknown tag accepted")
	}
}
