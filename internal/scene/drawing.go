package scene

import (
	"image/color"
	"math"
	"strings"

	"github.com/example/glassboard/internal/geom"
)

// DrawingPadding is added on every side of a Drawing's stroke bounds.
const DrawingPadding = 10

// StrokeStyle selects how a stroke is painted.
type StrokeStyle int

const (
	Pencil StrokeStyle = iota
	Marker
)

func (s StrokeStyle) String() string {
	if s == Marker {
		return "marker"
	}
	return "pencil"
}

// ParseStrokeStyle accepts the English names and the legacy Spanish ones.
// Unknown names map to Pencil.
func ParseStrokeStyle(s string) StrokeStyle {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "marker", "rotulador":
		return Marker
	}
	return Pencil
}

// Stroke is one freehand line. Points are relative to the owning Drawing's
// centre once committed.
type Stroke struct {
	Style  StrokeStyle
	Width  float64
	Color  color.NRGBA
	Points []geom.Point
}

func (s Stroke) offset(d geom.Point) Stroke {
	pts := make([]geom.Point, len(s.Points))
	for i, p := range s.Points {
		pts[i] = p.Add(d)
	}
	s.Points = pts
	return s
}

// NewDrawing returns a Drawing holding a single stroke given in world
// coordinates.
func NewDrawing(s Stroke) *Object {
	o := New(Drawing, 0, 0)
	o.AddWorldStroke(s)
	return o
}

// WorldStrokes returns copies of the strokes in world coordinates.
func (o *Object) WorldStrokes() []Stroke {
	out := make([]Stroke, len(o.Strokes))
	for i, s := range o.Strokes {
		out[i] = s.offset(o.Centre())
	}
	return out
}

// AddWorldStroke merges a stroke given in world coordinates and recentres
// the drawing around everything it now holds.
func (o *Object) AddWorldStroke(s Stroke) {
	strokes := append(o.WorldStrokes(), s.offset(geom.Point{}))
	o.setWorldStrokes(strokes)
}

// Recenter recomputes the bounds from the current strokes.
func (o *Object) Recenter() {
	o.setWorldStrokes(o.WorldStrokes())
}

func (o *Object) setWorldStrokes(strokes []Stroke) {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	n := 0
	for _, s := range strokes {
		for _, p := range s.Points {
			minX = math.Min(minX, p.X)
			minY = math.Min(minY, p.Y)
			maxX = math.Max(maxX, p.X)
			maxY = math.Max(maxY, p.Y)
			n++
		}
	}
	if n == 0 {
		o.Strokes = nil
		return
	}
	c := geom.Pt((minX+maxX)/2, (minY+maxY)/2)
	o.X, o.Y = c.X, c.Y
	o.W = Some(maxX - minX + 2*DrawingPadding)
	o.H = Some(maxY - minY + 2*DrawingPadding)
	o.Strokes = make([]Stroke, len(strokes))
	for i, s := range strokes {
		o.Strokes[i] = s.offset(c.Scale(-1))
	}
}

// EraseAt removes every stroke point within radius of p (world
// coordinates). Strokes are split where points were removed and pieces
// shorter than two points are discarded. It reports whether anything
// changed. A drawing left with no strokes should be removed by the caller.
func (o *Object) EraseAt(p geom.Point, radius float64) bool {
	if o.Kind != Drawing || len(o.Strokes) == 0 {
		return false
	}
	local := p.Sub(o.Centre())
	changed := false
	var kept []Stroke
	for _, s := range o.Strokes {
		var run []geom.Point
		flush := func() {
			if len(run) >= 2 {
				piece := s
				piece.Points = run
				kept = append(kept, piece)
			}
			run = nil
		}
		for _, pt := range s.Points {
			if pt.Dist(local) <= radius {
				changed = true
				flush()
				continue
			}
			run = append(run, pt)
		}
		if len(run) == len(s.Points) {
			kept = append(kept, s)
			run = nil
			continue
		}
		flush()
	}
	if !changed {
		return false
	}
	world := make([]Stroke, len(kept))
	for i, s := range kept {
		world[i] = s.offset(o.Centre())
	}
	o.setWorldStrokes(world)
	return true
}
