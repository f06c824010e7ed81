package render

import (
	"image"
	"image/draw"
	"math"

	"golang.org/x/image/vector"

	"github.com/example/glassboard/internal/geom"
)

// arcSegments is how many line segments approximate a quarter circle.
const arcSegments = 8

// Path is a set of closed polygons. Filling uses the absolute accumulated
// coverage of all polygons, so overlapping polygons with the same winding
// union and an inner polygon with the opposite winding punches a hole.
type Path struct {
	polys [][]geom.Point
}

// Polygon returns a path holding a single closed polygon.
func Polygon(pts ...geom.Point) *Path {
	p := &Path{}
	p.Add(pts...)
	return p
}

// Add appends a closed polygon to the path.
func (p *Path) Add(pts ...geom.Point) {
	if len(pts) < 3 {
		return
	}
	cp := make([]geom.Point, len(pts))
	copy(cp, pts)
	p.polys = append(p.polys, cp)
}

// Append merges the polygons of q into p.
func (p *Path) Append(q *Path) {
	if q == nil {
		return
	}
	p.polys = append(p.polys, q.polys...)
}

// Empty reports whether the path holds no polygons.
func (p *Path) Empty() bool { return p == nil || len(p.polys) == 0 }

// Bounds returns the smallest rectangle containing every vertex.
func (p *Path) Bounds() geom.Rect {
	if p.Empty() {
		return geom.Rect{}
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, poly := range p.polys {
		for _, v := range poly {
			minX = math.Min(minX, v.X)
			minY = math.Min(minY, v.Y)
			maxX = math.Max(maxX, v.X)
			maxY = math.Max(maxY, v.Y)
		}
	}
	return geom.Rect{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}
}

// Mask rasterizes the path into an alpha mask covering area. The mask's
// bounds equal area so it can be used directly with draw.DrawMask.
func (p *Path) Mask(area image.Rectangle) *image.Alpha {
	w, h := area.Dx(), area.Dy()
	mask := image.NewAlpha(image.Rect(0, 0, w, h))
	if w <= 0 || h <= 0 || p.Empty() {
		mask.Rect = area
		return mask
	}
	z := vector.NewRasterizer(w, h)
	ox, oy := float64(area.Min.X), float64(area.Min.Y)
	for _, poly := range p.polys {
		z.MoveTo(float32(poly[0].X-ox), float32(poly[0].Y-oy))
		for _, v := range poly[1:] {
			z.LineTo(float32(v.X-ox), float32(v.Y-oy))
		}
		z.ClosePath()
	}
	z.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})
	mask.Rect = area
	return mask
}

// RoundedRect returns a rectangle with all corners rounded by radius.
func RoundedRect(r geom.Rect, radius float64) *Path {
	return RoundedRectCorners(r, radius, radius, radius, radius)
}

// RoundedRectCorners rounds each corner independently, clockwise from the
// top-left.
func RoundedRectCorners(r geom.Rect, tl, tr, br, bl float64) *Path {
	r = r.Normalize()
	limit := math.Min(r.W, r.H) / 2
	clampR := func(v float64) float64 { return math.Max(0, math.Min(v, limit)) }
	tl, tr, br, bl = clampR(tl), clampR(tr), clampR(br), clampR(bl)

	var pts []geom.Point
	pts = appendArc(pts, geom.Pt(r.X+tl, r.Y+tl), tl, math.Pi, 1.5*math.Pi)
	pts = appendArc(pts, geom.Pt(r.X+r.W-tr, r.Y+tr), tr, 1.5*math.Pi, 2*math.Pi)
	pts = appendArc(pts, geom.Pt(r.X+r.W-br, r.Y+r.H-br), br, 0, 0.5*math.Pi)
	pts = appendArc(pts, geom.Pt(r.X+bl, r.Y+r.H-bl), bl, 0.5*math.Pi, math.Pi)
	return Polygon(pts...)
}

func appendArc(pts []geom.Point, c geom.Point, radius, from, to float64) []geom.Point {
	if radius <= 0 {
		return append(pts, c)
	}
	for i := 0; i <= arcSegments; i++ {
		a := from + (to-from)*float64(i)/arcSegments
		pts = append(pts, geom.Pt(c.X+radius*math.Cos(a), c.Y+radius*math.Sin(a)))
	}
	return pts
}

// Circle approximates a circle by a polygon.
func Circle(c geom.Point, radius float64) *Path {
	p := &Path{}
	p.Add(circlePoints(c, radius)...)
	return p
}

func circlePoints(c geom.Point, radius float64) []geom.Point {
	n := 4 * arcSegments
	if radius < 2 {
		n = 8
	}
	pts := make([]geom.Point, n)
	for i := range pts {
		// Negative angles keep the winding consistent with segment quads.
		a := -2 * math.Pi * float64(i) / float64(n)
		pts[i] = geom.Pt(c.X+radius*math.Cos(a), c.Y+radius*math.Sin(a))
	}
	return pts
}

// Triangle returns the isoceles triangle inscribed in r with its apex at the
// top centre.
func Triangle(r geom.Rect) *Path {
	return Polygon(
		geom.Pt(r.X+r.W/2, r.Y),
		geom.Pt(r.X+r.W, r.Y+r.H),
		geom.Pt(r.X, r.Y+r.H),
	)
}

// StrokePolyline returns the outline of a polyline of the given width with
// round joins and caps. A closed polyline also joins its last point to
// the first.
func StrokePolyline(pts []geom.Point, width float64, closed bool) *Path {
	p := &Path{}
	if len(pts) == 0 || width <= 0 {
		return p
	}
	hw := width / 2
	for _, v := range pts {
		p.Add(circlePoints(v, hw)...)
	}
	n := len(pts)
	segs := n - 1
	if closed && n > 2 {
		segs = n
	}
	for i := 0; i < segs; i++ {
		a, b := pts[i], pts[(i+1)%n]
		d := b.Sub(a)
		l := math.Hypot(d.X, d.Y)
		if l == 0 {
			continue
		}
		nrm := geom.Pt(-d.Y/l*hw, d.X/l*hw)
		p.Add(a.Add(nrm), b.Add(nrm), b.Sub(nrm), a.Sub(nrm))
	}
	return p
}

// RoundedRectRing is the border of a rounded rectangle: a band of the given
// width centred on the rectangle's edge.
func RoundedRectRing(r geom.Rect, radius, width float64) *Path {
	return ring(
		RoundedRect(r.Inset(-width/2), radius+width/2),
		RoundedRect(r.Inset(width/2), math.Max(0, radius-width/2)),
	)
}

// RoundedTopRing is the border of a rectangle whose top corners are rounded.
func RoundedTopRing(r geom.Rect, radius, width float64) *Path {
	out := radius + width/2
	in := math.Max(0, radius-width/2)
	return ring(
		RoundedRectCorners(r.Inset(-width/2), out, out, 0, 0),
		RoundedRectCorners(r.Inset(width/2), in, in, 0, 0),
	)
}

// ring subtracts inner from outer by reversing the winding of inner.
func ring(outer, inner *Path) *Path {
	p := &Path{}
	p.Append(outer)
	for _, poly := range inner.polys {
		rev := make([]geom.Point, len(poly))
		for i, v := range poly {
			rev[len(poly)-1-i] = v
		}
		p.polys = append(p.polys, rev)
	}
	return p
}

func pathArea(p *Path, dst draw.Image, pad int) image.Rectangle {
	return p.Bounds().Image().Inset(-pad).Intersect(dst.Bounds())
}
