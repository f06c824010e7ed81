package render

import (
	"image"
	"image/color"
	"image/draw"

	xdraw "golang.org/x/image/draw"

	"github.com/example/glassboard/internal/geom"
)

// Fill paints p with c over dst.
func Fill(dst *image.RGBA, p *Path, c color.Color) {
	if p.Empty() {
		return
	}
	area := pathArea(p, dst, 1)
	if area.Empty() {
		return
	}
	mask := p.Mask(area)
	draw.DrawMask(dst, area, image.NewUniform(c), image.Point{}, mask, area.Min, draw.Over)
}

// FillRect paints an axis aligned rectangle without rasterizing.
func FillRect(dst *image.RGBA, r image.Rectangle, c color.Color) {
	draw.Draw(dst, r.Intersect(dst.Bounds()), image.NewUniform(c), image.Point{}, draw.Over)
}

// Stroke paints a polyline of the given width.
func Stroke(dst *image.RGBA, pts []geom.Point, width float64, closed bool, c color.Color) {
	Fill(dst, StrokePolyline(pts, width, closed), c)
}

// DrawImage scales src into rect on dst. A non-nil clip restricts the
// drawn pixels; opacity below 1 fades the whole image.
func DrawImage(dst *image.RGBA, src image.Image, rect geom.Rect, clip *Path, opacity float64) {
	if src == nil || opacity <= 0 {
		return
	}
	dr := rect.Image()
	area := dr.Intersect(dst.Bounds())
	if area.Empty() || src.Bounds().Empty() {
		return
	}
	scaled := image.NewRGBA(dr)
	xdraw.ApproxBiLinear.Scale(scaled, dr, src, src.Bounds(), draw.Src, nil)
	var mask image.Image
	switch {
	case clip != nil:
		m := clip.Mask(area)
		if opacity < 1 {
			m = fadeMask(m, opacity)
		}
		mask = m
	case opacity < 1:
		mask = image.NewUniform(color.Alpha{A: uint8(opacity * 255)})
	}
	draw.DrawMask(dst, area, scaled, area.Min, mask, area.Min, draw.Over)
}

// fadeMask returns a copy of m with every value scaled by k.
func fadeMask(m *image.Alpha, k float64) *image.Alpha {
	out := image.NewAlpha(m.Rect)
	for i, a := range m.Pix {
		out.Pix[i] = uint8(float64(a)*k + 0.5)
	}
	return out
}

// Clone returns a copy of img that shares no pixel memory.
func Clone(img *image.RGBA) *image.RGBA {
	if img == nil {
		return nil
	}
	out := image.NewRGBA(img.Bounds())
	copy(out.Pix, img.Pix)
	return out
}

// ToRGBA converts any image to an RGBA with the same bounds.
func ToRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba
	}
	b := img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), img, b.Min, draw.Src)
	return out
}
