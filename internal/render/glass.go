package render

import (
	"image"
	"image/draw"
	"math"

	xdraw "golang.org/x/image/draw"

	"github.com/example/glassboard/internal/geom"
)

// GlassOptions configures the frosted panel effect.
type GlassOptions struct {
	// Refraction shrinks the sampled backdrop region by this factor so the
	// panel appears to magnify what lies beneath it.
	Refraction float64
	// Aberration is the horizontal offset in pixels of the two faint
	// copies drawn either side of the main one.
	Aberration float64
	// Jitter adds a one pixel vertical offset to the faint copies. Used for
	// non-rectangular shapes.
	Jitter bool
}

// aberrationOpacity is the strength of the offset copies.
const aberrationOpacity = 0.4

// DefaultGlassOptions returns the standard refraction and aberration.
func DefaultGlassOptions() GlassOptions {
	return GlassOptions{Refraction: 1.1, Aberration: 3}
}

// GlassPanel draws the region of backdrop behind rect, slightly magnified,
// into dst clipped by clip. backdrop must share dst's coordinate space. The
// call does nothing when backdrop is nil or empty.
func GlassPanel(dst *image.RGBA, clip *Path, rect geom.Rect, backdrop *image.RGBA, opts GlassOptions) {
	if backdrop == nil || backdrop.Bounds().Empty() || clip.Empty() {
		return
	}
	rect = rect.Normalize()
	dest := rect.Image()
	if dest.Empty() {
		return
	}
	refr := opts.Refraction
	if refr <= 0 {
		refr = 1
	}
	// The sampled region keeps its full extent even when part of it lies
	// outside the backdrop. Only the visible part is scaled, into the
	// matching part of dest.
	full := geom.RectFromCenter(rect.Center(), rect.W/refr, rect.H/refr)
	src := full.Image().Intersect(backdrop.Bounds())
	if src.Empty() {
		return
	}
	kx, ky := rect.W/full.W, rect.H/full.H
	target := image.Rect(
		int(math.Round(rect.X+(float64(src.Min.X)-full.X)*kx)),
		int(math.Round(rect.Y+(float64(src.Min.Y)-full.Y)*ky)),
		int(math.Round(rect.X+(float64(src.Max.X)-full.X)*kx)),
		int(math.Round(rect.Y+(float64(src.Max.Y)-full.Y)*ky)),
	)
	if target.Empty() {
		return
	}

	pad := int(opts.Aberration) + 2
	area := dest.Inset(-pad).Intersect(dst.Bounds())
	if area.Empty() {
		return
	}

	stretched := image.NewRGBA(dest)
	xdraw.ApproxBiLinear.Scale(stretched, target, backdrop, src, draw.Src, nil)

	mask := clip.Mask(area)
	faint := fadeMask(mask, aberrationOpacity)

	ab := int(opts.Aberration + 0.5)
	jy := 0
	if opts.Jitter {
		jy = 1
	}
	glassPass(dst, stretched, image.Pt(-ab, jy), faint)
	glassPass(dst, stretched, image.Pt(ab, -jy), faint)
	glassPass(dst, stretched, image.Point{}, mask)
}

func glassPass(dst, img *image.RGBA, off image.Point, mask *image.Alpha) {
	r := img.Bounds().Add(off)
	draw.DrawMask(dst, r, img, img.Bounds().Min, mask, r.Min, draw.Over)
}
