package render

import (
	"image"
	"image/draw"

	xdraw "golang.org/x/image/draw"
)

// blurPasses are the denominators of the cascaded resample passes.
var blurPasses = []int{2, 4, 8}

// Blur approximates a wide gaussian blur by repeatedly shrinking and
// re-enlarging the image with bilinear filtering. Each pass feeds the next.
// The result has the same bounds as src. Nil or empty images are returned
// unchanged.
func Blur(src *image.RGBA) *image.RGBA {
	var b Blurrer
	return b.Blur(src)
}

// Blurrer performs the same operation as Blur but keeps its buffers between
// calls. The returned image is owned by the Blurrer and is overwritten by the
// next call.
type Blurrer struct {
	small []*image.RGBA
	out   [2]*image.RGBA
}

// Blur blurs src into an internal buffer and returns it.
func (bl *Blurrer) Blur(src *image.RGBA) *image.RGBA {
	if src == nil {
		return nil
	}
	b := src.Bounds()
	if b.Empty() {
		return src
	}
	if len(bl.small) != len(blurPasses) {
		bl.small = make([]*image.RGBA, len(blurPasses))
	}
	cur := src
	for i, d := range blurPasses {
		w, h := b.Dx()/d, b.Dy()/d
		if w < 1 {
			w = 1
		}
		if h < 1 {
			h = 1
		}
		small := reuse(bl.small[i], image.Rect(0, 0, w, h))
		bl.small[i] = small
		xdraw.BiLinear.Scale(small, small.Bounds(), cur, cur.Bounds(), draw.Src, nil)

		next := reuse(bl.out[i%2], b)
		bl.out[i%2] = next
		xdraw.BiLinear.Scale(next, b, small, small.Bounds(), draw.Src, nil)
		cur = next
	}
	return cur
}

func reuse(img *image.RGBA, r image.Rectangle) *image.RGBA {
	if img != nil && img.Bounds() == r {
		return img
	}
	return image.NewRGBA(r)
}
