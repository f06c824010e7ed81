package render

import (
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Fade returns c with its alpha multiplied by k.
func Fade(c color.NRGBA, k float64) color.NRGBA {
	if k < 0 {
		k = 0
	}
	if k > 1 {
		k = 1
	}
	c.A = uint8(math.Round(float64(c.A) * k))
	return c
}

// WithAlpha replaces the alpha of c.
func WithAlpha(c color.NRGBA, a uint8) color.NRGBA {
	c.A = a
	return c
}

func toColorful(c color.NRGBA) colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

func fromColorful(c colorful.Color, a uint8) color.NRGBA {
	r, g, b := c.Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: a}
}

// Contrast returns an opaque colour that reads well on top of c: the hue is
// rotated half way round, saturation is capped, and the value flips between
// light and dark.
func Contrast(c color.NRGBA) color.NRGBA {
	h, s, v := toColorful(c).Hsv()
	h = math.Mod(h+180, 360)
	s = math.Min(s, 0.45)
	if v < 0.6 {
		v = 0.95
	} else {
		v = 0.35
	}
	return fromColorful(colorful.Hsv(h, s, v), 255)
}

const (
	// PaletteHues is the number of rows in the colour picker.
	PaletteHues = 16
	// PaletteShades is the number of swatches per hue.
	PaletteShades = 7
)

var shadeValues = [PaletteShades]float64{0.15, 0.35, 0.65, 0.85, 0.95, 1.0, 1.0}

func shadeSaturation(i int) float64 {
	switch {
	case i == 0:
		return 0.9
	case i == 5:
		return 0.4
	case i == 6:
		return 0.2
	}
	return 0.8
}

// Palette returns the colour picker swatches hue by hue, dark to light
// within each hue.
func Palette() []color.NRGBA {
	out := make([]color.NRGBA, 0, PaletteHues*PaletteShades)
	for h := 0; h < PaletteHues; h++ {
		hue := float64(h) * 360 / PaletteHues
		for s := 0; s < PaletteShades; s++ {
			out = append(out, fromColorful(colorful.Hsv(hue, shadeSaturation(s), shadeValues[s]), 255))
		}
	}
	return out
}

// Lighter brightens c by factor k in HSV value, keeping hue and alpha.
// A colour too dark to brighten is lifted toward grey instead.
func Lighter(c color.NRGBA, k float64) color.NRGBA {
	h, s, v := toColorful(c).Hsv()
	v *= k
	if v > 1 {
		s = math.Max(0, s-(v-1))
		v = 1
	}
	if v == 0 {
		v = k - 1
	}
	return fromColorful(colorful.Hsv(h, s, v), c.A)
}
