package render

import (
	"image"
	"image/color"
	"log"
	"math"
	"strings"
	"sync"
	"unicode/utf8"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/example/glassboard/internal/geom"
)

// FontStyle selects one of the bundled Go fonts.
type FontStyle int

const (
	Regular FontStyle = iota
	Bold
	Italic
	Mono
	MonoBold
)

var (
	fonts     map[FontStyle]*opentype.Font
	facesMu   sync.Mutex
	faceCache = map[faceKey]font.Face{}
)

type faceKey struct {
	style FontStyle
	size  float64
}

func init() {
	fonts = make(map[FontStyle]*opentype.Font)
	for style, ttf := range map[FontStyle][]byte{
		Regular:  goregular.TTF,
		Bold:     gobold.TTF,
		Italic:   goitalic.TTF,
		Mono:     gomono.TTF,
		MonoBold: gomonobold.TTF,
	} {
		f, err := opentype.Parse(ttf)
		if err != nil {
			log.Fatalf("parse font: %v", err)
		}
		fonts[style] = f
	}
}

// Face returns a cached face of the given style. Sizes are rounded to half
// points so zooming does not grow the cache without bound.
func Face(style FontStyle, size float64) font.Face {
	size = math.Max(1, math.Round(size*2)/2)
	key := faceKey{style, size}
	facesMu.Lock()
	defer facesMu.Unlock()
	if f, ok := faceCache[key]; ok {
		return f
	}
	f, err := opentype.NewFace(fonts[style], &opentype.FaceOptions{Size: size, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		log.Printf("font face: %v", err)
		return nil
	}
	faceCache[key] = f
	return f
}

// Measure returns the advance width of s in pixels.
func Measure(face font.Face, s string) float64 {
	return fix(font.MeasureString(face, s))
}

// LineHeight returns the recommended line spacing of face.
func LineHeight(face font.Face) float64 {
	return fix(face.Metrics().Height)
}

// Ascent returns the ascent of face in pixels.
func Ascent(face font.Face) float64 {
	return fix(face.Metrics().Ascent)
}

func fix(v fixed.Int26_6) float64 { return float64(v) / 64 }

// DrawString draws s with its baseline starting at p.
func DrawString(dst *image.RGBA, face font.Face, p geom.Point, s string, c color.Color) {
	if face == nil || s == "" {
		return
	}
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.Point26_6{X: fixed.Int26_6(p.X * 64), Y: fixed.Int26_6(p.Y * 64)},
	}
	d.DrawString(s)
}

// DrawCentered draws a single line centred inside r.
func DrawCentered(dst *image.RGBA, face font.Face, r geom.Rect, s string, c color.Color) {
	if face == nil {
		return
	}
	m := face.Metrics()
	w := Measure(face, s)
	asc, desc := fix(m.Ascent), fix(m.Descent)
	x := r.X + (r.W-w)/2
	y := r.Y + (r.H-asc-desc)/2 + asc
	DrawString(clipTo(dst, r.Image()), face, geom.Pt(x, y), s, c)
}

// Wrap breaks text into lines no wider than maxW. Explicit newlines always
// break. Words wider than maxW are split between runes.
func Wrap(face font.Face, text string, maxW float64) []string {
	var out []string
	for _, para := range strings.Split(text, "\n") {
		out = append(out, wrapParagraph(face, para, maxW)...)
	}
	return out
}

func wrapParagraph(face font.Face, para string, maxW float64) []string {
	words := strings.Fields(para)
	if len(words) == 0 {
		return []string{""}
	}
	var lines []string
	cur := ""
	for _, w := range words {
		cand := w
		if cur != "" {
			cand = cur + " " + w
		}
		if Measure(face, cand) <= maxW {
			cur = cand
			continue
		}
		if cur != "" {
			lines = append(lines, cur)
			cur = ""
		}
		for Measure(face, w) > maxW && utf8.RuneCountInString(w) > 1 {
			head := splitToWidth(face, w, maxW)
			lines = append(lines, head)
			w = w[len(head):]
		}
		cur = w
	}
	return append(lines, cur)
}

func splitToWidth(face font.Face, s string, maxW float64) string {
	end := 0
	for i, r := range s {
		next := i + utf8.RuneLen(r)
		if end > 0 && Measure(face, s[:next]) > maxW {
			break
		}
		end = next
	}
	return s[:end]
}

// DrawParagraphs word-wraps text inside r and draws it top-down, clipped to
// r. It returns the height used.
func DrawParagraphs(dst *image.RGBA, face font.Face, r geom.Rect, text string, c color.Color) float64 {
	if face == nil {
		return 0
	}
	clip := clipTo(dst, r.Image())
	lh := LineHeight(face)
	y := r.Y + Ascent(face)
	for _, line := range Wrap(face, text, r.W) {
		if y-Ascent(face) > r.Y+r.H {
			break
		}
		DrawString(clip, face, geom.Pt(r.X, y), line, c)
		y += lh
	}
	return y - Ascent(face) - r.Y
}

func clipTo(dst *image.RGBA, r image.Rectangle) *image.RGBA {
	sub, ok := dst.SubImage(r).(*image.RGBA)
	if !ok {
		return dst
	}
	return sub
}
