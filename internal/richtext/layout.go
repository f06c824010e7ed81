// Package richtext lays out styled text for the Markdown and Code panels.
// Documents are built once from their source and re-flowed whenever the
// width or zoom changes.
package richtext

import (
	"image"
	"image/color"
	"math"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/image/font"

	"github.com/example/glassboard/internal/geom"
	"github.com/example/glassboard/internal/render"
	"github.com/example/glassboard/internal/scene"
)

// SelectionColor highlights selected text.
var SelectionColor = color.NRGBA{100, 200, 255, 90}

type style struct {
	font  render.FontStyle
	size  float64
	color color.NRGBA
}

type span struct {
	text string
	st   style
}

type decoration int

const (
	decorNone decoration = iota
	decorCode
	decorQuote
	decorRule
)

type block struct {
	spans       []span
	indent      float64
	bullet      string
	spaceBefore float64
	decor       decoration
	// preformatted blocks keep their whitespace and only break at newlines
	// or when a line overflows.
	pre bool
}

type piece struct {
	x, w    float64
	text    string
	start   int
	st      style
	face    font.Face
	stopsAt []float64 // x offset after each rune
}

type line struct {
	y, ascent, height float64
	pieces            []piece
	start, end        int
	block             int
}

// Document is a laid out rich text block. It implements scene.Layout.
type Document struct {
	blocks []block
	plain  string

	scale float64
	width float64
	dirty bool

	lines  []line
	height float64
	// extents of each block's lines, for decorations
	blockSpans [][2]int
}

var _ scene.Layout = (*Document)(nil)

func newDocument(blocks []block) *Document {
	d := &Document{blocks: blocks, scale: 1, width: 200, dirty: true}
	var sb strings.Builder
	for i, b := range blocks {
		if i > 0 {
			sb.WriteByte('\n')
		}
		for _, s := range b.spans {
			sb.WriteString(s.text)
		}
	}
	d.plain = sb.String()
	return d
}

// SetScale sets the zoom factor applied to every font size.
func (d *Document) SetScale(zoom float64) {
	if zoom <= 0 || zoom == d.scale {
		return
	}
	d.scale = zoom
	d.dirty = true
}

// SetWidth sets the wrapping width in pixels.
func (d *Document) SetWidth(px float64) {
	if px < 1 {
		px = 1
	}
	if px == d.width {
		return
	}
	d.width = px
	d.dirty = true
}

// Height returns the laid out content height in pixels.
func (d *Document) Height() float64 {
	d.layout()
	return d.height
}

// PlainText returns the text of the document without markup. Selection
// offsets index its runes.
func (d *Document) PlainText() string { return d.plain }

// SelectedText returns the runes of PlainText covered by sel.
func (d *Document) SelectedText(sel scene.Selection) string {
	sel = sel.Ordered()
	runes := []rune(d.plain)
	start := clampInt(sel.Start, 0, len(runes))
	end := clampInt(sel.End, 0, len(runes))
	return string(runes[start:end])
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func (d *Document) layout() {
	if !d.dirty {
		return
	}
	d.dirty = false
	d.lines = d.lines[:0]
	d.blockSpans = d.blockSpans[:0]
	y := 0.0
	offset := 0
	for bi, b := range d.blocks {
		if bi > 0 {
			y += b.spaceBefore * d.scale
			offset++ // block separator newline
		}
		first := len(d.lines)
		y, offset = d.layoutBlock(bi, b, y, offset)
		d.blockSpans = append(d.blockSpans, [2]int{first, len(d.lines)})
	}
	d.height = math.Ceil(y)
}

type flow struct {
	d      *Document
	block  int
	left   float64
	right  float64
	cur    line
	x      float64
	y      float64
	offset int
}

func (f *flow) face(st style) font.Face {
	return render.Face(st.font, st.size*f.d.scale)
}

func (f *flow) breakLine() {
	if f.cur.height == 0 {
		f.cur.height = f.defaultHeight()
		f.cur.ascent = f.cur.height * 0.8
	}
	f.cur.y = f.y
	if f.cur.end < f.cur.start {
		f.cur.end = f.cur.start
	}
	f.d.lines = append(f.d.lines, f.cur)
	f.y += f.cur.height
	f.cur = line{start: f.offset, end: f.offset, block: f.block}
	f.x = f.left
}

func (f *flow) defaultHeight() float64 {
	b := f.d.blocks[f.block]
	size := 14.0
	if len(b.spans) > 0 {
		size = b.spans[0].st.size
	}
	face := render.Face(render.Regular, size*f.d.scale)
	if face == nil {
		return size * f.d.scale
	}
	return render.LineHeight(face)
}

func (f *flow) place(text string, st style, face font.Face) {
	stops := make([]float64, 0, utf8.RuneCountInString(text))
	w := 0.0
	prev := rune(-1)
	for _, r := range text {
		if prev >= 0 {
			w += float64(face.Kern(prev, r)) / 64
		}
		adv, ok := face.GlyphAdvance(r)
		if ok {
			w += float64(adv) / 64
		}
		stops = append(stops, w)
		prev = r
	}
	f.cur.pieces = append(f.cur.pieces, piece{
		x: f.x, w: w, text: text, start: f.offset, st: st, face: face, stopsAt: stops,
	})
	m := face.Metrics()
	if h := render.LineHeight(face); h > f.cur.height {
		f.cur.height = h
	}
	if a := float64(m.Ascent) / 64; a > f.cur.ascent {
		f.cur.ascent = a
	}
	f.x += w
	f.offset += len(stops)
	f.cur.end = f.offset
}

func (d *Document) layoutBlock(bi int, b block, y float64, offset int) (float64, int) {
	pad := 0.0
	if b.decor == decorCode || b.decor == decorQuote {
		pad = 8 * d.scale
	}
	f := &flow{
		d:      d,
		block:  bi,
		left:   b.indent*d.scale + pad,
		right:  d.width - pad,
		y:      y + pad/2,
		offset: offset,
	}
	f.x = f.left
	f.cur = line{start: offset, end: offset, block: bi}
	before := len(d.lines)
	if b.decor == decorRule {
		f.cur.height = 12 * d.scale
		f.breakLine()
		return f.y, f.offset
	}
	for _, sp := range b.spans {
		face := f.face(sp.st)
		if face == nil {
			continue
		}
		for _, tok := range tokens(sp.text) {
			switch {
			case tok == "\n":
				// The newline occupies one rune of plain text.
				f.offset++
				f.cur.end = f.offset
				f.breakLine()
			case isSpace(tok) && !b.pre:
				w := render.Measure(face, tok)
				if f.x+w > f.right && f.x > f.left {
					f.offset += utf8.RuneCountInString(tok)
					f.breakLine()
					continue
				}
				f.place(tok, sp.st, face)
			default:
				w := render.Measure(face, tok)
				if f.x+w > f.right && f.x > f.left {
					f.breakLine()
				}
				for f.x+render.Measure(face, tok) > f.right && utf8.RuneCountInString(tok) > 1 {
					head := fitRunes(face, tok, f.right-f.x)
					f.place(head, sp.st, face)
					tok = tok[len(head):]
					f.breakLine()
				}
				f.place(tok, sp.st, face)
			}
		}
	}
	if len(f.cur.pieces) > 0 || len(d.lines) == before {
		f.breakLine()
	}
	return f.y + pad/2, f.offset
}

func fitRunes(face font.Face, s string, maxW float64) string {
	end := 0
	for i, r := range s {
		next := i + utf8.RuneLen(r)
		if end > 0 && render.Measure(face, s[:next]) > maxW {
			break
		}
		end = next
	}
	return s[:end]
}

// tokens splits s into runs of non-space, runs of spaces, and single
// newlines.
func tokens(s string) []string {
	var out []string
	start := 0
	kind := -1
	for i, r := range s {
		k := 0
		switch {
		case r == '\n':
			k = 2
		case unicode.IsSpace(r):
			k = 1
		}
		if k != kind || k == 2 {
			if i > start {
				out = append(out, s[start:i])
			}
			start = i
			kind = k
		}
	}
	if start < len(s) {
		out = append(out, s[start:])
	}
	return out
}

func isSpace(tok string) bool {
	for _, r := range tok {
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return tok != ""
}

// HitTest returns the rune offset nearest to p, measured from the top-left
// of the unscrolled content.
func (d *Document) HitTest(p geom.Point) int {
	d.layout()
	if len(d.lines) == 0 {
		return 0
	}
	li := len(d.lines) - 1
	for i, l := range d.lines {
		if p.Y < l.y+l.height {
			li = i
			break
		}
	}
	l := d.lines[li]
	if p.Y < l.y && li == 0 {
		return 0
	}
	best := l.start
	for _, pc := range l.pieces {
		if p.X < pc.x {
			break
		}
		prev := 0.0
		best = pc.start + len(pc.stopsAt)
		for i, stop := range pc.stopsAt {
			if p.X < pc.x+(prev+stop)/2 {
				return pc.start + i
			}
			prev = stop
		}
	}
	if best > l.end {
		best = l.end
	}
	return best
}

// Draw renders the visible lines.
func (d *Document) Draw(dst *image.RGBA, clip image.Rectangle, origin geom.Point, scroll float64, sel scene.Selection) {
	d.layout()
	clip = clip.Intersect(dst.Bounds())
	if clip.Empty() {
		return
	}
	sub, ok := dst.SubImage(clip).(*image.RGBA)
	if !ok {
		return
	}
	sel = sel.Ordered()
	top := origin.Y - scroll

	for bi, b := range d.blocks {
		if b.decor == decorNone || bi >= len(d.blockSpans) {
			continue
		}
		span := d.blockSpans[bi]
		if span[0] >= span[1] {
			continue
		}
		first, last := d.lines[span[0]], d.lines[span[1]-1]
		pad := 8 * d.scale
		r := geom.Rect{
			X: origin.X + b.indent*d.scale,
			Y: top + first.y - pad/2,
			W: d.width - b.indent*d.scale,
			H: last.y + last.height - first.y + pad,
		}
		switch b.decor {
		case decorCode:
			render.Fill(sub, render.RoundedRect(r, 6*d.scale), color.NRGBA{0, 0, 0, 90})
		case decorQuote:
			render.FillRect(sub, geom.Rect{X: r.X, Y: r.Y, W: 3 * d.scale, H: r.H}.Image(), color.NRGBA{255, 255, 255, 90})
		case decorRule:
			mid := top + first.y + first.height/2
			render.FillRect(sub, geom.Rect{X: origin.X, Y: mid, W: d.width, H: math.Max(1, d.scale)}.Image(), color.NRGBA{255, 255, 255, 80})
		}
	}

	for li, l := range d.lines {
		ly := top + l.y
		if ly > float64(clip.Max.Y) {
			break
		}
		if ly+l.height < float64(clip.Min.Y) {
			continue
		}
		b := d.blocks[l.block]
		if b.bullet != "" && li == d.blockSpans[l.block][0] {
			face := render.Face(render.Regular, 14*d.scale)
			bx := origin.X + (b.indent-16)*d.scale
			render.DrawString(sub, face, geom.Pt(bx, ly+l.ascent), b.bullet, color.NRGBA{200, 200, 200, 255})
		}
		for _, pc := range l.pieces {
			x := origin.X + pc.x
			if !sel.Empty() {
				s, e := clampInt(sel.Start-pc.start, 0, len(pc.stopsAt)), clampInt(sel.End-pc.start, 0, len(pc.stopsAt))
				if s < e {
					x0 := 0.0
					if s > 0 {
						x0 = pc.stopsAt[s-1]
					}
					x1 := pc.stopsAt[e-1]
					render.FillRect(sub, geom.Rect{X: x + x0, Y: ly, W: x1 - x0, H: l.height}.Image(), SelectionColor)
				}
			}
			render.DrawString(sub, pc.face, geom.Pt(x, ly+l.ascent), pc.text, pc.st.color)
		}
	}
}
