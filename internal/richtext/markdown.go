package richtext

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"

	"github.com/example/glassboard/internal/render"
)

// Palette for markdown content.
var (
	MarkdownText  = color.NRGBA{220, 220, 230, 255}
	MarkdownDim   = color.NRGBA{160, 160, 175, 255}
	MarkdownLink  = color.NRGBA{100, 200, 255, 255}
	MarkdownCode  = color.NRGBA{255, 200, 140, 255}
	markdownSizes = [...]float64{14, 24, 20, 17, 15, 14, 14}
)

var md = goldmark.New(goldmark.WithExtensions(extension.GFM))

// NewMarkdown parses src as GitHub flavoured markdown.
func NewMarkdown(src string) *Document {
	source := []byte(src)
	root := md.Parser().Parse(text.NewReader(source))
	b := &mdBuilder{src: source}
	b.blockNode(root, 0, false)
	if len(b.blocks) == 0 {
		b.blocks = append(b.blocks, block{})
	}
	return newDocument(b.blocks)
}

type mdBuilder struct {
	src    []byte
	blocks []block
	cur    *block
}

func (b *mdBuilder) start(blk block) {
	if len(b.blocks) > 0 && blk.spaceBefore == 0 {
		blk.spaceBefore = 6
	}
	b.blocks = append(b.blocks, blk)
	b.cur = &b.blocks[len(b.blocks)-1]
}

func (b *mdBuilder) add(s string, st style) {
	if s == "" || b.cur == nil {
		return
	}
	if n := len(b.cur.spans); n > 0 && b.cur.spans[n-1].st == st {
		b.cur.spans[n-1].text += s
		return
	}
	b.cur.spans = append(b.cur.spans, span{text: s, st: st})
}

func baseStyle(quote bool) style {
	st := style{font: render.Regular, size: markdownSizes[0], color: MarkdownText}
	if quote {
		st.font = render.Italic
		st.color = MarkdownDim
	}
	return st
}

func (b *mdBuilder) blockNode(n ast.Node, indent float64, quote bool) {
	switch n := n.(type) {
	case *ast.Heading:
		lvl := n.Level
		if lvl >= len(markdownSizes) {
			lvl = len(markdownSizes) - 1
		}
		b.start(block{indent: indent, spaceBefore: 12})
		b.inline(n, style{font: render.Bold, size: markdownSizes[lvl], color: MarkdownText})
	case *ast.Paragraph, *ast.TextBlock:
		b.start(block{indent: indent})
		b.inline(n, baseStyle(quote))
	case *ast.List:
		num := n.Start
		for item := n.FirstChild(); item != nil; item = item.NextSibling() {
			bullet := "•"
			if n.IsOrdered() {
				bullet = fmt.Sprintf("%d.", num)
				num++
			}
			first := len(b.blocks)
			for c := item.FirstChild(); c != nil; c = c.NextSibling() {
				b.blockNode(c, indent+20, quote)
			}
			if len(b.blocks) == first {
				b.start(block{indent: indent + 20})
			}
			b.blocks[first].bullet = bullet
			if first > 0 {
				b.blocks[first].spaceBefore = 2
			}
		}
	case *ast.Blockquote:
		first := len(b.blocks)
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			b.blockNode(c, indent, true)
		}
		for i := first; i < len(b.blocks); i++ {
			b.blocks[i].decor = decorQuote
		}
	case *ast.FencedCodeBlock, *ast.CodeBlock:
		b.start(block{indent: indent, decor: decorCode, pre: true})
		b.add(strings.TrimSuffix(linesOf(n, b.src), "\n"), style{font: render.Mono, size: 13, color: MarkdownCode})
	case *ast.HTMLBlock:
		b.start(block{indent: indent, pre: true})
		b.add(strings.TrimSuffix(linesOf(n, b.src), "\n"), style{font: render.Mono, size: 12, color: MarkdownDim})
	case *ast.ThematicBreak:
		b.start(block{decor: decorRule})
	case *extast.Table:
		for row := n.FirstChild(); row != nil; row = row.NextSibling() {
			st := baseStyle(quote)
			if _, ok := row.(*extast.TableHeader); ok {
				st.font = render.Bold
			}
			b.start(block{indent: indent, spaceBefore: 2})
			for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
				if cell != row.FirstChild() {
					b.add("  |  ", style{font: render.Regular, size: st.size, color: MarkdownDim})
				}
				b.inline(cell, st)
			}
		}
	default:
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			b.blockNode(c, indent, quote)
		}
	}
}

func linesOf(n ast.Node, src []byte) string {
	var sb strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		sb.Write(seg.Value(src))
	}
	return sb.String()
}

func (b *mdBuilder) inline(n ast.Node, st style) {
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch c := c.(type) {
		case *ast.Text:
			b.add(string(c.Segment.Value(b.src)), st)
			switch {
			case c.HardLineBreak():
				b.add("\n", st)
			case c.SoftLineBreak():
				b.add(" ", st)
			}
		case *ast.String:
			b.add(string(c.Value), st)
		case *ast.Emphasis:
			next := st
			if c.Level >= 2 {
				next.font = render.Bold
			} else {
				next.font = render.Italic
			}
			b.inline(c, next)
		case *ast.CodeSpan:
			b.inline(c, style{font: render.Mono, size: st.size - 1, color: MarkdownCode})
		case *ast.Link:
			next := st
			next.color = MarkdownLink
			b.inline(c, next)
		case *ast.AutoLink:
			next := st
			next.color = MarkdownLink
			b.add(string(c.URL(b.src)), next)
		case *ast.RawHTML:
			for i := 0; i < c.Segments.Len(); i++ {
				seg := c.Segments.At(i)
				b.add(string(seg.Value(b.src)), style{font: render.Mono, size: st.size, color: MarkdownDim})
			}
		case *extast.Strikethrough:
			next := st
			next.color = MarkdownDim
			b.inline(c, next)
		case *extast.TaskCheckBox:
			box := "[ ] "
			if c.IsChecked {
				box = "[x] "
			}
			b.add(box, style{font: render.Mono, size: st.size, color: MarkdownLink})
		default:
			b.inline(c, st)
		}
	}
}
