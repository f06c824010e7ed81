package richtext

import (
	"image/color"
	"path/filepath"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/go-enry/go-enry/v2"

	"github.com/example/glassboard/internal/render"
)

const (
	codeStyleName = "monokai"
	codeFontSize  = 13
)

// CodeText is used for tokens the style leaves uncoloured.
var CodeText = color.NRGBA{230, 230, 230, 255}

// DetectLanguage guesses the language of a source file from its name and
// content.
func DetectLanguage(filename, src string) string {
	return enry.GetLanguage(filepath.Base(filename), []byte(src))
}

func lexerFor(lang, filename, src string) chroma.Lexer {
	if lang != "" {
		if l := lexers.Get(lang); l != nil {
			return l
		}
	}
	if filename != "" {
		if l := lexers.Match(filepath.Base(filename)); l != nil {
			return l
		}
	}
	if l := lexers.Analyse(src); l != nil {
		return l
	}
	return lexers.Fallback
}

// NewCode highlights src. filename is used for language detection and may
// be a bare extension such as "x.py".
func NewCode(src, filename string) *Document {
	lang := DetectLanguage(filename, src)
	lexer := chroma.Coalesce(lexerFor(lang, filename, src))
	st := styles.Get(codeStyleName)
	if st == nil {
		st = styles.Fallback
	}

	blk := block{pre: true}
	add := func(s string, c color.NRGBA, bold bool) {
		f := render.Mono
		if bold {
			f = render.MonoBold
		}
		sty := style{font: f, size: codeFontSize, color: c}
		if n := len(blk.spans); n > 0 && blk.spans[n-1].st == sty {
			blk.spans[n-1].text += s
			return
		}
		blk.spans = append(blk.spans, span{text: s, st: sty})
	}

	src = strings.ReplaceAll(src, "\t", "    ")
	it, err := lexer.Tokenise(nil, src)
	if err != nil {
		add(src, CodeText, false)
		return newDocument([]block{blk})
	}
	for tok := it(); tok != chroma.EOF; tok = it() {
		entry := st.Get(tok.Type)
		c := CodeText
		if entry.Colour.IsSet() {
			c = color.NRGBA{entry.Colour.Red(), entry.Colour.Green(), entry.Colour.Blue(), 255}
		}
		add(tok.Value, c, entry.Bold == chroma.Yes)
	}
	return newDocument([]block{blk})
}
