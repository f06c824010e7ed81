package project

import (
	"bufio"
	"errors"
	"fmt"
	"image/color"
	"io"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/example/glassboard/internal/scene"
)

// blockIndent is the indentation of lines inside a `key: |` block.
const blockIndent = 4

var (
	varLine    = regexp.MustCompile(`^\$VAR\s+(\w+)\s*=\s*(.*)$`)
	defLine    = regexp.MustCompile(`^\$DEF\s+\[(\w+)\]`)
	unsafeExpr = regexp.MustCompile(`[^0-9.+\-*/()\s]`)
	identifier = regexp.MustCompile(`[A-Za-z_]\w*`)
)

// fallbackColor replaces a colour that could not be parsed.
var fallbackColor = color.NRGBA{200, 200, 200, 255}

// Load replaces the contents of store with the project at path. A missing
// file leaves the store untouched and sets Report.Missing. Malformed lines
// and unreadable assets are recorded as warnings and never fail the load.
func Load(store *scene.Store, path string) (*Report, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &Report{Path: path, Missing: true}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	defer f.Close()

	objs, rep, err := Decode(f, filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	rep.Path = path
	store.Clear()
	for _, o := range objs {
		store.Append(o)
	}
	return rep, nil
}

// Decode parses a project read from r. Relative asset paths resolve
// against dir.
func Decode(r io.Reader, dir string) ([]*scene.Object, *Report, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)
	for sc.Scan() {
		lines = append(lines, strings.TrimSuffix(sc.Text(), "\r"))
	}
	if err := sc.Err(); err != nil {
		return nil, nil, err
	}

	p := &parser{
		dir:       dir,
		vars:      map[string]string{},
		templates: map[string][]string{},
		report:    &Report{},
	}
	p.run(lines)
	p.report.Objects = len(p.objects)
	return p.objects, p.report, nil
}

type parser struct {
	dir       string
	vars      map[string]string
	varNames  []string // longest first
	templates map[string][]string

	objects []*scene.Object
	cur     *scene.Object
	line    int

	block       bool
	blockBuf    strings.Builder
	blockBlanks int

	report *Report
}

func (p *parser) run(lines []string) {
	for i := 0; i < len(lines); i++ {
		p.line = i + 1
		raw := lines[i]
		stripped := strings.TrimSpace(raw)

		if p.block && p.blockLine(raw, stripped) {
			continue
		}

		if stripped == "" || strings.HasPrefix(stripped, "#") {
			continue
		}

		if strings.HasPrefix(stripped, "$VAR") {
			if m := varLine.FindStringSubmatch(stripped); m != nil {
				v, _, _ := p.evaluate(m[2])
				p.setVar(m[1], v)
			}
			continue
		}

		if strings.HasPrefix(stripped, "$DEF") {
			m := defLine.FindStringSubmatch(stripped)
			if m == nil {
				continue
			}
			var body []string
			for i+1 < len(lines) {
				next := lines[i+1]
				if strings.TrimSpace(next) != "" && !strings.HasPrefix(next, "  ") {
					break
				}
				body = append(body, next)
				i++
			}
			p.templates[strings.ToUpper(m[1])] = body
			continue
		}

		if strings.HasPrefix(raw, ">") {
			p.flush()
			p.header(stripped)
			continue
		}

		if p.cur != nil {
			p.property(stripped)
		}
	}
	p.flush()
}

// blockLine consumes raw as part of the open text block and reports
// whether it did. Empty lines are held back until the block continues so
// the separator before the next object is not absorbed.
func (p *parser) blockLine(raw, stripped string) bool {
	if raw == "" {
		p.blockBlanks++
		return true
	}
	if indentOf(raw) < blockIndent {
		p.endBlock()
		return false
	}
	for ; p.blockBlanks > 0; p.blockBlanks-- {
		p.blockBuf.WriteString("\n")
	}
	p.blockBuf.WriteString(raw[blockIndent:])
	p.blockBuf.WriteString("\n")
	return true
}

func (p *parser) endBlock() {
	if !p.block {
		return
	}
	text := strings.TrimSuffix(p.blockBuf.String(), "\n")
	if p.cur != nil {
		p.cur.SetText(text)
	}
	p.block = false
	p.blockBuf.Reset()
	p.blockBlanks = 0
}

func indentOf(s string) int {
	return len(s) - len(strings.TrimLeft(s, " \t"))
}

func (p *parser) setVar(name, value string) {
	if _, ok := p.vars[name]; !ok {
		p.varNames = append(p.varNames, name)
		sort.SliceStable(p.varNames, func(i, j int) bool { return len(p.varNames[i]) > len(p.varNames[j]) })
	}
	p.vars[name] = value
}

// substitute replaces $name references, longest names first.
func (p *parser) substitute(expr string) string {
	for _, name := range p.varNames {
		expr = strings.ReplaceAll(expr, "$"+name, p.vars[name])
	}
	return expr
}

// evaluate substitutes variables and, when the result looks arithmetic,
// computes it. tried reports whether evaluation was attempted and ok
// whether it succeeded; on failure the substituted text is returned.
// Inside arithmetic a variable may also be named without its $.
func (p *parser) evaluate(expr string) (out string, tried, ok bool) {
	expr = p.substitute(expr)
	if strings.Contains(expr, ",") {
		// Lists such as colours are evaluated item by item.
		parts := strings.Split(expr, ",")
		ok = true
		for i, part := range parts {
			res, t, k := p.evaluate(part)
			parts[i] = strings.TrimSpace(res)
			tried = tried || t
			ok = ok && k
		}
		return strings.Join(parts, ","), tried, ok
	}
	trimmed := strings.TrimSpace(expr)
	if !strings.ContainsAny(expr, "+-*/") && !(trimmed != "" && trimmed[0] >= '0' && trimmed[0] <= '9') {
		return expr, false, true
	}
	expr = identifier.ReplaceAllStringFunc(expr, func(id string) string {
		if v, found := p.vars[id]; found {
			return v
		}
		return id
	})
	clean := unsafeExpr.ReplaceAllString(expr, "")
	if strings.TrimSpace(clean) == "" {
		return expr, false, true
	}
	v, err := Eval(clean)
	if err != nil {
		return expr, true, false
	}
	return strconv.FormatFloat(v, 'f', -1, 64), true, true
}

func (p *parser) header(stripped string) {
	rest := strings.TrimSpace(strings.TrimPrefix(stripped, ">"))
	rest = strings.TrimPrefix(rest, "[")
	rawKind, title, ok := strings.Cut(rest, "]")
	title = strings.TrimSpace(title)
	if !ok || title == "" {
		title = "Object"
	}
	rawKind = strings.ToUpper(strings.TrimSpace(rawKind))

	if name, isUse := strings.CutPrefix(rawKind, "USE:"); isUse {
		lines, found := p.templates[strings.TrimSpace(name)]
		if !found {
			p.report.warn(p.line, UnknownTemplate, "template %s not defined", name)
			p.cur = placeholder(name)
			return
		}
		p.cur = scene.New(scene.Rectangle, 0, 0)
		p.cur.Title = title
		p.replay(lines)
		return
	}

	kind, known := scene.ParseKind(rawKind)
	if !known {
		p.report.warn(p.line, UnknownKind, "unknown object kind %s", rawKind)
		p.cur = placeholder(rawKind)
		return
	}
	p.cur = scene.New(kind, 0, 0)
	p.cur.Title = title
}

func placeholder(what string) *scene.Object {
	o := scene.New(scene.Rectangle, 0, 0)
	o.Title = "ERR: " + strings.TrimSpace(what)
	o.Placeholder = true
	return o
}

// replay feeds template lines through the property state machine.
func (p *parser) replay(lines []string) {
	for _, raw := range lines {
		stripped := strings.TrimSpace(raw)
		if p.block && p.blockLine(raw, stripped) {
			continue
		}
		if stripped == "" || strings.HasPrefix(stripped, "#") {
			continue
		}
		p.property(stripped)
	}
	p.endBlock()
}

func (p *parser) property(stripped string) {
	key, value, ok := strings.Cut(stripped, ":")
	if !ok {
		return
	}
	key = strings.ToLower(strings.TrimSpace(key))
	value = strings.TrimSpace(value)
	o := p.cur

	switch key {
	case "x":
		o.X = p.number(key, value)
	case "y":
		o.Y = p.number(key, value)
	case "w":
		o.W = scene.Some(p.number(key, value))
	case "h":
		o.H = scene.Some(p.number(key, value))
	case "color":
		o.Tint = scene.SomeColor(p.color(value))
	case "ext":
		o.Ext = strings.TrimPrefix(value, ".")
	case "path":
		p.asset(value)
	case "content", "text":
		if value == "|" {
			p.block = true
			p.blockBuf.Reset()
			p.blockBlanks = 0
			o.SetText("")
			return
		}
		o.SetText(value)
	}
}

func (p *parser) number(key, value string) float64 {
	res, tried, ok := p.evaluate(value)
	if !ok {
		p.report.warn(p.line, ExpressionFailure, "%s: cannot evaluate %q", key, value)
		return 0
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(res), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		if tried {
			p.report.warn(p.line, ExpressionFailure, "%s: %q is not a number", key, res)
		} else {
			p.report.warn(p.line, MalformedNumber, "%s: %q is not a number", key, res)
		}
		return 0
	}
	return f
}

// color parses r,g,b[,a]. Variables are substituted first, so one may hold
// a whole colour, then each component is evaluated on its own.
func (p *parser) color(value string) color.NRGBA {
	parts := strings.Split(p.substitute(value), ",")
	if len(parts) != 3 && len(parts) != 4 {
		p.report.warn(p.line, MalformedColor, "%q needs 3 or 4 components", value)
		return fallbackColor
	}
	c := [4]uint8{0, 0, 0, 255}
	for i, part := range parts {
		res, _, ok := p.evaluate(part)
		f, err := strconv.ParseFloat(strings.TrimSpace(res), 64)
		if !ok || err != nil || math.IsNaN(f) {
			p.report.warn(p.line, MalformedColor, "component %q of %q", strings.TrimSpace(part), value)
			return fallbackColor
		}
		c[i] = clampByte(int(math.Round(f)))
	}
	return color.NRGBA{c[0], c[1], c[2], c[3]}
}

func (p *parser) resolve(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(p.dir, path)
}

func (p *parser) asset(value string) {
	o := p.cur
	full := p.resolve(value)
	o.SourcePath = full
	switch o.Kind {
	case scene.Image:
		img, err := DecodeImage(full)
		if err != nil {
			p.report.warn(p.line, MissingAsset, "image %s: %v", value, err)
			o.MissingAsset = true
			return
		}
		o.SetPixels(img)
	case scene.Drawing:
		strokes, err := readStrokes(full)
		if err != nil {
			p.report.warn(p.line, MissingAsset, "drawing %s: %v", value, err)
			o.MissingAsset = true
			return
		}
		o.Strokes = strokes
		o.MissingAsset = false
	}
}

func (p *parser) flush() {
	p.endBlock()
	o := p.cur
	if o == nil {
		return
	}
	p.cur = nil
	switch o.Kind {
	case scene.Image:
		if o.Pixels != nil {
			if !o.W.IsSet() {
				o.W = scene.Some(float64(o.OrigW))
			}
			if !o.H.IsSet() {
				o.H = scene.Some(float64(o.OrigH))
			}
		}
	case scene.Drawing:
		if len(o.Strokes) > 0 && (!o.W.IsSet() || !o.H.IsSet()) {
			o.Recenter()
		}
	}
	p.objects = append(p.objects, o)
}
