// Package scene holds the canvas objects and the ordered store that owns
// them.
package scene

import "strings"

// Kind discriminates the object variants.
type Kind int

const (
	Rectangle Kind = iota
	Triangle
	Window
	Text
	Image
	Markdown
	Code
	Drawing
)

var kindTags = [...]string{
	Rectangle: "CUADRADO",
	Triangle:  "TRIANGULO",
	Window:    "VENTANA",
	Text:      "TEXTO",
	Image:     "IMAGEN",
	Markdown:  "MARKDOWN",
	Code:      "CODIGO",
	Drawing:   "DIBUJO",
}

var kindNames = [...]string{
	Rectangle: "rectangle",
	Triangle:  "triangle",
	Window:    "window",
	Text:      "text",
	Image:     "image",
	Markdown:  "markdown",
	Code:      "code",
	Drawing:   "drawing",
}

var tagAliases = map[string]Kind{
	"RECTANGLE": Rectangle,
	"RECT":      Rectangle,
	"SQUARE":    Rectangle,
	"TRIANGLE":  Triangle,
	"WINDOW":    Window,
	"TEXT":      Text,
	"IMAGE":     Image,
	"CODE":      Code,
	"DRAWING":   Drawing,
}

// Tag returns the project file tag for k.
func (k Kind) Tag() string {
	if k < 0 || int(k) >= len(kindTags) {
		return kindTags[Rectangle]
	}
	return kindTags[k]
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// ParseKind maps a file tag or English alias, in any case, to a Kind.
func ParseKind(tag string) (Kind, bool) {
	tag = strings.ToUpper(strings.TrimSpace(tag))
	for k, t := range kindTags {
		if t == tag {
			return Kind(k), true
		}
	}
	k, ok := tagAliases[tag]
	return k, ok
}

// HasText reports whether objects of kind k carry caret-edited text.
func (k Kind) HasText() bool { return k == Window || k == Text }

// IsDocument reports whether objects of kind k render through a rich text
// layout with scrolling and selection.
func (k Kind) IsDocument() bool { return k == Markdown || k == Code }
