package interact

import (
	"unicode"
	"unicode/utf8"

	"github.com/example/glassboard/internal/geom"
	"github.com/example/glassboard/internal/scene"
)

// Key is a non-printable key the canvas reacts to.
type Key int

const (
	KeyEnter Key = iota
	KeyBackspace
	KeyDelete
)

// KeyRune types r into the selected Window or Text object. Without one,
// + and - zoom at the viewport centre and 0 resets the view.
func (c *Controller) KeyRune(r rune) {
	if !unicode.IsPrint(r) {
		return
	}
	if o := c.Store.PrimaryObject(); o != nil && o.Kind.HasText() {
		o.SetText(o.Text + string(r))
		c.State.CaretVisible = true
		c.dirty()
		return
	}
	centre := geom.Pt(c.View.ViewW/2, c.View.ViewH/2)
	switch r {
	case '+', '=':
		c.View.ZoomAt(centre, 1)
	case '-':
		c.View.ZoomAt(centre, -1)
	case '0':
		c.View.Reset()
	default:
		return
	}
	c.dirty()
}

func (c *Controller) trimLastRune(o *scene.Object) {
	_, size := utf8.DecodeLastRuneInString(o.Text)
	o.SetText(o.Text[:len(o.Text)-size])
	c.dirty()
}

// Key handles Enter, Backspace and Delete. On a Window or Text with text,
// Backspace and Delete both remove the last rune.
func (c *Controller) Key(k Key) {
	switch k {
	case KeyEnter:
		if o := c.Store.PrimaryObject(); o != nil && o.Kind.HasText() {
			o.SetText(o.Text + "\n")
			c.dirty()
		}
	case KeyBackspace:
		i, ok := c.Store.Primary()
		if !ok {
			return
		}
		o := c.Store.At(i)
		if o.Kind.HasText() && o.Text != "" {
			c.trimLastRune(o)
			return
		}
		c.Store.RemoveAt(i)
		c.dirty()
	case KeyDelete:
		if o := c.Store.PrimaryObject(); o != nil && o.Kind.HasText() && o.Text != "" {
			c.trimLastRune(o)
			return
		}
		if c.Store.RemoveSelected() > 0 {
			c.dirty()
		}
	}
}
