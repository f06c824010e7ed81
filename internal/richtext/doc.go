package richtext

import (
	"math"
	"strings"

	"github.com/example/glassboard/internal/scene"
)

// Ensure returns the layout of a Markdown or Code object, building it from
// the object's text when it is missing. Other kinds return nil.
func Ensure(o *scene.Object) scene.Layout {
	if o.Doc != nil {
		return o.Doc
	}
	switch o.Kind {
	case scene.Markdown:
		o.Doc = NewMarkdown(o.Text)
	case scene.Code:
		name := o.Title
		if o.Ext != "" && !strings.HasSuffix(strings.ToLower(name), "."+strings.ToLower(o.Ext)) {
			name = "source." + o.Ext
		}
		o.Doc = NewCode(o.Text, name)
	}
	return o.Doc
}

// Prepare lays out the object's document for zoom, refreshes MaxScrollY
// and clamps the scroll offset. It returns nil for kinds without a
// document.
func Prepare(o *scene.Object, zoom float64) scene.Layout {
	doc := Ensure(o)
	if doc == nil {
		return nil
	}
	content := o.ContentBounds()
	doc.SetScale(zoom)
	doc.SetWidth(content.W * zoom)
	o.MaxScrollY = math.Max(0, doc.Height()/zoom-content.H)
	o.ClampScroll()
	return doc
}
