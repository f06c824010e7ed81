package interact

import (
	"errors"
	"fmt"
	"image/color"
	"log"

	"github.com/example/glassboard/internal/chrome"
	"github.com/example/glassboard/internal/geom"
	"github.com/example/glassboard/internal/project"
	"github.com/example/glassboard/internal/render"
	"github.com/example/glassboard/internal/richtext"
	"github.com/example/glassboard/internal/scene"
)

// Button identifies a pointer button.
type Button int

const (
	ButtonLeft Button = iota
	ButtonMiddle
	ButtonRight
)

// Modifiers are the keyboard modifiers held during a pointer event.
type Modifiers uint8

const (
	ModShift Modifiers = 1 << iota
	ModControl
)

// Controller owns the gesture state machine. All methods must be called
// from the goroutine that owns the store.
type Controller struct {
	Store *scene.Store
	View  *geom.Transform
	State *State

	palette []color.NRGBA
	importf func(path string) (*scene.Object, error)
}

// Option configures a Controller.
type Option func(*Controller)

// WithImporter replaces the file importer used by DropFiles.
func WithImporter(f func(path string) (*scene.Object, error)) Option {
	return func(c *Controller) { c.importf = f }
}

// WithState supplies an existing interface state.
func WithState(s *State) Option {
	return func(c *Controller) { c.State = s }
}

// New returns a controller driving store through view.
func New(store *scene.Store, view *geom.Transform, opts ...Option) *Controller {
	c := &Controller{
		Store:   store,
		View:    view,
		State:   NewState(),
		palette: render.Palette(),
		importf: project.Import,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Palette returns the swatch colours in layout order.
func (c *Controller) Palette() []color.NRGBA { return c.palette }

// Layout returns the chrome geometry for the current animation frame.
func (c *Controller) Layout() chrome.Layout {
	return chrome.Compute(c.View.ViewW, c.State.Chrome.Progress)
}

func (c *Controller) dirty() { c.State.Dirty = true }

// SetStatus shows a message in the HUD and logs it.
func (c *Controller) SetStatus(msg string) {
	c.State.Status = msg
	log.Print(msg)
	c.dirty()
}

// PointerDown starts a gesture.
func (c *Controller) PointerDown(p geom.Point, b Button, mods Modifiers) {
	st := c.State
	st.Pointer = p
	st.Anchor = p
	c.dirty()

	if c.chromePress(p) {
		return
	}
	world := c.View.ScreenToWorld(p)

	switch st.Tool {
	case ToolPencil, ToolMarker:
		st.Mode = FreehandDrawing
		st.Stroke = []geom.Point{world}
		st.merge = c.drawingAt(world)
		return
	case ToolEraser:
		st.Mode = Erasing
		c.erase(world)
		return
	}

	if o := c.Store.PrimaryObject(); o != nil {
		i, _ := c.Store.Primary()
		if DeleteHandle(c.View, o).Dist(p) <= DeleteHandleRadius {
			c.Store.RemoveAt(i)
			st.Mode = Idle
			return
		}
		if Resizable(o) && ResizeHandle(c.View, o).Dist(p) <= ResizeHandleRadius {
			pinPill(c.View, o)
			st.Mode = Resizing
			return
		}
	}

	if i, ok := c.Store.HitTest(world); ok {
		c.pressObject(i, world, mods)
		return
	}

	if mods&ModShift != 0 || b == ButtonMiddle {
		st.Mode = Panning
		return
	}
	c.Store.ClearSelection()
	st.Mode = MarqueeSelecting
	st.MarqueeStart = p
	st.Marquee = geom.Rect{X: p.X, Y: p.Y}
}

// chromePress handles a press on the floating controls and reports whether
// it was consumed.
func (c *Controller) chromePress(p geom.Point) bool {
	st := c.State
	anim := &st.Chrome
	l := c.Layout()
	hit := l.HitTest(p, anim.PaletteOpen(), anim.MenuOpen())
	switch hit.Kind {
	case chrome.HitToolButton:
		c.createTool(chrome.ToolButtons[hit.Index])
		return true
	case chrome.HitPaletteToggle:
		anim.SetPalette(!anim.PaletteOpen())
		return true
	case chrome.HitSwatch:
		st.ActiveColor = c.palette[hit.Index]
		if o := c.Store.PrimaryObject(); o != nil {
			o.Tint = scene.SomeColor(st.ActiveColor)
		}
		return true
	case chrome.HitMenuToggle:
		anim.SetMenu(!anim.MenuOpen())
		return true
	case chrome.HitMenuTool:
		c.pickMenuTool(chrome.MenuTool(hit.Index))
		return true
	case chrome.HitBody:
		return true
	}
	if anim.PaletteOpen() {
		anim.SetPalette(false)
	}
	return false
}

func (c *Controller) pickMenuTool(t chrome.MenuTool) {
	st := c.State
	toggle := func(tool Tool) {
		if st.Tool == tool {
			st.Tool = ToolNone
			return
		}
		st.Tool = tool
	}
	switch t {
	case chrome.MenuPencil:
		toggle(ToolPencil)
	case chrome.MenuMarker:
		toggle(ToolMarker)
	case chrome.MenuEraser:
		toggle(ToolEraser)
	case chrome.MenuWidth:
		next := StrokeWidths[0]
		for i, w := range StrokeWidths {
			if w == st.StrokeWidth && i+1 < len(StrokeWidths) {
				next = StrokeWidths[i+1]
			}
		}
		st.StrokeWidth = next
		c.SetStatus(fmt.Sprintf("Stroke width %g", next))
	}
}

// createTool adds the object for a toolbar button at the viewport centre
// and selects it.
func (c *Controller) createTool(b chrome.ToolButton) *scene.Object {
	centre := c.View.ScreenToWorld(geom.Pt(c.View.ViewW/2, c.View.ViewH/2))
	o := scene.New(b.Kind, centre.X, centre.Y)
	o.Title = b.Label
	if b.Kind != scene.Text {
		o.Tint = scene.SomeColor(c.State.ActiveColor)
	}
	c.Store.Select(c.Store.Append(o))
	return o
}

func (c *Controller) pressObject(i int, world geom.Point, mods Modifiers) {
	st := c.State
	o := c.Store.At(i)
	if mods&ModShift != 0 {
		c.Store.ToggleSelected(i)
		if !c.Store.IsSelected(i) {
			st.Mode = Idle
			return
		}
	} else if c.Store.IsSelected(i) {
		c.Store.SetPrimary(i)
	} else {
		c.Store.Select(i)
	}

	if o.Kind.IsDocument() && o.ContentBounds().Contains(world) && mods&ModShift == 0 {
		off := c.docOffset(o, world)
		o.Selection = &scene.Selection{Start: off, End: off}
		st.Mode = SelectingText
		return
	}
	st.Mode = DraggingObjects
}

// docOffset maps a world point to a rune offset of o's document.
func (c *Controller) docOffset(o *scene.Object, world geom.Point) int {
	doc := richtext.Prepare(o, c.View.Zoom)
	if doc == nil {
		return 0
	}
	content := o.ContentBounds()
	local := world.Sub(content.Min()).Add(geom.Pt(0, o.ScrollY)).Scale(c.View.Zoom)
	return doc.HitTest(local)
}

// drawingAt returns the topmost drawing containing world, if any.
func (c *Controller) drawingAt(world geom.Point) *scene.Object {
	objs := c.Store.Objects()
	for i := len(objs) - 1; i >= 0; i-- {
		if objs[i].Kind == scene.Drawing && objs[i].Bounds().Contains(world) {
			return objs[i]
		}
	}
	return nil
}

func (c *Controller) erase(world geom.Point) {
	radius := EraserRadius / c.View.Zoom
	for i := c.Store.Len() - 1; i >= 0; i-- {
		o := c.Store.At(i)
		if o.Kind != scene.Drawing || !o.EraseAt(world, radius) {
			continue
		}
		if len(o.Strokes) == 0 {
			c.Store.RemoveAt(i)
		}
	}
}

// PointerMove continues the active gesture or updates hover state.
func (c *Controller) PointerMove(p geom.Point) {
	st := c.State
	prev := st.Anchor
	st.Pointer = p
	world := c.View.ScreenToWorld(p)

	switch st.Mode {
	case Panning:
		c.View.PanBy(p.Sub(prev))
	case MarqueeSelecting:
		st.Marquee = geom.RectFromPoints(st.MarqueeStart, p)
		c.Store.SetSelected(c.Store.CentresIn(c.View.ScreenRectToWorld(st.Marquee)))
	case DraggingObjects:
		d := world.Sub(c.View.ScreenToWorld(prev))
		for _, o := range c.Store.SelectedObjects() {
			o.Move(d)
		}
	case Resizing:
		if o := c.Store.PrimaryObject(); o != nil {
			resize(o, world.Sub(c.View.ScreenToWorld(prev)))
		}
	case FreehandDrawing:
		if n := len(st.Stroke); n == 0 || st.Stroke[n-1] != world {
			st.Stroke = append(st.Stroke, world)
		}
	case Erasing:
		c.erase(world)
	case SelectingText:
		if o := c.Store.PrimaryObject(); o != nil && o.Selection != nil {
			o.Selection.End = c.docOffset(o, world)
		}
	default:
		c.hover(p)
		return
	}
	st.Anchor = p
	c.dirty()
}

func (c *Controller) hover(p geom.Point) {
	st := c.State
	l := c.Layout()
	button, swatch, menu := l.HoverButton(p), -1, l.HoverMenu(p)
	if st.Chrome.PaletteOpen() {
		swatch = l.HoverSwatch(p)
	}
	if button != st.HoverButton || swatch != st.HoverSwatch || menu != st.HoverMenu {
		st.HoverButton, st.HoverSwatch, st.HoverMenu = button, swatch, menu
		c.dirty()
	}
	open := st.Chrome.ToolbarOpen()
	if want := l.ToolbarWantsOpen(p, open); want != open {
		st.Chrome.SetToolbar(want)
		c.dirty()
	}
}

// PointerUp ends the active gesture.
func (c *Controller) PointerUp(p geom.Point, b Button) {
	st := c.State
	st.Pointer = p
	switch st.Mode {
	case FreehandDrawing:
		c.commitStroke()
	case MarqueeSelecting:
		st.Marquee = geom.Rect{}
	}
	st.Mode = Idle
	st.merge = nil
	c.dirty()
}

// commitStroke turns the in-progress stroke into drawing content. Strokes
// of two points or fewer are treated as clicks and discarded.
func (c *Controller) commitStroke() {
	st := c.State
	pts := st.Stroke
	st.Stroke = nil
	if len(pts) <= 2 {
		return
	}
	s := scene.Stroke{
		Style:  st.StrokeStyle(),
		Width:  st.StrokeWidth,
		Color:  st.ActiveColor,
		Points: pts,
	}
	if st.merge != nil && c.Store.IndexOf(st.merge) >= 0 {
		st.merge.AddWorldStroke(s)
		return
	}
	o := scene.NewDrawing(s)
	o.Title = "Drawing"
	c.Store.Append(o)
}

// Wheel scrolls the document under the pointer or zooms at the pointer.
// Positive notches scroll up and zoom in.
func (c *Controller) Wheel(p geom.Point, notches int) {
	if notches == 0 {
		return
	}
	world := c.View.ScreenToWorld(p)
	if i, ok := c.Store.HitTest(world); ok {
		o := c.Store.At(i)
		if o.Kind.IsDocument() && o.ContentBounds().Contains(world) {
			richtext.Prepare(o, c.View.Zoom)
			o.ScrollY -= float64(notches) * ScrollStep
			o.ClampScroll()
			c.dirty()
			return
		}
	}
	c.View.ZoomAt(p, notches)
	c.dirty()
}

// Tick advances the chrome animation one frame and reports whether it is
// still running.
func (c *Controller) Tick() bool {
	more := c.State.Chrome.Step()
	c.dirty()
	return more
}

// Blink toggles the caret.
func (c *Controller) Blink() {
	c.State.CaretVisible = !c.State.CaretVisible
	if o := c.Store.PrimaryObject(); o != nil && o.Kind.HasText() {
		c.dirty()
	}
}

// Place centres o on the screen point at, adds it and selects it.
func (c *Controller) Place(o *scene.Object, at geom.Point) {
	w := c.View.ScreenToWorld(at)
	o.X, o.Y = w.X, w.Y
	c.Store.Select(c.Store.Append(o))
	c.dirty()
}

// DropFiles imports every supported file at the drop point, each offset a
// little from the previous one. It returns how many objects were added.
func (c *Controller) DropFiles(paths []string, at geom.Point) int {
	n := 0
	for _, path := range paths {
		o, err := c.importf(path)
		if err != nil {
			if !errors.Is(err, project.ErrUnsupported) {
				log.Printf("drop: %v", err)
			}
			continue
		}
		off := float64(n * DropOffset)
		c.Place(o, at.Add(geom.Pt(off, off)))
		n++
	}
	if n > 0 {
		c.SetStatus(fmt.Sprintf("Imported %d file(s)", n))
	}
	return n
}
