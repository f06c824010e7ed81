package interact

import (
	"errors"
	"fmt"
	"image"
	"math"
	"strings"
	"testing"

	"github.com/example/glassboard/internal/chrome"
	"github.com/example/glassboard/internal/geom"
	"github.com/example/glassboard/internal/project"
	"github.com/example/glassboard/internal/scene"
)

func newController() *Controller {
	return New(scene.NewStore(), geom.NewTransform(800, 600))
}

func add(c *Controller, k scene.Kind, x, y float64) *scene.Object {
	o := scene.New(k, x, y)
	c.Store.Append(o)
	return o
}

func screen(c *Controller, x, y float64) geom.Point {
	return c.View.WorldToScreen(geom.Pt(x, y))
}

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestMarqueeThenGroupDrag(t *testing.T) {
	c := newController()
	a := add(c, scene.Rectangle, -100, 0)
	b := add(c, scene.Rectangle, 100, 0)
	other := add(c, scene.Rectangle, 0, 250)

	c.PointerDown(geom.Pt(200, 200), ButtonLeft, 0)
	if c.State.Mode != MarqueeSelecting {
		t.Fatalf("mode = %v", c.State.Mode)
	}
	c.PointerMove(geom.Pt(560, 360))
	c.PointerUp(geom.Pt(560, 360), ButtonLeft)

	sel := c.Store.Selected()
	if len(sel) != 2 || sel[0] != 0 || sel[1] != 1 {
		t.Fatalf("selected = %v", sel)
	}
	if !c.State.Marquee.Empty() {
		t.Fatalf("marquee not cleared: %+v", c.State.Marquee)
	}

	c.PointerDown(screen(c, a.X, a.Y), ButtonLeft, 0)
	if c.State.Mode != DraggingObjects {
		t.Fatalf("mode = %v", c.State.Mode)
	}
	start := screen(c, a.X, a.Y)
	c.PointerMove(start.Add(geom.Pt(30, 20)))
	c.PointerUp(start.Add(geom.Pt(30, 20)), ButtonLeft)

	if a.X != -70 || a.Y != 20 || b.X != 130 || b.Y != 20 {
		t.Fatalf("moved to a=(%v,%v) b=(%v,%v)", a.X, a.Y, b.X, b.Y)
	}
	if other.X != 0 || other.Y != 250 {
		t.Fatalf("unselected object moved")
	}
	if c.State.Mode != Idle {
		t.Fatalf("mode after release = %v", c.State.Mode)
	}
}

func TestClickOutsideClearsSelection(t *testing.T) {
	c := newController()
	add(c, scene.Rectangle, 0, 0)
	c.Store.Select(0)
	c.PointerDown(geom.Pt(50, 500), ButtonLeft, 0)
	if _, ok := c.Store.Primary(); ok || len(c.Store.Selected()) != 0 {
		t.Fatalf("selection not cleared")
	}
}

func TestShiftTogglesMembership(t *testing.T) {
	c := newController()
	add(c, scene.Rectangle, -100, 0)
	add(c, scene.Rectangle, 100, 0)
	c.PointerDown(screen(c, -100, 0), ButtonLeft, 0)
	c.PointerUp(screen(c, -100, 0), ButtonLeft)
	c.PointerDown(screen(c, 100, 0), ButtonLeft, ModShift)
	c.PointerUp(screen(c, 100, 0), ButtonLeft)
	if got := c.Store.Selected(); len(got) != 2 {
		t.Fatalf("selected = %v", got)
	}
	c.PointerDown(screen(c, 100, 0), ButtonLeft, ModShift)
	c.PointerUp(screen(c, 100, 0), ButtonLeft)
	if got := c.Store.Selected(); len(got) != 1 || got[0] != 0 {
		t.Fatalf("selected after toggle = %v", got)
	}
}

func TestShiftOrMiddlePans(t *testing.T) {
	c := newController()
	c.PointerDown(geom.Pt(100, 500), ButtonLeft, ModShift)
	c.PointerMove(geom.Pt(110, 505))
	c.PointerUp(geom.Pt(110, 505), ButtonLeft)
	if c.View.Pan != geom.Pt(10, 5) {
		t.Fatalf("pan = %v", c.View.Pan)
	}
	c.PointerDown(geom.Pt(100, 500), ButtonMiddle, 0)
	c.PointerMove(geom.Pt(90, 500))
	c.PointerUp(geom.Pt(90, 500), ButtonMiddle)
	if c.View.Pan != geom.Pt(0, 5) {
		t.Fatalf("pan = %v", c.View.Pan)
	}
}

func TestEraserRemovesEmptiedDrawing(t *testing.T) {
	c := newController()
	d := scene.NewDrawing(scene.Stroke{Width: 2, Points: []geom.Point{{X: 0, Y: 0}, {X: 5, Y: 0}, {X: 10, Y: 0}}})
	c.Store.Append(d)
	c.State.Tool = ToolEraser

	c.PointerDown(screen(c, 0, 0), ButtonLeft, 0)
	if c.State.Mode != Erasing {
		t.Fatalf("mode = %v", c.State.Mode)
	}
	c.PointerMove(screen(c, 10, 0))
	c.PointerUp(screen(c, 10, 0), ButtonLeft)
	if c.Store.Len() != 0 {
		t.Fatalf("drawing survived with %d strokes", len(d.Strokes))
	}
}

func TestEraserSplitsStroke(t *testing.T) {
	c := newController()
	var pts []geom.Point
	for x := -100.0; x <= 100; x += 10 {
		pts = append(pts, geom.Pt(x, 0))
	}
	c.Store.Append(scene.NewDrawing(scene.Stroke{Width: 2, Points: pts}))
	c.State.Tool = ToolEraser
	c.PointerDown(screen(c, 0, 0), ButtonLeft, 0)
	c.PointerUp(screen(c, 0, 0), ButtonLeft)
	if c.Store.Len() != 1 || len(c.Store.At(0).Strokes) != 2 {
		t.Fatalf("expected one drawing with two strokes, got %d objects", c.Store.Len())
	}
}

func TestFreehandCommit(t *testing.T) {
	c := newController()
	c.State.Tool = ToolMarker
	c.State.StrokeWidth = 8

	c.PointerDown(geom.Pt(100, 400), ButtonLeft, 0)
	if !c.State.Busy() {
		t.Fatalf("drawing should be busy")
	}
	c.PointerMove(geom.Pt(110, 400))
	c.PointerMove(geom.Pt(120, 410))
	c.PointerUp(geom.Pt(120, 410), ButtonLeft)

	if c.Store.Len() != 1 {
		t.Fatalf("objects = %d", c.Store.Len())
	}
	d := c.Store.At(0)
	if d.Kind != scene.Drawing || len(d.Strokes) != 1 {
		t.Fatalf("drawing = %+v", d)
	}
	s := d.Strokes[0]
	if s.Style != scene.Marker || s.Width != 8 || s.Color != DefaultColor || len(s.Points) != 3 {
		t.Fatalf("stroke = %+v", s)
	}
	if c.State.Stroke != nil || c.State.Busy() {
		t.Fatalf("stroke not cleared")
	}

	// A second stroke starting on the drawing merges into it.
	c.PointerDown(screen(c, d.X, d.Y), ButtonLeft, 0)
	c.PointerMove(screen(c, d.X+30, d.Y))
	c.PointerMove(screen(c, d.X+60, d.Y+5))
	c.PointerUp(screen(c, d.X+60, d.Y+5), ButtonLeft)
	if c.Store.Len() != 1 || len(d.Strokes) != 2 {
		t.Fatalf("merge failed: %d objects, %d strokes", c.Store.Len(), len(d.Strokes))
	}
}

func TestShortStrokeDiscarded(t *testing.T) {
	c := newController()
	c.State.Tool = ToolPencil
	c.PointerDown(geom.Pt(100, 400), ButtonLeft, 0)
	c.PointerMove(geom.Pt(101, 400))
	c.PointerMove(geom.Pt(101, 400)) // duplicate points are not recorded
	c.PointerUp(geom.Pt(101, 400), ButtonLeft)
	if c.Store.Len() != 0 {
		t.Fatalf("short stroke committed")
	}
}

func TestWheelZoomsAtCursor(t *testing.T) {
	c := newController()
	p := geom.Pt(600, 100)
	before := c.View.ScreenToWorld(p)
	c.Wheel(p, 1)
	if !near(c.View.Zoom, 1.1) {
		t.Fatalf("zoom = %v", c.View.Zoom)
	}
	after := c.View.ScreenToWorld(p)
	if !near(before.X, after.X) || !near(before.Y, after.Y) {
		t.Fatalf("world point moved from %v to %v", before, after)
	}
}

func TestWheelScrollsDocument(t *testing.T) {
	c := newController()
	o := add(c, scene.Code, 0, 0)
	o.Ext = "go"
	var sb strings.Builder
	for i := 0; i < 100; i++ {
		fmt.Fprintf(&sb, "var v%d = %d\n", i, i)
	}
	o.SetText(sb.String())
	o.W, o.H = scene.Some(300), scene.Some(200)

	at := screen(c, o.ContentBounds().Center().X, o.ContentBounds().Center().Y)
	c.Wheel(at, -1)
	if o.ScrollY != ScrollStep {
		t.Fatalf("scroll = %v (max %v)", o.ScrollY, o.MaxScrollY)
	}
	if c.View.Zoom != 1 {
		t.Fatalf("wheel over document zoomed")
	}
	c.Wheel(at, 5)
	if o.ScrollY != 0 {
		t.Fatalf("scroll not clamped: %v", o.ScrollY)
	}
	c.Wheel(at, -1000)
	if o.ScrollY != o.MaxScrollY || o.MaxScrollY <= 0 {
		t.Fatalf("scroll = %v max = %v", o.ScrollY, o.MaxScrollY)
	}
}

func TestSelectText(t *testing.T) {
	c := newController()
	o := add(c, scene.Markdown, 0, 0)
	o.SetText("hello world, this is a paragraph of markdown text")
	cb := o.ContentBounds()

	c.PointerDown(screen(c, cb.X+1, cb.Y+5), ButtonLeft, 0)
	if c.State.Mode != SelectingText || o.Selection == nil {
		t.Fatalf("mode = %v", c.State.Mode)
	}
	c.PointerMove(screen(c, cb.X+cb.W-1, cb.Y+5))
	c.PointerUp(screen(c, cb.X+cb.W-1, cb.Y+5), ButtonLeft)
	if got := o.SelectedText(); got == "" || !strings.HasPrefix("hello world, this is a paragraph of markdown text", got) {
		t.Fatalf("selected %q", got)
	}
	if o.X != 0 || o.Y != 0 {
		t.Fatalf("text selection moved the object")
	}
}

func TestDeleteHandle(t *testing.T) {
	c := newController()
	o := add(c, scene.Rectangle, 0, 0)
	c.Store.Select(0)
	c.PointerDown(DeleteHandle(c.View, o).Add(geom.Pt(3, -3)), ButtonLeft, 0)
	if c.Store.Len() != 0 {
		t.Fatalf("object not deleted")
	}
	if c.State.Mode != Idle {
		t.Fatalf("mode = %v", c.State.Mode)
	}
}

func TestTextHandlesFollowPill(t *testing.T) {
	c := newController()
	o := add(c, scene.Text, 0, 0)
	o.Text = "hi"
	c.Store.Select(0)

	pill := TextPill(c.View, o, []string{"hi"})
	box := c.View.WorldRectToScreen(o.Bounds())
	if pill.W >= box.W {
		t.Fatalf("pill %v not narrower than box %v", pill, box)
	}
	d := DeleteHandle(c.View, o)
	if d.Dist(geom.Pt(pill.X+pill.W, pill.Y)) > 1e-9 {
		t.Fatalf("delete handle at %v, pill %v", d, pill)
	}
	if r := ResizeHandle(c.View, o); r.Dist(pill.Max()) > 1e-9 {
		t.Fatalf("resize handle at %v, pill %v", r, pill)
	}

	c.PointerDown(ResizeHandle(c.View, o), ButtonLeft, 0)
	if c.State.Mode != Resizing {
		t.Fatalf("mode = %v", c.State.Mode)
	}
	if w, h := o.Size(); math.Abs(w-pill.W/c.View.Zoom) > 1e-9 || math.Abs(h-pill.H/c.View.Zoom) > 1e-9 {
		t.Fatalf("resize started from %vx%v, pill %v", w, h, pill)
	}
	c.PointerUp(ResizeHandle(c.View, o), ButtonLeft)

	o.Text = ""
	o.W, o.H = scene.OptFloat{}, scene.OptFloat{}
	c.PointerDown(DeleteHandle(c.View, o), ButtonLeft, 0)
	if c.Store.Len() != 0 {
		t.Fatalf("pill delete handle missed")
	}
}

func TestResizeKeepsTopLeftAndClamps(t *testing.T) {
	c := newController()
	o := add(c, scene.Rectangle, 0, 0)
	c.Store.Select(0)
	h := ResizeHandle(c.View, o)
	c.PointerDown(h, ButtonLeft, 0)
	if c.State.Mode != Resizing {
		t.Fatalf("mode = %v", c.State.Mode)
	}
	c.PointerMove(h.Add(geom.Pt(50, 30)))
	w, hh := o.Size()
	if w != 150 || hh != 130 || o.X != 25 || o.Y != 15 {
		t.Fatalf("after grow: %vx%v at (%v,%v)", w, hh, o.X, o.Y)
	}
	c.PointerMove(h.Add(geom.Pt(-1000, -1000)))
	c.PointerUp(h, ButtonLeft)
	w, hh = o.Size()
	if w != 20 || hh != 20 {
		t.Fatalf("after shrink: %vx%v", w, hh)
	}
	if b := o.Bounds(); b.X != -50 || b.Y != -50 {
		t.Fatalf("top-left moved to %v,%v", b.X, b.Y)
	}
}

func TestResizeImageKeepsAspect(t *testing.T) {
	c := newController()
	o := scene.NewImage(image.NewRGBA(image.Rect(0, 0, 200, 100)), 0, 0)
	c.Store.Append(o)
	c.Store.Select(0)
	h := ResizeHandle(c.View, o)
	c.PointerDown(h, ButtonLeft, 0)
	c.PointerMove(h.Add(geom.Pt(-100, 0)))
	c.PointerUp(h, ButtonLeft)
	w, hh := o.Size()
	if w != 200 || hh != 100 {
		t.Fatalf("image resized to %vx%v", w, hh)
	}
}

func TestTypingAndBackspace(t *testing.T) {
	c := newController()
	o := add(c, scene.Text, 0, 0)
	c.Store.Select(0)
	for _, r := range "hé0+" {
		c.KeyRune(r)
	}
	c.Key(KeyEnter)
	if o.Text != "hé0+\n" {
		t.Fatalf("text = %q", o.Text)
	}
	if c.View.Zoom != 1 {
		t.Fatalf("typing changed the view")
	}
	for i := 0; i < 5; i++ {
		c.Key(KeyBackspace)
	}
	if o.Text != "" || c.Store.Len() != 1 {
		t.Fatalf("text = %q objects = %d", o.Text, c.Store.Len())
	}
	c.Key(KeyBackspace)
	if c.Store.Len() != 0 {
		t.Fatalf("backspace on empty text kept the object")
	}
}

func TestBackspaceDeletesShapes(t *testing.T) {
	c := newController()
	add(c, scene.Triangle, 0, 0)
	c.Store.Select(0)
	c.KeyRune('x')
	c.Key(KeyBackspace)
	if c.Store.Len() != 0 {
		t.Fatalf("triangle not deleted")
	}
}

func TestDeleteRemovesSelection(t *testing.T) {
	c := newController()
	for i := 0; i < 4; i++ {
		add(c, scene.Rectangle, float64(i*200), 0)
	}
	c.Store.SetSelected([]int{1, 3})
	c.Key(KeyDelete)
	if c.Store.Len() != 2 || c.Store.At(0).X != 0 || c.Store.At(1).X != 400 {
		t.Fatalf("remaining = %d", c.Store.Len())
	}
}

func TestDeleteTrimsTextBeforeRemoving(t *testing.T) {
	c := newController()
	w := add(c, scene.Window, 0, 0)
	c.Store.Select(0)
	for _, r := range "hé" {
		c.KeyRune(r)
	}
	c.Key(KeyDelete)
	if c.Store.Len() != 1 || w.Text != "h" {
		t.Fatalf("after delete: %d objects, text %q", c.Store.Len(), w.Text)
	}
	c.Key(KeyDelete)
	if c.Store.Len() != 1 || w.Text != "" {
		t.Fatalf("after second delete: %d objects, text %q", c.Store.Len(), w.Text)
	}
	c.Key(KeyDelete)
	if c.Store.Len() != 0 {
		t.Fatalf("empty window not removed: %d objects", c.Store.Len())
	}
}

func TestViewKeys(t *testing.T) {
	c := newController()
	c.KeyRune('+')
	if !near(c.View.Zoom, 1.1) {
		t.Fatalf("zoom = %v", c.View.Zoom)
	}
	c.KeyRune('-')
	c.KeyRune('-')
	if !near(c.View.Zoom, 1/1.1) {
		t.Fatalf("zoom = %v", c.View.Zoom)
	}
	c.View.PanBy(geom.Pt(5, 5))
	c.KeyRune('0')
	if c.View.Zoom != 1 || c.View.Pan != (geom.Point{}) {
		t.Fatalf("reset failed: %v %v", c.View.Zoom, c.View.Pan)
	}
}

func openChrome(c *Controller) {
	a := &c.State.Chrome
	a.SetToolbar(true)
	a.SetPalette(true)
	a.SetMenu(true)
	a.Progress = a.Target
}

func TestToolButtonCreatesObject(t *testing.T) {
	c := newController()
	openChrome(c)
	l := c.Layout()
	c.PointerDown(l.Buttons[2].Center(), ButtonLeft, 0)
	if c.Store.Len() != 1 {
		t.Fatalf("objects = %d", c.Store.Len())
	}
	o := c.Store.At(0)
	if o.Kind != scene.Window || o.X != 0 || o.Y != 0 {
		t.Fatalf("created %v at (%v,%v)", o.Kind, o.X, o.Y)
	}
	if tint, ok := o.Tint.Get(); !ok || tint != DefaultColor {
		t.Fatalf("tint = %v %v", tint, ok)
	}
	if c.Store.PrimaryObject() != o {
		t.Fatalf("new object not selected")
	}

	c.PointerDown(l.Buttons[3].Center(), ButtonLeft, 0)
	if txt := c.Store.At(1); txt.Kind != scene.Text || txt.Tint.IsSet() {
		t.Fatalf("text object = %+v", txt)
	}
}

func TestSwatchSetsColour(t *testing.T) {
	c := newController()
	o := add(c, scene.Rectangle, 0, 0)
	c.Store.Select(0)
	openChrome(c)
	l := c.Layout()
	c.PointerDown(l.Swatches[9].Center(), ButtonLeft, 0)
	want := c.Palette()[9]
	if c.State.ActiveColor != want {
		t.Fatalf("active = %v want %v", c.State.ActiveColor, want)
	}
	if tint, _ := o.Tint.Get(); tint != want {
		t.Fatalf("primary tint = %v", tint)
	}

	// A press outside the open palette collapses it.
	c.PointerDown(geom.Pt(10, 590), ButtonLeft, 0)
	if c.State.Chrome.PaletteOpen() {
		t.Fatalf("palette still open")
	}
}

func TestMenuTools(t *testing.T) {
	c := newController()
	openChrome(c)
	l := c.Layout()
	press := func(i int) {
		c.PointerDown(l.MenuButtons[i].Center(), ButtonLeft, 0)
		c.PointerUp(l.MenuButtons[i].Center(), ButtonLeft)
	}
	press(int(chrome.MenuPencil))
	if c.State.Tool != ToolPencil {
		t.Fatalf("tool = %v", c.State.Tool)
	}
	press(int(chrome.MenuEraser))
	if c.State.Tool != ToolEraser {
		t.Fatalf("tool = %v", c.State.Tool)
	}
	press(int(chrome.MenuEraser))
	if c.State.Tool != ToolNone {
		t.Fatalf("tool = %v", c.State.Tool)
	}
	var widths []float64
	for i := 0; i < 4; i++ {
		press(int(chrome.MenuWidth))
		widths = append(widths, c.State.StrokeWidth)
	}
	if fmt.Sprint(widths) != "[4 8 12 2]" {
		t.Fatalf("widths = %v", widths)
	}
}

func TestHoverOpensToolbar(t *testing.T) {
	c := newController()
	l := c.Layout()
	c.PointerMove(l.Toolbar.Center().Add(geom.Pt(0, 100)))
	if !c.State.Chrome.ToolbarOpen() {
		t.Fatalf("toolbar did not open")
	}
	if !c.State.Busy() {
		t.Fatalf("animation should be busy")
	}
	for c.Tick() {
	}
	if c.State.Chrome.Progress.Toolbar != 1 {
		t.Fatalf("progress = %v", c.State.Chrome.Progress.Toolbar)
	}
	c.PointerMove(geom.Pt(400, 590))
	if c.State.Chrome.ToolbarOpen() {
		t.Fatalf("toolbar did not close")
	}
}

func TestDropFiles(t *testing.T) {
	var seen []string
	imp := func(path string) (*scene.Object, error) {
		seen = append(seen, path)
		if strings.HasSuffix(path, ".zip") {
			return nil, fmt.Errorf("import %s: %w", path, project.ErrUnsupported)
		}
		if strings.HasSuffix(path, ".bad") {
			return nil, errors.New("boom")
		}
		return scene.New(scene.Markdown, 0, 0), nil
	}
	c := New(scene.NewStore(), geom.NewTransform(800, 600), WithImporter(imp))
	n := c.DropFiles([]string{"a.md", "b.zip", "c.bad", "d.md"}, geom.Pt(400, 300))
	if n != 2 || c.Store.Len() != 2 || len(seen) != 4 {
		t.Fatalf("n=%d len=%d seen=%v", n, c.Store.Len(), seen)
	}
	a, d := c.Store.At(0), c.Store.At(1)
	if a.X != 0 || a.Y != 0 || d.X != DropOffset || d.Y != DropOffset {
		t.Fatalf("positions (%v,%v) (%v,%v)", a.X, a.Y, d.X, d.Y)
	}
	if c.State.Status == "" {
		t.Fatalf("no status message")
	}
}

func TestBlinkTogglesCaret(t *testing.T) {
	c := newController()
	c.State.Dirty = false
	c.Blink()
	if c.State.CaretVisible {
		t.Fatalf("caret still visible")
	}
	if c.State.Dirty {
		t.Fatalf("blink without text selection should not repaint")
	}
}
