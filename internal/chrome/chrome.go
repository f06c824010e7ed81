// Package chrome lays out the floating glass controls: the toolbar island,
// the colour palette, and the vertical freehand tool menu.
package chrome

import (
	"math"

	"github.com/example/glassboard/internal/geom"
	"github.com/example/glassboard/internal/render"
	"github.com/example/glassboard/internal/scene"
)

const (
	Margin          = 20
	CollapsedW      = 120
	CollapsedH      = 40
	ExpandedW       = 200
	ExpandedH       = 400
	Radius          = 20
	HoverExpand     = 180
	HoverCollapse   = 250
	ButtonHeight    = 50
	ButtonMargin    = 15
	ButtonSpacing   = 10
	ButtonsTop      = 60
	PaletteW        = 320
	PaletteH        = 720
	SwatchSize      = 28
	SwatchSpacingX  = 12
	SwatchSpacingY  = 14
	MenuW           = 50
	MenuH           = 240
	MenuButtonSize  = 30
	MenuButtonGap   = 15
	MenuButtonsTop  = 55
	activeThreshold = 0.5
)

// ToolButton is an entry of the toolbar that creates an object.
type ToolButton struct {
	Label string
	Icon  string
	Kind  scene.Kind
}

// ToolButtons lists the toolbar entries top to bottom.
var ToolButtons = []ToolButton{
	{Label: "Square", Icon: "□", Kind: scene.Rectangle},
	{Label: "Triangle", Icon: "△", Kind: scene.Triangle},
	{Label: "Window", Icon: "▢", Kind: scene.Window},
	{Label: "Text", Icon: "T", Kind: scene.Text},
}

// MenuTool is an entry of the vertical menu.
type MenuTool int

const (
	MenuPencil MenuTool = iota
	MenuMarker
	MenuEraser
	MenuWidth
)

// MenuTools lists the vertical menu labels top to bottom.
var MenuTools = []string{"P", "M", "E", "W"}

// Progress is how far each control is expanded, 0 collapsed to 1 open.
type Progress struct {
	Toolbar float64
	Palette float64
	Menu    float64
}

// Layout is the screen geometry of the chrome for one frame.
type Layout struct {
	Toolbar      geom.Rect
	Buttons      []geom.Rect
	ButtonsLive  bool
	PaletteBase  geom.Rect
	Palette      geom.Rect
	PaletteRound float64
	Swatches     []geom.Rect
	MenuBase     geom.Rect
	Menu         geom.Rect
	MenuButtons  []geom.Rect
	MenuLive     bool
}

func lerp(a, b, t float64) float64 { return a + (b-a)*t }

// Compute lays out the chrome for a viewport of width vw.
func Compute(vw float64, p Progress) Layout {
	var l Layout
	tw := lerp(CollapsedW, ExpandedW, p.Toolbar)
	th := lerp(CollapsedH, ExpandedH, p.Toolbar)
	l.Toolbar = geom.Rect{X: (vw - tw) / 2, Y: Margin, W: tw, H: th}
	l.ButtonsLive = p.Toolbar > activeThreshold
	for i := range ToolButtons {
		l.Buttons = append(l.Buttons, geom.Rect{
			X: l.Toolbar.X + ButtonMargin,
			Y: l.Toolbar.Y + ButtonsTop + float64(i)*(ButtonHeight+ButtonSpacing),
			W: l.Toolbar.W - 2*ButtonMargin,
			H: ButtonHeight,
		})
	}

	right := l.Toolbar.X + l.Toolbar.W + 10
	l.PaletteBase = geom.Rect{X: right, Y: Margin, W: CollapsedH, H: CollapsedH}
	l.Palette = geom.Rect{
		X: right, Y: Margin,
		W: lerp(CollapsedH, PaletteW, p.Palette),
		H: lerp(CollapsedH, PaletteH, p.Palette),
	}
	initR := CollapsedH / 2.0
	l.PaletteRound = initR - (initR-25)*p.Palette
	if p.Palette > 0.3 {
		rows, cols := render.PaletteHues, render.PaletteShades
		gridW := float64(cols*SwatchSize + (cols-1)*SwatchSpacingX)
		gridH := float64(rows*SwatchSize + (rows-1)*SwatchSpacingY)
		sx := l.Palette.X + (l.Palette.W-gridW)/2
		sy := l.Palette.Y + (l.Palette.H-gridH)/2
		for i := 0; i < rows*cols; i++ {
			row, col := i/cols, i%cols
			l.Swatches = append(l.Swatches, geom.Rect{
				X: sx + float64(col*(SwatchSize+SwatchSpacingX)),
				Y: sy + float64(row*(SwatchSize+SwatchSpacingY)),
				W: SwatchSize, H: SwatchSize,
			})
		}
	}

	left := l.Toolbar.X - 10 - MenuW
	l.MenuBase = geom.Rect{X: left, Y: Margin, W: MenuW, H: CollapsedH}
	l.Menu = geom.Rect{X: left, Y: Margin, W: MenuW, H: lerp(CollapsedH, MenuH, p.Menu)}
	l.MenuLive = p.Menu > activeThreshold
	bx := l.Menu.X + (l.Menu.W-MenuButtonSize)/2
	for i := range MenuTools {
		l.MenuButtons = append(l.MenuButtons, geom.Rect{
			X: bx,
			Y: l.Menu.Y + MenuButtonsTop + float64(i)*(MenuButtonSize+MenuButtonGap),
			W: MenuButtonSize, H: MenuButtonSize,
		})
	}
	return l
}

// HitKind classifies a pointer press on the chrome.
type HitKind int

const (
	HitNone HitKind = iota
	HitToolButton
	HitPaletteToggle
	HitSwatch
	HitMenuToggle
	HitMenuTool
	HitBody
)

// Hit is the result of a chrome hit test.
type Hit struct {
	Kind  HitKind
	Index int
}

// HitTest finds the control under p. paletteOpen and menuOpen are the
// expansion targets, which gate whether swatches and menu tools respond.
func (l Layout) HitTest(p geom.Point, paletteOpen, menuOpen bool) Hit {
	if l.ButtonsLive {
		for i, r := range l.Buttons {
			if r.Contains(p) {
				return Hit{Kind: HitToolButton, Index: i}
			}
		}
	}
	if l.PaletteBase.Contains(p) {
		return Hit{Kind: HitPaletteToggle}
	}
	if paletteOpen {
		for i, r := range l.Swatches {
			if r.Contains(p) {
				return Hit{Kind: HitSwatch, Index: i}
			}
		}
	}
	if l.MenuBase.Contains(p) {
		return Hit{Kind: HitMenuToggle}
	}
	if menuOpen && l.MenuLive {
		for i, r := range l.MenuButtons {
			if r.Contains(p) {
				return Hit{Kind: HitMenuTool, Index: i}
			}
		}
	}
	if l.Toolbar.Contains(p) || (paletteOpen && l.Palette.Contains(p)) || (menuOpen && l.Menu.Contains(p)) {
		return Hit{Kind: HitBody}
	}
	return Hit{Kind: HitNone}
}

// HoverButton returns the tool button under p or -1.
func (l Layout) HoverButton(p geom.Point) int {
	if !l.ButtonsLive {
		return -1
	}
	for i, r := range l.Buttons {
		if r.Contains(p) {
			return i
		}
	}
	return -1
}

// HoverSwatch returns the swatch under p or -1.
func (l Layout) HoverSwatch(p geom.Point) int {
	for i, r := range l.Swatches {
		if r.Contains(p) {
			return i
		}
	}
	return -1
}

// HoverMenu returns the menu tool under p or -1.
func (l Layout) HoverMenu(p geom.Point) int {
	if !l.MenuLive {
		return -1
	}
	for i, r := range l.MenuButtons {
		if r.Contains(p) {
			return i
		}
	}
	return -1
}

// ToolbarWantsOpen applies the hover hysteresis: the toolbar opens when the
// pointer comes within HoverExpand of its centre and closes once it leaves
// HoverCollapse.
func (l Layout) ToolbarWantsOpen(p geom.Point, open bool) bool {
	d := p.Dist(l.Toolbar.Center())
	if open {
		return d < HoverCollapse
	}
	return d < HoverExpand
}

// Fade maps a progress value to the opacity of contents that appear after
// the first 30% of the expansion.
func Fade(progress float64) float64 {
	return math.Max(0, (progress-0.3)/0.7)
}
