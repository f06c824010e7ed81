// Package interact turns pointer, wheel and keyboard input into changes to
// the scene, the view and the transient interface state.
package interact

import (
	"image/color"

	"github.com/example/glassboard/internal/chrome"
	"github.com/example/glassboard/internal/geom"
	"github.com/example/glassboard/internal/scene"
)

// Mode is the gesture in progress.
type Mode int

const (
	Idle Mode = iota
	Panning
	MarqueeSelecting
	DraggingObjects
	Resizing
	FreehandDrawing
	Erasing
	SelectingText
)

var modeNames = [...]string{
	Idle:             "idle",
	Panning:          "panning",
	MarqueeSelecting: "marquee",
	DraggingObjects:  "dragging",
	Resizing:         "resizing",
	FreehandDrawing:  "drawing",
	Erasing:          "erasing",
	SelectingText:    "selecting",
}

func (m Mode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return "unknown"
	}
	return modeNames[m]
}

// Tool is the freehand tool picked in the vertical menu.
type Tool int

const (
	ToolNone Tool = iota
	ToolPencil
	ToolMarker
	ToolEraser
)

// StrokeWidths is the cycle walked by the width button.
var StrokeWidths = []float64{2, 4, 8, 12}

// DefaultColor is the active colour before anything is picked.
var DefaultColor = color.NRGBA{40, 40, 50, 230}

// State is everything about the interface that is not part of the scene.
type State struct {
	Mode Mode
	// Anchor is the last pointer position of the current gesture, in
	// screen pixels.
	Anchor geom.Point
	// Pointer is the most recent pointer position.
	Pointer geom.Point

	MarqueeStart geom.Point
	Marquee      geom.Rect // screen pixels, valid in MarqueeSelecting

	// Stroke is the freehand stroke being drawn, world units.
	Stroke []geom.Point
	merge  *scene.Object

	Tool        Tool
	StrokeWidth float64
	ActiveColor color.NRGBA

	CaretVisible bool
	Chrome       chrome.Animator

	HoverButton int
	HoverSwatch int
	HoverMenu   int

	Status string
	// Dirty is set whenever the next frame would differ from the last one.
	// The host clears it after painting.
	Dirty bool
}

// NewState returns the initial interface state.
func NewState() *State {
	return &State{
		StrokeWidth:  StrokeWidths[0],
		ActiveColor:  DefaultColor,
		CaretVisible: true,
		HoverButton:  -1,
		HoverSwatch:  -1,
		HoverMenu:    -1,
	}
}

// Busy reports whether the frame is changing continuously, in which case
// the compositor may reuse its blurred backdrop.
func (s *State) Busy() bool {
	return s.Chrome.Active() || s.Mode == FreehandDrawing
}

// StrokeStyle is the style of strokes drawn with the current tool.
func (s *State) StrokeStyle() scene.StrokeStyle {
	if s.Tool == ToolMarker {
		return scene.Marker
	}
	return scene.Pencil
}
