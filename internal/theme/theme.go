package theme

import (
	"image/color"
)

// Theme defines the colours of the canvas and its glass chrome. Colours are
// straight (non-premultiplied) alpha.
type Theme struct {
	Name string

	// Canvas
	Background color.NRGBA
	Grid       color.NRGBA
	Text       color.NRGBA

	// Chrome
	ToolbarTint       color.NRGBA
	ToolbarBorder     color.NRGBA
	PaletteTint       color.NRGBA
	MenuTint          color.NRGBA
	ButtonBackground  color.NRGBA
	ButtonHover       color.NRGBA
	ButtonBorder      color.NRGBA
	ButtonBorderHover color.NRGBA
	ButtonActive      color.NRGBA

	// Objects
	ObjectTint  color.NRGBA // default tint of shapes
	TitleTint   color.NRGBA // default tint of window title bars
	BodyText    color.NRGBA // text inside windows and panels
	TextPill    color.NRGBA
	ImageBorder color.NRGBA
	Accent      color.NRGBA // selection highlight
	Placeholder color.NRGBA

	// Overlays
	MarqueeFill   color.NRGBA
	MarqueeBorder color.NRGBA
}

// Default returns the hardcoded dark glass theme (fallback).
func Default() *Theme {
	return &Theme{
		Name:              "glass",
		Background:        color.NRGBA{20, 20, 30, 255},
		Grid:              color.NRGBA{100, 100, 130, 255},
		Text:              color.NRGBA{200, 200, 200, 255},
		ToolbarTint:       color.NRGBA{20, 20, 35, 120},
		ToolbarBorder:     color.NRGBA{255, 255, 255, 100},
		PaletteTint:       color.NRGBA{10, 10, 20, 80},
		MenuTint:          color.NRGBA{25, 25, 45, 120},
		ButtonBackground:  color.NRGBA{40, 40, 60, 150},
		ButtonHover:       color.NRGBA{70, 70, 90, 210},
		ButtonBorder:      color.NRGBA{255, 255, 255, 40},
		ButtonBorderHover: color.NRGBA{255, 255, 255, 100},
		ButtonActive:      color.NRGBA{0, 120, 215, 220},
		ObjectTint:        color.NRGBA{60, 60, 80, 100},
		TitleTint:         color.NRGBA{70, 70, 90, 230},
		BodyText:          color.NRGBA{255, 255, 255, 220},
		TextPill:          color.NRGBA{20, 20, 35, 140},
		ImageBorder:       color.NRGBA{255, 255, 255, 150},
		Accent:            color.NRGBA{100, 200, 255, 255},
		Placeholder:       color.NRGBA{255, 90, 90, 255},
		MarqueeFill:       color.NRGBA{100, 200, 255, 40},
		MarqueeBorder:     color.NRGBA{100, 200, 255, 200},
	}
}
