package chrome

import "math"

const (
	// Speed is the fraction of the remaining distance covered per step.
	Speed = 0.15
	// Epsilon is how close a value must be to snap to its target.
	Epsilon = 0.01
)

// Animator eases the chrome expansion toward its targets.
type Animator struct {
	Progress Progress
	Target   Progress
}

// Step advances one frame. It reports whether any value is still moving.
func (a *Animator) Step() bool {
	a.Progress.Toolbar = ease(a.Progress.Toolbar, a.Target.Toolbar)
	a.Progress.Palette = ease(a.Progress.Palette, a.Target.Palette)
	a.Progress.Menu = ease(a.Progress.Menu, a.Target.Menu)
	if a.settled() {
		a.Progress = a.Target
		return false
	}
	return true
}

// Active reports whether Step still has work to do.
func (a *Animator) Active() bool { return a.Progress != a.Target }

func (a *Animator) settled() bool {
	return math.Abs(a.Progress.Toolbar-a.Target.Toolbar) < Epsilon &&
		math.Abs(a.Progress.Palette-a.Target.Palette) < Epsilon &&
		math.Abs(a.Progress.Menu-a.Target.Menu) < Epsilon
}

func ease(v, target float64) float64 {
	return v + (target-v)*Speed
}

func boolTarget(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// SetToolbar sets the toolbar target.
func (a *Animator) SetToolbar(open bool) { a.Target.Toolbar = boolTarget(open) }

// SetPalette sets the palette target.
func (a *Animator) SetPalette(open bool) { a.Target.Palette = boolTarget(open) }

// SetMenu sets the vertical menu target.
func (a *Animator) SetMenu(open bool) { a.Target.Menu = boolTarget(open) }

// ToolbarOpen reports the toolbar target.
func (a *Animator) ToolbarOpen() bool { return a.Target.Toolbar == 1 }

// PaletteOpen reports the palette target.
func (a *Animator) PaletteOpen() bool { return a.Target.Palette == 1 }

// MenuOpen reports the menu target.
func (a *Animator) MenuOpen() bool { return a.Target.Menu == 1 }
