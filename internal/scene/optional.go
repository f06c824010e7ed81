package scene

import "image/color"

// OptFloat is a float64 that may be unset.
type OptFloat struct {
	v   float64
	set bool
}

// Some returns a set OptFloat.
func Some(v float64) OptFloat { return OptFloat{v: v, set: true} }

// IsSet reports whether a value is present.
func (o OptFloat) IsSet() bool { return o.set }

// Get returns the value and whether it is present.
func (o OptFloat) Get() (float64, bool) { return o.v, o.set }

// Or returns the value or def when unset.
func (o OptFloat) Or(def float64) float64 {
	if o.set {
		return o.v
	}
	return def
}

// OptColor is a colour that may be unset.
type OptColor struct {
	c   color.NRGBA
	set bool
}

// SomeColor returns a set OptColor.
func SomeColor(c color.NRGBA) OptColor { return OptColor{c: c, set: true} }

// IsSet reports whether a colour is present.
func (o OptColor) IsSet() bool { return o.set }

// Get returns the colour and whether it is present.
func (o OptColor) Get() (color.NRGBA, bool) { return o.c, o.set }

// Or returns the colour or def when unset.
func (o OptColor) Or(def color.NRGBA) color.NRGBA {
	if o.set {
		return o.c
	}
	return def
}
