package render

import (
	"image/color"
	"testing"
)

func TestContrastFlipsValue(t *testing.T) {
	dark := Contrast(color.NRGBA{20, 20, 40, 255})
	if dark.R < 200 && dark.G < 200 && dark.B < 200 {
		t.Fatalf("contrast of a dark colour should be light, got %v", dark)
	}
	light := Contrast(color.NRGBA{240, 240, 200, 255})
	if light.R > 120 || light.G > 120 || light.B > 120 {
		t.Fatalf("contrast of a light colour should be dark, got %v", light)
	}
	if dark.A != 255 || light.A != 255 {
		t.Fatal("contrast colours are opaque")
	}
}

func TestContrastCapsSaturation(t *testing.T) {
	c := Contrast(color.NRGBA{255, 0, 0, 255})
	// Hue rotates to cyan with saturation at most 0.45 and value 0.35.
	if c.R >= c.G || c.R >= c.B {
		t.Fatalf("expected a cyan tone, got %v", c)
	}
	if c.R == 0 {
		t.Fatalf("saturation should be capped, got %v", c)
	}
}

func TestPaletteSize(t *testing.T) {
	p := Palette()
	if len(p) != PaletteHues*PaletteShades {
		t.Fatalf("palette has %d swatches", len(p))
	}
	if p[0] == p[PaletteShades] {
		t.Fatal("different hues should differ")
	}
}

func TestFade(t *testing.T) {
	if got := Fade(color.NRGBA{1, 2, 3, 200}, 0.5); got.A != 100 {
		t.Fatalf("alpha %d", got.A)
	}
}

func TestLighterScalesValue(t *testing.T) {
	got := Lighter(color.NRGBA{100, 50, 50, 200}, 1.2)
	want := color.NRGBA{120, 60, 60, 200}
	if got != want {
		t.Fatalf("Lighter = %v, want %v", got, want)
	}
}
