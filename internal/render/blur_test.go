package render

import (
	"image"
	"image/color"
	"image/draw"
	"testing"
)

func TestBlurUniformUnchanged(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 97, 61))
	want := color.RGBA{40, 80, 120, 255}
	draw.Draw(img, img.Bounds(), &image.Uniform{want}, image.Point{}, draw.Src)
	out := Blur(img)
	if out.Bounds() != img.Bounds() {
		t.Fatalf("bounds changed: %v", out.Bounds())
	}
	for y := 0; y < 61; y++ {
		for x := 0; x < 97; x++ {
			got := out.RGBAAt(x, y)
			if diff(got.R, want.R) > 1 || diff(got.G, want.G) > 1 || diff(got.B, want.B) > 1 || got.A != 255 {
				t.Fatalf("pixel %d,%d = %v, want %v", x, y, got, want)
			}
		}
	}
}

func diff(a, b uint8) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}

func TestBlurSpreadsDetail(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 64, 64))
	draw.Draw(img, img.Bounds(), image.Black, image.Point{}, draw.Src)
	draw.Draw(img, image.Rect(28, 28, 36, 36), image.White, image.Point{}, draw.Src)
	out := Blur(img)
	if c := out.RGBAAt(20, 32); c.R == 0 {
		t.Fatalf("expected light to bleed outward, got %v", c)
	}
	if c := out.RGBAAt(32, 32); c.R == 255 {
		t.Fatalf("expected centre to soften, got %v", c)
	}
}

func TestBlurNilAndEmpty(t *testing.T) {
	if Blur(nil) != nil {
		t.Fatal("nil input should give nil")
	}
	empty := image.NewRGBA(image.Rect(0, 0, 0, 0))
	if Blur(empty) != empty {
		t.Fatal("empty input should be returned unchanged")
	}
}

func TestBlurTinyImage(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 3, 2))
	out := Blur(img)
	if out.Bounds() != img.Bounds() {
		t.Fatalf("bounds changed: %v", out.Bounds())
	}
}

func TestBlurrerReusesBuffers(t *testing.T) {
	var b Blurrer
	img := image.NewRGBA(image.Rect(0, 0, 40, 30))
	first := b.Blur(img)
	second := b.Blur(img)
	if first != second {
		t.Fatal("expected the output buffer to be reused")
	}
}
