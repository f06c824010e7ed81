package project

import (
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"os"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"github.com/example/glassboard/internal/geom"
	"github.com/example/glassboard/internal/scene"
)

// DecodeImage reads a raster file in any registered format.
func DecodeImage(path string) (*image.RGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return toRGBA(img), nil
}

func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Rect.Min == (image.Point{}) {
		return rgba
	}
	b := img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Rect, img, b.Min, draw.Src)
	return out
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

type strokeRecord struct {
	Style  string       `json:"style"`
	Width  float64      `json:"width"`
	Color  []int        `json:"color"`
	Points [][2]float64 `json:"points"`
}

func readStrokes(path string) ([]scene.Stroke, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var recs []strokeRecord
	if err := json.Unmarshal(b, &recs); err != nil {
		return nil, fmt.Errorf("strokes %s: %w", path, err)
	}
	out := make([]scene.Stroke, 0, len(recs))
	for _, r := range recs {
		s := scene.Stroke{
			Style: scene.ParseStrokeStyle(r.Style),
			Width: r.Width,
			Color: recordColor(r.Color),
		}
		for _, p := range r.Points {
			s.Points = append(s.Points, geom.Pt(p[0], p[1]))
		}
		out = append(out, s)
	}
	return out, nil
}

func writeStrokes(path string, strokes []scene.Stroke) error {
	recs := make([]strokeRecord, len(strokes))
	for i, s := range strokes {
		recs[i] = strokeRecord{
			Style:  s.Style.String(),
			Width:  s.Width,
			Color:  []int{int(s.Color.R), int(s.Color.G), int(s.Color.B), int(s.Color.A)},
			Points: make([][2]float64, len(s.Points)),
		}
		for j, p := range s.Points {
			recs[i].Points[j] = [2]float64{p.X, p.Y}
		}
	}
	b, err := json.Marshal(recs)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}

// recordColor reads [r,g,b] or [r,g,b,a]; anything else is white.
func recordColor(c []int) color.NRGBA {
	switch len(c) {
	case 3:
		return color.NRGBA{clampByte(c[0]), clampByte(c[1]), clampByte(c[2]), 255}
	case 4:
		return color.NRGBA{clampByte(c[0]), clampByte(c[1]), clampByte(c[2]), clampByte(c[3])}
	}
	return color.NRGBA{255, 255, 255, 255}
}

func clampByte(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
