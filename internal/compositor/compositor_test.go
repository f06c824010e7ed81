package compositor

import (
	"image"
	"image/color"
	"testing"

	"github.com/example/glassboard/internal/geom"
	"github.com/example/glassboard/internal/interact"
	"github.com/example/glassboard/internal/scene"
	"github.com/example/glassboard/internal/theme"
)

func setup() (*scene.Store, *geom.Transform, *interact.State) {
	return scene.NewStore(), geom.NewTransform(800, 600), interact.NewState()
}

func TestRenderSizeMatchesViewport(t *testing.T) {
	store, view, st := setup()
	img := New().Render(store, view, st)
	if img.Bounds() != image.Rect(0, 0, 800, 600) {
		t.Fatalf("bounds = %v", img.Bounds())
	}
}

func TestRenderBackgroundAndGrid(t *testing.T) {
	store, view, st := setup()
	img := New().Render(store, view, st)
	th := theme.Default()
	if got := img.RGBAAt(150, 250); got != (color.RGBA{th.Background.R, th.Background.G, th.Background.B, 255}) {
		t.Fatalf("background pixel = %v", got)
	}
	if got := img.RGBAAt(100, 250); got != (color.RGBA{th.Grid.R, th.Grid.G, th.Grid.B, 255}) {
		t.Fatalf("grid pixel = %v", got)
	}
}

func TestRenderUsesTheme(t *testing.T) {
	store, view, st := setup()
	th := theme.Default()
	th.Background = color.NRGBA{200, 0, 0, 255}
	img := New(WithTheme(th)).Render(store, view, st)
	if got := img.RGBAAt(150, 250); got != (color.RGBA{200, 0, 0, 255}) {
		t.Fatalf("background pixel = %v", got)
	}
}

func TestSceneBlurReusedWhileBusy(t *testing.T) {
	store, view, st := setup()
	c := New()
	st.Chrome.SetToolbar(true)
	if !st.Busy() {
		t.Fatal("animating chrome should be busy")
	}
	c.Render(store, view, st)
	c.Render(store, view, st)
	if c.SceneBlurs() != 1 {
		t.Fatalf("blurs while busy = %d, want 1", c.SceneBlurs())
	}

	view.SetViewport(640, 480)
	c.Render(store, view, st)
	if c.SceneBlurs() != 2 {
		t.Fatalf("blurs after resize = %d, want 2", c.SceneBlurs())
	}

	st.Chrome.Progress = st.Chrome.Target
	c.Render(store, view, st)
	c.Render(store, view, st)
	if c.SceneBlurs() != 4 {
		t.Fatalf("blurs when settled = %d, want 4", c.SceneBlurs())
	}
}

func TestPrimaryShowsDeleteHandle(t *testing.T) {
	store, view, st := setup()
	store.Select(store.Append(scene.New(scene.Rectangle, 0, 0)))
	img := New().Render(store, view, st)
	p := img.RGBAAt(456, 250)
	if int(p.R) < int(p.G)+80 {
		t.Fatalf("delete handle pixel = %v", p)
	}
}

func TestImageDrawnInSolids(t *testing.T) {
	store, view, st := setup()
	red := image.NewRGBA(image.Rect(0, 0, 10, 10))
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			red.SetRGBA(x, y, color.RGBA{255, 0, 0, 255})
		}
	}
	o := scene.NewImage(red, 0, 0)
	o.W, o.H = scene.Some(100), scene.Some(100)
	store.Append(o)
	img := New().Render(store, view, st)
	p := img.RGBAAt(400, 300)
	if p.R < 200 || p.G > 50 {
		t.Fatalf("image centre = %v", p)
	}
}

func TestMarqueeOverlay(t *testing.T) {
	store, view, st := setup()
	st.Mode = interact.MarqueeSelecting
	st.Marquee = geom.Rect{X: 120, Y: 120, W: 100, H: 100}
	img := New().Render(store, view, st)
	p := img.RGBAAt(150, 150)
	if p.B <= 40 {
		t.Fatalf("marquee fill = %v", p)
	}
}

func TestRenderEveryKind(t *testing.T) {
	store, view, st := setup()
	for _, k := range []scene.Kind{scene.Rectangle, scene.Triangle, scene.Window, scene.Text} {
		o := scene.New(k, float64(k)*40-200, 0)
		o.Text = "hello\nworld"
		store.Append(o)
	}
	md := scene.New(scene.Markdown, 100, 100)
	md.Text = "# Title\n\nSome *markdown* with `code`.\n\n- one\n- two\n"
	store.Append(md)
	code := scene.New(scene.Code, -100, 100)
	code.Ext = "go"
	code.Text = "package main\n\nfunc main() {}\n"
	store.Append(code)

	missing := scene.New(scene.Image, 200, -100)
	missing.SourcePath = "gone.png"
	missing.MissingAsset = true
	store.Append(missing)

	ph := scene.New(scene.Rectangle, 0, -200)
	ph.Placeholder = true
	ph.Title = "ERR: BLOB"
	store.Append(ph)

	store.Append(scene.NewDrawing(scene.Stroke{
		Style: scene.Marker, Width: 4, Color: color.NRGBA{255, 0, 0, 255},
		Points: []geom.Point{{X: 0, Y: 0}, {X: 50, Y: 20}, {X: 80, Y: 80}},
	}))
	store.Select(4)
	st.Mode = interact.FreehandDrawing
	st.Stroke = []geom.Point{{X: -10, Y: -10}, {X: 10, Y: 10}}
	st.Status = "Saved"

	img := New().Render(store, view, st)
	if img.Bounds().Dx() != 800 {
		t.Fatalf("bounds = %v", img.Bounds())
	}
	if md.Doc == nil {
		t.Fatal("markdown layout was not built")
	}
}

func TestRenderTinyViewport(t *testing.T) {
	store, _, st := setup()
	view := geom.NewTransform(0, 0)
	store.Append(scene.New(scene.Window, 0, 0))
	img := New().Render(store, view, st)
	if img.Bounds().Empty() {
		t.Fatal("empty frame")
	}
}
