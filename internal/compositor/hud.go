package compositor

import (
	"fmt"
	"image"

	"github.com/example/glassboard/internal/geom"
	"github.com/example/glassboard/internal/interact"
	"github.com/example/glassboard/internal/render"
)

// Hints are the key reminders in the bottom-left corner.
var Hints = []string{
	"Wheel: zoom",
	"Shift+drag: pan",
	"Ctrl+S: save  Ctrl+R: reload",
	"Del: delete  Esc: quit",
}

func (c *Compositor) paintHUD(dst *image.RGBA, view *geom.Transform, st *interact.State) {
	face := render.Face(render.Regular, 13)
	fg := c.theme.Text
	render.DrawString(dst, face, geom.Pt(10, 30), fmt.Sprintf("Zoom: %.2fx", view.Zoom), fg)
	y := view.ViewH - 80
	for _, h := range Hints {
		render.DrawString(dst, face, geom.Pt(10, y), h, fg)
		y += 25
	}
	if st.Status == "" {
		return
	}
	w := render.Measure(face, st.Status) + 24
	r := geom.Rect{X: view.ViewW - w - 10, Y: view.ViewH - 40, W: w, H: 28}
	render.Fill(dst, render.RoundedRect(r, 14), c.theme.ToolbarTint)
	render.DrawCentered(dst, face, r, st.Status, fg)
}
