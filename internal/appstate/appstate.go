package appstate

import (
	"image"
	"image/draw"
	"log"
	"unicode"

	"golang.org/x/exp/shiny/driver"
	"golang.org/x/exp/shiny/screen"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"

	"github.com/example/glassboard/internal/geom"
	"github.com/example/glassboard/internal/interact"
)

// KeyShortcut describes a keyboard combination that triggers an action.
type KeyShortcut struct {
	Rune      rune
	Code      key.Code
	Modifiers key.Modifiers
}

// Shortcuts maps key combinations to host actions.
var Shortcuts = map[KeyShortcut]string{
	{Rune: 's', Modifiers: key.ModControl}: "save",
	{Rune: 'r', Modifiers: key.ModControl}: "reload",
	{Rune: 'v', Modifiers: key.ModControl}: "paste",
	{Rune: 'c', Modifiers: key.ModControl}: "copy",
	{Code: key.CodeEscape}:                 "quit",
}

type (
	tickEvent  struct{}
	blinkEvent struct{}
)

// Run executes the UI loop using shiny's driver.
func (a *AppState) Run() { driver.Main(a.Main) }

// Main runs the window until it is closed or quit.
func (a *AppState) Main(s screen.Screen) {
	w, err := s.NewWindow(&screen.NewWindowOptions{Width: a.width, Height: a.height, Title: a.Title})
	if err != nil {
		log.Fatalf("new window: %v", err)
	}
	defer w.Release()
	defer a.notifyClose()

	anim := newTicker(AnimationInterval, func() { w.Send(tickEvent{}) })
	blink := newTicker(BlinkInterval, func() { w.Send(blinkEvent{}) })
	blink.Start()
	defer anim.Stop()
	defer blink.Stop()

	a.ImportQueued()
	st := a.Controller.State
	for {
		switch e := w.NextEvent().(type) {
		case lifecycle.Event:
			if e.To == lifecycle.StageDead {
				return
			}
		case size.Event:
			a.Resize(e.WidthPx, e.HeightPx)
		case paint.Event:
			st.Dirty = true
		case mouse.Event:
			a.HandleMouse(e)
		case key.Event:
			if a.HandleKey(e) {
				return
			}
		case tickEvent:
			a.Controller.Tick()
		case blinkEvent:
			a.Controller.Blink()
		}
		if st.Chrome.Active() {
			anim.Start()
		} else {
			anim.Stop()
		}
		if st.Dirty {
			a.paint(s, w)
		}
	}
}

func (a *AppState) paint(s screen.Screen, w screen.Window) {
	frame := a.Frame()
	b, err := s.NewBuffer(frame.Bounds().Size())
	if err != nil {
		log.Printf("new buffer: %v", err)
		return
	}
	defer b.Release()
	draw.Draw(b.RGBA(), b.Bounds(), frame, image.Point{}, draw.Src)
	w.Upload(image.Point{}, b, b.Bounds())
	w.Publish()
}

func pointerButton(b mouse.Button) (interact.Button, bool) {
	switch b {
	case mouse.ButtonLeft:
		return interact.ButtonLeft, true
	case mouse.ButtonMiddle:
		return interact.ButtonMiddle, true
	case mouse.ButtonRight:
		return interact.ButtonRight, true
	}
	return 0, false
}

func modifiers(m key.Modifiers) interact.Modifiers {
	var out interact.Modifiers
	if m&key.ModShift != 0 {
		out |= interact.ModShift
	}
	if m&key.ModControl != 0 {
		out |= interact.ModControl
	}
	return out
}

// HandleMouse forwards a pointer or wheel event to the controller.
func (a *AppState) HandleMouse(e mouse.Event) {
	c := a.Controller
	p := geom.Pt(float64(e.X), float64(e.Y))
	if e.Button.IsWheel() {
		if e.Direction == mouse.DirRelease {
			return
		}
		switch e.Button {
		case mouse.ButtonWheelUp:
			c.Wheel(p, 1)
		case mouse.ButtonWheelDown:
			c.Wheel(p, -1)
		}
		return
	}
	switch e.Direction {
	case mouse.DirPress:
		if b, ok := pointerButton(e.Button); ok {
			c.PointerDown(p, b, modifiers(e.Modifiers))
		}
	case mouse.DirRelease:
		if b, ok := pointerButton(e.Button); ok {
			c.PointerUp(p, b)
		}
	default:
		c.PointerMove(p)
	}
}

func lookupShortcut(e key.Event) (string, bool) {
	mods := e.Modifiers & key.ModControl
	r := e.Rune
	if mods != 0 && r > 0 && r < 0x20 {
		// Some drivers report Ctrl+letter as the ASCII control code.
		r += 'a' - 1
	}
	if r > 0 {
		if action, ok := Shortcuts[KeyShortcut{Rune: unicode.ToLower(r), Modifiers: mods}]; ok {
			return action, true
		}
	}
	action, ok := Shortcuts[KeyShortcut{Code: e.Code, Modifiers: mods}]
	return action, ok
}

// HandleKey applies a key press and reports whether the user asked to
// quit.
func (a *AppState) HandleKey(e key.Event) bool {
	if e.Direction == key.DirRelease {
		return false
	}
	if action, ok := lookupShortcut(e); ok {
		return a.do(action)
	}
	c := a.Controller
	switch e.Code {
	case key.CodeReturnEnter, key.CodeKeypadEnter:
		c.Key(interact.KeyEnter)
		return false
	case key.CodeDeleteBackspace:
		c.Key(interact.KeyBackspace)
		return false
	case key.CodeDeleteForward:
		c.Key(interact.KeyDelete)
		return false
	}
	if e.Modifiers&key.ModControl != 0 {
		return false
	}
	if e.Rune > 0 && unicode.IsPrint(e.Rune) {
		c.KeyRune(e.Rune)
	}
	return false
}

func (a *AppState) do(action string) bool {
	var err error
	switch action {
	case "quit":
		return true
	case "save":
		err = a.Save()
	case "reload":
		err = a.Reload()
	case "paste":
		err = a.Paste()
	case "copy":
		err = a.Copy()
	}
	if err != nil {
		log.Printf("%s: %v", action, err)
		a.Controller.SetStatus(action + " failed: " + err.Error())
	}
	return false
}
