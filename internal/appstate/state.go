// Package appstate hosts the canvas in a shiny window and wires the
// desktop integrations: project files, clipboard and notifications.
package appstate

import (
	"errors"
	"fmt"
	"image"
	"sync"

	"github.com/example/glassboard/internal/clipboard"
	"github.com/example/glassboard/internal/compositor"
	"github.com/example/glassboard/internal/geom"
	"github.com/example/glassboard/internal/interact"
	"github.com/example/glassboard/internal/notify"
	"github.com/example/glassboard/internal/project"
	"github.com/example/glassboard/internal/render"
	"github.com/example/glassboard/internal/scene"
)

// ProgramTitle is the default window title.
const ProgramTitle = "Glassboard"

// Clipboard access, replaced in tests.
var (
	pasteClipboard = clipboard.Paste
	writeText      = clipboard.WriteText
	writeImage     = clipboard.WriteImage
)

// AppState owns everything the window shows.
type AppState struct {
	Store      *scene.Store
	View       *geom.Transform
	Controller *interact.Controller
	Compositor *compositor.Compositor
	Notifier   *notify.Notifier

	// Project is the path used by save and reload.
	Project string
	// Imports are dropped onto the canvas once the window opens.
	Imports []string
	// Title is the window title.
	Title string

	width, height int
	frame         *image.RGBA

	onClose   func()
	closeOnce sync.Once
}

// Option modifies an AppState during creation.
type Option func(*AppState)

// WithStore replaces the empty scene.
func WithStore(s *scene.Store) Option { return func(a *AppState) { a.Store = s } }

// WithView replaces the default view, used to carry zoom limits.
func WithView(v *geom.Transform) Option { return func(a *AppState) { a.View = v } }

// WithProject sets the project file used by save and reload.
func WithProject(path string) Option { return func(a *AppState) { a.Project = path } }

// WithImports queues files to import when the window opens.
func WithImports(paths ...string) Option {
	return func(a *AppState) { a.Imports = append(a.Imports, paths...) }
}

// WithTitle sets the window title.
func WithTitle(title string) Option { return func(a *AppState) { a.Title = title } }

// WithCompositor sets the renderer, which carries the theme and glass
// settings.
func WithCompositor(c *compositor.Compositor) Option { return func(a *AppState) { a.Compositor = c } }

// WithNotifier sets the desktop notifier.
func WithNotifier(n *notify.Notifier) Option { return func(a *AppState) { a.Notifier = n } }

// WithSize sets the initial window size in pixels.
func WithSize(w, h int) Option {
	return func(a *AppState) {
		if w > 0 && h > 0 {
			a.width, a.height = w, h
		}
	}
}

// WithOnClose registers a callback invoked when the window closes.
func WithOnClose(fn func()) Option { return func(a *AppState) { a.onClose = fn } }

// New creates an AppState with the provided options.
func New(opts ...Option) *AppState {
	a := &AppState{Title: ProgramTitle, width: 1280, height: 800}
	for _, o := range opts {
		o(a)
	}
	if a.Store == nil {
		a.Store = scene.NewStore()
	}
	if a.View == nil {
		a.View = geom.NewTransform(float64(a.width), float64(a.height))
	}
	a.View.SetViewport(float64(a.width), float64(a.height))
	if a.Compositor == nil {
		a.Compositor = compositor.New()
	}
	if a.Notifier == nil {
		a.Notifier = notify.New(notify.DefaultPreferences())
	}
	a.Controller = interact.New(a.Store, a.View)
	return a
}

func (a *AppState) notifyClose() {
	a.closeOnce.Do(func() {
		if a.onClose != nil {
			a.onClose()
		}
	})
}

// Resize records a new window size.
func (a *AppState) Resize(w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	a.width, a.height = w, h
	a.View.SetViewport(float64(w), float64(h))
	a.Controller.State.Dirty = true
}

// Frame renders the current state and remembers it for copy and save
// previews.
func (a *AppState) Frame() *image.RGBA {
	a.frame = a.Compositor.Render(a.Store, a.View, a.Controller.State)
	a.Controller.State.Dirty = false
	return a.frame
}

func (a *AppState) status(msg string) { a.Controller.SetStatus(msg) }

// ImportQueued drops the files given at start up in the middle of the
// view.
func (a *AppState) ImportQueued() int {
	if len(a.Imports) == 0 {
		return 0
	}
	centre := geom.Pt(a.View.ViewW/2, a.View.ViewH/2)
	n := a.Controller.DropFiles(a.Imports, centre)
	a.Imports = nil
	return n
}

// Save writes the project file.
func (a *AppState) Save() error {
	if a.Project == "" {
		return errors.New("no project file")
	}
	rep, err := project.Save(a.Store, a.Project)
	if err != nil {
		return err
	}
	msg := fmt.Sprintf("Saved %s", a.Project)
	if n := len(rep.Warnings); n > 0 {
		msg = fmt.Sprintf("%s (%d warnings)", msg, n)
	}
	a.status(msg)
	var preview image.Image
	if a.frame != nil {
		preview = a.frame
	}
	a.Notifier.Save(a.Project, preview)
	return nil
}

// Reload replaces the scene with the project file. A missing file leaves
// the scene untouched.
func (a *AppState) Reload() error {
	if a.Project == "" {
		return errors.New("no project file")
	}
	rep, err := project.Load(a.Store, a.Project)
	if err != nil {
		return err
	}
	if rep.Missing {
		a.status(fmt.Sprintf("%s does not exist yet", a.Project))
		return nil
	}
	msg := fmt.Sprintf("Loaded %d objects", rep.Objects)
	if n := len(rep.Warnings); n > 0 {
		msg = fmt.Sprintf("%s (%d warnings)", msg, n)
	}
	a.status(msg)
	a.Notifier.Load(a.Project, rep.Objects)
	return nil
}

// Paste places the clipboard content at the pointer: images become Image
// objects and text becomes a Text object.
func (a *AppState) Paste() error {
	content, err := pasteClipboard()
	if err != nil {
		return err
	}
	at := a.Controller.State.Pointer
	if content.IsImage() {
		o := scene.NewImage(render.ToRGBA(content.Image), 0, 0)
		o.Title = "pasted image"
		a.Controller.Place(o, at)
		a.status("Pasted image")
		a.Notifier.Paste("image")
		return nil
	}
	o := scene.New(scene.Text, 0, 0)
	o.SetText(content.Text)
	a.Controller.Place(o, at)
	a.status("Pasted text")
	a.Notifier.Paste("text")
	return nil
}

// Copy puts the selected document text on the clipboard, or the current
// frame when nothing is selected.
func (a *AppState) Copy() error {
	if o := a.Store.PrimaryObject(); o != nil && o.Kind.IsDocument() {
		if text := o.SelectedText(); text != "" {
			if err := writeText(text); err != nil {
				return err
			}
			a.status("Copied selection")
			return nil
		}
	}
	frame := a.frame
	if frame == nil {
		frame = a.Frame()
	}
	if err := writeImage(frame); err != nil {
		return err
	}
	a.status("Copied canvas image")
	return nil
}
