package notify

import (
	"fmt"
	"image"
	"image/png"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/kelseyhightower/envconfig"

	"github.com/example/glassboard/internal/platform"
)

// Event identifies a notification trigger.
type Event string

const (
	// EventSave fires when a project has been written to disk.
	EventSave Event = "save"
	// EventLoad fires when a project has been read from disk.
	EventLoad Event = "load"
	// EventPaste fires when clipboard content lands on the canvas.
	EventPaste Event = "paste"
)

// EventPreference describes formatting for a notification event.
type EventPreference struct {
	Template string
}

// Preferences describes notification behaviour loaded from configuration.
type Preferences struct {
	Title  string
	Events map[Event]EventPreference
}

// DefaultPreferences returns the default notification settings.
func DefaultPreferences() Preferences {
	return Preferences{
		Title: platform.AppName,
		Events: map[Event]EventPreference{
			EventSave:  {Template: "Saved %s"},
			EventLoad:  {Template: "Loaded %s"},
			EventPaste: {Template: "Pasted %s"},
		},
	}
}

type envTemplates struct {
	Title     string
	SaveText  string `split_words:"true"`
	LoadText  string `split_words:"true"`
	PasteText string `split_words:"true"`
}

// LoadPreferences reads GLASSBOARD_NOTIFY_* overrides of the defaults.
func LoadPreferences() Preferences {
	prefs := DefaultPreferences()
	var env envTemplates
	if err := envconfig.Process("GLASSBOARD_NOTIFY", &env); err != nil {
		log.Printf("notify: %v", err)
		return prefs
	}
	if v := strings.TrimSpace(env.Title); v != "" {
		prefs.Title = v
	}
	apply := func(v string, event Event) {
		if v = strings.TrimSpace(v); v != "" {
			prefs.Events[event] = EventPreference{Template: v}
		}
	}
	apply(env.SaveText, EventSave)
	apply(env.LoadText, EventLoad)
	apply(env.PasteText, EventPaste)
	return prefs
}

// send delivers a notification. Tests replace it.
var send = platform.Notify

// Notifier sends desktop notifications for the events it has enabled.
type Notifier struct {
	prefs   Preferences
	enabled map[Event]bool
}

// New creates a Notifier using prefs. Every event starts disabled.
func New(prefs Preferences) *Notifier {
	cloned := Preferences{Title: prefs.Title, Events: make(map[Event]EventPreference, len(prefs.Events))}
	for k, v := range prefs.Events {
		cloned.Events[k] = v
	}
	return &Notifier{prefs: cloned, enabled: make(map[Event]bool)}
}

// Enable toggles the notifier for the provided event.
func (n *Notifier) Enable(event Event, enabled bool) {
	if n == nil {
		return
	}
	if n.enabled == nil {
		n.enabled = make(map[Event]bool)
	}
	n.enabled[event] = enabled
}

// Enabled reports whether event is switched on.
func (n *Notifier) Enabled(event Event) bool {
	return n != nil && n.enabled[event]
}

// Save announces a written project. preview, when not nil, is shown as the
// notification icon.
func (n *Notifier) Save(path string, preview image.Image) {
	if !n.Enabled(EventSave) {
		return
	}
	opts := platform.Options{}
	if preview != nil {
		if icon, cleanup, err := createPreview(preview); err != nil {
			log.Printf("notification preview: %v", err)
		} else {
			defer cleanup()
			opts.IconPath = icon
		}
	}
	n.dispatch(EventSave, absolute(path), opts)
}

// Load announces a project read from disk.
func (n *Notifier) Load(path string, objects int) {
	if !n.Enabled(EventLoad) {
		return
	}
	n.dispatch(EventLoad, fmt.Sprintf("%s (%d objects)", absolute(path), objects), platform.Options{})
}

// Paste announces clipboard content placed on the canvas.
func (n *Notifier) Paste(detail string) {
	if !n.Enabled(EventPaste) {
		return
	}
	if strings.TrimSpace(detail) == "" {
		detail = "clipboard"
	}
	n.dispatch(EventPaste, detail, platform.Options{})
}

func absolute(path string) string {
	path = strings.TrimSpace(path)
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}

func (n *Notifier) dispatch(event Event, detail string, opts platform.Options) {
	template := strings.TrimSpace(n.prefs.Events[event].Template)
	if template == "" {
		return
	}
	body := strings.TrimSpace(fmt.Sprintf(template, strings.TrimSpace(detail)))
	if body == "" {
		return
	}
	if err := send(n.prefs.Title, body, opts); err != nil {
		log.Printf("notification %s: %v", event, err)
	}
}

func createPreview(img image.Image) (string, func(), error) {
	f, err := os.CreateTemp("", "glassboard-preview-*.png")
	if err != nil {
		return "", nil, err
	}
	path := f.Name()
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return "", nil, err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return "", nil, err
	}
	cleanup := func() {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			log.Printf("remove preview: %v", err)
		}
	}
	return path, cleanup, nil
}
