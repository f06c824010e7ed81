package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/example/glassboard/internal/compositor"
	"github.com/example/glassboard/internal/config"
	"github.com/example/glassboard/internal/geom"
	"github.com/example/glassboard/internal/notify"
	"github.com/example/glassboard/internal/render"
	"github.com/example/glassboard/internal/theme"
)

var (
	version            = "dev"
	commit             = ""
	date               = ""
	configPathOverride = ""
)

// DefaultProject is the project file used when -project is not given.
const DefaultProject = "board.tree"

type runnable interface{ Run() error }

type root struct {
	fs          *flag.FlagSet
	program     string
	notifier    *notify.Notifier
	config      *config.Config
	saveAlerts  bool
	loadAlerts  bool
	pasteAlerts bool
	themeName   string
	activeTheme *theme.Theme
}

func (r *root) Program() string {
	return r.program
}

func (r *root) subcommand(name string) *root {
	if r == nil {
		return &root{program: "glassboard " + name, activeTheme: theme.Default(), config: config.New()}
	}
	program := strings.TrimSpace(strings.Join([]string{r.program, name}, " "))
	return &root{
		program:     program,
		notifier:    r.notifier,
		config:      r.config,
		saveAlerts:  r.saveAlerts,
		loadAlerts:  r.loadAlerts,
		pasteAlerts: r.pasteAlerts,
		themeName:   r.themeName,
		activeTheme: r.activeTheme,
	}
}

func (r *root) FlagSet() *flag.FlagSet {
	return r.fs
}

func newRoot() *root {
	prefs := notify.LoadPreferences()
	loader := config.NewLoader(version, configPathOverride)
	cfg, err := loader.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to load config: %v\n", err)
		cfg = config.New()
	}

	r := &root{
		fs:       flag.NewFlagSet("glassboard", flag.ExitOnError),
		program:  "glassboard",
		notifier: notify.New(prefs),
		config:   cfg,
	}
	r.fs.BoolVar(&r.saveAlerts, "notify-save", cfg.Notify.Save, "show a desktop notification after saving the project")
	r.fs.BoolVar(&r.loadAlerts, "notify-load", cfg.Notify.Load, "show a desktop notification after loading the project")
	r.fs.BoolVar(&r.pasteAlerts, "notify-paste", cfg.Notify.Paste, "show a desktop notification after pasting from the clipboard")

	// Precedence: CLI > Env > Config > Default. The loader has already
	// applied the environment, so an empty flag keeps cfg.Theme.
	r.fs.StringVar(&r.themeName, "theme", "", "color theme to use ("+strings.Join(theme.Names(), ", ")+")")
	r.fs.Usage = usageFunc(r)
	return r
}

func (r *root) Run(args []string) error {
	if err := r.fs.Parse(args); err != nil {
		return err
	}
	if r.fs.NArg() < 1 {
		return &UsageError{of: r}
	}
	if r.notifier != nil {
		r.notifier.Enable(notify.EventSave, r.saveAlerts)
		r.notifier.Enable(notify.EventLoad, r.loadAlerts)
		r.notifier.Enable(notify.EventPaste, r.pasteAlerts)
	}
	r.activeTheme = r.resolveTheme()

	cmdName := r.fs.Arg(0)
	subArgs := r.fs.Args()[1:]

	var (
		cmd runnable
		err error
	)
	switch cmdName {
	case "open":
		cmd, err = parseOpenCmd(subArgs, r)
	case "render":
		cmd, err = parseRenderCmd(subArgs, r)
	case "add":
		cmd, err = parseAddCmd(subArgs, r)
	case "check":
		cmd, err = parseCheckCmd(subArgs, r)
	case "config":
		cmd, err = parseConfigCmd(subArgs, r)
	case "version":
		cmd = &versionCmd{r: r}
	default:
		err = &UsageError{of: r}
	}
	if err != nil {
		return err
	}
	return cmd.Run()
}

func (r *root) resolveTheme() *theme.Theme {
	if r.config == nil {
		return theme.Default()
	}
	if r.themeName != "" {
		r.config.Theme = r.themeName
	}
	t, err := r.config.ResolveTheme(theme.NewLoader())
	if err != nil {
		if name := r.config.Theme; name != "" && name != "default" {
			fmt.Fprintf(os.Stderr, "warning: failed to load theme '%s': %v. using default.\n", name, err)
		}
		return theme.Default()
	}
	return t
}

// newCompositor builds a renderer from the active theme and glass settings.
func (r *root) newCompositor() *compositor.Compositor {
	opts := []compositor.Option{}
	if r != nil && r.activeTheme != nil {
		opts = append(opts, compositor.WithTheme(r.activeTheme))
	}
	if r != nil && r.config != nil {
		opts = append(opts, compositor.WithGlass(render.GlassOptions{
			Refraction: r.config.Glass.Refraction,
			Aberration: r.config.Glass.Aberration,
		}))
	}
	return compositor.New(opts...)
}

// newView returns a view of w×h pixels bounded by the configured zoom range.
func (r *root) newView(w, h int) *geom.Transform {
	v := geom.NewTransform(float64(w), float64(h))
	if r != nil && r.config != nil {
		if z := r.config.View.MinZoom; z > 0 {
			v.MinZoom = z
		}
		if z := r.config.View.MaxZoom; z >= v.MinZoom {
			v.MaxZoom = z
		}
	}
	return v
}

// projectPath resolves a -project value. Relative paths live in the
// configured project directory when one is set.
func (r *root) projectPath(p string) string {
	if p == "" {
		p = DefaultProject
	}
	if filepath.IsAbs(p) || r == nil || r.config == nil || r.config.ProjectDir == "" {
		return p
	}
	return filepath.Join(r.config.ProjectDir, p)
}

func main() {
	r := newRoot()
	if err := r.Run(os.Args[1:]); err != nil {
		var uerr *UsageError
		if errors.As(err, &uerr) {
			fmt.Fprintln(os.Stderr, uerr.Error())
		} else {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
}
