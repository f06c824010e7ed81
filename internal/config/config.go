package config

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/example/glassboard/internal/theme"
)

// Notify holds notification settings.
type Notify struct {
	Save  bool
	Load  bool
	Paste bool
}

// Glass holds the frosted panel parameters.
type Glass struct {
	Refraction float64
	Aberration float64
}

// View bounds the zoom range.
type View struct {
	MinZoom float64
	MaxZoom float64
}

// Config holds the application configuration.
type Config struct {
	Theme      string
	ProjectDir string
	Notify     Notify
	Glass      Glass
	View       View
	Themes     map[string]*theme.Theme
}

// New creates a new Config with defaults.
func New() *Config {
	return &Config{
		Theme:  "", // empty falls through to env or the built-in theme
		Glass:  Glass{Refraction: 1.1, Aberration: 3},
		View:   View{MinZoom: 0.1, MaxZoom: 10},
		Themes: make(map[string]*theme.Theme),
	}
}

// ResolveTheme returns the configured theme. Themes defined inline take
// precedence over embedded and on-disk ones.
func (c *Config) ResolveTheme(l *theme.Loader) (*theme.Theme, error) {
	if t, ok := c.Themes[c.Theme]; ok {
		return t, nil
	}
	return l.Load(c.Theme)
}

// String implements fmt.Stringer and returns the configuration in RC format.
func (c *Config) String() string {
	var sb strings.Builder

	if c.Theme != "" {
		fmt.Fprintf(&sb, "theme = %s\n", c.Theme)
	}
	if c.ProjectDir != "" {
		fmt.Fprintf(&sb, "project_dir = %s\n", c.ProjectDir)
	}
	sb.WriteString("\n")

	sb.WriteString("[notify]\n")
	fmt.Fprintf(&sb, "save = %v\n", c.Notify.Save)
	fmt.Fprintf(&sb, "load = %v\n", c.Notify.Load)
	fmt.Fprintf(&sb, "paste = %v\n", c.Notify.Paste)
	sb.WriteString("\n")

	sb.WriteString("[glass]\n")
	fmt.Fprintf(&sb, "refraction = %s\n", formatFloat(c.Glass.Refraction))
	fmt.Fprintf(&sb, "aberration = %s\n", formatFloat(c.Glass.Aberration))
	sb.WriteString("\n")

	sb.WriteString("[view]\n")
	fmt.Fprintf(&sb, "min_zoom = %s\n", formatFloat(c.View.MinZoom))
	fmt.Fprintf(&sb, "max_zoom = %s\n", formatFloat(c.View.MaxZoom))
	sb.WriteString("\n")

	// Sort keys for deterministic output
	var themeNames []string
	for name := range c.Themes {
		themeNames = append(themeNames, name)
	}
	sort.Strings(themeNames)

	for _, name := range themeNames {
		t := c.Themes[name]
		fmt.Fprintf(&sb, "[theme.%s]\n", name)
		fmt.Fprintf(&sb, "Name: %s\n", t.Name)
		for _, f := range t.Fields() {
			fmt.Fprintf(&sb, "%s: %s\n", f.Name, theme.Hex(f.Color))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
