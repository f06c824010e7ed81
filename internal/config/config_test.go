package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	input := `
theme = my_custom_theme
project_dir = /tmp/boards

[notify]
save = true
load = false
paste = true

[glass]
refraction = 1.25
aberration = 2

[view]
min_zoom = 0.2
max_zoom = 5

[theme.my_custom_theme]
Background = #111111
Accent = #FF0000
`
	cfg, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if cfg.Theme != "my_custom_theme" {
		t.Errorf("Expected theme 'my_custom_theme', got '%s'", cfg.Theme)
	}
	if cfg.ProjectDir != "/tmp/boards" {
		t.Errorf("Expected project_dir '/tmp/boards', got '%s'", cfg.ProjectDir)
	}
	if !cfg.Notify.Save || cfg.Notify.Load || !cfg.Notify.Paste {
		t.Errorf("Unexpected notify settings: %+v", cfg.Notify)
	}
	if cfg.Glass.Refraction != 1.25 || cfg.Glass.Aberration != 2 {
		t.Errorf("Unexpected glass settings: %+v", cfg.Glass)
	}
	if cfg.View.MinZoom != 0.2 || cfg.View.MaxZoom != 5 {
		t.Errorf("Unexpected view settings: %+v", cfg.View)
	}

	th, ok := cfg.Themes["my_custom_theme"]
	if !ok {
		t.Fatal("Expected theme 'my_custom_theme' to be loaded")
	}
	if th.Background.R != 0x11 || th.Background.G != 0x11 || th.Background.B != 0x11 {
		t.Errorf("Unexpected Background color: %+v", th.Background)
	}
	if th.Accent.R != 0xFF || th.Accent.G != 0 {
		t.Errorf("Unexpected Accent color: %+v", th.Accent)
	}
}

func TestParseErrors(t *testing.T) {
	cases := map[string]string{
		"bool":       "[notify]\nsave = maybe\n",
		"number":     "[glass]\nrefraction = lots\n",
		"refraction": "[glass]\nrefraction = 0\n",
		"zoom":       "[view]\nmin_zoom = 4\nmax_zoom = 2\n",
		"color":      "[theme.x]\nBackground = #12\n",
	}
	for name, in := range cases {
		if _, err := Parse(strings.NewReader(in)); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestCircular(t *testing.T) {
	input := `theme = midnight
project_dir = /home/user/boards

[notify]
save = true
load = true
paste = false

[glass]
refraction = 1.5

[theme.custom]
Name = custom
Background = #000000
Text = #FFFFFF
`
	cfg, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Initial parse failed: %v", err)
	}

	generated := cfg.String()

	cfg2, err := Parse(strings.NewReader(generated))
	if err != nil {
		t.Fatalf("Circular parse failed: %v\n%s", err, generated)
	}

	if cfg.Theme != cfg2.Theme {
		t.Errorf("Theme mismatch: %q vs %q", cfg.Theme, cfg2.Theme)
	}
	if cfg.ProjectDir != cfg2.ProjectDir {
		t.Errorf("ProjectDir mismatch: %q vs %q", cfg.ProjectDir, cfg2.ProjectDir)
	}
	if cfg.Notify != cfg2.Notify {
		t.Errorf("Notify mismatch: %+v vs %+v", cfg.Notify, cfg2.Notify)
	}
	if cfg.Glass != cfg2.Glass || cfg.View != cfg2.View {
		t.Errorf("Glass/View mismatch: %+v %+v vs %+v %+v", cfg.Glass, cfg.View, cfg2.Glass, cfg2.View)
	}

	t1 := cfg.Themes["custom"]
	t2 := cfg2.Themes["custom"]
	if t1 == nil || t2 == nil {
		t.Fatalf("Custom theme missing in one config")
	}
	if *t1 != *t2 {
		t.Errorf("Theme mismatch: %+v vs %+v", t1, t2)
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("GLASSBOARD_THEME", "daylight")
	t.Setenv("GLASSBOARD_REFRACTION", "1.3")
	t.Setenv("GLASSBOARD_MAX_ZOOM", "4")

	cfg := New()
	cfg.Glass.Aberration = 7
	if err := cfg.ApplyEnv(); err != nil {
		t.Fatalf("ApplyEnv: %v", err)
	}
	if cfg.Theme != "daylight" {
		t.Errorf("theme = %q", cfg.Theme)
	}
	if cfg.Glass.Refraction != 1.3 {
		t.Errorf("refraction = %v", cfg.Glass.Refraction)
	}
	if cfg.Glass.Aberration != 7 {
		t.Errorf("unset variable overwrote aberration: %v", cfg.Glass.Aberration)
	}
	if cfg.View.MaxZoom != 4 || cfg.View.MinZoom != 0.1 {
		t.Errorf("view = %+v", cfg.View)
	}
}

func TestApplyEnvRejectsBadValue(t *testing.T) {
	t.Setenv("GLASSBOARD_MIN_ZOOM", "fast")
	if err := New().ApplyEnv(); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestLoaderOverridePath(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "custom.rc")
	if err := os.WriteFile(p, []byte("theme = midnight\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	l := NewLoader("1.0", p)
	if got := l.GetConfigPath(); got != p {
		t.Fatalf("GetConfigPath = %q", got)
	}
	cfg, err := l.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Theme != "midnight" {
		t.Fatalf("theme = %q", cfg.Theme)
	}
}
