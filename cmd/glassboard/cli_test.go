package main

import (
	"bytes"
	"errors"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/example/glassboard/internal/config"
	"github.com/example/glassboard/internal/project"
	"github.com/example/glassboard/internal/scene"
)

func writeProject(t *testing.T, objs ...*scene.Object) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "board.tree")
	store := scene.NewStore()
	for _, o := range objs {
		store.Append(o)
	}
	if _, err := project.Save(store, path); err != nil {
		t.Fatalf("save: %v", err)
	}
	return path
}

func TestParseAddRequiresFiles(t *testing.T) {
	_, err := parseAddCmd(nil, nil)
	var uerr *UsageError
	if !errors.As(err, &uerr) {
		t.Fatalf("expected usage error, got %v", err)
	}
	if help := uerr.Error(); !strings.Contains(help, "-project") {
		t.Fatalf("help does not list flags: %q", help)
	}
}

func TestRenderWritesPNG(t *testing.T) {
	path := writeProject(t, scene.New(scene.Rectangle, 0, 0))
	out := filepath.Join(t.TempDir(), "frame.png")
	cmd, err := parseRenderCmd([]string{"-project", path, "-output", out, "-width", "200", "-height", "100", "-select", "0"}, nil)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := cmd.Run(); err != nil {
		t.Fatalf("run: %v", err)
	}
	f, err := os.Open(out)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if img.Bounds() != image.Rect(0, 0, 200, 100) {
		t.Fatalf("bounds = %v", img.Bounds())
	}
}

func TestRenderToStdout(t *testing.T) {
	path := writeProject(t, scene.New(scene.Window, 0, 0))
	cmd, err := parseRenderCmd([]string{"-project", path, "-output", "-", "-width", "64", "-height", "48"}, nil)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	var buf bytes.Buffer
	cmd.stdout = &buf
	if err := cmd.Run(); err != nil {
		t.Fatalf("run: %v", err)
	}
	cfg, err := png.DecodeConfig(&buf)
	if err != nil || cfg.Width != 64 || cfg.Height != 48 {
		t.Fatalf("png %+v, %v", cfg, err)
	}
}

func TestRenderRejectsBadSelection(t *testing.T) {
	path := writeProject(t, scene.New(scene.Rectangle, 0, 0))
	cmd, err := parseRenderCmd([]string{"-project", path, "-output", "-", "-select", "5"}, nil)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	cmd.stdout = &bytes.Buffer{}
	if err := cmd.Run(); err == nil || !strings.Contains(err.Error(), "out of range") {
		t.Fatalf("expected range error, got %v", err)
	}
}

func TestRenderMissingProject(t *testing.T) {
	cmd, err := parseRenderCmd([]string{"-project", filepath.Join(t.TempDir(), "none.tree")}, nil)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := cmd.Run(); err == nil || !strings.Contains(err.Error(), "does not exist") {
		t.Fatalf("expected missing project error, got %v", err)
	}
}

func TestCheckReportsWarnings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "board.tree")
	if err := os.WriteFile(path, []byte("> [NOPE] Broken\nx: 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cmd, err := parseCheckCmd([]string{"-project", path}, nil)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	var buf bytes.Buffer
	cmd.stdout = &buf
	if err := cmd.Run(); err == nil {
		t.Fatal("expected error for warnings")
	}
	if out := buf.String(); !strings.Contains(out, "1 objects, 1 warnings") {
		t.Fatalf("output = %q", out)
	}
}

func TestCheckCleanProject(t *testing.T) {
	path := writeProject(t, scene.New(scene.Text, 5, 5))
	cmd, err := parseCheckCmd([]string{"-project", path}, nil)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	cmd.stdout = &bytes.Buffer{}
	if err := cmd.Run(); err != nil {
		t.Fatalf("run: %v", err)
	}
}

func TestAddImportsAndSaves(t *testing.T) {
	dir := t.TempDir()
	pic := filepath.Join(dir, "pic.png")
	f, err := os.Create(pic)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, image.NewRGBA(image.Rect(0, 0, 8, 8))); err != nil {
		t.Fatal(err)
	}
	f.Close()

	path := filepath.Join(dir, "board.tree")
	cmd, err := parseAddCmd([]string{"-project", path, pic}, nil)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := cmd.Run(); err != nil {
		t.Fatalf("run: %v", err)
	}
	store := scene.NewStore()
	if _, err := project.Load(store, path); err != nil {
		t.Fatalf("load: %v", err)
	}
	if store.Len() != 1 || store.At(0).Kind != scene.Image {
		t.Fatalf("store has %d objects", store.Len())
	}
}

func TestAddRejectsUnsupportedFiles(t *testing.T) {
	dir := t.TempDir()
	cmd, err := parseAddCmd([]string{"-project", filepath.Join(dir, "board.tree"), filepath.Join(dir, "archive.zip")}, nil)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := cmd.Run(); err == nil {
		t.Fatal("expected error")
	}
}

func TestProjectPathUsesProjectDir(t *testing.T) {
	cfg := config.New()
	cfg.ProjectDir = "/boards"
	r := &root{program: "glassboard", config: cfg}
	if got := r.projectPath(""); got != filepath.Join("/boards", DefaultProject) {
		t.Fatalf("default path = %q", got)
	}
	if got := r.projectPath("/tmp/x.tree"); got != "/tmp/x.tree" {
		t.Fatalf("absolute path = %q", got)
	}
}

func TestNewViewHonoursZoomRange(t *testing.T) {
	cfg := config.New()
	cfg.View.MinZoom, cfg.View.MaxZoom = 0.5, 2
	r := &root{config: cfg}
	v := r.newView(100, 100)
	if v.MinZoom != 0.5 || v.MaxZoom != 2 {
		t.Fatalf("zoom range = %v..%v", v.MinZoom, v.MaxZoom)
	}
}

func TestWindowTitle(t *testing.T) {
	got := windowTitle(titleOptions{Project: "/home/me/board.tree", Imports: 2})
	if !strings.HasPrefix(got, "Glassboard - board.tree - 2 to import") {
		t.Fatalf("title = %q", got)
	}
}
