package main

import (
	"errors"
	"flag"
	"fmt"
	"image/png"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/example/glassboard/internal/appstate"
)

type renderCmd struct {
	project string
	output  string
	width   int
	height  int
	zoom    float64
	panX    float64
	panY    float64
	sel     string
	stdout  io.Writer
	*root
	fs *flag.FlagSet
}

func (c *renderCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func parseRenderCmd(args []string, r *root) (*renderCmd, error) {
	fs := flag.NewFlagSet("render", flag.ExitOnError)
	c := &renderCmd{root: r.subcommand("render"), fs: fs, stdout: os.Stdout}
	fs.Usage = usageFunc(c)
	fs.StringVar(&c.project, "project", DefaultProject, "project file to render")
	fs.StringVar(&c.output, "output", "board.png", "PNG file to write, - for stdout")
	fs.IntVar(&c.width, "width", 1280, "frame width in pixels")
	fs.IntVar(&c.height, "height", 800, "frame height in pixels")
	fs.Float64Var(&c.zoom, "zoom", 1, "zoom factor")
	fs.Float64Var(&c.panX, "pan-x", 0, "horizontal pan in pixels")
	fs.Float64Var(&c.panY, "pan-y", 0, "vertical pan in pixels")
	fs.StringVar(&c.sel, "select", "", "comma separated object indices to select, the first is primary")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if c.width <= 0 || c.height <= 0 {
		return nil, fmt.Errorf("frame size must be positive, got %dx%d", c.width, c.height)
	}
	if c.output == "" {
		return nil, &UsageError{of: c}
	}
	c.project = c.root.projectPath(c.project)
	return c, nil
}

func parseSelection(s string, n int) ([]int, error) {
	var out []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		i, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("invalid object index %q: %w", part, err)
		}
		if i < 0 || i >= n {
			return nil, fmt.Errorf("object index %d out of range (project has %d objects)", i, n)
		}
		out = append(out, i)
	}
	return out, nil
}

func (c *renderCmd) Run() error {
	view := c.root.newView(c.width, c.height)
	st := appstate.New(
		appstate.WithProject(c.project),
		appstate.WithSize(c.width, c.height),
		appstate.WithView(view),
		appstate.WithCompositor(c.root.newCompositor()),
	)
	if _, err := os.Stat(c.project); errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("project %s does not exist", c.project)
	}
	if err := st.Reload(); err != nil {
		return fmt.Errorf("failed to load project: %w", err)
	}
	view.Zoom = max(view.MinZoom, min(c.zoom, view.MaxZoom))
	view.Pan.X, view.Pan.Y = c.panX, c.panY

	idx, err := parseSelection(c.sel, st.Store.Len())
	if err != nil {
		return err
	}
	if len(idx) > 0 {
		st.Store.SetSelected(idx)
		st.Store.SetPrimary(idx[0])
	}
	frame := st.Frame()

	if c.output == "-" {
		return png.Encode(c.stdout, frame)
	}
	f, err := os.Create(c.output)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", c.output, err)
	}
	if err := png.Encode(f, frame); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to encode %s: %w", c.output, err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "wrote %s\n", c.output)
	return nil
}
