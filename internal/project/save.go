package project

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/example/glassboard/internal/scene"
)

const (
	imageDir   = "imagenes"
	drawingDir = "drawings"
)

// Save writes store to path and its assets beside it: image files are
// copied into imagenes/ and drawing strokes go to drawings/ as JSON.
// Images without a source file are encoded as PNG and their SourcePath is
// updated to the written file. Asset failures are reported as warnings;
// an error is returned only when the project file itself cannot be
// written.
func Save(store *scene.Store, path string) (*Report, error) {
	dir := filepath.Dir(path)
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	rep := &Report{Path: path}
	w := &saver{dir: dir, report: rep}

	var sb strings.Builder
	fmt.Fprintf(&sb, "# Glassboard project: %s\n# Generated by glassboard\n\n", name)
	for i, o := range store.Objects() {
		w.object(&sb, i, o)
		sb.WriteString("\n")
	}
	rep.Objects = store.Len()

	if err := os.WriteFile(path, []byte(sb.String()), 0o644); err != nil {
		return rep, fmt.Errorf("save %s: %w", path, err)
	}
	return rep, nil
}

type saver struct {
	dir    string
	report *Report
}

func (w *saver) object(sb *strings.Builder, i int, o *scene.Object) {
	title := o.Title
	if title == "" {
		title = fmt.Sprintf("Object %d", i)
	}
	fmt.Fprintf(sb, "> [%s] %s\n", o.Kind.Tag(), title)
	fmt.Fprintf(sb, "  x: %.2f\n", o.X)
	fmt.Fprintf(sb, "  y: %.2f\n", o.Y)
	if v, ok := o.W.Get(); ok {
		fmt.Fprintf(sb, "  w: %.2f\n", v)
	}
	if v, ok := o.H.Get(); ok {
		fmt.Fprintf(sb, "  h: %.2f\n", v)
	}
	if c, ok := o.Tint.Get(); ok {
		fmt.Fprintf(sb, "  color: %d,%d,%d,%d\n", c.R, c.G, c.B, c.A)
	}

	switch o.Kind {
	case scene.Window, scene.Text, scene.Markdown, scene.Code:
		if o.Kind == scene.Code && o.Ext != "" {
			fmt.Fprintf(sb, "  ext: %s\n", o.Ext)
		}
		key := "content"
		if o.Kind == scene.Text {
			key = "text"
		}
		fmt.Fprintf(sb, "  %s: |\n", key)
		for _, line := range strings.Split(o.Text, "\n") {
			sb.WriteString("    ")
			sb.WriteString(line)
			sb.WriteString("\n")
		}
	case scene.Image:
		if ref := w.image(i, o); ref != "" {
			fmt.Fprintf(sb, "  path: %s\n", ref)
		}
	case scene.Drawing:
		if ref := w.drawing(i, o); ref != "" {
			fmt.Fprintf(sb, "  path: %s\n", ref)
		}
	}
}

// image returns the path reference to write for an Image object.
func (w *saver) image(i int, o *scene.Object) string {
	if o.SourcePath != "" {
		if _, err := os.Stat(o.SourcePath); err != nil {
			return w.rel(o.SourcePath)
		}
		name := filepath.Base(o.SourcePath)
		dest := filepath.Join(w.dir, imageDir, name)
		if err := copyInto(o.SourcePath, dest); err != nil {
			w.report.warn(0, AssetWriteFailure, "object %d: copy %s: %v", i, o.SourcePath, err)
			return o.SourcePath
		}
		return imageDir + "/" + name
	}
	if o.Pixels == nil {
		return ""
	}
	name := "pasted-" + o.ID + ".png"
	dest := filepath.Join(w.dir, imageDir, name)
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		w.report.warn(0, AssetWriteFailure, "object %d: %v", i, err)
		return ""
	}
	if err := writePNG(dest, o.Pixels); err != nil {
		w.report.warn(0, AssetWriteFailure, "object %d: write %s: %v", i, dest, err)
		return ""
	}
	o.SourcePath = dest
	return imageDir + "/" + name
}

func (w *saver) drawing(i int, o *scene.Object) string {
	if o.MissingAsset && len(o.Strokes) == 0 && o.SourcePath != "" {
		// Nothing was loaded, so keep pointing at the original sidecar.
		return w.rel(o.SourcePath)
	}
	name := fmt.Sprintf("drawing_%d.json", i)
	dest := filepath.Join(w.dir, drawingDir, name)
	err := os.MkdirAll(filepath.Dir(dest), 0o755)
	if err == nil {
		err = writeStrokes(dest, o.Strokes)
	}
	if err != nil {
		w.report.warn(0, AssetWriteFailure, "object %d: write %s: %v", i, dest, err)
		if o.SourcePath != "" {
			return w.rel(o.SourcePath)
		}
		return ""
	}
	return drawingDir + "/" + name
}

// rel expresses p relative to the project directory when it lies inside
// it.
func (w *saver) rel(p string) string {
	r, err := filepath.Rel(w.dir, p)
	if err != nil || strings.HasPrefix(r, "..") {
		return p
	}
	return filepath.ToSlash(r)
}

func copyInto(src, dest string) error {
	if same(src, dest) {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return err
	}
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

func same(a, b string) bool {
	sa, err := os.Stat(a)
	if err != nil {
		return false
	}
	sb, err := os.Stat(b)
	if err != nil {
		return false
	}
	return os.SameFile(sa, sb)
}
