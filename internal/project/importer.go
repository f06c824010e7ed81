package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/example/glassboard/internal/scene"
)

// ErrUnsupported reports a file type that cannot become a canvas object.
var ErrUnsupported = errors.New("unsupported file type")

var imageExts = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".bmp": true, ".gif": true, ".webp": true,
}

var codeExts = map[string]bool{
	".py": true, ".c": true, ".cpp": true, ".h": true, ".hpp": true,
	".js": true, ".ts": true, ".html": true, ".css": true, ".json": true,
	".xml": true, ".java": true, ".txt": true, ".sh": true,
}

// Supported reports whether Import accepts path.
func Supported(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return imageExts[ext] || codeExts[ext] || ext == ".md"
}

// Import turns a file into an object centred on the origin. Images are
// fitted to scene.ImageMaxSide, Markdown and source files keep their text
// and are titled with the file name.
func Import(path string) (*scene.Object, error) {
	ext := strings.ToLower(filepath.Ext(path))
	base := filepath.Base(path)
	switch {
	case imageExts[ext]:
		img, err := DecodeImage(path)
		if err != nil {
			return nil, fmt.Errorf("import %s: %w", path, err)
		}
		o := scene.NewImage(img, 0, 0)
		o.SourcePath = path
		o.Title = base
		return o, nil
	case ext == ".md", codeExts[ext]:
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("import %s: %w", path, err)
		}
		kind := scene.Markdown
		if ext != ".md" {
			kind = scene.Code
		}
		o := scene.New(kind, 0, 0)
		o.Title = base
		o.SetText(strings.ReplaceAll(string(b), "\r\n", "\n"))
		if kind == scene.Code {
			o.Ext = strings.TrimPrefix(ext, ".")
		}
		return o, nil
	}
	return nil, fmt.Errorf("import %s: %w", path, ErrUnsupported)
}
