// Package clipboard moves images and text between the canvas and the
// system clipboard.
package clipboard

import (
	"errors"
	"image"
)

// ErrEmpty is returned when the clipboard holds nothing the canvas can use.
var ErrEmpty = errors.New("clipboard is empty")

// Content is what a paste yields: an image, or text when no image is
// available.
type Content struct {
	Image image.Image
	Text  string
}

// IsImage reports whether the content is an image.
func (c Content) IsImage() bool { return c.Image != nil }

// Paste reads the clipboard, preferring image data over text.
func Paste() (Content, error) {
	img, err := ReadImage()
	if err == nil {
		return Content{Image: img}, nil
	}
	if !errors.Is(err, ErrEmpty) {
		return Content{}, err
	}
	text, err := ReadText()
	if err != nil {
		return Content{}, err
	}
	return Content{Text: text}, nil
}
