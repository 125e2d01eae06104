package renderer

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
)

// EncodePNG writes the current canvas contents as PNG.
func (c *Canvas) EncodePNG(w io.Writer) error {
	return png.Encode(w, c.img)
}

// SavePNG writes the current canvas contents to path.
func (c *Canvas) SavePNG(path string) error {
	return SavePNG(c.img, path)
}

// SavePNG encodes img to a new file at path.
func SavePNG(img image.Image, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode PNG: %w", err)
	}

	return f.Close()
}
