package renderer

import (
	"image"
	"image/color"

	"github.com/linuxmatters/pixwav/internal/codec"
)

// Canvas is the raster surface a decode paints into. Pixels that have not
// been written stay fully transparent.
type Canvas struct {
	img     *image.RGBA
	written int
}

// NewCanvas creates a blank canvas.
func NewCanvas(width, height int) *Canvas {
	return &Canvas{img: image.NewRGBA(image.Rect(0, 0, width, height))}
}

// Set writes an opaque pixel. Writes outside the canvas are ignored.
func (c *Canvas) Set(x, y int, p codec.Pixel) {
	if !(image.Point{X: x, Y: y}.In(c.img.Rect)) {
		return
	}
	c.img.SetRGBA(x, y, color.RGBA{R: p.R, G: p.G, B: p.B, A: 255})
	c.written++
}

// Clear erases every pixel.
func (c *Canvas) Clear() {
	clear(c.img.Pix)
	c.written = 0
}

// Resize replaces the canvas with a blank one of the given size.
func (c *Canvas) Resize(width, height int) {
	if c.img.Rect.Dx() == width && c.img.Rect.Dy() == height {
		c.Clear()
		return
	}
	c.img = image.NewRGBA(image.Rect(0, 0, width, height))
	c.written = 0
}

// Written returns the number of pixel writes since the last clear.
func (c *Canvas) Written() int {
	return c.written
}

// Bounds returns the canvas size.
func (c *Canvas) Bounds() image.Rectangle {
	return c.img.Rect
}

// Image returns the backing image. It aliases the canvas.
func (c *Canvas) Image() *image.RGBA {
	return c.img
}
