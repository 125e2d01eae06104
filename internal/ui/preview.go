package ui

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/linuxmatters/pixwav/internal/config"
	"golang.org/x/image/draw"
)

// PreviewConfig holds configuration for the image preview
type PreviewConfig struct {
	Width  int // Width in terminal cells
	Height int // Height in terminal cells; each cell shows two pixel rows
}

// DefaultPreviewConfig returns the preview size used by the decode view
func DefaultPreviewConfig() PreviewConfig {
	return PreviewConfig{
		Width:  config.PreviewWidth,
		Height: config.PreviewHeight,
	}
}

// previewBackground shows through pixels that have not been decoded yet
var previewBackground = color.RGBA{R: config.BackgroundR, G: config.BackgroundG, B: config.BackgroundB, A: 255}

// DownsampleFrame scales img to fit the preview, keeping its aspect ratio.
// The result has two pixel rows per terminal row.
func DownsampleFrame(img *image.RGBA, cfg PreviewConfig) [][]color.RGBA {
	srcW, srcH := img.Bounds().Dx(), img.Bounds().Dy()
	maxW, maxH := cfg.Width, cfg.Height*2
	if srcW == 0 || srcH == 0 || maxW <= 0 || maxH <= 0 {
		return nil
	}

	w, h := maxW, srcH*maxW/srcW
	if h > maxH {
		w, h = srcW*maxH/srcH, maxH
	}
	w, h = max(1, w), max(1, h)
	// Whole terminal rows
	h += h % 2

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(previewBackground), image.Point{}, draw.Src)
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Over, nil)

	grid := make([][]color.RGBA, h)
	for y := range grid {
		grid[y] = make([]color.RGBA, w)
		for x := range grid[y] {
			grid[y][x] = dst.RGBAAt(x, y)
		}
	}
	return grid
}

// RenderPreview converts a pixel grid to ANSI 24-bit colour, drawing two
// pixel rows per line with upper half blocks.
func RenderPreview(grid [][]color.RGBA) string {
	if len(grid) == 0 {
		return ""
	}

	var sb strings.Builder
	width := len(grid[0])

	sb.WriteString("┌" + strings.Repeat("─", width) + "┐\n")
	for y := 0; y < len(grid); y += 2 {
		sb.WriteString("│")
		for x := 0; x < width; x++ {
			top := grid[y][x]
			bottom := previewBackground
			if y+1 < len(grid) {
				bottom = grid[y+1][x]
			}
			// Foreground is the top pixel, background the bottom one
			fmt.Fprintf(&sb, "\x1b[38;2;%d;%d;%dm\x1b[48;2;%d;%d;%dm▀\x1b[0m",
				top.R, top.G, top.B, bottom.R, bottom.G, bottom.B)
		}
		sb.WriteString("│\n")
	}
	sb.WriteString("└" + strings.Repeat("─", width) + "┘")

	return sb.String()
}
