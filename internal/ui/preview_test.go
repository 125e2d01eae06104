package ui

import (
	"image"
	"image/color"
	"strings"
	"testing"
)

func TestDownsampleFrameKeepsAspect(t *testing.T) {
	tests := []struct {
		name         string
		srcW, srcH   int
		wantW, wantH int
	}{
		{name: "square", srcW: 100, srcH: 100, wantW: 20, wantH: 20},
		{name: "wide", srcW: 400, srcH: 100, wantW: 20, wantH: 6},
		{name: "tall", srcW: 50, srcH: 200, wantW: 5, wantH: 20},
		{name: "tiny", srcW: 1, srcH: 1, wantW: 20, wantH: 20},
	}

	cfg := PreviewConfig{Width: 20, Height: 10}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			grid := DownsampleFrame(image.NewRGBA(image.Rect(0, 0, tt.srcW, tt.srcH)), cfg)
			if len(grid) != tt.wantH || len(grid[0]) != tt.wantW {
				t.Errorf("grid = %dx%d, want %dx%d", len(grid[0]), len(grid), tt.wantW, tt.wantH)
			}
		})
	}
}

func TestDownsampleFrameBackground(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 10, 10))
	// Left half decoded white, right half not yet written
	for y := 0; y < 10; y++ {
		for x := 0; x < 5; x++ {
			img.SetRGBA(x, y, color.RGBA{R: 255, G: 255, B: 255, A: 255})
		}
	}

	grid := DownsampleFrame(img, PreviewConfig{Width: 10, Height: 5})

	if got := grid[4][0]; got.R != 255 || got.A != 255 {
		t.Errorf("decoded pixel = %+v, want white", got)
	}
	if got := grid[4][9]; got != previewBackground {
		t.Errorf("undecoded pixel = %+v, want background %+v", got, previewBackground)
	}
}

func TestDownsampleFrameEmpty(t *testing.T) {
	if grid := DownsampleFrame(image.NewRGBA(image.Rectangle{}), DefaultPreviewConfig()); grid != nil {
		t.Errorf("empty image gave %d rows, want none", len(grid))
	}
}

func TestRenderPreview(t *testing.T) {
	grid := [][]color.RGBA{
		{{R: 1, G: 2, B: 3, A: 255}, {R: 4, G: 5, B: 6, A: 255}},
		{{R: 7, G: 8, B: 9, A: 255}, {R: 10, G: 11, B: 12, A: 255}},
	}

	out := RenderPreview(grid)
	lines := strings.Split(out, "\n")

	// Border, one row of half blocks, border
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3:\n%s", len(lines), out)
	}
	if lines[0] != "┌──┐" || lines[2] != "└──┘" {
		t.Errorf("borders = %q, %q", lines[0], lines[2])
	}
	if !strings.Contains(lines[1], "\x1b[38;2;1;2;3m\x1b[48;2;7;8;9m▀") {
		t.Errorf("first cell should pair pixel rows 0 and 1: %q", lines[1])
	}
	if strings.Count(lines[1], "▀") != 2 {
		t.Errorf("want 2 cells, got %q", lines[1])
	}

	if RenderPreview(nil) != "" {
		t.Error("RenderPreview(nil) should be empty")
	}
}

func TestRenderSpectrum(t *testing.T) {
	out := renderSpectrum([]float64{0, 0.25, 1, 2}, 10)
	rows := strings.Split(out, "\n")
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}

	// Loud bars reach the top row; silence leaves both rows blank
	if !strings.Contains(rows[0], "█") {
		t.Errorf("top row has no full block: %q", rows[0])
	}
	if !strings.HasPrefix(rows[1], " ") {
		t.Errorf("silent bar should be blank: %q", rows[1])
	}

	if renderSpectrum(nil, 10) != "" || renderSpectrum([]float64{1}, 0) != "" {
		t.Error("empty input should render nothing")
	}
}
