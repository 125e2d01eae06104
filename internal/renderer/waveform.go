package renderer

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"github.com/linuxmatters/pixwav/internal/config"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

// LoadFont returns a face of the embedded Go Regular font at size points.
func LoadFont(size float64) (font.Face, error) {
	f, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}

	return truetype.NewFace(f, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	}), nil
}

// RenderWaveform draws normalized samples ([-1, 1]) as a min/max envelope,
// one column per horizontal pixel, with caption in the top-left corner.
func RenderWaveform(samples []float64, caption string, rc *config.RuntimeConfig) (*image.RGBA, error) {
	const (
		width  = config.WaveformWidth
		height = config.WaveformHeight
		margin = config.WaveformMargin
	)

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	bg := color.RGBA{R: config.BackgroundR, G: config.BackgroundG, B: config.BackgroundB, A: 255}
	draw.Draw(img, img.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)

	r, g, b := rc.GetBarColor()
	barColor := color.RGBA{R: r, G: g, B: b, A: 255}

	plotWidth := width - 2*margin
	centerY := height / 2
	halfHeight := float64(height/2 - margin)

	// Centre line
	for x := margin; x < width-margin; x++ {
		img.SetRGBA(x, centerY, color.RGBA{R: r / 2, G: g / 2, B: b / 2, A: 255})
	}

	for col := 0; col < plotWidth && len(samples) > 0; col++ {
		start := col * len(samples) / plotWidth
		end := (col + 1) * len(samples) / plotWidth
		if end <= start {
			end = start + 1
		}
		if end > len(samples) {
			end = len(samples)
		}

		lo, hi := samples[start], samples[start]
		for _, s := range samples[start:end] {
			lo = min(lo, s)
			hi = max(hi, s)
		}

		top := centerY - int(clampUnit(hi)*halfHeight)
		bottom := centerY - int(clampUnit(lo)*halfHeight)
		for y := top; y <= bottom; y++ {
			img.SetRGBA(margin+col, y, barColor)
		}
	}

	if caption != "" {
		face, err := LoadFont(config.CaptionSize)
		if err != nil {
			return nil, err
		}
		defer face.Close()
		drawCaption(img, face, caption, rc)
	}

	return img, nil
}

// drawCaption draws text with its top edge at the margin.
func drawCaption(img *image.RGBA, face font.Face, text string, rc *config.RuntimeConfig) {
	r, g, b := rc.GetTextColor()
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.RGBA{R: r, G: g, B: b, A: 255}),
		Face: face,
	}

	ascent := face.Metrics().Ascent.Ceil()
	d.Dot = freetype.Pt(config.WaveformMargin, config.WaveformMargin+ascent)
	d.DrawString(text)
}

func clampUnit(v float64) float64 {
	if v < -1 {
		return -1
	}
	if v > 1 {
		return 1
	}
	return v
}
