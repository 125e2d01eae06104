package codec

import (
	"fmt"
	"image"
	"image/color"

	"github.com/linuxmatters/pixwav/internal/config"
	"github.com/rs/zerolog/log"
	"golang.org/x/image/draw"
)

// Options configures Encode.
type Options struct {
	Type       FileType
	SampleRate int
}

// DefaultOptions encodes full colour at the default sample rate.
func DefaultOptions() Options {
	return Options{Type: RGB8, SampleRate: config.SampleRate}
}

// Encode converts img into a complete encoded WAV buffer. Pixels are
// written in row-major order, one sample per channel.
func Encode(img image.Image, opts Options) ([]byte, error) {
	if opts.Type == Unknown {
		opts.Type = RGB8
	}
	if !opts.Type.Known() {
		return nil, fmt.Errorf("encode as %s: %w", opts.Type, ErrUnsupportedImage)
	}
	if opts.SampleRate == 0 {
		opts.SampleRate = config.SampleRate
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("encode %dx%d image: %w", w, h, ErrUnsupportedImage)
	}
	if w > config.MaxDimension || h > config.MaxDimension {
		return nil, fmt.Errorf("encode %dx%d image: larger than %d pixels per side: %w",
			w, h, config.MaxDimension, ErrUnsupportedImage)
	}

	header := Header{Type: opts.Type, Width: uint32(w), Height: uint32(h)}
	channels := opts.Type.Channels()
	depth := opts.Type.Depth()

	payload := make([]byte, header.PayloadSize())
	samples := make([]int, 0, channels)
	i := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			samples = AppendSamples(samples[:0], pixelAt(img, x, y, channels), channels, depth)
			for _, a := range samples {
				PutSample(payload, i, a, depth)
				i++
			}
		}
	}

	log.Debug().
		Str("type", opts.Type.String()).
		Int("width", w).
		Int("height", h).
		Int("samples", i).
		Msg("Encoded image payload")

	return WriteWithRate(header, payload, opts.SampleRate)
}

// pixelAt converts the colour at (x, y). Gray types use the luma of the
// colour; colour types use its non-premultiplied channels.
func pixelAt(img image.Image, x, y int, channels int) Pixel {
	if channels == 1 {
		if g, ok := img.(*image.Gray); ok {
			return Gray(g.GrayAt(x, y).Y)
		}
		return Gray(color.GrayModel.Convert(img.At(x, y)).(color.Gray).Y)
	}
	c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
	return Pixel{R: c.R, G: c.G, B: c.B}
}

// Fit scales img down so neither side exceeds maxSide, keeping the aspect
// ratio. Images that already fit are returned unchanged.
func Fit(img image.Image, maxSide int) image.Image {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if maxSide <= 0 || (w <= maxSide && h <= maxSide) {
		return img
	}

	scale := float64(maxSide) / float64(max(w, h))
	dw := max(1, int(float64(w)*scale+0.5))
	dh := max(1, int(float64(h)*scale+0.5))

	dst := image.NewNRGBA(image.Rect(0, 0, dw, dh))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Src, nil)
	return dst
}
