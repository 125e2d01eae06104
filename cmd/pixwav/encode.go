package main

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/linuxmatters/pixwav/internal/cli"
	"github.com/linuxmatters/pixwav/internal/codec"
	"github.com/rs/zerolog/log"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// EncodeCmd writes an image as an encoded WAV file.
type EncodeCmd struct {
	Input      string `arg:"" name:"input" help:"Image to encode (PNG, JPEG, GIF, BMP, TIFF or WebP)." type:"existingfile"`
	Output     string `short:"o" help:"Output WAV file. Defaults to the input name with a .wav extension." type:"path"`
	Type       string `help:"Sample layout: gray8, rgb8, gray16 or rgb16." default:"rgb8" enum:"gray8,rgb8,gray16,rgb16" env:"PIXWAV_TYPE"`
	SampleRate int    `help:"Sample rate written to the file in Hz. Sets the playback speed." default:"44100" env:"PIXWAV_SAMPLE_RATE"`
	MaxSide    int    `help:"Scale images down so neither side exceeds this many pixels (0 keeps the original size)." default:"0" env:"PIXWAV_MAX_SIDE"`
}

func (c *EncodeCmd) Run() error {
	start := time.Now()

	typ, err := codec.ParseFileType(c.Type)
	if err != nil {
		return err
	}

	img, err := readImage(c.Input)
	if err != nil {
		return err
	}
	img = codec.Fit(img, c.MaxSide)

	buf, err := codec.Encode(img, codec.Options{Type: typ, SampleRate: c.SampleRate})
	if err != nil {
		return fmt.Errorf("encoding %s: %w", c.Input, err)
	}

	output := c.Output
	if output == "" {
		output = strings.TrimSuffix(c.Input, filepath.Ext(c.Input)) + ".wav"
	}
	if err := os.WriteFile(output, buf, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", output, err)
	}

	info, err := codec.Describe(buf)
	if err != nil {
		return err
	}
	log.Info().
		Str("input", c.Input).
		Str("output", output).
		Dur("elapsed", time.Since(start)).
		Msg("Encode finished")

	cli.PrintSummary("✓ Encode Complete!", []cli.Field{
		{Key: "Output", Value: output},
		{Key: "Image", Value: fmt.Sprintf("%s %dx%d", info.Header.Type, info.Header.Width, info.Header.Height)},
		{Key: "Audio", Value: fmt.Sprintf("%d Hz %d-bit mono", info.SampleRate, info.BitsPerSample)},
		{Key: "Duration", Value: cli.FormatDuration(info.Duration)},
		{Key: "Size", Value: cli.FormatBytes(int64(len(buf)))},
	})
	return nil
}

func readImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding image %s: %w", path, err)
	}
	log.Debug().Str("format", format).Str("path", path).Msg("Image loaded")
	return img, nil
}
