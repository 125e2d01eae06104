package config

import (
	"fmt"
	"strconv"
	"strings"
)

// Audio settings
const (
	SampleRate = 44100 // Default sample rate written into encoded files
	FFTSize    = 2048
)

// Stage settings
const (
	// Fallback raster size used when a file's type cannot be detected
	MinStageWidth  = 256
	MinStageHeight = 256

	// Largest width or height the encoder accepts
	MaxDimension = 16384
)

// Decode view settings
const (
	FPS           = 30 // Playback clock polling rate
	NumBars       = 48 // Spectrum bars in the live view
	PreviewWidth  = 64 // Preview width in terminal cells
	PreviewHeight = 24 // Preview height in terminal cells (two pixel rows per cell)
)

// Waveform settings
const (
	WaveformWidth  = 1280
	WaveformHeight = 360
	WaveformMargin = 24
	CaptionSize    = 18.0 // Caption font size in points
)

// Appearance
const (
	// Waveform colour
	BarColorR = 164
	BarColorG = 0
	BarColorB = 0

	// Caption colour, brand yellow #F8B31D
	TextColorR = 248
	TextColorG = 179
	TextColorB = 29

	// Background #141414
	BackgroundR = 20
	BackgroundG = 20
	BackgroundB = 20
)

// RuntimeConfig holds optional overrides set from the command line.
// A colour override only applies when all three channels are set.
type RuntimeConfig struct {
	BarColorR *uint8
	BarColorG *uint8
	BarColorB *uint8

	TextColorR *uint8
	TextColorG *uint8
	TextColorB *uint8
}

// GetBarColor returns the waveform colour, falling back to the defaults.
func (c *RuntimeConfig) GetBarColor() (r, g, b uint8) {
	if c == nil || c.BarColorR == nil || c.BarColorG == nil || c.BarColorB == nil {
		return BarColorR, BarColorG, BarColorB
	}
	return *c.BarColorR, *c.BarColorG, *c.BarColorB
}

// GetTextColor returns the caption colour, falling back to the defaults.
func (c *RuntimeConfig) GetTextColor() (r, g, b uint8) {
	if c == nil || c.TextColorR == nil || c.TextColorG == nil || c.TextColorB == nil {
		return TextColorR, TextColorG, TextColorB
	}
	return *c.TextColorR, *c.TextColorG, *c.TextColorB
}

// SetBarColor parses a hex colour and stores it as the waveform colour.
func (c *RuntimeConfig) SetBarColor(hex string) error {
	r, g, b, err := ParseHexColor(hex)
	if err != nil {
		return err
	}
	c.BarColorR, c.BarColorG, c.BarColorB = &r, &g, &b
	return nil
}

// SetTextColor parses a hex colour and stores it as the caption colour.
func (c *RuntimeConfig) SetTextColor(hex string) error {
	r, g, b, err := ParseHexColor(hex)
	if err != nil {
		return err
	}
	c.TextColorR, c.TextColorG, c.TextColorB = &r, &g, &b
	return nil
}

// ParseHexColor parses "RRGGBB" or "#RRGGBB" into its channels.
func ParseHexColor(s string) (r, g, b uint8, err error) {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 {
		return 0, 0, 0, fmt.Errorf("invalid hex colour %q: want 6 hex digits", s)
	}

	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid hex colour %q: %w", s, err)
	}

	return uint8(v >> 16), uint8(v >> 8), uint8(v), nil
}
