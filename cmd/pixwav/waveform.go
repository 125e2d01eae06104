package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/linuxmatters/pixwav/internal/audio"
	"github.com/linuxmatters/pixwav/internal/cli"
	"github.com/linuxmatters/pixwav/internal/config"
	"github.com/linuxmatters/pixwav/internal/renderer"
)

// WaveformCmd renders a WAV file's audio as an image.
type WaveformCmd struct {
	Input     string `arg:"" name:"input" help:"WAV file to draw." type:"existingfile"`
	Output    string `short:"o" help:"Output PNG. Defaults to the input name with a .png extension." type:"path"`
	Caption   string `help:"Caption drawn in the corner. Defaults to the file name."`
	NoCaption bool   `help:"Draw no caption."`
	BarColor  string `help:"Waveform colour as hex RRGGBB." env:"PIXWAV_BAR_COLOR"`
	TextColor string `help:"Caption colour as hex RRGGBB." env:"PIXWAV_TEXT_COLOR"`
}

func (c *WaveformCmd) Run() error {
	rc := &config.RuntimeConfig{}
	if c.BarColor != "" {
		if err := rc.SetBarColor(c.BarColor); err != nil {
			return err
		}
	}
	if c.TextColor != "" {
		if err := rc.SetTextColor(c.TextColor); err != nil {
			return err
		}
	}

	buf, err := os.ReadFile(c.Input)
	if err != nil {
		return err
	}
	clip, err := audio.ReadSamples(buf)
	if err != nil {
		return fmt.Errorf("reading %s: %w", c.Input, err)
	}

	caption := c.Caption
	if caption == "" {
		caption = filepath.Base(c.Input)
	}
	if c.NoCaption {
		caption = ""
	}

	img, err := renderer.RenderWaveform(clip.Samples, caption, rc)
	if err != nil {
		return err
	}

	output := c.Output
	if output == "" {
		output = strings.TrimSuffix(c.Input, filepath.Ext(c.Input)) + ".png"
	}
	if err := renderer.SavePNG(img, output); err != nil {
		return err
	}

	cli.PrintSuccess(fmt.Sprintf("Waveform written to %s", output))
	return nil
}
