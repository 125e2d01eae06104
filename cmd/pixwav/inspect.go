package main

import (
	"fmt"
	"os"

	"github.com/linuxmatters/pixwav/internal/cli"
	"github.com/linuxmatters/pixwav/internal/codec"
)

// InspectCmd prints what a decode of the file would produce.
type InspectCmd struct {
	Input string `arg:"" name:"input" help:"File to inspect." type:"existingfile"`
}

func (c *InspectCmd) Run() error {
	buf, err := os.ReadFile(c.Input)
	if err != nil {
		return err
	}

	info, err := codec.Describe(buf)
	if err != nil {
		return fmt.Errorf("inspecting %s: %w", c.Input, err)
	}

	typ := info.Header.Type.String()
	if info.Degraded {
		typ += " (raw samples, fallback size)"
	}

	fields := []cli.Field{
		{Key: "File", Value: c.Input},
		{Key: "Type", Value: typ},
		{Key: "Size", Value: fmt.Sprintf("%dx%d", info.Header.Width, info.Header.Height)},
		{Key: "Samples", Value: fmt.Sprintf("%d", info.Samples)},
	}
	if info.SampleRate > 0 {
		fields = append(fields,
			cli.Field{Key: "Audio", Value: fmt.Sprintf("%d Hz %d-bit, %d channel(s)", info.SampleRate, info.BitsPerSample, info.Channels)},
			cli.Field{Key: "Duration", Value: cli.FormatDuration(info.Duration)},
		)
	}

	cli.PrintSummary("pixwav inspect", fields)
	return nil
}
