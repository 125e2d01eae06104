package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/linuxmatters/pixwav/internal/audio"
	"github.com/linuxmatters/pixwav/internal/cli"
	"github.com/linuxmatters/pixwav/internal/codec"
	"github.com/linuxmatters/pixwav/internal/config"
	"github.com/linuxmatters/pixwav/internal/playback"
	"github.com/linuxmatters/pixwav/internal/playback/speaker"
	"github.com/linuxmatters/pixwav/internal/renderer"
	"github.com/linuxmatters/pixwav/internal/scheduler"
	"github.com/linuxmatters/pixwav/internal/ui"
	"github.com/rs/zerolog/log"
)

// DecodeCmd paints a file's image in step with its playback.
type DecodeCmd struct {
	Input     string  `arg:"" name:"input" help:"WAV file to decode." type:"existingfile"`
	Output    string  `short:"o" help:"Save the decoded image as PNG when playback finishes." type:"path"`
	Play      bool    `help:"Play the audio through the speakers and follow its position." env:"PIXWAV_PLAY"`
	Volume    float64 `help:"Playback volume from 0 to 1." default:"0.5" env:"PIXWAV_VOLUME"`
	Speed     float64 `help:"Silent playback speed multiplier." default:"1" env:"PIXWAV_SPEED"`
	NoPreview bool    `help:"Disable the image preview during decoding."`
	NoTUI     bool    `name:"no-tui" help:"Decode without the interactive view."`
}

func (c *DecodeCmd) Run() error {
	buf, err := os.ReadFile(c.Input)
	if err != nil {
		return err
	}

	typ := codec.Detect(buf)
	header, err := codec.Parse(buf, typ)
	if err != nil {
		return fmt.Errorf("reading header of %s: %w", c.Input, err)
	}
	if typ == codec.Unknown {
		log.Warn().Str("file", c.Input).Msg("No image chunk found, decoding raw samples")
		cli.PrintWarning(fmt.Sprintf("%s has no image chunk; decoding raw samples at %dx%d",
			c.Input, header.Width, header.Height))
	}

	clip, err := audio.ReadSamples(buf)
	if err != nil {
		log.Debug().Err(err).Msg("Not a WAV file, timing from raw bytes")
		clip = audio.FromBytes(buf, config.SampleRate)
	}

	canvas := renderer.NewCanvas(int(header.Width), int(header.Height))
	sched := scheduler.New(canvas)

	var saveErr error
	if c.Output != "" {
		sched.OnFinished(func(r scheduler.Result) {
			saveErr = canvas.SavePNG(c.Output)
		})
	}

	if err := sched.Start(buf, header); err != nil {
		return fmt.Errorf("starting decode of %s: %w", c.Input, err)
	}

	clock, output, err := c.openClock(clip)
	if err != nil {
		return err
	}
	defer clock.Close()

	info := ui.DecodeInfo{
		FileName: filepath.Base(c.Input),
		Type:     header.Type.String(),
		Width:    int(header.Width),
		Height:   int(header.Height),
		Degraded: typ == codec.Unknown,
		Output:   output,
	}
	if c.NoTUI {
		err = c.runHeadless(sched, clock, info)
	} else {
		err = c.runTUI(sched, canvas, clock, clip, info)
	}
	if err != nil {
		return err
	}

	if saveErr != nil {
		return fmt.Errorf("saving decoded image: %w", saveErr)
	}
	if c.Output != "" && sched.State() == scheduler.Finished {
		cli.PrintSuccess(fmt.Sprintf("Image written to %s", c.Output))
	}
	return nil
}

// openClock returns the clock that paces the decode and a label for it.
func (c *DecodeCmd) openClock(clip *audio.Clip) (playback.Clock, string, error) {
	if !c.Play {
		return playback.NewWallClock(clip.Duration(), c.Speed), fmt.Sprintf("silent %.1fx", c.Speed), nil
	}

	if c.Speed != 1 {
		cli.PrintWarning("--speed is ignored when playing through the speakers")
	}
	player, err := speaker.Play(clip, c.Volume)
	if err != nil {
		return nil, "", fmt.Errorf("starting audio output: %w", err)
	}
	return player, "speaker", nil
}

func (c *DecodeCmd) runHeadless(sched *scheduler.Scheduler, clock playback.Clock, info ui.DecodeInfo) error {
	cli.PrintBanner()
	cli.PrintInfo("Input", info.FileName)
	cli.PrintInfo("Image", fmt.Sprintf("%s %dx%d", info.Type, info.Width, info.Height))
	cli.PrintInfo("Clock", info.Output)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := playback.Drive(ctx, sched, clock, time.Second/config.FPS)
	if errors.Is(err, context.Canceled) {
		cli.PrintWarning("decode interrupted")
		return nil
	}
	if err != nil {
		return err
	}

	p := sched.Progress()
	cli.PrintSuccess(fmt.Sprintf("Decoded %d pixels from %d samples", p.PixelsWritten, p.SamplesConsumed))
	return nil
}

func (c *DecodeCmd) runTUI(sched *scheduler.Scheduler, canvas *renderer.Canvas, clock playback.Clock, clip *audio.Clip, info ui.DecodeInfo) error {
	model := ui.NewDecodeModel(sched, canvas, clock, audio.NewSpectrum(clip, config.NumBars), info, c.NoPreview)

	if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("running UI: %w", err)
	}

	if err := model.Err(); err != nil {
		return err
	}
	if model.Cancelled() {
		cli.PrintWarning("decode stopped before the end")
		return nil
	}
	fmt.Print(model.CompletionSummary())
	return nil
}
