// Package speaker plays decoded audio through the system output and exposes
// the playback position as a clock.
package speaker

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"sync/atomic"

	"github.com/ebitengine/oto/v3"
	"github.com/linuxmatters/pixwav/internal/audio"
	"github.com/rs/zerolog/log"
)

const bytesPerSample = 2 // Output is always mono signed 16-bit

// Player plays a clip once and tracks how much of it has been heard.
type Player struct {
	otoCtx   *oto.Context
	player   *oto.Player
	src      *countingReader
	rate     int
	duration float64
}

// countingReader records how many bytes the device has pulled.
type countingReader struct {
	r io.Reader
	n atomic.Int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n.Add(int64(n))
	return n, err
}

// Play starts playing clip at volume (0 to 1). Only one Player may exist
// per process.
func Play(clip *audio.Clip, volume float64) (*Player, error) {
	if clip.SampleRate <= 0 {
		return nil, fmt.Errorf("cannot play audio at %d Hz", clip.SampleRate)
	}

	op := &oto.NewContextOptions{
		SampleRate:   clip.SampleRate,
		ChannelCount: 1,
		Format:       oto.FormatSignedInt16LE,
	}

	otoCtx, readyChan, err := oto.NewContext(op)
	if err != nil {
		return nil, fmt.Errorf("failed to create oto context: %w", err)
	}
	<-readyChan

	src := &countingReader{r: &pcmReader{samples: clip.Samples}}
	p := &Player{
		otoCtx:   otoCtx,
		player:   otoCtx.NewPlayer(src),
		src:      src,
		rate:     clip.SampleRate,
		duration: clip.Duration(),
	}
	p.player.SetVolume(max(0, min(volume, 1)))
	p.player.Play()

	log.Debug().
		Int("sample_rate", clip.SampleRate).
		Float64("duration", p.duration).
		Msg("Audio output started")

	return p, nil
}

// Position returns the time heard so far: bytes pulled by the device minus
// bytes still queued in its buffer.
func (p *Player) Position() (current, duration float64) {
	played := p.src.n.Load() - int64(p.player.BufferedSize())
	current = float64(max(0, played)) / float64(bytesPerSample*p.rate)
	return min(current, p.duration), p.duration
}

// Done reports whether the whole clip has been played.
func (p *Player) Done() bool {
	return !p.player.IsPlaying()
}

// Close stops playback and suspends the output device.
func (p *Player) Close() error {
	if err := p.player.Close(); err != nil {
		return fmt.Errorf("failed to close player: %w", err)
	}
	return p.otoCtx.Suspend()
}

// pcmReader streams normalized samples as signed 16-bit little endian.
type pcmReader struct {
	samples []float64
	pos     int
}

func (r *pcmReader) Read(p []byte) (int, error) {
	if r.pos >= len(r.samples) {
		return 0, io.EOF
	}

	n := 0
	for n+bytesPerSample <= len(p) && r.pos < len(r.samples) {
		v := int16(math.Round(max(-1, min(r.samples[r.pos], 1)) * math.MaxInt16))
		binary.LittleEndian.PutUint16(p[n:], uint16(v))
		n += bytesPerSample
		r.pos++
	}
	return n, nil
}
