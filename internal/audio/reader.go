package audio

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// ErrInvalidWAV is returned for buffers that are not PCM WAV files.
var ErrInvalidWAV = errors.New("invalid WAV file")

// Clip is decoded mono audio with samples normalized to [-1, 1].
type Clip struct {
	Samples    []float64
	SampleRate int
	BitDepth   int
	Channels   int // Channels in the source before downmixing
}

// Duration returns the clip length in seconds.
func (c *Clip) Duration() float64 {
	if c.SampleRate == 0 {
		return 0
	}
	return float64(len(c.Samples)) / float64(c.SampleRate)
}

// ReadSamples decodes a WAV buffer, downmixing to mono. Unknown chunks,
// including the image chunk of an encoded file, are skipped.
func ReadSamples(buf []byte) (*Clip, error) {
	decoder := wav.NewDecoder(bytes.NewReader(buf))
	if !decoder.IsValidFile() {
		return nil, ErrInvalidWAV
	}

	pcm, err := decoder.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to read PCM data: %w", err)
	}

	channels := pcm.Format.NumChannels
	if channels <= 0 {
		return nil, fmt.Errorf("%d channels: %w", channels, ErrInvalidWAV)
	}

	bitDepth := int(decoder.BitDepth)
	clip := &Clip{
		Samples:    Downmix(Normalize(pcm.Data, bitDepth), channels),
		SampleRate: pcm.Format.SampleRate,
		BitDepth:   bitDepth,
		Channels:   channels,
	}
	return clip, nil
}

// Normalize scales integer PCM samples to [-1, 1]. 8-bit PCM is unsigned
// with silence at 128.
func Normalize(data []int, bitDepth int) []float64 {
	samples := make([]float64, len(data))
	if bitDepth == 8 {
		for i, s := range data {
			samples[i] = float64(s-128) / 128
		}
		return samples
	}

	maxVal := float64(audio.IntMaxSignedValue(bitDepth))
	for i, s := range data {
		samples[i] = max(-1, float64(s)/maxVal)
	}
	return samples
}

// Downmix averages interleaved frames into a single channel.
func Downmix(samples []float64, channels int) []float64 {
	if channels <= 1 {
		return samples
	}

	mono := make([]float64, len(samples)/channels)
	for i := range mono {
		var sum float64
		for _, s := range samples[i*channels : (i+1)*channels] {
			sum += s
		}
		mono[i] = sum / float64(channels)
	}
	return mono
}

// FromBytes treats raw bytes as unsigned 8-bit mono samples, the way a
// buffer without a WAV header is decoded.
func FromBytes(buf []byte, sampleRate int) *Clip {
	data := make([]int, len(buf))
	for i, b := range buf {
		data[i] = int(b)
	}
	return &Clip{
		Samples:    Normalize(data, 8),
		SampleRate: sampleRate,
		BitDepth:   8,
		Channels:   1,
	}
}
