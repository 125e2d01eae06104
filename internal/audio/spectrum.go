package audio

import (
	"math"

	"github.com/linuxmatters/pixwav/internal/config"
)

// Spectrum produces bar heights for the audio under the playback position.
// Gain adapts to the loudest frame seen so far.
type Spectrum struct {
	clip      *Clip
	processor *Processor
	bars      []float64
	peak      float64
}

// NewSpectrum creates a spectrum of numBars bars over clip.
func NewSpectrum(clip *Clip, numBars int) *Spectrum {
	return &Spectrum{
		clip:      clip,
		processor: NewProcessor(),
		bars:      make([]float64, numBars),
	}
}

// At returns bar heights for the window ending at seconds. The slice is
// reused by the next call.
func (s *Spectrum) At(seconds float64) ([]float64, error) {
	end := int(seconds * float64(s.clip.SampleRate))
	end = max(0, min(end, len(s.clip.Samples)))
	start := max(0, end-config.FFTSize)

	coeffs, err := s.processor.ProcessChunk(s.clip.Samples[start:end])
	if err != nil {
		return nil, err
	}

	var framePeak float64
	for _, c := range coeffs[:len(coeffs)/2] {
		framePeak = max(framePeak, math.Hypot(real(c), imag(c)))
	}
	s.peak = max(s.peak, framePeak)

	baseScale := 0.0
	if s.peak > 0 {
		baseScale = 0.85 / s.peak
	}
	BinFFT(coeffs, 1.0, baseScale, s.bars)
	return s.bars, nil
}
