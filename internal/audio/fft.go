package audio

import (
	"fmt"
	"math"

	"github.com/argusdusty/gofft"
	"github.com/linuxmatters/pixwav/internal/config"
)

// ApplyHanning applies a Hanning window to the input data
func ApplyHanning(data []float64) []float64 {
	windowed := make([]float64, len(data))
	n := len(data)
	if n < 2 {
		copy(windowed, data)
		return windowed
	}
	for i := range data {
		window := 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(n-1)))
		windowed[i] = data[i] * window
	}
	return windowed
}

// BinFFT bins FFT coefficients into len(result) bars of roughly [0, 1].
// Only the lower three quarters of the positive spectrum are used.
func BinFFT(coeffs []complex128, sensitivity, baseScale float64, result []float64) {
	numBars := len(result)
	if numBars == 0 {
		return
	}

	halfSize := len(coeffs) / 2
	maxFreqBin := (halfSize * 3) / 4
	binsPerBar := max(1, maxFreqBin/numBars)

	for bar := range result {
		start := bar * binsPerBar
		end := min(start+binsPerBar, maxFreqBin)

		var sum float64
		for i := start; i < end; i++ {
			sum += math.Hypot(real(coeffs[i]), imag(coeffs[i]))
		}

		scaled := sum / float64(binsPerBar) * baseScale * sensitivity

		// Noise gate, then log scale for a more even visual spread
		if scaled < 0.01 {
			result[bar] = 0
		} else {
			result[bar] = math.Log10(1 + scaled*9)
		}
	}
}

// Processor runs windowed FFTs of config.FFTSize samples.
type Processor struct {
	padded []float64
}

// NewProcessor creates a new FFT processor
func NewProcessor() *Processor {
	return &Processor{padded: make([]float64, config.FFTSize)}
}

// ProcessChunk performs an FFT on up to FFTSize samples. Short chunks are
// windowed over their own length, then zero padded.
func (p *Processor) ProcessChunk(samples []float64) ([]complex128, error) {
	chunk := samples
	if len(chunk) > config.FFTSize {
		chunk = chunk[:config.FFTSize]
	}

	clear(p.padded)
	copy(p.padded, ApplyHanning(chunk))

	fftInput := gofft.Float64ToComplex128Array(p.padded)
	if err := gofft.FFT(fftInput); err != nil {
		return nil, fmt.Errorf("FFT failed: %w", err)
	}
	return fftInput, nil
}
