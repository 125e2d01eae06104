package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Spectrum colours from quiet to loud
var spectrumColors = []lipgloss.Color{
	lipgloss.Color("#3A0000"),
	lipgloss.Color("#6B0000"),
	lipgloss.Color("#A40000"),
	lipgloss.Color("#C62828"),
	lipgloss.Color("#E0661A"),
	lipgloss.Color("#F08C1D"),
	lipgloss.Color("#F5A01D"),
	lipgloss.Color("#F8B31D"),
}

var spectrumBlocks = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// renderSpectrum draws bar heights in [0, 1] as two rows of block
// characters, at most width bars wide.
func renderSpectrum(barHeights []float64, width int) string {
	if len(barHeights) == 0 || width <= 0 {
		return ""
	}

	stride := max(1, len(barHeights)/width)
	heights := make([]float64, 0, width)
	for i := 0; i < len(barHeights) && len(heights) < width; i += stride {
		heights = append(heights, max(0, min(barHeights[i], 1)))
	}

	var top, bottom strings.Builder
	for _, h := range heights {
		style := lipgloss.NewStyle().Foreground(spectrumColors[levelIndex(h, len(spectrumColors))])

		if h > 0.5 {
			top.WriteString(style.Render(string(spectrumBlocks[levelIndex((h-0.5)*2, len(spectrumBlocks))])))
			bottom.WriteString(style.Render(string(spectrumBlocks[len(spectrumBlocks)-1])))
			continue
		}

		top.WriteString(" ")
		if h == 0 {
			bottom.WriteString(" ")
		} else {
			bottom.WriteString(style.Render(string(spectrumBlocks[levelIndex(h*2, len(spectrumBlocks))])))
		}
	}

	return top.String() + "\n" + bottom.String()
}

// levelIndex maps v in [0, 1] to an index into n levels.
func levelIndex(v float64, n int) int {
	return max(0, min(int(v*float64(n-1)), n-1))
}
