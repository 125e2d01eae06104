package cli

import "github.com/charmbracelet/lipgloss"

// Shared theme colours for consistent branding across CLI and TUI
var (
	BrandRed    = lipgloss.Color("#A40000") // Waveform red
	BrandYellow = lipgloss.Color("#F8B31D") // Caption yellow
	BrandOrange = lipgloss.Color("#F08C1D")
	SignalGray  = lipgloss.Color("#8A8A8A") // Subtle text
)
