package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

const (
	appName    = "pixwav"
	appTagline = "Turn images into WAV files and paint them back, one sample at a time."
)

// Color palette
var (
	successColor = lipgloss.Color("#4A9B4A")
	textColor    = lipgloss.Color("#FFFFFF")
)

// Styles
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(BrandRed).
			MarginBottom(1)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(SignalGray).
			Italic(true)

	SuccessStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(successColor)

	ErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(BrandRed)

	// Highlight style for important values
	HighlightStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(BrandYellow)

	KeyStyle = lipgloss.NewStyle().
			Foreground(SignalGray)

	ValueStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(textColor)

	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(BrandRed).
			Padding(1, 2)
)

// FormatBanner returns the application name over its tagline.
func FormatBanner() string {
	return TitleStyle.Render(appName) + "\n" + SubtitleStyle.Render(appTagline)
}

// PrintBanner prints the application banner
func PrintBanner() {
	fmt.Println(FormatBanner())
	fmt.Println()
}

// PrintVersion prints version information
func PrintVersion(version string) {
	fmt.Println(TitleStyle.Render(appName))
	fmt.Printf("%s %s\n", KeyStyle.Render("Version:"), ValueStyle.Render(version))
}

// PrintError prints an error message
func PrintError(message string) {
	fmt.Fprintf(os.Stderr, "%s %s\n", ErrorStyle.Render("Error:"), message)
}

// PrintWarning prints a warning message
func PrintWarning(message string) {
	fmt.Fprintf(os.Stderr, "%s %s\n", HighlightStyle.Render("Warning:"), message)
}

// PrintSuccess prints a success message
func PrintSuccess(message string) {
	fmt.Printf("%s %s\n", SuccessStyle.Render("✓"), message)
}

// FormatInfo renders a single key/value line.
func FormatInfo(key, value string) string {
	return KeyStyle.Render(key+":") + " " + ValueStyle.Render(value)
}

// PrintInfo prints an informational message
func PrintInfo(key, value string) {
	fmt.Println(FormatInfo(key, value))
}

// Field is one row of a summary box.
type Field struct {
	Key   string
	Value string
}

// FormatSummary lays out fields under a title, keys padded to a column.
func FormatSummary(title string, fields []Field) string {
	width := 0
	for _, f := range fields {
		width = max(width, len(f.Key)+1)
	}

	var b strings.Builder
	b.WriteString(SuccessStyle.Render(title))
	for _, f := range fields {
		b.WriteString("\n")
		b.WriteString(KeyStyle.Render(fmt.Sprintf("%-*s ", width, f.Key+":")))
		b.WriteString(ValueStyle.Render(f.Value))
	}
	return b.String()
}

// PrintSummary prints fields in a styled box
func PrintSummary(title string, fields []Field) {
	fmt.Println(BoxStyle.Render(FormatSummary(title, fields)))
}

// FormatDuration formats a duration nicely
func FormatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%.0fms", d.Seconds()*1000)
	}
	return fmt.Sprintf("%.1fs", d.Seconds())
}

// FormatBytes formats bytes into human-readable format
func FormatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
