package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/linuxmatters/pixwav/internal/audio"
	"github.com/linuxmatters/pixwav/internal/config"
	"github.com/linuxmatters/pixwav/internal/playback"
	"github.com/linuxmatters/pixwav/internal/renderer"
	"github.com/linuxmatters/pixwav/internal/scheduler"
)

var (
	brandRed    = lipgloss.Color("#A40000")
	brandYellow = lipgloss.Color("#F8B31D")
	doneGreen   = lipgloss.Color("#4A9B4A")
)

// DecodeInfo describes the file being decoded for display.
type DecodeInfo struct {
	FileName string
	Type     string
	Width    int
	Height   int
	Degraded bool   // Type was not recognised
	Output   string // Clock source, e.g. "speaker" or "silent 2.0x"
}

// tickMsg polls the playback clock.
type tickMsg time.Time

// decodeQuitMsg is sent when the completion screen has been shown long enough.
type decodeQuitMsg struct{}

// DecodeModel is the Bubbletea model that drives a decode from a playback
// clock and shows its progress.
type DecodeModel struct {
	sched    *scheduler.Scheduler
	canvas   *renderer.Canvas
	clock    playback.Clock
	spectrum *audio.Spectrum
	info     DecodeInfo

	progressBar progress.Model
	bars        []float64
	position    float64
	duration    float64
	startTime   time.Time

	result    *scheduler.Result
	cancelled bool
	err       error

	width           int
	noPreview       bool
	cachedPreview   string
	cachedWritten   int
	completionDelay time.Duration
}

// NewDecodeModel creates a model for a scheduler that has already been
// started. spectrum may be nil when the buffer has no playable audio.
func NewDecodeModel(s *scheduler.Scheduler, canvas *renderer.Canvas, clock playback.Clock, spectrum *audio.Spectrum, info DecodeInfo, noPreview bool) *DecodeModel {
	m := &DecodeModel{
		sched:    s,
		canvas:   canvas,
		clock:    clock,
		spectrum: spectrum,
		info:     info,
		progressBar: progress.New(
			progress.WithGradient(string(brandRed), string(brandYellow)),
			progress.WithWidth(40),
			progress.WithoutPercentage(),
		),
		startTime:       time.Now(),
		noPreview:       noPreview,
		cachedWritten:   -1,
		completionDelay: 2 * time.Second,
	}
	s.OnFinished(func(r scheduler.Result) {
		m.result = &r
	})
	return m
}

func tick() tea.Cmd {
	return tea.Tick(time.Second/config.FPS, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Init starts polling the clock
func (m *DecodeModel) Init() tea.Cmd {
	return tick()
}

// Update handles messages
func (m *DecodeModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.progressBar.Width = max(10, min(msg.Width-30, 50))
		return m, nil

	case tickMsg:
		if m.result != nil {
			return m, nil
		}
		return m, m.step()

	case decodeQuitMsg:
		return m, tea.Quit

	case tea.KeyMsg:
		if m.result != nil {
			return m, tea.Quit
		}
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			m.cancelled = true
			return m, tea.Quit
		}
	}

	return m, nil
}

func (m *DecodeModel) step() tea.Cmd {
	finished, err := playback.Step(m.sched, m.clock)
	if err != nil {
		m.err = err
		return tea.Quit
	}

	m.position, m.duration = m.clock.Position()
	if m.spectrum != nil {
		bars, err := m.spectrum.At(m.position)
		if err == nil {
			m.bars = bars
		}
	}

	if finished {
		m.position = m.duration
		return tea.Tick(m.completionDelay, func(time.Time) tea.Msg {
			return decodeQuitMsg{}
		})
	}
	return tick()
}

// Err returns the error that stopped the decode, if any.
func (m *DecodeModel) Err() error {
	return m.err
}

// Cancelled reports whether the user quit before the decode finished.
func (m *DecodeModel) Cancelled() bool {
	return m.cancelled
}

// Result returns the finished decode, or nil.
func (m *DecodeModel) Result() *scheduler.Result {
	return m.result
}

// View renders the UI
func (m *DecodeModel) View() string {
	if m.result != nil {
		return m.renderComplete()
	}
	return m.renderProgress()
}

func (m *DecodeModel) renderProgress() string {
	var s strings.Builder

	s.WriteString(lipgloss.NewStyle().Bold(true).Foreground(brandRed).Render("pixwav"))
	s.WriteString("\n")
	s.WriteString(lipgloss.NewStyle().Faint(true).Render(m.subtitle()))
	s.WriteString("\n\n")

	p := m.sched.Progress()
	s.WriteString("Progress: ")
	s.WriteString(m.progressBar.ViewAs(p.Fraction()))
	fmt.Fprintf(&s, "  %d%%\n", int(p.Fraction()*100))

	timing := fmt.Sprintf("Time: %s / %s  │  Pixels: %d / %d  │  Output: %s",
		formatSeconds(m.position), formatSeconds(m.duration),
		p.PixelsWritten, p.TotalPixels, m.info.Output)
	s.WriteString(lipgloss.NewStyle().Faint(true).Render(timing))
	s.WriteString("\n")

	if len(m.bars) > 0 {
		s.WriteString("\n")
		s.WriteString(renderSpectrum(m.bars, max(16, min(m.width-8, config.PreviewWidth))))
		s.WriteString("\n")
	}

	if preview := m.preview(); preview != "" {
		s.WriteString("\n")
		s.WriteString(preview)
		s.WriteString("\n")
	}

	s.WriteString(lipgloss.NewStyle().Faint(true).Italic(true).Render("q to stop"))

	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(brandRed).
		Padding(1, 2).
		Render(s.String())
}

func (m *DecodeModel) preview() string {
	if m.noPreview {
		return ""
	}
	// Only redraw when pixels have landed since the last frame
	if written := m.canvas.Written(); written != m.cachedWritten {
		m.cachedPreview = RenderPreview(DownsampleFrame(m.canvas.Image(), DefaultPreviewConfig()))
		m.cachedWritten = written
	}
	return m.cachedPreview
}

func (m *DecodeModel) subtitle() string {
	sub := fmt.Sprintf("%s  %s %dx%d", m.info.FileName, m.info.Type, m.info.Width, m.info.Height)
	if m.info.Degraded {
		sub += "  (unrecognised, decoding raw samples)"
	}
	return sub
}

// CompletionSummary returns the completion panel for printing after the
// program exits. It is empty until the decode has finished.
func (m *DecodeModel) CompletionSummary() string {
	if m.result == nil {
		return ""
	}
	return m.renderComplete()
}

func (m *DecodeModel) renderComplete() string {
	var s strings.Builder

	s.WriteString(lipgloss.NewStyle().Bold(true).Foreground(doneGreen).Render("✓ Decode Complete!"))
	s.WriteString("\n\n")
	fmt.Fprintf(&s, "File:     %s\n", m.info.FileName)
	fmt.Fprintf(&s, "Image:    %s %dx%d\n", m.result.Header.Type, m.result.Header.Width, m.result.Header.Height)
	fmt.Fprintf(&s, "Pixels:   %d from %d samples\n", m.result.Pixels, m.result.Samples)
	fmt.Fprintf(&s, "Duration: %s in %s", formatSeconds(m.duration), formatDuration(time.Since(m.startTime)))

	if !m.noPreview {
		s.WriteString("\n\n")
		s.WriteString(m.preview())
	}

	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(doneGreen).
		Padding(1, 1).
		Render(s.String()) + "\n"
}

func formatSeconds(sec float64) string {
	return formatDuration(time.Duration(sec * float64(time.Second)))
}

func formatDuration(d time.Duration) string {
	if d == 0 {
		return "0s"
	}
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return fmt.Sprintf("%.1fs", d.Seconds())
}
