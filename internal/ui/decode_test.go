package ui

import (
	"image"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/linuxmatters/pixwav/internal/codec"
	"github.com/linuxmatters/pixwav/internal/renderer"
	"github.com/linuxmatters/pixwav/internal/scheduler"
)

// manualClock is moved by the test.
type manualClock struct {
	pos, dur float64
}

func (c *manualClock) Position() (float64, float64) { return c.pos, c.dur }
func (c *manualClock) Done() bool                   { return c.pos >= c.dur }
func (c *manualClock) Close() error                 { return nil }

func newTestModel(t *testing.T, noPreview bool) (*DecodeModel, *manualClock, *renderer.Canvas) {
	t.Helper()

	img := image.NewGray(image.Rect(0, 0, 4, 4))
	for i := range img.Pix {
		img.Pix[i] = uint8(i * 16)
	}
	buf, err := codec.Encode(img, codec.Options{Type: codec.Gray8})
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}
	h, err := codec.Parse(buf, codec.Detect(buf))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}

	canvas := renderer.NewCanvas(1, 1)
	s := scheduler.New(canvas)
	if err := s.Start(buf, h); err != nil {
		t.Fatalf("Start() error: %v", err)
	}

	clock := &manualClock{dur: 2}
	info := DecodeInfo{FileName: "test.wav", Type: h.Type.String(), Width: 4, Height: 4, Output: "silent"}
	return NewDecodeModel(s, canvas, clock, nil, info, noPreview), clock, canvas
}

func TestDecodeModelTicks(t *testing.T) {
	m, clock, canvas := newTestModel(t, false)

	if m.Init() == nil {
		t.Fatal("Init() should start the clock")
	}

	clock.pos = 1
	_, cmd := m.Update(tickMsg(time.Now()))
	if cmd == nil {
		t.Fatal("tick should schedule another tick")
	}
	if canvas.Written() != 8 {
		t.Errorf("pixels after half the clock = %d, want 8", canvas.Written())
	}
	if !strings.Contains(m.View(), "50%") {
		t.Errorf("progress view should show 50%%:\n%s", m.View())
	}

	clock.pos = 2
	m.Update(tickMsg(time.Now()))
	if m.Result() == nil {
		t.Fatal("decode should finish when the clock is done")
	}
	if m.Result().Pixels != 16 {
		t.Errorf("result pixels = %d, want 16", m.Result().Pixels)
	}
	if !strings.Contains(m.View(), "Decode Complete") {
		t.Error("view should switch to the completion panel")
	}
	if m.CompletionSummary() == "" {
		t.Error("CompletionSummary() empty after finish")
	}

	// Any key dismisses the completion panel
	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	if cmd == nil {
		t.Fatal("key after completion should quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("key after completion did not quit")
	}
	if m.Cancelled() {
		t.Error("completed decode reported as cancelled")
	}
}

func TestDecodeModelQuit(t *testing.T) {
	m, _, _ := newTestModel(t, true)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatal("q should quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q did not quit")
	}
	if !m.Cancelled() {
		t.Error("Cancelled() = false after q")
	}
	if m.CompletionSummary() != "" {
		t.Error("CompletionSummary() should be empty for a cancelled decode")
	}
}

func TestDecodeModelNoPreview(t *testing.T) {
	m, clock, _ := newTestModel(t, true)
	clock.pos = 1
	m.Update(tickMsg(time.Now()))

	if strings.Contains(m.View(), "▀") {
		t.Error("preview drawn with preview disabled")
	}
}

func TestDecodeModelIgnoresOtherKeys(t *testing.T) {
	m, _, _ := newTestModel(t, true)
	if _, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("a")}); cmd != nil {
		t.Error("unbound key produced a command")
	}
}
