package playback

import (
	"context"
	"errors"
	"image"
	"testing"
	"time"

	"github.com/linuxmatters/pixwav/internal/codec"
	"github.com/linuxmatters/pixwav/internal/scheduler"
)

// stepClock reports a fixed list of positions, one per Position call.
type stepClock struct {
	positions []float64
	duration  float64
	i         int
}

func (c *stepClock) Position() (float64, float64) {
	p := c.positions[min(c.i, len(c.positions)-1)]
	c.i++
	return p, c.duration
}

func (c *stepClock) Done() bool {
	return c.i > 0 && c.positions[min(c.i-1, len(c.positions)-1)] >= c.duration
}

func (c *stepClock) Close() error { return nil }

type countingSurface struct {
	sets int
}

func (s *countingSurface) Set(x, y int, p codec.Pixel) { s.sets++ }
func (s *countingSurface) Clear()                      {}

func startGray(t *testing.T, surface scheduler.Surface, w, h int) *scheduler.Scheduler {
	t.Helper()

	buf, err := codec.Encode(image.NewGray(image.Rect(0, 0, w, h)), codec.Options{Type: codec.Gray8})
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}
	hdr, err := codec.Parse(buf, codec.Detect(buf))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}

	s := scheduler.New(surface)
	if err := s.Start(buf, hdr); err != nil {
		t.Fatalf("Start() error: %v", err)
	}
	return s
}

func TestStep(t *testing.T) {
	surface := &countingSurface{}
	s := startGray(t, surface, 4, 1)
	clock := &stepClock{positions: []float64{0.5, 1}, duration: 1}

	finished, err := Step(s, clock)
	if err != nil || finished {
		t.Fatalf("first Step() = %v, %v, want false, nil", finished, err)
	}
	if surface.sets != 2 {
		t.Errorf("pixels after half the clock = %d, want 2", surface.sets)
	}

	finished, err = Step(s, clock)
	if err != nil || !finished {
		t.Fatalf("second Step() = %v, %v, want true, nil", finished, err)
	}
	if surface.sets != 4 {
		t.Errorf("pixels at the end = %d, want 4", surface.sets)
	}
	if s.State() != scheduler.Finished {
		t.Errorf("state = %s, want finished", s.State())
	}

	// Stepping a finished decode is harmless
	if finished, err := Step(s, clock); err != nil || !finished {
		t.Errorf("Step() after finish = %v, %v", finished, err)
	}
}

func TestStepIdle(t *testing.T) {
	s := scheduler.New(&countingSurface{})
	_, err := Step(s, &stepClock{positions: []float64{0.2}, duration: 1})
	if !errors.Is(err, scheduler.ErrInvalidState) {
		t.Errorf("Step() on idle scheduler error = %v, want ErrInvalidState", err)
	}
}

func TestDrive(t *testing.T) {
	surface := &countingSurface{}
	s := startGray(t, surface, 8, 8)
	clock := &stepClock{positions: []float64{0, 0.25, 0.5, 0.75, 1}, duration: 1}

	finished := 0
	s.OnFinished(func(scheduler.Result) { finished++ })

	if err := Drive(context.Background(), s, clock, time.Millisecond); err != nil {
		t.Fatalf("Drive() error: %v", err)
	}
	if surface.sets != 64 {
		t.Errorf("pixels = %d, want 64", surface.sets)
	}
	if finished != 1 {
		t.Errorf("finish listeners called %d times, want 1", finished)
	}
}

func TestDriveCancelled(t *testing.T) {
	s := startGray(t, &countingSurface{}, 2, 2)
	clock := &stepClock{positions: []float64{0.1}, duration: 1}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := Drive(ctx, s, clock, time.Hour); !errors.Is(err, context.Canceled) {
		t.Errorf("Drive() error = %v, want context.Canceled", err)
	}
	if s.State() != scheduler.Decoding {
		t.Errorf("state = %s, want decoding", s.State())
	}
}
