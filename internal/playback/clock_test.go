package playback

import (
	"testing"
	"time"
)

type fakeTime struct {
	t time.Time
}

func (f *fakeTime) now() time.Time { return f.t }

func (f *fakeTime) advance(d time.Duration) { f.t = f.t.Add(d) }

func TestWallClockPosition(t *testing.T) {
	ft := &fakeTime{t: time.Unix(1000, 0)}
	c := newWallClock(10, 1, ft.now)

	if cur, dur := c.Position(); cur != 0 || dur != 10 {
		t.Errorf("Position() = %f, %f, want 0, 10", cur, dur)
	}

	ft.advance(2500 * time.Millisecond)
	if cur, _ := c.Position(); cur != 2.5 {
		t.Errorf("Position() after 2.5s = %f, want 2.5", cur)
	}
	if c.Done() {
		t.Error("Done() = true before the end")
	}

	ft.advance(time.Minute)
	if cur, _ := c.Position(); cur != 10 {
		t.Errorf("Position() past the end = %f, want 10", cur)
	}
	if !c.Done() {
		t.Error("Done() = false at the end")
	}
}

func TestWallClockSpeed(t *testing.T) {
	tests := []struct {
		speed float64
		want  float64
	}{
		{speed: 1, want: 1},
		{speed: 4, want: 4},
		{speed: 0.5, want: 0.5},
		{speed: 0, want: 1},
		{speed: -3, want: 1},
	}

	for _, tt := range tests {
		ft := &fakeTime{t: time.Unix(0, 0)}
		c := newWallClock(100, tt.speed, ft.now)
		ft.advance(time.Second)

		if cur, _ := c.Position(); cur != tt.want {
			t.Errorf("speed %v: Position() after 1s = %f, want %f", tt.speed, cur, tt.want)
		}
	}
}

func TestWallClockClose(t *testing.T) {
	ft := &fakeTime{t: time.Unix(0, 0)}
	c := newWallClock(10, 1, ft.now)

	ft.advance(3 * time.Second)
	if err := c.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}

	ft.advance(3 * time.Second)
	if cur, _ := c.Position(); cur != 3 {
		t.Errorf("Position() after Close = %f, want 3", cur)
	}

	// Closing twice keeps the first stop position
	if err := c.Close(); err != nil {
		t.Fatalf("second Close() error: %v", err)
	}
	if cur, _ := c.Position(); cur != 3 {
		t.Errorf("Position() after second Close = %f, want 3", cur)
	}
}

func TestWallClockZeroDuration(t *testing.T) {
	c := NewWallClock(0, 1)
	if !c.Done() {
		t.Error("zero-length clock should be done immediately")
	}
}
