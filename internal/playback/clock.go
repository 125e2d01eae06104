// Package playback provides the clocks that drive a decode.
package playback

import (
	"sync"
	"time"
)

// Clock reports playback position in seconds. Implementations must be safe
// to poll from a goroutine other than the one producing audio.
type Clock interface {
	// Position returns the current time and total duration.
	Position() (current, duration float64)
	// Done reports whether playback has reached the end.
	Done() bool
	Close() error
}

// WallClock is a silent clock that advances with real time, scaled by a
// speed factor.
type WallClock struct {
	mu       sync.Mutex
	now      func() time.Time
	start    time.Time
	duration float64
	speed    float64
	stopped  bool
	stopAt   float64
}

// NewWallClock starts a clock over duration seconds. A speed of 2 plays
// twice as fast; non-positive speeds are treated as 1.
func NewWallClock(duration, speed float64) *WallClock {
	return newWallClock(duration, speed, time.Now)
}

func newWallClock(duration, speed float64, now func() time.Time) *WallClock {
	if speed <= 0 {
		speed = 1
	}
	return &WallClock{
		now:      now,
		start:    now(),
		duration: duration,
		speed:    speed,
	}
}

// Position returns the elapsed playback time, capped at the duration.
func (c *WallClock) Position() (current, duration float64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.stopped {
		return c.stopAt, c.duration
	}
	return c.elapsed(), c.duration
}

func (c *WallClock) elapsed() float64 {
	return min(c.now().Sub(c.start).Seconds()*c.speed, c.duration)
}

// Done reports whether the clock has reached the duration.
func (c *WallClock) Done() bool {
	cur, dur := c.Position()
	return cur >= dur
}

// Close freezes the clock at its current position.
func (c *WallClock) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.stopped {
		c.stopAt = c.elapsed()
		c.stopped = true
	}
	return nil
}
