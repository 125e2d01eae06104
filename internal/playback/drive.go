package playback

import (
	"context"
	"fmt"
	"time"

	"github.com/linuxmatters/pixwav/internal/scheduler"
)

// Step advances s to the clock's position. Once the clock is done the
// remaining samples are decoded and the session finished; finished then
// reports true.
func Step(s *scheduler.Scheduler, clock Clock) (finished bool, err error) {
	if s.State() == scheduler.Finished {
		return true, nil
	}

	cur, dur := clock.Position()
	if !clock.Done() {
		_, err := s.Advance(cur, dur)
		return false, err
	}

	if _, err := s.Advance(dur, dur); err != nil {
		return false, err
	}
	if err := s.Finish(); err != nil {
		return false, fmt.Errorf("finish at end of playback: %w", err)
	}
	return true, nil
}

// Drive polls clock every interval, stepping s until the decode finishes or
// ctx is cancelled.
func Drive(ctx context.Context, s *scheduler.Scheduler, clock Clock, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		finished, err := Step(s, clock)
		if err != nil || finished {
			return err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
