package scheduler

import (
	"errors"
	"fmt"
	"math"

	"github.com/google/uuid"
	"github.com/linuxmatters/pixwav/internal/codec"
	"github.com/rs/zerolog/log"
)

// ErrInvalidState is returned when an operation is called in a state that
// forbids it. It indicates a caller bug, not a runtime condition.
var ErrInvalidState = errors.New("invalid scheduler state")

// State is the decode lifecycle: Idle -> Decoding -> Finished, and back to
// Idle on Reset.
type State int

const (
	Idle State = iota
	Decoding
	Finished
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Decoding:
		return "decoding"
	case Finished:
		return "finished"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Surface receives decoded pixels. The scheduler never owns it.
type Surface interface {
	Set(x, y int, p codec.Pixel)
	Clear()
}

// Sizer is implemented by surfaces that adapt to the decoded image size.
// Resize is called once per session, after the header has been validated.
type Sizer interface {
	Resize(width, height int)
}

// SampleRange is a half-open interval of sample indices.
type SampleRange struct {
	Start, End int
}

// Len returns the number of samples in r.
func (r SampleRange) Len() int {
	return r.End - r.Start
}

// Empty reports whether r holds no samples.
func (r SampleRange) Empty() bool {
	return r.End <= r.Start
}

// Session is the state of one decode.
type Session struct {
	ID              string
	Header          codec.Header
	Buffer          []byte
	Payload         codec.Payload
	SamplesConsumed int
	CursorPixel     int
}

// Result is delivered to finish listeners.
type Result struct {
	SessionID string
	Header    codec.Header
	Pixels    int
	Samples   int
}

// Progress reports how far the current decode has got.
type Progress struct {
	SamplesConsumed int
	TotalSamples    int
	PixelsWritten   int
	TotalPixels     int
}

// Fraction returns consumed/total in [0, 1].
func (p Progress) Fraction() float64 {
	if p.TotalSamples == 0 {
		return 0
	}
	return float64(p.SamplesConsumed) / float64(p.TotalSamples)
}

// Scheduler decodes a buffer onto a surface in step with a playback clock.
// It is not safe for concurrent use: every call is expected on the goroutine
// that delivers playback-time updates.
type Scheduler struct {
	surface   Surface
	state     State
	session   *Session
	last      Result
	listeners []func(Result)
	scratch   []int
}

// New creates an idle scheduler writing to surface.
func New(surface Surface) *Scheduler {
	return &Scheduler{surface: surface, scratch: make([]int, 0, 3)}
}

// OnFinished registers fn to be called once per completed decode, inside
// Finish. Listeners persist across Reset.
func (s *Scheduler) OnFinished(fn func(Result)) {
	s.listeners = append(s.listeners, fn)
}

// State returns the current lifecycle state.
func (s *Scheduler) State() State {
	return s.state
}

// Session returns a copy of the active session, if any.
func (s *Scheduler) Session() (Session, bool) {
	if s.session == nil {
		return Session{}, false
	}
	return *s.session, true
}

// Progress returns the current session's progress. After Finish it reports
// the completed decode.
func (s *Scheduler) Progress() Progress {
	if s.session != nil {
		return Progress{
			SamplesConsumed: s.session.SamplesConsumed,
			TotalSamples:    s.session.Payload.TotalSamples,
			PixelsWritten:   s.session.CursorPixel,
			TotalPixels:     s.session.Payload.Pixels(),
		}
	}
	if s.state == Finished {
		return Progress{
			SamplesConsumed: s.last.Samples,
			TotalSamples:    s.last.Samples,
			PixelsWritten:   s.last.Pixels,
			TotalPixels:     s.last.Pixels,
		}
	}
	return Progress{}
}

// Start begins decoding buf described by header. It is only valid while
// Idle. A header that fails validation leaves the scheduler Idle and the
// surface untouched.
func (s *Scheduler) Start(buf []byte, header codec.Header) error {
	if s.state != Idle {
		return fmt.Errorf("start while %s: %w", s.state, ErrInvalidState)
	}

	payload, err := codec.Locate(buf, header)
	if err != nil {
		return fmt.Errorf("start: %w", err)
	}

	s.session = &Session{
		ID:      uuid.NewString(),
		Header:  header,
		Buffer:  buf,
		Payload: payload,
	}
	if sizer, ok := s.surface.(Sizer); ok {
		sizer.Resize(int(header.Width), int(header.Height))
	}
	s.state = Decoding

	log.Debug().
		Str("session", s.session.ID).
		Str("type", header.Type.String()).
		Uint32("width", header.Width).
		Uint32("height", header.Height).
		Int("samples", payload.TotalSamples).
		Msg("Decode started")

	return nil
}

// Advance decodes every sample that playback has passed since the last call.
// playbackTime and duration are in seconds. Reports that do not move past
// the samples already consumed are no-ops, so backward seeks and duplicate
// reports never rewrite pixels. The returned range is the one decoded.
func (s *Scheduler) Advance(playbackTime, duration float64) (SampleRange, error) {
	switch s.state {
	case Finished:
		return SampleRange{}, nil
	case Idle:
		return SampleRange{}, fmt.Errorf("advance while %s: %w", s.state, ErrInvalidState)
	}

	sess := s.session
	r := SampleRange{Start: sess.SamplesConsumed, End: sess.SamplesConsumed}

	target, ok := TargetSample(playbackTime, duration, sess.Payload.TotalSamples)
	if !ok || target <= sess.SamplesConsumed {
		return r, nil
	}
	r.End = target

	s.decodeRange(sess, r)
	return r, nil
}

// decodeRange writes every pixel whose last sample falls inside r. A pixel
// that straddles the end of r is written by the call that completes it.
func (s *Scheduler) decodeRange(sess *Session, r SampleRange) {
	channels := sess.Payload.Channels
	depth := sess.Payload.Depth
	width := int(sess.Header.Width)
	end := r.End / channels

	for px := sess.CursorPixel; px < end; px++ {
		base := px * channels
		s.scratch = s.scratch[:0]
		for c := 0; c < channels; c++ {
			s.scratch = append(s.scratch, sess.Payload.Sample(base+c))
		}

		s.surface.Set(px%width, px/width, codec.SamplesToPixel(s.scratch, channels, depth))

		// The surface may have reset us; drop the rest of the range
		if s.session != sess {
			return
		}
		sess.CursorPixel = px + 1
	}
	sess.SamplesConsumed = r.End
}

// TargetSample maps a playback position to the sample index playback has
// reached, clamped to [0, total]. ok is false for positions that cannot be
// mapped (zero, negative or non-finite duration, NaN time).
func TargetSample(playbackTime, duration float64, total int) (target int, ok bool) {
	if !(duration > 0) || math.IsInf(duration, 0) || math.IsNaN(playbackTime) {
		return 0, false
	}

	ratio := playbackTime / duration
	switch {
	case ratio <= 0:
		return 0, true
	case ratio >= 1:
		return total, true
	}
	return min(int(math.Floor(ratio*float64(total))), total), true
}

// Finish completes a decode whose samples have all been consumed and
// notifies listeners once. Calling it again after completion is a no-op.
func (s *Scheduler) Finish() error {
	switch s.state {
	case Finished:
		return nil
	case Idle:
		return fmt.Errorf("finish while %s: %w", s.state, ErrInvalidState)
	}

	sess := s.session
	if sess.SamplesConsumed < sess.Payload.TotalSamples {
		return fmt.Errorf("finish at sample %d of %d: %w",
			sess.SamplesConsumed, sess.Payload.TotalSamples, ErrInvalidState)
	}

	s.last = Result{
		SessionID: sess.ID,
		Header:    sess.Header,
		Pixels:    sess.CursorPixel,
		Samples:   sess.SamplesConsumed,
	}
	s.session = nil
	s.state = Finished

	log.Debug().
		Str("session", s.last.SessionID).
		Int("pixels", s.last.Pixels).
		Msg("Decode finished")

	listeners := append(([]func(Result))(nil), s.listeners...)
	for _, fn := range listeners {
		fn(s.last)
	}
	return nil
}

// Reset abandons any decode, clears the surface and returns to Idle. It is
// valid in every state.
func (s *Scheduler) Reset() {
	if s.session != nil {
		log.Debug().
			Str("session", s.session.ID).
			Int("pixels", s.session.CursorPixel).
			Msg("Decode reset")
	}

	s.session = nil
	s.last = Result{}
	s.state = Idle
	s.surface.Clear()
}
