package phase

import "time"

// Step is one timed entry of a Sequence.
type Step struct {
	Delay  time.Duration // Delay after the previous step
	Effect Effect
}

// Sequence enters effects on a time schedule, independent of scroll progress.
// Each step is entered once, in order.
type Sequence struct {
	steps   []Step
	started bool
	origin  time.Duration
	next    int
}

// NewSequence creates a sequence from steps.
func NewSequence(steps ...Step) *Sequence {
	return &Sequence{steps: steps}
}

// Advance enters every step that is due at now. The first call fixes the origin.
// It returns true while steps remain.
func (s *Sequence) Advance(now time.Duration) bool {
	if !s.started {
		s.started = true
		s.origin = now
	}

	var due time.Duration
	for i := 0; i < s.next; i++ {
		due += s.steps[i].Delay
	}
	for s.next < len(s.steps) {
		due += s.steps[s.next].Delay
		if now-s.origin < due {
			break
		}
		if e := s.steps[s.next].Effect; e != nil {
			e.Enter()
		}
		s.next++
	}
	return s.next < len(s.steps)
}

// Done reports whether every step has been entered.
func (s *Sequence) Done() bool {
	return s.next >= len(s.steps)
}
