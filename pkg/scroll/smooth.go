package scroll

import (
	"time"

	"github.com/tanema/gween"
)

// smoothScroll eases the viewport toward a target offset, one step per frame.
type smoothScroll struct {
	target float64
	tween  *gween.Tween
	last   time.Duration
	begun  bool
}

// step advances the tween to now and returns the new offset and whether it finished.
func (s *smoothScroll) step(now time.Duration) (float64, bool) {
	var dt float32
	if s.begun {
		dt = float32((now - s.last).Seconds())
		if dt < 0 {
			dt = 0
		}
	}
	s.begun = true
	s.last = now

	v, done := s.tween.Update(dt)
	if done {
		return s.target, true
	}
	return float64(v), false
}
