package components

import (
	"fmt"
	"math"
	"time"

	"github.com/user/scrollytell/pkg/ports"
	"github.com/user/scrollytell/pkg/scroll"
	"github.com/user/scrollytell/pkg/scrollmath"
)

// DefaultCircleFrom is where a decorated section hands over to the circle transition.
const DefaultCircleFrom = 0.85

// circle geometry: small, medium, large.
var (
	circleSizes   = []string{"small", "medium", "large"}
	circleOffsets = []float64{0, 0.15, 0.30}
	circleScales  = []float64{1, 0.7, 0.54}
)

// circleSpan is the share of the transition each circle takes to grow.
const circleSpan = 0.5

// CircleTransition zooms three concentric circles out over the viewport.
type CircleTransition struct {
	doc       ports.Document
	container ports.Element
	circles   []ports.Element
	active    bool
	progress  float64
}

// NewCircleTransition binds the page's .circle-transition, creating it with
// three circles under the body when it is missing.
func NewCircleTransition(doc ports.Document) *CircleTransition {
	c := &CircleTransition{doc: doc}
	c.container = doc.Query("circle-transition")
	if c.container == nil {
		c.container = doc.Body().AppendChild("circle-transition")
		c.container.SetAttr("aria-hidden", "true")
		for _, size := range circleSizes {
			c.container.AppendChild("circle-transition__circle", "circle-transition__circle--"+size)
		}
	}
	c.circles = c.container.QueryAll("circle-transition__circle")
	return c
}

// MaxScale is the scale at which the small circle covers the viewport diagonal.
func (c *CircleTransition) MaxScale() float64 {
	w, h := c.doc.Viewport()
	return math.Hypot(w, h) * 2.5 / 350
}

// Animate applies transition progress in [0, 1].
func (c *CircleTransition) Animate(progress float64) {
	if c.container == nil {
		return
	}
	p := scrollmath.Clamp(progress, 0, 1)
	c.progress = p

	if p > 0 && !c.active {
		c.active = true
		c.container.AddClass("active")
	}
	if p >= 1 {
		c.container.AddClass("complete")
	}
	if p <= 0 {
		c.active = false
		c.container.RemoveClass("active", "complete")
	}

	maxScale := c.MaxScale()
	for i, circle := range c.circles {
		if i >= len(circleOffsets) {
			break
		}
		local := scrollmath.Clamp((p-circleOffsets[i])/circleSpan, 0, 1)
		scale := scrollmath.Lerp(1, maxScale*circleScales[i], local)
		circle.SetStyle("transform", fmt.Sprintf("scale(%.4f)", scale))
	}

	fade := scrollmath.Clamp((p-0.7)/0.3, 0, 1)
	c.container.SetStyle("opacity", fmt.Sprintf("%.3f", 1-fade))
}

// Reset returns the transition to its idle state.
func (c *CircleTransition) Reset() {
	c.progress = 0
	c.active = false
	if c.container == nil {
		return
	}
	c.container.RemoveClass("active", "complete")
	c.container.SetStyle("opacity", "")
	for _, circle := range c.circles {
		circle.SetStyle("transform", "")
	}
}

// Active reports whether the transition is running.
func (c *CircleTransition) Active() bool {
	return c.active
}

// Progress returns the last applied progress.
func (c *CircleTransition) Progress() float64 {
	return c.progress
}

// circleHandler runs the circle transition over the tail of a section.
type circleHandler struct {
	scroll.Handler
	circle *CircleTransition
	from   float64
}

// WithCircleTransition decorates h so that progress in [from, 1] also drives
// circle, remapped to [0, 1]. Below from the transition is reset.
// A from outside (0, 1) falls back to DefaultCircleFrom.
func WithCircleTransition(h scroll.Handler, circle *CircleTransition, from float64) scroll.Handler {
	if from <= 0 || from >= 1 {
		from = DefaultCircleFrom
	}
	return &circleHandler{Handler: h, circle: circle, from: from}
}

func (h *circleHandler) Animate(progress, scrollY float64) {
	h.Handler.Animate(progress, scrollY)
	if progress >= h.from {
		h.circle.Animate(scrollmath.Normalize(progress, h.from, 1))
	} else {
		h.circle.Reset()
	}
}

// Tick forwards to the decorated handler when it is a ticker.
func (h *circleHandler) Tick(now time.Duration) bool {
	if t, ok := h.Handler.(scroll.Ticker); ok {
		return t.Tick(now)
	}
	return false
}
