package scroll

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/user/scrollytell/pkg/ports"
	"github.com/user/scrollytell/pkg/scrollmath"
)

// SectionAttr is the attribute that marks a section root element.
const SectionAttr = "data-scroll-section"

// ScrollHeightAttr overrides a section's scrollable travel distance ("300vh", "1200px").
const ScrollHeightAttr = "data-scroll-height"

// Handler drives one section's visual state from its scroll progress.
type Handler interface {
	// Init receives the section's root element once it has been resolved.
	Init(root ports.Element)

	// Animate applies the state for progress in [0, 1] at the given scroll offset.
	Animate(progress, scrollY float64)
}

// Ticker is implemented by handlers that also animate on a time base.
// Tick returns true while it needs further frames.
type Ticker interface {
	Tick(now time.Duration) bool
}

// Bounds is a section's extent in absolute document coordinates.
type Bounds struct {
	Top    float64
	Bottom float64
	Height float64
}

// Section is the registry entry for one narrative unit.
type Section struct {
	ID      string
	Handler Handler
	Element ports.Element // nil until resolved; unresolved sections are skipped
	Bounds  Bounds
	Active  bool // set by the visibility observer

	measured bool
	progress float64
}

// Resolved reports whether the section's root element was found.
func (s *Section) Resolved() bool {
	return s.Element != nil
}

// SectionState is a read-only snapshot of a section.
type SectionState struct {
	ID        string
	Resolved  bool
	HasBounds bool
	Bounds    Bounds
	Active    bool
	Progress  float64 // last progress passed to the handler
}

func (s *Section) state() SectionState {
	return SectionState{
		ID:        s.ID,
		Resolved:  s.Resolved(),
		HasBounds: s.measured,
		Bounds:    s.Bounds,
		Active:    s.Active,
		Progress:  s.progress,
	}
}

// Progress converts a scroll offset into a section's normalized progress.
// Travel runs from Top to Bottom-viewportHeight; a zero or negative span
// resolves to 1 once scrollY reaches Top.
func Progress(b Bounds, scrollY, viewportHeight float64) float64 {
	return scrollmath.Normalize(scrollY, b.Top, b.Bottom-viewportHeight)
}

// ParseScrollHeight resolves a scroll-height directive to pixels.
// Accepted forms are "300vh", "1200px" and a bare number of pixels.
func ParseScrollHeight(value string, viewportHeight float64) (float64, bool) {
	v := strings.TrimSpace(value)
	scale := 1.0
	switch {
	case strings.HasSuffix(v, "vh"):
		v = strings.TrimSuffix(v, "vh")
		scale = viewportHeight / 100
	case strings.HasSuffix(v, "px"):
		v = strings.TrimSuffix(v, "px")
	}

	n, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil || n < 0 || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	return n * scale, true
}

// measure computes bounds from the element's rect, the current scroll offset
// and an optional scroll-height override.
func measure(el ports.Element, scrollY, viewportHeight float64) Bounds {
	rect := el.Rect()

	height := el.OffsetHeight()
	if raw, ok := el.Attr(ScrollHeightAttr); ok {
		if h, ok := ParseScrollHeight(raw, viewportHeight); ok {
			height = h
		}
	}
	if height < 0 {
		height = 0
	}

	top := rect.Top + scrollY
	return Bounds{Top: top, Bottom: top + height, Height: height}
}
