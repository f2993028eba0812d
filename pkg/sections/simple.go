package sections

import (
	"fmt"
	"math"
	"time"

	"github.com/user/scrollytell/pkg/phase"
	"github.com/user/scrollytell/pkg/ports"
)

// Hero plays a timed intro reveal and applies a parallax fade while scrolled.
type Hero struct {
	content ports.Element
	intro   *phase.Sequence
}

// NewHero creates a hero handler.
func NewHero() *Hero {
	return &Hero{}
}

// Init implements scroll.Handler.
func (h *Hero) Init(root ports.Element) {
	h.content = root.Query("hero")
	h.intro = phase.NewSequence(
		phase.Step{Delay: 300 * time.Millisecond, Effect: phase.Class(root.Query("hero__title"), "visible")},
		phase.Step{Delay: 200 * time.Millisecond, Effect: phase.Class(root.Query("hero__desc"), "visible")},
		phase.Step{Delay: 200 * time.Millisecond, Effect: phase.Class(root.Query("hero__cta"), "visible")},
	)
}

// Animate implements scroll.Handler.
func (h *Hero) Animate(progress, scrollY float64) {
	if h.content == nil {
		return
	}
	h.content.SetStyle("transform", fmt.Sprintf("translateY(%.2fpx)", -progress*75))
	h.content.SetStyle("opacity", fmt.Sprintf("%.3f", math.Max(0.3, 1-progress*0.7)))
}

// Tick implements scroll.Ticker. It drives the intro reveal.
func (h *Hero) Tick(now time.Duration) bool {
	if h.intro == nil {
		return false
	}
	return h.intro.Advance(now)
}

// Fade is a two-step reveal: a heading and a visual, each toggled at its threshold.
// Problem, Growth and Strategy are Fades with different class names.
type Fade struct {
	headingClass string
	visualClass  string
	headingAt    float64
	visualAt     float64

	table phase.Table
}

// NewProblem creates the problem handler: title at 10%, subtitle at 60%.
func NewProblem() *Fade {
	return &Fade{headingClass: "problem__title", visualClass: "problem__subtitle", headingAt: 0.1, visualAt: 0.6}
}

// NewGrowth creates the growth handler: title at 10%, chart at 30%.
func NewGrowth() *Fade {
	return &Fade{headingClass: "growth__title", visualClass: "growth__svg", headingAt: 0.1, visualAt: 0.3}
}

// NewStrategy creates the strategy handler: heading at 10%, chart at 30%.
func NewStrategy() *Fade {
	return &Fade{headingClass: "strategy__heading", visualClass: "strategy__svg", headingAt: 0.1, visualAt: 0.3}
}

// Init implements scroll.Handler.
func (f *Fade) Init(root ports.Element) {
	f.table = phase.Table{}
	f.table.
		Add(f.headingAt, phase.Toggle, phase.Class(root.Query(f.headingClass), "visible")).
		Add(f.visualAt, phase.Toggle, phase.Class(root.Query(f.visualClass), "visible"))
}

// Animate implements scroll.Handler.
func (f *Fade) Animate(progress, scrollY float64) {
	f.table.Apply(progress)
}
