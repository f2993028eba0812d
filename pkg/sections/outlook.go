package sections

import (
	"github.com/user/scrollytell/pkg/phase"
	"github.com/user/scrollytell/pkg/ports"
)

// outlookPhaseEnds are the exclusive upper bounds of the first two phases.
var outlookPhaseEnds = []float64{0.35, 0.70}

// FutureOutlook walks through three titled phases while growing a stack of circles.
//
// The current title is "active", earlier ones "exiting". Circles stay once shown.
type FutureOutlook struct {
	titles  []ports.Element
	circles phase.Table
}

// NewFutureOutlook creates a future-outlook handler.
func NewFutureOutlook() *FutureOutlook {
	return &FutureOutlook{}
}

// Init implements scroll.Handler.
func (f *FutureOutlook) Init(root ports.Element) {
	f.titles = root.QueryAll("future-outlook__title-item")

	f.circles = phase.Table{}
	starts := []float64{0.15, outlookPhaseEnds[0], outlookPhaseEnds[1]}
	for i, c := range root.QueryAll("future-circle") {
		if i >= len(starts) {
			break
		}
		f.circles.Add(starts[i], phase.Ratchet, phase.Class(c, "visible"))
	}
}

// Phase returns the 0-based phase index for progress.
func (f *FutureOutlook) Phase(progress float64) int {
	return phase.Level(progress, outlookPhaseEnds)
}

// Animate implements scroll.Handler.
func (f *FutureOutlook) Animate(progress, scrollY float64) {
	current := f.Phase(progress)
	for i, t := range f.titles {
		switch {
		case i == current:
			t.RemoveClass("exiting")
			t.AddClass("active")
		case i < current:
			t.RemoveClass("active")
			t.AddClass("exiting")
		default:
			t.RemoveClass("active", "exiting")
		}
	}
	f.circles.Apply(progress)
}
