package sections

import (
	"github.com/user/scrollytell/pkg/phase"
	"github.com/user/scrollytell/pkg/ports"
)

// FlipCards reveals and flips N cards in sequence.
//
// The progress domain is cut into N+1 equal steps. Card i appears at i·step/2
// and flips at i·step (the first card at step/2). From N·step on every card is
// held flipped. Nothing is undone on scroll-back.
type FlipCards struct {
	table phase.Table
	step  float64
}

// NewFlipCards creates a flip-cards handler.
func NewFlipCards() *FlipCards {
	return &FlipCards{}
}

// Init implements scroll.Handler.
func (f *FlipCards) Init(root ports.Element) {
	wrappers := root.QueryAll("flip-card-wrapper")
	cards := root.QueryAll("flip-card")

	f.table = phase.Table{}
	n := len(cards)
	if n == 0 {
		n = len(wrappers)
	}
	if n == 0 {
		return
	}
	f.step = 1 / float64(n+1)

	for i, w := range wrappers {
		f.table.Add(f.RevealAt(i), phase.Ratchet, phase.Class(w, "visible"))
	}

	all := make(phase.Effects, 0, len(cards))
	for i, c := range cards {
		flip := phase.Class(c, "flipped")
		f.table.Add(f.FlipAt(i), phase.Ratchet, flip)
		all = append(all, flip)
	}
	f.table.Add(f.HoldAt(n), phase.Ratchet, all)
}

// RevealAt returns the progress at which card i becomes visible.
func (f *FlipCards) RevealAt(i int) float64 {
	return float64(i) * f.step / 2
}

// FlipAt returns the progress at which card i flips.
func (f *FlipCards) FlipAt(i int) float64 {
	if i == 0 {
		return f.step / 2
	}
	return float64(i) * f.step
}

// HoldAt returns the progress from which all n cards are held flipped.
func (f *FlipCards) HoldAt(n int) float64 {
	return float64(n) * f.step
}

// Animate implements scroll.Handler.
func (f *FlipCards) Animate(progress, scrollY float64) {
	f.table.Apply(progress)
}
