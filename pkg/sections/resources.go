package sections

import (
	"math"

	"github.com/user/scrollytell/pkg/phase"
	"github.com/user/scrollytell/pkg/ports"
)

// resourcePhases are the [start, end) windows of the first three resources.
// The last window stays open so the final link keeps its highlight.
var resourcePhases = []struct{ start, end float64 }{
	{0.1, 0.3},
	{0.3, 0.6},
	{0.6, math.Inf(1)},
}

// resourcesAllVisible is where any remaining resources appear.
const resourcesAllVisible = 0.9

// Resources reveals books and their link blocks one by one and highlights the
// link of the resource in focus.
type Resources struct {
	table phase.Table
}

// NewResources creates a resources handler.
func NewResources() *Resources {
	return &Resources{}
}

// Init implements scroll.Handler.
func (r *Resources) Init(root ports.Element) {
	books := root.QueryAll("resources__book")
	links := root.QueryAll("resources__link-block")

	r.table = phase.Table{}
	r.table.Add(0.05, phase.Toggle, phase.Class(root.Query("resources__heading"), "visible"))

	var rest phase.Effects
	for i := 0; i < len(books) || i < len(links); i++ {
		var show phase.Effects
		if i < len(books) {
			show = append(show, phase.Class(books[i], "visible"))
		}
		if i < len(links) {
			show = append(show, phase.Class(links[i], "visible"))
		}
		if i >= len(resourcePhases) {
			rest = append(rest, show...)
			continue
		}
		p := resourcePhases[i]
		r.table.Add(p.start, phase.Toggle, show)
		if i < len(links) {
			r.table.AddBand(p.start, p.end, phase.Class(links[i], "highlighted"))
		}
	}
	if len(rest) > 0 {
		r.table.Add(resourcesAllVisible, phase.Toggle, rest)
	}
}

// Animate implements scroll.Handler.
func (r *Resources) Animate(progress, scrollY float64) {
	r.table.Apply(progress)
}
