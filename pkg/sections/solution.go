package sections

import (
	"github.com/user/scrollytell/pkg/phase"
	"github.com/user/scrollytell/pkg/ports"
)

var (
	solutionText   = phase.Stage{Start: 0.02, End: 0.12}
	solutionMatrix = phase.Stage{Start: 0.15, End: 0.45}

	// Local matrix progress at which levels 1, 2 and 3 begin.
	matrixLevels = []float64{0, 0.15, 0.35}

	// Exactly one of these sits on the coloured svg, by level.
	matrixHighlights = []string{"highlight-h1", "highlight-h1-h2", "highlight-all"}
)

// charStagger compresses the per-character reveal so the last character lands
// before the text stage ends.
const charStagger = 0.9

// Solution runs four stages: a disintegrating title, a three-level matrix,
// a resource-fit visual and an opportunity visual.
type Solution struct {
	title    ports.Element
	items    []ports.Element
	svg      ports.Element
	reveals  phase.Table
	level    int
	hasLevel bool
}

// NewSolution creates a solution handler.
func NewSolution() *Solution {
	return &Solution{}
}

// Init implements scroll.Handler.
func (s *Solution) Init(root ports.Element) {
	s.title = root.Query("solution-text__title--disintegrate")
	s.items = root.QueryAll("solution-matrix__item")
	s.svg = root.Query("solution-matrix__svg--colored")
	s.hasLevel = false

	s.reveals = phase.Table{}
	t := &s.reveals
	for _, item := range root.QueryAll("solution-text__item") {
		t.Add(solutionText.Start, phase.Ratchet, phase.Class(item, "visible"))
	}
	if s.title != nil {
		chars := s.title.QueryAll("char")
		for i, at := range phase.Stagger(len(chars), solutionText.Start, solutionText.End, charStagger) {
			t.Add(at, phase.Ratchet, phase.Class(chars[i], "revealed"))
		}
	}

	t.Add(solutionMatrix.Start, phase.Ratchet, phase.Effects{
		phase.Class(root.Query("solution-matrix__visual"), "visible"),
		phase.Class(root.Query("solution-matrix__items"), "visible"),
	})

	t.Add(0.45, phase.Ratchet, phase.Class(root.Query("solution-resource-fit__title-wrap"), "visible"))
	t.Add(0.55, phase.Ratchet, phase.Class(root.Query("solution-resource-fit__visual"), "visible"))

	t.Add(0.70, phase.Ratchet, phase.Class(root.Query("solution-opportunity__title-wrap"), "visible"))
	t.Add(0.80, phase.Ratchet, phase.Class(root.Query("solution-opportunity__visual"), "visible"))
	t.Add(0.90, phase.Ratchet, phase.Class(root.Query("solution-opportunity__highlight"), "visible"))
}

// MatrixLevel returns the highlight level (0 to 3) for progress.
func MatrixLevel(progress float64) int {
	if !solutionMatrix.Reached(progress) {
		return 0
	}
	return phase.Level(solutionMatrix.Local(progress), matrixLevels)
}

// Animate implements scroll.Handler.
func (s *Solution) Animate(progress, scrollY float64) {
	s.reveals.Apply(progress)

	if s.title != nil && solutionText.Local(progress) > 0.5 {
		s.title.AddClass("animate")
	}

	level := MatrixLevel(progress)
	if s.hasLevel && level == s.level {
		return
	}
	s.level, s.hasLevel = level, true

	for i, item := range s.items {
		if i < level {
			item.AddClass("highlighted")
		} else {
			item.RemoveClass("highlighted")
		}
	}
	if s.svg == nil {
		return
	}
	for i, cls := range matrixHighlights {
		if i == level-1 {
			continue
		}
		s.svg.RemoveClass(cls)
	}
	if level > 0 {
		s.svg.AddClass(matrixHighlights[level-1])
	}
}
