package sections

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/user/scrollytell/pkg/adapters/memdom"
	"github.com/user/scrollytell/pkg/scroll"
)

func newRoot(classes ...string) *memdom.Node {
	doc := memdom.New(1000, 800)
	return doc.AddSection("s", 0, 2400, classes...)
}

func classesOf(nodes []*memdom.Node, class string) string {
	out := ""
	for _, n := range nodes {
		if n.HasClass(class) {
			out += "1"
		} else {
			out += "0"
		}
	}
	return out
}

func TestFlipCards(t *testing.T) {
	root := newRoot()
	var wrappers, cards []*memdom.Node
	for i := 0; i < 3; i++ {
		w := root.Append("flip-card-wrapper")
		wrappers = append(wrappers, w)
		cards = append(cards, w.Append("flip-card"))
	}

	h := NewFlipCards()
	h.Init(root)

	steps := []struct {
		progress    float64
		wantVisible string
		wantFlipped string
	}{
		{0, "100", "000"},
		{0.13, "110", "100"},
		{0.30, "111", "110"},
		{0.80, "111", "111"},
		{0.10, "111", "111"}, // nothing reverts
	}
	for _, st := range steps {
		h.Animate(st.progress, 0)
		if got := classesOf(wrappers, "visible"); got != st.wantVisible {
			t.Errorf("progress %v: visible = %s, want %s", st.progress, got, st.wantVisible)
		}
		if got := classesOf(cards, "flipped"); got != st.wantFlipped {
			t.Errorf("progress %v: flipped = %s, want %s", st.progress, got, st.wantFlipped)
		}
	}
}

func TestFlipCards_Thresholds(t *testing.T) {
	root := newRoot()
	for i := 0; i < 4; i++ {
		root.Append("flip-card-wrapper").Append("flip-card")
	}
	h := NewFlipCards()
	h.Init(root)

	if got := h.HoldAt(4); got != 0.8 {
		t.Errorf("HoldAt(4) = %v, want 0.8", got)
	}
	for i := 1; i < 4; i++ {
		if h.RevealAt(i) >= h.FlipAt(i) {
			t.Errorf("card %d reveals at %v, not before its flip at %v", i, h.RevealAt(i), h.FlipAt(i))
		}
		if h.FlipAt(i) <= h.FlipAt(i-1) {
			t.Errorf("flip thresholds not increasing at %d", i)
		}
	}
}

func TestFlipCards_Empty(t *testing.T) {
	h := NewFlipCards()
	h.Init(newRoot())
	h.Animate(0.5, 0)
}

func TestFade(t *testing.T) {
	tests := []struct {
		name    string
		handler *Fade
		heading string
		visual  string
		steps   []struct {
			progress        float64
			heading, visual bool
		}
	}{
		{
			name: "problem", handler: NewProblem(), heading: "problem__title", visual: "problem__subtitle",
			steps: []struct {
				progress        float64
				heading, visual bool
			}{{0.05, false, false}, {0.1, true, false}, {0.6, true, true}, {0.3, true, false}, {0, false, false}},
		},
		{
			name: "growth", handler: NewGrowth(), heading: "growth__title", visual: "growth__svg",
			steps: []struct {
				progress        float64
				heading, visual bool
			}{{0.2, true, false}, {0.3, true, true}, {0.09, false, false}},
		},
		{
			name: "strategy", handler: NewStrategy(), heading: "strategy__heading", visual: "strategy__svg",
			steps: []struct {
				progress        float64
				heading, visual bool
			}{{0.15, true, false}, {1, true, true}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := newRoot()
			heading := root.Append(tt.heading)
			visual := root.Append(tt.visual)
			tt.handler.Init(root)

			for _, st := range tt.steps {
				tt.handler.Animate(st.progress, 0)
				if heading.HasClass("visible") != st.heading || visual.HasClass("visible") != st.visual {
					t.Errorf("progress %v: heading=%v visual=%v, want %v/%v",
						st.progress, heading.HasClass("visible"), visual.HasClass("visible"), st.heading, st.visual)
				}
			}
		})
	}
}

func TestHero(t *testing.T) {
	root := newRoot()
	content := root.Append("hero")
	title := content.Append("hero__title")
	desc := content.Append("hero__desc")
	cta := content.Append("hero__cta")

	h := NewHero()
	h.Init(root)

	h.Animate(0, 0)
	if got := content.Style("transform"); got != "translateY(-0.00px)" && got != "translateY(0.00px)" {
		t.Errorf("transform at 0 = %q", got)
	}
	if got := content.Style("opacity"); got != "1.000" {
		t.Errorf("opacity at 0 = %q", got)
	}

	h.Animate(1, 0)
	if got := content.Style("transform"); got != "translateY(-75.00px)" {
		t.Errorf("transform at 1 = %q", got)
	}
	if got := content.Style("opacity"); got != "0.300" {
		t.Errorf("opacity at 1 = %q", got)
	}

	ticks := []struct {
		now  time.Duration
		want string
	}{
		{0, "000"},
		{299 * time.Millisecond, "000"},
		{300 * time.Millisecond, "100"},
		{500 * time.Millisecond, "110"},
		{700 * time.Millisecond, "111"},
	}
	for _, tk := range ticks {
		more := h.Tick(tk.now)
		if got := classesOf([]*memdom.Node{title, desc, cta}, "visible"); got != tk.want {
			t.Errorf("at %v: visible = %s, want %s", tk.now, got, tk.want)
		}
		if tk.want == "111" && more {
			t.Error("Tick should report done after the last step")
		}
	}
}

func TestHero_MissingContent(t *testing.T) {
	h := NewHero()
	h.Init(newRoot())
	h.Animate(0.5, 0)
	h.Tick(0)
	if h.Tick(time.Second) {
		t.Error("intro should finish without its elements")
	}
}

func TestFutureOutlook(t *testing.T) {
	root := newRoot()
	var titles, circles []*memdom.Node
	for i := 0; i < 3; i++ {
		titles = append(titles, root.Append("future-outlook__title-item"))
		circles = append(circles, root.Append("future-circle"))
	}

	h := NewFutureOutlook()
	h.Init(root)

	steps := []struct {
		progress                      float64
		active, exiting, circleVisible string
	}{
		{0.0, "100", "000", "000"},
		{0.2, "100", "000", "100"},
		{0.4, "010", "100", "110"},
		{0.75, "001", "110", "111"},
		{0.1, "100", "000", "111"},
	}
	for _, st := range steps {
		h.Animate(st.progress, 0)
		if got := classesOf(titles, "active"); got != st.active {
			t.Errorf("progress %v: active = %s, want %s", st.progress, got, st.active)
		}
		if got := classesOf(titles, "exiting"); got != st.exiting {
			t.Errorf("progress %v: exiting = %s, want %s", st.progress, got, st.exiting)
		}
		if got := classesOf(circles, "visible"); got != st.circleVisible {
			t.Errorf("progress %v: circles = %s, want %s", st.progress, got, st.circleVisible)
		}
	}
}

func TestMatrixLevel(t *testing.T) {
	tests := []struct {
		progress float64
		want     int
	}{
		{0, 0},
		{0.14, 0},
		{0.15, 1},
		{0.19, 1},
		{0.20, 2},
		{0.25, 2},
		{0.30, 3},
		{0.45, 3},
		{1, 3},
	}
	for _, tt := range tests {
		if got := MatrixLevel(tt.progress); got != tt.want {
			t.Errorf("MatrixLevel(%v) = %d, want %d", tt.progress, got, tt.want)
		}
	}
}

func TestSolution(t *testing.T) {
	root := newRoot()
	textItem := root.Append("solution-text__item")
	title := root.Append("solution-text__title--disintegrate")
	var chars []*memdom.Node
	for i := 0; i < 5; i++ {
		chars = append(chars, title.Append("char"))
	}
	visual := root.Append("solution-matrix__visual")
	itemsWrap := root.Append("solution-matrix__items")
	var items []*memdom.Node
	for i := 0; i < 3; i++ {
		items = append(items, itemsWrap.Append("solution-matrix__item"))
	}
	svg := root.Append("solution-matrix__svg--colored")
	fitTitle := root.Append("solution-resource-fit__title-wrap")
	highlight := root.Append("solution-opportunity__highlight")

	h := NewSolution()
	h.Init(root)

	h.Animate(0.01, 0)
	if textItem.HasClass("visible") || chars[0].HasClass("revealed") {
		t.Error("nothing should show before 0.02")
	}

	h.Animate(0.05, 0)
	if !textItem.HasClass("visible") {
		t.Error("text item should be visible at 0.05")
	}
	if got := classesOf(chars, "revealed"); got != "11000" {
		t.Errorf("revealed chars at 0.05 = %s, want 11000", got)
	}
	if title.HasClass("animate") {
		t.Error("title should not animate before half of its stage")
	}

	h.Animate(0.10, 0)
	if !title.HasClass("animate") {
		t.Error("title should animate past half of its stage")
	}
	if got := classesOf(items, "highlighted"); got != "000" {
		t.Errorf("highlighted before matrix stage = %s", got)
	}
	if svg.HasClass("highlight-h1") || visual.HasClass("visible") {
		t.Error("matrix should be idle before 0.15")
	}

	h.Animate(0.30, 0)
	if got := classesOf(items, "highlighted"); got != "111" {
		t.Errorf("highlighted at 0.30 = %s, want 111", got)
	}
	if !svg.HasClass("highlight-all") || svg.HasClass("highlight-h1") || svg.HasClass("highlight-h1-h2") {
		t.Errorf("svg classes at 0.30 = %s", svg.ClassName())
	}
	if !visual.HasClass("visible") || !itemsWrap.HasClass("visible") {
		t.Error("matrix visual should show at 0.30")
	}

	h.Animate(0.20, 0)
	if got := classesOf(items, "highlighted"); got != "110" {
		t.Errorf("highlighted at 0.20 = %s, want 110", got)
	}
	if !svg.HasClass("highlight-h1-h2") || svg.HasClass("highlight-all") {
		t.Errorf("svg classes at 0.20 = %s", svg.ClassName())
	}

	h.Animate(0.95, 0)
	if !fitTitle.HasClass("visible") || !highlight.HasClass("visible") {
		t.Error("late stages should be visible at 0.95")
	}
	if got := classesOf(chars, "revealed"); got != "11111" {
		t.Errorf("revealed chars at 0.95 = %s", got)
	}

	h.Animate(0, 0)
	if got := classesOf(chars, "revealed"); got != "11111" {
		t.Error("revealed chars should stay revealed")
	}
	if !textItem.HasClass("visible") || !visual.HasClass("visible") || !itemsWrap.HasClass("visible") {
		t.Error("text and matrix stages should stay visible after scrolling back")
	}
	if !fitTitle.HasClass("visible") || !highlight.HasClass("visible") {
		t.Error("late stages should stay visible after scrolling back")
	}
	if got := classesOf(items, "highlighted"); got != "000" {
		t.Errorf("highlighted at 0 = %s, want 000", got)
	}
	if svg.HasClass("highlight-h1") || svg.HasClass("highlight-h1-h2") || svg.HasClass("highlight-all") {
		t.Errorf("svg classes at 0 = %s", svg.ClassName())
	}
}

func TestResources(t *testing.T) {
	root := newRoot()
	heading := root.Append("resources__heading")
	var books, links []*memdom.Node
	for i := 0; i < 3; i++ {
		books = append(books, root.Append("resources__book"))
		links = append(links, root.Append("resources__link-block"))
	}

	h := NewResources()
	h.Init(root)

	steps := []struct {
		progress    float64
		heading     bool
		visible     string
		highlighted string
	}{
		{0.0, false, "000", "000"},
		{0.05, true, "000", "000"},
		{0.15, true, "100", "100"},
		{0.45, true, "110", "010"},
		{0.7, true, "111", "001"},
		{0.95, true, "111", "001"},
		{0.2, true, "100", "100"},
	}
	for _, st := range steps {
		h.Animate(st.progress, 0)
		if heading.HasClass("visible") != st.heading {
			t.Errorf("progress %v: heading visible = %v", st.progress, heading.HasClass("visible"))
		}
		if got := classesOf(books, "visible"); got != st.visible {
			t.Errorf("progress %v: books = %s, want %s", st.progress, got, st.visible)
		}
		if got := classesOf(links, "visible"); got != st.visible {
			t.Errorf("progress %v: links = %s, want %s", st.progress, got, st.visible)
		}
		if got := classesOf(links, "highlighted"); got != st.highlighted {
			t.Errorf("progress %v: highlighted = %s, want %s", st.progress, got, st.highlighted)
		}
	}
}

func TestResources_ExtraItems(t *testing.T) {
	root := newRoot()
	var books []*memdom.Node
	for i := 0; i < 4; i++ {
		books = append(books, root.Append("resources__book"))
	}
	h := NewResources()
	h.Init(root)

	h.Animate(0.8, 0)
	if got := classesOf(books, "visible"); got != "1110" {
		t.Errorf("books at 0.8 = %s, want 1110", got)
	}
	h.Animate(0.9, 0)
	if got := classesOf(books, "visible"); got != "1111" {
		t.Errorf("books at 0.9 = %s, want 1111", got)
	}
}

func TestRegistry(t *testing.T) {
	r := Default()
	for _, kind := range []string{KindHero, KindFlipCards, KindProblem, KindFutureOutlook, KindSolution, KindGrowth, KindStrategy, KindResources} {
		h, err := r.New(kind)
		if err != nil {
			t.Errorf("New(%q) error = %v", kind, err)
			continue
		}
		if h == nil {
			t.Errorf("New(%q) returned nil", kind)
		}
	}
	if got := len(r.Kinds()); got != 8 {
		t.Errorf("Kinds() has %d entries, want 8", got)
	}

	_, err := r.New("carousel")
	if !errors.Is(err, ErrUnknownKind) {
		t.Errorf("New(carousel) error = %v, want ErrUnknownKind", err)
	}

	a, _ := r.New(KindHero)
	b, _ := r.New(KindHero)
	if fmt.Sprintf("%p", a) == fmt.Sprintf("%p", b) {
		t.Error("New should return a fresh handler each call")
	}

	if _, ok := a.(scroll.Ticker); !ok {
		t.Error("hero handler should be a ticker")
	}
}
