package memdom

import (
	"testing"
	"time"

	"github.com/user/scrollytell/pkg/ports"
)

func TestNode_Classes(t *testing.T) {
	doc := New(1000, 800)
	n := doc.BodyNode().Append("card", "")

	n.AddClass("visible", "visible")
	if got := n.ClassName(); got != "card visible" {
		t.Errorf("ClassName() = %q, want %q", got, "card visible")
	}
	n.RemoveClass("card", "missing")
	if n.HasClass("card") || !n.HasClass("visible") {
		t.Errorf("classes after remove = %v", n.Classes())
	}
}

func TestNode_Styles(t *testing.T) {
	n := New(1000, 800).BodyNode().Append()
	n.SetStyle("opacity", "0.5")
	n.SetStyle("transform", "scale(1)")
	n.SetStyle("transform", "")

	if n.Style("opacity") != "0.5" {
		t.Errorf("opacity = %q", n.Style("opacity"))
	}
	if props := n.StyleProperties(); len(props) != 1 {
		t.Errorf("StyleProperties() = %v, want only opacity", props)
	}
}

func TestNode_RectFollowsScroll(t *testing.T) {
	doc := New(1000, 800)
	n := doc.AddSection("a", 1200, 400)
	doc.AddSection("b", 1600, 2000)

	doc.ScrollTo(1000)
	r := n.Rect()
	if r.Top != 200 || r.Height != 400 || r.Width != 1000 {
		t.Errorf("Rect() = %+v, want top 200 height 400 width 1000", r)
	}
}

func TestDocument_ScrollToClamps(t *testing.T) {
	tests := []struct {
		name       string
		overscroll bool
		y          float64
		want       float64
	}{
		{"inside", false, 500, 500},
		{"past end", false, 5000, 2200},
		{"negative", false, -100, 0},
		{"overscroll end", true, 5000, 5000},
		{"overscroll negative", true, -100, -100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := New(1000, 800)
			doc.AddSection("a", 0, 3000)
			doc.Overscroll = tt.overscroll

			doc.ScrollTo(tt.y)
			if doc.ScrollY() != tt.want {
				t.Errorf("ScrollY() = %v, want %v", doc.ScrollY(), tt.want)
			}
		})
	}
}

func TestDocument_ObserversRunBeforeListeners(t *testing.T) {
	doc := New(1000, 800)
	doc.AddSection("a", 0, 800)
	b := doc.AddSection("b", 800, 800)

	var order []string
	o := doc.Observe(ports.ObserverOptions{Thresholds: []float64{0, 1}}, func([]ports.IntersectionEntry) {
		order = append(order, "observer")
	})
	doc.OnScroll(func() { order = append(order, "scroll") })

	o.Observe(b)
	if len(order) != 1 {
		t.Fatalf("Observe should check immediately, got %v", order)
	}

	doc.ScrollTo(800)
	doc.ScrollTo(800)
	want := []string{"observer", "observer", "scroll"}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("order = %v, want %v", order, want)
			break
		}
	}

	if doc.ActiveObservers() != 1 {
		t.Errorf("ActiveObservers() = %d, want 1", doc.ActiveObservers())
	}
	o.Disconnect()
	if doc.ActiveObservers() != 0 {
		t.Errorf("ActiveObservers() = %d after disconnect, want 0", doc.ActiveObservers())
	}
}

func TestDocument_Listeners(t *testing.T) {
	doc := New(1000, 800)
	doc.AddSection("a", 0, 3000)

	resized := 0
	removeResize := doc.OnResize(func() { resized++ })
	removeScroll := doc.OnScroll(func() {})
	if doc.ListenerCount() != 2 {
		t.Fatalf("ListenerCount() = %d, want 2", doc.ListenerCount())
	}

	doc.Resize(400, 700)
	if w, h := doc.Viewport(); w != 400 || h != 700 || resized != 1 {
		t.Errorf("Viewport() = %vx%v, resized %d", w, h, resized)
	}

	removeResize()
	removeScroll()
	if doc.ListenerCount() != 0 {
		t.Errorf("ListenerCount() = %d after removal, want 0", doc.ListenerCount())
	}
}

func TestBuild(t *testing.T) {
	doc := Build(Layout{
		Width:  1000,
		Height: 800,
		Sections: []SectionLayout{
			{ID: "intro", Height: 1600, Elements: []ElementSpec{{Class: "hero"}}},
			{ID: "cards", Height: 2400, ScrollHeight: "300vh", Elements: []ElementSpec{
				{Class: "card-wrapper", Count: 3, Attrs: map[string]string{"data-index": "{i}"},
					Children: []ElementSpec{{Class: "card"}}},
			}},
		},
		Chrome: []ElementSpec{
			{Class: "nav__dot-btn", Attrs: map[string]string{"data-section": "intro"}},
			{Class: "footer", Attrs: map[string]string{"id": "contact"}},
		},
	})

	cards := doc.ByID("cards")
	if cards == nil {
		t.Fatal("cards section missing")
	}
	if cards.Rect().Top != 1600 {
		t.Errorf("cards top = %v, want 1600", cards.Rect().Top)
	}
	if v, _ := cards.Attr("data-scroll-height"); v != "300vh" {
		t.Errorf("data-scroll-height = %q", v)
	}

	wrappers := cards.QueryAll("card-wrapper")
	if len(wrappers) != 3 {
		t.Fatalf("wrappers = %d, want 3", len(wrappers))
	}
	if v, _ := wrappers[2].Attr("data-index"); v != "2" {
		t.Errorf("data-index = %q, want 2", v)
	}
	if len(cards.QueryAll("card")) != 3 {
		t.Error("each wrapper should hold a card")
	}

	footer := doc.ByID("contact")
	if footer == nil || footer.Rect().Top != 4000 || footer.OffsetHeight() != 800 {
		t.Errorf("footer = %+v", footer)
	}
	if doc.ScrollHeight() != 4800 {
		t.Errorf("ScrollHeight() = %v, want 4800", doc.ScrollHeight())
	}
	if doc.Query("nav__dot-btn") == nil {
		t.Error("nav dot missing")
	}
}

func TestPage_Advance(t *testing.T) {
	p := NewPage(New(1000, 800))
	var got time.Duration
	p.Frames().RequestFrame(func(now time.Duration) { got = now })

	p.Advance(16 * time.Millisecond)
	if got != 16*time.Millisecond {
		t.Errorf("frame ran at %v, want 16ms", got)
	}
	if p.Queue().Ticks() != 1 || p.Queue().Pending() != 0 {
		t.Errorf("ticks = %d, pending = %d", p.Queue().Ticks(), p.Queue().Pending())
	}
	if data, err := p.Screenshot(); data != nil || err != nil {
		t.Errorf("Screenshot() = %v, %v, want nil, nil", data, err)
	}
}
