package scroll

import (
	"testing"
	"time"

	"github.com/user/scrollytell/pkg/adapters/logger"
	"github.com/user/scrollytell/pkg/adapters/memdom"
	"github.com/user/scrollytell/pkg/ports"
)

type recorder struct {
	inits     int
	root      ports.Element
	calls     []float64
	scrolls   []float64
	onAnimate func()
}

func (r *recorder) Init(root ports.Element) {
	r.inits++
	r.root = root
}

func (r *recorder) Animate(progress, scrollY float64) {
	r.calls = append(r.calls, progress)
	r.scrolls = append(r.scrolls, scrollY)
	if r.onAnimate != nil {
		r.onAnimate()
	}
}

func (r *recorder) last() float64 {
	if len(r.calls) == 0 {
		return -1
	}
	return r.calls[len(r.calls)-1]
}

type ticker struct {
	recorder
	remaining int
}

func (t *ticker) Tick(now time.Duration) bool {
	if t.remaining == 0 {
		return false
	}
	t.remaining--
	return t.remaining > 0
}

// fixture lays out three sections in a 1000x800 viewport:
// a [0, 1600), b [1600, 4000), c [4000, 4800).
type fixture struct {
	doc  *memdom.Document
	page *memdom.Page
	ctrl *Controller
	a    *recorder
	b    *recorder
	c    *recorder
}

func newFixture(t *testing.T, opts Options) *fixture {
	t.Helper()
	doc := memdom.New(1000, 800)
	doc.AddSection("a", 0, 1600)
	doc.AddSection("b", 1600, 2400)
	doc.AddSection("c", 4000, 800)
	page := memdom.NewPage(doc)

	f := &fixture{
		doc:  doc,
		page: page,
		ctrl: New(Env{Document: doc, Frames: page.Frames(), Logger: logger.NewNoop()}, opts),
		a:    &recorder{},
		b:    &recorder{},
		c:    &recorder{},
	}
	f.ctrl.Register("a", f.a)
	f.ctrl.Register("b", f.b)
	f.ctrl.Register("c", f.c)
	return f
}

func instantOptions() Options {
	opts := DefaultOptions()
	opts.SmoothScrollDuration = 0
	return opts
}

func TestController_StartRunsInitialPass(t *testing.T) {
	f := newFixture(t, instantOptions())

	var events []Event
	f.ctrl.Subscribe(func(e Event) { events = append(events, e) })
	f.ctrl.Start()

	if f.a.inits != 1 || f.b.inits != 1 || f.c.inits != 1 {
		t.Errorf("inits = %d/%d/%d, want 1 each", f.a.inits, f.b.inits, f.c.inits)
	}
	if len(f.a.calls) != 1 || f.a.last() != 0 {
		t.Errorf("a calls = %v, want [0]", f.a.calls)
	}
	if len(f.c.calls) != 0 {
		t.Errorf("inactive section c was animated: %v", f.c.calls)
	}
	if f.ctrl.CurrentSection() != "a" {
		t.Errorf("CurrentSection() = %q, want a", f.ctrl.CurrentSection())
	}

	want := []Event{{Kind: EventSectionChange, Section: "a"}, {Kind: EventReady}}
	if len(events) != len(want) {
		t.Fatalf("events = %v, want %v", events, want)
	}
	for i := range want {
		if events[i] != want[i] {
			t.Errorf("events[%d] = %v, want %v", i, events[i], want[i])
		}
	}
}

func TestController_StartTwice(t *testing.T) {
	f := newFixture(t, instantOptions())
	f.ctrl.Start()
	f.ctrl.Start()

	if f.a.inits != 1 {
		t.Errorf("Init called %d times, want 1", f.a.inits)
	}
	if f.doc.ListenerCount() != 2 {
		t.Errorf("ListenerCount() = %d, want 2", f.doc.ListenerCount())
	}
}

func TestController_CoalescesScrollEvents(t *testing.T) {
	f := newFixture(t, instantOptions())
	f.ctrl.Start()
	before := f.ctrl.Stats().Updates

	for i := 1; i <= 100; i++ {
		f.doc.ScrollTo(float64(i * 10))
	}

	if got := f.page.Queue().Pending(); got != 1 {
		t.Fatalf("pending frames = %d, want 1", got)
	}
	f.page.Advance(16 * time.Millisecond)

	stats := f.ctrl.Stats()
	if stats.ScrollEvents != 100 {
		t.Errorf("ScrollEvents = %d, want 100", stats.ScrollEvents)
	}
	if stats.Updates-before != 1 {
		t.Errorf("updates after burst = %d, want 1", stats.Updates-before)
	}
	if got := f.a.scrolls[len(f.a.scrolls)-1]; got != 1000 {
		t.Errorf("last animated scrollY = %v, want 1000", got)
	}
	if got := f.a.last(); got != 1 {
		t.Errorf("a progress = %v, want 1", got)
	}
}

func TestController_ProgressStaysInRange(t *testing.T) {
	f := newFixture(t, instantOptions())
	f.doc.Overscroll = true
	f.ctrl.Start()

	for _, y := range []float64{-400, 0, 300, 1600, 2500, 3200, 4000, 6000} {
		f.doc.ScrollTo(y)
		f.page.Advance(0)
	}

	for name, r := range map[string]*recorder{"a": f.a, "b": f.b, "c": f.c} {
		for _, p := range r.calls {
			if p < 0 || p > 1 {
				t.Errorf("section %s received progress %v", name, p)
			}
		}
	}
	if f.b.last() != 1 {
		t.Errorf("b progress at bottom = %v, want 1", f.b.last())
	}
}

func TestController_SectionChangeFiresOnce(t *testing.T) {
	f := newFixture(t, instantOptions())
	f.ctrl.Start()

	var changes []string
	f.ctrl.Subscribe(func(e Event) {
		if e.Kind == EventSectionChange {
			changes = append(changes, e.Section)
		}
	})

	for _, y := range []float64{100, 200, 300, 1300, 1400, 2000, 900, 800} {
		f.doc.ScrollTo(y)
		f.page.Advance(0)
	}

	want := []string{"b", "a"}
	if len(changes) != len(want) {
		t.Fatalf("changes = %v, want %v", changes, want)
	}
	for i := range want {
		if changes[i] != want[i] {
			t.Errorf("changes[%d] = %q, want %q", i, changes[i], want[i])
		}
	}
}

func TestController_InactiveSectionsAreSkipped(t *testing.T) {
	f := newFixture(t, instantOptions())
	f.ctrl.Start()

	f.doc.ScrollTo(3200)
	f.page.Advance(0)
	if len(f.a.calls) != 1 {
		t.Errorf("a animated while out of view: %v", f.a.calls)
	}
	st, _ := f.ctrl.Section("a")
	if st.Active {
		t.Error("section a should be inactive at scrollY 3200")
	}
	if len(f.c.calls) == 0 {
		t.Error("section c should be animated once in view")
	}
}

func TestController_ProgressBar(t *testing.T) {
	doc := memdom.New(1000, 800)
	doc.AddSection("a", 0, 4800)
	bar := doc.BodyNode().Append("progress-bar__fill")
	page := memdom.NewPage(doc)

	ctrl := New(Env{Document: doc, Frames: page.Frames(), Logger: logger.NewNoop()}, instantOptions())
	ctrl.Register("a", &recorder{})
	ctrl.Start()

	if got := bar.Style("transform"); got != "scaleX(0.0000)" {
		t.Errorf("initial transform = %q", got)
	}

	doc.ScrollTo(2000)
	page.Advance(0)
	if got := bar.Style("transform"); got != "scaleX(0.5000)" {
		t.Errorf("transform = %q, want scaleX(0.5000)", got)
	}
	if ctrl.PageProgress() != 0.5 {
		t.Errorf("PageProgress() = %v, want 0.5", ctrl.PageProgress())
	}
}

func TestController_ScrollHeightOverride(t *testing.T) {
	doc := memdom.New(1000, 800)
	doc.AddSection("a", 0, 800).WithAttr(ScrollHeightAttr, "300vh")
	page := memdom.NewPage(doc)

	ctrl := New(Env{Document: doc, Frames: page.Frames(), Logger: logger.NewNoop()}, instantOptions())
	ctrl.Register("a", &recorder{})
	ctrl.Start()

	st, ok := ctrl.Section("a")
	if !ok || !st.HasBounds {
		t.Fatalf("Section(a) = %+v, %v", st, ok)
	}
	if st.Bounds.Height != 2400 || st.Bounds.Bottom != 2400 {
		t.Errorf("Bounds = %+v, want height 2400", st.Bounds)
	}
}

func TestController_UnresolvedSection(t *testing.T) {
	f := newFixture(t, instantOptions())
	missing := &recorder{}
	f.ctrl.Register("missing", missing)
	f.ctrl.Start()

	st, ok := f.ctrl.Section("missing")
	if !ok {
		t.Fatal("missing section should stay registered")
	}
	if st.Resolved || st.HasBounds {
		t.Errorf("state = %+v, want unresolved", st)
	}
	if missing.inits != 0 || len(missing.calls) != 0 {
		t.Error("unresolved handler should never run")
	}

	f.ctrl.ScrollToSection("missing")
	if f.doc.ScrollY() != 0 {
		t.Errorf("ScrollToSection(missing) moved to %v", f.doc.ScrollY())
	}
}

func TestController_LateRegistration(t *testing.T) {
	doc := memdom.New(1000, 800)
	doc.AddSection("a", 0, 1600)
	doc.AddSection("b", 1600, 800)
	page := memdom.NewPage(doc)

	ctrl := New(Env{Document: doc, Frames: page.Frames(), Logger: logger.NewNoop()}, instantOptions())
	ctrl.Register("a", &recorder{})
	ctrl.Start()

	late := &recorder{}
	ctrl.Register("b", late)
	if late.inits != 1 {
		t.Fatalf("late handler inits = %d, want 1", late.inits)
	}
	st, _ := ctrl.Section("b")
	if !st.HasBounds || st.Bounds.Top != 1600 {
		t.Errorf("late section state = %+v", st)
	}

	doc.ScrollTo(1000)
	page.Advance(0)
	if len(late.calls) == 0 {
		t.Error("late section was never animated")
	}

	ids := ctrl.SectionIDs()
	if len(ids) != 2 || ids[1] != "b" {
		t.Errorf("SectionIDs() = %v", ids)
	}
}

func TestController_ReplaceHandlerKeepsOrder(t *testing.T) {
	f := newFixture(t, instantOptions())
	replacement := &recorder{}
	f.ctrl.Register("a", replacement)
	f.ctrl.Start()

	ids := f.ctrl.SectionIDs()
	if len(ids) != 3 || ids[0] != "a" {
		t.Errorf("SectionIDs() = %v", ids)
	}
	if f.a.inits != 0 || replacement.inits != 1 {
		t.Errorf("old inits = %d, new inits = %d", f.a.inits, replacement.inits)
	}
}

func TestController_ScrollToSectionInstant(t *testing.T) {
	f := newFixture(t, instantOptions())
	f.ctrl.Start()

	f.ctrl.ScrollToSection("b")
	if f.doc.ScrollY() != 1600 {
		t.Errorf("ScrollY() = %v, want 1600", f.doc.ScrollY())
	}
	if f.ctrl.Scrolling() {
		t.Error("instant scroll should not leave a tween running")
	}
}

func TestController_ScrollToSectionSmooth(t *testing.T) {
	f := newFixture(t, DefaultOptions())
	f.ctrl.Start()

	f.ctrl.ScrollToSection("b")
	if !f.ctrl.Scrolling() {
		t.Fatal("Scrolling() = false after ScrollToSection")
	}

	prev := 0.0
	now := time.Duration(0)
	for i := 0; i < 200 && f.page.Queue().Pending() > 0; i++ {
		now += 16 * time.Millisecond
		f.page.Advance(now)
		y := f.doc.ScrollY()
		if y < prev {
			t.Fatalf("scroll moved backwards: %v -> %v", prev, y)
		}
		prev = y
	}

	if f.ctrl.Scrolling() {
		t.Fatal("smooth scroll did not finish")
	}
	if f.doc.ScrollY() != 1600 {
		t.Errorf("ScrollY() = %v, want 1600", f.doc.ScrollY())
	}
	if f.ctrl.CurrentSection() != "b" {
		t.Errorf("CurrentSection() = %q, want b", f.ctrl.CurrentSection())
	}
}

func TestController_TickersRequestFrames(t *testing.T) {
	doc := memdom.New(1000, 800)
	doc.AddSection("a", 0, 1600)
	page := memdom.NewPage(doc)

	ctrl := New(Env{Document: doc, Frames: page.Frames(), Logger: logger.NewNoop()}, instantOptions())
	tk := &ticker{remaining: 3}
	ctrl.Register("a", tk)
	ctrl.Start()

	frames := 0
	for page.Queue().Pending() > 0 && frames < 10 {
		frames++
		page.Advance(time.Duration(frames) * 16 * time.Millisecond)
	}
	if tk.remaining != 0 {
		t.Errorf("remaining ticks = %d, want 0", tk.remaining)
	}
	if frames != 2 {
		t.Errorf("frames = %d, want 2", frames)
	}
}

func TestController_Destroy(t *testing.T) {
	f := newFixture(t, instantOptions())
	f.ctrl.Start()

	f.doc.ScrollTo(500)
	if f.page.Queue().Pending() != 1 {
		t.Fatal("expected a pending frame")
	}
	calls := len(f.a.calls)
	updates := f.ctrl.Stats().Updates

	f.ctrl.Destroy()
	f.ctrl.Destroy()

	if f.doc.ListenerCount() != 0 {
		t.Errorf("ListenerCount() = %d, want 0", f.doc.ListenerCount())
	}
	if f.doc.ActiveObservers() != 0 {
		t.Errorf("ActiveObservers() = %d, want 0", f.doc.ActiveObservers())
	}

	f.page.Advance(16 * time.Millisecond)
	if len(f.a.calls) != calls {
		t.Error("stale frame animated a section after destroy")
	}
	if f.ctrl.Stats().Updates != updates {
		t.Error("stale frame ran an update after destroy")
	}
	if !f.ctrl.Destroyed() || len(f.ctrl.SectionIDs()) != 0 {
		t.Error("registry should be empty after destroy")
	}

	f.ctrl.Register("a", &recorder{})
	f.ctrl.Start()
	if len(f.ctrl.SectionIDs()) != 0 || f.doc.ListenerCount() != 0 {
		t.Error("destroyed controller should ignore Register and Start")
	}
}

func TestController_DestroyDuringAnimate(t *testing.T) {
	f := newFixture(t, instantOptions())
	f.a.onAnimate = func() { f.ctrl.Destroy() }

	f.ctrl.Start()
	if !f.ctrl.Destroyed() {
		t.Fatal("controller should be destroyed")
	}
	if len(f.b.calls) != 0 {
		t.Error("no section should run after destroy")
	}
}

func TestController_Resize(t *testing.T) {
	f := newFixture(t, instantOptions())
	f.ctrl.Start()

	f.doc.ScrollTo(1600)
	f.page.Advance(0)
	// b spans 2400 with an 800 viewport: travel 1600, progress 0.
	if f.b.last() != 0 {
		t.Fatalf("b progress = %v, want 0", f.b.last())
	}

	f.doc.Resize(1000, 400)
	f.doc.ScrollTo(2600)
	f.page.Advance(0)
	// travel is now 2000: (2600-1600)/2000.
	if f.b.last() != 0.5 {
		t.Errorf("b progress after resize = %v, want 0.5", f.b.last())
	}
}
