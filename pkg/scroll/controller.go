// Package scroll implements the scroll controller: the single authority that
// turns the page's scroll offset into per-section progress, decides which
// section is current, and feeds the page-wide progress bar.
package scroll

import (
	"fmt"
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/user/scrollytell/pkg/ports"
	"github.com/user/scrollytell/pkg/scrollmath"
)

// Env carries the collaborators a controller works against.
type Env struct {
	Document ports.Document
	Frames   ports.FrameScheduler
	Logger   ports.Logger
}

// Options tunes the controller.
type Options struct {
	RootMargin       float64   // Observer margin above and below the viewport (default: 100)
	Thresholds       []float64 // Observer thresholds (default: 0, .1, .5, .9, 1)
	ProgressBarClass string    // Class of the page progress bar fill (default: progress-bar__fill)

	SmoothScrollDuration time.Duration // Duration of ScrollToSection (0 = jump)
	SmoothScrollEase     ease.TweenFunc
}

// DefaultOptions returns Options with default values.
func DefaultOptions() Options {
	return Options{
		RootMargin:           100,
		Thresholds:           []float64{0, 0.1, 0.5, 0.9, 1},
		ProgressBarClass:     "progress-bar__fill",
		SmoothScrollDuration: 600 * time.Millisecond,
		SmoothScrollEase:     ease.OutCubic,
	}
}

// Stats counts controller activity.
type Stats struct {
	ScrollEvents    int // Scroll events received
	FramesRequested int // Frame callbacks requested
	Updates         int // Update passes run
	SectionChanges  int // section-change events emitted
}

// Controller maps scroll position to section state.
type Controller struct {
	doc    ports.Document
	frames ports.FrameScheduler
	logger ports.Logger
	opts   Options

	order    []string
	sections map[string]*Section

	observer     ports.Observer
	removeScroll func()
	removeResize func()
	progressBar  ports.Element

	scrollY        float64
	viewportHeight float64
	documentHeight float64
	pageProgress   float64
	current        string

	scheduled bool
	started   bool
	destroyed bool

	smooth   *smoothScroll
	lastTick time.Duration

	events emitter
	stats  Stats
}

// New creates a controller. env.Logger is required; use a no-op logger to silence it.
func New(env Env, opts Options) *Controller {
	if len(opts.Thresholds) == 0 {
		opts.Thresholds = DefaultOptions().Thresholds
	}
	if opts.SmoothScrollEase == nil {
		opts.SmoothScrollEase = ease.OutCubic
	}
	return &Controller{
		doc:      env.Document,
		frames:   env.Frames,
		logger:   env.Logger.WithComponent("scroll"),
		opts:     opts,
		sections: make(map[string]*Section),
	}
}

// Register adds a section. Registering an existing id replaces its handler and
// keeps its position. After Start the section is resolved immediately.
func (c *Controller) Register(id string, handler Handler) {
	if c.destroyed {
		return
	}
	if id == "" || handler == nil {
		c.logger.Warn("Ignoring section registration without id or handler")
		return
	}

	s, ok := c.sections[id]
	if ok {
		s.Handler = handler
	} else {
		s = &Section{ID: id, Handler: handler}
		c.sections[id] = s
		c.order = append(c.order, id)
	}
	c.logger.Debug("Registered section: %s", id)

	if c.started {
		c.resolve(s)
		if s.Resolved() {
			c.measure(s)
			c.observer.Observe(s.Element)
		}
	}
}

// Start resolves section elements, measures them, installs listeners and the
// visibility observer, runs one update pass and emits EventReady.
// Calling Start more than once has no effect.
func (c *Controller) Start() {
	if c.started || c.destroyed {
		return
	}
	c.started = true

	_, c.viewportHeight = c.doc.Viewport()
	c.scrollY = c.doc.ScrollY()

	for _, id := range c.order {
		c.resolve(c.sections[id])
	}
	c.measureAll()
	if c.opts.ProgressBarClass != "" {
		c.progressBar = c.doc.Query(c.opts.ProgressBarClass)
	}

	c.observer = c.doc.Observe(ports.ObserverOptions{
		RootMargin: c.opts.RootMargin,
		Thresholds: c.opts.Thresholds,
	}, c.onIntersect)
	for _, id := range c.order {
		if s := c.sections[id]; s.Resolved() {
			c.observer.Observe(s.Element)
		}
	}

	c.removeScroll = c.doc.OnScroll(c.onScroll)
	c.removeResize = c.doc.OnResize(c.onResize)

	c.update(c.lastTick)

	c.logger.Debug("Scroll controller started with %d sections", len(c.order))
	c.events.emit(Event{Kind: EventReady})
}

// resolve looks up the section's root element and initializes its handler.
func (c *Controller) resolve(s *Section) {
	el := c.doc.SectionElement(s.ID)
	if el == nil {
		c.logger.Debug("Section not found: %s", s.ID)
		return
	}
	s.Element = el
	s.Handler.Init(el)
}

func (c *Controller) measure(s *Section) {
	if !s.Resolved() {
		return
	}
	s.Bounds = measure(s.Element, c.doc.ScrollY(), c.viewportHeight)
	s.measured = true
}

// measureAll recomputes every section's bounds. It only reads layout.
func (c *Controller) measureAll() {
	for _, id := range c.order {
		c.measure(c.sections[id])
	}
	c.documentHeight = c.doc.ScrollHeight()
}

func (c *Controller) onIntersect(entries []ports.IntersectionEntry) {
	for _, e := range entries {
		id, ok := e.Target.Attr(SectionAttr)
		if !ok {
			continue
		}
		if s, ok := c.sections[id]; ok {
			s.Active = e.IsIntersecting
		}
	}
}

func (c *Controller) onScroll() {
	if c.destroyed {
		return
	}
	c.stats.ScrollEvents++
	c.scrollY = c.doc.ScrollY()
	c.schedule()
}

func (c *Controller) onResize() {
	if c.destroyed {
		return
	}
	_, c.viewportHeight = c.doc.Viewport()
	c.measureAll()
}

// schedule requests one update on the next frame unless one is already pending.
func (c *Controller) schedule() {
	if c.scheduled {
		return
	}
	c.scheduled = true
	c.stats.FramesRequested++
	c.frames.RequestFrame(c.update)
}

// update is the per-frame pass.
func (c *Controller) update(now time.Duration) {
	c.scheduled = false
	if c.destroyed {
		return
	}
	c.stats.Updates++
	c.lastTick = now

	c.stepSmoothScroll(now)

	center := c.scrollY + c.viewportHeight/2
	next := ""
	for _, id := range c.order {
		s, ok := c.sections[id]
		if !ok || !s.Active || !s.measured {
			continue
		}

		s.progress = Progress(s.Bounds, c.scrollY, c.viewportHeight)
		s.Handler.Animate(s.progress, c.scrollY)
		if c.destroyed {
			return
		}

		if center >= s.Bounds.Top && center < s.Bounds.Bottom {
			next = id
		}
	}

	if next != c.current {
		c.current = next
		c.stats.SectionChanges++
		c.logger.Debug("Current section: %q", next)
		c.events.emit(Event{Kind: EventSectionChange, Section: next})
	}

	c.updateProgressBar()

	more := c.tickHandlers(now)
	if (more || c.smooth != nil) && !c.destroyed {
		c.schedule()
	}
}

func (c *Controller) tickHandlers(now time.Duration) bool {
	more := false
	for _, id := range c.order {
		s, ok := c.sections[id]
		if !ok || !s.Resolved() {
			continue
		}
		if t, ok := s.Handler.(Ticker); ok && t.Tick(now) {
			more = true
		}
	}
	return more
}

func (c *Controller) updateProgressBar() {
	span := c.documentHeight - c.viewportHeight
	c.pageProgress = 1
	if span > 0 {
		c.pageProgress = scrollmath.Clamp(c.scrollY/span, 0, 1)
	}
	if c.progressBar != nil {
		c.progressBar.SetStyle("transform", fmt.Sprintf("scaleX(%.4f)", c.pageProgress))
	}
}

func (c *Controller) stepSmoothScroll(now time.Duration) {
	if c.smooth == nil {
		return
	}
	y, done := c.smooth.step(now)
	if done {
		c.smooth = nil
	}
	c.doc.ScrollTo(y)
	// Pick up the offset even when the document did not report a change.
	c.scrollY = c.doc.ScrollY()
}

// ScrollToSection scrolls so the section's top meets the viewport top, easing
// over SmoothScrollDuration. Sections without bounds are ignored.
func (c *Controller) ScrollToSection(id string) {
	if c.destroyed {
		return
	}
	s, ok := c.sections[id]
	if !ok || !s.measured {
		return
	}

	target := s.Bounds.Top
	if c.opts.SmoothScrollDuration <= 0 {
		c.smooth = nil
		c.doc.ScrollTo(target)
		return
	}

	from := c.doc.ScrollY()
	c.smooth = &smoothScroll{
		target: target,
		tween:  gween.New(float32(from), float32(target), float32(c.opts.SmoothScrollDuration.Seconds()), c.opts.SmoothScrollEase),
	}
	c.logger.Debug("Scrolling to section %s (%.0f -> %.0f)", id, from, target)
	c.schedule()
}

// Scrolling reports whether a smooth scroll is in progress.
func (c *Controller) Scrolling() bool {
	return c.smooth != nil
}

// CurrentSection returns the id of the section containing the viewport centre, or "".
func (c *Controller) CurrentSection() string {
	return c.current
}

// SectionIDs returns the registered ids in registration order.
func (c *Controller) SectionIDs() []string {
	return append([]string(nil), c.order...)
}

// Section returns a snapshot of a registered section.
func (c *Controller) Section(id string) (SectionState, bool) {
	s, ok := c.sections[id]
	if !ok {
		return SectionState{}, false
	}
	return s.state(), true
}

// Sections returns snapshots of every section in registration order.
func (c *Controller) Sections() []SectionState {
	out := make([]SectionState, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.sections[id].state())
	}
	return out
}

// PageProgress returns the page-wide scroll progress shown by the progress bar.
func (c *Controller) PageProgress() float64 {
	return c.pageProgress
}

// Stats returns activity counters.
func (c *Controller) Stats() Stats {
	return c.stats
}

// Subscribe registers fn for controller events and returns a cancel function.
func (c *Controller) Subscribe(fn func(Event)) func() {
	if c.destroyed {
		return func() {}
	}
	return c.events.subscribe(fn)
}

// Destroy removes listeners, disconnects the observer and clears the registry.
// Frame callbacks that fire afterwards do nothing. Safe to call repeatedly.
func (c *Controller) Destroy() {
	if c.destroyed {
		return
	}
	c.destroyed = true

	if c.removeScroll != nil {
		c.removeScroll()
		c.removeScroll = nil
	}
	if c.removeResize != nil {
		c.removeResize()
		c.removeResize = nil
	}
	if c.observer != nil {
		c.observer.Disconnect()
		c.observer = nil
	}

	c.sections = make(map[string]*Section)
	c.order = nil
	c.smooth = nil
	c.progressBar = nil
	c.events.clear()
	c.logger.Debug("Scroll controller destroyed")
}

// Destroyed reports whether Destroy has been called.
func (c *Controller) Destroyed() bool {
	return c.destroyed
}
