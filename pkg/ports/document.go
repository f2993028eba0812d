// Package ports defines interfaces for external dependencies.
package ports

import "time"

// Rect is a bounding rectangle in viewport (client) coordinates, in CSS pixels.
type Rect struct {
	Top    float64
	Left   float64
	Width  float64
	Height float64
}

// Bottom returns the bottom edge of the rectangle.
func (r Rect) Bottom() float64 {
	return r.Top + r.Height
}

// Element abstracts a single DOM node.
// Implementations must treat class and style operations as idempotent.
type Element interface {
	// Attr returns the value of an attribute and whether it is present.
	Attr(name string) (string, bool)

	// SetAttr sets an attribute value.
	SetAttr(name, value string)

	// Rect returns the element's bounding client rectangle.
	// Reading it may force layout in a live browser.
	Rect() Rect

	// OffsetHeight returns the element's layout height.
	OffsetHeight() float64

	// AddClass adds class tokens.
	AddClass(classes ...string)

	// RemoveClass removes class tokens.
	RemoveClass(classes ...string)

	// HasClass reports whether the element carries the class token.
	HasClass(class string) bool

	// SetStyle sets an inline style property. An empty value clears it.
	SetStyle(property, value string)

	// Query returns the first descendant carrying the class, or nil.
	Query(class string) Element

	// QueryAll returns all descendants carrying the class in document order.
	QueryAll(class string) []Element

	// AppendChild creates a child element with the given classes and returns it.
	AppendChild(classes ...string) Element
}

// Document abstracts the page: its element tree, viewport and scroll position.
type Document interface {
	// SectionElement returns the element marked data-scroll-section="id", or nil.
	SectionElement(id string) Element

	// ByID returns the element with the given id attribute, or nil.
	ByID(id string) Element

	// Query returns the first element in the document carrying the class, or nil.
	Query(class string) Element

	// QueryAll returns all elements in the document carrying the class.
	QueryAll(class string) []Element

	// Body returns the document body.
	Body() Element

	// ScrollY returns the current vertical scroll offset.
	ScrollY() float64

	// ScrollTo moves the viewport to the given vertical offset.
	// Scroll listeners are notified when the offset changes.
	ScrollTo(y float64)

	// Viewport returns the viewport width and height.
	Viewport() (width, height float64)

	// ScrollHeight returns the full document height.
	ScrollHeight() float64

	// OnScroll registers a scroll listener and returns a function removing it.
	OnScroll(fn func()) (remove func())

	// OnResize registers a resize listener and returns a function removing it.
	OnResize(fn func()) (remove func())

	// Observe creates a visibility observer over this document's viewport.
	Observe(opts ObserverOptions, fn func([]IntersectionEntry)) Observer
}

// ObserverOptions configures a visibility observer.
type ObserverOptions struct {
	RootMargin float64   // Pixels added above and below the viewport
	Thresholds []float64 // Intersection ratios that trigger a callback
}

// IntersectionEntry reports a visibility change for one observed element.
type IntersectionEntry struct {
	Target         Element
	IsIntersecting bool
	Ratio          float64
}

// Observer watches elements for viewport intersection changes.
type Observer interface {
	// Observe starts watching an element.
	Observe(el Element)

	// Disconnect stops watching every element. Safe to call more than once.
	Disconnect()
}

// FrameScheduler abstracts requestAnimationFrame.
type FrameScheduler interface {
	// RequestFrame schedules fn to run on the next rendered frame.
	// The callback receives the frame timestamp.
	RequestFrame(fn func(now time.Duration))
}

// Page bundles a document with its frame source.
type Page interface {
	Document() Document
	Frames() FrameScheduler

	// Advance renders one frame at the given timestamp and runs pending frame callbacks.
	Advance(now time.Duration)

	// Screenshot captures the visible viewport. Pages without a renderer return nil data.
	Screenshot() ([]byte, error)
}
