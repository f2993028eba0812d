package memdom

import (
	"fmt"
	"time"

	"github.com/user/scrollytell/pkg/adapters/framequeue"
	"github.com/user/scrollytell/pkg/ports"
	"github.com/user/scrollytell/pkg/visibility"
)

// Document is an in-memory page.
type Document struct {
	body *Node

	width   float64
	height  float64
	scrollY float64

	// Overscroll lets ScrollTo move past the document edges, like elastic scrolling.
	Overscroll bool

	scrollListeners visibility.Listeners
	resizeListeners visibility.Listeners
	observers       *visibility.Set
}

// New creates an empty document with the given viewport size.
func New(width, height float64) *Document {
	d := &Document{width: width, height: height}
	d.observers = visibility.NewSet(func() float64 { return d.height })
	d.body = newNode(d)
	d.body.width = width
	return d
}

// BodyNode returns the body as a *Node for building the tree.
func (d *Document) BodyNode() *Node {
	return d.body
}

// AddSection appends a section element marked with data-scroll-section and id attributes.
func (d *Document) AddSection(id string, top, height float64, classes ...string) *Node {
	n := d.body.Append(classes...)
	n.SetBox(top, height)
	n.SetAttr("data-scroll-section", id)
	n.SetAttr("id", id)
	return n
}

// SectionElement implements ports.Document.
func (d *Document) SectionElement(id string) ports.Element {
	if n := d.findAttr("data-scroll-section", id); n != nil {
		return n
	}
	return nil
}

// ByID implements ports.Document.
func (d *Document) ByID(id string) ports.Element {
	if n := d.findAttr("id", id); n != nil {
		return n
	}
	return nil
}

// Node returns the node carrying data-scroll-section="id" as a *Node, or nil.
func (d *Document) Node(id string) *Node {
	return d.findAttr("data-scroll-section", id)
}

func (d *Document) findAttr(name, value string) *Node {
	return d.body.find(func(n *Node) bool {
		v, ok := n.attrs[name]
		return ok && v == value
	})
}

// Query implements ports.Document.
func (d *Document) Query(class string) ports.Element {
	return d.body.Query(class)
}

// QueryAll implements ports.Document.
func (d *Document) QueryAll(class string) []ports.Element {
	return d.body.QueryAll(class)
}

// Body implements ports.Document.
func (d *Document) Body() ports.Element {
	return d.body
}

// ScrollY implements ports.Document.
func (d *Document) ScrollY() float64 {
	return d.scrollY
}

// MaxScroll returns the largest reachable scroll offset.
func (d *Document) MaxScroll() float64 {
	max := d.ScrollHeight() - d.height
	if max < 0 {
		return 0
	}
	return max
}

// ScrollTo implements ports.Document.
// Observers are checked before scroll listeners run.
func (d *Document) ScrollTo(y float64) {
	if !d.Overscroll {
		if y > d.MaxScroll() {
			y = d.MaxScroll()
		}
		if y < 0 {
			y = 0
		}
	}
	if y == d.scrollY {
		return
	}
	d.scrollY = y
	d.observers.Check()
	d.scrollListeners.Notify()
}

// Viewport implements ports.Document.
func (d *Document) Viewport() (float64, float64) {
	return d.width, d.height
}

// Resize changes the viewport size and notifies resize listeners.
func (d *Document) Resize(width, height float64) {
	d.width = width
	d.height = height
	d.body.width = width
	d.observers.Check()
	d.resizeListeners.Notify()
}

// ScrollHeight implements ports.Document. It is the bottom of the lowest node,
// and never less than the viewport height.
func (d *Document) ScrollHeight() float64 {
	bottom := d.height
	d.body.walk(func(n *Node) {
		if b := n.top + n.height; b > bottom {
			bottom = b
		}
	})
	return bottom
}

// OnScroll implements ports.Document.
func (d *Document) OnScroll(fn func()) func() {
	return d.scrollListeners.Add(fn)
}

// OnResize implements ports.Document.
func (d *Document) OnResize(fn func()) func() {
	return d.resizeListeners.Add(fn)
}

// ListenerCount returns the number of installed scroll and resize listeners.
func (d *Document) ListenerCount() int {
	return d.scrollListeners.Len() + d.resizeListeners.Len()
}

// Observe implements ports.Document. Observing an element checks it immediately.
func (d *Document) Observe(opts ports.ObserverOptions, fn func([]ports.IntersectionEntry)) ports.Observer {
	return d.observers.Observe(opts, fn)
}

// ActiveObservers returns the number of observers that are still connected.
func (d *Document) ActiveObservers() int {
	return d.observers.Active()
}

// Page couples a Document with a frame queue.
type Page struct {
	doc    *Document
	frames *framequeue.Queue
}

// NewPage creates a page over doc with its own frame queue.
func NewPage(doc *Document) *Page {
	return &Page{doc: doc, frames: framequeue.New()}
}

// Document implements ports.Page.
func (p *Page) Document() ports.Document {
	return p.doc
}

// Frames implements ports.Page.
func (p *Page) Frames() ports.FrameScheduler {
	return p.frames
}

// Queue returns the page's frame queue.
func (p *Page) Queue() *framequeue.Queue {
	return p.frames
}

// Advance implements ports.Page.
func (p *Page) Advance(now time.Duration) {
	p.frames.Tick(now)
}

// Screenshot implements ports.Page. An in-memory page has nothing to render.
func (p *Page) Screenshot() ([]byte, error) {
	return nil, nil
}

// String describes the document for debugging.
func (d *Document) String() string {
	return fmt.Sprintf("memdom(%gx%g scroll=%g height=%g)", d.width, d.height, d.scrollY, d.ScrollHeight())
}

// Ensure Document implements ports.Document
var _ ports.Document = (*Document)(nil)

// Ensure Page implements ports.Page
var _ ports.Page = (*Page)(nil)
