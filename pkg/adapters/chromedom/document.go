// Package chromedom implements ports.Document and ports.Page over a live
// browser page driven through ports.Browser.
//
// Every element operation is one Evaluate round trip. Scroll and resize
// events are not pushed from the page: Sync polls the page and dispatches
// listeners and visibility observers from Go, so the same engine runs on a
// live page and on the in-memory model.
package chromedom

import (
	"fmt"
	"sync"
	"time"

	"github.com/user/scrollytell/pkg/adapters/framequeue"
	"github.com/user/scrollytell/pkg/ports"
	"github.com/user/scrollytell/pkg/visibility"
)

// Document is a live page.
type Document struct {
	browser ports.Browser
	logger  ports.Logger

	mu       sync.Mutex
	elements map[string]*Element

	width   float64
	height  float64
	scrollY float64

	scrollListeners visibility.Listeners
	resizeListeners visibility.Listeners
	observers       *visibility.Set
}

// New installs the element helper in the current page and reads its viewport.
func New(browser ports.Browser, logger ports.Logger) (*Document, error) {
	d := &Document{
		browser:  browser,
		logger:   logger.WithComponent("chromedom"),
		elements: make(map[string]*Element),
	}
	d.observers = visibility.NewSet(func() float64 { return d.height })
	if err := d.Install(); err != nil {
		return nil, err
	}
	d.width, d.height = d.readViewport()
	d.scrollY = d.readScrollY()
	return d, nil
}

// Install (re)installs the element helper. Call it after every navigation.
func (d *Document) Install() error {
	if err := d.browser.Evaluate(helperJS, nil); err != nil {
		return fmt.Errorf("install page helper: %w", err)
	}
	d.mu.Lock()
	d.elements = make(map[string]*Element)
	d.mu.Unlock()
	return nil
}

func (d *Document) eval(expr string, res interface{}) bool {
	if err := d.browser.Evaluate(expr, res); err != nil {
		d.logger.Debug("Evaluate failed: %v", err)
		return false
	}
	return true
}

// element returns the cached element for ref so that lookups of the same
// node compare equal.
func (d *Document) element(ref string) *Element {
	if ref == "" {
		return nil
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if el, ok := d.elements[ref]; ok {
		return el
	}
	el := &Element{doc: d, ref: ref}
	d.elements[ref] = el
	return el
}

func (d *Document) selectOne(root, selectorExpr string) ports.Element {
	var ref string
	d.eval(fmt.Sprintf(`__scrolly.one(%s, %s)`, root, selectorExpr), &ref)
	if el := d.element(ref); el != nil {
		return el
	}
	return nil
}

func (d *Document) selectAll(root, selectorExpr string) []ports.Element {
	var refs []string
	d.eval(fmt.Sprintf(`__scrolly.all(%s, %s)`, root, selectorExpr), &refs)
	out := make([]ports.Element, 0, len(refs))
	for _, r := range refs {
		if el := d.element(r); el != nil {
			out = append(out, el)
		}
	}
	return out
}

func (d *Document) one(ref, class string) ports.Element {
	return d.selectOne(js(`%s`, ref), js(`__scrolly.cls(%s)`, class))
}

func (d *Document) all(ref, class string) []ports.Element {
	return d.selectAll(js(`%s`, ref), js(`__scrolly.cls(%s)`, class))
}

// SectionElement implements ports.Document.
func (d *Document) SectionElement(id string) ports.Element {
	return d.selectOne(`""`, js(`'[data-scroll-section="' + CSS.escape(%s) + '"]'`, id))
}

// ByID implements ports.Document.
func (d *Document) ByID(id string) ports.Element {
	return d.selectOne(`""`, js(`"#" + CSS.escape(%s)`, id))
}

// Query implements ports.Document.
func (d *Document) Query(class string) ports.Element {
	return d.one("", class)
}

// QueryAll implements ports.Document.
func (d *Document) QueryAll(class string) []ports.Element {
	return d.all("", class)
}

// Body implements ports.Document.
func (d *Document) Body() ports.Element {
	var ref string
	d.eval(`__scrolly.tag(document.body)`, &ref)
	if el := d.element(ref); el != nil {
		return el
	}
	return nil
}

// ScrollY implements ports.Document. It returns the offset seen by the last
// ScrollTo or Sync.
func (d *Document) ScrollY() float64 {
	return d.scrollY
}

// ScrollTo implements ports.Document.
// Observers are checked before scroll listeners run.
func (d *Document) ScrollTo(y float64) {
	var actual float64
	if !d.eval(js(`(window.scrollTo(0, %s), window.scrollY)`, y), &actual) {
		return
	}
	d.setScroll(actual)
}

func (d *Document) setScroll(y float64) {
	if y == d.scrollY {
		return
	}
	d.scrollY = y
	d.observers.Check()
	d.scrollListeners.Notify()
}

// Sync reads the page's viewport and scroll offset and dispatches resize and
// scroll listeners for anything that changed since the last call.
func (d *Document) Sync() {
	w, h := d.readViewport()
	if w > 0 && h > 0 && (w != d.width || h != d.height) {
		d.width, d.height = w, h
		d.observers.Check()
		d.resizeListeners.Notify()
	}
	d.setScroll(d.readScrollY())
}

func (d *Document) readViewport() (float64, float64) {
	var vp [2]float64
	d.eval(`[window.innerWidth, window.innerHeight]`, &vp)
	return vp[0], vp[1]
}

func (d *Document) readScrollY() float64 {
	var y float64
	d.eval(`window.scrollY`, &y)
	return y
}

// Viewport implements ports.Document.
func (d *Document) Viewport() (float64, float64) {
	return d.width, d.height
}

// ScrollHeight implements ports.Document.
func (d *Document) ScrollHeight() float64 {
	var h float64
	d.eval(`document.documentElement.scrollHeight`, &h)
	return h
}

// OnScroll implements ports.Document.
func (d *Document) OnScroll(fn func()) func() {
	return d.scrollListeners.Add(fn)
}

// OnResize implements ports.Document.
func (d *Document) OnResize(fn func()) func() {
	return d.resizeListeners.Add(fn)
}

// Observe implements ports.Document. Observing an element checks it immediately.
func (d *Document) Observe(opts ports.ObserverOptions, fn func([]ports.IntersectionEntry)) ports.Observer {
	return d.observers.Observe(opts, fn)
}

// Page couples a live Document with a frame queue driven by Advance.
type Page struct {
	doc    *Document
	frames *framequeue.Queue
}

// NewPage creates a page over doc.
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

// Advance implements ports.Page. It syncs the page state, then runs the
// frame callbacks queued so far.
func (p *Page) Advance(now time.Duration) {
	p.doc.Sync()
	p.frames.Tick(now)
}

// Screenshot implements ports.Page.
func (p *Page) Screenshot() ([]byte, error) {
	return p.doc.browser.Screenshot()
}

// Ensure Document implements ports.Document
var _ ports.Document = (*Document)(nil)

// Ensure Page implements ports.Page
var _ ports.Page = (*Page)(nil)
