// Package memdom provides an in-memory page model implementing ports.Document.
//
// Layout is explicit: every node carries an absolute document offset and a
// height, set by whoever builds the page. Scrolling is instant, and visibility
// observers are checked synchronously before scroll listeners run.
package memdom

import (
	"sort"
	"strings"

	"github.com/user/scrollytell/pkg/ports"
)

// Node is an element of the in-memory tree.
type Node struct {
	doc      *Document
	parent   *Node
	children []*Node

	attrs   map[string]string
	classes []string
	styles  map[string]string

	top    float64 // absolute document offset
	left   float64
	width  float64
	height float64
}

func newNode(doc *Document, classes ...string) *Node {
	n := &Node{
		doc:    doc,
		attrs:  make(map[string]string),
		styles: make(map[string]string),
	}
	n.AddClass(classes...)
	return n
}

// Append attaches a new child with the given classes. The child inherits the
// parent's box until SetBox is called.
func (n *Node) Append(classes ...string) *Node {
	child := newNode(n.doc, classes...)
	child.parent = n
	child.top, child.left, child.width, child.height = n.top, n.left, n.width, n.height
	n.children = append(n.children, child)
	return child
}

// AppendChild implements ports.Element.
func (n *Node) AppendChild(classes ...string) ports.Element {
	return n.Append(classes...)
}

// SetBox sets the node's absolute document offset and height.
func (n *Node) SetBox(top, height float64) *Node {
	n.top = top
	n.height = height
	if n.width == 0 && n.doc != nil {
		n.width = n.doc.width
	}
	return n
}

// Top returns the node's absolute document offset.
func (n *Node) Top() float64 {
	return n.top
}

// Children returns the node's children.
func (n *Node) Children() []*Node {
	return n.children
}

// Attr implements ports.Element.
func (n *Node) Attr(name string) (string, bool) {
	v, ok := n.attrs[name]
	return v, ok
}

// SetAttr implements ports.Element.
func (n *Node) SetAttr(name, value string) {
	n.attrs[name] = value
}

// WithAttr sets an attribute and returns the node for chaining.
func (n *Node) WithAttr(name, value string) *Node {
	n.SetAttr(name, value)
	return n
}

// Rect implements ports.Element.
func (n *Node) Rect() ports.Rect {
	scrollY := 0.0
	if n.doc != nil {
		scrollY = n.doc.scrollY
	}
	return ports.Rect{
		Top:    n.top - scrollY,
		Left:   n.left,
		Width:  n.width,
		Height: n.height,
	}
}

// OffsetHeight implements ports.Element.
func (n *Node) OffsetHeight() float64 {
	return n.height
}

// AddClass implements ports.Element.
func (n *Node) AddClass(classes ...string) {
	for _, c := range classes {
		if c == "" || n.HasClass(c) {
			continue
		}
		n.classes = append(n.classes, c)
	}
}

// RemoveClass implements ports.Element.
func (n *Node) RemoveClass(classes ...string) {
	if len(classes) == 0 {
		return
	}
	kept := n.classes[:0]
	for _, c := range n.classes {
		if !contains(classes, c) {
			kept = append(kept, c)
		}
	}
	n.classes = kept
}

// HasClass implements ports.Element.
func (n *Node) HasClass(class string) bool {
	return contains(n.classes, class)
}

// Classes returns the node's class tokens in insertion order.
func (n *Node) Classes() []string {
	return append([]string(nil), n.classes...)
}

// ClassName returns the class tokens joined by spaces.
func (n *Node) ClassName() string {
	return strings.Join(n.classes, " ")
}

// SetStyle implements ports.Element.
func (n *Node) SetStyle(property, value string) {
	if value == "" {
		delete(n.styles, property)
		return
	}
	n.styles[property] = value
}

// Style returns an inline style property.
func (n *Node) Style(property string) string {
	return n.styles[property]
}

// StyleProperties returns the names of the inline style properties, sorted.
func (n *Node) StyleProperties() []string {
	props := make([]string, 0, len(n.styles))
	for p := range n.styles {
		props = append(props, p)
	}
	sort.Strings(props)
	return props
}

// Query implements ports.Element.
func (n *Node) Query(class string) ports.Element {
	if found := n.find(func(c *Node) bool { return c.HasClass(class) }); found != nil {
		return found
	}
	return nil
}

// QueryAll implements ports.Element.
func (n *Node) QueryAll(class string) []ports.Element {
	var out []ports.Element
	n.walk(func(c *Node) {
		if c != n && c.HasClass(class) {
			out = append(out, c)
		}
	})
	return out
}

// find returns the first descendant matching pred in document order.
func (n *Node) find(pred func(*Node) bool) *Node {
	for _, c := range n.children {
		if pred(c) {
			return c
		}
		if found := c.find(pred); found != nil {
			return found
		}
	}
	return nil
}

func (n *Node) walk(fn func(*Node)) {
	fn(n)
	for _, c := range n.children {
		c.walk(fn)
	}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// Ensure Node implements ports.Element
var _ ports.Element = (*Node)(nil)
