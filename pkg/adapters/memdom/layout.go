package memdom

import (
	"strconv"
	"strings"
)

// ElementSpec describes child elements to create under a node.
type ElementSpec struct {
	Class    string            // class token of each created element
	Count    int               // number of elements (default 1)
	Attrs    map[string]string // attributes set on every element; "{i}" in a value is replaced by the index
	Children []ElementSpec
}

// SectionLayout describes one section stacked in the page.
type SectionLayout struct {
	ID           string
	Height       float64
	ScrollHeight string // optional data-scroll-height value
	Classes      []string
	Elements     []ElementSpec
}

// Layout describes a whole page: viewport, stacked sections and page chrome
// (navigation, modal, footer) appended after the sections.
type Layout struct {
	Width    float64
	Height   float64
	Sections []SectionLayout
	Chrome   []ElementSpec
}

// Build creates a document with the sections stacked top to bottom from offset 0.
// Chrome elements are zero-height and sit at the end of the page, except
// elements with an "id" attribute and a Count of 1, which take the viewport
// height so that a footer can be scrolled into view.
func Build(l Layout) *Document {
	doc := New(l.Width, l.Height)
	top := 0.0
	for _, s := range l.Sections {
		n := doc.body.Append(s.Classes...)
		n.SetBox(top, s.Height)
		n.SetAttr("id", s.ID)
		if s.ScrollHeight != "" {
			n.SetAttr("data-scroll-height", s.ScrollHeight)
		}
		appendElements(n, s.Elements)
		top += s.Height
	}
	for _, c := range l.Chrome {
		for _, n := range appendSpec(doc.body, c) {
			if _, ok := n.attrs["id"]; ok && countOf(c) == 1 {
				n.SetBox(top, l.Height)
				top += l.Height
			} else {
				n.SetBox(top, 0)
			}
		}
	}
	return doc
}

func appendElements(parent *Node, specs []ElementSpec) {
	for _, spec := range specs {
		appendSpec(parent, spec)
	}
}

func appendSpec(parent *Node, spec ElementSpec) []*Node {
	count := countOf(spec)
	nodes := make([]*Node, 0, count)
	for i := 0; i < count; i++ {
		n := parent.Append(spec.Class)
		for k, v := range spec.Attrs {
			n.SetAttr(k, expandIndex(v, i))
		}
		appendElements(n, spec.Children)
		nodes = append(nodes, n)
	}
	return nodes
}

func countOf(spec ElementSpec) int {
	if spec.Count <= 0 {
		return 1
	}
	return spec.Count
}

func expandIndex(v string, i int) string {
	return strings.ReplaceAll(v, "{i}", strconv.Itoa(i))
}
