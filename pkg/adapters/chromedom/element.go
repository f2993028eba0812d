package chromedom

import (
	"github.com/user/scrollytell/pkg/ports"
)

// Element is a live DOM node addressed by its data-scrolly-ref.
type Element struct {
	doc *Document
	ref string
}

// Ref returns the element's reference token.
func (e *Element) Ref() string {
	return e.ref
}

// Attr implements ports.Element.
func (e *Element) Attr(name string) (string, bool) {
	var res struct {
		OK bool   `json:"ok"`
		V  string `json:"v"`
	}
	e.doc.eval(js(`(() => { const e = __scrolly.el(%s); const n = %s;
  return e && e.hasAttribute(n) ? {ok: true, v: e.getAttribute(n)} : {ok: false, v: ""}; })()`, e.ref, name), &res)
	return res.V, res.OK
}

// SetAttr implements ports.Element.
func (e *Element) SetAttr(name, value string) {
	e.doc.eval(js(`__scrolly.el(%s)?.setAttribute(%s, %s)`, e.ref, name, value), nil)
}

// Rect implements ports.Element.
func (e *Element) Rect() ports.Rect {
	b := e.box()
	return ports.Rect{Top: b.Top, Left: b.Left, Width: b.Width, Height: b.Height}
}

// OffsetHeight implements ports.Element.
func (e *Element) OffsetHeight() float64 {
	return e.box().Offset
}

type box struct {
	Top    float64 `json:"top"`
	Left   float64 `json:"left"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Offset float64 `json:"offset"`
}

func (e *Element) box() box {
	var b box
	e.doc.eval(js(`__scrolly.rect(%s)`, e.ref), &b)
	return b
}

// AddClass implements ports.Element.
func (e *Element) AddClass(classes ...string) {
	list := classList(classes)
	if len(list) == 0 {
		return
	}
	e.doc.eval(js(`__scrolly.el(%s)?.classList.add(...%s)`, e.ref, list), nil)
}

// RemoveClass implements ports.Element.
func (e *Element) RemoveClass(classes ...string) {
	list := classList(classes)
	if len(list) == 0 {
		return
	}
	e.doc.eval(js(`__scrolly.el(%s)?.classList.remove(...%s)`, e.ref, list), nil)
}

// HasClass implements ports.Element.
func (e *Element) HasClass(class string) bool {
	var ok bool
	e.doc.eval(js(`!!__scrolly.el(%s)?.classList.contains(%s)`, e.ref, class), &ok)
	return ok
}

// SetStyle implements ports.Element.
func (e *Element) SetStyle(property, value string) {
	e.doc.eval(js(`((e, p, v) => { if (!e) return; if (v === "") e.style.removeProperty(p); else e.style.setProperty(p, v); })(__scrolly.el(%s), %s, %s)`,
		e.ref, property, value), nil)
}

// Query implements ports.Element.
func (e *Element) Query(class string) ports.Element {
	return e.doc.one(e.ref, class)
}

// QueryAll implements ports.Element.
func (e *Element) QueryAll(class string) []ports.Element {
	return e.doc.all(e.ref, class)
}

// AppendChild implements ports.Element.
func (e *Element) AppendChild(classes ...string) ports.Element {
	var ref string
	e.doc.eval(js(`__scrolly.append(%s, %s)`, e.ref, classList(classes)), &ref)
	return e.doc.element(ref)
}

// Ensure Element implements ports.Element
var _ ports.Element = (*Element)(nil)
