// Package visibility implements geometric viewport intersection observation.
//
// It mirrors IntersectionObserver semantics for pages that have no native
// observer: every Check compares each target's client rect against the
// viewport grown by the root margin and reports threshold crossings.
package visibility

import (
	"sort"

	"github.com/user/scrollytell/pkg/ports"
)

// Ratio returns how much of rect lies inside the viewport extended by margin
// on both vertical edges, and whether it intersects at all.
// Edge-adjacent rectangles count as intersecting with ratio 0.
func Ratio(rect ports.Rect, viewportHeight, margin float64) (float64, bool) {
	rootTop := -margin
	rootBottom := viewportHeight + margin

	top := rect.Top
	bottom := rect.Bottom()

	lo := top
	if rootTop > lo {
		lo = rootTop
	}
	hi := bottom
	if rootBottom < hi {
		hi = rootBottom
	}

	overlap := hi - lo
	if overlap < 0 {
		return 0, false
	}
	if rect.Height <= 0 {
		return 1, true
	}
	return overlap / rect.Height, true
}

type target struct {
	el           ports.Element
	seen         bool
	intersecting bool
	bucket       int
}

// Observer tracks a set of elements and reports visibility changes.
type Observer struct {
	viewportHeight func() float64
	margin         float64
	thresholds     []float64
	fn             func([]ports.IntersectionEntry)
	targets        []*target
	disconnected   bool
}

// New creates an observer. viewportHeight is read on every Check.
func New(viewportHeight func() float64, opts ports.ObserverOptions, fn func([]ports.IntersectionEntry)) *Observer {
	thresholds := append([]float64(nil), opts.Thresholds...)
	if len(thresholds) == 0 {
		thresholds = []float64{0}
	}
	sort.Float64s(thresholds)

	return &Observer{
		viewportHeight: viewportHeight,
		margin:         opts.RootMargin,
		thresholds:     thresholds,
		fn:             fn,
	}
}

// Observe adds an element. Observing the same element twice has no effect.
func (o *Observer) Observe(el ports.Element) {
	if o.disconnected || el == nil {
		return
	}
	for _, t := range o.targets {
		if t.el == el {
			return
		}
	}
	o.targets = append(o.targets, &target{el: el})
}

// Disconnect stops observing every element.
func (o *Observer) Disconnect() {
	o.disconnected = true
	o.targets = nil
}

// Disconnected reports whether Disconnect has been called.
func (o *Observer) Disconnected() bool {
	return o.disconnected
}

// Check evaluates every target and delivers the changed entries in one callback.
// The first evaluation of a target is always delivered.
func (o *Observer) Check() {
	if o.disconnected || len(o.targets) == 0 {
		return
	}

	vh := o.viewportHeight()
	var entries []ports.IntersectionEntry
	for _, t := range o.targets {
		ratio, intersecting := Ratio(t.el.Rect(), vh, o.margin)
		bucket := o.bucket(ratio, intersecting)

		if t.seen && t.intersecting == intersecting && t.bucket == bucket {
			continue
		}
		t.seen = true
		t.intersecting = intersecting
		t.bucket = bucket
		entries = append(entries, ports.IntersectionEntry{
			Target:         t.el,
			IsIntersecting: intersecting,
			Ratio:          ratio,
		})
	}

	if len(entries) > 0 && o.fn != nil {
		o.fn(entries)
	}
}

func (o *Observer) bucket(ratio float64, intersecting bool) int {
	if !intersecting {
		return -1
	}
	n := 0
	for _, th := range o.thresholds {
		if ratio >= th {
			n++
		}
	}
	return n
}

var _ ports.Observer = (*Observer)(nil)
