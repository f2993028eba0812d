package visibility

import "github.com/user/scrollytell/pkg/ports"

type listener struct {
	id int
	fn func()
}

// Listeners is an ordered list of callbacks that can be removed one by one.
type Listeners struct {
	nextID int
	list   []listener
}

// Add appends fn and returns a function removing it.
func (l *Listeners) Add(fn func()) (remove func()) {
	l.nextID++
	id := l.nextID
	l.list = append(l.list, listener{id: id, fn: fn})
	return func() { l.remove(id) }
}

func (l *Listeners) remove(id int) {
	for i, ln := range l.list {
		if ln.id == id {
			l.list = append(l.list[:i], l.list[i+1:]...)
			return
		}
	}
}

// Notify runs every callback in order. Callbacks may remove themselves or
// others while being notified; the current round still runs them.
func (l *Listeners) Notify() {
	for _, ln := range append([]listener(nil), l.list...) {
		ln.fn()
	}
}

// Len returns the number of callbacks.
func (l *Listeners) Len() int {
	return len(l.list)
}

// Set holds the observers created over one document.
type Set struct {
	viewportHeight func() float64
	observers      []*Observer
}

// NewSet creates an empty set. viewportHeight is read on every check.
func NewSet(viewportHeight func() float64) *Set {
	return &Set{viewportHeight: viewportHeight}
}

// Observe creates an observer in the set. Observing an element through the
// returned value checks it immediately.
func (s *Set) Observe(opts ports.ObserverOptions, fn func([]ports.IntersectionEntry)) ports.Observer {
	o := New(s.viewportHeight, opts, fn)
	s.observers = append(s.observers, o)
	return immediate{o}
}

// Check evaluates every observer.
func (s *Set) Check() {
	for _, o := range s.observers {
		o.Check()
	}
}

// Active returns the number of observers that are still connected.
func (s *Set) Active() int {
	n := 0
	for _, o := range s.observers {
		if !o.Disconnected() {
			n++
		}
	}
	return n
}

type immediate struct {
	*Observer
}

func (o immediate) Observe(el ports.Element) {
	o.Observer.Observe(el)
	o.Observer.Check()
}
