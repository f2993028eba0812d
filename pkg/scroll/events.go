package scroll

// EventKind identifies a controller event.
type EventKind int

const (
	// EventReady is emitted once Start completes.
	EventReady EventKind = iota
	// EventSectionChange is emitted when the current section changes.
	EventSectionChange
)

// String returns the event name.
func (k EventKind) String() string {
	switch k {
	case EventReady:
		return "ready"
	case EventSectionChange:
		return "section-change"
	default:
		return "unknown"
	}
}

// Event is delivered to subscribers.
// For EventSectionChange, Section is the new current section id, or "" for none.
type Event struct {
	Kind    EventKind
	Section string
}

type subscriber struct {
	id int
	fn func(Event)
}

// emitter delivers events synchronously in subscription order.
type emitter struct {
	nextID int
	subs   []subscriber
}

func (e *emitter) subscribe(fn func(Event)) func() {
	e.nextID++
	id := e.nextID
	e.subs = append(e.subs, subscriber{id: id, fn: fn})
	return func() {
		for i, s := range e.subs {
			if s.id == id {
				e.subs = append(e.subs[:i], e.subs[i+1:]...)
				return
			}
		}
	}
}

func (e *emitter) emit(ev Event) {
	for _, s := range append([]subscriber(nil), e.subs...) {
		s.fn(ev)
	}
}

func (e *emitter) clear() {
	e.subs = nil
}
