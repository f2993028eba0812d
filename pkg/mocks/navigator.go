package mocks

import (
	"github.com/user/scrollytell/pkg/scroll"
)

// Navigator is a mock implementation of components.Navigator.
// Without funcs it records scroll requests and serves IDs and Current.
type Navigator struct {
	IDs     []string
	Current string

	SubscribeFunc       func(fn func(scroll.Event)) func()
	ScrollToSectionFunc func(id string)

	ScrolledTo  []string
	subscribers []func(scroll.Event)
}

func (m *Navigator) Subscribe(fn func(scroll.Event)) func() {
	if m.SubscribeFunc != nil {
		return m.SubscribeFunc(fn)
	}
	m.subscribers = append(m.subscribers, fn)
	i := len(m.subscribers) - 1
	return func() { m.subscribers[i] = nil }
}

func (m *Navigator) ScrollToSection(id string) {
	m.ScrolledTo = append(m.ScrolledTo, id)
	if m.ScrollToSectionFunc != nil {
		m.ScrollToSectionFunc(id)
	}
}

func (m *Navigator) CurrentSection() string {
	return m.Current
}

func (m *Navigator) SectionIDs() []string {
	return append([]string(nil), m.IDs...)
}

// Emit sets Current and delivers a section-change event to subscribers.
func (m *Navigator) Emit(id string) {
	m.Current = id
	for _, fn := range m.subscribers {
		if fn != nil {
			fn(scroll.Event{Kind: scroll.EventSectionChange, Section: id})
		}
	}
}
