// Package components implements the page chrome that reacts to the scroll
// controller: navigation dots, skip navigation, the circle transition, the
// mobile navigation modal and the final summary badge.
package components

import (
	"strings"

	"github.com/user/scrollytell/pkg/ports"
	"github.com/user/scrollytell/pkg/scroll"
)

// Navigator is the part of the scroll controller the components drive.
type Navigator interface {
	Subscribe(fn func(scroll.Event)) func()
	ScrollToSection(id string)
	CurrentSection() string
	SectionIDs() []string
}

// ProgressDots marks the navigation dot and mobile link of the current section.
type ProgressDots struct {
	nav    Navigator
	dots   []ports.Element
	links  []ports.Element
	active string
	cancel func()
}

// NewProgressDots binds the page's dots and mobile links to nav.
func NewProgressDots(doc ports.Document, nav Navigator) *ProgressDots {
	p := &ProgressDots{
		nav:   nav,
		dots:  doc.QueryAll("nav__dot-btn"),
		links: doc.QueryAll("mobile-modal__link"),
	}
	p.cancel = nav.Subscribe(func(e scroll.Event) {
		if e.Kind == scroll.EventSectionChange {
			p.Update(e.Section)
		}
	})
	p.Update(nav.CurrentSection())
	return p
}

// Update marks id as the active section. An empty id clears every mark.
func (p *ProgressDots) Update(id string) {
	p.active = id
	for _, dot := range p.dots {
		section, _ := dot.Attr("data-section")
		toggle(dot, "active", id != "" && section == id)
	}
	for _, link := range p.links {
		href, _ := link.Attr("href")
		toggle(link, "active", id != "" && strings.TrimPrefix(href, "#") == id)
	}
}

// Active returns the section currently marked.
func (p *ProgressDots) Active() string {
	return p.active
}

// Click scrolls to the section of a dot.
func (p *ProgressDots) Click(id string) {
	if id == "" {
		return
	}
	p.nav.ScrollToSection(id)
}

// Close stops listening for section changes.
func (p *ProgressDots) Close() {
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
}

// SkipNav moves to the neighbouring section.
type SkipNav struct {
	nav Navigator
}

// NewSkipNav creates a skip navigation over nav.
func NewSkipNav(nav Navigator) *SkipNav {
	return &SkipNav{nav: nav}
}

// Next scrolls to the section after the current one. Without a current
// section it goes to the first. It reports whether a scroll was started.
func (s *SkipNav) Next() bool {
	ids := s.nav.SectionIDs()
	i := indexOf(ids, s.nav.CurrentSection())
	if i >= len(ids)-1 {
		return false
	}
	s.nav.ScrollToSection(ids[i+1])
	return true
}

// Previous scrolls to the section before the current one.
func (s *SkipNav) Previous() bool {
	ids := s.nav.SectionIDs()
	i := indexOf(ids, s.nav.CurrentSection())
	if i <= 0 {
		return false
	}
	s.nav.ScrollToSection(ids[i-1])
	return true
}

// HandleKey maps Alt+ArrowDown and Alt+ArrowUp to Next and Previous.
// It reports whether the key was consumed.
func (s *SkipNav) HandleKey(key string, alt bool) bool {
	if !alt {
		return false
	}
	switch key {
	case "ArrowDown":
		s.Next()
		return true
	case "ArrowUp":
		s.Previous()
		return true
	}
	return false
}

func indexOf(ids []string, id string) int {
	for i, v := range ids {
		if v == id {
			return i
		}
	}
	return -1
}

func toggle(el ports.Element, class string, on bool) {
	if on {
		el.AddClass(class)
	} else {
		el.RemoveClass(class)
	}
}
