package components

import (
	"github.com/user/scrollytell/pkg/ports"
)

// MobileNav opens and closes the mobile navigation modal.
type MobileNav struct {
	nav    Navigator
	body   ports.Element
	header ports.Element
	modal  ports.Element
}

// NewMobileNav binds the page's mobile header and modal. nav may be nil.
func NewMobileNav(doc ports.Document, nav Navigator) *MobileNav {
	return &MobileNav{
		nav:    nav,
		body:   doc.Body(),
		header: doc.Query("mobile-nav__header"),
		modal:  doc.Query("mobile-modal"),
	}
}

// Open shows the modal.
func (m *MobileNav) Open() {
	if m.header != nil {
		m.header.SetAttr("aria-expanded", "true")
	}
	if m.modal != nil {
		m.modal.AddClass("active")
		m.modal.SetAttr("aria-hidden", "false")
	}
	m.body.AddClass("is-modal-open")
}

// Close hides the modal.
func (m *MobileNav) Close() {
	if m.header != nil {
		m.header.SetAttr("aria-expanded", "false")
	}
	if m.modal != nil {
		m.modal.RemoveClass("active")
		m.modal.SetAttr("aria-hidden", "true")
	}
	m.body.RemoveClass("is-modal-open")
}

// Toggle opens a closed modal and closes an open one.
func (m *MobileNav) Toggle() {
	if m.IsOpen() {
		m.Close()
	} else {
		m.Open()
	}
}

// IsOpen reports whether the modal is shown. A page without a modal is never open.
func (m *MobileNav) IsOpen() bool {
	return m.modal != nil && m.modal.HasClass("active")
}

// Follow closes the modal and scrolls to the linked section.
func (m *MobileNav) Follow(id string) {
	m.Close()
	if m.nav != nil && id != "" {
		m.nav.ScrollToSection(id)
	}
}

// HandleKey closes an open modal on Escape and reports whether the key was consumed.
func (m *MobileNav) HandleKey(key string) bool {
	if key != "Escape" || !m.IsOpen() {
		return false
	}
	m.Close()
	return true
}
