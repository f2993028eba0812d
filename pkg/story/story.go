// Package story assembles a scroll controller, its section handlers and the
// page components into one mounted page.
package story

import (
	"errors"
	"fmt"

	"github.com/user/scrollytell/pkg/components"
	"github.com/user/scrollytell/pkg/ports"
	"github.com/user/scrollytell/pkg/scroll"
	"github.com/user/scrollytell/pkg/sections"
)

// ErrMounted is returned when a story is mounted twice.
var ErrMounted = errors.New("story already mounted")

// SectionSpec binds a page element to a handler kind.
type SectionSpec struct {
	ID       string // section id, also used by nav dots and links
	Kind     string // handler kind in the registry
	Selector string // element id on the page (default: ID)
}

// Manifest describes the sections and chrome of a page.
type Manifest struct {
	Sections []SectionSpec

	// CircleSection is the section whose tail drives the circle transition ("" = none).
	CircleSection string
	CircleFrom    float64

	// FooterID is the element that reveals the final summary ("" = none).
	FooterID string

	Options scroll.Options
}

// DefaultManifest returns the manifest of the portfolio page.
func DefaultManifest() Manifest {
	return Manifest{
		Sections: []SectionSpec{
			{ID: "hero", Kind: sections.KindHero, Selector: "intro"},
			{ID: "cards", Kind: sections.KindFlipCards, Selector: "cards"},
			{ID: "problem", Kind: sections.KindProblem, Selector: "problem"},
			{ID: "future-outlook", Kind: sections.KindFutureOutlook, Selector: "future-outlook"},
			{ID: "solution", Kind: sections.KindSolution, Selector: "solution"},
			{ID: "growth", Kind: sections.KindGrowth, Selector: "growth"},
			{ID: "strategy", Kind: sections.KindStrategy, Selector: "strategy"},
			{ID: "resources", Kind: sections.KindResources, Selector: "resources"},
		},
		CircleSection: "future-outlook",
		CircleFrom:    components.DefaultCircleFrom,
		FooterID:      "contact",
		Options:       scroll.DefaultOptions(),
	}
}

// Story is a mounted page.
type Story struct {
	env      scroll.Env
	manifest Manifest
	registry *sections.Registry
	logger   ports.Logger

	Controller *scroll.Controller
	Dots       *components.ProgressDots
	Skip       *components.SkipNav
	Circle     *components.CircleTransition
	MobileNav  *components.MobileNav
	Summary    *components.FinalSummary

	mounted   bool
	destroyed bool
}

// New creates an unmounted story.
func New(env scroll.Env, manifest Manifest, registry *sections.Registry) *Story {
	if registry == nil {
		registry = sections.Default()
	}
	return &Story{
		env:      env,
		manifest: manifest,
		registry: registry,
		logger:   env.Logger.WithComponent("story"),
	}
}

// Mount creates and mounts a story in one step.
func Mount(env scroll.Env, manifest Manifest, registry *sections.Registry) (*Story, error) {
	s := New(env, manifest, registry)
	if err := s.Mount(); err != nil {
		return nil, err
	}
	return s, nil
}

// Mount registers every section whose element exists, wires the components
// and starts the controller. Sections without an element are skipped.
func (s *Story) Mount() error {
	if s.mounted || s.destroyed {
		return ErrMounted
	}

	doc := s.env.Document
	handlers := make([]scroll.Handler, len(s.manifest.Sections))
	for i, spec := range s.manifest.Sections {
		h, err := s.registry.New(spec.Kind)
		if err != nil {
			return fmt.Errorf("section %s: %w", spec.ID, err)
		}
		handlers[i] = h
	}
	s.mounted = true

	s.Controller = scroll.New(s.env, s.manifest.Options)
	if s.manifest.CircleSection != "" {
		s.Circle = components.NewCircleTransition(doc)
	}

	registered := 0
	for i, spec := range s.manifest.Sections {
		el := s.element(spec)
		if el == nil {
			s.logger.Warn("Section not found: %s", spec.ID)
			continue
		}
		el.SetAttr(scroll.SectionAttr, spec.ID)

		h := handlers[i]
		if s.Circle != nil && spec.ID == s.manifest.CircleSection {
			h = components.WithCircleTransition(h, s.Circle, s.manifest.CircleFrom)
		}
		s.Controller.Register(spec.ID, h)
		registered++
	}

	s.Dots = components.NewProgressDots(doc, s.Controller)
	s.Skip = components.NewSkipNav(s.Controller)
	s.MobileNav = components.NewMobileNav(doc, s.Controller)
	s.Summary = components.NewFinalSummary(doc)

	s.Controller.Start()

	if s.manifest.FooterID != "" && !s.Summary.Watch(doc, s.manifest.FooterID) {
		s.logger.Debug("Footer not found: %s", s.manifest.FooterID)
	}

	s.logger.Info("Story mounted with %d of %d sections", registered, len(s.manifest.Sections))
	return nil
}

func (s *Story) element(spec SectionSpec) ports.Element {
	doc := s.env.Document
	if el := doc.SectionElement(spec.ID); el != nil {
		return el
	}
	sel := spec.Selector
	if sel == "" {
		sel = spec.ID
	}
	return doc.ByID(sel)
}

// HandleKey routes a key press to the skip navigation and the mobile modal.
// It reports whether the key was consumed.
func (s *Story) HandleKey(key string, alt bool) bool {
	if !s.mounted || s.destroyed {
		return false
	}
	if s.MobileNav.HandleKey(key) {
		return true
	}
	return s.Skip.HandleKey(key, alt)
}

// Destroy tears down the controller and every component. Safe to call repeatedly.
func (s *Story) Destroy() {
	if s.destroyed {
		return
	}
	s.destroyed = true
	if !s.mounted {
		return
	}
	s.Summary.Close()
	s.Dots.Close()
	if s.Circle != nil {
		s.Circle.Reset()
	}
	s.MobileNav.Close()
	s.Controller.Destroy()
	s.logger.Debug("Story destroyed")
}
