// Package sections holds the concrete section handlers of the story page.
//
// Every handler queries its sub-elements by class, scoped to its own root,
// once in Init. Missing sub-elements are tolerated: the affected effect is
// simply a no-op.
package sections

import (
	"errors"
	"fmt"
	"sort"

	"github.com/user/scrollytell/pkg/scroll"
)

// ErrUnknownKind is returned when no handler is registered for a kind.
var ErrUnknownKind = errors.New("unknown section kind")

// Factory creates a fresh handler.
type Factory func() scroll.Handler

// Registry maps handler kind names to factories.
type Registry struct {
	factories map[string]Factory
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Default returns a registry holding every built-in handler.
func Default() *Registry {
	r := NewRegistry()
	r.Register(KindHero, func() scroll.Handler { return NewHero() })
	r.Register(KindFlipCards, func() scroll.Handler { return NewFlipCards() })
	r.Register(KindProblem, func() scroll.Handler { return NewProblem() })
	r.Register(KindFutureOutlook, func() scroll.Handler { return NewFutureOutlook() })
	r.Register(KindSolution, func() scroll.Handler { return NewSolution() })
	r.Register(KindGrowth, func() scroll.Handler { return NewGrowth() })
	r.Register(KindStrategy, func() scroll.Handler { return NewStrategy() })
	r.Register(KindResources, func() scroll.Handler { return NewResources() })
	return r
}

// Built-in handler kinds.
const (
	KindHero          = "hero"
	KindFlipCards     = "flip-cards"
	KindProblem       = "problem"
	KindFutureOutlook = "future-outlook"
	KindSolution      = "solution"
	KindGrowth        = "growth"
	KindStrategy      = "strategy"
	KindResources     = "resources"
)

// Register adds or replaces a factory.
func (r *Registry) Register(kind string, f Factory) {
	r.factories[kind] = f
}

// New creates a handler of the given kind.
func (r *Registry) New(kind string) (scroll.Handler, error) {
	f, ok := r.factories[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	return f(), nil
}

// Kinds returns the registered kinds, sorted.
func (r *Registry) Kinds() []string {
	kinds := make([]string, 0, len(r.factories))
	for k := range r.factories {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}
