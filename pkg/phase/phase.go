// Package phase models scroll-driven visual state as ordered threshold tables.
//
// A section's progress domain [0, 1] is split into phases. Each phase turns on a
// visual effect once progress crosses its start. Effects are idempotent, so a
// table can be reapplied on every frame without flicker.
package phase

import (
	"github.com/user/scrollytell/pkg/ports"
	"github.com/user/scrollytell/pkg/scrollmath"
)

// Mode selects what happens to an entered effect when progress falls back below its threshold.
type Mode int

const (
	// Ratchet effects stay entered once forward scroll has crossed them.
	Ratchet Mode = iota
	// Toggle effects are left again when progress drops below the threshold.
	Toggle
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case Ratchet:
		return "ratchet"
	case Toggle:
		return "toggle"
	default:
		return "unknown"
	}
}

// Effect is a discrete visual state that can be switched on and off.
type Effect interface {
	Enter()
	Leave()
}

// ClassEffect adds class tokens to a target on Enter and removes them on Leave.
// A nil target is a missing optional sub-element and makes the effect a no-op.
type ClassEffect struct {
	Target  ports.Element
	Classes []string
}

// Class returns a ClassEffect for the given target.
func Class(target ports.Element, classes ...string) ClassEffect {
	return ClassEffect{Target: target, Classes: classes}
}

// Enter adds the classes.
func (e ClassEffect) Enter() {
	if e.Target == nil {
		return
	}
	e.Target.AddClass(e.Classes...)
}

// Leave removes the classes.
func (e ClassEffect) Leave() {
	if e.Target == nil {
		return
	}
	e.Target.RemoveClass(e.Classes...)
}

// Effects groups effects that switch together.
type Effects []Effect

// Enter enters every effect in order.
func (es Effects) Enter() {
	for _, e := range es {
		e.Enter()
	}
}

// Leave leaves every effect in order.
func (es Effects) Leave() {
	for _, e := range es {
		e.Leave()
	}
}

// Func adapts a pair of functions to Effect. Either may be nil.
type Func struct {
	OnEnter func()
	OnLeave func()
}

// Enter calls OnEnter.
func (f Func) Enter() {
	if f.OnEnter != nil {
		f.OnEnter()
	}
}

// Leave calls OnLeave.
func (f Func) Leave() {
	if f.OnLeave != nil {
		f.OnLeave()
	}
}

// Rule enters Effect once progress reaches At.
type Rule struct {
	At     float64
	Mode   Mode
	Effect Effect
}

// Band enters Effect while From <= progress < To and leaves it otherwise.
type Band struct {
	From   float64
	To     float64
	Effect Effect
}

// Contains reports whether progress lies inside the band.
func (b Band) Contains(progress float64) bool {
	return progress >= b.From && progress < b.To
}

// Table is an ordered list of rules and bands evaluated in sequence.
type Table struct {
	Rules []Rule
	Bands []Band
}

// Add appends a rule.
func (t *Table) Add(at float64, mode Mode, effect Effect) *Table {
	t.Rules = append(t.Rules, Rule{At: at, Mode: mode, Effect: effect})
	return t
}

// AddBand appends a band.
func (t *Table) AddBand(from, to float64, effect Effect) *Table {
	t.Bands = append(t.Bands, Band{From: from, To: to, Effect: effect})
	return t
}

// Apply evaluates every rule, then every band, against progress.
func (t *Table) Apply(progress float64) {
	for _, r := range t.Rules {
		if r.Effect == nil {
			continue
		}
		switch {
		case progress >= r.At:
			r.Effect.Enter()
		case r.Mode == Toggle:
			r.Effect.Leave()
		}
	}
	for _, b := range t.Bands {
		if b.Effect == nil {
			continue
		}
		if b.Contains(progress) {
			b.Effect.Enter()
		} else {
			b.Effect.Leave()
		}
	}
}

// Stage is a sub-range of the global progress domain with its own local progress.
type Stage struct {
	Start float64
	End   float64
}

// Local maps global progress to the stage's local [0, 1] progress.
func (s Stage) Local(progress float64) float64 {
	return scrollmath.Normalize(progress, s.Start, s.End)
}

// Reached reports whether progress has entered the stage.
func (s Stage) Reached(progress float64) bool {
	return progress >= s.Start
}

// Level returns how many of the ascending thresholds progress has reached.
func Level(progress float64, thresholds []float64) int {
	n := 0
	for _, th := range thresholds {
		if progress < th {
			break
		}
		n++
	}
	return n
}

// Stagger returns per-unit reveal thresholds for n units spread over [a, b].
// Unit i reveals at a + (i/n)·(b-a)·factor. With factor > 0 and b > a the
// thresholds are strictly increasing.
func Stagger(n int, a, b, factor float64) []float64 {
	if n <= 0 {
		return nil
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = a + (float64(i)/float64(n))*(b-a)*factor
	}
	return out
}
