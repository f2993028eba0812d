// Package summarizer provides summary generation for walk results.
package summarizer

import (
	"time"

	"github.com/user/scrollytell/pkg/pipeline"
)

// Summary contains all data collected during a walk.
type Summary struct {
	// Metadata
	GeneratedAt time.Time
	RunID       string

	// Page information
	Page PageInfo

	// Per-section results in registration order
	Sections []SectionInfo

	// Engine activity
	Walk WalkInfo

	// Walk settings
	Settings Settings

	// Written files
	Outputs OutputInfo
}

// PageInfo contains information about the walked page.
type PageInfo struct {
	Title          string
	URL            string // empty for simulated pages
	ViewportWidth  int
	ViewportHeight int
	ScrollHeight   int
}

// SectionInfo summarizes one section over the walk.
type SectionInfo struct {
	ID            string
	Kind          string
	Visited       bool // Active in at least one frame
	FramesCurrent int // Frames during which the section was current
	FirstCurrent  int // First frame as current section (-1 = never)
	MaxProgress   float64
}

// WalkInfo contains engine activity counters.
type WalkInfo struct {
	Frames          int
	DurationMs      int
	SectionChanges  int
	ScrollEvents    int
	FramesRequested int
	Updates         int
	Screenshots     int
}

// CoalescingRatio is the number of scroll events per update pass.
// It returns 0 when nothing was updated.
func (w WalkInfo) CoalescingRatio() float64 {
	if w.Updates == 0 {
		return 0
	}
	return float64(w.ScrollEvents) / float64(w.Updates)
}

// Settings contains the walk configuration.
type Settings struct {
	Mode         string // simulate or drive
	Preset       string
	Speed        float64
	FPS          float64
	Reverse      bool
	Jumps        int
	SmoothScroll time.Duration
}

// OutputInfo describes the files written by a run.
type OutputInfo struct {
	TimelinePath string
	TimelineSize int64
	ChartPath    string
	ChartSize    int64
}

// NewSummary creates a new Summary with the current timestamp.
func NewSummary() *Summary {
	return &Summary{
		GeneratedAt: time.Now(),
	}
}

// Builder provides a fluent interface for building a Summary.
type Builder struct {
	summary *Summary
}

// NewBuilder creates a new Builder.
func NewBuilder() *Builder {
	return &Builder{
		summary: NewSummary(),
	}
}

// WithRunID sets the run identifier.
func (b *Builder) WithRunID(id string) *Builder {
	b.summary.RunID = id
	return b
}

// WithPage sets page information.
func (b *Builder) WithPage(page PageInfo) *Builder {
	b.summary.Page = page
	return b
}

// WithTimeline derives per-section results from a walk timeline.
// kinds maps section ids to handler kinds and may be nil.
func (b *Builder) WithTimeline(tl pipeline.Timeline, kinds map[string]string) *Builder {
	infos := make([]SectionInfo, len(tl.Sections))
	for i, id := range tl.Sections {
		infos[i] = SectionInfo{ID: id, Kind: kinds[id], FirstCurrent: -1}
	}
	for f, smp := range tl.Samples {
		for i := range infos {
			if smp.Current == infos[i].ID {
				infos[i].FramesCurrent++
				if infos[i].FirstCurrent < 0 {
					infos[i].FirstCurrent = f
				}
			}
			if i < len(smp.Progress) && smp.Progress[i] > infos[i].MaxProgress {
				infos[i].MaxProgress = smp.Progress[i]
			}
			if i < len(smp.Active) && smp.Active[i] {
				infos[i].Visited = true
			}
		}
	}
	b.summary.Sections = infos
	b.summary.Walk.Frames = len(tl.Samples)
	b.summary.Walk.DurationMs = int((time.Duration(len(tl.Samples)) * tl.FrameInterval).Milliseconds())
	b.summary.Walk.SectionChanges = len(tl.Changes)
	return b
}

// WithWalk sets engine activity counters. Frame and change counts derived
// from a timeline are kept when walk leaves them zero.
func (b *Builder) WithWalk(walk WalkInfo) *Builder {
	prev := b.summary.Walk
	if walk.Frames == 0 {
		walk.Frames = prev.Frames
	}
	if walk.DurationMs == 0 {
		walk.DurationMs = prev.DurationMs
	}
	if walk.SectionChanges == 0 {
		walk.SectionChanges = prev.SectionChanges
	}
	b.summary.Walk = walk
	return b
}

// WithSettings sets walk settings.
func (b *Builder) WithSettings(settings Settings) *Builder {
	b.summary.Settings = settings
	return b
}

// WithOutputs sets output file information.
func (b *Builder) WithOutputs(outputs OutputInfo) *Builder {
	b.summary.Outputs = outputs
	return b
}

// Build returns the constructed Summary.
func (b *Builder) Build() *Summary {
	return b.summary
}
