// Package script implements the scroll script stage.
package script

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/user/scrollytell/pkg/pipeline"
)

// Stage builds the frame-by-frame scroll plan for a walk.
// This is a pure function with no external dependencies.
type Stage struct{}

// NewStage creates a new script stage.
func NewStage() *Stage {
	return &Stage{}
}

// Execute builds the script.
func (s *Stage) Execute(ctx context.Context, input pipeline.ScriptInput) (pipeline.ScrollScript, error) {
	return Build(input), nil
}

// Build scrolls from the top to the bottom of the page at a constant speed,
// dwelling at both ends, and inserts section jumps after the requested
// number of scroll frames. With Reverse it then scrolls back up.
// The script always holds at least one frame.
func Build(input pipeline.ScriptInput) pipeline.ScrollScript {
	defaults := pipeline.DefaultScriptInput()
	if input.Speed <= 0 {
		input.Speed = defaults.Speed
	}
	if input.FrameInterval <= 0 {
		input.FrameInterval = defaults.FrameInterval
	}
	if input.DwellFrames < 0 {
		input.DwellFrames = 0
	}
	if input.JumpFrames < 0 {
		input.JumpFrames = 0
	}

	maxScroll := math.Max(0, input.PageHeight-input.ViewportHeight)
	b := &builder{interval: input.FrameInterval}

	jumps := append([]pipeline.Jump(nil), input.Jumps...)
	sort.SliceStable(jumps, func(i, j int) bool { return jumps[i].AfterFrame < jumps[j].AfterFrame })

	scrolled := 0
	flushJumps := func(force bool) {
		for len(jumps) > 0 && (force || jumps[0].AfterFrame <= scrolled) {
			b.add(pipeline.ActionJump, b.y, jumps[0].Section)
			b.hold(input.JumpFrames)
			jumps = jumps[1:]
		}
	}

	b.hold(input.DwellFrames)
	flushJumps(false)
	for y := input.Speed; b.y < maxScroll; y += input.Speed {
		b.add(pipeline.ActionScroll, math.Min(y, maxScroll), "")
		scrolled++
		flushJumps(false)
	}
	flushJumps(true)
	b.hold(input.DwellFrames)

	if input.Reverse && maxScroll > 0 {
		for y := maxScroll - input.Speed; b.y > 0; y -= input.Speed {
			b.add(pipeline.ActionScroll, math.Max(y, 0), "")
		}
		b.hold(input.DwellFrames)
	}

	if len(b.frames) == 0 {
		b.hold(1)
	}

	return pipeline.ScrollScript{
		Frames:        b.frames,
		FrameInterval: input.FrameInterval,
		MaxScroll:     maxScroll,
	}
}

type builder struct {
	interval time.Duration
	frames   []pipeline.ScriptFrame
	y        float64
}

func (b *builder) add(action pipeline.ScrollAction, y float64, section string) {
	i := len(b.frames)
	b.frames = append(b.frames, pipeline.ScriptFrame{
		Index:   i,
		At:      time.Duration(i) * b.interval,
		Action:  action,
		ScrollY: y,
		Section: section,
	})
	if action == pipeline.ActionScroll {
		b.y = y
	}
}

func (b *builder) hold(n int) {
	for i := 0; i < n; i++ {
		b.add(pipeline.ActionHold, b.y, "")
	}
}
