// Package walk implements the page walk stage: it mounts the story over a
// page, replays a scroll script frame by frame and samples the engine.
package walk

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/user/scrollytell/pkg/pipeline"
	"github.com/user/scrollytell/pkg/ports"
	"github.com/user/scrollytell/pkg/scroll"
	"github.com/user/scrollytell/pkg/sections"
	"github.com/user/scrollytell/pkg/story"
)

// Stage walks a mounted page.
type Stage struct {
	registry *sections.Registry
	sink     ports.DebugSink
	logger   ports.Logger
}

// New creates a new walk stage. A nil registry uses sections.Default().
func New(registry *sections.Registry, sink ports.DebugSink, logger ports.Logger) *Stage {
	return &Stage{
		registry: registry,
		sink:     sink,
		logger:   logger,
	}
}

// Execute mounts the story and replays the script.
func (s *Stage) Execute(ctx context.Context, input pipeline.WalkInput) (pipeline.WalkResult, error) {
	result := pipeline.WalkResult{RunID: uuid.New()}
	if input.Page == nil {
		return result, fmt.Errorf("walk: no page")
	}
	log := s.logger.WithComponent("walk")

	env := scroll.Env{
		Document: input.Page.Document(),
		Frames:   input.Page.Frames(),
		Logger:   s.logger,
	}
	st, err := story.Mount(env, input.Manifest, s.registry)
	if err != nil {
		return result, fmt.Errorf("mount story: %w", err)
	}
	defer st.Destroy()

	ctrl := st.Controller
	ids := ctrl.SectionIDs()
	result.Timeline = pipeline.Timeline{
		Sections:      ids,
		FrameInterval: input.Script.FrameInterval,
	}
	for _, state := range ctrl.Sections() {
		if state.Resolved {
			result.Mounted++
		}
	}
	log.Debug("Walking %d frames over %d sections (run %s)", len(input.Script.Frames), result.Mounted, result.RunID)

	frame := -1
	current := ctrl.CurrentSection()
	changed := false
	if current != "" {
		result.Timeline.Changes = append(result.Timeline.Changes, pipeline.Change{Frame: 0, To: current})
		changed = true
	}
	cancel := ctrl.Subscribe(func(ev scroll.Event) {
		if ev.Kind != scroll.EventSectionChange {
			return
		}
		f := frame
		if f < 0 {
			f = 0
		}
		change := pipeline.Change{Frame: f, From: current, To: ev.Section}
		if f < len(input.Script.Frames) {
			change.At = input.Script.Frames[f].At
		}
		result.Timeline.Changes = append(result.Timeline.Changes, change)
		current = ev.Section
		changed = true
	})
	defer cancel()

	doc := input.Page.Document()
	for i, step := range input.Script.Frames {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		frame = i

		switch step.Action {
		case pipeline.ActionScroll:
			doc.ScrollTo(step.ScrollY)
		case pipeline.ActionJump:
			log.Debug("Jumping to section %s at frame %d", step.Section, i)
			ctrl.ScrollToSection(step.Section)
		}
		input.Page.Advance(step.At)

		result.Timeline.Samples = append(result.Timeline.Samples, sample(ctrl, ids, step, doc.ScrollY()))

		if changed && input.CaptureScreenshots {
			changed = false
			s.capture(input.Page, i, current, &result)
		}
	}

	result.Stats = ctrl.Stats()
	log.Debug("Walk finished: %d section changes, %d updates for %d scroll events",
		len(result.Timeline.Changes), result.Stats.Updates, result.Stats.ScrollEvents)
	return result, nil
}

func sample(ctrl *scroll.Controller, ids []string, step pipeline.ScriptFrame, scrollY float64) pipeline.Sample {
	smp := pipeline.Sample{
		Frame:        step.Index,
		At:           step.At,
		ScrollY:      scrollY,
		Current:      ctrl.CurrentSection(),
		PageProgress: ctrl.PageProgress(),
		Progress:     make([]float64, len(ids)),
		Active:       make([]bool, len(ids)),
	}
	for i, state := range ctrl.Sections() {
		smp.Progress[i] = state.Progress
		smp.Active[i] = state.Active
	}
	return smp
}

func (s *Stage) capture(page ports.Page, frame int, section string, result *pipeline.WalkResult) {
	data, err := page.Screenshot()
	if err != nil {
		s.logger.Warn("Screenshot failed at frame %d: %v", frame, err)
		return
	}
	if len(data) == 0 {
		return
	}
	index := len(result.Screenshots)
	result.Screenshots = append(result.Screenshots, pipeline.Screenshot{
		Frame:   frame,
		Section: section,
		Data:    data,
	})
	if s.sink != nil && s.sink.Enabled() {
		// Debug output is best effort
		_ = s.sink.SaveScreenshot(index, data)
	}
}
