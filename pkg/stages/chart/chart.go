// Package chart implements the timeline chart stage.
package chart

import (
	"context"
	"fmt"
	"image/color"

	"github.com/user/scrollytell/pkg/pipeline"
	"github.com/user/scrollytell/pkg/ports"
)

const (
	padding      = 16
	headerHeight = 36
	labelWidth   = 132
	labelGap     = 8
	laneRadius   = 4
	laneGap      = 6
	thumbHeight  = 120
	thumbGap     = 8
	fontSize     = 13
)

// Stage renders a walk timeline as an image: one lane per section showing
// its progress, the stretches where it was current, and a marker for every
// section change, followed by screenshot thumbnails.
type Stage struct {
	renderer ports.Renderer
	sink     ports.DebugSink
	logger   ports.Logger
}

// New creates a new chart stage.
func New(renderer ports.Renderer, sink ports.DebugSink, logger ports.Logger) *Stage {
	return &Stage{
		renderer: renderer,
		sink:     sink,
		logger:   logger.WithComponent("chart"),
	}
}

// Execute renders the chart and encodes it as PNG.
func (s *Stage) Execute(ctx context.Context, input pipeline.ChartInput) (pipeline.ChartResult, error) {
	var result pipeline.ChartResult
	if err := ctx.Err(); err != nil {
		return result, err
	}

	defaults := pipeline.DefaultChartInput()
	if input.Width <= 0 {
		input.Width = defaults.Width
	}
	if input.LaneHeight <= 0 {
		input.LaneHeight = defaults.LaneHeight
	}
	theme := input.Theme
	if theme.BackgroundColor == nil {
		theme = defaults.Theme
	}

	tl := input.Timeline
	lanes := len(tl.Sections) + 1
	height := padding*2 + headerHeight + lanes*(input.LaneHeight+laneGap)
	if len(input.Screenshots) > 0 {
		height += thumbHeight + headerHeight
	}
	s.logger.Debug("Rendering chart %dx%d for %d samples", input.Width, height, len(tl.Samples))

	canvas := s.renderer.CreateCanvas(input.Width, height, theme.BackgroundColor)
	text := ports.TextStyle{FontSize: fontSize, Color: theme.TextColor}

	canvas.DrawText(fmt.Sprintf("Scroll timeline: %d frames, %d section changes", len(tl.Samples), len(tl.Changes)),
		padding, padding+headerHeight/2, text)

	plot := plotArea{
		x:      padding + labelWidth,
		width:  input.Width - padding*2 - labelWidth,
		frames: len(tl.Samples),
	}
	top := padding + headerHeight

	for i, id := range tl.Sections {
		y := top + i*(input.LaneHeight+laneGap)
		canvas.DrawText(fitLabel(canvas, id, labelWidth-labelGap, text), padding, y+input.LaneHeight/2, text)
		canvas.DrawRoundedRect(plot.x, y, plot.width, input.LaneHeight, laneRadius, theme.LaneColor)

		for _, run := range currentRuns(tl.Samples, id) {
			x0, x1 := plot.at(run[0]), plot.at(run[1]+1)
			w := max(1, x1-x0)
			canvas.DrawRect(x0, y, w, 4, theme.CurrentColor)
			canvas.DrawRectStroke(x0, y, w, input.LaneHeight, theme.CurrentColor, 1)
		}

		points := make([]ports.Point, 0, len(tl.Samples))
		for f, smp := range tl.Samples {
			p := 0.0
			if i < len(smp.Progress) {
				p = smp.Progress[i]
			}
			points = append(points, ports.Point{
				X: float64(plot.at(f)),
				Y: float64(y+input.LaneHeight-2) - p*float64(input.LaneHeight-6),
			})
		}
		canvas.DrawPolyline(points, theme.ProgressColor, 2)
	}

	// Page-wide progress lane
	y := top + len(tl.Sections)*(input.LaneHeight+laneGap)
	canvas.DrawText("page", padding, y+input.LaneHeight/2, text)
	canvas.DrawRoundedRect(plot.x, y, plot.width, input.LaneHeight, laneRadius, theme.LaneColor)
	points := make([]ports.Point, 0, len(tl.Samples))
	for f, smp := range tl.Samples {
		points = append(points, ports.Point{
			X: float64(plot.at(f)),
			Y: float64(y+input.LaneHeight-2) - smp.PageProgress*float64(input.LaneHeight-6),
		})
	}
	canvas.DrawPolyline(points, theme.CurrentColor, 2)

	lanesBottom := y + input.LaneHeight
	for _, c := range tl.Changes {
		x := plot.at(c.Frame)
		canvas.DrawLine(x, top, x, lanesBottom, theme.ChangeColor, 1)
	}

	if len(input.Screenshots) > 0 {
		s.drawThumbnails(canvas, input.Screenshots, lanesBottom+laneGap, input.Width, text, theme.ChangeColor)
	}

	result.Image = canvas.ToImage()
	data, err := s.renderer.EncodeImage(result.Image, ports.FormatPNG, 0)
	if err != nil {
		return result, fmt.Errorf("encode chart: %w", err)
	}
	result.PNG = data

	if s.sink != nil && s.sink.Enabled() {
		_ = s.sink.SaveChart(result.Image)
	}
	return result, nil
}

func (s *Stage) drawThumbnails(canvas ports.Canvas, shots []pipeline.Screenshot, top, width int, text ports.TextStyle, border color.Color) {
	x := padding
	for _, shot := range shots {
		img, err := s.renderer.DecodeImage(shot.Data, ports.FormatPNG)
		if err != nil {
			s.logger.Debug("Skipping screenshot at frame %d: %v", shot.Frame, err)
			continue
		}
		thumb := s.renderer.ResizeImage(img, 0, thumbHeight)
		w := thumb.Bounds().Dx()
		if w == 0 {
			continue
		}
		if x+w > width-padding {
			break
		}
		canvas.DrawText(fmt.Sprintf("#%d %s", shot.Frame, shot.Section), x, top+headerHeight/2, text)
		canvas.DrawImage(thumb, x, top+headerHeight)
		canvas.DrawRectStroke(x, top+headerHeight, w, thumbHeight, border, 1)
		x += w + thumbGap
	}
}

// fitLabel shortens label with an ellipsis until it fits in maxWidth.
func fitLabel(canvas ports.Canvas, label string, maxWidth int, style ports.TextStyle) string {
	if w, _ := canvas.MeasureText(label, style); w <= float64(maxWidth) {
		return label
	}
	r := []rune(label)
	for n := len(r) - 1; n > 0; n-- {
		short := string(r[:n]) + "…"
		if w, _ := canvas.MeasureText(short, style); w <= float64(maxWidth) {
			return short
		}
	}
	return "…"
}

type plotArea struct {
	x      int
	width  int
	frames int
}

// at maps a frame index to an x coordinate. Index frames maps to the right edge.
func (p plotArea) at(frame int) int {
	if p.frames <= 0 {
		return p.x
	}
	if frame > p.frames {
		frame = p.frames
	}
	return p.x + frame*p.width/p.frames
}

// currentRuns returns the inclusive frame ranges where id was the current section.
func currentRuns(samples []pipeline.Sample, id string) [][2]int {
	var runs [][2]int
	start := -1
	for i, smp := range samples {
		switch {
		case smp.Current == id && start < 0:
			start = i
		case smp.Current != id && start >= 0:
			runs = append(runs, [2]int{start, i - 1})
			start = -1
		}
	}
	if start >= 0 {
		runs = append(runs, [2]int{start, len(samples) - 1})
	}
	return runs
}
