// Package orchestrator coordinates all pipeline stages.
package orchestrator

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	"github.com/ideamans/go-l10n"
	"golang.org/x/sync/errgroup"

	"github.com/user/scrollytell/pkg/pipeline"
	"github.com/user/scrollytell/pkg/ports"
	"github.com/user/scrollytell/pkg/scroll"
	"github.com/user/scrollytell/pkg/story"
)

// Config contains all configuration for the orchestrator.
type Config struct {
	// Page
	Mode   string // simulate or drive
	Preset string
	URL    string
	Title  string

	// Output
	TimelinePath string
	ChartPath    string // empty skips the chart

	// Walk
	Speed              float64 // Pixels per frame
	FPS                float64
	DwellFrames        int
	JumpFrames         int
	Reverse            bool
	Jumps              []pipeline.Jump
	CaptureScreenshots bool
	Manifest           story.Manifest

	// Chart
	ChartWidth int
	LaneHeight int
	Theme      pipeline.ChartTheme
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	script := pipeline.DefaultScriptInput()
	chart := pipeline.DefaultChartInput()
	return Config{
		Mode:         "simulate",
		TimelinePath: "timeline.json",
		ChartPath:    "timeline.png",

		Speed:       script.Speed,
		FPS:         60,
		DwellFrames: script.DwellFrames,
		JumpFrames:  script.JumpFrames,
		Manifest:    story.DefaultManifest(),

		ChartWidth: chart.Width,
		LaneHeight: chart.LaneHeight,
		Theme:      chart.Theme,
	}
}

// FrameInterval returns the time between frames for the configured FPS.
func (c Config) FrameInterval() time.Duration {
	if c.FPS <= 0 {
		return pipeline.DefaultScriptInput().FrameInterval
	}
	return time.Duration(float64(time.Second) / c.FPS)
}

// Orchestrator coordinates the execution of all pipeline stages.
type Orchestrator struct {
	scriptStage pipeline.Stage[pipeline.ScriptInput, pipeline.ScrollScript]
	walkStage   pipeline.Stage[pipeline.WalkInput, pipeline.WalkResult]
	chartStage  pipeline.Stage[pipeline.ChartInput, pipeline.ChartResult]
	fs          ports.FileSystem
	sink        ports.DebugSink
	logger      ports.Logger
}

// New creates a new Orchestrator.
func New(
	scriptStage pipeline.Stage[pipeline.ScriptInput, pipeline.ScrollScript],
	walkStage pipeline.Stage[pipeline.WalkInput, pipeline.WalkResult],
	chartStage pipeline.Stage[pipeline.ChartInput, pipeline.ChartResult],
	fs ports.FileSystem,
	sink ports.DebugSink,
	logger ports.Logger,
) *Orchestrator {
	return &Orchestrator{
		scriptStage: scriptStage,
		walkStage:   walkStage,
		chartStage:  chartStage,
		fs:          fs,
		sink:        sink,
		logger:      logger,
	}
}

// Run walks the page and writes the timeline and chart.
func (o *Orchestrator) Run(ctx context.Context, page ports.Page, config Config) (RunResult, error) {
	if page == nil {
		return RunResult{}, fmt.Errorf("no page to walk")
	}
	o.logger.Info(l10n.T("Starting pipeline"))

	doc := page.Document()
	width, height := doc.Viewport()
	result := RunResult{
		PageTitle:      config.Title,
		PageURL:        config.URL,
		ViewportWidth:  int(width),
		ViewportHeight: int(height),
		ScrollHeight:   int(doc.ScrollHeight()),
		Kinds:          make(map[string]string, len(config.Manifest.Sections)),
	}
	for _, spec := range config.Manifest.Sections {
		result.Kinds[spec.ID] = spec.Kind
	}

	// 1. Scroll script
	script, err := o.scriptStage.Execute(ctx, o.buildScriptInput(config, height, doc.ScrollHeight()))
	if err != nil {
		o.logger.Error(l10n.F("Failed to build scroll script: %s", err))
		return RunResult{}, fmt.Errorf("script stage: %w", err)
	}
	o.logger.Info(l10n.F("Scroll script ready: %d frames over %d px", len(script.Frames), int(script.MaxScroll)))

	if o.sink.Enabled() {
		if data, err := json.MarshalIndent(script, "", "  "); err == nil {
			o.sink.SaveScriptJSON(data)
		}
	}

	// 2. Walk
	o.logger.Info(l10n.F("Walking %d sections", len(config.Manifest.Sections)))
	walk, err := o.walkStage.Execute(ctx, pipeline.WalkInput{
		Page:               page,
		Script:             script,
		Manifest:           config.Manifest,
		CaptureScreenshots: config.CaptureScreenshots,
	})
	if err != nil {
		o.logger.Error(l10n.F("Failed to walk page: %s", err))
		return RunResult{}, fmt.Errorf("walk stage: %w", err)
	}
	o.logger.Info(l10n.F("Walk completed: %d section changes", len(walk.Timeline.Changes)))
	if walk.Mounted < len(config.Manifest.Sections) {
		o.logger.Warn(l10n.F("%d of %d sections were not found on the page", len(config.Manifest.Sections)-walk.Mounted, len(config.Manifest.Sections)))
	}

	result.RunID = walk.RunID.String()
	result.Timeline = walk.Timeline
	result.Stats = walk.Stats
	result.Mounted = walk.Mounted
	result.Screenshots = len(walk.Screenshots)

	timeline, err := json.MarshalIndent(walk.Timeline, "", "  ")
	if err != nil {
		return RunResult{}, fmt.Errorf("marshal timeline: %w", err)
	}
	if o.sink.Enabled() {
		o.sink.SaveTimelineJSON(timeline)
	}

	// 3. Chart
	var chart pipeline.ChartResult
	if config.ChartPath != "" {
		o.logger.Info(l10n.T("Rendering timeline chart"))
		chart, err = o.chartStage.Execute(ctx, o.buildChartInput(config, walk))
		if err != nil {
			o.logger.Error(l10n.F("Failed to render chart: %s", err))
			return RunResult{}, fmt.Errorf("chart stage: %w", err)
		}
	}

	// 4. Write outputs
	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		return o.write(config.TimelinePath, timeline)
	})
	if config.ChartPath != "" {
		g.Go(func() error {
			return o.write(config.ChartPath, chart.PNG)
		})
	}
	if err := g.Wait(); err != nil {
		o.logger.Error(l10n.F("Failed to write output: %s", err))
		return RunResult{}, fmt.Errorf("write output: %w", err)
	}

	result.TimelinePath = config.TimelinePath
	result.TimelineSize = int64(len(timeline))
	if config.ChartPath != "" {
		result.ChartPath = config.ChartPath
		result.ChartSize = int64(len(chart.PNG))
	}

	o.logger.Info(l10n.T("Pipeline completed successfully"))
	return result, nil
}

func (o *Orchestrator) write(path string, data []byte) error {
	if path == "" {
		return nil
	}
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := o.fs.MkdirAll(dir); err != nil {
			return err
		}
	}
	return o.fs.WriteFile(path, data)
}

func (o *Orchestrator) buildScriptInput(config Config, viewportHeight, pageHeight float64) pipeline.ScriptInput {
	return pipeline.ScriptInput{
		ViewportHeight: viewportHeight,
		PageHeight:     pageHeight,
		Speed:          config.Speed,
		FrameInterval:  config.FrameInterval(),
		DwellFrames:    config.DwellFrames,
		JumpFrames:     config.JumpFrames,
		Reverse:        config.Reverse,
		Jumps:          config.Jumps,
	}
}

func (o *Orchestrator) buildChartInput(config Config, walk pipeline.WalkResult) pipeline.ChartInput {
	return pipeline.ChartInput{
		Timeline:    walk.Timeline,
		Screenshots: walk.Screenshots,
		Width:       config.ChartWidth,
		LaneHeight:  config.LaneHeight,
		Theme:       config.Theme,
	}
}

// RunResult contains the results of a pipeline run for summary generation.
type RunResult struct {
	RunID string

	// Page information
	PageTitle      string
	PageURL        string
	ViewportWidth  int
	ViewportHeight int
	ScrollHeight   int

	// Walk information
	Timeline    pipeline.Timeline
	Stats       scroll.Stats
	Mounted     int
	Screenshots int
	Kinds       map[string]string // Section id to handler kind

	// Output information
	TimelinePath string
	TimelineSize int64
	ChartPath    string
	ChartSize    int64
}
