package orchestrator

import (
	"context"
	"encoding/json"
	"errors"
	"image"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/user/scrollytell/pkg/adapters/ggrenderer"
	"github.com/user/scrollytell/pkg/adapters/logger"
	"github.com/user/scrollytell/pkg/adapters/memdom"
	"github.com/user/scrollytell/pkg/mocks"
	"github.com/user/scrollytell/pkg/pipeline"
	"github.com/user/scrollytell/pkg/sections"
	"github.com/user/scrollytell/pkg/stages/chart"
	"github.com/user/scrollytell/pkg/stages/script"
	"github.com/user/scrollytell/pkg/stages/walk"
	"github.com/user/scrollytell/pkg/story"
)

func testPage() *memdom.Page {
	return memdom.NewPage(memdom.Build(memdom.Layout{
		Width:  1280,
		Height: 800,
		Sections: []memdom.SectionLayout{
			{ID: "a", Height: 1600, Elements: []memdom.ElementSpec{{Class: "problem__title"}}},
			{ID: "b", Height: 1600, Elements: []memdom.ElementSpec{{Class: "growth__title"}}},
		},
	}))
}

func testManifest() story.Manifest {
	m := story.Manifest{
		Sections: []story.SectionSpec{
			{ID: "a", Kind: sections.KindProblem},
			{ID: "b", Kind: sections.KindGrowth},
		},
	}
	m.Options = story.DefaultManifest().Options
	m.Options.SmoothScrollDuration = 0
	return m
}

// mockStages returns stages that record their inputs.
type mockStages struct {
	scriptIn pipeline.ScriptInput
	walkIn   pipeline.WalkInput
	chartIn  pipeline.ChartInput
	chartRun bool

	scriptErr, walkErr, chartErr error
}

func (m *mockStages) orchestrator(fs *mocks.FileSystem, sink *mocks.DebugSink) *Orchestrator {
	return New(
		pipeline.StageFunc[pipeline.ScriptInput, pipeline.ScrollScript](
			func(ctx context.Context, input pipeline.ScriptInput) (pipeline.ScrollScript, error) {
				m.scriptIn = input
				if m.scriptErr != nil {
					return pipeline.ScrollScript{}, m.scriptErr
				}
				return pipeline.ScrollScript{
					Frames:        []pipeline.ScriptFrame{{Action: pipeline.ActionScroll, ScrollY: 100}},
					FrameInterval: input.FrameInterval,
					MaxScroll:     2400,
				}, nil
			}),
		pipeline.StageFunc[pipeline.WalkInput, pipeline.WalkResult](
			func(ctx context.Context, input pipeline.WalkInput) (pipeline.WalkResult, error) {
				m.walkIn = input
				if m.walkErr != nil {
					return pipeline.WalkResult{}, m.walkErr
				}
				return pipeline.WalkResult{
					RunID:   uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8"),
					Mounted: 2,
					Timeline: pipeline.Timeline{
						Sections: []string{"a", "b"},
						Samples:  []pipeline.Sample{{Frame: 0, Current: "a"}},
						Changes:  []pipeline.Change{{Frame: 0, To: "a"}},
					},
					Screenshots: []pipeline.Screenshot{{Frame: 0, Section: "a"}},
				}, nil
			}),
		pipeline.StageFunc[pipeline.ChartInput, pipeline.ChartResult](
			func(ctx context.Context, input pipeline.ChartInput) (pipeline.ChartResult, error) {
				m.chartIn = input
				m.chartRun = true
				if m.chartErr != nil {
					return pipeline.ChartResult{}, m.chartErr
				}
				return pipeline.ChartResult{
					Image: image.NewRGBA(image.Rect(0, 0, 4, 4)),
					PNG:   []byte{0x89, 'P', 'N', 'G'},
				}, nil
			}),
		fs,
		sink,
		logger.NewNoop(),
	)
}

func TestOrchestrator_Run(t *testing.T) {
	stages := &mockStages{}
	mockFS := mocks.NewFileSystem()
	orch := stages.orchestrator(mockFS, mocks.NewDebugSink(false))

	config := DefaultConfig()
	config.Title = "Test Page"
	config.Manifest = testManifest()
	config.TimelinePath = "out/timeline.json"
	config.ChartPath = "out/timeline.png"
	config.FPS = 50

	result, err := orch.Run(context.Background(), testPage(), config)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if stages.scriptIn.ViewportHeight != 800 || stages.scriptIn.PageHeight != 3200 {
		t.Errorf("script input = %+v, want viewport 800 and page 3200", stages.scriptIn)
	}
	if stages.scriptIn.FrameInterval != 20*time.Millisecond {
		t.Errorf("frame interval = %v, want 20ms", stages.scriptIn.FrameInterval)
	}
	if stages.walkIn.Page == nil || len(stages.walkIn.Script.Frames) != 1 {
		t.Error("walk stage should receive the page and the script")
	}
	if len(stages.chartIn.Screenshots) != 1 {
		t.Error("chart stage should receive the walk screenshots")
	}

	data, ok := mockFS.GetFile("out/timeline.json")
	if !ok {
		t.Fatal("expected timeline to be written")
	}
	var tl pipeline.Timeline
	if err := json.Unmarshal(data, &tl); err != nil {
		t.Fatalf("timeline is not JSON: %v", err)
	}
	if len(tl.Sections) != 2 {
		t.Errorf("timeline sections = %v", tl.Sections)
	}
	if png, ok := mockFS.GetFile("out/timeline.png"); !ok || len(png) != 4 {
		t.Error("expected chart to be written")
	}

	if result.RunID != "6ba7b810-9dad-11d1-80b4-00c04fd430c8" {
		t.Errorf("RunID = %q", result.RunID)
	}
	if result.PageTitle != "Test Page" || result.ViewportWidth != 1280 || result.ScrollHeight != 3200 {
		t.Errorf("page info = %+v", result)
	}
	if result.Kinds["b"] != sections.KindGrowth {
		t.Errorf("Kinds = %v", result.Kinds)
	}
	if result.TimelineSize != int64(len(data)) || result.ChartSize != 4 {
		t.Errorf("sizes = %d, %d", result.TimelineSize, result.ChartSize)
	}
}

func TestOrchestrator_Run_WithoutChart(t *testing.T) {
	stages := &mockStages{}
	mockFS := mocks.NewFileSystem()
	orch := stages.orchestrator(mockFS, mocks.NewDebugSink(false))

	config := DefaultConfig()
	config.Manifest = testManifest()
	config.ChartPath = ""

	result, err := orch.Run(context.Background(), testPage(), config)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stages.chartRun {
		t.Error("chart stage should be skipped without a chart path")
	}
	if result.ChartPath != "" || result.ChartSize != 0 {
		t.Errorf("chart output = %q (%d bytes)", result.ChartPath, result.ChartSize)
	}
}

func TestOrchestrator_Run_WithDebugSink(t *testing.T) {
	stages := &mockStages{}
	mockSink := mocks.NewDebugSink(true)
	orch := stages.orchestrator(mocks.NewFileSystem(), mockSink)

	config := DefaultConfig()
	config.Manifest = testManifest()

	if _, err := orch.Run(context.Background(), testPage(), config); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(mockSink.ScriptJSON) == 0 {
		t.Error("expected script JSON to be saved")
	}
	if len(mockSink.TimelineJSON) == 0 {
		t.Error("expected timeline JSON to be saved")
	}
}

func TestOrchestrator_Run_Errors(t *testing.T) {
	boom := errors.New("boom")

	tests := []struct {
		name   string
		stages *mockStages
		write  error
		want   string
	}{
		{"script", &mockStages{scriptErr: boom}, nil, "script stage"},
		{"walk", &mockStages{walkErr: boom}, nil, "walk stage"},
		{"chart", &mockStages{chartErr: boom}, nil, "chart stage"},
		{"write", &mockStages{}, boom, "write output"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockFS := mocks.NewFileSystem()
			if tt.write != nil {
				mockFS.WriteFileFunc = func(path string, data []byte) error { return tt.write }
			}
			orch := tt.stages.orchestrator(mockFS, mocks.NewDebugSink(false))

			config := DefaultConfig()
			config.Manifest = testManifest()

			_, err := orch.Run(context.Background(), testPage(), config)
			if !errors.Is(err, boom) {
				t.Fatalf("error = %v, want wrapped boom", err)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %q, want prefix %q", err, tt.want)
			}
		})
	}
}

func TestOrchestrator_Run_NoPage(t *testing.T) {
	orch := (&mockStages{}).orchestrator(mocks.NewFileSystem(), mocks.NewDebugSink(false))
	if _, err := orch.Run(context.Background(), nil, DefaultConfig()); err == nil {
		t.Error("expected error without a page")
	}
}

func TestOrchestrator_Run_EndToEnd(t *testing.T) {
	sink := mocks.NewDebugSink(false)
	log := logger.NewNoop()
	mockFS := mocks.NewFileSystem()
	orch := New(
		script.NewStage(),
		walk.New(sections.Default(), sink, log),
		chart.New(ggrenderer.New(), sink, log),
		mockFS,
		sink,
		log,
	)

	config := DefaultConfig()
	config.Manifest = testManifest()
	config.Speed = 200
	config.DwellFrames = 2

	result, err := orch.Run(context.Background(), testPage(), config)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Mounted != 2 {
		t.Errorf("Mounted = %d, want 2", result.Mounted)
	}
	var visited []string
	for _, c := range result.Timeline.Changes {
		visited = append(visited, c.To)
	}
	if strings.Join(visited, ",") != "a,b" {
		t.Errorf("section changes = %v, want a then b", visited)
	}
	if result.Stats.Updates == 0 || result.Stats.ScrollEvents == 0 {
		t.Errorf("stats = %+v", result.Stats)
	}
	if _, ok := mockFS.GetFile("timeline.png"); !ok {
		t.Error("expected chart PNG to be written")
	}
}

func TestConfig_FrameInterval(t *testing.T) {
	tests := []struct {
		fps  float64
		want time.Duration
	}{
		{60, time.Second / 60},
		{30, time.Second / 30},
		{0, 16 * time.Millisecond},
	}
	for _, tt := range tests {
		if got := (Config{FPS: tt.fps}).FrameInterval(); got != tt.want {
			t.Errorf("FrameInterval(%v) = %v, want %v", tt.fps, got, tt.want)
		}
	}
}
