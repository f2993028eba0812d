package chart

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/user/scrollytell/pkg/adapters/ggrenderer"
	"github.com/user/scrollytell/pkg/adapters/logger"
	"github.com/user/scrollytell/pkg/mocks"
	"github.com/user/scrollytell/pkg/pipeline"
	"github.com/user/scrollytell/pkg/ports"
)

func timeline() pipeline.Timeline {
	tl := pipeline.Timeline{Sections: []string{"a", "b"}}
	current := []string{"a", "a", "b", "b", "a"}
	for i, c := range current {
		tl.Samples = append(tl.Samples, pipeline.Sample{
			Frame:        i,
			Current:      c,
			PageProgress: float64(i) / 4,
			Progress:     []float64{float64(i) / 4, 0},
			Active:       []bool{true, c == "b"},
		})
	}
	tl.Changes = []pipeline.Change{{Frame: 0, To: "a"}, {Frame: 2, From: "a", To: "b"}, {Frame: 4, From: "b", To: "a"}}
	return tl
}

func screenshotPNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 200, 160))
	for y := 0; y < 160; y++ {
		for x := 0; x < 200; x++ {
			img.Set(x, y, color.RGBA{R: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestStage_Execute(t *testing.T) {
	sink := mocks.NewDebugSink(true)
	stage := New(ggrenderer.New(), sink, logger.NewNoop())

	input := pipeline.DefaultChartInput()
	input.Timeline = timeline()
	input.Screenshots = []pipeline.Screenshot{
		{Frame: 0, Section: "a", Data: screenshotPNG(t)},
		{Frame: 2, Section: "b", Data: []byte("not a png")},
	}

	result, err := stage.Execute(context.Background(), input)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	wantHeight := padding*2 + headerHeight + 3*(input.LaneHeight+laneGap) + thumbHeight + headerHeight
	b := result.Image.Bounds()
	if b.Dx() != 960 || b.Dy() != wantHeight {
		t.Errorf("image = %dx%d, want 960x%d", b.Dx(), b.Dy(), wantHeight)
	}

	decoded, err := png.Decode(bytes.NewReader(result.PNG))
	if err != nil {
		t.Fatalf("PNG does not decode: %v", err)
	}
	if decoded.Bounds() != b {
		t.Errorf("PNG bounds = %v, want %v", decoded.Bounds(), b)
	}
	if sink.Chart == nil {
		t.Error("chart should be saved to the debug sink")
	}
}

func TestStage_DrawsEveryLane(t *testing.T) {
	var canvas *mocks.Canvas
	renderer := &mocks.Renderer{
		CreateCanvasFunc: func(width, height int, bg color.Color) ports.Canvas {
			canvas = &mocks.Canvas{}
			return canvas
		},
	}
	stage := New(renderer, nil, logger.NewNoop())

	input := pipeline.ChartInput{Timeline: timeline()}
	if _, err := stage.Execute(context.Background(), input); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if canvas.Polylines != 3 {
		t.Errorf("polylines = %d, want one per section plus the page", canvas.Polylines)
	}
	if canvas.RoundedRects != 3 {
		t.Errorf("lane backgrounds = %d, want one per section plus the page", canvas.RoundedRects)
	}
	if canvas.Strokes != 3 {
		t.Errorf("current band outlines = %d, want one per current run", canvas.Strokes)
	}
}

func TestStage_FitsLongLabels(t *testing.T) {
	var canvas *mocks.Canvas
	renderer := &mocks.Renderer{
		CreateCanvasFunc: func(width, height int, bg color.Color) ports.Canvas {
			canvas = &mocks.Canvas{}
			return canvas
		},
	}

	long := "a-section-id-far-too-long-for-the-label-column"
	input := pipeline.ChartInput{Timeline: pipeline.Timeline{
		Sections: []string{long, "b"},
		Samples:  []pipeline.Sample{{Current: "b"}},
	}}
	if _, err := New(renderer, nil, logger.NewNoop()).Execute(context.Background(), input); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	style := ports.TextStyle{FontSize: fontSize}
	var label string
	for _, text := range canvas.Texts {
		if strings.HasPrefix(text, "a-section") {
			label = text
		}
	}
	if !strings.HasSuffix(label, "…") {
		t.Fatalf("long label drawn as %q, want an ellipsis", label)
	}
	if w, _ := canvas.MeasureText(label, style); w > labelWidth-labelGap {
		t.Errorf("label width = %v, want at most %d", w, labelWidth-labelGap)
	}
	if !contains(canvas.Texts, "b") {
		t.Errorf("short label should be drawn unchanged, got %v", canvas.Texts)
	}
}

func TestFitLabel(t *testing.T) {
	canvas := &mocks.Canvas{}
	style := ports.TextStyle{FontSize: 10}

	tests := []struct {
		label string
		width int
		want  string
	}{
		{"hero", 100, "hero"},
		{"abcdefghij", 59, "abcdef…"},
		{"abcdef", 1, "…"},
	}
	for _, tt := range tests {
		if got := fitLabel(canvas, tt.label, tt.width, style); got != tt.want {
			t.Errorf("fitLabel(%q, %d) = %q, want %q", tt.label, tt.width, got, tt.want)
		}
	}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func TestStage_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := New(ggrenderer.New(), nil, logger.NewNoop()).Execute(ctx, pipeline.ChartInput{}); err == nil {
		t.Error("expected context error")
	}
}

func TestCurrentRuns(t *testing.T) {
	samples := timeline().Samples

	tests := []struct {
		id   string
		want [][2]int
	}{
		{"a", [][2]int{{0, 1}, {4, 4}}},
		{"b", [][2]int{{2, 3}}},
		{"c", nil},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			got := currentRuns(samples, tt.id)
			if len(got) != len(tt.want) {
				t.Fatalf("runs = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("runs = %v, want %v", got, tt.want)
				}
			}
		})
	}
}

func TestPlotArea_At(t *testing.T) {
	p := plotArea{x: 100, width: 500, frames: 5}
	if p.at(0) != 100 || p.at(5) != 600 || p.at(9) != 600 {
		t.Errorf("at() = %d, %d, %d", p.at(0), p.at(5), p.at(9))
	}
	if (plotArea{x: 7}).at(3) != 7 {
		t.Error("an empty plot maps every frame to its left edge")
	}
}
