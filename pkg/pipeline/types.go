package pipeline

import (
	"image"
	"image/color"
	"time"

	"github.com/google/uuid"

	"github.com/user/scrollytell/pkg/ports"
	"github.com/user/scrollytell/pkg/scroll"
	"github.com/user/scrollytell/pkg/story"
)

// =============================================================================
// Script Stage Types
// =============================================================================

// ScrollAction is what the walker does on one scripted frame.
type ScrollAction string

const (
	// ActionScroll moves the page to the frame's ScrollY.
	ActionScroll ScrollAction = "scroll"
	// ActionJump asks the controller to scroll to the frame's Section.
	ActionJump ScrollAction = "jump"
	// ActionHold leaves the page alone for one frame.
	ActionHold ScrollAction = "hold"
)

// Jump inserts a section jump after a number of scroll frames.
type Jump struct {
	AfterFrame int    // Scroll frames before the jump
	Section    string // Target section id
}

// ScriptInput contains parameters for scroll script generation.
type ScriptInput struct {
	ViewportHeight float64
	PageHeight     float64
	Speed          float64       // Pixels scrolled per frame (default: 40)
	FrameInterval  time.Duration // Time between frames (default: 16ms)
	DwellFrames    int           // Frames held at the top and bottom (default: 10)
	JumpFrames     int           // Frames held after each jump (default: 45)
	Reverse        bool          // Scroll back up after reaching the bottom
	Jumps          []Jump
}

// DefaultScriptInput returns ScriptInput with default values.
func DefaultScriptInput() ScriptInput {
	return ScriptInput{
		Speed:         40,
		FrameInterval: 16 * time.Millisecond,
		DwellFrames:   10,
		JumpFrames:    45,
	}
}

// ScriptFrame is one step of a scroll script.
type ScriptFrame struct {
	Index   int           `json:"index"`
	At      time.Duration `json:"at"`
	Action  ScrollAction  `json:"action"`
	ScrollY float64       `json:"scrollY"`
	Section string        `json:"section,omitempty"`
}

// ScrollScript is the frame-by-frame plan of a walk.
type ScrollScript struct {
	Frames        []ScriptFrame `json:"frames"`
	FrameInterval time.Duration `json:"frameInterval"`
	MaxScroll     float64       `json:"maxScroll"`
}

// Duration returns the scripted running time.
func (s ScrollScript) Duration() time.Duration {
	return time.Duration(len(s.Frames)) * s.FrameInterval
}

// =============================================================================
// Walk Stage Types
// =============================================================================

// WalkInput contains parameters for walking a page.
type WalkInput struct {
	Page               ports.Page
	Script             ScrollScript
	Manifest           story.Manifest
	CaptureScreenshots bool // Capture the viewport at every section change
}

// Sample is the engine state after one frame.
type Sample struct {
	Frame        int           `json:"frame"`
	At           time.Duration `json:"at"`
	ScrollY      float64       `json:"scrollY"`
	Current      string        `json:"current"`
	PageProgress float64       `json:"pageProgress"`
	Progress     []float64     `json:"progress"` // Per section, aligned with Timeline.Sections
	Active       []bool        `json:"active"`
}

// Change records a current-section change.
type Change struct {
	Frame int           `json:"frame"`
	At    time.Duration `json:"at"`
	From  string        `json:"from"`
	To    string        `json:"to"`
}

// Timeline is the sampled history of a walk.
type Timeline struct {
	Sections      []string      `json:"sections"`
	FrameInterval time.Duration `json:"frameInterval"`
	Samples       []Sample      `json:"samples"`
	Changes       []Change      `json:"changes"`
}

// Screenshot is a viewport capture taken at a section change.
type Screenshot struct {
	Frame   int
	Section string
	Data    []byte // PNG
}

// WalkResult contains the walk output.
type WalkResult struct {
	RunID       uuid.UUID
	Mounted     int // Sections with an element on the page
	Timeline    Timeline
	Screenshots []Screenshot
	Stats       scroll.Stats
}

// =============================================================================
// Chart Stage Types
// =============================================================================

// ChartInput contains parameters for timeline chart rendering.
type ChartInput struct {
	Timeline    Timeline
	Screenshots []Screenshot
	Width       int // default: 960
	LaneHeight  int // default: 28
	Theme       ChartTheme
}

// DefaultChartInput returns ChartInput with default values.
func DefaultChartInput() ChartInput {
	return ChartInput{
		Width:      960,
		LaneHeight: 28,
		Theme:      DefaultChartTheme(),
	}
}

// ChartTheme defines chart styling.
type ChartTheme struct {
	BackgroundColor color.Color
	TextColor       color.Color
	LaneColor       color.Color
	ProgressColor   color.Color
	CurrentColor    color.Color
	ChangeColor     color.Color
}

// DefaultChartTheme returns a default chart theme.
func DefaultChartTheme() ChartTheme {
	return ChartTheme{
		BackgroundColor: color.RGBA{R: 30, G: 30, B: 30, A: 255},
		TextColor:       color.White,
		LaneColor:       color.RGBA{R: 60, G: 60, B: 60, A: 255},
		ProgressColor:   color.RGBA{R: 76, G: 175, B: 80, A: 255},
		CurrentColor:    color.RGBA{R: 100, G: 180, B: 255, A: 255},
		ChangeColor:     color.RGBA{R: 255, G: 193, B: 7, A: 255},
	}
}

// ChartResult contains the rendered chart.
type ChartResult struct {
	Image image.Image
	PNG   []byte
}
