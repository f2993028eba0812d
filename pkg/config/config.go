// Package config provides configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/user/scrollytell/pkg/adapters/memdom"
	"github.com/user/scrollytell/pkg/components"
	"github.com/user/scrollytell/pkg/orchestrator"
	"github.com/user/scrollytell/pkg/pipeline"
	"github.com/user/scrollytell/pkg/scroll"
	"github.com/user/scrollytell/pkg/sections"
	"github.com/user/scrollytell/pkg/story"
)

// ErrNoSections is returned when a page declares no sections.
var ErrNoSections = errors.New("page has no sections")

// Config represents a page manifest and the walk settings for scrollytell.
type Config struct {
	// Page
	Title    string          `yaml:"title"`
	URL      string          `yaml:"url"`
	Viewport ViewportConfig  `yaml:"viewport"`
	Sections []SectionConfig `yaml:"sections"`
	Chrome   ChromeConfig    `yaml:"chrome"`

	Walk   WalkConfig   `yaml:"walk"`
	Output OutputConfig `yaml:"output"`
	Theme  ThemeConfig  `yaml:"theme"`

	// Debug
	Debug    bool   `yaml:"debug"`
	DebugDir string `yaml:"debug_dir"`
}

// ViewportConfig is the simulated browser viewport.
type ViewportConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// SectionConfig describes one story section.
type SectionConfig struct {
	ID           string          `yaml:"id"`
	Kind         string          `yaml:"kind"`
	Selector     string          `yaml:"selector"` // element id (default: id)
	Height       float64         `yaml:"height"`
	ScrollHeight string          `yaml:"scroll_height"` // e.g. "300vh"
	Elements     []ElementConfig `yaml:"elements"`
}

// ElementConfig describes child elements of a simulated section.
type ElementConfig struct {
	Class    string            `yaml:"class"`
	Count    int               `yaml:"count"`
	Attrs    map[string]string `yaml:"attrs"`
	Children []ElementConfig   `yaml:"children"`
}

// ChromeConfig describes the page elements around the sections.
type ChromeConfig struct {
	Nav           bool    `yaml:"nav"`          // progress dots
	ProgressBar   bool    `yaml:"progress_bar"` // page progress bar
	MobileNav     bool    `yaml:"mobile_nav"`   // header and modal links
	FinalSummary  bool    `yaml:"final_summary"`
	Footer        string  `yaml:"footer"` // footer element id ("" = none)
	CircleSection string  `yaml:"circle_section"`
	CircleFrom    float64 `yaml:"circle_from"`
}

// WalkConfig controls the scripted scroll.
type WalkConfig struct {
	Speed              float64      `yaml:"speed"` // px per frame
	FPS                float64      `yaml:"fps"`
	DwellFrames        int          `yaml:"dwell_frames"`
	JumpFrames         int          `yaml:"jump_frames"`
	Reverse            bool         `yaml:"reverse"`
	Jumps              []JumpConfig `yaml:"jumps"`
	SmoothScrollMs     int          `yaml:"smooth_scroll_ms"`
	CaptureScreenshots bool         `yaml:"capture_screenshots"`
}

// JumpConfig inserts a section jump into the walk.
type JumpConfig struct {
	AfterFrame int    `yaml:"after_frame"`
	Section    string `yaml:"section"`
}

// OutputConfig names the files written by a run.
type OutputConfig struct {
	Timeline string `yaml:"timeline"`
	Chart    string `yaml:"chart"`
	Summary  string `yaml:"summary"`
}

// ThemeConfig represents chart colors as hex strings.
type ThemeConfig struct {
	BackgroundColor string `yaml:"background_color"`
	TextColor       string `yaml:"text_color"`
	LaneColor       string `yaml:"lane_color"`
	ProgressColor   string `yaml:"progress_color"`
	CurrentColor    string `yaml:"current_color"`
	ChangeColor     string `yaml:"change_color"`
}

// Defaults returns a Config describing the portfolio page.
func Defaults() Config {
	return Config{
		Title:    "Portfolio",
		Viewport: ViewportConfig{Width: 1280, Height: 800},
		Sections: PortfolioSections(),
		Chrome: ChromeConfig{
			Nav:           true,
			ProgressBar:   true,
			MobileNav:     true,
			FinalSummary:  true,
			Footer:        "contact",
			CircleSection: "future-outlook",
			CircleFrom:    components.DefaultCircleFrom,
		},
		Walk: WalkConfig{
			Speed:          40,
			FPS:            60,
			DwellFrames:    10,
			JumpFrames:     45,
			SmoothScrollMs: 600,
		},
		Output: OutputConfig{
			Timeline: "timeline.json",
			Chart:    "timeline.png",
			Summary:  "summary.md",
		},
		Theme: ThemeConfig{
			BackgroundColor: "#1e1e1e",
			TextColor:       "#ffffff",
			LaneColor:       "#3c3c3c",
			ProgressColor:   "#4caf50",
			CurrentColor:    "#64b4ff",
			ChangeColor:     "#ffc107",
		},
		DebugDir: "./debug",
	}
}

// PortfolioSections returns the eight sections of the portfolio page with
// the sub-elements each handler animates.
func PortfolioSections() []SectionConfig {
	el := func(class string) ElementConfig { return ElementConfig{Class: class} }
	return []SectionConfig{
		{
			ID: "hero", Kind: sections.KindHero, Selector: "intro", Height: 800,
			Elements: []ElementConfig{{Class: "hero", Children: []ElementConfig{
				el("hero__title"), el("hero__desc"), el("hero__cta"),
			}}},
		},
		{
			ID: "cards", Kind: sections.KindFlipCards, Height: 2400, ScrollHeight: "300vh",
			Elements: []ElementConfig{{Class: "flip-card-wrapper", Count: 4, Children: []ElementConfig{el("flip-card")}}},
		},
		{
			ID: "problem", Kind: sections.KindProblem, Height: 1600,
			Elements: []ElementConfig{el("problem__title"), el("problem__subtitle")},
		},
		{
			ID: "future-outlook", Kind: sections.KindFutureOutlook, Height: 2400,
			Elements: []ElementConfig{
				{Class: "future-outlook__title-item", Count: 3},
				{Class: "future-circle", Count: 3},
			},
		},
		{
			ID: "solution", Kind: sections.KindSolution, Height: 4000, ScrollHeight: "500vh",
			Elements: []ElementConfig{
				{Class: "solution-text__item", Count: 2},
				{Class: "solution-text__title--disintegrate", Children: []ElementConfig{{Class: "char", Count: 12}}},
				el("solution-matrix__visual"),
				{Class: "solution-matrix__items", Children: []ElementConfig{{Class: "solution-matrix__item", Count: 3}}},
				el("solution-matrix__svg--colored"),
				el("solution-resource-fit__title-wrap"),
				el("solution-resource-fit__visual"),
				el("solution-opportunity__title-wrap"),
				el("solution-opportunity__visual"),
				el("solution-opportunity__highlight"),
			},
		},
		{
			ID: "growth", Kind: sections.KindGrowth, Height: 1600,
			Elements: []ElementConfig{el("growth__title"), el("growth__svg")},
		},
		{
			ID: "strategy", Kind: sections.KindStrategy, Height: 1600,
			Elements: []ElementConfig{el("strategy__heading"), el("strategy__svg")},
		},
		{
			ID: "resources", Kind: sections.KindResources, Height: 2400,
			Elements: []ElementConfig{
				el("resources__heading"),
				{Class: "resources__book", Count: 3},
				{Class: "resources__link-block", Count: 3},
			},
		},
	}
}

// LoadFromFile loads configuration from a YAML file.
// Sections given in the file replace the default page entirely.
func LoadFromFile(path string) (Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}

	return cfg, nil
}

// Validate checks the page for missing or duplicate sections, unknown
// handler kinds and jumps to sections that do not exist.
func (c Config) Validate(registry *sections.Registry) error {
	if len(c.Sections) == 0 {
		return ErrNoSections
	}
	if registry == nil {
		registry = sections.Default()
	}
	known := make(map[string]bool, len(c.Sections))
	for i, s := range c.Sections {
		if s.ID == "" {
			return fmt.Errorf("section %d: missing id", i)
		}
		if known[s.ID] {
			return fmt.Errorf("section %s: duplicate id", s.ID)
		}
		known[s.ID] = true
		if _, err := registry.New(s.Kind); err != nil {
			return fmt.Errorf("section %s: %w", s.ID, err)
		}
		if s.ScrollHeight != "" {
			if _, ok := scroll.ParseScrollHeight(s.ScrollHeight, float64(c.Viewport.Height)); !ok {
				return fmt.Errorf("section %s: invalid scroll_height %q", s.ID, s.ScrollHeight)
			}
		}
	}
	for _, j := range c.Walk.Jumps {
		if !known[j.Section] {
			return fmt.Errorf("jump after frame %d: unknown section %q", j.AfterFrame, j.Section)
		}
	}
	return nil
}

// ToManifest converts the page sections to a story manifest.
func (c Config) ToManifest() story.Manifest {
	m := story.Manifest{
		CircleSection: c.Chrome.CircleSection,
		CircleFrom:    c.Chrome.CircleFrom,
		FooterID:      c.Chrome.Footer,
		Options:       scroll.DefaultOptions(),
	}
	if c.Walk.SmoothScrollMs >= 0 {
		m.Options.SmoothScrollDuration = time.Duration(c.Walk.SmoothScrollMs) * time.Millisecond
	}
	for _, s := range c.Sections {
		m.Sections = append(m.Sections, story.SectionSpec{ID: s.ID, Kind: s.Kind, Selector: s.Selector})
	}
	return m
}

// ToLayout builds the simulated page: sections stacked in order, followed by
// navigation dots, the progress bar, the mobile modal and the footer.
func (c Config) ToLayout() memdom.Layout {
	l := memdom.Layout{
		Width:  float64(c.Viewport.Width),
		Height: float64(c.Viewport.Height),
	}
	for _, s := range c.Sections {
		id := s.Selector
		if id == "" {
			id = s.ID
		}
		height := s.Height
		if height <= 0 {
			height = float64(c.Viewport.Height)
		}
		l.Sections = append(l.Sections, memdom.SectionLayout{
			ID:           id,
			Height:       height,
			ScrollHeight: s.ScrollHeight,
			Classes:      []string{"section"},
			Elements:     toElementSpecs(s.Elements),
		})
	}

	if c.Chrome.Nav {
		nav := memdom.ElementSpec{Class: "nav"}
		for _, s := range c.Sections {
			nav.Children = append(nav.Children, memdom.ElementSpec{
				Class: "nav__dot-btn",
				Attrs: map[string]string{"data-section": s.ID},
			})
		}
		l.Chrome = append(l.Chrome, nav)
	}
	if c.Chrome.ProgressBar {
		l.Chrome = append(l.Chrome, memdom.ElementSpec{
			Class:    "progress-bar",
			Children: []memdom.ElementSpec{{Class: "progress-bar__fill"}},
		})
	}
	if c.Chrome.MobileNav {
		modal := memdom.ElementSpec{Class: "mobile-modal", Attrs: map[string]string{"aria-hidden": "true"}}
		for _, s := range c.Sections {
			modal.Children = append(modal.Children, memdom.ElementSpec{
				Class: "mobile-modal__link",
				Attrs: map[string]string{"href": "#" + s.ID},
			})
		}
		l.Chrome = append(l.Chrome,
			memdom.ElementSpec{Class: "mobile-nav__header", Attrs: map[string]string{"aria-expanded": "false"}},
			modal,
		)
	}
	if c.Chrome.FinalSummary {
		l.Chrome = append(l.Chrome, memdom.ElementSpec{Class: "final-summary"})
	}
	if c.Chrome.Footer != "" {
		l.Chrome = append(l.Chrome, memdom.ElementSpec{Class: "footer", Attrs: map[string]string{"id": c.Chrome.Footer}})
	}
	return l
}

func toElementSpecs(elements []ElementConfig) []memdom.ElementSpec {
	if len(elements) == 0 {
		return nil
	}
	specs := make([]memdom.ElementSpec, len(elements))
	for i, e := range elements {
		specs[i] = memdom.ElementSpec{
			Class:    e.Class,
			Count:    e.Count,
			Attrs:    e.Attrs,
			Children: toElementSpecs(e.Children),
		}
	}
	return specs
}

// ChartTheme parses the theme colors. Colors that fail to parse keep the default.
func (t ThemeConfig) ChartTheme() pipeline.ChartTheme {
	theme := pipeline.DefaultChartTheme()
	set := func(dst *color.Color, hex string) {
		if c, err := ParseColor(hex); err == nil {
			*dst = c
		}
	}
	set(&theme.BackgroundColor, t.BackgroundColor)
	set(&theme.TextColor, t.TextColor)
	set(&theme.LaneColor, t.LaneColor)
	set(&theme.ProgressColor, t.ProgressColor)
	set(&theme.CurrentColor, t.CurrentColor)
	set(&theme.ChangeColor, t.ChangeColor)
	return theme
}

// ParseColor parses "#rgb", "#rrggbb" or "#rrggbbaa" into a color.
func ParseColor(hex string) (color.Color, error) {
	s := strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	if len(s) == 6 {
		s += "ff"
	}
	if len(s) != 8 {
		return color.Black, fmt.Errorf("invalid color %q", hex)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.Black, fmt.Errorf("invalid color %q", hex)
	}
	return color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}

// ToOrchestratorConfig converts Config to orchestrator.Config.
func (c Config) ToOrchestratorConfig() orchestrator.Config {
	cfg := orchestrator.DefaultConfig()
	cfg.URL = c.URL
	cfg.Title = c.Title
	cfg.TimelinePath = c.Output.Timeline
	cfg.ChartPath = c.Output.Chart

	cfg.Speed = c.Walk.Speed
	cfg.FPS = c.Walk.FPS
	cfg.DwellFrames = c.Walk.DwellFrames
	cfg.JumpFrames = c.Walk.JumpFrames
	cfg.Reverse = c.Walk.Reverse
	cfg.CaptureScreenshots = c.Walk.CaptureScreenshots
	cfg.Jumps = nil
	for _, j := range c.Walk.Jumps {
		cfg.Jumps = append(cfg.Jumps, pipeline.Jump{AfterFrame: j.AfterFrame, Section: j.Section})
	}
	cfg.Manifest = c.ToManifest()
	cfg.Theme = c.Theme.ChartTheme()
	return cfg
}
