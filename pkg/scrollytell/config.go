// Package scrollytell provides a high-level API for walking scrollytelling pages.
package scrollytell

import (
	"time"

	"github.com/user/scrollytell/pkg/config"
	"github.com/user/scrollytell/pkg/pipeline"
)

// Preset names a device profile.
type Preset string

const (
	PresetDesktop Preset = "desktop"
	PresetMobile  Preset = "mobile"
)

// Config represents the walk settings applied to a page.
type Config struct {
	// Viewport
	ViewportWidth  int // min: 320
	ViewportHeight int // min: 480

	// Scroll script
	Speed       float64 // Pixels per frame (min: 1)
	FPS         float64 // Frames per second (min: 1)
	DwellFrames int     // Frames held at the top and bottom
	JumpFrames  int     // Frames held after each jump
	Reverse     bool    // Scroll back to the top after reaching the bottom
	Jumps       []pipeline.Jump

	// Engine
	SmoothScroll time.Duration // ScrollToSection duration (0 = jump)

	// Output
	CaptureScreenshots bool
}

// ConfigBuilder provides a fluent interface for building Config.
type ConfigBuilder struct {
	config Config
}

// NewConfigBuilder creates a new ConfigBuilder with desktop preset defaults.
func NewConfigBuilder() *ConfigBuilder {
	return &ConfigBuilder{
		config: desktopDefaults(),
	}
}

// NewMobileConfigBuilder creates a new ConfigBuilder with mobile preset defaults.
func NewMobileConfigBuilder() *ConfigBuilder {
	return &ConfigBuilder{
		config: mobileDefaults(),
	}
}

// NewPresetConfigBuilder creates a ConfigBuilder for a named preset.
// Unknown names fall back to desktop.
func NewPresetConfigBuilder(preset Preset) *ConfigBuilder {
	if preset == PresetMobile {
		return NewMobileConfigBuilder()
	}
	return NewConfigBuilder()
}

// desktopDefaults returns the desktop preset configuration.
func desktopDefaults() Config {
	return Config{
		ViewportWidth:  1280,
		ViewportHeight: 800,

		Speed:       40,
		FPS:         60,
		DwellFrames: 10,
		JumpFrames:  45,

		SmoothScroll: 600 * time.Millisecond,
	}
}

// mobileDefaults returns the mobile preset configuration.
// Phones scroll in shorter flicks over a taller, narrower viewport.
func mobileDefaults() Config {
	return Config{
		ViewportWidth:  390,
		ViewportHeight: 844,

		Speed:       24,
		FPS:         60,
		DwellFrames: 10,
		JumpFrames:  45,

		SmoothScroll: 400 * time.Millisecond,
	}
}

// Build returns the final Config, applying validation and constraints.
func (b *ConfigBuilder) Build() Config {
	cfg := b.config

	if cfg.ViewportWidth < 320 {
		cfg.ViewportWidth = 320
	}
	if cfg.ViewportHeight < 480 {
		cfg.ViewportHeight = 480
	}
	if cfg.Speed < 1 {
		cfg.Speed = 1
	}
	if cfg.FPS < 1 {
		cfg.FPS = 1
	}
	if cfg.DwellFrames < 0 {
		cfg.DwellFrames = 0
	}
	if cfg.JumpFrames < 0 {
		cfg.JumpFrames = 0
	}
	if cfg.SmoothScroll < 0 {
		cfg.SmoothScroll = 0
	}
	cfg.Jumps = append([]pipeline.Jump(nil), cfg.Jumps...)

	return cfg
}

// FromPage takes the viewport and walk settings declared by a page file.
// Zero values in the page keep the current setting.
func (b *ConfigBuilder) FromPage(page config.Config) *ConfigBuilder {
	if page.Viewport.Width > 0 {
		b.config.ViewportWidth = page.Viewport.Width
	}
	if page.Viewport.Height > 0 {
		b.config.ViewportHeight = page.Viewport.Height
	}
	w := page.Walk
	if w.Speed > 0 {
		b.config.Speed = w.Speed
	}
	if w.FPS > 0 {
		b.config.FPS = w.FPS
	}
	if w.DwellFrames > 0 {
		b.config.DwellFrames = w.DwellFrames
	}
	if w.JumpFrames > 0 {
		b.config.JumpFrames = w.JumpFrames
	}
	if w.SmoothScrollMs > 0 {
		b.config.SmoothScroll = time.Duration(w.SmoothScrollMs) * time.Millisecond
	}
	b.config.Reverse = b.config.Reverse || w.Reverse
	b.config.CaptureScreenshots = b.config.CaptureScreenshots || w.CaptureScreenshots
	for _, j := range w.Jumps {
		b.config.Jumps = append(b.config.Jumps, pipeline.Jump{AfterFrame: j.AfterFrame, Section: j.Section})
	}
	return b
}

// WithViewport sets the viewport size.
// Values below 320x480 will be forced up.
func (b *ConfigBuilder) WithViewport(width, height int) *ConfigBuilder {
	b.config.ViewportWidth = width
	b.config.ViewportHeight = height
	return b
}

// WithSpeed sets the scroll speed in pixels per frame.
func (b *ConfigBuilder) WithSpeed(px float64) *ConfigBuilder {
	b.config.Speed = px
	return b
}

// WithFPS sets the frame rate of the walk.
func (b *ConfigBuilder) WithFPS(fps float64) *ConfigBuilder {
	b.config.FPS = fps
	return b
}

// WithDwellFrames sets the frames held at the top and bottom of the page.
func (b *ConfigBuilder) WithDwellFrames(n int) *ConfigBuilder {
	b.config.DwellFrames = n
	return b
}

// WithJumpFrames sets the frames held after each section jump.
func (b *ConfigBuilder) WithJumpFrames(n int) *ConfigBuilder {
	b.config.JumpFrames = n
	return b
}

// WithReverse enables scrolling back up after the bottom is reached.
func (b *ConfigBuilder) WithReverse(reverse bool) *ConfigBuilder {
	b.config.Reverse = reverse
	return b
}

// WithJump adds a jump to a section after the given number of scroll frames.
func (b *ConfigBuilder) WithJump(afterFrame int, section string) *ConfigBuilder {
	b.config.Jumps = append(b.config.Jumps, pipeline.Jump{AfterFrame: afterFrame, Section: section})
	return b
}

// WithSmoothScroll sets the duration of section jumps. Zero jumps instantly.
func (b *ConfigBuilder) WithSmoothScroll(d time.Duration) *ConfigBuilder {
	b.config.SmoothScroll = d
	return b
}

// WithScreenshots enables viewport captures at section changes.
func (b *ConfigBuilder) WithScreenshots(capture bool) *ConfigBuilder {
	b.config.CaptureScreenshots = capture
	return b
}

// Apply returns a copy of page with the viewport and walk settings replaced.
func (c Config) Apply(page config.Config) config.Config {
	page.Viewport = config.ViewportConfig{Width: c.ViewportWidth, Height: c.ViewportHeight}
	page.Walk = config.WalkConfig{
		Speed:              c.Speed,
		FPS:                c.FPS,
		DwellFrames:        c.DwellFrames,
		JumpFrames:         c.JumpFrames,
		Reverse:            c.Reverse,
		SmoothScrollMs:     int(c.SmoothScroll / time.Millisecond),
		CaptureScreenshots: c.CaptureScreenshots,
	}
	for _, j := range c.Jumps {
		page.Walk.Jumps = append(page.Walk.Jumps, config.JumpConfig{AfterFrame: j.AfterFrame, Section: j.Section})
	}
	return page
}
