// Package main provides the CLI entry point for scrollytell.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/ideamans/go-l10n"
	"github.com/urfave/cli/v2"

	"github.com/user/scrollytell/pkg/adapters/chromebrowser"
	"github.com/user/scrollytell/pkg/adapters/chromedom"
	"github.com/user/scrollytell/pkg/adapters/filesink"
	"github.com/user/scrollytell/pkg/adapters/ggrenderer"
	"github.com/user/scrollytell/pkg/adapters/logger"
	"github.com/user/scrollytell/pkg/adapters/memdom"
	"github.com/user/scrollytell/pkg/adapters/nullsink"
	"github.com/user/scrollytell/pkg/adapters/osfilesystem"
	"github.com/user/scrollytell/pkg/adapters/tuiview"
	"github.com/user/scrollytell/pkg/config"
	"github.com/user/scrollytell/pkg/orchestrator"
	"github.com/user/scrollytell/pkg/pipeline"
	"github.com/user/scrollytell/pkg/ports"
	"github.com/user/scrollytell/pkg/scroll"
	"github.com/user/scrollytell/pkg/scrollytell"
	"github.com/user/scrollytell/pkg/sections"
	"github.com/user/scrollytell/pkg/stages/chart"
	"github.com/user/scrollytell/pkg/stages/script"
	"github.com/user/scrollytell/pkg/stages/walk"
	"github.com/user/scrollytell/pkg/story"
	"github.com/user/scrollytell/pkg/summarizer"
)

var version = "dev"

func main() {
	app := newApp()
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:    "scrollytell",
		Usage:   l10n.T("Walk scrollytelling pages and chart their scroll-driven animation state"),
		Version: version,
		Commands: []*cli.Command{
			{
				Name:      "simulate",
				Usage:     l10n.T("Walk the simulated page described by a page file"),
				ArgsUsage: " ",
				Flags:     walkFlags(),
				Action:    simulateAction,
			},
			{
				Name:      "drive",
				Usage:     l10n.T("Walk a live page in headless Chrome"),
				ArgsUsage: "URL",
				Flags:     append(walkFlags(), browserFlags()...),
				Action:    driveAction,
			},
			{
				Name:   "watch",
				Usage:  l10n.T("Scroll the simulated page interactively in the terminal"),
				Flags:  pageFlags(),
				Action: watchAction,
			},
			{
				Name:  "version",
				Usage: l10n.T("Show version information"),
				Action: func(c *cli.Context) error {
					fmt.Fprintln(c.App.Writer, l10n.F("scrollytell version %s", version))
					return nil
				},
			},
		},
	}
}

func pageFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: l10n.T("Page file (YAML) describing sections and walk settings"), Category: l10n.T("Page")},
		&cli.StringFlag{Name: "preset", Aliases: []string{"p"}, Value: string(scrollytell.PresetDesktop), Usage: l10n.T("Device preset (desktop, mobile)"), Category: l10n.T("Preset")},
		&cli.IntFlag{Name: "width", Aliases: []string{"W"}, Usage: l10n.T("Viewport width (min: 320)"), Category: l10n.T("Preset")},
		&cli.IntFlag{Name: "height", Aliases: []string{"H"}, Usage: l10n.T("Viewport height (min: 480)"), Category: l10n.T("Preset")},
		&cli.Float64Flag{Name: "speed", Usage: l10n.T("Scroll speed in pixels per frame"), Category: l10n.T("Walk")},
		&cli.Float64Flag{Name: "fps", Usage: l10n.T("Frames per second"), Category: l10n.T("Walk")},
		&cli.DurationFlag{Name: "smooth-scroll", Usage: l10n.T("Duration of section jumps (0 = instant)"), Category: l10n.T("Walk")},
	}
}

func walkFlags() []cli.Flag {
	return append(pageFlags(),
		&cli.IntFlag{Name: "dwell", Usage: l10n.T("Frames held at the top and bottom of the page"), Category: l10n.T("Walk")},
		&cli.IntFlag{Name: "jump-frames", Usage: l10n.T("Frames held after each section jump"), Category: l10n.T("Walk")},
		&cli.BoolFlag{Name: "reverse", Usage: l10n.T("Scroll back to the top after reaching the bottom"), Category: l10n.T("Walk")},
		&cli.StringSliceFlag{Name: "jump", Usage: l10n.T("Jump to a section after N scroll frames (section@N)"), Category: l10n.T("Walk")},
		&cli.BoolFlag{Name: "screenshots", Usage: l10n.T("Capture the viewport at every section change"), Category: l10n.T("Walk")},

		&cli.StringFlag{Name: "timeline", Aliases: []string{"o"}, Usage: l10n.T("Timeline JSON output path"), Category: l10n.T("Output")},
		&cli.StringFlag{Name: "chart", Usage: l10n.T("Timeline chart PNG output path"), Category: l10n.T("Output")},
		&cli.BoolFlag{Name: "no-chart", Usage: l10n.T("Skip the timeline chart"), Category: l10n.T("Output")},
		&cli.StringFlag{Name: "summary", Aliases: []string{"s"}, Usage: l10n.T("Output execution summary to file (Markdown format)"), Category: l10n.T("Output")},

		&cli.BoolFlag{Name: "debug", Aliases: []string{"d"}, Usage: l10n.T("Enable debug output"), Category: l10n.T("Debug")},
		&cli.StringFlag{Name: "debug-dir", Value: "./debug", Usage: l10n.T("Directory for debug output"), Category: l10n.T("Debug")},

		&cli.StringFlag{Name: "log-level", Aliases: []string{"l"}, Value: "info", Usage: l10n.T("Log level (debug, info, warn, error)"), Category: l10n.T("Logging")},
		&cli.BoolFlag{Name: "quiet", Aliases: []string{"q"}, Usage: l10n.T("Suppress all log output"), Category: l10n.T("Logging")},
	)
}

func browserFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{Name: "no-headless", Usage: l10n.T("Run browser in non-headless mode"), Category: l10n.T("Browser")},
		&cli.StringFlag{Name: "chrome-path", Usage: l10n.T("Path to Chrome executable"), Category: l10n.T("Browser")},
		&cli.BoolFlag{Name: "ignore-https-errors", Usage: l10n.T("Ignore HTTPS certificate errors"), Category: l10n.T("Browser")},
		&cli.StringFlag{Name: "proxy-server", Usage: l10n.T("HTTP proxy server (e.g., http://proxy:8080)"), Category: l10n.T("Browser")},
		&cli.BoolFlag{Name: "no-incognito", Usage: l10n.T("Disable incognito mode"), Category: l10n.T("Browser")},
	}
}

// loadPage builds the page config from the page file, the preset and flag overrides.
func loadPage(c *cli.Context) (config.Config, error) {
	page := config.Defaults()
	path := c.String("config")
	if path != "" {
		var err error
		if page, err = config.LoadFromFile(path); err != nil {
			return page, err
		}
	}

	builder := scrollytell.NewPresetConfigBuilder(scrollytell.Preset(c.String("preset")))
	if path != "" && !c.IsSet("preset") {
		builder.FromPage(page)
	}

	if c.IsSet("width") || c.IsSet("height") {
		cfg := builder.Build()
		w, h := cfg.ViewportWidth, cfg.ViewportHeight
		if c.IsSet("width") {
			w = c.Int("width")
		}
		if c.IsSet("height") {
			h = c.Int("height")
		}
		builder.WithViewport(w, h)
	}
	if c.IsSet("speed") {
		builder.WithSpeed(c.Float64("speed"))
	}
	if c.IsSet("fps") {
		builder.WithFPS(c.Float64("fps"))
	}
	if c.IsSet("smooth-scroll") {
		builder.WithSmoothScroll(c.Duration("smooth-scroll"))
	}
	if c.IsSet("dwell") {
		builder.WithDwellFrames(c.Int("dwell"))
	}
	if c.IsSet("jump-frames") {
		builder.WithJumpFrames(c.Int("jump-frames"))
	}
	if c.Bool("reverse") {
		builder.WithReverse(true)
	}
	if c.Bool("screenshots") {
		builder.WithScreenshots(true)
	}
	for _, raw := range c.StringSlice("jump") {
		j, err := parseJump(raw)
		if err != nil {
			return page, err
		}
		builder.WithJump(j.AfterFrame, j.Section)
	}

	page = builder.Build().Apply(page)

	if c.IsSet("timeline") {
		page.Output.Timeline = c.String("timeline")
	}
	if c.IsSet("chart") {
		page.Output.Chart = c.String("chart")
	}
	if c.Bool("no-chart") {
		page.Output.Chart = ""
	}
	if c.IsSet("summary") {
		page.Output.Summary = c.String("summary")
	}
	if c.Bool("debug") {
		page.Debug = true
	}
	if c.IsSet("debug-dir") {
		page.DebugDir = c.String("debug-dir")
	}

	if err := page.Validate(sections.Default()); err != nil {
		return page, err
	}
	return page, nil
}

// parseJump parses "section@frame".
func parseJump(s string) (pipeline.Jump, error) {
	section, frame, ok := strings.Cut(s, "@")
	if !ok || section == "" {
		return pipeline.Jump{}, errors.New(l10n.F("invalid jump %q, want section@frame", s))
	}
	n, err := strconv.Atoi(frame)
	if err != nil || n < 0 {
		return pipeline.Jump{}, errors.New(l10n.F("invalid jump %q, want section@frame", s))
	}
	return pipeline.Jump{AfterFrame: n, Section: section}, nil
}

func newLogger(c *cli.Context) ports.Logger {
	if c.Bool("quiet") {
		return logger.NewNoop()
	}
	return logger.NewConsole(ports.ParseLogLevel(c.String("log-level")))
}

// signalContext cancels on SIGINT or SIGTERM.
func signalContext(parent context.Context, log ports.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case <-sigCh:
			log.Warn(l10n.T("Interrupted, shutting down..."))
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigCh)
	}()
	return ctx, cancel
}

func simulateAction(c *cli.Context) error {
	page, err := loadPage(c)
	if err != nil {
		return err
	}
	log := newLogger(c)
	ctx, cancel := signalContext(c.Context, log)
	defer cancel()

	log.Info(l10n.F("Simulating %s (%s preset)...", page.Title, c.String("preset")))
	doc := memdom.Build(page.ToLayout())
	return runPipeline(ctx, c, log, page, memdom.NewPage(doc), "simulate")
}

func driveAction(c *cli.Context) error {
	url := c.Args().First()
	if url == "" {
		return errors.New(l10n.T("URL argument is required"))
	}
	page, err := loadPage(c)
	if err != nil {
		return err
	}
	page.URL = url
	log := newLogger(c)
	ctx, cancel := signalContext(c.Context, log)
	defer cancel()

	log.Info(l10n.F("Driving %s (%s preset)...", url, c.String("preset")))

	browser := chromebrowser.New()
	err = browser.Launch(ctx, ports.BrowserOptions{
		Headless:          !c.Bool("no-headless"),
		ChromePath:        c.String("chrome-path"),
		WindowWidth:       page.Viewport.Width,
		WindowHeight:      page.Viewport.Height,
		IgnoreHTTPSErrors: c.Bool("ignore-https-errors"),
		ProxyServer:       c.String("proxy-server"),
		Incognito:         !c.Bool("no-incognito"),
	})
	if err != nil {
		log.Error(l10n.F("Failed to launch browser: %s", err))
		return fmt.Errorf("launch browser: %w", err)
	}
	defer browser.Close()

	if err := browser.SetViewport(page.Viewport.Width, page.Viewport.Height); err != nil {
		return fmt.Errorf("set viewport: %w", err)
	}
	if err := browser.Navigate(url); err != nil {
		log.Error(l10n.F("Failed to navigate: %s", err))
		return fmt.Errorf("navigate: %w", err)
	}
	if info, err := browser.GetPageInfo(); err == nil && info.Title != "" {
		page.Title = info.Title
	}

	doc, err := chromedom.New(browser, log)
	if err != nil {
		return fmt.Errorf("attach to page: %w", err)
	}
	return runPipeline(ctx, c, log, page, chromedom.NewPage(doc), "drive")
}

func runPipeline(ctx context.Context, c *cli.Context, log ports.Logger, page config.Config, target ports.Page, mode string) error {
	fs := osfilesystem.New()
	renderer := ggrenderer.New()

	var sink ports.DebugSink
	if page.Debug {
		if err := fs.MkdirAll(page.DebugDir); err != nil {
			return fmt.Errorf("create debug directory: %w", err)
		}
		sink = filesink.New(page.DebugDir, fs, renderer)
	} else {
		sink = nullsink.New()
	}

	orch := orchestrator.New(
		script.NewStage(),
		walk.New(sections.Default(), sink, log),
		chart.New(renderer, sink, log),
		fs,
		sink,
		log,
	)

	orchConfig := page.ToOrchestratorConfig()
	orchConfig.Mode = mode
	orchConfig.Preset = c.String("preset")

	result, err := orch.Run(ctx, target, orchConfig)
	if err != nil {
		return err
	}

	log.Info(l10n.F("Timeline saved to %s", result.TimelinePath))
	if result.ChartPath != "" {
		log.Info(l10n.F("Chart saved to %s", result.ChartPath))
	}

	if page.Output.Summary != "" {
		summary := buildSummary(result, orchConfig)
		formatter := summarizer.NewMarkdownFormatter(
			summarizer.WithTranslator(l10n.T),
			summarizer.WithVersion(version),
		)
		if err := summarizer.NewWriter(formatter, fs).Write(page.Output.Summary, summary); err != nil {
			log.Warn(l10n.F("Failed to write summary: %s", err))
		} else {
			log.Info(l10n.F("Summary saved to %s", page.Output.Summary))
		}
	}
	return nil
}

func buildSummary(result orchestrator.RunResult, cfg orchestrator.Config) *summarizer.Summary {
	return summarizer.NewBuilder().
		WithRunID(result.RunID).
		WithPage(summarizer.PageInfo{
			Title:          result.PageTitle,
			URL:            result.PageURL,
			ViewportWidth:  result.ViewportWidth,
			ViewportHeight: result.ViewportHeight,
			ScrollHeight:   result.ScrollHeight,
		}).
		WithTimeline(result.Timeline, result.Kinds).
		WithWalk(summarizer.WalkInfo{
			ScrollEvents:    result.Stats.ScrollEvents,
			FramesRequested: result.Stats.FramesRequested,
			Updates:         result.Stats.Updates,
			Screenshots:     result.Screenshots,
		}).
		WithSettings(summarizer.Settings{
			Mode:         cfg.Mode,
			Preset:       cfg.Preset,
			Speed:        cfg.Speed,
			FPS:          cfg.FPS,
			Reverse:      cfg.Reverse,
			Jumps:        len(cfg.Jumps),
			SmoothScroll: cfg.Manifest.Options.SmoothScrollDuration,
		}).
		WithOutputs(summarizer.OutputInfo{
			TimelinePath: result.TimelinePath,
			TimelineSize: result.TimelineSize,
			ChartPath:    result.ChartPath,
			ChartSize:    result.ChartSize,
		}).
		Build()
}

func watchAction(c *cli.Context) error {
	page, err := loadPage(c)
	if err != nil {
		return err
	}
	// Console output would corrupt the terminal view
	log := logger.NewNoop()
	ctx, cancel := signalContext(c.Context, log)
	defer cancel()

	doc := memdom.Build(page.ToLayout())
	target := memdom.NewPage(doc)
	st, err := story.Mount(scroll.Env{Document: doc, Frames: target.Frames(), Logger: log}, page.ToManifest(), sections.Default())
	if err != nil {
		return err
	}
	defer st.Destroy()

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("open terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("open terminal: %w", err)
	}
	defer screen.Fini()

	view := tuiview.New(screen, target, st, tuiview.Options{
		Title:         page.Title,
		Step:          page.Walk.Speed,
		FrameInterval: time.Duration(float64(time.Second) / page.Walk.FPS),
	})
	if err := view.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
