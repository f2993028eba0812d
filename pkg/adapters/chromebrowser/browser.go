// Package chromebrowser provides a browser implementation using chromedp.
package chromebrowser

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/cdproto/browser"
	"github.com/chromedp/cdproto/emulation"
	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"github.com/user/scrollytell/pkg/ports"
)

// Browser implements ports.Browser using chromedp.
type Browser struct {
	allocCtx    context.Context
	allocCancel context.CancelFunc
	ctx         context.Context
	cancel      context.CancelFunc

	width  int
	height int
}

// New creates a new Browser.
func New() *Browser {
	return &Browser{}
}

// Launch starts the browser with the given options.
func (b *Browser) Launch(ctx context.Context, opts ports.BrowserOptions) error {
	chromedpOpts := []chromedp.ExecAllocatorOption{
		chromedp.NoFirstRun,
		chromedp.NoDefaultBrowserCheck,
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-background-networking", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-sync", true),
		chromedp.Flag("disable-translate", true),
		chromedp.Flag("metrics-recording-only", true),
		chromedp.Flag("mute-audio", true),
		chromedp.Flag("safebrowsing-disable-auto-update", true),
	}

	if opts.Headless {
		chromedpOpts = append(chromedpOpts, chromedp.Flag("headless", "new"))
	}

	// Scrollbars would shift the layout between screenshots
	chromedpOpts = append(chromedpOpts, chromedp.Flag("hide-scrollbars", true))

	// Resolve Chrome path: CLI option → CHROME_PATH env → system defaults → installed Chromium
	chromePath := ResolveChromePath(opts.ChromePath)
	if chromePath == "" {
		installed, err := InstallChromium()
		if err != nil {
			return fmt.Errorf("chrome not found: please install Chrome/Chromium, set CHROME_PATH environment variable, or use --chrome-path option (%w)", err)
		}
		chromePath = installed
	}
	chromedpOpts = append(chromedpOpts, chromedp.ExecPath(chromePath))

	if opts.Incognito {
		chromedpOpts = append(chromedpOpts, chromedp.Flag("incognito", true))
	}

	if opts.UserAgent != "" {
		chromedpOpts = append(chromedpOpts, chromedp.UserAgent(opts.UserAgent))
	}

	if opts.WindowWidth > 0 && opts.WindowHeight > 0 {
		chromedpOpts = append(chromedpOpts,
			chromedp.WindowSize(opts.WindowWidth, opts.WindowHeight),
			chromedp.Flag("window-size", fmt.Sprintf("%d,%d", opts.WindowWidth, opts.WindowHeight)))
	}

	if opts.IgnoreHTTPSErrors {
		chromedpOpts = append(chromedpOpts,
			chromedp.Flag("ignore-certificate-errors", true),
			chromedp.Flag("ignore-certificate-errors-spki-list", true),
			chromedp.Flag("allow-insecure-localhost", true))
	}

	if opts.ProxyServer != "" {
		chromedpOpts = append(chromedpOpts,
			chromedp.Flag("proxy-server", opts.ProxyServer))
	}

	// Server, background and container execution
	chromedpOpts = append(chromedpOpts,
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-software-rasterizer", true),
		chromedp.Flag("single-process", false),
		chromedp.Flag("disable-setuid-sandbox", true),
		chromedp.Flag("disable-namespace-sandbox", true),
		chromedp.Flag("disable-seccomp-filter-sandbox", true),
		chromedp.Flag("no-zygote", true),
		chromedp.Flag("disable-features", "VizDisplayCompositor"),
	)

	b.allocCtx, b.allocCancel = chromedp.NewExecAllocator(ctx, chromedpOpts...)
	b.ctx, b.cancel = chromedp.NewContext(b.allocCtx)

	if len(opts.Headers) > 0 {
		headers := make(map[string]interface{})
		for k, v := range opts.Headers {
			headers[k] = v
		}
		if err := chromedp.Run(b.ctx, network.Enable(), network.SetExtraHTTPHeaders(network.Headers(headers))); err != nil {
			return fmt.Errorf("set headers: %w", err)
		}
	}

	return nil
}

// Navigate loads the specified URL and waits for the body to be ready.
func (b *Browser) Navigate(url string) error {
	return chromedp.Run(b.ctx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
	)
}

// SetViewport sets the browser viewport dimensions in CSS pixels.
func (b *Browser) SetViewport(width, height int) error {
	// Window bounds first, so the device metrics override is not clipped
	_ = chromedp.Run(b.ctx, chromedp.ActionFunc(func(ctx context.Context) error {
		windowID, _, err := browser.GetWindowForTarget().Do(ctx)
		if err != nil {
			return nil
		}
		return browser.SetWindowBounds(windowID, &browser.Bounds{
			Width:  int64(width),
			Height: int64(height),
		}).Do(ctx)
	}))

	if err := chromedp.Run(b.ctx,
		emulation.SetDeviceMetricsOverride(int64(width), int64(height), 1, false),
	); err != nil {
		return fmt.Errorf("set device metrics: %w", err)
	}
	b.width, b.height = width, height
	return nil
}

// Evaluate runs a JavaScript expression and decodes its result into res.
func (b *Browser) Evaluate(expression string, res interface{}) error {
	if res == nil {
		return chromedp.Run(b.ctx, chromedp.Evaluate(expression, nil))
	}
	return chromedp.Run(b.ctx, chromedp.Evaluate(expression, res))
}

// Screenshot captures the visible viewport as PNG.
func (b *Browser) Screenshot() ([]byte, error) {
	var buf []byte
	err := chromedp.Run(b.ctx, chromedp.ActionFunc(func(ctx context.Context) error {
		data, err := page.CaptureScreenshot().
			WithFormat(page.CaptureScreenshotFormatPng).
			WithFromSurface(true).
			Do(ctx)
		if err != nil {
			return err
		}
		buf = data
		return nil
	}))
	if err != nil {
		return nil, fmt.Errorf("capture screenshot: %w", err)
	}
	return buf, nil
}

// GetPageInfo retrieves information about the current page.
func (b *Browser) GetPageInfo() (*ports.PageInfo, error) {
	var title, url string
	var scrollHeight, scrollWidth int

	err := chromedp.Run(b.ctx,
		chromedp.Title(&title),
		chromedp.Location(&url),
		chromedp.Evaluate(`document.documentElement.scrollHeight`, &scrollHeight),
		chromedp.Evaluate(`document.documentElement.scrollWidth`, &scrollWidth),
	)
	if err != nil {
		return nil, fmt.Errorf("get page info: %w", err)
	}

	return &ports.PageInfo{
		Title:        title,
		URL:          url,
		ScrollHeight: scrollHeight,
		ScrollWidth:  scrollWidth,
	}, nil
}

// Close shuts down the browser.
func (b *Browser) Close() error {
	if b.cancel != nil {
		b.cancel()
	}

	// Give Chrome a moment to shut down gracefully, then force kill
	time.Sleep(100 * time.Millisecond)

	if b.allocCancel != nil {
		b.allocCancel()
	}

	return nil
}

// Ensure Browser implements ports.Browser
var _ ports.Browser = (*Browser)(nil)
