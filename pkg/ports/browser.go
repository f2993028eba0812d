package ports

import (
	"context"
)

// Browser abstracts browser automation for driving a live page.
type Browser interface {
	// Launch starts the browser with the given options.
	Launch(ctx context.Context, opts BrowserOptions) error

	// Navigate loads the specified URL and waits for the document to be ready.
	Navigate(url string) error

	// SetViewport sets the browser viewport dimensions in CSS pixels.
	SetViewport(width, height int) error

	// Evaluate runs a JavaScript expression and decodes its result into res.
	// res may be nil when the result is not needed.
	Evaluate(expression string, res interface{}) error

	// Screenshot captures the visible viewport as PNG data.
	Screenshot() ([]byte, error)

	// GetPageInfo retrieves information about the current page.
	GetPageInfo() (*PageInfo, error)

	// Close shuts down the browser.
	Close() error
}

// BrowserOptions configures browser launch settings.
type BrowserOptions struct {
	Headless          bool
	ChromePath        string
	UserAgent         string
	Headers           map[string]string
	WindowWidth       int
	WindowHeight      int
	IgnoreHTTPSErrors bool   // Ignore HTTPS certificate errors
	ProxyServer       string // HTTP proxy server (e.g., "http://proxy:8080")
	Incognito         bool   // Run browser in incognito mode (default: true)
}

// PageInfo contains information about the current page.
type PageInfo struct {
	Title        string
	URL          string
	ScrollHeight int
	ScrollWidth  int
}
