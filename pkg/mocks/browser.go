// Package mocks provides mock implementations for testing.
package mocks

import (
	"context"

	"github.com/user/scrollytell/pkg/ports"
)

// Browser is a mock implementation of ports.Browser.
type Browser struct {
	LaunchFunc      func(ctx context.Context, opts ports.BrowserOptions) error
	NavigateFunc    func(url string) error
	SetViewportFunc func(width, height int) error
	EvaluateFunc    func(expression string, res interface{}) error
	ScreenshotFunc  func() ([]byte, error)
	GetPageInfoFunc func() (*ports.PageInfo, error)
	CloseFunc       func() error

	// Evaluated records every expression passed to Evaluate.
	Evaluated []string
}

func (m *Browser) Launch(ctx context.Context, opts ports.BrowserOptions) error {
	if m.LaunchFunc != nil {
		return m.LaunchFunc(ctx, opts)
	}
	return nil
}

func (m *Browser) Navigate(url string) error {
	if m.NavigateFunc != nil {
		return m.NavigateFunc(url)
	}
	return nil
}

func (m *Browser) SetViewport(width, height int) error {
	if m.SetViewportFunc != nil {
		return m.SetViewportFunc(width, height)
	}
	return nil
}

func (m *Browser) Evaluate(expression string, res interface{}) error {
	m.Evaluated = append(m.Evaluated, expression)
	if m.EvaluateFunc != nil {
		return m.EvaluateFunc(expression, res)
	}
	return nil
}

func (m *Browser) Screenshot() ([]byte, error) {
	if m.ScreenshotFunc != nil {
		return m.ScreenshotFunc()
	}
	return nil, nil
}

func (m *Browser) GetPageInfo() (*ports.PageInfo, error) {
	if m.GetPageInfoFunc != nil {
		return m.GetPageInfoFunc()
	}
	return &ports.PageInfo{}, nil
}

func (m *Browser) Close() error {
	if m.CloseFunc != nil {
		return m.CloseFunc()
	}
	return nil
}

// Ensure Browser implements ports.Browser
var _ ports.Browser = (*Browser)(nil)
