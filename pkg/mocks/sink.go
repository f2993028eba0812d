package mocks

import (
	"image"
	"sync"

	"github.com/user/scrollytell/pkg/ports"
)

// DebugSink is a mock implementation of ports.DebugSink.
type DebugSink struct {
	mu sync.RWMutex

	enabled bool

	ScriptJSON   []byte
	TimelineJSON []byte
	Screenshots  map[int][]byte
	Chart        image.Image
}

// NewDebugSink creates a new mock DebugSink.
func NewDebugSink(enabled bool) *DebugSink {
	return &DebugSink{
		enabled:     enabled,
		Screenshots: make(map[int][]byte),
	}
}

func (m *DebugSink) Enabled() bool {
	return m.enabled
}

func (m *DebugSink) SaveScriptJSON(data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ScriptJSON = data
	return nil
}

func (m *DebugSink) SaveTimelineJSON(data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.TimelineJSON = data
	return nil
}

func (m *DebugSink) SaveScreenshot(index int, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Screenshots[index] = data
	return nil
}

func (m *DebugSink) SaveChart(img image.Image) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Chart = img
	return nil
}

// ScreenshotCount returns the number of saved screenshots.
func (m *DebugSink) ScreenshotCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.Screenshots)
}

var _ ports.DebugSink = (*DebugSink)(nil)
