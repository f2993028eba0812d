// Package filesink provides a file-based debug sink implementation.
package filesink

import (
	"fmt"
	"image"
	"path/filepath"

	"github.com/user/scrollytell/pkg/ports"
)

// Sink saves debug output to files.
type Sink struct {
	baseDir  string
	fs       ports.FileSystem
	renderer ports.Renderer
}

// New creates a new FileSink.
func New(baseDir string, fs ports.FileSystem, renderer ports.Renderer) *Sink {
	return &Sink{
		baseDir:  baseDir,
		fs:       fs,
		renderer: renderer,
	}
}

// Enabled returns true as this sink saves output.
func (s *Sink) Enabled() bool {
	return true
}

// SaveScriptJSON saves the scroll script as JSON.
func (s *Sink) SaveScriptJSON(data []byte) error {
	return s.write("script.json", data)
}

// SaveTimelineJSON saves the walk timeline as JSON.
func (s *Sink) SaveTimelineJSON(data []byte) error {
	return s.write("timeline.json", data)
}

// SaveScreenshot saves a page screenshot.
func (s *Sink) SaveScreenshot(index int, data []byte) error {
	dir := filepath.Join(s.baseDir, "screenshots")
	if err := s.fs.MkdirAll(dir); err != nil {
		return err
	}
	path := filepath.Join(dir, fmt.Sprintf("shot-%04d.png", index))
	return s.fs.WriteFile(path, data)
}

// SaveChart saves the rendered timeline chart.
func (s *Sink) SaveChart(img image.Image) error {
	data, err := s.renderer.EncodeImage(img, ports.FormatPNG, 0)
	if err != nil {
		return fmt.Errorf("encode chart: %w", err)
	}
	return s.write("chart.png", data)
}

func (s *Sink) write(name string, data []byte) error {
	if err := s.fs.MkdirAll(s.baseDir); err != nil {
		return err
	}
	return s.fs.WriteFile(filepath.Join(s.baseDir, name), data)
}

// Ensure Sink implements ports.DebugSink
var _ ports.DebugSink = (*Sink)(nil)
