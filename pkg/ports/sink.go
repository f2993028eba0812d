package ports

import (
	"image"
)

// DebugSink abstracts debug output for intermediate results.
// It allows saving intermediate processing results for debugging purposes.
type DebugSink interface {
	// Enabled returns true if debug output is enabled.
	Enabled() bool

	// SaveScriptJSON saves the generated scroll script as JSON.
	SaveScriptJSON(data []byte) error

	// SaveTimelineJSON saves the sampled walk timeline as JSON.
	SaveTimelineJSON(data []byte) error

	// SaveScreenshot saves a page screenshot taken during the walk.
	SaveScreenshot(index int, data []byte) error

	// SaveChart saves the rendered timeline chart.
	SaveChart(img image.Image) error
}
