package components

import (
	"github.com/user/scrollytell/pkg/ports"
)

// footerThreshold is the visible share of the footer that shows the badge.
const footerThreshold = 0.5

// FinalSummary shows the closing badge while the footer is in view.
type FinalSummary struct {
	el       ports.Element
	observer ports.Observer
}

// NewFinalSummary binds the page's .final-summary element.
func NewFinalSummary(doc ports.Document) *FinalSummary {
	return &FinalSummary{el: doc.Query("final-summary")}
}

// Show makes the badge visible.
func (f *FinalSummary) Show() {
	if f.el != nil {
		f.el.AddClass("visible")
	}
}

// Hide hides the badge.
func (f *FinalSummary) Hide() {
	if f.el != nil {
		f.el.RemoveClass("visible")
	}
}

// Visible reports whether the badge is shown.
func (f *FinalSummary) Visible() bool {
	return f.el != nil && f.el.HasClass("visible")
}

// Watch shows the badge while at least half of the element with footerID is
// in view. It reports false when the footer does not exist.
func (f *FinalSummary) Watch(doc ports.Document, footerID string) bool {
	footer := doc.ByID(footerID)
	if footer == nil {
		return false
	}
	f.Close()
	f.observer = doc.Observe(ports.ObserverOptions{Thresholds: []float64{footerThreshold}}, func(entries []ports.IntersectionEntry) {
		for _, e := range entries {
			if e.IsIntersecting && e.Ratio >= footerThreshold {
				f.Show()
			} else {
				f.Hide()
			}
		}
	})
	f.observer.Observe(footer)
	return true
}

// Close stops watching the footer.
func (f *FinalSummary) Close() {
	if f.observer != nil {
		f.observer.Disconnect()
		f.observer = nil
	}
}
