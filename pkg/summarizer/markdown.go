package summarizer

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// MarkdownFormatter formats a Summary as a Markdown report.
type MarkdownFormatter struct {
	translate func(string) string
	version   string
}

// MarkdownOption configures a MarkdownFormatter.
type MarkdownOption func(*MarkdownFormatter)

// WithTranslator translates headings and labels.
func WithTranslator(fn func(string) string) MarkdownOption {
	return func(f *MarkdownFormatter) {
		if fn != nil {
			f.translate = fn
		}
	}
}

// WithVersion adds the tool version to the report footer.
func WithVersion(version string) MarkdownOption {
	return func(f *MarkdownFormatter) {
		f.version = version
	}
}

// NewMarkdownFormatter creates a MarkdownFormatter.
func NewMarkdownFormatter(opts ...MarkdownOption) *MarkdownFormatter {
	f := &MarkdownFormatter{translate: func(s string) string { return s }}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Format implements Formatter.
func (f *MarkdownFormatter) Format(s *Summary) string {
	t := f.translate
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", t("Scroll Walk Summary"))

	fmt.Fprintf(&b, "## %s\n\n", t("Page"))
	fmt.Fprintf(&b, "| %s | %s |\n|---|---|\n", t("Item"), t("Value"))
	title := s.Page.Title
	if title == "" {
		title = t("(untitled)")
	}
	fmt.Fprintf(&b, "| %s | %s |\n", t("Page Title"), title)
	if s.Page.URL != "" {
		fmt.Fprintf(&b, "| %s | %s |\n", t("URL"), s.Page.URL)
	}
	fmt.Fprintf(&b, "| %s | %dx%d |\n", t("Viewport"), s.Page.ViewportWidth, s.Page.ViewportHeight)
	fmt.Fprintf(&b, "| %s | %s px |\n", t("Page Height"), humanize.Comma(int64(s.Page.ScrollHeight)))
	b.WriteString("\n")

	fmt.Fprintf(&b, "## %s\n\n", t("Sections"))
	if len(s.Sections) == 0 {
		fmt.Fprintf(&b, "%s\n\n", t("No sections were registered."))
	} else {
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s |\n|---|---|---|---|---|\n",
			t("Section"), t("Kind"), t("First Current"), t("Frames Current"), t("Max Progress"))
		for _, sec := range s.Sections {
			first := t("Never")
			if sec.FirstCurrent >= 0 {
				first = fmt.Sprintf("#%d", sec.FirstCurrent)
			}
			kind := sec.Kind
			if kind == "" {
				kind = "-"
			}
			fmt.Fprintf(&b, "| %s | %s | %s | %d | %.0f%% |\n",
				sec.ID, kind, first, sec.FramesCurrent, sec.MaxProgress*100)
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "## %s\n\n", t("Walk"))
	fmt.Fprintf(&b, "| %s | %s |\n|---|---|\n", t("Item"), t("Value"))
	fmt.Fprintf(&b, "| %s | %s |\n", t("Frames"), humanize.Comma(int64(s.Walk.Frames)))
	fmt.Fprintf(&b, "| %s | %s |\n", t("Duration"), formatDuration(s.Walk.DurationMs))
	fmt.Fprintf(&b, "| %s | %d |\n", t("Section Changes"), s.Walk.SectionChanges)
	fmt.Fprintf(&b, "| %s | %s |\n", t("Scroll Events"), humanize.Comma(int64(s.Walk.ScrollEvents)))
	fmt.Fprintf(&b, "| %s | %s |\n", t("Update Passes"), humanize.Comma(int64(s.Walk.Updates)))
	fmt.Fprintf(&b, "| %s | %.2f |\n", t("Events per Update"), s.Walk.CoalescingRatio())
	if s.Walk.Screenshots > 0 {
		fmt.Fprintf(&b, "| %s | %d |\n", t("Screenshots"), s.Walk.Screenshots)
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "## %s\n\n", t("Settings"))
	fmt.Fprintf(&b, "| %s | %s |\n|---|---|\n", t("Item"), t("Value"))
	if s.Settings.Mode != "" {
		fmt.Fprintf(&b, "| %s | %s |\n", t("Mode"), s.Settings.Mode)
	}
	if s.Settings.Preset != "" {
		fmt.Fprintf(&b, "| %s | %s |\n", t("Preset"), s.Settings.Preset)
	}
	fmt.Fprintf(&b, "| %s | %.0f px/frame |\n", t("Speed"), s.Settings.Speed)
	fmt.Fprintf(&b, "| %s | %.1f |\n", t("FPS"), s.Settings.FPS)
	if s.Settings.Reverse {
		fmt.Fprintf(&b, "| %s | %s |\n", t("Reverse"), t("Yes"))
	}
	if s.Settings.Jumps > 0 {
		fmt.Fprintf(&b, "| %s | %d |\n", t("Jumps"), s.Settings.Jumps)
	}
	if s.Settings.SmoothScroll > 0 {
		fmt.Fprintf(&b, "| %s | %d ms |\n", t("Smooth Scroll"), s.Settings.SmoothScroll.Milliseconds())
	}
	b.WriteString("\n")

	if s.Outputs.TimelinePath != "" || s.Outputs.ChartPath != "" {
		fmt.Fprintf(&b, "## %s\n\n", t("Outputs"))
		fmt.Fprintf(&b, "| %s | %s |\n|---|---|\n", t("File"), t("Size"))
		if s.Outputs.TimelinePath != "" {
			fmt.Fprintf(&b, "| %s | %s |\n", s.Outputs.TimelinePath, humanize.Bytes(uint64(s.Outputs.TimelineSize)))
		}
		if s.Outputs.ChartPath != "" {
			fmt.Fprintf(&b, "| %s | %s |\n", s.Outputs.ChartPath, humanize.Bytes(uint64(s.Outputs.ChartSize)))
		}
		b.WriteString("\n")
	}

	b.WriteString("---\n\n")
	footer := fmt.Sprintf("%s %s", t("Generated at"), s.GeneratedAt.Format(time.RFC3339))
	if s.RunID != "" {
		footer += fmt.Sprintf(" (%s %s)", t("run"), s.RunID)
	}
	if f.version != "" {
		footer += fmt.Sprintf(" by scrollytell %s", f.version)
	}
	b.WriteString(footer + "\n")

	return b.String()
}

func formatDuration(ms int) string {
	if ms < 1000 {
		return fmt.Sprintf("%d ms", ms)
	}
	return fmt.Sprintf("%.2f s", float64(ms)/1000)
}

// Ensure MarkdownFormatter implements Formatter
var _ Formatter = (*MarkdownFormatter)(nil)
