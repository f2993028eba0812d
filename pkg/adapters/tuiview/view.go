// Package tuiview renders a mounted story in the terminal and lets the user
// scroll it with the keyboard.
package tuiview

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/user/scrollytell/pkg/ports"
	"github.com/user/scrollytell/pkg/story"
)

const (
	labelWidth = 18
	minBar     = 10
)

var (
	styleDefault = tcell.StyleDefault
	styleTitle   = tcell.StyleDefault.Bold(true)
	styleCurrent = tcell.StyleDefault.Foreground(tcell.ColorAqua).Bold(true)
	styleBar     = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	styleDim     = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleFlag    = tcell.StyleDefault.Foreground(tcell.ColorYellow)
)

// Options configures a View.
type Options struct {
	Title         string
	Step          float64       // Pixels per arrow key (default: 40)
	FrameInterval time.Duration // Frame clock (default: 16ms)
}

// View draws the engine state of a story page on a tcell screen.
type View struct {
	screen tcell.Screen
	page   ports.Page
	story  *story.Story
	opts   Options

	now time.Duration
}

// New creates a view over a mounted story.
func New(screen tcell.Screen, page ports.Page, st *story.Story, opts Options) *View {
	if opts.Step <= 0 {
		opts.Step = 40
	}
	if opts.FrameInterval <= 0 {
		opts.FrameInterval = 16 * time.Millisecond
	}
	return &View{screen: screen, page: page, story: st, opts: opts}
}

// Run draws and handles input until the user quits or ctx is done.
// The screen must already be initialized; Run does not finalize it.
func (v *View) Run(ctx context.Context) error {
	events := make(chan tcell.Event, 16)
	quit := make(chan struct{})
	defer close(quit)
	go v.screen.ChannelEvents(events, quit)

	ticker := time.NewTicker(v.opts.FrameInterval)
	defer ticker.Stop()

	v.Draw()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok || !v.HandleEvent(ev) {
				return nil
			}
			v.Draw()
		case <-ticker.C:
			v.Advance()
			v.Draw()
		}
	}
}

// Advance renders one page frame.
func (v *View) Advance() {
	v.now += v.opts.FrameInterval
	v.page.Advance(v.now)
}

// HandleEvent applies a terminal event. It returns false when the view should close.
func (v *View) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		v.screen.Sync()
	case *tcell.EventKey:
		return v.handleKey(ev)
	}
	return true
}

func (v *View) handleKey(ev *tcell.EventKey) bool {
	doc := v.page.Document()
	_, vh := doc.Viewport()
	alt := ev.Modifiers()&tcell.ModAlt != 0

	switch ev.Key() {
	case tcell.KeyCtrlC:
		return false
	case tcell.KeyEscape:
		// Escape closes the mobile menu first
		return v.story.HandleKey("Escape", false)
	case tcell.KeyUp:
		if alt {
			v.story.HandleKey("ArrowUp", true)
		} else {
			v.scrollBy(-v.opts.Step)
		}
	case tcell.KeyDown:
		if alt {
			v.story.HandleKey("ArrowDown", true)
		} else {
			v.scrollBy(v.opts.Step)
		}
	case tcell.KeyPgUp:
		v.scrollBy(-vh * 0.9)
	case tcell.KeyPgDn:
		v.scrollBy(vh * 0.9)
	case tcell.KeyHome:
		doc.ScrollTo(0)
	case tcell.KeyEnd:
		doc.ScrollTo(doc.ScrollHeight() - vh)
	case tcell.KeyRune:
		return v.handleRune(ev.Rune())
	}
	return true
}

func (v *View) handleRune(r rune) bool {
	switch {
	case r == 'q':
		return false
	case r == 'm':
		v.story.MobileNav.Toggle()
	case r == 'j':
		v.scrollBy(v.opts.Step)
	case r == 'k':
		v.scrollBy(-v.opts.Step)
	case r >= '1' && r <= '9':
		ids := v.story.Controller.SectionIDs()
		if i := int(r - '1'); i < len(ids) {
			v.story.Controller.ScrollToSection(ids[i])
		}
	}
	return true
}

func (v *View) scrollBy(dy float64) {
	doc := v.page.Document()
	doc.ScrollTo(doc.ScrollY() + dy)
}

// Draw paints the current engine state.
func (v *View) Draw() {
	v.screen.Clear()
	width, height := v.screen.Size()
	ctrl := v.story.Controller
	doc := v.page.Document()

	title := v.opts.Title
	if title == "" {
		title = "scrollytell"
	}
	y := 0
	v.text(0, y, styleTitle, title)
	v.text(len(title)+2, y, styleDim, fmt.Sprintf("scrollY %.0f / %.0f", doc.ScrollY(), doc.ScrollHeight()))
	y++
	v.bar(0, y, width, ctrl.PageProgress(), styleBar)
	y += 2

	current := ctrl.CurrentSection()
	barWidth := max(minBar, width-labelWidth-10)
	for i, state := range ctrl.Sections() {
		if y >= height-2 {
			break
		}
		style := styleDefault
		marker := "  "
		if state.ID == current {
			style = styleCurrent
			marker = "▶ "
		}
		dot := "○"
		if state.Active {
			dot = "●"
		}
		label := fmt.Sprintf("%s%d %s", marker, i+1, state.ID)
		if !state.Resolved {
			label += " ?"
		}
		v.text(0, y, style, truncate(label, labelWidth-2))
		v.text(labelWidth-2, y, style, dot)
		v.bar(labelWidth, y, barWidth, state.Progress, styleBar)
		v.text(labelWidth+barWidth+1, y, style, fmt.Sprintf("%3.0f%%", state.Progress*100))
		y++
	}

	y++
	var flags []string
	if v.story.MobileNav.IsOpen() {
		flags = append(flags, "menu open")
	}
	if v.story.Summary.Visible() {
		flags = append(flags, "summary shown")
	}
	if ctrl.Scrolling() {
		flags = append(flags, "scrolling")
	}
	if len(flags) > 0 && y < height-1 {
		v.text(0, y, styleFlag, strings.Join(flags, "  "))
	}

	stats := ctrl.Stats()
	v.text(0, height-1, styleDim, truncate(fmt.Sprintf(
		"↑↓ scroll  PgUp/PgDn page  Alt+↑↓ skip  1-9 jump  m menu  q quit   events %d updates %d",
		stats.ScrollEvents, stats.Updates), width))

	v.screen.Show()
}

func (v *View) text(x, y int, style tcell.Style, s string) {
	for _, r := range s {
		v.screen.SetContent(x, y, r, nil, style)
		x++
	}
}

func (v *View) bar(x, y, width int, p float64, style tcell.Style) {
	filled := int(p*float64(width) + 0.5)
	for i := 0; i < width; i++ {
		r := '░'
		if i < filled {
			r = '█'
		}
		v.screen.SetContent(x+i, y, r, nil, style)
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if n <= 0 {
		return ""
	}
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
