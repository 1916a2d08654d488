package ui

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/Dicklesworthstone/tumble/pkg/carousel"
	"github.com/Dicklesworthstone/tumble/pkg/deck"
)

const (
	prevLabel = "‹ prev"
	nextLabel = "next ›"
	dotOn     = "●"
	dotOff    = "○"

	// header, separator above and below the body, control strip
	chromeLines = 4
	barWidth    = 10
)

// hitZone is a clickable span on one rendered line.
type hitZone struct {
	y, x0, x1 int // [x0, x1)
	control   carousel.Control
}

// Markup is the terminal rendition of a deck: one SlideView per slide plus
// the pagination strip and prev/next controls, generated on demand.
type Markup struct {
	theme    Theme
	title    string
	slides   []*SlideView
	dots     []*DotView
	prev     *ControlView
	next     *ControlView
	markdown *MarkdownRenderer
	cache    map[int]string
	hits     []hitZone
	width    int
	height   int
}

// NewMarkup builds slide views for every slide of d.
func NewMarkup(d *deck.Deck, theme Theme, style string) *Markup {
	m := &Markup{
		theme:  theme,
		width:  80,
		height: 24,
		cache:  make(map[int]string),
	}
	if d != nil {
		m.title = d.Title
		for i, s := range d.Slides {
			m.slides = append(m.slides, &SlideView{Slide: s, Index: i})
		}
	}
	m.markdown = NewMarkdownRenderer(m.width-4, style)
	return m
}

// Children implements carousel.Layer.
func (m *Markup) Children() []carousel.Element {
	out := make([]carousel.Element, len(m.slides))
	for i, s := range m.slides {
		out[i] = s
	}
	return out
}

// Pagination implements carousel.Layer.
func (m *Markup) Pagination(n int) []carousel.DotElement {
	m.dots = make([]*DotView, n)
	out := make([]carousel.DotElement, n)
	for i := range m.dots {
		m.dots[i] = &DotView{target: -1}
		out[i] = m.dots[i]
	}
	return out
}

// Control implements carousel.Layer.
func (m *Markup) Control(role carousel.Role) carousel.Control {
	switch role {
	case carousel.RolePrev:
		if m.prev == nil {
			m.prev = &ControlView{Label: prevLabel, role: role, target: -1}
		}
		return m.prev
	case carousel.RoleNext:
		if m.next == nil {
			m.next = &ControlView{Label: nextLabel, role: role, target: -1}
		}
		return m.next
	}
	return nil
}

// ControlAt implements carousel.Layer using the zones of the last Render.
func (m *Markup) ControlAt(x, y int) carousel.Control {
	for _, h := range m.hits {
		if h.y == y && x >= h.x0 && x < h.x1 {
			return h.control
		}
	}
	return nil
}

// Release implements carousel.Layer.
func (m *Markup) Release() {
	m.dots = nil
	m.prev, m.next = nil, nil
	m.hits = nil
}

// SetSize sets the frame size and drops cached renders on width change.
func (m *Markup) SetSize(width, height int) {
	if width != m.width {
		m.cache = make(map[int]string)
	}
	m.width, m.height = width, height
	m.markdown.SetWidth(width - 4)
}

// Current returns the slide carrying the active marker, if any.
func (m *Markup) Current() *SlideView {
	for _, s := range m.slides {
		if s.Active() {
			return s
		}
	}
	return nil
}

// Len returns the number of slides.
func (m *Markup) Len() int { return len(m.slides) }

// Render implements carousel.Layer.
func (m *Markup) Render() string {
	m.hits = m.hits[:0]
	current := m.Current()
	if current == nil {
		return ""
	}
	r := m.theme.Renderer

	lines := []string{m.renderHeader(current)}
	sep := r.NewStyle().Foreground(m.theme.Border).Render(strings.Repeat("─", max(m.width, 1)))
	lines = append(lines, sep)
	lines = append(lines, m.renderBody(current)...)
	lines = append(lines, sep)

	if strip, ok := m.renderStrip(len(lines)); ok {
		lines = append(lines, strip)
	}
	return strings.Join(lines, "\n")
}

func (m *Markup) renderHeader(current *SlideView) string {
	r := m.theme.Renderer
	pos := current.Index + 1
	total := len(m.slides)

	filled, empty := RenderProgressBar(pos, total, barWidth)
	progress := r.NewStyle().Foreground(m.theme.Subtext).Render(PageIndicator(pos, total)) + " " +
		r.NewStyle().Foreground(m.theme.Active).Render(filled) +
		r.NewStyle().Foreground(m.theme.Muted).Render(empty)

	title := m.title
	if current.Slide.Title != "" && current.Slide.Title != title {
		title += " — " + current.Slide.Title
	}
	room := m.width - runewidth.StringWidth(PageIndicator(pos, total)) - barWidth - 3
	return m.theme.Header.Render(TruncateTitle(title, room)) + "  " + progress
}

// renderBody returns exactly the body height worth of lines.
func (m *Markup) renderBody(current *SlideView) []string {
	rendered, ok := m.cache[current.Index]
	if !ok {
		rendered = m.markdown.Render(current.Slide.Body)
		m.cache[current.Index] = rendered
	}
	height := m.height - chromeLines
	if height < 1 {
		height = 1
	}
	lines := strings.Split(rendered, "\n")
	if len(lines) > height {
		lines = lines[:height]
		lines[height-1] = m.theme.Hint.Render("↓ more below")
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	return lines
}

// renderStrip lays out prev, the dots and next on row y and records their
// hit zones. It reports false when no control is generated.
func (m *Markup) renderStrip(y int) (string, bool) {
	if m.prev == nil && m.next == nil && len(m.dots) == 0 {
		return "", false
	}
	var b strings.Builder
	x := 0
	put := func(plain, styled string, ctl carousel.Control) {
		w := runewidth.StringWidth(plain)
		if ctl != nil {
			m.hits = append(m.hits, hitZone{y: y, x0: x, x1: x + w, control: ctl})
		}
		b.WriteString(styled)
		x += w
	}

	if m.prev != nil {
		put(m.prev.Label, m.theme.Control.Render(m.prev.Label), m.prev)
		put("  ", "  ", nil)
	}
	for i, d := range m.dots {
		if i > 0 {
			put(" ", " ", nil)
		}
		glyph := dotOff
		if d.Active() {
			glyph = dotOn
		}
		put(glyph, m.theme.DotStyle(d.Active()).Render(glyph), d)
	}
	if m.next != nil {
		if len(m.dots) > 0 || m.prev != nil {
			put("  ", "  ", nil)
		}
		put(m.next.Label, m.theme.Control.Render(m.next.Label), m.next)
	}
	return b.String(), true
}
