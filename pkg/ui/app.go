package ui

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Dicklesworthstone/tumble/pkg/carousel"
	"github.com/Dicklesworthstone/tumble/pkg/deck"
)

// statusLineDuration is how long a transient status message stays up.
const statusLineDuration = 3 * time.Second

// ChangeSource blocks until the deck on disk changes.
type ChangeSource interface {
	Wait() (string, error)
}

// Reloader loads the deck again together with the options resolved for it.
type Reloader func() (*deck.Deck, carousel.Options, error)

// DeckChangedMsg is sent when the watched deck changed on disk.
type DeckChangedMsg struct {
	Path string
	Err  error
}

type statusClearMsg struct{ seq int }

type appKeyMap struct {
	carousel.KeyMap
	Copy key.Binding
	Help key.Binding
	Quit key.Binding
}

func (k appKeyMap) ShortHelp() []key.Binding {
	return append(k.KeyMap.ShortHelp(), k.Copy, k.Help, k.Quit)
}

func (k appKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.KeyMap.ShortHelp(), {k.Copy, k.Help, k.Quit}}
}

func defaultAppKeys() appKeyMap {
	return appKeyMap{
		KeyMap: carousel.DefaultKeyMap(),
		Copy:   key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "copy slide")),
		Help:   key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:   key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// App is the root Bubble Tea model: a carousel over a deck, with a help bar,
// clipboard copy and optional hot reload.
type App struct {
	carousel *carousel.Carousel
	markup   *Markup
	events   *EventBus
	opts     carousel.Options
	theme    Theme
	style    string
	keys     appKeyMap
	help     help.Model
	logger   *log.Logger

	reload  Reloader
	changes ChangeSource
	copy    func(string) error
	tick    carousel.TickFunc

	startCmd  tea.Cmd
	status    string
	statusSeq int
	width     int
	height    int
}

// AppConfig collects what an App is built from. Zero fields take defaults.
type AppConfig struct {
	Options   carousel.Options
	Theme     Theme
	Style     string
	Logger    *log.Logger
	Clipboard func(string) error
	Tick      carousel.TickFunc
}

// NewApp builds a carousel over d. Build errors are returned as-is.
func NewApp(d *deck.Deck, cfg AppConfig) (*App, error) {
	a := &App{
		events: NewEventBus(),
		opts:   cfg.Options,
		theme:  cfg.Theme,
		style:  cfg.Style,
		keys:   defaultAppKeys(),
		help:   help.New(),
		logger: cfg.Logger,
		copy:   cfg.Clipboard,
		tick:   cfg.Tick,
		width:  80,
		height: 24,
	}
	if a.copy == nil {
		a.copy = clipboard.WriteAll
	}
	if a.theme.Renderer == nil {
		a.theme = DefaultTheme(lipgloss.DefaultRenderer())
	}
	if a.style == "" {
		a.style = "dark"
	}
	cmd, err := a.build(d, a.opts)
	if err != nil {
		return nil, err
	}
	a.startCmd = cmd
	return a, nil
}

// Watch enables hot reload: every change from src reloads the deck and its
// options with load.
func (a *App) Watch(src ChangeSource, load Reloader) {
	a.changes = src
	a.reload = load
}

// Carousel exposes the running carousel.
func (a *App) Carousel() *carousel.Carousel { return a.carousel }

// Markup exposes the current markup layer.
func (a *App) Markup() *Markup { return a.markup }

func (a *App) build(d *deck.Deck, opts carousel.Options) (tea.Cmd, error) {
	markup := NewMarkup(d, a.theme, a.style)
	markup.SetSize(a.width, a.height-a.chromeHeight())
	c := carousel.New(markup, a.events, opts)
	c.SetLogger(a.logger)
	if a.tick != nil {
		c.SetTick(a.tick)
	}
	cmd, err := c.Build()
	if err != nil {
		return nil, err
	}
	a.markup, a.carousel = markup, c
	a.keys.KeyMap = c.KeyMap()
	return cmd, nil
}

// Init starts auto-advance and the change watcher.
func (a *App) Init() tea.Cmd {
	return tea.Batch(a.startCmd, a.waitForChange())
}

func (a *App) waitForChange() tea.Cmd {
	if a.changes == nil {
		return nil
	}
	src := a.changes
	return func() tea.Msg {
		path, err := src.Wait()
		return DeckChangedMsg{Path: path, Err: err}
	}
}

// Update handles app keys, resizes and reloads, and forwards the rest to
// the carousel.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		a.help.Width = msg.Width
		a.markup.SetSize(a.width, a.height-a.chromeHeight())
		return a, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, a.keys.Quit):
			a.carousel.Destroy()
			return a, tea.Quit
		case key.Matches(msg, a.keys.Help):
			a.help.ShowAll = !a.help.ShowAll
			a.markup.SetSize(a.width, a.height-a.chromeHeight())
			return a, nil
		case key.Matches(msg, a.keys.Copy):
			return a, a.copySlide()
		}

	case DeckChangedMsg:
		if msg.Err != nil {
			// Watcher closed or failed; stop listening.
			a.logf("WARNING: deck watcher stopped: %v", msg.Err)
			return a, nil
		}
		cmd := a.rebuild()
		return a, tea.Batch(cmd, a.waitForChange())

	case statusClearMsg:
		if msg.seq == a.statusSeq {
			a.status = ""
		}
		return a, nil
	}

	var cmd tea.Cmd
	a.carousel, cmd = a.carousel.Update(msg)
	return a, cmd
}

// rebuild swaps in a freshly loaded deck and its options, keeping the active
// slide when it still exists. A deck that fails to load leaves the old
// carousel running.
func (a *App) rebuild() tea.Cmd {
	if a.reload == nil {
		return nil
	}
	d, base, err := a.reload()
	if err != nil {
		return a.setStatus(fmt.Sprintf("reload failed: %v", err))
	}

	opts := base
	if id, ok := a.carousel.ActiveID(); ok && id < len(d.Slides) {
		opts.InitialSlide = id
	} else if opts.InitialSlide >= len(d.Slides) {
		opts.InitialSlide = 0
	}

	old := a.carousel
	old.Destroy()
	cmd, err := a.build(d, opts)
	if err != nil {
		// Bring the previous deck back.
		restart, restoreErr := old.Build()
		if restoreErr != nil {
			a.logf("WARNING: failed to restore previous deck: %v", restoreErr)
		}
		return tea.Batch(restart, a.setStatus(fmt.Sprintf("reload failed: %v", err)))
	}
	return tea.Batch(cmd, a.setStatus(fmt.Sprintf("reloaded %d slides", len(d.Slides))))
}

func (a *App) copySlide() tea.Cmd {
	current := a.markup.Current()
	if current == nil || a.copy == nil {
		return nil
	}
	if err := a.copy(current.Slide.Body); err != nil {
		return a.setStatus(fmt.Sprintf("copy failed: %v", err))
	}
	return a.setStatus(fmt.Sprintf("copied slide %d", current.Index+1))
}

func (a *App) setStatus(s string) tea.Cmd {
	a.status = s
	a.statusSeq++
	seq := a.statusSeq
	return tea.Tick(statusLineDuration, func(time.Time) tea.Msg {
		return statusClearMsg{seq: seq}
	})
}

func (a *App) logf(format string, args ...any) {
	if a.logger != nil {
		a.logger.Printf(format, args...)
	}
}

// chromeHeight is the status line plus the help bar.
func (a *App) chromeHeight() int {
	if a.help.ShowAll {
		return 1 + len(a.keys.FullHelp()[0])
	}
	return 2
}

// View renders the carousel, the status line and the help bar.
func (a *App) View() string {
	var b strings.Builder
	b.WriteString(a.carousel.View())
	b.WriteString("\n")
	b.WriteString(a.theme.Status.Render(a.status))
	b.WriteString("\n")
	b.WriteString(a.help.View(a.keys))
	return b.String()
}
