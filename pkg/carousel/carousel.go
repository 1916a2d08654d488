// Package carousel is the slide state machine behind a rotating carousel:
// one active slide, wrap-around prev/next targets, pagination dots paired
// with slides, and an auto-advance timer that restarts on every transition.
// Markup and event delivery are supplied through Layer and Events.
package carousel

import (
	"fmt"
	"log"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Carousel owns the registries, the state machine, the scheduler and the
// binder for one container. All methods run on the Bubble Tea event loop.
type Carousel struct {
	layer  Layer
	events Events
	opts   Options
	keys   KeyMap
	logger *log.Logger

	slides    *SlideRegistry
	dots      *DotRegistry
	prev      Control
	next      Control
	state     *State
	scheduler *Scheduler
	binder    *Binder
	built     bool
}

// New returns an unbuilt carousel over layer.
func New(layer Layer, events Events, opts Options) *Carousel {
	return &Carousel{
		layer:     layer,
		events:    events,
		opts:      opts,
		keys:      DefaultKeyMap(),
		logger:    log.Default(),
		scheduler: NewScheduler(nil),
		binder:    NewBinder(events),
	}
}

// SetLogger sets the logger used for build warnings.
func (c *Carousel) SetLogger(logger *log.Logger) {
	c.logger = logger
}

// SetTick replaces the timer constructor used for auto-advance.
func (c *Carousel) SetTick(tick TickFunc) {
	c.scheduler.tick = tick
}

// SetKeyMap replaces the key bindings.
func (c *Carousel) SetKeyMap(keys KeyMap) {
	c.keys = keys
	if c.built {
		c.syncKeys()
	}
}

// KeyMap returns the key bindings, for help rendering. Bindings whose
// controls are not bound are disabled.
func (c *Carousel) KeyMap() KeyMap { return c.keys }

func (c *Carousel) syncKeys() {
	c.keys.Prev.SetEnabled(c.prev != nil)
	c.keys.Next.SetEnabled(c.next != nil)
	c.keys.Dot.SetEnabled(c.dots.Len() > 0)
}

// Options returns the options the carousel was created with.
func (c *Carousel) Options() Options { return c.opts }

// Build populates the registries, activates the initial slide and binds
// the controls. The returned command starts auto-advance when rotating.
// Building twice without Destroy in between is an error.
func (c *Carousel) Build() (tea.Cmd, error) {
	if c.built {
		return nil, ErrAlreadyBuilt
	}
	if err := c.build(); err != nil {
		if c.logger != nil {
			c.logger.Printf("WARNING: carousel build rejected: %v", err)
		}
		return nil, err
	}
	c.built = true
	c.syncKeys()
	if c.opts.Rotate {
		return c.scheduler.Reset(c.opts.Timeout), nil
	}
	return nil, nil
}

func (c *Carousel) build() error {
	if c.layer == nil || c.events == nil {
		return ErrNoContainer
	}
	if err := c.opts.Validate(); err != nil {
		return err
	}

	slides, err := NewSlideRegistry(c.layer.Children())
	if err != nil {
		return fmt.Errorf("building slides: %w", err)
	}

	var dots *DotRegistry
	if c.opts.ShowPagination {
		dots, err = NewDotRegistry(c.layer.Pagination(slides.Len()), slides)
		if err != nil {
			c.layer.Release()
			return fmt.Errorf("building pagination: %w", err)
		}
	}

	var prev, next Control
	if c.opts.ShowControls {
		prev, err = c.control(RolePrev)
		if err == nil {
			next, err = c.control(RoleNext)
		}
		if err != nil {
			c.layer.Release()
			return err
		}
	}

	state := NewState(slides, dots, prev, next)
	if err := state.Initialize(c.opts.InitialSlide); err != nil {
		c.layer.Release()
		return fmt.Errorf("slide %d of %d: %w", c.opts.InitialSlide, slides.Len(), err)
	}

	c.slides, c.dots = slides, dots
	c.prev, c.next = prev, next
	c.state = state
	c.binder.Bind(c, prev, next, dots)
	return nil
}

func (c *Carousel) control(role Role) (Control, error) {
	ctl := c.layer.Control(role)
	if ctl == nil {
		return nil, fmt.Errorf("%s control missing: %w", role, ErrControlRole)
	}
	if got := ctl.Role(); got != role {
		return nil, fmt.Errorf("asked for %s control, got %s: %w", role, got, ErrControlRole)
	}
	return ctl, nil
}

// Destroy cancels auto-advance, releases every subscription, clears the
// markers and forgets the registries. A second call does nothing.
func (c *Carousel) Destroy() {
	if !c.built {
		return
	}
	c.scheduler.Cancel()
	c.binder.Unbind()
	c.state.Teardown()
	c.slides.Clear()
	c.dots.Clear()
	c.layer.Release()
	c.prev, c.next = nil, nil
	c.built = false
}

// Built reports whether the carousel is between Build and Destroy.
func (c *Carousel) Built() bool { return c.built }

// TransitionTo activates slide id. It returns nil and no command when id is
// already active, out of range, or the carousel is not built; otherwise it
// returns the new slide's element and, when rotating, the restarted timer.
func (c *Carousel) TransitionTo(id int) (Element, tea.Cmd) {
	if !c.built {
		return nil, nil
	}
	el := c.state.TransitionTo(id)
	if el == nil {
		return nil, nil
	}
	if c.opts.Rotate {
		return el, c.scheduler.Reset(c.opts.Timeout)
	}
	return el, nil
}

// CurrentSlide returns the active slide's element, or nil when unbuilt.
func (c *Carousel) CurrentSlide() Element {
	if !c.built {
		return nil
	}
	return c.state.CurrentSlide()
}

// ActiveID returns the active slide identifier.
func (c *Carousel) ActiveID() (int, bool) {
	if c.state == nil {
		return unset, false
	}
	return c.state.ActiveID()
}

// IsActive reports the derived active marker of slide (and dot) id.
func (c *Carousel) IsActive(id int) bool {
	return c.state != nil && c.state.IsActive(id)
}

// Len returns the number of slides while built.
func (c *Carousel) Len() int { return c.slides.Len() }

// PrevTarget returns the identifier the prev control currently points at.
func (c *Carousel) PrevTarget() int {
	if c.state == nil {
		return unset
	}
	return c.state.PrevTarget()
}

// NextTarget returns the identifier the next control currently points at.
func (c *Carousel) NextTarget() int {
	if c.state == nil {
		return unset
	}
	return c.state.NextTarget()
}

// Pending reports whether an auto-advance timer is armed.
func (c *Carousel) Pending() bool { return c.scheduler.Pending() }

// Bound returns the number of live control subscriptions.
func (c *Carousel) Bound() int { return c.binder.Bound() }

// Update reacts to timer, key and mouse messages.
func (c *Carousel) Update(msg tea.Msg) (*Carousel, tea.Cmd) {
	if !c.built {
		return c, nil
	}
	switch msg := msg.(type) {
	case AdvanceMsg:
		if c.scheduler.Accept(msg) {
			return c, c.advance()
		}
	case tea.KeyMsg:
		return c, c.handleKey(msg)
	case tea.MouseMsg:
		if msg.Action == tea.MouseActionRelease && msg.Button == tea.MouseButtonLeft {
			if ctl := c.layer.ControlAt(msg.X, msg.Y); ctl != nil {
				return c, c.events.Dispatch(ctl)
			}
		}
	}
	return c, nil
}

// advance steps to the currently published next target. The timer is
// re-armed even when the step is a no-op.
func (c *Carousel) advance() tea.Cmd {
	el, cmd := c.TransitionTo(c.state.NextTarget())
	if el == nil && c.opts.Rotate {
		cmd = c.scheduler.Reset(c.opts.Timeout)
	}
	return cmd
}

func (c *Carousel) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, c.keys.Prev):
		if c.prev != nil {
			return c.events.Dispatch(c.prev)
		}
	case key.Matches(msg, c.keys.Next):
		if c.next != nil {
			return c.events.Dispatch(c.next)
		}
	case key.Matches(msg, c.keys.Dot):
		s := msg.String()
		if len(s) == 1 {
			if dot, ok := c.dots.Get(int(s[0]-'1')); ok {
				return c.events.Dispatch(dot.Element)
			}
		}
	}
	return nil
}

// View renders the container through the layer.
func (c *Carousel) View() string {
	if c.layer == nil {
		return ""
	}
	return c.layer.Render()
}
