package carousel

// unset marks a state with no active slide.
const unset = -1

// State is the active-slide state machine. It is the only writer of the
// active identifier and of the prev/next targets.
type State struct {
	slides *SlideRegistry
	dots   *DotRegistry

	active     int
	prevTarget int
	nextTarget int

	// prev and next are nil when controls are disabled; targets are still
	// tracked so auto-advance works without visible controls.
	prev Control
	next Control
}

// NewState returns an Unset state machine over the given registries.
// dots may be nil when pagination is disabled.
func NewState(slides *SlideRegistry, dots *DotRegistry, prev, next Control) *State {
	return &State{
		slides:     slides,
		dots:       dots,
		active:     unset,
		prevTarget: unset,
		nextTarget: unset,
		prev:       prev,
		next:       next,
	}
}

// Initialize activates the first slide. It is the only way out of Unset.
func (s *State) Initialize(initialID int) error {
	if s.active != unset {
		return ErrNotUnset
	}
	if _, ok := s.slides.Get(initialID); !ok {
		return ErrInitialSlide
	}
	s.apply(initialID, true)
	s.publish(initialID)
	s.active = initialID
	return nil
}

// TransitionTo moves the active marker to targetID and returns the newly
// active element. Re-requesting the active slide or an unknown ID is a
// silent no-op and returns nil.
func (s *State) TransitionTo(targetID int) Element {
	if s.active == unset || targetID == s.active {
		return nil
	}
	slide, ok := s.slides.Get(targetID)
	if !ok {
		return nil
	}
	s.apply(s.active, false)
	s.apply(targetID, true)
	s.publish(targetID)
	s.active = targetID
	return slide.Element
}

// CurrentSlide returns the active element, or nil while Unset.
func (s *State) CurrentSlide() Element {
	slide, ok := s.slides.Get(s.active)
	if !ok {
		return nil
	}
	return slide.Element
}

// ActiveID returns the active identifier and whether one is set.
func (s *State) ActiveID() (int, bool) {
	return s.active, s.active != unset
}

// IsActive is the derived marker for slide and dot id.
func (s *State) IsActive(id int) bool {
	return s.active != unset && id == s.active
}

// PrevTarget is the currently published previous-slide target.
func (s *State) PrevTarget() int { return s.prevTarget }

// NextTarget is the currently published next-slide target.
func (s *State) NextTarget() int { return s.nextTarget }

// Len returns the slide count.
func (s *State) Len() int { return s.slides.Len() }

// Teardown clears all markers and returns to Unset.
func (s *State) Teardown() {
	if s.active != unset {
		s.apply(s.active, false)
	}
	s.active = unset
	s.prevTarget = unset
	s.nextTarget = unset
}

// apply pushes the marker for id onto the slide and its paired dot.
func (s *State) apply(id int, active bool) {
	if slide, ok := s.slides.Get(id); ok {
		slide.Element.SetActive(active)
	}
	if dot, ok := s.dots.Get(id); ok {
		dot.Element.SetActive(active)
	}
}

func (s *State) publish(id int) {
	n := s.slides.Len()
	s.prevTarget = id - 1
	if id == 0 {
		s.prevTarget = n - 1
	}
	s.nextTarget = id + 1
	if id == n-1 {
		s.nextTarget = 0
	}
	if s.prev != nil {
		s.prev.SetTarget(s.prevTarget)
	}
	if s.next != nil {
		s.next.SetTarget(s.nextTarget)
	}
}
