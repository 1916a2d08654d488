package carousel

import "fmt"

// Slide pairs a stable identifier with its view node.
type Slide struct {
	ID      int
	Element Element
}

// Dot is the pagination control paired with the slide of the same ID.
type Dot struct {
	ID      int
	Element DotElement
}

// SlideRegistry holds slides in document order. IDs are positions.
type SlideRegistry struct {
	slides []Slide
}

// NewSlideRegistry assigns IDs 0..N-1 to the given nodes.
func NewSlideRegistry(children []Element) (*SlideRegistry, error) {
	if len(children) == 0 {
		return nil, ErrNoSlides
	}
	slides := make([]Slide, len(children))
	for i, el := range children {
		if el == nil {
			return nil, fmt.Errorf("slide %d has no element: %w", i, ErrNoSlides)
		}
		slides[i] = Slide{ID: i, Element: el}
	}
	return &SlideRegistry{slides: slides}, nil
}

// Len returns the number of slides; zero once cleared.
func (r *SlideRegistry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.slides)
}

// Get looks up a slide by ID.
func (r *SlideRegistry) Get(id int) (Slide, bool) {
	if id < 0 || id >= r.Len() {
		return Slide{}, false
	}
	return r.slides[id], true
}

// Clear forgets every slide.
func (r *SlideRegistry) Clear() {
	if r != nil {
		r.slides = nil
	}
}

// DotRegistry holds pagination dots parallel to a SlideRegistry.
type DotRegistry struct {
	dots []Dot
}

// NewDotRegistry pairs dots with slides by position. The counts must agree.
func NewDotRegistry(items []DotElement, slides *SlideRegistry) (*DotRegistry, error) {
	if len(items) != slides.Len() {
		return nil, fmt.Errorf("%d dots for %d slides: %w", len(items), slides.Len(), ErrPaginationMismatch)
	}
	dots := make([]Dot, len(items))
	for i, el := range items {
		if el == nil {
			return nil, fmt.Errorf("dot %d has no element: %w", i, ErrPaginationMismatch)
		}
		dots[i] = Dot{ID: i, Element: el}
	}
	return &DotRegistry{dots: dots}, nil
}

// Len returns the number of dots. A nil registry means pagination is off.
func (r *DotRegistry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.dots)
}

// Get looks up a dot by ID.
func (r *DotRegistry) Get(id int) (Dot, bool) {
	if id < 0 || id >= r.Len() {
		return Dot{}, false
	}
	return r.dots[id], true
}

// All returns the dots in ID order.
func (r *DotRegistry) All() []Dot {
	if r == nil {
		return nil
	}
	return r.dots
}

// Clear forgets every dot.
func (r *DotRegistry) Clear() {
	if r != nil {
		r.dots = nil
	}
}
