package carousel

import (
	"errors"
	"testing"
)

func TestSlideRegistryAssignsPositions(t *testing.T) {
	layer := newFakeLayer(4)
	r, err := NewSlideRegistry(layer.Children())
	if err != nil {
		t.Fatalf("NewSlideRegistry: %v", err)
	}
	if r.Len() != 4 {
		t.Fatalf("Len = %d, want 4", r.Len())
	}
	for i := 0; i < 4; i++ {
		s, ok := r.Get(i)
		if !ok || s.ID != i || s.Element != layer.slides[i] {
			t.Errorf("Get(%d) = %+v, %v", i, s, ok)
		}
	}
	if _, ok := r.Get(4); ok {
		t.Error("Get past the end succeeded")
	}
	r.Clear()
	if r.Len() != 0 {
		t.Error("Clear left slides behind")
	}
}

func TestSlideRegistryRejectsEmpty(t *testing.T) {
	if _, err := NewSlideRegistry(nil); !errors.Is(err, ErrNoSlides) {
		t.Errorf("Expected ErrNoSlides, got %v", err)
	}
	if _, err := NewSlideRegistry([]Element{&fakeSlide{}, nil}); !errors.Is(err, ErrNoSlides) {
		t.Errorf("Expected ErrNoSlides for a nil element, got %v", err)
	}
}

func TestDotRegistryMatchesSlides(t *testing.T) {
	layer := newFakeLayer(3)
	slides, _ := NewSlideRegistry(layer.Children())

	dots, err := NewDotRegistry(layer.Pagination(3), slides)
	if err != nil {
		t.Fatalf("NewDotRegistry: %v", err)
	}
	if dots.Len() != slides.Len() {
		t.Errorf("dot count %d != slide count %d", dots.Len(), slides.Len())
	}

	if _, err := NewDotRegistry(layer.Pagination(2), slides); !errors.Is(err, ErrPaginationMismatch) {
		t.Errorf("Expected ErrPaginationMismatch, got %v", err)
	}

	var none *DotRegistry
	if none.Len() != 0 || none.All() != nil {
		t.Error("nil registry should be empty")
	}
	if _, ok := none.Get(0); ok {
		t.Error("nil registry returned a dot")
	}
}

func TestStateInitializeOnlyFromUnset(t *testing.T) {
	layer := newFakeLayer(2)
	slides, _ := NewSlideRegistry(layer.Children())
	s := NewState(slides, nil, nil, nil)

	if s.CurrentSlide() != nil {
		t.Error("Unset state has a current slide")
	}
	if s.TransitionTo(1) != nil {
		t.Error("Transition from Unset should be a no-op")
	}
	if err := s.Initialize(1); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	if !errors.Is(s.Initialize(0), ErrNotUnset) {
		t.Error("Second Initialize should fail")
	}
	if !s.IsActive(1) || s.IsActive(0) {
		t.Error("Derived marker disagrees with the active id")
	}

	s.Teardown()
	if _, ok := s.ActiveID(); ok {
		t.Error("Teardown left an active id")
	}
	if err := s.Initialize(0); err != nil {
		t.Errorf("Initialize after teardown: %v", err)
	}
}
