package carousel

import (
	"fmt"
	"time"
)

// DefaultTimeout is the auto-advance interval when none is configured.
const DefaultTimeout = 5000 * time.Millisecond

// Options configures a Carousel.
type Options struct {
	InitialSlide   int
	Rotate         bool
	Timeout        time.Duration
	ShowControls   bool
	ShowPagination bool
}

// DefaultOptions returns the options a bare carousel is built with.
func DefaultOptions() Options {
	return Options{
		InitialSlide:   0,
		Rotate:         true,
		Timeout:        DefaultTimeout,
		ShowControls:   true,
		ShowPagination: true,
	}
}

// Validate reports option values that can never be honored.
func (o Options) Validate() error {
	if o.InitialSlide < 0 {
		return fmt.Errorf("initial slide %d: %w", o.InitialSlide, ErrInitialSlide)
	}
	if o.Rotate && o.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive when rotating, got %s", o.Timeout)
	}
	return nil
}
