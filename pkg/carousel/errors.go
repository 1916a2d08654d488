package carousel

import "errors"

var (
	ErrNoContainer        = errors.New("carousel needs a container layer")
	ErrNoSlides           = errors.New("container has no slides")
	ErrPaginationMismatch = errors.New("pagination count does not match slide count")
	ErrControlRole        = errors.New("layer returned no control for the role")
	ErrInitialSlide       = errors.New("initial slide out of range")
	ErrAlreadyBuilt       = errors.New("carousel already built")
	ErrNotUnset           = errors.New("state already initialized")
)
