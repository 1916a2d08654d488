package ui

import (
	"github.com/Dicklesworthstone/tumble/pkg/carousel"
	"github.com/Dicklesworthstone/tumble/pkg/deck"
)

// SlideView is the view node for one slide.
type SlideView struct {
	Slide  deck.Slide
	Index  int
	active bool
}

func (s *SlideView) SetActive(active bool) { s.active = active }

// Active reports the marker last applied by the carousel.
func (s *SlideView) Active() bool { return s.active }

// DotView is one pagination item. The target it carries is the 0-based
// slide identifier; numbering shown to users is 1-based.
type DotView struct {
	target int
	active bool
}

func (d *DotView) Role() carousel.Role   { return carousel.RoleDot }
func (d *DotView) SetTarget(id int)      { d.target = id }
func (d *DotView) Target() int           { return d.target }
func (d *DotView) SetActive(active bool) { d.active = active }
func (d *DotView) Active() bool          { return d.active }

// ControlView is the prev or next control.
type ControlView struct {
	Label  string
	role   carousel.Role
	target int
}

func (c *ControlView) Role() carousel.Role { return c.role }
func (c *ControlView) SetTarget(id int)    { c.target = id }
func (c *ControlView) Target() int         { return c.target }
