package carousel

import tea "github.com/charmbracelet/bubbletea"

// Role names a navigation control.
type Role int

const (
	RolePrev Role = iota
	RoleNext
	RoleDot
)

func (r Role) String() string {
	switch r {
	case RolePrev:
		return "prev"
	case RoleNext:
		return "next"
	case RoleDot:
		return "dot"
	default:
		return "unknown"
	}
}

// Element is a view node that can be marked active.
type Element interface {
	SetActive(active bool)
}

// Control is a clickable node that carries a published slide identifier.
type Control interface {
	Role() Role
	SetTarget(id int)
	Target() int
}

// DotElement is a pagination item: its enclosing item takes the active
// marker and the item itself is the click target.
type DotElement interface {
	Element
	Control
}

// Layer is the markup side of the carousel. It owns view nodes; the
// carousel only marks them and publishes targets onto them.
type Layer interface {
	// Children returns the container's slide nodes in document order.
	Children() []Element
	// Pagination generates one dot per slide.
	Pagination(n int) []DotElement
	// Control returns the prev or next control, generating it on first use.
	Control(role Role) Control
	// ControlAt hit-tests a mouse position against the rendered controls.
	ControlAt(x, y int) Control
	Render() string
	// Release drops generated pagination and controls.
	Release()
}

// Handle identifies one event subscription.
type Handle int

// Handler runs when its control is clicked.
type Handler func() tea.Cmd

// Events is the subscription surface the binder attaches to.
type Events interface {
	Subscribe(c Control, h Handler) Handle
	Unsubscribe(h Handle)
	Dispatch(c Control) tea.Cmd
}
