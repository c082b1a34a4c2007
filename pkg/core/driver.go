// Package core provides the execution model types for uipilot: the driver
// capability boundary, element geometry, and the engine error taxonomy.
package core

// Driver is the gesture/value capability surface the engine consumes.
// The engine never inspects the host UI tree directly; everything it knows
// about an element arrives through this boundary.
//
// Gesture calls act at the element's geometric center. Flash is purely
// cosmetic feedback and must never affect element state.
type Driver interface {
	// Locate returns every element currently matching the identifier.
	// An empty slice is not an error; the locator decides what absence means.
	Locate(id string) ([]Element, error)

	// Gestures
	Tap(el Element) error
	DoubleTap(el Element) error
	LongPress(el Element) error
	Drag(el Element, offset Offset) error

	// Values
	ReadValue(el Element) (string, error)
	WriteValue(el Element, value string) error
	ReadError(el Element) (string, error)

	// Affordances
	Flash(el Element) error
	ScrollIntoView(el Element) error

	// ScrollRoot returns the outermost scrollable container, if any.
	ScrollRoot() (Element, bool)

	// Screenshot captures the current screen as PNG. The engine attaches
	// the bytes to report entries and never interprets them.
	Screenshot() ([]byte, error)
}

// Element is the engine's view of one addressable target in the host UI.
type Element struct {
	ID         string     `json:"id"`
	Bounds     Bounds     `json:"bounds"`
	Scrollable bool       `json:"scrollable,omitempty"`
	Axis       ScrollAxis `json:"axis,omitempty"`
}

// Bounds represents element position and size
type Bounds struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Center returns the center point of the bounds
func (b Bounds) Center() (float64, float64) {
	return b.X + b.Width/2, b.Y + b.Height/2
}

// Contains checks if a point is within the bounds
func (b Bounds) Contains(x, y float64) bool {
	return x >= b.X && x < b.X+b.Width && y >= b.Y && y < b.Y+b.Height
}

// Offset is a drag displacement vector in pixels.
type Offset struct {
	DX float64 `json:"dx"`
	DY float64 `json:"dy"`
}

// ScrollAxis is the direction content flows in a scrollable container.
type ScrollAxis int

const (
	AxisDown ScrollAxis = iota // Vertical, content grows downward (the common case)
	AxisUp
	AxisLeft
	AxisRight
)

// String returns the string representation of ScrollAxis
func (a ScrollAxis) String() string {
	switch a {
	case AxisDown:
		return "down"
	case AxisUp:
		return "up"
	case AxisLeft:
		return "left"
	case AxisRight:
		return "right"
	default:
		return "unknown"
	}
}

// DragOffset computes the drag vector that moves content forward along the
// axis by increment pixels (backward when increment is negative). The
/// down axis inverts the vertical sign: revealing content further down
// means dragging up. Left/right map to the horizontal sign directly.
func (a ScrollAxis) DragOffset(increment float64) Offset {
	switch a {
	case AxisDown:
		return Offset{DY: -increment}
	case AxisUp:
		return Offset{DY: increment}
	case AxisLeft:
		return Offset{DX: -increment}
	case AxisRight:
		return Offset{DX: increment}
	default:
		return Offset{}
	}
}
