// Package mock provides a scripted in-memory driver for testing the
// engine without a live host application.
package mock

import (
	"fmt"
	"sync"
	"time"

	"github.com/uipilot-dev/uipilot/pkg/core"
)

// ElementSpec scripts one addressable element.
type ElementSpec struct {
	ID     string
	Value  string
	Error  string
	Bounds core.Bounds

	// NoValue/NoError withhold the respective capability.
	NoValue bool
	NoError bool

	// AppearAfter keeps the element invisible until that much time has
	// passed since the driver was created.
	AppearAfter time.Duration

	// ScrollOffset places the element that many pixels along the root
	// container's axis; it only becomes visible once the container has
	// been scrolled far enough to bring it inside the viewport.
	ScrollOffset float64

	// Duplicates adds that many extra copies to every Locate result,
	// simulating an ambiguous identifier.
	Duplicates int
}

// ContainerSpec scripts the root scrollable container.
type ContainerSpec struct {
	ID       string
	Axis     core.ScrollAxis
	Viewport float64 // Visible extent along the axis
	Bounds   core.Bounds
}

// Config configures the mock driver.
type Config struct {
	Elements []ElementSpec
	Root     *ContainerSpec
}

// Driver is a scripted implementation of core.Driver.
type Driver struct {
	mu        sync.Mutex
	cfg       Config
	start     time.Time
	scrollPos float64
	values    map[string]string
	journal   []string
}

// New creates a mock driver. The appearance clock starts now.
func New(cfg Config) *Driver {
	d := &Driver{
		cfg:    cfg,
		start:  time.Now(),
		values: make(map[string]string),
	}
	for _, spec := range cfg.Elements {
		d.values[spec.ID] = spec.Value
	}
	return d
}

// Locate implements core.Driver.
func (d *Driver) Locate(id string) ([]core.Element, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.cfg.Root != nil && d.cfg.Root.ID == id {
		return []core.Element{d.rootElement()}, nil
	}

	var matches []core.Element
	for _, spec := range d.cfg.Elements {
		if spec.ID != id || !d.visible(spec) {
			continue
		}
		el := core.Element{ID: spec.ID, Bounds: spec.Bounds}
		for i := 0; i <= spec.Duplicates; i++ {
			matches = append(matches, el)
		}
	}
	return matches, nil
}

func (d *Driver) visible(spec ElementSpec) bool {
	if time.Since(d.start) < spec.AppearAfter {
		return false
	}
	if spec.ScrollOffset > 0 {
		viewport := 0.0
		if d.cfg.Root != nil {
			viewport = d.cfg.Root.Viewport
		}
		return d.scrollPos+viewport >= spec.ScrollOffset
	}
	return true
}

func (d *Driver) rootElement() core.Element {
	return core.Element{
		ID:         d.cfg.Root.ID,
		Bounds:     d.cfg.Root.Bounds,
		Scrollable: true,
		Axis:       d.cfg.Root.Axis,
	}
}

// Tap implements core.Driver.
func (d *Driver) Tap(el core.Element) error {
	d.record("tap:" + el.ID)
	return nil
}

// DoubleTap implements core.Driver.
func (d *Driver) DoubleTap(el core.Element) error {
	d.record("doubleTap:" + el.ID)
	return nil
}

// LongPress implements core.Driver.
func (d *Driver) LongPress(el core.Element) error {
	d.record("longPress:" + el.ID)
	return nil
}

// Drag implements core.Driver. Dragging the root container advances its
// scroll position by the forward component of the offset along its axis.
func (d *Driver) Drag(el core.Element, offset core.Offset) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.journal = append(d.journal, fmt.Sprintf("drag:%s:%g,%g", el.ID, offset.DX, offset.DY))

	if d.cfg.Root != nil && el.ID == d.cfg.Root.ID {
		var delta float64
		switch d.cfg.Root.Axis {
		case core.AxisDown:
			delta = -offset.DY
		case core.AxisUp:
			delta = offset.DY
		case core.AxisLeft:
			delta = -offset.DX
		case core.AxisRight:
			delta = offset.DX
		}
		d.scrollPos += delta
		if d.scrollPos < 0 {
			d.scrollPos = 0
		}
	}
	return nil
}

// ReadValue implements core.Driver.
func (d *Driver) ReadValue(el core.Element) (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	spec, ok := d.spec(el.ID)
	if !ok || spec.NoValue {
		return "", fmt.Errorf("element %q has no value to read", el.ID)
	}
	return d.values[el.ID], nil
}

// WriteValue implements core.Driver.
func (d *Driver) WriteValue(el core.Element, value string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	spec, ok := d.spec(el.ID)
	if !ok || spec.NoValue {
		return fmt.Errorf("element %q does not accept a value", el.ID)
	}
	d.values[el.ID] = value
	d.journal = append(d.journal, fmt.Sprintf("writeValue:%s=%s", el.ID, value))
	return nil
}

// ReadError implements core.Driver.
func (d *Driver) ReadError(el core.Element) (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	spec, ok := d.spec(el.ID)
	if !ok || spec.NoError {
		return "", fmt.Errorf("element %q has no error field", el.ID)
	}
	return spec.Error, nil
}

// Flash implements core.Driver.
func (d *Driver) Flash(el core.Element) error {
	d.record("flash:" + el.ID)
	return nil
}

// ScrollIntoView implements core.Driver.
func (d *Driver) ScrollIntoView(el core.Element) error {
	d.record("scrollIntoView:" + el.ID)
	return nil
}

// ScrollRoot implements core.Driver.
func (d *Driver) ScrollRoot() (core.Element, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.cfg.Root == nil {
		return core.Element{}, false
	}
	return d.rootElement(), true
}

// Screenshot implements core.Driver with a minimal valid PNG (1x1 pixel).
func (d *Driver) Screenshot() ([]byte, error) {
	return []byte{
		0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A,
		0x00, 0x00, 0x00, 0x0D, 0x49, 0x48, 0x44, 0x52,
		0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01,
		0x08, 0x06, 0x00, 0x00, 0x00, 0x1F, 0x15, 0xC4,
		0x89, 0x00, 0x00, 0x00, 0x0A, 0x49, 0x44, 0x41,
		0x54, 0x78, 0x9C, 0x63, 0x00, 0x01, 0x00, 0x00,
		0x05, 0x00, 0x01, 0x0D, 0x0A, 0x2D, 0xB4, 0x00,
		0x00, 0x00, 0x00, 0x49, 0x45, 0x4E, 0x44, 0xAE,
		0x42, 0x60, 0x82,
	}, nil
}

func (d *Driver) spec(id string) (ElementSpec, bool) {
	for _, spec := range d.cfg.Elements {
		if spec.ID == id {
			return spec, true
		}
	}
	return ElementSpec{}, false
}

func (d *Driver) record(entry string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.journal = append(d.journal, entry)
}

// Journal returns a copy of every gesture and value call the driver saw,
// in order.
func (d *Driver) Journal() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.journal...)
}

// ScrollPos returns the root container's current scroll position.
func (d *Driver) ScrollPos() float64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.scrollPos
}

// Value returns the current value of an element.
func (d *Driver) Value(id string) string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.values[id]
}
