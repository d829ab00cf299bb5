// Package gamepad discovers joystick devices through the kernel joystick
// interface and polls their events without blocking.
package gamepad

import (
	"errors"
	"time"

	"github.com/blepad/blepad/internal/fault"
)

// Sentinel driver errors. Init classifies them into the fault taxonomy;
// anything else the driver returns is treated as an opaque cause.
var (
	// ErrNotSupported is returned by Open on platforms without a
	// joystick backend.
	ErrNotSupported = errors.New("gamepad: not supported on this platform")
	// ErrInvalidAxisMap is returned when a device reports an
	// axis-to-button mapping the driver cannot use.
	ErrInvalidAxisMap = errors.New("gamepad: invalid axis-to-button mapping")
)

// Device describes one discovered joystick.
type Device struct {
	ID    int
	Name  string
	Power string
}

// Event is a single decoded joystick event.
type Event struct {
	Device int
	Type   uint8
	Index  uint8
	Value  int16
	Time   time.Time
}

// Driver is the platform joystick backend.
type Driver interface {
	// Devices returns the joysticks found at open time.
	Devices() []Device
	// Next returns the next buffered event, or ok=false when nothing
	// is pending on any device. It never blocks.
	Next() (Event, bool)
	Close() error
}

// Set owns the opened driver for the life of the process.
type Set struct {
	drv Driver
}

// Init opens the platform driver and enforces that at least one joystick
// is present. An empty device set is fault.MissingGamepad even though the
// driver itself opened cleanly.
func Init() (*Set, error) {
	return initFrom(Open)
}

func initFrom(open func() (Driver, error)) (*Set, error) {
	drv, err := open()
	if err != nil {
		return nil, classify(err)
	}
	if len(drv.Devices()) == 0 {
		_ = drv.Close()
		return nil, &fault.Error{Kind: fault.MissingGamepad}
	}
	return &Set{drv: drv}, nil
}

// classify maps a driver error onto the closed taxonomy. Unknown errors
// become UsbInitialization with the original preserved as the cause.
func classify(err error) *fault.Error {
	switch {
	case errors.Is(err, ErrNotSupported):
		return &fault.Error{Kind: fault.UsbNotSupported}
	case errors.Is(err, ErrInvalidAxisMap):
		return &fault.Error{Kind: fault.UsbDeviceInitialization}
	default:
		return &fault.Error{Kind: fault.UsbInitialization, Cause: err}
	}
}

// Devices lists the joysticks captured at bring-up.
func (s *Set) Devices() []Device { return s.drv.Devices() }

// Next polls for the next buffered event across all joysticks.
func (s *Set) Next() (Event, bool) { return s.drv.Next() }

func (s *Set) Close() error { return s.drv.Close() }
