// Package fault defines the closed set of bring-up failure kinds shared by
// the gamepad and bluetooth subsystems. Only gamepad driver errors and the
// two "missing hardware" conditions get a dedicated kind; every other
// subsystem failure travels as a plain wrapped error with context.
package fault

import (
	"errors"
	"fmt"
)

// Kind is one bring-up failure classification.
type Kind int

const (
	// UsbNotSupported means the platform has no joystick backend.
	UsbNotSupported Kind = iota
	// UsbDeviceInitialization means a joystick reported an unusable
	// axis-to-button mapping.
	UsbDeviceInitialization
	// UsbInitialization is any other driver failure; the original error
	// is carried opaquely in Cause.
	UsbInitialization
	// MissingGamepad means the driver opened cleanly but found no devices.
	MissingGamepad
	// MissingBleAdapter means adapter discovery returned zero adapters.
	MissingBleAdapter
)

func (k Kind) String() string {
	switch k {
	case UsbNotSupported:
		return "USB not supported"
	case UsbDeviceInitialization:
		return "USB device initialization error"
	case UsbInitialization:
		return "USB initialization error"
	case MissingGamepad:
		return "no USB gamepads found"
	case MissingBleAdapter:
		return "no BLE adapters found"
	default:
		return fmt.Sprintf("fault.Kind(%d)", int(k))
	}
}

// Error is a classified bring-up failure. Cause is set only for
// UsbInitialization, preserving the driver's message without
// re-interpreting it. Every Error is fatal to bring-up.
type Error struct {
	Kind  Kind
	Cause error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Kind, e.Cause)
	}
	return e.Kind.String()
}

func (e *Error) Unwrap() error { return e.Cause }

// KindOf reports the classification carried by err, walking any wrapping.
func KindOf(err error) (Kind, bool) {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind, true
	}
	return 0, false
}
