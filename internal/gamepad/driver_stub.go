//go:build !linux

package gamepad

// Open reports that no joystick backend exists for this platform.
func Open() (Driver, error) {
	return nil, ErrNotSupported
}
