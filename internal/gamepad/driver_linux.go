package gamepad

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unsafe"

	"golang.org/x/sys/unix"
)

const inputDir = "/dev/input"

// Joystick interface ioctls (linux/joystick.h).
const (
	jsiocgAxes    = 0x80016a11
	jsiocgButtons = 0x80016a12
	jsiocgName    = 0x80006a13 + (128 << 16)
	jsiocgAxMap   = 0x80406a32

	axMapLen = 64   // ABS_CNT
	absMax   = 0x3f // ABS_MAX, highest valid axis code
)

type linuxDriver struct {
	devices []Device
	fds     []int
	cursor  int

	// clockAnchor pins the kernel's millisecond event clock to wall
	// time once the first event arrives.
	clockAnchor time.Time
}

// Open scans /dev/input for js* nodes and interrogates each one. Nodes
// that cannot be opened (typically a permissions gap) are skipped; the
// device-set check in Init decides whether that leaves us empty-handed.
//
// The fds stay raw and non-blocking instead of going through os.File:
// a file handed to the runtime poller parks the reader until data
// arrives, and Next must come back with EAGAIN from an idle stick.
func Open() (Driver, error) {
	entries, err := os.ReadDir(inputDir)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", inputDir, err)
	}

	d := &linuxDriver{}
	for _, entry := range entries {
		if !strings.HasPrefix(entry.Name(), "js") {
			continue
		}
		path := filepath.Join(inputDir, entry.Name())
		fd, err := unix.Open(path, unix.O_RDONLY|unix.O_NONBLOCK|unix.O_CLOEXEC, 0)
		if err != nil {
			continue
		}
		dev, err := describe(fd, path, len(d.devices))
		if err != nil {
			_ = unix.Close(fd)
			_ = d.Close()
			return nil, err
		}
		d.fds = append(d.fds, fd)
		d.devices = append(d.devices, dev)
	}
	return d, nil
}

// describe interrogates one joystick node for its name, control counts
// and axis map.
func describe(fd int, path string, id int) (Device, error) {
	name, err := ioctlString(fd, jsiocgName)
	if err != nil {
		return Device{}, fmt.Errorf("reading name of %s: %w", path, err)
	}

	var axes, buttons uint8
	if err := ioctl(fd, jsiocgAxes, unsafe.Pointer(&axes)); err != nil {
		return Device{}, fmt.Errorf("reading axis count of %s: %w", path, err)
	}
	if err := ioctl(fd, jsiocgButtons, unsafe.Pointer(&buttons)); err != nil {
		return Device{}, fmt.Errorf("reading button count of %s: %w", path, err)
	}

	var axMap [axMapLen]uint8
	if err := ioctl(fd, jsiocgAxMap, unsafe.Pointer(&axMap[0])); err != nil {
		return Device{}, fmt.Errorf("reading axis map of %s: %w", path, err)
	}
	if err := validateAxisMap(axMap, axes); err != nil {
		return Device{}, fmt.Errorf("%s: %w", path, err)
	}

	return Device{ID: id, Name: name, Power: powerState(path)}, nil
}

// validateAxisMap rejects a device whose reported axes point outside the
// valid ABS code range.
func validateAxisMap(axMap [axMapLen]uint8, axes uint8) error {
	if int(axes) > axMapLen {
		return fmt.Errorf("%w: %d axes reported", ErrInvalidAxisMap, axes)
	}
	for i := 0; i < int(axes); i++ {
		if axMap[i] > absMax {
			return fmt.Errorf("%w: axis %d maps to code %#x", ErrInvalidAxisMap, i, axMap[i])
		}
	}
	return nil
}

// powerState reads a battery level from sysfs when the stick exposes one.
// Wired sticks have no power_supply node.
func powerState(devPath string) string {
	pattern := filepath.Join("/sys/class/input", filepath.Base(devPath),
		"device", "power_supply", "*", "capacity")
	matches, err := filepath.Glob(pattern)
	if err != nil || len(matches) == 0 {
		return "wired"
	}
	raw, err := os.ReadFile(matches[0])
	if err != nil {
		return "unknown"
	}
	return strings.TrimSpace(string(raw)) + "%"
}

// Next round-robins the open nodes. The fds are non-blocking, so an idle
// stick reads EAGAIN and we move on.
func (d *linuxDriver) Next() (Event, bool) {
	for range d.fds {
		id := d.cursor
		fd := d.fds[id]
		d.cursor = (d.cursor + 1) % len(d.fds)

		var buf [8]byte
		n, err := unix.Read(fd, buf[:])
		if err != nil || n < len(buf) {
			continue
		}
		ev, ms := decodeEvent(buf)
		ev.Device = id
		ev.Time = d.stamp(ms)
		return ev, true
	}
	return Event{}, false
}

// decodeEvent unpacks one js_event record: u32 time (ms), s16 value,
// u8 type, u8 number, little-endian.
func decodeEvent(buf [8]byte) (Event, uint32) {
	ev := Event{
		Value: int16(binary.LittleEndian.Uint16(buf[4:6])),
		Type:  buf[6],
		Index: buf[7],
	}
	return ev, binary.LittleEndian.Uint32(buf[0:4])
}

// stamp converts a kernel event timestamp to wall time, anchoring the
// kernel's millisecond clock on first use so event spacing is preserved.
func (d *linuxDriver) stamp(ms uint32) time.Time {
	if d.clockAnchor.IsZero() {
		d.clockAnchor = time.Now().Add(-time.Duration(ms) * time.Millisecond)
	}
	return d.clockAnchor.Add(time.Duration(ms) * time.Millisecond)
}

func (d *linuxDriver) Devices() []Device { return d.devices }

func (d *linuxDriver) Close() error {
	var first error
	for _, fd := range d.fds {
		if err := unix.Close(fd); err != nil && first == nil {
			first = err
		}
	}
	d.fds = nil
	return first
}

func ioctl(fd int, req uintptr, dest unsafe.Pointer) error {
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, uintptr(fd), req, uintptr(dest))
	if errno != 0 {
		return errno
	}
	return nil
}

func ioctlString(fd int, req uintptr) (string, error) {
	buf := make([]byte, 128)
	if err := ioctl(fd, req, unsafe.Pointer(&buf[0])); err != nil {
		return "", err
	}
	if i := bytes.IndexByte(buf, 0); i >= 0 {
		buf = buf[:i]
	}
	return string(buf), nil
}
