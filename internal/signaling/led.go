package signaling

import (
	"log/slog"
	"os"
	"path/filepath"
)

const sysLEDDir = "/sys/class/leds"

// LEDSignaler drives a sysfs LED: heartbeat blink while bring-up runs,
// solid on for success, off for failure. Writes are best effort, same as
// the NATS backend.
type LEDSignaler struct {
	dir string
	log *slog.Logger
}

// NewLED signals on the named LED under /sys/class/leds.
func NewLED(name string, log *slog.Logger) *LEDSignaler {
	return &LEDSignaler{dir: filepath.Join(sysLEDDir, name), log: log}
}

func (s *LEDSignaler) Progress() {
	s.write("trigger", "heartbeat")
}

func (s *LEDSignaler) Success() {
	s.write("trigger", "none")
	s.write("brightness", "1")
}

func (s *LEDSignaler) Failure() {
	s.write("trigger", "none")
	s.write("brightness", "0")
}

func (s *LEDSignaler) write(attr, value string) {
	path := filepath.Join(s.dir, attr)
	if err := os.WriteFile(path, []byte(value), 0o644); err != nil {
		s.log.Warn("writing led attribute", "path", path, "err", err)
	}
}
