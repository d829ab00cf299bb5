package ble

import (
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"tinygo.org/x/bluetooth"
)

// scanStartGrace is how long StartScan waits for the scan goroutine to
// report an immediate failure before declaring the scan healthy.
const scanStartGrace = 250 * time.Millisecond

// central wraps one tinygo adapter and accumulates deduplicated scan
// results for later enumeration.
type central struct {
	adapter *bluetooth.Adapter
	scan    func(emit func(name, addr string)) error
	grace   time.Duration

	mu    sync.Mutex
	seen  map[string]bool
	found []Peripheral
}

func newCentral(adapter *bluetooth.Adapter) *central {
	c := &central{
		adapter: adapter,
		grace:   scanStartGrace,
		seen:    make(map[string]bool),
	}
	c.scan = c.adapterScan
	return c
}

func (c *central) adapterScan(emit func(name, addr string)) error {
	return c.adapter.Scan(func(_ *bluetooth.Adapter, result bluetooth.ScanResult) {
		emit(result.LocalName(), result.Address.String())
	})
}

// StartScan runs the scan on its own goroutine; the underlying call
// blocks for the life of the scan, and this process scans until exit. A
// scan that fails to start reports its error within the grace window so
// bring-up can fail fast; a collapse after that is logged, since nobody
// is left to consume it.
func (c *central) StartScan() error {
	errCh := make(chan error, 1)
	var reported atomic.Bool
	go func() {
		err := c.scan(c.record)
		if reported.CompareAndSwap(false, true) {
			errCh <- err
			return
		}
		if err != nil {
			slog.Warn("ble scan stopped", "err", err)
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-time.After(c.grace):
		if reported.CompareAndSwap(false, true) {
			return nil
		}
		// The scan failed in the same instant the grace timer fired.
		return <-errCh
	}
}

// record stores a result once per address. A missing advertised name is
// kept as the empty string.
func (c *central) record(name, addr string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.seen[addr] {
		return
	}
	c.seen[addr] = true
	c.found = append(c.found, Peripheral{Name: name, Address: addr})
}

func (c *central) Peripherals() []Peripheral {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Peripheral, len(c.found))
	copy(out, c.found)
	return out
}
