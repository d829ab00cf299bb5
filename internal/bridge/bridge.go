// Package bridge runs the bring-up sequence that connects the local
// gamepads to the BLE side, then relays gamepad events until shutdown.
// Bring-up is strictly ordered and fail-fast: gamepads, then the BLE
// manager, then adapter selection, then the discovery scan, with a
// progress signal at each milestone and exactly one failure signal on any
// error.
package bridge

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/blepad/blepad/internal/ble"
	"github.com/blepad/blepad/internal/gamepad"
	"github.com/blepad/blepad/internal/signaling"
)

const (
	// DefaultDiscoveryWindow is how long the scan accumulates results
	// before the first enumeration.
	DefaultDiscoveryWindow = 2 * time.Second
	// DefaultPollInterval paces the steady-state event relay.
	DefaultPollInterval = 100 * time.Millisecond
)

// Options tune the two fixed delays. Zero values take the defaults.
type Options struct {
	DiscoveryWindow time.Duration
	PollInterval    time.Duration
}

func (o Options) withDefaults() Options {
	if o.DiscoveryWindow <= 0 {
		o.DiscoveryWindow = DefaultDiscoveryWindow
	}
	if o.PollInterval <= 0 {
		o.PollInterval = DefaultPollInterval
	}
	return o
}

// Gamepads is what the relay loop needs from gamepad.Set.
type Gamepads interface {
	Devices() []gamepad.Device
	Next() (gamepad.Event, bool)
}

// Bridge owns the bring-up sequence and the steady-state relay loop.
type Bridge struct {
	initGamepads func() (Gamepads, error)
	newManager   func() (ble.Manager, error)
	signaler     signaling.Signaler
	log          *slog.Logger
	opts         Options
}

func New(sig signaling.Signaler, log *slog.Logger, opts Options) *Bridge {
	return &Bridge{
		initGamepads: func() (Gamepads, error) { return gamepad.Init() },
		newManager:   ble.NewManager,
		signaler:     sig,
		log:          log,
		opts:         opts.withDefaults(),
	}
}

// Run executes bring-up and, on success, relays gamepad events until ctx
// is cancelled. A bring-up failure emits one failure signal and is
// returned for the caller to report and exit on; nothing needs rolling
// back, as every acquired handle lives for the process lifetime anyway.
func (b *Bridge) Run(ctx context.Context) error {
	pads, err := b.bringUp(ctx)
	if err != nil {
		b.signaler.Failure()
		return err
	}
	b.signaler.Success()

	b.relay(ctx, pads)
	return nil
}

func (b *Bridge) bringUp(ctx context.Context) (Gamepads, error) {
	b.signaler.Progress()

	pads, err := b.initGamepads()
	if err != nil {
		return nil, err
	}
	for _, dev := range pads.Devices() {
		b.log.Info("gamepad ready", "name", dev.Name, "power", dev.Power)
	}
	b.signaler.Progress()

	manager, err := b.newManager()
	if err != nil {
		return nil, fmt.Errorf("initializing bluetooth manager: %w", err)
	}

	central, err := ble.Select(manager)
	if err != nil {
		return nil, err
	}
	b.signaler.Progress()

	if err := central.StartScan(); err != nil {
		return nil, fmt.Errorf("failed to scan for new peripherals: %w", err)
	}
	b.signaler.Progress()

	// The discovery window is interruptible: shutdown during the 2 s
	// wait aborts bring-up instead of stalling it.
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(b.opts.DiscoveryWindow):
	}
	b.signaler.Progress()

	for _, p := range central.Peripherals() {
		b.log.Info("peripheral discovered", "name", p.Name, "addr", p.Address)
	}

	return pads, nil
}

// relay drains everything buffered, sleeps one poll interval, repeats.
// ctx cancellation, checked once per iteration before the sleep, is the
// only way out; after bring-up there is no error path.
func (b *Bridge) relay(ctx context.Context, pads Gamepads) {
	for {
		b.drain(pads)
		select {
		case <-ctx.Done():
			return
		case <-time.After(b.opts.PollInterval):
		}
	}
}

// drain pulls buffered events until none remain, relaying each to the
// log. It returns the number relayed.
func (b *Bridge) drain(pads Gamepads) int {
	n := 0
	for {
		ev, ok := pads.Next()
		if !ok {
			return n
		}
		n++
		b.log.Info("gamepad event",
			"time", ev.Time,
			"device", ev.Device,
			"type", ev.Type,
			"index", ev.Index,
			"value", ev.Value,
		)
	}
}
