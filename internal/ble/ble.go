// Package ble obtains a usable BLE central for the bridge and accumulates
// scan results. It abstracts the three platform stacks (BlueZ,
// CoreBluetooth, WinRT) behind one adapter-selection contract so the
// bring-up sequence never branches on the platform.
package ble

import (
	"fmt"

	"github.com/blepad/blepad/internal/fault"
)

// Peripheral is one discovered advertisement. Name is empty when the
// advertisement carried no local name; Address is always present.
type Peripheral struct {
	Name    string
	Address string
}

// Central is a usable BLE radio handle, held for the life of the process.
type Central interface {
	// StartScan begins background discovery. Results accumulate until
	// the process exits; there is no stop call.
	StartScan() error
	// Peripherals snapshots whatever has been discovered so far. It
	// never blocks and zero results is not an error.
	Peripherals() []Peripheral
}

// Manager lists the BLE adapters the platform exposes.
type Manager interface {
	Adapters() ([]Central, error)
}

// connector is implemented by centrals that need an explicit connect step
// after listing (BlueZ adapters come back unpowered). Platforms whose
// adapters are ready as listed do not implement it.
type connector interface {
	Connect() error
}

// Select takes the first adapter the manager reports, no ranking and no
// fallback. Zero adapters is fault.MissingBleAdapter; a failed connect on
// an adapter that does exist is a plain wrapped error, since the adapter
// was found.
func Select(m Manager) (Central, error) {
	adapters, err := m.Adapters()
	if err != nil {
		return nil, fmt.Errorf("listing bluetooth adapters: %w", err)
	}
	if len(adapters) == 0 {
		return nil, &fault.Error{Kind: fault.MissingBleAdapter}
	}

	central := adapters[0]
	if c, ok := central.(connector); ok {
		if err := c.Connect(); err != nil {
			return nil, fmt.Errorf("connecting bluetooth adapter: %w", err)
		}
	}
	return central, nil
}
