package ble

import (
	"log/slog"

	"tinygo.org/x/bluetooth"
)

// NewManager wraps the CoreBluetooth default adapter. Centrals on this
// platform have no separate connect step: enabling happens as part of
// listing, and a radio that cannot be enabled is reported as an empty
// adapter list rather than a listing failure.
func NewManager() (Manager, error) {
	return &defaultManager{central: newCentral(bluetooth.DefaultAdapter)}, nil
}

type defaultManager struct {
	central *central
	enabled bool
}

func (m *defaultManager) Adapters() ([]Central, error) {
	if !m.enabled {
		if err := m.central.adapter.Enable(); err != nil {
			slog.Warn("enabling default adapter", "err", err)
			return nil, nil
		}
		m.enabled = true
	}
	return []Central{m.central}, nil
}
