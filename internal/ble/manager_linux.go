package ble

import (
	"fmt"
	"sort"
	"strings"

	"github.com/godbus/dbus/v5"
	"tinygo.org/x/bluetooth"
)

const (
	bluezBus          = "org.bluez"
	bluezAdapterIface = "org.bluez.Adapter1"
	dbusObjectManager = "org.freedesktop.DBus.ObjectManager"
)

// NewManager connects to the system bus. BlueZ adapters are enumerated
// from the managed object tree and need an explicit connect (power-on)
// step before they can scan.
func NewManager() (Manager, error) {
	conn, err := dbus.SystemBus()
	if err != nil {
		return nil, fmt.Errorf("connecting to system dbus: %w", err)
	}
	return &bluezManager{conn: conn}, nil
}

type bluezManager struct {
	conn *dbus.Conn
}

// Adapters walks the BlueZ object tree for org.bluez.Adapter1 objects.
// Zero adapters is an empty list, not an error.
func (m *bluezManager) Adapters() ([]Central, error) {
	call := m.conn.Object(bluezBus, "/").Call(dbusObjectManager+".GetManagedObjects", 0)
	if call.Err != nil {
		return nil, fmt.Errorf("listing bluez objects: %w", call.Err)
	}

	var objects map[dbus.ObjectPath]map[string]map[string]dbus.Variant
	if err := call.Store(&objects); err != nil {
		return nil, fmt.Errorf("decoding bluez objects: %w", err)
	}

	var ids []string
	for path, ifaces := range objects {
		if _, ok := ifaces[bluezAdapterIface]; !ok {
			continue
		}
		ids = append(ids, strings.TrimPrefix(string(path), "/org/bluez/"))
	}
	// Map iteration order is random; "first adapter" must be stable.
	sort.Strings(ids)

	adapters := make([]Central, 0, len(ids))
	for _, id := range ids {
		adapters = append(adapters, &bluezCentral{
			central: newCentral(bluetooth.NewAdapter(id)),
			id:      id,
		})
	}
	return adapters, nil
}

// bluezCentral is listed unpowered; Connect is its explicit connect step.
type bluezCentral struct {
	*central
	id string
}

func (b *bluezCentral) Connect() error {
	if err := b.adapter.Enable(); err != nil {
		return fmt.Errorf("enabling %s: %w", b.id, err)
	}
	return nil
}
