package ble

import (
	"errors"
	"strings"
	"testing"

	"github.com/blepad/blepad/internal/fault"
)

// fakeCentral satisfies Central without touching hardware.
type fakeCentral struct {
	name string
}

func (c *fakeCentral) StartScan() error          { return nil }
func (c *fakeCentral) Peripherals() []Peripheral { return nil }

// fakeConnector additionally needs the explicit connect step.
type fakeConnector struct {
	fakeCentral
	connectErr error
	connects   int
}

func (c *fakeConnector) Connect() error {
	c.connects++
	return c.connectErr
}

// fakeManager serves a canned adapter list.
type fakeManager struct {
	adapters []Central
	err      error
}

func (m *fakeManager) Adapters() ([]Central, error) { return m.adapters, m.err }

func TestSelectEmptyAdapterList(t *testing.T) {
	_, err := Select(&fakeManager{})

	kind, ok := fault.KindOf(err)
	if !ok || kind != fault.MissingBleAdapter {
		t.Fatalf("err = %v, want MissingBleAdapter", err)
	}
}

func TestSelectListingFailure(t *testing.T) {
	cause := errors.New("dbus unavailable")
	_, err := Select(&fakeManager{err: cause})

	if !errors.Is(err, cause) {
		t.Fatalf("err = %v, want wrapped listing cause", err)
	}
	if _, ok := fault.KindOf(err); ok {
		t.Error("listing failures must stay unclassified")
	}
}

func TestSelectTakesFirstAdapter(t *testing.T) {
	first := &fakeCentral{name: "hci0"}
	second := &fakeCentral{name: "hci1"}

	got, err := Select(&fakeManager{adapters: []Central{first, second}})
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	if got != first {
		t.Error("Select should take the first listed adapter, no ranking")
	}
}

func TestSelectRunsExplicitConnect(t *testing.T) {
	adapter := &fakeConnector{}

	got, err := Select(&fakeManager{adapters: []Central{adapter}})
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	if got != Central(adapter) {
		t.Error("Select should return the connected adapter")
	}
	if adapter.connects != 1 {
		t.Errorf("Connect called %d times, want 1", adapter.connects)
	}
}

func TestSelectConnectFailureIsWrappedCause(t *testing.T) {
	cause := errors.New("adapter powered off")
	adapter := &fakeConnector{connectErr: cause}

	_, err := Select(&fakeManager{adapters: []Central{adapter}})
	if err == nil {
		t.Fatal("Select should fail when the connect step fails")
	}
	if !errors.Is(err, cause) {
		t.Errorf("err = %v, want the connect cause preserved", err)
	}
	if kind, ok := fault.KindOf(err); ok {
		t.Errorf("connect failure classified as %v; the adapter existed, so it must stay unclassified", kind)
	}
	if !strings.Contains(err.Error(), "connecting bluetooth adapter") {
		t.Errorf("err = %q, want connect context in the message", err)
	}
}

func TestRecordDeduplicatesByAddress(t *testing.T) {
	c := newCentral(nil)
	c.record("HeadUnit", "AA:BB:CC:DD:EE:FF")
	c.record("HeadUnit", "AA:BB:CC:DD:EE:FF")
	c.record("", "11:22:33:44:55:66")

	got := c.Peripherals()
	if len(got) != 2 {
		t.Fatalf("Peripherals() returned %d records, want 2", len(got))
	}
	if got[0].Name != "HeadUnit" || got[0].Address != "AA:BB:CC:DD:EE:FF" {
		t.Errorf("first record = %+v", got[0])
	}
}

func TestRecordKeepsMissingNameEmpty(t *testing.T) {
	c := newCentral(nil)
	c.record("", "11:22:33:44:55:66")

	got := c.Peripherals()
	if len(got) != 1 {
		t.Fatalf("Peripherals() returned %d records, want 1", len(got))
	}
	if got[0].Name != "" {
		t.Errorf("Name = %q, want empty string for a nameless advertisement", got[0].Name)
	}
	if got[0].Address != "11:22:33:44:55:66" {
		t.Errorf("Address = %q", got[0].Address)
	}
}

func TestPeripheralsSnapshotIsIsolated(t *testing.T) {
	c := newCentral(nil)
	c.record("a", "01")

	snap := c.Peripherals()
	c.record("b", "02")

	if len(snap) != 1 {
		t.Errorf("earlier snapshot grew to %d records", len(snap))
	}
	if len(c.Peripherals()) != 2 {
		t.Errorf("Peripherals() = %d records, want 2", len(c.Peripherals()))
	}
}
