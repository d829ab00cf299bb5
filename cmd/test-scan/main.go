// Command test-scan is a manual test for BLE adapter selection and
// discovery. It picks the first adapter, scans for a while, and prints
// everything it saw.
//
// Usage:
//
//	go run ./cmd/test-scan [--window 5s]
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/blepad/blepad/internal/ble"
)

func main() {
	window := flag.Duration("window", 5*time.Second, "how long to scan before printing results")
	flag.Parse()

	manager, err := ble.NewManager()
	if err != nil {
		fmt.Fprintf(os.Stderr, "bluetooth manager: %v\n", err)
		os.Exit(1)
	}

	central, err := ble.Select(manager)
	if err != nil {
		fmt.Fprintf(os.Stderr, "adapter selection: %v\n", err)
		os.Exit(1)
	}

	if err := central.StartScan(); err != nil {
		fmt.Fprintf(os.Stderr, "scan: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Scanning for %s...\n", *window)
	time.Sleep(*window)

	peripherals := central.Peripherals()
	for _, p := range peripherals {
		fmt.Printf("%s (%s)\n", p.Name, p.Address)
	}
	fmt.Printf("%d peripherals found.\n", len(peripherals))
}
