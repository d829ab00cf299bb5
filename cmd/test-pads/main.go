// Command test-pads is a manual test for the gamepad driver. Run it with
// a joystick plugged in to see its devices and a live event dump.
// Press Ctrl+C to exit.
//
// Usage:
//
//	go run ./cmd/test-pads
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/blepad/blepad/internal/gamepad"
)

func main() {
	pads, err := gamepad.Init()
	if err != nil {
		fmt.Fprintf(os.Stderr, "gamepad init: %v\n", err)
		os.Exit(1)
	}
	defer pads.Close()

	for _, dev := range pads.Devices() {
		fmt.Printf("%s is %s\n", dev.Name, dev.Power)
	}
	fmt.Println("Press Ctrl+C to exit.")

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	for {
		for {
			ev, ok := pads.Next()
			if !ok {
				break
			}
			fmt.Printf("%s new event from %d: type=%d index=%d value=%d\n",
				ev.Time.Format(time.RFC3339Nano), ev.Device, ev.Type, ev.Index, ev.Value)
		}
		select {
		case <-sig:
			fmt.Println("\nDone.")
			return
		case <-time.After(100 * time.Millisecond):
		}
	}
}
