// Package signaling reports bring-up state to an external observer, such
// as a dashboard status subject or an indicator LED on the dash.
package signaling

// Signaler receives bring-up state transitions. Calls are fire and
// forget; the bridge never consumes a return value, and once Success or
// Failure has been emitted no further Progress call is meaningful.
type Signaler interface {
	Progress()
	Success()
	Failure()
}
