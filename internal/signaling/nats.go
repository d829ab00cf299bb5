package signaling

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/nats-io/nats.go"
)

// StatusEvent is the JSON payload published for each state transition.
type StatusEvent struct {
	State string    `json:"state"` // "progress", "success" or "failure"
	Seq   uint64    `json:"seq"`
	Time  time.Time `json:"ts"`
}

// NATSSignaler publishes status events to a NATS subject so a head-unit
// dashboard can watch bring-up remotely. Publishing is best effort: a
// dropped status update must never abort bring-up itself.
type NATSSignaler struct {
	conn    *nats.Conn
	subject string
	log     *slog.Logger
	seq     atomic.Uint64
}

func NewNATS(url, subject string, log *slog.Logger) (*NATSSignaler, error) {
	conn, err := nats.Connect(url, nats.Name("blepad"))
	if err != nil {
		return nil, fmt.Errorf("connecting to nats at %s: %w", url, err)
	}
	return &NATSSignaler{conn: conn, subject: subject, log: log}, nil
}

func (s *NATSSignaler) Progress() { s.publish("progress") }
func (s *NATSSignaler) Success()  { s.publish("success") }
func (s *NATSSignaler) Failure()  { s.publish("failure") }

func (s *NATSSignaler) publish(state string) {
	payload, err := json.Marshal(s.eventFor(state))
	if err != nil {
		s.log.Warn("encoding status event", "state", state, "err", err)
		return
	}
	if err := s.conn.Publish(s.subject, payload); err != nil {
		s.log.Warn("publishing status event", "state", state, "err", err)
	}
}

func (s *NATSSignaler) eventFor(state string) StatusEvent {
	return StatusEvent{
		State: state,
		Seq:   s.seq.Add(1),
		Time:  time.Now().UTC(),
	}
}

// Close drains the connection; only the binary's shutdown path calls it.
func (s *NATSSignaler) Close() {
	s.conn.Close()
}
