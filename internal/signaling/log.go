package signaling

import "log/slog"

// LogSignaler writes state transitions to the process log. It is the
// default backend: useful on a bench with no status bus or LED wired up.
type LogSignaler struct {
	log *slog.Logger
}

func NewLog(log *slog.Logger) *LogSignaler {
	return &LogSignaler{log: log}
}

func (s *LogSignaler) Progress() { s.log.Info("bring-up progressing") }
func (s *LogSignaler) Success()  { s.log.Info("bring-up complete") }
func (s *LogSignaler) Failure()  { s.log.Error("bring-up failed") }
