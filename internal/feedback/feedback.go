// Package feedback delivers fire-and-forget operator cues after successful mutations.
package feedback

import "log/slog"

type Cue string

const (
	CueItemAdded         Cue = "item-added"
	CueItemRemoved       Cue = "item-removed"
	CuePaymentConfirmed  Cue = "payment-confirmed"
	CueDocumentStamped   Cue = "document-stamped"
	CueOperationReverted Cue = "operation-reverted"
	CueNotification      Cue = "notification"
)

// Sink plays a cue. Implementations must not block the caller.
type Sink interface {
	Play(cue Cue, detail string)
}

type Nop struct{}

func (Nop) Play(Cue, string) {}

// Log writes cues to the structured log at debug level.
type Log struct{ log *slog.Logger }

func NewLog(log *slog.Logger) Log { return Log{log: log} }

func (l Log) Play(cue Cue, detail string) {
	l.log.Debug("cue", "cue", string(cue), "detail", detail)
}

// Fanout plays every cue on all sinks.
type Fanout []Sink

func (f Fanout) Play(cue Cue, detail string) {
	for _, s := range f {
		s.Play(cue, detail)
	}
}
