package dialog

import (
	"context"
	"errors"
	"log/slog"
	"strings"
)

var (
	ErrNoRequest = errors.New("dialog: no pending request")
	// ErrStale is returned when the caller answers a request that was already replaced.
	ErrStale = errors.New("dialog: request was replaced")
)

// Observer is told how every request ends. Outcome is accepted, canceled or replaced.
type Observer func(mode Mode, outcome string)

// Gate holds at most one pending request. A new request replaces the old one.
// It is not safe for concurrent use; the application container serializes access.
type Gate struct {
	log      *slog.Logger
	current  *pending
	seq      uint64
	observer Observer
}

func NewGate(log *slog.Logger, observer Observer) *Gate {
	if observer == nil {
		observer = func(Mode, string) {}
	}
	return &Gate{log: log, observer: observer}
}

// Confirm registers a confirm request.
func (g *Gate) Confirm(title, message string, danger bool, fn ConfirmFunc) {
	g.replace(&pending{
		Request: Request{Mode: ModeConfirm, Title: title, Message: message, Danger: danger},
		confirm: fn,
	})
}

// Prompt registers a prompt request with an initial value.
func (g *Gate) Prompt(title, message, initial string, fn PromptFunc) {
	g.replace(&pending{
		Request: Request{Mode: ModePrompt, Title: title, Message: message, Initial: initial},
		prompt:  fn,
	})
}

// Pending returns the pending request, if any.
func (g *Gate) Pending() (Request, bool) {
	if g.current == nil {
		return Request{}, false
	}
	return g.current.Request, true
}

// Accept closes the gate and runs the continuation of request seq. For prompts,
// value is the answer; a blank answer closes the gate without running the continuation.
func (g *Gate) Accept(ctx context.Context, seq uint64, value string) error {
	p, err := g.take(seq)
	if err != nil {
		return err
	}
	g.observer(p.Mode, "accepted")
	g.log.Debug("gate accepted", "mode", p.Mode, "title", p.Title)

	switch p.Mode {
	case ModeConfirm:
		return p.confirm(ctx)
	case ModePrompt:
		value = strings.TrimSpace(value)
		if value == "" {
			return nil
		}
		return p.prompt(ctx, value)
	}
	return nil
}

// Cancel drops the continuation of request seq without running it.
func (g *Gate) Cancel(seq uint64) error {
	p, err := g.take(seq)
	if err != nil {
		return err
	}
	g.observer(p.Mode, "canceled")
	g.log.Debug("gate canceled", "mode", p.Mode, "title", p.Title)
	return nil
}

// take removes the pending request if it is the one identified by seq.
func (g *Gate) take(seq uint64) (*pending, error) {
	p := g.current
	if p == nil {
		return nil, ErrNoRequest
	}
	if p.Seq != seq {
		g.log.Debug("stale gate answer ignored", "seq", seq, "pending", p.Seq)
		return nil, ErrStale
	}
	g.current = nil
	return p, nil
}

// Reset drops any pending request silently; used on factory reset.
func (g *Gate) Reset() { g.current = nil }

func (g *Gate) replace(p *pending) {
	g.seq++
	p.Seq = g.seq
	if old := g.current; old != nil {
		g.observer(old.Mode, "replaced")
		g.log.Debug("gate request replaced", "old", old.Title, "new", p.Title)
	}
	g.current = p
}
