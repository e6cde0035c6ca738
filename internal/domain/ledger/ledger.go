package ledger

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Spok95/pocket-hornet/internal/apperr"
)

var (
	ErrNonPositiveAmount = errors.New("ledger: amount must be > 0")
	ErrUnknownKind       = errors.New("ledger: unknown event kind")
	ErrVoidViaRecord     = errors.New("ledger: voids are recorded with Void")
	ErrUnknownEvent      = errors.New("ledger: unknown event")
	ErrAlreadyVoided     = errors.New("ledger: event already voided")
	ErrVoidOfVoid        = errors.New("ledger: a void cannot be voided")
	ErrNoLastTransaction = errors.New("ledger: no transaction to undo")
)

// Ledger is an append-only event sequence. Aggregates are recomputed from the
// full sequence on every call so voids and costing edits can never drift.
type Ledger struct {
	events []Event
	voided map[string]string // target id -> void id
	now    func() time.Time
	newID  func() string
}

type Option func(*Ledger)

func WithClock(now func() time.Time) Option { return func(l *Ledger) { l.now = now } }

func WithIDs(newID func() string) Option { return func(l *Ledger) { l.newID = newID } }

func New(opts ...Option) *Ledger {
	l := &Ledger{
		voided: map[string]string{},
		now:    time.Now,
		newID:  func() string { return uuid.Must(uuid.NewV7()).String() },
	}
	for _, o := range opts {
		o(l)
	}
	return l
}

// Record appends a sale, expense, deposit or withdrawal.
func (l *Ledger) Record(e Entry) (Event, error) {
	const op = "ledger.record"
	switch {
	case e.Kind == KindVoid:
		return Event{}, apperr.Preconditionf(op, ErrVoidViaRecord, "kind %q", e.Kind)
	case !e.Kind.Valid():
		return Event{}, apperr.Preconditionf(op, ErrUnknownKind, "kind %q", e.Kind)
	case !e.Amount.IsPositive():
		return Event{}, apperr.Preconditionf(op, ErrNonPositiveAmount, "%s %s", e.Kind, e.Amount)
	}
	desc := strings.TrimSpace(e.Description)
	if desc == "" {
		desc = e.Kind.defaultDescription()
	}
	ev := Event{
		ID:          l.newID(),
		Timestamp:   l.now(),
		Kind:        e.Kind,
		Amount:      e.Amount.Mul(decimal.NewFromInt(e.Kind.sign())),
		Description: desc,
		Method:      e.Method,
	}
	if cp := e.Counterparty; cp != nil {
		ev.Counterparty, ev.CounterpartyID = cp.Label, cp.ID
	}
	l.events = append(l.events, ev)
	return ev, nil
}

// Void appends a compensating entry for the event id.
func (l *Ledger) Void(id string) (Event, error) {
	const op = "ledger.void"
	i := l.indexOf(id)
	if i < 0 {
		return Event{}, apperr.Preconditionf(op, ErrUnknownEvent, "%q", id)
	}
	target := l.events[i]
	if target.Kind == KindVoid {
		return Event{}, apperr.Preconditionf(op, ErrVoidOfVoid, "%q", id)
	}
	if _, done := l.voided[id]; done {
		return Event{}, apperr.Preconditionf(op, ErrAlreadyVoided, "%q", id)
	}
	ev := Event{
		ID:             l.newID(),
		Timestamp:      l.now(),
		Kind:           KindVoid,
		Amount:         target.Amount.Neg(),
		Description:    fmt.Sprintf("STORNO: %s", target.Description),
		Counterparty:   target.Counterparty,
		CounterpartyID: target.CounterpartyID,
		Method:         target.Method,
		Reverses:       target.ID,
		ReversedKind:   target.Kind,
	}
	l.events = append(l.events, ev)
	l.voided[target.ID] = ev.ID
	return ev, nil
}

// UndoLast voids the last transaction.
func (l *Ledger) UndoLast() (Event, error) {
	last, ok := l.LastTransaction()
	if !ok {
		return Event{}, apperr.Preconditionf("ledger.undo_last", ErrNoLastTransaction, "nothing to undo")
	}
	return l.Void(last.ID)
}

// LastTransaction is the most recently recorded non-void event, unless it has been voided.
func (l *Ledger) LastTransaction() (Event, bool) {
	for i := len(l.events) - 1; i >= 0; i-- {
		ev := l.events[i]
		if ev.Kind == KindVoid {
			continue
		}
		if l.IsVoided(ev.ID) {
			return Event{}, false
		}
		return ev, true
	}
	return Event{}, false
}

// Events returns a copy of the full sequence, voided events and voids included.
func (l *Ledger) Events() []Event { return slices.Clone(l.events) }

func (l *Ledger) Len() int { return len(l.events) }

// Lookup returns the event with the given id.
func (l *Ledger) Lookup(id string) (Event, bool) {
	i := l.indexOf(id)
	if i < 0 {
		return Event{}, false
	}
	return l.events[i], true
}

func (l *Ledger) IsVoided(id string) bool {
	_, ok := l.voided[id]
	return ok
}

// CashOnHand is the signed sum of all events that are neither voids nor voided.
func (l *Ledger) CashOnHand() decimal.Decimal {
	total := decimal.Zero
	l.eachLive(func(ev Event) { total = total.Add(ev.Amount) })
	return total
}

// Profit is sales minus expenses, minus the costing total while costs are enabled.
func (l *Ledger) Profit(costs CostSource) decimal.Decimal {
	profit := decimal.Zero
	l.eachLive(func(ev Event) {
		if ev.Kind == KindSale || ev.Kind == KindExpense {
			profit = profit.Add(ev.Amount)
		}
	})
	if costs != nil && costs.Enabled() {
		profit = profit.Sub(costs.TotalCost())
	}
	return profit
}

func (l *Ledger) Summary(costs CostSource) Summary {
	s := Summary{
		Events:      len(l.events),
		Voided:      len(l.voided),
		Sales:       decimal.Zero,
		Expenses:    decimal.Zero,
		Deposits:    decimal.Zero,
		Withdrawals: decimal.Zero,
		Costs:       decimal.Zero,
	}
	l.eachLive(func(ev Event) {
		switch ev.Kind {
		case KindSale:
			s.Sales = s.Sales.Add(ev.Amount)
		case KindExpense:
			s.Expenses = s.Expenses.Sub(ev.Amount)
		case KindDeposit:
			s.Deposits = s.Deposits.Add(ev.Amount)
		case KindWithdrawal:
			s.Withdrawals = s.Withdrawals.Sub(ev.Amount)
		}
	})
	if costs != nil && costs.Enabled() {
		s.Costs = costs.TotalCost()
	}
	s.CashOnHand = l.CashOnHand()
	s.Profit = l.Profit(costs)
	return s
}

// Restore replaces the sequence with previously persisted events.
func (l *Ledger) Restore(events []Event) {
	l.events = slices.Clone(events)
	l.voided = make(map[string]string, len(events))
	for _, ev := range l.events {
		if ev.Kind == KindVoid && ev.Reverses != "" {
			l.voided[ev.Reverses] = ev.ID
		}
	}
}

func (l *Ledger) eachLive(fn func(Event)) {
	for _, ev := range l.events {
		if ev.Kind == KindVoid || l.IsVoided(ev.ID) {
			continue
		}
		fn(ev)
	}
}

func (l *Ledger) indexOf(id string) int {
	return slices.IndexFunc(l.events, func(ev Event) bool { return ev.ID == id })
}
