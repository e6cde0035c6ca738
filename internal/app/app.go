// Package app is the application state container. It owns the catalog, roster,
// costing and ledger stores, routes destructive operations through the
// interaction gate and writes every change to the durable store.
package app

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/Spok95/pocket-hornet/internal/apperr"
	"github.com/Spok95/pocket-hornet/internal/dialog"
	"github.com/Spok95/pocket-hornet/internal/domain/catalog"
	"github.com/Spok95/pocket-hornet/internal/domain/costing"
	"github.com/Spok95/pocket-hornet/internal/domain/ledger"
	"github.com/Spok95/pocket-hornet/internal/domain/roster"
	"github.com/Spok95/pocket-hornet/internal/feedback"
	"github.com/Spok95/pocket-hornet/internal/infra/kv"
	"github.com/Spok95/pocket-hornet/internal/infra/metrics"
)

type Deps struct {
	Store   kv.Store
	Log     *slog.Logger
	Cues    feedback.Sink
	Metrics *metrics.Metrics
	Now     func() time.Time
	// Location renders journal timestamps; defaults to time.Local.
	Location *time.Location
	// LedgerOptions are passed to every ledger the app creates (tests pin ids and clock).
	LedgerOptions []ledger.Option
}

// App serializes every public method on one mutex, so each operation runs to
// completion before the next one starts.
type App struct {
	mu      sync.Mutex
	store   kv.Store
	log     *slog.Logger
	cues    feedback.Sink
	metrics *metrics.Metrics
	now     func() time.Time
	loc     *time.Location
	ledOpts []ledger.Option

	catalog *catalog.Repo
	roster  *roster.Repo
	costing costing.Config
	ledger  *ledger.Ledger
	gate    *dialog.Gate
}

func New(d Deps) *App {
	if d.Log == nil {
		d.Log = slog.Default()
	}
	if d.Cues == nil {
		d.Cues = feedback.Nop{}
	}
	if d.Metrics == nil {
		d.Metrics = metrics.New()
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	if d.Location == nil {
		d.Location = time.Local
	}
	if d.Store == nil {
		d.Store = kv.NewMemory()
	}
	a := &App{
		store:   d.Store,
		log:     d.Log,
		cues:    d.Cues,
		metrics: d.Metrics,
		now:     d.Now,
		loc:     d.Location,
		ledOpts: append([]ledger.Option{ledger.WithClock(d.Now)}, d.LedgerOptions...),
	}
	a.gate = dialog.NewGate(d.Log, func(mode dialog.Mode, outcome string) {
		a.metrics.GateRequests.WithLabelValues(string(mode), outcome).Inc()
	})
	a.resetMemory()
	return a
}

func (a *App) resetMemory() {
	a.catalog = catalog.NewRepo(a.log)
	a.roster = roster.NewRepo(a.log)
	a.costing = costing.Config{}
	a.ledger = ledger.New(a.ledOpts...)
	a.gate.Reset()
	a.refreshGauges()
}

func (a *App) refreshGauges() {
	a.metrics.CashOnHand.Set(a.ledger.CashOnHand().InexactFloat64())
	a.metrics.Products.Set(float64(len(a.catalog.Products())))
}

/* Read-only views */

func (a *App) Products() []catalog.Product {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.catalog.Products()
}

func (a *App) Categories() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.catalog.Categories()
}

func (a *App) Teams() []roster.Team {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.roster.Teams()
}

func (a *App) PaymentMethods() []roster.PaymentMethod {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.roster.PaymentMethods()
}

func (a *App) Costing() costing.Config {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.costing
}

func (a *App) Events() []ledger.Event {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.ledger.Events()
}

func (a *App) IsVoided(id string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.ledger.IsVoided(id)
}

func (a *App) LastTransaction() (ledger.Event, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.ledger.LastTransaction()
}

// Summary reads the costing config at call time, so costing edits apply to past events too.
func (a *App) Summary() ledger.Summary {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.ledger.Summary(a.costing)
}

func (a *App) Pending() (dialog.Request, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.gate.Pending()
}

/* Gate resolution */

// Accept resolves gate request seq and runs its continuation. Answering a
// request that is no longer pending is a Precondition error and runs nothing.
func (a *App) Accept(ctx context.Context, seq uint64, value string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return gateErr("gate.accept", seq, a.gate.Accept(ctx, seq, value))
}

// Cancel drops gate request seq.
func (a *App) Cancel(seq uint64) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return gateErr("gate.cancel", seq, a.gate.Cancel(seq))
}

func gateErr(op string, seq uint64, err error) error {
	if errors.Is(err, dialog.ErrNoRequest) || errors.Is(err, dialog.ErrStale) {
		return apperr.Preconditionf(op, err, "request %d", seq)
	}
	return err
}

func (a *App) confirm(title, message string, danger bool, fn dialog.ConfirmFunc) {
	a.metrics.GateRequests.WithLabelValues(string(dialog.ModeConfirm), "requested").Inc()
	a.gate.Confirm(title, message, danger, fn)
}

func (a *App) prompt(title, message, initial string, fn dialog.PromptFunc) {
	a.metrics.GateRequests.WithLabelValues(string(dialog.ModePrompt), "requested").Inc()
	a.gate.Prompt(title, message, initial, fn)
}
