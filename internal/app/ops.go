package app

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/Spok95/pocket-hornet/internal/apperr"
	"github.com/Spok95/pocket-hornet/internal/domain/catalog"
	"github.com/Spok95/pocket-hornet/internal/domain/costing"
	"github.com/Spok95/pocket-hornet/internal/domain/ledger"
	"github.com/Spok95/pocket-hornet/internal/domain/roster"
	"github.com/Spok95/pocket-hornet/internal/feedback"
)

var (
	ErrUnknownTeam   = errors.New("app: unknown team")
	ErrUnknownMethod = errors.New("app: unknown payment method")
	ErrGated         = errors.New("app: operation requires confirmation")
)

// Booking is a ledger entry as the operator enters it. TeamID and MethodID are
// optional and resolved to labels at record time.
type Booking struct {
	Kind        ledger.Kind
	Amount      decimal.Decimal
	Description string
	TeamID      string
	MethodID    string
}

/* Catalog */

func (a *App) AddProduct(ctx context.Context, category string) (catalog.Product, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	p := a.catalog.AddProduct(category)
	a.metrics.Products.Inc()
	a.cues.Play(feedback.CueItemAdded, p.Name)
	return p, a.persist(ctx, KeyProducts)
}

// UpdateProduct applies the patch. An unknown id is a logged no-op.
func (a *App) UpdateProduct(ctx context.Context, id string, patch catalog.ProductPatch) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.catalog.UpdateProduct(id, patch) {
		return nil
	}
	return a.persist(ctx, KeyProducts)
}

func (a *App) ReorderProduct(ctx context.Context, id, targetID string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if err := a.catalog.ReorderProduct(id, targetID); err != nil {
		return err
	}
	return a.persist(ctx, KeyProducts)
}

// AddCategory reports whether the category was new.
func (a *App) AddCategory(ctx context.Context, name string) (bool, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.addCategory(ctx, name)
}

func (a *App) addCategory(ctx context.Context, name string) (bool, error) {
	if !a.catalog.AddCategory(name) {
		return false, nil
	}
	a.cues.Play(feedback.CueItemAdded, catalog.NormalizeCategory(name))
	return true, a.persist(ctx, KeyCategories)
}

func (a *App) RenameCategory(ctx context.Context, oldName, newName string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.renameCategory(ctx, oldName, newName)
}

func (a *App) renameCategory(ctx context.Context, oldName, newName string) error {
	if err := a.catalog.RenameCategory(oldName, newName); err != nil {
		return err
	}
	return a.persist(ctx, catalogKeys...)
}

/* Roster */

func (a *App) AddTeam(ctx context.Context, name string) (roster.Team, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	t := a.roster.AddTeam(name)
	a.cues.Play(feedback.CueItemAdded, t.Name)
	return t, a.persist(ctx, KeyTeams)
}

func (a *App) UpdateTeam(ctx context.Context, id string, patch roster.TeamPatch) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.roster.UpdateTeam(id, patch) {
		return nil
	}
	return a.persist(ctx, KeyTeams)
}

func (a *App) AddPaymentMethod(ctx context.Context, name string, kind roster.PaymentKind) (roster.PaymentMethod, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !kind.Valid() {
		return roster.PaymentMethod{}, apperr.Validationf("app.add_payment_method", "unknown payment kind %q", kind)
	}
	m := a.roster.AddPaymentMethod(name, kind)
	a.cues.Play(feedback.CueItemAdded, m.Name)
	return m, a.persist(ctx, KeyPaymentMethods)
}

func (a *App) UpdatePaymentMethod(ctx context.Context, id string, patch roster.PaymentMethodPatch) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.roster.UpdatePaymentMethod(id, patch) {
		return nil
	}
	return a.persist(ctx, KeyPaymentMethods)
}

/* Costing */

func (a *App) UpdateCosting(ctx context.Context, patch costing.Patch) (costing.Config, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.costing = a.costing.Apply(patch)
	return a.costing, a.persist(ctx, KeyCosting)
}

/* Ledger */

// Record books a sale, expense or deposit. Withdrawals go through RequestWithdrawal.
func (a *App) Record(ctx context.Context, b Booking) (ledger.Event, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if b.Kind == ledger.KindWithdrawal {
		return ledger.Event{}, apperr.Preconditionf("app.record", ErrGated, "use RequestWithdrawal")
	}
	return a.record(ctx, b)
}

func (a *App) record(ctx context.Context, b Booking) (ledger.Event, error) {
	const op = "app.record"
	entry := ledger.Entry{Kind: b.Kind, Amount: b.Amount, Description: b.Description}
	if b.TeamID != "" {
		t, ok := a.roster.Team(b.TeamID)
		if !ok {
			return ledger.Event{}, apperr.Preconditionf(op, ErrUnknownTeam, "%q", b.TeamID)
		}
		entry.Counterparty = &ledger.Counterparty{ID: t.ID, Label: t.Name}
	}
	if b.MethodID != "" {
		m, ok := a.roster.PaymentMethod(b.MethodID)
		if !ok {
			return ledger.Event{}, apperr.Preconditionf(op, ErrUnknownMethod, "%q", b.MethodID)
		}
		entry.Method = m.Name
	}

	ev, err := a.ledger.Record(entry)
	if err != nil {
		return ledger.Event{}, err
	}
	a.ledgerChanged(ev)
	switch ev.Kind {
	case ledger.KindSale, ledger.KindDeposit:
		a.cues.Play(feedback.CuePaymentConfirmed, ev.Amount.String())
	default:
		a.cues.Play(feedback.CueNotification, ev.Description)
	}
	return ev, a.persist(ctx, KeyLedger)
}

func (a *App) ledgerChanged(ev ledger.Event) {
	a.metrics.LedgerEvents.WithLabelValues(string(ev.Kind)).Inc()
	a.metrics.CashOnHand.Set(a.ledger.CashOnHand().InexactFloat64())
	a.log.Info("ledger event", "id", ev.ID, "kind", ev.Kind, "amount", ev.Amount.String())
}
