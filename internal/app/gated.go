package app

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/Spok95/pocket-hornet/internal/apperr"
	"github.com/Spok95/pocket-hornet/internal/domain/catalog"
	"github.com/Spok95/pocket-hornet/internal/domain/ledger"
	"github.com/Spok95/pocket-hornet/internal/feedback"
)

// Request methods check their preconditions immediately and, when they hold,
// register a continuation on the gate. Nothing changes until Accept.

func (a *App) RequestDeleteProduct(id string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	p, ok := a.catalog.Product(id)
	if !ok {
		return apperr.Preconditionf("app.delete_product", catalog.ErrUnknownProduct, "%q", id)
	}
	a.confirm("Artikel löschen", fmt.Sprintf("%q wirklich löschen?", p.Name), true, func(ctx context.Context) error {
		if !a.catalog.DeleteProduct(id) {
			return nil
		}
		a.metrics.Products.Dec()
		a.cues.Play(feedback.CueItemRemoved, p.Name)
		return a.persist(ctx, KeyProducts)
	})
	return nil
}

func (a *App) RequestDeleteCategory(name string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	const op = "app.delete_category"
	name = catalog.NormalizeCategory(name)
	if name == catalog.DefaultCategory {
		return apperr.Preconditionf(op, catalog.ErrProtectedCategory, "%q", name)
	}
	if !a.catalog.HasCategory(name) {
		return apperr.Preconditionf(op, catalog.ErrUnknownCategory, "%q", name)
	}
	msg := fmt.Sprintf("Kategorie %q löschen? Artikel wandern nach %s.", name, catalog.DefaultCategory)
	a.confirm("Kategorie löschen", msg, true, func(ctx context.Context) error {
		if err := a.catalog.DeleteCategory(name); err != nil {
			return err
		}
		a.cues.Play(feedback.CueItemRemoved, name)
		return a.persist(ctx, catalogKeys...)
	})
	return nil
}

func (a *App) RequestDeleteTeam(id string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	t, ok := a.roster.Team(id)
	if !ok {
		return apperr.Preconditionf("app.delete_team", ErrUnknownTeam, "%q", id)
	}
	a.confirm("Team löschen", fmt.Sprintf("%q wirklich löschen?", t.Name), true, func(ctx context.Context) error {
		if !a.roster.DeleteTeam(id) {
			return nil
		}
		a.cues.Play(feedback.CueItemRemoved, t.Name)
		return a.persist(ctx, KeyTeams)
	})
	return nil
}

func (a *App) RequestDeletePaymentMethod(id string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	m, ok := a.roster.PaymentMethod(id)
	if !ok {
		return apperr.Preconditionf("app.delete_payment_method", ErrUnknownMethod, "%q", id)
	}
	a.confirm("Zahlungsart löschen", fmt.Sprintf("%q wirklich löschen?", m.Name), true, func(ctx context.Context) error {
		if !a.roster.DeletePaymentMethod(id) {
			return nil
		}
		a.cues.Play(feedback.CueItemRemoved, m.Name)
		return a.persist(ctx, KeyPaymentMethods)
	})
	return nil
}

// PromptAddCategory asks for a category name and adds it.
func (a *App) PromptAddCategory() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.prompt("Neue Kategorie", "Name der Kategorie:", "", func(ctx context.Context, value string) error {
		_, err := a.addCategory(ctx, value)
		return err
	})
}

// PromptRenameCategory asks for the new name of an existing category.
func (a *App) PromptRenameCategory(name string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	const op = "app.rename_category"
	name = catalog.NormalizeCategory(name)
	if name == catalog.DefaultCategory {
		return apperr.Preconditionf(op, catalog.ErrProtectedCategory, "%q", name)
	}
	if !a.catalog.HasCategory(name) {
		return apperr.Preconditionf(op, catalog.ErrUnknownCategory, "%q", name)
	}
	a.prompt("Kategorie umbenennen", fmt.Sprintf("Neuer Name für %s:", name), name, func(ctx context.Context, value string) error {
		return a.renameCategory(ctx, name, value)
	})
	return nil
}

func (a *App) RequestVoid(id string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	const op = "app.void"
	ev, ok := a.ledger.Lookup(id)
	switch {
	case !ok:
		return apperr.Preconditionf(op, ledger.ErrUnknownEvent, "%q", id)
	case ev.Kind == ledger.KindVoid:
		return apperr.Preconditionf(op, ledger.ErrVoidOfVoid, "%q", id)
	case a.ledger.IsVoided(id):
		return apperr.Preconditionf(op, ledger.ErrAlreadyVoided, "%q", id)
	}
	msg := fmt.Sprintf("%s über %s stornieren?", ev.Description, ev.Amount.Abs().StringFixed(2))
	a.confirm("Stornieren", msg, true, func(ctx context.Context) error {
		return a.void(ctx, func() (ledger.Event, error) { return a.ledger.Void(id) })
	})
	return nil
}

func (a *App) RequestUndoLast() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	last, ok := a.ledger.LastTransaction()
	if !ok {
		return apperr.Preconditionf("app.undo_last", ledger.ErrNoLastTransaction, "nothing to undo")
	}
	msg := fmt.Sprintf("Letzte Buchung %q über %s rückgängig machen?", last.Description, last.Amount.Abs().StringFixed(2))
	a.confirm("Rückgängig", msg, true, func(ctx context.Context) error {
		return a.void(ctx, a.ledger.UndoLast)
	})
	return nil
}

func (a *App) void(ctx context.Context, fn func() (ledger.Event, error)) error {
	ev, err := fn()
	if err != nil {
		return err
	}
	a.ledgerChanged(ev)
	a.cues.Play(feedback.CueOperationReverted, ev.Description)
	return a.persist(ctx, KeyLedger)
}

// RequestWithdrawal gates the repayment of a cash deposit.
func (a *App) RequestWithdrawal(amount decimal.Decimal, description string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !amount.IsPositive() {
		return apperr.Preconditionf("app.withdrawal", ledger.ErrNonPositiveAmount, "%s", amount)
	}
	msg := fmt.Sprintf("%s aus der Kasse entnehmen?", amount.StringFixed(2))
	a.confirm("Rückzahlung Bareinlage", msg, true, func(ctx context.Context) error {
		_, err := a.record(ctx, Booking{Kind: ledger.KindWithdrawal, Amount: amount, Description: description})
		return err
	})
	return nil
}

// RequestFactoryReset gates clearing the durable store and all stores.
func (a *App) RequestFactoryReset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.confirm("Werksreset", "Alle Daten löschen? Das kann nicht rückgängig gemacht werden.", true, func(ctx context.Context) error {
		a.resetMemory()
		a.cues.Play(feedback.CueNotification, "reset")
		if err := a.store.Clear(ctx); err != nil {
			return a.persistFailed("all", err)
		}
		a.log.Info("factory reset done")
		return nil
	})
}
