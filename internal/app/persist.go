package app

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Spok95/pocket-hornet/internal/apperr"
	"github.com/Spok95/pocket-hornet/internal/domain/catalog"
	"github.com/Spok95/pocket-hornet/internal/domain/costing"
	"github.com/Spok95/pocket-hornet/internal/domain/ledger"
	"github.com/Spok95/pocket-hornet/internal/domain/roster"
)

// Durable store keys, one per store.
const (
	KeyProducts       = "gh_products"
	KeyCategories     = "gh_categories"
	KeyTeams          = "gh_teams"
	KeyPaymentMethods = "gh_payment_methods"
	KeyCosting        = "gh_loot_config"
	KeyLedger         = "gh_ledger"
)

var (
	catalogKeys  = []string{KeyProducts, KeyCategories}
	rosterKeys   = []string{KeyTeams, KeyPaymentMethods}
	snapshotKeys = []string{KeyProducts, KeyCategories, KeyTeams, KeyPaymentMethods, KeyCosting}
)

// Load seeds the stores from the durable store. Absent keys keep their defaults.
func (a *App) Load(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	var (
		products   []catalog.Product
		categories []string
		teams      []roster.Team
		methods    []roster.PaymentMethod
		cfg        costing.Config
		events     []ledger.Event
	)
	targets := []struct {
		key string
		dst any
	}{
		{KeyProducts, &products},
		{KeyCategories, &categories},
		{KeyTeams, &teams},
		{KeyPaymentMethods, &methods},
		{KeyCosting, &cfg},
		{KeyLedger, &events},
	}
	for _, t := range targets {
		raw, ok, err := a.store.Load(ctx, t.key)
		if err != nil {
			return fmt.Errorf("load %s: %w", t.key, err)
		}
		if !ok {
			continue
		}
		if err := json.Unmarshal(raw, t.dst); err != nil {
			return fmt.Errorf("decode %s: %w", t.key, err)
		}
	}

	a.catalog.Replace(products, categories)
	a.roster.Replace(teams, methods)
	a.costing = cfg
	a.ledger.Restore(events)
	a.refreshGauges()
	a.log.Info("state loaded",
		"driver", a.store.Driver(),
		"products", len(products),
		"teams", len(teams),
		"events", len(events),
	)
	return nil
}

// persist writes the given keys in one batch. A failure leaves memory as is and
// is returned as a persistence error so the caller can warn the operator.
func (a *App) persist(ctx context.Context, keys ...string) error {
	entries := make(map[string][]byte, len(keys))
	for _, k := range keys {
		raw, err := json.Marshal(a.valueOf(k))
		if err != nil {
			return a.persistFailed(k, err)
		}
		entries[k] = raw
	}
	if err := a.store.Save(ctx, entries); err != nil {
		return a.persistFailed(fmt.Sprint(keys), err)
	}
	return nil
}

func (a *App) persistFailed(what string, err error) error {
	a.metrics.PersistenceFailures.Inc()
	a.log.Warn("durable write failed, memory and disk diverge", "keys", what, "err", err)
	return apperr.New(apperr.Persistence, "app.persist", err)
}

func (a *App) valueOf(key string) any {
	switch key {
	case KeyProducts:
		return a.catalog.Products()
	case KeyCategories:
		return a.catalog.Categories()
	case KeyTeams:
		return a.roster.Teams()
	case KeyPaymentMethods:
		return a.roster.PaymentMethods()
	case KeyCosting:
		return a.costing
	case KeyLedger:
		return a.ledger.Events()
	}
	return nil
}
