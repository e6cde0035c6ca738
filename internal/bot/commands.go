package bot

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Spok95/pocket-hornet/internal/app"
	"github.com/Spok95/pocket-hornet/internal/domain/catalog"
	"github.com/Spok95/pocket-hornet/internal/domain/costing"
	"github.com/Spok95/pocket-hornet/internal/domain/ledger"
	"github.com/Spok95/pocket-hornet/internal/domain/roster"
)

const helpText = `Kasse:
/cash, /events
/sale <betrag> [@team] [#zahlungsart] [text]
/expense <betrag> [text], /deposit <betrag> [text], /withdraw <betrag> [text]
/undo, /void <id>
Artikel:
/products, /product_add [kategorie], /product_name <id> <name>, /product_price <id> <preis>
/product_category <id> <kategorie>, /product_toggle <id>, /product_move <id> <ziel-id>, /product_delete <id>
/categories, /category_add, /category_rename <name>, /category_delete <name>
Teams und Zahlungsarten:
/teams, /team_add <name>, /team_delete <id>
/methods, /method_add <cash|invoice|internal> <name>, /method_delete <id>
Kosten:
/costing, /costing_set <paint|rent|food> <betrag>, /costing_on, /costing_off, /rent_paid
Daten:
/export, /transfers, /pull <datei>, /journal, /reset
Eine JSON-Konfigurationsdatei als Dokument senden, um sie zu importieren.`

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	args := msg.CommandArguments()
	switch msg.Command() {
	case "start", "help":
		m := tgbotapi.NewMessage(chatID, helpText)
		m.ReplyMarkup = adminReplyKeyboard()
		b.send(m)

	case "cash":
		b.showSummary(chatID)
	case "events":
		b.showEvents(chatID)
	case "sale":
		b.book(ctx, chatID, ledger.KindSale, args)
	case "expense":
		b.book(ctx, chatID, ledger.KindExpense, args)
	case "deposit":
		b.book(ctx, chatID, ledger.KindDeposit, args)
	case "withdraw":
		amountStr, desc := splitArgs(args)
		amount, err := parseAmount(amountStr)
		if err != nil {
			b.reply(chatID, "Betrag fehlt oder ist ungültig.")
			return
		}
		b.gated(chatID, b.app.RequestWithdrawal(amount, desc))
	case "undo":
		b.gated(chatID, b.app.RequestUndoLast())
	case "void":
		ev, ok := b.findEvent(args)
		if !ok {
			b.reply(chatID, "Buchung nicht gefunden.")
			return
		}
		b.gated(chatID, b.app.RequestVoid(ev.ID))

	case "products":
		b.showProducts(chatID)
	case "product_add":
		p, err := b.app.AddProduct(ctx, args)
		b.done(chatID, err, fmt.Sprintf("Artikel angelegt: %s [%s]", p.Name, short(p.ID)))
	case "product_name", "product_price", "product_category":
		b.patchProduct(ctx, chatID, msg.Command(), args)
	case "product_toggle":
		p, ok := b.findProduct(args)
		if !ok {
			b.reply(chatID, "Artikel nicht gefunden.")
			return
		}
		active := !p.Active
		err := b.app.UpdateProduct(ctx, p.ID, catalog.ProductPatch{Active: &active})
		b.done(chatID, err, fmt.Sprintf("%s %s", badge(active), p.Name))
	case "product_move":
		idArg, targetArg := splitArgs(args)
		p, ok := b.findProduct(idArg)
		target, ok2 := b.findProduct(targetArg)
		if !ok || !ok2 {
			b.reply(chatID, "Artikel nicht gefunden.")
			return
		}
		b.done(chatID, b.app.ReorderProduct(ctx, p.ID, target.ID), "Reihenfolge geändert.")
	case "product_delete":
		p, ok := b.findProduct(args)
		if !ok {
			b.reply(chatID, "Artikel nicht gefunden.")
			return
		}
		b.gated(chatID, b.app.RequestDeleteProduct(p.ID))

	case "categories":
		b.reply(chatID, "Kategorien:\n"+strings.Join(b.app.Categories(), "\n"))
	case "category_add":
		if args != "" {
			added, err := b.app.AddCategory(ctx, args)
			if err == nil && !added {
				b.reply(chatID, "Kategorie existiert bereits.")
				return
			}
			b.done(chatID, err, "Kategorie angelegt.")
			return
		}
		b.app.PromptAddCategory()
		b.showPending(chatID)
	case "category_rename":
		b.gated(chatID, b.app.PromptRenameCategory(args))
	case "category_delete":
		b.gated(chatID, b.app.RequestDeleteCategory(args))

	case "teams":
		b.showTeams(chatID)
	case "team_add":
		t, err := b.app.AddTeam(ctx, args)
		b.done(chatID, err, fmt.Sprintf("Team angelegt: %s [%s]", t.Name, short(t.ID)))
	case "team_delete":
		t, ok := b.findTeam(args)
		if !ok {
			b.reply(chatID, "Team nicht gefunden.")
			return
		}
		b.gated(chatID, b.app.RequestDeleteTeam(t.ID))
	case "methods":
		b.showMethods(chatID)
	case "method_add":
		kind, name := splitArgs(args)
		m, err := b.app.AddPaymentMethod(ctx, name, roster.PaymentKind(kind))
		b.done(chatID, err, fmt.Sprintf("Zahlungsart angelegt: %s [%s]", m.Name, short(m.ID)))
	case "method_delete":
		m, ok := b.findMethod(args)
		if !ok {
			b.reply(chatID, "Zahlungsart nicht gefunden.")
			return
		}
		b.gated(chatID, b.app.RequestDeletePaymentMethod(m.ID))

	case "costing":
		b.showCosting(chatID)
	case "costing_set":
		b.setCost(ctx, chatID, args)
	case "costing_on", "costing_off":
		active := msg.Command() == "costing_on"
		_, err := b.app.UpdateCosting(ctx, costing.Patch{Active: &active})
		b.done(chatID, err, fmt.Sprintf("Kostenrechnung %s", badge(active)))
	case "rent_paid":
		paid := !b.app.Costing().RentPaid
		_, err := b.app.UpdateCosting(ctx, costing.Patch{RentPaid: &paid})
		b.done(chatID, err, fmt.Sprintf("Miete bezahlt: %s", badge(paid)))

	case "export":
		b.sendExport(ctx, chatID)
	case "transfers":
		b.showTransfers(ctx, chatID)
	case "pull":
		b.pullTransfer(ctx, chatID, args)
	case "journal":
		b.sendJournal(ctx, chatID)
	case "reset":
		b.app.RequestFactoryReset()
		b.showPending(chatID)

	default:
		b.reply(chatID, "Unbekannter Befehl. /help zeigt alle Befehle.")
	}
}

// handleText maps reply keyboard buttons or answers a pending prompt. A button
// pressed while a prompt is open cancels the prompt.
func (b *Bot) handleText(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	if !isReplyButton(msg.Text) {
		if !b.answerPrompt(ctx, chatID, msg.Text) {
			b.reply(chatID, "/help zeigt alle Befehle.")
		}
		return
	}
	b.dropPrompt()
	switch msg.Text {
	case btnCash:
		b.showSummary(chatID)
	case btnUndo:
		b.gated(chatID, b.app.RequestUndoLast())
	case btnExport:
		b.sendExport(ctx, chatID)
	case btnJournal:
		b.sendJournal(ctx, chatID)
	case btnCatalog:
		b.showProducts(chatID)
	case btnTeams:
		b.showTeams(chatID)
	}
}

// gated shows the pending request when the Request call was accepted, or the reason it was not.
func (b *Bot) gated(chatID int64, err error) {
	if err != nil {
		b.reportErr(chatID, err)
		return
	}
	b.showPending(chatID)
}

func (b *Bot) done(chatID int64, err error, ok string) {
	if err != nil {
		b.reportErr(chatID, err)
		return
	}
	b.reply(chatID, ok)
}

// book parses "<amount> [@team] [#method] [description]".
func (b *Bot) book(ctx context.Context, chatID int64, kind ledger.Kind, args string) {
	amountStr, rest := splitArgs(args)
	amount, err := parseAmount(amountStr)
	if err != nil {
		b.reply(chatID, "Betrag fehlt oder ist ungültig.")
		return
	}
	booking := app.Booking{Kind: kind, Amount: amount}
	var words []string
	for _, w := range strings.Fields(rest) {
		switch {
		case strings.HasPrefix(w, "@") && booking.TeamID == "":
			t, ok := b.findTeam(strings.TrimPrefix(w, "@"))
			if !ok {
				b.reply(chatID, "Team nicht gefunden: "+w)
				return
			}
			booking.TeamID = t.ID
		case strings.HasPrefix(w, "#") && booking.MethodID == "":
			m, ok := b.findMethod(strings.TrimPrefix(w, "#"))
			if !ok {
				b.reply(chatID, "Zahlungsart nicht gefunden: "+w)
				return
			}
			booking.MethodID = m.ID
		default:
			words = append(words, w)
		}
	}
	booking.Description = strings.Join(words, " ")

	ev, err := b.app.Record(ctx, booking)
	b.done(chatID, err, fmt.Sprintf("Gebucht: %s %s [%s]\nKasse: %s",
		ev.Description, money(ev.Amount), short(ev.ID), money(b.app.Summary().CashOnHand)))
}

func (b *Bot) patchProduct(ctx context.Context, chatID int64, cmd, args string) {
	idArg, value := splitArgs(args)
	p, ok := b.findProduct(idArg)
	if !ok || value == "" {
		b.reply(chatID, "Artikel nicht gefunden oder Wert fehlt.")
		return
	}
	var patch catalog.ProductPatch
	switch cmd {
	case "product_name":
		patch.Name = &value
	case "product_price":
		price, err := parseAmount(value)
		if err != nil || price.IsNegative() {
			b.reply(chatID, "Preis ist ungültig.")
			return
		}
		patch.Price = &price
	case "product_category":
		category := catalog.NormalizeCategory(value)
		patch.Category = &category
	}
	b.done(chatID, b.app.UpdateProduct(ctx, p.ID, patch), "Artikel aktualisiert.")
}

func (b *Bot) setCost(ctx context.Context, chatID int64, args string) {
	field, value := splitArgs(args)
	amount, err := parseAmount(value)
	if err != nil {
		b.reply(chatID, "Betrag fehlt oder ist ungültig.")
		return
	}
	var patch costing.Patch
	switch field {
	case "paint":
		patch.PaintCostPerUnit = &amount
	case "rent":
		patch.RentCost = &amount
	case "food":
		patch.ConsumablesCost = &amount
	default:
		b.reply(chatID, "Feld muss paint, rent oder food sein.")
		return
	}
	_, err = b.app.UpdateCosting(ctx, patch)
	b.done(chatID, err, "Kosten gespeichert.")
}

func (b *Bot) findProduct(key string) (catalog.Product, bool) {
	return findByID(b.app.Products(), key, func(p catalog.Product) string { return p.ID })
}

func (b *Bot) findTeam(key string) (roster.Team, bool) {
	teams := b.app.Teams()
	for _, t := range teams {
		if strings.EqualFold(t.Name, key) {
			return t, true
		}
	}
	return findByID(teams, key, func(t roster.Team) string { return t.ID })
}

func (b *Bot) findMethod(key string) (roster.PaymentMethod, bool) {
	methods := b.app.PaymentMethods()
	for _, m := range methods {
		if strings.EqualFold(m.Name, key) {
			return m, true
		}
	}
	return findByID(methods, key, func(m roster.PaymentMethod) string { return m.ID })
}

func (b *Bot) findEvent(key string) (ledger.Event, bool) {
	return findByID(b.app.Events(), key, func(ev ledger.Event) string { return ev.ID })
}

// findByID resolves a full id or a unique id suffix as printed by short.
// Ledger ids are time ordered, so their prefixes repeat.
func findByID[T any](items []T, key string, id func(T) string) (T, bool) {
	var zero T
	key = strings.TrimSpace(key)
	if key == "" {
		return zero, false
	}
	var found []T
	for _, it := range items {
		switch {
		case id(it) == key:
			return it, true
		case strings.HasSuffix(id(it), key):
			found = append(found, it)
		}
	}
	if len(found) != 1 {
		return zero, false
	}
	return found[0], true
}

func short(id string) string {
	if len(id) > 8 {
		return id[len(id)-8:]
	}
	return id
}
