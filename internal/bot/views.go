package bot

import (
	"fmt"
	"strings"

	"github.com/Spok95/pocket-hornet/internal/domain/catalog"
)

const eventsShown = 10

func (b *Bot) showSummary(chatID int64) {
	s := b.app.Summary()
	var sb strings.Builder
	fmt.Fprintf(&sb, "💶 Kasse: %s\n", money(s.CashOnHand))
	fmt.Fprintf(&sb, "📈 Gewinn: %s\n\n", money(s.Profit))
	fmt.Fprintf(&sb, "Verkäufe: %s\n", money(s.Sales))
	fmt.Fprintf(&sb, "Ausgaben: %s\n", money(s.Expenses))
	fmt.Fprintf(&sb, "Bareinlagen: %s\n", money(s.Deposits))
	fmt.Fprintf(&sb, "Rückzahlungen: %s\n", money(s.Withdrawals))
	if b.app.Costing().Active {
		fmt.Fprintf(&sb, "Kosten: %s\n", money(s.Costs))
	}
	fmt.Fprintf(&sb, "\nBuchungen: %d, davon storniert: %d", s.Events, s.Voided)
	if last, ok := b.app.LastTransaction(); ok {
		fmt.Fprintf(&sb, "\nLetzte: %s %s [%s]", last.Description, money(last.Amount), short(last.ID))
	}
	b.reply(chatID, sb.String())
}

func (b *Bot) showEvents(chatID int64) {
	events := b.app.Events()
	if len(events) == 0 {
		b.reply(chatID, "Noch keine Buchungen.")
		return
	}
	start := max(0, len(events)-eventsShown)
	var sb strings.Builder
	for _, ev := range events[start:] {
		mark := ""
		if b.app.IsVoided(ev.ID) {
			mark = " ❌"
		}
		line := fmt.Sprintf("[%s] %s %s %s", short(ev.ID), ev.Timestamp.Format("15:04"), money(ev.Amount), ev.Description)
		if ev.Counterparty != "" {
			line += " @" + ev.Counterparty
		}
		sb.WriteString(line + mark + "\n")
	}
	b.reply(chatID, sb.String())
}

func (b *Bot) showProducts(chatID int64) {
	products := b.app.Products()
	if len(products) == 0 {
		b.reply(chatID, "Keine Artikel. /product_add legt einen an.")
		return
	}
	byCat := map[string][]catalog.Product{}
	for _, p := range products {
		byCat[p.Category] = append(byCat[p.Category], p)
	}
	var sb strings.Builder
	for _, cat := range b.app.Categories() {
		ps := byCat[cat]
		if len(ps) == 0 {
			continue
		}
		sb.WriteString(cat + "\n")
		for _, p := range ps {
			fmt.Fprintf(&sb, "%s %s %s [%s]\n", badge(p.Active), p.Name, money(p.Price), short(p.ID))
		}
	}
	b.reply(chatID, sb.String())
}

func (b *Bot) showTeams(chatID int64) {
	teams := b.app.Teams()
	if len(teams) == 0 {
		b.reply(chatID, "Keine Teams. /team_add <name> legt eins an.")
		return
	}
	var sb strings.Builder
	for _, t := range teams {
		fmt.Fprintf(&sb, "%s %s [%s]\n", badge(t.Active), t.Name, short(t.ID))
	}
	b.reply(chatID, sb.String())
}

func (b *Bot) showMethods(chatID int64) {
	var sb strings.Builder
	for _, m := range b.app.PaymentMethods() {
		fmt.Fprintf(&sb, "%s %s (%s) [%s]\n", badge(m.Active), m.Name, m.Kind, short(m.ID))
	}
	b.reply(chatID, sb.String())
}

func (b *Bot) showCosting(chatID int64) {
	c := b.app.Costing()
	b.reply(chatID, fmt.Sprintf(
		"Kostenrechnung: %s\nFarbe pro Kiste: %s\nMiete: %s\nVerpflegung: %s\nMiete bezahlt: %s\nSumme: %s",
		badge(c.Active), money(c.PaintCostPerUnit), money(c.RentCost), money(c.ConsumablesCost),
		badge(c.RentPaid), money(c.TotalCost()),
	))
}
