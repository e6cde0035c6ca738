// Package report renders the ledger journal as an Excel workbook.
package report

import (
	"bytes"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/Spok95/pocket-hornet/internal/domain/ledger"
)

const (
	JournalSheet = "Journal"
	SummarySheet = "Summe"
)

var kindLabels = map[ledger.Kind]string{
	ledger.KindSale:       "Verkauf",
	ledger.KindExpense:    "Ausgabe",
	ledger.KindDeposit:    "Bareinlage",
	ledger.KindWithdrawal: "Rückzahlung",
	ledger.KindVoid:       "Storno",
}

// JournalFileName is the conventional name of a journal exported at t.
func JournalFileName(t time.Time) string {
	return fmt.Sprintf("HORNET_JOURNAL_%s.xlsx", t.Format("20060102_150405"))
}

// Journal writes every event, voided ones marked, plus a totals sheet.
// Timestamps are rendered in loc.
func Journal(events []ledger.Event, sum ledger.Summary, loc *time.Location) ([]byte, error) {
	if loc == nil {
		loc = time.Local
	}
	voided := make(map[string]bool, len(events))
	for _, ev := range events {
		if ev.Kind == ledger.KindVoid {
			voided[ev.Reverses] = true
		}
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(f.GetActiveSheetIndex()), JournalSheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	header := []interface{}{"Zeit", "Art", "Betrag", "Beschreibung", "Team", "Zahlungsart", "Storniert", "ID", "Storno von"}
	if err := f.SetSheetRow(JournalSheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("journal header: %w", err)
	}

	for i, ev := range events {
		mark := ""
		if voided[ev.ID] {
			mark = "ja"
		}
		row := []interface{}{
			ev.Timestamp.In(loc).Format("2006-01-02 15:04:05"),
			kindLabels[ev.Kind],
			ev.Amount.InexactFloat64(),
			ev.Description,
			ev.Counterparty,
			ev.Method,
			mark,
			ev.ID,
			ev.Reverses,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(JournalSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("journal row %d: %w", i+2, err)
		}
	}

	if _, err := f.NewSheet(SummarySheet); err != nil {
		return nil, fmt.Errorf("summary sheet: %w", err)
	}
	totals := [][]interface{}{
		{"Buchungen", sum.Events},
		{"Storniert", sum.Voided},
		{"Verkäufe", sum.Sales.InexactFloat64()},
		{"Ausgaben", sum.Expenses.InexactFloat64()},
		{"Bareinlagen", sum.Deposits.InexactFloat64()},
		{"Rückzahlungen", sum.Withdrawals.InexactFloat64()},
		{"Kosten", sum.Costs.InexactFloat64()},
		{"Kassenbestand", sum.CashOnHand.InexactFloat64()},
		{"Gewinn", sum.Profit.InexactFloat64()},
	}
	for i, r := range totals {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(SummarySheet, cell, &r); err != nil {
			return nil, fmt.Errorf("summary row %d: %w", i+1, err)
		}
	}

	buf := &bytes.Buffer{}
	if err := f.Write(buf); err != nil {
		return nil, fmt.Errorf("write journal: %w", err)
	}
	return buf.Bytes(), nil
}
