package report

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/Spok95/pocket-hornet/internal/domain/ledger"
)

func TestJournalFileName(t *testing.T) {
	at := time.Date(2026, 5, 1, 9, 4, 7, 0, time.UTC)
	assert.Equal(t, "HORNET_JOURNAL_20260501_090407.xlsx", JournalFileName(at))
}

func TestJournalMarksVoidsAndTotals(t *testing.T) {
	at := time.Date(2026, 5, 1, 20, 0, 0, 0, time.UTC)
	n := 0
	l := ledger.New(
		ledger.WithClock(func() time.Time { return at }),
		ledger.WithIDs(func() string { n++; return []string{"", "a", "b", "c"}[n] }),
	)
	_, err := l.Record(ledger.Entry{Kind: ledger.KindSale, Amount: decimal.NewFromInt(10), Description: "Cola"})
	require.NoError(t, err)
	_, err = l.Record(ledger.Entry{Kind: ledger.KindExpense, Amount: decimal.NewFromInt(3)})
	require.NoError(t, err)
	_, err = l.Void("b")
	require.NoError(t, err)

	data, err := Journal(l.Events(), l.Summary(nil), time.UTC)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(JournalSheet)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, "Zeit", rows[0][0])
	assert.Equal(t, []string{"2026-05-01 20:00:00", "Verkauf", "10", "Cola"}, rows[1][:4])
	assert.Equal(t, "ja", rows[2][6])
	assert.Equal(t, "Storno", rows[3][1])
	assert.Equal(t, "b", rows[3][8])

	cash, err := f.GetCellValue(SummarySheet, "B8")
	require.NoError(t, err)
	assert.Equal(t, "10", cash)
}
