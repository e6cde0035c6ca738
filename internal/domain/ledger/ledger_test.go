package ledger

import (
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Spok95/pocket-hornet/internal/apperr"
)

func newTestLedger() *Ledger {
	seq := 0
	base := time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)
	return New(
		WithIDs(func() string { seq++; return fmt.Sprintf("ev-%03d", seq) }),
		WithClock(func() time.Time { return base.Add(time.Duration(seq) * time.Minute) }),
	)
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func record(t *testing.T, l *Ledger, kind Kind, amount string) Event {
	t.Helper()
	ev, err := l.Record(Entry{Kind: kind, Amount: dec(amount), Description: string(kind)})
	require.NoError(t, err)
	return ev
}

type costSpy struct {
	enabled bool
	total   decimal.Decimal
	reads   int
}

func (c *costSpy) Enabled() bool { return c.enabled }

func (c *costSpy) TotalCost() decimal.Decimal {
	c.reads++
	return c.total
}

func TestRecordSignsAmounts(t *testing.T) {
	l := newTestLedger()

	tests := []struct {
		kind Kind
		want string
	}{
		{KindSale, "8"},
		{KindDeposit, "8"},
		{KindExpense, "-8"},
		{KindWithdrawal, "-8"},
	}
	for _, tt := range tests {
		ev := record(t, l, tt.kind, "8")
		assert.Equal(t, tt.want, ev.Amount.String(), tt.kind)
	}
}

func TestRecordPreconditions(t *testing.T) {
	l := newTestLedger()

	for _, tc := range []struct {
		entry Entry
		want  error
	}{
		{Entry{Kind: KindSale, Amount: decimal.Zero}, ErrNonPositiveAmount},
		{Entry{Kind: KindExpense, Amount: dec("-1")}, ErrNonPositiveAmount},
		{Entry{Kind: KindVoid, Amount: dec("1")}, ErrVoidViaRecord},
		{Entry{Kind: Kind("gift"), Amount: dec("1")}, ErrUnknownKind},
	} {
		_, err := l.Record(tc.entry)
		require.ErrorIs(t, err, tc.want)
		assert.True(t, apperr.Is(err, apperr.Precondition))
	}
	assert.Zero(t, l.Len())
}

func TestRecordDefaultsAndCounterparty(t *testing.T) {
	l := newTestLedger()

	ev, err := l.Record(Entry{Kind: KindDeposit, Amount: dec("50")})
	require.NoError(t, err)
	assert.Equal(t, "Bareinlage", ev.Description)

	ev, err = l.Record(Entry{
		Kind:         KindSale,
		Amount:       dec("12.5"),
		Description:  "Paint",
		Counterparty: &Counterparty{ID: "t1", Label: "Green Hornets"},
		Method:       "RECHNUNG",
	})
	require.NoError(t, err)
	assert.Equal(t, "Green Hornets", ev.Counterparty)
	assert.Equal(t, "t1", ev.CounterpartyID)
	assert.Equal(t, "RECHNUNG", ev.Method)
}

func TestScenarioSaleThenUndo(t *testing.T) {
	l := newTestLedger()

	record(t, l, KindSale, "8")
	assert.Equal(t, "8", l.CashOnHand().String())

	void, err := l.UndoLast()
	require.NoError(t, err)
	assert.Equal(t, KindVoid, void.Kind)
	assert.Equal(t, KindSale, void.ReversedKind)
	assert.Equal(t, "-8", void.Amount.String())
	assert.True(t, l.CashOnHand().IsZero())
}

func TestUndoTwiceIsNoop(t *testing.T) {
	l := newTestLedger()
	record(t, l, KindSale, "5")
	record(t, l, KindSale, "3")

	_, ok := l.LastTransaction()
	require.True(t, ok)

	_, err := l.UndoLast()
	require.NoError(t, err)
	_, ok = l.LastTransaction()
	assert.False(t, ok)

	_, err = l.UndoLast()
	require.ErrorIs(t, err, ErrNoLastTransaction)
	assert.True(t, apperr.Is(err, apperr.Precondition))
	assert.Equal(t, 3, l.Len(), "second undo appends nothing")
	assert.Equal(t, "5", l.CashOnHand().String())
}

func TestUndoOnEmptyLedger(t *testing.T) {
	_, err := newTestLedger().UndoLast()
	require.ErrorIs(t, err, ErrNoLastTransaction)
}

func TestVoidRules(t *testing.T) {
	l := newTestLedger()
	a := record(t, l, KindSale, "10")
	b := record(t, l, KindExpense, "4")

	v, err := l.Void(a.ID)
	require.NoError(t, err)
	assert.Equal(t, a.ID, v.Reverses)
	assert.Equal(t, "STORNO: sale", v.Description)

	_, err = l.Void(a.ID)
	require.ErrorIs(t, err, ErrAlreadyVoided)
	_, err = l.Void(v.ID)
	require.ErrorIs(t, err, ErrVoidOfVoid)
	_, err = l.Void("missing")
	require.ErrorIs(t, err, ErrUnknownEvent)

	last, ok := l.LastTransaction()
	require.True(t, ok, "voiding an older event keeps the last transaction")
	assert.Equal(t, b.ID, last.ID)

	assert.Len(t, l.Events(), 3, "voided events stay visible")
	assert.True(t, l.IsVoided(a.ID))
	assert.Equal(t, "-4", l.CashOnHand().String())
}

func TestCashOnHandEqualsSignedSumOfLiveEvents(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	kinds := []Kind{KindSale, KindExpense, KindDeposit, KindWithdrawal}

	for run := 0; run < 50; run++ {
		l := newTestLedger()
		var recorded []Event
		for i := 0; i < 30; i++ {
			if len(recorded) > 0 && rng.Intn(4) == 0 {
				target := recorded[rng.Intn(len(recorded))]
				_, _ = l.Void(target.ID)
				continue
			}
			amount := decimal.New(int64(rng.Intn(10_000)+1), -2)
			ev, err := l.Record(Entry{Kind: kinds[rng.Intn(len(kinds))], Amount: amount})
			require.NoError(t, err)
			recorded = append(recorded, ev)
		}

		want := decimal.Zero
		all := decimal.Zero
		for _, ev := range l.Events() {
			all = all.Add(ev.Amount)
			if ev.Kind != KindVoid && !l.IsVoided(ev.ID) {
				want = want.Add(ev.Amount)
			}
		}
		require.True(t, want.Equal(l.CashOnHand()), "run %d", run)
		require.True(t, all.Equal(l.CashOnHand()), "void pairs net to zero, run %d", run)
	}
}

func TestProfitScenario(t *testing.T) {
	l := newTestLedger()
	record(t, l, KindSale, "50")
	record(t, l, KindExpense, "5")
	record(t, l, KindDeposit, "100")
	record(t, l, KindWithdrawal, "20")

	costs := &costSpy{enabled: true, total: dec("12")}
	assert.Equal(t, "33", l.Profit(costs).String())

	costs.enabled = false
	costs.reads = 0
	assert.Equal(t, "45", l.Profit(costs).String())
	assert.Zero(t, costs.reads, "cost fields are not read while costing is inactive")
	assert.Equal(t, 4, l.Len(), "toggling costing leaves the ledger untouched")
	assert.Equal(t, "45", l.Profit(nil).String())
}

func TestProfitExcludesVoided(t *testing.T) {
	l := newTestLedger()
	record(t, l, KindSale, "50")
	record(t, l, KindSale, "7")
	_, err := l.UndoLast()
	require.NoError(t, err)

	assert.Equal(t, "50", l.Profit(nil).String())
}

func TestSummary(t *testing.T) {
	l := newTestLedger()
	record(t, l, KindSale, "50")
	record(t, l, KindExpense, "5")
	record(t, l, KindDeposit, "100")
	record(t, l, KindWithdrawal, "20")
	s := record(t, l, KindSale, "9")
	_, err := l.Void(s.ID)
	require.NoError(t, err)

	sum := l.Summary(&costSpy{enabled: true, total: dec("12")})

	assert.Equal(t, 6, sum.Events)
	assert.Equal(t, 1, sum.Voided)
	assert.Equal(t, "50", sum.Sales.String())
	assert.Equal(t, "5", sum.Expenses.String())
	assert.Equal(t, "100", sum.Deposits.String())
	assert.Equal(t, "20", sum.Withdrawals.String())
	assert.Equal(t, "12", sum.Costs.String())
	assert.Equal(t, "125", sum.CashOnHand.String())
	assert.Equal(t, "33", sum.Profit.String())
}

func TestRestoreRebuildsVoidIndex(t *testing.T) {
	l := newTestLedger()
	record(t, l, KindSale, "5")
	record(t, l, KindSale, "3")
	_, err := l.UndoLast()
	require.NoError(t, err)

	restored := New()
	restored.Restore(l.Events())

	assert.True(t, l.CashOnHand().Equal(restored.CashOnHand()))
	_, ok := restored.LastTransaction()
	assert.False(t, ok)
	_, err = restored.UndoLast()
	assert.ErrorIs(t, err, ErrNoLastTransaction)
}
