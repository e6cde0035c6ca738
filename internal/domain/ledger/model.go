package ledger

import (
	"time"

	"github.com/shopspring/decimal"
)

type Kind string

const (
	KindSale       Kind = "sale"
	KindExpense    Kind = "expense"
	KindDeposit    Kind = "deposit"    // bareinlage
	KindWithdrawal Kind = "withdrawal" // rückzahlung bareinlage
	KindVoid       Kind = "void"       // storno
)

func (k Kind) Valid() bool {
	switch k {
	case KindSale, KindExpense, KindDeposit, KindWithdrawal, KindVoid:
		return true
	}
	return false
}

// sign is the direction the kind moves cash in.
func (k Kind) sign() int64 {
	switch k {
	case KindSale, KindDeposit:
		return 1
	case KindExpense, KindWithdrawal:
		return -1
	}
	return 0
}

func (k Kind) defaultDescription() string {
	switch k {
	case KindExpense:
		return "Sonstiges"
	case KindDeposit:
		return "Bareinlage"
	case KindWithdrawal:
		return "Rückzahlung Bareinlage"
	}
	return ""
}

// Event is an immutable ledger record. Amount is signed: positive adds cash.
type Event struct {
	ID          string          `json:"id"`
	Timestamp   time.Time       `json:"timestamp"`
	Kind        Kind            `json:"kind"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	// Counterparty is the team label copied at record time.
	Counterparty   string `json:"counterparty,omitempty"`
	CounterpartyID string `json:"counterpartyId,omitempty"`
	Method         string `json:"method,omitempty"`
	// Reverses and ReversedKind are set on void events only.
	Reverses     string `json:"reverses,omitempty"`
	ReversedKind Kind   `json:"reversedKind,omitempty"`
}

// Counterparty identifies the team an event is booked against.
type Counterparty struct {
	ID    string
	Label string
}

// Entry is the input of Record. Amount is the positive magnitude.
type Entry struct {
	Kind         Kind
	Amount       decimal.Decimal
	Description  string
	Counterparty *Counterparty
	Method       string
}

// CostSource is read by Profit. TotalCost is not consulted while Enabled is false.
type CostSource interface {
	Enabled() bool
	TotalCost() decimal.Decimal
}

// Summary aggregates the non-voided events. Per-kind totals are magnitudes.
type Summary struct {
	Events      int             `json:"events"`
	Voided      int             `json:"voided"`
	Sales       decimal.Decimal `json:"sales"`
	Expenses    decimal.Decimal `json:"expenses"`
	Deposits    decimal.Decimal `json:"deposits"`
	Withdrawals decimal.Decimal `json:"withdrawals"`
	Costs       decimal.Decimal `json:"costs"`
	CashOnHand  decimal.Decimal `json:"cashOnHand"`
	Profit      decimal.Decimal `json:"profit"`
}
