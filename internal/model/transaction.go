package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReconcileState is the reconciliation flag carried by a split.
type ReconcileState string

const (
	NotReconciled ReconcileState = "n"
	Cleared       ReconcileState = "c"
	Reconciled    ReconcileState = "y"
)

// Split is one leg of a double-entry transaction, posted to exactly one
// account. Value is in the transaction's currency; Quantity is in the
// account's commodity (equal to Value when they coincide).
type Split struct {
	Account   string // full account path, e.g. "Assets:Checking Account"
	Value     decimal.Decimal
	Quantity  decimal.Decimal
	Memo      string
	Reconcile ReconcileState
}

// Transaction is an immutable posted transaction with two or more
// splits. PostDate is the economically effective date; EnterDate is the
// audit timestamp.
type Transaction struct {
	ID          string
	Currency    string
	Description string
	Notes       string
	PostDate    time.Time
	EnterDate   time.Time
	Splits      []Split
}

// Balanced reports whether the split values sum to zero, the
// double-entry invariant enforced at posting time. Aggregation treats
// unbalanced transactions as data anomalies, not fatal errors.
func (t Transaction) Balanced() bool {
	sum := decimal.Zero
	for _, s := range t.Splits {
		sum = sum.Add(s.Value)
	}
	return sum.IsZero()
}
