package model

import "fmt"

// AccountKind classifies accounts in the GnuCash account tree.
type AccountKind string

const (
	KindRoot       AccountKind = "ROOT"
	KindAsset      AccountKind = "ASSET"
	KindBank       AccountKind = "BANK"
	KindCash       AccountKind = "CASH"
	KindCredit     AccountKind = "CREDIT"
	KindLiability  AccountKind = "LIABILITY"
	KindEquity     AccountKind = "EQUITY"
	KindIncome     AccountKind = "INCOME"
	KindExpense    AccountKind = "EXPENSE"
	KindStock      AccountKind = "STOCK"
	KindMutual     AccountKind = "MUTUAL"
	KindReceivable AccountKind = "RECEIVABLE"
	KindPayable    AccountKind = "PAYABLE"
	KindTrading    AccountKind = "TRADING"
)

// Statement category names. These are interchange keys consumed by
// downstream renderers and must not change.
const (
	CategoryAssets      = "assets"
	CategoryLiabilities = "liabilities"
	CategoryEquity      = "equity"
	CategoryOperating   = "operating"
	CategoryInvesting   = "investing"
	CategoryFinancing   = "financing"
)

// statementClass is one row of the canonical classification table.
// An empty category means the kind is excluded from that statement.
type statementClass struct {
	balanceSheet string
	cashFlow     string
}

// The single classification table feeding both statement types.
var statementClasses = map[AccountKind]statementClass{
	KindAsset:     {balanceSheet: CategoryAssets, cashFlow: CategoryInvesting},
	KindBank:      {balanceSheet: CategoryAssets},
	KindCash:      {balanceSheet: CategoryAssets},
	KindStock:     {balanceSheet: CategoryAssets},
	KindMutual:    {balanceSheet: CategoryAssets},
	KindLiability: {balanceSheet: CategoryLiabilities, cashFlow: CategoryFinancing},
	KindCredit:    {balanceSheet: CategoryLiabilities},
	KindPayable:   {balanceSheet: CategoryLiabilities},
	KindEquity:    {balanceSheet: CategoryEquity, cashFlow: CategoryFinancing},
	KindIncome:    {cashFlow: CategoryOperating},
	KindExpense:   {cashFlow: CategoryOperating},
}

// BalanceSheetCategory returns the balance-sheet category for the kind,
// or false if the kind does not appear on a balance sheet.
func (k AccountKind) BalanceSheetCategory() (string, bool) {
	c := statementClasses[k].balanceSheet
	return c, c != ""
}

// CashFlowCategory returns the cash-flow category for the kind, or
// false if the kind does not appear on a cash-flow statement.
func (k AccountKind) CashFlowCategory() (string, bool) {
	c := statementClasses[k].cashFlow
	return c, c != ""
}

// ParseAccountKind validates a kind string against the closed set.
func ParseAccountKind(s string) (AccountKind, error) {
	switch k := AccountKind(s); k {
	case KindRoot, KindAsset, KindBank, KindCash, KindCredit, KindLiability,
		KindEquity, KindIncome, KindExpense, KindStock, KindMutual,
		KindReceivable, KindPayable, KindTrading:
		return k, nil
	default:
		return "", fmt.Errorf("unknown account kind %q", s)
	}
}
