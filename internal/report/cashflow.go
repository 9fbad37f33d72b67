package report

import (
	"strings"
	"time"

	"github.com/p2c2e/gnucash-cli/internal/model"
)

// CashFlow builds a cash-flow statement for [start, end]. Unlike the
// balance sheet it walks transactions directly (flow, not stock):
// every split whose transaction posted inside the window is classified
// by its account kind — INCOME/EXPENSE as operating, ASSET as
// investing, LIABILITY/EQUITY as financing — and its absolute value is
// accumulated. The configured operating-cash accounts are the cash
// whose movement the statement explains, so their splits are skipped.
func (b *Builder) CashFlow(start, end time.Time) *Statement {
	b.reset()
	st := newStatement(CashFlowStatement)

	if b.fallbackUsed {
		b.addDiag(DiagCurrencyFallback,
			"book has no base currency; amounts stated in %s", b.currency)
	}

	for _, tx := range b.book.Transactions() {
		if tx.PostDate.Before(start) || tx.PostDate.After(end) {
			continue
		}
		if !tx.Balanced() {
			b.addDiag(DiagUnbalancedTransaction,
				"transaction %s (%q) splits do not sum to zero; excluded", tx.ID, tx.Description)
			continue
		}
		for _, sp := range tx.Splits {
			acct, ok := b.book.Lookup(sp.Account)
			if !ok {
				b.addDiag(DiagStructuralAnomaly,
					"split references unknown account %q; excluded", sp.Account)
				continue
			}
			category, ok := acct.Kind().CashFlowCategory()
			if !ok {
				continue
			}
			if category == model.CategoryInvesting && b.operatingCash[acct.Name()] {
				continue
			}
			group := strings.ToLower(string(acct.Kind()))
			st.category(category).group(group).add(acct.Name(), sp.Value.Abs())
		}
	}
	st.finalizeTotals()

	st.Metadata = Metadata{
		StartDate:   start.Format(dateFormat),
		EndDate:     end.Format(dateFormat),
		Currency:    b.currency,
		Diagnostics: b.diags,
	}
	return st
}
