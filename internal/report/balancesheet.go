package report

import (
	"time"
)

// BalanceSheet builds a point-in-time balance sheet. Top-level accounts
// are classified into assets, liabilities and equity; each qualifying
// account becomes a group whose "_total" is its rolled-up balance and
// whose lines are the account's own balance plus its children's
// totals. A statement-wide visited set guarantees no account is counted
// under two groups.
func (b *Builder) BalanceSheet(asOf time.Time) *Statement {
	b.reset()
	st := newStatement(BalanceSheetStatement)

	if b.fallbackUsed {
		b.addDiag(DiagCurrencyFallback,
			"book has no base currency; amounts stated in %s", b.currency)
	}

	f := Filter{AsOf: asOf}
	visited := make(map[string]bool)
	for _, acct := range b.book.Root().Children() {
		if visited[acct.Path()] {
			continue
		}
		category, ok := acct.Kind().BalanceSheetCategory()
		if !ok {
			continue
		}
		node := b.aggregate(acct, f, visited)
		if node.Total.IsZero() {
			continue
		}
		g := st.category(category).group(node.Name)
		if !node.Own.IsZero() {
			g.add(node.Name, node.Own)
		}
		addDetailLines(g, node)
	}
	st.finalizeTotals()

	st.Metadata = Metadata{
		Date:        asOf.Format(dateFormat),
		Currency:    b.currency,
		Diagnostics: b.diags,
	}
	return st
}

// addDetailLines emits one line per non-placeholder child with a
// non-zero total. Placeholder children are structural only, so their
// children are presented in their place; this keeps the group total
// equal to the sum of its lines.
func addDetailLines(g *Group, node *BalanceNode) {
	for _, child := range node.Children {
		if child.Placeholder {
			addDetailLines(g, child)
			continue
		}
		if child.Total.IsZero() {
			continue
		}
		g.add(child.Name, child.Total)
	}
}
