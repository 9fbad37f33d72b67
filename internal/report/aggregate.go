// Package report turns a book snapshot into categorized financial
// statements: account balances are rolled up the account tree,
// foreign-commodity balances are translated to the base currency at
// the latest known price, and the results are assembled into balance
// sheets and cash-flow statements with per-group and per-category
// totals.
package report

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/p2c2e/gnucash-cli/internal/book"
	"github.com/p2c2e/gnucash-cli/internal/model"
)

const dateFormat = "2006-01-02"

// Config carries the policy knobs statement assembly needs.
type Config struct {
	// FallbackCurrency is used when the book has no discoverable base
	// currency.
	FallbackCurrency string
	// OperatingCashAccounts names the ASSET accounts whose movements a
	// cash-flow statement explains; their splits are excluded from the
	// investing category.
	OperatingCashAccounts []string
}

// Filter restricts which splits enter an aggregation. When Start and
// End are set the post date must fall within them (flow statements);
// otherwise a non-zero AsOf is a point-in-time cutoff. A zero Filter
// includes everything.
type Filter struct {
	AsOf           time.Time
	Start          time.Time
	End            time.Time
	ReconciledOnly bool
}

func (f Filter) includes(postDate time.Time) bool {
	if !f.Start.IsZero() || !f.End.IsZero() {
		return !postDate.Before(f.Start) && !postDate.After(f.End)
	}
	if !f.AsOf.IsZero() {
		return !postDate.After(f.AsOf)
	}
	return true
}

// valuationDate is the as-of date for price lookups under this filter.
func (f Filter) valuationDate() time.Time {
	if !f.End.IsZero() {
		return f.End
	}
	if !f.AsOf.IsZero() {
		return f.AsOf
	}
	return time.Now().UTC()
}

// BalanceNode is one account's aggregation result: the balance from
// its own splits and the total rolled up over all descendants, both in
// the base currency.
type BalanceNode struct {
	Path        string
	Name        string
	Placeholder bool
	Leaf        bool
	Own         decimal.Decimal
	Total       decimal.Decimal
	Children    []*BalanceNode
}

// Builder assembles statements from one book snapshot. A Builder is
// cheap to create and not safe for concurrent use; make one per
// request so every statement sees a single consistent snapshot and its
// own diagnostics.
type Builder struct {
	book          *book.Book
	currency      string
	fallbackUsed  bool
	operatingCash map[string]bool
	diags         []Diagnostic
	seen          map[string]bool
}

// NewBuilder creates a Builder over a snapshot.
func NewBuilder(b *book.Book, cfg Config) *Builder {
	currency := b.BaseCurrency()
	fallbackUsed := false
	if currency == "" {
		currency = cfg.FallbackCurrency
		fallbackUsed = true
	}
	operatingCash := make(map[string]bool, len(cfg.OperatingCashAccounts))
	for _, name := range cfg.OperatingCashAccounts {
		operatingCash[name] = true
	}
	return &Builder{
		book:          b,
		currency:      currency,
		fallbackUsed:  fallbackUsed,
		operatingCash: operatingCash,
		seen:          make(map[string]bool),
	}
}

// Currency returns the base currency statements are stated in.
func (b *Builder) Currency() string { return b.currency }

// Diagnostics returns the conditions recorded since the builder was
// created or last reset by a statement build.
func (b *Builder) Diagnostics() []Diagnostic { return b.diags }

func (b *Builder) reset() {
	b.diags = nil
	b.seen = make(map[string]bool)
}

// Aggregate computes the rolled-up balance tree for one account. The
// visited set guarding against double counting is scoped to this call.
func (b *Builder) Aggregate(acct *book.Account, f Filter) *BalanceNode {
	return b.aggregate(acct, f, make(map[string]bool))
}

// aggregate walks the subtree under acct. An account reached twice in
// one traversal is a structural anomaly (the tree invariant is broken);
// it contributes a zero node and a diagnostic rather than aborting, so
// report generation always completes.
func (b *Builder) aggregate(acct *book.Account, f Filter, visited map[string]bool) *BalanceNode {
	path := acct.Path()
	node := &BalanceNode{
		Path:        path,
		Name:        acct.Name(),
		Placeholder: acct.Placeholder(),
		Leaf:        !acct.HasChildren(),
		Own:         decimal.Zero,
		Total:       decimal.Zero,
	}
	if visited[path] {
		b.addDiag(DiagStructuralAnomaly, "account %q reached twice in one traversal; counted once", path)
		return node
	}
	visited[path] = true

	native := decimal.Zero
	for _, ref := range acct.Splits() {
		if !f.includes(ref.Transaction.PostDate) {
			continue
		}
		if f.ReconciledOnly && ref.Split.Reconcile != model.Reconciled {
			continue
		}
		if !ref.Transaction.Balanced() {
			b.addDiag(DiagUnbalancedTransaction,
				"transaction %s (%q) splits do not sum to zero; excluded", ref.Transaction.ID, ref.Transaction.Description)
			continue
		}
		native = native.Add(ref.Split.Quantity)
	}
	node.Own = b.valuate(acct, native, f.valuationDate())

	total := node.Own
	for _, child := range acct.Children() {
		cn := b.aggregate(child, f, visited)
		node.Children = append(node.Children, cn)
		total = total.Add(cn.Total)
	}
	node.Total = total
	return node
}

// valuate converts a native balance (in the account's commodity) to the
// base currency. STOCK and MUTUAL balances are unit counts and always
// priced; other accounts are priced only when their commodity differs
// from the base currency. A missing price values the balance at zero
// and is surfaced as a diagnostic, never an error.
func (b *Builder) valuate(acct *book.Account, native decimal.Decimal, asOf time.Time) decimal.Decimal {
	c := acct.Commodity()
	kind := acct.Kind()
	if kind != model.KindStock && kind != model.KindMutual &&
		c.IsCurrency() && c.Mnemonic == b.currency {
		return native
	}
	price, ok := b.book.PriceAsOf(c.Key(), asOf)
	if !ok && !native.IsZero() {
		b.addDiag(DiagValuationUnavailable,
			"no %s price for %s at or before %s; %q valued at zero",
			b.currency, c.Key(), asOf.Format(dateFormat), acct.Path())
	}
	return native.Mul(price)
}
