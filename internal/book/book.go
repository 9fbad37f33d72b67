// Package book holds an in-memory GnuCash-style ledger: an account
// tree, commodities with price history, and posted transactions.
// Accounts live in a flat arena table with index links, so the tree has
// no cyclic ownership; a Book is built once and read by the report
// layer as a consistent snapshot.
package book

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/p2c2e/gnucash-cli/internal/model"
)

// PathSeparator joins account names into full paths.
const PathSeparator = ":"

// node is one arena entry. Children are kept sorted by name.
type node struct {
	name        string
	kind        model.AccountKind
	commodity   string // commodity key
	placeholder bool
	description string
	parent      int // -1 for the root node
	children    []int
}

// SplitRef pairs a split with the transaction it belongs to.
type SplitRef struct {
	Transaction *model.Transaction
	Split       *model.Split
}

// Book is a ledger snapshot. It is not safe for concurrent mutation;
// readers of a fully built Book may share it freely.
type Book struct {
	base         string // base currency mnemonic
	accounts     []node
	byPath       map[string]int
	commodities  map[string]model.Commodity
	prices       map[string][]model.Price // per commodity key, in recorded order
	transactions []*model.Transaction
	splits       map[int][]SplitRef
}

// New creates an empty book with a single ROOT account and the base
// currency registered as a commodity.
func New(baseCurrency string) *Book {
	b := &Book{
		base:        baseCurrency,
		accounts:    []node{{name: "", kind: model.KindRoot, parent: -1}},
		byPath:      map[string]int{"": 0},
		commodities: make(map[string]model.Commodity),
		prices:      make(map[string][]model.Price),
		splits:      make(map[int][]SplitRef),
	}
	b.AddCommodity(model.Commodity{
		Namespace: model.CurrencyNamespace,
		Mnemonic:  baseCurrency,
		Fullname:  baseCurrency,
		Scale:     100,
	})
	return b
}

// BaseCurrency returns the book's base currency mnemonic. It may be
// empty if the book was loaded from a snapshot without one; callers
// are expected to fall back to a configured default.
func (b *Book) BaseCurrency() string { return b.base }

// baseCommodityKey returns the commodity key of the base currency.
func (b *Book) baseCommodityKey() string {
	return model.Commodity{Namespace: model.CurrencyNamespace, Mnemonic: b.base}.Key()
}

// AddCommodity registers a commodity, replacing any previous entry
// with the same key.
func (b *Book) AddCommodity(c model.Commodity) {
	b.commodities[c.Key()] = c
}

// Commodity looks up a commodity by its "NAMESPACE:MNEMONIC" key.
func (b *Book) Commodity(key string) (model.Commodity, bool) {
	c, ok := b.commodities[key]
	return c, ok
}

// AddPrice records a price quotation. Later entries win date ties in
// PriceAsOf, so recording order is meaningful.
func (b *Book) AddPrice(p model.Price) error {
	if _, ok := b.commodities[p.Commodity]; !ok {
		return fmt.Errorf("price for unknown commodity %q", p.Commodity)
	}
	b.prices[p.Commodity] = append(b.prices[p.Commodity], p)
	return nil
}

// Prices returns the recorded quotations for a commodity in recording
// order.
func (b *Book) Prices(commodityKey string) []model.Price {
	return b.prices[commodityKey]
}

// PriceAsOf returns the most recent price for a commodity at or before
// asOf. When two quotations share the winning date, the most recently
// recorded one wins. Returns (0, false) when no price qualifies; a zero
// valuation means "unknown", and report generation surfaces it as a
// diagnostic rather than an error.
func (b *Book) PriceAsOf(commodityKey string, asOf time.Time) (decimal.Decimal, bool) {
	var (
		best  model.Price
		found bool
	)
	for _, p := range b.prices[commodityKey] {
		if p.Date.After(asOf) {
			continue
		}
		if !found || !p.Date.Before(best.Date) {
			best = p
			found = true
		}
	}
	if !found {
		return decimal.Zero, false
	}
	return best.Value, true
}

// AccountParams holds parameters for creating an account.
type AccountParams struct {
	Parent      string // full path of the parent; "" = top-level
	Name        string
	Kind        model.AccountKind
	Commodity   string // commodity key; "" = the base currency
	Placeholder bool
	Description string
}

// AddAccount creates an account under an existing parent. The account
// tree is append-only, so cycles cannot be constructed.
func (b *Book) AddAccount(p AccountParams) (*Account, error) {
	if p.Name == "" {
		return nil, fmt.Errorf("account name must not be empty")
	}
	if strings.Contains(p.Name, PathSeparator) {
		return nil, fmt.Errorf("account name %q must not contain %q", p.Name, PathSeparator)
	}
	if p.Kind == model.KindRoot {
		return nil, fmt.Errorf("cannot add a second ROOT account")
	}
	parentIdx, ok := b.byPath[p.Parent]
	if !ok {
		return nil, fmt.Errorf("parent account %q not found", p.Parent)
	}
	commodity := p.Commodity
	if commodity == "" {
		commodity = b.baseCommodityKey()
	}
	if _, ok := b.commodities[commodity]; !ok {
		return nil, fmt.Errorf("unknown commodity %q for account %q", commodity, p.Name)
	}

	idx := len(b.accounts)
	b.accounts = append(b.accounts, node{
		name:        p.Name,
		kind:        p.Kind,
		commodity:   commodity,
		placeholder: p.Placeholder,
		description: p.Description,
		parent:      parentIdx,
	})
	acct := &Account{book: b, idx: idx}

	path := acct.Path()
	if _, dup := b.byPath[path]; dup {
		b.accounts = b.accounts[:idx]
		return nil, fmt.Errorf("duplicate account path %q", path)
	}
	b.byPath[path] = idx

	parent := &b.accounts[parentIdx]
	parent.children = append(parent.children, idx)
	sort.Slice(parent.children, func(i, j int) bool {
		return b.accounts[parent.children[i]].name < b.accounts[parent.children[j]].name
	})
	return acct, nil
}

// Root returns the book's single ROOT account.
func (b *Book) Root() *Account { return &Account{book: b, idx: 0} }

// Lookup finds an account by its full path.
func (b *Book) Lookup(path string) (*Account, bool) {
	idx, ok := b.byPath[path]
	if !ok {
		return nil, false
	}
	return &Account{book: b, idx: idx}, true
}

// Accounts returns every non-ROOT account in display order (depth
// first, siblings by name).
func (b *Book) Accounts() []*Account {
	var out []*Account
	var walk func(idx int)
	walk = func(idx int) {
		if idx != 0 {
			out = append(out, &Account{book: b, idx: idx})
		}
		for _, c := range b.accounts[idx].children {
			walk(c)
		}
	}
	walk(0)
	return out
}

// Transactions returns all posted transactions in posting order.
func (b *Book) Transactions() []*model.Transaction {
	return b.transactions
}

// AddTransaction validates and posts a transaction, returning its ID.
// A missing ID is assigned a fresh uuid and a missing EnterDate is
// stamped with the current time. Splits with a zero quantity whose
// account is denominated in the transaction currency get their quantity
// defaulted to the value.
func (b *Book) AddTransaction(tx model.Transaction) (string, error) {
	return b.post(tx, true)
}

// post is the shared write path. The balance check is skipped when
// loading a snapshot: unbalanced transactions already on disk are
// tolerated and surfaced as report diagnostics, while new postings are
// rejected outright.
func (b *Book) post(tx model.Transaction, enforceBalance bool) (string, error) {
	if len(tx.Splits) < 2 {
		return "", fmt.Errorf("transaction needs at least 2 splits, got %d", len(tx.Splits))
	}
	if tx.Currency == "" {
		tx.Currency = b.base
	}
	// The book keeps split pointers, so detach from the caller's slice.
	tx.Splits = append([]model.Split(nil), tx.Splits...)
	sum := decimal.Zero
	for i := range tx.Splits {
		sp := &tx.Splits[i]
		idx, ok := b.byPath[sp.Account]
		if !ok {
			return "", fmt.Errorf("split references unknown account %q", sp.Account)
		}
		if b.accounts[idx].placeholder {
			return "", fmt.Errorf("account %q is a placeholder and cannot be posted to", sp.Account)
		}
		if sp.Quantity.IsZero() && !sp.Value.IsZero() {
			c := b.commodities[b.accounts[idx].commodity]
			if c.IsCurrency() && c.Mnemonic == tx.Currency {
				sp.Quantity = sp.Value
			}
		}
		if sp.Reconcile == "" {
			sp.Reconcile = model.NotReconciled
		}
		sum = sum.Add(sp.Value)
	}
	if enforceBalance && !sum.IsZero() {
		return "", fmt.Errorf("transaction does not balance: split values sum to %s", sum.String())
	}
	if tx.ID == "" {
		tx.ID = uuid.NewString()
	}
	if tx.EnterDate.IsZero() {
		tx.EnterDate = time.Now().UTC()
	}

	posted := &tx
	b.transactions = append(b.transactions, posted)
	for i := range posted.Splits {
		sp := &posted.Splits[i]
		idx := b.byPath[sp.Account]
		b.splits[idx] = append(b.splits[idx], SplitRef{Transaction: posted, Split: sp})
	}
	return tx.ID, nil
}

// Account is a handle into the book's account arena.
type Account struct {
	book *Book
	idx  int
}

// Name returns the account's own name (the last path segment).
func (a *Account) Name() string { return a.book.accounts[a.idx].name }

// Kind returns the account kind.
func (a *Account) Kind() model.AccountKind { return a.book.accounts[a.idx].kind }

// Placeholder reports whether the account is structural only.
func (a *Account) Placeholder() bool { return a.book.accounts[a.idx].placeholder }

// Description returns the free-text account description.
func (a *Account) Description() string { return a.book.accounts[a.idx].description }

// Commodity returns the account's commodity.
func (a *Account) Commodity() model.Commodity {
	return a.book.commodities[a.book.accounts[a.idx].commodity]
}

// IsRoot reports whether this is the book's ROOT account.
func (a *Account) IsRoot() bool { return a.idx == 0 }

// Path returns the full account path, derived by walking ancestors.
// The ROOT account's path is the empty string.
func (a *Account) Path() string {
	if a.IsRoot() {
		return ""
	}
	var names []string
	for idx := a.idx; idx != 0; idx = a.book.accounts[idx].parent {
		names = append(names, a.book.accounts[idx].name)
	}
	// names were collected leaf-first
	for i, j := 0, len(names)-1; i < j; i, j = i+1, j-1 {
		names[i], names[j] = names[j], names[i]
	}
	return strings.Join(names, PathSeparator)
}

// Parent returns the parent account, or nil for the ROOT.
func (a *Account) Parent() *Account {
	p := a.book.accounts[a.idx].parent
	if p < 0 {
		return nil
	}
	return &Account{book: a.book, idx: p}
}

// Children returns child accounts sorted by name.
func (a *Account) Children() []*Account {
	ids := a.book.accounts[a.idx].children
	out := make([]*Account, len(ids))
	for i, idx := range ids {
		out[i] = &Account{book: a.book, idx: idx}
	}
	return out
}

// HasChildren reports whether the account has any children.
func (a *Account) HasChildren() bool {
	return len(a.book.accounts[a.idx].children) > 0
}

// Splits returns the splits posted to this account, each paired with
// its transaction, in posting order.
func (a *Account) Splits() []SplitRef {
	return a.book.splits[a.idx]
}
