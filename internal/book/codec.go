package book

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/p2c2e/gnucash-cli/internal/model"
)

// The JSON snapshot format. Accounts must appear before their children
// (paths are derived, so forward parent references cannot be resolved);
// Write emits tree order, which satisfies this.

const (
	dateFormat = "2006-01-02"
)

type fileBook struct {
	BaseCurrency string            `json:"base_currency"`
	Commodities  []fileCommodity   `json:"commodities"`
	Accounts     []fileAccount     `json:"accounts"`
	Prices       []filePrice       `json:"prices,omitempty"`
	Transactions []fileTransaction `json:"transactions,omitempty"`
}

type fileCommodity struct {
	Namespace string `json:"namespace"`
	Mnemonic  string `json:"mnemonic"`
	Fullname  string `json:"fullname,omitempty"`
	Scale     int    `json:"scale"`
}

type fileAccount struct {
	Name        string `json:"name"`
	Kind        string `json:"kind"`
	Parent      string `json:"parent_path,omitempty"`
	Commodity   string `json:"commodity,omitempty"`
	Placeholder bool   `json:"placeholder,omitempty"`
	Description string `json:"description,omitempty"`
}

type filePrice struct {
	Commodity string          `json:"commodity"`
	Date      string          `json:"date"`
	Value     decimal.Decimal `json:"value"`
	Currency  string          `json:"currency,omitempty"`
}

type fileSplit struct {
	Account   string          `json:"account_path"`
	Value     decimal.Decimal `json:"value"`
	Quantity  decimal.Decimal `json:"quantity"`
	Memo      string          `json:"memo,omitempty"`
	Reconcile string          `json:"reconcile,omitempty"`
}

type fileTransaction struct {
	ID          string      `json:"id"`
	Currency    string      `json:"currency"`
	Description string      `json:"description,omitempty"`
	Notes       string      `json:"notes,omitempty"`
	PostDate    string      `json:"post_date"`
	EnterDate   string      `json:"enter_date,omitempty"`
	Splits      []fileSplit `json:"splits"`
}

// Read decodes a JSON book snapshot.
func Read(r io.Reader) (*Book, error) {
	var f fileBook
	dec := json.NewDecoder(r)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("decoding book: %w", err)
	}

	b := New(f.BaseCurrency)
	for _, c := range f.Commodities {
		b.AddCommodity(model.Commodity{
			Namespace: c.Namespace,
			Mnemonic:  c.Mnemonic,
			Fullname:  c.Fullname,
			Scale:     c.Scale,
		})
	}
	for i, a := range f.Accounts {
		kind, err := model.ParseAccountKind(a.Kind)
		if err != nil {
			return nil, fmt.Errorf("account %d (%q): %w", i, a.Name, err)
		}
		if _, err := b.AddAccount(AccountParams{
			Parent:      a.Parent,
			Name:        a.Name,
			Kind:        kind,
			Commodity:   a.Commodity,
			Placeholder: a.Placeholder,
			Description: a.Description,
		}); err != nil {
			return nil, fmt.Errorf("account %d (%q): %w", i, a.Name, err)
		}
	}
	for i, p := range f.Prices {
		day, err := time.Parse(dateFormat, p.Date)
		if err != nil {
			return nil, fmt.Errorf("price %d: parsing date %q: %w", i, p.Date, err)
		}
		currency := p.Currency
		if currency == "" {
			currency = f.BaseCurrency
		}
		if err := b.AddPrice(model.Price{
			Commodity: p.Commodity,
			Date:      day,
			Value:     p.Value,
			Currency:  currency,
		}); err != nil {
			return nil, fmt.Errorf("price %d: %w", i, err)
		}
	}
	for i, t := range f.Transactions {
		tx, err := t.toModel()
		if err != nil {
			return nil, fmt.Errorf("transaction %d: %w", i, err)
		}
		// Unbalanced transactions on disk load fine; the report layer
		// excludes them and attaches a diagnostic.
		if _, err := b.post(tx, false); err != nil {
			return nil, fmt.Errorf("transaction %d: %w", i, err)
		}
	}
	return b, nil
}

func (t fileTransaction) toModel() (model.Transaction, error) {
	postDate, err := time.Parse(dateFormat, t.PostDate)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing post_date %q: %w", t.PostDate, err)
	}
	var enterDate time.Time
	if t.EnterDate != "" {
		enterDate, err = time.Parse(time.RFC3339, t.EnterDate)
		if err != nil {
			return model.Transaction{}, fmt.Errorf("parsing enter_date %q: %w", t.EnterDate, err)
		}
	}
	tx := model.Transaction{
		ID:          t.ID,
		Currency:    t.Currency,
		Description: t.Description,
		Notes:       t.Notes,
		PostDate:    postDate,
		EnterDate:   enterDate,
	}
	for _, s := range t.Splits {
		reconcile := model.ReconcileState(s.Reconcile)
		if reconcile == "" {
			reconcile = model.NotReconciled
		}
		tx.Splits = append(tx.Splits, model.Split{
			Account:   s.Account,
			Value:     s.Value,
			Quantity:  s.Quantity,
			Memo:      s.Memo,
			Reconcile: reconcile,
		})
	}
	return tx, nil
}

// Write encodes the book as a JSON snapshot. Accounts are written in
// tree order so the result can always be read back.
func Write(w io.Writer, b *Book) error {
	f := fileBook{BaseCurrency: b.base}

	for _, key := range sortedKeys(b.commodities) {
		c := b.commodities[key]
		f.Commodities = append(f.Commodities, fileCommodity{
			Namespace: c.Namespace,
			Mnemonic:  c.Mnemonic,
			Fullname:  c.Fullname,
			Scale:     c.Scale,
		})
	}
	for _, a := range b.Accounts() {
		parent := ""
		if p := a.Parent(); p != nil {
			parent = p.Path()
		}
		f.Accounts = append(f.Accounts, fileAccount{
			Name:        a.Name(),
			Kind:        string(a.Kind()),
			Parent:      parent,
			Commodity:   a.Commodity().Key(),
			Placeholder: a.Placeholder(),
			Description: a.Description(),
		})
	}
	for _, key := range sortedKeys(b.prices) {
		for _, p := range b.prices[key] {
			f.Prices = append(f.Prices, filePrice{
				Commodity: p.Commodity,
				Date:      p.Date.Format(dateFormat),
				Value:     p.Value,
				Currency:  p.Currency,
			})
		}
	}
	for _, tx := range b.transactions {
		ft := fileTransaction{
			ID:          tx.ID,
			Currency:    tx.Currency,
			Description: tx.Description,
			Notes:       tx.Notes,
			PostDate:    tx.PostDate.Format(dateFormat),
		}
		if !tx.EnterDate.IsZero() {
			ft.EnterDate = tx.EnterDate.Format(time.RFC3339)
		}
		for _, s := range tx.Splits {
			ft.Splits = append(ft.Splits, fileSplit{
				Account:   s.Account,
				Value:     s.Value,
				Quantity:  s.Quantity,
				Memo:      s.Memo,
				Reconcile: string(s.Reconcile),
			})
		}
		f.Transactions = append(f.Transactions, ft)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(f); err != nil {
		return fmt.Errorf("encoding book: %w", err)
	}
	return nil
}

// LoadFile reads a book snapshot from disk.
func LoadFile(path string) (*Book, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening book %s: %w", path, err)
	}
	defer f.Close()

	b, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("reading book %s: %w", path, err)
	}
	return b, nil
}

// SaveFile writes a book snapshot to disk.
func SaveFile(path string, b *Book) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating book %s: %w", path, err)
	}
	if err := Write(f, b); err != nil {
		f.Close()
		return fmt.Errorf("writing book %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing book %s: %w", path, err)
	}
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
