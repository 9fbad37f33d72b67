package report

import (
	"encoding/json"

	"github.com/shopspring/decimal"

	"github.com/p2c2e/gnucash-cli/internal/model"
)

// TotalKey is the reserved line/group key for derived totals. It is an
// interchange key consumed by downstream renderers and must not change.
const TotalKey = "_total"

// StatementKind selects the category layout of a statement.
type StatementKind string

const (
	BalanceSheetStatement StatementKind = "balance_sheet"
	CashFlowStatement     StatementKind = "cash_flow"
)

// Metadata describes the statement as a whole: the as-of date (balance
// sheet) or period (cash flow), the base currency amounts are stated
// in, and any diagnostics gathered while building.
type Metadata struct {
	Date        string       `json:"date,omitempty"`
	StartDate   string       `json:"start_date,omitempty"`
	EndDate     string       `json:"end_date,omitempty"`
	Currency    string       `json:"currency"`
	Diagnostics []Diagnostic `json:"diagnostics,omitempty"`
}

// Group is one named group of statement lines.
type Group struct {
	Lines map[string]decimal.Decimal
	Total decimal.Decimal
}

// Category is one statement category (assets, operating, ...).
type Category struct {
	Groups map[string]*Group
	Total  decimal.Decimal
}

// Statement is the categorized, totaled output of an aggregation pass.
// It is constructed fresh per request and never mutated afterwards.
type Statement struct {
	Kind       StatementKind
	Metadata   Metadata
	Categories map[string]*Category
}

func newStatement(kind StatementKind) *Statement {
	s := &Statement{Kind: kind, Categories: make(map[string]*Category)}
	// All canonical categories are always present, even when empty.
	for _, name := range s.CategoryOrder() {
		s.Categories[name] = &Category{Groups: make(map[string]*Group)}
	}
	return s
}

// CategoryOrder returns the canonical display order of the statement's
// categories.
func (s *Statement) CategoryOrder() []string {
	if s.Kind == CashFlowStatement {
		return []string{model.CategoryOperating, model.CategoryInvesting, model.CategoryFinancing}
	}
	return []string{model.CategoryAssets, model.CategoryLiabilities, model.CategoryEquity}
}

func (s *Statement) category(name string) *Category {
	c, ok := s.Categories[name]
	if !ok {
		c = &Category{Groups: make(map[string]*Group)}
		s.Categories[name] = c
	}
	return c
}

func (c *Category) group(name string) *Group {
	g, ok := c.Groups[name]
	if !ok {
		g = &Group{Lines: make(map[string]decimal.Decimal)}
		c.Groups[name] = g
	}
	return g
}

// add accumulates an amount into a line.
func (g *Group) add(line string, amount decimal.Decimal) {
	g.Lines[line] = g.Lines[line].Add(amount)
}

// finalizeTotals recomputes every group and category total from the
// line items. Recomputing is idempotent: group totals are sums of
// lines, category totals are sums of group totals.
func (s *Statement) finalizeTotals() {
	for _, c := range s.Categories {
		catTotal := decimal.Zero
		for _, g := range c.Groups {
			groupTotal := decimal.Zero
			for _, amount := range g.Lines {
				groupTotal = groupTotal.Add(amount)
			}
			g.Total = groupTotal
			catTotal = catTotal.Add(groupTotal)
		}
		c.Total = catTotal
	}
}

// MarshalJSON emits the interchange shape consumed by the REST and CLI
// layers: category -> group -> line -> decimal string, with a "_total"
// key per group and per category, plus a metadata block.
func (s *Statement) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(s.Categories)+1)
	for name, c := range s.Categories {
		cm := make(map[string]any, len(c.Groups)+1)
		cm[TotalKey] = c.Total
		for gname, g := range c.Groups {
			gm := make(map[string]decimal.Decimal, len(g.Lines)+1)
			for line, amount := range g.Lines {
				gm[line] = amount
			}
			gm[TotalKey] = g.Total
			cm[gname] = gm
		}
		out[name] = cm
	}
	out["metadata"] = s.Metadata
	return json.Marshal(out)
}
