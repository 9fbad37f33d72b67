package book

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/p2c2e/gnucash-cli/internal/model"
)

// Sample builds the demo book: a USD household ledger with checking,
// savings, a credit card, salary income, a couple of expense accounts
// and a small brokerage position with price history. Transaction dates
// land in the given year so year-to-date reports have content.
func Sample(year int) (*Book, error) {
	b := New("USD")
	b.AddCommodity(model.Commodity{
		Namespace: "NYSE",
		Mnemonic:  "VTI",
		Fullname:  "Vanguard Total Stock Market ETF",
		Scale:     1,
	})

	accounts := []AccountParams{
		{Name: "Assets", Kind: model.KindAsset, Placeholder: true, Description: "Asset accounts"},
		{Parent: "Assets", Name: "Checking Account", Kind: model.KindAsset, Description: "Primary checking account"},
		{Parent: "Assets", Name: "Savings Account", Kind: model.KindAsset, Description: "Savings account"},
		{Parent: "Assets", Name: "Brokerage", Kind: model.KindStock, Commodity: "NYSE:VTI", Description: "ETF holdings"},
		{Name: "Liabilities", Kind: model.KindLiability, Placeholder: true, Description: "Liability accounts"},
		{Parent: "Liabilities", Name: "Credit Card", Kind: model.KindLiability, Description: "Credit card"},
		{Name: "Income", Kind: model.KindIncome, Placeholder: true, Description: "Income accounts"},
		{Parent: "Income", Name: "Salary", Kind: model.KindIncome, Description: "Salary income"},
		{Name: "Expenses", Kind: model.KindExpense, Placeholder: true, Description: "Expense accounts"},
		{Parent: "Expenses", Name: "Groceries", Kind: model.KindExpense},
		{Parent: "Expenses", Name: "Utilities", Kind: model.KindExpense},
		{Name: "Equity", Kind: model.KindEquity, Placeholder: true, Description: "Equity accounts"},
		{Parent: "Equity", Name: "Opening Balances", Kind: model.KindEquity},
	}
	for _, p := range accounts {
		if _, err := b.AddAccount(p); err != nil {
			return nil, fmt.Errorf("sample account %q: %w", p.Name, err)
		}
	}

	day := func(m time.Month, d int) time.Time {
		return time.Date(year, m, d, 0, 0, 0, 0, time.UTC)
	}
	dec := decimal.RequireFromString

	transactions := []model.Transaction{
		{
			Description: "Opening balance",
			PostDate:    day(time.January, 1),
			Splits: []model.Split{
				{Account: "Assets:Checking Account", Value: dec("5000.00"), Reconcile: model.Reconciled},
				{Account: "Equity:Opening Balances", Value: dec("-5000.00"), Reconcile: model.Reconciled},
			},
		},
		{
			Description: "Paycheck",
			PostDate:    day(time.January, 15),
			Splits: []model.Split{
				{Account: "Assets:Checking Account", Value: dec("3000.00"), Reconcile: model.Reconciled},
				{Account: "Income:Salary", Value: dec("-3000.00"), Reconcile: model.Reconciled},
			},
		},
		{
			Description: "Transfer to savings",
			PostDate:    day(time.January, 20),
			Splits: []model.Split{
				{Account: "Assets:Savings Account", Value: dec("1000.00"), Reconcile: model.Reconciled},
				{Account: "Assets:Checking Account", Value: dec("-1000.00"), Reconcile: model.Reconciled},
			},
		},
		{
			Description: "Weekly groceries",
			PostDate:    day(time.February, 1),
			Splits: []model.Split{
				{Account: "Expenses:Groceries", Value: dec("150.25")},
				{Account: "Assets:Checking Account", Value: dec("-150.25")},
			},
		},
		{
			Description: "Electric bill",
			PostDate:    day(time.February, 5),
			Splits: []model.Split{
				{Account: "Expenses:Utilities", Value: dec("80.50")},
				{Account: "Liabilities:Credit Card", Value: dec("-80.50")},
			},
		},
		{
			Description: "Credit card payment",
			PostDate:    day(time.February, 10),
			Splits: []model.Split{
				{Account: "Liabilities:Credit Card", Value: dec("80.50")},
				{Account: "Assets:Checking Account", Value: dec("-80.50")},
			},
		},
		{
			Description: "Buy 10 VTI",
			PostDate:    day(time.March, 1),
			Splits: []model.Split{
				{Account: "Assets:Brokerage", Value: dec("550.00"), Quantity: dec("10")},
				{Account: "Assets:Checking Account", Value: dec("-550.00")},
			},
		},
	}
	for _, tx := range transactions {
		if _, err := b.AddTransaction(tx); err != nil {
			return nil, fmt.Errorf("sample transaction %q: %w", tx.Description, err)
		}
	}

	prices := []model.Price{
		{Commodity: "NYSE:VTI", Date: day(time.January, 2), Value: dec("54.10"), Currency: "USD"},
		{Commodity: "NYSE:VTI", Date: day(time.March, 1), Value: dec("55.00"), Currency: "USD"},
		{Commodity: "NYSE:VTI", Date: day(time.June, 1), Value: dec("57.25"), Currency: "USD"},
	}
	for _, p := range prices {
		if err := b.AddPrice(p); err != nil {
			return nil, fmt.Errorf("sample price: %w", err)
		}
	}
	return b, nil
}
