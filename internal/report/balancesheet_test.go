package report

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/p2c2e/gnucash-cli/internal/book"
	"github.com/p2c2e/gnucash-cli/internal/model"
)

// assertTotalLaws checks that every group total is the sum of its lines
// and every category total is the sum of its group totals.
func assertTotalLaws(t *testing.T, st *Statement) {
	t.Helper()
	for catName, c := range st.Categories {
		catSum := dec("0")
		for gname, g := range c.Groups {
			groupSum := dec("0")
			for _, amount := range g.Lines {
				groupSum = groupSum.Add(amount)
			}
			assert.True(t, g.Total.Equal(groupSum),
				"%s/%s: group total %s != line sum %s", catName, gname, g.Total, groupSum)
			catSum = catSum.Add(g.Total)
		}
		assert.True(t, c.Total.Equal(catSum),
			"%s: category total %s != group sum %s", catName, c.Total, catSum)
	}
}

func TestBalanceSheetSimple(t *testing.T) {
	b := book.New("USD")
	_, err := b.AddAccount(book.AccountParams{Name: "Assets", Kind: model.KindAsset, Placeholder: true})
	require.NoError(t, err)
	_, err = b.AddAccount(book.AccountParams{Parent: "Assets", Name: "Checking", Kind: model.KindAsset})
	require.NoError(t, err)
	_, err = b.AddAccount(book.AccountParams{Name: "Income", Kind: model.KindIncome, Placeholder: true})
	require.NoError(t, err)
	_, err = b.AddAccount(book.AccountParams{Parent: "Income", Name: "Salary", Kind: model.KindIncome})
	require.NoError(t, err)
	_, err = b.AddTransaction(model.Transaction{
		PostDate: date(2024, time.June, 1),
		Splits: []model.Split{
			{Account: "Assets:Checking", Value: dec("1000")},
			{Account: "Income:Salary", Value: dec("-1000")},
		},
	})
	require.NoError(t, err)

	bld := NewBuilder(b, testConfig)
	st := bld.BalanceSheet(date(2024, time.December, 31))

	assets := st.Categories[model.CategoryAssets]
	require.NotNil(t, assets)
	assert.True(t, assets.Total.Equal(dec("1000")), "assets total %s", assets.Total)

	g := assets.Groups["Assets"]
	require.NotNil(t, g)
	assert.True(t, g.Total.Equal(dec("1000")))
	assert.True(t, g.Lines["Checking"].Equal(dec("1000")))

	// Income is not a balance-sheet category: no trace of it anywhere.
	for catName, c := range st.Categories {
		for gname, grp := range c.Groups {
			assert.NotEqual(t, "Income", gname, "category %s", catName)
			_, ok := grp.Lines["Salary"]
			assert.False(t, ok, "income line leaked into %s/%s", catName, gname)
		}
	}

	// Untouched categories are present with zero totals.
	assert.True(t, st.Categories[model.CategoryLiabilities].Total.IsZero())
	assert.True(t, st.Categories[model.CategoryEquity].Total.IsZero())

	assertTotalLaws(t, st)
	assert.Equal(t, "2024-12-31", st.Metadata.Date)
	assert.Equal(t, "USD", st.Metadata.Currency)
	assert.Empty(t, st.Metadata.Diagnostics)
}

func TestBalanceSheetSample(t *testing.T) {
	b := sampleBook(t)
	bld := NewBuilder(b, testConfig)
	st := bld.BalanceSheet(date(2024, time.December, 31))

	assets := st.Categories[model.CategoryAssets]
	g := assets.Groups["Assets"]
	require.NotNil(t, g)
	assert.True(t, g.Lines["Checking Account"].Equal(dec("6219.25")), "got %s", g.Lines["Checking Account"])
	assert.True(t, g.Lines["Savings Account"].Equal(dec("1000.00")))
	// 10 VTI at the June price of 57.25.
	assert.True(t, g.Lines["Brokerage"].Equal(dec("572.50")), "got %s", g.Lines["Brokerage"])
	assert.True(t, assets.Total.Equal(dec("7791.75")), "assets total %s", assets.Total)

	// Credit card nets to zero, so liabilities carry no group at all.
	liabilities := st.Categories[model.CategoryLiabilities]
	assert.Empty(t, liabilities.Groups)
	assert.True(t, liabilities.Total.IsZero())

	equity := st.Categories[model.CategoryEquity]
	assert.True(t, equity.Total.Equal(dec("-5000.00")), "equity total %s", equity.Total)

	assertTotalLaws(t, st)
	assert.Empty(t, st.Metadata.Diagnostics)
}

func TestBalanceSheetOwnBalanceAndChildren(t *testing.T) {
	// An account may hold direct splits and children at the same time;
	// the group then carries an own-balance line named after the account.
	b := book.New("USD")
	_, err := b.AddAccount(book.AccountParams{Name: "Assets", Kind: model.KindAsset})
	require.NoError(t, err)
	_, err = b.AddAccount(book.AccountParams{Parent: "Assets", Name: "Checking", Kind: model.KindBank})
	require.NoError(t, err)
	_, err = b.AddAccount(book.AccountParams{Name: "Equity", Kind: model.KindEquity})
	require.NoError(t, err)
	_, err = b.AddTransaction(model.Transaction{
		PostDate: date(2024, time.March, 1),
		Splits: []model.Split{
			{Account: "Assets", Value: dec("250")},
			{Account: "Equity", Value: dec("-250")},
		},
	})
	require.NoError(t, err)
	_, err = b.AddTransaction(model.Transaction{
		PostDate: date(2024, time.March, 2),
		Splits: []model.Split{
			{Account: "Assets:Checking", Value: dec("100")},
			{Account: "Equity", Value: dec("-100")},
		},
	})
	require.NoError(t, err)

	bld := NewBuilder(b, testConfig)
	st := bld.BalanceSheet(date(2024, time.December, 31))

	g := st.Categories[model.CategoryAssets].Groups["Assets"]
	require.NotNil(t, g)
	assert.True(t, g.Lines["Assets"].Equal(dec("250")), "own balance line")
	assert.True(t, g.Lines["Checking"].Equal(dec("100")))
	assert.True(t, g.Total.Equal(dec("350")))
	assertTotalLaws(t, st)
}

func TestBalanceSheetCurrencyFallback(t *testing.T) {
	b := book.New("")
	b.AddCommodity(model.Commodity{Namespace: model.CurrencyNamespace, Mnemonic: "USD", Scale: 100})

	bld := NewBuilder(b, testConfig)
	st := bld.BalanceSheet(date(2024, time.December, 31))

	assert.Equal(t, "USD", st.Metadata.Currency)
	require.Len(t, st.Metadata.Diagnostics, 1)
	assert.Equal(t, DiagCurrencyFallback, st.Metadata.Diagnostics[0].Code)
}

func TestBalanceSheetMissingPriceDiagnostic(t *testing.T) {
	b := book.New("USD")
	b.AddCommodity(model.Commodity{Namespace: "NASDAQ", Mnemonic: "ZZZ", Scale: 1})
	_, err := b.AddAccount(book.AccountParams{Name: "Brokerage", Kind: model.KindStock, Commodity: "NASDAQ:ZZZ"})
	require.NoError(t, err)
	_, err = b.AddAccount(book.AccountParams{Name: "Equity", Kind: model.KindEquity})
	require.NoError(t, err)
	_, err = b.AddTransaction(model.Transaction{
		PostDate: date(2024, time.January, 1),
		Splits: []model.Split{
			{Account: "Brokerage", Value: dec("480"), Quantity: dec("10")},
			{Account: "Equity", Value: dec("-480")},
		},
	})
	require.NoError(t, err)

	bld := NewBuilder(b, testConfig)
	st := bld.BalanceSheet(date(2024, time.December, 31))

	// The holding values to zero but the statement says why.
	assert.True(t, st.Categories[model.CategoryAssets].Total.IsZero())
	require.NotEmpty(t, st.Metadata.Diagnostics)
	assert.Equal(t, DiagValuationUnavailable, st.Metadata.Diagnostics[0].Code)
}

func TestStatementJSONShape(t *testing.T) {
	b := sampleBook(t)
	bld := NewBuilder(b, testConfig)
	st := bld.BalanceSheet(date(2024, time.December, 31))

	raw, err := json.Marshal(st)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))

	for _, key := range []string{"assets", "liabilities", "equity", "metadata"} {
		assert.Contains(t, decoded, key)
	}

	assets, ok := decoded["assets"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, assets, "_total")

	group, ok := assets["Assets"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, group, "_total")
	// Amounts travel as decimal strings, not floats.
	assert.Equal(t, "6219.25", group["Checking Account"])

	meta, ok := decoded["metadata"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "USD", meta["currency"])
	assert.Equal(t, "2024-12-31", meta["date"])
}
