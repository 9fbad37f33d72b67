package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRowsOrdering(t *testing.T) {
	b := sampleBook(t)
	bld := NewBuilder(b, testConfig)
	st := bld.BalanceSheet(date(2024, time.December, 31))

	rows := st.Rows()
	require.NotEmpty(t, rows)

	// Categories appear in canonical order.
	var cats []string
	for _, r := range rows {
		if len(cats) == 0 || cats[len(cats)-1] != r.Category {
			cats = append(cats, r.Category)
		}
	}
	assert.Equal(t, []string{"assets", "liabilities", "equity"}, cats)

	// Within the assets group: lines sorted by name, then the group
	// total, and the category total row closes the category.
	var assetRows []Row
	for _, r := range rows {
		if r.Category == "assets" {
			assetRows = append(assetRows, r)
		}
	}
	require.Len(t, assetRows, 5)
	assert.Equal(t, "Brokerage", assetRows[0].Line)
	assert.Equal(t, "Checking Account", assetRows[1].Line)
	assert.Equal(t, "Savings Account", assetRows[2].Line)
	assert.Equal(t, TotalKey, assetRows[3].Line)
	assert.True(t, assetRows[3].IsTotal)
	assert.Equal(t, TotalKey, assetRows[4].Group)
	assert.True(t, assetRows[4].IsTotal)
	assert.True(t, assetRows[4].Amount.Equal(dec("7791.75")))

	// Empty categories still emit their total row.
	var liabilityRows []Row
	for _, r := range rows {
		if r.Category == "liabilities" {
			liabilityRows = append(liabilityRows, r)
		}
	}
	require.Len(t, liabilityRows, 1)
	assert.True(t, liabilityRows[0].IsTotal)
	assert.True(t, liabilityRows[0].Amount.IsZero())
}

func TestFinalizeTotalsIdempotent(t *testing.T) {
	b := sampleBook(t)
	bld := NewBuilder(b, testConfig)
	st := bld.BalanceSheet(date(2024, time.December, 31))

	before := st.Categories["assets"].Total
	st.finalizeTotals()
	st.finalizeTotals()
	assert.True(t, st.Categories["assets"].Total.Equal(before))
	assertTotalLaws(t, st)
}
