package commands

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"

	"github.com/p2c2e/gnucash-cli/internal/report"
)

// formatAmount renders a decimal amount in a currency, with the
// currency's own minor-unit and symbol conventions.
func formatAmount(amount decimal.Decimal, currency string) string {
	cur := money.GetCurrency(currency)
	if cur == nil {
		return amount.StringFixed(2) + " " + currency
	}
	minor := amount.Shift(int32(cur.Fraction)).Round(0).IntPart()
	return money.New(minor, currency).Display()
}

// renderStatement writes a statement's rows as an aligned text table.
func renderStatement(w io.Writer, title string, st *report.Statement) error {
	fmt.Fprintln(w, title)

	tw := tabwriter.NewWriter(w, 2, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "CATEGORY\tGROUP\tLINE\tAMOUNT")
	for _, row := range st.Rows() {
		category, group, line := row.Category, row.Group, row.Line
		switch {
		case group == report.TotalKey:
			category, group, line = "Total "+titleCase(category), "", ""
		case line == report.TotalKey:
			group, line = "Total "+group, ""
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
			category, group, line, formatAmount(row.Amount, st.Metadata.Currency))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	for _, d := range st.Metadata.Diagnostics {
		fmt.Fprintf(w, "warning: %s\n", d)
	}
	return nil
}

// titleCase upper-cases the first letter of a category name.
func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
