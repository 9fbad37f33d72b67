package commands

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/p2c2e/gnucash-cli/internal/model"
	"github.com/p2c2e/gnucash-cli/internal/period"
)

func newTransactionsCommand() *cobra.Command {
	var (
		startStr    string
		endStr      string
		accountPath string
		asJSON      bool
	)

	cmd := &cobra.Command{
		Use:   "transactions",
		Short: "List posted transactions, optionally filtered by period or account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// No date flags means everything; a single flag gets the
			// usual year-to-date default for the other side.
			var start, end time.Time
			if startStr != "" || endStr != "" {
				var err error
				start, end, err = period.Resolve(startStr, endStr)
				if err != nil {
					return err
				}
			}

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			b, _, err := openBook(cmd, cfg)
			if err != nil {
				return err
			}
			if accountPath != "" {
				if _, ok := b.Lookup(accountPath); !ok {
					return fmt.Errorf("unknown account %q", accountPath)
				}
			}

			var listed []*model.Transaction
			for _, tx := range b.Transactions() {
				if !start.IsZero() && tx.PostDate.Before(start) {
					continue
				}
				if !end.IsZero() && tx.PostDate.After(end) {
					continue
				}
				if accountPath != "" && !touchesAccount(tx, accountPath) {
					continue
				}
				listed = append(listed, tx)
			}

			if asJSON {
				return writeJSON(cmd, transactionViews(listed))
			}
			return renderTransactions(cmd, listed)
		},
	}

	cmd.Flags().StringVar(&startStr, "start", "", "start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&endStr, "end", "", "end date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&accountPath, "account", "", "only transactions touching this account")
	cmd.Flags().BoolVar(&asJSON, "json", false, "emit transactions as JSON")

	return cmd
}

func touchesAccount(tx *model.Transaction, path string) bool {
	for _, sp := range tx.Splits {
		if sp.Account == path {
			return true
		}
	}
	return false
}

func renderTransactions(cmd *cobra.Command, txs []*model.Transaction) error {
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 2, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "DATE\tDESCRIPTION\tACCOUNT\tVALUE")
	for _, tx := range txs {
		date, description := tx.PostDate.Format(period.DateFormat), tx.Description
		for _, sp := range tx.Splits {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", date, description, sp.Account, sp.Value)
			date, description = "", ""
		}
	}
	return tw.Flush()
}

// transactionView is the JSON listing shape: decimal values travel as
// strings, dates as calendar days.
type transactionView struct {
	ID          string      `json:"id"`
	PostDate    string      `json:"post_date"`
	Currency    string      `json:"currency"`
	Description string      `json:"description,omitempty"`
	Splits      []splitView `json:"splits"`
}

type splitView struct {
	Account  string          `json:"account_path"`
	Value    decimal.Decimal `json:"value"`
	Quantity decimal.Decimal `json:"quantity"`
	Memo     string          `json:"memo,omitempty"`
}

func transactionViews(txs []*model.Transaction) []transactionView {
	out := make([]transactionView, 0, len(txs))
	for _, tx := range txs {
		v := transactionView{
			ID:          tx.ID,
			PostDate:    tx.PostDate.Format(period.DateFormat),
			Currency:    tx.Currency,
			Description: tx.Description,
		}
		for _, sp := range tx.Splits {
			v.Splits = append(v.Splits, splitView{
				Account:  sp.Account,
				Value:    sp.Value,
				Quantity: sp.Quantity,
				Memo:     sp.Memo,
			})
		}
		out = append(out, v)
	}
	return out
}
