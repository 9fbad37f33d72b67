package commands

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/p2c2e/gnucash-cli/internal/book"
	"github.com/p2c2e/gnucash-cli/internal/model"
	"github.com/p2c2e/gnucash-cli/internal/period"
)

func newTransferCommand() *cobra.Command {
	var (
		from        string
		to          string
		amountStr   string
		dateStr     string
		description string
	)

	cmd := &cobra.Command{
		Use:   "transfer",
		Short: "Post a balanced transfer between two accounts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := decimal.NewFromString(amountStr)
			if err != nil {
				return fmt.Errorf("invalid amount %q: %w", amountStr, err)
			}
			if !amount.IsPositive() {
				return fmt.Errorf("amount must be positive, got %s", amount)
			}

			postDate := time.Now().UTC().Truncate(24 * time.Hour)
			if dateStr != "" {
				postDate, err = period.ParseDate("date", dateStr)
				if err != nil {
					return err
				}
			}

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			b, path, err := openBook(cmd, cfg)
			if err != nil {
				return err
			}

			id, err := b.AddTransaction(model.Transaction{
				Description: description,
				PostDate:    postDate,
				Splits: []model.Split{
					{Account: to, Value: amount},
					{Account: from, Value: amount.Neg()},
				},
			})
			if err != nil {
				return err
			}
			if err := book.SaveFile(path, b); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Posted %s: %s from %q to %q\n", id, amount, from, to)
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "source account path (required)")
	_ = cmd.MarkFlagRequired("from")
	cmd.Flags().StringVar(&to, "to", "", "destination account path (required)")
	_ = cmd.MarkFlagRequired("to")
	cmd.Flags().StringVar(&amountStr, "amount", "", "amount in the book currency (required)")
	_ = cmd.MarkFlagRequired("amount")
	cmd.Flags().StringVar(&dateStr, "date", "", "post date (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(&description, "description", "Fund transfer", "transaction description")

	return cmd
}
