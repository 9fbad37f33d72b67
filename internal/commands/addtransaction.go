package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/p2c2e/gnucash-cli/internal/book"
	"github.com/p2c2e/gnucash-cli/internal/model"
	"github.com/p2c2e/gnucash-cli/internal/period"
)

func newAddTransactionCommand() *cobra.Command {
	var (
		dateStr     string
		description string
		splitSpecs  []string
	)

	cmd := &cobra.Command{
		Use:   "add-transaction",
		Short: "Post a transaction with two or more splits",
		Long: `Post a transaction with two or more splits. Each --split takes the
form "ACCOUNT PATH=AMOUNT"; the amounts must sum to zero.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			postDate := time.Now().UTC().Truncate(24 * time.Hour)
			if dateStr != "" {
				var err error
				postDate, err = period.ParseDate("date", dateStr)
				if err != nil {
					return err
				}
			}

			splits := make([]model.Split, 0, len(splitSpecs))
			for _, spec := range splitSpecs {
				sp, err := parseSplitSpec(spec)
				if err != nil {
					return err
				}
				splits = append(splits, sp)
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
				Splits:      splits,
			})
			if err != nil {
				return err
			}
			if err := book.SaveFile(path, b); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Posted %s with %d splits\n", id, len(splits))
			return nil
		},
	}

	cmd.Flags().StringVar(&dateStr, "date", "", "post date (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(&description, "description", "", "transaction description")
	cmd.Flags().StringArrayVar(&splitSpecs, "split", nil, `split as "ACCOUNT PATH=AMOUNT" (repeat, at least twice)`)
	_ = cmd.MarkFlagRequired("split")

	return cmd
}

// parseSplitSpec splits on the last "=" so account names keep their
// full paths; amounts never contain one.
func parseSplitSpec(spec string) (model.Split, error) {
	eq := strings.LastIndex(spec, "=")
	if eq <= 0 || eq == len(spec)-1 {
		return model.Split{}, fmt.Errorf(`invalid split %q: want "ACCOUNT PATH=AMOUNT"`, spec)
	}
	amount, err := decimal.NewFromString(spec[eq+1:])
	if err != nil {
		return model.Split{}, fmt.Errorf("invalid split amount %q: %w", spec[eq+1:], err)
	}
	return model.Split{Account: spec[:eq], Value: amount}, nil
}
