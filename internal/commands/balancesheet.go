package commands

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/p2c2e/gnucash-cli/internal/period"
	"github.com/p2c2e/gnucash-cli/internal/report"
)

func newBalanceSheetCommand() *cobra.Command {
	var (
		dateStr string
		asJSON  bool
	)

	cmd := &cobra.Command{
		Use:   "balance-sheet",
		Short: "Generate a balance sheet as of a date",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			asOf := time.Now().UTC()
			if dateStr != "" {
				var err error
				asOf, err = period.ParseDate("date", dateStr)
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

			st := report.NewBuilder(b, reportConfig(cfg)).BalanceSheet(asOf)
			if asJSON {
				return writeJSON(cmd, st)
			}
			title := fmt.Sprintf("Balance Sheet as of %s", st.Metadata.Date)
			return renderStatement(cmd.OutOrStdout(), title, st)
		},
	}

	cmd.Flags().StringVar(&dateStr, "date", "", "as-of date (YYYY-MM-DD, default today)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "emit the statement as JSON")

	return cmd
}

func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
