package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/p2c2e/gnucash-cli/internal/period"
	"github.com/p2c2e/gnucash-cli/internal/report"
)

func newCashflowCommand() *cobra.Command {
	var (
		startStr string
		endStr   string
		asJSON   bool
	)

	cmd := &cobra.Command{
		Use:   "cashflow",
		Short: "Generate a cash flow statement for a period (default year-to-date)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			start, end, err := period.Resolve(startStr, endStr)
			if err != nil {
				return err
			}

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			b, _, err := openBook(cmd, cfg)
			if err != nil {
				return err
			}

			st := report.NewBuilder(b, reportConfig(cfg)).CashFlow(start, end)
			if asJSON {
				return writeJSON(cmd, st)
			}
			title := fmt.Sprintf("Cash Flow Statement %s to %s", st.Metadata.StartDate, st.Metadata.EndDate)
			return renderStatement(cmd.OutOrStdout(), title, st)
		},
	}

	cmd.Flags().StringVar(&startStr, "start", "", "start date (YYYY-MM-DD, default January 1)")
	cmd.Flags().StringVar(&endStr, "end", "", "end date (YYYY-MM-DD, default today)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "emit the statement as JSON")

	return cmd
}
