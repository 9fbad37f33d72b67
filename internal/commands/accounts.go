package commands

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/p2c2e/gnucash-cli/internal/report"
)

func newAccountsCommand() *cobra.Command {
	var reconciledOnly bool

	cmd := &cobra.Command{
		Use:   "accounts",
		Short: "List all accounts with their balances",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			b, _, err := openBook(cmd, cfg)
			if err != nil {
				return err
			}

			bld := report.NewBuilder(b, reportConfig(cfg))
			root := bld.Aggregate(b.Root(), report.Filter{
				AsOf:           time.Now().UTC(),
				ReconciledOnly: reconciledOnly,
			})

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 2, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ACCOUNT\tKIND\tBALANCE\tOWN")
			for _, node := range flatten(root) {
				kind := ""
				if acct, ok := b.Lookup(node.Path); ok {
					kind = string(acct.Kind())
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
					node.Path, kind,
					formatAmount(node.Total, bld.Currency()),
					formatAmount(node.Own, bld.Currency()))
			}
			if err := tw.Flush(); err != nil {
				return err
			}

			for _, d := range bld.Diagnostics() {
				fmt.Fprintf(cmd.OutOrStdout(), "warning: %s\n", d)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&reconciledOnly, "reconciled", false, "count reconciled splits only")

	return cmd
}

// flatten lists every node below the root in display order.
func flatten(root *report.BalanceNode) []*report.BalanceNode {
	var out []*report.BalanceNode
	var walk func(n *report.BalanceNode)
	walk = func(n *report.BalanceNode) {
		if n != root {
			out = append(out, n)
		}
		for _, c := range n.Children {
			walk(c)
		}
	}
	walk(root)
	return out
}
