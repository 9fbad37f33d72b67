package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/p2c2e/gnucash-cli/internal/book"
	"github.com/p2c2e/gnucash-cli/internal/model"
)

func newAddAccountCommand() *cobra.Command {
	var (
		parent      string
		name        string
		kindStr     string
		commodity   string
		placeholder bool
		description string
	)

	cmd := &cobra.Command{
		Use:   "add-account",
		Short: "Create an account in the book",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := model.ParseAccountKind(kindStr)
			if err != nil {
				return err
			}

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			b, path, err := openBook(cmd, cfg)
			if err != nil {
				return err
			}

			acct, err := b.AddAccount(book.AccountParams{
				Parent:      parent,
				Name:        name,
				Kind:        kind,
				Commodity:   commodity,
				Placeholder: placeholder,
				Description: description,
			})
			if err != nil {
				return err
			}
			if err := book.SaveFile(path, b); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created account %q (%s)\n", acct.Path(), acct.Kind())
			return nil
		},
	}

	cmd.Flags().StringVar(&parent, "parent", "", "full path of the parent account (empty = top-level)")
	cmd.Flags().StringVar(&name, "name", "", "account name (required)")
	_ = cmd.MarkFlagRequired("name")
	cmd.Flags().StringVar(&kindStr, "kind", "", "account kind, e.g. ASSET, BANK, EXPENSE (required)")
	_ = cmd.MarkFlagRequired("kind")
	cmd.Flags().StringVar(&commodity, "commodity", "", `commodity key ("NAMESPACE:MNEMONIC", default the book currency)`)
	cmd.Flags().BoolVar(&placeholder, "placeholder", false, "structural account that cannot be posted to")
	cmd.Flags().StringVar(&description, "description", "", "account description")

	return cmd
}
