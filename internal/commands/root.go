// Package commands wires the CLI: thin cobra commands over the book
// snapshot and the report builders.
package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/p2c2e/gnucash-cli/internal/book"
	"github.com/p2c2e/gnucash-cli/internal/buildinfo"
	"github.com/p2c2e/gnucash-cli/internal/config"
	"github.com/p2c2e/gnucash-cli/internal/report"
)

// DefaultConfigPath is where commands look for gnucash.yaml.
const DefaultConfigPath = "gnucash.yaml"

// NewRootCommand creates the root CLI command with all subcommands
// registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "gnucash-cli",
		Short:   "Reports over a GnuCash-style book snapshot",
		Version: buildinfo.String(),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().String("config", DefaultConfigPath, "path to gnucash.yaml")
	rootCmd.PersistentFlags().String("book", "", "book snapshot path (overrides config)")

	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newAccountsCommand())
	rootCmd.AddCommand(newAddAccountCommand())
	rootCmd.AddCommand(newTransactionsCommand())
	rootCmd.AddCommand(newAddTransactionCommand())
	rootCmd.AddCommand(newBalanceSheetCommand())
	rootCmd.AddCommand(newCashflowCommand())
	rootCmd.AddCommand(newTransferCommand())

	return rootCmd
}

// loadConfig reads the configured gnucash.yaml; a missing file is not
// an error, it just means defaults.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return config.Default(""), nil
	}
	if err != nil {
		return nil, err
	}
	// A relative book path in the config is relative to the config file.
	if cfg.Book != "" && !filepath.IsAbs(cfg.Book) {
		cfg.Book = filepath.Join(filepath.Dir(path), cfg.Book)
	}
	return cfg, nil
}

// openBook resolves the book path (flag wins over config) and loads it.
func openBook(cmd *cobra.Command, cfg *config.Config) (*book.Book, string, error) {
	path, _ := cmd.Flags().GetString("book")
	if path == "" {
		path = cfg.Book
	}
	if path == "" {
		return nil, "", fmt.Errorf("no book configured: pass --book or set book in %s", DefaultConfigPath)
	}
	b, err := book.LoadFile(path)
	if err != nil {
		return nil, "", err
	}
	return b, path, nil
}

func reportConfig(cfg *config.Config) report.Config {
	return report.Config{
		FallbackCurrency:      cfg.BaseCurrency,
		OperatingCashAccounts: cfg.CashFlow.OperatingCashAccounts,
	}
}
