package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/p2c2e/gnucash-cli/internal/book"
	"github.com/p2c2e/gnucash-cli/internal/config"
)

func newInitCommand() *cobra.Command {
	var bookName string

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Create gnucash.yaml and a sample book",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			return runInit(cmd, absDir, bookName)
		},
	}

	cmd.Flags().StringVar(&bookName, "book-name", "sample", "base name of the sample book file")

	return cmd
}

func runInit(cmd *cobra.Command, dir, bookName string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}

	bookFile := bookName + ".book.json"
	bookPath := filepath.Join(dir, bookFile)
	if _, err := os.Stat(bookPath); err == nil {
		return fmt.Errorf("%s already exists", bookPath)
	}

	// The sample's transactions land in the current year so that
	// year-to-date reports have content out of the box.
	b, err := book.Sample(time.Now().Year())
	if err != nil {
		return fmt.Errorf("building sample book: %w", err)
	}
	if err := book.SaveFile(bookPath, b); err != nil {
		return err
	}

	cfg := config.Default(bookFile)
	if err := config.Save(filepath.Join(dir, "gnucash.yaml"), cfg); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Initialized %s with book %s\n", dir, bookFile)
	return nil
}
