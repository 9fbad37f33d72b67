package main

import (
	"os"

	"github.com/p2c2e/gnucash-cli/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
