// Package config reads and writes gnucash.yaml.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the top-level gnucash.yaml configuration.
type Config struct {
	// Book is the path of the book snapshot commands operate on.
	Book string `yaml:"book"`
	// BaseCurrency is the fallback used when a book has no discoverable
	// base currency of its own.
	BaseCurrency string         `yaml:"base_currency"`
	CashFlow     CashFlowConfig `yaml:"cashflow"`
}

// CashFlowConfig controls cash-flow statement classification.
type CashFlowConfig struct {
	// OperatingCashAccounts names the asset accounts whose movements the
	// statement explains; they are excluded from the investing category.
	OperatingCashAccounts []string `yaml:"operating_cash_accounts"`
}

// Load reads a gnucash.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns the configuration a fresh project starts with.
func Default(bookPath string) *Config {
	return &Config{
		Book:         bookPath,
		BaseCurrency: "USD",
		CashFlow: CashFlowConfig{
			OperatingCashAccounts: []string{"Checking Account", "Savings Account"},
		},
	}
}
