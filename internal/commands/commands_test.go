package commands

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/p2c2e/gnucash-cli/internal/book"
)

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

// initWorkspace runs init into a temp directory and returns the config
// and book paths it created.
func initWorkspace(t *testing.T) (configPath, bookPath string) {
	t.Helper()

	dir := t.TempDir()
	out, err := runCommand(t, "init", dir)
	require.NoError(t, err)
	require.Contains(t, out, "Initialized")

	return filepath.Join(dir, "gnucash.yaml"), filepath.Join(dir, "sample.book.json")
}

func TestInitCreatesConfigAndSampleBook(t *testing.T) {
	configPath, bookPath := initWorkspace(t)

	_, err := os.Stat(configPath)
	require.NoError(t, err)

	b, err := book.LoadFile(bookPath)
	require.NoError(t, err)
	assert.Equal(t, "USD", b.BaseCurrency())
	assert.NotEmpty(t, b.Transactions())
}

func TestInitRefusesToOverwrite(t *testing.T) {
	_, bookPath := initWorkspace(t)

	_, err := runCommand(t, "init", filepath.Dir(bookPath))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestBalanceSheetJSON(t *testing.T) {
	configPath, _ := initWorkspace(t)

	out, err := runCommand(t, "balance-sheet", "--json", "--config", configPath)
	require.NoError(t, err)

	var st map[string]json.RawMessage
	require.NoError(t, json.Unmarshal([]byte(out), &st))
	assert.Contains(t, st, "assets")
	assert.Contains(t, st, "liabilities")
	assert.Contains(t, st, "equity")
	assert.Contains(t, st, "metadata")

	var assets map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(st["assets"], &assets))
	require.Contains(t, assets, "_total")

	var total string
	require.NoError(t, json.Unmarshal(assets["_total"], &total),
		"totals must be decimal strings, not floats")
	assert.NotEmpty(t, total)

	var meta struct {
		Date     string `json:"date"`
		Currency string `json:"currency"`
	}
	require.NoError(t, json.Unmarshal(st["metadata"], &meta))
	assert.Equal(t, "USD", meta.Currency)
	assert.NotEmpty(t, meta.Date)
}

func TestBalanceSheetAsOfDate(t *testing.T) {
	configPath, _ := initWorkspace(t)

	out, err := runCommand(t, "balance-sheet", "--json", "--config", configPath, "--date", "2020-01-01")
	require.NoError(t, err)

	// Nothing is posted before the sample's opening balance, so every
	// category totals to zero.
	var st map[string]json.RawMessage
	require.NoError(t, json.Unmarshal([]byte(out), &st))
	for _, category := range []string{"assets", "liabilities", "equity"} {
		var cat map[string]json.RawMessage
		require.NoError(t, json.Unmarshal(st[category], &cat))
		var total string
		require.NoError(t, json.Unmarshal(cat["_total"], &total))
		assert.Equal(t, "0", total, category)
	}
}

func TestBalanceSheetRejectsBadDate(t *testing.T) {
	configPath, _ := initWorkspace(t)

	_, err := runCommand(t, "balance-sheet", "--config", configPath, "--date", "01/02/2024")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "date")
}

func TestCashflowJSON(t *testing.T) {
	configPath, _ := initWorkspace(t)

	out, err := runCommand(t, "cashflow", "--json", "--config", configPath)
	require.NoError(t, err)

	var st map[string]json.RawMessage
	require.NoError(t, json.Unmarshal([]byte(out), &st))
	assert.Contains(t, st, "operating")
	assert.Contains(t, st, "investing")
	assert.Contains(t, st, "financing")

	var meta struct {
		StartDate string `json:"start_date"`
		EndDate   string `json:"end_date"`
	}
	require.NoError(t, json.Unmarshal(st["metadata"], &meta))
	assert.NotEmpty(t, meta.StartDate)
	assert.NotEmpty(t, meta.EndDate)
}

func TestCashflowRejectsInvertedRange(t *testing.T) {
	configPath, _ := initWorkspace(t)

	_, err := runCommand(t, "cashflow", "--config", configPath,
		"--start", "2024-06-01", "--end", "2024-01-01")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "after")
}

func TestTransferPostsAndSaves(t *testing.T) {
	configPath, bookPath := initWorkspace(t)

	before, err := book.LoadFile(bookPath)
	require.NoError(t, err)
	posted := len(before.Transactions())

	out, err := runCommand(t, "transfer", "--config", configPath,
		"--from", "Assets:Checking Account",
		"--to", "Expenses:Groceries",
		"--amount", "25.00",
		"--date", "2024-04-01",
		"--description", "Weekly shop")
	require.NoError(t, err)
	assert.Contains(t, out, "Posted")

	after, err := book.LoadFile(bookPath)
	require.NoError(t, err)
	require.Len(t, after.Transactions(), posted+1)

	tx := after.Transactions()[posted]
	assert.Equal(t, "Weekly shop", tx.Description)
	assert.True(t, tx.Balanced())
}

func TestTransferRejectsNonPositiveAmount(t *testing.T) {
	configPath, _ := initWorkspace(t)

	_, err := runCommand(t, "transfer", "--config", configPath,
		"--from", "Assets:Checking Account",
		"--to", "Expenses:Groceries",
		"--amount", "-5")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "positive")
}

func TestTransferRejectsUnknownAccount(t *testing.T) {
	configPath, _ := initWorkspace(t)

	_, err := runCommand(t, "transfer", "--config", configPath,
		"--from", "Assets:No Such Account",
		"--to", "Expenses:Groceries",
		"--amount", "10")
	require.Error(t, err)
}

func TestTransactionsList(t *testing.T) {
	configPath, _ := initWorkspace(t)

	out, err := runCommand(t, "transactions", "--config", configPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Paycheck")
	assert.Contains(t, out, "Weekly groceries")
	assert.Contains(t, out, "Assets:Checking Account")
}

func TestTransactionsListByAccount(t *testing.T) {
	configPath, _ := initWorkspace(t)

	out, err := runCommand(t, "transactions", "--config", configPath,
		"--account", "Liabilities:Credit Card")
	require.NoError(t, err)
	assert.Contains(t, out, "Electric bill")
	assert.Contains(t, out, "Credit card payment")
	assert.NotContains(t, out, "Paycheck")

	_, err = runCommand(t, "transactions", "--config", configPath,
		"--account", "Assets:No Such Account")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown account")
}

func TestTransactionsListWindow(t *testing.T) {
	configPath, _ := initWorkspace(t)

	year := time.Now().Year()
	out, err := runCommand(t, "transactions", "--config", configPath,
		"--start", fmt.Sprintf("%d-01-01", year),
		"--end", fmt.Sprintf("%d-01-31", year))
	require.NoError(t, err)
	assert.Contains(t, out, "Paycheck")
	assert.NotContains(t, out, "Weekly groceries", "February is outside the window")
}

func TestTransactionsJSON(t *testing.T) {
	configPath, _ := initWorkspace(t)

	out, err := runCommand(t, "transactions", "--json", "--config", configPath)
	require.NoError(t, err)

	var txs []struct {
		ID       string `json:"id"`
		PostDate string `json:"post_date"`
		Splits   []struct {
			Account string `json:"account_path"`
			Value   string `json:"value"`
		} `json:"splits"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &txs))
	require.NotEmpty(t, txs)
	assert.NotEmpty(t, txs[0].ID)
	require.NotEmpty(t, txs[0].Splits)
	assert.NotEmpty(t, txs[0].Splits[0].Value, "values must be decimal strings")
}

func TestAddAccountCreatesAndSaves(t *testing.T) {
	configPath, bookPath := initWorkspace(t)

	out, err := runCommand(t, "add-account", "--config", configPath,
		"--parent", "Expenses",
		"--name", "Dining",
		"--kind", "EXPENSE",
		"--description", "Restaurants")
	require.NoError(t, err)
	assert.Contains(t, out, `"Expenses:Dining"`)

	b, err := book.LoadFile(bookPath)
	require.NoError(t, err)
	acct, ok := b.Lookup("Expenses:Dining")
	require.True(t, ok)
	assert.Equal(t, "Restaurants", acct.Description())
}

func TestAddAccountRejectsBadKind(t *testing.T) {
	configPath, _ := initWorkspace(t)

	_, err := runCommand(t, "add-account", "--config", configPath,
		"--name", "Dining", "--kind", "dinner")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown account kind")
}

func TestAddTransactionMultiSplit(t *testing.T) {
	configPath, bookPath := initWorkspace(t)

	before, err := book.LoadFile(bookPath)
	require.NoError(t, err)
	posted := len(before.Transactions())

	out, err := runCommand(t, "add-transaction", "--config", configPath,
		"--date", "2024-05-01",
		"--description", "Split shopping trip",
		"--split", "Expenses:Groceries=60.00",
		"--split", "Expenses:Utilities=15.00",
		"--split", "Assets:Checking Account=-75.00")
	require.NoError(t, err)
	assert.Contains(t, out, "3 splits")

	after, err := book.LoadFile(bookPath)
	require.NoError(t, err)
	require.Len(t, after.Transactions(), posted+1)

	tx := after.Transactions()[posted]
	assert.Equal(t, "Split shopping trip", tx.Description)
	require.Len(t, tx.Splits, 3)
	assert.True(t, tx.Balanced())
}

func TestAddTransactionRejectsUnbalancedSplits(t *testing.T) {
	configPath, _ := initWorkspace(t)

	_, err := runCommand(t, "add-transaction", "--config", configPath,
		"--split", "Expenses:Groceries=60.00",
		"--split", "Assets:Checking Account=-59.00")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not balance")
}

func TestAddTransactionRejectsBadSplitSpec(t *testing.T) {
	configPath, _ := initWorkspace(t)

	_, err := runCommand(t, "add-transaction", "--config", configPath,
		"--split", "Expenses:Groceries",
		"--split", "Assets:Checking Account=-59.00")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid split")
}

func TestAccountsListsTree(t *testing.T) {
	configPath, _ := initWorkspace(t)

	out, err := runCommand(t, "accounts", "--config", configPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Assets:Checking Account")
	assert.Contains(t, out, "Expenses:Groceries")
}

func TestBookFlagOverridesConfig(t *testing.T) {
	configPath, bookPath := initWorkspace(t)

	// Point the flag at a copy in another directory; the config's own
	// book must be ignored.
	other := filepath.Join(t.TempDir(), "copy.book.json")
	data, err := os.ReadFile(bookPath)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(other, data, 0o644))

	_, err = runCommand(t, "balance-sheet", "--json", "--config", configPath, "--book", other)
	require.NoError(t, err)
}

func TestMissingBookIsAnError(t *testing.T) {
	dir := t.TempDir()

	_, err := runCommand(t, "balance-sheet", "--config", filepath.Join(dir, "gnucash.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no book configured")
}
