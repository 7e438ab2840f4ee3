package commands_test

import (
	"bytes"
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/statements/internal/commands"
	"github.com/cleared-dev/statements/internal/config"
	"github.com/cleared-dev/statements/internal/importlog"
	"github.com/cleared-dev/statements/internal/model"
)

// runStatements executes the CLI in-process and returns stdout and stderr.
func runStatements(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := commands.NewRootCommand()
	cmd.SetArgs(args)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func fixture(t *testing.T, name string) string {
	t.Helper()
	path, err := filepath.Abs(filepath.Join("..", "..", "testdata", name))
	require.NoError(t, err)
	return path
}

func copyFixture(t *testing.T, name, dstDir string) {
	t.Helper()
	data, err := os.ReadFile(fixture(t, name))
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dstDir, name), data, 0o644))
}

func TestInit_CreatesStructure(t *testing.T) {
	dir := t.TempDir()
	out, _, err := runStatements(t, "init", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Initialized statements workspace")

	for _, d := range []string{"import", filepath.Join("import", "processed"), "ledger", "logs", "rules"} {
		info, err := os.Stat(filepath.Join(dir, d))
		require.NoError(t, err, "directory %s should exist", d)
		assert.True(t, info.IsDir(), "%s should be a directory", d)
	}

	rules, err := os.ReadFile(filepath.Join(dir, "rules", "categorization-rules.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "rules: []\n", string(rules))

	cfg, err := config.Load(filepath.Join(dir, config.FileName))
	require.NoError(t, err)
	assert.Equal(t, "SGD", cfg.Currency)
	assert.False(t, cfg.Git.AutoCommit)
}

func TestInit_Currency(t *testing.T) {
	dir := t.TempDir()
	_, _, err := runStatements(t, "init", dir, "--currency", "USD")
	require.NoError(t, err)

	cfg, err := config.Load(filepath.Join(dir, config.FileName))
	require.NoError(t, err)
	assert.Equal(t, "USD", cfg.Currency)
}

func TestInit_RejectsBadCurrency(t *testing.T) {
	_, _, err := runStatements(t, "init", t.TempDir(), "--currency", "dollars")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "currency")
}

func TestInit_AlreadyInitialized(t *testing.T) {
	dir := t.TempDir()
	_, _, err := runStatements(t, "init", dir)
	require.NoError(t, err)

	_, _, err = runStatements(t, "init", dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestInit_GitRepo(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}

	dir := t.TempDir()
	_, _, err := runStatements(t, "init", dir, "--git")
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(dir, ".git"))
	require.NoError(t, err, ".git should exist")

	log := exec.Command("git", "log", "--format=%s|%an", "-1")
	log.Dir = dir
	out, err := log.Output()
	require.NoError(t, err)
	assert.Contains(t, string(out), "init: statements workspace|Statements Importer")
}

func TestParse_PrintsJSON(t *testing.T) {
	out, _, err := runStatements(t, "--repo", t.TempDir(), "parse", fixture(t, "dbs_statement.csv"))
	require.NoError(t, err)

	var res model.ParseResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.True(t, res.Success)
	assert.Equal(t, model.FormatDBS, res.BankDetected)
	assert.Len(t, res.Transactions, 4)
	assert.Contains(t, out, `"opening_balance": 1000`)
}

func TestParse_Skipped(t *testing.T) {
	_, stderr, err := runStatements(t, "--repo", t.TempDir(), "parse", "--skipped", fixture(t, "uob_card.csv"))
	require.NoError(t, err)
	assert.Contains(t, stderr, "skipped line 5")
}

func TestParse_FailureReturnsError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "header.csv")
	require.NoError(t, os.WriteFile(path, []byte("Date,Description,Amount\n"), 0o644))

	out, _, err := runStatements(t, "--repo", dir, "parse", path)
	require.Error(t, err)
	assert.Contains(t, out, `"success": false`)
	assert.Contains(t, err.Error(), "header row")
}

func TestParse_MissingFile(t *testing.T) {
	_, _, err := runStatements(t, "--repo", t.TempDir(), "parse", "does-not-exist.csv")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading statement")
}

func TestCategorize(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"NTUC FAIRPRICE"}, "Food"},
		{[]string{"GRAB", "RIDE"}, "Transport"},
		{[]string{"random merchant"}, "Other"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			args := append([]string{"--repo", t.TempDir(), "categorize"}, tt.args...)
			out, _, err := runStatements(t, args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want+"\n", out)
		})
	}
}

func TestCategorize_UserRules(t *testing.T) {
	dir := t.TempDir()
	_, _, err := runStatements(t, "init", dir)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "rules", "categorization-rules.yaml"),
		[]byte("rules:\n  - category: Utilities\n    pattern: netflix\n"), 0o644))

	out, _, err := runStatements(t, "--repo", dir, "categorize", "NETFLIX.COM")
	require.NoError(t, err)
	assert.Equal(t, "Utilities\n", out)
}

func TestImport(t *testing.T) {
	dir := t.TempDir()
	_, _, err := runStatements(t, "init", dir)
	require.NoError(t, err)
	copyFixture(t, "ocbc_statement.csv", filepath.Join(dir, "import"))

	out, _, err := runStatements(t, "import", "--repo", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "ocbc_statement.csv: 3 transactions (OCBC), 1 rows skipped")
	assert.Contains(t, out, "Imported 3 transactions from 1 files")

	ledgerPath := filepath.Join(dir, "ledger", "2024", "01", "transactions.csv")
	_, err = os.Stat(ledgerPath)
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(dir, "import", "processed", "ocbc_statement.csv"))
	require.NoError(t, err)

	logged, err := importlog.Read(dir)
	require.NoError(t, err)
	assert.Len(t, logged, 1)
}

func TestImport_DryRun(t *testing.T) {
	dir := t.TempDir()
	_, _, err := runStatements(t, "init", dir)
	require.NoError(t, err)
	copyFixture(t, "dbs_statement.csv", filepath.Join(dir, "import"))

	out, _, err := runStatements(t, "import", "--repo", dir, "--dry-run")
	require.NoError(t, err)
	assert.Contains(t, out, "Would import 4 transactions from 1 files")

	_, err = os.Stat(filepath.Join(dir, "ledger", "2024"))
	assert.True(t, os.IsNotExist(err), "dry run must not write the ledger")
}

func TestImport_Empty(t *testing.T) {
	dir := t.TempDir()
	_, _, err := runStatements(t, "init", dir)
	require.NoError(t, err)

	out, _, err := runStatements(t, "import", "--repo", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "No statements to import")
}

func TestImport_FailedFile(t *testing.T) {
	dir := t.TempDir()
	_, _, err := runStatements(t, "init", dir)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "import", "junk.csv"), []byte("nothing useful"), 0o644))

	out, _, err := runStatements(t, "import", "--repo", dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 1 files failed")
	assert.Contains(t, out, "junk.csv: failed")
}

func TestConfigFlag(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Currency = "EUR"
	cfgPath := filepath.Join(dir, "custom.yaml")
	require.NoError(t, config.Save(cfgPath, cfg))

	out, _, err := runStatements(t, "--repo", dir, "--config", cfgPath, "parse", fixture(t, "dbs_statement.csv"))
	require.NoError(t, err)
	assert.Contains(t, out, `"currency": "EUR"`)
}

func TestVerboseLogsSkippedRows(t *testing.T) {
	_, stderr, err := runStatements(t, "--repo", t.TempDir(), "-v", "parse", fixture(t, "uob_card.csv"))
	require.NoError(t, err)
	assert.Contains(t, stderr, "skipped row")
	assert.Contains(t, stderr, "level=DEBUG")
}
