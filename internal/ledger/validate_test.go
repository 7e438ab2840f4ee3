package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/statements/internal/model"
)

func entry(entryID string, t model.ParsedTransaction) model.LedgerEntry {
	return model.LedgerEntry{EntryID: entryID, Txn: t, Bank: model.FormatDBS}
}

func TestValidateEntries_Valid(t *testing.T) {
	entries := []model.LedgerEntry{
		entry("dbs-2024-01-0001", txn("2024-01-02", "NTUC FAIRPRICE", "-45.20", model.CategoryFood)),
		entry("dbs-2024-01-0002", txn("2024-01-31", "SALARY", "5000", model.CategoryIncome)),
	}
	assert.Empty(t, ValidateEntries(entries, 2024, 1))
}

func TestValidateEntries_Rules(t *testing.T) {
	badCurrency := txn("2024-01-02", "X", "-1.00", model.CategoryOther)
	badCurrency.Currency = "sgd"

	tests := []struct {
		name    string
		entries []model.LedgerEntry
		rule    int
	}{
		{
			name:    "date outside month",
			entries: []model.LedgerEntry{entry("dbs-2024-01-0001", txn("2024-02-01", "X", "-1.00", model.CategoryOther))},
			rule:    RuleDateInMonth,
		},
		{
			name:    "unparsable date",
			entries: []model.LedgerEntry{entry("dbs-2024-01-0001", txn("01/02/2024", "X", "-1.00", model.CategoryOther))},
			rule:    RuleDateInMonth,
		},
		{
			name:    "sub-cent amount",
			entries: []model.LedgerEntry{entry("dbs-2024-01-0001", txn("2024-01-02", "X", "-1.005", model.CategoryOther))},
			rule:    RuleCents,
		},
		{
			name:    "unknown category",
			entries: []model.LedgerEntry{entry("dbs-2024-01-0001", txn("2024-01-02", "X", "-1.00", "Groceries"))},
			rule:    RuleCategory,
		},
		{
			name:    "lowercase currency",
			entries: []model.LedgerEntry{entry("dbs-2024-01-0001", badCurrency)},
			rule:    RuleCurrency,
		},
		{
			name: "duplicate sequence",
			entries: []model.LedgerEntry{
				entry("dbs-2024-01-0001", txn("2024-01-02", "X", "-1.00", model.CategoryOther)),
				entry("ocbc-2024-01-0001", txn("2024-01-03", "Y", "-2.00", model.CategoryOther)),
			},
			rule: RuleSequence,
		},
		{
			name: "gap in sequence",
			entries: []model.LedgerEntry{
				entry("dbs-2024-01-0001", txn("2024-01-02", "X", "-1.00", model.CategoryOther)),
				entry("dbs-2024-01-0003", txn("2024-01-03", "Y", "-2.00", model.CategoryOther)),
			},
			rule: RuleSequence,
		},
		{
			name:    "malformed entry ID",
			entries: []model.LedgerEntry{entry("2024-01-0001", txn("2024-01-02", "X", "-1.00", model.CategoryOther))},
			rule:    RuleSequence,
		},
		{
			name:    "entry ID from another month",
			entries: []model.LedgerEntry{entry("dbs-2024-02-0001", txn("2024-01-02", "X", "-1.00", model.CategoryOther))},
			rule:    RuleSequence,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := ValidateEntries(tt.entries, 2024, 1)
			require.NotEmpty(t, errs)
			assert.Equal(t, tt.rule, errs[0].Rule)
		})
	}
}

func TestValidationError_Error(t *testing.T) {
	e := ValidationError{Rule: RuleCurrency, EntryID: "dbs-2024-01-0001", Description: `invalid currency "sgd"`}
	assert.Equal(t, `rule 4 [dbs-2024-01-0001]: invalid currency "sgd"`, e.Error())
}
