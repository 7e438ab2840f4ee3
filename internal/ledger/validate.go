package ledger

import (
	"fmt"
	"regexp"
	"time"

	"github.com/cleared-dev/statements/internal/id"
	"github.com/cleared-dev/statements/internal/model"
)

// Ledger rules checked by ValidateEntries.
const (
	RuleDateInMonth = iota + 1
	RuleCents
	RuleCategory
	RuleCurrency
	RuleSequence
)

// ValidationError describes a single rule violation.
type ValidationError struct {
	Rule        int
	EntryID     string
	Description string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("rule %d [%s]: %s", e.Rule, e.EntryID, e.Description)
}

var currencyPattern = regexp.MustCompile(`^[A-Z]{3}$`)

// ValidateEntries checks a month's worth of ledger entries.
func ValidateEntries(entries []model.LedgerEntry, year, month int) []ValidationError {
	var errs []ValidationError
	add := func(rule int, entryID, format string, args ...any) {
		errs = append(errs, ValidationError{Rule: rule, EntryID: entryID, Description: fmt.Sprintf(format, args...)})
	}

	for _, e := range entries {
		d, err := time.Parse(dateFormat, e.Txn.Date)
		switch {
		case err != nil:
			add(RuleDateInMonth, e.EntryID, "invalid date %q", e.Txn.Date)
		case d.Year() != year || int(d.Month()) != month:
			add(RuleDateInMonth, e.EntryID, "date %s not in %04d-%02d", e.Txn.Date, year, month)
		}

		if !e.Txn.Amount.Equal(e.Txn.Amount.Round(2)) {
			add(RuleCents, e.EntryID, "amount %s has more than 2 decimal places", e.Txn.Amount)
		}

		if _, ok := model.ParseCategory(string(e.Txn.Category)); !ok {
			add(RuleCategory, e.EntryID, "unknown category %q", e.Txn.Category)
		}

		if !currencyPattern.MatchString(e.Txn.Currency) {
			add(RuleCurrency, e.EntryID, "invalid currency %q", e.Txn.Currency)
		}
	}

	// Sequence numbers are unique and contiguous 1..N within the month.
	seen := make(map[int]bool)
	for _, e := range entries {
		_, y, m, seq, err := id.ParseEntryID(e.EntryID)
		if err != nil {
			add(RuleSequence, e.EntryID, "invalid entry ID: %v", err)
			continue
		}
		if y != year || m != month {
			add(RuleSequence, e.EntryID, "entry ID not in %04d-%02d", year, month)
		}
		if seen[seq] {
			add(RuleSequence, e.EntryID, "duplicate sequence %d", seq)
		}
		seen[seq] = true
	}
	for i := 1; i <= len(seen); i++ {
		if !seen[i] {
			add(RuleSequence, fmt.Sprintf("seq %d", i), "missing sequence %d in 1..%d", i, len(seen))
		}
	}

	return errs
}
