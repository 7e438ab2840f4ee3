// Package ledger files parsed transactions into monthly CSV ledgers.
package ledger

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/statements/internal/model"
)

// Header is the CSV header for transactions.csv.
const Header = "entry_id,date,description,amount,category,currency,balance,bank,source"

const (
	numFields   = 9
	colEntryID  = 0
	colDate     = 1
	colDesc     = 2
	colAmount   = 3
	colCategory = 4
	colCurrency = 5
	colBalance  = 6
	colBank     = 7
	colSource   = 8
)

// ReadEntries reads all entries from a transactions.csv reader.
func ReadEntries(r io.Reader) ([]model.LedgerEntry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading ledger CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}

	var entries []model.LedgerEntry
	for i, rec := range records[1:] {
		e, err := UnmarshalEntry(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// WriteEntries writes entries including the header.
func WriteEntries(w io.Writer, entries []model.LedgerEntry) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, e := range entries {
		if err := cw.Write(MarshalEntry(e)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

// AppendEntries writes entries without a header.
func AppendEntries(w io.Writer, entries []model.LedgerEntry) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	for i, e := range entries {
		if err := cw.Write(MarshalEntry(e)); err != nil {
			return fmt.Errorf("writing row %d: %w", i, err)
		}
	}
	return cw.Error()
}

// MarshalEntry converts an entry to a CSV row.
func MarshalEntry(e model.LedgerEntry) []string {
	row := make([]string, numFields)
	row[colEntryID] = e.EntryID
	row[colDate] = e.Txn.Date
	row[colDesc] = e.Txn.Description
	row[colAmount] = e.Txn.Amount.StringFixed(2)
	row[colCategory] = string(e.Txn.Category)
	row[colCurrency] = e.Txn.Currency
	if e.Txn.Balance != nil {
		row[colBalance] = e.Txn.Balance.StringFixed(2)
	}
	row[colBank] = string(e.Bank)
	row[colSource] = e.Source
	return row
}

// UnmarshalEntry converts a CSV row to an entry.
func UnmarshalEntry(record []string) (model.LedgerEntry, error) {
	if len(record) != numFields {
		return model.LedgerEntry{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	amount, err := decimal.NewFromString(record[colAmount])
	if err != nil {
		return model.LedgerEntry{}, fmt.Errorf("parsing amount %q: %w", record[colAmount], err)
	}

	var balance *decimal.Decimal
	if record[colBalance] != "" {
		b, err := decimal.NewFromString(record[colBalance])
		if err != nil {
			return model.LedgerEntry{}, fmt.Errorf("parsing balance %q: %w", record[colBalance], err)
		}
		balance = &b
	}

	return model.LedgerEntry{
		EntryID: record[colEntryID],
		Txn: model.ParsedTransaction{
			Date:        record[colDate],
			Description: record[colDesc],
			Amount:      amount,
			Category:    model.Category(record[colCategory]),
			Currency:    record[colCurrency],
			Balance:     balance,
		},
		Bank:   model.BankFormat(record[colBank]),
		Source: record[colSource],
	}, nil
}
