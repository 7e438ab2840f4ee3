package importer

import (
	"strings"

	"github.com/cleared-dev/statements/internal/model"
)

// GenericParser handles unrecognized exports by locating date, description
// and amount columns from header keywords.
type GenericParser struct {
	builder
}

// Header keywords, matched as substrings of the lower-cased header fields.
var (
	genericDateKeys   = []string{"date"}
	genericDescKeys   = []string{"desc", "narration", "particular"}
	genericAmountKeys = []string{"amount", "value"}
)

// Format returns the parser's bank format.
func (p *GenericParser) Format() model.BankFormat { return model.FormatGeneric }

// Columns holds the resolved column positions for a generic export.
type Columns struct {
	Date   int
	Desc   int
	Amount int
}

// ResolveColumns scans header fields for known keywords, defaulting to 0/1/2.
// Earlier keywords win, so an "Amount" column beats a "Value Date" column.
func ResolveColumns(header []string) Columns {
	return Columns{
		Date:   findColumn(header, genericDateKeys, 0),
		Desc:   findColumn(header, genericDescKeys, 1),
		Amount: findColumn(header, genericAmountKeys, 2),
	}
}

func findColumn(header []string, keys []string, def int) int {
	for _, k := range keys {
		for i, h := range header {
			if strings.Contains(strings.ToLower(h), k) {
				return i
			}
		}
	}
	return def
}

func (c Columns) minFields() int {
	return max(c.Date, c.Desc, c.Amount) + 1
}

// Parse converts rows using the header-derived column positions.
func (p *GenericParser) Parse(header []string, rows []Row) Statement {
	cols := ResolveColumns(header)

	var stmt Statement
	for _, row := range rows {
		txn, err := p.parseRow(cols, row.Fields)
		if err != nil {
			stmt.Skipped = append(stmt.Skipped, RowError{Line: row.Line, Err: err})
			continue
		}
		stmt.Transactions = append(stmt.Transactions, txn)
	}
	return stmt
}

func (p *GenericParser) parseRow(cols Columns, fields []string) (model.ParsedTransaction, error) {
	if len(fields) < cols.minFields() {
		return model.ParsedTransaction{}, ErrTooFewFields
	}
	date, err := parseDate(fields[cols.Date])
	if err != nil {
		return model.ParsedTransaction{}, err
	}
	amount := NormalizeAmount(fields[cols.Amount])
	if amount.IsZero() {
		return model.ParsedTransaction{}, ErrZeroAmount
	}
	return p.transaction(date, fields[cols.Desc], amount, nil), nil
}
