package importer

import (
	"github.com/shopspring/decimal"

	"github.com/cleared-dev/statements/internal/model"
)

// DBSParser parses DBS/POSB account exports:
//
//	Date, Description, Debit, Credit, Balance
type DBSParser struct {
	builder
}

const (
	dbsMinFields  = 3
	dbsColDate    = 0
	dbsColDesc    = 1
	dbsColDebit   = 2
	dbsColCredit  = 3
	dbsColBalance = 4
)

// Format returns the parser's bank format.
func (p *DBSParser) Format() model.BankFormat { return model.FormatDBS }

// Parse converts DBS rows. An explicit zero debit or credit is a real value;
// only rows with both columns blank are dropped.
func (p *DBSParser) Parse(_ []string, rows []Row) Statement {
	var stmt Statement
	var bal balanceTracker

	for _, row := range rows {
		r, err := p.parseRow(row.Fields)
		if err != nil {
			stmt.Skipped = append(stmt.Skipped, RowError{Line: row.Line, Err: err})
			continue
		}
		bal.observe(r.txn.Balance, r.out, r.in)
		stmt.Transactions = append(stmt.Transactions, r.txn)
	}

	stmt.OpeningBalance = bal.opening
	stmt.ClosingBalance = bal.closing
	return stmt
}

// flowRow is a parsed row from a format with separate outflow/inflow columns.
type flowRow struct {
	txn model.ParsedTransaction
	out decimal.Decimal
	in  decimal.Decimal
}

func (p *DBSParser) parseRow(fields []string) (flowRow, error) {
	if len(fields) < dbsMinFields {
		return flowRow{}, ErrTooFewFields
	}
	date, err := parseDate(fields[dbsColDate])
	if err != nil {
		return flowRow{}, err
	}

	debitRaw, creditRaw := field(fields, dbsColDebit), field(fields, dbsColCredit)
	if debitRaw == "" && creditRaw == "" {
		return flowRow{}, ErrNoAmount
	}
	debit, credit := NormalizeAmount(debitRaw), NormalizeAmount(creditRaw)

	amount := debit.Neg()
	if credit.IsPositive() {
		amount = credit
	}

	balance := optionalAmount(field(fields, dbsColBalance))
	return flowRow{
		txn: p.transaction(date, fields[dbsColDesc], amount, balance),
		out: debit,
		in:  credit,
	}, nil
}
