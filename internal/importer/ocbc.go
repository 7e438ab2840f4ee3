package importer

import "github.com/cleared-dev/statements/internal/model"

// OCBCParser parses OCBC account exports:
//
//	Date, Description, Withdrawals, Deposits, Balance
type OCBCParser struct {
	builder
}

const (
	ocbcMinFields     = 4
	ocbcColDate       = 0
	ocbcColDesc       = 1
	ocbcColWithdrawal = 2
	ocbcColDeposit    = 3
	ocbcColBalance    = 4
)

// Format returns the parser's bank format.
func (p *OCBCParser) Format() model.BankFormat { return model.FormatOCBC }

// Parse converts OCBC rows. Rows that net to zero are dropped.
func (p *OCBCParser) Parse(_ []string, rows []Row) Statement {
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

func (p *OCBCParser) parseRow(fields []string) (flowRow, error) {
	if len(fields) < ocbcMinFields {
		return flowRow{}, ErrTooFewFields
	}
	date, err := parseDate(fields[ocbcColDate])
	if err != nil {
		return flowRow{}, err
	}

	withdrawal := NormalizeAmount(fields[ocbcColWithdrawal])
	deposit := NormalizeAmount(fields[ocbcColDeposit])

	amount := withdrawal.Neg()
	if deposit.IsPositive() {
		amount = deposit
	}
	if amount.IsZero() {
		return flowRow{}, ErrZeroAmount
	}

	balance := optionalAmount(field(fields, ocbcColBalance))
	return flowRow{
		txn: p.transaction(date, fields[ocbcColDesc], amount, balance),
		out: withdrawal,
		in:  deposit,
	}, nil
}
