package importer

import "github.com/cleared-dev/statements/internal/model"

// UOBParser parses UOB card exports:
//
//	Transaction Date, Description, ..., Amount
//
// Every line of this feed is a card charge, so amounts are always outflows.
type UOBParser struct {
	builder
}

const (
	uobMinFields    = 3
	uobColDate      = 0
	uobColDesc      = 1
	uobColAmountAlt = 2
)

// Format returns the parser's bank format.
func (p *UOBParser) Format() model.BankFormat { return model.FormatUOB }

// Parse converts UOB rows. No running balance is tracked.
func (p *UOBParser) Parse(_ []string, rows []Row) Statement {
	var stmt Statement
	for _, row := range rows {
		txn, err := p.parseRow(row.Fields)
		if err != nil {
			stmt.Skipped = append(stmt.Skipped, RowError{Line: row.Line, Err: err})
			continue
		}
		stmt.Transactions = append(stmt.Transactions, txn)
	}
	return stmt
}

func (p *UOBParser) parseRow(fields []string) (model.ParsedTransaction, error) {
	if len(fields) < uobMinFields {
		return model.ParsedTransaction{}, ErrTooFewFields
	}
	date, err := parseDate(fields[uobColDate])
	if err != nil {
		return model.ParsedTransaction{}, err
	}

	raw := fields[len(fields)-1]
	if raw == "" {
		raw = fields[uobColAmountAlt]
	}
	amount := NormalizeAmount(raw).Abs().Neg()
	if amount.IsZero() {
		return model.ParsedTransaction{}, ErrZeroAmount
	}

	return p.transaction(date, fields[uobColDesc], amount, nil), nil
}
