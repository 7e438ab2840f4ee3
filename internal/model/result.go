package model

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// ParseResult is the single output contract of a statement parse.
// Error is set only when Success is false.
type ParseResult struct {
	Success        bool
	Transactions   []ParsedTransaction
	BankDetected   BankFormat
	OpeningBalance *decimal.Decimal
	ClosingBalance *decimal.Decimal
	Error          string
}

type resultJSON struct {
	Success        bool                `json:"success"`
	Transactions   []ParsedTransaction `json:"transactions"`
	BankDetected   BankFormat          `json:"bankDetected"`
	OpeningBalance *json.Number        `json:"opening_balance,omitempty"`
	ClosingBalance *json.Number        `json:"closing_balance,omitempty"`
	Error          string              `json:"error,omitempty"`
}

// MarshalJSON emits an empty array rather than null for no transactions.
func (r ParseResult) MarshalJSON() ([]byte, error) {
	txns := r.Transactions
	if txns == nil {
		txns = []ParsedTransaction{}
	}
	return json.Marshal(resultJSON{
		Success:        r.Success,
		Transactions:   txns,
		BankDetected:   r.BankDetected,
		OpeningBalance: numberPtr(r.OpeningBalance),
		ClosingBalance: numberPtr(r.ClosingBalance),
		Error:          r.Error,
	})
}

// UnmarshalJSON reads the shape produced by MarshalJSON.
func (r *ParseResult) UnmarshalJSON(data []byte) error {
	var w resultJSON
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	opening, err := decimalPtr(w.OpeningBalance)
	if err != nil {
		return err
	}
	closing, err := decimalPtr(w.ClosingBalance)
	if err != nil {
		return err
	}
	*r = ParseResult{
		Success:        w.Success,
		Transactions:   w.Transactions,
		BankDetected:   w.BankDetected,
		OpeningBalance: opening,
		ClosingBalance: closing,
		Error:          w.Error,
	}
	return nil
}
