package model

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// DefaultCurrency is the home currency of the supported banks.
const DefaultCurrency = "SGD"

// ParsedTransaction is one canonical ledger entry extracted from a statement row.
type ParsedTransaction struct {
	Date        string          // YYYY-MM-DD
	Description string          //nolint:revive // plain field name is clearest
	Amount      decimal.Decimal // negative = outflow, positive = inflow
	Category    Category
	Currency    string
	Balance     *decimal.Decimal // running balance after this row, when the export has one
}

type transactionJSON struct {
	Date        string       `json:"date"`
	Description string       `json:"description"`
	Amount      json.Number  `json:"amount"`
	Category    Category     `json:"category"`
	Currency    string       `json:"currency"`
	Balance     *json.Number `json:"balance,omitempty"`
}

// MarshalJSON writes amounts as JSON numbers rather than quoted strings.
func (t ParsedTransaction) MarshalJSON() ([]byte, error) {
	return json.Marshal(transactionJSON{
		Date:        t.Date,
		Description: t.Description,
		Amount:      json.Number(t.Amount.String()),
		Category:    t.Category,
		Currency:    t.Currency,
		Balance:     numberPtr(t.Balance),
	})
}

// UnmarshalJSON reads the shape produced by MarshalJSON.
func (t *ParsedTransaction) UnmarshalJSON(data []byte) error {
	var w transactionJSON
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	amount, err := decimal.NewFromString(w.Amount.String())
	if err != nil {
		return fmt.Errorf("parsing amount %q: %w", w.Amount, err)
	}
	balance, err := decimalPtr(w.Balance)
	if err != nil {
		return fmt.Errorf("parsing balance: %w", err)
	}
	*t = ParsedTransaction{
		Date:        w.Date,
		Description: w.Description,
		Amount:      amount,
		Category:    w.Category,
		Currency:    w.Currency,
		Balance:     balance,
	}
	return nil
}

func numberPtr(d *decimal.Decimal) *json.Number {
	if d == nil {
		return nil
	}
	n := json.Number(d.String())
	return &n
}

func decimalPtr(n *json.Number) (*decimal.Decimal, error) {
	if n == nil {
		return nil, nil
	}
	d, err := decimal.NewFromString(n.String())
	if err != nil {
		return nil, err
	}
	return &d, nil
}
