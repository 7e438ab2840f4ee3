package model

// LedgerEntry is a parsed transaction filed into the monthly ledger.
type LedgerEntry struct {
	EntryID string // "dbs-2024-01-0001"
	Txn     ParsedTransaction
	Bank    BankFormat
	Source  string // statement file the row came from
}
