package ledger

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cleared-dev/statements/internal/id"
	"github.com/cleared-dev/statements/internal/model"
)

const (
	dateFormat = "2006-01-02"
	fileName   = "transactions.csv"
)

// Service files transactions under <root>/YYYY/MM/transactions.csv.
type Service struct {
	root string
}

// NewService creates a ledger Service rooted at dir.
func NewService(root string) *Service {
	return &Service{root: root}
}

type monthKey struct{ year, month int }

// Append assigns entry IDs to txns, validates each affected month and appends
// the new entries. Nothing is written unless every month validates.
// Returns the new entry IDs in input order.
func (s *Service) Append(bank model.BankFormat, source string, txns []model.ParsedTransaction) ([]string, error) {
	var order []monthKey
	pending := make(map[monthKey][]model.LedgerEntry)
	next := make(map[monthKey]int)
	ids := make([]string, 0, len(txns))

	for i, txn := range txns {
		d, err := time.Parse(dateFormat, txn.Date)
		if err != nil {
			return nil, fmt.Errorf("transaction %d: parsing date %q: %w", i+1, txn.Date, err)
		}
		key := monthKey{d.Year(), int(d.Month())}
		if _, ok := next[key]; !ok {
			seq, err := s.NextSeq(key.year, key.month)
			if err != nil {
				return nil, err
			}
			next[key] = seq
			order = append(order, key)
		}

		entryID := id.FormatEntryID(string(bank), key.year, key.month, next[key])
		next[key]++
		ids = append(ids, entryID)
		pending[key] = append(pending[key], model.LedgerEntry{
			EntryID: entryID,
			Txn:     txn,
			Bank:    bank,
			Source:  source,
		})
	}

	for _, key := range order {
		existing, err := s.ReadMonth(key.year, key.month)
		if err != nil {
			return nil, err
		}
		all := append(existing, pending[key]...)
		if verrs := ValidateEntries(all, key.year, key.month); len(verrs) > 0 {
			msgs := make([]string, len(verrs))
			for i, ve := range verrs {
				msgs[i] = ve.Error()
			}
			return nil, fmt.Errorf("validation failed: %s", strings.Join(msgs, "; "))
		}
	}

	for _, key := range order {
		if err := s.appendMonth(key, pending[key]); err != nil {
			return nil, err
		}
	}
	return ids, nil
}

func (s *Service) appendMonth(key monthKey, entries []model.LedgerEntry) error {
	path := s.monthPath(key.year, key.month)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating ledger dir: %w", err)
	}

	isNew := false
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		isNew = true
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("opening ledger: %w", err)
	}
	defer f.Close()

	if isNew {
		if _, err := fmt.Fprintln(f, Header); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}
	if err := AppendEntries(f, entries); err != nil {
		return fmt.Errorf("appending entries: %w", err)
	}
	return nil
}

// ReadMonth reads all entries for a given year/month.
func (s *Service) ReadMonth(year, month int) ([]model.LedgerEntry, error) {
	path := s.monthPath(year, month)
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening ledger %s: %w", path, err)
	}
	defer f.Close()

	entries, err := ReadEntries(f)
	if err != nil {
		return nil, fmt.Errorf("reading ledger %s: %w", path, err)
	}
	return entries, nil
}

// NextSeq returns the next available sequence number for a month.
func (s *Service) NextSeq(year, month int) (int, error) {
	entries, err := s.ReadMonth(year, month)
	if err != nil {
		return 0, err
	}

	maxSeq := 0
	for _, e := range entries {
		_, _, _, seq, err := id.ParseEntryID(e.EntryID)
		if err != nil {
			continue
		}
		maxSeq = max(maxSeq, seq)
	}
	return maxSeq + 1, nil
}

func (s *Service) monthPath(year, month int) string {
	return filepath.Join(s.root, fmt.Sprintf("%04d", year), fmt.Sprintf("%02d", month), fileName)
}
