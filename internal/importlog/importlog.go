// Package importlog keeps an append-only CSV record of import runs.
package importlog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Status values recorded for each imported file.
const (
	StatusImported = "imported"
	StatusFailed   = "failed"
	StatusDryRun   = "dry-run"
)

// Entry is one row in the import log.
type Entry struct {
	Timestamp    time.Time
	RunID        uuid.UUID
	File         string
	Bank         string
	Transactions int
	Skipped      int
	Status       string
	Error        string
}

// Header is the CSV header for import-log.csv.
const Header = "timestamp,run_id,file,bank,transactions,skipped,status,error"

const (
	numFields       = 8
	logDir          = "logs"
	logFile         = "import-log.csv"
	colTimestamp    = 0
	colRunID        = 1
	colFile         = 2
	colBank         = 3
	colTransactions = 4
	colSkipped      = 5
	colStatus       = 6
	colError        = 7
)

// NewRunID returns a fresh identifier shared by every entry of one import run.
func NewRunID() uuid.UUID {
	return uuid.New()
}

// Path returns the log file location under root.
func Path(root string) string {
	return filepath.Join(root, logDir, logFile)
}

// MarshalEntry converts an Entry to a CSV row.
func MarshalEntry(e Entry) []string {
	row := make([]string, numFields)
	row[colTimestamp] = e.Timestamp.UTC().Format(time.RFC3339)
	row[colRunID] = e.RunID.String()
	row[colFile] = e.File
	row[colBank] = e.Bank
	row[colTransactions] = strconv.Itoa(e.Transactions)
	row[colSkipped] = strconv.Itoa(e.Skipped)
	row[colStatus] = e.Status
	row[colError] = e.Error
	return row
}

// UnmarshalEntry converts a CSV row to an Entry.
func UnmarshalEntry(record []string) (Entry, error) {
	if len(record) != numFields {
		return Entry{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	ts, err := time.Parse(time.RFC3339, record[colTimestamp])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing timestamp %q: %w", record[colTimestamp], err)
	}
	runID, err := uuid.Parse(record[colRunID])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing run ID %q: %w", record[colRunID], err)
	}
	txns, err := strconv.Atoi(record[colTransactions])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing transactions %q: %w", record[colTransactions], err)
	}
	skipped, err := strconv.Atoi(record[colSkipped])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing skipped %q: %w", record[colSkipped], err)
	}

	return Entry{
		Timestamp:    ts,
		RunID:        runID,
		File:         record[colFile],
		Bank:         record[colBank],
		Transactions: txns,
		Skipped:      skipped,
		Status:       record[colStatus],
		Error:        record[colError],
	}, nil
}

// Append writes entries to <root>/logs/import-log.csv, creating the file and header if needed.
func Append(root string, entries []Entry) error {
	if err := os.MkdirAll(filepath.Join(root, logDir), 0o755); err != nil {
		return fmt.Errorf("creating logs dir: %w", err)
	}

	path := Path(root)
	needsHeader := false
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		needsHeader = true
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening import log: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	defer cw.Flush()

	if needsHeader {
		if err := cw.Write(strings.Split(Header, ",")); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}
	for i, e := range entries {
		if err := cw.Write(MarshalEntry(e)); err != nil {
			return fmt.Errorf("writing entry %d: %w", i, err)
		}
	}
	return cw.Error()
}

// Read returns all entries from <root>/logs/import-log.csv.
// Returns an empty slice if the file does not exist.
func Read(root string) ([]Entry, error) {
	f, err := os.Open(Path(root))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening import log: %w", err)
	}
	defer f.Close()

	return readEntries(f)
}

func readEntries(r io.Reader) ([]Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading import log CSV: %w", err)
	}
	if len(records) <= 1 {
		return nil, nil
	}

	var entries []Entry
	for i, rec := range records[1:] {
		e, err := UnmarshalEntry(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}
