// Package importer turns bank statement CSV exports into canonical transactions.
package importer

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/statements/internal/categorize"
	"github.com/cleared-dev/statements/internal/model"
)

// Row is one tokenized data line. Line is 1-based in the source file.
type Row struct {
	Line   int
	Fields []string
}

// Statement is what a Parser extracts from the data rows.
type Statement struct {
	Transactions   []model.ParsedTransaction
	OpeningBalance *decimal.Decimal
	ClosingBalance *decimal.Decimal
	Skipped        []RowError
}

// Parser converts the rows of one bank format into a Statement.
// header holds the lower-cased header fields.
type Parser interface {
	Parse(header []string, rows []Row) Statement
	Format() model.BankFormat
}

// Row-level skip reasons.
var (
	ErrTooFewFields = errors.New("too few fields")
	ErrBadDate      = errors.New("unrecognized date")
	ErrNoAmount     = errors.New("no amount")
	ErrZeroAmount   = errors.New("zero amount")
)

// RowError records why a data row was skipped.
type RowError struct {
	Line int
	Err  error
}

func (e RowError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e RowError) Unwrap() error { return e.Err }

// Registry holds one parser per bank format.
type Registry struct {
	parsers map[model.BankFormat]Parser
}

// NewRegistry creates an empty parser registry.
func NewRegistry() *Registry {
	return &Registry{parsers: make(map[model.BankFormat]Parser)}
}

// Register adds a parser. Panics on duplicate format.
func (r *Registry) Register(p Parser) {
	if _, ok := r.parsers[p.Format()]; ok {
		panic("duplicate parser format: " + string(p.Format()))
	}
	r.parsers[p.Format()] = p
}

// Get returns the parser for format, or nil.
func (r *Registry) Get(format model.BankFormat) Parser {
	return r.parsers[format]
}

// DefaultRegistry returns a registry with all built-in parsers.
func DefaultRegistry(c *categorize.Categorizer, currency string) *Registry {
	b := builder{categorizer: c, currency: currency}
	r := NewRegistry()
	r.Register(&DBSParser{b})
	r.Register(&OCBCParser{b})
	r.Register(&UOBParser{b})
	r.Register(&GenericParser{b})
	return r
}

// builder stamps category and currency onto parsed rows.
type builder struct {
	categorizer *categorize.Categorizer
	currency    string
}

func (b builder) transaction(date, desc string, amount decimal.Decimal, balance *decimal.Decimal) model.ParsedTransaction {
	desc = strings.TrimSpace(desc)
	return model.ParsedTransaction{
		Date:        date,
		Description: desc,
		Amount:      amount,
		Category:    b.categorizer.Categorize(desc),
		Currency:    b.currency,
		Balance:     balance,
	}
}

// balanceTracker derives opening and closing balances from running balances.
type balanceTracker struct {
	opening *decimal.Decimal
	closing *decimal.Decimal
}

// observe records a row's running balance. The first balance-bearing row
// fixes the opening balance by reversing that row's effect.
func (t *balanceTracker) observe(balance *decimal.Decimal, out, in decimal.Decimal) {
	if balance == nil {
		return
	}
	if t.opening == nil {
		o := balance.Add(out).Sub(in)
		t.opening = &o
	}
	c := *balance
	t.closing = &c
}

func field(fields []string, i int) string {
	if i < 0 || i >= len(fields) {
		return ""
	}
	return fields[i]
}

func parseDate(raw string) (string, error) {
	date, ok := NormalizeDate(raw)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrBadDate, raw)
	}
	return date, nil
}

// Scan returns CSV files in dir, skipping subdirectories.
func Scan(dir string) ([]FileInfo, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading import dir: %w", err)
	}

	var files []FileInfo
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(strings.ToLower(e.Name()), ".csv") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", e.Name(), err)
		}
		files = append(files, FileInfo{
			Name: e.Name(),
			Path: filepath.Join(dir, e.Name()),
			Size: info.Size(),
		})
	}
	return files, nil
}

// FileInfo describes a CSV file waiting in the import directory.
type FileInfo struct {
	Name string
	Path string
	Size int64
}

// ProcessedDir is the subdirectory of the import dir that holds parsed files.
const ProcessedDir = "processed"

// MarkProcessed moves dir/fileName into dir/processed/.
func MarkProcessed(dir, fileName string) error {
	dstDir := filepath.Join(dir, ProcessedDir)
	if err := os.MkdirAll(dstDir, 0o755); err != nil {
		return fmt.Errorf("creating processed dir: %w", err)
	}

	src := filepath.Join(dir, fileName)
	dst := filepath.Join(dstDir, fileName)
	if err := os.Rename(src, dst); err != nil {
		return fmt.Errorf("moving %s to processed: %w", fileName, err)
	}
	return nil
}
