package importer

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/cleared-dev/statements/internal/categorize"
	"github.com/cleared-dev/statements/internal/model"
)

// Engine runs format detection, row parsing and result assembly.
// It holds no per-call state and is safe for concurrent use.
type Engine struct {
	registry *Registry
	logger   *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger used for skipped-row diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// WithRegistry replaces the parser registry.
func WithRegistry(r *Registry) Option {
	return func(e *Engine) { e.registry = r }
}

// NewEngine creates an Engine using the built-in parsers.
func NewEngine(c *categorize.Categorizer, currency string, opts ...Option) *Engine {
	e := &Engine{
		registry: DefaultRegistry(c, currency),
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

var defaultEngine = NewEngine(categorize.Default(), model.DefaultCurrency)

// Parse runs the default engine over a full CSV document.
func Parse(content string) model.ParseResult {
	return defaultEngine.Parse(content)
}

// Report is a parse result plus the rows that were skipped.
type Report struct {
	Result  model.ParseResult
	Skipped []RowError
}

// Parse converts a full CSV document. It never panics and always returns a
// result; failures are reported through Success and Error.
func (e *Engine) Parse(content string) model.ParseResult {
	return e.Inspect(content).Result
}

var lineBreak = regexp.MustCompile(`\r?\n`)

// Inspect is Parse with skipped-row diagnostics.
func (e *Engine) Inspect(content string) (rep Report) {
	format := model.FormatGeneric
	defer func() {
		if r := recover(); r != nil {
			e.logger.Warn("statement parse failed", "format", format, "panic", r)
			rep = Report{Result: failure(format, fmt.Sprintf("failed to parse CSV: %v", r))}
		}
	}()

	lines := lineBreak.Split(strings.TrimSpace(content), -1)
	format = DetectFormat(lines[0])
	if len(lines) < 2 {
		e.logger.Warn("statement has no data rows", "format", format)
		return Report{Result: failure(format, "CSV must contain a header row and at least one data row")}
	}

	p := e.registry.Get(format)
	if p == nil {
		return Report{Result: failure(format, fmt.Sprintf("no parser registered for %s format", format))}
	}

	header := SplitLine(strings.ToLower(lines[0]))
	rows := make([]Row, 0, len(lines)-1)
	for i, line := range lines[1:] {
		if strings.TrimSpace(line) == "" {
			continue
		}
		rows = append(rows, Row{Line: i + 2, Fields: SplitLine(line)})
	}

	stmt := p.Parse(header, rows)
	for _, skipped := range stmt.Skipped {
		e.logger.Debug("skipped row", "format", format, "line", skipped.Line, "reason", skipped.Err)
	}
	return Report{Result: assemble(format, stmt), Skipped: stmt.Skipped}
}

func assemble(format model.BankFormat, stmt Statement) model.ParseResult {
	if len(stmt.Transactions) == 0 {
		return failure(format, fmt.Sprintf("no valid transactions found in %s statement", format))
	}
	return model.ParseResult{
		Success:        true,
		Transactions:   stmt.Transactions,
		BankDetected:   format,
		OpeningBalance: stmt.OpeningBalance,
		ClosingBalance: stmt.ClosingBalance,
	}
}

func failure(format model.BankFormat, msg string) model.ParseResult {
	return model.ParseResult{
		Success:      false,
		Transactions: []model.ParsedTransaction{},
		BankDetected: format,
		Error:        msg,
	}
}
