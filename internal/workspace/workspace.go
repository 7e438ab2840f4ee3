// Package workspace ties a statements directory's config, rules, ledger and
// import log together and runs imports over it.
package workspace

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/cleared-dev/statements/internal/categorize"
	"github.com/cleared-dev/statements/internal/config"
	"github.com/cleared-dev/statements/internal/gitops"
	"github.com/cleared-dev/statements/internal/importer"
	"github.com/cleared-dev/statements/internal/importlog"
	"github.com/cleared-dev/statements/internal/ledger"
	"github.com/cleared-dev/statements/internal/model"
)

// Workspace holds the services backing one statements directory.
type Workspace struct {
	Root        string
	Config      *config.Config
	Categorizer *categorize.Categorizer
	Engine      *importer.Engine
	Ledger      *ledger.Service

	logger *slog.Logger
}

// LoadConfig reads configPath, or <root>/statements.yaml when configPath is
// empty. A missing file yields config.Default.
func LoadConfig(root, configPath string) (*config.Config, error) {
	if configPath == "" {
		configPath = filepath.Join(root, config.FileName)
	}
	cfg, err := config.Load(configPath)
	if errors.Is(err, fs.ErrNotExist) {
		return config.Default(), nil
	}
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// Open loads config for root and wires the workspace services.
func Open(root, configPath string, logger *slog.Logger) (*Workspace, error) {
	cfg, err := LoadConfig(root, configPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return New(root, cfg, logger)
}

// New loads the categorization rules named by cfg and wires the engine and ledger.
func New(root string, cfg *config.Config, logger *slog.Logger) (*Workspace, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	cat, err := categorize.LoadFile(config.Resolve(root, cfg.Rules.File))
	if err != nil {
		return nil, fmt.Errorf("loading rules: %w", err)
	}

	return &Workspace{
		Root:        root,
		Config:      cfg,
		Categorizer: cat,
		Engine:      importer.NewEngine(cat, cfg.Currency, importer.WithLogger(logger)),
		Ledger:      ledger.NewService(config.Resolve(root, cfg.Ledger.Dir)),
		logger:      logger,
	}, nil
}

// ImportDir is the inbox scanned by Import.
func (w *Workspace) ImportDir() string {
	return config.Resolve(w.Root, w.Config.Import.Dir)
}

// FileResult is the outcome of importing one statement file.
type FileResult struct {
	File     string
	Bank     model.BankFormat
	EntryIDs []string
	Count    int
	Skipped  []importer.RowError
	Err      error
}

// Summary is the outcome of one Import run.
type Summary struct {
	RunID  uuid.UUID
	Files  []FileResult
	Commit string
}

// Imported returns the number of transactions filed across all files.
func (s *Summary) Imported() int {
	n := 0
	for _, f := range s.Files {
		if f.Err == nil {
			n += f.Count
		}
	}
	return n
}

// Failed returns the number of files that could not be imported.
func (s *Summary) Failed() int {
	n := 0
	for _, f := range s.Files {
		if f.Err != nil {
			n++
		}
	}
	return n
}

// Import parses every CSV in the inbox, files the transactions into the
// ledger and moves each imported file to the processed directory. Files that
// fail stay in the inbox. A dry run parses only and writes nothing.
func (w *Workspace) Import(ctx context.Context, dryRun bool) (*Summary, error) {
	files, err := importer.Scan(w.ImportDir())
	if err != nil {
		return nil, err
	}

	sum := &Summary{RunID: importlog.NewRunID()}
	var logEntries []importlog.Entry
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return sum, err
		}

		res := w.importFile(f, dryRun)
		sum.Files = append(sum.Files, res)

		entry := importlog.Entry{
			Timestamp:    time.Now().UTC(),
			RunID:        sum.RunID,
			File:         f.Name,
			Bank:         string(res.Bank),
			Transactions: res.Count,
			Skipped:      len(res.Skipped),
			Status:       importlog.StatusImported,
		}
		switch {
		case res.Err != nil:
			entry.Status = importlog.StatusFailed
			entry.Error = res.Err.Error()
			w.logger.Warn("import failed", "file", f.Name, "err", res.Err)
		case dryRun:
			entry.Status = importlog.StatusDryRun
		default:
			w.logger.Info("imported statement", "file", f.Name, "bank", res.Bank, "transactions", res.Count)
		}
		logEntries = append(logEntries, entry)
	}

	if dryRun || len(logEntries) == 0 {
		return sum, nil
	}
	if err := importlog.Append(w.Root, logEntries); err != nil {
		return sum, fmt.Errorf("writing import log: %w", err)
	}

	if w.Config.Git.AutoCommit && gitops.IsRepo(w.Root) {
		hash, err := w.commit(ctx, fmt.Sprintf("import: %d transactions from %d files", sum.Imported(), len(sum.Files)-sum.Failed()))
		if err != nil {
			return sum, err
		}
		sum.Commit = hash
	}
	return sum, nil
}

func (w *Workspace) importFile(f importer.FileInfo, dryRun bool) FileResult {
	res := FileResult{File: f.Name, Bank: model.FormatGeneric}

	data, err := os.ReadFile(f.Path)
	if err != nil {
		res.Err = fmt.Errorf("reading %s: %w", f.Name, err)
		return res
	}
	content, err := importer.DecodeText(data)
	if err != nil {
		res.Err = err
		return res
	}

	rep := w.Engine.Inspect(content)
	res.Bank = rep.Result.BankDetected
	res.Skipped = rep.Skipped
	if !rep.Result.Success {
		res.Err = errors.New(rep.Result.Error)
		return res
	}
	res.Count = len(rep.Result.Transactions)
	if dryRun {
		return res
	}

	ids, err := w.Ledger.Append(res.Bank, f.Name, rep.Result.Transactions)
	if err != nil {
		res.Count = 0
		res.Err = err
		return res
	}
	res.EntryIDs = ids

	if err := importer.MarkProcessed(w.ImportDir(), f.Name); err != nil {
		res.Err = err
	}
	return res
}

// commit records the workspace state, skipping the commit when nothing changed.
func (w *Workspace) commit(ctx context.Context, message string) (string, error) {
	changed, err := gitops.HasChanges(ctx, w.Root)
	if err != nil || !changed {
		return "", err
	}
	hash, err := gitops.CommitAll(ctx, w.Root, message, gitops.Author{
		Name:  w.Config.Git.AuthorName,
		Email: w.Config.Git.AuthorEmail,
	})
	if err != nil {
		return "", fmt.Errorf("committing import: %w", err)
	}
	return hash, nil
}
