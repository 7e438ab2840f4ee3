package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/statements/internal/categorize"
	"github.com/cleared-dev/statements/internal/config"
	"github.com/cleared-dev/statements/internal/gitops"
	"github.com/cleared-dev/statements/internal/importer"
)

func newInitCommand(opts *options) *cobra.Command {
	var currency string
	var useGit bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new statements workspace",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := opts.repo
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			cfg := config.Default()
			cfg.Currency = currency
			cfg.Git.AutoCommit = useGit
			return runInit(cmd.Context(), cmd.OutOrStdout(), absDir, cfg)
		},
	}

	cmd.Flags().StringVar(&currency, "currency", config.Default().Currency, "default currency for parsed transactions")
	cmd.Flags().BoolVar(&useGit, "git", false, "initialize a git repository and commit imports")

	return cmd
}

func runInit(ctx context.Context, out io.Writer, dir string, cfg *config.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	cfgPath := filepath.Join(dir, config.FileName)
	if _, err := os.Stat(cfgPath); err == nil {
		return fmt.Errorf("%s already exists in %s", config.FileName, dir)
	}

	importDir := config.Resolve(dir, cfg.Import.Dir)
	rulesPath := config.Resolve(dir, cfg.Rules.File)
	dirs := []string{
		importDir,
		filepath.Join(importDir, importer.ProcessedDir),
		config.Resolve(dir, cfg.Ledger.Dir),
		filepath.Join(dir, "logs"),
		filepath.Dir(rulesPath),
	}
	for _, d := range dirs {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", d, err)
		}
	}

	if err := config.Save(cfgPath, cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	if err := categorize.SaveFile(rulesPath, categorize.RuleFile{}); err != nil {
		return err
	}

	if err := os.WriteFile(filepath.Join(dir, ".gitignore"), []byte(".env\n"), 0o644); err != nil {
		return fmt.Errorf("writing .gitignore: %w", err)
	}

	if err := os.WriteFile(filepath.Join(importDir, ".gitkeep"), []byte{}, 0o644); err != nil {
		return fmt.Errorf("writing .gitkeep: %w", err)
	}

	if !cfg.Git.AutoCommit {
		fmt.Fprintf(out, "Initialized statements workspace at %s\n", dir)
		return nil
	}

	if !gitops.IsRepo(dir) {
		if err := gitops.Init(ctx, dir); err != nil {
			return err
		}
	}
	hash, err := gitops.CommitAll(ctx, dir, "init: statements workspace", gitops.Author{
		Name:  cfg.Git.AuthorName,
		Email: cfg.Git.AuthorEmail,
	})
	if err != nil {
		return fmt.Errorf("initial commit: %w", err)
	}

	fmt.Fprintf(out, "Initialized statements workspace at %s (%s)\n", dir, hash)
	return nil
}
