package commands

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/statements/internal/buildinfo"
	"github.com/cleared-dev/statements/internal/config"
	"github.com/cleared-dev/statements/internal/workspace"
)

// options are the persistent flags shared by every subcommand.
type options struct {
	configPath string
	repo       string
	verbose    bool
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:     "statements",
		Short:   "Bank statement CSV ingestion",
		Version: buildinfo.String(),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", os.Getenv(config.EnvPath), "config file (default <repo>/statements.yaml)")
	flags.StringVar(&opts.repo, "repo", ".", "workspace directory")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(
		newInitCommand(opts),
		newParseCommand(opts),
		newImportCommand(opts),
		newCategorizeCommand(opts),
		newServeCommand(opts),
	)

	return rootCmd
}

func (o *options) root() (string, error) {
	abs, err := filepath.Abs(o.repo)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}
	return abs, nil
}

func (o *options) logger(w io.Writer, cfg *config.Config) *slog.Logger {
	level := cfg.Log.SlogLevel()
	if o.verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// open loads the workspace at --repo with logging to the command's stderr.
func (o *options) open(cmd *cobra.Command) (*workspace.Workspace, *slog.Logger, error) {
	root, err := o.root()
	if err != nil {
		return nil, nil, err
	}
	cfg, err := workspace.LoadConfig(root, o.configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}
	logger := o.logger(cmd.ErrOrStderr(), cfg)
	ws, err := workspace.New(root, cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	return ws, logger, nil
}
