// Package gitops records workspace changes as git commits.
package gitops

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Author identifies who commits ledger updates.
type Author struct {
	Name  string
	Email string
}

func (a Author) String() string {
	return fmt.Sprintf("%s <%s>", a.Name, a.Email)
}

func (a Author) env() []string {
	return append(os.Environ(),
		"GIT_AUTHOR_NAME="+a.Name,
		"GIT_AUTHOR_EMAIL="+a.Email,
		"GIT_COMMITTER_NAME="+a.Name,
		"GIT_COMMITTER_EMAIL="+a.Email,
	)
}

func run(ctx context.Context, dir string, env []string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir
	cmd.Env = env
	out, err := cmd.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("git %s: %s: %w", args[0], strings.TrimSpace(string(out)), err)
	}
	return strings.TrimSpace(string(out)), nil
}

// Init initializes a new git repository at dir.
func Init(ctx context.Context, dir string) error {
	_, err := run(ctx, dir, nil, "init", "--quiet")
	return err
}

// HasChanges reports whether the working tree differs from HEAD.
func HasChanges(ctx context.Context, dir string) (bool, error) {
	out, err := run(ctx, dir, nil, "status", "--porcelain")
	if err != nil {
		return false, err
	}
	return out != "", nil
}

// CommitAll stages all files and creates a commit. Returns the short commit hash.
func CommitAll(ctx context.Context, dir, message string, author Author) (string, error) {
	env := author.env()
	if _, err := run(ctx, dir, env, "add", "-A"); err != nil {
		return "", err
	}
	if _, err := run(ctx, dir, env, "commit", "--quiet", "-m", message); err != nil {
		return "", err
	}
	return run(ctx, dir, env, "rev-parse", "--short", "HEAD")
}

// IsRepo reports whether dir is the root of a git repository.
func IsRepo(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, ".git"))
	return err == nil
}
