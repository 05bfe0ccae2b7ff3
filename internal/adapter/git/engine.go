// Package git reads staged-change state from the working repository.
package git

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	goGit "github.com/go-git/go-git/v5"

	"github.com/daipham1210/lintsift/internal/domain"
)

// Runner executes a git command in a repository directory and returns its
// stdout. Tests substitute a runner that returns literal diff text.
type Runner func(ctx context.Context, repoDir string, args ...string) (string, error)

// Engine obtains the staged diff and repository metadata. The diff text
// comes from the git client so the bytes match what the pre-commit hooks
// saw; repository metadata is read through go-git.
type Engine struct {
	repoDir string
	run     Runner
}

// NewEngine constructs an engine for the provided repository directory.
func NewEngine(repoDir string) *Engine {
	return &Engine{repoDir: repoDir, run: runGitCommand}
}

// NewEngineWithRunner constructs an engine with a custom command runner.
func NewEngineWithRunner(repoDir string, run Runner) *Engine {
	return &Engine{repoDir: repoDir, run: run}
}

// StagedDiff returns the unified diff text for the staging area. A failing
// git invocation is returned as an error with stderr folded in; the caller
// treats it as fatal.
func (e *Engine) StagedDiff(ctx context.Context) (string, error) {
	out, err := e.run(ctx, e.repoDir, "diff", "--staged")
	if err != nil {
		return "", fmt.Errorf("staged diff: %w", err)
	}
	return out, nil
}

// Snapshot returns the current branch and HEAD hash for run records.
// Repositories without a usable HEAD (fresh init, detached HEAD) yield
// partial snapshots rather than errors; history metadata is best-effort.
func (e *Engine) Snapshot(ctx context.Context) domain.RepoSnapshot {
	snap := domain.RepoSnapshot{}

	repo, err := goGit.PlainOpenWithOptions(e.repoDir, &goGit.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return snap
	}

	head, err := repo.Head()
	if err != nil {
		return snap
	}
	snap.CommitHash = head.Hash().String()
	if name := head.Name(); name.IsBranch() {
		snap.Branch = name.Short()
	}
	return snap
}

func runGitCommand(ctx context.Context, repoDir string, args ...string) (string, error) {
	fullArgs := append([]string{"-C", repoDir}, args...)
	cmd := exec.CommandContext(ctx, "git", fullArgs...)
	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return "", fmt.Errorf("git %v: %w", args, ctx.Err())
		}
		if stderr.Len() > 0 {
			err = fmt.Errorf("%w: %s", err, strings.TrimSpace(stderr.String()))
		}
		return "", fmt.Errorf("git %v: %w", args, err)
	}
	return stdout.String(), nil
}
