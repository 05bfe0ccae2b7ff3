package filter

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/daipham1210/lintsift/internal/diff"
	"github.com/daipham1210/lintsift/internal/domain"
)

// GitEngine is the port for reading staged-change state.
type GitEngine interface {
	StagedDiff(ctx context.Context) (string, error)
	Snapshot(ctx context.Context) domain.RepoSnapshot
}

// LogReader is the port for loading the captured lint output.
type LogReader interface {
	ReadLines(path string) ([]string, error)
}

// Renderer is the port for console output.
type Renderer interface {
	Banner(title string)
	Info(message string)
	Lines(lines []string)
	Summary(changes domain.ChangeSet, kept []string)
}

// HistoryStore persists run records. Optional; failures degrade to warnings.
type HistoryStore interface {
	SaveRun(ctx context.Context, run domain.Run, kept []domain.KeptLine) error
}

// Logger receives structured pipeline events. Optional.
type Logger interface {
	LogInfo(ctx context.Context, message string, fields map[string]interface{})
	LogWarning(ctx context.Context, message string, fields map[string]interface{})
}

// Request carries per-invocation overrides resolved by the CLI. Empty
// fields fall back to the configured defaults.
type Request struct {
	LogPath    string
	SourceRoot string
	Repository string
}

// Result reports what a run did, for the CLI exit-code mapping and tests.
type Result struct {
	NothingStaged bool
	LinesRead     int
	Kept          []string
	Changes       domain.ChangeSet
}

// OrchestratorDeps captures the collaborators for the pipeline.
type OrchestratorDeps struct {
	Git      GitEngine
	Logs     LogReader
	Renderer Renderer
	Store    HistoryStore
	Logger   Logger

	DefaultLogPath    string
	DefaultSourceRoot string
	RepositoryName    string
}

// Orchestrator sequences the pipeline: staged diff, changed-line
// extraction, log read, filtering, rendering, and best-effort history.
type Orchestrator struct {
	deps OrchestratorDeps
}

// NewOrchestrator constructs the pipeline orchestrator.
func NewOrchestrator(deps OrchestratorDeps) *Orchestrator {
	return &Orchestrator{deps: deps}
}

// Run executes one filtering pass. Version-control failures and a missing
// log file return errors; everything else completes with exit status 0
// semantics, including the nothing-staged and zero-match cases.
func (o *Orchestrator) Run(ctx context.Context, req Request) (Result, error) {
	logPath := req.LogPath
	if logPath == "" {
		logPath = o.deps.DefaultLogPath
	}
	sourceRoot := req.SourceRoot
	if sourceRoot == "" {
		sourceRoot = o.deps.DefaultSourceRoot
	}

	o.deps.Renderer.Banner("Getting changed lines")

	diffText, err := o.deps.Git.StagedDiff(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("get staged changes: %w", err)
	}

	changes := ExtractChangedLines(diff.Parse(diffText))
	o.logInfo(ctx, "extracted staged changes", map[string]interface{}{
		"files": len(changes),
		"lines": changes.TotalLines(),
	})

	if changes.IsEmpty() {
		o.deps.Renderer.Info("No staged files or changed lines to process.")
		o.record(ctx, changes, nil, 0, req)
		return Result{NothingStaged: true, Changes: changes}, nil
	}

	logs, err := o.deps.Logs.ReadLines(logPath)
	if err != nil {
		return Result{}, err
	}

	kept := NewFilter(sourceRoot).Apply(logs, changes)

	o.deps.Renderer.Banner("Filtered Logs")
	if len(kept) > 0 {
		o.deps.Renderer.Lines(kept)
		o.deps.Renderer.Summary(changes, kept)
	} else {
		o.deps.Renderer.Info("No logs found for changed lines in staged files.")
	}

	o.record(ctx, changes, kept, len(logs), req)

	return Result{LinesRead: len(logs), Kept: kept, Changes: changes}, nil
}

// record persists the run when a store is wired. Store trouble must never
// fail a filtering run, so errors are downgraded to warnings.
func (o *Orchestrator) record(ctx context.Context, changes domain.ChangeSet, kept []string, linesRead int, req Request) {
	if o.deps.Store == nil {
		return
	}

	snap := o.deps.Git.Snapshot(ctx)
	repo := req.Repository
	if repo == "" {
		repo = o.deps.RepositoryName
	}

	run := domain.NewRun(domain.RunInput{
		Repository:   repo,
		Branch:       snap.Branch,
		CommitHash:   snap.CommitHash,
		FilesChanged: len(changes),
		LinesStaged:  changes.TotalLines(),
		LinesRead:    linesRead,
		LinesKept:    len(kept),
	})

	if err := o.deps.Store.SaveRun(ctx, run, run.KeptLines(kept)); err != nil {
		o.logWarning(ctx, "failed to record run", map[string]interface{}{
			"error": err.Error(),
		})
	}
}

func (o *Orchestrator) logInfo(ctx context.Context, msg string, fields map[string]interface{}) {
	if o.deps.Logger != nil {
		o.deps.Logger.LogInfo(ctx, msg, fields)
	}
}

func (o *Orchestrator) logWarning(ctx context.Context, msg string, fields map[string]interface{}) {
	if o.deps.Logger != nil {
		o.deps.Logger.LogWarning(ctx, msg, fields)
	}
}

// RepositoryName derives a display name for a repository directory: the
// base name of its absolute path.
func RepositoryName(repoDir string) string {
	abs, err := filepath.Abs(repoDir)
	if err != nil {
		return repoDir
	}
	return filepath.Base(abs)
}
