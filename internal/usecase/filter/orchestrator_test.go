package filter_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daipham1210/lintsift/internal/domain"
	"github.com/daipham1210/lintsift/internal/usecase/filter"
)

type fakeGit struct {
	diff string
	err  error
	snap domain.RepoSnapshot
}

func (f *fakeGit) StagedDiff(ctx context.Context) (string, error) {
	return f.diff, f.err
}

func (f *fakeGit) Snapshot(ctx context.Context) domain.RepoSnapshot {
	return f.snap
}

type fakeReader struct {
	lines []string
	err   error
	path  string
}

func (f *fakeReader) ReadLines(path string) ([]string, error) {
	f.path = path
	return f.lines, f.err
}

type captureRenderer struct {
	banners  []string
	infos    []string
	lines    []string
	summarys int
}

func (c *captureRenderer) Banner(title string) { c.banners = append(c.banners, title) }
func (c *captureRenderer) Info(message string) { c.infos = append(c.infos, message) }
func (c *captureRenderer) Lines(lines []string) {
	c.lines = append(c.lines, lines...)
}
func (c *captureRenderer) Summary(changes domain.ChangeSet, kept []string) { c.summarys++ }

type captureStore struct {
	run  domain.Run
	kept []domain.KeptLine
	err  error
	hits int
}

func (c *captureStore) SaveRun(ctx context.Context, run domain.Run, kept []domain.KeptLine) error {
	c.hits++
	c.run = run
	c.kept = kept
	return c.err
}

type captureLogger struct {
	warnings []string
}

func (c *captureLogger) LogInfo(ctx context.Context, message string, fields map[string]interface{}) {
}
func (c *captureLogger) LogWarning(ctx context.Context, message string, fields map[string]interface{}) {
	c.warnings = append(c.warnings, message)
}

const stagedDiff = `diff --git a/src/a.py b/src/a.py
--- a/src/a.py
+++ b/src/a.py
@@ -8,2 +8,4 @@
 context
+line nine
+line ten
`

func newDeps(git *fakeGit, reader *fakeReader, renderer *captureRenderer) filter.OrchestratorDeps {
	return filter.OrchestratorDeps{
		Git:               git,
		Logs:              reader,
		Renderer:          renderer,
		DefaultLogPath:    "/logs/git_output.log",
		DefaultSourceRoot: "src/",
		RepositoryName:    "scripts",
	}
}

func TestRunFiltersAndRenders(t *testing.T) {
	git := &fakeGit{diff: stagedDiff}
	reader := &fakeReader{lines: []string{
		"src/a.py:9:1: F401 unused import",
		"src/a.py:99: not staged",
		"black: reformatted src/a.py",
	}}
	renderer := &captureRenderer{}

	orch := filter.NewOrchestrator(newDeps(git, reader, renderer))
	result, err := orch.Run(context.Background(), filter.Request{})

	require.NoError(t, err)
	assert.False(t, result.NothingStaged)
	assert.Equal(t, 3, result.LinesRead)
	assert.Equal(t, []string{
		"src/a.py:9:1: F401 unused import",
		"black: reformatted src/a.py",
	}, result.Kept)

	assert.Equal(t, []string{"Getting changed lines", "Filtered Logs"}, renderer.banners)
	assert.Equal(t, result.Kept, renderer.lines)
	assert.Equal(t, 1, renderer.summarys)
	assert.Equal(t, "/logs/git_output.log", reader.path)
}

func TestRunNothingStaged(t *testing.T) {
	git := &fakeGit{diff: ""}
	reader := &fakeReader{}
	renderer := &captureRenderer{}

	orch := filter.NewOrchestrator(newDeps(git, reader, renderer))
	result, err := orch.Run(context.Background(), filter.Request{})

	require.NoError(t, err)
	assert.True(t, result.NothingStaged)
	assert.Contains(t, renderer.infos, "No staged files or changed lines to process.")
	assert.Equal(t, "", reader.path, "log must not be read when nothing is staged")
}

func TestRunZeroMatches(t *testing.T) {
	git := &fakeGit{diff: stagedDiff}
	reader := &fakeReader{lines: []string{"src/other.py:1: msg"}}
	renderer := &captureRenderer{}

	orch := filter.NewOrchestrator(newDeps(git, reader, renderer))
	result, err := orch.Run(context.Background(), filter.Request{})

	require.NoError(t, err)
	assert.Empty(t, result.Kept)
	assert.Contains(t, renderer.infos, "No logs found for changed lines in staged files.")
	assert.Zero(t, renderer.summarys)
}

func TestRunGitFailureIsFatal(t *testing.T) {
	git := &fakeGit{err: errors.New("git [diff --staged]: exit status 129")}
	renderer := &captureRenderer{}

	orch := filter.NewOrchestrator(newDeps(git, &fakeReader{}, renderer))
	_, err := orch.Run(context.Background(), filter.Request{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "get staged changes")
}

func TestRunMissingLogIsFatal(t *testing.T) {
	git := &fakeGit{diff: stagedDiff}
	reader := &fakeReader{err: errors.New("/logs/git_output.log: log file not found")}

	orch := filter.NewOrchestrator(newDeps(git, reader, &captureRenderer{}))
	_, err := orch.Run(context.Background(), filter.Request{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "log file not found")
}

func TestRunRequestOverrides(t *testing.T) {
	git := &fakeGit{diff: stagedDiff}
	reader := &fakeReader{lines: []string{"src/a.py:9: msg"}}

	orch := filter.NewOrchestrator(newDeps(git, reader, &captureRenderer{}))
	_, err := orch.Run(context.Background(), filter.Request{LogPath: "/tmp/custom.log"})

	require.NoError(t, err)
	assert.Equal(t, "/tmp/custom.log", reader.path)
}

func TestRunRecordsHistory(t *testing.T) {
	git := &fakeGit{diff: stagedDiff, snap: domain.RepoSnapshot{Branch: "main", CommitHash: "abc123"}}
	reader := &fakeReader{lines: []string{"src/a.py:9: msg", "noise"}}
	store := &captureStore{}

	deps := newDeps(git, reader, &captureRenderer{})
	deps.Store = store

	orch := filter.NewOrchestrator(deps)
	_, err := orch.Run(context.Background(), filter.Request{})

	require.NoError(t, err)
	require.Equal(t, 1, store.hits)
	assert.Equal(t, "scripts", store.run.Repository)
	assert.Equal(t, "main", store.run.Branch)
	assert.Equal(t, "abc123", store.run.CommitHash)
	assert.Equal(t, 1, store.run.FilesChanged)
	assert.Equal(t, 2, store.run.LinesStaged)
	assert.Equal(t, 2, store.run.LinesRead)
	assert.Equal(t, 1, store.run.LinesKept)
	require.Len(t, store.kept, 1)
	assert.Equal(t, "src/a.py:9: msg", store.kept[0].Text)
}

func TestRunStoreFailureIsNonFatal(t *testing.T) {
	git := &fakeGit{diff: stagedDiff}
	reader := &fakeReader{lines: []string{"src/a.py:9: msg"}}
	store := &captureStore{err: errors.New("disk full")}
	logger := &captureLogger{}

	deps := newDeps(git, reader, &captureRenderer{})
	deps.Store = store
	deps.Logger = logger

	orch := filter.NewOrchestrator(deps)
	_, err := orch.Run(context.Background(), filter.Request{})

	require.NoError(t, err, "history trouble must never fail the run")
	assert.Contains(t, logger.warnings, "failed to record run")
}

func TestRepositoryName(t *testing.T) {
	assert.Equal(t, "scripts", filter.RepositoryName("/home/user/scripts"))
}
