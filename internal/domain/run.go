package domain

import (
	"time"

	"github.com/google/uuid"
)

// RepoSnapshot describes the repository state a run operated on.
type RepoSnapshot struct {
	Branch     string
	CommitHash string
}

// Run records one invocation of the filter pipeline for the history store.
type Run struct {
	ID           string
	Timestamp    time.Time
	Repository   string
	Branch       string
	CommitHash   string
	FilesChanged int
	LinesStaged  int
	LinesRead    int
	LinesKept    int
}

// KeptLine is one log line that survived filtering, with its position in
// the original log preserved.
type KeptLine struct {
	RunID    string
	Position int
	Text     string
}

// RunInput captures the information required to create a Run record.
type RunInput struct {
	Repository   string
	Branch       string
	CommitHash   string
	FilesChanged int
	LinesStaged  int
	LinesRead    int
	LinesKept    int
}

// NewRun constructs a Run with a fresh ID and timestamp.
func NewRun(input RunInput) Run {
	return Run{
		ID:           uuid.NewString(),
		Timestamp:    time.Now().UTC(),
		Repository:   input.Repository,
		Branch:       input.Branch,
		CommitHash:   input.CommitHash,
		FilesChanged: input.FilesChanged,
		LinesStaged:  input.LinesStaged,
		LinesRead:    input.LinesRead,
		LinesKept:    input.LinesKept,
	}
}

// KeptLines pairs a run with the lines it kept, for persistence.
func (r Run) KeptLines(lines []string) []KeptLine {
	kept := make([]KeptLine, 0, len(lines))
	for i, text := range lines {
		kept = append(kept, KeptLine{RunID: r.ID, Position: i + 1, Text: text})
	}
	return kept
}
