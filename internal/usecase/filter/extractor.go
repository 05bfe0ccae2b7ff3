// Package filter implements the staged-change filtering pipeline: it turns
// the staged diff into a per-file set of added line numbers and keeps only
// the captured log lines that touch those lines.
package filter

import (
	"github.com/daipham1210/lintsift/internal/diff"
	"github.com/daipham1210/lintsift/internal/domain"
)

// ExtractChangedLines folds a parsed staged diff into a ChangeSet. Every
// file that reached the diff keeps a key even when no lines were added, so
// tool summary lines mentioning it still match.
func ExtractChangedLines(patch diff.Patch) domain.ChangeSet {
	changes := domain.NewChangeSet()
	for _, file := range patch.Files {
		changes.AddFile(file.Path)
		for _, line := range file.AddedLines() {
			changes.AddLine(file.Path, line)
		}
	}
	return changes
}
