// Package diff parses the unified diff text emitted by git into per-file
// hunks with new-side line numbers resolved.
package diff

import (
	"strconv"
	"strings"
)

// LineType represents the type of a line in a diff hunk.
type LineType int

const (
	// LineContext represents an unchanged context line (starts with ' ').
	LineContext LineType = iota
	// LineAddition represents an added line (starts with '+').
	LineAddition
	// LineDeletion represents a deleted line (starts with '-').
	LineDeletion
)

// Line represents a single line in a diff hunk.
type Line struct {
	Type    LineType // The type of change
	Content string   // The line content (without the prefix)
	NewLine *int     // Line number in new file (nil for deletions)
}

// Hunk represents a single @@ hunk in a unified diff.
type Hunk struct {
	OldStart int    // Starting line in old file
	OldLines int    // Number of lines from old file
	NewStart int    // Starting line in new file
	NewLines int    // Number of lines in new file
	Lines    []Line // The lines in this hunk
}

// FileDiff holds the hunks for one file in a multi-file diff. Path is the
// new-side path with the "b/" prefix stripped. A file that appears in the
// diff without any added lines (mode changes, pure deletions against a
// surviving file) still gets a FileDiff with empty hunks.
type FileDiff struct {
	Path  string
	Hunks []Hunk
}

// Patch is a parsed multi-file unified diff, in the order git emitted it.
type Patch struct {
	Files []FileDiff
}

const newFileMarker = "+++ b/"

// Parse parses git diff output covering any number of files. Hunk content
// seen before a file header, malformed hunk headers, and diff metadata
// (diff --git, index, ---, mode lines, binary notices) are ignored.
func Parse(text string) Patch {
	patch := Patch{}
	if text == "" {
		return patch
	}

	var file *FileDiff
	var hunk *Hunk
	currentNewLine := 0

	flushHunk := func() {
		if file != nil && hunk != nil {
			file.Hunks = append(file.Hunks, *hunk)
		}
		hunk = nil
	}
	flushFile := func() {
		flushHunk()
		if file != nil {
			patch.Files = append(patch.Files, *file)
		}
		file = nil
	}

	for _, line := range strings.Split(text, "\n") {
		switch {
		case strings.HasPrefix(line, newFileMarker):
			flushFile()
			file = &FileDiff{Path: strings.TrimSpace(line[len(newFileMarker):])}
			currentNewLine = 0
			continue
		case strings.HasPrefix(line, "+++ "):
			// New side is /dev/null: the file is gone, nothing to track.
			flushFile()
			continue
		case strings.HasPrefix(line, "--- "),
			strings.HasPrefix(line, "diff --git"),
			strings.HasPrefix(line, "index "),
			strings.HasPrefix(line, "\\ "):
			continue
		case strings.HasPrefix(line, "@@"):
			start, count, newStart, newCount, ok := parseHunkHeader(line)
			if !ok || file == nil {
				continue
			}
			flushHunk()
			hunk = &Hunk{OldStart: start, OldLines: count, NewStart: newStart, NewLines: newCount}
			currentNewLine = newStart
			continue
		}

		if hunk == nil || line == "" {
			// Metadata (new file mode, Binary files ... differ) or the
			// trailing empty split element.
			continue
		}

		var parsed Line
		switch line[0] {
		case '+':
			n := currentNewLine
			parsed = Line{Type: LineAddition, Content: line[1:], NewLine: &n}
			currentNewLine++
		case '-':
			// Deletions do not exist in the new file's numbering.
			parsed = Line{Type: LineDeletion, Content: line[1:]}
		case ' ':
			n := currentNewLine
			parsed = Line{Type: LineContext, Content: line[1:], NewLine: &n}
			currentNewLine++
		default:
			// Unknown prefix: treat as context so the cursor stays aligned.
			n := currentNewLine
			parsed = Line{Type: LineContext, Content: line, NewLine: &n}
			currentNewLine++
		}
		hunk.Lines = append(hunk.Lines, parsed)
	}

	flushFile()
	return patch
}

// AddedLines returns the new-side line numbers introduced by this file's
// hunks, in diff order.
func (f FileDiff) AddedLines() []int {
	var lines []int
	for _, hunk := range f.Hunks {
		for _, line := range hunk.Lines {
			if line.Type == LineAddition && line.NewLine != nil {
				lines = append(lines, *line.NewLine)
			}
		}
	}
	return lines
}

// parseHunkHeader parses a header like "@@ -10,7 +10,8 @@ optional context".
// The ok result is false when the line does not carry both ranges.
func parseHunkHeader(line string) (oldStart, oldLines, newStart, newLines int, ok bool) {
	parts := strings.Split(line, "@@")
	if len(parts) < 2 {
		return 0, 0, 0, 0, false
	}

	var sawOld, sawNew bool
	for _, field := range strings.Fields(strings.TrimSpace(parts[1])) {
		switch {
		case strings.HasPrefix(field, "-"):
			oldStart, oldLines = parseRange(strings.TrimPrefix(field, "-"))
			sawOld = true
		case strings.HasPrefix(field, "+"):
			newStart, newLines = parseRange(strings.TrimPrefix(field, "+"))
			sawNew = true
		}
	}
	if !sawOld || !sawNew {
		return 0, 0, 0, 0, false
	}
	return oldStart, oldLines, newStart, newLines, true
}

// parseRange parses "start,count" or "start" format.
func parseRange(s string) (start, count int) {
	if idx := strings.Index(s, ","); idx >= 0 {
		start, _ = strconv.Atoi(s[:idx])
		count, _ = strconv.Atoi(s[idx+1:])
	} else {
		start, _ = strconv.Atoi(s)
		count = 1
	}
	return
}
