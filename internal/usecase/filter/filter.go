package filter

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/daipham1210/lintsift/internal/domain"
)

// DefaultSourceRoot is the path marker used to normalise absolute tool
// paths back to repository-relative ones.
const DefaultSourceRoot = "src/"

// structuredLine matches findings shaped like "path:line: message" or
// "path:line:col: message". The path group is non-greedy so the first
// ":<digits>:" boundary wins.
var structuredLine = regexp.MustCompile(`^(.*?):(\d+):(?:(\d+):)?\s*(.*)$`)

// Filter selects the log lines attributable to staged changes.
type Filter struct {
	sourceRoot string
}

// NewFilter constructs a filter with the given source-root marker. An empty
// marker falls back to DefaultSourceRoot.
func NewFilter(sourceRoot string) *Filter {
	if sourceRoot == "" {
		sourceRoot = DefaultSourceRoot
	}
	return &Filter{sourceRoot: sourceRoot}
}

// Apply returns the subsequence of lines relevant to the change set, in
// original order and with original text. Structured lines are kept when
// their normalised path and line number are in the change set; a structured
// line whose path lacks the source-root marker cannot be attributed to a
// tracked file and is dropped. Unstructured lines are kept when they
// mention any tracked file verbatim (tool summaries like
// "black: reformatted src/a.py").
func (f *Filter) Apply(lines []string, changes domain.ChangeSet) []string {
	if changes.IsEmpty() {
		return nil
	}

	var kept []string
	for _, line := range lines {
		if match := structuredLine.FindStringSubmatch(line); match != nil {
			path, ok := f.normalizePath(strings.TrimSpace(match[1]))
			if !ok {
				continue
			}
			lineNum, err := strconv.Atoi(match[2])
			if err != nil {
				continue
			}
			if changes.Contains(path, lineNum) {
				kept = append(kept, line)
			}
			continue
		}

		if mentionsTrackedFile(line, changes) {
			kept = append(kept, line)
		}
	}
	return kept
}

// normalizePath cuts everything before the first occurrence of the
// source-root marker, turning tool-reported absolute paths into the
// repository-relative keys the change set uses.
func (f *Filter) normalizePath(path string) (string, bool) {
	idx := strings.Index(path, f.sourceRoot)
	if idx < 0 {
		return "", false
	}
	return path[idx:], true
}

func mentionsTrackedFile(line string, changes domain.ChangeSet) bool {
	for path := range changes {
		if strings.Contains(line, path) {
			return true
		}
	}
	return false
}
