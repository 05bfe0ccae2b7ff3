package domain

import "sort"

// LineSet is a set of 1-based line numbers in the new version of a file.
type LineSet map[int]struct{}

// ChangeSet maps repository-relative file paths (forward-slash separated)
// to the line numbers added by the staged diff. It is built once per run
// and treated as read-only afterwards.
type ChangeSet map[string]LineSet

// NewChangeSet returns an empty ChangeSet.
func NewChangeSet() ChangeSet {
	return ChangeSet{}
}

// AddFile registers a file with an empty line set. Files keep their entry
// even when the diff adds no lines (e.g. deletion-only changes), so that
// substring matching still recognises them.
func (c ChangeSet) AddFile(path string) {
	if _, ok := c[path]; !ok {
		c[path] = LineSet{}
	}
}

// AddLine records an added line for the given file.
func (c ChangeSet) AddLine(path string, line int) {
	c.AddFile(path)
	c[path][line] = struct{}{}
}

// Contains reports whether the given file has the given added line.
func (c ChangeSet) Contains(path string, line int) bool {
	set, ok := c[path]
	if !ok {
		return false
	}
	_, ok = set[line]
	return ok
}

// HasFile reports whether the given path is tracked by the change set.
func (c ChangeSet) HasFile(path string) bool {
	_, ok := c[path]
	return ok
}

// IsEmpty reports whether nothing is staged.
func (c ChangeSet) IsEmpty() bool {
	return len(c) == 0
}

// Files returns the tracked paths in sorted order.
func (c ChangeSet) Files() []string {
	files := make([]string, 0, len(c))
	for path := range c {
		files = append(files, path)
	}
	sort.Strings(files)
	return files
}

// TotalLines returns the number of added lines across all files.
func (c ChangeSet) TotalLines() int {
	total := 0
	for _, set := range c {
		total += len(set)
	}
	return total
}

// Lines returns the members of the set in ascending order.
func (s LineSet) Lines() []int {
	lines := make([]int, 0, len(s))
	for n := range s {
		lines = append(lines, n)
	}
	sort.Ints(lines)
	return lines
}
