package filter_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daipham1210/lintsift/internal/diff"
	"github.com/daipham1210/lintsift/internal/usecase/filter"
)

func TestExtractChangedLinesFromStagedDiff(t *testing.T) {
	text := `diff --git a/src/a.py b/src/a.py
index 83db48f..bf269f4 100644
--- a/src/a.py
+++ b/src/a.py
@@ -8,3 +8,5 @@ def main():
 context
+line nine
+line ten
 context
@@ -30,3 +32,4 @@ def helper():
 context
-removed
+line thirty-three
 context
diff --git a/src/b.py b/src/b.py
--- a/src/b.py
+++ b/src/b.py
@@ -1,2 +1,3 @@
 context
+line two
`

	changes := filter.ExtractChangedLines(diff.Parse(text))

	require.True(t, changes.HasFile("src/a.py"))
	require.True(t, changes.HasFile("src/b.py"))
	assert.Equal(t, []int{9, 10, 33}, changes["src/a.py"].Lines())
	assert.Equal(t, []int{2}, changes["src/b.py"].Lines())
}

func TestExtractChangedLinesRecordsOnlyAdditions(t *testing.T) {
	text := `+++ b/src/a.py
@@ -5,4 +5,4 @@
 context
-removed
+added
 context
`

	changes := filter.ExtractChangedLines(diff.Parse(text))

	lines := changes["src/a.py"].Lines()
	require.Len(t, lines, 1)
	// context occupies 5, the addition replaces the removed line at 6
	assert.Equal(t, 6, lines[0])
	assert.False(t, changes.Contains("src/a.py", 5), "context lines are never recorded")
	assert.False(t, changes.Contains("src/a.py", 7), "lines past the hunk are never recorded")
}

func TestExtractChangedLinesKeepsFileWithNoAdditions(t *testing.T) {
	text := `diff --git a/src/img.png b/src/img.png
--- a/src/img.png
+++ b/src/img.png
Binary files a/src/img.png and b/src/img.png differ
`

	changes := filter.ExtractChangedLines(diff.Parse(text))

	require.True(t, changes.HasFile("src/img.png"))
	assert.Empty(t, changes["src/img.png"].Lines())
}

func TestExtractChangedLinesEmptyDiff(t *testing.T) {
	changes := filter.ExtractChangedLines(diff.Parse(""))
	assert.True(t, changes.IsEmpty())
}
