// Package console renders pipeline output for the terminal.
package console

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/daipham1210/lintsift/internal/domain"
)

const bannerFill = "========"

// Renderer writes progress banners and the filtered log lines. When
// decorated is false (output piped into another tool) the per-tool summary
// is suppressed and only the contract output remains.
type Renderer struct {
	out       io.Writer
	decorated bool
}

// NewRenderer constructs a renderer targeting the given writer.
func NewRenderer(out io.Writer, decorated bool) *Renderer {
	return &Renderer{out: out, decorated: decorated}
}

// Banner prints a progress banner around the given title.
func (r *Renderer) Banner(title string) {
	fmt.Fprintf(r.out, "%s %s %s=====\n", bannerFill, title, bannerFill)
}

// Info prints an informational message.
func (r *Renderer) Info(message string) {
	fmt.Fprintln(r.out, message)
}

// Lines prints the kept log lines verbatim, one per line.
func (r *Renderer) Lines(lines []string) {
	for _, line := range lines {
		fmt.Fprintln(r.out, line)
	}
}

// Summary prints per-file and per-tool counts after the filtered lines.
// Suppressed entirely for piped output.
func (r *Renderer) Summary(changes domain.ChangeSet, kept []string) {
	if !r.decorated || len(kept) == 0 {
		return
	}

	perFile := map[string]int{}
	perTool := map[string]int{}
	for _, line := range kept {
		if path, ok := findingPath(line, changes); ok {
			perFile[path]++
			continue
		}
		if tool, ok := toolPrefix(line); ok {
			perTool[tool]++
		}
	}

	fmt.Fprintf(r.out, "\n%d finding(s) on staged lines across %d file(s)\n", len(kept), len(changes))
	for _, path := range sortedKeys(perFile) {
		fmt.Fprintf(r.out, "  %s: %d\n", path, perFile[path])
	}
	caser := cases.Title(language.English)
	for _, tool := range sortedKeys(perTool) {
		fmt.Fprintf(r.out, "  %s: %d notice(s)\n", caser.String(tool), perTool[tool])
	}
}

// findingPath attributes a kept structured line to its change-set file by
// substring, since kept lines may carry absolute path prefixes.
func findingPath(line string, changes domain.ChangeSet) (string, bool) {
	colon := strings.IndexByte(line, ':')
	if colon < 0 {
		return "", false
	}
	head := line[:colon]
	for path := range changes {
		if strings.HasSuffix(head, path) {
			return path, true
		}
	}
	return "", false
}

// toolPrefix extracts the tool name from a summary line like
// "black: reformatted src/a.py".
func toolPrefix(line string) (string, bool) {
	colon := strings.IndexByte(line, ':')
	if colon <= 0 {
		return "", false
	}
	tool := strings.TrimSpace(line[:colon])
	if tool == "" || strings.ContainsAny(tool, " /\\") {
		return "", false
	}
	return tool, true
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
