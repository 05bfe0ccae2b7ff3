// Package logfile loads the captured lint/format output for filtering.
package logfile

import (
	"bufio"
	"errors"
	"fmt"
	"os"
)

// ErrNotFound marks a log file that does not exist at the configured path.
var ErrNotFound = errors.New("log file not found")

// Reader loads a flat text log as an ordered sequence of lines.
type Reader struct{}

// NewReader constructs a log reader.
func NewReader() *Reader {
	return &Reader{}
}

// ReadLines returns the file's lines in order with trailing terminators
// stripped. An empty file yields an empty slice. A missing file returns an
// error satisfying IsNotFound.
func (r *Reader) ReadLines(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s: %w", path, ErrNotFound)
		}
		return nil, fmt.Errorf("open log %s: %w", path, err)
	}
	defer file.Close()

	var lines []string
	scanner := bufio.NewScanner(file)
	// Lint output can carry long lines (minified sources, full tracebacks).
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log %s: %w", path, err)
	}
	return lines, nil
}

// IsNotFound reports whether the error indicates a missing log file.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
