// Package classpath reads classpath files written by build tools, such as
// the output of `mvn dependency:build-classpath -Dmdep.outputFile=...`.
package classpath

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"strings"
)

// FileReader implements domain.ClasspathReader.
type FileReader struct {
	// Separator splits entries on a single line; defaults to os.PathListSeparator.
	Separator rune
}

func New() *FileReader {
	return &FileReader{Separator: os.PathListSeparator}
}

// Read returns the entries of the file at path in order. Entries may be
// separated by the path-list separator, newlines, or both. Blank entries
// and lines starting with '#' are skipped.
func (r *FileReader) Read(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading classpath file: %w", err)
	}

	sep := string(r.sepOrDefault())
	var entries []string
	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		for _, e := range strings.Split(line, sep) {
			if e = strings.TrimSpace(e); e != "" {
				entries = append(entries, e)
			}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading classpath file: %w", err)
	}
	return entries, nil
}

func (r *FileReader) sepOrDefault() rune {
	if r.Separator == 0 {
		return os.PathListSeparator
	}
	return r.Separator
}
