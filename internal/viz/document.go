package viz

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// ReadDocument splits r into display lines, expanding tabs.
func ReadDocument(r io.Reader) ([]string, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	for sc.Scan() {
		lines = append(lines, strings.ReplaceAll(sc.Text(), "\t", "    "))
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}
	return lines, nil
}

var filler = []string{
	"The page is heavier than it looks.",
	"Every line you read pulls you a little further down.",
	"Scroll up to fight back; the wheel only pushes for a moment.",
	"Friction is the only thing keeping you from falling faster.",
	"Somewhere below, the bottom waits with a gentle bounce.",
}

// SampleDocument returns n lines of placeholder text split into sections.
func SampleDocument(n int) []string {
	lines := make([]string, 0, n)
	for i := 0; i < n; i++ {
		switch {
		case i%25 == 0:
			lines = append(lines, fmt.Sprintf("## Section %d", i/25+1))
		case i%25 == 1 || i%25 == 24:
			lines = append(lines, "")
		default:
			lines = append(lines, fmt.Sprintf("%4d  %s", i, filler[i%len(filler)]))
		}
	}
	return lines
}
