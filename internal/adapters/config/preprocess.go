package config

import (
	"strings"
)

// Preprocess strips `#` comments from text and returns it one line per source
// line, so token line numbers still match the file.
//
// A `#` opens a comment at the start of a line or after whitespace, unless it
// sits inside single or double quotes. Trailing carriage returns and the
// whitespace left in front of a removed comment are dropped; leading
// indentation is kept.
func Preprocess(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		line = strings.TrimRight(line, "\r")
		if idx := commentStart(line); idx >= 0 {
			line = strings.TrimRight(line[:idx], " \t")
		}
		if strings.TrimSpace(line) == "" {
			line = ""
		}
		lines[i] = line
	}
	return strings.Join(lines, "\n")
}

// commentStart returns the index of the first comment-opening '#', or -1.
func commentStart(line string) int {
	var quote byte
	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'':
			quote = c
		case c == '#':
			if i == 0 || line[i-1] == ' ' || line[i-1] == '\t' {
				return i
			}
		}
	}
	return -1
}
