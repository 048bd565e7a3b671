package markdown

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

const fence = "```"

// Normalize prepares raw Markdown text for conversion.
//
// Outside of fenced code blocks, blank lines are dropped and leading
// indentation is removed. List item lines are the exception to the latter:
// their indentation determines the nesting level, so it is kept, with tabs
// counting as four spaces. Fence lines lose their indentation, too.
// Inside of fenced code blocks every line is kept as is, blank lines included.
// All surviving lines are joined by single newlines.
//
// Normalizing normalized text does not change it.
func Normalize(src string, opts ...Option) string {
	o := makeOptions(opts)
	if o.nfc {
		src = norm.NFC.String(src)
	}
	lines := strings.Split(src, "\n")
	kept := make([]string, 0, len(lines))
	inCodeBlock := false
	for _, line := range lines {
		line = strings.TrimSuffix(line, "\r")
		trimmed := strings.TrimLeft(line, " \t")
		if strings.HasPrefix(trimmed, fence) {
			inCodeBlock = !inCodeBlock
			kept = append(kept, trimmed)
			continue
		}
		if inCodeBlock {
			kept = append(kept, line)
			continue
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		if isListItemLine(trimmed) {
			kept = append(kept, expandIndent(line[:len(line)-len(trimmed)])+trimmed)
		} else {
			kept = append(kept, trimmed)
		}
	}
	tracer().Debugf("normalized %d lines into %d", len(lines), len(kept))
	return strings.Join(kept, "\n")
}

// isListItemLine is true if line starts with a list marker.
func isListItemLine(line string) bool {
	if strings.HasPrefix(line, "-") {
		return true
	}
	i := 0
	for i < len(line) && line[i] >= '0' && line[i] <= '9' {
		i++
	}
	return i > 0 && i < len(line) && line[i] == '.'
}

// expandIndent turns a run of blanks into spaces only.
func expandIndent(indent string) string {
	if !strings.ContainsRune(indent, '\t') {
		return indent
	}
	return strings.ReplaceAll(indent, "\t", "    ")
}
