package source

import "strings"

// indentUnit is one level of nesting.
const indentUnit = "    "

// indentLines prefixes lines of text with one indent unit. The first line is
// left alone when skipFirst is set; empty lines are left alone when skipEmpty
// is set.
func indentLines(text string, skipFirst, skipEmpty bool) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if i == 0 && skipFirst {
			continue
		}
		if line == "" && skipEmpty {
			continue
		}
		lines[i] = indentUnit + line
	}
	return strings.Join(lines, "\n")
}

// RenderModule lays out a source file: header, then each block separated by
// two blank lines. Empty blocks are dropped. The result ends with exactly one
// newline.
func RenderModule(header string, blocks ...string) string {
	parts := make([]string, 0, len(blocks)+1)
	if h := strings.TrimRight(header, "\n"); h != "" {
		parts = append(parts, h)
	}
	for _, b := range blocks {
		if b == "" {
			continue
		}
		parts = append(parts, b)
	}
	if len(parts) == 0 {
		return ""
	}
	return strings.Join(parts, "\n\n\n") + "\n"
}
