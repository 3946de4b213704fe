package options

import (
	"strings"

	"github.com/mitchellh/go-wordwrap"
)

// WrapText reflows every line of text to at most width columns. Existing line
// breaks are kept; words are never split, so a single word longer than width
// stays on its own line.
func WrapText(text string, width int) string {
	if width <= 0 || text == "" {
		return text
	}

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(wordwrap.WrapString(strings.TrimRight(line, " \t"), uint(width)), " \t")
	}
	return strings.Join(lines, "\n")
}
