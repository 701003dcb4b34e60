package thinking

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Lines splits text into display lines. A single trailing newline does not
// produce an empty last line.
func Lines(text string) []string {
	if text == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(text, "\n"), "\n")
}

// Rows splits text into terminal rows at most width cells wide, breaking
// long lines. A width below 1 leaves lines unwrapped.
func Rows(text string, width int) []string {
	lines := Lines(text)
	if width < 1 {
		return lines
	}
	rows := make([]string, 0, len(lines))
	for _, line := range lines {
		rows = append(rows, wrapLine(line, width)...)
	}
	return rows
}

func wrapLine(line string, width int) []string {
	if runewidth.StringWidth(line) <= width {
		return []string{line}
	}
	var rows []string
	var sb strings.Builder
	w := 0
	for _, r := range line {
		rw := runewidth.RuneWidth(r)
		if w+rw > width && w > 0 {
			rows = append(rows, sb.String())
			sb.Reset()
			w = 0
		}
		sb.WriteRune(r)
		w += rw
	}
	return append(rows, sb.String())
}

// Overflows reports whether text needs more than maxHeight rows at width.
func Overflows(text string, maxHeight, width int) bool {
	return LineCount(text, width) > maxHeight
}

// Collapse returns the trailing rows of text, wrapped at width, that fit in
// maxHeight and the number of rows hidden above them. When rows are hidden,
// one is left free for the truncation indicator.
func Collapse(text string, maxHeight, width int) (visible []string, hidden int) {
	rows := Rows(text, width)
	if len(rows) <= maxHeight {
		return rows, 0
	}
	keep := max(1, maxHeight-1)
	hidden = len(rows) - keep
	return rows[hidden:], hidden
}

// ConsoleText returns the text to echo to the console when a cycle
// finishes. Whitespace-only content echoes nothing. Collapsed content is
// cut to maxHeight-1 leading lines followed by "..."; expanded content is
// echoed whole.
func ConsoleText(text string, maxHeight int, expanded bool) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}
	if expanded {
		return strings.TrimRight(text, " \t\r\n")
	}
	return TruncateLines(text, maxHeight-1)
}

// TruncateLines keeps the first n lines of text, appending "..." when
// anything was cut.
func TruncateLines(text string, n int) string {
	lines := Lines(text)
	if n < 1 {
		n = 1
	}
	if len(lines) <= n {
		return strings.TrimRight(text, " \t\r\n")
	}
	return strings.Join(lines[:n], "\n") + "\n..."
}

// LineCount returns how many terminal rows text occupies at the given
// width, counting wrapped lines. An empty line still takes one row.
func LineCount(text string, width int) int {
	return len(Rows(text, max(1, width)))
}
