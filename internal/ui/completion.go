package ui

import (
	"sort"
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Completer completes prompt input against a fixed word list.
type Completer struct {
	words       []string
	completions []string // Available completions for current prefix
	index       int      // Current selection index (-1 means no selection)
	prefix      string   // The prefix used to generate completions
}

// NewCompleter creates a completer over words.
func NewCompleter(words []string) *Completer {
	sorted := append([]string(nil), words...)
	sort.Strings(sorted)
	return &Completer{words: sorted, index: -1}
}

// Words returns the candidate words in sorted order.
func (c *Completer) Words() []string {
	return c.words
}

// Complete attempts to complete input.
// Returns the completed text and whether completion was successful.
// On first tab press, it completes to common prefix or first match.
// On subsequent tab presses with same prefix, it cycles through matches.
func (c *Completer) Complete(input string) (string, bool) {
	if input != c.prefix || c.completions == nil {
		c.completions = c.Matches(input)
		c.index = -1
		c.prefix = input
	}

	if len(c.completions) == 0 {
		return input, false
	}
	if len(c.completions) == 1 {
		return c.completions[0], true
	}

	if c.index == -1 {
		common := commonPrefix(c.completions)
		if common != input && len(common) > len(input) {
			c.prefix = common
			c.index = -1
			return common, true
		}
		c.index = 0
		c.prefix = c.completions[0]
		return c.completions[0], true
	}

	c.index = (c.index + 1) % len(c.completions)
	c.prefix = c.completions[c.index]
	return c.completions[c.index], true
}

// Reset clears the current completion state.
// Call this when the input changes (not via tab completion).
func (c *Completer) Reset() {
	c.completions = nil
	c.index = -1
	c.prefix = ""
}

// Completions returns the current cycle of completions.
func (c *Completer) Completions() []string {
	return c.completions
}

// Index returns the current selection index.
func (c *Completer) Index() int {
	return c.index
}

// Matches returns the words starting with input, ignoring case. Empty
// input matches nothing.
func (c *Completer) Matches(input string) []string {
	if input == "" {
		return nil
	}
	lower := strings.ToLower(input)
	var out []string
	for _, w := range c.words {
		if strings.HasPrefix(strings.ToLower(w), lower) {
			out = append(out, w)
		}
	}
	return out
}

// commonPrefix finds the longest common prefix among all strings.
func commonPrefix(strs []string) string {
	if len(strs) == 0 {
		return ""
	}
	prefix := strs[0]
	for _, s := range strs[1:] {
		for !strings.HasPrefix(s, prefix) {
			prefix = prefix[:len(prefix)-1]
		}
	}
	return prefix
}

// RenderCompletionMenu renders up to height items with selected
// highlighted, scrolled so the selection stays visible.
func RenderCompletionMenu(items []string, selected, height, width int) string {
	if len(items) == 0 || height <= 0 {
		return ""
	}
	start := 0
	if selected >= height {
		start = selected - height + 1
	}
	end := min(len(items), start+height)

	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		item := items[i]
		if width > 0 {
			item = ansi.Truncate(item, max(1, width-2), "…")
		}
		if i == selected {
			lines = append(lines, CompletionMatchStyle.Render(item))
		} else {
			lines = append(lines, CompletionStyle.Render(item))
		}
	}
	return strings.Join(lines, "\n")
}
