package config

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// AppInfo identifies the application shown in the welcome banner.
type AppInfo struct {
	Name           string `json:"name"`
	Version        string `json:"version,omitempty"`
	WelcomeMessage string `json:"welcome_message,omitempty"`
}

// DefaultAppInfo names the bundled demo application.
func DefaultAppInfo() AppInfo {
	return AppInfo{Name: "thinkprompt"}
}

// Title is the name followed by the version, if one is set.
func (a AppInfo) Title() string {
	if a.Version == "" {
		return a.Name
	}
	return a.Name + " v" + a.Version
}

// Welcome returns the text printed when a session starts: the custom
// welcome message if set, otherwise a box around the title.
func (a AppInfo) Welcome() string {
	if a.WelcomeMessage != "" {
		return a.WelcomeMessage
	}
	if a.Name == "" {
		return ""
	}

	title := a.Title()
	tw := runewidth.StringWidth(title)
	width := max(tw+4, 30)
	left := (width - tw) / 2
	right := width - tw - left
	border := strings.Repeat("─", width)

	var b strings.Builder
	b.WriteString("┌" + border + "┐\n")
	b.WriteString("│" + strings.Repeat(" ", left) + title + strings.Repeat(" ", right) + "│\n")
	b.WriteString("└" + border + "┘")
	return b.String()
}
