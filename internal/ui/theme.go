package ui

import (
	"github.com/zhubert/thinkprompt/internal/logger"
	"github.com/zhubert/thinkprompt/internal/ui/modals"
)

// Theme defines the color palette used by the session views and dialogs,
// plus the names of the syntax and markdown styles that match it.
type Theme struct {
	// Name is the display name of the theme
	Name string

	Primary   string
	Secondary string

	BgSelected string // defaults to Primary if empty

	Text        string
	TextMuted   string
	TextInverse string

	User      string
	Assistant string
	Warning   string
	Error     string
	Success   string

	Border      string
	BorderFocus string // defaults to Primary if empty

	// CodeStyle is a chroma style name used for code entries.
	CodeStyle string
	// MarkdownStyle is a glamour standard style name used for markdown responses.
	MarkdownStyle string
}

// GetBgSelected returns the selected background color, defaulting to Primary
func (t Theme) GetBgSelected() string {
	if t.BgSelected != "" {
		return t.BgSelected
	}
	return t.Primary
}

// GetBorderFocus returns the focused border color, defaulting to Primary
func (t Theme) GetBorderFocus() string {
	if t.BorderFocus != "" {
		return t.BorderFocus
	}
	return t.Primary
}

// ThemeName is a type for theme identifiers
type ThemeName string

const (
	ThemeDarkPurple ThemeName = "dark-purple"
	ThemeNord       ThemeName = "nord"
	ThemeDracula    ThemeName = "dracula"
	ThemeGruvbox    ThemeName = "gruvbox"
	ThemeLight      ThemeName = "light"
)

// DefaultTheme is the default theme name
const DefaultTheme = ThemeDarkPurple

// BuiltinThemes contains all built-in themes
var BuiltinThemes = map[ThemeName]Theme{
	ThemeDarkPurple: {
		Name:          "Dark Purple",
		Primary:       "#7C3AED",
		Secondary:     "#06B6D4",
		Text:          "#F9FAFB",
		TextMuted:     "#9CA3AF",
		TextInverse:   "#1F2937",
		User:          "#A78BFA",
		Assistant:     "#22D3EE",
		Warning:       "#F59E0B",
		Error:         "#EF4444",
		Success:       "#10B981",
		Border:        "#374151",
		CodeStyle:     "monokai",
		MarkdownStyle: "dark",
	},
	ThemeNord: {
		Name:          "Nord",
		Primary:       "#88C0D0",
		Secondary:     "#81A1C1",
		Text:          "#ECEFF4",
		TextMuted:     "#D8DEE9",
		TextInverse:   "#2E3440",
		User:          "#A3BE8C",
		Assistant:     "#88C0D0",
		Warning:       "#EBCB8B",
		Error:         "#BF616A",
		Success:       "#A3BE8C",
		Border:        "#4C566A",
		CodeStyle:     "nord",
		MarkdownStyle: "dark",
	},
	ThemeDracula: {
		Name:          "Dracula",
		Primary:       "#BD93F9",
		Secondary:     "#8BE9FD",
		Text:          "#F8F8F2",
		TextMuted:     "#6272A4",
		TextInverse:   "#282A36",
		User:          "#FF79C6",
		Assistant:     "#8BE9FD",
		Warning:       "#FFB86C",
		Error:         "#FF5555",
		Success:       "#50FA7B",
		Border:        "#44475A",
		CodeStyle:     "dracula",
		MarkdownStyle: "dracula",
	},
	ThemeGruvbox: {
		Name:          "Gruvbox Dark",
		Primary:       "#FE8019",
		Secondary:     "#83A598",
		Text:          "#EBDBB2",
		TextMuted:     "#A89984",
		TextInverse:   "#282828",
		User:          "#FABD2F",
		Assistant:     "#83A598",
		Warning:       "#FE8019",
		Error:         "#FB4934",
		Success:       "#B8BB26",
		Border:        "#504945",
		CodeStyle:     "gruvbox",
		MarkdownStyle: "dark",
	},
	ThemeLight: {
		Name:          "Light",
		Primary:       "#6366F1",
		Secondary:     "#0891B2",
		BgSelected:    "#E0E7FF",
		Text:          "#1F2937",
		TextMuted:     "#6B7280",
		TextInverse:   "#FFFFFF",
		User:          "#7C3AED",
		Assistant:     "#0891B2",
		Warning:       "#D97706",
		Error:         "#DC2626",
		Success:       "#16A34A",
		Border:        "#D1D5DB",
		BorderFocus:   "#6366F1",
		CodeStyle:     "github",
		MarkdownStyle: "light",
	},
}

// ThemeNames returns a list of all available theme names in display order
func ThemeNames() []ThemeName {
	return []ThemeName{
		ThemeDarkPurple,
		ThemeNord,
		ThemeDracula,
		ThemeGruvbox,
		ThemeLight,
	}
}

// ThemeOptions returns the theme names as strings, for settings dropdowns.
func ThemeOptions() []string {
	names := ThemeNames()
	opts := make([]string, len(names))
	for i, n := range names {
		opts[i] = string(n)
	}
	return opts
}

// GetTheme returns a theme by name, defaulting to DarkPurple if not found
func GetTheme(name ThemeName) Theme {
	if theme, ok := BuiltinThemes[name]; ok {
		return theme
	}
	return BuiltinThemes[DefaultTheme]
}

var (
	currentTheme     = BuiltinThemes[DefaultTheme]
	currentThemeName = DefaultTheme
)

// CurrentTheme returns the currently active theme
func CurrentTheme() Theme {
	return currentTheme
}

// CurrentThemeName returns the name of the current theme
func CurrentThemeName() ThemeName {
	return currentThemeName
}

// SetTheme activates a theme and rebuilds every style derived from it.
// Unknown names fall back to the default theme. Call it before the event
// loop starts; styles are package state and are not guarded.
func SetTheme(name ThemeName) {
	if _, ok := BuiltinThemes[name]; !ok {
		logger.Warn("unknown theme %q, using %s", name, DefaultTheme)
		name = DefaultTheme
	}
	currentTheme = BuiltinThemes[name]
	currentThemeName = name
	regenerateStyles()
}

// SetThemeByName sets the active theme by string name
func SetThemeByName(name string) {
	SetTheme(ThemeName(name))
}

// refreshModalStyles pushes the current palette into the modals package.
func refreshModalStyles() {
	modals.SetStyles(
		ModalTitleStyle, ModalHelpStyle, ItemStyle, SelectedItemStyle, StatusErrorStyle,
		ColorPrimary, ColorSecondary, ColorText, ColorTextMuted, ColorTextInverse, ColorWarning, ColorBorder,
		ModalInputWidth, ModalInputCharLimit, ModalWidth,
	)
}
