package ui

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Color palette, rebuilt from the current theme by regenerateStyles.
var (
	ColorPrimary     color.Color
	ColorSecondary   color.Color
	ColorBorder      color.Color
	ColorBorderFocus color.Color
	ColorText        color.Color
	ColorTextMuted   color.Color
	ColorTextInverse color.Color
	ColorUser        color.Color
	ColorAssistant   color.Color
	ColorWarning     color.Color
	ColorError       color.Color
	ColorSuccess     color.Color
)

// Thinking box styles
var (
	ThinkingRuleStyle  lipgloss.Style
	ThinkingFrameStyle lipgloss.Style
	ThinkingLabelStyle lipgloss.Style
	ThinkingTextStyle  lipgloss.Style
	ThinkingHintStyle  lipgloss.Style
)

// History entry styles
var (
	UserStyle      lipgloss.Style
	AssistantStyle lipgloss.Style
	SystemStyle    lipgloss.Style
	ErrorStyle     lipgloss.Style
	WarningStyle   lipgloss.Style
	SuccessStyle   lipgloss.Style
	CodeStyle      lipgloss.Style
	WelcomeStyle   lipgloss.Style
)

// Prompt and status bar styles
var (
	PromptStyle          lipgloss.Style
	StatusBarStyle       lipgloss.Style
	StatusKeyStyle       lipgloss.Style
	StatusDescStyle      lipgloss.Style
	StatusSepStyle       lipgloss.Style
	FlashInfoStyle       lipgloss.Style
	FlashErrorStyle      lipgloss.Style
	CompletionStyle      lipgloss.Style
	CompletionMatchStyle lipgloss.Style
)

// Dialog styles
var (
	ModalStyle        lipgloss.Style
	ModalTitleStyle   lipgloss.Style
	ModalHelpStyle    lipgloss.Style
	ItemStyle         lipgloss.Style
	SelectedItemStyle lipgloss.Style
	StatusErrorStyle  lipgloss.Style
)

func init() {
	regenerateStyles()
}

// regenerateStyles updates all style variables based on the current theme
func regenerateStyles() {
	t := currentTheme

	ColorPrimary = lipgloss.Color(t.Primary)
	ColorSecondary = lipgloss.Color(t.Secondary)
	ColorBorder = lipgloss.Color(t.Border)
	ColorBorderFocus = lipgloss.Color(t.GetBorderFocus())
	ColorText = lipgloss.Color(t.Text)
	ColorTextMuted = lipgloss.Color(t.TextMuted)
	ColorTextInverse = lipgloss.Color(t.TextInverse)
	ColorUser = lipgloss.Color(t.User)
	ColorAssistant = lipgloss.Color(t.Assistant)
	ColorWarning = lipgloss.Color(t.Warning)
	ColorError = lipgloss.Color(t.Error)
	ColorSuccess = lipgloss.Color(t.Success)

	ThinkingRuleStyle = lipgloss.NewStyle().Foreground(ColorBorder)
	ThinkingFrameStyle = lipgloss.NewStyle().Foreground(ColorSecondary)
	ThinkingLabelStyle = lipgloss.NewStyle().
		Foreground(ColorSecondary).
		Italic(true)
	ThinkingTextStyle = lipgloss.NewStyle().Foreground(ColorTextMuted)
	ThinkingHintStyle = lipgloss.NewStyle().
		Foreground(ColorTextMuted).
		Italic(true)

	UserStyle = lipgloss.NewStyle().
		Foreground(ColorUser).
		Bold(true)
	AssistantStyle = lipgloss.NewStyle().
		Foreground(ColorAssistant).
		Bold(true)
	SystemStyle = lipgloss.NewStyle().
		Foreground(ColorTextMuted).
		Italic(true)
	ErrorStyle = lipgloss.NewStyle().
		Foreground(ColorError).
		Bold(true)
	WarningStyle = lipgloss.NewStyle().Foreground(ColorWarning)
	SuccessStyle = lipgloss.NewStyle().Foreground(ColorSuccess)
	CodeStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderLeft(true).
		BorderForeground(ColorBorder).
		PaddingLeft(1)
	WelcomeStyle = lipgloss.NewStyle().Foreground(ColorPrimary)

	PromptStyle = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true)
	StatusBarStyle = lipgloss.NewStyle().
		Foreground(ColorTextMuted).
		Padding(0, 1)
	StatusKeyStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorSecondary)
	StatusDescStyle = lipgloss.NewStyle().Foreground(ColorTextMuted)
	StatusSepStyle = lipgloss.NewStyle().Foreground(ColorBorder)
	FlashInfoStyle = lipgloss.NewStyle().
		Foreground(ColorSuccess).
		Bold(true)
	FlashErrorStyle = lipgloss.NewStyle().
		Foreground(ColorError).
		Bold(true)
	CompletionStyle = lipgloss.NewStyle().
		Foreground(ColorTextMuted).
		PaddingLeft(2)
	CompletionMatchStyle = lipgloss.NewStyle().
		Foreground(ColorTextInverse).
		Background(lipgloss.Color(t.GetBgSelected())).
		PaddingLeft(2)

	ModalStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorPrimary).
		Padding(1, 2)
	ModalTitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorPrimary).
		MarginBottom(1)
	ModalHelpStyle = lipgloss.NewStyle().
		Foreground(ColorTextMuted).
		Italic(true).
		MarginTop(1)
	ItemStyle = lipgloss.NewStyle().
		Padding(0, 1)
	SelectedItemStyle = lipgloss.NewStyle().
		Background(lipgloss.Color(t.GetBgSelected())).
		Foreground(lipgloss.Color(t.Text)).
		Bold(true).
		Padding(0, 1)
	StatusErrorStyle = lipgloss.NewStyle().
		Foreground(ColorError).
		Bold(true)

	refreshModalStyles()
}
