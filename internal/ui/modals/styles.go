package modals

import (
	"image/color"

	"charm.land/bubbles/v2/textinput"
	"charm.land/lipgloss/v2"
)

// Style variables - these will be set by the parent ui package via SetStyles
var (
	ModalTitleStyle   lipgloss.Style
	ModalHelpStyle    lipgloss.Style
	ItemStyle         lipgloss.Style
	SelectedItemStyle lipgloss.Style
	StatusErrorStyle  lipgloss.Style

	ColorPrimary     color.Color
	ColorSecondary   color.Color
	ColorText        color.Color
	ColorTextMuted   color.Color
	ColorTextInverse color.Color
	ColorWarning     color.Color
	ColorBorder      color.Color

	ModalInputWidth     int
	ModalInputCharLimit int
	ModalWidth          int

	// ModalMinWidth is the narrowest a dialog frame is drawn.
	ModalMinWidth = 20
)

// SetStyles sets the style variables from the parent ui package.
// This must be called before rendering any dialogs.
func SetStyles(
	modalTitle, modalHelp, item, selectedItem, statusError lipgloss.Style,
	primary, secondary, text, textMuted, textInverse, warning, border color.Color,
	inputWidth, inputCharLimit, modalWidth int,
) {
	ModalTitleStyle = modalTitle
	ModalHelpStyle = modalHelp
	ItemStyle = item
	SelectedItemStyle = selectedItem
	StatusErrorStyle = statusError

	ColorPrimary = primary
	ColorSecondary = secondary
	ColorText = text
	ColorTextMuted = textMuted
	ColorTextInverse = textInverse
	ColorWarning = warning
	ColorBorder = border

	ModalInputWidth = inputWidth
	ModalInputCharLimit = inputCharLimit
	ModalWidth = modalWidth
}

// ApplyTextInputStyles configures a text input with transparent background
// styles so it matches the terminal background.
func ApplyTextInputStyles(ti *textinput.Model) {
	styles := ti.Styles()

	textStyle := lipgloss.NewStyle().
		Foreground(ColorText)

	placeholderStyle := lipgloss.NewStyle().
		Foreground(ColorTextMuted)

	promptStyle := lipgloss.NewStyle().
		Foreground(ColorPrimary)

	styles.Focused.Text = textStyle
	styles.Focused.Placeholder = placeholderStyle
	styles.Focused.Prompt = promptStyle
	styles.Focused.Suggestion = placeholderStyle

	styles.Blurred.Text = textStyle
	styles.Blurred.Placeholder = placeholderStyle
	styles.Blurred.Prompt = textStyle
	styles.Blurred.Suggestion = placeholderStyle

	ti.SetStyles(styles)
}
