package modals

import (
	tea "charm.land/bubbletea/v2"
	huh "charm.land/huh/v2"
	"charm.land/lipgloss/v2"

	"github.com/zhubert/thinkprompt/internal/keys"
)

// newSelectForm builds the single-field huh form behind a list dialog.
// The form is initialized before it is returned so the first render
// already shows the highlighted option.
func newSelectForm(text string, options []string, value *string) *huh.Form {
	opts := huh.NewOptions(options...)
	form := huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().
			Title(text).
			Options(opts...).
			Height(min(len(options), ListMaxVisible)+1).
			Value(value),
	)).
		WithTheme(ModalTheme()).
		WithShowHelp(false).
		WithWidth(ModalWidth - 10)
	form.Init()
	return form
}

// updateSelectForm forwards msg to form. Enter and Escape belong to the
// dialog, so the form never submits or aborts on its own.
func updateSelectForm(form *huh.Form, msg tea.Msg) (*huh.Form, tea.Cmd) {
	if k, ok := msg.(tea.KeyPressMsg); ok {
		switch k.String() {
		case keys.Enter, keys.Escape:
			return form, nil
		}
	}
	m, cmd := form.Update(msg)
	return m.(*huh.Form), cmd
}

// ModalTheme returns a huh theme in the current dialog palette. It reads
// the palette on every call, so forms built after a theme change match.
func ModalTheme() huh.Theme {
	return huh.ThemeFunc(func(isDark bool) *huh.Styles {
		t := huh.ThemeBase(isDark)

		t.Focused.Base = lipgloss.NewStyle()
		t.Focused.Card = t.Focused.Base
		t.Focused.Title = lipgloss.NewStyle().Foreground(ColorText).MarginBottom(1)
		t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(ColorPrimary).SetString("▸ ")
		t.Focused.Option = lipgloss.NewStyle().Foreground(ColorTextMuted)
		t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(ColorSecondary).Bold(true)
		t.Focused.NextIndicator = lipgloss.NewStyle().Foreground(ColorPrimary).SetString("↓")
		t.Focused.PrevIndicator = lipgloss.NewStyle().Foreground(ColorPrimary).SetString("↑")
		t.Focused.ErrorMessage = lipgloss.NewStyle().Foreground(ColorWarning)

		t.Blurred = t.Focused
		return t
	})
}
