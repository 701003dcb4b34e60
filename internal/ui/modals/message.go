package modals

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/muesli/reflow/wordwrap"
)

// =============================================================================
// MessageState - a dialog built from a Descriptor: body text plus buttons
// =============================================================================

type MessageState struct {
	desc   Descriptor
	focus  *Focus
	width  int
	result *Result
}

func (*MessageState) dialogState() {}

func (s *MessageState) Title() string { return s.desc.Title }

func (s *MessageState) Help() string {
	if len(s.desc.Buttons) == 1 {
		if s.desc.EscapeResult != nil {
			return "Enter/Esc: close"
		}
		return "Enter: close"
	}
	if s.desc.EscapeResult != nil {
		return "left/right: select  Enter: confirm  Esc: cancel"
	}
	return "left/right: select  Enter: confirm"
}

// Placement returns the descriptor's placement.
func (s *MessageState) Placement() Placement { return s.desc.Placement }

// SetWidth sets the width the body text wraps at.
func (s *MessageState) SetWidth(width int) { s.width = width }

func (s *MessageState) wrapWidth() int {
	if s.width > 0 {
		return s.width
	}
	return ModalWidth - 6
}

func (s *MessageState) Render() string {
	parts := []string{ModalTitleStyle.Render(s.Title())}

	if s.desc.Body != "" {
		body := lipgloss.NewStyle().
			Foreground(ColorText).
			Render(wordwrap.String(s.desc.Body, s.wrapWidth()))
		parts = append(parts, body)
	}

	buttons := make([]string, len(s.desc.Buttons))
	for i, b := range s.desc.Buttons {
		style := ItemStyle
		if i == s.focus.Button() {
			style = SelectedItemStyle
		}
		buttons[i] = style.Render(b.Label)
	}
	parts = append(parts, "", strings.Join(buttons, "  "))
	parts = append(parts, ModalHelpStyle.Render(s.Help()))

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (s *MessageState) Update(msg tea.Msg) (DialogState, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyPressMsg)
	if !ok || s.result != nil {
		return s, nil
	}

	switch s.focus.Handle(keyMsg.String()) {
	case ActionPress:
		r := Valued(s.desc.Buttons[s.focus.Button()].Value)
		s.result = &r
	case ActionCancel:
		if s.desc.EscapeResult != nil {
			r := *s.desc.EscapeResult
			s.result = &r
		}
	}
	return s, nil
}

func (s *MessageState) Result() (Result, bool) {
	if s.result == nil {
		return Result{}, false
	}
	return *s.result, true
}

// FocusedButton returns the label of the focused button.
func (s *MessageState) FocusedButton() string {
	return s.desc.Buttons[s.focus.Button()].Label
}

// NewMessageState creates a dialog from d. A descriptor without buttons
// gets a single OK button that resolves to nil.
func NewMessageState(d Descriptor) *MessageState {
	if len(d.Buttons) == 0 {
		d.Buttons = []Button{{Label: "OK"}}
	}
	return &MessageState{
		desc:  d,
		focus: NewFocus(nil, len(d.Buttons)),
	}
}
