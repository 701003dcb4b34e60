package modals

import (
	tea "charm.land/bubbletea/v2"
	huh "charm.land/huh/v2"
	"charm.land/lipgloss/v2"

	"github.com/zhubert/thinkprompt/internal/errors"
	"github.com/zhubert/thinkprompt/internal/keys"
)

// ListMaxVisible is the number of options shown before the list scrolls.
const ListMaxVisible = 8

// =============================================================================
// ListState - single-select-from-list dialog
// =============================================================================

type ListState struct {
	title    string
	text     string
	options  []string
	selected string
	form     *huh.Form
	result   *Result
}

func (*ListState) dialogState() {}

func (s *ListState) Title() string { return s.title }

func (s *ListState) Help() string {
	return "up/down: select  Enter: confirm  Esc: cancel"
}

func (s *ListState) Render() string {
	title := ModalTitleStyle.Render(s.Title())
	help := ModalHelpStyle.Render(s.Help())
	return lipgloss.JoinVertical(lipgloss.Left, title, s.form.View(), help)
}

func (s *ListState) Update(msg tea.Msg) (DialogState, tea.Cmd) {
	if s.result != nil {
		return s, nil
	}
	if keyMsg, ok := msg.(tea.KeyPressMsg); ok {
		switch keyMsg.String() {
		case keys.Enter:
			r := Valued(s.selected)
			s.result = &r
			return s, nil
		case keys.Escape:
			r := CancelResult
			s.result = &r
			return s, nil
		}
	}

	var cmd tea.Cmd
	s.form, cmd = updateSelectForm(s.form, msg)
	return s, cmd
}

func (s *ListState) Result() (Result, bool) {
	if s.result == nil {
		return Result{}, false
	}
	return *s.result, true
}

// Selected returns the highlighted option.
func (s *ListState) Selected() string { return s.selected }

// NewListState creates a list dialog over options with def highlighted. An
// empty or unknown def highlights the first option. It fails with an
// InvalidControl error when options is empty.
func NewListState(title, text string, options []string, def string) (*ListState, error) {
	if len(options) == 0 {
		return nil, errors.InvalidControl(title, "list needs at least one option")
	}
	s := &ListState{
		title:    title,
		text:     text,
		options:  options,
		selected: options[0],
	}
	for _, o := range options {
		if o == def {
			s.selected = def
			break
		}
	}

	s.form = newSelectForm(text, options, &s.selected)
	return s, nil
}
