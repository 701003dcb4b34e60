package modals

import (
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/rivo/uniseg"

	"github.com/zhubert/thinkprompt/internal/keys"
	"github.com/zhubert/thinkprompt/internal/logger"
	"github.com/zhubert/thinkprompt/internal/settings"
)

const (
	buttonSave   = "Save"
	buttonCancel = "Cancel"
	buttonDone   = "Done"

	// passwordMask is shown once per grapheme of a password value.
	passwordMask = "•"
)

// =============================================================================
// SettingsState - typed settings form with in-place editing
// =============================================================================

type SettingsState struct {
	title     string
	values    *settings.Values
	focus     *Focus
	buttons   []string
	canCancel bool

	// editor holds the in-place Text edit; listCursor the open Dropdown's
	// highlighted option. Both are only meaningful while editing.
	editor     textinput.Model
	listCursor int

	width  int
	result *Result
}

func (*SettingsState) dialogState() {}

func (s *SettingsState) Title() string { return s.title }

func (s *SettingsState) Help() string {
	if s.focus.Editing() {
		if s.focus.Kind() == RowDropdown {
			return "up/down: choose  Enter: select  Esc: back"
		}
		return "Enter: keep  Esc: discard"
	}
	help := "up/down: move  left/right: change  Enter: edit  ctrl+s: save"
	if s.canCancel {
		help += "  Esc: cancel"
	}
	return help
}

// Placement gives the settings form a minimum width.
func (s *SettingsState) Placement() Placement {
	return Placement{Width: WidthMin(ModalWidth)}
}

// SetWidth sets the width available to rows.
func (s *SettingsState) SetWidth(width int) { s.width = width }

func (s *SettingsState) Render() string {
	parts := []string{ModalTitleStyle.Render(s.Title())}

	for i, it := range s.values.Items() {
		parts = append(parts, s.renderRow(i, it))
	}

	buttons := make([]string, len(s.buttons))
	for i, b := range s.buttons {
		style := ItemStyle
		if i == s.focus.Button() {
			style = SelectedItemStyle
		}
		buttons[i] = style.Render(b)
	}
	parts = append(parts, "", strings.Join(buttons, "  "))
	parts = append(parts, ModalHelpStyle.Render(s.Help()))

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (s *SettingsState) renderRow(i int, it settings.Item) string {
	focused := s.focus.Item() == i
	editing := focused && s.focus.Editing()

	label := it.Label
	if s.values.IsDirty(it.Key) {
		label += " *"
	}
	labelStyle := ItemStyle
	if focused {
		labelStyle = SelectedItemStyle
	}

	var value string
	switch c := it.Control.(type) {
	case settings.Dropdown:
		value = s.values.String(it.Key) + " ▾"
	case settings.InlineSelect:
		value = "◀ " + s.values.String(it.Key) + " ▶"
	case settings.Text:
		if editing {
			value = s.editor.View()
		} else {
			value = displayText(s.values.String(it.Key), c.Password)
		}
	case settings.Checkbox:
		if s.values.Bool(it.Key) {
			value = "[x]"
		} else {
			value = "[ ]"
		}
	}

	row := labelStyle.Render(label) + "  " + lipgloss.NewStyle().Foreground(ColorSecondary).Render(value)

	if editing && s.focus.Kind() == RowDropdown {
		row = lipgloss.JoinVertical(lipgloss.Left, row, s.renderDropdownList(it))
	}
	if focused && it.Description != "" {
		descStyle := lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Italic(true).
			PaddingLeft(2)
		if s.width > 0 {
			descStyle = descStyle.Width(s.width)
		}
		desc := descStyle.Render(it.Description)
		row = lipgloss.JoinVertical(lipgloss.Left, row, desc)
	}
	return row
}

func (s *SettingsState) renderDropdownList(it settings.Item) string {
	var lines []string
	for i, opt := range it.Options() {
		if i == s.listCursor {
			lines = append(lines, SelectedItemStyle.Render("> "+opt))
		} else {
			lines = append(lines, ItemStyle.Render("  "+opt))
		}
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder).
		MarginLeft(2).
		Render(strings.Join(lines, "\n"))
}

// displayText renders a Text value, masking it when password is set.
func displayText(v string, password bool) string {
	if !password {
		return v
	}
	return strings.Repeat(passwordMask, uniseg.GraphemeClusterCount(v))
}

func (s *SettingsState) Update(msg tea.Msg) (DialogState, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyPressMsg)
	if s.result != nil {
		return s, nil
	}
	if !ok {
		if s.focus.Editing() && s.focus.Kind() == RowText {
			var cmd tea.Cmd
			s.editor, cmd = s.editor.Update(msg)
			return s, cmd
		}
		return s, nil
	}

	item := s.focusedItem()
	action := s.focus.Handle(keyMsg.String())

	switch action {
	case ActionDecrement, ActionIncrement:
		s.stepInline(item, action)
	case ActionToggle:
		s.values.Set(item.Key, !s.values.Bool(item.Key))
	case ActionBeginEdit:
		return s, s.beginEdit(item)
	case ActionEdit:
		return s, s.edit(item, keyMsg)
	case ActionCommit:
		s.commit(item)
	case ActionDiscard:
		s.editor.Blur()
	case ActionPress:
		switch s.buttons[s.focus.Button()] {
		case buttonCancel:
			s.cancel()
		default:
			s.save()
		}
	case ActionSave:
		s.save()
	case ActionCancel:
		if s.canCancel {
			s.cancel()
		}
	}
	return s, nil
}

// focusedItem returns the focused item, or the zero Item on a button.
func (s *SettingsState) focusedItem() settings.Item {
	i := s.focus.Item()
	if i < 0 {
		return settings.Item{}
	}
	return s.values.Items()[i]
}

// stepInline moves an inline select by one option, stopping at either end.
func (s *SettingsState) stepInline(it settings.Item, action Action) {
	opts := it.Options()
	i := s.values.OptionIndex(it.Key)
	if action == ActionDecrement {
		i--
	} else {
		i++
	}
	if i < 0 || i >= len(opts) {
		return
	}
	s.values.Set(it.Key, opts[i])
}

func (s *SettingsState) beginEdit(it settings.Item) tea.Cmd {
	switch c := it.Control.(type) {
	case settings.Text:
		s.editor = textinput.New()
		s.editor.Prompt = ""
		s.editor.CharLimit = ModalInputCharLimit
		s.editor.SetWidth(ModalInputWidth)
		if c.Password {
			s.editor.EchoMode = textinput.EchoPassword
			s.editor.EchoCharacter = []rune(passwordMask)[0]
		}
		ApplyTextInputStyles(&s.editor)
		s.editor.SetValue(s.values.String(it.Key))
		s.editor.CursorEnd()
		return s.editor.Focus()
	case settings.Dropdown:
		s.listCursor = max(0, s.values.OptionIndex(it.Key))
	}
	return nil
}

func (s *SettingsState) edit(it settings.Item, msg tea.KeyPressMsg) tea.Cmd {
	switch it.Control.(type) {
	case settings.Text:
		var cmd tea.Cmd
		s.editor, cmd = s.editor.Update(msg)
		return cmd
	case settings.Dropdown:
		last := len(it.Options()) - 1
		switch msg.String() {
		case keys.Up, "k":
			s.listCursor = max(0, s.listCursor-1)
		case keys.Down, "j":
			s.listCursor = min(last, s.listCursor+1)
		case keys.Home:
			s.listCursor = 0
		case keys.End:
			s.listCursor = last
		}
	}
	return nil
}

func (s *SettingsState) commit(it settings.Item) {
	switch it.Control.(type) {
	case settings.Text:
		s.values.Set(it.Key, s.editor.Value())
		s.editor.Blur()
	case settings.Dropdown:
		s.values.Set(it.Key, it.Options()[s.listCursor])
	}
}

func (s *SettingsState) save() {
	dirty := s.values.Dirty()
	logger.Debug("settings %q saved, changed %v", s.title, s.values.DirtyKeys())
	r := Valued(dirty)
	s.result = &r
}

func (s *SettingsState) cancel() {
	logger.Debug("settings %q cancelled", s.title)
	r := CancelResult
	s.result = &r
}

func (s *SettingsState) Result() (Result, bool) {
	if s.result == nil {
		return Result{}, false
	}
	return *s.result, true
}

// Values exposes the form's runtime values.
func (s *SettingsState) Values() *settings.Values { return s.values }

// Focus exposes the form's cursor.
func (s *SettingsState) Focus() *Focus { return s.focus }

// NewSettingsState creates a settings form over items, seeded with their
// defaults. It fails if any item is invalid or two items share a key. With
// canCancel false the form shows a single Done button and ignores Escape.
func NewSettingsState(title string, items []settings.Item, canCancel bool) (*SettingsState, error) {
	values, err := settings.NewValues(items)
	if err != nil {
		return nil, err
	}

	kinds := make([]RowKind, len(items))
	for i, it := range items {
		switch it.Control.(type) {
		case settings.Dropdown:
			kinds[i] = RowDropdown
		case settings.InlineSelect:
			kinds[i] = RowInlineSelect
		case settings.Text:
			kinds[i] = RowText
		case settings.Checkbox:
			kinds[i] = RowCheckbox
		}
	}

	buttons := []string{buttonDone}
	if canCancel {
		buttons = []string{buttonSave, buttonCancel}
	}

	return &SettingsState{
		title:     title,
		values:    values,
		focus:     NewFocus(kinds, len(buttons)),
		buttons:   buttons,
		canCancel: canCancel,
	}, nil
}
