package modals

import (
	"github.com/zhubert/thinkprompt/internal/keys"
)

// RowKind identifies what sits on a focusable row, which decides how
// horizontal keys and Enter are interpreted there.
type RowKind int

const (
	RowPlain RowKind = iota
	RowDropdown
	RowInlineSelect
	RowText
	RowCheckbox
	RowButton
)

// EditMode is the sub-state of the focused row.
type EditMode int

const (
	EditNone EditMode = iota
	EditingValue
)

// Action is what a key press means in the current focus state. The owning
// dialog applies it to its own data.
type Action int

const (
	ActionNone      Action = iota
	ActionMoved            // the cursor moved to another row
	ActionDecrement        // step the focused inline select back
	ActionIncrement        // step the focused inline select forward
	ActionToggle           // flip the focused checkbox
	ActionBeginEdit        // the focused row entered EditingValue
	ActionEdit             // a key for the in-place editor
	ActionCommit           // keep the edited value and leave EditingValue
	ActionDiscard          // drop the edited value and leave EditingValue
	ActionPress            // the focused button was activated
	ActionSave
	ActionCancel
)

// Focus is a cursor over a dialog's focusable rows: its item rows followed
// by its buttons. Vertical movement is clamped at both ends. While a row is
// in EditingValue the cursor does not move.
type Focus struct {
	kinds   []RowKind
	buttons int
	index   int
	mode    EditMode
}

// NewFocus creates a cursor over items rows of the given kinds followed by
// buttons button rows, starting on the first row.
func NewFocus(kinds []RowKind, buttons int) *Focus {
	return &Focus{kinds: kinds, buttons: buttons}
}

// Len returns the number of focusable rows.
func (f *Focus) Len() int { return len(f.kinds) + f.buttons }

// Index returns the focused row.
func (f *Focus) Index() int { return f.index }

// Mode returns the edit sub-state of the focused row.
func (f *Focus) Mode() EditMode { return f.mode }

// Editing reports whether the focused row is being edited in place.
func (f *Focus) Editing() bool { return f.mode == EditingValue }

// Item returns the focused item row, or -1 when a button is focused.
func (f *Focus) Item() int {
	if f.index < len(f.kinds) {
		return f.index
	}
	return -1
}

// Button returns the focused button, or -1 when an item row is focused.
func (f *Focus) Button() int {
	if f.index >= len(f.kinds) {
		return f.index - len(f.kinds)
	}
	return -1
}

// Kind returns the kind of the focused row.
func (f *Focus) Kind() RowKind {
	if f.index < len(f.kinds) {
		return f.kinds[f.index]
	}
	return RowButton
}

// SetIndex moves the cursor to i, clamped to the valid rows. It is ignored
// while editing.
func (f *Focus) SetIndex(i int) {
	if f.mode == EditingValue || f.Len() == 0 {
		return
	}
	f.index = max(0, min(i, f.Len()-1))
}

func (f *Focus) move(delta int) Action {
	next := f.index + delta
	if next < 0 || next >= f.Len() {
		return ActionNone
	}
	f.index = next
	return ActionMoved
}

func (f *Focus) horizontal(delta int) Action {
	switch f.Kind() {
	case RowInlineSelect:
		if delta < 0 {
			return ActionDecrement
		}
		return ActionIncrement
	case RowCheckbox:
		return ActionToggle
	case RowButton:
		next := f.index + delta
		if next < len(f.kinds) || next >= f.Len() {
			return ActionNone
		}
		f.index = next
		return ActionMoved
	}
	return ActionNone
}

// Handle interprets a key press. Keys that have no meaning in the current
// state return ActionNone and change nothing.
func (f *Focus) Handle(key string) Action {
	if f.mode == EditingValue {
		switch key {
		case keys.Enter:
			f.mode = EditNone
			return ActionCommit
		case keys.Escape:
			f.mode = EditNone
			return ActionDiscard
		}
		return ActionEdit
	}

	switch key {
	case keys.Up, "k", keys.ShiftTab:
		return f.move(-1)
	case keys.Down, "j", keys.Tab:
		return f.move(1)
	case keys.Left, "h":
		return f.horizontal(-1)
	case keys.Right, "l":
		return f.horizontal(1)
	case keys.Space:
		if f.Kind() == RowCheckbox {
			return ActionToggle
		}
	case keys.Enter:
		switch f.Kind() {
		case RowText, RowDropdown:
			f.mode = EditingValue
			return ActionBeginEdit
		case RowCheckbox:
			return ActionToggle
		case RowButton:
			return ActionPress
		}
	case keys.CtrlS:
		return ActionSave
	case keys.Escape:
		return ActionCancel
	}
	return ActionNone
}
