package modals

import (
	"testing"

	"github.com/zhubert/thinkprompt/internal/keys"
)

func TestFocus_VerticalMovementIsClamped(t *testing.T) {
	f := NewFocus([]RowKind{RowText, RowCheckbox}, 2)

	if got := f.Handle(keys.Up); got != ActionNone {
		t.Errorf("expected up at top to be a no-op, got %v", got)
	}
	if f.Index() != 0 {
		t.Errorf("expected index 0, got %d", f.Index())
	}

	for _, k := range []string{keys.Down, "j", keys.Tab} {
		if got := f.Handle(k); got != ActionMoved {
			t.Errorf("expected %q to move, got %v", k, got)
		}
	}
	if f.Index() != 3 {
		t.Fatalf("expected index 3, got %d", f.Index())
	}
	if got := f.Handle(keys.Down); got != ActionNone {
		t.Errorf("expected down at bottom to be a no-op, got %v", got)
	}
	if f.Index() != 3 {
		t.Errorf("expected index to stay 3, got %d", f.Index())
	}

	f.Handle("k")
	f.Handle(keys.ShiftTab)
	if f.Index() != 1 {
		t.Errorf("expected index 1 after k and shift+tab, got %d", f.Index())
	}
}

func TestFocus_ItemAndButton(t *testing.T) {
	f := NewFocus([]RowKind{RowText}, 2)

	if f.Item() != 0 || f.Button() != -1 {
		t.Errorf("expected item 0 and no button, got %d/%d", f.Item(), f.Button())
	}
	f.Handle(keys.Down)
	if f.Item() != -1 || f.Button() != 0 {
		t.Errorf("expected button 0, got %d/%d", f.Item(), f.Button())
	}
	if f.Kind() != RowButton {
		t.Errorf("expected button row, got %v", f.Kind())
	}
}

func TestFocus_HorizontalKeysByRowKind(t *testing.T) {
	tests := []struct {
		name string
		kind RowKind
		key  string
		want Action
	}{
		{"inline select left", RowInlineSelect, keys.Left, ActionDecrement},
		{"inline select h", RowInlineSelect, "h", ActionDecrement},
		{"inline select right", RowInlineSelect, keys.Right, ActionIncrement},
		{"inline select l", RowInlineSelect, "l", ActionIncrement},
		{"checkbox left toggles", RowCheckbox, keys.Left, ActionToggle},
		{"checkbox right toggles", RowCheckbox, keys.Right, ActionToggle},
		{"checkbox space toggles", RowCheckbox, keys.Space, ActionToggle},
		{"text ignores left", RowText, keys.Left, ActionNone},
		{"dropdown ignores right", RowDropdown, keys.Right, ActionNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewFocus([]RowKind{tt.kind}, 1)
			if got := f.Handle(tt.key); got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
			if f.Index() != 0 {
				t.Errorf("expected cursor to stay on the row, got %d", f.Index())
			}
		})
	}
}

func TestFocus_HorizontalKeysMoveBetweenButtons(t *testing.T) {
	f := NewFocus([]RowKind{RowText}, 2)
	f.Handle(keys.Down)

	if got := f.Handle(keys.Left); got != ActionNone {
		t.Errorf("expected left on first button not to reach the items, got %v", got)
	}
	if got := f.Handle(keys.Right); got != ActionMoved || f.Button() != 1 {
		t.Errorf("expected right to focus button 1, got %v/%d", got, f.Button())
	}
	if got := f.Handle(keys.Right); got != ActionNone || f.Button() != 1 {
		t.Errorf("expected right on last button to be a no-op, got %v/%d", got, f.Button())
	}
}

func TestFocus_EnterByRowKind(t *testing.T) {
	tests := []struct {
		kind     RowKind
		want     Action
		wantMode EditMode
	}{
		{RowText, ActionBeginEdit, EditingValue},
		{RowDropdown, ActionBeginEdit, EditingValue},
		{RowCheckbox, ActionToggle, EditNone},
		{RowInlineSelect, ActionNone, EditNone},
	}

	for _, tt := range tests {
		f := NewFocus([]RowKind{tt.kind}, 1)
		if got := f.Handle(keys.Enter); got != tt.want {
			t.Errorf("kind %v: expected %v, got %v", tt.kind, tt.want, got)
		}
		if f.Mode() != tt.wantMode {
			t.Errorf("kind %v: expected mode %v, got %v", tt.kind, tt.wantMode, f.Mode())
		}
	}

	f := NewFocus(nil, 1)
	if got := f.Handle(keys.Enter); got != ActionPress {
		t.Errorf("expected enter on a button to press it, got %v", got)
	}
}

func TestFocus_EditingSwallowsNavigation(t *testing.T) {
	f := NewFocus([]RowKind{RowText, RowCheckbox}, 1)
	f.Handle(keys.Enter)

	for _, k := range []string{keys.Down, keys.Up, keys.Tab, "j", keys.Left, keys.CtrlS, "x"} {
		if got := f.Handle(k); got != ActionEdit {
			t.Errorf("expected %q to go to the editor, got %v", k, got)
		}
	}
	if f.Index() != 0 {
		t.Errorf("expected cursor to stay on the edited row, got %d", f.Index())
	}

	f.SetIndex(1)
	if f.Index() != 0 {
		t.Error("SetIndex should be ignored while editing")
	}

	if got := f.Handle(keys.Escape); got != ActionDiscard {
		t.Errorf("expected escape to discard, got %v", got)
	}
	if f.Editing() {
		t.Error("expected edit mode to end after discard")
	}

	f.Handle(keys.Enter)
	if got := f.Handle(keys.Enter); got != ActionCommit {
		t.Errorf("expected enter to commit, got %v", got)
	}
	if f.Editing() {
		t.Error("expected edit mode to end after commit")
	}
}

func TestFocus_SaveAndCancelAtTopLevel(t *testing.T) {
	f := NewFocus([]RowKind{RowCheckbox}, 1)

	if got := f.Handle(keys.CtrlS); got != ActionSave {
		t.Errorf("expected save, got %v", got)
	}
	if got := f.Handle(keys.Escape); got != ActionCancel {
		t.Errorf("expected cancel, got %v", got)
	}
}

func TestFocus_SetIndexClamps(t *testing.T) {
	f := NewFocus([]RowKind{RowText}, 2)

	f.SetIndex(10)
	if f.Index() != 2 {
		t.Errorf("expected clamp to 2, got %d", f.Index())
	}
	f.SetIndex(-3)
	if f.Index() != 0 {
		t.Errorf("expected clamp to 0, got %d", f.Index())
	}
}
