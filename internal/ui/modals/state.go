// Package modals provides the dialog states shown by the overlay: message
// and choice dialogs built from a Descriptor, a single-select list, and the
// settings form. Each dialog implements DialogState and reports its own
// Result once the user closes it.
package modals

import (
	tea "charm.land/bubbletea/v2"
)

// DialogState is a discriminated union interface for dialog-specific state.
// Each dialog type implements this interface with its own state struct.
type DialogState interface {
	dialogState() // marker method to restrict implementations
	Title() string
	Help() string
	Render() string
	Update(msg tea.Msg) (DialogState, tea.Cmd)

	// Result returns the value the dialog closed with. ok is false while
	// the dialog is still waiting for input.
	Result() (r Result, ok bool)
}

// DialogWithPlacement is implemented by dialogs that carry their own width
// policy and vertical offset. Dialogs that don't implement it are centered
// with an automatic width.
type DialogWithPlacement interface {
	DialogState
	Placement() Placement
}

// DialogWithWidth is implemented by dialogs that wrap their content to the
// width the overlay resolves for them.
type DialogWithWidth interface {
	DialogState
	SetWidth(width int)
}

// Result is what a dialog resolves to. A cancelled dialog carries no value.
// Callers always receive a Result; cancellation is never an error.
type Result struct {
	Value     any
	Cancelled bool
}

// CancelResult is the cancellation sentinel.
var CancelResult = Result{Cancelled: true}

// Valued returns a non-cancelled result carrying v.
func Valued(v any) Result {
	return Result{Value: v}
}
