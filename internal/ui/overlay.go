package ui

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/google/uuid"

	"github.com/zhubert/thinkprompt/internal/errors"
	"github.com/zhubert/thinkprompt/internal/logger"
	"github.com/zhubert/thinkprompt/internal/ui/modals"
)

// Overlay owns the zero-or-one active dialog. While a dialog is open all
// key input belongs to it; the prompt underneath keeps its buffer.
//
// Overlay is not safe for concurrent use. It is only touched from the
// event loop.
type Overlay struct {
	state modals.DialogState
	reply chan modals.Result
	id    string
}

// NewOverlay creates an empty overlay.
func NewOverlay() *Overlay {
	return &Overlay{}
}

// Open shows state and returns the channel its result will be delivered
// on. Opening while another dialog is active fails with an AlreadyOpen
// error and leaves the active dialog in place.
func (o *Overlay) Open(state modals.DialogState) (<-chan modals.Result, error) {
	if o.state != nil {
		logger.Debug("overlay: refused %q, %q is open", state.Title(), o.state.Title())
		return nil, errors.AlreadyOpen(o.state.Title())
	}
	o.state = state
	o.reply = make(chan modals.Result, 1)
	o.id = uuid.NewString()
	logger.Debug("overlay: opened %q (%s)", state.Title(), o.id)
	return o.reply, nil
}

// Close resolves the active dialog with r and removes it. Closing an empty
// overlay is a no-op and reports false.
func (o *Overlay) Close(r modals.Result) bool {
	if o.state == nil {
		return false
	}
	logger.Debug("overlay: closed %q (%s) cancelled=%v", o.state.Title(), o.id, r.Cancelled)
	o.reply <- r
	o.state = nil
	o.reply = nil
	o.id = ""
	return true
}

// IsOpen reports whether a dialog is active.
func (o *Overlay) IsOpen() bool {
	return o.state != nil
}

// Current returns the active dialog, or nil.
func (o *Overlay) Current() modals.DialogState {
	return o.state
}

// Update routes msg to the active dialog and closes it once the dialog has
// produced a result.
func (o *Overlay) Update(msg tea.Msg) tea.Cmd {
	if o.state == nil {
		return nil
	}
	var cmd tea.Cmd
	o.state, cmd = o.state.Update(msg)
	if r, done := o.state.Result(); done {
		o.Close(r)
	}
	return cmd
}

// View draws the active dialog over base, a screenW by screenH frame.
// Without a dialog base is returned unchanged.
func (o *Overlay) View(base string, screenW, screenH int) string {
	if o.state == nil || screenW <= 0 || screenH <= 0 {
		return base
	}

	placement := modals.Placement{Width: modals.WidthAuto()}
	if p, ok := o.state.(modals.DialogWithPlacement); ok {
		placement = p.Placement()
	}

	frame := ModalStyle.GetHorizontalFrameSize()
	natural := lipgloss.Width(o.state.Render()) + frame
	width := placement.Width.Resolve(natural, screenW)
	if w, ok := o.state.(modals.DialogWithWidth); ok {
		w.SetWidth(max(1, width-frame))
	}

	dialog := ModalStyle.Width(width).Render(o.state.Render())
	dw, dh := lipgloss.Size(dialog)
	dw, dh = min(dw, screenW), min(dh, screenH)
	x, y := placement.Origin(dw, dh, screenW, screenH)

	area := uv.Rect(0, 0, screenW, screenH)
	scr := uv.NewScreenBuffer(area.Dx(), area.Dy())
	uv.NewStyledString(base).Draw(scr, area)
	uv.NewStyledString(dialog).Draw(scr, uv.Rect(x, y, dw, dh))
	return scr.Render()
}
