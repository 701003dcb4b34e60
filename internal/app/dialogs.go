package app

import (
	"context"

	"github.com/zhubert/thinkprompt/internal/settings"
	"github.com/zhubert/thinkprompt/internal/ui/modals"
)

// openDialogMsg asks the event loop to open a dialog on behalf of another
// goroutine. The loop answers on reply.
type openDialogMsg struct {
	state modals.DialogState
	reply chan openDialogReply
}

type openDialogReply struct {
	result <-chan modals.Result
	err    error
}

// cancelDialogMsg closes state with the cancel sentinel if it is still the
// open dialog.
type cancelDialogMsg struct {
	state modals.DialogState
}

// OpenDialog shows state and blocks until the user closes it. It fails
// with an AlreadyOpen error if another dialog is showing. If ctx ends
// first the dialog is cancelled and ctx's error returned. If the session
// exits first the cancel sentinel is returned.
func (s *Session) OpenDialog(ctx context.Context, state modals.DialogState) (modals.Result, error) {
	sender := s.loop()
	if sender == nil {
		return modals.CancelResult, errNotRunning("OpenDialog")
	}
	exited := s.context().Done()

	reply := make(chan openDialogReply, 1)
	sender.Send(openDialogMsg{state: state, reply: reply})

	var opened openDialogReply
	select {
	case opened = <-reply:
	case <-ctx.Done():
		sender.Send(cancelDialogMsg{state: state})
		return modals.CancelResult, ctx.Err()
	case <-exited:
		return modals.CancelResult, nil
	}
	if opened.err != nil {
		return modals.CancelResult, opened.err
	}

	select {
	case r := <-opened.result:
		return r, nil
	case <-ctx.Done():
		sender.Send(cancelDialogMsg{state: state})
		return modals.CancelResult, ctx.Err()
	case <-exited:
		return modals.CancelResult, nil
	}
}

// Show opens a dialog built from d.
func (s *Session) Show(ctx context.Context, d modals.Descriptor) (modals.Result, error) {
	return s.OpenDialog(ctx, modals.NewMessageState(d))
}

// YesNo asks a yes/no question. No and Escape both answer false.
func (s *Session) YesNo(ctx context.Context, title, text string) (bool, error) {
	r, err := s.Show(ctx, modals.YesNo(title, text))
	if err != nil {
		return false, err
	}
	yes, _ := r.Value.(bool)
	return yes, nil
}

// Message shows text with a single OK button.
func (s *Session) Message(ctx context.Context, title, text string) error {
	_, err := s.Show(ctx, modals.Message(title, text))
	return err
}

// Choice shows one button per choice and returns the chosen label. ok is
// false if the user pressed Escape.
func (s *Session) Choice(ctx context.Context, title, text string, choices ...string) (choice string, ok bool, err error) {
	r, err := s.Show(ctx, modals.Choice(title, text, choices...))
	if err != nil || r.Cancelled {
		return "", false, err
	}
	choice, _ = r.Value.(string)
	return choice, true, nil
}

// Dropdown lets the user pick one of options, starting at def. ok is false
// if the user pressed Escape.
func (s *Session) Dropdown(ctx context.Context, title, text string, options []string, def string) (choice string, ok bool, err error) {
	state, err := modals.NewListState(title, text, options, def)
	if err != nil {
		return "", false, err
	}
	r, err := s.OpenDialog(ctx, state)
	if err != nil || r.Cancelled {
		return "", false, err
	}
	choice, _ = r.Value.(string)
	return choice, true, nil
}

// Settings shows a settings form over items. On save it returns only the
// values that differ from their defaults; ok is false if the form was
// cancelled. Invalid items fail before anything is shown.
func (s *Session) Settings(ctx context.Context, title string, items []settings.Item, canCancel bool) (changes map[string]any, ok bool, err error) {
	state, err := modals.NewSettingsState(title, items, canCancel)
	if err != nil {
		return nil, false, err
	}
	r, err := s.OpenDialog(ctx, state)
	if err != nil || r.Cancelled {
		return nil, false, err
	}
	changes, _ = r.Value.(map[string]any)
	return changes, true, nil
}
