package thinking

import (
	"context"

	"github.com/zhubert/thinkprompt/internal/errors"
)

// Writer feeds a thinking cycle. It implements io.Writer and
// io.StringWriter, so subprocess output can be copied straight into the
// box. Writes after the cycle has finished are dropped.
type Writer struct {
	s *State
}

// Write appends p to the cycle and always reports success.
func (w Writer) Write(p []byte) (int, error) {
	w.s.Append(string(p))
	return len(p), nil
}

// WriteString appends str to the cycle and always reports success.
func (w Writer) WriteString(str string) (int, error) {
	w.s.Append(str)
	return len(str), nil
}

// Run starts a cycle fed through a Writer, calls fn, and finishes the cycle
// with opts on every exit path of fn, including a panic. An error from fn is
// returned after the cycle is finished. Run fails without calling fn if a
// cycle is already active.
func (s *State) Run(ctx context.Context, opts FinishOptions, fn func(ctx context.Context, w Writer) error) error {
	if err := s.Start(nil); err != nil {
		return err
	}
	defer s.Finish(opts)

	if err := fn(ctx, Writer{s: s}); err != nil {
		return errors.ProducerFailed(err)
	}
	return nil
}

// RunProvider is Run for callers that supply their own snapshot provider
// instead of writing through a Writer.
func (s *State) RunProvider(ctx context.Context, provider ContentProvider, opts FinishOptions, fn func(ctx context.Context) error) error {
	if err := s.Start(provider); err != nil {
		return err
	}
	defer s.Finish(opts)

	if err := fn(ctx); err != nil {
		return errors.ProducerFailed(err)
	}
	return nil
}
