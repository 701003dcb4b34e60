// Package errors provides structured error types for thinkprompt.
// These errors carry the operation that failed and a Kind used to
// classify them as construction failures or state violations.
package errors

import (
	"errors"
	"fmt"
)

// Op describes an operation, usually as "package.function".
type Op string

// Kind categorizes the type of error.
type Kind int

const (
	KindUnknown Kind = iota
	KindInvalidControl
	KindDuplicateKey
	KindAlreadyActive
	KindAlreadyOpen
	KindConfig
	KindIO
	KindProducer
	KindNotRunning
)

func (k Kind) String() string {
	switch k {
	case KindInvalidControl:
		return "invalid control"
	case KindDuplicateKey:
		return "duplicate key"
	case KindAlreadyActive:
		return "already active"
	case KindAlreadyOpen:
		return "already open"
	case KindConfig:
		return "configuration error"
	case KindIO:
		return "I/O error"
	case KindProducer:
		return "producer error"
	case KindNotRunning:
		return "not running"
	default:
		return "unknown error"
	}
}

// Error is the structured error type for thinkprompt.
type Error struct {
	Op      Op     // Operation that failed
	Kind    Kind   // Category of error
	Err     error  // Underlying error
	Context string // Additional context
}

// Error returns the error message.
func (e *Error) Error() string {
	if e.Context != "" {
		return fmt.Sprintf("%s: %s: %s", e.Op, e.Context, e.Err)
	}
	if e.Op != "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Err)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// E creates a new Error. Arguments can be:
// - Op: the operation name
// - Kind: the error kind
// - string: context message
// - error: the underlying error
func E(args ...any) error {
	e := &Error{}
	for _, arg := range args {
		switch a := arg.(type) {
		case Op:
			e.Op = a
		case Kind:
			e.Kind = a
		case string:
			e.Context = a
		case error:
			e.Err = a
		}
	}
	if e.Err == nil {
		e.Err = errors.New(e.Context)
		e.Context = ""
	}
	return e
}

// Is reports whether err is of the given Kind.
func Is(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// GetKind returns the Kind of an error.
func GetKind(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// IsConstruction reports whether err rejected an invalid static
// configuration (empty option list, duplicate key).
func IsConstruction(err error) bool {
	switch GetKind(err) {
	case KindInvalidControl, KindDuplicateKey:
		return true
	}
	return false
}

// IsStateViolation reports whether err was raised because an operation's
// precondition on a state machine did not hold.
func IsStateViolation(err error) bool {
	switch GetKind(err) {
	case KindAlreadyActive, KindAlreadyOpen, KindNotRunning:
		return true
	}
	return false
}

// Settings construction errors
func InvalidControl(key, reason string) error {
	return E(Op("settings.New"), KindInvalidControl, fmt.Sprintf("item %q: %s", key, reason))
}

func DuplicateKey(key string) error {
	return E(Op("settings.Validate"), KindDuplicateKey, fmt.Sprintf("key %q is used by more than one item", key))
}

// State violations
func AlreadyActive() error {
	return E(Op("thinking.Start"), KindAlreadyActive, "a thinking cycle is already in progress")
}

func AlreadyOpen(title string) error {
	return E(Op("ui.Overlay.Open"), KindAlreadyOpen, fmt.Sprintf("dialog %q is already open", title))
}

// NotRunning reports an operation that needs the session's event loop
// before Run has started it or after it has exited.
func NotRunning(op string) error {
	return E(Op(op), KindNotRunning, "session is not running")
}

// Producer errors
func ProducerFailed(err error) error {
	return E(Op("thinking.Run"), KindProducer, err)
}

// Config errors
func ConfigLoadFailed(path string, err error) error {
	return E(Op("config.Load"), KindConfig, fmt.Sprintf("failed to load config from %s", path), err)
}

func ConfigSaveFailed(path string, err error) error {
	return E(Op("config.Save"), KindConfig, fmt.Sprintf("failed to save config to %s", path), err)
}

func ConfigInvalid(reason string) error {
	return E(Op("config.Validate"), KindConfig, reason)
}
