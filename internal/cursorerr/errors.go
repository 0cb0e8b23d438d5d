package cursorerr

import (
	"errors"
	"fmt"
)

// Kind is a stable category for programmatic error handling.
// Callers should branch on Kind rather than matching error strings.
type Kind string

const (
	KindInvalidStyle Kind = "InvalidStyle"
	KindEncode       Kind = "Encode"
	KindResample     Kind = "Resample"
	KindRender       Kind = "Render"
	KindDecode       Kind = "Decode"
	KindSink         Kind = "Sink"
	KindConfig       Kind = "Config"
	KindCanceled     Kind = "Canceled"
)

// Error is the structured error returned by every cursorgen package.
//
// Entry names the catalog file the failure belongs to, when there is one.
// Message is intended for humans; do not match on it.
type Error struct {
	Kind    Kind
	Entry   string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	msg := e.Message
	if e.Entry != "" {
		msg = e.Entry + ": " + msg
	}
	if e.Cause != nil {
		msg = msg + ": " + e.Cause.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// New returns an *Error of the given kind.
func New(kind Kind, format string, args ...any) error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap returns an *Error of the given kind carrying cause.
// A nil cause yields the same result as New.
func Wrap(kind Kind, cause error, format string, args ...any) error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// WithEntry attaches a catalog file name to err. Errors that are not *Error are
// wrapped as kind so the entry is never lost.
func WithEntry(err error, kind Kind, entry string) error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		cp := *e
		cp.Entry = entry
		return &cp
	}
	return &Error{Kind: kind, Entry: entry, Message: "failed", Cause: err}
}

// KindOf returns the Kind of the outermost *Error in err's chain, or "".
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// Is reports whether err carries an *Error of the given kind.
func Is(err error, kind Kind) bool { return err != nil && KindOf(err) == kind }
