package domain

import (
	"errors"
	"fmt"
)

// ErrorKind is a closed sum of the semantic error categories the engine
// surfaces to its caller. Capability errors are wrapped in an Error and
// returned; the one exception is the garbage collector, which skips a blob
// whose size lookup or delete fails and carries on with the sweep.
type ErrorKind string

const (
	KindNotFound    ErrorKind = "not-found"
	KindIO          ErrorKind = "io"
	KindParse       ErrorKind = "parse"
	KindPatchFailed ErrorKind = "patch-failed"
	KindEncryption  ErrorKind = "encryption-error"
	KindValidation  ErrorKind = "validation"
	KindZipSlip     ErrorKind = "zip-slip"
)

// Error wraps an underlying failure with the semantic kind and the
// operation it occurred in (e.g. "checkpoint.Run", "localfs.Read").
type Error struct {
	Kind ErrorKind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// NewError constructs an *Error for the given kind/op/cause.
func NewError(kind ErrorKind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// KindOf extracts the ErrorKind from err, if it (or something it wraps) is
// an *Error. Returns ("", false) otherwise.
func KindOf(err error) (ErrorKind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return "", false
}
