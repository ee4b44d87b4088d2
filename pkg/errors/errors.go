// Package errors attaches stable codes to the failures socialgraph reports,
// so the CLI and the HTTP API describe the same problem the same way.
//
// The network engine returns plain sentinel errors (network.ErrNotFound and
// friends). [FromNetwork] lifts those into an [*Error] carrying a [Code],
// the people involved and a message fit for display:
//
//	if err := n.AddFriendship("Jordan", "Johnny"); err != nil {
//	    err = errors.FromNetwork(err)
//	    errors.UserMessage(err) // "Johnny does not exist"
//	    errors.GetCode(err)     // PERSON_NOT_FOUND
//	}
//
// Codes group by prefix: INVALID_* for bad input, *_NOT_FOUND for missing
// things, ALREADY_*, NOT_FRIENDS and SELF_LOOP for conflicts with the
// current network, and STORAGE_ERROR, NETWORK_ERROR, TIMEOUT and
// RATE_LIMITED for collaborators.
//
// The Validate* helpers check names, formats, paths and URLs before they
// reach a backend.
package errors

import (
	"errors"
	"fmt"
	"time"
)

// Error is a failure with a [Code].
type Error struct {
	Code    Code
	Message string
	// IDs lists the people the failure is about, if any.
	IDs []string
	// RetryAfter is set on RATE_LIMITED errors.
	RetryAfter time.Duration
	Cause      error
}

func (e *Error) Error() string {
	msg := string(e.Code) + ": " + e.Message
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Cause }

// New returns an error with code and a fmt-style message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap is New with a cause, which stays reachable through errors.Is and
// errors.As.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	e := New(code, format, args...)
	e.Cause = cause
	return e
}

// RateLimited reports that the caller must wait before retrying.
func RateLimited(wait time.Duration) *Error {
	e := New(ErrCodeRateLimited, "too many requests")
	e.RetryAfter = wait
	return e
}

func find(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return nil
}

// GetCode returns the code of the outermost [*Error] in err's chain, or ""
// when there is none.
func GetCode(err error) Code {
	if e := find(err); e != nil {
		return e.Code
	}
	return ""
}

// Is reports whether GetCode(err) is code.
func Is(err error, code Code) bool {
	return err != nil && GetCode(err) == code
}

// UserMessage is the text to show a person: the message of a coded error
// without its code, or err.Error() otherwise.
func UserMessage(err error) string {
	if e := find(err); e != nil {
		return e.Message
	}
	return err.Error()
}
