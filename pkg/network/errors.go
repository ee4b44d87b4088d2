package network

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidID is returned by [Network.AddPerson] when the identifier is
	// empty. Every person must have a non-empty name.
	ErrInvalidID = errors.New("invalid person ID")

	// ErrAlreadyExists is returned by [Network.AddPerson] when a person with
	// the same identifier is already registered. Identifiers are case-sensitive.
	ErrAlreadyExists = errors.New("person already exists")

	// ErrNotFound is returned by any operation that references an identifier
	// that is not registered. The wrapping [OpError] lists the missing IDs.
	ErrNotFound = errors.New("person does not exist")

	// ErrSelfLoop is returned by [Network.AddFriendship] when both endpoints
	// are the same person and the network was not built with [WithSelfLoops].
	ErrSelfLoop = errors.New("person cannot be friends with themselves")

	// ErrAlreadyFriends is returned by [Network.AddFriendship] when the
	// friendship already exists.
	ErrAlreadyFriends = errors.New("already friends")

	// ErrNotFriends is returned by [Network.RemoveFriendship] when there is no
	// friendship between the two people.
	ErrNotFriends = errors.New("not friends")

	// ErrAsymmetricEdge is returned by [Network.Validate] when B is listed as
	// a friend of A but A is not listed as a friend of B.
	ErrAsymmetricEdge = errors.New("friendship is not symmetric")

	// ErrDanglingEdge is returned by [Network.Validate] when a friend list
	// references an identifier that is not registered.
	ErrDanglingEdge = errors.New("friendship references unknown person")
)

// OpError records a failed engine operation together with the identifiers
// that caused it. For ErrNotFound, IDs holds exactly the missing identifiers
// in argument order.
type OpError struct {
	Op  string   // Operation name, e.g. "add friendship"
	IDs []string // Offending identifiers
	Err error    // One of the package sentinel errors
}

// Error implements the error interface.
// Example: "add friendship: person does not exist: Johnny"
func (e *OpError) Error() string {
	if len(e.IDs) == 0 {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s: %v: %s", e.Op, e.Err, strings.Join(e.IDs, ", "))
}

// Unwrap returns the sentinel error for errors.Is compatibility.
func (e *OpError) Unwrap() error { return e.Err }

func opError(op string, err error, ids ...string) error {
	return &OpError{Op: op, IDs: ids, Err: err}
}

// MissingIDs returns the identifiers reported by an ErrNotFound failure.
// It returns nil if err is not a not-found error from this package.
func MissingIDs(err error) []string {
	var oe *OpError
	if errors.As(err, &oe) && errors.Is(oe.Err, ErrNotFound) {
		return oe.IDs
	}
	return nil
}

// IDs returns the identifiers attached to an engine error, or nil.
func IDs(err error) []string {
	var oe *OpError
	if errors.As(err, &oe) {
		return oe.IDs
	}
	return nil
}
