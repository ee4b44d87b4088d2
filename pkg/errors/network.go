package errors

import (
	"errors"
	"fmt"

	"github.com/matzehuels/socialgraph/pkg/network"
)

type sentinelRule struct {
	sentinel error
	code     Code
	message  func(ids []string) string
}

var sentinelRules = []sentinelRule{
	{network.ErrInvalidID, ErrCodeInvalidName, func([]string) string {
		return "person name must not be empty"
	}},
	{network.ErrNotFound, ErrCodePersonNotFound, func(ids []string) string {
		switch len(ids) {
		case 1:
			return ids[0] + " does not exist"
		case 2:
			return ids[0] + " and " + ids[1] + " do not exist"
		}
		return "one or more people do not exist"
	}},
	{network.ErrAlreadyExists, ErrCodeAlreadyExists, func(ids []string) string {
		return fmt.Sprintf("%s already exists in the network", first(ids))
	}},
	// The engine reports (a, b) for AddFriendship(a, b); the message names
	// the person being added second.
	{network.ErrAlreadyFriends, ErrCodeAlreadyFriends, func(ids []string) string {
		if len(ids) < 2 {
			return "already friends"
		}
		return fmt.Sprintf("%s is already friends with %s", ids[1], ids[0])
	}},
	{network.ErrNotFriends, ErrCodeNotFriends, func(ids []string) string {
		if len(ids) < 2 {
			return "not friends"
		}
		return fmt.Sprintf("%s and %s are not friends", ids[0], ids[1])
	}},
	{network.ErrSelfLoop, ErrCodeSelfLoop, func(ids []string) string {
		return fmt.Sprintf("%s cannot be friends with themselves", first(ids))
	}},
}

func first(ids []string) string {
	if len(ids) == 0 {
		return "person"
	}
	return ids[0]
}

// FromNetwork gives an engine error its code and display message. Errors
// that already have a code pass through; anything unrecognised becomes
// INTERNAL_ERROR. FromNetwork(nil) is nil.
func FromNetwork(err error) error {
	if err == nil || find(err) != nil {
		return err
	}
	for _, r := range sentinelRules {
		if !errors.Is(err, r.sentinel) {
			continue
		}
		ids := network.IDs(err)
		return &Error{Code: r.code, Message: r.message(ids), IDs: ids, Cause: err}
	}
	return Wrap(ErrCodeInternal, err, "unexpected error")
}
