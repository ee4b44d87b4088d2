package io

import (
	"errors"
	"fmt"

	apperrors "github.com/matzehuels/socialgraph/pkg/errors"
	"github.com/matzehuels/socialgraph/pkg/network"
)

// Mutator is the write surface [Apply] needs. Both *network.Network and
// *network.Synchronized satisfy it.
type Mutator interface {
	AddPersonWithMeta(id string, meta network.Metadata) error
	AddFriendship(a, b string) error
}

// Failure records one roster entry the network rejected.
type Failure struct {
	Op   string   // network.OpAddPerson or network.OpAddFriendship
	Args []string // the person, or both ends of the friendship
	Err  error
}

// Message renders the failure for people, e.g.
// "Friendship not created: Johnny does not exist".
func (f Failure) Message() string {
	msg := apperrors.UserMessage(apperrors.FromNetwork(f.Err))
	switch f.Op {
	case network.OpAddPerson:
		return "Person not added: " + msg
	case network.OpAddFriendship:
		return "Friendship not created: " + msg
	}
	return msg
}

// Report summarizes an [Apply] run.
type Report struct {
	PeopleAdded      int
	FriendshipsAdded int
	Failures         []Failure
}

// OK reports whether every roster entry was applied.
func (r Report) OK() bool { return len(r.Failures) == 0 }

// Err joins all failures into one error, or returns nil if there were none.
func (r Report) Err() error {
	if r.OK() {
		return nil
	}
	errs := make([]error, len(r.Failures))
	for i, f := range r.Failures {
		errs[i] = f.Err
	}
	return fmt.Errorf("%d roster entries rejected: %w", len(errs), errors.Join(errs...))
}

// Apply adds every person of r, then every friendship, to m. Person names
// are checked with [apperrors.ValidatePersonName] first. A rejected
// entry is recorded and loading continues; the network itself guarantees
// that a rejected entry leaves no partial state behind.
func Apply(m Mutator, r Roster) Report {
	var rep Report
	for _, p := range r.People {
		err := apperrors.ValidatePersonName(p.ID)
		if err == nil {
			err = m.AddPersonWithMeta(p.ID, p.Meta)
		}
		if err != nil {
			rep.Failures = append(rep.Failures, Failure{
				Op:   network.OpAddPerson,
				Args: []string{p.ID},
				Err:  err,
			})
			continue
		}
		rep.PeopleAdded++
	}
	for _, f := range r.Friendships {
		if err := m.AddFriendship(f.A, f.B); err != nil {
			rep.Failures = append(rep.Failures, Failure{
				Op:   network.OpAddFriendship,
				Args: []string{f.A, f.B},
				Err:  err,
			})
			continue
		}
		rep.FriendshipsAdded++
	}
	return rep
}
