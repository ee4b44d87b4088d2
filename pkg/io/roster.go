package io

import (
	"github.com/matzehuels/socialgraph/pkg/network"
)

// Roster is the format-independent content of an import: people in the
// order they should be added, then friendships.
type Roster struct {
	People      []Person     `json:"people"`
	Friendships []Friendship `json:"friendships"`
}

// Person is one roster entry.
type Person struct {
	ID   string           `json:"id" toml:"id"`
	Meta network.Metadata `json:"meta,omitempty" toml:"meta,omitempty"`
}

// Friendship is one undirected roster edge.
type Friendship struct {
	A string `json:"a" toml:"a"`
	B string `json:"b" toml:"b"`
}

// FromNetwork captures the people and friendships of n as a Roster.
// Metadata maps are copied, so the roster is independent of n.
func FromNetwork(n *network.Network) Roster {
	ids := n.People()
	r := Roster{
		People:      make([]Person, 0, len(ids)),
		Friendships: make([]Friendship, 0, n.FriendshipCount()),
	}
	for _, id := range ids {
		p, _ := n.Person(id)
		entry := Person{ID: id}
		if len(p.Meta) > 0 {
			entry.Meta = p.Meta
		}
		r.People = append(r.People, entry)
	}
	for _, f := range n.Friendships() {
		r.Friendships = append(r.Friendships, Friendship{A: f.A, B: f.B})
	}
	return r
}

// Build creates a new network from r, failing on the first rejected entry.
func Build(r Roster, opts ...network.Option) (*network.Network, error) {
	n := network.New(opts...)
	if err := Apply(n, r).Err(); err != nil {
		return nil, err
	}
	return n, nil
}

// Restore rebuilds a network captured with [FromNetwork]. Unlike [Build] it
// does not check person names, so any name the network accepted when the
// roster was taken is accepted again. The result must pass
// [network.Network.Validate].
func Restore(r Roster, opts ...network.Option) (*network.Network, error) {
	n := network.New(opts...)
	for _, p := range r.People {
		if err := n.AddPersonWithMeta(p.ID, p.Meta); err != nil {
			return nil, err
		}
	}
	for _, f := range r.Friendships {
		if err := n.AddFriendship(f.A, f.B); err != nil {
			return nil, err
		}
	}
	if err := n.Validate(); err != nil {
		return nil, err
	}
	return n, nil
}
