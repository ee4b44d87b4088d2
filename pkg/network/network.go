package network

import (
	"cmp"
	"maps"
	"slices"
)

// Operation names used in [OpError.Op].
const (
	OpAddPerson        = "add person"
	OpRemovePerson     = "remove person"
	OpAddFriendship    = "add friendship"
	OpRemoveFriendship = "remove friendship"
	OpQuery            = "query"
)

// Metadata stores arbitrary key-value pairs attached to a person, such as a
// display name or join date. Metadata maps are never nil after a person is
// added.
type Metadata map[string]any

// Person is a read-only copy of a registered person. Modifying a Person or
// its Friends slice does not affect the network.
type Person struct {
	ID      string
	Meta    Metadata
	Friends []string // Friend IDs in the order the friendships were created
}

// Friendship is an undirected edge between two people.
// A is always the endpoint that was registered first.
type Friendship struct {
	A string
	B string
}

// node is the registry entry owned by the network. Friend identifiers are
// stored both as an ordered slice (for deterministic output) and as a set
// (for constant-time membership). The set maps each friend to the sequence
// number of the friendship.
type node struct {
	id      string
	meta    Metadata
	friends []string
	index   map[string]uint64
}

func (n *node) hasFriend(id string) bool {
	_, ok := n.index[id]
	return ok
}

func (n *node) link(id string, seq uint64) {
	n.friends = append(n.friends, id)
	n.index[id] = seq
}

func (n *node) unlink(id string) {
	n.friends = slices.DeleteFunc(n.friends, func(f string) bool { return f == id })
	delete(n.index, id)
}

// Network is an undirected social graph. People are identified by unique,
// case-sensitive names and friendships are symmetric edges.
//
// The registry owns every node; friendships are stored as identifier sets,
// never as references between nodes. Every mutation validates its inputs
// before changing anything, so a failed call leaves the network untouched.
//
// The zero value is not usable - use New. Network is not safe for concurrent
// use; wrap it with [NewSynchronized] to share it between goroutines.
type Network struct {
	nodes     map[string]*node
	order     []string // insertion order of people
	edges     int
	seq       uint64 // last friendship sequence number
	selfLoops bool
}

// Option configures a Network.
type Option func(*Network)

// WithSelfLoops allows a person to be friends with themselves. Self-loops are
// rejected with ErrSelfLoop by default.
func WithSelfLoops(allow bool) Option {
	return func(n *Network) { n.selfLoops = allow }
}

// New creates an empty network.
func New(opts ...Option) *Network {
	n := &Network{nodes: make(map[string]*node)}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// AllowsSelfLoops reports whether the network accepts self-friendships.
func (n *Network) AllowsSelfLoops() bool { return n.selfLoops }

// AddPerson registers a new person with no friends.
// Returns ErrInvalidID for an empty id or ErrAlreadyExists if the id is taken.
func (n *Network) AddPerson(id string) error {
	return n.AddPersonWithMeta(id, nil)
}

// AddPersonWithMeta registers a new person with the given metadata.
// The metadata map is copied; a nil map is replaced by an empty one.
func (n *Network) AddPersonWithMeta(id string, meta Metadata) error {
	if id == "" {
		return opError(OpAddPerson, ErrInvalidID)
	}
	if _, exists := n.nodes[id]; exists {
		return opError(OpAddPerson, ErrAlreadyExists, id)
	}
	m := Metadata{}
	maps.Copy(m, meta)
	n.nodes[id] = &node{id: id, meta: m, index: make(map[string]uint64)}
	n.order = append(n.order, id)
	return nil
}

// RemovePerson deletes a person and every friendship that involves them.
// Returns ErrNotFound if the person does not exist.
//
// The cascade runs in O(d) over the removed person's friends plus O(V) to
// maintain insertion order.
func (n *Network) RemovePerson(id string) error {
	p, ok := n.nodes[id]
	if !ok {
		return opError(OpRemovePerson, ErrNotFound, id)
	}
	for _, f := range p.friends {
		if f != id {
			n.nodes[f].unlink(id)
		}
	}
	n.edges -= len(p.friends)
	delete(n.nodes, id)
	n.order = slices.DeleteFunc(n.order, func(s string) bool { return s == id })
	return nil
}

// AddFriendship creates a symmetric friendship between a and b.
//
// Returns ErrNotFound (listing every missing id) if either person is
// unregistered, ErrSelfLoop if a == b and self-loops are not allowed, or
// ErrAlreadyFriends if the friendship exists. Both friend lists are updated
// together or not at all.
func (n *Network) AddFriendship(a, b string) error {
	if err := n.requireAll(OpAddFriendship, a, b); err != nil {
		return err
	}
	if a == b && !n.selfLoops {
		return opError(OpAddFriendship, ErrSelfLoop, a)
	}
	pa, pb := n.nodes[a], n.nodes[b]
	if pa.hasFriend(b) {
		return opError(OpAddFriendship, ErrAlreadyFriends, a, b)
	}
	n.seq++
	pa.link(b, n.seq)
	if a != b {
		pb.link(a, n.seq)
	}
	n.edges++
	return nil
}

// RemoveFriendship deletes the friendship between a and b.
// Returns ErrNotFound if either person is unregistered or ErrNotFriends if
// they are not friends.
func (n *Network) RemoveFriendship(a, b string) error {
	if err := n.requireAll(OpRemoveFriendship, a, b); err != nil {
		return err
	}
	pa, pb := n.nodes[a], n.nodes[b]
	if !pa.hasFriend(b) {
		return opError(OpRemoveFriendship, ErrNotFriends, a, b)
	}
	pa.unlink(b)
	if a != b {
		pb.unlink(a)
	}
	n.edges--
	return nil
}

// requireAll returns an ErrNotFound OpError naming every id that is not
// registered, or nil if all exist. Duplicate missing ids are reported once.
func (n *Network) requireAll(op string, ids ...string) error {
	var missing []string
	for _, id := range ids {
		if _, ok := n.nodes[id]; !ok && !slices.Contains(missing, id) {
			missing = append(missing, id)
		}
	}
	if len(missing) > 0 {
		return opError(op, ErrNotFound, missing...)
	}
	return nil
}

// Has reports whether a person with the given id is registered.
func (n *Network) Has(id string) bool {
	_, ok := n.nodes[id]
	return ok
}

// Len returns the number of people in the network.
func (n *Network) Len() int { return len(n.nodes) }

// FriendshipCount returns the number of friendships. Each undirected
// friendship counts once.
func (n *Network) FriendshipCount() int { return n.edges }

// People returns all registered identifiers in insertion order.
// The returned slice is a copy.
func (n *Network) People() []string { return slices.Clone(n.order) }

// Person returns a copy of the person with the given id.
func (n *Network) Person(id string) (Person, bool) {
	p, ok := n.nodes[id]
	if !ok {
		return Person{}, false
	}
	return Person{ID: p.id, Meta: maps.Clone(p.meta), Friends: slices.Clone(p.friends)}, true
}

// Neighbors returns a snapshot of the person's friends, in the order the
// friendships were created. Modifying the result does not affect the network.
// A person without friends gets an empty, non-nil slice.
func (n *Network) Neighbors(id string) ([]string, error) {
	p, ok := n.nodes[id]
	if !ok {
		return nil, opError(OpQuery, ErrNotFound, id)
	}
	return append(make([]string, 0, len(p.friends)), p.friends...), nil
}

// Degree returns the number of friends a person has.
func (n *Network) Degree(id string) (int, error) {
	p, ok := n.nodes[id]
	if !ok {
		return 0, opError(OpQuery, ErrNotFound, id)
	}
	return len(p.friends), nil
}

// AreFriends reports whether a and b are friends.
func (n *Network) AreFriends(a, b string) (bool, error) {
	if err := n.requireAll(OpQuery, a, b); err != nil {
		return false, err
	}
	return n.nodes[a].hasFriend(b), nil
}

// MutualFriends returns the people who are friends with both a and b.
// It walks the smaller friend list and probes the larger set, so it runs in
// O(min(|N(a)|, |N(b)|)). The result follows the smaller list's order.
func (n *Network) MutualFriends(a, b string) ([]string, error) {
	if err := n.requireAll(OpQuery, a, b); err != nil {
		return nil, err
	}
	small, large := n.nodes[a], n.nodes[b]
	if len(large.friends) < len(small.friends) {
		small, large = large, small
	}
	mutual := []string{}
	for _, f := range small.friends {
		if large.hasFriend(f) {
			mutual = append(mutual, f)
		}
	}
	return mutual, nil
}

// Friendships returns every friendship exactly once, in the order the
// friendships were created. Replaying them with AddFriendship into a network
// with the same people reproduces every friend list in the same order.
func (n *Network) Friendships() []Friendship {
	type entry struct {
		f   Friendship
		seq uint64
	}
	out := make([]entry, 0, n.edges)
	done := make(map[string]bool, len(n.nodes))
	for _, id := range n.order {
		p := n.nodes[id]
		for _, f := range p.friends {
			if !done[f] {
				out = append(out, entry{Friendship{A: id, B: f}, p.index[f]})
			}
		}
		done[id] = true
	}
	slices.SortFunc(out, func(a, b entry) int { return cmp.Compare(a.seq, b.seq) })

	edges := make([]Friendship, len(out))
	for i, e := range out {
		edges[i] = e.f
	}
	return edges
}

// Clone returns a deep copy of the network. Metadata maps are copied
// shallowly.
func (n *Network) Clone() *Network {
	c := &Network{
		nodes:     make(map[string]*node, len(n.nodes)),
		order:     slices.Clone(n.order),
		edges:     n.edges,
		seq:       n.seq,
		selfLoops: n.selfLoops,
	}
	for id, p := range n.nodes {
		c.nodes[id] = &node{
			id:      p.id,
			meta:    maps.Clone(p.meta),
			friends: slices.Clone(p.friends),
			index:   maps.Clone(p.index),
		}
	}
	return c
}

// Validate checks the structural invariants of the network and returns nil
// if they hold:
//
//  1. Every friend id is a registered person (ErrDanglingEdge)
//  2. Every friendship is symmetric (ErrAsymmetricEdge)
//  3. No self-loops unless allowed (ErrSelfLoop)
//
// The public API cannot break these invariants. Storage backends call
// Validate on every network they load.
func (n *Network) Validate() error {
	count := 0
	for _, id := range n.order {
		p := n.nodes[id]
		for _, f := range p.friends {
			q, ok := n.nodes[f]
			if !ok {
				return opError("validate", ErrDanglingEdge, id, f)
			}
			if f == id {
				if !n.selfLoops {
					return opError("validate", ErrSelfLoop, id)
				}
				count += 2
				continue
			}
			if !q.hasFriend(id) {
				return opError("validate", ErrAsymmetricEdge, id, f)
			}
			count++
		}
	}
	if count/2 != n.edges {
		return opError("validate", ErrAsymmetricEdge)
	}
	return nil
}
