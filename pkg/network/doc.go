// Package network provides an in-memory undirected social graph.
//
// # Overview
//
// People are nodes identified by unique, case-sensitive names. Friendships
// are symmetric edges: if B is a friend of A then A is a friend of B, at
// every point a caller can observe. The registry owns every person and
// stores friendships as identifier sets, so there are no reference cycles
// between nodes.
//
// # Basic Usage
//
// Create a network with [New], register people with [Network.AddPerson] and
// connect them with [Network.AddFriendship]:
//
//	n := network.New()
//	_ = n.AddPerson("Alex")
//	_ = n.AddPerson("Jordan")
//	_ = n.AddFriendship("Alex", "Jordan")
//
// Query the graph with [Network.Neighbors], [Network.MutualFriends],
// [Network.IsConnected], [Network.ShortestPath] and [Network.Components].
// Reachability queries use breadth-first search and never modify the
// network.
//
// # Errors
//
// Every failure is reported, never swallowed. Mutations return an [OpError]
// wrapping one of the sentinel errors ([ErrAlreadyExists], [ErrNotFound],
// [ErrSelfLoop], [ErrAlreadyFriends], [ErrNotFriends]), so callers can use
// errors.Is to branch on the condition and [MissingIDs] to learn which
// people were missing:
//
//	if err := n.AddFriendship("Jordan", "Johnny"); errors.Is(err, network.ErrNotFound) {
//	    fmt.Println("missing:", network.MissingIDs(err))
//	}
//
// A failed mutation never leaves partial state behind.
//
// # Ordering
//
// [Network.People] returns people in insertion order and
// [Network.Neighbors] returns friends in the order the friendships were
// created, so reports built on top of the network are reproducible.
//
// # Concurrency
//
// Network instances are not safe for concurrent use. [Synchronized] wraps a
// network with a reader-writer lock: queries may run in parallel with each
// other, mutations are exclusive.
package network
