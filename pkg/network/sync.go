package network

import "sync"

// Synchronized wraps a Network with a reader-writer lock so it can be shared
// between goroutines. Mutations take the write lock; queries take the read
// lock, so a breadth-first search never observes a half-applied mutation.
//
// Use View and Update to run several operations under a single lock.
type Synchronized struct {
	mu  sync.RWMutex
	net *Network
}

// NewSynchronized wraps n. The caller must not use n directly afterwards.
// A nil n is replaced by an empty network.
func NewSynchronized(n *Network) *Synchronized {
	if n == nil {
		n = New()
	}
	return &Synchronized{net: n}
}

// View runs fn with the read lock held. fn must not mutate the network.
func (s *Synchronized) View(fn func(n *Network) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(s.net)
}

// Update runs fn with the write lock held.
func (s *Synchronized) Update(fn func(n *Network) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.net)
}

// Snapshot returns a deep copy of the current network.
func (s *Synchronized) Snapshot() *Network {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.net.Clone()
}

// Replace swaps in a new network, for example after loading a snapshot.
func (s *Synchronized) Replace(n *Network) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.net = n
}

func (s *Synchronized) AddPerson(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.net.AddPerson(id)
}

func (s *Synchronized) AddPersonWithMeta(id string, meta Metadata) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.net.AddPersonWithMeta(id, meta)
}

func (s *Synchronized) RemovePerson(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.net.RemovePerson(id)
}

func (s *Synchronized) AddFriendship(a, b string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.net.AddFriendship(a, b)
}

func (s *Synchronized) RemoveFriendship(a, b string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.net.RemoveFriendship(a, b)
}

func (s *Synchronized) Has(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.net.Has(id)
}

func (s *Synchronized) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.net.Len()
}

func (s *Synchronized) FriendshipCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.net.FriendshipCount()
}

func (s *Synchronized) People() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.net.People()
}

func (s *Synchronized) Person(id string) (Person, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.net.Person(id)
}

func (s *Synchronized) Neighbors(id string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.net.Neighbors(id)
}

func (s *Synchronized) MutualFriends(a, b string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.net.MutualFriends(a, b)
}

func (s *Synchronized) IsConnected(a, b string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.net.IsConnected(a, b)
}

func (s *Synchronized) ShortestPath(a, b string) ([]string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.net.ShortestPath(a, b)
}

func (s *Synchronized) Components() [][]string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.net.Components()
}

func (s *Synchronized) Suggest(id string, limit int) ([]Suggestion, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.net.Suggest(id, limit)
}
