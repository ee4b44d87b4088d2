package network

import (
	"errors"
	"slices"
	"testing"
)

// referenceNetwork builds the six-person demo network used throughout the
// tests, including the failed friendship with Johnny.
func referenceNetwork(t *testing.T) *Network {
	t.Helper()
	n := New()
	for _, id := range []string{"Alex", "Jordan", "Morgan", "Taylor", "Casey", "Riley"} {
		if err := n.AddPerson(id); err != nil {
			t.Fatalf("AddPerson(%q): %v", id, err)
		}
	}
	edges := [][2]string{
		{"Alex", "Jordan"},
		{"Alex", "Morgan"},
		{"Jordan", "Taylor"},
		{"Morgan", "Casey"},
		{"Taylor", "Riley"},
		{"Casey", "Riley"},
		{"Morgan", "Riley"},
		{"Alex", "Taylor"},
	}
	for _, e := range edges {
		if err := n.AddFriendship(e[0], e[1]); err != nil {
			t.Fatalf("AddFriendship(%q, %q): %v", e[0], e[1], err)
		}
	}
	return n
}

func build(t *testing.T, people []string, edges ...[2]string) *Network {
	t.Helper()
	n := New()
	for _, id := range people {
		if err := n.AddPerson(id); err != nil {
			t.Fatalf("AddPerson(%q): %v", id, err)
		}
	}
	for _, e := range edges {
		if err := n.AddFriendship(e[0], e[1]); err != nil {
			t.Fatalf("AddFriendship(%q, %q): %v", e[0], e[1], err)
		}
	}
	return n
}

func assertInvariants(t *testing.T, n *Network) {
	t.Helper()
	if err := n.Validate(); err != nil {
		t.Fatalf("Validate() = %v", err)
	}
	people := n.People()
	for _, a := range people {
		friends, err := n.Neighbors(a)
		if err != nil {
			t.Fatalf("Neighbors(%q): %v", a, err)
		}
		for _, b := range friends {
			if !slices.Contains(people, b) {
				t.Errorf("%s has dangling friend %s", a, b)
			}
			back, _ := n.Neighbors(b)
			if !slices.Contains(back, a) {
				t.Errorf("%s lists %s but not vice versa", a, b)
			}
		}
	}
}

func TestReferenceScenario(t *testing.T) {
	n := referenceNetwork(t)

	err := n.AddFriendship("Jordan", "Johnny")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("AddFriendship(Jordan, Johnny) error = %v, want ErrNotFound", err)
	}
	if got := MissingIDs(err); !slices.Equal(got, []string{"Johnny"}) {
		t.Errorf("MissingIDs = %v, want [Johnny]", got)
	}

	friends, _ := n.Neighbors("Jordan")
	if !slices.Equal(friends, []string{"Alex", "Taylor"}) {
		t.Errorf("Neighbors(Jordan) = %v, want [Alex Taylor]", friends)
	}
	if n.FriendshipCount() != 8 {
		t.Errorf("FriendshipCount() = %d, want 8", n.FriendshipCount())
	}
	assertInvariants(t, n)
}

func TestAddPerson(t *testing.T) {
	n := New()
	if err := n.AddPerson("Alex"); err != nil {
		t.Fatalf("AddPerson: %v", err)
	}

	before := n.People()
	err := n.AddPerson("Alex")
	if !errors.Is(err, ErrAlreadyExists) {
		t.Fatalf("second AddPerson error = %v, want ErrAlreadyExists", err)
	}
	if !slices.Equal(n.People(), before) {
		t.Errorf("People() changed after failed add: %v", n.People())
	}
	if n.Len() != 1 {
		t.Errorf("Len() = %d, want 1", n.Len())
	}

	if err := n.AddPerson(""); !errors.Is(err, ErrInvalidID) {
		t.Errorf("AddPerson(\"\") error = %v, want ErrInvalidID", err)
	}

	// Identifiers are case-sensitive.
	if err := n.AddPerson("alex"); err != nil {
		t.Errorf("AddPerson(alex): %v", err)
	}
}

func TestAddPersonWithMeta(t *testing.T) {
	n := New()
	meta := Metadata{"city": "Lisbon"}
	if err := n.AddPersonWithMeta("Alex", meta); err != nil {
		t.Fatal(err)
	}
	meta["city"] = "Porto"

	p, ok := n.Person("Alex")
	if !ok {
		t.Fatal("Person(Alex) not found")
	}
	if p.Meta["city"] != "Lisbon" {
		t.Errorf("meta city = %v, want Lisbon (caller map must be copied)", p.Meta["city"])
	}

	_ = n.AddPerson("Jordan")
	q, _ := n.Person("Jordan")
	if q.Meta == nil {
		t.Error("Meta should never be nil")
	}
}

func TestAddFriendshipErrors(t *testing.T) {
	tests := []struct {
		name    string
		a, b    string
		want    error
		missing []string
	}{
		{name: "first missing", a: "X", b: "A", want: ErrNotFound, missing: []string{"X"}},
		{name: "second missing", a: "A", b: "Y", want: ErrNotFound, missing: []string{"Y"}},
		{name: "both missing", a: "X", b: "Y", want: ErrNotFound, missing: []string{"X", "Y"}},
		{name: "same missing", a: "X", b: "X", want: ErrNotFound, missing: []string{"X"}},
		{name: "self loop", a: "A", b: "A", want: ErrSelfLoop},
		{name: "duplicate", a: "A", b: "B", want: ErrAlreadyFriends},
		{name: "duplicate reversed", a: "B", b: "A", want: ErrAlreadyFriends},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := build(t, []string{"A", "B"}, [2]string{"A", "B"})
			err := n.AddFriendship(tt.a, tt.b)
			if !errors.Is(err, tt.want) {
				t.Fatalf("error = %v, want %v", err, tt.want)
			}
			if tt.missing != nil && !slices.Equal(MissingIDs(err), tt.missing) {
				t.Errorf("MissingIDs = %v, want %v", MissingIDs(err), tt.missing)
			}
			if n.FriendshipCount() != 1 {
				t.Errorf("FriendshipCount() = %d, want 1", n.FriendshipCount())
			}
			assertInvariants(t, n)
		})
	}
}

func TestSelfLoopsAllowed(t *testing.T) {
	n := New(WithSelfLoops(true))
	_ = n.AddPerson("A")
	if err := n.AddFriendship("A", "A"); err != nil {
		t.Fatalf("AddFriendship(A, A): %v", err)
	}
	friends, _ := n.Neighbors("A")
	if !slices.Equal(friends, []string{"A"}) {
		t.Errorf("Neighbors(A) = %v, want [A]", friends)
	}
	if err := n.AddFriendship("A", "A"); !errors.Is(err, ErrAlreadyFriends) {
		t.Errorf("duplicate self loop error = %v", err)
	}
	assertInvariants(t, n)

	if err := n.RemovePerson("A"); err != nil {
		t.Fatal(err)
	}
	if n.FriendshipCount() != 0 {
		t.Errorf("FriendshipCount() = %d after removal, want 0", n.FriendshipCount())
	}
}

func TestRemovePersonCascade(t *testing.T) {
	n := build(t, []string{"X", "Y", "Z"},
		[2]string{"X", "Y"},
		[2]string{"X", "Z"},
		[2]string{"Y", "Z"},
	)

	if err := n.RemovePerson("X"); err != nil {
		t.Fatalf("RemovePerson(X): %v", err)
	}

	for _, id := range []string{"Y", "Z"} {
		friends, _ := n.Neighbors(id)
		if slices.Contains(friends, "X") {
			t.Errorf("Neighbors(%s) still contains X: %v", id, friends)
		}
	}
	if n.Has("X") {
		t.Error("X should be gone")
	}
	if n.FriendshipCount() != 1 {
		t.Errorf("FriendshipCount() = %d, want 1", n.FriendshipCount())
	}
	if !slices.Equal(n.People(), []string{"Y", "Z"}) {
		t.Errorf("People() = %v", n.People())
	}
	assertInvariants(t, n)

	if err := n.RemovePerson("X"); !errors.Is(err, ErrNotFound) {
		t.Errorf("second RemovePerson error = %v, want ErrNotFound", err)
	}

	// The name can be reused and starts with no friends.
	if err := n.AddPerson("X"); err != nil {
		t.Fatal(err)
	}
	if d, _ := n.Degree("X"); d != 0 {
		t.Errorf("Degree(X) = %d, want 0", d)
	}
}

func TestRemoveFriendship(t *testing.T) {
	n := build(t, []string{"A", "B", "C"}, [2]string{"A", "B"})

	if err := n.RemoveFriendship("B", "A"); err != nil {
		t.Fatalf("RemoveFriendship: %v", err)
	}
	if ok, _ := n.AreFriends("A", "B"); ok {
		t.Error("A and B should no longer be friends")
	}
	if err := n.RemoveFriendship("A", "B"); !errors.Is(err, ErrNotFriends) {
		t.Errorf("error = %v, want ErrNotFriends", err)
	}
	if err := n.RemoveFriendship("A", "Q"); !errors.Is(err, ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
	if n.FriendshipCount() != 0 {
		t.Errorf("FriendshipCount() = %d, want 0", n.FriendshipCount())
	}
	assertInvariants(t, n)
}

func TestNeighborsSnapshot(t *testing.T) {
	n := build(t, []string{"A", "B"}, [2]string{"A", "B"})
	friends, _ := n.Neighbors("A")
	friends[0] = "mutated"
	_ = append(friends, "extra")

	again, _ := n.Neighbors("A")
	if !slices.Equal(again, []string{"B"}) {
		t.Errorf("Neighbors(A) = %v after caller mutation", again)
	}

	people := n.People()
	people[0] = "mutated"
	if n.People()[0] != "A" {
		t.Error("People() must return a copy")
	}

	if _, err := n.Neighbors("nobody"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Neighbors(nobody) error = %v", err)
	}
}

func TestNeighborsOfFriendlessPerson(t *testing.T) {
	n := build(t, []string{"Solo"})
	friends, err := n.Neighbors("Solo")
	if err != nil {
		t.Fatal(err)
	}
	if friends == nil || len(friends) != 0 {
		t.Errorf("Neighbors(Solo) = %#v, want empty non-nil slice", friends)
	}
}

func TestValidateDetectsCorruption(t *testing.T) {
	tests := []struct {
		name    string
		corrupt func(n *Network)
		want    error
	}{
		{
			name:    "unknown friend",
			corrupt: func(n *Network) { n.nodes["A"].link("Ghost", 99) },
			want:    ErrDanglingEdge,
		},
		{
			name:    "one-sided friendship",
			corrupt: func(n *Network) { n.nodes["A"].link("C", 99) },
			want:    ErrAsymmetricEdge,
		},
		{
			name:    "edge count drift",
			corrupt: func(n *Network) { n.edges++ },
			want:    ErrAsymmetricEdge,
		},
		{
			name:    "self-loop when disallowed",
			corrupt: func(n *Network) { n.nodes["A"].link("A", 99) },
			want:    ErrSelfLoop,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := build(t, []string{"A", "B", "C"}, [2]string{"A", "B"})
			if err := n.Validate(); err != nil {
				t.Fatalf("Validate() before corruption = %v", err)
			}
			tt.corrupt(n)
			if err := n.Validate(); !errors.Is(err, tt.want) {
				t.Errorf("Validate() = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestMutualFriends(t *testing.T) {
	n := build(t, []string{"A", "B", "C", "D"},
		[2]string{"A", "B"},
		[2]string{"A", "C"},
		[2]string{"B", "C"},
		[2]string{"B", "D"},
	)

	got, err := n.MutualFriends("A", "B")
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(got, []string{"C"}) {
		t.Errorf("MutualFriends(A, B) = %v, want [C]", got)
	}

	got, _ = n.MutualFriends("A", "D")
	if !slices.Equal(got, []string{"B"}) {
		t.Errorf("MutualFriends(A, D) = %v, want [B]", got)
	}

	got, _ = n.MutualFriends("C", "D")
	if !slices.Equal(got, []string{"B"}) {
		t.Errorf("MutualFriends(C, D) = %v, want [B]", got)
	}

	if _, err := n.MutualFriends("A", "Z"); !errors.Is(err, ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestFriendships(t *testing.T) {
	n := referenceNetwork(t)
	got := n.Friendships()
	want := []Friendship{
		{"Alex", "Jordan"},
		{"Alex", "Morgan"},
		{"Jordan", "Taylor"},
		{"Morgan", "Casey"},
		{"Taylor", "Riley"},
		{"Casey", "Riley"},
		{"Morgan", "Riley"},
		{"Alex", "Taylor"},
	}
	if !slices.Equal(got, want) {
		t.Errorf("Friendships() =\n%v\nwant\n%v", got, want)
	}
}

func TestClone(t *testing.T) {
	n := referenceNetwork(t)
	c := n.Clone()

	if err := c.RemovePerson("Alex"); err != nil {
		t.Fatal(err)
	}
	if !n.Has("Alex") {
		t.Error("removing from clone affected original")
	}
	friends, _ := n.Neighbors("Jordan")
	if !slices.Contains(friends, "Alex") {
		t.Error("original lost Jordan-Alex friendship")
	}
	assertInvariants(t, n)
	assertInvariants(t, c)
}

func TestQueriesDoNotMutate(t *testing.T) {
	n := referenceNetwork(t)
	before := n.Friendships()
	people := n.People()

	_, _ = n.MutualFriends("Alex", "Riley")
	_, _, _ = n.ShortestPath("Alex", "Riley")
	_, _ = n.IsConnected("Jordan", "Casey")
	_ = n.Components()
	_, _ = n.Suggest("Alex", 0)
	_, _ = n.Within("Alex", 2)

	if !slices.Equal(n.Friendships(), before) {
		t.Error("friendships changed after queries")
	}
	if !slices.Equal(n.People(), people) {
		t.Error("people changed after queries")
	}
}

func TestOpErrorMessage(t *testing.T) {
	n := build(t, []string{"Jordan"})
	err := n.AddFriendship("Jordan", "Johnny")
	want := "add friendship: person does not exist: Johnny"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
	if got := IDs(err); !slices.Equal(got, []string{"Johnny"}) {
		t.Errorf("IDs = %v", got)
	}
	if MissingIDs(errors.New("plain")) != nil {
		t.Error("MissingIDs should be nil for foreign errors")
	}
}

func TestFriendshipsReplayPreservesOrder(t *testing.T) {
	n := build(t, []string{"A", "B", "C", "D"},
		[2]string{"B", "C"},
		[2]string{"D", "B"},
		[2]string{"A", "B"},
		[2]string{"C", "A"},
	)
	if err := n.RemoveFriendship("D", "B"); err != nil {
		t.Fatal(err)
	}
	_ = n.AddFriendship("B", "D")

	replay := New()
	for _, id := range n.People() {
		_ = replay.AddPerson(id)
	}
	for _, f := range n.Friendships() {
		if err := replay.AddFriendship(f.A, f.B); err != nil {
			t.Fatalf("replay %v: %v", f, err)
		}
	}
	for _, id := range n.People() {
		want, _ := n.Neighbors(id)
		got, _ := replay.Neighbors(id)
		if !slices.Equal(got, want) {
			t.Errorf("Neighbors(%s) after replay = %v, want %v", id, got, want)
		}
	}
}
