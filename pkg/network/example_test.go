package network_test

import (
	"errors"
	"fmt"

	"github.com/matzehuels/socialgraph/pkg/network"
)

func ExampleNetwork_basic() {
	n := network.New()
	_ = n.AddPerson("Alex")
	_ = n.AddPerson("Jordan")
	_ = n.AddPerson("Taylor")
	_ = n.AddFriendship("Alex", "Jordan")
	_ = n.AddFriendship("Jordan", "Taylor")

	friends, _ := n.Neighbors("Jordan")
	fmt.Println("People:", n.Len())
	fmt.Println("Friendships:", n.FriendshipCount())
	fmt.Println("Jordan's friends:", friends)
	// Output:
	// People: 3
	// Friendships: 2
	// Jordan's friends: [Alex Taylor]
}

func ExampleNetwork_AddFriendship_missing() {
	n := network.New()
	_ = n.AddPerson("Jordan")

	err := n.AddFriendship("Jordan", "Johnny")
	if errors.Is(err, network.ErrNotFound) {
		fmt.Println("Friendship not created:", network.MissingIDs(err)[0], "does not exist")
	}
	// Output:
	// Friendship not created: Johnny does not exist
}

func ExampleNetwork_MutualFriends() {
	n := network.New()
	for _, id := range []string{"A", "B", "C", "D"} {
		_ = n.AddPerson(id)
	}
	_ = n.AddFriendship("A", "B")
	_ = n.AddFriendship("A", "C")
	_ = n.AddFriendship("B", "C")
	_ = n.AddFriendship("B", "D")

	mutual, _ := n.MutualFriends("A", "B")
	fmt.Println(mutual)
	// Output:
	// [C]
}

func ExampleNetwork_ShortestPath() {
	n := network.New()
	for _, id := range []string{"A", "B", "C", "D", "E"} {
		_ = n.AddPerson(id)
	}
	_ = n.AddFriendship("A", "B")
	_ = n.AddFriendship("B", "C")
	_ = n.AddFriendship("C", "D")

	path, ok, _ := n.ShortestPath("A", "D")
	fmt.Println(path, ok)

	path, ok, _ = n.ShortestPath("A", "E")
	fmt.Println(path, ok)
	// Output:
	// [A B C D] true
	// [] false
}

func ExampleNetwork_Components() {
	n := network.New()
	for _, id := range []string{"A", "B", "C"} {
		_ = n.AddPerson(id)
	}
	_ = n.AddFriendship("A", "C")

	fmt.Println(n.Components())
	// Output:
	// [[A C] [B]]
}
