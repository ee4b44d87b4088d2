// Package report renders a social network for people to read.
//
// [WriteText] produces the adjacency listing, one line per person in
// insertion order:
//
//	Alex is friends with: Jordan, Morgan, Taylor
//	Jordan is friends with: Alex, Taylor
//
// [Summarize] computes aggregate statistics that [WriteJSON] and the CLI
// display.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/matzehuels/socialgraph/pkg/network"
)

// Source is the read surface the text report needs. Both *network.Network
// and *network.Synchronized satisfy it; callers sharing a Synchronized
// network should render inside View for a consistent listing.
type Source interface {
	People() []string
	Neighbors(id string) ([]string, error)
}

// WriteText writes "<name> is friends with: a, b" for every person.
// People without friends get an empty list.
func WriteText(w io.Writer, src Source) error {
	for _, id := range src.People() {
		friends, err := src.Neighbors(id)
		if err != nil {
			return fmt.Errorf("neighbors of %s: %w", id, err)
		}
		if _, err := fmt.Fprintf(w, "%s is friends with: %s\n", id, strings.Join(friends, ", ")); err != nil {
			return err
		}
	}
	return nil
}

// Summary holds aggregate statistics for a network.
type Summary struct {
	People           int        `json:"people"`
	Friendships      int        `json:"friendships"`
	Components       int        `json:"components"`
	LargestComponent int        `json:"largest_component"`
	AverageDegree    float64    `json:"average_degree"`
	MaxDegree        int        `json:"max_degree"`
	MostConnected    []string   `json:"most_connected"`
	Isolated         []string   `json:"isolated"`
	Groups           [][]string `json:"groups,omitempty"`
}

// Summarize computes a Summary. MostConnected lists everyone sharing the
// maximum degree and Isolated everyone without friends, both in insertion
// order. Groups is only filled when the network has more than one
// component.
func Summarize(n *network.Network) Summary {
	s := Summary{
		People:        n.Len(),
		Friendships:   n.FriendshipCount(),
		MostConnected: []string{},
		Isolated:      []string{},
	}

	total := 0
	for _, id := range n.People() {
		d, _ := n.Degree(id)
		total += d
		switch {
		case d == 0:
			s.Isolated = append(s.Isolated, id)
		case d > s.MaxDegree:
			s.MaxDegree = d
			s.MostConnected = []string{id}
		case d == s.MaxDegree:
			s.MostConnected = append(s.MostConnected, id)
		}
	}
	if s.People > 0 {
		s.AverageDegree = float64(total) / float64(s.People)
	}

	comps := n.Components()
	s.Components = len(comps)
	for _, c := range comps {
		s.LargestComponent = max(s.LargestComponent, len(c))
	}
	if len(comps) > 1 {
		s.Groups = comps
	}
	return s
}

// Document is the JSON report: summary plus the full adjacency listing.
type Document struct {
	Summary Summary             `json:"summary"`
	Friends map[string][]string `json:"friends"`
	Order   []string            `json:"order"`
}

// WriteJSON writes the summary and adjacency of n as indented JSON.
func WriteJSON(w io.Writer, n *network.Network) error {
	doc := Document{
		Summary: Summarize(n),
		Friends: make(map[string][]string, n.Len()),
		Order:   n.People(),
	}
	for _, id := range doc.Order {
		friends, _ := n.Neighbors(id)
		doc.Friends[id] = friends
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// Lines returns the text report as individual lines, without trailing
// newlines.
func Lines(src Source) []string {
	var b strings.Builder
	_ = WriteText(&b, src)
	return slices.DeleteFunc(strings.Split(b.String(), "\n"), func(s string) bool { return s == "" })
}
