package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/socialgraph/pkg/network"
)

// WriteJSON encodes a network as JSON and writes it to w.
// The output includes all people (with metadata) and friendships.
// This format can be re-imported with [ReadJSON] for round-trip processing.
func WriteJSON(n *network.Network, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(FromNetwork(n)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes a network to a JSON file at path.
// This is a convenience wrapper around [WriteJSON] for file-based output.
func ExportJSON(n *network.Network, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(n, f)
}

// WriteTOML encodes a network as a TOML roster. People with metadata are
// written as [[person]] tables, everyone else goes into the plain list.
func WriteTOML(n *network.Network, w io.Writer) error {
	r := FromNetwork(n)
	out := tomlRoster{Friendships: r.Friendships}
	for _, p := range r.People {
		if len(p.Meta) == 0 {
			out.Names = append(out.Names, p.ID)
			continue
		}
		out.People = append(out.People, p)
	}
	if err := toml.NewEncoder(w).Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}
