package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// tomlRoster mirrors the TOML layout: a plain name list plus [[person]] and
// [[friendship]] tables.
type tomlRoster struct {
	Names       []string     `toml:"people,omitempty"`
	People      []Person     `toml:"person,omitempty"`
	Friendships []Friendship `toml:"friendship,omitempty"`
}

// ReadJSON decodes a JSON roster from r.
//
// The input must be a JSON object with "people" and "friendships" arrays:
//
//	{
//	  "people": [{"id": "Alex"}, {"id": "Jordan"}],
//	  "friendships": [{"a": "Alex", "b": "Jordan"}]
//	}
//
// ReadJSON only checks syntax. Semantic problems such as unknown people or
// duplicate friendships surface when the roster is passed to [Apply].
// ReadJSON does not close r.
func ReadJSON(r io.Reader) (Roster, error) {
	var out Roster
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&out); err != nil {
		return Roster{}, fmt.Errorf("decode: %w", err)
	}
	return out, nil
}

// ReadTOML decodes a TOML roster from r. Names from the plain people list
// come first, followed by [[person]] tables in file order.
func ReadTOML(r io.Reader) (Roster, error) {
	var raw tomlRoster
	md, err := toml.NewDecoder(r).Decode(&raw)
	if err != nil {
		return Roster{}, fmt.Errorf("decode: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Roster{}, fmt.Errorf("decode: unknown key %q", undecoded[0].String())
	}

	out := Roster{
		People:      make([]Person, 0, len(raw.Names)+len(raw.People)),
		Friendships: raw.Friendships,
	}
	for _, name := range raw.Names {
		out.People = append(out.People, Person{ID: name})
	}
	out.People = append(out.People, raw.People...)
	return out, nil
}

// ImportJSON reads a JSON roster file at path.
func ImportJSON(path string) (Roster, error) {
	f, err := os.Open(path)
	if err != nil {
		return Roster{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}

// ImportFile reads a roster file, picking the decoder from the extension:
// .toml for TOML, anything else for JSON.
func ImportFile(path string) (Roster, error) {
	if !strings.EqualFold(filepath.Ext(path), ".toml") {
		return ImportJSON(path)
	}
	f, err := os.Open(path)
	if err != nil {
		return Roster{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	r, err := ReadTOML(f)
	if err != nil {
		return Roster{}, fmt.Errorf("%s: %w", path, err)
	}
	return r, nil
}
