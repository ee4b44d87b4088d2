package network

import (
	"errors"
	"slices"
	"testing"
)

func TestShortestPath(t *testing.T) {
	chain := func(t *testing.T) *Network {
		return build(t, []string{"A", "B", "C", "D"},
			[2]string{"A", "B"},
			[2]string{"B", "C"},
			[2]string{"C", "D"},
		)
	}

	tests := []struct {
		name   string
		net    func(t *testing.T) *Network
		a, b   string
		want   []string
		wantOK bool
	}{
		{name: "chain", net: chain, a: "A", b: "D", want: []string{"A", "B", "C", "D"}, wantOK: true},
		{name: "reverse chain", net: chain, a: "D", b: "A", want: []string{"D", "C", "B", "A"}, wantOK: true},
		{name: "self", net: chain, a: "B", b: "B", want: []string{"B"}, wantOK: true},
		{
			name:   "unreachable",
			net:    func(t *testing.T) *Network { return build(t, []string{"E", "F"}) },
			a:      "E",
			b:      "F",
			wantOK: false,
		},
		{
			name:   "shortcut wins",
			net:    func(t *testing.T) *Network { return referenceNetwork(t) },
			a:      "Jordan",
			b:      "Riley",
			want:   []string{"Jordan", "Taylor", "Riley"},
			wantOK: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := tt.net(t)
			path, ok, err := n.ShortestPath(tt.a, tt.b)
			if err != nil {
				t.Fatalf("ShortestPath: %v", err)
			}
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if !slices.Equal(path, tt.want) {
				t.Errorf("path = %v, want %v", path, tt.want)
			}

			connected, err := n.IsConnected(tt.a, tt.b)
			if err != nil {
				t.Fatal(err)
			}
			if connected != tt.wantOK {
				t.Errorf("IsConnected = %v, want %v", connected, tt.wantOK)
			}
		})
	}
}

func TestShortestPathNotFound(t *testing.T) {
	n := build(t, []string{"A"})
	_, _, err := n.ShortestPath("A", "Z")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("error = %v, want ErrNotFound", err)
	}
	if _, err := n.IsConnected("Y", "Z"); !slices.Equal(MissingIDs(err), []string{"Y", "Z"}) {
		t.Errorf("MissingIDs = %v, want [Y Z]", MissingIDs(err))
	}
}

func TestDistance(t *testing.T) {
	n := referenceNetwork(t)
	d, ok, err := n.Distance("Jordan", "Casey")
	if err != nil || !ok {
		t.Fatalf("Distance: %v %v", ok, err)
	}
	if d != 3 {
		t.Errorf("Distance(Jordan, Casey) = %d, want 3", d)
	}

	_ = n.AddPerson("Loner")
	if _, ok, _ := n.Distance("Alex", "Loner"); ok {
		t.Error("Loner should be unreachable")
	}
}

func TestWithin(t *testing.T) {
	n := referenceNetwork(t)

	got, err := n.Within("Jordan", 1)
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(got, []string{"Alex", "Taylor"}) {
		t.Errorf("Within(Jordan, 1) = %v", got)
	}

	got, _ = n.Within("Jordan", 2)
	if !slices.Equal(got, []string{"Alex", "Taylor", "Morgan", "Riley"}) {
		t.Errorf("Within(Jordan, 2) = %v", got)
	}

	got, _ = n.Within("Jordan", 0)
	if len(got) != 0 {
		t.Errorf("Within(Jordan, 0) = %v, want empty", got)
	}

	if _, err := n.Within("Johnny", 1); !errors.Is(err, ErrNotFound) {
		t.Errorf("error = %v", err)
	}
}

func TestComponents(t *testing.T) {
	n := build(t, []string{"A", "B", "C", "D", "E"},
		[2]string{"A", "C"},
		[2]string{"B", "D"},
	)

	got := n.Components()
	want := [][]string{{"A", "C"}, {"B", "D"}, {"E"}}
	if len(got) != len(want) {
		t.Fatalf("Components() = %v, want %v", got, want)
	}
	for i := range want {
		if !slices.Equal(got[i], want[i]) {
			t.Errorf("component %d = %v, want %v", i, got[i], want[i])
		}
	}

	if comps := New().Components(); len(comps) != 0 {
		t.Errorf("empty network has %d components", len(comps))
	}

	ref := referenceNetwork(t)
	if comps := ref.Components(); len(comps) != 1 || len(comps[0]) != 6 {
		t.Errorf("reference network components = %v", comps)
	}
}

func TestSuggest(t *testing.T) {
	n := referenceNetwork(t)

	got, err := n.Suggest("Jordan", 0)
	if err != nil {
		t.Fatal(err)
	}
	// Jordan's friends are Alex and Taylor. Morgan is reached through Alex,
	// Riley through Taylor.
	ids := make([]string, len(got))
	for i, s := range got {
		ids[i] = s.ID
	}
	if !slices.Equal(ids, []string{"Morgan", "Riley"}) {
		t.Errorf("Suggest(Jordan) = %v, want [Morgan Riley]", ids)
	}

	got, _ = n.Suggest("Casey", 0)
	if len(got) == 0 || got[0].ID != "Alex" && got[0].ID != "Taylor" {
		t.Fatalf("Suggest(Casey) = %v", got)
	}

	// Riley and Jordan share Taylor; Alex and Riley share Morgan and Taylor.
	got, _ = n.Suggest("Riley", 1)
	if len(got) != 1 || got[0].ID != "Alex" || len(got[0].Mutual) != 2 {
		t.Errorf("Suggest(Riley, 1) = %+v, want Alex with 2 mutual", got)
	}

	if _, err := n.Suggest("Johnny", 0); !errors.Is(err, ErrNotFound) {
		t.Errorf("error = %v", err)
	}
}
