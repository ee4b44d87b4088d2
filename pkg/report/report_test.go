package report

import (
	"bytes"
	"encoding/json"
	"slices"
	"testing"

	"github.com/matzehuels/socialgraph/pkg/network"
)

func reference(t *testing.T) *network.Network {
	t.Helper()
	n := network.New()
	for _, id := range []string{"Alex", "Jordan", "Morgan", "Taylor", "Casey", "Riley"} {
		if err := n.AddPerson(id); err != nil {
			t.Fatal(err)
		}
	}
	edges := [][2]string{
		{"Alex", "Jordan"},
		{"Alex", "Morgan"},
		{"Jordan", "Taylor"},
		{"Jordan", "Johnny"},
		{"Morgan", "Casey"},
		{"Taylor", "Riley"},
		{"Casey", "Riley"},
		{"Morgan", "Riley"},
		{"Alex", "Taylor"},
	}
	for _, e := range edges {
		_ = n.AddFriendship(e[0], e[1])
	}
	return n
}

func TestWriteTextReference(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteText(&buf, reference(t)); err != nil {
		t.Fatal(err)
	}
	want := "Alex is friends with: Jordan, Morgan, Taylor\n" +
		"Jordan is friends with: Alex, Taylor\n" +
		"Morgan is friends with: Alex, Casey, Riley\n" +
		"Taylor is friends with: Jordan, Riley, Alex\n" +
		"Casey is friends with: Morgan, Riley\n" +
		"Riley is friends with: Taylor, Casey, Morgan\n"
	if got := buf.String(); got != want {
		t.Errorf("WriteText() =\n%s\nwant\n%s", got, want)
	}
}

func TestWriteTextSynchronized(t *testing.T) {
	s := network.NewSynchronized(nil)
	_ = s.AddPerson("Solo")
	lines := Lines(s)
	if !slices.Equal(lines, []string{"Solo is friends with: "}) {
		t.Errorf("Lines() = %q", lines)
	}
}

func TestSummarize(t *testing.T) {
	tests := []struct {
		name string
		net  func(t *testing.T) *network.Network
		want Summary
	}{
		{
			name: "empty",
			net:  func(*testing.T) *network.Network { return network.New() },
			want: Summary{MostConnected: []string{}, Isolated: []string{}},
		},
		{
			name: "reference",
			net:  reference,
			want: Summary{
				People:           6,
				Friendships:      8,
				Components:       1,
				LargestComponent: 6,
				AverageDegree:    16.0 / 6.0,
				MaxDegree:        3,
				MostConnected:    []string{"Alex", "Morgan", "Taylor", "Riley"},
				Isolated:         []string{},
			},
		},
		{
			name: "split",
			net: func(t *testing.T) *network.Network {
				n := network.New()
				for _, id := range []string{"A", "B", "C"} {
					_ = n.AddPerson(id)
				}
				_ = n.AddFriendship("A", "B")
				return n
			},
			want: Summary{
				People:           3,
				Friendships:      1,
				Components:       2,
				LargestComponent: 2,
				AverageDegree:    2.0 / 3.0,
				MaxDegree:        1,
				MostConnected:    []string{"A", "B"},
				Isolated:         []string{"C"},
				Groups:           [][]string{{"A", "B"}, {"C"}},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Summarize(tt.net(t))
			if got.People != tt.want.People || got.Friendships != tt.want.Friendships ||
				got.Components != tt.want.Components || got.LargestComponent != tt.want.LargestComponent ||
				got.MaxDegree != tt.want.MaxDegree || got.AverageDegree != tt.want.AverageDegree {
				t.Errorf("Summarize() = %+v, want %+v", got, tt.want)
			}
			if !slices.Equal(got.MostConnected, tt.want.MostConnected) {
				t.Errorf("MostConnected = %v, want %v", got.MostConnected, tt.want.MostConnected)
			}
			if !slices.Equal(got.Isolated, tt.want.Isolated) {
				t.Errorf("Isolated = %v, want %v", got.Isolated, tt.want.Isolated)
			}
			if !slices.EqualFunc(got.Groups, tt.want.Groups, slices.Equal[[]string]) {
				t.Errorf("Groups = %v, want %v", got.Groups, tt.want.Groups)
			}
		})
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, reference(t)); err != nil {
		t.Fatal(err)
	}
	var doc Document
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if doc.Summary.People != 6 || len(doc.Order) != 6 {
		t.Errorf("doc = %+v", doc)
	}
	if !slices.Equal(doc.Friends["Jordan"], []string{"Alex", "Taylor"}) {
		t.Errorf("Jordan = %v", doc.Friends["Jordan"])
	}
}

func TestWriteJSONFriendlessPerson(t *testing.T) {
	n := network.New()
	if err := n.AddPerson("Solo"); err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := WriteJSON(&buf, n); err != nil {
		t.Fatal(err)
	}
	var doc struct {
		Friends map[string]json.RawMessage `json:"friends"`
	}
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got := string(doc.Friends["Solo"]); got != "[]" {
		t.Errorf("Solo = %s, want []", got)
	}
}
