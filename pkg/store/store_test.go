package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"

	apperrors "github.com/matzehuels/socialgraph/pkg/errors"
	"github.com/matzehuels/socialgraph/pkg/network"
)

func sample(t *testing.T) *network.Network {
	t.Helper()
	n := network.New()
	_ = n.AddPersonWithMeta("Alex", network.Metadata{"city": "Lisbon"})
	for _, id := range []string{"Jordan", "Taylor", "Sam"} {
		if err := n.AddPerson(id); err != nil {
			t.Fatal(err)
		}
	}
	_ = n.AddFriendship("Jordan", "Taylor")
	_ = n.AddFriendship("Alex", "Jordan")
	_ = n.AddFriendship("Taylor", "Alex")
	return n
}

func assertSameNetwork(t *testing.T, got, want *network.Network) {
	t.Helper()
	if !slices.Equal(got.People(), want.People()) {
		t.Fatalf("People() = %v, want %v", got.People(), want.People())
	}
	for _, id := range want.People() {
		w, _ := want.Neighbors(id)
		g, _ := got.Neighbors(id)
		if !slices.Equal(g, w) {
			t.Errorf("Neighbors(%s) = %v, want %v", id, g, w)
		}
	}
}

func TestFileStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	st, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer st.Close()

	n := sample(t)
	snap, err := st.Save(ctx, "demo", n)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if snap.Name != "demo" || snap.People != 4 || snap.Friendships != 3 || snap.ID == "" {
		t.Errorf("snapshot = %+v", snap)
	}
	if snap.SavedAt.IsZero() {
		t.Error("SavedAt not set")
	}

	got, err := st.Load(ctx, "demo")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	assertSameNetwork(t, got, n)
	if p, _ := got.Person("Alex"); p.Meta["city"] != "Lisbon" {
		t.Errorf("Alex meta = %v", p.Meta)
	}
	if err := got.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestFileStoreKeepsEngineNames(t *testing.T) {
	ctx := context.Background()
	st, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer st.Close()

	long := strings.Repeat("x", 300)
	n := network.New()
	for _, id := range []string{" Alex", "Sam\tLee", long} {
		if err := n.AddPerson(id); err != nil {
			t.Fatalf("AddPerson(%q): %v", id, err)
		}
	}
	if err := n.AddFriendship(" Alex", "Sam\tLee"); err != nil {
		t.Fatal(err)
	}

	if _, err := st.Save(ctx, "demo", n); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := st.Load(ctx, "demo")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	assertSameNetwork(t, got, n)
}

func TestFileStoreOverwrite(t *testing.T) {
	ctx := context.Background()
	st, _ := NewFileStore(t.TempDir())

	first, _ := st.Save(ctx, "demo", sample(t))
	second, err := st.Save(ctx, "demo", network.New())
	if err != nil {
		t.Fatal(err)
	}
	if first.ID == second.ID {
		t.Error("each save should get a fresh ID")
	}
	got, _ := st.Load(ctx, "demo")
	if got.Len() != 0 {
		t.Errorf("Len() = %d, want 0 after overwrite", got.Len())
	}
}

func TestFileStoreSelfLoops(t *testing.T) {
	ctx := context.Background()
	st, _ := NewFileStore(t.TempDir())

	n := network.New(network.WithSelfLoops(true))
	_ = n.AddPerson("Narcissus")
	_ = n.AddFriendship("Narcissus", "Narcissus")
	if _, err := st.Save(ctx, "mirror", n); err != nil {
		t.Fatal(err)
	}
	got, err := st.Load(ctx, "mirror")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !got.AllowsSelfLoops() || got.FriendshipCount() != 1 {
		t.Errorf("self-loop network not restored: loops=%v count=%d", got.AllowsSelfLoops(), got.FriendshipCount())
	}
}

func TestFileStoreNotFound(t *testing.T) {
	ctx := context.Background()
	st, _ := NewFileStore(t.TempDir())

	_, err := st.Load(ctx, "missing")
	if !errors.Is(err, ErrSnapshotNotFound) {
		t.Errorf("Load(missing) = %v, want ErrSnapshotNotFound", err)
	}
	if apperrors.GetCode(err) != apperrors.ErrCodeSnapshotNotFound {
		t.Errorf("code = %v", apperrors.GetCode(err))
	}
	if err := st.Delete(ctx, "missing"); !errors.Is(err, ErrSnapshotNotFound) {
		t.Errorf("Delete(missing) = %v, want ErrSnapshotNotFound", err)
	}
}

func TestFileStoreInvalidName(t *testing.T) {
	ctx := context.Background()
	st, _ := NewFileStore(t.TempDir())

	for _, name := range []string{"", "../escape", "a/b", ".hidden"} {
		if _, err := st.Save(ctx, name, network.New()); apperrors.GetCode(err) != apperrors.ErrCodeInvalidName {
			t.Errorf("Save(%q) = %v, want invalid name", name, err)
		}
		if _, err := st.Load(ctx, name); apperrors.GetCode(err) != apperrors.ErrCodeInvalidName {
			t.Errorf("Load(%q) = %v, want invalid name", name, err)
		}
	}
}

func TestFileStoreListAndDelete(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	st, _ := NewFileStore(dir)

	if list, err := st.List(ctx); err != nil || len(list) != 0 {
		t.Fatalf("List() on empty store = %v, %v", list, err)
	}

	for _, name := range []string{"zeta", "alpha", "mid"} {
		if _, err := st.Save(ctx, name, sample(t)); err != nil {
			t.Fatal(err)
		}
	}
	// Garbage in the directory is ignored.
	_ = os.WriteFile(filepath.Join(dir, "broken.json"), []byte("{"), 0o600)
	_ = os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("hi"), 0o600)

	list, err := st.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, s := range list {
		names = append(names, s.Name)
	}
	if !slices.Equal(names, []string{"alpha", "mid", "zeta"}) {
		t.Errorf("List() names = %v", names)
	}

	if err := st.Delete(ctx, "mid"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := st.Load(ctx, "mid"); !errors.Is(err, ErrSnapshotNotFound) {
		t.Errorf("Load after Delete = %v", err)
	}
}

func TestCorruptRecord(t *testing.T) {
	rec, err := newRecord("demo", sample(t))
	if err != nil {
		t.Fatal(err)
	}
	rec.Roster.Friendships[0].B = "Ghost"
	if _, err := rec.network(); apperrors.GetCode(err) != apperrors.ErrCodeStorage {
		t.Errorf("network() on corrupt record = %v, want storage error", err)
	}
}

func TestSnapshotString(t *testing.T) {
	s := Snapshot{Name: "demo", People: 6, Friendships: 8}
	if got := s.String(); got != "demo (6 people, 8 friendships)" {
		t.Errorf("String() = %q", got)
	}
}

func TestOpenUnknownBackend(t *testing.T) {
	_, err := Open(context.Background(), Config{Backend: "sqlite"})
	if apperrors.GetCode(err) != apperrors.ErrCodeInvalidConfig {
		t.Errorf("Open(sqlite) = %v, want invalid config", err)
	}
}

func TestOpenFile(t *testing.T) {
	st, err := Open(context.Background(), Config{Backend: BackendFile, Dir: t.TempDir()})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := st.(*FileStore); !ok {
		t.Errorf("Open(file) = %T", st)
	}
}

func TestOpenRejectsBadURLs(t *testing.T) {
	ctx := context.Background()
	if _, err := Open(ctx, Config{Backend: BackendMongo, MongoURI: "http://localhost"}); apperrors.GetCode(err) != apperrors.ErrCodeInvalidConfig {
		t.Errorf("mongo with http URI = %v", err)
	}
	if _, err := Open(ctx, Config{Backend: BackendNeo4j, Neo4jURI: ""}); apperrors.GetCode(err) != apperrors.ErrCodeInvalidConfig {
		t.Errorf("neo4j with empty URI = %v", err)
	}
}

func TestNeo4jRowsRoundTrip(t *testing.T) {
	n := sample(t)
	rec, err := newRecord("demo", n)
	if err != nil {
		t.Fatal(err)
	}
	params, err := neo4jParams(rec)
	if err != nil {
		t.Fatal(err)
	}

	// Rows as the queries in Load return them.
	head := map[string]any{
		"id":          params["id"],
		"name":        params["graph"],
		"people":      params["count_people"],
		"friendships": params["count_friendships"],
		"self_loops":  params["self_loops"],
		"saved_at":    params["saved_at"],
	}
	var people, edges []map[string]any
	for _, p := range params["people"].([]map[string]any) {
		people = append(people, map[string]any{"name": p["name"], "meta": p["meta"]})
	}
	for _, e := range params["edges"].([]map[string]any) {
		edges = append(edges, map[string]any{"a": e["a"], "b": e["b"]})
	}

	back, err := fromNeo4jRows(head, people, edges)
	if err != nil {
		t.Fatal(err)
	}
	if back.Snapshot != rec.Snapshot {
		t.Errorf("snapshot = %+v, want %+v", back.Snapshot, rec.Snapshot)
	}
	got, err := back.network()
	if err != nil {
		t.Fatal(err)
	}
	assertSameNetwork(t, got, n)
	if p, _ := got.Person("Alex"); p.Meta["city"] != "Lisbon" {
		t.Errorf("Alex meta = %v", p.Meta)
	}
}

func TestSnapshotFromRowTolerant(t *testing.T) {
	s := snapshotFromRow(map[string]any{"name": "x", "people": "not a number", "saved_at": time.Time{}})
	if s.Name != "x" || s.People != 0 {
		t.Errorf("snapshotFromRow = %+v", s)
	}
}
