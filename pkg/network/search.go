package network

import "slices"

// walker runs a breadth-first search from a single start person. Friends are
// expanded in friendship order, so every traversal is deterministic.
type walker struct {
	net      *Network
	queue    []string
	depth    map[string]int
	parent   map[string]string
	maxDepth int // 0 means unlimited
}

func newWalker(n *Network, start string, maxDepth int) *walker {
	w := &walker{
		net:      n,
		queue:    make([]string, 0, len(n.nodes)),
		depth:    make(map[string]int, len(n.nodes)),
		parent:   make(map[string]string),
		maxDepth: maxDepth,
	}
	w.depth[start] = 0
	w.queue = append(w.queue, start)
	return w
}

// run visits people in BFS order until visit returns false or the queue is
// exhausted. It never mutates the network.
func (w *walker) run(visit func(id string, depth int) bool) {
	for len(w.queue) > 0 {
		id := w.queue[0]
		w.queue = w.queue[1:]
		d := w.depth[id]
		if !visit(id, d) {
			return
		}
		if w.maxDepth > 0 && d >= w.maxDepth {
			continue
		}
		for _, f := range w.net.nodes[id].friends {
			if _, seen := w.depth[f]; seen {
				continue
			}
			w.depth[f] = d + 1
			w.parent[f] = id
			w.queue = append(w.queue, f)
		}
	}
}

// pathTo rebuilds the path from the start person to id using parent links.
func (w *walker) pathTo(id string) []string {
	path := []string{id}
	for {
		p, ok := w.parent[id]
		if !ok {
			break
		}
		path = append(path, p)
		id = p
	}
	slices.Reverse(path)
	return path
}

// ShortestPath returns a shortest chain of friendships from a to b by hop
// count, including both endpoints. The path from a person to themselves is
// [a]. The second return value is false (with a nil path) when b is not
// reachable from a.
//
// Runs in O(V+E) in the worst case.
func (n *Network) ShortestPath(a, b string) ([]string, bool, error) {
	if err := n.requireAll(OpQuery, a, b); err != nil {
		return nil, false, err
	}
	w := newWalker(n, a, 0)
	found := false
	w.run(func(id string, _ int) bool {
		found = id == b
		return !found
	})
	if !found {
		return nil, false, nil
	}
	return w.pathTo(b), true, nil
}

// IsConnected reports whether b is reachable from a through any chain of
// friendships. A person is always connected to themselves.
func (n *Network) IsConnected(a, b string) (bool, error) {
	_, ok, err := n.ShortestPath(a, b)
	return ok, err
}

// Distance returns the number of friendship hops on a shortest path from a
// to b. The second return value is false when b is unreachable.
func (n *Network) Distance(a, b string) (int, bool, error) {
	path, ok, err := n.ShortestPath(a, b)
	if err != nil || !ok {
		return 0, false, err
	}
	return len(path) - 1, true, nil
}

// Within returns everyone reachable from id in at most depth hops, excluding
// id itself, in BFS order. A depth of zero or less returns an empty slice.
func (n *Network) Within(id string, depth int) ([]string, error) {
	if !n.Has(id) {
		return nil, opError(OpQuery, ErrNotFound, id)
	}
	out := []string{}
	if depth <= 0 {
		return out, nil
	}
	newWalker(n, id, depth).run(func(v string, _ int) bool {
		if v != id {
			out = append(out, v)
		}
		return true
	})
	return out, nil
}

// Components partitions the network into connected components. Components
// are ordered by the insertion order of their earliest member, and members
// are listed in BFS order from that member. Isolated people form singleton
// components.
func (n *Network) Components() [][]string {
	seen := make(map[string]bool, len(n.nodes))
	var comps [][]string
	for _, start := range n.order {
		if seen[start] {
			continue
		}
		var comp []string
		newWalker(n, start, 0).run(func(id string, _ int) bool {
			seen[id] = true
			comp = append(comp, id)
			return true
		})
		comps = append(comps, comp)
	}
	return comps
}

// Suggestion is a friend-of-a-friend recommendation.
type Suggestion struct {
	ID     string   // Suggested person
	Mutual []string // Friends shared with the person the suggestion is for
}

// Suggest recommends people who are friends of id's friends but not yet
// friends with id. Suggestions are ranked by number of mutual friends
// (descending), ties broken by discovery order. A limit of zero or less
// returns every candidate.
func (n *Network) Suggest(id string, limit int) ([]Suggestion, error) {
	p, ok := n.nodes[id]
	if !ok {
		return nil, opError(OpQuery, ErrNotFound, id)
	}
	var out []Suggestion
	pos := make(map[string]int)
	for _, f := range p.friends {
		for _, ff := range n.nodes[f].friends {
			if ff == id || p.hasFriend(ff) {
				continue
			}
			i, ok := pos[ff]
			if !ok {
				i = len(out)
				pos[ff] = i
				out = append(out, Suggestion{ID: ff})
			}
			if !slices.Contains(out[i].Mutual, f) {
				out[i].Mutual = append(out[i].Mutual, f)
			}
		}
	}
	slices.SortStableFunc(out, func(a, b Suggestion) int {
		return len(b.Mutual) - len(a.Mutual)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	if out == nil {
		out = []Suggestion{}
	}
	return out, nil
}
