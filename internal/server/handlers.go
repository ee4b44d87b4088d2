package server

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/socialgraph/pkg/cache"
	apperrors "github.com/matzehuels/socialgraph/pkg/errors"
	"github.com/matzehuels/socialgraph/pkg/events"
	sgio "github.com/matzehuels/socialgraph/pkg/io"
	"github.com/matzehuels/socialgraph/pkg/network"
	"github.com/matzehuels/socialgraph/pkg/observability"
	"github.com/matzehuels/socialgraph/pkg/render"
	"github.com/matzehuels/socialgraph/pkg/render/nodelink"
	"github.com/matzehuels/socialgraph/pkg/report"
)

type personRequest struct {
	ID   string           `json:"id"`
	Meta network.Metadata `json:"meta,omitempty"`
}

type personResponse struct {
	ID      string           `json:"id"`
	Friends []string         `json:"friends"`
	Meta    network.Metadata `json:"meta,omitempty"`
}

type friendshipRequest struct {
	A string `json:"a"`
	B string `json:"b"`
}

type suggestion struct {
	ID     string   `json:"id"`
	Mutual []string `json:"mutual"`
}

type pathResponse struct {
	From      string   `json:"from"`
	To        string   `json:"to"`
	Connected bool     `json:"connected"`
	Path      []string `json:"path"`
	Hops      int      `json:"hops"` // -1 when not connected
}

// mutated reports a mutation to the network hooks and, on success,
// publishes ev.
func (s *Server) mutated(ctx context.Context, op string, err error, ev events.Event) {
	hooks := observability.Network()
	hooks.OnMutation(ctx, op, err)
	if err != nil {
		return
	}
	hooks.OnSize(ctx, s.net.Len(), s.net.FriendshipCount())
	s.publish(ctx, ev)
}

// timed runs a query and reports its latency.
func timed[T any](ctx context.Context, query string, fn func() (T, error)) (T, error) {
	start := time.Now()
	v, err := fn()
	observability.Network().OnQuery(ctx, query, time.Since(start), err)
	return v, err
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":      "ok",
		"people":      s.net.Len(),
		"friendships": s.net.FriendshipCount(),
	})
}

func (s *Server) handleListPeople(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"people": s.net.People()})
}

func (s *Server) handleAddPerson(w http.ResponseWriter, r *http.Request) {
	var req personRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if err := apperrors.ValidatePersonName(req.ID); err != nil {
		writeError(w, r, err)
		return
	}
	err := s.net.AddPersonWithMeta(req.ID, req.Meta)
	s.mutated(r.Context(), network.OpAddPerson, err, events.New(events.PersonAdded, req.ID))
	if err != nil {
		writeError(w, r, err)
		return
	}
	p, _ := s.net.Person(req.ID)
	writeJSON(w, http.StatusCreated, toPersonResponse(p))
}

func (s *Server) handleGetPerson(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	p, ok := s.net.Person(id)
	if !ok {
		writeError(w, r, &apperrors.Error{
			Code:    apperrors.ErrCodePersonNotFound,
			Message: id + " does not exist",
			IDs:     []string{id},
		})
		return
	}
	writeJSON(w, http.StatusOK, toPersonResponse(p))
}

func (s *Server) handleRemovePerson(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	err := s.net.RemovePerson(id)
	s.mutated(r.Context(), network.OpRemovePerson, err, events.New(events.PersonRemoved, id))
	if err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleFriends(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	friends, err := s.net.Neighbors(id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"id": id, "friends": friends})
}

func (s *Server) handleSuggestions(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(w, r, invalidInput("limit must be a non-negative integer"))
			return
		}
		limit = n
	}
	sugg, err := timed(r.Context(), "suggest", func() ([]network.Suggestion, error) {
		return s.net.Suggest(id, limit)
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	out := make([]suggestion, len(sugg))
	for i, sg := range sugg {
		out[i] = suggestion{ID: sg.ID, Mutual: sg.Mutual}
	}
	writeJSON(w, http.StatusOK, map[string]any{"id": id, "suggestions": out})
}

func (s *Server) handleAddFriendship(w http.ResponseWriter, r *http.Request) {
	var req friendshipRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	err := s.net.AddFriendship(req.A, req.B)
	s.mutated(r.Context(), network.OpAddFriendship, err, events.New(events.FriendshipAdded, req.A, req.B))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, req)
}

func (s *Server) handleRemoveFriendship(w http.ResponseWriter, r *http.Request) {
	a, b := chi.URLParam(r, "a"), chi.URLParam(r, "b")
	err := s.net.RemoveFriendship(a, b)
	s.mutated(r.Context(), network.OpRemoveFriendship, err, events.New(events.FriendshipRemoved, a, b))
	if err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleMutual(w http.ResponseWriter, r *http.Request) {
	a, b := chi.URLParam(r, "a"), chi.URLParam(r, "b")
	mutual, err := timed(r.Context(), "mutual friends", func() ([]string, error) {
		return s.net.MutualFriends(a, b)
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"a": a, "b": b, "mutual": mutual})
}

func (s *Server) handlePath(w http.ResponseWriter, r *http.Request) {
	a, b := chi.URLParam(r, "a"), chi.URLParam(r, "b")
	resp, err := timed(r.Context(), "shortest path", func() (pathResponse, error) {
		path, ok, err := s.net.ShortestPath(a, b)
		if err != nil {
			return pathResponse{}, err
		}
		resp := pathResponse{From: a, To: b, Connected: ok, Path: path, Hops: -1}
		if ok {
			resp.Hops = len(path) - 1
		}
		if resp.Path == nil {
			resp.Path = []string{}
		}
		return resp, nil
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleComponents(w http.ResponseWriter, r *http.Request) {
	comps, _ := timed(r.Context(), "components", func() ([][]string, error) {
		return s.net.Components(), nil
	})
	if comps == nil {
		comps = [][]string{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"components": comps})
}

// handleReport serves the friend list as text, or the summary document
// with ?format=json.
func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	var write func(io.Writer, *network.Network) error
	var contentType string
	switch format {
	case "", "text":
		format, contentType = "text", "text/plain; charset=utf-8"
		write = func(w io.Writer, n *network.Network) error { return report.WriteText(w, n) }
	case "json":
		contentType, write = "application/json", report.WriteJSON
	default:
		writeError(w, r, apperrors.New(apperrors.ErrCodeInvalidFormat, "unknown report format %q", format))
		return
	}

	snap := s.net.Snapshot()
	hash, err := contentHash(snap)
	if err != nil {
		writeError(w, r, err)
		return
	}
	data, err := s.cached(r.Context(), s.opts.Keyer.ReportKey(hash, format), cache.ReportTTL, func() ([]byte, error) {
		var buf bytes.Buffer
		err := write(&buf, snap)
		return buf.Bytes(), err
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", contentType)
	_, _ = w.Write(data)
}

// handleRender draws the network. Query parameters: format (svg, dot, pdf,
// png), layout, detailed, cluster, and from/to to highlight the shortest
// path between two people. Output is cached by network content and options.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	format, err := render.ParseFormat(q.Get("format"), "")
	if err != nil {
		writeError(w, r, apperrors.Wrap(apperrors.ErrCodeInvalidFormat, err, "unknown format %q", q.Get("format")))
		return
	}
	opts := nodelink.Options{
		Layout:   q.Get("layout"),
		Detailed: truthy(q.Get("detailed")),
		Cluster:  truthy(q.Get("cluster")),
	}

	snap := s.net.Snapshot()
	if from, to := q.Get("from"), q.Get("to"); from != "" || to != "" {
		path, _, err := snap.ShortestPath(from, to)
		if err != nil {
			writeError(w, r, err)
			return
		}
		opts.Highlight = path
	}

	data, err := s.renderCached(r.Context(), snap, format, opts)
	if err != nil {
		writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", render.ContentType(format))
	_, _ = w.Write(data)
}

func (s *Server) renderCached(ctx context.Context, n *network.Network, format string, opts nodelink.Options) ([]byte, error) {
	hash, err := contentHash(n)
	if err != nil {
		return nil, err
	}
	key := s.opts.Keyer.RenderKey(hash, cache.RenderKeyOpts{
		Format:    format,
		Layout:    opts.Layout,
		Detailed:  opts.Detailed,
		Cluster:   opts.Cluster,
		Highlight: opts.Highlight,
	})
	return s.cached(ctx, key, cache.RenderTTL, func() ([]byte, error) {
		data, err := nodelink.Render(ctx, n, format, opts)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrCodeInternal, err, "render %s", format)
		}
		return data, nil
	})
}

// cached returns the entry stored under key, building and storing it on a
// miss. Cache failures are logged and never fail the request.
func (s *Server) cached(ctx context.Context, key string, ttl time.Duration, build func() ([]byte, error)) ([]byte, error) {
	if data, ok, err := s.opts.Cache.Get(ctx, key); err != nil {
		s.logger.Warn("cache read failed", "key", key, "error", err)
	} else if ok {
		return data, nil
	}
	data, err := build()
	if err != nil {
		return nil, err
	}
	if err := s.opts.Cache.Set(ctx, key, data, ttl); err != nil {
		s.logger.Warn("cache write failed", "key", key, "error", err)
	}
	return data, nil
}

// contentHash identifies a network by its canonical JSON document.
func contentHash(n *network.Network) (string, error) {
	var buf bytes.Buffer
	if err := sgio.WriteJSON(n, &buf); err != nil {
		return "", err
	}
	return cache.Hash(buf.Bytes()), nil
}

func (s *Server) handleListSnapshots(w http.ResponseWriter, r *http.Request) {
	list, err := s.opts.Store.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"snapshots": list})
}

func (s *Server) handleSaveSnapshot(w http.ResponseWriter, r *http.Request) {
	snap, err := s.opts.Store.Save(r.Context(), chi.URLParam(r, "name"), s.net.Snapshot())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

// handleLoadSnapshot replaces the served network with a stored one.
func (s *Server) handleLoadSnapshot(w http.ResponseWriter, r *http.Request) {
	n, err := s.opts.Store.Load(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	s.net.Replace(n)
	observability.Network().OnSize(r.Context(), n.Len(), n.FriendshipCount())
	writeJSON(w, http.StatusOK, map[string]int{
		"people":      n.Len(),
		"friendships": n.FriendshipCount(),
	})
}

func (s *Server) handleDeleteSnapshot(w http.ResponseWriter, r *http.Request) {
	if err := s.opts.Store.Delete(r.Context(), chi.URLParam(r, "name")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func toPersonResponse(p network.Person) personResponse {
	resp := personResponse{ID: p.ID, Friends: p.Friends, Meta: p.Meta}
	if resp.Friends == nil {
		resp.Friends = []string{}
	}
	if len(resp.Meta) == 0 {
		resp.Meta = nil
	}
	return resp
}

func truthy(v string) bool {
	b, _ := strconv.ParseBool(strings.TrimSpace(v))
	return b
}
