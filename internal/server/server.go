// Package server exposes a social network over an HTTP JSON API.
//
// The server wraps a [network.Synchronized], so any number of requests can
// query the network while mutations are serialized. Successful mutations
// are published as [events.Event] values; a failed publish is logged and
// never fails the request that caused it.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/matzehuels/socialgraph/pkg/cache"
	"github.com/matzehuels/socialgraph/pkg/events"
	"github.com/matzehuels/socialgraph/pkg/network"
	"github.com/matzehuels/socialgraph/pkg/store"
)

const shutdownTimeout = 10 * time.Second

// Options configures optional collaborators. Zero values disable the
// feature they control.
type Options struct {
	Logger    *log.Logger
	Publisher events.Publisher // defaults to events.NopPublisher
	Store     store.Store      // enables /snapshots
	Cache     cache.Cache      // caches /render output
	Keyer     cache.Keyer      // defaults to cache.NewDefaultKeyer()
	Metrics   http.Handler     // served on /metrics

	// Rate and Burst configure the per-client token bucket.
	// Rate is in requests per second; 0 disables limiting.
	Rate  float64
	Burst int
}

// Server is the HTTP API.
type Server struct {
	net     *network.Synchronized
	opts    Options
	logger  *log.Logger
	limiter *clientLimiter
	handler http.Handler
}

// New creates a server for n.
func New(n *network.Synchronized, opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Publisher == nil {
		opts.Publisher = events.NopPublisher{}
	}
	if opts.Cache == nil {
		opts.Cache = cache.NewNullCache()
	}
	if opts.Keyer == nil {
		opts.Keyer = cache.NewDefaultKeyer()
	}
	s := &Server{
		net:    n,
		opts:   opts,
		logger: opts.Logger,
	}
	if opts.Rate > 0 {
		s.limiter = newClientLimiter(opts.Rate, opts.Burst)
	}
	s.handler = otelhttp.NewHandler(s.routes(), "socialgraph",
		otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
			return r.Method + " " + r.URL.Path
		}))
	return s
}

// Handler returns the root handler. Requests are traced with
// OpenTelemetry; an incoming traceparent header continues the caller's
// trace into published events.
func (s *Server) Handler() http.Handler {
	return s.handler
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(requestID)
	r.Use(s.logRequests)
	r.Use(s.recoverPanics)
	r.Use(instrument)

	r.Get("/healthz", s.handleHealth)
	if s.opts.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.opts.Metrics)
	}

	r.Group(func(r chi.Router) {
		if s.limiter != nil {
			r.Use(s.rateLimit)
		}

		r.Route("/people", func(r chi.Router) {
			r.Get("/", s.handleListPeople)
			r.Post("/", s.handleAddPerson)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.handleGetPerson)
				r.Delete("/", s.handleRemovePerson)
				r.Get("/friends", s.handleFriends)
				r.Get("/suggestions", s.handleSuggestions)
			})
		})
		r.Post("/friendships", s.handleAddFriendship)
		r.Delete("/friendships/{a}/{b}", s.handleRemoveFriendship)
		r.Get("/mutual/{a}/{b}", s.handleMutual)
		r.Get("/path/{a}/{b}", s.handlePath)
		r.Get("/components", s.handleComponents)
		r.Get("/report", s.handleReport)
		r.Get("/render", s.handleRender)

		if s.opts.Store != nil {
			r.Route("/snapshots", func(r chi.Router) {
				r.Get("/", s.handleListSnapshots)
				r.Put("/{name}", s.handleSaveSnapshot)
				r.Post("/{name}/load", s.handleLoadSnapshot)
				r.Delete("/{name}", s.handleDeleteSnapshot)
			})
		}
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, errNoRoute)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, errMethod)
	})
	return r
}

// ListenAndServe serves on addr until ctx is canceled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// publish sends ev and logs a failure.
func (s *Server) publish(ctx context.Context, ev events.Event) {
	if err := s.opts.Publisher.Publish(ctx, ev); err != nil {
		s.logger.Warn("event not published", "type", ev.Type, "id", ev.ID, "error", err)
	}
}
