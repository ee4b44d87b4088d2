package server

import (
	"context"
	"fmt"
	"math"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"golang.org/x/time/rate"

	apperrors "github.com/matzehuels/socialgraph/pkg/errors"
	"github.com/matzehuels/socialgraph/pkg/observability"
)

// RequestIDHeader carries the request ID in both directions.
const RequestIDHeader = "X-Request-ID"

type ctxKey int

const requestIDKey ctxKey = iota

// RequestID returns the ID assigned to the request carried by ctx.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// requestID keeps a well-formed incoming X-Request-ID and generates one
// otherwise.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" || len(id) > 128 {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey, id)))
	})
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		logf := s.logger.Info
		if status >= http.StatusInternalServerError {
			logf = s.logger.Error
		}
		logf("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", status,
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", RequestID(r.Context()),
		)
	})
}

func (s *Server) recoverPanics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if v := recover(); v != nil {
				if v == http.ErrAbortHandler {
					panic(v)
				}
				s.logger.Error("panic recovered", "error", fmt.Sprint(v), "request_id", RequestID(r.Context()))
				writeError(w, r, apperrors.New(apperrors.ErrCodeInternal, "internal server error"))
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// instrument reports requests to the registered HTTP hooks, labeled with
// the matched route pattern.
func instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hooks := observability.HTTP()
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		hooks.OnRequest(r.Context(), r.Method, "")
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		hooks.OnResponse(r.Context(), r.Method, route, status, time.Since(start))
	})
}

func (s *Server) rateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ok, wait := s.limiter.allow(clientKey(r)); !ok {
			w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(wait.Seconds()))))
			writeError(w, r, apperrors.RateLimited(wait))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// clientKey identifies the caller. RealIP has already replaced RemoteAddr
// with the forwarded address when a proxy set one.
func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

const (
	limiterIdle    = 5 * time.Minute
	limiterMaxKeys = 4096
)

// clientLimiter keeps one token bucket per client.
type clientLimiter struct {
	mu      sync.Mutex
	limit   rate.Limit
	burst   int
	clients map[string]*clientBucket
	now     func() time.Time
}

type clientBucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func newClientLimiter(rps float64, burst int) *clientLimiter {
	if burst < 1 {
		burst = 1
	}
	return &clientLimiter{
		limit:   rate.Limit(rps),
		burst:   burst,
		clients: make(map[string]*clientBucket),
		now:     time.Now,
	}
}

// allow takes a token for key. When none is available it reports how long
// until the next one.
func (l *clientLimiter) allow(key string) (bool, time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	b, ok := l.clients[key]
	if !ok {
		if len(l.clients) >= limiterMaxKeys {
			l.prune(now)
		}
		b = &clientBucket{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.clients[key] = b
	}
	b.lastSeen = now

	res := b.limiter.ReserveN(now, 1)
	if delay := res.DelayFrom(now); delay > 0 {
		res.CancelAt(now)
		return false, delay
	}
	return true, 0
}

func (l *clientLimiter) prune(now time.Time) {
	for k, b := range l.clients {
		if now.Sub(b.lastSeen) > limiterIdle {
			delete(l.clients, k)
		}
	}
}
