package observability

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "socialgraph"

// Result label values.
const (
	resultSuccess = "success"
	resultError   = "error"
)

// Prometheus implements every hook interface with Prometheus collectors.
type Prometheus struct {
	gatherer prometheus.Gatherer

	mutations     *prometheus.CounterVec
	querySeconds  *prometheus.HistogramVec
	people        prometheus.Gauge
	friendships   prometheus.Gauge
	renderSeconds *prometheus.HistogramVec
	cacheOps      *prometheus.CounterVec
	cacheBytes    *prometheus.CounterVec
	httpRequests  *prometheus.CounterVec
	httpSeconds   *prometheus.HistogramVec
	httpInFlight  prometheus.Gauge
}

// NewPrometheus registers the socialgraph collectors on reg.
func NewPrometheus(reg *prometheus.Registry) *Prometheus {
	f := promauto.With(reg)
	return &Prometheus{
		gatherer: reg,
		mutations: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "network",
			Name:      "mutations_total",
			Help:      "Number of attempted network mutations.",
		}, []string{"op", "result"}),
		querySeconds: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "network",
			Name:      "query_seconds",
			Help:      "Latency of network queries.",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 10),
		}, []string{"query"}),
		people: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "network",
			Name:      "people",
			Help:      "Number of people in the network.",
		}),
		friendships: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "network",
			Name:      "friendships",
			Help:      "Number of friendships in the network.",
		}),
		renderSeconds: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "render",
			Name:      "seconds",
			Help:      "Time spent rendering diagrams.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"format", "result"}),
		cacheOps: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "operations_total",
			Help:      "Number of cache lookups and writes.",
		}, []string{"key_type", "operation"}),
		cacheBytes: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "written_bytes_total",
			Help:      "Bytes written to the cache.",
		}, []string{"key_type"}),
		httpRequests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Number of HTTP requests served.",
		}, []string{"method", "route", "code"}),
		httpSeconds: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_seconds",
			Help:      "Latency of HTTP requests.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		httpInFlight: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_in_flight",
			Help:      "Number of HTTP requests being served.",
		}),
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (p *Prometheus) Handler() http.Handler {
	return promhttp.HandlerFor(p.gatherer, promhttp.HandlerOpts{})
}

// Register installs p for every hook area.
func (p *Prometheus) Register() {
	Install(Hooks{Network: p, Render: p, Cache: p, HTTP: p})
}

func result(err error) string {
	if err != nil {
		return resultError
	}
	return resultSuccess
}

func (p *Prometheus) OnMutation(_ context.Context, op string, err error) {
	p.mutations.WithLabelValues(op, result(err)).Inc()
}

func (p *Prometheus) OnQuery(_ context.Context, query string, d time.Duration, _ error) {
	p.querySeconds.WithLabelValues(query).Observe(d.Seconds())
}

func (p *Prometheus) OnSize(_ context.Context, people, friendships int) {
	p.people.Set(float64(people))
	p.friendships.Set(float64(friendships))
}

func (p *Prometheus) OnRenderStart(context.Context, string, int) {}

func (p *Prometheus) OnRenderComplete(_ context.Context, format string, d time.Duration, err error) {
	p.renderSeconds.WithLabelValues(format, result(err)).Observe(d.Seconds())
}

func (p *Prometheus) OnCacheHit(_ context.Context, keyType string) {
	p.cacheOps.WithLabelValues(keyType, "hit").Inc()
}

func (p *Prometheus) OnCacheMiss(_ context.Context, keyType string) {
	p.cacheOps.WithLabelValues(keyType, "miss").Inc()
}

func (p *Prometheus) OnCacheSet(_ context.Context, keyType string, size int) {
	p.cacheOps.WithLabelValues(keyType, "set").Inc()
	p.cacheBytes.WithLabelValues(keyType).Add(float64(size))
}

func (p *Prometheus) OnRequest(context.Context, string, string) {
	p.httpInFlight.Inc()
}

func (p *Prometheus) OnResponse(_ context.Context, method, route string, code int, d time.Duration) {
	p.httpInFlight.Dec()
	p.httpRequests.WithLabelValues(method, route, strconv.Itoa(code)).Inc()
	p.httpSeconds.WithLabelValues(method, route).Observe(d.Seconds())
}

var (
	_ NetworkHooks = (*Prometheus)(nil)
	_ RenderHooks  = (*Prometheus)(nil)
	_ CacheHooks   = (*Prometheus)(nil)
	_ HTTPHooks    = (*Prometheus)(nil)
)
