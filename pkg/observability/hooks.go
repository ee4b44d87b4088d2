// Package observability lets the rest of socialgraph report what it is
// doing without depending on a metrics backend.
//
// Four hook interfaces cover the instrumented areas: network mutations and
// queries, diagram rendering, the render cache and the HTTP API. Code under
// pkg/ only calls the accessors ([Network], [Render], [Cache], [HTTP]); a
// binary decides at startup what listens:
//
//	p := observability.NewPrometheus(prometheus.NewRegistry())
//	p.Register()
//	defer observability.Reset()
//
// Until something is installed every accessor returns [Nop].
//
// [SetupPropagation] configures W3C trace context propagation for the HTTP
// server and the NATS event feed.
package observability

import (
	"context"
	"sync/atomic"
	"time"
)

// NetworkHooks observes the friendship network.
type NetworkHooks interface {
	// OnMutation is called after every attempted mutation, err being the
	// outcome.
	OnMutation(ctx context.Context, op string, err error)
	OnQuery(ctx context.Context, query string, took time.Duration, err error)
	// OnSize reports the network size after it changed.
	OnSize(ctx context.Context, people, friendships int)
}

// RenderHooks observes diagram rendering.
type RenderHooks interface {
	OnRenderStart(ctx context.Context, format string, people int)
	OnRenderComplete(ctx context.Context, format string, took time.Duration, err error)
}

// CacheHooks observes cache traffic. keyType is the key prefix, e.g.
// "render" or "report".
type CacheHooks interface {
	OnCacheHit(ctx context.Context, keyType string)
	OnCacheMiss(ctx context.Context, keyType string)
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// HTTPHooks observes the API server. route is the chi pattern such as
// "/people/{id}", never the raw path.
type HTTPHooks interface {
	OnRequest(ctx context.Context, method, route string)
	OnResponse(ctx context.Context, method, route string, status int, took time.Duration)
}

// Nop satisfies every hook interface and does nothing.
type Nop struct{}

func (Nop) OnMutation(context.Context, string, error)                      {}
func (Nop) OnQuery(context.Context, string, time.Duration, error)          {}
func (Nop) OnSize(context.Context, int, int)                               {}
func (Nop) OnRenderStart(context.Context, string, int)                     {}
func (Nop) OnRenderComplete(context.Context, string, time.Duration, error) {}
func (Nop) OnCacheHit(context.Context, string)                             {}
func (Nop) OnCacheMiss(context.Context, string)                            {}
func (Nop) OnCacheSet(context.Context, string, int)                        {}
func (Nop) OnRequest(context.Context, string, string)                      {}
func (Nop) OnResponse(context.Context, string, string, int, time.Duration) {}

// Hooks is the set of installed listeners. Nil fields are left as they
// were when passed to [Install].
type Hooks struct {
	Network NetworkHooks
	Render  RenderHooks
	Cache   CacheHooks
	HTTP    HTTPHooks
}

func nopHooks() *Hooks {
	return &Hooks{Network: Nop{}, Render: Nop{}, Cache: Nop{}, HTTP: Nop{}}
}

var installed atomic.Pointer[Hooks]

func init() { installed.Store(nopHooks()) }

// Install replaces the listeners named by the non-nil fields of h. Readers
// see either the old or the new set, never a mix within one field.
func Install(h Hooks) {
	for {
		cur := installed.Load()
		next := *cur
		if h.Network != nil {
			next.Network = h.Network
		}
		if h.Render != nil {
			next.Render = h.Render
		}
		if h.Cache != nil {
			next.Cache = h.Cache
		}
		if h.HTTP != nil {
			next.HTTP = h.HTTP
		}
		if installed.CompareAndSwap(cur, &next) {
			return
		}
	}
}

// Reset puts [Nop] back everywhere. Tests that install hooks defer it.
func Reset() { installed.Store(nopHooks()) }

func Network() NetworkHooks { return installed.Load().Network }
func Render() RenderHooks   { return installed.Load().Render }
func Cache() CacheHooks     { return installed.Load().Cache }
func HTTP() HTTPHooks       { return installed.Load().HTTP }
