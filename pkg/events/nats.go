package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"go.opentelemetry.io/otel"
)

// DefaultSubjectPrefix is used when no prefix is configured.
const DefaultSubjectPrefix = "socialgraph"

// NATSPublisher publishes events as JSON on NATS core subjects.
type NATSPublisher struct {
	nc     *nats.Conn
	prefix string
	owned  bool
}

// NewNATSPublisher connects to the NATS server at url.
func NewNATSPublisher(url, prefix string) (*NATSPublisher, error) {
	nc, err := nats.Connect(url,
		nats.Name("socialgraph"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("connect nats %s: %w", url, err)
	}
	p := NewNATSPublisherFromConn(nc, prefix)
	p.owned = true
	return p, nil
}

// NewNATSPublisherFromConn publishes on an existing connection. Close does
// not close a connection it did not open.
func NewNATSPublisherFromConn(nc *nats.Conn, prefix string) *NATSPublisher {
	if prefix == "" {
		prefix = DefaultSubjectPrefix
	}
	return &NATSPublisher{nc: nc, prefix: prefix}
}

// Subject returns the subject events of type t are published on.
func (p *NATSPublisher) Subject(t Type) string {
	return p.prefix + "." + string(t)
}

// Publish serializes ev as JSON and publishes it. The event ID is sent in
// the Nats-Msg-Id header so JetStream streams can deduplicate, and the
// trace context of ctx travels in the remaining headers.
func (p *NATSPublisher) Publish(ctx context.Context, ev Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}
	msg := &nats.Msg{
		Subject: p.Subject(ev.Type),
		Data:    data,
		Header:  nats.Header{},
	}
	msg.Header.Set(nats.MsgIdHdr, ev.ID)
	otel.GetTextMapPropagator().Inject(ctx, headerCarrier(msg.Header))
	if err := p.nc.PublishMsg(msg); err != nil {
		return fmt.Errorf("publish %s: %w", msg.Subject, err)
	}
	return nil
}

// Close drains the connection if the publisher opened it.
func (p *NATSPublisher) Close() error {
	if !p.owned {
		return nil
	}
	return p.nc.Drain()
}

// Subscribe delivers every event published under prefix to handler. The
// handler's context carries the publisher's trace context, if any.
// Malformed messages are dropped.
func Subscribe(nc *nats.Conn, prefix string, handler func(context.Context, Event)) (*nats.Subscription, error) {
	if prefix == "" {
		prefix = DefaultSubjectPrefix
	}
	return nc.Subscribe(prefix+".>", func(msg *nats.Msg) {
		var ev Event
		if err := json.Unmarshal(msg.Data, &ev); err != nil {
			return
		}
		ctx := otel.GetTextMapPropagator().Extract(context.Background(), headerCarrier(msg.Header))
		handler(ctx, ev)
	})
}

// headerCarrier adapts NATS headers to the OpenTelemetry propagator.
type headerCarrier nats.Header

func (c headerCarrier) Get(key string) string { return nats.Header(c).Get(key) }
func (c headerCarrier) Set(key, val string)   { nats.Header(c).Set(key, val) }

func (c headerCarrier) Keys() []string {
	keys := make([]string, 0, len(c))
	for k := range c {
		keys = append(keys, k)
	}
	return keys
}

var _ Publisher = (*NATSPublisher)(nil)
